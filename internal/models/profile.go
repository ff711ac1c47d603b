package models

import (
	"fmt"
	"strings"
	"time"
)

type Addiction string

const (
	AddictionCigarettes Addiction = "Cigarettes"
	AddictionDrugs      Addiction = "Drugs"
	AddictionSelfHarm   Addiction = "Self Harm"
	AddictionWeed       Addiction = "Weed"
	AddictionMeth       Addiction = "Meth"
	AddictionPills      Addiction = "Pills"
	AddictionVape       Addiction = "Vape"
	AddictionAlcohol    Addiction = "Alcohol"
	AddictionOther      Addiction = "Other"
)

// Addictions lists every supported addiction kind, in display order.
func Addictions() []Addiction {
	return []Addiction{
		AddictionCigarettes,
		AddictionDrugs,
		AddictionSelfHarm,
		AddictionWeed,
		AddictionMeth,
		AddictionPills,
		AddictionVape,
		AddictionAlcohol,
		AddictionOther,
	}
}

func ParseAddiction(s string) (Addiction, error) {
	for _, a := range Addictions() {
		if strings.EqualFold(string(a), strings.TrimSpace(s)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown addiction kind: %q", s)
}

type QuitStrategy string

const (
	StrategyColdTurkey  QuitStrategy = "Cold Turkey"
	StrategyGradual     QuitStrategy = "Gradual"
	StrategyReplacement QuitStrategy = "Replacement Therapy"
)

func QuitStrategies() []QuitStrategy {
	return []QuitStrategy{StrategyColdTurkey, StrategyGradual, StrategyReplacement}
}

func ParseQuitStrategy(s string) (QuitStrategy, error) {
	for _, q := range QuitStrategies() {
		if strings.EqualFold(string(q), strings.TrimSpace(s)) {
			return q, nil
		}
	}
	return "", fmt.Errorf("unknown quit strategy: %q", s)
}

// SavingsGoal is an optional target purchase notionally funded by money
// not spent on the habit.
type SavingsGoal struct {
	Name       string  `json:"name"`
	TargetCost float64 `json:"target_cost"`
}

// Profile is the singleton quit-addiction profile. StartedAt anchors every
// elapsed-time metric and only changes on an explicit user edit.
type Profile struct {
	Name            string       `json:"name"`
	Age             int          `json:"age"`
	Addiction       Addiction    `json:"addiction"`
	StartedAt       time.Time    `json:"started_at"`
	WeeklyFrequency int          `json:"weekly_frequency"`
	ReminderTime    string       `json:"reminder_time"` // HH:MM, informational
	QuitReason      string       `json:"quit_reason"`
	Strategy        QuitStrategy `json:"strategy"`
	DailyCost       float64      `json:"daily_cost"`
	Goal            *SavingsGoal `json:"savings_goal,omitempty"`
}

// NewProfile validates and builds a profile. An incomplete draft never
// produces a Profile.
func NewProfile(name string, age int, addiction Addiction, startedAt time.Time) (*Profile, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("profile name is required")
	}
	if age <= 0 {
		return nil, fmt.Errorf("age must be positive, got %d", age)
	}
	if _, err := ParseAddiction(string(addiction)); err != nil {
		return nil, err
	}
	return &Profile{
		Name:      strings.TrimSpace(name),
		Age:       age,
		Addiction: addiction,
		StartedAt: startedAt,
		Strategy:  StrategyColdTurkey,
	}, nil
}
