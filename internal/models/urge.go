package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UrgeEvent is a logged craving occurrence. Events are append-only:
// there is no edit or delete short of a full reset.
type UrgeEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Intensity int       `json:"intensity"` // 1-10
	Trigger   string    `json:"trigger"`
	Notes     string    `json:"notes,omitempty"`
}

// NewUrgeEvent validates and builds an urge event with a fresh id.
func NewUrgeEvent(timestamp time.Time, intensity int, trigger, notes string) (*UrgeEvent, error) {
	if strings.TrimSpace(trigger) == "" {
		return nil, fmt.Errorf("urge trigger is required")
	}
	if intensity < 1 || intensity > 10 {
		return nil, fmt.Errorf("intensity must be between 1 and 10, got %d", intensity)
	}
	return &UrgeEvent{
		ID:        uuid.New().String(),
		Timestamp: timestamp,
		Intensity: intensity,
		Trigger:   strings.TrimSpace(trigger),
		Notes:     notes,
	}, nil
}
