package cli

import (
	"fmt"
	"time"

	"github.com/jstrand/ashline/internal/models"
	"github.com/jstrand/ashline/internal/tracker"
)

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *Context) error {
	if err := openTracker(ctx); err != nil {
		return err
	}

	p := ctx.Tracker.Profile()
	if p == nil {
		return tracker.ErrNoProfile
	}

	fmt.Printf("Name:             %s\n", p.Name)
	fmt.Printf("Age:              %d\n", p.Age)
	fmt.Printf("Quitting:         %s\n", p.Addiction)
	fmt.Printf("Since:            %s\n", p.StartedAt.Format("Jan _2 2006 15:04"))
	fmt.Printf("Strategy:         %s\n", p.Strategy)
	fmt.Printf("Weekly frequency: %d\n", p.WeeklyFrequency)
	fmt.Printf("Daily cost:       %s\n", formatMoney(p.DailyCost))
	fmt.Printf("Reminder:         %s\n", p.ReminderTime)
	if p.QuitReason != "" {
		fmt.Printf("Reason:           %s\n", p.QuitReason)
	}
	if p.Goal != nil {
		fmt.Printf("Savings goal:     %s (%s)\n", p.Goal.Name, formatMoney(p.Goal.TargetCost))
	}
	return nil
}

type ProfileSetCmd struct {
	Name      string  `help:"New name."`
	Age       int     `help:"New age."`
	Addiction string  `help:"New addiction kind."`
	Started   string  `help:"New start timestamp (RFC3339). Resets the streak anchor."`
	Frequency int     `help:"New weekly frequency." default:"-1"`
	Reminder  string  `help:"New reminder time (HH:MM)."`
	Reason    string  `help:"New quit reason."`
	Strategy  string  `help:"New quit strategy."`
	Cost      float64 `help:"New daily cost." default:"-1"`
}

// Run maps the provided flags onto an explicit patch. Unset flags leave
// the profile untouched; in particular the start timestamp never moves
// unless --started is given.
func (c *ProfileSetCmd) Run(ctx *Context) error {
	if err := openTracker(ctx); err != nil {
		return err
	}

	var patch tracker.ProfilePatch

	if c.Name != "" {
		patch.Name = &c.Name
	}
	if c.Age != 0 {
		patch.Age = &c.Age
	}
	if c.Addiction != "" {
		a, err := models.ParseAddiction(c.Addiction)
		if err != nil {
			return err
		}
		patch.Addiction = &a
	}
	if c.Started != "" {
		ts, err := time.Parse(time.RFC3339, c.Started)
		if err != nil {
			return fmt.Errorf("invalid start timestamp, use RFC3339: %w", err)
		}
		patch.StartedAt = &ts
	}
	if c.Frequency >= 0 {
		patch.WeeklyFrequency = &c.Frequency
	}
	if c.Reminder != "" {
		patch.ReminderTime = &c.Reminder
	}
	if c.Reason != "" {
		patch.QuitReason = &c.Reason
	}
	if c.Strategy != "" {
		q, err := models.ParseQuitStrategy(c.Strategy)
		if err != nil {
			return err
		}
		patch.Strategy = &q
	}
	if c.Cost >= 0 {
		patch.DailyCost = &c.Cost
	}

	_, err := ctx.Tracker.PatchProfile(patch)
	if err = reportSave(err); err != nil {
		return err
	}

	fmt.Println("Profile updated.")
	return nil
}
