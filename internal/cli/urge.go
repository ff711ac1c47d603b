package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/jstrand/ashline/internal/constants"
)

type UrgeLogCmd struct {
	Trigger   string `arg:"" optional:"" help:"What caused the craving."`
	Intensity int    `short:"i" help:"Craving intensity (1-10)." default:"5"`
	Notes     string `short:"n" help:"How did you feel?"`
}

func (c *UrgeLogCmd) Validate() error {
	if c.Intensity < 1 || c.Intensity > constants.MaxUrgeIntensity {
		return fmt.Errorf("intensity must be between 1 and %d", constants.MaxUrgeIntensity)
	}
	return nil
}

func (c *UrgeLogCmd) Run(ctx *Context) error {
	if err := openTracker(ctx); err != nil {
		return err
	}

	if c.Trigger == "" {
		if err := c.promptForm(); err != nil {
			return err
		}
	}

	u, err := ctx.Tracker.LogUrge(c.Intensity, c.Trigger, c.Notes)
	if err = reportSave(err); err != nil {
		return err
	}

	fmt.Printf("Logged urge (level %d): %s\n", u.Intensity, u.Trigger)
	fmt.Println("Most cravings pass within about 3 minutes. Distract yourself, drink water, or take 10 deep breaths.")
	return nil
}

func (c *UrgeLogCmd) promptForm() error {
	intensityStr := strconv.Itoa(c.Intensity)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What triggered it?").
				Placeholder("Stress, boredom, saw someone smoking...").
				Value(&c.Trigger).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("trigger is required")
					}
					return nil
				}),
			huh.NewInput().
				Title(fmt.Sprintf("Intensity (1-%d)", constants.MaxUrgeIntensity)).
				Value(&intensityStr).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 || n > constants.MaxUrgeIntensity {
						return fmt.Errorf("enter a number between 1 and %d", constants.MaxUrgeIntensity)
					}
					return nil
				}),
			huh.NewInput().
				Title("Notes (optional)").
				Value(&c.Notes),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	c.Intensity, _ = strconv.Atoi(strings.TrimSpace(intensityStr))
	return nil
}

type UrgeListCmd struct {
	Limit int `short:"l" help:"Maximum entries to show." default:"20"`
}

func (c *UrgeListCmd) Run(ctx *Context) error {
	if err := openTracker(ctx); err != nil {
		return err
	}

	urges := ctx.Tracker.UrgeLog()
	if len(urges) == 0 {
		fmt.Println("No urges logged yet. That's great!")
		return nil
	}

	// Stored order is insertion order; show newest first.
	shown := 0
	for i := len(urges) - 1; i >= 0 && shown < c.Limit; i-- {
		u := urges[i]
		fmt.Printf("%s  level %2d  %s\n", u.Timestamp.Format("Jan _2 15:04"), u.Intensity, u.Trigger)
		if u.Notes != "" {
			fmt.Printf("    %s\n", u.Notes)
		}
		shown++
	}
	return nil
}
