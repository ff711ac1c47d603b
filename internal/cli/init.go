package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/jstrand/ashline/internal/models"
	"github.com/jstrand/ashline/internal/storage"
	"github.com/jstrand/ashline/internal/tracker"
)

type InitCmd struct {
	Name      string  `help:"Skip the wizard: your name (requires --age and --addiction)."`
	Age       int     `help:"Skip the wizard: your age."`
	Addiction string  `help:"Skip the wizard: what you are quitting."`
	Cost      float64 `help:"Daily cost of the habit." default:"0"`
	Reason    string  `help:"Why you are quitting."`
	Strategy  string  `help:"Quit strategy (cold turkey|gradual|replacement therapy)."`
}

// Validate enforces all-or-none on the skip-wizard fields so a partial
// set fails at parse time instead of halfway through onboarding.
func (c *InitCmd) Validate() error {
	skipping := c.Name != "" || c.Age != 0 || c.Addiction != ""
	if skipping && (c.Name == "" || c.Age == 0 || c.Addiction == "") {
		return fmt.Errorf("to skip the wizard, provide --name, --age, and --addiction together")
	}
	return nil
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil && !errors.Is(err, storage.ErrAlreadyInitialized) {
		return err
	}
	if err := openTracker(ctx); err != nil {
		return err
	}

	draft := tracker.ProfileDraft{
		Name:       c.Name,
		Age:        c.Age,
		QuitReason: c.Reason,
		DailyCost:  c.Cost,
	}
	if c.Addiction != "" {
		a, err := models.ParseAddiction(c.Addiction)
		if err != nil {
			return err
		}
		draft.Addiction = a
	}
	if c.Strategy != "" {
		q, err := models.ParseQuitStrategy(c.Strategy)
		if err != nil {
			return err
		}
		draft.Strategy = q
	}

	// No flags means the interactive wizard.
	if draft.Name == "" {
		if err := runOnboarding(&draft); err != nil {
			return err
		}
	}

	p, err := ctx.Tracker.CreateProfile(draft)
	if err = reportSave(err); err != nil {
		return err
	}

	fmt.Printf("Welcome, %s. Your journey away from %s starts now.\n", p.Name, p.Addiction)
	fmt.Printf("Store: %s\n", ctx.Store.ConfigPath())
	return nil
}

// runOnboarding walks the three-step wizard and fills the draft. Nothing
// is persisted until every answer validates.
func runOnboarding(draft *tracker.ProfileDraft) error {
	var (
		ageStr  = "18"
		costStr = "0"
		freqStr = "0"
	)
	draft.Addiction = models.AddictionCigarettes
	draft.Strategy = models.StrategyColdTurkey

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What should we call you?").
				Value(&draft.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("How old are you?").
				Value(&ageStr).
				Validate(validatePositiveInt),
		),
		huh.NewGroup(
			huh.NewSelect[models.Addiction]().
				Title("What do you want to quit?").
				Options(huh.NewOptions(models.Addictions()...)...).
				Value(&draft.Addiction),
			huh.NewInput().
				Title("How many times per week?").
				Value(&freqStr).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("What does it cost you per day?").
				Description("Drives the money-saved stat. Leave 0 for a default estimate.").
				Value(&costStr).
				Validate(validateNonNegativeFloat),
		),
		huh.NewGroup(
			huh.NewSelect[models.QuitStrategy]().
				Title("How fast do you want to quit?").
				Options(huh.NewOptions(models.QuitStrategies()...)...).
				Value(&draft.Strategy),
			huh.NewInput().
				Title("Why are you quitting?").
				Placeholder("For my health, family, money...").
				Value(&draft.QuitReason),
			huh.NewInput().
				Title("Daily reminder time (HH:MM)").
				Value(&draft.ReminderTime),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	draft.Age, _ = strconv.Atoi(strings.TrimSpace(ageStr))
	draft.WeeklyFrequency, _ = strconv.Atoi(strings.TrimSpace(freqStr))
	draft.DailyCost, _ = strconv.ParseFloat(strings.TrimSpace(costStr), 64)
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateNonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("enter a number of 0 or more")
	}
	return nil
}

func validateNonNegativeFloat(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter an amount of 0 or more")
	}
	return nil
}
