package cli

import (
	"fmt"

	"github.com/jstrand/ashline/internal/metrics"
	"github.com/jstrand/ashline/internal/tracker"
)

type GoalSetCmd struct {
	Name string  `arg:"" help:"What you are saving for."`
	Cost float64 `arg:"" help:"Target cost."`
}

func (c *GoalSetCmd) Run(ctx *Context) error {
	if err := openTracker(ctx); err != nil {
		return err
	}

	p, err := ctx.Tracker.SetSavingsGoal(c.Name, c.Cost)
	if err = reportSave(err); err != nil {
		return err
	}

	fmt.Printf("Savings goal set: %s for %s.\n", p.Goal.Name, formatMoney(p.Goal.TargetCost))
	return nil
}

type GoalShowCmd struct{}

func (c *GoalShowCmd) Run(ctx *Context) error {
	if err := openTracker(ctx); err != nil {
		return err
	}

	p := ctx.Tracker.Profile()
	if p == nil {
		return tracker.ErrNoProfile
	}

	status, ok := metrics.GoalProgress(p, ctx.Tracker.Now())
	if !ok {
		fmt.Println("No savings goal set. Use 'ashline goal set <name> <cost>'.")
		return nil
	}

	fmt.Printf("%s: %s of %s (%.0f%%)\n",
		status.Name, formatMoney(status.MoneySaved), formatMoney(status.TargetCost), status.Percent)
	switch {
	case status.Reached:
		fmt.Println("Goal reached. Treat yourself.")
	case status.HasEstimate:
		fmt.Printf("About %d days to go.\n", status.DaysRemaining)
	}
	return nil
}
