package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

type ResetCmd struct {
	Force bool `short:"f" help:"Skip the confirmation prompt."`
}

// Run wipes profile, urge log, and journal together. A store snapshot is
// taken first so the wipe is recoverable by hand from the backups dir.
func (c *ResetCmd) Run(ctx *Context) error {
	if err := openTracker(ctx); err != nil {
		return err
	}

	if !c.Force {
		var confirmed bool
		err := huh.NewConfirm().
			Title("Delete your profile and all logged data?").
			Description("This cannot be undone from inside the app.").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := ctx.Tracker.ResetAll(); err != nil {
		return err
	}

	fmt.Println("All data erased. Run 'ashline init' to start over.")
	return nil
}
