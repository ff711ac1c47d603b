package cli

import (
	"fmt"

	"github.com/jstrand/ashline/internal/metrics"
	"github.com/jstrand/ashline/internal/tracker"
)

type MilestonesCmd struct{}

func (c *MilestonesCmd) Run(ctx *Context) error {
	if err := openTracker(ctx); err != nil {
		return err
	}

	p := ctx.Tracker.Profile()
	if p == nil {
		return tracker.ErrNoProfile
	}

	days := metrics.DaysSober(p.StartedAt, ctx.Tracker.Now())
	fmt.Printf("Health recovery after %d days clean:\n\n", days)

	for _, m := range metrics.MilestoneProgress(days) {
		marker := " "
		if m.Unlocked {
			marker = "✓"
		}
		fmt.Printf("%s %-16s %5.1f%%  (day %d)\n", marker, m.Title, m.CompletionPercent, m.DayThreshold)
		fmt.Printf("    %s\n", m.Description)
	}
	return nil
}
