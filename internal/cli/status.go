package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jstrand/ashline/internal/metrics"
	"github.com/jstrand/ashline/internal/tracker"
)

type StatusCmd struct {
	NoQuote bool `help:"Skip fetching the daily quote."`
}

var (
	statCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			MarginRight(1)

	statLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statValueStyle = lipgloss.NewStyle().
			Bold(true)

	quoteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("250")).
			MarginBottom(1)
)

func (c *StatusCmd) Run(ctx *Context) error {
	if err := openTracker(ctx); err != nil {
		return err
	}

	p := ctx.Tracker.Profile()
	if p == nil {
		return tracker.ErrNoProfile
	}

	now := ctx.Tracker.Now()
	days := metrics.DaysSober(p.StartedAt, now)
	hours := metrics.HoursSoberRemainder(p.StartedAt, now)
	saved := metrics.MoneySaved(p, now)
	urges := ctx.Tracker.UrgeLog()

	fmt.Printf("Welcome back, %s\n\n", p.Name)

	if !c.NoQuote {
		genCtx, cancel := genContext()
		quote := ctx.Assistant.DailyQuote(genCtx, p.Addiction)
		cancel()
		fmt.Println(quoteStyle.Render("\"" + quote + "\""))
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Clean Streak", fmt.Sprintf("%d days", days), fmt.Sprintf("%d hours", hours)),
		statCard("Money Saved", formatMoney(saved), "estimated"),
		statCard("Urges Resisted", fmt.Sprintf("%d", metrics.UrgesResisted(urges)), "you are stronger"),
	)
	fmt.Println(cards)

	fmt.Println("Urges this week:")
	for _, bucket := range metrics.WeeklyUrgeHistogram(urges, now) {
		bar := strings.Repeat("▇", bucket.Count)
		if bucket.Count == 0 {
			bar = "·"
		}
		fmt.Printf("  %s  %s %d\n", bucket.Weekday.String()[:3], bar, bucket.Count)
	}

	if status, ok := metrics.GoalProgress(p, now); ok {
		fmt.Println()
		fmt.Printf("Savings goal %q: %s of %s (%.0f%%)\n",
			status.Name, formatMoney(status.MoneySaved), formatMoney(status.TargetCost), status.Percent)
		switch {
		case status.Reached:
			fmt.Println("  Goal reached. Treat yourself.")
		case status.HasEstimate:
			fmt.Printf("  About %d days to go.\n", status.DaysRemaining)
		}
	}

	return nil
}

func statCard(label, value, sub string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		statLabelStyle.Render(label),
		statValueStyle.Render(value),
		statLabelStyle.Render(sub),
	)
	return statCardStyle.Render(content)
}
