package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jstrand/ashline/internal/tracker"
	"github.com/jstrand/ashline/internal/tui"
)

type ChatCmd struct{}

func (c *ChatCmd) Run(ctx *Context) error {
	if err := openTracker(ctx); err != nil {
		return err
	}

	p := ctx.Tracker.Profile()
	if p == nil {
		return tracker.ErrNoProfile
	}

	model := tui.NewChat(ctx.Assistant, p)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
