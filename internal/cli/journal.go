package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/jstrand/ashline/internal/models"
)

type JournalAddCmd struct {
	Content string `arg:"" optional:"" help:"What you want to write."`
	Mood    string `short:"m" help:"Mood (great|good|neutral|bad|terrible)." default:"neutral"`
	Prompt  bool   `short:"p" help:"Fetch a reflection prompt to write against."`
}

func (c *JournalAddCmd) Run(ctx *Context) error {
	if err := openTracker(ctx); err != nil {
		return err
	}

	mood, err := models.ParseMood(c.Mood)
	if err != nil {
		return err
	}

	title := ""
	if c.Prompt {
		genCtx, cancel := genContext()
		title = ctx.Assistant.JournalPrompt(genCtx, mood)
		cancel()
		fmt.Printf("Prompt: %s\n\n", title)
	}

	if c.Content == "" {
		formTitle := "What is on your mind today?"
		if title != "" {
			formTitle = title
		}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[models.Mood]().
					Title("How are you feeling?").
					Options(huh.NewOptions(models.Moods()...)...).
					Value(&mood),
				huh.NewText().
					Title(formTitle).
					Value(&c.Content).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("write something first")
						}
						return nil
					}),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	e, err := ctx.Tracker.AddJournalEntry(mood, title, c.Content)
	if err = reportSave(err); err != nil {
		return err
	}

	fmt.Printf("Journal entry saved (%s, feeling %s).\n", e.Date.Format("Jan _2 15:04"), e.Mood)
	return nil
}

type JournalListCmd struct {
	Limit int `short:"l" help:"Maximum entries to show." default:"10"`
}

func (c *JournalListCmd) Run(ctx *Context) error {
	if err := openTracker(ctx); err != nil {
		return err
	}

	entries := ctx.Tracker.Journal()
	if len(entries) == 0 {
		fmt.Println("No journal entries yet.")
		return nil
	}

	shown := 0
	for i := len(entries) - 1; i >= 0 && shown < c.Limit; i-- {
		e := entries[i]
		fmt.Printf("%s  [%s]\n", e.Date.Format("Jan _2 2006 15:04"), e.Mood)
		if e.Title != "" {
			fmt.Printf("  Prompt: %s\n", e.Title)
		}
		fmt.Printf("  %s\n\n", e.Content)
		shown++
	}
	return nil
}
