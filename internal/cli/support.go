package cli

import (
	"fmt"

	"github.com/jstrand/ashline/internal/constants"
	"github.com/jstrand/ashline/internal/models"
	"github.com/jstrand/ashline/internal/tracker"
)

type QuoteCmd struct{}

func (c *QuoteCmd) Run(ctx *Context) error {
	if err := openTracker(ctx); err != nil {
		return err
	}

	p := ctx.Tracker.Profile()
	if p == nil {
		return tracker.ErrNoProfile
	}

	genCtx, cancel := genContext()
	defer cancel()
	fmt.Println(ctx.Assistant.DailyQuote(genCtx, p.Addiction))
	return nil
}

type SuggestCmd struct {
	Intensity int `short:"i" help:"Current craving intensity (1-10)." default:"5"`
}

func (c *SuggestCmd) Validate() error {
	if c.Intensity < 1 || c.Intensity > constants.MaxUrgeIntensity {
		return fmt.Errorf("intensity must be between 1 and %d", constants.MaxUrgeIntensity)
	}
	return nil
}

func (c *SuggestCmd) Run(ctx *Context) error {
	if err := openTracker(ctx); err != nil {
		return err
	}

	p := ctx.Tracker.Profile()
	if p == nil {
		return tracker.ErrNoProfile
	}

	genCtx, cancel := genContext()
	defer cancel()

	fmt.Printf("Alternatives for a level-%d craving:\n", c.Intensity)
	for _, line := range ctx.Assistant.Alternatives(genCtx, p.Addiction, c.Intensity) {
		fmt.Printf("  - %s\n", line)
	}
	return nil
}

type PromptCmd struct {
	Mood string `short:"m" help:"Mood (great|good|neutral|bad|terrible)." default:"neutral"`
}

func (c *PromptCmd) Run(ctx *Context) error {
	mood, err := models.ParseMood(c.Mood)
	if err != nil {
		return err
	}

	genCtx, cancel := genContext()
	defer cancel()
	fmt.Println(ctx.Assistant.JournalPrompt(genCtx, mood))
	return nil
}
