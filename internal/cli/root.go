package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jstrand/ashline/internal/assistant"
	"github.com/jstrand/ashline/internal/logger"
	"github.com/jstrand/ashline/internal/storage"
	"github.com/jstrand/ashline/internal/tracker"
)

// Context is threaded through every kong command.
type Context struct {
	Store     storage.Provider
	Tracker   *tracker.Tracker
	Assistant *assistant.Client
}

// genTimeout bounds every single-shot generation call; the UI never waits
// longer than this on the backend.
const genTimeout = 15 * time.Second

func genContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), genTimeout)
}

// openTracker loads persisted state and surfaces any load-time
// degradation (quarantined slots) without failing the command.
func openTracker(ctx *Context) error {
	if err := ctx.Tracker.Open(); err != nil {
		return err
	}
	for _, w := range ctx.Tracker.Warnings() {
		logger.Warn("storage degraded on load", "detail", w)
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	return nil
}

// reportSave splits a best-effort persistence failure from a real error.
// The mutation already applied in memory, so the command proceeds with a
// warning instead of failing.
func reportSave(err error) error {
	if err == nil {
		return nil
	}
	var saveErr *storage.SaveError
	if errors.As(err, &saveErr) {
		logger.Error("durable write failed", "slot", saveErr.Slot, "error", saveErr.Err)
		fmt.Fprintf(os.Stderr, "Warning: %v (changes kept for this session only)\n", saveErr)
		return nil
	}
	return err
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
