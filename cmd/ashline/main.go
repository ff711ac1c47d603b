package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/jstrand/ashline/internal/assistant"
	"github.com/jstrand/ashline/internal/cli"
	"github.com/jstrand/ashline/internal/logger"
	"github.com/jstrand/ashline/internal/storage"
	"github.com/jstrand/ashline/internal/tracker"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path." type:"path" default:"~/.config/ashline/ashline.db"`
	Debug   bool   `help:"Verbose logging to stderr."`

	Init       cli.InitCmd       `cmd:"" help:"Create your quit profile."`
	Status     cli.StatusCmd     `cmd:"" help:"Show your progress dashboard." default:"1"`
	Milestones cli.MilestonesCmd `cmd:"" help:"Show health recovery milestones."`
	Urge       struct {
		Log  cli.UrgeLogCmd  `cmd:"" help:"Log a craving."`
		List cli.UrgeListCmd `cmd:"" help:"Show recent cravings."`
	} `cmd:"" help:"Track urges."`
	Journal struct {
		Add  cli.JournalAddCmd  `cmd:"" help:"Write a journal entry."`
		List cli.JournalListCmd `cmd:"" help:"Show recent journal entries."`
	} `cmd:"" help:"Keep a recovery journal."`
	Goal struct {
		Set  cli.GoalSetCmd  `cmd:"" help:"Set a savings goal."`
		Show cli.GoalShowCmd `cmd:"" help:"Show savings goal progress."`
	} `cmd:"" help:"Manage your savings goal."`
	Profile struct {
		Show cli.ProfileShowCmd `cmd:"" help:"Show your profile."`
		Set  cli.ProfileSetCmd  `cmd:"" help:"Update profile fields."`
	} `cmd:"" help:"Manage your profile."`
	Quote   cli.QuoteCmd   `cmd:"" help:"Get a motivational quote."`
	Suggest cli.SuggestCmd `cmd:"" help:"Get coping alternatives for a craving."`
	Prompt  cli.PromptCmd  `cmd:"" help:"Get a journal reflection prompt."`
	Chat    cli.ChatCmd    `cmd:"" help:"Talk with the support assistant."`
	Backup  struct {
		Create cli.BackupCreateCmd `cmd:"" help:"Snapshot the store file."`
		List   cli.BackupListCmd   `cmd:"" help:"List store snapshots."`
	} `cmd:"" help:"Manage store backups."`
	Reset  cli.ResetCmd  `cmd:"" help:"Erase all data and start over."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("ashline"),
		kong.Description("Reclaim your life, one day at a time."),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	// Store flavor follows the file extension, like the config path itself.
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:     store,
		Tracker:   tracker.New(store),
		Assistant: assistant.New(context.Background(), os.Getenv("GEMINI_API_KEY")),
	}

	err := ctx.Run(appCtx)
	if err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
