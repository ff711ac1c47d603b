package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/jstrand/ashline/internal/backup"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: store reachable and parseable
	snap, err := ctx.Store.Load()
	if err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
	}

	// Check 2: no degraded slots
	if warnings := ctx.Store.Warnings(); len(warnings) > 0 {
		fmt.Printf("⚠ Slot integrity: WARNING\n")
		for _, w := range warnings {
			fmt.Printf("   %s\n", w)
		}
	} else {
		fmt.Printf("✓ Slot integrity: OK\n")
	}

	// Check 3: profile present
	if snap.Profile == nil {
		fmt.Printf("⚠ Profile: not onboarded yet (run 'ashline init')\n")
	} else {
		fmt.Printf("✓ Profile: OK (%d urges, %d journal entries)\n", len(snap.UrgeLog), len(snap.Journal))
	}

	// Check 4: backups present (warning only)
	backups, err := backup.NewManager(ctx.Store.ConfigPath()).List()
	if err != nil || len(backups) == 0 {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   No snapshots found; one is taken automatically before each reset\n")
	} else {
		fmt.Printf("✓ Backups present: OK (%d)\n", len(backups))
	}

	// Check 5: single writer. Two processes on one store means last save
	// wins with no merge, so flag it loudly.
	if n, err := countSiblingProcesses(); err != nil {
		fmt.Printf("⚠ Single writer: could not inspect processes: %v\n", err)
	} else if n > 0 {
		fmt.Printf("⚠ Single writer: WARNING\n")
		fmt.Printf("   %d other ashline process(es) running; concurrent writes are unsupported\n", n)
	} else {
		fmt.Printf("✓ Single writer: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func countSiblingProcesses() (int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return 0, err
	}

	self := os.Getpid()
	name := filepath.Base(os.Args[0])
	count := 0
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.TrimSuffix(p.Executable(), ".exe") == strings.TrimSuffix(name, ".exe") {
			count++
		}
	}
	return count, nil
}
