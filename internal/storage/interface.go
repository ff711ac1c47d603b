package storage

import (
	"errors"

	"github.com/jstrand/ashline/internal/models"
)

// ErrAlreadyInitialized is returned by Init when the store file exists.
// Callers that only need the file to exist may ignore it.
var ErrAlreadyInitialized = errors.New("storage already initialized")

// Snapshot is the full persisted state: one optional profile plus two
// append-only logs in insertion order.
type Snapshot struct {
	Profile *models.Profile
	UrgeLog []models.UrgeEvent
	Journal []models.JournalEntry
}

// Slot names for the three independently persisted regions of the store.
const (
	SlotProfile = "profile"
	SlotUrgeLog = "urge_log"
	SlotJournal = "journal"
)

// Provider persists the three slots. Each Save overwrites its slot
// completely; Load degrades unreadable slots to empty rather than failing.
//
// Concurrency note:
//   - A Provider is not safe for concurrent use by multiple goroutines
//     without external synchronization.
//   - Running multiple ashline processes against the same store path is
//     unsupported: last save wins, no merge, no detection.
type Provider interface {
	// Lifecycle
	Init() error
	Load() (Snapshot, error)
	Close() error

	// Slots
	SaveProfile(*models.Profile) error
	SaveUrgeLog([]models.UrgeEvent) error
	SaveJournal([]models.JournalEntry) error

	// ClearAll erases all three slots in one step. Immediately after it
	// returns, Load observes a first-run state.
	ClearAll() error

	// Utils
	Warnings() []string
	ConfigPath() string
}

// SaveError wraps a failed durable write. Mutations that hit one still
// apply in memory; the session carries on without persistence.
type SaveError struct {
	Slot string
	Err  error
}

func (e *SaveError) Error() string {
	return "failed to persist " + e.Slot + ": " + e.Err.Error()
}

func (e *SaveError) Unwrap() error {
	return e.Err
}
