// Package tracker is the single mutation path over the persisted state.
// Every operation updates the in-memory snapshot first and then writes the
// touched slot through the store; a failed write is reported but the
// session keeps running on memory ("session-durable, persistence
// best-effort").
package tracker

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jstrand/ashline/internal/backup"
	"github.com/jstrand/ashline/internal/constants"
	"github.com/jstrand/ashline/internal/models"
	"github.com/jstrand/ashline/internal/storage"
)

var (
	// ErrNoProfile is returned by operations that need an onboarded profile.
	ErrNoProfile = errors.New("no profile exists, run 'ashline init' first")
	// ErrProfileExists guards the zero-or-one profile invariant.
	ErrProfileExists = errors.New("a profile already exists")
)

// Tracker owns a storage.Provider and the in-memory state loaded from it.
// Not safe for concurrent use; ashline is single-threaded per command.
type Tracker struct {
	store   storage.Provider
	backups *backup.Manager
	now     func() time.Time

	profile *models.Profile
	urges   []models.UrgeEvent
	journal []models.JournalEntry
}

type Option func(*Tracker)

// WithClock injects the time source. Tests pass fixed instants; production
// uses time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

func New(store storage.Provider, opts ...Option) *Tracker {
	t := &Tracker{
		store:   store,
		backups: backup.NewManager(store.ConfigPath()),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Open loads the persisted snapshot once. Called at process start.
func (t *Tracker) Open() error {
	snap, err := t.store.Load()
	if err != nil {
		return err
	}
	t.profile = snap.Profile
	t.urges = snap.UrgeLog
	t.journal = snap.Journal
	return nil
}

func (t *Tracker) Now() time.Time {
	return t.now()
}

func (t *Tracker) Profile() *models.Profile {
	return t.profile
}

// UrgeLog returns the urge events in insertion order. Newest-first is a
// display decision callers make themselves.
func (t *Tracker) UrgeLog() []models.UrgeEvent {
	return t.urges
}

func (t *Tracker) Journal() []models.JournalEntry {
	return t.journal
}

func (t *Tracker) Warnings() []string {
	return t.store.Warnings()
}

// ProfileDraft carries the onboarding answers. StartedAt stays zero to
// anchor the quit at the moment of creation.
type ProfileDraft struct {
	Name            string
	Age             int
	Addiction       models.Addiction
	StartedAt       time.Time
	WeeklyFrequency int
	ReminderTime    string
	QuitReason      string
	Strategy        models.QuitStrategy
	DailyCost       float64
}

// CreateProfile validates the draft and persists the new singleton
// profile. An invalid draft creates nothing.
func (t *Tracker) CreateProfile(draft ProfileDraft) (*models.Profile, error) {
	if t.profile != nil {
		return nil, ErrProfileExists
	}

	startedAt := draft.StartedAt
	if startedAt.IsZero() {
		startedAt = t.now()
	}

	p, err := models.NewProfile(draft.Name, draft.Age, draft.Addiction, startedAt)
	if err != nil {
		return nil, err
	}

	p.WeeklyFrequency = draft.WeeklyFrequency
	p.QuitReason = draft.QuitReason
	p.ReminderTime = draft.ReminderTime
	if p.ReminderTime == "" {
		p.ReminderTime = constants.DefaultReminderTime
	}
	if draft.Strategy != "" {
		if _, err := models.ParseQuitStrategy(string(draft.Strategy)); err != nil {
			return nil, err
		}
		p.Strategy = draft.Strategy
	}
	p.DailyCost = draft.DailyCost
	if p.DailyCost < 0 {
		return nil, fmt.Errorf("daily cost must not be negative")
	}
	if p.DailyCost == 0 {
		p.DailyCost = constants.DefaultDailyCost
	}

	t.profile = p
	return p, t.store.SaveProfile(p)
}

// LogUrge appends a craving event. The stored list keeps insertion order
// and the whole slot is rewritten.
func (t *Tracker) LogUrge(intensity int, trigger, notes string) (*models.UrgeEvent, error) {
	if t.profile == nil {
		return nil, ErrNoProfile
	}

	u, err := models.NewUrgeEvent(t.now(), intensity, trigger, notes)
	if err != nil {
		return nil, err
	}

	t.urges = append(t.urges, *u)
	return u, t.store.SaveUrgeLog(t.urges)
}

// AddJournalEntry appends a journal entry; title is the prompt the entry
// answers, which is only persisted here.
func (t *Tracker) AddJournalEntry(mood models.Mood, title, content string) (*models.JournalEntry, error) {
	if t.profile == nil {
		return nil, ErrNoProfile
	}

	e, err := models.NewJournalEntry(t.now(), mood, title, content)
	if err != nil {
		return nil, err
	}

	t.journal = append(t.journal, *e)
	return e, t.store.SaveJournal(t.journal)
}

// ProfilePatch enumerates the patchable fields. Nil means "leave alone";
// there is no way to smuggle an unknown field through.
type ProfilePatch struct {
	Name            *string
	Age             *int
	Addiction       *models.Addiction
	StartedAt       *time.Time
	WeeklyFrequency *int
	ReminderTime    *string
	QuitReason      *string
	Strategy        *models.QuitStrategy
	DailyCost       *float64
	Goal            *models.SavingsGoal
}

// PatchProfile merges the set fields into the existing profile. StartedAt
// only moves when the patch explicitly carries it.
func (t *Tracker) PatchProfile(patch ProfilePatch) (*models.Profile, error) {
	if t.profile == nil {
		return nil, ErrNoProfile
	}

	updated := *t.profile

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, fmt.Errorf("profile name is required")
		}
		updated.Name = *patch.Name
	}
	if patch.Age != nil {
		if *patch.Age <= 0 {
			return nil, fmt.Errorf("age must be positive, got %d", *patch.Age)
		}
		updated.Age = *patch.Age
	}
	if patch.Addiction != nil {
		a, err := models.ParseAddiction(string(*patch.Addiction))
		if err != nil {
			return nil, err
		}
		updated.Addiction = a
	}
	if patch.StartedAt != nil {
		updated.StartedAt = *patch.StartedAt
	}
	if patch.WeeklyFrequency != nil {
		if *patch.WeeklyFrequency < 0 {
			return nil, fmt.Errorf("weekly frequency must not be negative")
		}
		updated.WeeklyFrequency = *patch.WeeklyFrequency
	}
	if patch.ReminderTime != nil {
		updated.ReminderTime = *patch.ReminderTime
	}
	if patch.QuitReason != nil {
		updated.QuitReason = *patch.QuitReason
	}
	if patch.Strategy != nil {
		q, err := models.ParseQuitStrategy(string(*patch.Strategy))
		if err != nil {
			return nil, err
		}
		updated.Strategy = q
	}
	if patch.DailyCost != nil {
		if *patch.DailyCost < 0 {
			return nil, fmt.Errorf("daily cost must not be negative")
		}
		updated.DailyCost = *patch.DailyCost
	}
	if patch.Goal != nil {
		if patch.Goal.TargetCost <= 0 {
			return nil, fmt.Errorf("savings goal cost must be positive")
		}
		goal := *patch.Goal
		updated.Goal = &goal
	}

	t.profile = &updated
	return t.profile, t.store.SaveProfile(t.profile)
}

// SetSavingsGoal is a convenience wrapper over PatchProfile.
func (t *Tracker) SetSavingsGoal(name string, targetCost float64) (*models.Profile, error) {
	if targetCost <= 0 {
		return nil, fmt.Errorf("savings goal cost must be positive")
	}
	return t.PatchProfile(ProfilePatch{
		Goal: &models.SavingsGoal{Name: name, TargetCost: targetCost},
	})
}

// ResetAll destroys profile, urge log, and journal together. A snapshot of
// the store file is taken first, best effort, so the wipe is recoverable
// by hand.
func (t *Tracker) ResetAll() error {
	if _, err := t.backups.Snapshot(); err != nil {
		// Nothing to snapshot on a fresh install; anything else is worth
		// mentioning but must not block the reset.
		fmt.Fprintf(os.Stderr, "Warning: no pre-reset backup was taken: %v\n", err)
	}

	if err := t.store.ClearAll(); err != nil {
		return err
	}

	t.profile = nil
	t.urges = nil
	t.journal = nil
	return nil
}
