package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jstrand/ashline/internal/backup"
	"github.com/jstrand/ashline/internal/models"
)

// storeFile is the on-disk shape: three raw slots decoded independently so
// one corrupt slot cannot take the others down with it.
type storeFile struct {
	Version int             `json:"version"`
	Profile json.RawMessage `json:"profile,omitempty"`
	UrgeLog json.RawMessage `json:"urge_log,omitempty"`
	Journal json.RawMessage `json:"journal,omitempty"`
}

type JSONStore struct {
	path     string
	file     *storeFile
	backups  *backup.Manager
	warnings []string
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path:    configPath,
		backups: backup.NewManager(configPath),
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("%w at %s", ErrAlreadyInitialized, s.path)
	}

	s.file = &storeFile{Version: 1}
	return s.save()
}

// Load reads the store file once. A missing file is a first run. An
// unparseable file or slot is quarantined and degrades to empty; the app
// must stay usable.
func (s *JSONStore) Load() (Snapshot, error) {
	s.file = &storeFile{Version: 1}
	s.warnings = nil

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, nil
		}
		return Snapshot{}, fmt.Errorf("failed to read storage: %w", err)
	}

	if err := json.Unmarshal(data, s.file); err != nil {
		s.quarantine("store", data, err)
		s.file = &storeFile{Version: 1}
		return Snapshot{}, nil
	}

	var snap Snapshot

	if len(s.file.Profile) > 0 {
		var p models.Profile
		if err := json.Unmarshal(s.file.Profile, &p); err != nil {
			s.quarantine(SlotProfile, s.file.Profile, err)
			s.file.Profile = nil
		} else {
			snap.Profile = &p
		}
	}

	if len(s.file.UrgeLog) > 0 {
		var urges []models.UrgeEvent
		if err := json.Unmarshal(s.file.UrgeLog, &urges); err != nil {
			s.quarantine(SlotUrgeLog, s.file.UrgeLog, err)
			s.file.UrgeLog = nil
		} else {
			snap.UrgeLog = urges
		}
	}

	if len(s.file.Journal) > 0 {
		var entries []models.JournalEntry
		if err := json.Unmarshal(s.file.Journal, &entries); err != nil {
			s.quarantine(SlotJournal, s.file.Journal, err)
			s.file.Journal = nil
		} else {
			snap.Journal = entries
		}
	}

	return snap, nil
}

func (s *JSONStore) Close() error {
	return nil
}

// quarantine sets a corrupt payload aside and records a user-visible
// warning. Degrading to empty is the accepted tradeoff; losing the bytes
// silently is not.
func (s *JSONStore) quarantine(slot string, payload []byte, cause error) {
	path, qErr := s.backups.Quarantine(slot, payload)
	if qErr != nil {
		s.warnings = append(s.warnings,
			fmt.Sprintf("%s slot is corrupt (%v) and could not be quarantined: %v", slot, cause, qErr))
		return
	}
	s.warnings = append(s.warnings,
		fmt.Sprintf("%s slot was corrupt (%v); original payload kept at %s", slot, cause, path))
}

func (s *JSONStore) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) SaveProfile(p *models.Profile) error {
	if s.file == nil {
		return &SaveError{Slot: SlotProfile, Err: fmt.Errorf("storage not loaded")}
	}

	if p == nil {
		s.file.Profile = nil
	} else {
		data, err := json.Marshal(p)
		if err != nil {
			return &SaveError{Slot: SlotProfile, Err: err}
		}
		s.file.Profile = data
	}

	if err := s.save(); err != nil {
		return &SaveError{Slot: SlotProfile, Err: err}
	}
	return nil
}

// SaveUrgeLog refuses to write before Load: seeding an empty document
// here would clobber the other slots on disk.
func (s *JSONStore) SaveUrgeLog(urges []models.UrgeEvent) error {
	if s.file == nil {
		return &SaveError{Slot: SlotUrgeLog, Err: fmt.Errorf("storage not loaded")}
	}

	data, err := json.Marshal(urges)
	if err != nil {
		return &SaveError{Slot: SlotUrgeLog, Err: err}
	}
	s.file.UrgeLog = data

	if err := s.save(); err != nil {
		return &SaveError{Slot: SlotUrgeLog, Err: err}
	}
	return nil
}

func (s *JSONStore) SaveJournal(entries []models.JournalEntry) error {
	if s.file == nil {
		return &SaveError{Slot: SlotJournal, Err: fmt.Errorf("storage not loaded")}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return &SaveError{Slot: SlotJournal, Err: err}
	}
	s.file.Journal = data

	if err := s.save(); err != nil {
		return &SaveError{Slot: SlotJournal, Err: err}
	}
	return nil
}

// ClearAll rewrites the store as a single empty document, so all three
// slots vanish together.
func (s *JSONStore) ClearAll() error {
	s.file = &storeFile{Version: 1}
	if err := s.save(); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Warnings() []string {
	return s.warnings
}

func (s *JSONStore) ConfigPath() string {
	return s.path
}
