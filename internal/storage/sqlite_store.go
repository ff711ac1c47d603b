package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jstrand/ashline/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS profile (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	name TEXT NOT NULL,
	age INTEGER NOT NULL,
	addiction TEXT NOT NULL,
	started_at TEXT NOT NULL,
	weekly_frequency INTEGER NOT NULL DEFAULT 0,
	reminder_time TEXT NOT NULL DEFAULT '',
	quit_reason TEXT NOT NULL DEFAULT '',
	strategy TEXT NOT NULL DEFAULT '',
	daily_cost REAL NOT NULL DEFAULT 0,
	goal_name TEXT,
	goal_target_cost REAL
);

CREATE TABLE IF NOT EXISTS urge_events (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	timestamp TEXT NOT NULL,
	"trigger" TEXT NOT NULL,
	intensity INTEGER NOT NULL,
	notes TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS journal_entries (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	date TEXT NOT NULL,
	mood TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL,
	tags TEXT NOT NULL DEFAULT '[]'
);
`

// SQLiteStore keeps the three slots as tables. The seq columns preserve
// insertion order, which is the canonical log order.
type SQLiteStore struct {
	path     string
	db       *sql.DB
	warnings []string
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("%w at %s", ErrAlreadyInitialized, s.path)
	}

	if err := s.open(); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Load() (Snapshot, error) {
	s.warnings = nil

	if s.db == nil {
		if _, err := os.Stat(s.path); os.IsNotExist(err) {
			// First run: open lazily so the empty schema exists for saves.
			if err := s.open(); err != nil {
				return Snapshot{}, err
			}
			return Snapshot{}, nil
		}
		if err := s.open(); err != nil {
			return Snapshot{}, err
		}
	}

	var snap Snapshot

	p, err := s.loadProfile()
	if err != nil {
		s.warnings = append(s.warnings, fmt.Sprintf("profile slot unreadable, starting empty: %v", err))
	} else {
		snap.Profile = p
	}

	urges, err := s.loadUrges()
	if err != nil {
		s.warnings = append(s.warnings, fmt.Sprintf("urge log unreadable, starting empty: %v", err))
	} else {
		snap.UrgeLog = urges
	}

	journal, err := s.loadJournal()
	if err != nil {
		s.warnings = append(s.warnings, fmt.Sprintf("journal unreadable, starting empty: %v", err))
	} else {
		snap.Journal = journal
	}

	return snap, nil
}

func (s *SQLiteStore) loadProfile() (*models.Profile, error) {
	row := s.db.QueryRow(`SELECT name, age, addiction, started_at, weekly_frequency,
		reminder_time, quit_reason, strategy, daily_cost, goal_name, goal_target_cost
		FROM profile WHERE id = 1`)

	var p models.Profile
	var startedAt string
	var goalName sql.NullString
	var goalCost sql.NullFloat64

	err := row.Scan(&p.Name, &p.Age, &p.Addiction, &startedAt, &p.WeeklyFrequency,
		&p.ReminderTime, &p.QuitReason, &p.Strategy, &p.DailyCost, &goalName, &goalCost)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return nil, fmt.Errorf("bad started_at %q: %w", startedAt, err)
	}
	if goalName.Valid && goalCost.Valid {
		p.Goal = &models.SavingsGoal{Name: goalName.String, TargetCost: goalCost.Float64}
	}
	return &p, nil
}

func (s *SQLiteStore) loadUrges() ([]models.UrgeEvent, error) {
	rows, err := s.db.Query(`SELECT id, timestamp, "trigger", intensity, notes
		FROM urge_events ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urges []models.UrgeEvent
	for rows.Next() {
		var u models.UrgeEvent
		var ts string
		if err := rows.Scan(&u.ID, &ts, &u.Trigger, &u.Intensity, &u.Notes); err != nil {
			return nil, err
		}
		if u.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("bad timestamp %q: %w", ts, err)
		}
		urges = append(urges, u)
	}
	return urges, rows.Err()
}

func (s *SQLiteStore) loadJournal() ([]models.JournalEntry, error) {
	rows, err := s.db.Query(`SELECT id, date, mood, title, content, tags
		FROM journal_entries ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		var date, tags string
		if err := rows.Scan(&e.ID, &date, &e.Mood, &e.Title, &e.Content, &tags); err != nil {
			return nil, err
		}
		if e.Date, err = time.Parse(time.RFC3339Nano, date); err != nil {
			return nil, fmt.Errorf("bad date %q: %w", date, err)
		}
		if err := json.Unmarshal([]byte(tags), &e.Tags); err != nil {
			e.Tags = []string{}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) SaveProfile(p *models.Profile) error {
	if s.db == nil {
		return &SaveError{Slot: SlotProfile, Err: fmt.Errorf("storage not loaded")}
	}

	if p == nil {
		if _, err := s.db.Exec(`DELETE FROM profile`); err != nil {
			return &SaveError{Slot: SlotProfile, Err: err}
		}
		return nil
	}

	var goalName, goalCost any
	if p.Goal != nil {
		goalName = p.Goal.Name
		goalCost = p.Goal.TargetCost
	}

	_, err := s.db.Exec(`INSERT INTO profile (id, name, age, addiction, started_at,
		weekly_frequency, reminder_time, quit_reason, strategy, daily_cost, goal_name, goal_target_cost)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, age = excluded.age, addiction = excluded.addiction,
			started_at = excluded.started_at, weekly_frequency = excluded.weekly_frequency,
			reminder_time = excluded.reminder_time, quit_reason = excluded.quit_reason,
			strategy = excluded.strategy, daily_cost = excluded.daily_cost,
			goal_name = excluded.goal_name, goal_target_cost = excluded.goal_target_cost`,
		p.Name, p.Age, string(p.Addiction), p.StartedAt.Format(time.RFC3339Nano),
		p.WeeklyFrequency, p.ReminderTime, p.QuitReason, string(p.Strategy),
		p.DailyCost, goalName, goalCost)
	if err != nil {
		return &SaveError{Slot: SlotProfile, Err: err}
	}
	return nil
}

// SaveUrgeLog overwrites the whole slot: delete then insert in one tx, so
// a failed write never leaves a partially replaced log.
func (s *SQLiteStore) SaveUrgeLog(urges []models.UrgeEvent) error {
	if s.db == nil {
		return &SaveError{Slot: SlotUrgeLog, Err: fmt.Errorf("storage not loaded")}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &SaveError{Slot: SlotUrgeLog, Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM urge_events`); err != nil {
		return &SaveError{Slot: SlotUrgeLog, Err: err}
	}
	for _, u := range urges {
		_, err := tx.Exec(`INSERT INTO urge_events (id, timestamp, "trigger", intensity, notes)
			VALUES (?, ?, ?, ?, ?)`,
			u.ID, u.Timestamp.Format(time.RFC3339Nano), u.Trigger, u.Intensity, u.Notes)
		if err != nil {
			return &SaveError{Slot: SlotUrgeLog, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &SaveError{Slot: SlotUrgeLog, Err: err}
	}
	return nil
}

func (s *SQLiteStore) SaveJournal(entries []models.JournalEntry) error {
	if s.db == nil {
		return &SaveError{Slot: SlotJournal, Err: fmt.Errorf("storage not loaded")}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &SaveError{Slot: SlotJournal, Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM journal_entries`); err != nil {
		return &SaveError{Slot: SlotJournal, Err: err}
	}
	for _, e := range entries {
		tags, err := json.Marshal(e.Tags)
		if err != nil {
			tags = []byte("[]")
		}
		_, err = tx.Exec(`INSERT INTO journal_entries (id, date, mood, title, content, tags)
			VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, e.Date.Format(time.RFC3339Nano), string(e.Mood), e.Title, e.Content, string(tags))
		if err != nil {
			return &SaveError{Slot: SlotJournal, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &SaveError{Slot: SlotJournal, Err: err}
	}
	return nil
}

// ClearAll empties all three tables in a single transaction.
func (s *SQLiteStore) ClearAll() error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM profile`,
		`DELETE FROM urge_events`,
		`DELETE FROM journal_entries`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to clear storage: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Warnings() []string {
	return s.warnings
}

func (s *SQLiteStore) ConfigPath() string {
	return s.path
}
