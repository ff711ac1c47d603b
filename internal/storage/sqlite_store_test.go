package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jstrand/ashline/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "ashline.db"))
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_FirstRun(t *testing.T) {
	store := newTestSQLiteStore(t)

	snap, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snap.Profile != nil || len(snap.UrgeLog) != 0 || len(snap.Journal) != 0 {
		t.Errorf("expected empty snapshot on first run, got %+v", snap)
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	if _, err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	profile := testProfile()
	urges := testUrges()
	journal := testJournal()

	if err := store.SaveProfile(profile); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if err := store.SaveUrgeLog(urges); err != nil {
		t.Fatalf("SaveUrgeLog failed: %v", err)
	}
	if err := store.SaveJournal(journal); err != nil {
		t.Fatalf("SaveJournal failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reload := NewSQLiteStore(store.ConfigPath())
	defer reload.Close()
	snap, err := reload.Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	if snap.Profile == nil {
		t.Fatal("profile did not round-trip")
	}
	if snap.Profile.Name != profile.Name || snap.Profile.Age != profile.Age {
		t.Errorf("profile mismatch: got %+v", snap.Profile)
	}
	if !snap.Profile.StartedAt.Equal(profile.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", snap.Profile.StartedAt, profile.StartedAt)
	}
	if snap.Profile.Goal == nil || snap.Profile.Goal.Name != "Guitar" {
		t.Errorf("goal mismatch: got %+v", snap.Profile.Goal)
	}

	if len(snap.UrgeLog) != len(urges) {
		t.Fatalf("urge log length = %d, want %d", len(snap.UrgeLog), len(urges))
	}
	for i := range urges {
		if snap.UrgeLog[i].ID != urges[i].ID {
			t.Errorf("insertion order lost at %d: got %s, want %s", i, snap.UrgeLog[i].ID, urges[i].ID)
		}
		if !snap.UrgeLog[i].Timestamp.Equal(urges[i].Timestamp) {
			t.Errorf("timestamp mismatch at %d: got %v, want %v", i, snap.UrgeLog[i].Timestamp, urges[i].Timestamp)
		}
	}

	if len(snap.Journal) != 1 {
		t.Fatalf("journal length = %d, want 1", len(snap.Journal))
	}
	got := snap.Journal[0]
	if got.Content != journal[0].Content || got.Mood != journal[0].Mood {
		t.Errorf("journal mismatch: got %+v", got)
	}
	if got.Tags == nil {
		t.Error("tags should round-trip as an empty slice, not nil")
	}
}

func TestSQLiteStore_ProfileUpsert(t *testing.T) {
	store := newTestSQLiteStore(t)
	if _, err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	p := testProfile()
	if err := store.SaveProfile(p); err != nil {
		t.Fatalf("first SaveProfile failed: %v", err)
	}

	p.DailyCost = 20
	p.Goal = nil
	if err := store.SaveProfile(p); err != nil {
		t.Fatalf("second SaveProfile failed: %v", err)
	}

	snap, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snap.Profile == nil {
		t.Fatal("profile missing after upsert")
	}
	if snap.Profile.DailyCost != 20 {
		t.Errorf("DailyCost = %v, want 20", snap.Profile.DailyCost)
	}
	if snap.Profile.Goal != nil {
		t.Errorf("goal should have been cleared, got %+v", snap.Profile.Goal)
	}
}

func TestSQLiteStore_SaveReplacesLog(t *testing.T) {
	store := newTestSQLiteStore(t)
	if _, err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	urges := testUrges()
	if err := store.SaveUrgeLog(urges); err != nil {
		t.Fatalf("SaveUrgeLog failed: %v", err)
	}

	extra := models.UrgeEvent{
		ID:        "u3",
		Timestamp: time.Date(2024, 2, 2, 10, 0, 0, 0, time.UTC),
		Intensity: 5,
		Trigger:   "stress",
	}
	if err := store.SaveUrgeLog(append(urges, extra)); err != nil {
		t.Fatalf("SaveUrgeLog failed: %v", err)
	}

	snap, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.UrgeLog) != 3 {
		t.Fatalf("urge log length = %d, want 3", len(snap.UrgeLog))
	}
	if snap.UrgeLog[2].ID != "u3" {
		t.Errorf("newest entry should be last, got %s", snap.UrgeLog[2].ID)
	}
}

func TestSQLiteStore_ClearAll(t *testing.T) {
	store := newTestSQLiteStore(t)
	if _, err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := store.SaveProfile(testProfile()); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if err := store.SaveUrgeLog(testUrges()); err != nil {
		t.Fatalf("SaveUrgeLog failed: %v", err)
	}
	if err := store.SaveJournal(testJournal()); err != nil {
		t.Fatalf("SaveJournal failed: %v", err)
	}

	if err := store.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	snap, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snap.Profile != nil || len(snap.UrgeLog) != 0 || len(snap.Journal) != 0 {
		t.Errorf("state survived ClearAll: %+v", snap)
	}
}

func TestSQLiteStore_Init(t *testing.T) {
	store := newTestSQLiteStore(t)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Init(); err == nil {
		t.Error("second Init should report already initialized")
	}
}
