package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestManager(t *testing.T, withStore bool) *Manager {
	t.Helper()
	dir := t.TempDir()
	storePath := filepath.Join(dir, "ashline.json")
	if withStore {
		if err := os.WriteFile(storePath, []byte(`{"version": 1}`), 0600); err != nil {
			t.Fatalf("write store file: %v", err)
		}
	}
	return NewManager(storePath)
}

func TestSnapshot(t *testing.T) {
	mgr := newTestManager(t, true)

	path, err := mgr.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(path), BackupFilePrefix) {
		t.Errorf("snapshot name %q missing prefix %q", filepath.Base(path), BackupFilePrefix)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if string(data) != `{"version": 1}` {
		t.Errorf("snapshot content = %q", data)
	}
}

func TestSnapshot_MissingStore(t *testing.T) {
	mgr := newTestManager(t, false)
	if _, err := mgr.Snapshot(); err == nil {
		t.Error("expected error when store file does not exist")
	}
}

func TestSnapshot_UniqueNames(t *testing.T) {
	mgr := newTestManager(t, true)

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		path, err := mgr.Snapshot()
		if err != nil {
			t.Fatalf("Snapshot %d failed: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("duplicate snapshot path %s", path)
		}
		seen[path] = true
	}
}

func TestQuarantine(t *testing.T) {
	mgr := newTestManager(t, false)

	payload := []byte(`{"broken": `)
	path, err := mgr.Quarantine("urge_log", payload)
	if err != nil {
		t.Fatalf("Quarantine failed: %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, QuarantinePrefix+"urge_log-") {
		t.Errorf("quarantine name %q missing slot prefix", name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read quarantine file: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("payload altered: %q", data)
	}
}

func TestList(t *testing.T) {
	mgr := newTestManager(t, true)

	// Empty before the backup dir exists.
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}

	if _, err := mgr.Snapshot(); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	// Quarantined payloads must not show up as snapshots.
	if _, err := mgr.Quarantine("profile", []byte("x")); err != nil {
		t.Fatalf("Quarantine failed: %v", err)
	}

	backups, err = mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(backups))
	}
	if backups[0].Size == 0 {
		t.Error("snapshot reports zero size")
	}
}

func TestRotate(t *testing.T) {
	mgr := newTestManager(t, true)
	if err := mgr.ensureBackupDir(); err != nil {
		t.Fatalf("ensureBackupDir failed: %v", err)
	}

	// Seed more snapshot files than the retention cap.
	for i := 0; i < MaxBackups+5; i++ {
		name := filepath.Join(mgr.BackupDir(), BackupFilePrefix+"20240101-"+string(rune('a'+i))+".json")
		if err := os.WriteFile(name, []byte("x"), 0600); err != nil {
			t.Fatalf("seed backup: %v", err)
		}
	}

	if err := mgr.rotate(); err != nil {
		t.Fatalf("rotate failed: %v", err)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != MaxBackups {
		t.Errorf("after rotate, %d snapshots remain, want %d", len(backups), MaxBackups)
	}
}
