package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAcquireRunLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")

	release, err := acquireRunLock(path)
	if err != nil {
		t.Fatalf("acquireRunLock: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("lock file not created: %v", err)
	}

	if _, err := acquireRunLock(path); err == nil {
		t.Fatal("second acquire should fail while the lock is held")
	}

	release()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("release should remove the lock file")
	}

	release2, err := acquireRunLock(path)
	if err != nil {
		t.Fatalf("reacquire after release: %v", err)
	}
	release2()
}

func TestAcquireRunLockTakesOverStaleLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")

	if err := os.WriteFile(path, []byte("1234\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}

	release, err := acquireRunLock(path)
	if err != nil {
		t.Fatalf("acquireRunLock should take over a stale lock: %v", err)
	}
	defer release()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if time.Since(info.ModTime()) > time.Minute {
		t.Error("stale lock should have been replaced with a fresh one")
	}
}

func TestAcquireRunLockRespectsFreshLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")

	if err := os.WriteFile(path, []byte("1234\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := acquireRunLock(path); err == nil {
		t.Fatal("a recent lock from another process must be respected")
	}
}
