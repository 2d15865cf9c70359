package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// staleLockAge is how old a leftover lock file must be before a new run
// assumes its owner died and takes the lock over.
const staleLockAge = time.Hour

// acquireRunLock serializes pipeline runs through an exclusive lock file,
// so two overlapping invocations cannot race on the history file's
// read-modify-write cycle. The returned release function removes the
// lock.
func acquireRunLock(path string) (func(), error) {
	if err := tryLock(path); err != nil {
		if !os.IsExist(err) {
			return nil, err
		}

		info, statErr := os.Stat(path)
		if statErr != nil || time.Since(info.ModTime()) < staleLockAge {
			return nil, fmt.Errorf("another run holds the lock at %s", path)
		}

		slog.Warn("taking over stale run lock", "path", path, "age", time.Since(info.ModTime()))
		os.Remove(path)
		if err := tryLock(path); err != nil {
			return nil, fmt.Errorf("reacquiring stale lock: %w", err)
		}
	}

	return func() {
		if err := os.Remove(path); err != nil {
			slog.Warn("failed to remove run lock", "path", path, "error", err)
		}
	}, nil
}

func tryLock(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	fmt.Fprintln(f, strconv.Itoa(os.Getpid()))
	return f.Close()
}
