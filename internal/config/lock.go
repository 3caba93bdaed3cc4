package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/footprint-tools/brig/internal/log"
)

const (
	lockSuffix       = ".lock"
	lockTimeout      = 5 * time.Second
	staleLockTimeout = 30 * time.Second
	lockPollInterval = 50 * time.Millisecond
)

var (
	// ErrLockTimeout is returned when we cannot acquire the lock within the timeout period.
	ErrLockTimeout = errors.New("config: lock timeout")
)

// WithLock runs fn while holding a lock file next to path. Concurrent
// shells editing the same config serialize their read-modify-write cycles.
func WithLock(path string, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	lockPath := path + lockSuffix

	lockFile, err := acquireLock(lockPath)
	if err != nil {
		return err
	}
	defer releaseLock(lockFile, lockPath)

	return fn()
}

// acquireLock polls for an exclusive lock until lockTimeout.
func acquireLock(lockPath string) (*os.File, error) {
	deadline := time.Now().Add(lockTimeout)

	for {
		if info, err := os.Stat(lockPath); err == nil {
			if time.Since(info.ModTime()) > staleLockTimeout {
				log.Warn("config: removing stale lock %s", lockPath)
				_ = os.Remove(lockPath)
			}
		}

		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			// PID helps when debugging a stuck lock by hand.
			_, _ = f.WriteString(strconv.Itoa(os.Getpid()))
			return f, nil
		}

		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}

		time.Sleep(lockPollInterval)
	}
}

// releaseLock releases the file lock.
func releaseLock(f *os.File, lockPath string) {
	if f != nil {
		_ = f.Close()
	}
	_ = os.Remove(lockPath)
}
