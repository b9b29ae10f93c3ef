// Package session records a running TUI in a lockfile beside the data file
// so that restores and a second TUI do not overwrite data it holds in memory.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid

	// ErrRunning is returned when another live session holds the lock
	ErrRunning = errors.New("another habitlog session is running")
)

const lockfileName = constants.AppName + "-tui.lock"

// LockPath returns the lockfile used for the data file at dataPath.
func LockPath(dataPath string) string {
	return filepath.Join(filepath.Dir(dataPath), lockfileName)
}

// Acquire writes this process's PID into the lockfile and returns a func
// that removes it. Stale lockfiles left by dead processes are replaced.
func Acquire(dataPath string) (func(), error) {
	lockPath := LockPath(dataPath)
	if pid, ok := Running(dataPath); ok {
		return nil, fmt.Errorf("%w (pid %d)", ErrRunning, pid)
	}

	if err := os.MkdirAll(filepath.Dir(lockPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	pid := getpidFunc()
	if err := os.WriteFile(lockPath, []byte(strconv.Itoa(pid)), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}

	return func() {
		if owner, err := readPID(lockPath); err == nil && owner == pid {
			if err := os.Remove(lockPath); err != nil {
				logger.Warn("Failed to remove lockfile", "path", lockPath, "error", err)
			}
		}
	}, nil
}

// Running reports the PID of a live session holding the lock for dataPath.
// The current process never counts as another session.
func Running(dataPath string) (int, bool) {
	lockPath := LockPath(dataPath)
	pid, err := readPID(lockPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Debug("Ignoring unreadable lockfile", "path", lockPath, "error", err)
		}
		return 0, false
	}
	if pid == getpidFunc() {
		return 0, false
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		logger.Debug("Ignoring stale lockfile", "path", lockPath, "pid", pid)
		return 0, false
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		logger.Debug("Lockfile PID belongs to another program", "pid", pid, "executable", process.Executable())
		return 0, false
	}
	return pid, true
}

func readPID(lockPath string) (int, error) {
	content, err := os.ReadFile(lockPath)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return 0, fmt.Errorf("invalid process ID in lockfile: %w", err)
	}
	return pid, nil
}
