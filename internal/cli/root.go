package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/habitlog/internal/backup"
	"github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/stats"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/storage/postgres"
	"github.com/julianstephens/habitlog/internal/tracker"
)

// Context is handed to every command's Run method.
type Context struct {
	Store storage.Provider
	Stats stats.Options
	Now   func() time.Time
	Out   io.Writer
	Err   io.Writer

	tracker *tracker.Tracker
}

// Tracker opens the entry store on first use. Save failures are printed
// as warnings on Err.
func (c *Context) Tracker() (*tracker.Tracker, error) {
	if c.tracker != nil {
		return c.tracker, nil
	}
	t, err := tracker.Open(c.Store,
		tracker.WithClock(c.Clock),
		tracker.WithSaveWarning(c.Warn),
	)
	if err != nil {
		return nil, err
	}
	c.tracker = t
	return t, nil
}

// Close releases the tracker, or the bare store when no tracker was opened.
func (c *Context) Close() error {
	if c.tracker != nil {
		err := c.tracker.Close()
		c.tracker = nil
		return err
	}
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}

// Clock returns the current time.
func (c *Context) Clock() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Context) Stdout() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

func (c *Context) Stderr() io.Writer {
	if c.Err != nil {
		return c.Err
	}
	return os.Stderr
}

// Printf writes to the command's standard output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

// Warn prints a non-fatal problem without interrupting the command.
func (c *Context) Warn(err error) {
	fmt.Fprintln(c.Stderr(), errors.Warning(err))
}

// BackupManager returns a manager for file backed stores, or nil for
// PostgreSQL.
func (c *Context) BackupManager() *backup.Manager {
	if _, ok := c.Store.(*postgres.Store); ok {
		return nil
	}
	return backup.NewManager(c.Store.GetConfigPath())
}

// PerformAutomaticBackup creates a backup before destructive operations
// and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	mgr := c.BackupManager()
	if mgr == nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
