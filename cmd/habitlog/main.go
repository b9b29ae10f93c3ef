package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/cli/backups"
	"github.com/julianstephens/habitlog/internal/cli/coughs"
	"github.com/julianstephens/habitlog/internal/cli/dashboard"
	"github.com/julianstephens/habitlog/internal/cli/habits"
	"github.com/julianstephens/habitlog/internal/cli/system"
	"github.com/julianstephens/habitlog/internal/config"
	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/keyring"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/storage/postgres"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"SQLite file, JSON file (*.json), PostgreSQL connection string, or 'keyring'. PostgreSQL passwords must NOT be embedded; use .pgpass or the OS keyring." default:"${db}"`
	Debug   bool   `help:"Log debug output to stderr." default:"${debug}"`

	Init      system.InitCmd         `cmd:"" help:"Initialize habitlog storage."`
	Doctor    system.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
	Tui       system.TuiCmd          `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Dashboard dashboard.DashboardCmd `cmd:"" help:"Show habit completion and cough statistics."`
	Habit     habits.HabitCmd        `cmd:"" help:"Manage habits and daily entries."`
	Cough     coughs.CoughCmd        `cmd:"" help:"Log and review cough incidents."`
	Backup    backups.BackupCmd      `cmd:"" help:"Manage data backups."`
	Keyring   system.KeyringCmd      `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Inspect   system.DebugCmd        `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		errors.Fatal(err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker and cough incident log"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"db":      cfg.DB,
			"debug":   strconv.FormatBool(cfg.Debug),
		},
	)

	initLogging(logger.Config{Debug: CLI.Debug, ConfigDir: cfg.ConfigDir}, os.Stderr)
	logger.Debug("Starting", "version", constants.Version, "command", ctx.Command())

	store, err := openStore(CLI.DB, ctx.Command())
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store: store,
		Stats: cfg.StatsOptions(),
	}

	err = ctx.Run(appCtx)
	if cerr := appCtx.Close(); cerr != nil {
		logger.Warn("Failed to close storage", "error", cerr)
	}
	if err != nil {
		errors.Fatal(err)
	}
}

// openStore resolves the --db target to an unopened provider. Keyring
// commands still run when the keyring has nothing stored yet.
func openStore(target, command string) (storage.Provider, error) {
	resolved, err := keyring.ResolveTarget(target)
	if err != nil {
		if strings.HasPrefix(command, "keyring") {
			return nil, nil
		}
		return nil, err
	}

	if storage.DetectBackend(resolved) == storage.BackendPostgres {
		if err := postgres.ValidateConnString(resolved); err != nil {
			return nil, err
		}
	}
	return storage.New(resolved), nil
}

// initLogging reports a failed logger setup on stderr.
func initLogging(cfg logger.Config, stderr io.Writer) {
	if err := logger.Init(cfg); err != nil {
		fmt.Fprintln(stderr, errors.Warning(fmt.Errorf("failed to initialize logger: %w", err)))
	}
}
