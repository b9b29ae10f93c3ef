package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/session"
	"github.com/julianstephens/habitlog/internal/tracker"
	"github.com/julianstephens/habitlog/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if ctx.BackupManager() != nil {
		release, err := session.Acquire(ctx.Store.GetConfigPath())
		if err != nil {
			return err
		}
		defer release()
	}

	ctx.PerformAutomaticBackup()

	saveErrs := &tui.SaveErrors{}
	t, err := tracker.Open(ctx.Store,
		tracker.WithClock(ctx.Clock),
		tracker.WithSaveWarning(saveErrs.Record),
	)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(t, ctx.Stats, ctx.Clock, saveErrs), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
