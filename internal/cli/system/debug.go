package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/habitlog/internal/cli"
)

type DebugCmd struct {
	DBPath DebugDBPathCmd `cmd:"" help:"Show storage path."`
	Dump   DebugDumpCmd   `cmd:"" help:"Dump stored habits and cough logs as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpCmd struct {
	Habit string `help:"Only dump the habit with this ID or name."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	if cmd.Habit != "" {
		h, err := cli.ResolveHabit(t, cmd.Habit)
		if err != nil {
			return err
		}
		return printJSON(ctx, h)
	}
	return printJSON(ctx, t.Snapshot())
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Printf("%s\n", jsonBytes)
	return nil
}
