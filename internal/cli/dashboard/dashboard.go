package dashboard

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/render"
	"github.com/julianstephens/habitlog/internal/stats"
)

type DashboardCmd struct {
	JSON bool `help:"Print the figures as JSON."`
}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	now := ctx.Clock()
	ds, err := stats.ComputeDashboardStats(t.Snapshot(), now, ctx.Stats)
	if err != nil {
		return fmt.Errorf("failed to compute dashboard: %w", err)
	}

	if c.JSON {
		enc := json.NewEncoder(ctx.Stdout())
		enc.SetIndent("", "  ")
		return enc.Encode(ds)
	}

	windowDays := ctx.Stats.WindowDays
	if windowDays <= 0 {
		windowDays = stats.DefaultOptions().WindowDays
	}
	ctx.Printf("%s", render.Dashboard(ds, now, windowDays))
	return nil
}
