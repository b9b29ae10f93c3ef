package coughs

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/forms"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/render"
	"github.com/julianstephens/habitlog/internal/stats"
	"github.com/julianstephens/habitlog/internal/utils"
)

type CoughCmd struct {
	Add    CoughAddCmd    `cmd:"" help:"Log a cough incident."`
	Edit   CoughEditCmd   `cmd:"" help:"Correct a logged incident."`
	Delete CoughDeleteCmd `cmd:"" help:"Delete a logged incident."`
	List   CoughListCmd   `cmd:"" help:"List incidents, most recent first."`
}

type CoughAddCmd struct {
	Severity int      `short:"s" help:"Severity from 1 to 10. Omit to fill in a form."`
	At       string   `help:"When it happened: HH:MM, 'YYYY-MM-DD HH:MM' or RFC3339. Defaults to now."`
	Trigger  []string `short:"t" help:"Possible trigger, repeatable or comma separated." sep:","`
}

func (c *CoughAddCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	now := ctx.Clock()
	var draft models.CoughLogDraft
	if c.Severity == 0 {
		fields := &forms.CoughFields{When: c.At, Triggers: strings.Join(c.Trigger, ", ")}
		if err := forms.NewCoughForm(fields).Run(); err != nil {
			return err
		}
		if draft, err = fields.Draft(now); err != nil {
			return err
		}
	} else {
		draft = models.CoughLogDraft{Severity: c.Severity, PossibleTriggers: c.Trigger}
		if c.At != "" {
			if draft.Timestamp, err = utils.ParseTimestamp(strings.TrimSpace(c.At), now); err != nil {
				return err
			}
		}
	}

	l, err := t.AddCoughLog(draft)
	if err != nil {
		return err
	}
	ctx.Printf("Logged cough %s at %s (severity %d)\n", cli.ShortID(l.ID), l.Timestamp.Format("2006-01-02 15:04"), l.Severity)
	return nil
}

type CoughEditCmd struct {
	ID            string   `arg:"" help:"Incident id or unique id prefix."`
	Severity      int      `short:"s" help:"New severity."`
	At            string   `help:"New time."`
	Trigger       []string `short:"t" help:"Replace the triggers." sep:","`
	ClearTriggers bool     `help:"Remove all triggers."`
}

func (c *CoughEditCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	l, err := cli.ResolveCoughLog(t, c.ID)
	if err != nil {
		return err
	}

	var patch models.CoughLogPatch
	changed := false
	if c.Severity != 0 {
		patch.Severity = &c.Severity
		changed = true
	}
	if c.At != "" {
		ts, err := utils.ParseTimestamp(strings.TrimSpace(c.At), ctx.Clock())
		if err != nil {
			return err
		}
		patch.Timestamp = &ts
		changed = true
	}
	if c.ClearTriggers {
		patch.PossibleTriggers = []string{}
		changed = true
	} else if len(c.Trigger) > 0 {
		patch.PossibleTriggers = c.Trigger
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to change, pass at least one of --severity, --at, --trigger, --clear-triggers")
	}

	if _, err := t.UpdateCoughLog(l.ID, patch); err != nil {
		return err
	}
	ctx.Printf("Updated cough %s\n", cli.ShortID(l.ID))
	return nil
}

type CoughDeleteCmd struct {
	ID string `arg:"" help:"Incident id or unique id prefix."`
}

func (c *CoughDeleteCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	l, err := cli.ResolveCoughLog(t, c.ID)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	if err := t.DeleteCoughLog(l.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted cough %s\n", cli.ShortID(l.ID))
	return nil
}

type CoughListCmd struct {
	Limit int `short:"n" help:"Maximum number of incidents to show (0 for all)." default:"20"`
	Days  int `help:"Only show incidents from the last N days (0 for all)." default:"0"`
}

func (c *CoughListCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	now := ctx.Clock()
	logs := t.CoughLogs()
	if c.Days > 0 {
		if logs, err = stats.RecentCoughs(logs, now, c.Days); err != nil {
			return err
		}
	}

	limit := c.Limit
	if limit <= 0 {
		limit = len(logs)
	}
	sorted, err := stats.RecentActivity(logs, limit)
	if err != nil {
		return err
	}

	if len(sorted) == 0 {
		ctx.Printf("No cough incidents found.\n")
		return nil
	}
	for _, l := range sorted {
		ctx.Printf("%s  %s\n", cli.ShortID(l.ID), render.CoughLine(l, now))
	}
	if len(sorted) < len(logs) {
		ctx.Printf("\n%d of %d incidents shown.\n", len(sorted), len(logs))
	}
	return nil
}
