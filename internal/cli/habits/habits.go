package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/forms"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/render"
	"github.com/julianstephens/habitlog/internal/utils"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and all of its entries."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Mark   HabitMarkCmd   `cmd:"" help:"Record a habit entry for a day."`
	Note   HabitNoteCmd   `cmd:"" help:"Set the note for a day without changing completion."`
	Today  HabitTodayCmd  `cmd:"" help:"Show today's habit checklist."`
	Log    HabitLogCmd    `cmd:"" help:"Show habit log (ASCII history)."`
}

type HabitAddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name. Omit to fill in a form."`
	Description string `help:"Optional description."`
	Category    string `help:"One of health, productivity, wellness, lifestyle, other." default:""`
	Frequency   string `help:"One of daily, weekdays, weekends, weekly." default:""`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	draft := models.HabitDraft{
		Name:        c.Name,
		Description: c.Description,
		Category:    models.Category(c.Category),
		Frequency:   models.Frequency(c.Frequency),
	}
	if strings.TrimSpace(c.Name) == "" {
		fields := &forms.HabitFields{Description: c.Description, Category: draft.Category, Frequency: draft.Frequency}
		if err := forms.NewHabitForm(fields).Run(); err != nil {
			return err
		}
		draft = fields.Draft()
	}

	if existing, err := t.HabitByName(draft.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", existing.Name)
	}

	h, err := t.AddHabit(draft)
	if err != nil {
		return err
	}
	ctx.Printf("Added habit: %s (%s, %s)\n", h.Name, h.Category, h.Frequency)
	return nil
}

type HabitEditCmd struct {
	Habit            string `arg:"" help:"Habit name or id."`
	Name             string `help:"New name."`
	Description      string `help:"New description."`
	ClearDescription bool   `help:"Remove the description."`
	Category         string `help:"New category."`
	Frequency        string `help:"New frequency."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	h, err := cli.ResolveHabit(t, c.Habit)
	if err != nil {
		return err
	}

	var patch models.HabitPatch
	if c.Name != "" {
		if other, err := t.HabitByName(c.Name); err == nil && other.ID != h.ID {
			return fmt.Errorf("habit with name %q already exists", other.Name)
		}
		patch.Name = &c.Name
	}
	if c.ClearDescription {
		empty := ""
		patch.Description = &empty
	} else if c.Description != "" {
		patch.Description = &c.Description
	}
	if c.Category != "" {
		cat := models.Category(c.Category)
		patch.Category = &cat
	}
	if c.Frequency != "" {
		freq := models.Frequency(c.Frequency)
		patch.Frequency = &freq
	}
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to change, pass at least one of --name, --description, --category, --frequency")
	}

	updated, err := t.UpdateHabit(h.ID, patch)
	if err != nil {
		return err
	}
	ctx.Printf("Updated habit: %s\n", updated.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Yes   bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	h, err := cli.ResolveHabit(t, c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		title := fmt.Sprintf("Delete %q and its %d entries? This cannot be undone.", h.Name, len(h.Entries))
		if err := forms.NewConfirmForm(title, &confirmed).Run(); err != nil {
			return err
		}
		if !confirmed {
			ctx.Printf("Delete cancelled.\n")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := t.DeleteHabit(h.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s\n", h.Name)
	return nil
}

type HabitListCmd struct {
	Category string `help:"Only show habits in this category."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	now := ctx.Clock()
	shown := 0
	for _, h := range t.Habits() {
		if c.Category != "" && !strings.EqualFold(string(h.Category), c.Category) {
			continue
		}
		ctx.Printf("%s\n", render.HabitRow(h, now))
		shown++
	}
	if shown == 0 {
		ctx.Printf("No habits found.\n")
	}
	return nil
}

type HabitMarkCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Date  string `help:"Date in YYYY-MM-DD format, or today/yesterday." default:"today"`
	Note  string `help:"Optional note for this entry. Keeps the existing note when omitted."`
	Undo  bool   `help:"Record the day as not completed."`
}

func (c *HabitMarkCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	h, err := cli.ResolveHabit(t, c.Habit)
	if err != nil {
		return err
	}

	day, err := utils.ResolveDayKey(c.Date, ctx.Clock())
	if err != nil {
		return err
	}

	note := c.Note
	if note == "" {
		if e, ok := h.Entry(day); ok {
			note = e.Notes
		}
	}

	if _, err := t.LogHabitEntry(h.ID, day, !c.Undo, note); err != nil {
		return err
	}
	if c.Undo {
		ctx.Printf("Unmarked habit %q for %s\n", h.Name, day)
	} else {
		ctx.Printf("Marked habit %q for %s\n", h.Name, day)
	}
	return nil
}

type HabitNoteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Text  string `arg:"" optional:"" help:"Note text. Omit to clear the note."`
	Date  string `help:"Date in YYYY-MM-DD format, or today/yesterday." default:"today"`
}

func (c *HabitNoteCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	h, err := cli.ResolveHabit(t, c.Habit)
	if err != nil {
		return err
	}

	day, err := utils.ResolveDayKey(c.Date, ctx.Clock())
	if err != nil {
		return err
	}

	// A day without an entry gets one that is not completed.
	if _, err := t.LogHabitEntry(h.ID, day, h.CompletedOn(day), strings.TrimSpace(c.Text)); err != nil {
		return err
	}
	if strings.TrimSpace(c.Text) == "" {
		ctx.Printf("Cleared note for %q on %s\n", h.Name, day)
	} else {
		ctx.Printf("Saved note for %q on %s\n", h.Name, day)
	}
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habits := t.Habits()
	if len(habits) == 0 {
		ctx.Printf("No habits found.\n")
		return nil
	}
	ctx.Printf("%s", render.Checklist(habits, ctx.Clock()))
	return nil
}

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 || c.Days > 366 {
		return fmt.Errorf("--days must be between 1 and 366")
	}

	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habits := t.Habits()
	if c.Habit != "" {
		h, err := cli.ResolveHabit(t, c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{h}
	}
	if len(habits) == 0 {
		ctx.Printf("No habits found.\n")
		return nil
	}

	ctx.Printf("%s", render.HabitLog(habits, ctx.Clock(), c.Days))
	ctx.Printf("\nx = done, - = logged not done, . = no entry (dates are %s)\n", constants.DateFormat)
	return nil
}
