// Package forms builds the huh forms shared by the CLI prompts and the TUI.
package forms

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/utils"
	"github.com/julianstephens/habitlog/internal/validation"
)

// HabitFields backs the add/edit habit form.
type HabitFields struct {
	Name        string
	Description string
	Category    models.Category
	Frequency   models.Frequency
}

// Draft converts the collected fields.
func (f *HabitFields) Draft() models.HabitDraft {
	return models.HabitDraft{
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		Frequency:   f.Frequency,
	}
}

// CoughFields backs the log cough form. Values are kept as text so the
// form can validate them before conversion.
type CoughFields struct {
	Severity string
	When     string
	Triggers string
}

// Draft converts the collected fields. When is resolved against now.
func (f *CoughFields) Draft(now time.Time) (models.CoughLogDraft, error) {
	sev, err := strconv.Atoi(strings.TrimSpace(f.Severity))
	if err != nil {
		return models.CoughLogDraft{}, fmt.Errorf("severity must be a number: %w", err)
	}

	var ts time.Time
	if strings.TrimSpace(f.When) != "" {
		ts, err = utils.ParseTimestamp(strings.TrimSpace(f.When), now)
		if err != nil {
			return models.CoughLogDraft{}, err
		}
	}

	return models.CoughLogDraft{
		Timestamp:        ts,
		Severity:         sev,
		PossibleTriggers: SplitTriggers(f.Triggers),
	}, nil
}

// SplitTriggers splits a comma separated trigger list.
func SplitTriggers(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validation.Triggers(strings.Split(s, ","))
}

func categoryOptions() []huh.Option[models.Category] {
	opts := make([]huh.Option[models.Category], len(models.Categories))
	for i, c := range models.Categories {
		opts[i] = huh.NewOption(titleCase(string(c)), c)
	}
	return opts
}

func frequencyOptions() []huh.Option[models.Frequency] {
	opts := make([]huh.Option[models.Frequency], len(models.Frequencies))
	for i, f := range models.Frequencies {
		opts[i] = huh.NewOption(titleCase(string(f)), f)
	}
	return opts
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// NewHabitForm creates a form for adding or editing a habit
func NewHabitForm(fm *HabitFields) *huh.Form {
	if fm.Category == "" {
		fm.Category = models.DefaultCategory
	}
	if fm.Frequency == "" {
		fm.Frequency = models.DefaultFrequency
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					_, err := validation.HabitName(s)
					return err
				}),
			huh.NewInput().
				Title("Description").
				Description("Optional").
				Value(&fm.Description),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&fm.Category),
			huh.NewSelect[models.Frequency]().
				Title("Frequency").
				Options(frequencyOptions()...).
				Value(&fm.Frequency),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewCoughForm creates a form for logging a cough incident
func NewCoughForm(fm *CoughFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Severity (%d-%d)", constants.MinSeverity, constants.MaxSeverity)).
				Value(&fm.Severity).
				Validate(func(s string) error {
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("severity must be a number")
					}
					return validation.Severity(i)
				}),
			huh.NewInput().
				Title("When").
				Description("Blank for now, or HH:MM, YYYY-MM-DD HH:MM, RFC3339").
				Value(&fm.When).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := utils.ParseTimestamp(strings.TrimSpace(s), time.Now())
					return err
				}),
			huh.NewInput().
				Title("Possible triggers").
				Description("Comma separated, e.g. dust, cold air").
				Value(&fm.Triggers),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewConfirmForm asks a yes/no question.
func NewConfirmForm(title string, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
