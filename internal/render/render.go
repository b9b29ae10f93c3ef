// Package render formats habits, cough logs and dashboard figures for the
// terminal.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/stats"
	"github.com/julianstephens/habitlog/internal/utils"
)

const nameWidth = 20

// Dashboard renders the summary cards, top triggers and the recent feed.
func Dashboard(ds models.DashboardStats, now time.Time, windowDays int) string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Habits", fmt.Sprintf("%d", ds.TotalHabits)),
		card("Done today", fmt.Sprintf("%d%%", ds.HabitCompletionRate)),
		card("Incidents", fmt.Sprintf("%d", ds.TotalCoughIncidents)),
		card(fmt.Sprintf("Last %d days", windowDays), fmt.Sprintf("%d", ds.RecentCoughIncidents)),
	)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Dashboard"))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render(now.Format("Mon Jan 2, 2006")))
	b.WriteString("\n")
	b.WriteString(cards)
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Top triggers"))
	b.WriteString("\n")
	if len(ds.TopTriggers) == 0 {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  No triggers logged in the last %d days.", windowDays)))
		b.WriteString("\n")
	}
	for i, tc := range ds.TopTriggers {
		fmt.Fprintf(&b, "  %d. %s %s\n", i+1, tc.Trigger, labelStyle.Render(fmt.Sprintf("(%d)", tc.Count)))
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Recent activity"))
	b.WriteString("\n")
	if len(ds.RecentActivity) == 0 {
		b.WriteString(labelStyle.Render("  No cough incidents logged."))
		b.WriteString("\n")
	}
	for _, l := range ds.RecentActivity {
		b.WriteString("  ")
		b.WriteString(CoughLine(l, now))
		b.WriteString("\n")
	}
	return b.String()
}

func card(label, value string) string {
	return cardStyle.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

// CoughLine is a one-line summary of a cough log.
func CoughLine(l models.CoughLog, now time.Time) string {
	line := fmt.Sprintf("%s  %-16s %s", Severity(l.Severity),
		humanize.RelTime(l.Timestamp, now, "ago", "from now"),
		labelStyle.Render(l.Timestamp.Format("2006-01-02 15:04")))
	if len(l.PossibleTriggers) > 0 {
		line += "  " + strings.Join(l.PossibleTriggers, ", ")
	}
	return line
}

// Checklist lists the habits due on now's day with their completion mark.
func Checklist(habits []models.Habit, now time.Time) string {
	today := utils.DayKey(now)

	var b strings.Builder
	fmt.Fprintf(&b, "Habits for %s:\n\n", today)

	due, done := 0, 0
	for _, h := range habits {
		if !stats.IsDue(h, now) {
			continue
		}
		due++
		mark := missedStyle.Render("[ ]")
		if h.CompletedOn(today) {
			mark = doneStyle.Render("[x]")
			done++
		}
		line := fmt.Sprintf("%s %s", mark, h.Name)
		if streak := stats.CurrentStreak(h, now); streak > 1 {
			line += labelStyle.Render(fmt.Sprintf("  %d day streak", streak))
		}
		if e, ok := h.Entry(today); ok && e.Notes != "" {
			line += labelStyle.Render("  - " + e.Notes)
		}
		b.WriteString(line + "\n")
	}

	if due == 0 {
		b.WriteString("Nothing due today.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "\nRecorded: %d/%d (%d%% of all habits)\n", done, due, stats.CompletionRate(habits, now))
	return b.String()
}

// HabitLog renders one row per habit covering the days ending at end.
func HabitLog(habits []models.Habit, end time.Time, days int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Habit log (last %d days):\n\n", days)

	b.WriteString(fmt.Sprintf("%-*s", nameWidth, "Habit"))
	start := utils.StartOfDay(end).AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		fmt.Fprintf(&b, " %5s", start.AddDate(0, 0, i).Format("01/02"))
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", nameWidth+6*days))
	b.WriteString("\n")

	for _, h := range habits {
		b.WriteString(padName(h.Name))
		for _, cell := range stats.HabitHistory(h, end, days) {
			switch {
			case cell.Completed:
				b.WriteString(doneStyle.Render("  x   "))
			case cell.Logged:
				b.WriteString(missedStyle.Render("  -   "))
			default:
				b.WriteString(missedStyle.Render("  .   "))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func padName(name string) string {
	r := []rune(name)
	if len(r) > nameWidth {
		return string(r[:nameWidth-3]) + "..."
	}
	return name + strings.Repeat(" ", nameWidth-len(r))
}

// HabitRow is a one-line summary used by habit list.
func HabitRow(h models.Habit, now time.Time) string {
	row := fmt.Sprintf("%s %s", padName(h.Name), labelStyle.Render(fmt.Sprintf("%-12s %-9s", h.Category, h.Frequency)))
	if streak := stats.CurrentStreak(h, now); streak > 0 {
		row += fmt.Sprintf("  streak %d", streak)
	}
	if h.Description != "" {
		row += labelStyle.Render("  " + h.Description)
	}
	return row
}
