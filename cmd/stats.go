package cmd

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/modes"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a dashboard of focus statistics",
	Long:  `Display today's and this week's focus totals, goal progress, minutes by mode and your most productive hours.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats := app.history.Stats()
		goals := app.settings.Goals()
		daily, weekly := app.history.Progress(goals)

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"stats":           stats,
				"goals":           goals,
				"daily_progress":  daily,
				"weekly_progress": weekly,
			})
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		renderDashboard(out, dashboard{
			stats:   stats,
			goals:   goals,
			daily:   daily,
			weekly:  weekly,
			entries: app.history.List(),
			now:     app.clock.Now(),
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

type dashboard struct {
	stats   domain.Stats
	goals   domain.Goals
	daily   int
	weekly  int
	entries []domain.HistoryEntry
	now     time.Time
}

func renderDashboard(out io.Writer, d dashboard) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C6FE0"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	barColor := lipgloss.NewStyle().Foreground(lipgloss.Color("#7C6FE0"))

	week := domain.StartOfWeek(d.now)
	fmt.Fprintf(out, "  %s\n", titleStyle.Render(fmt.Sprintf("Week of %s", week.Format("Jan 2"))))
	fmt.Fprintf(out, "  %s\n\n", dimStyle.Render(strings.Repeat("─", 40)))

	fmt.Fprintf(out, "  Today: %s sessions, %s focus\n",
		valueStyle.Render(fmt.Sprintf("%d", d.stats.TodayCount)),
		valueStyle.Render(formatMinutes(d.stats.TodayMinutes)),
	)
	fmt.Fprintf(out, "  Week:  %s sessions, %s focus\n",
		valueStyle.Render(fmt.Sprintf("%d", d.stats.WeekCount)),
		valueStyle.Render(formatMinutes(d.stats.WeekMinutes)),
	)
	fmt.Fprintf(out, "  Total: %s sessions, %s focus\n\n",
		valueStyle.Render(fmt.Sprintf("%d", d.stats.TotalCount)),
		valueStyle.Render(formatMinutes(d.stats.TotalMinutes)),
	)

	fmt.Fprintf(out, "  %s %s %3d%% of %gh\n", dimStyle.Render("Daily goal "), barColor.Render(progressBar(d.daily, 30)), d.daily, d.goals.DailyHours)
	fmt.Fprintf(out, "  %s %s %3d%% of %gh\n\n", dimStyle.Render("Weekly goal"), barColor.Render(progressBar(d.weekly, 30)), d.weekly, d.goals.WeeklyHours)

	if d.stats.WeekCount == 0 {
		fmt.Fprintf(out, "  %s\n\n", dimStyle.Render("No focus sessions logged this week."))
		return
	}

	renderByMode(out, weekEntries(d.entries, week), dimStyle, barColor)
	renderHourlyProductivity(out, d.entries, d.now, dimStyle, valueStyle, barColor)
}

func weekEntries(entries []domain.HistoryEntry, week time.Time) []domain.HistoryEntry {
	var out []domain.HistoryEntry
	for _, e := range entries {
		if !e.Time().Before(week) {
			out = append(out, e)
		}
	}
	return out
}

// renderByMode draws minutes per mode. Entries logged without a mode are
// manual additions and count as focus.
func renderByMode(out io.Writer, entries []domain.HistoryEntry, dimStyle, barColor lipgloss.Style) {
	minutes := map[domain.Mode]int{}
	var order []domain.Mode
	for _, e := range entries {
		m := e.Mode
		if m == "" {
			m = domain.ModeFocus
		}
		if _, seen := minutes[m]; !seen {
			order = append(order, m)
		}
		minutes[m] += e.DurationMinutes
	}
	sort.Slice(order, func(i, j int) bool { return minutes[order[i]] > minutes[order[j]] })

	maxMinutes := 0
	for _, m := range order {
		maxMinutes = max(maxMinutes, minutes[m])
	}

	fmt.Fprintf(out, "  %s\n", dimStyle.Render("Focus by mode"))
	maxBarWidth := 30
	for _, m := range order {
		barWidth := 0
		if maxMinutes > 0 {
			barWidth = int(math.Round(float64(minutes[m]) / float64(maxMinutes) * float64(maxBarWidth)))
		}
		if barWidth < 1 && minutes[m] > 0 {
			barWidth = 1
		}
		fmt.Fprintf(out, "  %s %s %s\n",
			dimStyle.Render(fmt.Sprintf("%-10s", modes.Label(m))),
			barColor.Render(strings.Repeat("█", barWidth)),
			formatMinutes(minutes[m]),
		)
	}
	fmt.Fprintln(out)
}

// hourEntry pairs an hour with its total focus minutes for sorting.
type hourEntry struct {
	Hour    int
	Minutes int
}

func renderHourlyProductivity(out io.Writer, entries []domain.HistoryEntry, now time.Time, dimStyle, valueStyle, barColor lipgloss.Style) {
	since := now.AddDate(0, 0, -30)
	byHour := map[int]int{}
	for _, e := range entries {
		t := e.Time()
		if t.Before(since) {
			continue
		}
		byHour[t.Hour()] += e.DurationMinutes
	}
	if len(byHour) == 0 {
		return
	}

	hours := make([]hourEntry, 0, len(byHour))
	for h, m := range byHour {
		hours = append(hours, hourEntry{Hour: h, Minutes: m})
	}
	sort.Slice(hours, func(i, j int) bool {
		if hours[i].Minutes == hours[j].Minutes {
			return hours[i].Hour < hours[j].Hour
		}
		return hours[i].Minutes > hours[j].Minutes
	})

	fmt.Fprintf(out, "  %s\n", dimStyle.Render("Your most productive hours (last 30 days)"))
	top := min(3, len(hours))
	for _, h := range hours[:top] {
		barWidth := int(math.Round(float64(h.Minutes) / float64(hours[0].Minutes) * 20))
		fmt.Fprintf(out, "  %s %s %s\n",
			valueStyle.Render(fmt.Sprintf("%02d:00", h.Hour)),
			barColor.Render(strings.Repeat("█", max(barWidth, 1))),
			dimStyle.Render(formatMinutes(h.Minutes)),
		)
	}
	fmt.Fprintln(out)
}

// formatMinutes renders minutes as "1h 25m" or "40m".
func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
