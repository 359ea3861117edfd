package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xvierd/timerdeck/internal/domain"
)

var (
	goalDaily  float64
	goalWeekly float64

	setFocus      int
	setShort      int
	setLong       int
	setInterval   int
	setRatio      float64
	setAutoBreaks bool
	setAutoWork   bool
	setSound      bool
	setTheme      string
	setBreath     string
	setCustom     string

	deadlineClear bool
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show or set the daily and weekly focus goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		goals := app.settings.Goals()
		if cmd.Flags().Changed("daily") || cmd.Flags().Changed("weekly") {
			if cmd.Flags().Changed("daily") {
				goals.DailyHours = goalDaily
			}
			if cmd.Flags().Changed("weekly") {
				goals.WeeklyHours = goalWeekly
			}
			if err := app.settings.SetGoals(cmd.Context(), goals); err != nil {
				return err
			}
		}
		daily, weekly := app.history.Progress(goals)
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{"goals": goals, "daily_progress": daily, "weekly_progress": weekly})
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Daily:  %s %3d%% of %gh\n", progressBar(daily, 20), daily, goals.DailyHours)
		fmt.Fprintf(out, "Weekly: %s %3d%% of %gh\n", progressBar(weekly, 20), weekly, goals.WeeklyHours)
		return nil
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change runtime settings",
	Long: `Show or change the settings kept with your data: focus-cycle lengths,
auto-start flags, the long break interval, the flowtime ratio, sound, theme
and breathing pattern.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()

		if flags.Changed("focus") || flags.Changed("short") || flags.Changed("long") {
			d := app.settings.Modes()
			if flags.Changed("focus") {
				d.Focus = setFocus
			}
			if flags.Changed("short") {
				d.Short = setShort
			}
			if flags.Changed("long") {
				d.Long = setLong
			}
			if err := app.settings.SetModes(ctx, d); err != nil {
				return err
			}
		}

		if flags.Changed("long-break-interval") || flags.Changed("flowtime-ratio") ||
			flags.Changed("auto-breaks") || flags.Changed("auto-work") {
			if setInterval < 1 && flags.Changed("long-break-interval") {
				return fmt.Errorf("long break interval must be at least 1")
			}
			if setRatio <= 0 && flags.Changed("flowtime-ratio") {
				return fmt.Errorf("flowtime ratio must be positive")
			}
			_, err := app.settings.UpdateFlow(ctx, func(f *domain.FlowSettings) {
				if flags.Changed("long-break-interval") {
					f.LongBreakInterval = setInterval
				}
				if flags.Changed("flowtime-ratio") {
					f.FlowtimeRatio = setRatio
				}
				if flags.Changed("auto-breaks") {
					f.AutoStartBreaks = setAutoBreaks
				}
				if flags.Changed("auto-work") {
					f.AutoStartWork = setAutoWork
				}
			})
			if err != nil {
				return err
			}
		}

		if flags.Changed("sound") {
			if err := app.settings.SetSound(ctx, setSound); err != nil {
				return err
			}
		}
		if flags.Changed("theme") {
			if err := app.settings.SetTheme(ctx, domain.ParseTheme(setTheme)); err != nil {
				return err
			}
		}
		if flags.Changed("breath") {
			if err := app.engine.SelectBreathPattern(ctx, setBreath); err != nil {
				return err
			}
		}

		if flags.Changed("custom-breath") {
			custom, err := parseCustomBreath(setCustom)
			if err != nil {
				return err
			}
			if err := app.engine.SetCustomBreath(ctx, custom); err != nil {
				return err
			}
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), settingsView())
		}
		printSettings(cmd.OutOrStdout())
		return nil
	},
}

// parseCustomBreath reads "inhale,hold,exhale,empty-hold,minutes" in
// seconds and minutes. Missing trailing fields are zero.
func parseCustomBreath(s string) (domain.CustomBreath, error) {
	var vals [5]int
	parts := strings.Split(s, ",")
	if len(parts) > len(vals) {
		return domain.CustomBreath{}, fmt.Errorf("custom breath takes at most 5 values, got %d", len(parts))
	}
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return domain.CustomBreath{}, fmt.Errorf("invalid custom breath value %q", p)
		}
		vals[i] = n
	}
	return domain.CustomBreath{
		Inhale:       vals[0],
		Hold:         vals[1],
		Exhale:       vals[2],
		EmptyHold:    vals[3],
		TotalMinutes: vals[4],
	}, nil
}

func settingsView() map[string]any {
	return map[string]any{
		"modes":    app.settings.Modes(),
		"flow":     app.settings.Flow(),
		"goals":    app.settings.Goals(),
		"sound":    app.settings.SoundEnabled(),
		"theme":    app.settings.Theme(),
		"breath":   app.settings.Breath(),
		"deadline": app.settings.Deadline(),
	}
}

func printSettings(out io.Writer) {
	d := app.settings.Modes()
	f := app.settings.Flow()
	tbl := newTable("SETTING", "VALUE")
	tbl.AddRow("Focus / short / long", fmt.Sprintf("%dm / %dm / %dm", d.Focus, d.Short, d.Long))
	tbl.AddRow("Long break every", fmt.Sprintf("%d sessions (%d done)", f.LongBreakInterval, f.FocusCount))
	tbl.AddRow("Auto-start breaks", onOff(f.AutoStartBreaks))
	tbl.AddRow("Auto-start focus", onOff(f.AutoStartWork))
	tbl.AddRow("Flowtime ratio", fmt.Sprintf("1:%g", f.FlowtimeRatio))
	tbl.AddRow("Sound", onOff(app.settings.SoundEnabled()))
	tbl.AddRow("Theme", string(app.settings.Theme()))
	tbl.AddRow("Breathing", app.settings.Breath().Pattern)
	if t := app.settings.Deadline(); t != nil {
		tbl.AddRow("Deadline", t.Format("Mon Jan 2 15:04"))
	}
	printTable(out, tbl)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

var deadlineCmd = &cobra.Command{
	Use:   "deadline [date]",
	Short: "Show, set or clear the deadline countdown target",
	Long: `Set the target of the deadline mode. Accepts "2026-12-24 18:00",
"2026-12-24T18:00", RFC 3339 and the history date forms; a bare time such
as "17:30" means today.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		switch {
		case deadlineClear:
			if err := app.settings.SetDeadline(ctx, nil); err != nil {
				return err
			}
			success(out, "Deadline cleared")
			return nil
		case len(args) == 1:
			now := app.clock.Now()
			target, err := parseDeadline(args[0], now)
			if err != nil {
				return err
			}
			if !target.After(now) {
				return domain.ErrDeadlinePassed
			}
			if err := app.settings.SetDeadline(ctx, &target); err != nil {
				return err
			}
			success(out, "Deadline set for %s (%s from now)", target.Format("Mon Jan 2 15:04"), domain.FormatClock(int(target.Sub(now)/time.Second)))
			return nil
		}

		target := app.settings.Deadline()
		if target == nil {
			fmt.Fprintln(out, "No deadline set.")
			return nil
		}
		fmt.Fprintf(out, "Deadline: %s\n", target.Format("Mon Jan 2 15:04"))
		return nil
	},
}

// parseDeadline accepts a bare clock time for today or any history date.
func parseDeadline(input string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(input)
	if t, err := time.ParseInLocation("15:04", s, now.Location()); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
	}
	return domain.ParseHistoryDate(s, now, now)
}

func init() {
	goalsCmd.Flags().Float64Var(&goalDaily, "daily", 0, "Daily goal in hours")
	goalsCmd.Flags().Float64Var(&goalWeekly, "weekly", 0, "Weekly goal in hours")

	f := settingsCmd.Flags()
	f.IntVar(&setFocus, "focus", 0, "Focus length in minutes")
	f.IntVar(&setShort, "short", 0, "Short break in minutes")
	f.IntVar(&setLong, "long", 0, "Long break in minutes")
	f.IntVar(&setInterval, "long-break-interval", 0, "Focus sessions before a long break")
	f.Float64Var(&setRatio, "flowtime-ratio", 0, "Flowtime work to break ratio")
	f.BoolVar(&setAutoBreaks, "auto-breaks", false, "Start breaks automatically")
	f.BoolVar(&setAutoWork, "auto-work", false, "Start focus sessions automatically after breaks")
	f.BoolVar(&setSound, "sound", true, "Play audio cues")
	f.StringVar(&setTheme, "theme", "", "Appearance: light, dark or system")
	f.StringVar(&setBreath, "breath", "", "Breathing pattern: box, relax, coherent or custom")
	f.StringVar(&setCustom, "custom-breath", "", "Custom pattern as inhale,hold,exhale,empty-hold,minutes (e.g. 4,7,8,0,3)")

	deadlineCmd.Flags().BoolVar(&deadlineClear, "clear", false, "Remove the deadline")

	rootCmd.AddCommand(goalsCmd, settingsCmd, deadlineCmd)
}
