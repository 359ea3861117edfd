package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/modes"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current status",
	Long:  `Display the clock, the active task, running kitchen timers and today's statistics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := app.state.GetCurrentState(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get current state: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), state)
		}
		printStatusText(cmd.OutOrStdout(), state)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// printStatusText prints the status in plain text format
func printStatusText(out io.Writer, state *domain.CurrentState) {
	profile := modes.ForMode(state.Session.Mode)
	status := "paused"
	if state.Session.Running {
		status = "running"
	}
	_, _ = accentColor.Fprintf(out, "%s %s", profile.Icon(), profile.Label())
	fmt.Fprintf(out, " (%s)\n", status)
	fmt.Fprintf(out, "   Clock: %s\n", state.View.Remaining)
	if state.View.Percent > 0 {
		fmt.Fprintf(out, "   Progress: %.0f%%\n", state.View.Percent)
	}
	if state.Session.Interruptions > 0 {
		fmt.Fprintf(out, "   Interruptions: %d\n", state.Session.Interruptions)
	}

	if state.ActiveTask != nil {
		fmt.Fprintf(out, "\nActive task: %s", state.ActiveTask.Text)
		if rest := len(state.Queue) - 1; rest > 0 {
			_, _ = dimColor.Fprintf(out, " (+%d queued)", rest)
		}
		fmt.Fprintln(out)
	}

	if len(state.Timers) > 0 {
		fmt.Fprintln(out, "\nTimers:")
		for _, t := range state.Timers {
			marker := "⏸"
			if t.Running {
				marker = "▶"
			} else if t.Finished() {
				marker = "✓"
			}
			fmt.Fprintf(out, "   %s %-20s %s\n", marker, t.Name, domain.FormatClock(t.TimeLeft))
		}
	}

	fmt.Fprintln(out, "\nToday:")
	fmt.Fprintf(out, "   Focus sessions: %d\n", state.Stats.TodayCount)
	fmt.Fprintf(out, "   Focus time: %s\n", formatMinutes(state.Stats.TodayMinutes))
	fmt.Fprintf(out, "   Goals: %d%% daily, %d%% weekly\n", state.Daily, state.Weekly)
}
