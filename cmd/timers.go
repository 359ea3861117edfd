package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/timerdeck/internal/domain"
)

var (
	timerPreset string
	timerRun    bool
)

var timersCmd = &cobra.Command{
	Use:     "timers",
	Aliases: []string{"timer"},
	Short:   "Manage named kitchen timers",
	Long: `Manage any number of named countdowns. Timers only tick while a
timerdeck process is running them ("timers run" or the interactive clock);
a timer that was running when the process exited is restored paused.`,
}

var timersAddCmd = &cobra.Command{
	Use:   "add [name...] <MM:SS>",
	Short: "Create a timer",
	Long: `Create a timer from a name and a length, or from a preset:

  timerdeck timers add Laundry 45:00
  timerdeck timers add --preset egg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		t, err := createTimerFromArgs(ctx, args)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), t)
		}
		success(cmd.OutOrStdout(), "Created %s (%s), id %d", t.Name, domain.FormatClock(t.TotalSeconds), t.ID)
		if timerRun {
			return runTimers(ctx, cmd.OutOrStdout(), []int64{t.ID})
		}
		return nil
	},
}

func createTimerFromArgs(ctx context.Context, args []string) (domain.MultiTimer, error) {
	if timerPreset != "" {
		return app.timers.CreatePreset(ctx, timerPreset)
	}
	if len(args) == 0 {
		return domain.MultiTimer{}, fmt.Errorf("pass a length such as 10:00 or --preset")
	}
	if seconds, err := domain.ParseTimeEdit(args[len(args)-1]); err == nil {
		return app.timers.Create(ctx, strings.Join(args[:len(args)-1], " "), seconds, false)
	}
	return app.timers.CreatePreset(ctx, strings.Join(args, " "))
}

var timersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List timers",
	RunE: func(cmd *cobra.Command, args []string) error {
		timers := app.timers.List()
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), timers)
		}
		if len(timers) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No timers. Presets: "+presetKeys())
			return nil
		}
		tbl := newTable("ID", "NAME", "LEFT", "TOTAL", "STATE")
		for _, t := range timers {
			tbl.AddRow(t.ID, t.Name, domain.FormatClock(t.TimeLeft), domain.FormatClock(t.TotalSeconds), timerState(t))
		}
		printTable(cmd.OutOrStdout(), tbl)
		return nil
	},
}

func timerState(t domain.MultiTimer) string {
	switch {
	case t.Running:
		return accentColor.Sprint("running")
	case t.Finished():
		return okColor.Sprint("done")
	}
	return dimColor.Sprint("paused")
}

func presetKeys() string {
	var keys []string
	for _, p := range domain.TimerPresets() {
		keys = append(keys, fmt.Sprintf("%s (%s)", p.Key, domain.FormatClock(p.Seconds)))
	}
	return strings.Join(keys, ", ")
}

// timerIDCommand builds a subcommand that applies fn to one timer id.
func timerIDCommand(use, short, verb string, fn func(ctx context.Context, id int64) (domain.MultiTimer, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := fn(cmd.Context(), id)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "%s %s (%s)", verb, t.Name, domain.FormatClock(t.TimeLeft))
			return nil
		},
	}
}

var (
	timersToggleCmd = timerIDCommand("toggle", "Start or pause a timer", "Toggled", func(ctx context.Context, id int64) (domain.MultiTimer, error) {
		return app.timers.Toggle(ctx, id)
	})
	timersResetCmd = timerIDCommand("reset", "Reload a timer to its full length", "Reset", func(ctx context.Context, id int64) (domain.MultiTimer, error) {
		return app.timers.Reset(ctx, id)
	})
)

var timersRenameCmd = &cobra.Command{
	Use:   "rename <id> <name...>",
	Short: "Rename a timer",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		t, err := app.timers.Rename(cmd.Context(), id, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Renamed timer %d to %s", t.ID, t.Name)
		return nil
	},
}

var timersEditCmd = &cobra.Command{
	Use:   "edit <id> <MM:SS>",
	Short: "Change a timer's length",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		t, err := app.timers.EditDuration(cmd.Context(), id, args[1])
		if err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "%s now runs %s", t.Name, domain.FormatClock(t.TotalSeconds))
		return nil
	},
}

var timersDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a timer",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := app.timers.Delete(cmd.Context(), id); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Deleted timer %d", id)
		return nil
	},
}

var timersRunCmd = &cobra.Command{
	Use:   "run [id...]",
	Short: "Run timers in the foreground",
	Long:  `Start the given timers (all unfinished timers by default) and print them until every one has finished. Ctrl+C pauses them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var ids []int64
		for _, a := range args {
			id, err := parseID(a)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			for _, t := range app.timers.List() {
				if !t.Finished() {
					ids = append(ids, t.ID)
				}
			}
		}
		if len(ids) == 0 {
			return fmt.Errorf("no timers to run")
		}
		return runTimers(cmd.Context(), cmd.OutOrStdout(), ids)
	},
}

// runTimers starts ids and follows the manager until none is running.
func runTimers(ctx context.Context, out io.Writer, ids []int64) error {
	events, cancel := app.timers.Subscribe(16)
	defer cancel()

	for _, id := range ids {
		t, err := app.timers.Get(id)
		if err != nil {
			return err
		}
		if !t.Running {
			if _, err := app.timers.Toggle(ctx, id); err != nil {
				return err
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return pauseRunning(out)
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Type == domain.EventTimerDone && ev.Timer != nil {
				fmt.Fprintln(out)
				success(out, "%s is done!", ev.Timer.Name)
				continue
			}
			fmt.Fprintf(out, "\r%-60s", timersLine(ev.Timers))
			if !app.timers.Running() {
				fmt.Fprintln(out)
				return nil
			}
		}
	}
}

func timersLine(timers []domain.MultiTimer) string {
	var parts []string
	for _, t := range timers {
		if t.Running {
			parts = append(parts, fmt.Sprintf("%s %s", t.Name, domain.FormatClock(t.TimeLeft)))
		}
	}
	return "  " + strings.Join(parts, "  ·  ")
}

// pauseRunning pauses every running timer so its time left is kept.
func pauseRunning(out io.Writer) error {
	ctx := context.Background()
	for _, t := range app.timers.List() {
		if !t.Running {
			continue
		}
		if _, err := app.timers.Toggle(ctx, t.ID); err != nil {
			return err
		}
		_, _ = dimColor.Fprintf(out, "Paused %s at %s\n", t.Name, domain.FormatClock(t.TimeLeft))
	}
	return nil
}

func init() {
	timersAddCmd.Flags().StringVar(&timerPreset, "preset", "", "Create from a preset: "+presetKeys())
	timersAddCmd.Flags().BoolVarP(&timerRun, "run", "r", false, "Start the timer and follow it in the foreground")

	timersCmd.AddCommand(timersAddCmd, timersListCmd, timersToggleCmd, timersResetCmd,
		timersRenameCmd, timersEditCmd, timersDeleteCmd, timersRunCmd)
	rootCmd.AddCommand(timersCmd)
}
