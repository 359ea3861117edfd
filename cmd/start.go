package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/timerdeck/internal/adapters/tui"
	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/modes"
)

var (
	startDuration string
	startPick     bool
	startWork     string
	startRest     string
	startCycles   int
)

// startCmd runs one session in the foreground.
var startCmd = &cobra.Command{
	Use:   "start [mode]",
	Short: "Run a session in the foreground",
	Long: `Run one session and print the clock until it completes.

The mode name is matched fuzzily ("stopw" means stopwatch). Without a mode
the focus session runs. Press Ctrl+C to stop; a flowtime session is logged
when stopped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mode := domain.ModeFocus
		switch {
		case len(args) == 1:
			m, err := modes.Resolve(args[0])
			if err != nil {
				return err
			}
			mode = m
		case startPick:
			m, ok, err := tui.RunModePicker(mode, &app.config.Theme)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			mode = m
		}

		if err := app.engine.SwitchMode(ctx, mode); err != nil {
			return err
		}
		if mode == domain.ModeInterval {
			if err := applyIntervalFlags(cmd); err != nil {
				return err
			}
		}
		if startDuration != "" {
			if err := app.engine.SetDuration(ctx, startDuration); err != nil {
				return fmt.Errorf("failed to set duration: %w", err)
			}
		}
		return runForeground(ctx, cmd.OutOrStdout())
	},
}

func init() {
	startCmd.Flags().StringVarP(&startDuration, "duration", "d", "", "Session length as MM or MM:SS (editable modes only)")
	startCmd.Flags().BoolVarP(&startPick, "pick", "p", false, "Choose the mode from a picker")
	startCmd.Flags().StringVar(&startWork, "work", "", "Interval work length as MM:SS")
	startCmd.Flags().StringVar(&startRest, "rest", "", "Interval rest length as MM:SS")
	startCmd.Flags().IntVar(&startCycles, "cycles", 0, "Interval cycle count")
	rootCmd.AddCommand(startCmd)
}

// applyIntervalFlags overrides the configured workout for this run.
func applyIntervalFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if !flags.Changed("work") && !flags.Changed("rest") && !flags.Changed("cycles") {
		return nil
	}
	iv := app.config.IntervalSession()
	if flags.Changed("work") {
		secs, err := domain.ParseTimeEdit(startWork)
		if err != nil {
			return fmt.Errorf("invalid --work: %w", err)
		}
		iv.WorkSeconds = secs
	}
	if flags.Changed("rest") {
		secs, err := domain.ParseTimeEdit(startRest)
		if err != nil {
			return fmt.Errorf("invalid --rest: %w", err)
		}
		iv.RestSeconds = secs
	}
	if flags.Changed("cycles") {
		if startCycles < 1 {
			return fmt.Errorf("--cycles must be at least 1")
		}
		iv.TotalCycles = startCycles
	}
	return app.engine.SetInterval(cmd.Context(), iv.WorkSeconds, iv.RestSeconds, iv.TotalCycles)
}

// runForeground starts the session and follows its events until it
// completes or ctx is cancelled.
func runForeground(ctx context.Context, out io.Writer) error {
	events, cancel := app.engine.Subscribe(16)
	defer cancel()

	if err := app.engine.Start(ctx); err != nil {
		return err
	}
	session, view := app.engine.Snapshot()
	profile := modes.ForMode(session.Mode)
	_, _ = accentColor.Fprintf(out, "%s %s\n", profile.Icon(), profile.Label())
	if task, ok := app.queue.Active(); ok && session.Mode.IsWork() {
		_, _ = dimColor.Fprintf(out, "  Task: %s\n", task.Text)
	}
	printClock(out, view)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return stopForeground(out)
		case ev, ok := <-events:
			if !ok {
				fmt.Fprintln(out)
				return nil
			}
			switch ev.Type {
			case domain.EventCompleted:
				printClock(out, ev.View)
				fmt.Fprintln(out)
				_, body := domain.CompletionMessage(session.Mode)
				success(out, "%s", body)
				return nil
			case domain.EventMessage, domain.EventPhaseChanged, domain.EventCycleChanged:
				printClock(out, ev.View)
				if ev.View.Message != "" {
					fmt.Fprintf(out, "\n  %s\n", ev.View.Message)
				}
			default:
				printClock(out, ev.View)
			}
		}
	}
}

// stopForeground ends an interrupted session. Flowtime is stopped through
// Start so its work is logged.
func stopForeground(out io.Writer) error {
	ctx := context.Background()
	session, view := app.engine.Snapshot()
	if session.Mode == domain.ModeFlowtime && session.Running {
		if err := app.engine.Start(ctx); err != nil {
			return err
		}
		success(out, "Logged flowtime of %s", view.Remaining)
		return nil
	}
	if err := app.engine.Pause(ctx); err != nil {
		return err
	}
	_, _ = dimColor.Fprintf(out, "Stopped at %s\n", view.Remaining)
	return nil
}

// printClock redraws the one-line clock in place.
func printClock(out io.Writer, v domain.View) {
	parts := []string{v.Remaining}
	if v.Phase != "" {
		parts = append(parts, v.Phase)
	}
	if v.Cycle != "" {
		parts = append(parts, v.Cycle)
	}
	line := "  " + strings.Join(parts, "  ")
	fmt.Fprintf(out, "\r%-40s", line)
}
