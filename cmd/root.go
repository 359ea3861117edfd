// Package cmd provides the CLI commands for timerdeck.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xvierd/timerdeck/internal/adapters/tui"
	"github.com/xvierd/timerdeck/internal/modes"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	jsonOutput bool
	verbose    bool
	modeFlag   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "timerdeck",
	Short: "timerdeck - focus, wellness and kitchen timers in one place",
	Long: `timerdeck runs a Pomodoro-style focus cycle, flowtime, guided breathing,
interval training, a stopwatch, countdowns and any number of named kitchen
timers, and keeps a ledger of your focus sessions.

Run "timerdeck" with no arguments to open the interactive clock.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipServices(cmd) {
			return nil
		}
		return initializeServices(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runInterface,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := setupSignalHandler()
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_ = cleanupServices()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Mirror log output to stderr")
	rootCmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "Mode to open the clock in (e.g. focus, breath, grill)")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("timerdeck\nVersion: {{.Version}}\n")
}

// skipServices reports whether cmd runs without opening the data store.
func skipServices(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", "path":
		return true
	}
	return false
}

// runInterface opens the full-screen clock.
func runInterface(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if modeFlag != "" {
		mode, err := modes.Resolve(modeFlag)
		if err != nil {
			return err
		}
		if err := app.engine.SwitchMode(ctx, mode); err != nil {
			return err
		}
	}

	err := tui.Run(ctx, app.sink, tui.Options{
		Engine:     app.engine,
		Timers:     app.timers,
		Queue:      app.queue,
		Stats:      todayStats,
		Theme:      &app.config.Theme,
		Appearance: app.settings.Theme(),
	})
	if errors.Is(err, tui.ErrNotTerminal) {
		return fmt.Errorf("%w; use \"timerdeck status\" or \"timerdeck start\" instead", err)
	}
	return err
}
