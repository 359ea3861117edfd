package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xvierd/timerdeck/internal/config"
	"github.com/xvierd/timerdeck/internal/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit the configuration file",
	Long: `Interactively edit config.toml: notifications, fixed timer lengths,
the default interval workout, the storage backend and the breathing pattern.
Changes take effect on the next run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigMenu(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(), app.config)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigMenu(reader *bufio.Reader, out io.Writer, cfg *config.Config) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Current configuration:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "    Notifications:   %s\n", notificationLabel(cfg.Notifications))
	fmt.Fprintf(out, "    Countdown:       %s\n", cfg.Timer.Countdown)
	fmt.Fprintf(out, "    Grill:           %s\n", cfg.Timer.Grill)
	fmt.Fprintf(out, "    Microbreak:      %s\n", cfg.Timer.Microbreak)
	fmt.Fprintf(out, "    Grace delay:     %s\n", cfg.Timer.GraceDelay)
	fmt.Fprintf(out, "    Interval:        %s work / %s rest x %d\n", cfg.Interval.Work, cfg.Interval.Rest, cfg.Interval.Cycles)
	fmt.Fprintf(out, "    Storage:         %s in %s\n", cfg.Storage.Backend, cfg.Storage.DataDir)
	fmt.Fprintf(out, "    Breathing:       %s\n", cfg.Breath.Pattern)
	fmt.Fprintf(out, "    MCP server:      %s\n", onOff(cfg.MCP.Enabled))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  What would you like to change?")
	fmt.Fprintln(out, "    [n] Notifications")
	fmt.Fprintln(out, "    [t] Timer lengths")
	fmt.Fprintln(out, "    [i] Interval workout")
	fmt.Fprintln(out, "    [s] Storage backend")
	fmt.Fprintln(out, "    [b] Breathing pattern")
	fmt.Fprintln(out, "    [m] Toggle MCP server")
	fmt.Fprintln(out, "    [q] Quit without saving")
	fmt.Fprint(out, "  Choose: ")

	var err error
	switch readChoice(reader) {
	case "n":
		err = editNotifications(reader, out, cfg)
	case "t":
		err = editTimerLengths(reader, out, cfg)
	case "i":
		err = editInterval(reader, out, cfg)
	case "s":
		err = editBackend(reader, out, cfg)
	case "b":
		err = editBreath(reader, out, cfg)
	case "m":
		cfg.MCP.Enabled = !cfg.MCP.Enabled
	case "q", "":
		fmt.Fprintln(out, "  No changes made.")
		return nil
	default:
		return fmt.Errorf("invalid choice")
	}
	if err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintln(out, "\n  Saved.")
	return nil
}

func readChoice(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(strings.ToLower(line))
}

func notificationLabel(n config.NotificationConfig) string {
	switch {
	case !n.Enabled:
		return "off"
	case n.Sound:
		return "on (with sound)"
	}
	return "on"
}

func editNotifications(reader *bufio.Reader, out io.Writer, cfg *config.Config) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "    [1] Off")
	fmt.Fprintln(out, "    [2] On (visual only)")
	fmt.Fprintln(out, "    [3] On (with sound)")
	fmt.Fprint(out, "  Choose: ")

	switch readChoice(reader) {
	case "1":
		cfg.Notifications = config.NotificationConfig{}
	case "2":
		cfg.Notifications = config.NotificationConfig{Enabled: true}
	case "3":
		cfg.Notifications = config.NotificationConfig{Enabled: true, Sound: true}
	default:
		return fmt.Errorf("invalid choice")
	}
	return nil
}

// promptDuration reads a duration such as "90s" or "5m". Empty input keeps
// current.
func promptDuration(reader *bufio.Reader, out io.Writer, label string, current config.Duration) (config.Duration, error) {
	fmt.Fprintf(out, "  %s [%s]: ", label, current)
	input := readChoice(reader)
	if input == "" {
		return current, nil
	}
	d, err := time.ParseDuration(input)
	if err != nil || d < 0 {
		return current, fmt.Errorf("invalid duration %q", input)
	}
	return config.Duration(d), nil
}

func editTimerLengths(reader *bufio.Reader, out io.Writer, cfg *config.Config) error {
	fmt.Fprintln(out, "\n  Editing timer lengths (e.g. 90s, 5m)")
	fields := []struct {
		label string
		value *config.Duration
	}{
		{"Countdown", &cfg.Timer.Countdown},
		{"Grill", &cfg.Timer.Grill},
		{"Grounding", &cfg.Timer.Grounding},
		{"Microbreak", &cfg.Timer.Microbreak},
		{"Grace delay", &cfg.Timer.GraceDelay},
		{"Flowtime minimum break", &cfg.Timer.FlowtimeMinBreak},
	}
	for _, f := range fields {
		d, err := promptDuration(reader, out, f.label, *f.value)
		if err != nil {
			return err
		}
		*f.value = d
	}
	return nil
}

func editInterval(reader *bufio.Reader, out io.Writer, cfg *config.Config) error {
	fmt.Fprintln(out, "\n  Editing interval workout")
	work, err := promptDuration(reader, out, "Work", cfg.Interval.Work)
	if err != nil {
		return err
	}
	rest, err := promptDuration(reader, out, "Rest", cfg.Interval.Rest)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  Cycles [%d]: ", cfg.Interval.Cycles)
	cycles := cfg.Interval.Cycles
	if input := readChoice(reader); input != "" {
		n, err := strconv.Atoi(input)
		if err != nil || n < 1 {
			return fmt.Errorf("cycles must be a positive number")
		}
		cycles = n
	}
	if work.Seconds() < 1 {
		return fmt.Errorf("%w: work must be at least a second", domain.ErrInvalidDuration)
	}
	cfg.Interval = config.IntervalConfig{Work: work, Rest: rest, Cycles: cycles}
	return nil
}

func editBackend(reader *bufio.Reader, out io.Writer, cfg *config.Config) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "    [1] SQLite (single database file)")
	fmt.Fprintln(out, "    [2] diskv (one file per document)")
	fmt.Fprintln(out, "  Existing data is not migrated; use export and import.")
	fmt.Fprint(out, "  Choose: ")

	switch readChoice(reader) {
	case "1":
		cfg.Storage.Backend = config.BackendSQLite
	case "2":
		cfg.Storage.Backend = config.BackendDiskv
	default:
		return fmt.Errorf("invalid choice")
	}
	return nil
}

func editBreath(reader *bufio.Reader, out io.Writer, cfg *config.Config) error {
	patterns := []string{domain.PatternBox, domain.PatternRelax, domain.PatternCoherent, domain.PatternCustom}
	fmt.Fprintln(out)
	for i, p := range patterns {
		fmt.Fprintf(out, "    [%d] %s\n", i+1, p)
	}
	fmt.Fprint(out, "  Choose: ")

	n, err := strconv.Atoi(readChoice(reader))
	if err != nil || n < 1 || n > len(patterns) {
		return fmt.Errorf("invalid choice")
	}
	cfg.Breath.Pattern = patterns[n-1]
	return nil
}
