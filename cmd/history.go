package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/modes"
)

var (
	historyLimit         int
	historyLabel         string
	historyMinutes       int
	historyDate          string
	historyInterruptions int
	historyPaused        int
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"log"},
	Short:   "List and edit the focus ledger",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged sessions, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := app.history.List()
		if historyLimit > 0 && len(entries) > historyLimit {
			entries = entries[:historyLimit]
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), entries)
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No sessions logged yet.")
			return nil
		}

		tbl := newTable("ID", "DATE", "TASK", "MINUTES", "MODE", "BRANCH")
		for _, e := range entries {
			mode := ""
			if e.Mode != "" {
				mode = modes.Label(e.Mode)
			}
			tbl.AddRow(e.ID, e.Time().Format("Mon Jan 2 15:04"), e.Task, e.DurationMinutes, mode, e.Branch)
		}
		printTable(cmd.OutOrStdout(), tbl)
		return nil
	},
}

var historyAddCmd = &cobra.Command{
	Use:   "add <minutes> [task...]",
	Short: "Log a session manually",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid minutes %q", args[0])
		}
		var override domain.HistoryCounters
		if cmd.Flags().Changed("interruptions") {
			override.Interruptions = &historyInterruptions
		}
		if cmd.Flags().Changed("paused") {
			override.PausedSeconds = &historyPaused
		}
		entry, err := app.engine.AddHistory(cmd.Context(), strings.Join(args[1:], " "), minutes, override)
		if err != nil {
			return fmt.Errorf("failed to add entry: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), entry)
		}
		success(cmd.OutOrStdout(), "Logged %d min for %q (id %d)", entry.DurationMinutes, entry.Task, entry.ID)
		return nil
	},
}

var historyEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit the task, minutes or date of an entry",
	Long: `Edit a logged session. Dates accept ISO forms (2026-03-05, 2026-03-05 14:30),
"Mar 5", "March 5, 2026" and day-first "5/3" or "5/3/26". Dates without a
time keep the entry's original time of day.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("task") && !cmd.Flags().Changed("minutes") && !cmd.Flags().Changed("date") {
			return fmt.Errorf("nothing to edit: pass --task, --minutes or --date")
		}

		var entry domain.HistoryEntry
		if cmd.Flags().Changed("task") {
			if entry, err = app.history.EditLabel(ctx, id, historyLabel); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("minutes") {
			if entry, err = app.history.EditDuration(ctx, id, historyMinutes); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("date") {
			if entry, err = app.history.EditDate(ctx, id, historyDate); err != nil {
				return err
			}
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), entry)
		}
		success(cmd.OutOrStdout(), "Updated entry %d: %q, %d min, %s", entry.ID, entry.Task, entry.DurationMinutes, entry.Time().Format("Mon Jan 2 15:04"))
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := app.history.Delete(cmd.Context(), id); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Deleted entry %d", id)
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	historyAddCmd.Flags().IntVar(&historyInterruptions, "interruptions", 0, "Interruption count (default: current session)")
	historyAddCmd.Flags().IntVar(&historyPaused, "paused", 0, "Paused seconds (default: current session)")
	historyEditCmd.Flags().StringVar(&historyLabel, "task", "", "New task label")
	historyEditCmd.Flags().IntVar(&historyMinutes, "minutes", 0, "New duration in minutes")
	historyEditCmd.Flags().StringVar(&historyDate, "date", "", "New completion date")

	historyCmd.AddCommand(historyListCmd, historyAddCmd, historyEditCmd, historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}
