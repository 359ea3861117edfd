package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var queueCmd = &cobra.Command{
	Use:     "queue",
	Aliases: []string{"tasks"},
	Short:   "Manage the task queue",
	Long: `Manage pending tasks. The first task is the active one: focus sessions
are logged under its name and completing it removes it from the queue.`,
}

var queueAddCmd = &cobra.Command{
	Use:   "add <task...>",
	Short: "Append a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := app.queue.Enqueue(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), item)
		}
		success(cmd.OutOrStdout(), "Queued %q at position %d", item.Text, len(app.queue.List()))
		return nil
	},
}

var queueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List queued tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		items := app.queue.List()
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), items)
		}
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "The queue is empty.")
			return nil
		}
		tbl := newTable("#", "TASK", "")
		for i, item := range items {
			marker := ""
			if i == 0 {
				marker = accentColor.Sprint("active")
			}
			tbl.AddRow(i+1, item.Text, marker)
		}
		printTable(cmd.OutOrStdout(), tbl)
		return nil
	},
}

var queuePromoteCmd = &cobra.Command{
	Use:   "promote <position>",
	Short: "Move a task to the front",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		if err := app.queue.Promote(cmd.Context(), idx); err != nil {
			return err
		}
		head, _ := app.queue.Active()
		success(cmd.OutOrStdout(), "Active task is now %q", head.Text)
		return nil
	},
}

var queueRemoveCmd = &cobra.Command{
	Use:     "remove <position>",
	Aliases: []string{"rm"},
	Short:   "Remove a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		item, err := app.queue.Remove(cmd.Context(), idx)
		if err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Removed %q", item.Text)
		return nil
	},
}

var queueEditCmd = &cobra.Command{
	Use:   "edit <position> <task...>",
	Short: "Rename a task",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		item, err := app.queue.Edit(cmd.Context(), idx, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Renamed task %d to %q", idx+1, item.Text)
		return nil
	},
}

var queueCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Complete the active task",
	Long:  `Remove the active task from the queue and log the focus time of the current session under it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := app.engine.CompleteActiveTask(cmd.Context())
		if err != nil {
			return err
		}
		if entry == nil {
			success(cmd.OutOrStdout(), "Task completed")
			return nil
		}
		success(cmd.OutOrStdout(), "Logged %d min for %q", entry.DurationMinutes, entry.Task)
		return nil
	},
}

func init() {
	queueCmd.AddCommand(queueAddCmd, queueListCmd, queuePromoteCmd, queueRemoveCmd, queueEditCmd, queueCompleteCmd)
	rootCmd.AddCommand(queueCmd)
}
