package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xvierd/timerdeck/internal/adapters/storage"
	"github.com/xvierd/timerdeck/internal/domain"
)

var (
	exportFormat string
	exportOutput string
	importFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export history, queue, timers and settings",
	Long: `Export everything timerdeck stores as a single JSON or YAML bundle.
Use --format csv to export only the history as a spreadsheet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if format == "" && exportOutput != "" {
			format = filepath.Ext(exportOutput)
		}

		if format == "csv" {
			entries, err := app.storage.History().Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), exportOutput, func(w io.Writer) error {
				return exportCSV(w, entries)
			})
		}

		f, err := storage.ParseFormat(format)
		if err != nil {
			return err
		}
		bundle, err := storage.Export(cmd.Context(), app.storage)
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}
		data, err := storage.EncodeBundle(bundle, f)
		if err != nil {
			return err
		}
		err = writeOutput(cmd.OutOrStdout(), exportOutput, func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		})
		if err == nil && exportOutput != "" {
			success(cmd.OutOrStdout(), "Exported %d history entries to %s", len(bundle.History), exportOutput)
		}
		return err
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all stored data with an exported bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := importFormat
		if format == "" {
			format = filepath.Ext(args[0])
		}
		f, err := storage.ParseFormat(format)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		bundle, err := storage.DecodeBundle(data, f)
		if err != nil {
			return err
		}
		if err := storage.Import(cmd.Context(), app.storage, bundle); err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}
		success(cmd.OutOrStdout(), "Imported %d history entries, %d queued tasks and %d timers",
			len(bundle.History), len(bundle.Queue), len(bundle.Timers))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: json, yaml or csv (default from file extension, else json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Input format: json or yaml (default from file extension)")
	rootCmd.AddCommand(exportCmd, importCmd)
}

// writeOutput runs fn against path, or stdout when path is empty.
func writeOutput(stdout io.Writer, path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func exportCSV(out io.Writer, entries []domain.HistoryEntry) error {
	w := csv.NewWriter(out)

	_ = w.Write([]string{"id", "date", "task", "minutes", "mode", "branch", "interruptions", "paused_seconds"})
	for _, e := range entries {
		_ = w.Write([]string{
			strconv.FormatInt(e.ID, 10),
			e.Time().Format("2006-01-02 15:04"),
			e.Task,
			strconv.Itoa(e.DurationMinutes),
			string(e.Mode),
			e.Branch,
			strconv.Itoa(e.Interruptions),
			strconv.Itoa(e.PausedSeconds),
		})
	}
	w.Flush()
	return w.Error()
}
