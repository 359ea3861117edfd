package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

var (
	headerColor = color.New(color.Bold, color.Underline)
	accentColor = color.New(color.FgMagenta, color.Bold)
	dimColor    = color.New(color.Faint)
	okColor     = color.New(color.FgGreen)
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// newTable returns a table with a bold header row.
func newTable(header ...any) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = headerColor.Sprint(h)
	}
	tbl.AddRow(cells...)
	return tbl
}

// printTable writes tbl followed by a newline.
func printTable(w io.Writer, tbl *uitable.Table) {
	_, _ = fmt.Fprintln(w, tbl)
}

// success prints a green confirmation line.
func success(w io.Writer, format string, args ...any) {
	_, _ = okColor.Fprintf(w, format+"\n", args...)
}

// parseID parses a numeric id argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// parseIndex parses a 1-based queue position into a 0-based index.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q: positions start at 1", s)
	}
	return n - 1, nil
}

// progressBar renders a fixed-width bar for a percentage.
func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
