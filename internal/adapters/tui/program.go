package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
)

// ErrNotTerminal is returned when stdout is not an interactive terminal.
var ErrNotTerminal = errors.New("the interactive interface needs a terminal")

// Run starts the full-screen interface and blocks until the user quits or
// ctx is cancelled. The sink is attached for the lifetime of the program.
func Run(ctx context.Context, sink *Sink, opts Options) error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		return ErrNotTerminal
	}
	applyAppearance(opts.Appearance)

	p := tea.NewProgram(NewModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	sink.Attach(p)
	defer sink.Detach()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}
