package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// RunOptions configures Run.
type RunOptions struct {
	Input     io.Reader // Key input (default: os.Stdin).
	Output    io.Writer // Render destination (default: os.Stdout).
	AltScreen bool      // Render in the terminal's alternate screen.
}

// IsTerminal reports whether w is connected to a terminal.
func IsTerminal(w io.Writer) bool {
	return isTTY(w)
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run starts a Bubble Tea program for m and blocks until the user quits or
// ctx is cancelled. It returns the final model.
func Run(ctx context.Context, m Model, opts RunOptions) (Model, error) {
	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(m, progOpts...).Run()
	if err != nil {
		return m, fmt.Errorf("tui: %w", err)
	}
	fm, ok := final.(Model)
	if !ok {
		return m, fmt.Errorf("tui: unexpected final model %T", final)
	}
	return fm, nil
}
