package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run boots the TUI program and blocks until it exits. A cancelled context
// ends the program without an error.
func Run(ctx context.Context, opts Options) error {
	if opts.Watcher != nil {
		go opts.Watcher.Run(ctx)
	}

	m := newModel(ctx, opts)
	program := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
