package tui

import (
	"context"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

// DebugLogFile receives debug output when RunOptions.Debug is set.
const DebugLogFile = "tempo-debug.log"

// RunOptions configure Run.
type RunOptions struct {
	Input  io.Reader
	Output io.Writer
	Debug  bool
}

// Run runs m full-screen until it quits or ctx is cancelled.
func Run(ctx context.Context, m tea.Model, opts RunOptions) error {
	if opts.Debug {
		f, err := tea.LogToFile(DebugLogFile, "tempo")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
		log.Printf("starting %T", m)
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	p := tea.NewProgram(m, progOpts...)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
