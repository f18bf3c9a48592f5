// Package tui hosts tempo's timers as Bubble Tea programs.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fakeyudi/tempo/internal/clock"
	"github.com/fakeyudi/tempo/internal/history"
	"github.com/fakeyudi/tempo/internal/timer"
)

// Options are shared by every model.
type Options struct {
	Clock    clock.Clock
	Refresh  time.Duration
	Player   *Player          // nil is silent
	Ringtone string           // played when a countdown finishes
	Recorder history.Recorder // nil disables history
	Label    string
	// AutoStart starts the timer as soon as the program runs.
	AutoStart bool
}

func (o Options) withDefaults(refresh time.Duration) Options {
	if o.Clock == nil {
		o.Clock = clock.Real{}
	}
	if o.Refresh <= 0 {
		o.Refresh = refresh
	}
	if o.Ringtone == "" {
		o.Ringtone = timer.DefaultRingtone
	}
	return o
}

// tickMsg drives a model's refresh loop. Ticks carrying a stale tag are
// dropped, so pausing or resetting stops the loop.
type tickMsg struct{ tag int }

type recordedMsg struct{ err error }

func tickAfter(d time.Duration, tag int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return tickMsg{tag: tag} })
}

func (o Options) record(e history.Entry) tea.Cmd {
	if o.Recorder == nil {
		return nil
	}
	rec := o.Recorder
	if e.Label == "" {
		e.Label = o.Label
	}
	return func() tea.Msg {
		return recordedMsg{err: rec.Add(context.Background(), &e)}
	}
}

func drain(cmds *[]tea.Cmd) tea.Cmd {
	if len(*cmds) == 0 {
		return nil
	}
	batch := tea.Batch(*cmds...)
	*cmds = nil
	return batch
}
