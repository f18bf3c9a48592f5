package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fakeyudi/tempo/internal/timer"
)

// bel is the terminal bell.
const bel = "\a"

// patterns hold the pause before each bell.
var patterns = map[string][]time.Duration{
	timer.RingtoneBeep:   {0, 150 * time.Millisecond, 150 * time.Millisecond},
	timer.RingtoneChime:  {0, 400 * time.Millisecond},
	timer.RingtoneBell:   {0},
	timer.RingtoneMelody: {0, 600 * time.Millisecond, 600 * time.Millisecond},
}

// Pattern returns the bell timing for ringtone, falling back to bell.
func Pattern(ringtone string) []time.Duration {
	if p, ok := patterns[ringtone]; ok {
		return p
	}
	return patterns[timer.DefaultRingtone]
}

// Player rings the terminal bell. A nil *Player is silent.
type Player struct {
	Out   io.Writer
	Sleep func(time.Duration)
}

// NewPlayer returns a Player writing to out.
func NewPlayer(out io.Writer) *Player {
	return &Player{Out: out, Sleep: time.Sleep}
}

// Play rings ringtone's pattern, blocking until it is done.
func (p *Player) Play(ringtone string) {
	if p == nil || p.Out == nil {
		return
	}
	for _, gap := range Pattern(ringtone) {
		if gap > 0 && p.Sleep != nil {
			p.Sleep(gap)
		}
		io.WriteString(p.Out, bel)
	}
}

// Cmd plays ringtone off the update loop.
func (p *Player) Cmd(ringtone string) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		p.Play(ringtone)
		return nil
	}
}
