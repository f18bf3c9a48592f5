package tui

import (
	"bytes"
	"testing"
	"time"

	"github.com/fakeyudi/tempo/internal/timer"
)

func TestPatterns(t *testing.T) {
	cases := map[string]int{
		timer.RingtoneBeep:   3,
		timer.RingtoneChime:  2,
		timer.RingtoneBell:   1,
		timer.RingtoneMelody: 3,
		"unknown":            1,
	}
	for id, bells := range cases {
		var buf bytes.Buffer
		var slept time.Duration
		p := &Player{Out: &buf, Sleep: func(d time.Duration) { slept += d }}
		p.Play(id)
		if got := bytes.Count(buf.Bytes(), []byte(bel)); got != bells {
			t.Errorf("%s: %d bells, want %d", id, got, bells)
		}
		var want time.Duration
		for _, gap := range Pattern(id) {
			want += gap
		}
		if slept != want {
			t.Errorf("%s: slept %v, want %v", id, slept, want)
		}
	}
}

func TestNilPlayerIsSilent(t *testing.T) {
	var p *Player
	p.Play(timer.RingtoneBell)
	if cmd := p.Cmd(timer.RingtoneBell); cmd != nil {
		t.Error("nil player should not return a command")
	}
}
