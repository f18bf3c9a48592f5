package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fakeyudi/tempo/internal/clock"
	"github.com/fakeyudi/tempo/internal/worldclock"
)

type fixedResolver map[string]time.Duration

func (f fixedResolver) Resolve(_ context.Context, name string) worldclock.Zone {
	if off, ok := f[name]; ok {
		return worldclock.Zone{Name: name, Offset: off, Source: worldclock.SourceRemote}
	}
	return worldclock.Zone{Name: name, Source: worldclock.SourceLocal}
}

func TestClockModelResolvesZones(t *testing.T) {
	fc := clock.NewFake(epoch)
	r := fixedResolver{"Asia/Tokyo": 9 * time.Hour, "America/New_York": -5 * time.Hour}
	m := NewClock(r, []string{"Asia/Tokyo", "America/New_York", "Mars/Olympus"}, Options{Clock: fc, Refresh: time.Millisecond})

	if !strings.Contains(m.View(), "resolving") {
		t.Errorf("unresolved zones should say so:\n%s", m.View())
	}

	for _, msg := range collect(m.Init()) {
		m.Update(msg)
	}
	view := m.View()
	for _, want := range []string{"Tokyo", "18:00:00", "New York", "04:00:00", "Olympus", "(local)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	fc.Advance(90 * time.Second)
	m.Update(tickMsg{})
	if !strings.Contains(m.View(), "18:01:30") {
		t.Errorf("tick should refresh the time:\n%s", m.View())
	}
}

func TestClockModelReloadDropsStaleResults(t *testing.T) {
	fc := clock.NewFake(epoch)
	m := NewClock(fixedResolver{"Asia/Tokyo": 9 * time.Hour}, []string{"Asia/Tokyo"}, Options{Clock: fc, Refresh: time.Millisecond})

	stale := collect(m.Init())
	_, cmd := m.Update(keyPress("r"))
	for _, msg := range stale {
		m.Update(msg)
	}
	if m.zones[0] != nil {
		t.Error("results from before the reload should be dropped")
	}
	for _, msg := range collect(cmd) {
		m.Update(msg)
	}
	if m.zones[0] == nil {
		t.Error("reload should resolve the zone again")
	}

	_, cmd = m.Update(keyPress("q"))
	if !hasMsg[tea.QuitMsg](collect(cmd)) {
		t.Error("q should quit")
	}
}
