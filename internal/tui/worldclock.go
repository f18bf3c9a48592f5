package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fakeyudi/tempo/internal/worldclock"
)

// Resolver looks up a zone. *worldclock.Client implements it.
type Resolver interface {
	Resolve(ctx context.Context, name string) worldclock.Zone
}

type zoneMsg struct {
	gen   int
	index int
	zone  worldclock.Zone
}

// ClockModel shows the current time in several zones.
type ClockModel struct {
	resolver Resolver
	names    []string
	zones    []*worldclock.Zone
	gen      int
	opts     Options
	keys     keyMap
	help     help.Model
	now      time.Time
}

// NewClock returns a world clock for the IANA zone names.
func NewClock(r Resolver, names []string, opts Options) *ClockModel {
	m := &ClockModel{
		resolver: r,
		names:    names,
		zones:    make([]*worldclock.Zone, len(names)),
		opts:     opts.withDefaults(time.Second),
		keys:     defaultKeys(),
		help:     help.New(),
	}
	m.keys.only(&m.keys.Reload)
	m.now = m.opts.Clock.Now()
	return m
}

func (m *ClockModel) Init() tea.Cmd {
	return tea.Batch(m.resolveAll(), tickAfter(m.opts.Refresh, 0))
}

func (m *ClockModel) resolveAll() tea.Cmd {
	gen := m.gen
	cmds := make([]tea.Cmd, len(m.names))
	for i, name := range m.names {
		i, name := i, name
		cmds[i] = func() tea.Msg {
			return zoneMsg{gen: gen, index: i, zone: m.resolver.Resolve(context.Background(), name)}
		}
	}
	return tea.Batch(cmds...)
}

func (m *ClockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tickMsg:
		m.now = m.opts.Clock.Now()
		return m, tickAfter(m.opts.Refresh, 0)

	case zoneMsg:
		if msg.gen == m.gen && msg.index < len(m.zones) {
			z := msg.zone
			m.zones[msg.index] = &z
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reload):
			m.gen++
			m.zones = make([]*worldclock.Zone, len(m.names))
			return m, m.resolveAll()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m *ClockModel) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("tempo  world clock") + "\n\n")

	width := 0
	for _, name := range m.names {
		width = max(width, len(worldclock.DisplayName(name)))
	}
	for i, name := range m.names {
		label := labelStyle.Render(fmt.Sprintf("  %-*s", width, worldclock.DisplayName(name)))
		z := m.zones[i]
		if z == nil {
			sb.WriteString(label + "  " + dimStyle.Render("resolving…") + "\n")
			continue
		}
		line := label + "  " + timeStyle.Render(worldclock.Format(z.Now(m.now)))
		if z.Source != worldclock.SourceRemote {
			line += "  " + dimStyle.Render("("+string(z.Source)+")")
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n  " + m.help.View(m.keys) + "\n")
	return sb.String()
}
