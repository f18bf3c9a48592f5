package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fakeyudi/tempo/internal/history"
	"github.com/fakeyudi/tempo/internal/timer"
)

// AlarmModel shows the time of day and rings when the alarm on its session
// fires.
type AlarmModel struct {
	session   *timer.Session
	loc       *time.Location
	autoClear bool
	opts      Options
	keys      keyMap
	help      help.Model
	input     textinput.Model
	editing   bool

	now          time.Time
	ringingUntil time.Time
	waitingSince time.Time
	fired        int
	pending      []tea.Cmd
	err          error
}

// NewAlarm returns a model checking s's alarm against the clock in loc.
// With autoClear the alarm is disarmed after it fires; otherwise it fires
// again the next day.
func NewAlarm(s *timer.Session, loc *time.Location, autoClear bool, opts Options) *AlarmModel {
	if loc == nil {
		loc = time.Local
	}
	m := &AlarmModel{
		session:   s,
		loc:       loc,
		autoClear: autoClear,
		opts:      opts.withDefaults(time.Second),
		keys:      defaultKeys(),
		help:      help.New(),
		input:     textinput.New(),
	}
	m.keys.only(&m.keys.Edit, &m.keys.Clear)
	m.keys.Edit.SetHelp("e", "set alarm")
	m.input.Prompt = "alarm at: "
	m.input.Placeholder = "HH:MM"
	m.input.CharLimit = 8
	m.now = m.opts.Clock.Now().In(loc)
	m.waitingSince = m.now
	s.Subscribe(m.onEvent)
	return m
}

// Fired counts how often the alarm has rung.
func (m *AlarmModel) Fired() int { return m.fired }

func (m *AlarmModel) Init() tea.Cmd {
	return tickAfter(m.opts.Refresh, 0)
}

func (m *AlarmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tickMsg:
		m.now = m.opts.Clock.Now().In(m.loc)
		m.session.CheckAlarm(m.now)
		cmd = tickAfter(m.opts.Refresh, 0)

	case recordedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("recording history: %w", msg.err)
		}

	case tea.KeyMsg:
		if m.editing {
			cmd = m.updateInput(msg)
			break
		}
		m.err = nil
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Clear):
			m.session.ClearAlarm()
			m.ringingUntil = time.Time{}
		case key.Matches(msg, m.keys.Edit):
			m.editing = true
			m.input.SetValue("")
			cmd = m.input.Focus()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, tea.Batch(cmd, drain(&m.pending))
}

func (m *AlarmModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		ringtone := m.session.AlarmStatus().Ringtone
		m.err = m.session.SetAlarm(m.input.Value(), ringtone)
		if m.err == nil {
			m.waitingSince = m.opts.Clock.Now()
		}
		m.editing = false
		m.input.Blur()
		return nil
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *AlarmModel) onEvent(ev timer.Event) {
	if ev.Type != timer.EventAlarm {
		return
	}
	m.fired++
	m.ringingUntil = m.now.Truncate(time.Minute).Add(time.Minute)
	m.pending = append(m.pending,
		m.opts.Player.Cmd(ev.Ringtone),
		m.opts.record(history.Entry{
			Kind:      history.KindAlarm,
			Label:     m.session.AlarmStatus().Target,
			StartedAt: m.waitingSince,
			StoppedAt: ev.At,
			Completed: true,
		}),
	)
	m.waitingSince = ev.At
	if m.autoClear {
		m.session.ClearAlarm()
	}
}

func (m *AlarmModel) ringing() bool {
	return !m.ringingUntil.IsZero() && m.now.Before(m.ringingUntil)
}

func (m *AlarmModel) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("tempo  alarm") + "\n")
	sb.WriteString(counterStyle.Render(m.now.Format("15:04:05")) + "\n")
	sb.WriteString("  " + dimStyle.Render(m.loc.String()) + "\n\n")

	st := m.session.AlarmStatus()
	switch {
	case m.ringing():
		sb.WriteString("  " + finishedStyle.Render("ringing!") + "\n")
	case st.Set:
		sb.WriteString(fmt.Sprintf("  %s %s  %s\n",
			labelStyle.Render("Alarm:"), timeStyle.Render(st.Target), dimStyle.Render("("+st.Ringtone+")")))
	default:
		sb.WriteString("  " + dimStyle.Render("no alarm set") + "\n")
	}
	if m.fired > 0 {
		sb.WriteString(fmt.Sprintf("  %s %d\n", labelStyle.Render("Rang:"), m.fired))
	}

	if m.editing {
		sb.WriteString("\n  " + m.input.View() + "\n")
	}
	if m.err != nil {
		sb.WriteString("\n  " + errorStyle.Render(m.err.Error()) + "\n")
	}
	sb.WriteString("\n  " + m.help.View(m.keys) + "\n")
	return sb.String()
}
