package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fakeyudi/tempo/internal/history"
	"github.com/fakeyudi/tempo/internal/pomodoro"
	"github.com/fakeyudi/tempo/internal/timer"
)

// PomodoroModel hosts a focus/break cycle.
type PomodoroModel struct {
	cycle *pomodoro.Cycle
	opts  Options
	keys  keyMap
	help  help.Model
	bar   progress.Model

	tag        int
	runStarted time.Time // StartedAt of the phase that just finished
	pending    []tea.Cmd
	err        error
}

// NewPomodoro returns a model for c. Options.Clock must be the clock c was
// built with.
func NewPomodoro(c *pomodoro.Cycle, opts Options) *PomodoroModel {
	m := &PomodoroModel{
		cycle: c,
		opts:  opts.withDefaults(time.Second),
		keys:  defaultKeys(),
		help:  help.New(),
		bar:   progress.New(progress.WithGradient("#FF7CCB", "#FDFF8C"), progress.WithoutPercentage()),
	}
	m.keys.only(&m.keys.Toggle, &m.keys.Reset, &m.keys.Switch)
	m.keys.Reset.SetHelp("r", "stop")
	m.bar.Width = 40
	c.Session().Subscribe(func(ev timer.Event) {
		if ev.Type == timer.EventFinished {
			m.runStarted = c.Session().StartedAt()
		}
	})
	c.OnSwitch(m.onSwitch)
	return m
}

// Cycle exposes the hosted cycle.
func (m *PomodoroModel) Cycle() *pomodoro.Cycle { return m.cycle }

func (m *PomodoroModel) Init() tea.Cmd {
	if m.opts.AutoStart {
		return m.toggle()
	}
	return nil
}

func (m *PomodoroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = clamp(msg.Width-8, 10, 60)
		m.help.Width = msg.Width

	case tickMsg:
		if msg.tag != m.tag || m.cycle.Session().Status() != timer.Running {
			break
		}
		if _, err := m.cycle.Tick(); err != nil {
			m.err = err
		}
		if m.cycle.Session().Status() == timer.Running {
			cmd = tickAfter(m.opts.Refresh, m.tag)
		}

	case recordedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("recording history: %w", msg.err)
		}

	case tea.KeyMsg:
		m.err = nil
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			cmd = m.toggle()
		case key.Matches(msg, m.keys.Reset):
			m.cycle.Stop()
			m.tag++
		case key.Matches(msg, m.keys.Switch):
			m.err = m.cycle.SwitchPhase(m.cycle.Phase().Next())
			m.tag++
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, tea.Batch(cmd, drain(&m.pending))
}

func (m *PomodoroModel) toggle() tea.Cmd {
	if err := m.cycle.Toggle(); err != nil {
		m.err = err
		return nil
	}
	m.tag++
	if m.cycle.Session().Status() == timer.Running {
		return tickAfter(m.opts.Refresh, m.tag)
	}
	return nil
}

// onSwitch runs after a phase ran to zero.
func (m *PomodoroModel) onSwitch(from, to pomodoro.Phase) {
	now := m.opts.Clock.Now()
	d := m.phaseLength(from)
	m.pending = append(m.pending,
		m.opts.Player.Cmd(m.opts.Ringtone),
		m.opts.record(history.Entry{
			Kind:      history.KindPomodoro,
			Label:     from.String(),
			StartedAt: m.runStarted,
			StoppedAt: now,
			Duration:  d,
			Completed: true,
		}),
	)
	m.tag++
}

func (m *PomodoroModel) phaseLength(p pomodoro.Phase) time.Duration {
	if p == pomodoro.Break {
		return m.cycle.Options().Break
	}
	return m.cycle.Options().Focus
}

func (m *PomodoroModel) View() string {
	s := m.cycle.Session()
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("tempo  pomodoro") + "\n")

	phase := m.cycle.Phase().String()
	phaseStyle := runningStyle
	if m.cycle.Phase() == pomodoro.Break {
		phaseStyle = pausedStyle
	}
	sb.WriteString("\n  " + phaseStyle.Render(strings.ToUpper(phase)) + "\n")
	sb.WriteString(counterStyle.Render(s.Format()) + "\n")

	status := s.Status().String()
	sb.WriteString("  " + statusStyle(status).Render(status) + "\n\n")

	frac := 0.0
	if total := s.ConfiguredDuration(); total > 0 {
		frac = float64(s.Elapsed()) / float64(total)
	}
	sb.WriteString("  " + m.bar.ViewAs(frac) + "\n\n")

	sb.WriteString(fmt.Sprintf("  %s %d   %s %s / %s\n",
		labelStyle.Render("Completed:"), m.cycle.Completed(),
		labelStyle.Render("Focus/Break:"),
		timer.FormatSeconds(int64(m.cycle.Options().Focus/time.Second)),
		timer.FormatSeconds(int64(m.cycle.Options().Break/time.Second)),
	))
	if m.cycle.Options().AutoStart {
		sb.WriteString("  " + dimStyle.Render("next phase starts automatically") + "\n")
	}

	if m.err != nil {
		sb.WriteString("\n  " + errorStyle.Render(m.err.Error()) + "\n")
	}
	sb.WriteString("\n  " + m.help.View(m.keys) + "\n")
	return sb.String()
}
