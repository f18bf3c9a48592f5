package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fakeyudi/tempo/internal/history"
	"github.com/fakeyudi/tempo/internal/timer"
)

// TimerModel hosts a countdown or a stopwatch.
type TimerModel struct {
	session *timer.Session
	opts    Options
	keys    keyMap
	help    help.Model
	bar     progress.Model
	laps    viewport.Model
	input   textinput.Model
	editing bool

	tag      int
	recorded bool
	pending  []tea.Cmd
	err      error
}

// NewTimer returns a model for s.
func NewTimer(s *timer.Session, opts Options) *TimerModel {
	refresh := time.Second
	if s.Mode() == timer.Stopwatch {
		refresh = 50 * time.Millisecond
	}
	m := &TimerModel{
		session: s,
		opts:    opts.withDefaults(refresh),
		keys:    defaultKeys(),
		help:    help.New(),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		laps:    viewport.New(40, 6),
		input:   textinput.New(),
	}
	if s.Mode() == timer.Countdown {
		m.keys.only(&m.keys.Toggle, &m.keys.Reset, &m.keys.Edit, &m.keys.More, &m.keys.Less)
	} else {
		m.keys.only(&m.keys.Toggle, &m.keys.Reset, &m.keys.Lap)
	}
	m.bar.Width = 40
	m.input.Prompt = "duration: "
	m.input.Placeholder = "25 or 1h30m"
	m.input.CharLimit = 16
	s.Subscribe(m.onEvent)
	return m
}

// Session exposes the hosted session.
func (m *TimerModel) Session() *timer.Session { return m.session }

func (m *TimerModel) Init() tea.Cmd {
	if m.opts.AutoStart {
		return m.start()
	}
	return nil
}

func (m *TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = clamp(msg.Width-8, 10, 60)
		m.help.Width = msg.Width
		m.laps.Width = clamp(msg.Width-6, 20, 60)
		m.laps.Height = clamp(msg.Height-14, 3, 20)

	case tickMsg:
		if msg.tag != m.tag || m.session.Status() != timer.Running {
			break
		}
		m.session.Tick()
		if m.session.Status() == timer.Running {
			cmd = tickAfter(m.opts.Refresh, m.tag)
		}

	case recordedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("recording history: %w", msg.err)
		}

	case tea.KeyMsg:
		if m.editing {
			cmd = m.updateInput(msg)
		} else {
			cmd = m.handleKey(msg)
		}
	}
	return m, tea.Batch(cmd, drain(&m.pending))
}

func (m *TimerModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.err = nil
	s := m.session
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.pending = nil
		return tea.Sequence(m.logRun(s.IsFinished()), tea.Quit)

	case key.Matches(msg, m.keys.Toggle):
		switch s.Status() {
		case timer.Running:
			s.Pause()
			m.tag++
			return nil
		case timer.Finished:
			s.Reset()
		}
		return m.start()

	case key.Matches(msg, m.keys.Reset):
		cmd := m.logRun(s.IsFinished())
		s.Reset()
		m.tag++
		return cmd

	case key.Matches(msg, m.keys.Lap):
		if _, err := s.RecordLap(); err != nil {
			m.err = err
		}

	case key.Matches(msg, m.keys.Edit):
		if s.Status() != timer.Stopped {
			m.err = fmt.Errorf("reset the timer before changing its duration")
			return nil
		}
		m.editing = true
		m.input.SetValue("")
		return m.input.Focus()

	case key.Matches(msg, m.keys.More):
		m.err = s.Configure(int(s.ConfiguredDuration()/time.Second) + 60)

	case key.Matches(msg, m.keys.Less):
		m.err = s.Configure(int(s.ConfiguredDuration()/time.Second) - 60)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *TimerModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.err = m.session.ConfigureString(m.input.Value())
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

func (m *TimerModel) start() tea.Cmd {
	if err := m.session.Start(); err != nil {
		m.err = err
		return nil
	}
	m.tag++
	return tickAfter(m.opts.Refresh, m.tag)
}

func (m *TimerModel) onEvent(ev timer.Event) {
	switch ev.Type {
	case timer.EventStarted:
		m.recorded = false
	case timer.EventFinished:
		m.tag++
		m.pending = append(m.pending, m.opts.Player.Cmd(m.opts.Ringtone), m.logRun(true))
	case timer.EventLap, timer.EventReset:
		m.refreshLaps()
	}
}

// logRun records the current run once. Stopwatch runs always count as
// completed.
func (m *TimerModel) logRun(completed bool) tea.Cmd {
	s := m.session
	if m.recorded || s.StartedAt().IsZero() {
		return nil
	}
	m.recorded = true
	kind := history.KindCountdown
	if s.Mode() == timer.Stopwatch {
		kind = history.KindStopwatch
		completed = true
	}
	return m.opts.record(history.Entry{
		Kind:      kind,
		StartedAt: s.StartedAt(),
		StoppedAt: m.opts.Clock.Now(),
		Duration:  s.Elapsed(),
		Laps:      len(s.Laps()),
		Completed: completed,
	})
}

func (m *TimerModel) refreshLaps() {
	laps := m.session.Laps()
	var sb strings.Builder
	for i := len(laps) - 1; i >= 0; i-- {
		l := laps[i]
		fmt.Fprintf(&sb, "%s  %s  %s\n",
			labelStyle.Render(fmt.Sprintf("#%-3d", l.Index)),
			timer.FormatMillis(l.Elapsed.Milliseconds()),
			dimStyle.Render("+"+timer.FormatMillis(l.Split.Milliseconds())),
		)
	}
	m.laps.SetContent(sb.String())
	m.laps.GotoTop()
}

func (m *TimerModel) fraction() float64 {
	total := m.session.ConfiguredDuration()
	if total <= 0 {
		return 0
	}
	return float64(m.session.Elapsed()) / float64(total)
}

func (m *TimerModel) View() string {
	s := m.session
	var sb strings.Builder

	title := "tempo  " + s.Mode().String()
	if m.opts.Label != "" {
		title += "  " + m.opts.Label
	}
	sb.WriteString(titleStyle.Render(title) + "\n")
	sb.WriteString(counterStyle.Render(s.Format()) + "\n")

	status := s.Status().String()
	line := statusStyle(status).Render(status)
	if s.IsFinished() {
		line = finishedStyle.Render("time's up!")
	}
	sb.WriteString("  " + line + "\n\n")

	if s.Mode() == timer.Countdown {
		sb.WriteString("  " + m.bar.ViewAs(m.fraction()) + "\n")
		total := timer.FormatSeconds(int64(s.ConfiguredDuration() / time.Second))
		sb.WriteString("  " + dimStyle.Render("of "+total) + "\n")
	} else if n := len(s.Laps()); n > 0 {
		sb.WriteString("  " + labelStyle.Render(fmt.Sprintf("Laps (%d)", n)) + "\n")
		sb.WriteString(boxStyle.Render(m.laps.View()) + "\n")
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

func clamp(v, low, high int) int {
	return max(low, min(v, high))
}
