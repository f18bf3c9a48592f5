// Package pomodoro alternates focus and break countdowns.
package pomodoro

import (
	"time"

	"github.com/fakeyudi/tempo/internal/clock"
	"github.com/fakeyudi/tempo/internal/timer"
)

// Phase is the part of the cycle a countdown belongs to.
type Phase int

const (
	Focus Phase = iota
	Break
)

func (p Phase) String() string {
	if p == Break {
		return "break"
	}
	return "focus"
}

// Next returns the phase that follows p.
func (p Phase) Next() Phase {
	if p == Focus {
		return Break
	}
	return Focus
}

const (
	DefaultFocus = 25 * time.Minute
	DefaultBreak = 5 * time.Minute
	minPhase     = time.Minute
)

// Options configures a Cycle.
type Options struct {
	Focus time.Duration
	Break time.Duration
	// AutoStart starts the next phase as soon as the previous one finishes.
	AutoStart bool
}

func (o Options) normalized() Options {
	if o.Focus == 0 {
		o.Focus = DefaultFocus
	}
	if o.Break == 0 {
		o.Break = DefaultBreak
	}
	o.Focus = clampPhase(o.Focus)
	o.Break = clampPhase(o.Break)
	return o
}

// clampPhase rounds to whole minutes with a floor of one minute.
func clampPhase(d time.Duration) time.Duration {
	d = d.Round(time.Minute)
	if d < minPhase {
		return minPhase
	}
	return d
}

// Cycle drives one countdown session through alternating phases.
type Cycle struct {
	opts      Options
	phase     Phase
	session   *timer.Session
	completed int
	onSwitch  []func(from, to Phase)
}

// New returns a stopped cycle in the Focus phase.
func New(c clock.Clock, opts Options) (*Cycle, error) {
	opts = opts.normalized()
	s, err := timer.NewCountdown(c, int(opts.Focus/time.Second))
	if err != nil {
		return nil, err
	}
	return &Cycle{opts: opts, phase: Focus, session: s}, nil
}

// Session is the countdown for the current phase. The same session is
// reused across phases so observers stay subscribed.
func (c *Cycle) Session() *timer.Session { return c.session }

// Phase is the current phase.
func (c *Cycle) Phase() Phase { return c.phase }

// Completed counts focus phases that ran to zero.
func (c *Cycle) Completed() int { return c.completed }

// Options returns the effective durations.
func (c *Cycle) Options() Options { return c.opts }

// OnSwitch registers fn to run after each automatic phase change.
func (c *Cycle) OnSwitch(fn func(from, to Phase)) {
	c.onSwitch = append(c.onSwitch, fn)
}

// Toggle starts, pauses or resumes the current phase. Pausing a phase
// whose time has already run out finishes it, and the cycle switches just
// as it would on the next tick.
func (c *Cycle) Toggle() error {
	switch c.session.Status() {
	case timer.Running:
		c.session.Pause()
		if c.session.IsFinished() {
			return c.advance()
		}
		return nil
	case timer.Finished:
		return c.advance()
	}
	return c.session.Start()
}

// Stop resets the current phase to its full duration.
func (c *Cycle) Stop() {
	c.reinit()
}

// SwitchPhase moves to p, discarding progress in the current phase.
func (c *Cycle) SwitchPhase(p Phase) error {
	if p == c.phase {
		return nil
	}
	c.phase = p
	return c.reinit()
}

// SetDurations changes the phase lengths. The current phase only picks up
// the new length if it has not been started.
func (c *Cycle) SetDurations(focus, brk time.Duration) error {
	c.opts.Focus = clampPhase(focus)
	c.opts.Break = clampPhase(brk)
	if c.session.Status() == timer.Stopped {
		return c.reinit()
	}
	return nil
}

// Tick advances the current phase. When it finishes, the cycle switches to
// the other phase and reports true.
func (c *Cycle) Tick() (bool, error) {
	if !c.session.Tick() && !c.session.IsFinished() {
		return false, nil
	}
	return true, c.advance()
}

// advance counts a finished focus phase, moves to the other phase and
// starts it when AutoStart is set.
func (c *Cycle) advance() error {
	from := c.phase
	if from == Focus {
		c.completed++
	}
	c.phase = from.Next()
	if err := c.reinit(); err != nil {
		return err
	}
	for _, fn := range c.onSwitch {
		fn(from, c.phase)
	}
	if c.opts.AutoStart {
		return c.session.Start()
	}
	return nil
}

func (c *Cycle) duration(p Phase) time.Duration {
	if p == Break {
		return c.opts.Break
	}
	return c.opts.Focus
}

func (c *Cycle) reinit() error {
	c.session.Reset()
	return c.session.Configure(int(c.duration(c.phase) / time.Second))
}
