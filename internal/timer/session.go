// Package timer implements the countdown/stopwatch state machine shared by
// every tempo widget.
//
// Elapsed time is always derived from a wall-clock anchor captured at Start
// plus the time accumulated before the last Pause, so late or missed ticks
// never skew the counter. A Session is not safe for concurrent use; it is
// owned by a single host loop.
package timer

import (
	"fmt"
	"time"

	"github.com/fakeyudi/tempo/internal/clock"
)

// maxDuration caps configured countdowns to keep duration arithmetic far
// from overflow.
const maxDuration = 100 * 24 * time.Hour

// maxSeconds is the longest countdown Configure accepts.
const maxSeconds = int(maxDuration / time.Second)

// Session is one timer widget's state.
type Session struct {
	mode       Mode
	clock      clock.Clock
	configured time.Duration

	status      Status
	anchor      time.Time     // wall-clock time of the last Start while Running
	accumulated time.Duration // time spent Running before anchor
	startedAt   time.Time     // first Start since the last Reset

	laps      []Lap
	alarm     *alarm
	observers []func(Event)
}

// NewCountdown returns a stopped countdown configured for seconds.
func NewCountdown(c clock.Clock, seconds int) (*Session, error) {
	s := &Session{mode: Countdown, clock: orReal(c)}
	if err := s.Configure(seconds); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStopwatch returns a stopped stopwatch at zero.
func NewStopwatch(c clock.Clock) *Session {
	return &Session{mode: Stopwatch, clock: orReal(c)}
}

func orReal(c clock.Clock) clock.Clock {
	if c == nil {
		return clock.Real{}
	}
	return c
}

// Subscribe registers fn to be called synchronously for every event.
func (s *Session) Subscribe(fn func(Event)) {
	if fn != nil {
		s.observers = append(s.observers, fn)
	}
}

// Configure sets the countdown duration. Only a stopped countdown can be
// configured.
func (s *Session) Configure(seconds int) error {
	if s.mode != Countdown {
		return transitionError("configure a stopwatch", s.status)
	}
	if s.status != Stopped {
		return transitionError("configure", s.status)
	}
	if seconds <= 0 || seconds > maxSeconds {
		return fmt.Errorf("%w: %d seconds", ErrInvalidConfig, seconds)
	}
	s.configured = time.Duration(seconds) * time.Second
	return nil
}

// ConfigureString parses user input with ParseDuration and applies it.
func (s *Session) ConfigureString(input string) error {
	seconds, err := ParseDuration(input)
	if err != nil {
		return err
	}
	return s.Configure(seconds)
}

// Start begins a run from Stopped or resumes from Paused.
func (s *Session) Start() error {
	now := s.clock.Now()
	switch s.status {
	case Running:
		return ErrAlreadyRunning
	case Finished:
		return transitionError("start", s.status)
	case Stopped:
		s.accumulated = 0
		s.startedAt = now
		s.anchor = now
		s.status = Running
		s.emit(EventStarted, now)
	case Paused:
		s.anchor = now
		s.status = Running
		s.emit(EventResumed, now)
	}
	return nil
}

// Pause freezes a running session. It is a no-op in any other status.
// A countdown already past zero finishes instead of pausing.
func (s *Session) Pause() {
	if s.status != Running {
		return
	}
	now := s.clock.Now()
	s.accumulated = s.elapsedAt(now)
	s.anchor = time.Time{}
	if s.exhausted() {
		s.finish(now)
		return
	}
	s.status = Paused
	s.emit(EventPaused, now)
}

// Tick refreshes a running session against the clock. It returns true
// exactly once per run: on the tick that finishes a countdown.
func (s *Session) Tick() bool {
	if s.status != Running || s.mode != Countdown {
		return false
	}
	now := s.clock.Now()
	if s.elapsedAt(now) < s.configured {
		return false
	}
	s.accumulated = s.configured
	s.anchor = time.Time{}
	s.finish(now)
	return true
}

// Reset returns the session to Stopped with no accumulated time and no laps.
// The alarm is left untouched.
func (s *Session) Reset() {
	s.status = Stopped
	s.accumulated = 0
	s.anchor = time.Time{}
	s.startedAt = time.Time{}
	s.laps = nil
	s.emit(EventReset, s.clock.Now())
}

// RecordLap appends the current elapsed time to a running stopwatch.
func (s *Session) RecordLap() (Lap, error) {
	if s.mode != Stopwatch {
		return Lap{}, transitionError("record a lap on a countdown", s.status)
	}
	if s.status != Running {
		return Lap{}, transitionError("record a lap", s.status)
	}
	now := s.clock.Now()
	elapsed := s.elapsedAt(now)
	var prev time.Duration
	if n := len(s.laps); n > 0 {
		prev = s.laps[n-1].Elapsed
	}
	if elapsed < prev {
		elapsed = prev
	}
	lap := Lap{Index: len(s.laps) + 1, Elapsed: elapsed, Split: elapsed - prev}
	s.laps = append(s.laps, lap)

	ev := s.event(EventLap, now)
	ev.Lap = &lap
	s.notify(ev)
	return lap, nil
}

// Mode reports whether the session counts down or up.
func (s *Session) Mode() Mode { return s.mode }

// Status reports the lifecycle state.
func (s *Session) Status() Status { return s.status }

// IsFinished reports whether a countdown has reached zero.
func (s *Session) IsFinished() bool { return s.status == Finished }

// ConfiguredDuration is the countdown length; zero for a stopwatch.
func (s *Session) ConfiguredDuration() time.Duration { return s.configured }

// StartedAt is the wall-clock time of the first Start since the last Reset.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Elapsed is the time spent Running, capped at the configured duration for
// a countdown.
func (s *Session) Elapsed() time.Duration {
	return s.elapsedAt(s.clock.Now())
}

// Remaining is the countdown time left; zero for a stopwatch.
func (s *Session) Remaining() time.Duration {
	if s.mode != Countdown {
		return 0
	}
	return s.configured - s.Elapsed()
}

// DisplayValue is the counter a host renders: whole seconds remaining for a
// countdown (rounded up, so it reads zero only when time is up) or whole
// milliseconds elapsed for a stopwatch.
func (s *Session) DisplayValue() int64 {
	return s.displayAt(s.clock.Now())
}

// Laps returns a copy of the recorded laps in order.
func (s *Session) Laps() []Lap {
	out := make([]Lap, len(s.laps))
	copy(out, s.laps)
	return out
}

func (s *Session) elapsedAt(now time.Time) time.Duration {
	elapsed := s.accumulated
	if s.status == Running {
		if d := now.Sub(s.anchor); d > 0 {
			elapsed += d
		}
	}
	if s.mode == Countdown && elapsed > s.configured {
		elapsed = s.configured
	}
	return elapsed
}

func (s *Session) exhausted() bool {
	return s.mode == Countdown && s.accumulated >= s.configured
}

func (s *Session) finish(now time.Time) {
	s.status = Finished
	s.emit(EventFinished, now)
}

func (s *Session) event(t EventType, now time.Time) Event {
	return Event{
		Type:   t,
		Status: s.status,
		Value:  s.displayAt(now),
		At:     now,
	}
}

func (s *Session) displayAt(now time.Time) int64 {
	elapsed := s.elapsedAt(now)
	if s.mode == Stopwatch {
		return elapsed.Milliseconds()
	}
	return int64((s.configured - elapsed + time.Second - 1) / time.Second)
}

func (s *Session) emit(t EventType, now time.Time) {
	s.notify(s.event(t, now))
}

func (s *Session) notify(ev Event) {
	for _, fn := range s.observers {
		fn(ev)
	}
}
