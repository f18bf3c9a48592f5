// Package plain drives timer sessions without a TUI, printing one line per
// visible change. It is used when stdout is not a terminal or --plain is set.
package plain

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fakeyudi/tempo/internal/clock"
	"github.com/fakeyudi/tempo/internal/history"
	"github.com/fakeyudi/tempo/internal/timer"
)

// Runner hosts one session at a time.
type Runner struct {
	Out   io.Writer
	Err   io.Writer // warnings; discarded when nil
	Clock clock.Clock
	Ticks <-chan time.Time

	// Laps receives one value per lap request while a stopwatch runs.
	Laps <-chan struct{}

	// Ring plays a ringtone; nil means silent.
	Ring func(ringtone string)
	// Ringtone is played when a countdown finishes; empty means the default.
	Ringtone string

	// Recorder logs finished sessions; nil disables history.
	Recorder history.Recorder
	Label    string
}

// Countdown starts s and prints the remaining time each second until it
// finishes or ctx is cancelled.
func (r *Runner) Countdown(ctx context.Context, s *timer.Session) error {
	r.subscribe(s)
	if err := s.Start(); err != nil {
		return err
	}
	last := s.DisplayValue()
	fmt.Fprintln(r.Out, s.Format())

	for {
		select {
		case <-ctx.Done():
			s.Pause()
			fmt.Fprintf(r.Out, "stopped with %s left\n", s.Format())
			r.record(ctx, history.KindCountdown, s.StartedAt(), s.Elapsed(), 0, s.IsFinished())
			return nil

		case <-r.Ticks:
			finished := s.Tick()
			if v := s.DisplayValue(); v != last {
				last = v
				fmt.Fprintln(r.Out, s.Format())
			}
			if finished {
				fmt.Fprintln(r.Out, "time's up")
				r.record(ctx, history.KindCountdown, s.StartedAt(), s.Elapsed(), 0, true)
				return nil
			}
		}
	}
}

// Stopwatch starts s and prints the elapsed time once per second. It stops
// when ctx is cancelled or, if limit is positive, once limit has elapsed.
func (r *Runner) Stopwatch(ctx context.Context, s *timer.Session, limit time.Duration) error {
	r.subscribe(s)
	if err := s.Start(); err != nil {
		return err
	}
	lastSecond := s.DisplayValue() / 1000
	fmt.Fprintln(r.Out, s.Format())

	stop := func() error {
		s.Pause()
		fmt.Fprintf(r.Out, "stopped at %s\n", s.Format())
		r.record(ctx, history.KindStopwatch, s.StartedAt(), s.Elapsed(), len(s.Laps()), true)
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return stop()

		case <-r.Laps:
			if _, err := s.RecordLap(); err != nil {
				r.warn("lap: %v", err)
			}

		case <-r.Ticks:
			if limit > 0 && s.Elapsed() >= limit {
				return stop()
			}
			if sec := s.DisplayValue() / 1000; sec != lastSecond {
				lastSecond = sec
				fmt.Fprintln(r.Out, s.Format())
			}
		}
	}
}

// Alarm waits until the alarm armed on s fires, checking it against the
// clock in loc on every tick.
func (r *Runner) Alarm(ctx context.Context, s *timer.Session, loc *time.Location) error {
	st := s.AlarmStatus()
	if !st.Set {
		return fmt.Errorf("%w: no alarm set", timer.ErrInvalidTime)
	}
	if loc == nil {
		loc = time.Local
	}
	r.subscribe(s)
	waitingSince := r.Clock.Now()
	fmt.Fprintf(r.Out, "alarm set for %s (%s)\n", st.Target, st.Ringtone)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.Out, "alarm cancelled")
			return nil

		case <-r.Ticks:
			now := r.Clock.Now().In(loc)
			if s.CheckAlarm(now) {
				fmt.Fprintf(r.Out, "%s alarm! (%s)\n", now.Format("15:04"), st.Ringtone)
				r.record(ctx, history.KindAlarm, waitingSince, 0, 0, true)
				return nil
			}
		}
	}
}

func (r *Runner) subscribe(s *timer.Session) {
	s.Subscribe(func(ev timer.Event) {
		switch ev.Type {
		case timer.EventLap:
			fmt.Fprintf(r.Out, "lap %d  %s  (+%s)\n", ev.Lap.Index,
				timer.FormatMillis(ev.Lap.Elapsed.Milliseconds()),
				timer.FormatMillis(ev.Lap.Split.Milliseconds()))
		case timer.EventFinished:
			r.ring(r.Ringtone)
		case timer.EventAlarm:
			r.ring(ev.Ringtone)
		}
	})
}

func (r *Runner) ring(ringtone string) {
	if ringtone == "" {
		ringtone = timer.DefaultRingtone
	}
	if r.Ring != nil {
		r.Ring(ringtone)
	}
}

func (r *Runner) record(ctx context.Context, kind history.Kind, started time.Time, d time.Duration, laps int, completed bool) {
	if r.Recorder == nil {
		return
	}
	e := &history.Entry{
		Kind:      kind,
		Label:     r.Label,
		StartedAt: started,
		StoppedAt: r.Clock.Now(),
		Duration:  d,
		Laps:      laps,
		Completed: completed,
	}
	// Cancellation ends the run; the final entry is still written.
	if err := r.Recorder.Add(context.WithoutCancel(ctx), e); err != nil {
		r.warn("could not record history: %v", err)
	}
}

func (r *Runner) warn(format string, args ...any) {
	if r.Err != nil {
		fmt.Fprintf(r.Err, "warning: "+format+"\n", args...)
	}
}
