package pomodoro_test

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/fakeyudi/tempo/internal/clock"
	"github.com/fakeyudi/tempo/internal/pomodoro"
	"github.com/fakeyudi/tempo/internal/timer"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func run(c *pomodoro.Cycle, fc *clock.Fake, d time.Duration) (switched int) {
	for i := time.Duration(0); i < d; i += time.Second {
		fc.Advance(time.Second)
		ok, _ := c.Tick()
		if ok {
			switched++
		}
	}
	return switched
}

func TestCycleDefaults(t *testing.T) {
	c, err := pomodoro.New(clock.NewFake(epoch), pomodoro.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if c.Phase() != pomodoro.Focus {
		t.Errorf("Phase = %v, want focus", c.Phase())
	}
	if v := c.Session().DisplayValue(); v != 1500 {
		t.Errorf("DisplayValue = %d, want 1500", v)
	}
	if c.Session().Status() != timer.Stopped {
		t.Errorf("Status = %v, want stopped", c.Session().Status())
	}
}

func TestCycleSwitchesWithoutAutoStart(t *testing.T) {
	fc := clock.NewFake(epoch)
	c, err := pomodoro.New(fc, pomodoro.Options{Focus: 2 * time.Minute, Break: time.Minute})
	if err != nil {
		t.Fatal(err)
	}
	var switches []string
	c.OnSwitch(func(from, to pomodoro.Phase) { switches = append(switches, from.String()+">"+to.String()) })

	if err := c.Toggle(); err != nil {
		t.Fatal(err)
	}
	if got := run(c, fc, 2*time.Minute); got != 1 {
		t.Fatalf("switches = %d, want 1", got)
	}
	if c.Phase() != pomodoro.Break {
		t.Errorf("Phase = %v, want break", c.Phase())
	}
	if c.Completed() != 1 {
		t.Errorf("Completed = %d, want 1", c.Completed())
	}
	if c.Session().Status() != timer.Stopped {
		t.Errorf("break should wait for the user, Status = %v", c.Session().Status())
	}
	if v := c.Session().DisplayValue(); v != 60 {
		t.Errorf("break DisplayValue = %d, want 60", v)
	}
	if len(switches) != 1 || switches[0] != "focus>break" {
		t.Errorf("OnSwitch calls = %v", switches)
	}

	// Nothing happens while the break waits.
	if got := run(c, fc, 5*time.Minute); got != 0 {
		t.Errorf("stopped break switched %d times", got)
	}
}

func TestCycleAutoStart(t *testing.T) {
	fc := clock.NewFake(epoch)
	c, err := pomodoro.New(fc, pomodoro.Options{Focus: time.Minute, Break: time.Minute, AutoStart: true})
	if err != nil {
		t.Fatal(err)
	}
	_ = c.Toggle()
	if got := run(c, fc, 4*time.Minute); got != 4 {
		t.Fatalf("switches = %d, want 4", got)
	}
	if c.Completed() != 2 {
		t.Errorf("Completed = %d, want 2", c.Completed())
	}
	if c.Phase() != pomodoro.Focus || c.Session().Status() != timer.Running {
		t.Errorf("Phase/Status = %v/%v, want focus/running", c.Phase(), c.Session().Status())
	}
}

func TestCycleToggleAndStop(t *testing.T) {
	fc := clock.NewFake(epoch)
	c, _ := pomodoro.New(fc, pomodoro.Options{Focus: 10 * time.Minute})
	_ = c.Toggle()
	run(c, fc, 30*time.Second)
	_ = c.Toggle()
	if c.Session().Status() != timer.Paused {
		t.Fatalf("Status = %v, want paused", c.Session().Status())
	}
	_ = c.Toggle()
	if c.Session().Status() != timer.Running {
		t.Fatalf("Status = %v, want running", c.Session().Status())
	}
	c.Stop()
	if c.Session().Status() != timer.Stopped || c.Session().DisplayValue() != 600 {
		t.Errorf("after Stop: %v %d", c.Session().Status(), c.Session().DisplayValue())
	}
}

func TestPauseAfterPhaseRanOutSwitches(t *testing.T) {
	for _, auto := range []bool{false, true} {
		fc := clock.NewFake(epoch)
		c, _ := pomodoro.New(fc, pomodoro.Options{Focus: time.Minute, Break: 2 * time.Minute, AutoStart: auto})
		var switches int
		c.OnSwitch(func(from, to pomodoro.Phase) { switches++ })

		_ = c.Toggle()
		// The focus minute runs out with no tick in between, e.g. while the
		// machine slept.
		fc.Advance(61 * time.Second)
		if err := c.Toggle(); err != nil {
			t.Fatalf("auto=%v: Toggle after time ran out: %v", auto, err)
		}
		if c.Phase() != pomodoro.Break || c.Completed() != 1 || switches != 1 {
			t.Fatalf("auto=%v: phase=%v completed=%d switches=%d, want break/1/1", auto, c.Phase(), c.Completed(), switches)
		}
		want := timer.Stopped
		if auto {
			want = timer.Running
		}
		if st := c.Session().Status(); st != want {
			t.Errorf("auto=%v: break Status = %v, want %v", auto, st, want)
		}
		if ok, _ := c.Tick(); ok {
			t.Errorf("auto=%v: the late tick switched again", auto)
		}
		if !auto {
			if err := c.Toggle(); err != nil {
				t.Errorf("starting the break: %v", err)
			}
		}
		if st := c.Session().Status(); st != timer.Running {
			t.Errorf("auto=%v: break Status = %v, want running", auto, st)
		}
	}
}

func TestSwitchPhaseResets(t *testing.T) {
	fc := clock.NewFake(epoch)
	c, _ := pomodoro.New(fc, pomodoro.Options{Focus: 10 * time.Minute, Break: 3 * time.Minute})
	_ = c.Toggle()
	run(c, fc, time.Minute)

	if err := c.SwitchPhase(pomodoro.Break); err != nil {
		t.Fatal(err)
	}
	if c.Session().Status() != timer.Stopped || c.Session().DisplayValue() != 180 {
		t.Errorf("after SwitchPhase: %v %d", c.Session().Status(), c.Session().DisplayValue())
	}
	if c.Completed() != 0 {
		t.Errorf("manual switch counted as completed")
	}
	// Switching to the current phase is a no-op.
	_ = c.Toggle()
	_ = c.SwitchPhase(pomodoro.Break)
	if c.Session().Status() != timer.Running {
		t.Errorf("SwitchPhase to same phase reset the session")
	}
}

func TestSetDurationsOnlyWhenStopped(t *testing.T) {
	fc := clock.NewFake(epoch)
	c, _ := pomodoro.New(fc, pomodoro.Options{})
	if err := c.SetDurations(50*time.Minute, 10*time.Minute); err != nil {
		t.Fatal(err)
	}
	if v := c.Session().DisplayValue(); v != 3000 {
		t.Errorf("DisplayValue = %d, want 3000", v)
	}

	_ = c.Toggle()
	run(c, fc, time.Minute)
	if err := c.SetDurations(20*time.Minute, 10*time.Minute); err != nil {
		t.Fatal(err)
	}
	if v := c.Session().DisplayValue(); v != 2940 {
		t.Errorf("running phase changed length: DisplayValue = %d, want 2940", v)
	}
	if c.Options().Focus != 20*time.Minute {
		t.Errorf("Options().Focus = %v", c.Options().Focus)
	}
}

// Feature: tempo, Property 6: Phase lengths are whole minutes, at least one
func TestPhaseClamp(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		focus := time.Duration(rapid.Int64Range(1, int64(3*time.Hour)).Draw(rt, "focus"))
		brk := time.Duration(rapid.Int64Range(1, int64(3*time.Hour)).Draw(rt, "break"))
		c, err := pomodoro.New(clock.NewFake(epoch), pomodoro.Options{Focus: focus, Break: brk})
		if err != nil {
			rt.Fatalf("New: %v", err)
		}
		for _, d := range []time.Duration{c.Options().Focus, c.Options().Break} {
			if d < time.Minute || d%time.Minute != 0 {
				rt.Fatalf("phase length %v is not a whole number of minutes >= 1m", d)
			}
		}
	})
}
