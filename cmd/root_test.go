package cmd

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fakeyudi/tempo/internal/clock"
)

// executeCommand runs a cobra command with the given args and captures combined output.
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	return executeCommandIn(root, strings.NewReader(""), args...)
}

// executeCommandIn is executeCommand with stdin read from in.
func executeCommandIn(root *cobra.Command, in io.Reader, args ...string) (output string, err error) {
	resetFlags(root)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(in)
	root.SetArgs(args)
	_, err = root.ExecuteC()
	return buf.String(), err
}

// resetFlags restores every flag to its default; package-level flag
// variables otherwise keep their values between executions.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// isolate points every path tempo touches at a temp dir and silences the bell.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_DATA_HOME", tmp)
	t.Setenv("TEMPO_SOUND", "false")
	t.Setenv("TEMPO_DEBUG", "")
	return tmp
}

// fastTime replaces the wall clock with a fake one that advances 100ms per
// tick, and ticks as fast as the runner consumes them.
func fastTime(t *testing.T, start time.Time) *clock.Fake {
	t.Helper()
	fc := clock.NewFake(start)
	oldClock, oldTicker := appClock, newTicker
	appClock = fc
	newTicker = func(time.Duration) (<-chan time.Time, func()) {
		ch := make(chan time.Time)
		done := make(chan struct{})
		go func() {
			for {
				fc.Advance(100 * time.Millisecond)
				select {
				case ch <- fc.Now():
				case <-done:
					return
				}
			}
		}()
		return ch, func() { close(done) }
	}
	t.Cleanup(func() {
		appClock, newTicker = oldClock, oldTicker
	})
	return fc
}

func TestBadEnvironmentFailsEveryCommand(t *testing.T) {
	isolate(t)
	t.Setenv("TEMPO_FOCUS_MINUTES", "lots")

	_, err := executeCommand(rootCmd, "preset", "list")
	if err == nil {
		t.Fatal("expected an error for a malformed TEMPO_FOCUS_MINUTES")
	}
	if !strings.Contains(err.Error(), "reading environment") {
		t.Errorf("error = %q, want it to mention the environment", err)
	}
}

func TestBadGlobalConfigFails(t *testing.T) {
	home := isolate(t)
	writeGlobalConfig(t, home, "{not json")

	_, err := executeCommand(rootCmd, "config")
	if err == nil || !strings.Contains(err.Error(), "loading global config") {
		t.Fatalf("err = %v, want a global config error", err)
	}
}

func TestPomodoroNeedsTerminal(t *testing.T) {
	isolate(t)

	_, err := executeCommand(rootCmd, "pomodoro", "--focus", "1")
	if err != errNeedsTerminal {
		t.Fatalf("err = %v, want %v", err, errNeedsTerminal)
	}
}
