package cmd

import (
	"strings"
	"testing"
)

func TestStopwatchPlainFor(t *testing.T) {
	isolate(t)
	fastTime(t, epoch)

	out, err := executeCommand(rootCmd, "stopwatch", "--plain", "--for", "3s", "--label", "run")
	if err != nil {
		t.Fatalf("stopwatch: %v", err)
	}
	if !strings.HasPrefix(out, "00:00.00\n") {
		t.Errorf("output should start at zero:\n%s", out)
	}
	if !strings.Contains(out, "stopped at 00:03.") {
		t.Errorf("output missing the stop line:\n%s", out)
	}

	out, err = executeCommand(rootCmd, "history", "--format", "markdown")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "| stopwatch | run |") {
		t.Errorf("history missing the stopwatch run:\n%s", out)
	}
}

func TestStopwatchPlainLapsFromStdin(t *testing.T) {
	isolate(t)
	fastTime(t, epoch)

	out, err := executeCommandIn(rootCmd, strings.NewReader("\n\n"), "stopwatch", "--plain", "--for", "10m")
	if err != nil {
		t.Fatalf("stopwatch: %v", err)
	}
	for _, want := range []string{"lap 1 ", "lap 2 ", "stopped at 10:00."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "lap 3 ") {
		t.Error("only two laps were requested")
	}

	out, err = executeCommand(rootCmd, "history", "--limit", "1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("want a header and one row, got:\n%s", out)
	}
	if fields := strings.Fields(lines[1]); len(fields) < 6 || fields[len(fields)-2] != "2" {
		t.Errorf("row should record 2 laps: %q", lines[1])
	}
}

func TestStopwatchRejectsArgs(t *testing.T) {
	isolate(t)

	if _, err := executeCommand(rootCmd, "stopwatch", "5m"); err == nil {
		t.Error("expected an error for a positional argument")
	}
}
