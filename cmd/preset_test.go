package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/fakeyudi/tempo/internal/timer"
)

func TestPresetLifecycle(t *testing.T) {
	isolate(t)

	out, err := executeCommand(rootCmd, "preset", "list")
	if err != nil {
		t.Fatalf("preset list: %v", err)
	}
	if !strings.Contains(out, "no presets saved") {
		t.Errorf("empty list output = %q", out)
	}

	for _, args := range [][]string{
		{"preset", "add", "tea", "4"},
		{"preset", "add", "eggs", "7m30s"},
		{"preset", "add", "tea", "3"},
	} {
		if _, err := executeCommand(rootCmd, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	out, err = executeCommand(rootCmd, "preset", "ls")
	if err != nil {
		t.Fatalf("preset ls: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 presets, got:\n%s", out)
	}
	if !strings.HasPrefix(lines[0], "eggs") || !strings.HasSuffix(lines[0], "07:30") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "tea") || !strings.HasSuffix(lines[1], "03:00") {
		t.Errorf("tea should have been replaced: %q", lines[1])
	}

	out, err = executeCommand(rootCmd, "preset", "remove", "tea")
	if err != nil {
		t.Fatalf("preset remove: %v", err)
	}
	if !strings.Contains(out, "removed tea") {
		t.Errorf("remove output = %q", out)
	}

	_, err = executeCommand(rootCmd, "preset", "rm", "tea")
	if err == nil || !strings.Contains(err.Error(), `no preset named "tea"`) {
		t.Errorf("second remove err = %v", err)
	}
}

func TestPresetAddRejectsBadDuration(t *testing.T) {
	isolate(t)

	_, err := executeCommand(rootCmd, "preset", "add", "tea", "soon")
	if !errors.Is(err, timer.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
	if _, err := executeCommand(rootCmd, "preset", "add", "tea"); err == nil {
		t.Error("expected an argument count error")
	}
}
