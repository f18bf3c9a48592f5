package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/tempo/internal/clock"
	"github.com/fakeyudi/tempo/internal/config"
	"github.com/fakeyudi/tempo/internal/history"
	"github.com/fakeyudi/tempo/internal/timer"
	"github.com/fakeyudi/tempo/internal/tui"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

var debugLog bool

// appClock is the time source for every session.
var appClock clock.Clock = clock.Real{}

// newTicker drives the plain runners.
var newTicker = func(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

var rootCmd = &cobra.Command{
	Use:          "tempo",
	Short:        "Countdowns, stopwatches, pomodoros, alarms and world clocks in the terminal",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv()

		global, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		project, err := config.LoadProject()
		if err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		cfg = config.Merge(global, project)

		if err := config.ApplyEnv(&cfg); err != nil {
			return fmt.Errorf("reading environment: %w", err)
		}
		if config.Debug() {
			debugLog = true
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "write a debug log to "+tui.DebugLogFile)
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetConfig returns the merged configuration for use by subcommands.
func GetConfig() config.Config {
	return cfg
}

// interactive reports whether the full-screen interface can be used:
// both stdin and the command's output must be terminals.
func interactive(cmd *cobra.Command, plain bool) bool {
	if plain {
		return false
	}
	out, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(out.Fd()) && term.IsTerminal(os.Stdin.Fd())
}

// openRecorder opens the history database. History is best effort: when the
// database cannot be opened a warning is printed and nil is returned.
func openRecorder(cmd *cobra.Command) (history.Recorder, func()) {
	store, err := openHistory(cmd.Context())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: history disabled: %v\n", err)
		return nil, func() {}
	}
	return store, func() { _ = store.Close() }
}

func openHistory(ctx context.Context) (*history.Store, error) {
	path := cfg.HistoryPath
	if path == "" {
		p, err := history.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return history.Open(ctx, path)
}

// player returns the TUI sound player, or nil when sound is off.
func player() *tui.Player {
	if !cfg.SoundEnabled() {
		return nil
	}
	return tui.NewPlayer(os.Stderr)
}

// ring returns the plain runners' sound hook, or nil when sound is off.
func ring(w io.Writer) func(string) {
	if !cfg.SoundEnabled() {
		return nil
	}
	p := tui.NewPlayer(w)
	return p.Play
}

// ringtone returns the configured finish ringtone, warning about unknown ids.
func ringtone(cmd *cobra.Command, id string) string {
	if id == "" {
		id = cfg.Ringtone
	}
	if !timer.IsKnownRingtone(id) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: unknown ringtone %q, playing %s\n", id, timer.DefaultRingtone)
	}
	return id
}
