package cmd

import (
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/tempo/internal/pomodoro"
	"github.com/fakeyudi/tempo/internal/timer"
	"github.com/fakeyudi/tempo/internal/tui"
)

var (
	pomodoroFocus int
	pomodoroBreak int
	pomodoroAuto  bool
)

var errNeedsTerminal = errors.New("needs an interactive terminal")

var pomodoroCmd = &cobra.Command{
	Use:     "pomodoro",
	Aliases: []string{"pomo"},
	Short:   "Alternate focus and break countdowns",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !interactive(cmd, false) {
			return errNeedsTerminal
		}

		focus, brk := cfg.FocusDuration(), cfg.BreakDuration()
		if pomodoroFocus > 0 {
			focus = time.Duration(pomodoroFocus) * time.Minute
		}
		if pomodoroBreak > 0 {
			brk = time.Duration(pomodoroBreak) * time.Minute
		}
		c, err := pomodoro.New(appClock, pomodoro.Options{Focus: focus, Break: brk, AutoStart: pomodoroAuto})
		if err != nil {
			return err
		}

		rec, closeRec := openRecorder(cmd)
		defer closeRec()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		m := tui.NewPomodoro(c, tui.Options{
			Clock:    appClock,
			Refresh:  cfg.CountdownRefresh(),
			Player:   player(),
			Ringtone: timer.RingtoneChime,
			Recorder: rec,
		})
		return tui.Run(ctx, m, tui.RunOptions{Debug: debugLog})
	},
}

func init() {
	pomodoroCmd.Flags().IntVar(&pomodoroFocus, "focus", 0, "focus length in minutes (default from config)")
	pomodoroCmd.Flags().IntVar(&pomodoroBreak, "break", 0, "break length in minutes (default from config)")
	pomodoroCmd.Flags().BoolVar(&pomodoroAuto, "auto", false, "start the next phase automatically")
	rootCmd.AddCommand(pomodoroCmd)
}
