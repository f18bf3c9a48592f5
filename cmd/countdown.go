package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/tempo/internal/plain"
	"github.com/fakeyudi/tempo/internal/preset"
	"github.com/fakeyudi/tempo/internal/timer"
	"github.com/fakeyudi/tempo/internal/tui"
)

var (
	countdownPlain    bool
	countdownPreset   string
	countdownLabel    string
	countdownRingtone string
)

var countdownCmd = &cobra.Command{
	Use:     "countdown [duration]",
	Aliases: []string{"timer"},
	Short:   "Count down from a duration",
	Long: `Count down from a duration. A bare number is minutes; anything else is a
Go duration such as 90s or 1h30m. Without a duration the configured focus
length is used and the timer waits for space to start.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds, label, err := countdownLength(args)
		if err != nil {
			return err
		}
		s, err := timer.NewCountdown(appClock, seconds)
		if err != nil {
			return err
		}
		tone := ringtone(cmd, countdownRingtone)

		rec, closeRec := openRecorder(cmd)
		defer closeRec()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if !interactive(cmd, countdownPlain) {
			ticks, stopTicks := newTicker(cfg.CountdownRefresh())
			defer stopTicks()
			r := &plain.Runner{
				Out:      cmd.OutOrStdout(),
				Err:      cmd.ErrOrStderr(),
				Clock:    appClock,
				Ticks:    ticks,
				Ring:     ring(cmd.ErrOrStderr()),
				Ringtone: tone,
				Recorder: rec,
				Label:    label,
			}
			return r.Countdown(ctx, s)
		}

		m := tui.NewTimer(s, tui.Options{
			Clock:     appClock,
			Refresh:   cfg.CountdownRefresh(),
			Player:    player(),
			Ringtone:  tone,
			Recorder:  rec,
			Label:     label,
			AutoStart: len(args) > 0 || countdownPreset != "",
		})
		return tui.Run(ctx, m, tui.RunOptions{Debug: debugLog})
	},
}

// countdownLength resolves the countdown length and history label from the
// argument, the --preset flag, or the configured focus length.
func countdownLength(args []string) (int, string, error) {
	if countdownPreset != "" {
		if len(args) > 0 {
			return 0, "", fmt.Errorf("give either a duration or --preset, not both")
		}
		store, err := preset.NewStore()
		if err != nil {
			return 0, "", err
		}
		p, err := store.Get(countdownPreset)
		if err != nil {
			return 0, "", err
		}
		label := countdownLabel
		if label == "" {
			label = p.Name
		}
		return p.Seconds, label, nil
	}
	if len(args) > 0 {
		seconds, err := timer.ParseDuration(args[0])
		return seconds, countdownLabel, err
	}
	return int(cfg.FocusDuration().Seconds()), countdownLabel, nil
}

func init() {
	countdownCmd.Flags().BoolVar(&countdownPlain, "plain", false, "print to stdout instead of the full-screen view")
	countdownCmd.Flags().StringVarP(&countdownPreset, "preset", "p", "", "use a saved preset")
	countdownCmd.Flags().StringVarP(&countdownLabel, "label", "l", "", "label recorded in history")
	countdownCmd.Flags().StringVar(&countdownRingtone, "ringtone", "", "ringtone played at zero (beep, chime, bell, melody)")
	rootCmd.AddCommand(countdownCmd)
}
