package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/tempo/internal/plain"
	"github.com/fakeyudi/tempo/internal/timer"
	"github.com/fakeyudi/tempo/internal/tui"
)

var (
	alarmPlain    bool
	alarmRingtone string
	alarmZone     string
)

var alarmCmd = &cobra.Command{
	Use:   "alarm HH:MM",
	Short: "Ring at a wall-clock time",
	Long: `Ring at a wall-clock time, by default in the local time zone. With
--zone the time is read in another IANA zone, e.g. --zone Asia/Tokyo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc := time.Local
		if alarmZone != "" {
			l, err := time.LoadLocation(alarmZone)
			if err != nil {
				return fmt.Errorf("unknown zone %q: %w", alarmZone, err)
			}
			loc = l
		}

		s := timer.NewStopwatch(appClock)
		if err := s.SetAlarm(args[0], ringtone(cmd, alarmRingtone)); err != nil {
			return err
		}
		target := s.AlarmStatus().Target

		rec, closeRec := openRecorder(cmd)
		defer closeRec()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if !interactive(cmd, alarmPlain) {
			ticks, stopTicks := newTicker(cfg.CountdownRefresh())
			defer stopTicks()
			r := &plain.Runner{
				Out:      cmd.OutOrStdout(),
				Err:      cmd.ErrOrStderr(),
				Clock:    appClock,
				Ticks:    ticks,
				Ring:     ring(cmd.ErrOrStderr()),
				Recorder: rec,
				Label:    target,
			}
			return r.Alarm(ctx, s, loc)
		}

		m := tui.NewAlarm(s, loc, cfg.AutoClearAlarm(), tui.Options{
			Clock:    appClock,
			Refresh:  cfg.CountdownRefresh(),
			Player:   player(),
			Recorder: rec,
		})
		return tui.Run(ctx, m, tui.RunOptions{Debug: debugLog})
	},
}

func init() {
	alarmCmd.Flags().BoolVar(&alarmPlain, "plain", false, "print to stdout instead of the full-screen view")
	alarmCmd.Flags().StringVarP(&alarmRingtone, "ringtone", "r", "", "ringtone (beep, chime, bell, melody; default from config)")
	alarmCmd.Flags().StringVarP(&alarmZone, "zone", "z", "", "IANA time zone the alarm time is in")
	rootCmd.AddCommand(alarmCmd)
}
