package cmd

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/tempo/internal/plain"
	"github.com/fakeyudi/tempo/internal/timer"
	"github.com/fakeyudi/tempo/internal/tui"
)

var (
	stopwatchPlain bool
	stopwatchFor   time.Duration
	stopwatchLabel string
)

var stopwatchCmd = &cobra.Command{
	Use:     "stopwatch",
	Aliases: []string{"sw"},
	Short:   "Measure elapsed time with laps",
	Long: `Measure elapsed time. In the full-screen view space starts and pauses,
l records a lap and r resets. With --plain the stopwatch starts at once,
every line read from stdin records a lap, and Ctrl+C stops it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := timer.NewStopwatch(appClock)

		rec, closeRec := openRecorder(cmd)
		defer closeRec()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if !interactive(cmd, stopwatchPlain) {
			ticks, stopTicks := newTicker(cfg.StopwatchRefresh())
			defer stopTicks()
			r := &plain.Runner{
				Out:      cmd.OutOrStdout(),
				Err:      cmd.ErrOrStderr(),
				Clock:    appClock,
				Ticks:    ticks,
				Laps:     readLaps(ctx, cmd.InOrStdin()),
				Recorder: rec,
				Label:    stopwatchLabel,
			}
			return r.Stopwatch(ctx, s, stopwatchFor)
		}

		m := tui.NewTimer(s, tui.Options{
			Clock:    appClock,
			Refresh:  cfg.StopwatchRefresh(),
			Player:   player(),
			Recorder: rec,
			Label:    stopwatchLabel,
		})
		return tui.Run(ctx, m, tui.RunOptions{Debug: debugLog})
	},
}

// readLaps sends one lap request per line read from in until EOF or ctx ends.
func readLaps(ctx context.Context, in io.Reader) <-chan struct{} {
	laps := make(chan struct{})
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case laps <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return laps
}

func init() {
	stopwatchCmd.Flags().BoolVar(&stopwatchPlain, "plain", false, "print to stdout instead of the full-screen view")
	stopwatchCmd.Flags().DurationVar(&stopwatchFor, "for", 0, "stop automatically after this long (plain mode)")
	stopwatchCmd.Flags().StringVarP(&stopwatchLabel, "label", "l", "", "label recorded in history")
	rootCmd.AddCommand(stopwatchCmd)
}
