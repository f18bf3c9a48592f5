package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/tempo/internal/tui"
	"github.com/fakeyudi/tempo/internal/worldclock"
)

var clockOnce bool

var clockCmd = &cobra.Command{
	Use:     "clock [zone...]",
	Aliases: []string{"world"},
	Short:   "Show the time in other time zones",
	Long: `Show the current time in IANA time zones such as Europe/Paris. Without
arguments the configured zones are shown. Offsets come from the time API
and fall back to the local zone database when it cannot be reached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := args
		if len(names) == 0 {
			names = cfg.Zones
		}
		if len(names) == 0 {
			names = worldclock.DefaultZones
		}
		client := worldclock.NewClient(cfg.TimeAPIURL, appClock)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if clockOnce || !interactive(cmd, false) {
			zones := make([]worldclock.Zone, len(names))
			var wg sync.WaitGroup
			for i, name := range names {
				i, name := i, name
				wg.Add(1)
				go func() {
					defer wg.Done()
					zones[i] = client.Resolve(ctx, name)
				}()
			}
			wg.Wait()

			now := appClock.Now()
			out := cmd.OutOrStdout()
			for _, z := range zones {
				line := fmt.Sprintf("%-16s %s", z.Label(), worldclock.Format(z.Now(now)))
				if z.Source != worldclock.SourceRemote {
					line += fmt.Sprintf("  (%s)", z.Source)
				}
				fmt.Fprintln(out, line)
				if z.Err != nil && debugLog {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %v\n", z.Name, z.Err)
				}
			}
			return nil
		}

		m := tui.NewClock(client, names, tui.Options{Clock: appClock})
		return tui.Run(ctx, m, tui.RunOptions{Debug: debugLog})
	},
}

func init() {
	clockCmd.Flags().BoolVar(&clockOnce, "once", false, "print the times once and exit")
	rootCmd.AddCommand(clockCmd)
}
