package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/tempo/internal/history"
)

var (
	historyLimit  int
	historyFormat string
	historyOutput string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished timers, stopwatches and alarms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer, err := history.RendererFor(historyFormat)
		if err != nil {
			return err
		}

		store, err := openHistory(cmd.Context())
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer store.Close()

		entries, err := store.List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		data, err := renderer.Render(entries)
		if err != nil {
			return fmt.Errorf("render history: %w", err)
		}

		if historyOutput != "" {
			if err := os.WriteFile(historyOutput, data, 0644); err != nil {
				return fmt.Errorf("write output file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "History written to: %s\n", historyOutput)
			return nil
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "show at most this many entries (0 for all)")
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", "table", "output format: table, json or markdown")
	historyCmd.Flags().StringVarP(&historyOutput, "output", "o", "", "write to a file instead of stdout")
	rootCmd.AddCommand(historyCmd)
}
