package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/tempo/internal/preset"
	"github.com/fakeyudi/tempo/internal/timer"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage named countdown durations",
}

var presetAddCmd = &cobra.Command{
	Use:   "add NAME DURATION",
	Short: "Save or replace a preset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds, err := timer.ParseDuration(args[1])
		if err != nil {
			return err
		}
		store, err := preset.NewStore()
		if err != nil {
			return err
		}
		p := preset.Preset{Name: args[0], Seconds: seconds}
		if err := store.Put(p); err != nil {
			return err
		}
		cmd.Printf("saved %s (%s)\n", p.Name, timer.FormatSeconds(int64(p.Seconds)))
		return nil
	},
}

var presetListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved presets",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := preset.NewStore()
		if err != nil {
			return err
		}
		presets, err := store.List()
		if err != nil {
			return err
		}
		if len(presets) == 0 {
			cmd.Println("no presets saved")
			return nil
		}
		for _, p := range presets {
			cmd.Printf("%-20s %s\n", p.Name, timer.FormatSeconds(int64(p.Seconds)))
		}
		return nil
	},
}

var presetRemoveCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm"},
	Short:   "Delete a preset",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := preset.NewStore()
		if err != nil {
			return err
		}
		if err := store.Remove(args[0]); err != nil {
			if errors.Is(err, preset.ErrNotFound) {
				return fmt.Errorf("no preset named %q", args[0])
			}
			return err
		}
		cmd.Printf("removed %s\n", args[0])
		return nil
	},
}

func init() {
	presetCmd.AddCommand(presetAddCmd, presetListCmd, presetRemoveCmd)
	rootCmd.AddCommand(presetCmd)
}
