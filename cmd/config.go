package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/tempo/internal/config"
)

var (
	configPath  bool
	configWatch bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the merged configuration",
	Long: `Print the configuration after merging ~/.config/tempo/config.json, the
project .temporc and TEMPO_* environment variables. With --watch the
global file is watched and the configuration printed again on every change.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		global, err := config.GlobalPath()
		if err != nil {
			return err
		}
		if configPath {
			cmd.Println(global)
			return nil
		}
		if err := printConfig(cmd, cfg); err != nil {
			return err
		}
		if !configWatch {
			return nil
		}

		if err := os.MkdirAll(filepath.Dir(global), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return config.Watch(ctx, global, func(g *config.Config, err error) {
			if err != nil {
				cmd.PrintErrf("warning: %v\n", err)
				return
			}
			project, err := config.LoadProject()
			if err != nil {
				cmd.PrintErrf("warning: %v\n", err)
				return
			}
			merged := config.Merge(g, project)
			if err := config.ApplyEnv(&merged); err != nil {
				cmd.PrintErrf("warning: %v\n", err)
				return
			}
			cfg = merged
			if err := printConfig(cmd, merged); err != nil {
				cmd.PrintErrf("warning: %v\n", err)
			}
		})
	},
}

func printConfig(cmd *cobra.Command, c config.Config) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}

func init() {
	configCmd.Flags().BoolVar(&configPath, "path", false, "print the global config file path")
	configCmd.Flags().BoolVarP(&configWatch, "watch", "w", false, "print again whenever the global config file changes")
	rootCmd.AddCommand(configCmd)
}
