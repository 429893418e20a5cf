package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BobBjorklund/progressTracker/internal/config"
	"github.com/BobBjorklund/progressTracker/internal/core/identity"
	"github.com/BobBjorklund/progressTracker/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings in config.yaml",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration, including environment overrides",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.LoadEnv()
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "data_dir:            %s\n", cfg.DataDir)
		fmt.Fprintf(out, "log_level:           %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "default_requirement: %d\n", cfg.DefaultRequirement)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Write settings to config.yaml in the data directory",
	Long: `Write settings to config.yaml in the data directory.

Only the flags given are changed. Environment overrides are not written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		levelSet := cmd.Flags().Changed("log-level")
		requirementSet := cmd.Flags().Changed("default-requirement")
		if !levelSet && !requirementSet {
			return errMissingConfigFlags
		}

		level, _ := cmd.Flags().GetString("log-level")
		if levelSet {
			if _, err := logging.ParseLevel(level); err != nil {
				return err
			}
		}

		config.LoadEnv()
		dir, err := config.ResolveDataDir()
		if err != nil {
			return err
		}
		cfg, err := config.LoadFile(dir)
		if err != nil {
			return err
		}

		if levelSet {
			cfg.LogLevel = level
		}
		if requirementSet {
			n, _ := cmd.Flags().GetInt("default-requirement")
			cfg.DefaultRequirement = identity.ClampRequirement(n)
		}

		if err := config.SaveConfig(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s (log_level=%s, default_requirement=%d)\n",
			config.FileName, cfg.LogLevel, cfg.DefaultRequirement)
		return nil
	},
}

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	configSetCmd.Flags().String("log-level", "", "Log level: debug, info, warn, error")
	configSetCmd.Flags().Int("default-requirement", 0, "Default side-by-side requirement for new agents, 0-99")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	return configCmd
}
