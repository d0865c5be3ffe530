package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jfb-hart/lead-command/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "lead-command",
	Short: "B2B lead prospecting for flooring and coating contractors",
	Long:  "Searches business listings for coating and flooring contractors in a city, filters chains, scores fit, finds contact emails, and generates outreach messages.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
