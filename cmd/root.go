package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/modelwatch/bedrock-catalog/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "bedrock-catalog",
	Short: "Amazon Bedrock model catalog maintenance",
	Long:  "Discovers Bedrock-supported regions, builds a deduplicated model and inference-profile catalog with per-region availability, and flags catalog models missing from the public documentation.",
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
