package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/slabcheck/slabcheck/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "slabcheck",
	Short: "Price-check graded card listings against PSA cert data",
	Long:  "Finds the PSA certification number in a marketplace listing page, pulls the cert's reference data, and compares the asking price against the price guide for that grade.",
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
