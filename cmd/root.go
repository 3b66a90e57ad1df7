package cmd

import (
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "settlementwatch",
	Short: "GB imbalance settlement reporting",
	Long: `settlementwatch retrieves balancing-market settlement data for a
settlement date, normalizes it into the canonical 48-period series and
derives the daily imbalance summary.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
