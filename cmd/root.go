package cmd

import (
	"github.com/spf13/cobra"
)

var (
	flagServer string
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:   "goldbooks",
	Short: "Bookkeeping service for a retail jewelry trade",
	Long:  "Goldbooks ingests scanned trade receipts, classifies them as sales, purchases, or capital injections, and derives journal entries, trial balances, and VAT reports from the receipt log.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "http://localhost:8899", "Server address")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "goldbooks.yaml", "Config file path")
}

func Execute() error {
	return rootCmd.Execute()
}
