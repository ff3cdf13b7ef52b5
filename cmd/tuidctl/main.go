package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL string
	output string
)

var rootCmd = &cobra.Command{
	Use:   "tuidctl",
	Short: "tuid CLI - time-sortable unique ID command line tool",
	Long:  `tuidctl mints and inspects 8-byte time-sortable unique IDs, either through a tuid-api server or locally.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&apiURL, "api-url", "a", "http://localhost:8080", "tuid API URL")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
}
