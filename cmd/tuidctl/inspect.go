package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type InspectRow struct {
	ID            string `json:"id"`
	U64           string `json:"u64"`
	Time          string `json:"time"`
	Disambiguator uint8  `json:"disambiguator"`
	Extra         uint16 `json:"extra"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <id>",
	Short: "Decode the fields embedded in an ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := NewClient(apiURL)

		var resp InspectRow
		if err := client.Get("/v1/ids/"+args[0], &resp); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printResult(resp)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
