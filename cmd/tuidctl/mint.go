package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type MintedRow struct {
	ID   string `json:"id"`
	U64  string `json:"u64"`
	Time string `json:"time"`
}

type MintResponse struct {
	IDs       []MintedRow `json:"ids"`
	MachineID uint8       `json:"machine_id"`
	Mode      string      `json:"mode"`
}

var mintCount int

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint new IDs from the API",
	Run: func(cmd *cobra.Command, args []string) {
		client := NewClient(apiURL)

		var resp MintResponse
		if err := client.Post("/v1/ids", map[string]int{"count": mintCount}, &resp); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printResult(resp.IDs)
	},
}

func init() {
	mintCmd.Flags().IntVarP(&mintCount, "count", "n", 1, "Number of IDs to mint")
	rootCmd.AddCommand(mintCmd)
}
