package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lzjever/mbos-tuid/pkg/tuid"
)

var exampleMachineID int

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Generate 20 IDs locally, 1ms apart, and print them",
	Run: func(cmd *cobra.Command, args []string) {
		if exampleMachineID < 0 || exampleMachineID > 255 {
			fmt.Fprintln(os.Stderr, "Error: machine-id must be 0-255")
			os.Exit(1)
		}

		g, err := tuid.NewGenerator(byte(exampleMachineID))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		rows := make([]MintedRow, 0, 20)
		for i := 0; i < 20; i++ {
			id, err := g.Next()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			rows = append(rows, MintedRow{
				ID:   id.String(),
				U64:  fmt.Sprintf("%d", id.Uint64()),
				Time: id.Time().Format(time.RFC3339Nano),
			})
			time.Sleep(time.Millisecond)
		}
		printResult(rows)
	},
}

func init() {
	exampleCmd.Flags().IntVar(&exampleMachineID, "machine-id", 1, "Machine ID to stamp into the IDs")
	rootCmd.AddCommand(exampleCmd)
}
