package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lzjever/mbos-tuid/pkg/tuid"
)

var (
	benchCount     int
	benchMachineID int
	benchMode      string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark local ID generation and check for duplicates",
	Run: func(cmd *cobra.Command, args []string) {
		if benchMachineID < 0 || benchMachineID > 255 {
			fmt.Fprintln(os.Stderr, "Error: machine-id must be 0-255")
			os.Exit(1)
		}

		next, err := newLocalGenerator(benchMode, byte(benchMachineID))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ids := make([]uint64, 0, benchCount)
		stalls := 0
		start := time.Now()
		for len(ids) < benchCount {
			id, err := next()
			if errors.Is(err, tuid.ErrCapacityExceeded) {
				// Bucket full; wait for the clock to advance.
				stalls++
				time.Sleep(time.Millisecond)
				continue
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			ids = append(ids, id.Uint64())
		}
		elapsed := time.Since(start)

		seen := make(map[uint64]struct{}, len(ids))
		duplicates := 0
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				duplicates++
				continue
			}
			seen[id] = struct{}{}
		}

		fmt.Printf("total %d, unique %d, duplicates %d, bucket stalls %d in %s\n",
			benchCount, len(seen), duplicates, stalls, elapsed)
	},
}

// newLocalGenerator returns a mint func for the chosen policy.
func newLocalGenerator(mode string, machineID byte) (func() (tuid.ID, error), error) {
	switch mode {
	case "sequence":
		g, err := tuid.NewGenerator(machineID)
		if err != nil {
			return nil, err
		}
		return g.Next, nil
	case "random":
		g, err := tuid.NewRandomGenerator(machineID)
		if err != nil {
			return nil, err
		}
		return g.Next, nil
	}
	return nil, fmt.Errorf("unknown mode %q", mode)
}

func init() {
	benchCmd.Flags().IntVarP(&benchCount, "count", "n", 1000000, "Number of IDs to generate")
	benchCmd.Flags().IntVar(&benchMachineID, "machine-id", 101, "Machine ID to stamp into the IDs")
	benchCmd.Flags().StringVar(&benchMode, "mode", "sequence", "Generator mode (sequence, random)")
	rootCmd.AddCommand(benchCmd)
}
