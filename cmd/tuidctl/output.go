package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
)

func printResult(v interface{}) {
	if output == "json" {
		json.NewEncoder(os.Stdout).Encode(v)
		return
	}
	printTable(v)
}

func printTable(v interface{}) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	switch data := v.(type) {
	case []MintedRow:
		if len(data) == 0 {
			fmt.Println("No IDs minted.")
			return
		}
		fmt.Fprintln(w, "ID\tU64\tTIME")
		for _, id := range data {
			fmt.Fprintf(w, "%s\t%s\t%s\n", id.ID, id.U64, id.Time)
		}
	case InspectRow:
		fmt.Fprintf(w, "ID:\t%s\n", data.ID)
		fmt.Fprintf(w, "U64:\t%s\n", data.U64)
		fmt.Fprintf(w, "Time:\t%s\n", data.Time)
		fmt.Fprintf(w, "Disambiguator:\t%d\n", data.Disambiguator)
		fmt.Fprintf(w, "Extra:\t%d\n", data.Extra)
	default:
		json.NewEncoder(os.Stdout).Encode(v)
	}
	w.Flush()
}
