package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FormatBlueprint renders bp in the prose input format.
func FormatBlueprint(bp *Blueprint) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Blueprint %d:", bp.ID)
	for unit := Kind(0); unit < NumKinds; unit++ {
		var parts []string
		for k := Kind(0); k < NumKinds; k++ {
			if n := bp.Costs[unit][k]; n > 0 {
				parts = append(parts, fmt.Sprintf("%d %s", n, k))
			}
		}
		fmt.Fprintf(&sb, " Each %s robot costs %s.", unit, strings.Join(parts, " and "))
	}
	return sb.String()
}

// printTable writes one row per scenario followed by the mode's answer.
func printTable(w io.Writer, r *RunReport) {
	fmt.Fprintf(w, "%-10s %8s %10s %10s %8s\n", "Blueprint", "Optimum", "Calls", "Cache", "Time")
	fmt.Fprintf(w, "%-10s %8s %10s %10s %8s\n", "----------", "--------", "----------", "----------", "--------")
	for _, s := range r.Scenarios {
		fmt.Fprintf(w, "%-10d %8d %10d %10d %7.1fs\n",
			s.BlueprintID, s.Optimum, s.Stats.Calls, s.Stats.CacheSize, s.Elapsed.Seconds())
	}
	fmt.Fprintf(w, "%-10s %8s %10s %10s %8s\n", "----------", "--------", "----------", "----------", "--------")
	label := "SUM"
	if r.Mode == ModeTopProduct {
		label = "PRODUCT"
	}
	fmt.Fprintf(w, "%-10s %8d %10s %10s %7.1fs\n", label, r.Answer, "", "", r.Elapsed.Seconds())
}

// BenchOutput is the JSON form of one or more runs over the same input.
type BenchOutput struct {
	Date    string       `json:"date"`
	Input   string       `json:"input,omitempty"`
	Reports []*RunReport `json:"reports"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
