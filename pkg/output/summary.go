// Package output prints the console topology report for CLI mode.
package output

import (
	"fmt"
	"sort"

	"github.com/fatih/color"

	"github.com/vatne/archmap/pkg/layout"
	"github.com/vatne/archmap/pkg/model"
)

// PrintSummary prints a colorized overview of the topology and its layout:
// counts, nodes per category, and the rank table.
func PrintSummary(t *model.Topology, l *layout.Result) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	bold.Printf("%s\n", t.Name)
	fmt.Printf("Nodes: %d  Edges: %d  Inspectable: %d\n\n",
		len(t.Nodes), len(t.Edges), len(t.Descriptions))

	bold.Println("By category:")
	counts := make(map[model.Category]int)
	for _, n := range t.Nodes {
		counts[n.Category]++
	}
	for _, entry := range model.Legend() {
		if counts[entry.Category] == 0 {
			continue
		}
		cyan.Printf("  %-18s", entry.Label)
		fmt.Printf(" %d\n", counts[entry.Category])
	}
	fmt.Println()

	bold.Println("Layout ranks:")
	byRank := make(map[int][]string)
	maxRank := 0
	for _, n := range t.Nodes {
		r := l.Ranks[n.ID]
		byRank[r] = append(byRank[r], n.Label)
		if r > maxRank {
			maxRank = r
		}
	}
	for r := 0; r <= maxRank; r++ {
		labels := byRank[r]
		sort.Strings(labels)
		yellow.Printf("  rank %d:", r)
		for _, label := range labels {
			fmt.Printf("  %s", label)
		}
		fmt.Println()
	}
	fmt.Println()

	green.Printf("Layout OK: %d ranks, deterministic\n", maxRank+1)
}
