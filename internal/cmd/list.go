package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/petrarca/doc-architect/internal/scanner"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available scanners",
	Long:  `List prints every registered scanner with its id and priority, in execution order.`,
	Run:   runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) {
	scanners := scanner.All()
	sort.SliceStable(scanners, func(i, j int) bool {
		return scanners[i].Priority() < scanners[j].Priority()
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRIORITY\tNAME")
	for _, s := range scanners {
		fmt.Fprintf(w, "%s\t%d\t%s\n", s.ID(), s.Priority(), s.DisplayName())
	}
	w.Flush()
}
