package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/piwi3910/BoxPack/internal/engine"
	"github.com/piwi3910/BoxPack/internal/export"
	"github.com/spf13/cobra"
)

var (
	compareFlags     jobFlags
	compareChartPath string
)

var compareCmd = &cobra.Command{
	Use:   "compare [items file]",
	Short: "Compare algorithms, heuristics and rotation modes on one item list",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompare,
}

func init() {
	compareFlags.bind(compareCmd)
	compareCmd.Flags().StringVar(&compareChartPath, "chart", "", "write an HTML comparison chart")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	container, settings, err := compareFlags.resolve(cmd)
	if err != nil {
		return err
	}
	items, err := compareFlags.loadItems(args[0])
	if err != nil {
		return err
	}

	results := engine.CompareScenarios(container, engine.BuildDefaultScenarios(settings), items, engine.WithLogger(logger))
	best := engine.BestResult(results)

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tSCENARIO\tPLACED\tREJECTED\tCONTAINERS\tEFFICIENCY")
	for i, r := range results {
		mark := ""
		if i == best {
			mark = "*"
		}
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\t%s\terror: %v\t\t\t\n", mark, r.Scenario.Name, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.1f%%\n",
			mark, r.Scenario.Name, r.PlacedCount, r.RejectedCount, r.ContainersUsed, r.Efficiency*100)
	}
	tw.Flush()

	if compareChartPath != "" {
		if err := export.ExportComparisonChart(compareChartPath, results); err != nil {
			return fmt.Errorf("writing %s: %w", compareChartPath, err)
		}
		fmt.Fprintf(out, "Wrote %s\n", compareChartPath)
	}
	return nil
}
