package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/piwi3910/BoxPack/internal/model"
)

// printResult writes a placement table and a per-container summary.
func printResult(w io.Writer, r model.PackResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tITEM\tSIZE\tRESULT\tCONTAINER\tPOSITION\tORIENT")
	for _, o := range r.Outcomes {
		if o.IsPlaced() {
			fmt.Fprintf(tw, "%d\t%s\t%s\tplaced\t%d\t%s\t%s\n",
				o.Index, o.Item.Label, o.Item.Dimensions, o.ContainerIndex+1, o.Position, o.Orientation)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t-\t-\t-\n",
				o.Index, o.Item.Label, o.Item.Dimensions, o.Reason)
		}
	}
	tw.Flush()

	fmt.Fprintln(w)
	for i, c := range r.Containers {
		fmt.Fprintf(w, "Container %d: %d items, %.1f%% full\n", i+1, c.ItemCount(), c.Efficiency()*100)
	}
	fmt.Fprintf(w, "Placed %d of %d items in %d containers, global efficiency %.1f%%\n",
		r.PlacedCount(), len(r.Outcomes), len(r.Containers), r.GlobalEfficiency()*100)
}
