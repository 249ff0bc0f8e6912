package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/piwi3910/BoxPack/internal/project"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the container presets of the inventory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, path, err := project.LoadOrCreateInventory()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Inventory: %s\n\n", path)
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tSIZE\tVOLUME\tPRICE")
		for _, p := range inv.Containers {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%g\n", p.ID, p.Name, p.Dimensions, p.Dimensions.Volume(), p.Price)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
