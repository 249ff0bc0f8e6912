package main

import (
	"fmt"

	"github.com/piwi3910/BoxPack/internal/model"
	"github.com/spf13/cobra"
)

var (
	estimateFlags jobFlags
	wastePercent  float64
	price         float64
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [items file]",
	Short: "Estimate how many containers an item list needs by volume",
	Args:  cobra.ExactArgs(1),
	RunE:  runEstimate,
}

func init() {
	estimateFlags.bind(estimateCmd)
	estimateCmd.Flags().Float64Var(&wastePercent, "waste", 15, "waste allowance in percent")
	estimateCmd.Flags().Float64Var(&price, "price", 0, "price per container")
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	container, settings, err := estimateFlags.resolve(cmd)
	if err != nil {
		return err
	}
	items, err := estimateFlags.loadItems(args[0])
	if err != nil {
		return err
	}

	est := model.EstimateContainers(items, container, settings.Normalized().AllowRotation, wastePercent, price)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Container:            %s (volume %g)\n", container, est.ContainerVolume)
	fmt.Fprintf(out, "Item volume:          %g\n", est.TotalItemVolume)
	fmt.Fprintf(out, "Containers (exact):   %.2f\n", est.ContainersNeededExact)
	fmt.Fprintf(out, "Containers (minimum): %d\n", est.ContainersNeededMin)
	fmt.Fprintf(out, "Containers (+%g%%):    %d\n", est.WastePercent, est.ContainersWithWaste)
	if est.PricePerContainer > 0 {
		fmt.Fprintf(out, "Estimated cost:       %.2f\n", est.EstimatedCost)
	}
	if est.OversizedItems > 0 {
		fmt.Fprintf(out, "Oversized items:      %d (fit no allowed orientation)\n", est.OversizedItems)
	}
	if est.InvalidItems > 0 {
		fmt.Fprintf(out, "Invalid items:        %d (non-positive side)
", est.InvalidItems)
	}
	return nil
}
