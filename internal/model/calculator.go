package model

import "math"

// ContainerEstimate holds the results of a container purchasing calculation.
type ContainerEstimate struct {
	TotalItemVolume       float64 `json:"total_item_volume"`       // Volume of all items
	ContainerVolume       float64 `json:"container_volume"`        // Volume of one container
	ContainersNeededExact float64 `json:"containers_needed_exact"` // Exact fractional number of containers
	ContainersNeededMin   int     `json:"containers_needed_min"`   // Lower bound (ceiling of exact)
	ContainersWithWaste   int     `json:"containers_with_waste"`   // Recommended count including waste factor
	WastePercent          float64 `json:"waste_percent"`           // Waste factor applied (e.g., 15 for 15%)
	EstimatedCost         float64 `json:"estimated_cost"`          // Total cost if pricing available
	PricePerContainer     float64 `json:"price_per_container"`     // Price used for estimation
	OversizedItems        int     `json:"oversized_items"`         // Items no allowed orientation fits
	InvalidItems          int     `json:"invalid_items"`           // Items with a non-positive side
}

// EstimateContainers computes a volume-based lower bound on how many
// containers a list of items needs. Items that can never fit the container
// under the given rotation mode are counted in OversizedItems, items with a
// non-positive side in InvalidItems. Neither adds to the volume total.
func EstimateContainers(items []Item, container Dimensions, mode RotationMode, wastePercent, pricePerContainer float64) ContainerEstimate {
	var totalVolume float64
	oversized, invalid := 0, 0
	for _, it := range items {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		if !it.Dimensions.Valid() {
			invalid += qty
			continue
		}
		if !FitsAnyOrientation(it.Dimensions, container, mode, 0) {
			oversized += qty
			continue
		}
		totalVolume += it.Dimensions.Volume() * float64(qty)
	}

	containerVolume := container.Volume()
	if containerVolume <= 0 {
		return ContainerEstimate{
			TotalItemVolume: totalVolume,
			WastePercent:    wastePercent,
			OversizedItems:  oversized,
			InvalidItems:    invalid,
		}
	}

	exact := totalVolume / containerVolume
	minimum := int(math.Ceil(exact))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	withWaste := int(math.Ceil(exact * wasteFactor))
	if withWaste < minimum {
		withWaste = minimum
	}

	return ContainerEstimate{
		TotalItemVolume:       totalVolume,
		ContainerVolume:       containerVolume,
		ContainersNeededExact: exact,
		ContainersNeededMin:   minimum,
		ContainersWithWaste:   withWaste,
		WastePercent:          wastePercent,
		EstimatedCost:         float64(withWaste) * pricePerContainer,
		PricePerContainer:     pricePerContainer,
		OversizedItems:        oversized,
		InvalidItems:          invalid,
	}
}

// FitsAnyOrientation reports whether an item of dimensions d fits an empty
// container in at least one orientation allowed by mode.
func FitsAnyOrientation(d, container Dimensions, mode RotationMode, eps float64) bool {
	for _, o := range Orientations(mode, d) {
		if d.Rotate(o).FitsWithin(container, eps) {
			return true
		}
	}
	return false
}
