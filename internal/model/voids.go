package model

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Void represents an empty box-shaped region left in a container after
// packing, large enough to be worth reporting.
type Void struct {
	ID             string     `json:"id"`
	ContainerIndex int        `json:"container"`
	Position       Position   `json:"position"`
	Dimensions     Dimensions `json:"dimensions"`
}

// Volume returns the volume of the void.
func (v Void) Volume() float64 {
	return v.Dimensions.Volume()
}

// DetectVoids identifies the empty slabs beyond the packed extent of a
// container: the slab right of all items (X), the slab above them (Y) and
// the slab behind them (Z). The three slabs are disjoint. Slabs with a side
// shorter than minSide are dropped.
func DetectVoids(cr ContainerResult, minSide float64) []Void {
	cd := cr.Dimensions

	if len(cr.Placements) == 0 {
		return []Void{{
			ID:             uuid.New().String()[:8],
			ContainerIndex: cr.Index,
			Dimensions:     cd,
		}}
	}

	var extent Position
	for _, p := range cr.Placements {
		far := p.Position.Offset(p.Placed)
		extent.X = math.Max(extent.X, far.X)
		extent.Y = math.Max(extent.Y, far.Y)
		extent.Z = math.Max(extent.Z, far.Z)
	}
	extent.X = math.Min(extent.X, cd.Width)
	extent.Y = math.Min(extent.Y, cd.Height)
	extent.Z = math.Min(extent.Z, cd.Depth)

	candidates := []Void{
		// Right slab: full height and depth
		{Position: Position{X: extent.X}, Dimensions: Dims(cd.Width-extent.X, cd.Height, cd.Depth)},
		// Top slab: above the items, up to their right edge
		{Position: Position{Y: extent.Y}, Dimensions: Dims(extent.X, cd.Height-extent.Y, cd.Depth)},
		// Back slab: behind the items, under the top slab
		{Position: Position{Z: extent.Z}, Dimensions: Dims(extent.X, extent.Y, cd.Depth-extent.Z)},
	}

	var voids []Void
	for _, v := range candidates {
		if v.Dimensions.Smallest() < minSide || !v.Dimensions.Valid() {
			continue
		}
		v.ID = uuid.New().String()[:8]
		v.ContainerIndex = cr.Index
		voids = append(voids, v)
	}

	sort.Slice(voids, func(i, j int) bool {
		return voids[i].Volume() > voids[j].Volume()
	})
	return voids
}

// DetectAllVoids finds voids across all containers of a result.
func DetectAllVoids(result PackResult, minSide float64) []Void {
	var all []Void
	for _, c := range result.Containers {
		all = append(all, DetectVoids(c, minSide)...)
	}
	return all
}

// TotalVoidVolume returns the total volume of the given voids.
func TotalVoidVolume(voids []Void) float64 {
	var total float64
	for _, v := range voids {
		total += v.Volume()
	}
	return total
}
