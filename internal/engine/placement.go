package engine

import "github.com/piwi3910/BoxPack/internal/model"

// Fit is a feasible spot for an item found by Search.
type Fit struct {
	Position    model.Position
	Orientation model.Orientation
	Placed      model.Dimensions
}

// Search looks for a feasible position for an item of the given dimensions
// in occ, trying orientations in the order given. It reports false when the
// item fits nowhere.
//
// With HeuristicFirstFit the first feasible anchor of the first orientation
// that has one wins. With HeuristicLowestAnchor every orientation is tried
// and the lowest anchor wins, ties going to the earlier orientation.
func Search(occ *Occupancy, dims model.Dimensions, orients []model.Orientation, h model.Heuristic) (Fit, bool) {
	if !dims.Valid() {
		return Fit{}, false
	}
	if dims.Volume() > occ.RemainingVolume()+volumeSlack(occ.bounds, occ.eps) {
		return Fit{}, false
	}

	var best Fit
	found := false
	for _, o := range orients {
		rotated := dims.Rotate(o)
		if !rotated.FitsWithin(occ.bounds, occ.eps) {
			continue
		}
		pos, ok := firstFree(occ, rotated)
		if !ok {
			continue
		}
		if h != model.HeuristicLowestAnchor {
			return Fit{Position: pos, Orientation: o, Placed: rotated}, true
		}
		if !found || anchorLess(pos, best.Position, occ.eps) {
			best = Fit{Position: pos, Orientation: o, Placed: rotated}
			found = true
		}
	}
	return best, found
}

// firstFree returns the first anchor where dims is free.
func firstFree(occ *Occupancy, dims model.Dimensions) (model.Position, bool) {
	for _, a := range occ.anchors {
		if occ.IsFree(a, dims) {
			return a, true
		}
	}
	return model.Position{}, false
}

// volumeSlack is the volume of an eps-thick shell over the container faces,
// the most an item can exceed the remaining volume by and still fit within
// tolerance.
func volumeSlack(bounds model.Dimensions, eps float64) float64 {
	w, h, d := bounds.Width, bounds.Height, bounds.Depth
	return 2 * eps * (w*h + h*d + w*d)
}
