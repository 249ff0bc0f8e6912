package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/BoxPack/internal/model"
)

// Occupancy tracks the used space inside one container. Placed boxes are
// kept as AABBs; candidate positions are anchor points ordered by Z, then Y,
// then X.
type Occupancy struct {
	bounds  model.Dimensions
	eps     float64
	space   model.AABB
	boxes   []model.AABB
	anchors []model.Position
}

// NewOccupancy creates an empty occupancy model seeded with the origin anchor.
func NewOccupancy(bounds model.Dimensions, eps float64) *Occupancy {
	return &Occupancy{
		bounds:  bounds,
		eps:     eps,
		space:   model.NewAABB(model.Position{}, bounds),
		anchors: []model.Position{{}},
	}
}

// Bounds returns the container dimensions.
func (o *Occupancy) Bounds() model.Dimensions {
	return o.bounds
}

// IsFree reports whether a box of the given dimensions at pos lies inside
// the container and overlaps no placed box.
func (o *Occupancy) IsFree(pos model.Position, dims model.Dimensions) bool {
	box := model.NewAABB(pos, dims)
	if !box.Within(o.bounds, o.eps) {
		return false
	}
	for _, b := range o.boxes {
		if box.Overlaps(b, o.eps) {
			return false
		}
	}
	return true
}

// Candidates returns a copy of the anchor points in search order.
func (o *Occupancy) Candidates() []model.Position {
	out := make([]model.Position, len(o.anchors))
	copy(out, o.anchors)
	return out
}

// Register records a placement and updates the anchor set. The caller must
// have checked IsFree first.
func (o *Occupancy) Register(p model.Placement) {
	box := p.AABB()
	o.boxes = append(o.boxes, box)

	kept := o.anchors[:0]
	for _, a := range o.anchors {
		if !box.ContainsPoint(a.Vec(), o.eps) {
			kept = append(kept, a)
		}
	}
	o.anchors = kept

	pos, d := p.Position, p.Placed
	o.addAnchor(model.Position{X: pos.X + d.Width, Y: pos.Y, Z: pos.Z})
	o.addAnchor(model.Position{X: pos.X, Y: pos.Y + d.Height, Z: pos.Z})
	o.addAnchor(model.Position{X: pos.X, Y: pos.Y, Z: pos.Z + d.Depth})
}

// addAnchor inserts a in sorted position unless it is out of bounds,
// inside a placed box or already present.
func (o *Occupancy) addAnchor(a model.Position) {
	v := a.Vec()
	if !o.space.ContainsPoint(v, o.eps) {
		return
	}
	for _, b := range o.boxes {
		if b.ContainsPoint(v, o.eps) {
			return
		}
	}

	i := sort.Search(len(o.anchors), func(i int) bool {
		return !anchorLess(o.anchors[i], a, o.eps)
	})
	if i < len(o.anchors) && samePoint(o.anchors[i], a, o.eps) {
		return
	}
	o.anchors = append(o.anchors, model.Position{})
	copy(o.anchors[i+1:], o.anchors[i:])
	o.anchors[i] = a
}

// RemainingVolume returns the container volume not yet occupied.
func (o *Occupancy) RemainingVolume() float64 {
	return o.bounds.Volume() - o.UsedVolume()
}

// UsedVolume returns the occupied volume, summed over the placed boxes.
func (o *Occupancy) UsedVolume() float64 {
	var used float64
	for _, b := range o.boxes {
		used += b.Volume()
	}
	return used
}

// Len returns the number of registered boxes.
func (o *Occupancy) Len() int {
	return len(o.boxes)
}

// anchorLess orders positions by Z, then Y, then X.
func anchorLess(a, b model.Position, eps float64) bool {
	if math.Abs(a.Z-b.Z) > eps {
		return a.Z < b.Z
	}
	if math.Abs(a.Y-b.Y) > eps {
		return a.Y < b.Y
	}
	if math.Abs(a.X-b.X) > eps {
		return a.X < b.X
	}
	return false
}

func samePoint(a, b model.Position, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}
