package model

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// Dimensions holds the side lengths of a box. Width runs along X,
// Height along Y (vertical) and Depth along Z.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Dims is a shorthand constructor for Dimensions.
func Dims(w, h, d float64) Dimensions {
	return Dimensions{Width: w, Height: h, Depth: d}
}

// Valid reports whether every component is strictly positive and finite.
func (d Dimensions) Valid() bool {
	for _, v := range [3]float64{d.Width, d.Height, d.Depth} {
		if !(v > 0) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Volume returns Width * Height * Depth.
func (d Dimensions) Volume() float64 {
	return d.Width * d.Height * d.Depth
}

// Smallest returns the shortest side.
func (d Dimensions) Smallest() float64 {
	return math.Min(d.Width, math.Min(d.Height, d.Depth))
}

// Vec converts the dimensions to a vector (X=Width, Y=Height, Z=Depth).
func (d Dimensions) Vec() mgl64.Vec3 {
	return mgl64.Vec3{d.Width, d.Height, d.Depth}
}

// Rotate permutes the axis lengths according to o.
func (d Dimensions) Rotate(o Orientation) Dimensions {
	switch o {
	case OrientWDH:
		return Dimensions{Width: d.Width, Height: d.Depth, Depth: d.Height}
	case OrientHWD:
		return Dimensions{Width: d.Height, Height: d.Width, Depth: d.Depth}
	case OrientHDW:
		return Dimensions{Width: d.Height, Height: d.Depth, Depth: d.Width}
	case OrientDWH:
		return Dimensions{Width: d.Depth, Height: d.Width, Depth: d.Height}
	case OrientDHW:
		return Dimensions{Width: d.Depth, Height: d.Height, Depth: d.Width}
	default:
		return d
	}
}

// FitsWithin reports whether d is componentwise <= space, within eps.
func (d Dimensions) FitsWithin(space Dimensions, eps float64) bool {
	return d.Width <= space.Width+eps &&
		d.Height <= space.Height+eps &&
		d.Depth <= space.Depth+eps
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%gx%gx%g", d.Width, d.Height, d.Depth)
}

var dimsPattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*[x×*,]\s*(\d+(?:\.\d+)?)\s*[x×*,]\s*(\d+(?:\.\d+)?)\s*$`)

// ParseDimensions parses strings such as "10x10x10", "1.5*2*3" or "40×30×20".
func ParseDimensions(s string) (Dimensions, error) {
	m := dimsPattern.FindStringSubmatch(s)
	if m == nil {
		return Dimensions{}, fmt.Errorf("cannot parse dimensions %q: %w", s, ErrInvalidDimensions)
	}
	var v [3]float64
	for i := range v {
		f, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return Dimensions{}, fmt.Errorf("cannot parse dimensions %q: %w", s, ErrInvalidDimensions)
		}
		v[i] = f
	}
	d := Dims(v[0], v[1], v[2])
	if !d.Valid() {
		return Dimensions{}, fmt.Errorf("dimensions %s: %w", d, ErrInvalidDimensions)
	}
	return d, nil
}

// Position is the minimum corner of a box, measured from the container origin.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec converts the position to a vector.
func (p Position) Vec() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// Offset returns p moved by the given dimensions along every axis.
func (p Position) Offset(d Dimensions) Position {
	return Position{X: p.X + d.Width, Y: p.Y + d.Height, Z: p.Z + d.Depth}
}

func (p Position) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABB builds the box occupying dims with its minimum corner at pos.
func NewAABB(pos Position, dims Dimensions) AABB {
	min := pos.Vec()
	return AABB{Min: min, Max: min.Add(dims.Vec())}
}

// Size returns the side lengths of the box.
func (a AABB) Size() Dimensions {
	s := a.Max.Sub(a.Min)
	return Dimensions{Width: s.X(), Height: s.Y(), Depth: s.Z()}
}

// Volume returns the box volume.
func (a AABB) Volume() float64 {
	return a.Size().Volume()
}

// Overlaps reports whether the interiors of a and b intersect. Boxes that
// only share a face, edge or corner (within eps) do not overlap.
func (a AABB) Overlaps(b AABB, eps float64) bool {
	for i := 0; i < 3; i++ {
		if !(a.Min[i] < b.Max[i]-eps && b.Min[i] < a.Max[i]-eps) {
			return false
		}
	}
	return true
}

// IntersectionVolume returns the volume shared by a and b.
func (a AABB) IntersectionVolume(b AABB) float64 {
	v := 1.0
	for i := 0; i < 3; i++ {
		lo := math.Max(a.Min[i], b.Min[i])
		hi := math.Min(a.Max[i], b.Max[i])
		if hi <= lo {
			return 0
		}
		v *= hi - lo
	}
	return v
}

// Within reports whether a lies inside a container of the given dimensions
// whose minimum corner is the origin.
func (a AABB) Within(bounds Dimensions, eps float64) bool {
	max := bounds.Vec()
	for i := 0; i < 3; i++ {
		if a.Min[i] < -eps || a.Max[i] > max[i]+eps {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether p lies in the half-open box [Min, Max).
func (a AABB) ContainsPoint(p mgl64.Vec3, eps float64) bool {
	for i := 0; i < 3; i++ {
		if p[i] < a.Min[i]-eps || p[i] >= a.Max[i]-eps {
			return false
		}
	}
	return true
}

// Volume returns the volume of d.
func Volume(d Dimensions) float64 { return d.Volume() }

// Rotate returns d permuted by o.
func Rotate(d Dimensions, o Orientation) Dimensions { return d.Rotate(o) }

// FitsWithin reports whether candidate fits inside space componentwise.
func FitsWithin(candidate, space Dimensions, eps float64) bool {
	return candidate.FitsWithin(space, eps)
}

// Overlaps reports whether the box at posA with dimsA overlaps the box at
// posB with dimsB.
func Overlaps(posA Position, dimsA Dimensions, posB Position, dimsB Dimensions, eps float64) bool {
	return NewAABB(posA, dimsA).Overlaps(NewAABB(posB, dimsB), eps)
}
