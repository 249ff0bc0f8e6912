package model

import (
	"fmt"
	"sort"
)

// Orientation is one of the six permutations of an item's axes onto the
// container axes. The name lists which item side ends up along X, Y and Z.
type Orientation int

const (
	OrientWHD Orientation = iota // as given
	OrientWDH                    // tipped forward: depth becomes height
	OrientHWD                    // laid on its side: height along X
	OrientHDW
	OrientDWH
	OrientDHW // turned 90° about the vertical axis
)

// AllOrientations lists the permutations in their fixed enumeration order.
var AllOrientations = []Orientation{OrientWHD, OrientWDH, OrientHWD, OrientHDW, OrientDWH, OrientDHW}

var orientationNames = [...]string{"WHD", "WDH", "HWD", "HDW", "DWH", "DHW"}

func (o Orientation) String() string {
	if o < 0 || int(o) >= len(orientationNames) {
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
	return orientationNames[o]
}

// KeepsVertical reports whether the item's height stays on the Y axis.
func (o Orientation) KeepsVertical() bool {
	return o == OrientWHD || o == OrientDHW
}

func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Orientation) UnmarshalText(b []byte) error {
	for i, n := range orientationNames {
		if n == string(b) {
			*o = Orientation(i)
			return nil
		}
	}
	return fmt.Errorf("unknown orientation %q", string(b))
}

// RotationMode selects which orientations the placement search may use.
type RotationMode string

const (
	RotationNone         RotationMode = "none"             // original orientation only
	RotationVerticalAxis RotationMode = "verticalAxisOnly" // turns about the vertical axis
	RotationAllAxes      RotationMode = "allAxes"          // all six permutations
)

// Valid reports whether m is a recognized mode.
func (m RotationMode) Valid() bool {
	switch m {
	case RotationNone, RotationVerticalAxis, RotationAllAxes:
		return true
	}
	return false
}

// Orientations returns the orientations allowed by mode for an item of the
// given dimensions, in the order the placement search tries them.
// Permutations that produce identical dimensions are listed once.
func Orientations(mode RotationMode, d Dimensions) []Orientation {
	var candidates []Orientation
	switch mode {
	case RotationVerticalAxis:
		candidates = []Orientation{OrientWHD, OrientDHW}
	case RotationAllAxes:
		candidates = make([]Orientation, len(AllOrientations))
		copy(candidates, AllOrientations)
		// Lowest resulting height first.
		sort.SliceStable(candidates, func(i, j int) bool {
			return d.Rotate(candidates[i]).Height < d.Rotate(candidates[j]).Height
		})
	default:
		return []Orientation{OrientWHD}
	}

	seen := make(map[Dimensions]bool, len(candidates))
	result := make([]Orientation, 0, len(candidates))
	for _, o := range candidates {
		r := d.Rotate(o)
		if seen[r] {
			continue
		}
		seen[r] = true
		result = append(result, o)
	}
	return result
}
