package engine

import (
	"fmt"

	"github.com/piwi3910/BoxPack/internal/model"
)

// ViolationKind classifies a broken packing invariant.
type ViolationKind string

const (
	ViolationOverlap     ViolationKind = "overlap"
	ViolationOutOfBounds ViolationKind = "out-of-bounds"
	ViolationRotation    ViolationKind = "rotation"
	ViolationCount       ViolationKind = "count"
)

// Violation describes one broken invariant found by Verify.
type Violation struct {
	Kind           ViolationKind `json:"kind"`
	ContainerIndex int           `json:"container"`
	A              int           `json:"a"` // placement index within the container
	B              int           `json:"b"` // second placement for overlaps, else -1
	Detail         string        `json:"detail"`
}

// Verify checks every container of result: placements must lie inside the
// container, must not overlap pairwise and must carry the dimensions their
// orientation produces. The number of placements must match the placed
// outcomes. It returns nil for a valid result.
func Verify(result model.PackResult) []Violation {
	eps := result.Settings.EpsilonFor(result.Container)
	var violations []Violation
	total := 0

	for _, c := range result.Containers {
		total += len(c.Placements)
		for i, p := range c.Placements {
			box := p.AABB()
			if !box.Within(c.Dimensions, eps) {
				violations = append(violations, Violation{
					Kind:           ViolationOutOfBounds,
					ContainerIndex: c.Index,
					A:              i,
					B:              -1,
					Detail:         fmt.Sprintf("%q at %s size %s exceeds %s", p.Item.Label, p.Position, p.Placed, c.Dimensions),
				})
			}
			if want := p.Item.Dimensions.Rotate(p.Orientation); want != p.Placed {
				violations = append(violations, Violation{
					Kind:           ViolationRotation,
					ContainerIndex: c.Index,
					A:              i,
					B:              -1,
					Detail:         fmt.Sprintf("%q placed as %s, orientation %s gives %s", p.Item.Label, p.Placed, p.Orientation, want),
				})
			}
			for j := i + 1; j < len(c.Placements); j++ {
				q := c.Placements[j]
				if box.Overlaps(q.AABB(), eps) {
					violations = append(violations, Violation{
						Kind:           ViolationOverlap,
						ContainerIndex: c.Index,
						A:              i,
						B:              j,
						Detail: fmt.Sprintf("%q and %q share volume %g",
							p.Item.Label, q.Item.Label, box.IntersectionVolume(q.AABB())),
					})
				}
			}
		}
	}

	if placed := result.PlacedCount(); len(result.Outcomes) > 0 && placed != total {
		violations = append(violations, Violation{
			Kind:           ViolationCount,
			ContainerIndex: -1,
			A:              -1,
			B:              -1,
			Detail:         fmt.Sprintf("%d placed outcomes but %d placements", placed, total),
		})
	}

	return violations
}

// FormatViolations produces human-readable messages from violations.
func FormatViolations(violations []Violation) []string {
	var msgs []string
	for _, v := range violations {
		if v.ContainerIndex < 0 {
			msgs = append(msgs, fmt.Sprintf("%s: %s", v.Kind, v.Detail))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("Container %d: %s: %s", v.ContainerIndex+1, v.Kind, v.Detail))
	}
	return msgs
}
