package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/BoxPack/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// point2 is a vertex of a footprint drawn in the XY plane of a DXF file.
type point2 struct {
	x, y float64
}

// segment is a line segment between two points, used for chaining
// disconnected LINE entities into closed footprints.
type segment struct {
	start point2
	end   point2
}

// footprintTolerance is the largest gap between segment endpoints that still
// counts as connected, and the smallest footprint side that is imported.
const footprintTolerance = 0.01

// ImportDXF imports items from the top view of a DXF drawing. Each closed
// shape (LWPOLYLINE, CIRCLE, or chain of connected LINEs/ARCs) is a box
// footprint: its bounding box gives Width (drawing X) and Depth (drawing Y),
// and every item gets the given height. Footprints of equal size are merged
// into one item with a quantity.
func ImportDXF(path string, height float64) ImportResult {
	result := ImportResult{}

	if !(height > 0) {
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid item height %g for DXF import", height))
		return result
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var shapes [][]point2
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if len(e.Vertices) >= 3 {
				pts := make([]point2, len(e.Vertices))
				for i, v := range e.Vertices {
					pts[i] = point2{v[0], v[1]}
				}
				shapes = append(shapes, pts)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			cx, cy, r := e.Center[0], e.Center[1], e.Radius
			shapes = append(shapes, []point2{{cx - r, cy - r}, {cx + r, cy + r}, {cx - r, cy + r}})

		case *entity.Arc:
			segments = append(segments, arcSegments(e, 32)...)

		case *entity.Line:
			segments = append(segments, segment{
				start: point2{e.Start[0], e.Start[1]},
				end:   point2{e.End[0], e.End[1]},
			})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	shapes = append(shapes, chainSegments(segments, footprintTolerance)...)

	if len(shapes) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	counts := make(map[model.Dimensions]int)
	var order []model.Dimensions
	for _, s := range shapes {
		w, d := boundingSize(s)
		if w < footprintTolerance || d < footprintTolerance {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate footprint (%.2f x %.2f)", w, d))
			continue
		}
		dims := model.Dims(round2(w), height, round2(d))
		if counts[dims] == 0 {
			order = append(order, dims)
		}
		counts[dims]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Volume() > order[j].Volume()
	})
	for i, dims := range order {
		result.Items = append(result.Items,
			model.NewItem(fmt.Sprintf("DXF Item %d", i+1), dims.Width, dims.Height, dims.Depth, counts[dims]))
	}

	return result
}

// boundingSize returns the width and height of the axis-aligned bounding
// box of pts.
func boundingSize(pts []point2) (float64, float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.x)
		minY = math.Min(minY, p.y)
		maxX = math.Max(maxX, p.x)
		maxY = math.Max(maxY, p.y)
	}
	return maxX - minX, maxY - minY
}

// round2 rounds to two decimals so footprints drawn with float noise merge.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// arcSegments converts a DXF ARC entity to connected line segments.
func arcSegments(a *entity.Arc, numSegments int) []segment {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	segs := make([]segment, 0, numSegments)
	prev := point2{cx + r*math.Cos(startRad), cy + r*math.Sin(startRad)}
	for i := 1; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		next := point2{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
		segs = append(segs, segment{start: prev, end: next})
		prev = next
	}
	return segs
}

// chainSegments connects individual segments into closed shapes.
// tolerance is the maximum distance between endpoints to consider them connected.
func chainSegments(segs []segment, tolerance float64) [][]point2 {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var shapes [][]point2

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []point2{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Only closed chains are footprints
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			shapes = append(shapes, chain[:len(chain)-1])
		}
	}

	return shapes
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b point2, tolerance float64) bool {
	return math.Hypot(a.x-b.x, a.y-b.y) <= tolerance
}
