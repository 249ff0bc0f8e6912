package engine

import (
	"testing"

	"github.com/piwi3910/BoxPack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEps = 1e-6

func place(occ *Occupancy, pos model.Position, dims model.Dimensions) {
	occ.Register(model.Placement{Position: pos, Placed: dims})
}

func TestOccupancy_SeededWithOrigin(t *testing.T) {
	occ := NewOccupancy(model.Dims(10, 10, 10), testEps)

	assert.Equal(t, []model.Position{{}}, occ.Candidates())
	assert.InDelta(t, 1000.0, occ.RemainingVolume(), 1e-9)
	assert.Equal(t, 0, occ.Len())
}

func TestOccupancy_RegisterAddsExtensionCorners(t *testing.T) {
	occ := NewOccupancy(model.Dims(10, 10, 10), testEps)
	place(occ, model.Position{}, model.Dims(2, 3, 4))

	assert.Equal(t, []model.Position{
		{X: 2},
		{Y: 3},
		{Z: 4},
	}, occ.Candidates(), "anchors ordered by Z, then Y, then X")
	assert.InDelta(t, 976.0, occ.RemainingVolume(), 1e-9)
	assert.InDelta(t, 24.0, occ.UsedVolume(), 1e-9)
}

func TestOccupancy_CandidatesOrderedByDepthHeightWidth(t *testing.T) {
	occ := NewOccupancy(model.Dims(10, 10, 10), testEps)
	place(occ, model.Position{}, model.Dims(2, 2, 2))
	place(occ, model.Position{X: 2}, model.Dims(5, 5, 5))

	got := occ.Candidates()
	for i := 1; i < len(got); i++ {
		assert.False(t, anchorLess(got[i], got[i-1], testEps), "anchor %d out of order: %v", i, got)
	}
	assert.Equal(t, model.Position{X: 7}, got[0])
}

func TestOccupancy_DropsAnchorsInsidePlacedBoxes(t *testing.T) {
	occ := NewOccupancy(model.Dims(10, 10, 10), testEps)
	place(occ, model.Position{}, model.Dims(2, 2, 2))
	place(occ, model.Position{X: 2}, model.Dims(2, 2, 2))

	assert.NotContains(t, occ.Candidates(), model.Position{X: 2}, "consumed anchor should be dropped")
	assert.Contains(t, occ.Candidates(), model.Position{X: 4})
}

func TestOccupancy_DropsAnchorsOutsideContainer(t *testing.T) {
	occ := NewOccupancy(model.Dims(4, 4, 4), testEps)
	place(occ, model.Position{}, model.Dims(4, 4, 4))

	assert.Empty(t, occ.Candidates())
	assert.InDelta(t, 0.0, occ.RemainingVolume(), 1e-9)
}

func TestOccupancy_DeduplicatesAnchors(t *testing.T) {
	occ := NewOccupancy(model.Dims(10, 10, 10), testEps)
	place(occ, model.Position{}, model.Dims(2, 2, 2))
	place(occ, model.Position{Z: 2}, model.Dims(2, 2, 2))
	place(occ, model.Position{X: 2}, model.Dims(2, 2, 4))

	seen := map[model.Position]int{}
	for _, a := range occ.Candidates() {
		seen[a]++
	}
	for a, n := range seen {
		assert.Equal(t, 1, n, "anchor %v listed %d times", a, n)
	}
}

func TestOccupancy_IsFree(t *testing.T) {
	occ := NewOccupancy(model.Dims(10, 10, 10), testEps)
	place(occ, model.Position{}, model.Dims(5, 5, 5))

	tests := []struct {
		name string
		pos  model.Position
		dims model.Dimensions
		want bool
	}{
		{"touching face", model.Position{X: 5}, model.Dims(5, 5, 5), true},
		{"overlapping", model.Position{X: 4}, model.Dims(2, 2, 2), false},
		{"past the bound", model.Position{X: 6}, model.Dims(5, 1, 1), false},
		{"stacked on top", model.Position{Y: 5}, model.Dims(10, 5, 10), true},
		{"exact remaining slab", model.Position{Z: 5}, model.Dims(10, 10, 5), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, occ.IsFree(tt.pos, tt.dims))
		})
	}
}

func TestOccupancy_CandidatesIsACopy(t *testing.T) {
	occ := NewOccupancy(model.Dims(10, 10, 10), testEps)
	c := occ.Candidates()
	require.Len(t, c, 1)
	c[0] = model.Position{X: 9}
	assert.Equal(t, model.Position{}, occ.Candidates()[0])
}

func TestOccupancy_UsedVolumeMatchesPlacements(t *testing.T) {
	occ := NewOccupancy(model.Dims(10, 10, 10), testEps)
	placements := []model.Placement{
		{Position: model.Position{}, Placed: model.Dims(2, 3, 4)},
		{Position: model.Position{X: 2}, Placed: model.Dims(5, 1, 1)},
		{Position: model.Position{Y: 3}, Placed: model.Dims(0.5, 0.5, 0.5)},
	}

	var want float64
	for _, p := range placements {
		require.True(t, occ.IsFree(p.Position, p.Placed))
		occ.Register(p)
		want += p.Volume()
		assert.InDelta(t, want, occ.UsedVolume(), 1e-9)
		assert.InDelta(t, 1000.0-want, occ.RemainingVolume(), 1e-9)
	}
	assert.Equal(t, len(placements), occ.Len())
}
