package engine

import (
	"log/slog"

	"github.com/piwi3910/BoxPack/internal/model"
)

// bin is one open container.
type bin struct {
	index      int
	occ        *Occupancy
	placements []model.Placement
}

// BinManager owns the containers of a session and decides which of them an
// item may enter.
type BinManager struct {
	dims   model.Dimensions
	eps    float64
	policy model.BinPolicy
	heur   model.Heuristic
	max    int
	bins   []*bin
	logger *slog.Logger
}

// NewBinManager creates a manager for containers of the given dimensions.
// settings must already be normalized.
func NewBinManager(dims model.Dimensions, settings model.PackSettings, logger *slog.Logger) *BinManager {
	return &BinManager{
		dims:   dims,
		eps:    settings.EpsilonFor(dims),
		policy: settings.BinPolicy,
		heur:   settings.Heuristic,
		max:    settings.MaxContainers,
		logger: logger,
	}
}

// Place finds a container for item, opening a new one when needed. It
// returns ErrItemExceedsContainer when no allowed orientation fits an empty
// container and ErrContainerLimitReached when a new container would exceed
// MaxContainers. A rejected item leaves the manager unchanged.
func (m *BinManager) Place(item model.Item, orients []model.Orientation) (model.Placement, error) {
	if !m.fitsEmpty(item.Dimensions, orients) {
		return model.Placement{}, model.ErrItemExceedsContainer
	}

	for _, b := range m.tryOrder() {
		if fit, ok := Search(b.occ, item.Dimensions, orients, m.heur); ok {
			return m.commit(b, item, fit), nil
		}
	}

	if m.max > 0 && len(m.bins) >= m.max {
		return model.Placement{}, model.ErrContainerLimitReached
	}

	b := &bin{index: len(m.bins), occ: NewOccupancy(m.dims, m.eps)}
	fit, ok := Search(b.occ, item.Dimensions, orients, m.heur)
	if !ok {
		return model.Placement{}, model.ErrItemExceedsContainer
	}
	m.bins = append(m.bins, b)
	m.logger.Debug("BinManager: opened container", "index", b.index, "item", item.Label)
	return m.commit(b, item, fit), nil
}

// tryOrder returns the open containers an item may enter under the policy.
func (m *BinManager) tryOrder() []*bin {
	if len(m.bins) == 0 {
		return nil
	}
	if m.policy == model.BinPolicyAllOpen {
		return m.bins
	}
	return m.bins[len(m.bins)-1:]
}

func (m *BinManager) fitsEmpty(d model.Dimensions, orients []model.Orientation) bool {
	for _, o := range orients {
		if d.Rotate(o).FitsWithin(m.dims, m.eps) {
			return true
		}
	}
	return false
}

func (m *BinManager) commit(b *bin, item model.Item, fit Fit) model.Placement {
	p := model.Placement{
		Item:           item,
		ContainerIndex: b.index,
		Position:       fit.Position,
		Orientation:    fit.Orientation,
		Placed:         fit.Placed,
	}
	b.occ.Register(p)
	b.placements = append(b.placements, p)
	return p
}

// Len returns the number of open containers.
func (m *BinManager) Len() int {
	return len(m.bins)
}

// Containers returns a snapshot of every container in creation order.
func (m *BinManager) Containers() []model.ContainerResult {
	out := make([]model.ContainerResult, len(m.bins))
	for i, b := range m.bins {
		placements := make([]model.Placement, len(b.placements))
		copy(placements, b.placements)
		out[i] = model.ContainerResult{
			Index:      b.index,
			Dimensions: m.dims,
			Placements: placements,
		}
	}
	return out
}

// GlobalEfficiency returns the filled fraction over all containers.
func (m *BinManager) GlobalEfficiency() float64 {
	if len(m.bins) == 0 {
		return 0
	}
	var used float64
	for _, b := range m.bins {
		for _, p := range b.placements {
			used += p.Volume()
		}
	}
	return used / (m.dims.Volume() * float64(len(m.bins)))
}

// ContainerEfficiency returns the filled fraction of container i, or 0 if
// i is out of range.
func (m *BinManager) ContainerEfficiency(i int) float64 {
	if i < 0 || i >= len(m.bins) {
		return 0
	}
	var used float64
	for _, p := range m.bins[i].placements {
		used += p.Volume()
	}
	return used / m.dims.Volume()
}

// ItemCounts returns the number of items per container.
func (m *BinManager) ItemCounts() []int {
	counts := make([]int, len(m.bins))
	for i, b := range m.bins {
		counts[i] = len(b.placements)
	}
	return counts
}
