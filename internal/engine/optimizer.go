package engine

import (
	"sort"

	"github.com/piwi3910/BoxPack/internal/model"
)

// Optimizer runs a full packing job with the configured algorithm.
type Optimizer struct {
	Settings model.PackSettings
	opts     []Option
}

func New(settings model.PackSettings, opts ...Option) *Optimizer {
	return &Optimizer{Settings: settings, opts: opts}
}

// Pack expands items by quantity and packs them into containers of the
// given dimensions. Jobs past model.MaxExpandedItems fail with
// model.ErrTooManyItems before anything is allocated. Outcomes are reported
// in expanded input order whatever order the algorithm fed the items in.
func (o *Optimizer) Pack(container model.Dimensions, items []model.Item) (model.PackResult, error) {
	if err := o.Settings.Validate(container); err != nil {
		return model.PackResult{}, err
	}
	if err := model.CheckItemCount(items); err != nil {
		return model.PackResult{}, err
	}
	expanded := model.ExpandItems(items)

	switch o.Settings.Normalized().Algorithm {
	case model.AlgorithmVolumeDesc:
		return packOrdered(container, o.Settings, expanded, volumeDescOrder(expanded), nil, o.opts...)
	case model.AlgorithmGenetic:
		return OptimizeGenetic(container, o.Settings, expanded, o.opts...)
	default:
		s, err := NewSession(container, o.Settings, o.opts...)
		if err != nil {
			return model.PackResult{}, err
		}
		s.Pack(expanded)
		return s.Result(), nil
	}
}

// packOrdered feeds items to a fresh session in the given order. prefs, if
// non-nil, holds per item the index of the allowed orientation to try first.
func packOrdered(container model.Dimensions, settings model.PackSettings, items []model.Item, order []int, prefs []int, opts ...Option) (model.PackResult, error) {
	s, err := NewSession(container, settings, opts...)
	if err != nil {
		return model.PackResult{}, err
	}
	mode := s.Settings().AllowRotation
	for _, idx := range order {
		it := items[idx]
		orients := model.Orientations(mode, it.Dimensions)
		if prefs != nil {
			orients = preferOrientation(orients, prefs[idx])
		}
		s.addAt(it, orients, idx)
	}
	return s.Result(), nil
}

// volumeDescOrder returns item indices sorted by volume, largest first.
// Equal volumes keep input order.
func volumeDescOrder(items []model.Item) []int {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return items[order[i]].Dimensions.Volume() > items[order[j]].Dimensions.Volume()
	})
	return order
}

// preferOrientation moves orients[k] to the front, keeping the rest in order.
func preferOrientation(orients []model.Orientation, k int) []model.Orientation {
	if k <= 0 || k >= len(orients) {
		return orients
	}
	out := make([]model.Orientation, 0, len(orients))
	out = append(out, orients[k])
	out = append(out, orients[:k]...)
	out = append(out, orients[k+1:]...)
	return out
}
