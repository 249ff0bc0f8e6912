package model

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Item represents a box to be packed.
type Item struct {
	ID         string     `json:"id"`
	Label      string     `json:"label"`
	Dimensions Dimensions `json:"dimensions"`
	Quantity   int        `json:"quantity"`
}

func NewItem(label string, w, h, d float64, qty int) Item {
	return Item{
		ID:         uuid.New().String()[:8],
		Label:      label,
		Dimensions: Dims(w, h, d),
		Quantity:   qty,
	}
}

// MaxExpandedItems bounds the number of single items in one packing job.
const MaxExpandedItems = 100_000

// CheckItemCount returns ErrTooManyItems if items would expand to more than
// MaxExpandedItems single items.
func CheckItemCount(items []Item) error {
	total := 0
	for _, it := range items {
		total += max(it.Quantity, 1)
		if total > MaxExpandedItems {
			return fmt.Errorf("%w: more than %d after quantity expansion", ErrTooManyItems, MaxExpandedItems)
		}
	}
	return nil
}

// ExpandItems turns every item with Quantity n into n single items, keeping
// input order. Items with a quantity below one count as one.
func ExpandItems(items []Item) []Item {
	var expanded []Item
	for _, it := range items {
		n := it.Quantity
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			cp := it
			cp.Quantity = 1
			expanded = append(expanded, cp)
		}
	}
	return expanded
}

// Heuristic selects how the placement search chooses among feasible spots.
type Heuristic string

const (
	HeuristicFirstFit     Heuristic = "first-fit"     // first orientation, first anchor
	HeuristicLowestAnchor Heuristic = "lowest-anchor" // lowest anchor across all orientations
)

// BinPolicy selects which open containers an item may enter.
type BinPolicy string

const (
	BinPolicyCurrent BinPolicy = "current"  // only the most recently opened container
	BinPolicyAllOpen BinPolicy = "all-open" // every open container in creation order
)

// Algorithm selects the order in which items are fed to the session.
type Algorithm string

const (
	AlgorithmStream     Algorithm = "stream"      // input order
	AlgorithmVolumeDesc Algorithm = "volume-desc" // largest volume first
	AlgorithmGenetic    Algorithm = "genetic"     // evolved order and orientation priority
)

// PackSettings holds the packing configuration shared by all containers of
// a session.
type PackSettings struct {
	AllowRotation RotationMode `json:"allow_rotation"`
	Epsilon       float64      `json:"epsilon"` // 0 = derived from the container size
	Heuristic     Heuristic    `json:"heuristic"`
	BinPolicy     BinPolicy    `json:"bin_policy"`
	Algorithm     Algorithm    `json:"algorithm"`
	MaxContainers int          `json:"max_containers"` // 0 = unlimited
}

func DefaultSettings() PackSettings {
	return PackSettings{
		AllowRotation: RotationNone,
		Epsilon:       0,
		Heuristic:     HeuristicFirstFit,
		BinPolicy:     BinPolicyCurrent,
		Algorithm:     AlgorithmStream,
		MaxContainers: 0,
	}
}

// relativeEpsilon is the default tolerance as a fraction of the smallest
// container side.
const relativeEpsilon = 1e-6

// minEpsilon is the absolute floor for the derived tolerance.
const minEpsilon = 1e-9

// EpsilonFor returns the comparison tolerance to use for a container.
func (s PackSettings) EpsilonFor(container Dimensions) float64 {
	if s.Epsilon > 0 {
		return s.Epsilon
	}
	return math.Max(container.Smallest()*relativeEpsilon, minEpsilon)
}

// Validate checks the settings against the container they will be used with.
// Empty enum fields are accepted and mean the default.
func (s PackSettings) Validate(container Dimensions) error {
	if !container.Valid() {
		return fmt.Errorf("container %s: %w", container, ErrInvalidSettings)
	}
	if s.AllowRotation != "" && !s.AllowRotation.Valid() {
		return fmt.Errorf("allow_rotation %q: %w", s.AllowRotation, ErrInvalidSettings)
	}
	if s.Epsilon < 0 || math.IsNaN(s.Epsilon) || s.Epsilon >= container.Smallest() {
		return fmt.Errorf("epsilon %g: %w", s.Epsilon, ErrInvalidSettings)
	}
	switch s.Heuristic {
	case "", HeuristicFirstFit, HeuristicLowestAnchor:
	default:
		return fmt.Errorf("heuristic %q: %w", s.Heuristic, ErrInvalidSettings)
	}
	switch s.BinPolicy {
	case "", BinPolicyCurrent, BinPolicyAllOpen:
	default:
		return fmt.Errorf("bin_policy %q: %w", s.BinPolicy, ErrInvalidSettings)
	}
	switch s.Algorithm {
	case "", AlgorithmStream, AlgorithmVolumeDesc, AlgorithmGenetic:
	default:
		return fmt.Errorf("algorithm %q: %w", s.Algorithm, ErrInvalidSettings)
	}
	if s.MaxContainers < 0 {
		return fmt.Errorf("max_containers %d: %w", s.MaxContainers, ErrInvalidSettings)
	}
	return nil
}

// Normalized fills empty enum fields with their defaults.
func (s PackSettings) Normalized() PackSettings {
	d := DefaultSettings()
	if s.AllowRotation == "" {
		s.AllowRotation = d.AllowRotation
	}
	if s.Heuristic == "" {
		s.Heuristic = d.Heuristic
	}
	if s.BinPolicy == "" {
		s.BinPolicy = d.BinPolicy
	}
	if s.Algorithm == "" {
		s.Algorithm = d.Algorithm
	}
	return s
}

// Placement represents a single item placed in a container.
type Placement struct {
	Item           Item        `json:"item"`
	ContainerIndex int         `json:"container"`
	Position       Position    `json:"position"`
	Orientation    Orientation `json:"orientation"`
	Placed         Dimensions  `json:"placed"` // item dimensions after rotation
}

// AABB returns the space the placement occupies.
func (p Placement) AABB() AABB {
	return NewAABB(p.Position, p.Placed)
}

// Volume returns the placed item's volume.
func (p Placement) Volume() float64 {
	return p.Placed.Volume()
}

// ContainerResult represents one container with its placed items.
type ContainerResult struct {
	Index      int         `json:"index"`
	Dimensions Dimensions  `json:"dimensions"`
	Placements []Placement `json:"placements"`
}

// UsedVolume returns the total volume of placed items.
func (cr ContainerResult) UsedVolume() float64 {
	var total float64
	for _, p := range cr.Placements {
		total += p.Volume()
	}
	return total
}

// TotalVolume returns the container volume.
func (cr ContainerResult) TotalVolume() float64 {
	return cr.Dimensions.Volume()
}

// Efficiency returns the filled fraction of the container in [0, 1].
func (cr ContainerResult) Efficiency() float64 {
	tv := cr.TotalVolume()
	if tv == 0 {
		return 0
	}
	return cr.UsedVolume() / tv
}

// ItemCount returns the number of items in the container.
func (cr ContainerResult) ItemCount() int {
	return len(cr.Placements)
}

// Status is the result kind of one item.
type Status string

const (
	StatusPlaced   Status = "placed"
	StatusRejected Status = "rejected"
)

// Outcome reports what happened to one item of the input stream.
type Outcome struct {
	Index          int          `json:"index"` // position in the expanded input stream
	Item           Item         `json:"item"`
	Status         Status       `json:"status"`
	ContainerIndex int          `json:"container"`
	Position       Position     `json:"position"`
	Orientation    Orientation  `json:"orientation"`
	Placed         Dimensions   `json:"placed"`
	Reason         RejectReason `json:"reason,omitempty"`
}

// IsPlaced reports whether the item was placed.
func (o Outcome) IsPlaced() bool {
	return o.Status == StatusPlaced
}

// Err returns the sentinel error for a rejected item, or nil.
func (o Outcome) Err() error {
	if o.Status != StatusRejected {
		return nil
	}
	return o.Reason.Err()
}

// PackResult holds the full solution of a packing session.
type PackResult struct {
	Container  Dimensions        `json:"container"`
	Settings   PackSettings      `json:"settings"`
	Containers []ContainerResult `json:"containers"`
	Outcomes   []Outcome         `json:"outcomes"`
}

// GlobalEfficiency returns the filled fraction over all containers.
func (r PackResult) GlobalEfficiency() float64 {
	var used, total float64
	for _, c := range r.Containers {
		used += c.UsedVolume()
		total += c.TotalVolume()
	}
	if total == 0 {
		return 0
	}
	return used / total
}

// ContainerEfficiency returns the filled fraction of container i, or 0 if
// i is out of range.
func (r PackResult) ContainerEfficiency(i int) float64 {
	if i < 0 || i >= len(r.Containers) {
		return 0
	}
	return r.Containers[i].Efficiency()
}

// ItemCounts returns the number of items per container.
func (r PackResult) ItemCounts() []int {
	counts := make([]int, len(r.Containers))
	for i, c := range r.Containers {
		counts[i] = c.ItemCount()
	}
	return counts
}

// PlacedCount returns the number of placed items.
func (r PackResult) PlacedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.IsPlaced() {
			n++
		}
	}
	return n
}

// Rejected returns the outcomes of all rejected items.
func (r PackResult) Rejected() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.IsPlaced() {
			out = append(out, o)
		}
	}
	return out
}
