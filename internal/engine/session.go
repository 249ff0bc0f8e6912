package engine

import (
	"errors"
	"iter"
	"log/slog"
	"sort"

	"github.com/piwi3910/BoxPack/internal/model"
)

// Session packs a stream of items into containers of one fixed size. Items
// are processed strictly in the order they are added; every item yields one
// Outcome. A Session is not safe for concurrent use.
type Session struct {
	container model.Dimensions
	settings  model.PackSettings
	bins      *BinManager
	outcomes  []model.Outcome
	logger    *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for container and rejection events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession validates settings against the container and returns an empty
// session. Invalid settings fail with model.ErrInvalidSettings.
func NewSession(container model.Dimensions, settings model.PackSettings, opts ...Option) (*Session, error) {
	if err := settings.Validate(container); err != nil {
		return nil, err
	}
	s := &Session{
		container: container,
		settings:  settings.Normalized(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.bins = NewBinManager(container, s.settings, s.logger)
	s.logger.Debug("Session: created",
		"container", container.String(),
		"rotation", string(s.settings.AllowRotation),
		"epsilon", s.settings.EpsilonFor(container),
	)
	return s, nil
}

// Settings returns the normalized settings of the session.
func (s *Session) Settings() model.PackSettings {
	return s.settings
}

// Add packs a single box. The item's Quantity is ignored.
func (s *Session) Add(item model.Item) model.Outcome {
	return s.addAt(item, model.Orientations(s.settings.AllowRotation, item.Dimensions), len(s.outcomes))
}

// Pack expands items by quantity and adds them in order. It returns the
// outcomes produced by this call.
func (s *Session) Pack(items []model.Item) []model.Outcome {
	start := len(s.outcomes)
	for _, it := range model.ExpandItems(items) {
		s.Add(it)
	}
	return s.outcomesFrom(start)
}

// PackSeq consumes a stream of items, expanding each by quantity. The stream
// may be unbounded; the caller stops it by ending the sequence.
func (s *Session) PackSeq(seq iter.Seq[model.Item]) []model.Outcome {
	start := len(s.outcomes)
	for it := range seq {
		for _, single := range model.ExpandItems([]model.Item{it}) {
			s.Add(single)
		}
	}
	return s.outcomesFrom(start)
}

// addAt packs one box with an explicit orientation order and records its
// outcome under index.
func (s *Session) addAt(item model.Item, orients []model.Orientation, index int) model.Outcome {
	out := model.Outcome{Index: index, Item: item}

	if !item.Dimensions.Valid() {
		out.Status = model.StatusRejected
		out.Reason = model.RejectInvalidDimensions
		s.logger.Info("Session: item rejected", "index", index, "label", item.Label, "reason", string(out.Reason))
		s.outcomes = append(s.outcomes, out)
		return out
	}

	p, err := s.bins.Place(item, orients)
	if err != nil {
		out.Status = model.StatusRejected
		out.Reason = rejectReason(err)
		s.logger.Info("Session: item rejected",
			"index", index,
			"label", item.Label,
			"dimensions", item.Dimensions.String(),
			"reason", string(out.Reason),
		)
		s.outcomes = append(s.outcomes, out)
		return out
	}

	out.Status = model.StatusPlaced
	out.ContainerIndex = p.ContainerIndex
	out.Position = p.Position
	out.Orientation = p.Orientation
	out.Placed = p.Placed
	s.logger.Debug("Session: item placed",
		"index", index,
		"label", item.Label,
		"container", p.ContainerIndex,
		"position", p.Position.String(),
		"orientation", p.Orientation.String(),
	)
	s.outcomes = append(s.outcomes, out)
	return out
}

func rejectReason(err error) model.RejectReason {
	switch {
	case errors.Is(err, model.ErrContainerLimitReached):
		return model.RejectContainerLimitReached
	case errors.Is(err, model.ErrInvalidDimensions):
		return model.RejectInvalidDimensions
	default:
		return model.RejectItemExceedsContainer
	}
}

func (s *Session) outcomesFrom(start int) []model.Outcome {
	out := make([]model.Outcome, len(s.outcomes)-start)
	copy(out, s.outcomes[start:])
	return out
}

// Outcomes returns every outcome recorded so far in processing order.
func (s *Session) Outcomes() []model.Outcome {
	return s.outcomesFrom(0)
}

// ContainerCount returns the number of containers opened so far.
func (s *Session) ContainerCount() int {
	return s.bins.Len()
}

// GlobalEfficiency returns the filled fraction over all open containers.
func (s *Session) GlobalEfficiency() float64 {
	return s.bins.GlobalEfficiency()
}

// ContainerEfficiency returns the filled fraction of container i.
func (s *Session) ContainerEfficiency(i int) float64 {
	return s.bins.ContainerEfficiency(i)
}

// ItemCounts returns the number of items per container.
func (s *Session) ItemCounts() []int {
	return s.bins.ItemCounts()
}

// Result returns a snapshot of the session. Outcomes are sorted by Index.
func (s *Session) Result() model.PackResult {
	outcomes := s.Outcomes()
	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].Index < outcomes[j].Index
	})
	return model.PackResult{
		Container:  s.container,
		Settings:   s.settings,
		Containers: s.bins.Containers(),
		Outcomes:   outcomes,
	}
}
