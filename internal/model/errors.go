package model

import "errors"

var (
	// ErrInvalidDimensions marks an item or container with a non-positive side.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrItemExceedsContainer marks an item that fits no allowed orientation
	// of an empty container.
	ErrItemExceedsContainer = errors.New("item exceeds container")
	// ErrContainerLimitReached marks an item that needed a new container
	// after MaxContainers were already open.
	ErrContainerLimitReached = errors.New("container limit reached")
	// ErrInvalidSettings fails session construction.
	ErrInvalidSettings = errors.New("invalid settings")
	// ErrTooManyItems fails a job whose quantities expand past MaxExpandedItems.
	ErrTooManyItems = errors.New("too many items")
)

// RejectReason is the machine-readable cause of a rejected item.
type RejectReason string

const (
	RejectInvalidDimensions     RejectReason = "InvalidDimensions"
	RejectItemExceedsContainer  RejectReason = "ItemExceedsContainer"
	RejectContainerLimitReached RejectReason = "ContainerLimitReached"
)

// Err maps a reason back to its sentinel error.
func (r RejectReason) Err() error {
	switch r {
	case RejectInvalidDimensions:
		return ErrInvalidDimensions
	case RejectItemExceedsContainer:
		return ErrItemExceedsContainer
	case RejectContainerLimitReached:
		return ErrContainerLimitReached
	}
	return nil
}
