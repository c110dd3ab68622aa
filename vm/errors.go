package vm

import "errors"

var (
	// ErrClosed is returned once the ViewModel has been closed.
	ErrClosed = errors.New("view model closed")
	// ErrBusy is returned when the event inbox is full.
	ErrBusy = errors.New("event inbox full")
	// ErrCancelled is returned by Next after the subscription was cancelled.
	ErrCancelled = errors.New("subscription cancelled")
	// ErrComputationPanicked wraps a recovered panic from a Computation.
	ErrComputationPanicked = errors.New("computation panicked")
)
