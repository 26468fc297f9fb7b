package vector

import "errors"

var (
	// ErrEmpty is returned by operations that need at least one element.
	ErrEmpty = errors.New("vector: empty")

	// ErrIndexOutOfRange is returned when a positional index is outside [0, size).
	ErrIndexOutOfRange = errors.New("vector: index out of range")

	// ErrValueNotFound is returned when a value is absent from the set view.
	ErrValueNotFound = errors.New("vector: value not found")

	// ErrTooFew is returned by Next/Prev on vectors with fewer than two elements.
	ErrTooFew = errors.New("vector: fewer than two elements")

	// ErrNoSuccessor is returned by Next for the maximum value.
	ErrNoSuccessor = errors.New("vector: no successor")

	// ErrNoPredecessor is returned by Prev for the minimum value.
	ErrNoPredecessor = errors.New("vector: no predecessor")
)
