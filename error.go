package memo

import "fmt"

type constError string

const (
	// ErrInvalidCapacity may be returned from constructors
	// given a capacity below [MinimumCapacity].
	ErrInvalidCapacity = constError("invalid capacity")
	// ErrOutOfRange is returned by clients of the caches
	// when an index or argument falls outside its domain.
	ErrOutOfRange = constError("out of range")
)

func (errStr constError) Error() string { return string(errStr) }

// CapacityError wraps [ErrInvalidCapacity] with the requested capacity.
func CapacityError(capacity int) error {
	return fmt.Errorf(
		"%w: must be >=%d but %d was requested",
		ErrInvalidCapacity, MinimumCapacity, capacity)
}
