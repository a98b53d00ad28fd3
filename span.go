package memo

import "fmt"

type (
	// Span is an inclusive range of indices, [Low, High].
	Span struct{ Low, High int }
	// RangeCache is an [LRU] keyed by [Span],
	// whose entries can be invalidated by index.
	// Concurrent access must be guarded by the caller.
	// Constructed by [NewRangeCache].
	RangeCache[Value any] struct {
		*LRU[Span, Value]
	}
)

// Contains reports whether index lies within the span.
func (s Span) Contains(index int) bool {
	return s.Low <= index && index <= s.High
}

// Len returns the number of indices covered by the span.
func (s Span) Len() int { return s.High - s.Low + 1 }

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d]", s.Low, s.High)
}

// NewRangeCache creates a [RangeCache] with the given capacity.
func NewRangeCache[Value any](capacity int) (*RangeCache[Value], error) {
	lru, err := NewLRU[Span, Value](capacity)
	if err != nil {
		return nil, err
	}
	return &RangeCache[Value]{LRU: lru}, nil
}

// Invalidate removes every entry whose span contains index
// and returns how many were removed.
func (c *RangeCache[_]) Invalidate(index int) int {
	return c.RemoveFunc(func(span Span) bool {
		return span.Contains(index)
	})
}
