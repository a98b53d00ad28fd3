// Package rangesum answers sum queries over contiguous ranges of a
// mutable array, memoizing results in a [memo.RangeCache].
//
// Updates write through to the array and invalidate every cached
// range covering the updated index, so a hit never returns a sum
// computed from stale cells.
package rangesum

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/djdv/go-memo"
)

type (
	// Number is the set of cell types a [Processor] can sum.
	Number interface {
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
			~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
			~float32 | ~float64
	}
	// Processor memoizes range sums over its cells.
	// Concurrent access must be guarded by the caller.
	// Constructed by [New].
	Processor[N Number] struct {
		cells []N
		cache *memo.RangeCache[N]
		log   *zap.Logger
		stats Stats
	}
	// Stats counts the work done by a [Processor].
	Stats struct {
		// Hits is the number of sums served from the cache.
		Hits int
		// Misses is the number of sums computed from the cells.
		Misses int
		// Updates is the number of cells written.
		Updates int
		// Invalidated is the number of cached sums
		// discarded because a covered cell changed.
		Invalidated int
		// Evictions is the number of cached sums
		// discarded to stay within capacity.
		Evictions int
	}
	// Option configures a [Processor].
	Option func(*settings)

	settings struct {
		log *zap.Logger
	}
)

// WithLogger sets the logger used for debug tracing.
// The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) { s.log = logger }
}

// New creates a [Processor] over cells, caching at most capacity sums.
// The processor takes ownership of cells;
// they must only be modified through [Processor.Update].
func New[N Number](cells []N, capacity int, options ...Option) (*Processor[N], error) {
	cache, err := memo.NewRangeCache[N](capacity)
	if err != nil {
		return nil, fmt.Errorf("rangesum: %w", err)
	}
	config := settings{log: zap.NewNop()}
	for _, apply := range options {
		apply(&config)
	}
	return &Processor[N]{
		cells: cells,
		cache: cache,
		log:   config.log,
	}, nil
}

// Sum returns the sum of cells[low] through cells[high], inclusive.
func (p *Processor[N]) Sum(low, high int) (N, error) {
	if err := p.checkSpan(low, high); err != nil {
		var zero N
		return zero, err
	}
	span := memo.Span{Low: low, High: high}
	if sum, ok := p.cache.Get(span); ok {
		p.stats.Hits++
		return sum, nil
	}
	var (
		sum       N
		evictions = p.cache.Evictions()
	)
	for _, cell := range p.cells[low : high+1] {
		sum += cell
	}
	p.cache.Set(span, sum)
	p.stats.Misses++
	if evicted := p.cache.Evictions() - evictions; evicted != 0 {
		p.stats.Evictions += evicted
		p.log.Debug("evicted least recently used sum",
			zap.Stringer("inserted", span),
			zap.Int("cached", p.cache.Len()),
		)
	}
	return sum, nil
}

// Update sets cells[index] to value and discards
// every cached sum that covered index.
func (p *Processor[N]) Update(index int, value N) error {
	if index < 0 || index >= len(p.cells) {
		return fmt.Errorf(
			"%w: index %d outside [0,%d)",
			memo.ErrOutOfRange, index, len(p.cells))
	}
	p.cells[index] = value
	p.stats.Updates++
	if removed := p.cache.Invalidate(index); removed != 0 {
		p.stats.Invalidated += removed
		p.log.Debug("invalidated cached sums",
			zap.Int("index", index),
			zap.Int("removed", removed),
			zap.Int("cached", p.cache.Len()),
		)
	}
	return nil
}

func (p *Processor[_]) checkSpan(low, high int) error {
	if low < 0 || high >= len(p.cells) || low > high {
		return fmt.Errorf(
			"%w: span [%d,%d] not within [0,%d)",
			memo.ErrOutOfRange, low, high, len(p.cells))
	}
	return nil
}

// Len returns the number of cells.
func (p *Processor[_]) Len() int { return len(p.cells) }

// Cached returns the number of sums currently held.
func (p *Processor[_]) Cached() int { return p.cache.Len() }

// Stats returns a snapshot of the processor's counters.
func (p *Processor[_]) Stats() Stats { return p.stats }
