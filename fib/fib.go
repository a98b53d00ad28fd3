// Package fib computes Fibonacci numbers by memoized recursion.
//
// Results are pure, so the default backend is an unbounded [memo.Splay]:
// the recursion touches keys in a descending then ascending sweep,
// which a splay tree serves from near its root.
package fib

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/djdv/go-memo"
)

type (
	// Cache stores computed results by index.
	// Cached values are shared and must not be modified.
	Cache interface {
		Get(n int) (*big.Int, bool)
		Set(n int, value *big.Int)
	}
	// Recursion memoizes the Fibonacci sequence in a [Cache].
	// Concurrent access must be guarded by the caller.
	// Constructed by [New].
	Recursion struct {
		cache Cache
		log   *zap.Logger
		stats Stats
	}
	// Stats counts the work done by a [Recursion].
	Stats struct {
		// Hits is the number of results served from the cache.
		Hits int
		// Misses is the number of results computed.
		Misses int
	}
	// Option configures a [Recursion].
	Option func(*Recursion)
)

// WithCache replaces the default [memo.Splay] backend.
func WithCache(cache Cache) Option {
	return func(r *Recursion) { r.cache = cache }
}

// WithLogger sets the logger used for debug tracing.
// The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Recursion) { r.log = logger }
}

// New creates a [Recursion] with an empty cache.
func New(options ...Option) *Recursion {
	recursion := &Recursion{log: zap.NewNop()}
	for _, apply := range options {
		apply(recursion)
	}
	if recursion.cache == nil {
		recursion.cache = memo.NewSplay[int, *big.Int]()
	}
	return recursion
}

// Compute returns the n-th Fibonacci number, F(0) = 0, F(1) = 1.
func (r *Recursion) Compute(n int) (*big.Int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n must be >=0 but %d was requested",
			memo.ErrOutOfRange, n)
	}
	misses := r.stats.Misses
	value := r.compute(n)
	if computed := r.stats.Misses - misses; computed != 0 {
		r.log.Debug("computed fibonacci",
			zap.Int("n", n),
			zap.Int("computed", computed),
			zap.Int("bits", value.BitLen()),
		)
	}
	return new(big.Int).Set(value), nil
}

func (r *Recursion) compute(n int) *big.Int {
	if value, ok := r.cache.Get(n); ok {
		r.stats.Hits++
		return value
	}
	r.stats.Misses++
	var value *big.Int
	if n <= 1 {
		value = big.NewInt(int64(n))
	} else {
		value = new(big.Int).Add(r.compute(n-1), r.compute(n-2))
	}
	r.cache.Set(n, value)
	return value
}

// Stats returns a snapshot of the recursion's counters.
func (r *Recursion) Stats() Stats { return r.stats }
