package fib_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/djdv/go-memo"
	"github.com/djdv/go-memo/fib"
)

func TestRecursion_Known(t *testing.T) {
	recursion := fib.New()
	for n, want := range []int64{0, 1, 1, 2, 3, 5, 8, 13, 21, 34, 55} {
		got, err := recursion.Compute(n)
		require.NoError(t, err)
		assert.Equal(t, want, got.Int64(), "F(%d)", n)
	}

	got, err := recursion.Compute(100)
	require.NoError(t, err)
	assert.Equal(t, "354224848179261915075", got.String())
}

func TestRecursion_NegativeIndex(t *testing.T) {
	got, err := fib.New().Compute(-1)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, memo.ErrOutOfRange)
}

func TestRecursion_SecondCallIsCached(t *testing.T) {
	recursion := fib.New()

	got, err := recursion.Compute(10)
	require.NoError(t, err)
	assert.Equal(t, int64(55), got.Int64())
	cold := recursion.Stats()
	// One computation per index 0..10.
	assert.Equal(t, 11, cold.Misses)

	got, err = recursion.Compute(10)
	require.NoError(t, err)
	assert.Equal(t, int64(55), got.Int64())
	warm := recursion.Stats()
	assert.Equal(t, cold.Misses, warm.Misses, "recomputed a cached index")
	assert.Equal(t, cold.Hits+1, warm.Hits)

	// Warm cache: only the new index is computed.
	_, err = recursion.Compute(11)
	require.NoError(t, err)
	assert.Equal(t, cold.Misses+1, recursion.Stats().Misses)
}

func TestRecursion_ResultIsCopied(t *testing.T) {
	recursion := fib.New()
	got, err := recursion.Compute(20)
	require.NoError(t, err)
	got.SetInt64(-1)

	again, err := recursion.Compute(20)
	require.NoError(t, err)
	assert.Equal(t, int64(6765), again.Int64())
}

func TestRecursion_Backends(t *testing.T) {
	const n = 300
	want, err := fib.New().Compute(n)
	require.NoError(t, err)

	lruCache, err := fib.NewLRUCache(16)
	require.NoError(t, err)
	arcCache, err := fib.NewARCCache(16)
	require.NoError(t, err)
	lruMemo, err := memo.NewLRU[int, *big.Int](4)
	require.NoError(t, err)

	for name, cache := range map[string]fib.Cache{
		"golang-lru": lruCache,
		"arc":        arcCache,
		"memo.LRU":   lruMemo,
		"memo.Splay": memo.NewSplay[int, *big.Int](),
	} {
		t.Run(name, func(t *testing.T) {
			got, err := fib.New(fib.WithCache(cache)).Compute(n)
			require.NoError(t, err)
			assert.Zero(t, want.Cmp(got), "got %s want %s", got, want)
		})
	}
}

func TestRecursion_InvalidBackendSize(t *testing.T) {
	_, err := fib.NewLRUCache(0)
	assert.ErrorIs(t, err, memo.ErrInvalidCapacity)
	_, err = fib.NewARCCache(-4)
	assert.ErrorIs(t, err, memo.ErrInvalidCapacity)
}

func TestRecursion_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	recursion := fib.New(fib.WithLogger(zap.New(core)))

	_, err := recursion.Compute(5)
	require.NoError(t, err)
	_, err = recursion.Compute(5)
	require.NoError(t, err)

	entries := logs.FilterMessage("computed fibonacci").All()
	require.Len(t, entries, 1, "a fully cached call should not log")
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 5, fields["n"])
	assert.EqualValues(t, 6, fields["computed"])
}
