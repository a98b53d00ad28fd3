package fib

import (
	"math/big"

	"github.com/hashicorp/golang-lru/arc/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/djdv/go-memo"
)

type (
	lruCache struct{ *lru.Cache[int, *big.Int] }
	arcCache struct{ *arc.ARCCache[int, *big.Int] }
)

func (lc lruCache) Set(n int, value *big.Int) { lc.Add(n, value) }
func (ac arcCache) Set(n int, value *big.Int) { ac.Add(n, value) }

// NewLRUCache returns a [Cache] bounded to size
// entries, backed by hashicorp's golang-lru.
func NewLRUCache(size int) (Cache, error) {
	if size < memo.MinimumCapacity {
		return nil, memo.CapacityError(size)
	}
	cache, err := lru.New[int, *big.Int](size)
	if err != nil {
		return nil, err
	}
	return lruCache{Cache: cache}, nil
}

// NewARCCache returns a [Cache] bounded to size
// entries, backed by hashicorp's adaptive replacement cache.
func NewARCCache(size int) (Cache, error) {
	if size < memo.MinimumCapacity {
		return nil, memo.CapacityError(size)
	}
	cache, err := arc.NewARC[int, *big.Int](size)
	if err != nil {
		return nil, err
	}
	return arcCache{ARCCache: cache}, nil
}
