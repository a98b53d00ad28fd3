// Package memo implements two memoization caches
// with different consistency contracts.
//
// [LRU] (and its range-keyed form, [RangeCache]) bounds the number of
// entries and evicts by recency. Entries may be invalidated, so it suits
// results derived from mutable state.
//
// [Splay] is unbounded and never forgets. It suits pure functions, whose
// results cannot go stale, and rewards access patterns with locality.
//
// The following is a summary intended for maintainers.
//
// LRU:
//
//   - Recency order
//
//     Entries live on a ring (see internal/ring). `newest` points at the
//     most recently used entry and `newest.Next()` is always the least
//     recently used one, so both promotion and eviction are O(1).
//
//   - Promotion
//
//     A hit detaches the entry and links it after `newest`.
//     Promoting the oldest entry only advances `newest`.
//
//   - Eviction
//
//     Happens synchronously within Set, only when a new key arrives
//     and the cache already holds capacity entries.
//
//   - Invalidation
//
//     [RangeCache.Invalidate] removes every [Span] covering an index.
//     Spans may overlap arbitrarily, so every entry is visited.
//
// Splay:
//
//   - Ordering
//
//     Left subtree keys are strictly less than the node's key,
//     right subtree keys strictly greater.
//
//   - Splaying
//
//     Every Get and Set restructures the tree toward the key,
//     two levels at a time (zig-zig / zig-zag), with a final single
//     rotation (zig) when the depth is odd.
//     A hit leaves the key at the root. A miss leaves the last node
//     on the search path at the root. Set always leaves its key at the root.
//
//   - Cost
//
//     Any sequence of operations costs O(log n) amortized per operation,
//     and less when accesses cluster, since each touch shortens the
//     accessed key's path.
//
// Building with the `memo_debug` tag enables internal assertions,
// including an O(n) ordering check after every splay.
package memo
