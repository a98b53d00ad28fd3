package memo

import (
	"cmp"
	"iter"
)

type (
	node[Key cmp.Ordered, Value any] struct {
		left, right *node[Key, Value]
		key         Key
		value       Value
	}
	// Splay is an unbounded cache backed by a splay tree.
	// Every access rotates the accessed key (or its
	// nearest neighbour, on a miss) to the root, so
	// recently and frequently used keys stay shallow.
	// Nothing is ever evicted.
	// Concurrent access must be guarded by the caller.
	// Constructed by [NewSplay].
	Splay[Key cmp.Ordered, Value any] struct {
		root  *node[Key, Value]
		count int
	}
)

// NewSplay creates an empty [Splay].
func NewSplay[Key cmp.Ordered, Value any]() *Splay[Key, Value] {
	return new(Splay[Key, Value])
}

// Load returns the cached value for key (if present). Otherwise, it calls fetch,
// inserts and returns the value on success.
// If fetch returns an error, the value is not cached.
func (s *Splay[Key, Value]) Load(key Key, fetch func() (Value, error)) (Value, error) {
	if value, ok := s.Get(key); ok {
		return value, nil
	}
	value, err := fetch()
	if err != nil {
		return value, err
	}
	s.Set(key, value)
	return value, nil
}

// Get splays the tree toward key and returns its Value if present;
// otherwise it returns the zero value and false.
// A miss still restructures the tree, leaving
// the last node visited by the search at the root.
func (s *Splay[Key, Value]) Get(key Key) (Value, bool) {
	s.root = splay(s.root, key)
	s.check()
	if s.root != nil && s.root.key == key {
		return s.root.value, true
	}
	var zero Value
	return zero, false
}

// Set inserts or updates key with value.
// Afterwards, key is always at the root.
func (s *Splay[Key, Value]) Set(key Key, value Value) {
	if s.root == nil {
		s.root = &node[Key, Value]{key: key, value: value}
		s.count++
		s.check()
		return
	}
	root := splay(s.root, key)
	if root.key == key {
		root.value = value
		s.root = root
		s.check()
		return
	}
	added := &node[Key, Value]{key: key, value: value}
	if key < root.key {
		added.left, added.right = root.left, root
		root.left = nil
	} else {
		added.left, added.right = root, root.right
		root.right = nil
	}
	s.root = added
	s.count++
	s.check()
}

// splay restructures the subtree at root so that key, or the last
// node on its search path, becomes the new subtree root.
// Zig-zig and zig-zag cases recurse two levels at a time.
func splay[Key cmp.Ordered, Value any](root *node[Key, Value], key Key) *node[Key, Value] {
	if root == nil || root.key == key {
		return root
	}
	if key < root.key {
		child := root.left
		if child == nil {
			return root
		}
		switch {
		case key < child.key: // Zig-zig.
			child.left = splay(child.left, key)
			root = rotateRight(root)
		case key > child.key: // Zig-zag.
			child.right = splay(child.right, key)
			if child.right != nil {
				root.left = rotateLeft(child)
			}
		}
		if root.left == nil {
			return root
		}
		return rotateRight(root)
	}
	child := root.right
	if child == nil {
		return root
	}
	switch {
	case key > child.key: // Zig-zig.
		child.right = splay(child.right, key)
		root = rotateLeft(root)
	case key < child.key: // Zig-zag.
		child.left = splay(child.left, key)
		if child.left != nil {
			root.right = rotateRight(child)
		}
	}
	if root.right == nil {
		return root
	}
	return rotateLeft(root)
}

func rotateRight[Key cmp.Ordered, Value any](x *node[Key, Value]) *node[Key, Value] {
	y := x.left
	x.left = y.right
	y.right = x
	return y
}

func rotateLeft[Key cmp.Ordered, Value any](x *node[Key, Value]) *node[Key, Value] {
	y := x.right
	x.right = y.left
	y.left = x
	return y
}

// Root returns the key currently at the root of the tree.
func (s *Splay[Key, _]) Root() (Key, bool) {
	if s.root == nil {
		var zero Key
		return zero, false
	}
	return s.root.key, true
}

// Len returns the number of cached keys.
func (s *Splay[_, _]) Len() int { return s.count }

// Height returns the number of nodes on the
// longest path from the root to a leaf.
func (s *Splay[Key, Value]) Height() int {
	type frame struct {
		node  *node[Key, Value]
		depth int
	}
	var (
		height int
		stack  []frame
	)
	if s.root != nil {
		stack = append(stack, frame{s.root, 1})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		height = max(height, top.depth)
		for _, child := range [...]*node[Key, Value]{top.node.left, top.node.right} {
			if child != nil {
				stack = append(stack, frame{child, top.depth + 1})
			}
		}
	}
	return height
}

// Keys returns an iterator over the cached keys in ascending order.
// Iteration does not restructure the tree.
func (s *Splay[Key, _]) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for key := range s.All() {
			if !yield(key) {
				return
			}
		}
	}
}

// All returns an iterator over the cached pairs in ascending key order.
// Iteration does not restructure the tree.
// The tree must not be modified during iteration.
func (s *Splay[Key, Value]) All() iter.Seq2[Key, Value] {
	return func(yield func(Key, Value) bool) {
		var (
			stack   []*node[Key, Value]
			current = s.root
		)
		for current != nil || len(stack) > 0 {
			for ; current != nil; current = current.left {
				stack = append(stack, current)
			}
			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(current.key, current.value) {
				return
			}
			current = current.right
		}
	}
}

// check asserts the search tree ordering when debugging.
func (s *Splay[Key, _]) check() {
	if !debugging {
		return
	}
	var (
		previous Key
		first    = true
		count    int
	)
	for key := range s.Keys() {
		assert(first || previous < key,
			"splay tree keys out of order")
		previous, first = key, false
		count++
	}
	assert(count == s.count, "splay tree count mismatch")
}
