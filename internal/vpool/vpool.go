// Package vpool provides a generic sync.Pool-backed free list, used to
// recycle a Value tree's backing storage (Array element slices, Object
// maps) across parse/discard cycles. It is a plain "pool the value, let
// Get/Put manage its lifecycle" wrapper with a type parameter; there is no
// arena or bump allocator, which has no analogue for a tree of
// already-boxed *Value pointers.
package vpool

import "sync"

// Pool recycles values of type T via a New function for cache misses.
type Pool[T any] struct {
	p sync.Pool
}

// New creates a Pool whose cache misses are filled by newFn.
func New[T any](newFn func() T) *Pool[T] {
	return &Pool[T]{p: sync.Pool{New: func() any { return newFn() }}}
}

// Get retrieves a value from the pool, calling newFn on a miss.
func (pl *Pool[T]) Get() T {
	return pl.p.Get().(T)
}

// Put returns v to the pool. Callers must not use v after Put.
func (pl *Pool[T]) Put(v T) {
	pl.p.Put(v)
}
