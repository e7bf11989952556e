// Package omap implements an ordered key-value map: a hash index for O(1)
// key lookup coupled with a position-ordered slice for insertion-order
// iteration, sharing entries by pointer between the two indexes (no
// reference counting).
package omap

import "sort"

// entry is shared by both indexes; by_key's map holds *entry and
// by_position's slice holds the same *entry pointers.
type entry[K comparable, V any] struct {
	key K
	val V
	pos uint64 // position_id; 0 is never assigned, reserved as "absent"
}

// Map is the C4 ordered map: parameterized over a comparable key K and
// arbitrary value V.
type Map[K comparable, V any] struct {
	byKey   map[K]*entry[K, V]
	byPos   []*entry[K, V]
	counter uint64
}

// New creates an empty ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{byKey: make(map[K]*entry[K, V])}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return len(m.byPos) }

// Empty reports whether the map has no entries.
func (m *Map[K, V]) Empty() bool { return len(m.byPos) == 0 }

// Contains reports key membership.
func (m *Map[K, V]) Contains(k K) bool {
	_, ok := m.byKey[k]
	return ok
}

// Get returns the value for k and whether it was present.
func (m *Map[K, V]) Get(k K) (V, bool) {
	e, ok := m.byKey[k]
	if !ok {
		var zero V
		return zero, false
	}
	return e.val, true
}

// Set inserts a new entry with a fresh position_id, or overwrites the value
// at an existing key while preserving that key's position_id (invariant 6).
func (m *Map[K, V]) Set(k K, v V) {
	if e, ok := m.byKey[k]; ok {
		e.val = v
		return
	}
	m.counter++
	e := &entry[K, V]{key: k, val: v, pos: m.counter}
	m.byKey[k] = e
	m.byPos = append(m.byPos, e)
}

// Delete removes k from both indexes; returns true if it was present.
func (m *Map[K, V]) Delete(k K) bool {
	e, ok := m.byKey[k]
	if !ok {
		return false
	}
	delete(m.byKey, k)
	for i, v := range m.byPos {
		if v == e {
			m.byPos = append(m.byPos[:i], m.byPos[i+1:]...)
			break
		}
	}
	return true
}

// Clear empties both indexes and resets the position counter to 0.
func (m *Map[K, V]) Clear() {
	m.byKey = make(map[K]*entry[K, V])
	m.byPos = nil
	m.counter = 0
}

// Keys returns keys in insertion (position) order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, len(m.byPos))
	for i, e := range m.byPos {
		keys[i] = e.key
	}
	return keys
}

// Each iterates entries in insertion order; stop early by returning false.
func (m *Map[K, V]) Each(fn func(k K, v V) bool) {
	for _, e := range m.byPos {
		if !fn(e.key, e.val) {
			return
		}
	}
}

// EachReverse iterates entries in reverse insertion order.
func (m *Map[K, V]) EachReverse(fn func(k K, v V) bool) {
	for i := len(m.byPos) - 1; i >= 0; i-- {
		e := m.byPos[i]
		if !fn(e.key, e.val) {
			return
		}
	}
}

// Sort reassigns position ids so iteration order matches ascending key
// order, resetting the counter (invariant 5).
func (m *Map[K, V]) Sort(less func(a, b K) bool) {
	reordered := append([]*entry[K, V](nil), m.byPos...)
	sortEntries(reordered, less)
	m.applyOrder(reordered)
}

// RSort reassigns position ids so iteration order matches descending key
// order, resetting the counter (invariant 5).
func (m *Map[K, V]) RSort(less func(a, b K) bool) {
	reordered := append([]*entry[K, V](nil), m.byPos...)
	sortEntries(reordered, func(a, b K) bool { return less(b, a) })
	m.applyOrder(reordered)
}

func (m *Map[K, V]) applyOrder(ordered []*entry[K, V]) {
	m.counter = 0
	for _, e := range ordered {
		m.counter++
		e.pos = m.counter
	}
	m.byPos = ordered
}

func sortEntries[K comparable, V any](entries []*entry[K, V], less func(a, b K) bool) {
	sort.SliceStable(entries, func(i, j int) bool { return less(entries[i].key, entries[j].key) })
}
