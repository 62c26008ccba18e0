// Copyright 2025 The dictkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dict implements a hash table with chained collision resolution and
// power-of-two incremental growth, in the style of the classic dictionaries
// found at the heart of in-memory data stores.
//
// # Design
//
// A Map is an array of buckets where each bucket heads a singly linked chain
// of entries. The bucket array length is always a power of two (or zero for a
// table that has never been written to), so bucket selection is a bitwise
// AND of the key's hash with len-1 rather than a modulo. The trade-off is
// that a poorly mixed hash function degrades clustering since only the low
// bits of the hash participate in bucket selection; descriptors must supply
// well-mixed hash functions.
//
// The table grows by doubling when the number of entries reaches the number
// of buckets. Growth is a stop-the-world full rehash: a fresh zeroed bucket
// array is allocated and every existing entry is relinked (the same entry
// allocation, no key or value callbacks fire) into its new chain. The pause
// is proportional to the number of live entries; there is no incremental
// rehash variant.
//
// Behavior over arbitrary key and value types is supplied by a Descriptor
// bound at construction time: hashing, key equality, and optional key/value
// duplication and teardown hooks. See Descriptor.
//
// A Map is NOT goroutine-safe. It assumes single-threaded, cooperative
// access; synchronization belongs to the caller.
package dict

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// initialSize is the bucket count adopted by the first insertion into an
// empty table.
const initialSize = 4

// maxSize is the largest bucket array the table will allocate. Expansion
// requests beyond it are clamped rather than rejected.
const maxSize = 1 << (bits.UintSize - 2)

var (
	// ErrKeyExists is returned by Add when an equal key is already present.
	ErrKeyExists = errors.New("dict: key exists")
	// ErrNotFound is returned by Delete when no equal key is present.
	ErrNotFound = errors.New("dict: key not found")
	// ErrCapacity is returned by Expand when the requested capacity is
	// smaller than the current number of entries.
	ErrCapacity = errors.New("dict: capacity below current occupancy")
)

// Entry is a single key/value pair stored in a Map. Entries are owned by the
// chain they live in; callers only ever observe them through Find and
// iteration and must not retain them across mutations of the table.
type Entry[K any, V any] struct {
	key   K
	value V
	next  *Entry[K, V]
}

// Key returns the entry's key.
func (e *Entry[K, V]) Key() K { return e.key }

// Value returns the entry's value.
func (e *Entry[K, V]) Value() V { return e.value }

// Map is a hash table from keys to values with Add, Replace, Delete, Find,
// and iteration operations. The zero value is not usable; construct with New.
//
// A Map is NOT goroutine-safe.
type Map[K any, V any] struct {
	// desc bundles the behavior callbacks for keys and values. Bound once at
	// construction, shared by reference for the table's lifetime.
	desc Descriptor[K, V]
	// buckets has power-of-two length, or zero length for a table that is
	// empty and has never been expanded.
	buckets []*Entry[K, V]
	// mask is len(buckets)-1 whenever buckets is non-empty.
	mask uint64
	// used is the number of live entries across all chains.
	used int
}

// New constructs an empty Map bound to the given descriptor. The table
// allocates no buckets until the first insertion (or a WithCapacity option).
func New[K any, V any](desc Descriptor[K, V], options ...Option[K, V]) *Map[K, V] {
	m := &Map[K, V]{desc: desc}
	for _, op := range options {
		op.apply(m)
	}
	m.checkInvariants()
	return m
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	return m.used
}

// Add inserts an entry into the map. If an equal key is already present the
// map is left unchanged and ErrKeyExists is returned. The stored key and
// value are the results of the descriptor's DupKey and DupValue hooks.
func (m *Map[K, V]) Add(key K, value V) error {
	i, ok := m.keyIndex(key)
	if !ok {
		return ErrKeyExists
	}
	m.buckets[i] = &Entry[K, V]{
		key:   m.desc.DupKey(key),
		value: m.desc.DupValue(value),
		next:  m.buckets[i],
	}
	m.used++
	m.checkInvariants()
	return nil
}

// Replace inserts an entry, overwriting the value of an existing entry with
// an equal key. It reports whether the key was newly inserted (true) or an
// existing entry was updated (false).
//
// On update the new value is stored before the previous value is released.
// The ordering is load-bearing: under a reference-counted descriptor the new
// and old values may be the same object, and releasing first would open a
// window where the object is unreferenced.
func (m *Map[K, V]) Replace(key K, value V) bool {
	if m.Add(key, value) == nil {
		return true
	}
	e := m.Find(key)
	old := e.value
	e.value = m.desc.DupValue(value)
	m.desc.FreeValue(old)
	return false
}

// Delete removes the entry with an equal key, releasing its key and value
// through the descriptor. Returns ErrNotFound if no such entry exists; the
// map is left unchanged in that case.
func (m *Map[K, V]) Delete(key K) error {
	if len(m.buckets) == 0 {
		return ErrNotFound
	}
	i := m.desc.Hash(key) & m.mask
	var prev *Entry[K, V]
	for e := m.buckets[i]; e != nil; e = e.next {
		if m.desc.Equal(key, e.key) {
			if prev != nil {
				prev.next = e.next
			} else {
				m.buckets[i] = e.next
			}
			m.desc.FreeKey(e.key)
			m.desc.FreeValue(e.value)
			e.next = nil
			m.used--
			m.checkInvariants()
			return nil
		}
		prev = e
	}
	return ErrNotFound
}

// Find returns the entry with an equal key, or nil if no such entry exists.
// The returned entry remains owned by the map.
func (m *Map[K, V]) Find(key K) *Entry[K, V] {
	if len(m.buckets) == 0 {
		return nil
	}
	i := m.desc.Hash(key) & m.mask
	for e := m.buckets[i]; e != nil; e = e.next {
		if m.desc.Equal(key, e.key) {
			return e
		}
	}
	return nil
}

// Get retrieves the value stored for key, returning ok=false if the key is
// not present.
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	if e := m.Find(key); e != nil {
		return e.value, true
	}
	return value, false
}

// Expand grows (or shrinks) the bucket array to the smallest power of two
// that is >= max(4, n), rehashing every existing entry into the new array.
// Entries are relinked in place: the same allocations move to their new
// chains and no duplication or teardown callbacks fire. Returns ErrCapacity
// if n is smaller than the current number of entries; the map is left
// unchanged in that case.
//
// This is a stop-the-world rehash, O(Len); callers absorb the cost as one
// unbroken pause.
func (m *Map[K, V]) Expand(n int) error {
	if n < m.used {
		return ErrCapacity
	}
	realsize := nextPower(n)
	buckets := make([]*Entry[K, V], realsize)
	mask := uint64(realsize - 1)

	// Relink every entry under the new mask. Chains are consumed head-first
	// and entries are prepended to their new chain, so relative order within
	// a chain is not preserved (it was never guaranteed).
	for _, head := range m.buckets {
		for e := head; e != nil; {
			next := e.next
			i := m.desc.Hash(e.key) & mask
			e.next = buckets[i]
			buckets[i] = e
			e = next
		}
	}

	m.buckets = buckets
	m.mask = mask
	m.checkInvariants()
	return nil
}

// Clear removes every entry, releasing keys and values through the
// descriptor, and returns the table to its initial zero-bucket state. Clear
// cannot fail: once entered, every live entry is torn down.
func (m *Map[K, V]) Clear() {
	for i, head := range m.buckets {
		for e := head; e != nil; {
			next := e.next
			m.desc.FreeKey(e.key)
			m.desc.FreeValue(e.value)
			e.next = nil
			e = next
		}
		m.buckets[i] = nil
	}
	m.buckets = nil
	m.mask = 0
	m.used = 0
	m.checkInvariants()
}

// Close releases the map. It is equivalent to Clear and is idempotent; the
// map remains technically usable afterwards but callers should treat it as
// dead.
func (m *Map[K, V]) Close() {
	m.Clear()
}

// All calls yield sequentially for each key and value present in the map,
// stopping early if yield returns false. The map must not be mutated during
// the iteration.
func (m *Map[K, V]) All(yield func(key K, value V) bool) {
	it := m.Iter()
	for e := it.Next(); e != nil; e = it.Next() {
		if !yield(e.key, e.value) {
			return
		}
	}
}

// keyIndex grows the table if needed and returns the bucket index at which a
// new entry for key should be inserted, or ok=false if an equal key is
// already present.
func (m *Map[K, V]) keyIndex(key K) (index uint64, ok bool) {
	m.expandIfNeeded()
	i := m.desc.Hash(key) & m.mask
	for e := m.buckets[i]; e != nil; e = e.next {
		if m.desc.Equal(key, e.key) {
			return 0, false
		}
	}
	return i, true
}

// expandIfNeeded grows an empty table to the initial size and doubles a full
// one. Doubling before used can exceed the bucket count keeps the load
// factor at most 1.
func (m *Map[K, V]) expandIfNeeded() {
	if len(m.buckets) == 0 {
		_ = m.Expand(initialSize)
		return
	}
	if m.used == len(m.buckets) {
		_ = m.Expand(len(m.buckets) * 2)
	}
}

// nextPower returns the smallest power of two >= max(initialSize, n),
// clamped at maxSize.
func nextPower(n int) int {
	if n <= initialSize {
		return initialSize
	}
	if n >= maxSize {
		return maxSize
	}
	return 1 << bits.Len(uint(n-1))
}

func (m *Map[K, V]) checkInvariants() {
	if invariants {
		size := len(m.buckets)
		if size&(size-1) != 0 {
			panic(fmt.Sprintf("invariant failed: size %d is not a power of two\n%s", size, m.debugString()))
		}
		if size > 0 && m.mask != uint64(size-1) {
			panic(fmt.Sprintf("invariant failed: mask %d does not match size %d\n%s", m.mask, size, m.debugString()))
		}
		var used int
		for i, head := range m.buckets {
			for e := head; e != nil; e = e.next {
				if j := m.desc.Hash(e.key) & m.mask; j != uint64(i) {
					panic(fmt.Sprintf("invariant failed: entry %v in bucket %d hashes to %d\n%s", e.key, i, j, m.debugString()))
				}
				used++
			}
		}
		if used != m.used {
			panic(fmt.Sprintf("invariant failed: found %d entries, but used count is %d\n%s", used, m.used, m.debugString()))
		}
	}
}

func (m *Map[K, V]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "size=%d  mask=%x  used=%d\n", len(m.buckets), m.mask, m.used)
	for i, head := range m.buckets {
		if head == nil {
			continue
		}
		fmt.Fprintf(&buf, "  %4d:", i)
		for e := head; e != nil; e = e.next {
			fmt.Fprintf(&buf, " %v=%v", e.key, e.value)
		}
		buf.WriteString("\n")
	}
	return buf.String()
}
