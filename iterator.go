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

package dict

// Iterator is a cursor over all entries of one Map, in unspecified order.
//
// Before returning an entry, Next captures that entry's successor link, so
// deleting the entry just returned (and only that entry) is safe and the
// traversal still visits every other entry exactly once. Deleting any other
// entry, or resizing the table, mid-traversal leaves the iteration behavior
// unspecified.
//
// The iterator holds transient references into the table and must not
// outlive it.
type Iterator[K any, V any] struct {
	m *Map[K, V]
	// index is -1 until the first Next positions the cursor.
	index     int
	entry     *Entry[K, V]
	nextEntry *Entry[K, V]
}

// Iter returns an iterator positioned before the first entry.
func (m *Map[K, V]) Iter() *Iterator[K, V] {
	return &Iterator[K, V]{m: m, index: -1}
}

// Next advances the iterator and returns the next entry, or nil once every
// entry has been returned. After returning nil it keeps returning nil.
func (it *Iterator[K, V]) Next() *Entry[K, V] {
	for {
		if it.entry == nil {
			it.index++
			if it.index >= len(it.m.buckets) {
				return nil
			}
			it.entry = it.m.buckets[it.index]
		} else {
			it.entry = it.nextEntry
		}
		if it.entry != nil {
			// Capture the successor now: the caller may delete the entry we
			// are about to hand out.
			it.nextEntry = it.entry.next
			return it.entry
		}
	}
}
