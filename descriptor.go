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

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// Descriptor parameterizes a Map over arbitrary key and value types. It is
// bound at construction time and shared by reference across the table's
// lifetime; implementations must not change behavior while a table holds
// them.
//
// Hash and Equal are the required surface. The duplication and teardown
// hooks default to identity and no-op when the implementation embeds Base.
// Context that a callback needs (an allocator, a refcount ledger, statistics)
// lives as state on the implementing value.
//
// If DupKey and DupValue copy, the table owns the stored keys and values and
// FreeKey/FreeValue must release them. If they are identity, the table holds
// non-owning references and the hooks must be consistent with that (no-ops).
type Descriptor[K any, V any] interface {
	// Hash returns a well-mixed hash of key. Bucket selection uses only the
	// low bits, so weak low-bit entropy translates directly into chain
	// clustering.
	Hash(key K) uint64
	// Equal reports whether two keys are the same key. Keys that compare
	// equal must hash equally.
	Equal(a, b K) bool
	// DupKey returns the key to store for an inserted entry.
	DupKey(key K) K
	// DupValue returns the value to store for an inserted or updated entry.
	DupValue(value V) V
	// FreeKey releases a stored key on delete or clear.
	FreeKey(key K)
	// FreeValue releases a stored value on delete, clear, or update.
	FreeValue(value V)
}

// Base supplies identity duplication and no-op teardown. Embed it in a
// descriptor implementation and define only Hash, Equal, and whichever hooks
// the key/value types actually need.
type Base[K any, V any] struct{}

func (Base[K, V]) DupKey(key K) K     { return key }
func (Base[K, V]) DupValue(value V) V { return value }
func (Base[K, V]) FreeKey(key K)      {}
func (Base[K, V]) FreeValue(value V)  {}

// StringDescriptor keys a table by string, hashed with xxhash.
type StringDescriptor[V any] struct {
	Base[string, V]
}

func (StringDescriptor[V]) Hash(key string) uint64 { return xxhash.Sum64String(key) }
func (StringDescriptor[V]) Equal(a, b string) bool { return a == b }

// BytesDescriptor keys a table by byte slice contents, hashed with xxhash.
// Keys are copied on insert so the table does not alias caller buffers.
type BytesDescriptor[V any] struct {
	Base[[]byte, V]
}

func (BytesDescriptor[V]) Hash(key []byte) uint64 { return xxhash.Sum64(key) }
func (BytesDescriptor[V]) Equal(a, b []byte) bool { return bytes.Equal(a, b) }
func (BytesDescriptor[V]) DupKey(key []byte) []byte {
	return append([]byte(nil), key...)
}

// Uint64Descriptor keys a table by uint64, mixed through a 64-bit finalizer
// so that sequential keys spread across buckets.
type Uint64Descriptor[V any] struct {
	Base[uint64, V]
}

func (Uint64Descriptor[V]) Hash(key uint64) uint64 { return mix64(key) }
func (Uint64Descriptor[V]) Equal(a, b uint64) bool { return a == b }

// IntDescriptor keys a table by int.
type IntDescriptor[V any] struct {
	Base[int, V]
}

func (IntDescriptor[V]) Hash(key int) uint64 { return mix64(uint64(key)) }
func (IntDescriptor[V]) Equal(a, b int) bool { return a == b }

// mix64 is the splitmix64 finalizer. Integer keys are often sequential and
// would otherwise land in consecutive buckets of a power-of-two table.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
