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

// Option provides an interface to do work on a Map while it is being
// created.
type Option[K any, V any] interface {
	apply(m *Map[K, V])
}

type capacityOption[K any, V any] struct {
	n int
}

func (op capacityOption[K, V]) apply(m *Map[K, V]) {
	if op.n > 0 {
		// Cannot fail: the table is empty at construction time.
		_ = m.Expand(op.n)
	}
}

// WithCapacity is an option to pre-size a new Map so that n entries can be
// inserted without triggering growth. A value of 0 leaves the table with
// zero buckets until the first insertion.
func WithCapacity[K any, V any](n int) Option[K, V] {
	return capacityOption[K, V]{n}
}
