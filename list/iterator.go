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

package list

// Direction selects which way an iterator walks.
type Direction int

const (
	// Head walks from the head towards the tail.
	Head Direction = iota
	// Tail walks from the tail towards the head.
	Tail
)

// Iterator walks a list in one direction. The successor of the returned
// node is captured before Next returns, so removing the node just returned
// (and only that node) is safe mid-traversal.
type Iterator[T any] struct {
	next      *Node[T]
	direction Direction
}

// Iterator returns an iterator positioned at the list's first node in the
// given direction.
func (l *List[T]) Iterator(d Direction) *Iterator[T] {
	it := &Iterator[T]{}
	if d == Head {
		l.Rewind(it)
	} else {
		l.RewindTail(it)
	}
	return it
}

// Rewind repositions the iterator at the head, walking forwards.
func (l *List[T]) Rewind(it *Iterator[T]) {
	it.next = l.head
	it.direction = Head
}

// RewindTail repositions the iterator at the tail, walking backwards.
func (l *List[T]) RewindTail(it *Iterator[T]) {
	it.next = l.tail
	it.direction = Tail
}

// Next returns the next node, or nil once the walk is done.
func (it *Iterator[T]) Next() *Node[T] {
	current := it.next
	if current != nil {
		if it.direction == Head {
			it.next = current.next
		} else {
			it.next = current.prev
		}
	}
	return current
}
