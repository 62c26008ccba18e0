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

// Package list implements a generic doubly linked list with O(1) head and
// tail insertion, node-level removal, bidirectional iteration, rotation, and
// structural joins.
//
// Per-value behavior is optional and lives on the List itself: Dup copies a
// value when the list is duplicated, Free releases a value when its node is
// removed, and Match drives Search. Unset fields mean identity, no-op, and
// unavailable, respectively.
//
// A List is NOT goroutine-safe.
package list

// Node is one element of a List. A node belongs to exactly one list at a
// time; moving values between lists goes through the list operations, never
// through direct pointer surgery.
type Node[T any] struct {
	prev, next *Node[T]
	// Value is the caller's payload. Mutating it does not disturb the list
	// structure.
	Value T
}

// Prev returns the previous node, or nil at the head.
func (n *Node[T]) Prev() *Node[T] { return n.prev }

// Next returns the next node, or nil at the tail.
func (n *Node[T]) Next() *Node[T] { return n.next }

// List is a doubly linked list. The zero value is an empty list ready for
// use once any desired behavior fields are assigned.
type List[T any] struct {
	head, tail *Node[T]
	len        int

	// Dup, when set, copies a value during Copy. Identity otherwise.
	Dup func(value T) T
	// Free, when set, releases a value when its node is removed.
	Free func(value T)
	// Match, when set, reports whether a node value matches a search key.
	// Search panics without it.
	Match func(value, key T) bool
}

// New returns an empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// Len returns the number of nodes in the list.
func (l *List[T]) Len() int { return l.len }

// First returns the head node, or nil if the list is empty.
func (l *List[T]) First() *Node[T] { return l.head }

// Last returns the tail node, or nil if the list is empty.
func (l *List[T]) Last() *Node[T] { return l.tail }

// AddHead inserts value at the head and returns its node.
func (l *List[T]) AddHead(value T) *Node[T] {
	n := &Node[T]{Value: value}
	if l.len == 0 {
		l.head, l.tail = n, n
	} else {
		n.next = l.head
		l.head.prev = n
		l.head = n
	}
	l.len++
	return n
}

// AddTail inserts value at the tail and returns its node.
func (l *List[T]) AddTail(value T) *Node[T] {
	n := &Node[T]{Value: value}
	if l.len == 0 {
		l.head, l.tail = n, n
	} else {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	}
	l.len++
	return n
}

// Insert places value immediately after (or before) old, which must be a
// node of this list, and returns the new node.
func (l *List[T]) Insert(old *Node[T], value T, after bool) *Node[T] {
	n := &Node[T]{Value: value}
	if after {
		n.prev = old
		n.next = old.next
		if l.tail == old {
			l.tail = n
		}
	} else {
		n.next = old
		n.prev = old.prev
		if l.head == old {
			l.head = n
		}
	}
	if n.prev != nil {
		n.prev.next = n
	}
	if n.next != nil {
		n.next.prev = n
	}
	l.len++
	return n
}

// Remove unlinks node from the list, releasing its value through Free if
// set. The node must belong to this list.
func (l *List[T]) Remove(node *Node[T]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	if l.Free != nil {
		l.Free(node.Value)
	}
	node.prev, node.next = nil, nil
	l.len--
}

// Clear removes every node, releasing values through Free if set. The list
// itself stays valid and empty.
func (l *List[T]) Clear() {
	for n := l.head; n != nil; {
		next := n.next
		if l.Free != nil {
			l.Free(n.Value)
		}
		n.prev, n.next = nil, nil
		n = next
	}
	l.head, l.tail = nil, nil
	l.len = 0
}

// Copy returns a duplicate of the list, copying values through Dup if set
// and sharing them verbatim otherwise. The original is never modified.
func (l *List[T]) Copy() *List[T] {
	c := &List[T]{Dup: l.Dup, Free: l.Free, Match: l.Match}
	for n := l.head; n != nil; n = n.next {
		v := n.Value
		if l.Dup != nil {
			v = l.Dup(v)
		}
		c.AddTail(v)
	}
	return c
}

// Search returns the first node (from the head) whose value matches key
// under the list's Match function, or nil if there is none. Search panics if
// Match is unset.
func (l *List[T]) Search(key T) *Node[T] {
	if l.Match == nil {
		panic("list: Search requires a Match function")
	}
	for n := l.head; n != nil; n = n.next {
		if l.Match(n.Value, key) {
			return n
		}
	}
	return nil
}

// Index returns the node at the zero-based index, where 0 is the head.
// Negative indexes count from the tail: -1 is the last element, -2 the
// penultimate. Out-of-range indexes return nil.
func (l *List[T]) Index(index int) *Node[T] {
	var n *Node[T]
	if index < 0 {
		index = (-index) - 1
		n = l.tail
		for ; index > 0 && n != nil; index-- {
			n = n.prev
		}
	} else {
		n = l.head
		for ; index > 0 && n != nil; index-- {
			n = n.next
		}
	}
	return n
}

// RotateTailToHead detaches the tail node and reinserts it at the head.
func (l *List[T]) RotateTailToHead() {
	if l.len <= 1 {
		return
	}
	tail := l.tail
	l.tail = tail.prev
	l.tail.next = nil
	l.head.prev = tail
	tail.prev = nil
	tail.next = l.head
	l.head = tail
}

// RotateHeadToTail detaches the head node and reinserts it at the tail.
func (l *List[T]) RotateHeadToTail() {
	if l.len <= 1 {
		return
	}
	head := l.head
	l.head = head.next
	l.head.prev = nil
	l.tail.next = head
	head.next = nil
	head.prev = l.tail
	l.tail = head
}

// Join appends all nodes of other to the end of l. The nodes move: other is
// left empty but otherwise valid.
func (l *List[T]) Join(other *List[T]) {
	if other.len == 0 {
		return
	}
	other.head.prev = l.tail
	if l.tail != nil {
		l.tail.next = other.head
	} else {
		l.head = other.head
	}
	l.tail = other.tail
	l.len += other.len

	other.head, other.tail = nil, nil
	other.len = 0
}
