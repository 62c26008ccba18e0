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

// Package sds implements a compact dynamic byte string: a single allocation
// holding a variable-width header followed by the payload. The header
// records the payload length and the allocated capacity using the smallest
// fixed-width integers that fit, so short strings pay one to three bytes of
// overhead instead of a full-size length/capacity pair.
//
// Five header layouts exist, selected by the low three bits of the leading
// flags byte. Layout 5 packs the length into the upper five bits of the
// flags byte itself and records no spare capacity; layouts 8, 16, 32, and
// 64 follow the flags byte with a length and a capacity integer of the
// corresponding width, little endian. Every accessor dispatches on the
// flags byte.
package sds

import (
	"encoding/binary"
	"math"
)

// S is a compact string. The slice spans the whole allocation (header plus
// capacity); the payload is reached through Bytes. Operations that may grow
// the string return a new S which must replace the old one, like append for
// builtin slices.
type S []byte

const (
	type5 = iota
	type8
	type16
	type32
	type64

	typeMask = 7
	typeBits = 3

	// maxPrealloc caps the greedy growth of Append: below it capacity
	// doubles, above it grows by this constant.
	maxPrealloc = 1024 * 1024

	// type5MaxLen is the largest length the flags byte itself can record.
	type5MaxLen = 1<<5 - 1
)

func hdrSize(t byte) int {
	switch t {
	case type5:
		return 1
	case type8:
		return 1 + 2*1
	case type16:
		return 1 + 2*2
	case type32:
		return 1 + 2*4
	default:
		return 1 + 2*8
	}
}

// reqType returns the smallest header layout able to record length n.
func reqType(n int) byte {
	switch {
	case n <= type5MaxLen:
		return type5
	case n <= math.MaxUint8:
		return type8
	case n <= math.MaxUint16:
		return type16
	case uint64(n) <= math.MaxUint32:
		return type32
	default:
		return type64
	}
}

// New returns a compact string holding a copy of init.
func New(init string) S {
	return newLen([]byte(init), len(init))
}

// NewLen returns a compact string holding a copy of b.
func NewLen(b []byte) S {
	return newLen(b, len(b))
}

// Empty returns an empty compact string. An empty string gets a layout-8
// header rather than layout 5 since empty strings are usually created to be
// appended to, and layout 5 cannot record spare capacity.
func Empty() S {
	return newLen(nil, 0)
}

func newLen(b []byte, n int) S {
	t := reqType(n)
	if n == 0 {
		t = type8
	}
	h := hdrSize(t)
	s := make(S, h+n)
	s[0] = t
	switch t {
	case type5:
		s[0] |= byte(n) << typeBits
	case type8:
		s[1] = byte(n)
		s[2] = byte(n)
	case type16:
		binary.LittleEndian.PutUint16(s[1:], uint16(n))
		binary.LittleEndian.PutUint16(s[3:], uint16(n))
	case type32:
		binary.LittleEndian.PutUint32(s[1:], uint32(n))
		binary.LittleEndian.PutUint32(s[5:], uint32(n))
	default:
		binary.LittleEndian.PutUint64(s[1:], uint64(n))
		binary.LittleEndian.PutUint64(s[9:], uint64(n))
	}
	copy(s[h:], b)
	return s
}

// Len returns the payload length.
func (s S) Len() int {
	switch t := s[0] & typeMask; t {
	case type5:
		return int(s[0] >> typeBits)
	case type8:
		return int(s[1])
	case type16:
		return int(binary.LittleEndian.Uint16(s[1:]))
	case type32:
		return int(binary.LittleEndian.Uint32(s[1:]))
	default:
		return int(binary.LittleEndian.Uint64(s[1:]))
	}
}

// Alloc returns the payload capacity.
func (s S) Alloc() int {
	switch t := s[0] & typeMask; t {
	case type5:
		// Layout 5 has no capacity field; capacity is the length.
		return int(s[0] >> typeBits)
	case type8:
		return int(s[2])
	case type16:
		return int(binary.LittleEndian.Uint16(s[3:]))
	case type32:
		return int(binary.LittleEndian.Uint32(s[5:]))
	default:
		return int(binary.LittleEndian.Uint64(s[9:]))
	}
}

// Avail returns how many bytes can be appended before the string must be
// reallocated. Always 0 for layout 5.
func (s S) Avail() int {
	return s.Alloc() - s.Len()
}

// Bytes returns the payload. The returned slice aliases the string; it is
// valid until the next growing operation.
func (s S) Bytes() []byte {
	h := hdrSize(s[0] & typeMask)
	return s[h : h+s.Len()]
}

// String returns the payload as a Go string.
func (s S) String() string {
	return string(s.Bytes())
}

// Dup returns an independent copy, re-packed into the smallest layout that
// fits the current length.
func (s S) Dup() S {
	return NewLen(s.Bytes())
}

// Clear sets the length to zero. The capacity and layout are kept, so
// subsequent appends reuse the allocation.
func (s S) Clear() {
	s.setLen(0)
}

// SetLen adjusts the recorded payload length, after the caller has written
// payload bytes directly through Bytes of a grown string. Panics if n
// exceeds the capacity.
func (s S) SetLen(n int) {
	if n > s.Alloc() {
		panic("sds: length exceeds capacity")
	}
	s.setLen(n)
}

func (s S) setLen(n int) {
	switch t := s[0] & typeMask; t {
	case type5:
		s[0] = type5 | byte(n)<<typeBits
	case type8:
		s[1] = byte(n)
	case type16:
		binary.LittleEndian.PutUint16(s[1:], uint16(n))
	case type32:
		binary.LittleEndian.PutUint32(s[1:], uint32(n))
	default:
		binary.LittleEndian.PutUint64(s[1:], uint64(n))
	}
}

// Append returns the string with p appended, growing and promoting the
// header layout as needed.
func (s S) Append(p []byte) S {
	n := s.Len()
	s = s.makeRoom(len(p))
	h := hdrSize(s[0] & typeMask)
	copy(s[h+n:], p)
	s.setLen(n + len(p))
	return s
}

// AppendString returns the string with str appended.
func (s S) AppendString(str string) S {
	n := s.Len()
	s = s.makeRoom(len(str))
	h := hdrSize(s[0] & typeMask)
	copy(s[h+n:], str)
	s.setLen(n + len(str))
	return s
}

// makeRoom ensures capacity for addlen more payload bytes. Growth is greedy
// to amortize repeated appends: the new capacity is double the needed
// length until maxPrealloc, then grows linearly. Layout 5 cannot record
// spare capacity and is always promoted on growth.
func (s S) makeRoom(addlen int) S {
	if s.Avail() >= addlen {
		return s
	}
	n := s.Len()
	newlen := n + addlen
	if newlen < maxPrealloc {
		newlen *= 2
	} else {
		newlen += maxPrealloc
	}
	t := reqType(newlen)
	if t == type5 {
		t = type8
	}
	h := hdrSize(t)
	grown := make(S, h+newlen)
	grown[0] = t
	copy(grown[h:], s.Bytes())
	switch t {
	case type8:
		grown[1] = byte(n)
		grown[2] = byte(newlen)
	case type16:
		binary.LittleEndian.PutUint16(grown[1:], uint16(n))
		binary.LittleEndian.PutUint16(grown[3:], uint16(newlen))
	case type32:
		binary.LittleEndian.PutUint32(grown[1:], uint32(n))
		binary.LittleEndian.PutUint32(grown[5:], uint32(newlen))
	default:
		binary.LittleEndian.PutUint64(grown[1:], uint64(n))
		binary.LittleEndian.PutUint64(grown[9:], uint64(newlen))
	}
	return grown
}
