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

// Single-threaded comparison benchmarks against other container libraries.
// The concurrent maps (haxmap, cornelk/hashmap) pay for their atomics here
// and the ordered containers (btree, llrb) pay for their log-n lookups; the
// point of the comparison is to keep those costs visible, not to declare a
// winner across workloads.

import (
	"testing"

	"github.com/alphadose/haxmap"
	"github.com/cornelk/hashmap"
	"github.com/google/btree"
	"github.com/petar/GoLLRB/llrb"
)

const benchmarkItemCount = 1024

type uintptrDescriptor struct {
	Base[uintptr, uintptr]
}

func (uintptrDescriptor) Hash(key uintptr) uint64 { return mix64(uint64(key)) }
func (uintptrDescriptor) Equal(a, b uintptr) bool { return a == b }

func setupDict(b *testing.B) *Map[uintptr, uintptr] {
	b.Helper()
	m := New[uintptr, uintptr](uintptrDescriptor{}, WithCapacity[uintptr, uintptr](benchmarkItemCount))
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		_ = m.Add(i, i)
	}
	return m
}

func setupHaxMap(b *testing.B) *haxmap.Map[uintptr, uintptr] {
	b.Helper()
	m := haxmap.New[uintptr, uintptr]()
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		m.Set(i, i)
	}
	return m
}

func setupHashMap(b *testing.B) *hashmap.Map[uintptr, uintptr] {
	b.Helper()
	m := hashmap.New[uintptr, uintptr]()
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		m.Set(i, i)
	}
	return m
}

func setupBTree(b *testing.B) *btree.BTreeG[uintptr] {
	b.Helper()
	tr := btree.NewG[uintptr](32, func(a, b uintptr) bool { return a < b })
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		tr.ReplaceOrInsert(i)
	}
	return tr
}

func setupLLRB(b *testing.B) *llrb.LLRB {
	b.Helper()
	tr := llrb.New()
	for i := 0; i < benchmarkItemCount; i++ {
		tr.ReplaceOrInsert(llrb.Int(i))
	}
	return tr
}

func BenchmarkCompareRead(b *testing.B) {
	b.Run("impl=dict", func(b *testing.B) {
		m := setupDict(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for j := uintptr(0); j < benchmarkItemCount; j++ {
				if v, _ := m.Get(j); v != j {
					b.Fail()
				}
			}
		}
	})
	b.Run("impl=haxmap", func(b *testing.B) {
		m := setupHaxMap(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for j := uintptr(0); j < benchmarkItemCount; j++ {
				if v, _ := m.Get(j); v != j {
					b.Fail()
				}
			}
		}
	})
	b.Run("impl=hashmap", func(b *testing.B) {
		m := setupHashMap(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for j := uintptr(0); j < benchmarkItemCount; j++ {
				if v, _ := m.Get(j); v != j {
					b.Fail()
				}
			}
		}
	})
	b.Run("impl=btree", func(b *testing.B) {
		tr := setupBTree(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for j := uintptr(0); j < benchmarkItemCount; j++ {
				if v, ok := tr.Get(j); !ok || v != j {
					b.Fail()
				}
			}
		}
	})
	b.Run("impl=llrb", func(b *testing.B) {
		tr := setupLLRB(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for j := 0; j < benchmarkItemCount; j++ {
				if tr.Get(llrb.Int(j)) == nil {
					b.Fail()
				}
			}
		}
	})
}

func BenchmarkCompareWrite(b *testing.B) {
	b.Run("impl=dict", func(b *testing.B) {
		m := setupDict(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for j := uintptr(0); j < benchmarkItemCount; j++ {
				m.Replace(j, j+1)
			}
		}
	})
	b.Run("impl=haxmap", func(b *testing.B) {
		m := setupHaxMap(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for j := uintptr(0); j < benchmarkItemCount; j++ {
				m.Set(j, j+1)
			}
		}
	})
	b.Run("impl=hashmap", func(b *testing.B) {
		m := setupHashMap(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for j := uintptr(0); j < benchmarkItemCount; j++ {
				m.Set(j, j+1)
			}
		}
	})
	b.Run("impl=btree", func(b *testing.B) {
		tr := setupBTree(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for j := uintptr(0); j < benchmarkItemCount; j++ {
				tr.ReplaceOrInsert(j)
			}
		}
	})
	b.Run("impl=llrb", func(b *testing.B) {
		tr := setupLLRB(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for j := 0; j < benchmarkItemCount; j++ {
				tr.ReplaceOrInsert(llrb.Int(j))
			}
		}
	})
}
