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
	"testing"

	"github.com/stretchr/testify/require"
)

// countingDescriptor tallies every callback invocation.
type countingDescriptor struct {
	StringDescriptor[string]
	dupKey, dupValue, freeKey, freeValue *int
}

func newCountingDescriptor() countingDescriptor {
	return countingDescriptor{
		dupKey:    new(int),
		dupValue:  new(int),
		freeKey:   new(int),
		freeValue: new(int),
	}
}

func (d countingDescriptor) DupKey(key string) string { *d.dupKey++; return key }
func (d countingDescriptor) DupValue(v string) string { *d.dupValue++; return v }
func (d countingDescriptor) FreeKey(key string)       { *d.freeKey++ }
func (d countingDescriptor) FreeValue(v string)       { *d.freeValue++ }

func TestCallbackCounts(t *testing.T) {
	d := newCountingDescriptor()
	m := New[string, string](d)

	const count = 100
	for i := 0; i < count; i++ {
		require.NoError(t, m.Add(string(rune('a'+i%26))+string(rune('0'+i/26)), "v"))
	}
	require.Equal(t, count, *d.dupKey)
	require.Equal(t, count, *d.dupValue)
	require.Equal(t, 0, *d.freeKey)
	require.Equal(t, 0, *d.freeValue)

	// A rejected Add duplicates nothing.
	require.ErrorIs(t, m.Add("a0", "v"), ErrKeyExists)
	require.Equal(t, count, *d.dupKey)
	require.Equal(t, count, *d.dupValue)

	// Growth relinks entries without touching any callbacks.
	dups := *d.dupKey + *d.dupValue
	require.NoError(t, m.Expand(4096))
	require.Equal(t, dups, *d.dupKey+*d.dupValue)
	require.Equal(t, 0, *d.freeKey+*d.freeValue)

	// An update duplicates and frees exactly one value and no keys.
	require.False(t, m.Replace("a0", "w"))
	require.Equal(t, count, *d.dupKey)
	require.Equal(t, count+1, *d.dupValue)
	require.Equal(t, 0, *d.freeKey)
	require.Equal(t, 1, *d.freeValue)

	// Delete frees one key and one value.
	require.NoError(t, m.Delete("a0"))
	require.Equal(t, 1, *d.freeKey)
	require.Equal(t, 2, *d.freeValue)

	// Clear tears down everything that is left.
	m.Clear()
	require.Equal(t, count, *d.freeKey)
	require.Equal(t, count+1, *d.freeValue)
}

// refObj is a value under a reference-counting ownership discipline.
type refObj struct {
	refs int
}

// refcountDescriptor treats values as refcounted objects: DupValue takes a
// reference, FreeValue drops one. It records the callback order so tests can
// assert that Replace takes the new reference before dropping the old one.
type refcountDescriptor struct {
	StringDescriptor[*refObj]
	events *[]string
}

func (d refcountDescriptor) DupValue(v *refObj) *refObj {
	v.refs++
	*d.events = append(*d.events, "dup")
	return v
}

func (d refcountDescriptor) FreeValue(v *refObj) {
	if v.refs <= 0 {
		panic("freeing a dead value")
	}
	v.refs--
	*d.events = append(*d.events, "free")
}

func TestReplaceOrdering(t *testing.T) {
	var events []string
	m := New[string, *refObj](refcountDescriptor{events: &events})

	obj := &refObj{refs: 1} // the caller's reference
	require.NoError(t, m.Add("k", obj))
	require.Equal(t, 2, obj.refs)

	// Replacing a value with itself must take the new reference before
	// releasing the old one, otherwise the object would be momentarily
	// dead. FreeValue panics if that ever happens.
	events = nil
	require.False(t, m.Replace("k", obj))
	require.Equal(t, []string{"dup", "free"}, events)
	require.Equal(t, 2, obj.refs)

	e := m.Find("k")
	require.NotNil(t, e)
	require.Same(t, obj, e.Value())

	require.NoError(t, m.Delete("k"))
	require.Equal(t, 1, obj.refs)
}
