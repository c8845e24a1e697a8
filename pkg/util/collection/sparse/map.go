// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package sparse

import (
	"iter"
	"sort"

	"github.com/consensys/go-crab/pkg/util/collection/set"
)

// Entry is a single key-value pair held in a sparse map.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// Map is an ordered mapping from keys to values, where entries are held in a
// sorted array.  Maps are persistent: a Map value is never modified once
// constructed, and every update produces a new Map.  Unmodified storage is
// freely shared between maps, which makes copying a Map a constant-time
// operation.  The zero value is the empty map.
type Map[K set.Comparable[K], V any] struct {
	entries []Entry[K, V]
}

// Len returns the number of entries in this map.
func (p Map[K, V]) Len() uint {
	return uint(len(p.entries))
}

// IsEmpty checks whether this map has no entries.
func (p Map[K, V]) IsEmpty() bool {
	return len(p.entries) == 0
}

// Get returns the value associated with a given key, along with an indication
// of whether or not the key was present.
func (p Map[K, V]) Get(key K) (V, bool) {
	var empty V
	//
	if i, ok := p.find(key); ok {
		return p.entries[i].Value, true
	}
	//
	return empty, false
}

// Has checks whether a given key is present in this map.
func (p Map[K, V]) Has(key K) bool {
	_, ok := p.find(key)
	return ok
}

// Nth returns the nth entry of this map (in key order).
func (p Map[K, V]) Nth(n uint) Entry[K, V] {
	return p.entries[n]
}

// All returns an iterator over the entries of this map in key order.
func (p Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range p.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Keys returns the keys of this map as a sorted set.
func (p Map[K, V]) Keys() *set.AnySortedSet[K] {
	var keys = make(set.AnySortedSet[K], len(p.entries))
	//
	for i, e := range p.entries {
		keys[i] = e.Key
	}
	//
	return &keys
}

// Shares determines whether two maps are backed by the same storage.  This is
// provided for diagnostic purposes only, since sharing is never observable
// through the values held in a map.
func (p Map[K, V]) Shares(o Map[K, V]) bool {
	if len(p.entries) == 0 || len(o.entries) == 0 {
		return len(p.entries) == len(o.entries)
	}
	//
	return &p.entries[0] == &o.entries[0]
}

// Set returns a map identical to this, except that key is associated with the
// given value.
func (p Map[K, V]) Set(key K, value V) Map[K, V] {
	builder := p.Edit()
	builder.Set(key, value)
	//
	return builder.Freeze()
}

// Delete returns a map identical to this, except that key is not present.
func (p Map[K, V]) Delete(key K) Map[K, V] {
	if !p.Has(key) {
		return p
	}
	//
	builder := p.Edit()
	builder.Delete(key)
	//
	return builder.Freeze()
}

// MapValues returns a new map whose values are obtained by applying a given
// function to the values of this map.  Entries for which the function returns
// false are dropped.
func (p Map[K, V]) MapValues(fn func(K, V) (V, bool)) Map[K, V] {
	var entries = make([]Entry[K, V], 0, len(p.entries))
	//
	for _, e := range p.entries {
		if v, ok := fn(e.Key, e.Value); ok {
			entries = append(entries, Entry[K, V]{e.Key, v})
		}
	}
	//
	return Map[K, V]{entries}
}

// Merge combines this map with another in a single ordered pass over both.
// For keys present in both maps, the combining function is applied to both
// values.  For keys present in only one map, the left (resp. right) function
// is applied to its value.  In all cases, the entry is dropped when the
// function returns false.  If the other map is empty, this map is returned
// unchanged (i.e. sharing its storage).
func (p Map[K, V]) Merge(o Map[K, V], left func(V) (V, bool), right func(V) (V, bool),
	both func(V, V) (V, bool)) Map[K, V] {
	//
	if len(o.entries) == 0 {
		return p
	}
	//
	var (
		entries = make([]Entry[K, V], 0, len(p.entries)+len(o.entries))
		i, j    int
	)
	//
	emit := func(k K, v V, ok bool) {
		if ok {
			entries = append(entries, Entry[K, V]{k, v})
		}
	}
	//
	for i < len(p.entries) && j < len(o.entries) {
		l, r := p.entries[i], o.entries[j]
		//
		switch c := l.Key.Cmp(r.Key); {
		case c < 0:
			v, ok := left(l.Value)
			emit(l.Key, v, ok)
			i++
		case c > 0:
			v, ok := right(r.Value)
			emit(r.Key, v, ok)
			j++
		default:
			v, ok := both(l.Value, r.Value)
			emit(l.Key, v, ok)
			i++
			j++
		}
	}
	// Handle anything left
	for ; i < len(p.entries); i++ {
		v, ok := left(p.entries[i].Value)
		emit(p.entries[i].Key, v, ok)
	}
	//
	for ; j < len(o.entries); j++ {
		v, ok := right(o.entries[j].Value)
		emit(o.entries[j].Key, v, ok)
	}
	//
	return Map[K, V]{entries}
}

// Edit returns a builder for constructing an updated version of this map.  The
// builder shares this map's storage until the first write.
func (p Map[K, V]) Edit() *Builder[K, V] {
	return &Builder[K, V]{p.entries, false}
}

func (p Map[K, V]) find(key K) (int, bool) {
	return find(p.entries, key)
}

func find[K set.Comparable[K], V any](entries []Entry[K, V], key K) (int, bool) {
	// Find index where element either does occur, or should occur.
	i := sort.Search(len(entries), func(i int) bool {
		return key.Cmp(entries[i].Key) <= 0
	})
	//
	return i, i < len(entries) && entries[i].Key.Cmp(key) == 0
}
