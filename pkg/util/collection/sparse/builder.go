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
	"slices"

	"github.com/consensys/go-crab/pkg/util/collection/set"
)

// Builder provides a mutable view of a sparse map.  A builder starts out
// sharing the storage of the map it was obtained from, and takes a private copy
// of that storage on the first write.  Thereafter, writes are performed in
// place until the builder is frozen.
type Builder[K set.Comparable[K], V any] struct {
	entries []Entry[K, V]
	// Indicates whether entries is exclusively owned by this builder (and,
	// hence, can be mutated in place).
	owned bool
}

// NewBuilder constructs a builder for an initially empty map.
func NewBuilder[K set.Comparable[K], V any]() *Builder[K, V] {
	return &Builder[K, V]{nil, true}
}

// Len returns the number of entries currently held.
func (p *Builder[K, V]) Len() uint {
	return uint(len(p.entries))
}

// Get returns the value currently associated with a given key.
func (p *Builder[K, V]) Get(key K) (V, bool) {
	var empty V
	//
	if i, ok := find(p.entries, key); ok {
		return p.entries[i].Value, true
	}
	//
	return empty, false
}

// Set associates a given key with a given value.
func (p *Builder[K, V]) Set(key K, value V) {
	p.own()
	//
	if i, ok := find(p.entries, key); ok {
		p.entries[i].Value = value
	} else {
		p.entries = slices.Insert(p.entries, i, Entry[K, V]{key, value})
	}
}

// Delete removes a given key (if present).
func (p *Builder[K, V]) Delete(key K) {
	if i, ok := find(p.entries, key); ok {
		p.own()
		p.entries = slices.Delete(p.entries, i, i+1)
	}
}

// Update modifies the value associated with a given key by applying a function
// to the current value (if any).  When the function returns false, the key is
// removed.
func (p *Builder[K, V]) Update(key K, fn func(V, bool) (V, bool)) {
	var (
		i, present = find(p.entries, key)
		old        V
	)
	//
	if present {
		old = p.entries[i].Value
	}
	//
	nval, keep := fn(old, present)
	//
	switch {
	case keep && present:
		p.own()
		p.entries[i].Value = nval
	case keep:
		p.own()
		p.entries = slices.Insert(p.entries, i, Entry[K, V]{key, nval})
	case present:
		p.own()
		p.entries = slices.Delete(p.entries, i, i+1)
	}
}

// Freeze returns the map constructed so far.  The builder relinquishes
// ownership of its storage, such that any subsequent write will first take a
// private copy.  This ensures maps returned from Freeze are never modified.
func (p *Builder[K, V]) Freeze() Map[K, V] {
	p.owned = false
	//
	return Map[K, V]{p.entries}
}

// Ensure this builder has exclusive ownership of its storage.
func (p *Builder[K, V]) own() {
	if !p.owned {
		p.entries = slices.Clone(p.entries)
		p.owned = true
	}
}
