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
package octagon

import (
	"cmp"
	"maps"
	"slices"
)

// indexMap assigns each tracked variable a unique slot in 1..n.  Slots are
// kept dense, so removing a variable moves every later slot down by one.
type indexMap[V cmp.Ordered] struct {
	slots map[V]uint
	// vars[k-1] holds the variable with slot k
	vars []V
}

func newIndexMap[V cmp.Ordered]() indexMap[V] {
	return indexMap[V]{make(map[V]uint), nil}
}

func (p *indexMap[V]) size() uint {
	return uint(len(p.vars))
}

func (p *indexMap[V]) lookup(v V) (uint, bool) {
	k, ok := p.slots[v]
	return k, ok
}

// variable returns the variable occupying a given slot.
func (p *indexMap[V]) variable(k uint) V {
	return p.vars[k-1]
}

// insert a variable (if not already present), returning its slot and whether
// it was newly added.
func (p *indexMap[V]) insert(v V) (uint, bool) {
	if k, ok := p.slots[v]; ok {
		return k, false
	}
	//
	p.vars = append(p.vars, v)
	k := uint(len(p.vars))
	p.slots[v] = k
	//
	return k, true
}

// remove a variable, returning the slot it occupied.
func (p *indexMap[V]) remove(v V) uint {
	k, ok := p.slots[v]
	//
	if !ok {
		contractViolation("variable %v is not tracked", v)
	}
	//
	delete(p.slots, v)
	p.vars = slices.Delete(p.vars, int(k-1), int(k))
	// Compact later slots
	for i := k - 1; i < uint(len(p.vars)); i++ {
		p.slots[p.vars[i]] = i + 1
	}
	//
	return k
}

// sorted returns the tracked variables in ascending order.
func (p *indexMap[V]) sorted() []V {
	return slices.Sorted(maps.Keys(p.slots))
}

func (p *indexMap[V]) clone() indexMap[V] {
	return indexMap[V]{maps.Clone(p.slots), slices.Clone(p.vars)}
}
