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

	"github.com/consensys/go-octagon/pkg/util/collection/bit"
	"github.com/consensys/go-octagon/pkg/util/math"
)

// State is an element of the octagon abstract domain, which tracks
// constraints of the form ±x <= c and ±x ±y <= c between integer variables.
// A state is either bottom (i.e. unreachable) or holds a difference-bound
// matrix over its tracked variables.  Untracked variables are unconstrained.
//
// States are mutable values which are never shared.  Use Clone to obtain an
// independent copy.  Reading relational information (e.g. projecting a
// variable, or comparing states) first brings the matrix into closed form,
// which may discover that the state is bottom.
type State[V cmp.Ordered] struct {
	bottom bool
	dbm    *Matrix
	index  indexMap[V]
	// Indicates the matrix is closed.
	normalized bool
	// Slots of variables which the closure has yet to pivot on.  Closure
	// marks every slot on entry, so this only matters within a single pass.
	dirty bit.Set
}

// Top constructs a state which tracks no variables, and hence constrains
// nothing.
func Top[V cmp.Ordered]() *State[V] {
	return &State[V]{false, NewMatrix(0), newIndexMap[V](), true, bit.Set{}}
}

// Bottom constructs the empty state.
func Bottom[V cmp.Ordered]() *State[V] {
	return &State[V]{true, NewMatrix(0), newIndexMap[V](), true, bit.Set{}}
}

// Clone returns a deep copy of this state.
func (p *State[V]) Clone() *State[V] {
	return &State[V]{p.bottom, p.dbm.Clone(), p.index.clone(), p.normalized, p.dirty.Clone()}
}

// IsBottom determines whether this state is empty.  Observe that a state
// which is not closed may be empty without this yet being known.
func (p *State[V]) IsBottom() bool {
	return p.bottom
}

// IsTop determines whether this state tracks no variables.
func (p *State[V]) IsTop() bool {
	return !p.bottom && p.index.size() == 0
}

// IsNormalized determines whether this state is known to be closed.
func (p *State[V]) IsNormalized() bool {
	return p.normalized
}

// SetToBottom makes this state empty, discarding all tracked variables.
func (p *State[V]) SetToBottom() {
	*p = *Bottom[V]()
}

// Size returns the number of variables tracked by this state.
func (p *State[V]) Size() uint {
	return p.index.size()
}

// Variables returns the variables tracked by this state, in order.
func (p *State[V]) Variables() []V {
	return p.index.sorted()
}

// Matrix returns the underlying matrix of this state, along with the tracked
// variables by slot (i.e. where the kth variable occupies indices 2k-1 and
// 2k).  The matrix must not be modified.
func (p *State[V]) Matrix() (*Matrix, []V) {
	vars := make([]V, p.index.size())
	//
	for k := uint(1); k <= p.index.size(); k++ {
		vars[k-1] = p.index.variable(k)
	}
	//
	return p.dbm, vars
}

// Track a variable, returning its slot.  New variables are unconstrained.
func (p *State[V]) track(v V) uint {
	k, added := p.index.insert(v)
	//
	if added {
		p.dbm.Resize(p.index.size())
		p.dirty.Insert(k)
	}
	//
	return k
}

// Record that the matrix may no longer be closed.
func (p *State[V]) invalidate() {
	p.normalized = false
}

// Tighten the bound on ±x for the kth variable, i.e. x <= c (positive) or -x
// <= c (negative).  This becomes bottom if the bounds on x cross.
func (p *State[V]) tightenUnary(k uint, sign Sign, c math.Bound) {
	c = c.Add(c)
	//
	if sign == Positive {
		p.dbm.Tighten(pos(k), neg(k), c)
	} else {
		p.dbm.Tighten(neg(k), pos(k), c)
	}
	//
	if p.dbm.At(pos(k), neg(k)).Less(p.dbm.At(neg(k), pos(k)).Neg()) {
		p.SetToBottom()
	}
}

// Tighten the bound on ±x ±y for the variables with slots i and j, where x
// has sign s1 and y has sign s2 (e.g. x - y <= c for Positive, Negative).
// This becomes bottom if the bounds on x+y or x-y cross.
func (p *State[V]) tightenBinary(i uint, s1 Sign, j uint, s2 Sign, c math.Bound) {
	// Each constraint is stored twice, as h_a - h_b and as its mirror image
	// h_comp(b) - h_comp(a).
	p.dbm.Tighten(HalfIndex(i, s1), HalfIndex(j, !s2), c)
	p.dbm.Tighten(HalfIndex(j, s2), HalfIndex(i, !s1), c)
	//
	if p.dbm.At(pos(j), neg(i)).Less(p.dbm.At(neg(j), pos(i)).Neg()) ||
		p.dbm.At(neg(j), neg(i)).Less(p.dbm.At(neg(i), neg(j)).Neg()) {
		p.SetToBottom()
	}
}
