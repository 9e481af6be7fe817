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

	"github.com/consensys/go-octagon/pkg/util/math"
)

// Leq determines whether this state is included in another.  This closes the
// receiver first (but not the other state).
func (p *State[V]) Leq(other *State[V]) bool {
	p.Normalize()
	//
	if p.bottom {
		return true
	} else if other.bottom {
		return false
	}
	//
	var shared []V
	//
	for _, v := range other.index.sorted() {
		if _, ok := p.index.lookup(v); ok {
			shared = append(shared, v)
		} else if other.constrains(v) {
			// This knows nothing about v, whilst other does.
			return false
		}
	}
	//
	for _, a := range shared {
		i1, _ := p.index.lookup(a)
		i2, _ := other.index.lookup(a)
		//
		for _, b := range shared {
			j1, _ := p.index.lookup(b)
			j2, _ := other.index.lookup(b)
			//
			for _, s1 := range signs {
				for _, s2 := range signs {
					lhs := p.dbm.At(HalfIndex(i1, s1), HalfIndex(j1, s2))
					rhs := other.dbm.At(HalfIndex(i2, s1), HalfIndex(j2, s2))
					//
					if !lhs.LessEq(rhs) {
						return false
					}
				}
			}
		}
	}
	//
	return true
}

// Equals determines whether two states represent the same set of values.
// Both states are closed as a result.
func (p *State[V]) Equals(other *State[V]) bool {
	return p.Leq(other) && other.Leq(p)
}

// Join computes the least upper bound of two states.  Both states are first
// closed, and only variables tracked by both remain tracked in the result.
// The result is closed.
func (p *State[V]) Join(other *State[V]) *State[V] {
	p.Normalize()
	other.Normalize()
	//
	if p.bottom {
		return other.Clone()
	} else if other.bottom {
		return p.Clone()
	}
	//
	res := p.combine(other, intersection(p, other), func(l, r operand) math.Bound {
		return l.val.Max(r.val)
	})
	// Pointwise maximum preserves closure
	res.normalized = true
	res.dirty.Clear()
	//
	return res
}

// Widen extrapolates this state by another, such that any ascending sequence
// of widenings eventually stabilises.  The receiver is not closed (since this
// would prevent termination), but the other state is.  Any bound of this
// state which is not stable in the other state is dropped.  The result is not
// closed.
func (p *State[V]) Widen(other *State[V]) *State[V] {
	other.Normalize()
	//
	if p.bottom {
		return other.Clone()
	} else if other.bottom {
		return p.Clone()
	}
	//
	return p.combine(other, intersection(p, other), func(l, r operand) math.Bound {
		if r.val.LessEq(l.val) {
			return l.val
		}
		//
		return math.PosInfinity()
	})
}

// Meet computes the greatest lower bound of two states.  Neither state needs
// to be closed, and every variable tracked by either is tracked in the
// result.  The result is not closed.
func (p *State[V]) Meet(other *State[V]) *State[V] {
	if p.bottom || other.bottom {
		return Bottom[V]()
	}
	//
	return p.combine(other, union(p, other), func(l, r operand) math.Bound {
		switch {
		case l.ok && r.ok:
			return l.val.Min(r.val)
		case l.ok:
			return l.val
		default:
			return r.val
		}
	})
}

// Narrow refines this state by another, such that any descending sequence of
// narrowings eventually stabilises.  Only bounds which are unbounded in this
// state are taken from the other.  The result is not closed.
func (p *State[V]) Narrow(other *State[V]) *State[V] {
	if p.bottom || other.bottom {
		return Bottom[V]()
	}
	//
	return p.combine(other, union(p, other), func(l, r operand) math.Bound {
		if r.ok && (!l.ok || l.val.IsInfinite()) {
			return r.val
		}
		//
		return l.val
	})
}

// operand is an entry of an operand matrix during a binary operation.  When ok
// does not hold, the operand does not track one of the variables involved and
// val is unbounded.
type operand struct {
	val math.Bound
	ok  bool
}

// Build a new state over a given (sorted) set of variables, where each entry
// is computed from the corresponding entries of the two operands.  Entries
// which neither operand has remain unbounded.
func (p *State[V]) combine(other *State[V], vars []V, fn func(operand, operand) math.Bound) *State[V] {
	res := Top[V]()
	//
	if len(vars) == 0 {
		return res
	}
	//
	for _, v := range vars {
		res.track(v)
	}
	//
	res.invalidate()
	// Operand slots for each variable (or zero)
	lslots, rslots := p.slotsOf(vars), other.slotsOf(vars)
	//
	for a := range vars {
		for b := range vars {
			// Skip pairs which neither side relates.
			if !(lslots[a] != 0 && lslots[b] != 0) && !(rslots[a] != 0 && rslots[b] != 0) {
				continue
			}
			//
			for _, s1 := range signs {
				for _, s2 := range signs {
					l := p.entry(lslots[a], s1, lslots[b], s2)
					r := other.entry(rslots[a], s1, rslots[b], s2)
					i, j := HalfIndex(uint(a+1), s1), HalfIndex(uint(b+1), s2)
					//
					res.dbm.Set(i, j, fn(l, r))
				}
			}
		}
	}
	//
	return res
}

// Read the entry relating two variable halves, given their slots, where a zero
// slot indicates an untracked variable.
func (p *State[V]) entry(i uint, s1 Sign, j uint, s2 Sign) operand {
	if i == 0 || j == 0 {
		return operand{math.PosInfinity(), false}
	}
	//
	return operand{p.dbm.At(HalfIndex(i, s1), HalfIndex(j, s2)), true}
}

func (p *State[V]) slotsOf(vars []V) []uint {
	slots := make([]uint, len(vars))
	//
	for i, v := range vars {
		slots[i], _ = p.index.lookup(v)
	}
	//
	return slots
}

// Check whether any (non-diagonal) entry of this state involving a given
// variable is bounded.
func (p *State[V]) constrains(v V) bool {
	k, ok := p.index.lookup(v)
	//
	if !ok {
		return false
	}
	//
	for i := uint(1); i <= p.dbm.Dimension(); i++ {
		for _, h := range []uint{neg(k), pos(k)} {
			if i != h && (p.dbm.At(i, h).IsFinite() || p.dbm.At(h, i).IsFinite()) {
				return true
			}
		}
	}
	//
	return false
}

func intersection[V cmp.Ordered](lhs *State[V], rhs *State[V]) []V {
	var vars []V
	//
	for _, v := range lhs.index.sorted() {
		if _, ok := rhs.index.lookup(v); ok {
			vars = append(vars, v)
		}
	}
	//
	return vars
}

func union[V cmp.Ordered](lhs *State[V], rhs *State[V]) []V {
	var (
		l    = lhs.index.sorted()
		r    = rhs.index.sorted()
		vars = make([]V, 0, len(l)+len(r))
	)
	// Merge sorted lists
	for len(l) > 0 || len(r) > 0 {
		switch {
		case len(r) == 0 || (len(l) > 0 && l[0] < r[0]):
			vars, l = append(vars, l[0]), l[1:]
		case len(l) == 0 || r[0] < l[0]:
			vars, r = append(vars, r[0]), r[1:]
		default:
			vars, l, r = append(vars, l[0]), l[1:], r[1:]
		}
	}
	//
	return vars
}

var signs = []Sign{Negative, Positive}
