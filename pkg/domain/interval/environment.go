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
package interval

import (
	"cmp"
	"fmt"
	"maps"
	"math/big"
	"slices"
	"strings"

	"github.com/consensys/go-octagon/pkg/linear"
	"github.com/consensys/go-octagon/pkg/util/math"
)

// MaxRefinementCycles determines how many times the constraints of a system
// are propagated before giving up on reaching a fixed point.
const MaxRefinementCycles = 10

// Environment maps variables to the (integer) intervals they may take.  An
// environment is either bottom, or it maps every variable to a non-empty
// interval.  Variables not explicitly held are unconstrained (i.e. top).
type Environment[V cmp.Ordered] struct {
	intervals map[V]math.Interval
	bottom    bool
}

// Top constructs an environment where every variable is unconstrained.
func Top[V cmp.Ordered]() *Environment[V] {
	return &Environment[V]{make(map[V]math.Interval), false}
}

// Bottom constructs the empty (i.e. unreachable) environment.
func Bottom[V cmp.Ordered]() *Environment[V] {
	return &Environment[V]{make(map[V]math.Interval), true}
}

// IsBottom determines whether this environment is empty.
func (p *Environment[V]) IsBottom() bool {
	return p.bottom
}

// IsTop determines whether this environment constrains no variable.
func (p *Environment[V]) IsTop() bool {
	return !p.bottom && len(p.intervals) == 0
}

// Clone returns a copy of this environment.
func (p *Environment[V]) Clone() *Environment[V] {
	return &Environment[V]{maps.Clone(p.intervals), p.bottom}
}

// SetToBottom makes this environment empty.
func (p *Environment[V]) SetToBottom() {
	p.intervals = make(map[V]math.Interval)
	p.bottom = true
}

// Set the interval of a given variable.  Setting a bottom interval makes the
// whole environment bottom.
func (p *Environment[V]) Set(v V, itv math.Interval) {
	switch {
	case p.bottom:
		return
	case itv.IsBottom():
		p.SetToBottom()
	case itv.IsTop():
		delete(p.intervals, v)
	default:
		p.intervals[v] = itv
	}
}

// Get the interval of a given variable.
func (p *Environment[V]) Get(v V) math.Interval {
	if p.bottom {
		return math.BottomInterval()
	} else if itv, ok := p.intervals[v]; ok {
		return itv
	}
	//
	return math.TopInterval()
}

// Forget everything known about a given variable.
func (p *Environment[V]) Forget(v V) {
	delete(p.intervals, v)
}

// Variables returns the constrained variables of this environment in order.
func (p *Environment[V]) Variables() []V {
	return slices.Sorted(maps.Keys(p.intervals))
}

// Leq determines whether this environment is included in another.
func (p *Environment[V]) Leq(other *Environment[V]) bool {
	if p.bottom {
		return true
	} else if other.bottom {
		return false
	}
	//
	for v, itv := range other.intervals {
		if !p.Get(v).Leq(itv) {
			return false
		}
	}
	//
	return true
}

// Join computes the pointwise union of two environments.
func (p *Environment[V]) Join(other *Environment[V]) *Environment[V] {
	if p.bottom {
		return other.Clone()
	} else if other.bottom {
		return p.Clone()
	}
	//
	res := Top[V]()
	// Only variables constrained on both sides remain constrained.
	for v, itv := range p.intervals {
		if oitv, ok := other.intervals[v]; ok {
			res.Set(v, itv.Join(oitv))
		}
	}
	//
	return res
}

// Meet computes the pointwise intersection of two environments.
func (p *Environment[V]) Meet(other *Environment[V]) *Environment[V] {
	if p.bottom || other.bottom {
		return Bottom[V]()
	}
	//
	res := p.Clone()
	//
	for v, itv := range other.intervals {
		res.Set(v, res.Get(v).Meet(itv))
	}
	//
	return res
}

// AddConstraint refines this environment with a given linear constraint.
func (p *Environment[V]) AddConstraint(c linear.Constraint[V]) {
	p.AddSystem(linear.NewSystem(c))
}

// AddSystem refines this environment with every constraint of a given system.
// Constraints are propagated repeatedly until either nothing changes, or
// MaxRefinementCycles is reached.
func (p *Environment[V]) AddSystem(system *linear.System[V]) {
	var constraints []linear.Constraint[V]
	//
	if p.bottom {
		return
	}
	//
	for _, c := range system.Constraints() {
		if c.IsContradiction() {
			p.SetToBottom()
			return
		} else if !c.IsTautology() {
			constraints = append(constraints, c)
		}
	}
	//
	for cycle := 0; cycle < MaxRefinementCycles; cycle++ {
		changed := false
		//
		for _, c := range constraints {
			refined, ok := p.propagate(c)
			//
			if !ok {
				p.SetToBottom()
				return
			}
			//
			changed = changed || refined
		}
		//
		if !changed {
			return
		}
	}
}

// Propagate a single constraint through each of its variables in turn,
// returning whether anything was refined and false if the environment was
// found to be empty.
func (p *Environment[V]) propagate(c linear.Constraint[V]) (refined bool, ok bool) {
	expr := c.Expression()
	//
	for _, pivot := range expr.Terms() {
		var (
			old = p.Get(pivot.Variable)
			// Bounds on pivot.Coefficient * pivot.Variable
			rhs = p.residual(expr, pivot.Variable)
			nw  = old
		)
		//
		switch c.Kind() {
		case linear.Equality:
			nw = old.Meet(divide(rhs, pivot.Coefficient))
		case linear.Inequality:
			nw = old.Meet(divide(rhs.LowerHalfLine(), pivot.Coefficient))
		case linear.Disequality:
			if val, single := rhs.Singleton(); single {
				var q, r big.Int
				// Only an exact quotient can be excluded.
				if q.QuoRem(val, pivot.Coefficient, &r); r.Sign() == 0 {
					nw = old.Trim(&q)
				}
			}
		}
		//
		if nw.IsBottom() {
			return refined, false
		} else if !nw.Equals(old) {
			p.Set(pivot.Variable, nw)
			refined = true
		}
	}
	//
	return refined, true
}

// Compute the interval of -(e - a*pivot), i.e. the values which a*pivot must
// take for e to be zero.
func (p *Environment[V]) residual(e linear.Expression[V], pivot V) math.Interval {
	res := math.SingletonOf(e.Constant()).Neg()
	//
	for _, t := range e.Terms() {
		if t.Variable != pivot {
			res = res.Sub(math.SingletonOf(t.Coefficient).Mul(p.Get(t.Variable)))
		}
	}
	//
	return res
}

// Determine the integers x where a*x is within a given interval.
func divide(itv math.Interval, a *big.Int) math.Interval {
	if itv.IsBottom() {
		return itv
	} else if a.Sign() > 0 {
		return math.NewInterval(itv.Lb().CeilDiv(a), itv.Ub().FloorDiv(a))
	}
	//
	return math.NewInterval(itv.Ub().CeilDiv(a), itv.Lb().FloorDiv(a))
}

func (p *Environment[V]) String() string {
	var sb strings.Builder
	//
	if p.bottom {
		return "_|_"
	}
	//
	sb.WriteString("{")
	//
	for i, v := range p.Variables() {
		if i != 0 {
			sb.WriteString("; ")
		}
		//
		fmt.Fprintf(&sb, "%v -> %s", v, p.intervals[v].String())
	}
	//
	sb.WriteString("}")
	//
	return sb.String()
}
