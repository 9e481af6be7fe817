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
	"strings"

	"github.com/consensys/go-octagon/pkg/domain/interval"
	"github.com/consensys/go-octagon/pkg/linear"
	"github.com/consensys/go-octagon/pkg/util/math"
)

// Get returns the interval of values which a given variable may take, which is
// unbounded for an untracked variable and empty for a bottom state.  This
// closes the state first.
func (p *State[V]) Get(v V) math.Interval {
	if p.Normalize(); p.bottom {
		return math.BottomInterval()
	}
	//
	return p.project(v)
}

// Project a variable onto an interval, assuming the state is closed.
func (p *State[V]) project(v V) math.Interval {
	k, ok := p.index.lookup(v)
	//
	if !ok {
		return math.TopInterval()
	}
	// Entry (neg,pos) bounds -2x, whilst (pos,neg) bounds 2x.
	lb := p.dbm.At(neg(k), pos(k)).Half().Neg()
	ub := p.dbm.At(pos(k), neg(k)).Half()
	//
	return math.NewInterval(lb, ub)
}

// ToIntervals projects every tracked variable of this state onto an interval.
func (p *State[V]) ToIntervals() *interval.Environment[V] {
	if p.Normalize(); p.bottom {
		return interval.Bottom[V]()
	}
	//
	env := interval.Top[V]()
	//
	for _, v := range p.index.sorted() {
		env.Set(v, p.project(v))
	}
	//
	return env
}

// ToLinearConstraintSystem returns a system of constraints equivalent to this
// state.  This consists of the bounds for each variable, followed by the
// bounds on x - y and x + y for each pair of variables x < y.  Unbounded
// constraints are omitted, and bottom is a single contradiction.
func (p *State[V]) ToLinearConstraintSystem() *linear.System[V] {
	var system = linear.NewSystem[V]()
	//
	if p.Normalize(); p.bottom {
		system.Add(linear.Contradiction[V]())
		return system
	}
	//
	vars := p.index.sorted()
	//
	for a, v1 := range vars {
		i, _ := p.index.lookup(v1)
		x := linear.Var(v1)
		//
		within(system, x, p.project(v1))
		//
		for _, v2 := range vars[a+1:] {
			j, _ := p.index.lookup(v2)
			y := linear.Var(v2)
			// x - y
			lb := p.dbm.At(pos(j), pos(i)).Neg()
			ub := p.dbm.At(neg(j), neg(i))
			within(system, x.Sub(y), math.NewInterval(lb, ub))
			// x + y
			lb = p.dbm.At(neg(j), pos(i)).Neg()
			ub = p.dbm.At(pos(j), neg(i))
			within(system, x.Add(y), math.NewInterval(lb, ub))
		}
	}
	//
	return system
}

// Add constraints lb <= e <= ub for a given interval.
func within[V cmp.Ordered](system *linear.System[V], e linear.Expression[V], itv math.Interval) {
	if itv.IsBottom() {
		system.Add(linear.Contradiction[V]())
	} else if c, ok := itv.Singleton(); ok {
		system.Add(linear.Equal(e, linear.ConstantOf[V](c)))
	} else {
		if itv.Lb().IsFinite() {
			system.Add(linear.GreaterEq(e, linear.ConstantOf[V](itv.Lb().Int())))
		}
		//
		if itv.Ub().IsFinite() {
			system.Add(linear.LessEq(e, linear.ConstantOf[V](itv.Ub().Int())))
		}
	}
}

// String returns the constraints of this state, such as "{x >= 0; x <= 1}".
func (p *State[V]) String() string {
	var sb strings.Builder
	//
	if p.Normalize(); p.bottom {
		return "_|_"
	}
	//
	sb.WriteString("{")
	//
	for i, c := range p.ToLinearConstraintSystem().Constraints() {
		if i != 0 {
			sb.WriteString("; ")
		}
		//
		sb.WriteString(c.String())
	}
	//
	sb.WriteString("}")
	//
	return sb.String()
}
