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
	"fmt"
	"math/big"

	"github.com/consensys/go-octagon/pkg/domain/interval"
	"github.com/consensys/go-octagon/pkg/linear"
	"github.com/consensys/go-octagon/pkg/util/math"
)

// Operation identifies an arithmetic operation x = y op z.
type Operation uint8

const (
	// Add computes x = y + z
	Add Operation = iota
	// Sub computes x = y - z
	Sub
	// Mul computes x = y * z
	Mul
	// Div computes x = y / z (rounding towards zero)
	Div
)

func (op Operation) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	}
	//
	panic(fmt.Sprintf("unknown operation (%d)", op))
}

// Set the value of a given variable to be within a given interval, discarding
// everything else known about it.  Setting a variable to an empty interval
// makes this state bottom.
func (p *State[V]) Set(x V, itv math.Interval) {
	if p.bottom {
		return
	} else if itv.IsBottom() {
		p.SetToBottom()
		return
	}
	//
	k := p.track(x)
	//
	if p.abstract(x); p.bottom {
		return
	}
	//
	p.tightenUnary(k, Positive, itv.Ub())
	//
	if !p.bottom {
		p.tightenUnary(k, Negative, itv.Lb().Neg())
	}
	//
	p.invalidate()
}

// Assign the value of an expression to a given variable, which must either be
// a constant or a single variable.  Anything else is a contract violation.
func (p *State[V]) Assign(x V, e linear.Expression[V]) {
	y, isVar := e.AsVariable()
	//
	switch {
	case !isVar && !e.IsConstant():
		contractViolation("unsupported assignment %v = %s", x, e.String())
	case p.bottom:
		return
	case isVar && y == x:
		return
	}
	//
	i := p.track(x)
	//
	if p.abstract(x); p.bottom {
		return
	}
	//
	if !isVar {
		c := math.BoundOf(e.Constant())
		p.tightenUnary(i, Positive, c)
		p.tightenUnary(i, Negative, c.Neg())
	} else if j, ok := p.index.lookup(y); ok {
		// x - y <= 0 && y - x <= 0
		p.tightenBinary(i, Positive, j, Negative, zero)
		p.tightenBinary(i, Negative, j, Positive, zero)
	} else {
		// Nothing known about y, and hence x.
		return
	}
	//
	p.invalidate()
}

// Apply an arithmetic operation x = y op z over variables.  An untracked
// operand z leaves x unconstrained.
func (p *State[V]) Apply(op Operation, x V, y V, z V) {
	if p.bottom {
		return
	} else if _, ok := p.index.lookup(z); !ok {
		p.abstract(x)
		return
	}
	// Project z before x is disturbed, since z may be x.
	p.ApplyInterval(op, x, y, p.Get(z))
}

// ApplyConst applies an arithmetic operation x = y op k for a constant k.
func (p *State[V]) ApplyConst(op Operation, x V, y V, k *big.Int) {
	p.ApplyInterval(op, x, y, math.SingletonOf(k))
}

// ApplyInterval applies an arithmetic operation x = y op i, where i is some
// value within a given interval.  Addition and subtraction are exact.
// Multiplication and division cannot be represented by octagons, and are
// instead computed over the interval of y.  Division by an interval which
// is exactly zero makes this state bottom, whilst division by any other
// interval containing zero leaves x unconstrained.
func (p *State[V]) ApplyInterval(op Operation, x V, y V, itv math.Interval) {
	if p.bottom {
		return
	} else if itv.IsBottom() {
		p.SetToBottom()
		return
	} else if x != y {
		p.Assign(x, linear.Var(y))
	}
	//
	k := p.track(x)
	//
	if p.Normalize(); p.bottom {
		return
	}
	//
	switch op {
	case Add:
		p.shift(k, itv.Lb(), itv.Ub())
	case Sub:
		p.shift(k, itv.Ub().Neg(), itv.Lb().Neg())
	case Mul:
		// Projection must precede abstraction of x.
		p.Set(x, p.Get(x).Mul(itv))
	case Div:
		divisor := itv.Trim(big.NewInt(0))
		//
		switch {
		case divisor.IsBottom():
			// Definite division by zero
			p.SetToBottom()
		case divisor.ContainsZero():
			p.abstract(x)
		default:
			p.Set(x, p.Get(x).Div(divisor))
		}
	default:
		panic(fmt.Sprintf("unknown operation (%d)", op))
	}
	//
	if !p.bottom {
		p.dirty.Insert(k)
		p.invalidate()
	}
}

// Shift the kth variable x by some value in lb..ub, as in x = x + [lb,ub].
func (p *State[V]) shift(k uint, lb math.Bound, ub math.Bound) {
	if lb.IsNegInfinity() && ub.IsPosInfinity() {
		p.abstract(p.index.variable(k))
		return
	}
	//
	m := p.dbm
	//
	for i := uint(1); i <= m.Dimension(); i++ {
		if i == pos(k) || i == neg(k) {
			continue
		}
		// Rows
		m.Set(neg(k), i, m.At(neg(k), i).Sub(lb))
		m.Set(pos(k), i, m.At(pos(k), i).Add(ub))
		// Columns
		m.Set(i, pos(k), m.At(i, pos(k)).Sub(lb))
		m.Set(i, neg(k), m.At(i, neg(k)).Add(ub))
	}
	//
	m.Set(neg(k), pos(k), m.At(neg(k), pos(k)).Sub(lb.Add(lb)))
	m.Set(pos(k), neg(k), m.At(pos(k), neg(k)).Add(ub.Add(ub)))
}

// AddConstraint refines this state with a given linear constraint, which must
// have at most two variables whose coefficients are each either 1 or -1.
// Anything else is a contract violation.  Equalities are applied as a pair of
// inequalities.  Disequalities cannot be represented by octagons, and instead
// are checked against the intervals of their variables: if unsatisfiable this
// state becomes bottom, otherwise they are ignored.  The result is not closed.
func (p *State[V]) AddConstraint(c linear.Constraint[V]) {
	if !c.IsOctagonal() {
		contractViolation("constraint %s is not octagonal", c.String())
	} else if p.bottom {
		return
	} else if c.IsContradiction() {
		p.SetToBottom()
		return
	} else if c.IsTautology() {
		return
	}
	//
	var (
		terms = c.Expression().Terms()
		bound = math.BoundOf(c.Bound())
		// Slots and signs of variables
		slots = make([]uint, len(terms))
		sgns  = make([]Sign, len(terms))
	)
	//
	for i, t := range terms {
		slots[i] = p.track(t.Variable)
		sgns[i] = Sign(t.Coefficient.Sign() > 0)
	}
	//
	switch c.Kind() {
	case linear.Inequality:
		p.tighten(slots, sgns, bound)
	case linear.Equality:
		p.tighten(slots, sgns, bound)
		//
		if !p.bottom {
			p.tighten(slots, flip(sgns), bound.Neg())
		}
	case linear.Disequality:
		if !p.satisfiable(c) {
			p.SetToBottom()
			return
		}
	}
	//
	p.invalidate()
}

// AddSystem refines this state with every constraint in a given system.
func (p *State[V]) AddSystem(system *linear.System[V]) {
	for _, c := range system.Constraints() {
		p.AddConstraint(c)
	}
}

// Apply an octagonal inequality over one or two variables.
func (p *State[V]) tighten(slots []uint, sgns []Sign, bound math.Bound) {
	if len(slots) == 1 {
		p.tightenUnary(slots[0], sgns[0], bound)
	} else {
		p.tightenBinary(slots[0], sgns[0], slots[1], sgns[1], bound)
	}
}

func flip(sgns []Sign) []Sign {
	flipped := make([]Sign, len(sgns))
	//
	for i, s := range sgns {
		flipped[i] = !s
	}
	//
	return flipped
}

// Check whether a constraint is satisfiable within the intervals of its
// variables.
func (p *State[V]) satisfiable(c linear.Constraint[V]) bool {
	env := interval.Top[V]()
	//
	if p.Normalize(); p.bottom {
		return false
	}
	//
	for _, v := range c.Variables() {
		env.Set(v, p.project(v))
	}
	//
	env.AddConstraint(c)
	//
	return !env.IsBottom()
}

// Forget everything known about a given variable, and stop tracking it.  The
// result is not closed.
func (p *State[V]) Forget(v V) {
	if _, ok := p.index.lookup(v); !ok || p.bottom {
		return
	} else if p.abstract(v); p.bottom {
		return
	}
	//
	k := p.index.remove(v)
	p.dbm.Remove(k)
	p.dirty.Delete(k)
	p.invalidate()
}

// ForgetAll forgets every one of a given set of variables.
func (p *State[V]) ForgetAll(vars ...V) {
	for _, v := range vars {
		p.Forget(v)
	}
}

// Remove all information about a given variable, without untracking it.
// Since the algorithm first closes this state, the information is not lost
// for other variables.  This preserves closure.
func (p *State[V]) abstract(v V) {
	k, ok := p.index.lookup(v)
	//
	if !ok {
		return
	} else if p.Normalize(); p.bottom {
		return
	}
	//
	for i := uint(1); i <= p.dbm.Dimension(); i++ {
		for _, h := range []uint{neg(k), pos(k)} {
			p.dbm.Set(i, h, math.PosInfinity())
			p.dbm.Set(h, i, math.PosInfinity())
		}
	}
	//
	p.dbm.Set(neg(k), neg(k), zero)
	p.dbm.Set(pos(k), pos(k), zero)
}
