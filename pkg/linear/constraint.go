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
package linear

import (
	"cmp"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/go-octagon/pkg/util/source/sexp"
)

// Kind identifies the relation used by a constraint.
type Kind uint8

const (
	// Inequality represents a constraint of the form e <= 0.
	Inequality Kind = iota
	// Equality represents a constraint of the form e == 0.
	Equality
	// Disequality represents a constraint of the form e != 0.
	Disequality
)

func (k Kind) String() string {
	switch k {
	case Inequality:
		return "<="
	case Equality:
		return "=="
	case Disequality:
		return "!="
	}
	//
	panic(fmt.Sprintf("unknown constraint kind (%d)", k))
}

// Constraint represents a linear constraint over integer variables which
// relates an expression e with zero, as in e <= 0, e == 0 or e != 0.
type Constraint[V cmp.Ordered] struct {
	kind Kind
	expr Expression[V]
}

// NewConstraint constructs a constraint that a given expression is related to
// zero by a given kind.
func NewConstraint[V cmp.Ordered](kind Kind, expr Expression[V]) Constraint[V] {
	return Constraint[V]{kind, expr}
}

// LessEq constructs the constraint lhs <= rhs.
func LessEq[V cmp.Ordered](lhs, rhs Expression[V]) Constraint[V] {
	return Constraint[V]{Inequality, lhs.Sub(rhs)}
}

// GreaterEq constructs the constraint lhs >= rhs.
func GreaterEq[V cmp.Ordered](lhs, rhs Expression[V]) Constraint[V] {
	return Constraint[V]{Inequality, rhs.Sub(lhs)}
}

// LessThan constructs the constraint lhs < rhs which, over the integers, is
// lhs + 1 <= rhs.
func LessThan[V cmp.Ordered](lhs, rhs Expression[V]) Constraint[V] {
	return Constraint[V]{Inequality, lhs.Sub(rhs).AddConstant(one)}
}

// GreaterThan constructs the constraint lhs > rhs which, over the integers, is
// rhs + 1 <= lhs.
func GreaterThan[V cmp.Ordered](lhs, rhs Expression[V]) Constraint[V] {
	return Constraint[V]{Inequality, rhs.Sub(lhs).AddConstant(one)}
}

// Equal constructs the constraint lhs == rhs.
func Equal[V cmp.Ordered](lhs, rhs Expression[V]) Constraint[V] {
	return Constraint[V]{Equality, lhs.Sub(rhs)}
}

// NotEqual constructs the constraint lhs != rhs.
func NotEqual[V cmp.Ordered](lhs, rhs Expression[V]) Constraint[V] {
	return Constraint[V]{Disequality, lhs.Sub(rhs)}
}

// Contradiction constructs a constraint which never holds (i.e. 1 <= 0).
func Contradiction[V cmp.Ordered]() Constraint[V] {
	return Constraint[V]{Inequality, Constant[V](1)}
}

// Tautology constructs a constraint which always holds (i.e. 0 <= 0).
func Tautology[V cmp.Ordered]() Constraint[V] {
	return Constraint[V]{Inequality, Constant[V](0)}
}

// Kind returns the relation of this constraint.
func (c Constraint[V]) Kind() Kind {
	return c.kind
}

// Expression returns the expression which this constraint relates with zero.
func (c Constraint[V]) Expression() Expression[V] {
	return c.expr
}

// Bound returns the right-hand side of this constraint when written with all
// variables on the left, as in "x - y <= k".  This is the negated constant of
// the underlying expression.
func (c Constraint[V]) Bound() *big.Int {
	return new(big.Int).Neg(c.expr.Constant())
}

// Variables returns the variables used in this constraint, in order.
func (c Constraint[V]) Variables() []V {
	return c.expr.Variables()
}

// IsContradiction determines whether this constraint has no variables and does
// not hold.
func (c Constraint[V]) IsContradiction() bool {
	if !c.expr.IsConstant() {
		return false
	}
	//
	return !c.holds(c.expr.Constant())
}

// IsTautology determines whether this constraint has no variables and holds.
func (c Constraint[V]) IsTautology() bool {
	if !c.expr.IsConstant() {
		return false
	}
	//
	return c.holds(c.expr.Constant())
}

// IsOctagonal determines whether this constraint has at most two variables,
// each of which has a coefficient of either 1 or -1.
func (c Constraint[V]) IsOctagonal() bool {
	if c.expr.Len() > 2 {
		return false
	}
	//
	for _, t := range c.expr.Terms() {
		if t.Coefficient.CmpAbs(one) != 0 {
			return false
		}
	}
	//
	return true
}

// Check whether this constraint holds for an expression evaluating to k.
func (c Constraint[V]) holds(k *big.Int) bool {
	switch c.kind {
	case Inequality:
		return k.Sign() <= 0
	case Equality:
		return k.Sign() == 0
	default:
		return k.Sign() != 0
	}
}

// String returns a human-readable representation, such as "x - y <= 3".
func (c Constraint[V]) String() string {
	var sb strings.Builder
	//
	if c.expr.IsConstant() {
		sb.WriteString("0")
	} else {
		writeTerms(&sb, c.expr.Terms())
	}
	//
	fmt.Fprintf(&sb, " %s %s", c.kind.String(), c.Bound().String())
	//
	return sb.String()
}

// Lisp returns an S-Expression representing this constraint, such as
// "(<= (+ x (- y)) 3)".
func (c Constraint[V]) Lisp() sexp.SExp {
	lhs := NewExpression[V](big.NewInt(0), c.expr.Terms()...)
	//
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol(c.kind.String()),
		lhs.Lisp(),
		sexp.NewSymbol(c.Bound().String()),
	})
}

// System represents an ordered collection of linear constraints, interpreted
// as their conjunction.
type System[V cmp.Ordered] struct {
	constraints []Constraint[V]
}

// NewSystem constructs a system from zero or more constraints.
func NewSystem[V cmp.Ordered](constraints ...Constraint[V]) *System[V] {
	return &System[V]{constraints}
}

// Add a constraint onto the end of this system.
func (s *System[V]) Add(c Constraint[V]) {
	s.constraints = append(s.constraints, c)
}

// AddAll adds all constraints from another system onto the end of this
// system.
func (s *System[V]) AddAll(other *System[V]) {
	s.constraints = append(s.constraints, other.constraints...)
}

// Len returns the number of constraints in this system.
func (s *System[V]) Len() int {
	return len(s.constraints)
}

// Constraints returns the constraints of this system, in order.
func (s *System[V]) Constraints() []Constraint[V] {
	return s.constraints
}

// String returns one constraint per line.
func (s *System[V]) String() string {
	var sb strings.Builder
	//
	for i, c := range s.constraints {
		if i != 0 {
			sb.WriteString("\n")
		}
		//
		sb.WriteString(c.String())
	}
	//
	return sb.String()
}
