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
package script

import (
	"math/big"

	"github.com/consensys/go-octagon/pkg/linear"
	"github.com/consensys/go-octagon/pkg/util/math"
	"github.com/consensys/go-octagon/pkg/util/source"
	"github.com/consensys/go-octagon/pkg/util/source/sexp"
)

// Expression is a linear expression over named variables.
type Expression = linear.Expression[string]

// Constraint is a linear constraint over named variables.
type Constraint = linear.Constraint[string]

// Translates individual S-Expressions into the objects which commands operate
// over, reporting any malformed terms against their source.
type translator struct {
	srcmap *source.Map[sexp.SExp]
}

type constraintBuilder func(lhs, rhs Expression) Constraint

var comparators = map[string]constraintBuilder{
	"<=": linear.LessEq[string],
	">=": linear.GreaterEq[string],
	"<":  linear.LessThan[string],
	">":  linear.GreaterThan[string],
	"==": linear.Equal[string],
	"!=": linear.NotEqual[string],
}

// Translate a constraint of the form (op lhs rhs), where the result must be
// octagonal.
func (t *translator) constraint(term sexp.SExp) (Constraint, *source.SyntaxError) {
	var (
		empty Constraint
		list  = term.AsList()
	)
	//
	if list == nil || list.Len() != 3 || list.Get(0).AsSymbol() == nil {
		return empty, t.error(term, "invalid constraint")
	}
	//
	builder, ok := comparators[list.Head()]
	if !ok {
		return empty, t.error(list.Get(0), "unknown comparator")
	}
	//
	lhs, err := t.expression(list.Get(1))
	if err != nil {
		return empty, err
	}
	//
	rhs, err := t.expression(list.Get(2))
	if err != nil {
		return empty, err
	}
	//
	c := builder(lhs, rhs)
	// Shapes the domain cannot represent are rejected here, rather than
	// violating its contract.
	if !c.IsOctagonal() {
		return empty, t.error(term, "constraint is not octagonal")
	}
	//
	return c, nil
}

// Translate a linear expression built from integers, variables, sums,
// differences and multiplication by a constant.
func (t *translator) expression(term sexp.SExp) (Expression, *source.SyntaxError) {
	var empty Expression
	//
	if sym := term.AsSymbol(); sym != nil {
		if n, ok := integer(sym); ok {
			return linear.ConstantOf[string](n), nil
		} else if sym.IsIdentifier() {
			return linear.Var(sym.Value), nil
		}
		//
		return empty, t.error(term, "invalid expression")
	}
	//
	list := term.AsList()
	if list == nil || list.Len() < 2 {
		return empty, t.error(term, "invalid expression")
	}
	//
	args, err := t.expressions(list.Elements[1:])
	if err != nil {
		return empty, err
	}
	//
	switch list.Head() {
	case "+":
		return sum(args), nil
	case "-":
		if len(args) == 1 {
			return args[0].Neg(), nil
		}
		//
		return args[0].Sub(sum(args[1:])), nil
	case "*":
		if len(args) != 2 {
			return empty, t.error(term, "multiplication requires exactly two operands")
		} else if args[0].IsConstant() {
			return args[1].Scale(args[0].Constant()), nil
		} else if args[1].IsConstant() {
			return args[0].Scale(args[1].Constant()), nil
		}
		//
		return empty, t.error(term, "non-linear multiplication")
	}
	//
	return empty, t.error(list.Get(0), "unknown operator")
}

func (t *translator) expressions(terms []sexp.SExp) ([]Expression, *source.SyntaxError) {
	exprs := make([]Expression, len(terms))
	//
	for i, term := range terms {
		e, err := t.expression(term)
		if err != nil {
			return nil, err
		}
		//
		exprs[i] = e
	}
	//
	return exprs, nil
}

// Translate an operand which is either a variable or an integer.
func (t *translator) atom(term sexp.SExp) (Expression, *source.SyntaxError) {
	if term.AsSymbol() == nil {
		return Expression{}, t.error(term, "expected variable or integer")
	}
	//
	return t.expression(term)
}

// Translate a variable name.
func (t *translator) variable(term sexp.SExp) (string, *source.SyntaxError) {
	if sym := term.AsSymbol(); sym != nil && sym.IsIdentifier() {
		return sym.Value, nil
	}
	//
	return "", t.error(term, "expected variable")
}

func (t *translator) variables(terms []sexp.SExp) ([]string, *source.SyntaxError) {
	vars := make([]string, len(terms))
	//
	for i, term := range terms {
		v, err := t.variable(term)
		if err != nil {
			return nil, err
		}
		//
		vars[i] = v
	}
	//
	return vars, nil
}

// Translate an integer bit width.
func (t *translator) width(term sexp.SExp) (uint, *source.SyntaxError) {
	if sym := term.AsSymbol(); sym != nil {
		if n, ok := integer(sym); ok && n.Sign() > 0 && n.IsUint64() && n.Uint64() <= maxWidth {
			return uint(n.Uint64()), nil
		}
	}
	//
	return 0, t.error(term, "invalid bit width")
}

// Translate a (possibly infinite) bound.
func (t *translator) bound(term sexp.SExp) (math.Bound, *source.SyntaxError) {
	if sym := term.AsSymbol(); sym != nil {
		if b, err := math.ParseBound(sym.Value); err == nil {
			return b, nil
		}
	}
	//
	return math.Bound{}, t.error(term, "invalid bound")
}

// Translate an interval given by two bound terms.
func (t *translator) interval(lo sexp.SExp, hi sexp.SExp) (math.Interval, *source.SyntaxError) {
	lb, err := t.bound(lo)
	if err != nil {
		return math.Interval{}, err
	}
	//
	ub, err := t.bound(hi)
	if err != nil {
		return math.Interval{}, err
	}
	//
	return math.NewInterval(lb, ub), nil
}

// Translate an interval written as an array [lo hi].
func (t *translator) array(term sexp.SExp) (math.Interval, *source.SyntaxError) {
	if arr := term.AsArray(); arr != nil && arr.Len() == 2 {
		return t.interval(arr.Get(0), arr.Get(1))
	}
	//
	return math.Interval{}, t.error(term, "invalid interval")
}

func (t *translator) error(term sexp.SExp, msg string) *source.SyntaxError {
	return t.srcmap.SyntaxError(term, msg)
}

func integer(sym *sexp.Symbol) (*big.Int, bool) {
	var n big.Int
	//
	if _, ok := n.SetString(sym.Value, 10); !ok {
		return nil, false
	}
	//
	return &n, true
}

func sum(exprs []Expression) Expression {
	var res Expression
	//
	for _, e := range exprs {
		res = res.Add(e)
	}
	//
	return res
}

const maxWidth = 1024
