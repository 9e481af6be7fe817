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

// Term represents a single variable multiplied by a (non-zero) coefficient.
type Term[V cmp.Ordered] struct {
	Coefficient *big.Int
	Variable    V
}

// Expression represents a linear expression over integer variables, made up
// from zero or more terms plus a constant.  Terms are held in variable order
// and no two terms share a variable.  Expressions are immutable, and all
// operations below construct new expressions.  Observe that an uninitialised
// Expression corresponds with zero.
type Expression[V cmp.Ordered] struct {
	terms    []Term[V]
	constant *big.Int
}

// Var constructs the expression consisting of a single variable.
func Var[V cmp.Ordered](v V) Expression[V] {
	return Expression[V]{[]Term[V]{{big.NewInt(1), v}}, nil}
}

// Constant constructs a constant expression.
func Constant[V cmp.Ordered](k int64) Expression[V] {
	return Expression[V]{nil, big.NewInt(k)}
}

// ConstantOf constructs a constant expression from a big integer.
func ConstantOf[V cmp.Ordered](k *big.Int) Expression[V] {
	return Expression[V]{nil, new(big.Int).Set(k)}
}

// NewExpression constructs an expression from a constant and zero or more
// terms.  Terms may be given in any order, and multiple terms for the same
// variable are summed.
func NewExpression[V cmp.Ordered](constant *big.Int, terms ...Term[V]) Expression[V] {
	var e = ConstantOf[V](constant)
	//
	for _, t := range terms {
		e = e.Add(Expression[V]{[]Term[V]{t}, nil})
	}
	//
	return e
}

// Len returns the number of terms in this expression.
func (e Expression[V]) Len() int {
	return len(e.terms)
}

// Terms returns the terms of this expression in variable order.  The returned
// slice must not be modified.
func (e Expression[V]) Terms() []Term[V] {
	return e.terms
}

// Constant returns the constant of this expression.
func (e Expression[V]) Constant() *big.Int {
	if e.constant == nil {
		return big.NewInt(0)
	}
	//
	return new(big.Int).Set(e.constant)
}

// Coefficient returns the coefficient of a given variable in this expression,
// which is zero when the variable does not occur.
func (e Expression[V]) Coefficient(v V) *big.Int {
	for _, t := range e.terms {
		if t.Variable == v {
			return new(big.Int).Set(t.Coefficient)
		}
	}
	//
	return big.NewInt(0)
}

// Variables returns the variables used in this expression, in order.
func (e Expression[V]) Variables() []V {
	vars := make([]V, len(e.terms))
	//
	for i, t := range e.terms {
		vars[i] = t.Variable
	}
	//
	return vars
}

// IsConstant determines whether this expression has no variables.
func (e Expression[V]) IsConstant() bool {
	return len(e.terms) == 0
}

// AsVariable determines whether this expression is exactly a single variable
// (i.e. coefficient one and no constant) and, if so, returns it.
func (e Expression[V]) AsVariable() (V, bool) {
	var empty V
	//
	if len(e.terms) != 1 || e.Constant().Sign() != 0 || e.terms[0].Coefficient.Cmp(one) != 0 {
		return empty, false
	}
	//
	return e.terms[0].Variable, true
}

// Add another expression onto this expression.
func (e Expression[V]) Add(other Expression[V]) Expression[V] {
	var (
		i, j  int
		terms = make([]Term[V], 0, len(e.terms)+len(other.terms))
	)
	// Merge terms in variable order
	for i < len(e.terms) || j < len(other.terms) {
		switch {
		case j == len(other.terms) || (i < len(e.terms) && e.terms[i].Variable < other.terms[j].Variable):
			terms = append(terms, e.terms[i])
			i++
		case i == len(e.terms) || other.terms[j].Variable < e.terms[i].Variable:
			terms = append(terms, other.terms[j])
			j++
		default:
			c := new(big.Int).Add(e.terms[i].Coefficient, other.terms[j].Coefficient)
			// Drop cancelled terms
			if c.Sign() != 0 {
				terms = append(terms, Term[V]{c, e.terms[i].Variable})
			}
			//
			i++
			j++
		}
	}
	//
	return Expression[V]{terms, new(big.Int).Add(e.Constant(), other.Constant())}
}

// Sub subtracts another expression from this expression.
func (e Expression[V]) Sub(other Expression[V]) Expression[V] {
	return e.Add(other.Neg())
}

// AddConstant adds a constant onto this expression.
func (e Expression[V]) AddConstant(k *big.Int) Expression[V] {
	return Expression[V]{e.terms, new(big.Int).Add(e.Constant(), k)}
}

// Neg negates this expression.
func (e Expression[V]) Neg() Expression[V] {
	return e.Scale(minusOne)
}

// Scale multiplies this expression by a constant.
func (e Expression[V]) Scale(k *big.Int) Expression[V] {
	if k.Sign() == 0 {
		return Expression[V]{}
	}
	//
	terms := make([]Term[V], len(e.terms))
	//
	for i, t := range e.terms {
		terms[i] = Term[V]{new(big.Int).Mul(t.Coefficient, k), t.Variable}
	}
	//
	return Expression[V]{terms, new(big.Int).Mul(e.Constant(), k)}
}

// String returns a human-readable representation, such as "x - 2*y + 3".
func (e Expression[V]) String() string {
	var sb strings.Builder
	//
	writeTerms(&sb, e.terms)
	//
	k := e.Constant()
	//
	switch {
	case len(e.terms) == 0:
		sb.WriteString(k.String())
	case k.Sign() > 0:
		fmt.Fprintf(&sb, " + %s", k.String())
	case k.Sign() < 0:
		fmt.Fprintf(&sb, " - %s", new(big.Int).Neg(k).String())
	}
	//
	return sb.String()
}

// Lisp returns an S-Expression representing this expression, such as
// "(+ x (* -2 y) 3)".
func (e Expression[V]) Lisp() sexp.SExp {
	var elements []sexp.SExp
	//
	for _, t := range e.terms {
		elements = append(elements, termLisp(t))
	}
	//
	if k := e.Constant(); k.Sign() != 0 || len(elements) == 0 {
		elements = append(elements, sexp.NewSymbol(k.String()))
	}
	//
	if len(elements) == 1 {
		return elements[0]
	}
	//
	return sexp.NewList(append([]sexp.SExp{sexp.NewSymbol("+")}, elements...))
}

func termLisp[V cmp.Ordered](t Term[V]) sexp.SExp {
	v := sexp.NewSymbol(fmt.Sprintf("%v", t.Variable))
	//
	switch {
	case t.Coefficient.Cmp(one) == 0:
		return v
	case t.Coefficient.Cmp(minusOne) == 0:
		return sexp.NewList([]sexp.SExp{sexp.NewSymbol("-"), v})
	default:
		return sexp.NewList([]sexp.SExp{sexp.NewSymbol("*"), sexp.NewSymbol(t.Coefficient.String()), v})
	}
}

func writeTerms[V cmp.Ordered](sb *strings.Builder, terms []Term[V]) {
	for i, t := range terms {
		var c = t.Coefficient
		//
		switch {
		case i == 0 && c.Sign() < 0:
			sb.WriteString("-")
		case i != 0 && c.Sign() < 0:
			sb.WriteString(" - ")
		case i != 0:
			sb.WriteString(" + ")
		}
		//
		if abs := new(big.Int).Abs(c); abs.Cmp(one) != 0 {
			fmt.Fprintf(sb, "%s*", abs.String())
		}
		//
		fmt.Fprintf(sb, "%v", t.Variable)
	}
}

var one = big.NewInt(1)
var minusOne = big.NewInt(-1)
