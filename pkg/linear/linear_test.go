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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

type Expr = Expression[string]

func x() Expr { return Var("x") }
func y() Expr { return Var("y") }
func z() Expr { return Var("z") }

func k(c int64) Expr { return Constant[string](c) }

func Test_Expression_Add(t *testing.T) {
	e := z().Add(x()).Add(k(3))
	//
	assert.Equal(t, []string{"x", "z"}, e.Variables())
	assert.Equal(t, "x + z + 3", e.String())
	assert.Equal(t, int64(3), e.Constant().Int64())
}

func Test_Expression_Cancel(t *testing.T) {
	e := x().Add(y()).Sub(x())
	//
	assert.Equal(t, 1, e.Len())
	assert.Equal(t, "y", e.String())
	assert.Equal(t, int64(0), e.Coefficient("x").Int64())
	assert.Equal(t, int64(1), e.Coefficient("y").Int64())
}

func Test_Expression_Scale(t *testing.T) {
	e := x().Sub(y()).AddConstant(big.NewInt(-1)).Scale(big.NewInt(-2))
	//
	assert.Equal(t, "-2*x + 2*y + 2", e.String())
	assert.Equal(t, "0", x().Scale(big.NewInt(0)).String())
	assert.True(t, x().Scale(big.NewInt(0)).IsConstant())
}

func Test_Expression_AsVariable(t *testing.T) {
	v, ok := x().AsVariable()
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	//
	_, ok = x().Add(k(1)).AsVariable()
	assert.False(t, ok)
	_, ok = x().Neg().AsVariable()
	assert.False(t, ok)
	_, ok = k(0).AsVariable()
	assert.False(t, ok)
}

func Test_Expression_New(t *testing.T) {
	e := NewExpression(big.NewInt(5),
		Term[string]{big.NewInt(2), "y"},
		Term[string]{big.NewInt(1), "x"},
		Term[string]{big.NewInt(-2), "y"})
	//
	assert.Equal(t, "x + 5", e.String())
}

func Test_Expression_Lisp(t *testing.T) {
	assert.Equal(t, "x", x().Lisp().String())
	assert.Equal(t, "0", k(0).Lisp().String())
	assert.Equal(t, "-4", k(-4).Lisp().String())
	assert.Equal(t, "(+ x (- y) 3)", x().Sub(y()).Add(k(3)).Lisp().String())
	assert.Equal(t, "(+ (* 2 x) (* -3 z))", x().Scale(big.NewInt(2)).Sub(z().Scale(big.NewInt(3))).Lisp().String())
}

func Test_Constraint_Builders(t *testing.T) {
	assert.Equal(t, "x - y <= 3", LessEq(x().Sub(y()), k(3)).String())
	assert.Equal(t, "-x <= -2", GreaterEq(x(), k(2)).String())
	assert.Equal(t, "x <= 4", LessThan(x(), k(5)).String())
	assert.Equal(t, "-x + y <= -1", GreaterThan(x(), y()).String())
	assert.Equal(t, "x + y == 0", Equal(x(), y().Neg()).String())
	assert.Equal(t, "x != 7", NotEqual(x(), k(7)).String())
	assert.Equal(t, "0 <= -1", Contradiction[string]().String())
	assert.Equal(t, "0 <= 0", Tautology[string]().String())
}

func Test_Constraint_Trivial(t *testing.T) {
	assert.True(t, Contradiction[string]().IsContradiction())
	assert.False(t, Contradiction[string]().IsTautology())
	assert.True(t, Tautology[string]().IsTautology())
	assert.True(t, Equal(k(1), k(1)).IsTautology())
	assert.True(t, Equal(k(1), k(2)).IsContradiction())
	assert.True(t, NotEqual(k(1), k(1)).IsContradiction())
	assert.True(t, NotEqual(k(1), k(2)).IsTautology())
	assert.False(t, LessEq(x(), k(2)).IsTautology())
	assert.False(t, LessEq(x(), k(2)).IsContradiction())
}

func Test_Constraint_Octagonal(t *testing.T) {
	assert.True(t, LessEq(x(), k(2)).IsOctagonal())
	assert.True(t, LessEq(x().Neg().Sub(y()), k(2)).IsOctagonal())
	assert.True(t, Tautology[string]().IsOctagonal())
	assert.False(t, LessEq(x().Scale(big.NewInt(2)), k(2)).IsOctagonal())
	assert.False(t, LessEq(x().Add(y()).Add(z()), k(2)).IsOctagonal())
}

func Test_Constraint_Lisp(t *testing.T) {
	c := LessEq(x().Sub(y()).Add(k(1)), k(4))
	//
	assert.Equal(t, int64(3), c.Bound().Int64())
	assert.Equal(t, "(<= (+ x (- y)) 3)", c.Lisp().String())
	assert.Equal(t, "(== x 0)", Equal(x(), k(0)).Lisp().String())
}

func Test_System(t *testing.T) {
	s := NewSystem(LessEq(x(), k(1)))
	s.Add(GreaterEq(y(), k(0)))
	s.AddAll(NewSystem(NotEqual(x(), y())))
	//
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "x <= 1\n-y <= 0\nx - y != 0", s.String())
}
