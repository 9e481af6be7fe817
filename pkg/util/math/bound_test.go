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
package math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Bound_Parse(t *testing.T) {
	for _, s := range []string{"+oo", "oo", "inf", "+inf"} {
		b, err := ParseBound(s)
		require.NoError(t, err)
		assert.True(t, b.IsPosInfinity(), s)
	}
	//
	b, err := ParseBound("-oo")
	require.NoError(t, err)
	assert.True(t, b.IsNegInfinity())
	//
	b, err = ParseBound("-42")
	require.NoError(t, err)
	assert.Equal(t, "-42", b.String())
	//
	_, err = ParseBound("4x2")
	assert.Error(t, err)
}

func Test_Bound_Order(t *testing.T) {
	bounds := []Bound{NegInfinity(), NewBound(-5), NewBound(0), NewBound(7), PosInfinity()}
	//
	for i := range bounds {
		for j := range bounds {
			switch {
			case i < j:
				assert.True(t, bounds[i].Less(bounds[j]), "%s < %s", bounds[i], bounds[j])
			case i == j:
				assert.True(t, bounds[i].Equals(bounds[j]))
			default:
				assert.False(t, bounds[i].LessEq(bounds[j]))
			}
		}
	}
	//
	assert.Equal(t, "-5", MinOf(NewBound(3), NewBound(-5), PosInfinity()).String())
	assert.Equal(t, "+oo", MaxOf(NewBound(3), NewBound(-5), PosInfinity()).String())
}

func Test_Bound_Arithmetic(t *testing.T) {
	assert.Equal(t, "5", NewBound(2).Add(NewBound(3)).String())
	assert.Equal(t, "+oo", NewBound(2).Add(PosInfinity()).String())
	assert.Equal(t, "-oo", NegInfinity().Add(NewBound(-9)).String())
	assert.Equal(t, "+oo", NewBound(2).Sub(NegInfinity()).String())
	assert.Equal(t, "-6", NewBound(2).Mul(NewBound(-3)).String())
	assert.Equal(t, "0", NewBound(0).Mul(PosInfinity()).String())
	assert.Equal(t, "-oo", NewBound(-1).Mul(PosInfinity()).String())
	assert.Equal(t, "+oo", NegInfinity().Mul(NegInfinity()).String())
	assert.Equal(t, "-3", NewBound(-7).Div(NewBound(2)).String())
	assert.Equal(t, "0", NewBound(-7).Div(PosInfinity()).String())
	assert.Equal(t, "0", NewBound(10).Div(NegInfinity()).String())
	assert.Equal(t, "+oo", NegInfinity().Div(NegInfinity()).String())
	assert.Equal(t, "-oo", PosInfinity().Div(NewBound(-2)).String())
	assert.Panics(t, func() { PosInfinity().Add(NegInfinity()) })
	assert.Panics(t, func() { NewBound(1).Div(NewBound(0)) })
}

func Test_Bound_Half(t *testing.T) {
	assert.Equal(t, "3", NewBound(7).Half().String())
	assert.Equal(t, "-4", NewBound(-7).Half().String())
	assert.Equal(t, "-3", NewBound(-6).Half().String())
	assert.Equal(t, "+oo", PosInfinity().Half().String())
}

func Test_Bound_RoundedDiv(t *testing.T) {
	three, minusThree := big.NewInt(3), big.NewInt(-3)
	//
	assert.Equal(t, "2", NewBound(7).FloorDiv(three).String())
	assert.Equal(t, "3", NewBound(7).CeilDiv(three).String())
	assert.Equal(t, "-3", NewBound(-7).FloorDiv(three).String())
	assert.Equal(t, "-2", NewBound(-7).CeilDiv(three).String())
	assert.Equal(t, "-3", NewBound(7).FloorDiv(minusThree).String())
	assert.Equal(t, "-2", NewBound(7).CeilDiv(minusThree).String())
	assert.Equal(t, "2", NewBound(-6).FloorDiv(minusThree).String())
	assert.Equal(t, "2", NewBound(-6).CeilDiv(minusThree).String())
	assert.Equal(t, "-oo", PosInfinity().FloorDiv(minusThree).String())
	assert.Equal(t, "-oo", NegInfinity().CeilDiv(three).String())
}

func Test_Bound_Immutable(t *testing.T) {
	v := big.NewInt(10)
	b := BoundOf(v)
	v.SetInt64(11)
	//
	assert.Equal(t, "10", b.String())
	//
	c := b.Add(NewBound(1))
	assert.Equal(t, "10", b.String())
	assert.Equal(t, "11", c.String())
	//
	n := b.Int()
	n.SetInt64(0)
	assert.Equal(t, "10", b.String())
}
