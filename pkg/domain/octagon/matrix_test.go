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
	"testing"

	"github.com/consensys/go-octagon/pkg/util/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Matrix_New(t *testing.T) {
	m := NewMatrix(2)
	//
	assert.Equal(t, uint(2), m.Size())
	assert.Equal(t, uint(4), m.Dimension())
	//
	for i := uint(1); i <= 4; i++ {
		for j := uint(1); j <= 4; j++ {
			assert.True(t, m.At(i, j).IsPosInfinity())
		}
	}
}

func Test_Matrix_Resize(t *testing.T) {
	m := numberedMatrix(2)
	m.Resize(3)
	//
	assert.Equal(t, uint(6), m.Dimension())
	assert.Equal(t, "11", m.At(1, 1).String())
	assert.Equal(t, "34", m.At(3, 4).String())
	assert.Equal(t, "43", m.At(4, 3).String())
	assert.True(t, m.At(5, 1).IsPosInfinity())
	assert.True(t, m.At(2, 6).IsPosInfinity())
	// Never shrinks
	m.Resize(1)
	assert.Equal(t, uint(3), m.Size())
}

func Test_Matrix_Remove(t *testing.T) {
	m := numberedMatrix(3)
	m.Remove(2)
	//
	require.Equal(t, uint(4), m.Dimension())
	assert.Equal(t, "11", m.At(1, 1).String())
	assert.Equal(t, "12", m.At(1, 2).String())
	assert.Equal(t, "15", m.At(1, 3).String())
	assert.Equal(t, "51", m.At(3, 1).String())
	assert.Equal(t, "26", m.At(2, 4).String())
	assert.Equal(t, "56", m.At(3, 4).String())
	assert.Equal(t, "66", m.At(4, 4).String())
	//
	m.Remove(1)
	assert.Equal(t, "56", m.At(1, 2).String())
	m.Remove(1)
	assert.Equal(t, uint(0), m.Size())
}

func Test_Matrix_Clone(t *testing.T) {
	m := numberedMatrix(1)
	c := m.Clone()
	c.Set(1, 2, math.NewBound(0))
	//
	assert.Equal(t, "12", m.At(1, 2).String())
	assert.False(t, m.Equals(c))
	c.Set(1, 2, math.NewBound(12))
	assert.True(t, m.Equals(c))
}

func Test_Matrix_Tighten(t *testing.T) {
	m := NewMatrix(1)
	m.Tighten(1, 2, math.NewBound(4))
	m.Tighten(1, 2, math.NewBound(6))
	//
	assert.Equal(t, "4", m.At(1, 2).String())
}

func Test_Matrix_OutOfBounds(t *testing.T) {
	m := NewMatrix(1)
	//
	assertContractViolation(t, func() { m.At(0, 1) })
	assertContractViolation(t, func() { m.At(1, 3) })
	assertContractViolation(t, func() { m.Set(3, 1, math.NewBound(0)) })
	assertContractViolation(t, func() { m.Remove(2) })
}

func Test_Matrix_HalfIndex(t *testing.T) {
	assert.Equal(t, uint(5), HalfIndex(3, Negative))
	assert.Equal(t, uint(6), HalfIndex(3, Positive))
	assert.Equal(t, uint(6), comp(5))
	assert.Equal(t, uint(5), comp(6))
	assert.Equal(t, uint(2), comp(1))
}

// ===================================================================
// Test Helpers
// ===================================================================

// Construct a matrix where entry (i,j) holds 10*i+j.
func numberedMatrix(n uint) *Matrix {
	m := NewMatrix(n)
	//
	for i := uint(1); i <= m.Dimension(); i++ {
		for j := uint(1); j <= m.Dimension(); j++ {
			m.Set(i, j, math.NewBound(int64(10*i+j)))
		}
	}
	//
	return m
}

func assertContractViolation(t *testing.T, fn func()) {
	t.Helper()
	//
	defer func() {
		r := recover()
		//
		if _, ok := r.(*ContractError); !ok {
			t.Errorf("expected contract violation, got %v", r)
		}
	}()
	//
	fn()
}
