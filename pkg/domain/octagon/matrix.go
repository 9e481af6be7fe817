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
	"slices"

	"github.com/consensys/go-octagon/pkg/util/math"
)

// Matrix is a difference-bound matrix over n variables.  This is a square
// (2n)x(2n) matrix of bounds, addressed from 1 in column-major order.  For the
// kth variable x, index 2k holds its positive half (+x) and index 2k-1 its
// negative half (-x).  Entry (i,j) is then an upper bound on h_i - h_j, where
// h_i is the half at index i.  Thus, for example, entry (2k,2k-1) bounds 2x.
type Matrix struct {
	// Number of variables covered
	n uint
	// Cells in column-major order
	cells []math.Bound
}

// NewMatrix constructs a matrix over n variables where every entry is
// unbounded.
func NewMatrix(n uint) *Matrix {
	cells := make([]math.Bound, 4*n*n)
	//
	for i := range cells {
		cells[i] = math.PosInfinity()
	}
	//
	return &Matrix{n, cells}
}

// Size returns the number of variables covered by this matrix.
func (p *Matrix) Size() uint {
	return p.n
}

// Dimension returns the number of rows (equivalently columns) of this matrix,
// which is twice the number of variables.
func (p *Matrix) Dimension() uint {
	return 2 * p.n
}

// At returns the entry at row i and column j.
func (p *Matrix) At(i uint, j uint) math.Bound {
	return p.cells[p.offset(i, j)]
}

// Set the entry at row i and column j.
func (p *Matrix) Set(i uint, j uint, val math.Bound) {
	p.cells[p.offset(i, j)] = val
}

// Tighten the entry at row i and column j to be at most a given bound.
func (p *Matrix) Tighten(i uint, j uint, val math.Bound) {
	if offset := p.offset(i, j); val.Less(p.cells[offset]) {
		p.cells[offset] = val
	}
}

// Resize this matrix to cover a given number of variables, preserving all
// existing entries.  New entries are unbounded.  Matrices are never shrunk
// by resizing.
func (p *Matrix) Resize(n uint) {
	if n <= p.n {
		return
	}
	//
	nm := NewMatrix(n)
	//
	for j := uint(1); j <= p.Dimension(); j++ {
		for i := uint(1); i <= p.Dimension(); i++ {
			nm.Set(i, j, p.At(i, j))
		}
	}
	//
	*p = *nm
}

// Remove the two halves of the kth variable, moving every subsequent variable
// down one position.
func (p *Matrix) Remove(k uint) {
	if k < 1 || k > p.n {
		contractViolation("invalid matrix variable %d (size is %d)", k, p.n)
	}
	//
	var (
		nm = NewMatrix(p.n - 1)
		// index of h_i after removal
		shift = func(i uint) uint {
			if i > pos(k) {
				return i - 2
			}
			//
			return i
		}
	)
	//
	for j := uint(1); j <= p.Dimension(); j++ {
		if j == pos(k) || j == neg(k) {
			continue
		}
		//
		for i := uint(1); i <= p.Dimension(); i++ {
			if i != pos(k) && i != neg(k) {
				nm.Set(shift(i), shift(j), p.At(i, j))
			}
		}
	}
	//
	*p = *nm
}

// Clone this matrix.  Since bounds are immutable, this is a true copy.
func (p *Matrix) Clone() *Matrix {
	return &Matrix{p.n, slices.Clone(p.cells)}
}

// Equals determines whether two matrices are identical, entry for entry.
func (p *Matrix) Equals(other *Matrix) bool {
	if p.n != other.n {
		return false
	}
	//
	for i := range p.cells {
		if !p.cells[i].Equals(other.cells[i]) {
			return false
		}
	}
	//
	return true
}

func (p *Matrix) offset(i uint, j uint) uint {
	dim := p.Dimension()
	//
	if i < 1 || j < 1 || i > dim || j > dim {
		contractViolation("matrix access (%d,%d) out-of-bounds (dimension is %d)", i, j, dim)
	}
	//
	return dim*(j-1) + (i - 1)
}

// ============================================================================
// Half indices
// ============================================================================

// Sign identifies one half of a variable.
type Sign bool

const (
	// Negative identifies the -x half.
	Negative Sign = false
	// Positive identifies the +x half.
	Positive Sign = true
)

// HalfIndex returns the matrix index of one half of the kth variable.
func HalfIndex(k uint, sign Sign) uint {
	if sign == Positive {
		return 2 * k
	}
	//
	return 2*k - 1
}

func pos(k uint) uint {
	return HalfIndex(k, Positive)
}

func neg(k uint) uint {
	return HalfIndex(k, Negative)
}

// comp returns the index of the opposite half of the same variable.
func comp(i uint) uint {
	if i%2 == 1 {
		return i + 1
	}
	//
	return i - 1
}
