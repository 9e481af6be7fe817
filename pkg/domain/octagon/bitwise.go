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

	"github.com/consensys/go-octagon/pkg/linear"
	"github.com/consensys/go-octagon/pkg/util/math"
)

// BitwiseOperation identifies a bitwise operation x = y op z.
type BitwiseOperation uint8

const (
	// And computes bitwise and
	And BitwiseOperation = iota
	// Or computes bitwise or
	Or
	// Xor computes bitwise exclusive or
	Xor
	// Shl computes left shift
	Shl
	// LShr computes logical right shift
	LShr
	// AShr computes arithmetic right shift
	AShr
)

func (op BitwiseOperation) String() string {
	switch op {
	case And:
		return "and"
	case Or:
		return "or"
	case Xor:
		return "xor"
	case Shl:
		return "shl"
	case LShr:
		return "lshr"
	case AShr:
		return "ashr"
	}
	//
	panic(fmt.Sprintf("unknown bitwise operation (%d)", op))
}

func (op BitwiseOperation) eval(lhs math.Interval, rhs math.Interval) math.Interval {
	switch op {
	case And:
		return lhs.And(rhs)
	case Or:
		return lhs.Or(rhs)
	case Xor:
		return lhs.Xor(rhs)
	case Shl:
		return lhs.Shl(rhs)
	case LShr:
		return lhs.LShr(rhs)
	case AShr:
		return lhs.AShr(rhs)
	}
	//
	panic(fmt.Sprintf("unknown bitwise operation (%d)", op))
}

// DivisionOperation identifies a (machine) division operation x = y op z.
type DivisionOperation uint8

const (
	// SDiv computes signed division
	SDiv DivisionOperation = iota
	// UDiv computes unsigned division
	UDiv
	// SRem computes signed remainder
	SRem
	// URem computes unsigned remainder
	URem
)

func (op DivisionOperation) String() string {
	switch op {
	case SDiv:
		return "sdiv"
	case UDiv:
		return "udiv"
	case SRem:
		return "srem"
	case URem:
		return "urem"
	}
	//
	panic(fmt.Sprintf("unknown division operation (%d)", op))
}

// ConversionOperation identifies a change in bit width x = op(y).
type ConversionOperation uint8

const (
	// Trunc truncates to a smaller width
	Trunc ConversionOperation = iota
	// ZExt zero extends to a larger width
	ZExt
	// SExt sign extends to a larger width
	SExt
)

func (op ConversionOperation) String() string {
	switch op {
	case Trunc:
		return "trunc"
	case ZExt:
		return "zext"
	case SExt:
		return "sext"
	}
	//
	panic(fmt.Sprintf("unknown conversion operation (%d)", op))
}

// ApplyBitwise applies a bitwise operation x = y op z.  Such operations cannot
// be represented by octagons, so x is computed over the intervals of y and z.
func (p *State[V]) ApplyBitwise(op BitwiseOperation, x V, y V, z V) {
	if !p.bottom {
		p.Set(x, op.eval(p.Get(y), p.Get(z)))
	}
}

// ApplyBitwiseConst applies a bitwise operation x = y op k for a constant k.
func (p *State[V]) ApplyBitwiseConst(op BitwiseOperation, x V, y V, k *big.Int) {
	if !p.bottom {
		p.Set(x, op.eval(p.Get(y), math.SingletonOf(k)))
	}
}

// ApplyDivision applies a division operation x = y op z.  Signed division is
// exactly Div, whilst the others are computed over the intervals of y and z.
func (p *State[V]) ApplyDivision(op DivisionOperation, x V, y V, z V) {
	if op == SDiv {
		p.Apply(Div, x, y, z)
	} else if !p.bottom {
		p.Set(x, op.eval(p.Get(y), p.Get(z)))
	}
}

// ApplyDivisionConst applies a division operation x = y op k for a constant k.
func (p *State[V]) ApplyDivisionConst(op DivisionOperation, x V, y V, k *big.Int) {
	if op == SDiv {
		p.ApplyConst(Div, x, y, k)
	} else if !p.bottom {
		p.Set(x, op.eval(p.Get(y), math.SingletonOf(k)))
	}
}

func (op DivisionOperation) eval(lhs math.Interval, rhs math.Interval) math.Interval {
	switch op {
	case SDiv:
		return lhs.Div(rhs)
	case UDiv:
		return lhs.UDiv(rhs)
	case SRem:
		return lhs.SRem(rhs)
	case URem:
		return lhs.URem(rhs)
	}
	//
	panic(fmt.Sprintf("unknown division operation (%d)", op))
}

// ApplyConversion applies a conversion x = op(y) from one bit width to
// another.  When the value of y is unaffected by the conversion, x is assigned
// y (thus retaining the relationship between them).  Otherwise, x is the
// converted interval of y.
func (p *State[V]) ApplyConversion(op ConversionOperation, x V, y V, from uint, to uint) {
	if p.bottom {
		return
	}
	//
	yi := p.Get(y)
	//
	if xi := op.eval(yi, from, to); xi.Equals(yi) {
		p.Assign(x, linear.Var(y))
	} else {
		p.Set(x, xi)
	}
}

// ApplyConversionConst applies a conversion x = op(k) for a constant k.
func (p *State[V]) ApplyConversionConst(op ConversionOperation, x V, k *big.Int, from uint, to uint) {
	p.Set(x, op.eval(math.SingletonOf(k), from, to))
}

func (op ConversionOperation) eval(itv math.Interval, from uint, to uint) math.Interval {
	switch op {
	case Trunc:
		return itv.Trunc(from, to)
	case ZExt:
		return itv.ZExt(from, to)
	case SExt:
		return itv.SExt(from, to)
	}
	//
	panic(fmt.Sprintf("unknown conversion operation (%d)", op))
}
