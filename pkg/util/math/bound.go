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
	"fmt"
	"math/big"
	"strings"
)

const negativeInfinity = -1
const notAnInfinity = 0
const positiveInfinity = 1

var two = big.NewInt(2)

// Bound represents an extended integer, which is either a finite (unbounded)
// integer value, negative infinity or positive infinity.  Bounds are totally
// ordered (with -oo below and +oo above every finite value) and are immutable:
// no operation ever modifies the big integer of an existing bound, so bounds
// can be copied and shared freely.
type Bound struct {
	// value of this bound, or nil to signal either an infinity or zero.
	val *big.Int
	// sign indicates whether we are not an infinity, or are negative infinity
	// or positive infinity.
	sign int8
}

// NewBound constructs a finite bound from a machine integer.
func NewBound(val int64) Bound {
	return Bound{big.NewInt(val), notAnInfinity}
}

// BoundOf constructs a finite bound from a big integer.  Observe this will
// clone the underlying big integer.
func BoundOf(val *big.Int) Bound {
	var n big.Int
	//
	n.Set(val)
	//
	return Bound{&n, notAnInfinity}
}

// PosInfinity returns the bound representing positive infinity.
func PosInfinity() Bound {
	return Bound{nil, positiveInfinity}
}

// NegInfinity returns the bound representing negative infinity.
func NegInfinity() Bound {
	return Bound{nil, negativeInfinity}
}

// ParseBound parses a bound from a string, which is either a decimal integer
// or one of the infinities "+oo", "oo", "-oo", "+inf", "inf" or "-inf".
func ParseBound(s string) (Bound, error) {
	switch strings.ToLower(s) {
	case "+oo", "oo", "+inf", "inf", "+∞", "∞":
		return PosInfinity(), nil
	case "-oo", "-inf", "-∞":
		return NegInfinity(), nil
	}
	//
	var n big.Int
	if _, ok := n.SetString(s, 10); !ok {
		return Bound{}, fmt.Errorf("invalid bound \"%s\"", s)
	}
	//
	return Bound{&n, notAnInfinity}, nil
}

func (p Bound) num() *big.Int {
	if p.val == nil {
		return big.NewInt(0)
	}
	//
	return p.val
}

// IsFinite returns true if this bound represents a finite integer value.
func (p Bound) IsFinite() bool {
	return p.sign == notAnInfinity
}

// IsInfinite returns true if this bound is either negative or positive infinity.
func (p Bound) IsInfinite() bool {
	return p.sign != notAnInfinity
}

// IsPosInfinity returns true if this bound is positive infinity.
func (p Bound) IsPosInfinity() bool {
	return p.sign == positiveInfinity
}

// IsNegInfinity returns true if this bound is negative infinity.
func (p Bound) IsNegInfinity() bool {
	return p.sign == negativeInfinity
}

// IsZero returns true if this bound is the finite value zero.
func (p Bound) IsZero() bool {
	return p.sign == notAnInfinity && (p.val == nil || p.val.Sign() == 0)
}

// Sign returns -1, 0 or +1 depending on whether this bound is negative, zero or
// positive.  Infinities have the sign of their direction.
func (p Bound) Sign() int {
	if p.sign != notAnInfinity {
		return int(p.sign)
	}
	//
	return p.num().Sign()
}

// Int returns the (copied) value of a finite bound.  This will panic if the
// bound is an infinity.
func (p Bound) Int() *big.Int {
	if p.sign != notAnInfinity {
		panic("cannot cast infinity into a big integer")
	}
	//
	var n big.Int
	//
	return n.Set(p.num())
}

// Add two (potentially infinite) bounds together.  Adding opposite infinities
// is undefined and will panic.
func (p Bound) Add(other Bound) Bound {
	switch {
	case p.sign == notAnInfinity && other.sign == notAnInfinity:
		var val big.Int
		//
		return Bound{val.Add(p.num(), other.num()), notAnInfinity}
	case p.sign == notAnInfinity:
		return other
	case other.sign == notAnInfinity || p.sign == other.sign:
		return p
	default:
		panic("undefined operation +oo + -oo")
	}
}

// Sub subtracts a (potentially infinite) bound from this bound.
func (p Bound) Sub(other Bound) Bound {
	return p.Add(other.Neg())
}

// Neg negates this (potentially infinite) bound.
func (p Bound) Neg() Bound {
	if p.sign != notAnInfinity {
		return Bound{nil, -p.sign}
	}
	//
	var val big.Int
	//
	return Bound{val.Neg(p.num()), notAnInfinity}
}

// Abs returns the absolute value of this bound.
func (p Bound) Abs() Bound {
	if p.Sign() < 0 {
		return p.Neg()
	}
	//
	return p
}

// Mul multiplies this bound by another.  Multiplying zero by an infinity gives
// zero, otherwise any product involving an infinity is an infinity whose
// direction follows the usual sign rule.
func (p Bound) Mul(other Bound) Bound {
	switch {
	case p.IsZero() || other.IsZero():
		return NewBound(0)
	case p.sign == notAnInfinity && other.sign == notAnInfinity:
		var val big.Int
		//
		return Bound{val.Mul(p.num(), other.num()), notAnInfinity}
	default:
		return Bound{nil, int8(p.Sign() * other.Sign())}
	}
}

// Div divides this bound by another, truncating towards zero.  A finite value
// divided by an infinity is zero, whilst an infinity divided by anything non-zero
// is an infinity whose direction follows the signs.  Division by zero panics.
func (p Bound) Div(other Bound) Bound {
	switch {
	case other.IsZero():
		panic("bound: division by zero")
	case p.sign == notAnInfinity && other.sign == notAnInfinity:
		var val big.Int
		//
		return Bound{val.Quo(p.num(), other.num()), notAnInfinity}
	case p.sign == notAnInfinity:
		return Bound{big.NewInt(0), notAnInfinity}
	default:
		return Bound{nil, int8(p.Sign() * other.Sign())}
	}
}

// FloorDiv divides this bound by a non-zero integer, rounding towards negative
// infinity.  Infinite bounds keep their magnitude, with the direction adjusted
// by the sign of the divisor.
func (p Bound) FloorDiv(d *big.Int) Bound {
	return p.roundedDiv(d, -1)
}

// CeilDiv divides this bound by a non-zero integer, rounding towards positive
// infinity.
func (p Bound) CeilDiv(d *big.Int) Bound {
	return p.roundedDiv(d, 1)
}

func (p Bound) roundedDiv(d *big.Int, dir int) Bound {
	if d.Sign() == 0 {
		panic("bound: division by zero")
	} else if p.sign != notAnInfinity {
		return Bound{nil, p.sign * int8(d.Sign())}
	}
	//
	var q, r big.Int
	//
	q.QuoRem(p.num(), d, &r)
	// Adjust truncated quotient when it was rounded the wrong way.
	if r.Sign() != 0 {
		exact := r.Sign() * d.Sign()
		if exact < 0 && dir < 0 {
			q.Sub(&q, big.NewInt(1))
		} else if exact > 0 && dir > 0 {
			q.Add(&q, big.NewInt(1))
		}
	}
	//
	return Bound{&q, notAnInfinity}
}

// Half divides this bound by two, rounding towards negative infinity.  This is
// the rounding required to keep upper bounds sound over the integers.
func (p Bound) Half() Bound {
	if p.sign != notAnInfinity {
		return p
	}
	//
	var val big.Int
	// Euclidean division by a positive divisor is floor division.
	return Bound{val.Div(p.num(), two), notAnInfinity}
}

// Cmp performs a comparison of two (potentially infinite) bounds, returning -1,
// 0 or 1.
func (p Bound) Cmp(o Bound) int {
	switch {
	case p.sign == notAnInfinity && o.sign == notAnInfinity:
		return p.num().Cmp(o.num())
	case p.sign < o.sign:
		return -1
	case p.sign > o.sign:
		return 1
	default:
		return 0
	}
}

// CmpInt compares this bound against a finite integer value.
func (p Bound) CmpInt(o *big.Int) int {
	if p.sign != notAnInfinity {
		return int(p.sign)
	}
	//
	return p.num().Cmp(o)
}

// Equals checks whether two bounds represent the same extended integer.
func (p Bound) Equals(o Bound) bool {
	return p.Cmp(o) == 0
}

// Less checks whether this bound is strictly below another.
func (p Bound) Less(o Bound) bool {
	return p.Cmp(o) < 0
}

// LessEq checks whether this bound is below or equal to another.
func (p Bound) LessEq(o Bound) bool {
	return p.Cmp(o) <= 0
}

// Min determines the least of two bounds.
func (p Bound) Min(o Bound) Bound {
	if o.Less(p) {
		return o
	}
	//
	return p
}

// Max determines the greatest of two bounds.
func (p Bound) Max(o Bound) Bound {
	if p.Less(o) {
		return o
	}
	//
	return p
}

// MinOf determines the least of one or more bounds.
func MinOf(first Bound, rest ...Bound) Bound {
	for _, b := range rest {
		first = first.Min(b)
	}
	//
	return first
}

// MaxOf determines the greatest of one or more bounds.
func MaxOf(first Bound, rest ...Bound) Bound {
	for _, b := range rest {
		first = first.Max(b)
	}
	//
	return first
}

func (p Bound) String() string {
	switch p.sign {
	case negativeInfinity:
		return "-oo"
	case positiveInfinity:
		return "+oo"
	default:
		return p.num().String()
	}
}
