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
)

// maxShift bounds the shift amounts which are evaluated exactly.  Larger
// (constant) shifts produce values which are never useful to track.
const maxShift = 1 << 16

// Interval provides a (possibly unbounded) range of integers, such as 0..1,
// -oo..18, etc.  An interval can be used to approximate the possible values
// that a given variable or expression could evaluate to.  The empty interval
// (bottom) is represented explicitly.  Intervals are values: none of the
// operations below modify their receiver.
type Interval struct {
	lb     Bound
	ub     Bound
	bottom bool
}

// TopInterval returns the interval which encloses all other intervals.
func TopInterval() Interval {
	return Interval{NegInfinity(), PosInfinity(), false}
}

// BottomInterval returns the empty interval.
func BottomInterval() Interval {
	return Interval{PosInfinity(), NegInfinity(), true}
}

// NewInterval creates an interval representing a given range.  If the range is
// empty (i.e. lb > ub) then the bottom interval is returned.
func NewInterval(lb Bound, ub Bound) Interval {
	if ub.Less(lb) || lb.IsPosInfinity() || ub.IsNegInfinity() {
		return BottomInterval()
	}
	//
	return Interval{lb, ub, false}
}

// Range creates an interval representing the finite range lo..hi.
func Range(lo int64, hi int64) Interval {
	return NewInterval(NewBound(lo), NewBound(hi))
}

// Singleton creates an interval containing exactly one value.
func Singleton(val int64) Interval {
	b := NewBound(val)
	return Interval{b, b, false}
}

// SingletonOf creates an interval containing exactly one (big) value.
func SingletonOf(val *big.Int) Interval {
	b := BoundOf(val)
	return Interval{b, b, false}
}

// IsBottom determines whether this is the empty interval.
func (p Interval) IsBottom() bool {
	return p.bottom
}

// IsTop determines whether this interval contains every integer.
func (p Interval) IsTop() bool {
	return !p.bottom && p.lb.IsNegInfinity() && p.ub.IsPosInfinity()
}

// IsFinite determines whether both end points of this interval are finite.
func (p Interval) IsFinite() bool {
	return !p.bottom && p.lb.IsFinite() && p.ub.IsFinite()
}

// Lb returns the lower bound of this interval.
func (p Interval) Lb() Bound {
	return p.lb
}

// Ub returns the upper bound of this interval.
func (p Interval) Ub() Bound {
	return p.ub
}

// Singleton returns the unique value contained in this interval, if this
// interval contains exactly one value.
func (p Interval) Singleton() (*big.Int, bool) {
	if p.bottom || p.lb.IsInfinite() || !p.lb.Equals(p.ub) {
		return nil, false
	}
	//
	return p.lb.Int(), true
}

// Contains checks whether a given value is contained with this interval
func (p Interval) Contains(val *big.Int) bool {
	return !p.bottom && p.lb.CmpInt(val) <= 0 && p.ub.CmpInt(val) >= 0
}

// ContainsZero checks whether zero is contained within this interval.
func (p Interval) ContainsZero() bool {
	return !p.bottom && p.lb.Sign() <= 0 && p.ub.Sign() >= 0
}

// Leq checks whether this interval is contained within the given interval.
func (p Interval) Leq(o Interval) bool {
	switch {
	case p.bottom:
		return true
	case o.bottom:
		return false
	default:
		return o.lb.LessEq(p.lb) && p.ub.LessEq(o.ub)
	}
}

// Equals checks whether two intervals contain exactly the same values.
func (p Interval) Equals(o Interval) bool {
	if p.bottom || o.bottom {
		return p.bottom == o.bottom
	}
	//
	return p.lb.Equals(o.lb) && p.ub.Equals(o.ub)
}

// Join returns the smallest interval enclosing both intervals.
func (p Interval) Join(o Interval) Interval {
	switch {
	case p.bottom:
		return o
	case o.bottom:
		return p
	default:
		return Interval{p.lb.Min(o.lb), p.ub.Max(o.ub), false}
	}
}

// Meet returns the intersection of two intervals.
func (p Interval) Meet(o Interval) Interval {
	if p.bottom || o.bottom {
		return BottomInterval()
	}
	//
	return NewInterval(p.lb.Max(o.lb), p.ub.Min(o.ub))
}

// Widen extrapolates any unstable end point of this interval to infinity.
func (p Interval) Widen(o Interval) Interval {
	switch {
	case p.bottom:
		return o
	case o.bottom:
		return p
	}
	//
	lb, ub := p.lb, p.ub
	//
	if o.lb.Less(p.lb) {
		lb = NegInfinity()
	}
	//
	if p.ub.Less(o.ub) {
		ub = PosInfinity()
	}
	//
	return Interval{lb, ub, false}
}

// Narrow refines the infinite end points of this interval using the given
// interval.
func (p Interval) Narrow(o Interval) Interval {
	if p.bottom || o.bottom {
		return BottomInterval()
	}
	//
	lb, ub := p.lb, p.ub
	//
	if lb.IsInfinite() && o.lb.IsFinite() {
		lb = o.lb
	}
	//
	if ub.IsInfinite() && o.ub.IsFinite() {
		ub = o.ub
	}
	//
	return NewInterval(lb, ub)
}

// LowerHalfLine returns the interval -oo..ub.
func (p Interval) LowerHalfLine() Interval {
	if p.bottom {
		return p
	}
	//
	return Interval{NegInfinity(), p.ub, false}
}

// UpperHalfLine returns the interval lb..+oo.
func (p Interval) UpperHalfLine() Interval {
	if p.bottom {
		return p
	}
	//
	return Interval{p.lb, PosInfinity(), false}
}

// Trim removes a given value from this interval, provided it is one of its end
// points.  Otherwise, the interval is returned unchanged.
func (p Interval) Trim(val *big.Int) Interval {
	var one = big.NewInt(1)
	//
	switch {
	case p.bottom:
		return p
	case p.lb.CmpInt(val) == 0:
		var n big.Int
		return NewInterval(BoundOf(n.Add(val, one)), p.ub)
	case p.ub.CmpInt(val) == 0:
		var n big.Int
		return NewInterval(p.lb, BoundOf(n.Sub(val, one)))
	default:
		return p
	}
}

// Neg negates this interval.
func (p Interval) Neg() Interval {
	if p.bottom {
		return p
	}
	//
	return Interval{p.ub.Neg(), p.lb.Neg(), false}
}

// Add two intervals together
func (p Interval) Add(q Interval) Interval {
	if p.bottom || q.bottom {
		return BottomInterval()
	}
	//
	return Interval{p.lb.Add(q.lb), p.ub.Add(q.ub), false}
}

// Sub subtracts another interval from this.
func (p Interval) Sub(q Interval) Interval {
	if p.bottom || q.bottom {
		return BottomInterval()
	}
	//
	return Interval{p.lb.Sub(q.ub), p.ub.Sub(q.lb), false}
}

// Mul multiplies this interval by another.
func (p Interval) Mul(q Interval) Interval {
	if p.bottom || q.bottom {
		return BottomInterval()
	}
	//
	x1 := p.lb.Mul(q.lb)
	x2 := p.lb.Mul(q.ub)
	x3 := p.ub.Mul(q.lb)
	x4 := p.ub.Mul(q.ub)
	//
	return Interval{MinOf(x1, x2, x3, x4), MaxOf(x1, x2, x3, x4), false}
}

// Div divides this interval by another, where division truncates towards zero.
// When the divisor contains zero it is split into its strictly negative and
// strictly positive parts, so that dividing by exactly zero gives bottom.
func (p Interval) Div(q Interval) Interval {
	if p.bottom || q.bottom {
		return BottomInterval()
	}
	//
	if q.ContainsZero() {
		l := NewInterval(q.lb, NewBound(-1))
		u := NewInterval(NewBound(1), q.ub)
		// Either part may be empty
		return p.divNonZero(l).Join(p.divNonZero(u))
	}
	//
	return p.divNonZero(q)
}

// divNonZero divides by an interval which does not contain zero.  Truncating
// division is monotone in the dividend for a divisor of fixed sign, hence the
// extremes are found at the corners.
func (p Interval) divNonZero(q Interval) Interval {
	if p.bottom || q.bottom {
		return BottomInterval()
	}
	//
	x1 := p.lb.Div(q.lb)
	x2 := p.lb.Div(q.ub)
	x3 := p.ub.Div(q.lb)
	x4 := p.ub.Div(q.ub)
	//
	return NewInterval(MinOf(x1, x2, x3, x4), MaxOf(x1, x2, x3, x4))
}

// UDiv computes unsigned division.  This is only precise when both operands are
// known to be non-negative, in which case it coincides with signed division.
func (p Interval) UDiv(q Interval) Interval {
	switch {
	case p.bottom || q.bottom:
		return BottomInterval()
	case p.lb.Sign() >= 0 && q.lb.Sign() >= 0:
		return p.Div(q)
	default:
		return TopInterval()
	}
}

// SRem computes the signed remainder, whose sign follows the dividend.
func (p Interval) SRem(q Interval) Interval {
	if p.bottom || q.bottom {
		return BottomInterval()
	}
	//
	n, nok := p.Singleton()
	d, dok := q.Singleton()
	//
	switch {
	case dok && d.Sign() == 0:
		return BottomInterval()
	case nok && dok:
		var r big.Int
		return SingletonOf(r.Rem(n, d))
	}
	// The sign of the divisor does not matter
	nUb := p.lb.Abs().Max(p.ub.Abs())
	dUb := q.lb.Abs().Max(q.ub.Abs())
	ub := nUb.Min(dUb.Sub(NewBound(1)))
	//
	switch {
	case p.lb.Sign() < 0 && p.ub.Sign() > 0:
		return NewInterval(ub.Neg(), ub)
	case p.lb.Sign() < 0:
		return NewInterval(ub.Neg(), NewBound(0))
	default:
		return NewInterval(NewBound(0), ub)
	}
}

// URem computes the unsigned remainder.
func (p Interval) URem(q Interval) Interval {
	if p.bottom || q.bottom {
		return BottomInterval()
	}
	//
	n, nok := p.Singleton()
	d, dok := q.Singleton()
	//
	switch {
	case dok && d.Sign() == 0:
		return BottomInterval()
	case p.lb.Sign() < 0 && q.lb.Sign() < 0:
		return TopInterval()
	case p.lb.Sign() < 0:
		return NewInterval(NewBound(0), q.ub.Sub(NewBound(1)))
	case q.lb.Sign() < 0:
		return NewInterval(NewBound(0), p.ub)
	case nok && dok:
		var r big.Int
		return SingletonOf(r.Rem(n, d))
	default:
		return NewInterval(NewBound(0), p.ub.Min(q.ub.Sub(NewBound(1))))
	}
}

// And computes the bitwise conjunction of two intervals.
func (p Interval) And(q Interval) Interval {
	if p.bottom || q.bottom {
		return BottomInterval()
	}
	//
	l, lok := p.Singleton()
	r, rok := q.Singleton()
	//
	switch {
	case lok && rok:
		var n big.Int
		return SingletonOf(n.And(l, r))
	case (lok && l.Sign() == 0) || (rok && r.Sign() == 0):
		return Singleton(0)
	case lok && l.IsInt64() && l.Int64() == -1:
		return q
	case rok && r.IsInt64() && r.Int64() == -1:
		return p
	case p.lb.Sign() >= 0 && q.lb.Sign() >= 0:
		return NewInterval(NewBound(0), p.ub.Min(q.ub))
	case p.lb.Sign() >= 0:
		return NewInterval(NewBound(0), p.ub)
	case q.lb.Sign() >= 0:
		return NewInterval(NewBound(0), q.ub)
	default:
		return TopInterval()
	}
}

// Or computes the bitwise disjunction of two intervals.
func (p Interval) Or(q Interval) Interval {
	if p.bottom || q.bottom {
		return BottomInterval()
	}
	//
	l, lok := p.Singleton()
	r, rok := q.Singleton()
	//
	switch {
	case lok && rok:
		var n big.Int
		return SingletonOf(n.Or(l, r))
	case (lok && l.IsInt64() && l.Int64() == -1) || (rok && r.IsInt64() && r.Int64() == -1):
		return Singleton(-1)
	case lok && l.Sign() == 0:
		return q
	case rok && r.Sign() == 0:
		return p
	case p.lb.Sign() >= 0 && q.lb.Sign() >= 0:
		return p.bitsUpTo(q)
	default:
		return TopInterval()
	}
}

// Xor computes the bitwise exclusive-or of two intervals.
func (p Interval) Xor(q Interval) Interval {
	if p.bottom || q.bottom {
		return BottomInterval()
	}
	//
	l, lok := p.Singleton()
	r, rok := q.Singleton()
	//
	switch {
	case lok && rok:
		var n big.Int
		return SingletonOf(n.Xor(l, r))
	case lok && l.Sign() == 0:
		return q
	case rok && r.Sign() == 0:
		return p
	case p.lb.Sign() >= 0 && q.lb.Sign() >= 0:
		return p.bitsUpTo(q)
	default:
		return TopInterval()
	}
}

// bitsUpTo returns 0..2^k-1 where k is the bit length of the largest upper bound
// of two non-negative intervals.
func (p Interval) bitsUpTo(q Interval) Interval {
	ub := p.ub.Max(q.ub)
	//
	if ub.IsInfinite() {
		return NewInterval(NewBound(0), PosInfinity())
	}
	//
	return NewInterval(NewBound(0), BoundOf(fillOnes(ub.Int())))
}

// Shl shifts this interval left by a constant amount.
func (p Interval) Shl(q Interval) Interval {
	if p.bottom || q.bottom {
		return BottomInterval()
	}
	//
	shift, ok := constantShift(q)
	if !ok {
		return TopInterval()
	}
	//
	var factor big.Int
	//
	factor.Lsh(big.NewInt(1), shift)
	//
	return p.Mul(SingletonOf(&factor))
}

// LShr shifts this interval right (logically) by a constant amount.  This is
// only precise for non-negative, bounded intervals.
func (p Interval) LShr(q Interval) Interval {
	if p.bottom || q.bottom {
		return BottomInterval()
	}
	//
	shift, ok := constantShift(q)
	if !ok || p.lb.Sign() < 0 || p.ub.IsInfinite() {
		return TopInterval()
	}
	//
	return p.shiftRight(shift)
}

// AShr shifts this interval right (arithmetically) by a constant amount.
// Arithmetic shift is floor division by a power of two, hence monotone.
func (p Interval) AShr(q Interval) Interval {
	if p.bottom || q.bottom {
		return BottomInterval()
	}
	//
	shift, ok := constantShift(q)
	if !ok {
		return TopInterval()
	}
	//
	return p.shiftRight(shift)
}

func (p Interval) shiftRight(shift uint) Interval {
	lb, ub := p.lb, p.ub
	//
	if lb.IsFinite() {
		var n big.Int
		lb = BoundOf(n.Rsh(lb.Int(), shift))
	}
	//
	if ub.IsFinite() {
		var n big.Int
		ub = BoundOf(n.Rsh(ub.Int(), shift))
	}
	//
	return NewInterval(lb, ub)
}

// Trunc truncates this interval from a given bit width into a smaller one.
func (p Interval) Trunc(from uint, to uint) Interval {
	if from <= to {
		panic("invalid trunc")
	} else if p.bottom {
		return p
	}
	//
	unsignedMax, signedMin := widthBounds(to)
	//
	if n, ok := p.Singleton(); ok {
		var r big.Int
		return SingletonOf(r.And(n, unsignedMax))
	} else if p.lb.CmpInt(signedMin) >= 0 && p.ub.CmpInt(unsignedMax) <= 0 {
		return p
	}
	//
	return NewInterval(BoundOf(signedMin), BoundOf(unsignedMax))
}

// ZExt zero-extends this interval from a given bit width into a larger one.
func (p Interval) ZExt(from uint, to uint) Interval {
	if from >= to {
		panic("invalid zext")
	} else if p.bottom {
		return p
	}
	//
	unsignedMax, signedMin := widthBounds(from)
	//
	switch {
	case p.lb.Sign() >= 0 && p.ub.CmpInt(unsignedMax) <= 0:
		return p
	case p.lb.CmpInt(signedMin) >= 0 && p.ub.Sign() < 0:
		var offset big.Int
		//
		offset.Lsh(big.NewInt(1), from)
		//
		return p.Add(SingletonOf(&offset))
	default:
		return NewInterval(NewBound(0), BoundOf(unsignedMax))
	}
}

// SExt sign-extends this interval from a given bit width into a larger one.
func (p Interval) SExt(from uint, to uint) Interval {
	if from >= to {
		panic("invalid sext")
	} else if p.bottom {
		return p
	}
	//
	unsignedMax, signedMin := widthBounds(from)
	//
	if p.lb.CmpInt(signedMin) >= 0 && p.ub.CmpInt(unsignedMax) <= 0 {
		return p
	}
	//
	return NewInterval(BoundOf(signedMin), BoundOf(unsignedMax))
}

func (p Interval) String() string {
	if p.bottom {
		return "_|_"
	}
	//
	return fmt.Sprintf("[%s, %s]", p.lb.String(), p.ub.String())
}

// constantShift extracts a usable shift amount from a singleton interval.
func constantShift(q Interval) (uint, bool) {
	s, ok := q.Singleton()
	if !ok || s.Sign() < 0 || !s.IsInt64() || s.Int64() > maxShift {
		return 0, false
	}
	//
	return uint(s.Int64()), true
}

// widthBounds returns 2^w-1 and -2^(w-1) for a given bit width w.
func widthBounds(width uint) (*big.Int, *big.Int) {
	var unsignedMax, signedMin big.Int
	//
	unsignedMax.Lsh(big.NewInt(1), width)
	unsignedMax.Sub(&unsignedMax, big.NewInt(1))
	signedMin.Lsh(big.NewInt(1), width-1)
	signedMin.Neg(&signedMin)
	//
	return &unsignedMax, &signedMin
}

// fillOnes returns the smallest value of the form 2^k-1 which is at least n,
// for n >= 0.
func fillOnes(n *big.Int) *big.Int {
	var r big.Int
	//
	r.Lsh(big.NewInt(1), uint(n.BitLen()))
	//
	return r.Sub(&r, big.NewInt(1))
}
