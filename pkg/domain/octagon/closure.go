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
	"github.com/consensys/go-octagon/pkg/util/math"
)

// Normalize brings this state into closed form, using the strong closure
// algorithm for octagons.  Afterwards, every entry of the matrix is the
// tightest bound implied by the matrix as a whole, and every diagonal entry is
// zero.  If the matrix is found to be unsatisfiable, this state becomes
// bottom.  This has no effect on a state which is already closed.
func (p *State[V]) Normalize() {
	if p.normalized {
		return
	}
	// A change anywhere can propagate through any pivot.
	p.dirty.InsertRange(1, p.index.size())
	//
	for k := uint(1); k <= p.index.size(); k++ {
		if p.dirty.Contains(k) {
			p.pivot(k)
			p.tightenHalves()
			p.dirty.Remove(k)
		}
	}
	// Check for negative cycles
	for i := uint(1); i <= p.dbm.Dimension(); i++ {
		if p.dbm.At(i, i).Sign() < 0 {
			p.SetToBottom()
			return
		}
		//
		p.dbm.Set(i, i, zero)
	}
	//
	p.normalized = true
}

// Route every path through the two halves of the kth variable.
func (p *State[V]) pivot(k uint) {
	var (
		m   = p.dbm
		dim = m.Dimension()
		kp  = pos(k)
		kn  = neg(k)
		// Direct path between the halves of k
		knp = m.At(kn, kp)
		kpn = m.At(kp, kn)
	)
	//
	for i := uint(1); i <= dim; i++ {
		var (
			ikn = m.At(i, kn)
			ikp = m.At(i, kp)
		)
		// Nothing to route when i cannot reach either half of k.
		if ikn.IsPosInfinity() && ikp.IsPosInfinity() {
			continue
		}
		//
		for j := uint(1); j <= dim; j++ {
			var (
				knj = m.At(kn, j)
				kpj = m.At(kp, j)
			)
			//
			m.Tighten(i, j, math.MinOf(
				add(ikp, kpj),
				add(ikn, knj),
				add(add(ikn, knp), kpj),
				add(add(ikp, kpn), knj)))
		}
	}
}

// Bound every h_i - h_j by the sum of the bounds on 2h_i and -2h_j, halved.
func (p *State[V]) tightenHalves() {
	var (
		m   = p.dbm
		dim = m.Dimension()
	)
	//
	for i := uint(1); i <= dim; i++ {
		ii := m.At(i, comp(i))
		//
		if ii.IsPosInfinity() {
			continue
		}
		//
		for j := uint(1); j <= dim; j++ {
			m.Tighten(i, j, add(ii, m.At(comp(j), j)).Half())
		}
	}
}

// Add two matrix entries.  Entries are never negative infinity, so this
// cannot combine opposite infinities.
func add(a, b math.Bound) math.Bound {
	if a.IsPosInfinity() || b.IsPosInfinity() {
		return math.PosInfinity()
	}
	//
	return a.Add(b)
}

var zero = math.NewBound(0)
