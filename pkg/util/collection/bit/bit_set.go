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
package bit

import (
	"fmt"
	"iter"
	"math/bits"
	"slices"
	"strings"
)

// Set provides a straightforward bitset implementation. That is, a set of
// (unsigned) integer values implemented as an array of bits.  An uninitialised
// Set is empty.
type Set struct {
	words []uint64
}

// Clone creates a true copy of this bitset which ensures no aliasing between
// this set and the result.
func (p *Set) Clone() Set {
	return Set{slices.Clone(p.words)}
}

// Insert a given value into this set.
func (p *Set) Insert(val uint) {
	word, mask := locate(val)
	//
	for uint(len(p.words)) <= word {
		p.words = append(p.words, 0)
	}
	//
	p.words[word] |= mask
}

// InsertRange inserts every value in the range first..last (inclusive).
func (p *Set) InsertRange(first uint, last uint) {
	for v := first; v <= last; v++ {
		p.Insert(v)
	}
}

// Remove a given value from this set.
func (p *Set) Remove(val uint) {
	if word, mask := locate(val); uint(len(p.words)) > word {
		p.words[word] &^= mask
	}
}

// Delete a given value from this set whilst decrementing every larger value,
// thereby closing the gap it leaves behind.
func (p *Set) Delete(val uint) {
	var nwords = make([]uint64, len(p.words))
	//
	for v := range p.All() {
		switch {
		case v < val:
			word, mask := locate(v)
			nwords[word] |= mask
		case v > val:
			word, mask := locate(v - 1)
			nwords[word] |= mask
		}
	}
	//
	p.words = nwords
}

// Clear removes all values from this set.
func (p *Set) Clear() {
	clear(p.words)
}

// Contains checks whether a given value is contained, or not.
func (p *Set) Contains(val uint) bool {
	word, mask := locate(val)
	//
	if uint(len(p.words)) <= word {
		return false
	}
	//
	return (p.words[word] & mask) != 0
}

// IsEmpty checks whether no value is contained in this set.
func (p *Set) IsEmpty() bool {
	for _, w := range p.words {
		if w != 0 {
			return false
		}
	}
	//
	return true
}

// Count returns the number of bits in the bitset which are set to one.
func (p *Set) Count() uint {
	var count uint
	//
	for _, w := range p.words {
		count += uint(bits.OnesCount64(w))
	}
	//
	return count
}

// All returns an iterator over the elements of this bitset in ascending order.
func (p *Set) All() iter.Seq[uint] {
	return func(yield func(uint) bool) {
		for i, w := range p.words {
			for w != 0 {
				bit := uint(bits.TrailingZeros64(w))
				//
				if !yield(uint(i)*64 + bit) {
					return
				}
				// Clear lowest set bit
				w &= w - 1
			}
		}
	}
}

func (p *Set) String() string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for v := range p.All() {
		if builder.Len() > 1 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(fmt.Sprintf("%d", v))
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}

func locate(val uint) (uint, uint64) {
	return val / 64, uint64(1) << (val % 64)
}
