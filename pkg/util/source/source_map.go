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
package source

// Span represents a contiguous slice of the original text.  Rather than
// holding a string slice, the physical indices are retained so that the
// enclosing line can be determined when reporting errors.
type Span struct {
	// The first character of this span in the original text.
	start int
	// One past the final character of this span in the original text.
	end int
}

// NewSpan constructs a new span whilst checking the internal invariants are
// maintained.
func NewSpan(start int, end int) Span {
	if start > end {
		panic("invalid span")
	}

	return Span{start, end}
}

// Start returns the starting index of this span in the original text.
func (p Span) Start() int {
	return p.start
}

// End returns one past the last index of this span in the original text.
func (p Span) End() int {
	return p.end
}

// Length returns the number of characters covered by this span.
func (p Span) Length() int {
	return p.end - p.start
}

// Map records the span of each node of some parsed representation (e.g. an
// S-Expression) within a single source file.  This is what allows errors
// arising on a node long after parsing to be reported against the text it came
// from.
type Map[T comparable] struct {
	// Maps a given AST node to its span in the source file.
	mapping map[T]Span
	// Source file being mapped
	srcfile *File
}

// NewSourceMap constructs an initially empty source map for a given file.
func NewSourceMap[T comparable](srcfile *File) *Map[T] {
	return &Map[T]{make(map[T]Span), srcfile}
}

// Source returns the file covered by this source map.
func (p *Map[T]) Source() *File {
	return p.srcfile
}

// Put registers a new AST item with a given span.  Registering the same item
// twice is a programming error.
func (p *Map[T]) Put(item T, span Span) {
	if _, ok := p.mapping[item]; ok {
		panic("source map key already exists")
	}
	//
	p.mapping[item] = span
}

// Has checks whether a given item is contained within this source map.
func (p *Map[T]) Has(item T) bool {
	_, ok := p.mapping[item]
	return ok
}

// Get determines the span associated with a given AST item.
func (p *Map[T]) Get(item T) Span {
	if s, ok := p.mapping[item]; ok {
		return s
	}
	//
	panic("invalid source map key")
}

// SyntaxError constructs a syntax error reported against the span of a given
// node.
func (p *Map[T]) SyntaxError(item T, msg string) *SyntaxError {
	return p.srcfile.SyntaxError(p.Get(item), msg)
}
