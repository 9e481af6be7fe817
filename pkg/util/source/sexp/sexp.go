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
package sexp

import (
	"strings"
	"unicode"
)

// SExp is an S-Expression is either a List of zero or more S-Expressions, an
// Array of zero or more S-Expressions, or a Symbol.
type SExp interface {
	// AsArray checks whether this S-Expression is an array and, if so, returns
	// it.  Otherwise, it returns nil.
	AsArray() *Array
	// AsList checks whether this S-Expression is a list and, if so, returns it.
	// Otherwise, it returns nil.
	AsList() *List
	// AsSymbol checks whether this S-Expression is a symbol and, if so, returns
	// it.  Otherwise, it returns nil.
	AsSymbol() *Symbol
	// String generates a string representation.
	String() string
}

// ===================================================================
// List
// ===================================================================

// List represents a list of zero or more S-Expressions.
type List struct {
	Elements []SExp
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ SExp = (*List)(nil)

// NewList creates a new list from a given array of S-Expressions.
func NewList(elements []SExp) *List {
	return &List{elements}
}

// AsArray returns nil for a list.
func (l *List) AsArray() *Array { return nil }

// AsList returns the given list.
func (l *List) AsList() *List { return l }

// AsSymbol returns nil for a list.
func (l *List) AsSymbol() *Symbol { return nil }

// Len gets the number of elements in this list.
func (l *List) Len() int { return len(l.Elements) }

// Get the ith element of this list
func (l *List) Get(i int) SExp { return l.Elements[i] }

// Head returns the symbol at the front of this list, or the empty string if
// the list is empty or starts with a nested list.
func (l *List) Head() string {
	if len(l.Elements) > 0 {
		if s := l.Elements[0].AsSymbol(); s != nil {
			return s.Value
		}
	}
	//
	return ""
}

func (l *List) String() string {
	var sb strings.Builder
	//
	sb.WriteString("(")
	//
	for i, e := range l.Elements {
		if i != 0 {
			sb.WriteString(" ")
		}
		//
		sb.WriteString(e.String())
	}
	//
	sb.WriteString(")")
	//
	return sb.String()
}

// ===================================================================
// Array
// ===================================================================

// Array represents a bracketed sequence of zero or more S-Expressions, such as
// "[0 10]".
type Array struct {
	Elements []SExp
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ SExp = (*Array)(nil)

// NewArray creates a new Array from a given array of S-Expressions.
func NewArray(elements []SExp) *Array {
	return &Array{elements}
}

// AsArray returns the given array.
func (a *Array) AsArray() *Array { return a }

// AsList returns nil for an array.
func (a *Array) AsList() *List { return nil }

// AsSymbol returns nil for an array.
func (a *Array) AsSymbol() *Symbol { return nil }

// Len gets the number of elements in this array.
func (a *Array) Len() int { return len(a.Elements) }

// Get the ith element of this array.
func (a *Array) Get(i int) SExp { return a.Elements[i] }

func (a *Array) String() string {
	var sb strings.Builder
	//
	sb.WriteString("[")
	//
	for i, e := range a.Elements {
		if i != 0 {
			sb.WriteString(" ")
		}
		//
		sb.WriteString(e.String())
	}
	//
	sb.WriteString("]")
	//
	return sb.String()
}

// MatchSymbols matches a list which starts with at least n symbols, of which
// the first m match the given strings.
func (l *List) MatchSymbols(n int, symbols ...string) bool {
	if len(l.Elements) < n || len(symbols) > n {
		return false
	}
	//
	for i := 0; i < n; i++ {
		s := l.Elements[i].AsSymbol()
		if s == nil || (i < len(symbols) && s.Value != symbols[i]) {
			return false
		}
	}
	//
	return true
}

// ===================================================================
// Symbol
// ===================================================================

// Symbol represents a terminating symbol.
type Symbol struct {
	Value string
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ SExp = (*Symbol)(nil)

// NewSymbol creates a new symbol from a given string.
func NewSymbol(value string) *Symbol {
	return &Symbol{value}
}

// AsArray returns nil for a symbol.
func (s *Symbol) AsArray() *Array { return nil }

// AsList returns nil for a symbol.
func (s *Symbol) AsList() *List { return nil }

// AsSymbol returns the given symbol
func (s *Symbol) AsSymbol() *Symbol { return s }

func (s *Symbol) String() string { return s.Value }

// IsIdentifier checks whether this symbol could name a variable, meaning it
// starts with a letter or underscore and continues with letters, digits,
// underscores, dots or primes.
func (s *Symbol) IsIdentifier() bool {
	for i, c := range s.Value {
		switch {
		case unicode.IsLetter(c) || c == '_':
			continue
		case i > 0 && (unicode.IsDigit(c) || c == '.' || c == '\''):
			continue
		default:
			return false
		}
	}
	//
	return len(s.Value) > 0
}
