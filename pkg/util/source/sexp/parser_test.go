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
	"testing"

	"github.com/consensys/go-octagon/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SExp_Parse_00(t *testing.T) {
	check_Parse(t, "x", "x")
}

func Test_SExp_Parse_01(t *testing.T) {
	check_Parse(t, "()", "()")
}

func Test_SExp_Parse_02(t *testing.T) {
	check_Parse(t, "  (<= (+ x y)   10) ", "(<= (+ x y) 10)")
}

func Test_SExp_Parse_03(t *testing.T) {
	check_Parse(t, "; leading comment\n(set x 1 2) ; trailing", "(set x 1 2)")
}

func Test_SExp_Parse_04(t *testing.T) {
	check_Parse(t, "(a(b)c)", "(a (b) c)")
}

func Test_SExp_Parse_05(t *testing.T) {
	check_Parse(t, "(apply s + x y [-oo 3])", "(apply s + x y [-oo 3])")
}

func Test_SExp_Parse_06(t *testing.T) {
	term := check_Parse(t, "[0[1]]", "[0 [1]]")
	//
	require.NotNil(t, term.AsArray())
	assert.Nil(t, term.AsList())
	assert.Equal(t, 2, term.AsArray().Len())
	assert.Equal(t, "[1]", term.AsArray().Get(1).String())
}

func Test_SExp_ParseErr_00(t *testing.T) {
	check_ParseErr(t, "(x y", "unexpected end-of-file")
}

func Test_SExp_ParseErr_01(t *testing.T) {
	check_ParseErr(t, ")", "unexpected end-of-list")
}

func Test_SExp_ParseErr_02(t *testing.T) {
	check_ParseErr(t, "(x) y", "unexpected remainder")
}

func Test_SExp_ParseErr_03(t *testing.T) {
	check_ParseErr(t, "(x]", "unexpected end-of-array")
}

func Test_SExp_ParseErr_04(t *testing.T) {
	check_ParseErr(t, "[x", "unexpected end-of-file")
}

func Test_SExp_ParseAll(t *testing.T) {
	srcfile := source.NewSourceFile("test.lisp", []byte("(top)\n; skip\n(set x 0 1)\n  y"))
	terms, srcmap, err := ParseAll(srcfile)
	//
	require.Nil(t, err)
	require.Len(t, terms, 3)
	assert.Equal(t, "(top)", terms[0].String())
	assert.Equal(t, "(set x 0 1)", terms[1].String())
	assert.Equal(t, "y", terms[2].String())
	// Spans
	span := srcmap.Get(terms[1])
	assert.Equal(t, 13, span.Start())
	assert.Equal(t, 24, span.End())
	//
	line := srcfile.FindFirstEnclosingLine(span)
	assert.Equal(t, 3, line.Number())
	assert.Equal(t, "(set x 0 1)", line.String())
}

func Test_SExp_Error(t *testing.T) {
	srcfile := source.NewSourceFile("test.lisp", []byte("(top)\n(x"))
	_, _, err := ParseAll(srcfile)
	//
	require.NotNil(t, err)
	assert.Equal(t, "test.lisp:2:3: unexpected end-of-file", err.Error())
}

func Test_SExp_MatchSymbols(t *testing.T) {
	l := NewList([]SExp{NewSymbol("set"), NewSymbol("x"), NewList(nil)})
	//
	assert.True(t, l.MatchSymbols(2, "set"))
	assert.True(t, l.MatchSymbols(2, "set", "x"))
	assert.False(t, l.MatchSymbols(3, "set"))
	assert.False(t, l.MatchSymbols(1, "assign"))
	assert.Equal(t, "set", l.Head())
	assert.Equal(t, "", NewList(nil).Head())
}

func Test_SExp_Identifier(t *testing.T) {
	assert.True(t, NewSymbol("x").IsIdentifier())
	assert.True(t, NewSymbol("_tmp.1'").IsIdentifier())
	assert.False(t, NewSymbol("1x").IsIdentifier())
	assert.False(t, NewSymbol("<=").IsIdentifier())
	assert.False(t, NewSymbol("").IsIdentifier())
}

func check_Parse(t *testing.T, input string, expected string) SExp {
	term, _, err := Parse(source.NewSourceFile("test", []byte(input)))
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Message())
	} else if term.String() != expected {
		t.Errorf("expected %s, got %s", expected, term.String())
	}
	//
	return term
}

func check_ParseErr(t *testing.T, input string, msg string) {
	_, _, err := Parse(source.NewSourceFile("test", []byte(input)))
	//
	if err == nil {
		t.Errorf("expected error parsing %q", input)
	} else if err.Message() != msg {
		t.Errorf("expected error %q, got %q", msg, err.Message())
	}
}
