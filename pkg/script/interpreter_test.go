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
package script

import (
	"bytes"
	"strings"
	"testing"

	"github.com/consensys/go-octagon/pkg/util/math"
	"github.com/consensys/go-octagon/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Script_Print_00(t *testing.T) {
	check_Output(t, "(top s) (set s x 0 10) (print s)", "s = {-x <= 0; x <= 10}\n")
}

func Test_Script_Print_01(t *testing.T) {
	check_Output(t, "(bottom s) (print s)", "s = _|_\n")
}

func Test_Script_Print_02(t *testing.T) {
	check_Output(t, "(top s) (constrain s (== x 5)) (print s)", "s = {x == 5}\n")
}

func Test_Script_Dbm_00(t *testing.T) {
	expected := strings.Join([]string{
		"  s | x- | x+ |",
		" x- |  0 |  0 |",
		" x+ |  2 |  0 |",
		""}, "\n")
	//
	check_Output(t, "(top s) (set s x 0 1) (dbm s)", expected)
}

func Test_Script_Dbm_01(t *testing.T) {
	check_Output(t, "(bottom s) (dbm s)", "s = _|_\n")
}

func Test_Script_Quiet(t *testing.T) {
	var buf bytes.Buffer
	//
	interpreter := NewInterpreter(&buf).Quiet(true)
	failures, err := interpreter.Execute(srcfile("(top s) (set s x 0 1) (print s) (dbm s)"))
	//
	require.Nil(t, err)
	assert.Empty(t, failures)
	assert.Empty(t, buf.String())
}

func Test_Script_Expect_00(t *testing.T) {
	check_Valid(t, `
		(top s)
		(constrain s (<= (- x y) 5) (>= (- x y) 2))
		(expect-not-bottom s)
		(expect-interval s x -oo +oo)
		(copy t s)
		(constrain t (== y 0))
		(expect-interval t x 2 5)
		(expect-leq t s)`)
}

func Test_Script_Expect_01(t *testing.T) {
	check_Valid(t, `
		(top s)
		(set s x 5 5)
		(assign s y x)
		(forget s x)
		(expect-interval s y 5 5)
		(expect-interval s x -oo +oo)`)
}

func Test_Script_Expect_02(t *testing.T) {
	check_Valid(t, `
		(top a)
		(top b)
		(constrain a (== x 0))
		(constrain b (== x 1))
		(meet m a b)
		(expect-bottom m)
		(join j a b)
		(expect-interval j x 0 1)
		(expect-leq a j)
		(expect-leq b j)`)
}

func Test_Script_Expect_03(t *testing.T) {
	check_Valid(t, `
		(top s)
		(set s x -1 1)
		(set s y 0 10)
		(apply s / z y x)
		(expect-not-bottom s)
		(expect-interval s z -oo +oo)`)
}

func Test_Script_Expect_04(t *testing.T) {
	check_Valid(t, `
		(top s)
		(assign s x y)
		(expect-top s)
		(bottom b)
		(expect-bottom b)
		(expect-leq b s)`)
}

func Test_Script_Expect_05(t *testing.T) {
	check_Valid(t, `
		(top a)
		(set a x 0 0)
		(top b)
		(set b x 1 1)
		(widen w a b)
		(expect-interval w x 0 +oo)
		(top c)
		(set c x 0 10)
		(narrow n w c)
		(expect-interval n x 0 10)
		(copy d n)
		(normalize d)
		(expect-equal d n)`)
}

func Test_Script_Apply_00(t *testing.T) {
	check_Valid(t, `
		(top s)
		(set s y 0 10)
		(apply s + z y 3)
		(expect-interval s z 3 13)
		(apply s * w y [-1 2])
		(expect-interval s w -10 20)
		(set s k 2 2)
		(apply s / v y k)
		(expect-interval s v 0 5)
		(apply s - u y [0 +oo])
		(expect-interval s u -oo 10)`)
}

func Test_Script_Apply_01(t *testing.T) {
	check_Valid(t, `
		(top s)
		(set s y 0 100)
		(set s d 5 5)
		(apply s and a y 7)
		(expect-interval s a 0 7)
		(apply s urem b y d)
		(expect-interval s b 0 4)
		(apply s sdiv c y 2)
		(expect-interval s c 0 50)
		(apply s shl e d 1)
		(expect-interval s e 10 10)`)
}

func Test_Script_Apply_02(t *testing.T) {
	check_Valid(t, `
		(top s)
		(set s y 0 0)
		(apply s / z y 0)
		(expect-bottom s)`)
}

func Test_Script_Convert_00(t *testing.T) {
	check_Valid(t, `
		(top s)
		(set s y 0 100)
		(convert s trunc x y 32 8)
		(constrain s (<= y 10))
		(expect-interval s x 0 10)
		(set s y 0 1000)
		(convert s trunc x y 32 8)
		(expect-interval s x -128 255)
		(convert s zext z -1 8 16)
		(expect-interval s z 255 255)`)
}

func Test_Script_Constrain_00(t *testing.T) {
	check_Valid(t, `
		(top s)
		(set s x 0 10)
		(set s y 0 10)
		(constrain s (<= (+ x y) 4))
		(expect-interval s x 0 4)
		(constrain s (> x 1) (< y 3) (!= x 2))
		(expect-interval s x 2 4)
		(expect-interval s y 0 2)
		(constrain s (== (* -1 x) -3))
		(expect-interval s x 3 3)`)
}

func Test_Script_Failure_00(t *testing.T) {
	failures := check_Failures(t, "(top s)\n(set s x 0 10)\n(expect-interval s x 0 5)")
	//
	require.Len(t, failures, 1)
	assert.Equal(t, "expected x in [0, 5], got [0, 10]", failures[0].Message())
	assert.Equal(t, "test.lisp:3:1: expected x in [0, 5], got [0, 10]", failures[0].Error())
}

func Test_Script_Failure_01(t *testing.T) {
	failures := check_Failures(t, `
		(top s)
		(bottom b)
		(set s x 0 1)
		(expect-bottom s)
		(expect-not-bottom b)
		(expect-top s)
		(expect-leq s b)
		(expect-equal s b)`)
	//
	messages := make([]string, len(failures))
	//
	for i, f := range failures {
		messages[i] = f.Message()
	}
	//
	assert.Equal(t, []string{
		"expected bottom, got {-x <= 0; x <= 1}",
		"expected non-bottom, got _|_",
		"expected top, got {-x <= 0; x <= 1}",
		"expected {-x <= 0; x <= 1} <= _|_",
		"expected {-x <= 0; x <= 1} == _|_",
	}, messages)
}

func Test_Script_Invalid_00(t *testing.T) {
	check_Invalid(t, "(frobnicate s)", "unknown command")
}

func Test_Script_Invalid_01(t *testing.T) {
	check_Invalid(t, "(print s)", "unknown state")
}

func Test_Script_Invalid_02(t *testing.T) {
	check_Invalid(t, "(top s) (constrain s (<= (* 2 x) 3))", "constraint is not octagonal")
}

func Test_Script_Invalid_03(t *testing.T) {
	check_Invalid(t, "(top s) (constrain s (<= (+ x y z) 3))", "constraint is not octagonal")
}

func Test_Script_Invalid_04(t *testing.T) {
	check_Invalid(t, "(top s t)", "incorrect number of arguments")
}

func Test_Script_Invalid_05(t *testing.T) {
	check_Invalid(t, "(top s) (constrain s (<= (* x y) 3))", "non-linear multiplication")
}

func Test_Script_Invalid_06(t *testing.T) {
	check_Invalid(t, "(top s) (apply s and x y [0 1])", "interval operand requires arithmetic operator")
}

func Test_Script_Invalid_07(t *testing.T) {
	check_Invalid(t, "(top s) (apply s pow x y 2)", "unknown operator")
}

func Test_Script_Invalid_08(t *testing.T) {
	check_Invalid(t, "(top s) (set s x 0 infinity)", "invalid bound")
}

func Test_Script_Invalid_09(t *testing.T) {
	check_Invalid(t, "(top s) (assign s x (+ y 1))", "expected variable or integer")
}

func Test_Script_Invalid_10(t *testing.T) {
	check_Invalid(t, "(top s) (convert s zext x y 16 8)", "invalid widths for zext")
}

func Test_Script_Invalid_11(t *testing.T) {
	check_Invalid(t, "(top s) (constrain s (=< x 3))", "unknown comparator")
}

func Test_Script_Invalid_12(t *testing.T) {
	check_Invalid(t, "(top s) (constrain s x)", "invalid constraint")
}

func Test_Script_Invalid_13(t *testing.T) {
	check_Invalid(t, "(top 1s)", "expected state name")
}

func Test_Script_Invalid_14(t *testing.T) {
	check_Invalid(t, "(top s) (set s x 0 1", "unexpected end-of-file")
}

func Test_Script_Invalid_15(t *testing.T) {
	check_Invalid(t, "top", "invalid command")
}

func Test_Script_Invalid_16(t *testing.T) {
	check_Invalid(t, "(top s) (forget s x 1)", "expected variable")
}

func Test_Script_Error(t *testing.T) {
	var buf bytes.Buffer
	//
	_, err := NewInterpreter(&buf).Execute(srcfile("(top s)\n  (print t)"))
	//
	require.NotNil(t, err)
	assert.Equal(t, "test.lisp:2:10: unknown state", err.Error())
}

func Test_Script_State(t *testing.T) {
	var buf bytes.Buffer
	//
	interpreter := NewInterpreter(&buf)
	_, err := interpreter.Execute(srcfile("(top s) (set s x 1 2)"))
	require.Nil(t, err)
	// States persist between executions
	_, err = interpreter.Execute(srcfile("(apply s + x x 1)"))
	require.Nil(t, err)
	//
	s, ok := interpreter.State("s")
	require.True(t, ok)
	assert.Equal(t, math.Range(2, 3).String(), s.Get("x").String())
	//
	_, ok = interpreter.State("t")
	assert.False(t, ok)
}

// ===================================================================
// Test Helpers
// ===================================================================

func srcfile(text string) *source.File {
	return source.NewSourceFile("test.lisp", []byte(text))
}

// Check a script produces exactly the given output, without failures.
func check_Output(t *testing.T, text string, expected string) {
	t.Helper()
	//
	var buf bytes.Buffer
	//
	failures, err := NewInterpreter(&buf).Execute(srcfile(text))
	//
	require.Nil(t, err)
	assert.Empty(t, failures)
	assert.Equal(t, expected, buf.String())
}

// Check a script executes with every expectation holding.
func check_Valid(t *testing.T, text string) {
	t.Helper()
	//
	failures := check_Failures(t, text)
	//
	for _, f := range failures {
		t.Errorf("%s", f.Error())
	}
}

// Execute a script which must be well-formed, returning its failures.
func check_Failures(t *testing.T, text string) []source.SyntaxError {
	t.Helper()
	//
	var buf bytes.Buffer
	//
	failures, err := NewInterpreter(&buf).Execute(srcfile(text))
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	//
	return failures
}

// Check a script is rejected with a given message.
func check_Invalid(t *testing.T, text string, msg string) {
	t.Helper()
	//
	var buf bytes.Buffer
	//
	_, err := NewInterpreter(&buf).Execute(srcfile(text))
	//
	if assert.NotNil(t, err, "expected error %q", msg) {
		assert.Equal(t, msg, err.Message())
	}
}
