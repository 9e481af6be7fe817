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
package cmd

import (
	"bytes"
	"testing"

	"github.com/consensys/go-octagon/pkg/util/source"
	"github.com/stretchr/testify/assert"
)

func Test_PrintSyntaxError_00(t *testing.T) {
	var (
		buf     bytes.Buffer
		srcfile = source.NewSourceFile("test.lisp", []byte("(top s)\n  (print t)\n"))
		err     = srcfile.SyntaxError(source.NewSpan(17, 18), "unknown state")
	)
	//
	printSyntaxError(&buf, err, false)
	//
	assert.Equal(t, "test.lisp:2:10: unknown state\n  (print t)\n         ^\n", buf.String())
}

func Test_PrintSyntaxError_01(t *testing.T) {
	var (
		buf     bytes.Buffer
		srcfile = source.NewSourceFile("test.lisp", []byte("(set s x\n 0 1)"))
		err     = srcfile.SyntaxError(source.NewSpan(0, 14), "oops")
	)
	//
	printSyntaxError(&buf, err, false)
	// Highlight stops at the end of the first line
	assert.Equal(t, "test.lisp:1:1: oops\n(set s x\n^^^^^^^^\n", buf.String())
}

func Test_PrintSyntaxError_02(t *testing.T) {
	var (
		buf     bytes.Buffer
		srcfile = source.NewSourceFile("test.lisp", []byte("x"))
		err     = srcfile.SyntaxError(source.NewSpan(0, 1), "oops")
	)
	//
	printSyntaxError(&buf, err, true)
	//
	assert.Equal(t, "test.lisp:1:1: oops\nx\n\033[31;1m^\033[0m\n", buf.String())
}
