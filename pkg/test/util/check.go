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
package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/consensys/go-octagon/pkg/script"
	"github.com/consensys/go-octagon/pkg/util/source"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the octagon test scripts are found.
const TestDir = "../../testdata"

// CheckScript executes a given test script, checking that exactly the errors
// and failures which it declares arise.  A script declaring none must execute
// cleanly.
func CheckScript(t *testing.T, test string) {
	var filename = fmt.Sprintf("%s/%s.lisp", TestDir, test)
	// Enable testing each script in parallel
	t.Parallel()
	//
	srcfile := readSourceFile(t, filename)
	//
	expected, errs := ExtractAttributes(srcfile, ExpectedError, ExpectedFailure)
	if len(errs) > 0 {
		// Report any errors encountered parsing the attributes themselves.
		t.Fatal(errors.Join(errs...))
	}
	//
	failures, err := script.NewInterpreter(io.Discard).Execute(srcfile)
	//
	var actual []Expected
	//
	for _, f := range failures {
		actual = append(actual, Expected{false, f})
	}
	//
	if err != nil {
		actual = append(actual, Expected{true, *err})
	}
	//
	checkExpected(t, srcfile, actual, expected)
}

func checkExpected(t *testing.T, srcfile *source.File, actual, expected []Expected) {
	var (
		msg      strings.Builder
		mismatch = false
	)
	//
	for i := 0; i < max(len(actual), len(expected)); i++ {
		if i < len(actual) && i < len(expected) && same(actual[i], expected[i]) {
			continue
		}
		//
		mismatch = true
		//
		if i < len(actual) {
			fmt.Fprintf(&msg, " unexpected %s %s\n", kind(actual[i]), describe(actual[i].Report))
		}
		//
		if i < len(expected) {
			fmt.Fprintf(&msg, "   expected %s %s\n", kind(expected[i]), describe(expected[i].Report))
		}
	}
	//
	if mismatch {
		t.Fatalf("Error %s\n%s", srcfile.Filename(), msg.String())
	}
}

func same(actual Expected, expected Expected) bool {
	return actual.Error == expected.Error &&
		actual.Report.Message() == expected.Report.Message() &&
		actual.Report.Span() == expected.Report.Span()
}

func kind(e Expected) string {
	if e.Error {
		return "error"
	}
	//
	return "failure"
}

func readSourceFile(t *testing.T, filename string) *source.File {
	bytes, err := os.ReadFile(filename)
	// Check test file read ok
	if err != nil {
		t.Fatal(err)
	}
	//
	return source.NewSourceFile(filename, bytes)
}
