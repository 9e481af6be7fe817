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
	"fmt"
	"strconv"
	"strings"

	"github.com/consensys/go-octagon/pkg/util/source"
)

// Expected is an outcome which a test script declares in advance, namely a
// syntax error (";;error:X:Y-Z:msg") or a failed expectation
// (";;fail:X:Y-Z:msg").  Here X is a line number, whilst Y-Z is a column
// range on that line.
type Expected struct {
	// Indicates a syntax error, rather than a failure
	Error bool
	// The error or failure itself
	Report source.SyntaxError
}

// ExpectedError matches a ";;error" attribute.
func ExpectedError(lineno int, lines []source.Line, srcfile *source.File) (bool, Expected, error) {
	return extractExpected(";;error", true, lines[lineno], lines, srcfile)
}

// ExpectedFailure matches a ";;fail" attribute.
func ExpectedFailure(lineno int, lines []source.Line, srcfile *source.File) (bool, Expected, error) {
	return extractExpected(";;fail", false, lines[lineno], lines, srcfile)
}

func extractExpected(prefix string, isError bool, line source.Line, lines []source.Line,
	srcfile *source.File) (bool, Expected, error) {
	var contents = line.String()
	//
	if !strings.HasPrefix(contents, prefix+":") {
		return false, Expected{}, nil
	}
	//
	splits := strings.SplitN(contents, ":", 4)
	if len(splits) < 4 {
		return true, Expected{}, fmt.Errorf("malformed attribute \"%s\", should be e.g. \"%s:X:Y-Z:msg\"",
			contents, prefix)
	}
	//
	span, err := parseSpan(splits[1], splits[2], lines)
	if err != nil {
		return true, Expected{}, err
	}
	//
	return true, Expected{isError, *srcfile.SyntaxError(span, splits[3])}, nil
}

// Parse a line number and column range into a span of the file.
func parseSpan(lineStr string, colStr string, lines []source.Line) (source.Span, error) {
	lineno, err := strconv.Atoi(lineStr)
	if err != nil || lineno < 1 || lineno > len(lines) {
		return source.Span{}, fmt.Errorf("invalid line \"%s\"", lineStr)
	}
	//
	cols := strings.Split(colStr, "-")
	if len(cols) != 2 {
		return source.Span{}, fmt.Errorf("invalid columns \"%s\" (should be Y-Z)", colStr)
	}
	//
	start, err1 := strconv.Atoi(cols[0])
	end, err2 := strconv.Atoi(cols[1])
	//
	line := lines[lineno-1]
	// Columns are numbered from 1
	if err1 != nil || err2 != nil || start < 1 || end < start || end-1 > line.Length() {
		return source.Span{}, fmt.Errorf("invalid columns \"%s\" for line %d", colStr, lineno)
	}
	//
	return source.NewSpan(line.Start()+start-1, line.Start()+end-1), nil
}

// Describe an error or failure for reporting.
func describe(err source.SyntaxError) string {
	var (
		span   = err.Span()
		line   = err.FirstEnclosingLine()
		offset = span.Start() - line.Start()
		length = min(line.Length()-offset, span.Length())
	)
	//
	return fmt.Sprintf("%d:%d-%d:%s", line.Number(), 1+offset, 1+offset+length, err.Message())
}
