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
	"github.com/consensys/go-octagon/pkg/util/source"
)

// Attribute parses a given line of a test file (when it matches) into an item.
// The boolean result indicates whether or not the line matched.
type Attribute[T any] func(int, []source.Line, *source.File) (bool, T, error)

// ExtractAttributes extracts the attributes given at the start of a source
// file, stopping at the first line which no attribute matches.
func ExtractAttributes[T any](srcfile *source.File, attributes ...Attribute[T]) ([]T, []error) {
	var (
		lines  = srcfile.Lines()
		items  []T
		errors []error
	)
	//
	for i := range lines {
		if !extractAttribute(i, lines, srcfile, &items, &errors, attributes) {
			break
		}
	}
	//
	return items, errors
}

func extractAttribute[T any](lineno int, lines []source.Line, srcfile *source.File, items *[]T,
	errors *[]error, attributes []Attribute[T]) bool {
	for _, attribute := range attributes {
		matched, item, err := attribute(lineno, lines, srcfile)
		//
		switch {
		case err != nil:
			*errors = append(*errors, err)
		case matched:
			*items = append(*items, item)
		default:
			continue
		}
		//
		return true
	}
	//
	return false
}
