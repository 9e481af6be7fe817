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
package termio

import (
	"fmt"
	"strings"
)

// Colour identifies one of the eight standard ANSI terminal colours.
type Colour uint

const (
	// Black (ANSI colour 0)
	Black Colour = iota
	// Red (ANSI colour 1)
	Red
	// Green (ANSI colour 2)
	Green
	// Yellow (ANSI colour 3)
	Yellow
	// Blue (ANSI colour 4)
	Blue
	// Magenta (ANSI colour 5)
	Magenta
	// Cyan (ANSI colour 6)
	Cyan
	// White (ANSI colour 7)
	White
)

// AnsiEscape is a builder for "select graphic rendition" escape sequences,
// such as "\033[1;31m" (bold red).
type AnsiEscape struct {
	params []string
}

// NewAnsiEscape constructs an escape with no attributes.
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{nil}
}

// ResetAnsiEscape returns an escape which clears all attributes.
func ResetAnsiEscape() AnsiEscape {
	return AnsiEscape{[]string{"0"}}
}

// Bold adds the bold attribute to this escape.
func (p AnsiEscape) Bold() AnsiEscape {
	return p.with("1")
}

// Underline adds the underline attribute to this escape.
func (p AnsiEscape) Underline() AnsiEscape {
	return p.with("4")
}

// FgColour sets the foreground colour.
func (p AnsiEscape) FgColour(col Colour) AnsiEscape {
	return p.with(fmt.Sprintf("%d", 30+col))
}

// BgColour sets the background colour.
func (p AnsiEscape) BgColour(col Colour) AnsiEscape {
	return p.with(fmt.Sprintf("%d", 40+col))
}

// Build the escape sequence as a string.
func (p AnsiEscape) Build() string {
	return fmt.Sprintf("\033[%sm", strings.Join(p.params, ";"))
}

func (p AnsiEscape) with(param string) AnsiEscape {
	params := make([]string, len(p.params), len(p.params)+1)
	copy(params, p.params)
	//
	return AnsiEscape{append(params, param)}
}
