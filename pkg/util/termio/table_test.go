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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Table_00(t *testing.T) {
	var buf bytes.Buffer
	//
	tp := NewTablePrinter(2, 2)
	tp.SetRow(0, "a", "bb")
	tp.SetRow(1, "ccc", "d")
	//
	require.NoError(t, tp.Write(&buf))
	assert.Equal(t, "   a | bb |\n ccc |  d |\n", buf.String())
}

func Test_Table_01(t *testing.T) {
	var buf bytes.Buffer
	//
	tp := NewTablePrinter(1, 1)
	tp.Set(0, 0, "abcdefgh")
	tp.SetMaxWidth(0, 5)
	//
	require.NoError(t, tp.Write(&buf))
	assert.Equal(t, " abc.. |\n", buf.String())
	assert.Equal(t, "abcdefgh", tp.Get(0, 0))
}

func Test_Table_02(t *testing.T) {
	var buf bytes.Buffer
	//
	tp := NewTablePrinter(1, 1)
	tp.Set(0, 0, "x")
	tp.SetEscape(0, 0, NewAnsiEscape().FgColour(Red))
	// Escapes disabled by default
	require.NoError(t, tp.Write(&buf))
	assert.Equal(t, " x |\n", buf.String())
	//
	buf.Reset()
	tp.AnsiEscapes(true)
	require.NoError(t, tp.Write(&buf))
	assert.Equal(t, " \033[31mx\033[0m |\n", buf.String())
}

func Test_Table_03(t *testing.T) {
	tp := NewTablePrinter(3, 2)
	//
	assert.Equal(t, uint(3), tp.Width())
	assert.Equal(t, uint(2), tp.Height())
	assert.Panics(t, func() { tp.SetRow(0, "a") })
}

func Test_AnsiEscape(t *testing.T) {
	assert.Equal(t, "\033[0m", ResetAnsiEscape().Build())
	assert.Equal(t, "\033[1;32m", NewAnsiEscape().Bold().FgColour(Green).Build())
	assert.Equal(t, "\033[4;44m", NewAnsiEscape().Underline().BgColour(Blue).Build())
}

func Test_IsTerminal(t *testing.T) {
	var buf bytes.Buffer
	//
	assert.False(t, IsTerminal(&buf))
}
