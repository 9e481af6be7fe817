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
	"io"
	"unicode/utf8"
)

// TablePrinter is a utility for laying out a fixed-size grid of strings in
// right-aligned columns.  Cells can be individually coloured, though this is
// only emitted when escapes are enabled.
type TablePrinter struct {
	widths        []uint
	rows          [][]string
	escapes       [][]string
	enableEscapes bool
}

// NewTablePrinter constructs a table with a given number of columns and rows.
func NewTablePrinter(width uint, height uint) *TablePrinter {
	var (
		rows    = make([][]string, height)
		escapes = make([][]string, height)
	)
	//
	for i := range rows {
		rows[i] = make([]string, width)
		escapes[i] = make([]string, width)
	}
	//
	return &TablePrinter{make([]uint, width), rows, escapes, false}
}

// Width returns the number of columns in this table.
func (p *TablePrinter) Width() uint {
	return uint(len(p.widths))
}

// Height returns the number of rows in this table.
func (p *TablePrinter) Height() uint {
	return uint(len(p.rows))
}

// Set the contents of a given cell.
func (p *TablePrinter) Set(col uint, row uint, val string) {
	p.widths[col] = max(p.widths[col], length(val))
	p.rows[row][col] = val
}

// Get the contents of a given cell.
func (p *TablePrinter) Get(col uint, row uint) string {
	return p.rows[row][col]
}

// SetRow sets every cell of a given row at once.
func (p *TablePrinter) SetRow(row uint, vals ...string) {
	if len(vals) != len(p.widths) {
		panic("incorrect number of columns")
	}
	//
	for col, val := range vals {
		p.Set(uint(col), row, val)
	}
}

// SetEscape sets the escape used when printing a given cell.
func (p *TablePrinter) SetEscape(col uint, row uint, escape AnsiEscape) {
	p.escapes[row][col] = escape.Build()
}

// AnsiEscapes enables or disables the printing of escapes.  These should be
// disabled when output is not going to a terminal.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.enableEscapes = enable
}

// SetMaxWidth limits the width of a given column, such that longer cells are
// truncated.
func (p *TablePrinter) SetMaxWidth(col uint, width uint) {
	p.widths[col] = min(p.widths[col], max(width, 3))
}

// Write this table out, one line per row.
func (p *TablePrinter) Write(w io.Writer) error {
	reset := ResetAnsiEscape().Build()
	//
	for i, row := range p.rows {
		for j, cell := range row {
			var (
				width  = p.widths[j]
				escape = p.escapes[i][j]
				err    error
			)
			//
			if length(cell) > width {
				cell = string([]rune(cell)[:width-2]) + ".."
			}
			//
			if p.enableEscapes && escape != "" {
				_, err = fmt.Fprintf(w, " %s%*s%s |", escape, width, cell, reset)
			} else {
				_, err = fmt.Fprintf(w, " %*s |", width, cell)
			}
			//
			if err != nil {
				return err
			}
		}
		//
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	//
	return nil
}

func length(s string) uint {
	return uint(utf8.RuneCountInString(s))
}
