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
	"fmt"
	"io"

	"github.com/consensys/go-octagon/pkg/domain/octagon"
	"github.com/consensys/go-octagon/pkg/util/termio"
)

// Write the raw matrix of a state as a table, where each row and column is
// labelled with the variable half it represents.  The matrix is written as is,
// without being closed first.
func writeMatrix(w io.Writer, name string, s *State, colour bool) error {
	if s.IsBottom() {
		_, err := fmt.Fprintf(w, "%s = _|_\n", name)
		return err
	}
	//
	var (
		m, vars = s.Matrix()
		dim     = m.Dimension()
		labels  = make([]string, dim+1)
		tp      = termio.NewTablePrinter(dim+1, dim+1)
		header  = termio.NewAnsiEscape().Bold()
		finite  = termio.NewAnsiEscape().FgColour(termio.Cyan)
	)
	//
	for k, v := range vars {
		slot := uint(k + 1)
		labels[octagon.HalfIndex(slot, octagon.Negative)] = fmt.Sprintf("%s-", v)
		labels[octagon.HalfIndex(slot, octagon.Positive)] = fmt.Sprintf("%s+", v)
	}
	//
	tp.AnsiEscapes(colour)
	tp.Set(0, 0, name)
	tp.SetEscape(0, 0, header)
	//
	for i := uint(1); i <= dim; i++ {
		tp.Set(i, 0, labels[i])
		tp.SetEscape(i, 0, header)
		tp.Set(0, i, labels[i])
		tp.SetEscape(0, i, header)
		//
		for j := uint(1); j <= dim; j++ {
			entry := m.At(i, j)
			tp.Set(j, i, entry.String())
			//
			if i != j && entry.IsFinite() {
				tp.SetEscape(j, i, finite)
			}
		}
	}
	//
	return tp.Write(w)
}
