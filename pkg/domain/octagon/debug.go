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
package octagon

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Log writes the internal representation of this state at debug level, namely
// which variable halves occupy each matrix index followed by each row of the
// matrix.  Nothing is written unless the logger has debug level enabled.
func (p *State[V]) Log(logger log.FieldLogger) {
	var entry = logger.WithField("normalized", p.normalized)
	//
	if p.bottom {
		entry.Debug("octagon is bottom")
		return
	}
	//
	entry.WithField("dirty", p.dirty.String()).Debugf("octagon slots: %s", p.slotString())
	//
	for i := uint(1); i <= p.dbm.Dimension(); i++ {
		entry.Debugf("M[%d,*] = %s", i, p.rowString(i))
	}
}

// Describe the half occupying each matrix index, such as "x- -> 1; x+ -> 2".
func (p *State[V]) slotString() string {
	var sb strings.Builder
	//
	sb.WriteString("{")
	//
	for k := uint(1); k <= p.index.size(); k++ {
		if k != 1 {
			sb.WriteString(";")
		}
		//
		v := p.index.variable(k)
		fmt.Fprintf(&sb, "%v- -> %d;%v+ -> %d", v, neg(k), v, pos(k))
	}
	//
	sb.WriteString("}")
	//
	return sb.String()
}

func (p *State[V]) rowString(i uint) string {
	var sb strings.Builder
	//
	for j := uint(1); j <= p.dbm.Dimension(); j++ {
		if j != 1 {
			sb.WriteString(" ")
		}
		//
		sb.WriteString(p.dbm.At(i, j).String())
	}
	//
	return sb.String()
}
