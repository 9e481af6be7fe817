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
	"io"

	"github.com/consensys/go-octagon/pkg/domain/octagon"
	"github.com/consensys/go-octagon/pkg/util/source"
	"github.com/consensys/go-octagon/pkg/util/source/sexp"
	log "github.com/sirupsen/logrus"
)

// State is an octagon over named variables.
type State = octagon.State[string]

// Interpreter executes scripts of commands over a set of named octagon states.
// States persist across executions, such that a script can be split over
// several files.
type Interpreter struct {
	translator
	// Named states
	states map[string]*State
	// Output for print and dbm commands
	out io.Writer
	// Suppress all output
	quiet bool
	// Enable ANSI escapes in output
	colour bool
	// Failed expectations of the current execution
	failures []source.SyntaxError
}

// NewInterpreter constructs an interpreter with no states, which writes
// output to a given writer.
func NewInterpreter(out io.Writer) *Interpreter {
	return &Interpreter{
		states: make(map[string]*State),
		out:    out,
	}
}

// Quiet determines whether or not the output of print and dbm commands is
// suppressed.
func (p *Interpreter) Quiet(flag bool) *Interpreter {
	p.quiet = flag
	return p
}

// Colour determines whether or not ANSI escapes are used in output.
func (p *Interpreter) Colour(flag bool) *Interpreter {
	p.colour = flag
	return p
}

// State returns the state bound to a given name, if any.
func (p *Interpreter) State(name string) (*State, bool) {
	s, ok := p.states[name]
	return s, ok
}

// Execute every command of a given script in order.  Expectations which do
// not hold are returned as failures, each reported against the offending
// command.  Execution stops at the first malformed command, which is returned
// as an error.
func (p *Interpreter) Execute(srcfile *source.File) ([]source.SyntaxError, *source.SyntaxError) {
	terms, srcmap, err := sexp.ParseAll(srcfile)
	//
	if err != nil {
		return nil, err
	}
	//
	p.srcmap = srcmap
	p.failures = nil
	//
	for _, term := range terms {
		if err := p.execute(term); err != nil {
			return p.failures, err
		}
	}
	//
	return p.failures, nil
}

func (p *Interpreter) execute(term sexp.SExp) (err *source.SyntaxError) {
	list := term.AsList()
	//
	if list == nil || list.Len() == 0 || list.Get(0).AsSymbol() == nil {
		return p.error(term, "invalid command")
	}
	//
	cmd, ok := commands[list.Head()]
	//
	switch {
	case !ok:
		return p.error(list.Get(0), "unknown command")
	case list.Len()-1 < cmd.minArgs || (cmd.maxArgs >= 0 && list.Len()-1 > cmd.maxArgs):
		return p.error(term, "incorrect number of arguments")
	}
	//
	if log.IsLevelEnabled(log.DebugLevel) {
		line := p.srcmap.Source().FindFirstEnclosingLine(p.srcmap.Get(term))
		log.WithField("line", line.Number()).Debug(term.String())
	}
	// Catch anything which slipped past validation
	defer func() {
		if r := recover(); r != nil {
			cerr, ok := r.(*octagon.ContractError)
			if !ok {
				panic(r)
			}
			//
			err = p.error(term, cerr.Error())
		}
	}()
	//
	return cmd.exec(p, list, list.Elements[1:])
}

// Lookup the state bound to a given name.
func (p *Interpreter) state(term sexp.SExp) (*State, *source.SyntaxError) {
	name, err := p.name(term)
	if err != nil {
		return nil, err
	}
	//
	if s, ok := p.states[name]; ok {
		return s, nil
	}
	//
	return nil, p.error(term, "unknown state")
}

func (p *Interpreter) name(term sexp.SExp) (string, *source.SyntaxError) {
	if sym := term.AsSymbol(); sym != nil && sym.IsIdentifier() {
		return sym.Value, nil
	}
	//
	return "", p.error(term, "expected state name")
}

// Record a failed expectation.
func (p *Interpreter) fail(term sexp.SExp, msg string) {
	log.Debugf("expectation failed: %s", msg)
	p.failures = append(p.failures, *p.error(term, msg))
}
