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

	"github.com/consensys/go-octagon/pkg/domain/octagon"
	"github.com/consensys/go-octagon/pkg/linear"
	"github.com/consensys/go-octagon/pkg/util/source"
	"github.com/consensys/go-octagon/pkg/util/source/sexp"
	log "github.com/sirupsen/logrus"
)

type handler func(p *Interpreter, cmd *sexp.List, args []sexp.SExp) *source.SyntaxError

type command struct {
	// Bounds on the number of arguments, where a negative maximum indicates no
	// upper bound.
	minArgs int
	maxArgs int
	exec    handler
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"top":               {1, 1, execTop},
		"bottom":            {1, 1, execBottom},
		"copy":              {2, 2, execCopy},
		"constrain":         {1, -1, execConstrain},
		"set":               {4, 4, execSet},
		"assign":            {3, 3, execAssign},
		"apply":             {5, 5, execApply},
		"convert":           {6, 6, execConvert},
		"forget":            {1, -1, execForget},
		"normalize":         {1, 1, execNormalize},
		"join":              {3, 3, lattice((*State).Join)},
		"meet":              {3, 3, lattice((*State).Meet)},
		"widen":             {3, 3, lattice((*State).Widen)},
		"narrow":            {3, 3, lattice((*State).Narrow)},
		"print":             {1, 1, execPrint},
		"dbm":               {1, 1, execDbm},
		"expect-interval":   {4, 4, execExpectInterval},
		"expect-bottom":     {1, 1, execExpectBottom},
		"expect-not-bottom": {1, 1, execExpectNotBottom},
		"expect-top":        {1, 1, execExpectTop},
		"expect-leq":        {2, 2, execExpectLeq},
		"expect-equal":      {2, 2, execExpectEqual},
	}
}

var arithmetic = map[string]octagon.Operation{
	"+": octagon.Add,
	"-": octagon.Sub,
	"*": octagon.Mul,
	"/": octagon.Div,
}

var bitwise = map[string]octagon.BitwiseOperation{
	"and":  octagon.And,
	"or":   octagon.Or,
	"xor":  octagon.Xor,
	"shl":  octagon.Shl,
	"lshr": octagon.LShr,
	"ashr": octagon.AShr,
}

var division = map[string]octagon.DivisionOperation{
	"sdiv": octagon.SDiv,
	"udiv": octagon.UDiv,
	"srem": octagon.SRem,
	"urem": octagon.URem,
}

var conversions = map[string]octagon.ConversionOperation{
	"trunc": octagon.Trunc,
	"zext":  octagon.ZExt,
	"sext":  octagon.SExt,
}

// (top S)
func execTop(p *Interpreter, _ *sexp.List, args []sexp.SExp) *source.SyntaxError {
	return p.bind(args[0], octagon.Top[string]())
}

// (bottom S)
func execBottom(p *Interpreter, _ *sexp.List, args []sexp.SExp) *source.SyntaxError {
	return p.bind(args[0], octagon.Bottom[string]())
}

// (copy D S)
func execCopy(p *Interpreter, _ *sexp.List, args []sexp.SExp) *source.SyntaxError {
	s, err := p.state(args[1])
	if err != nil {
		return err
	}
	//
	return p.bind(args[0], s.Clone())
}

// (constrain S c1 ... cn)
func execConstrain(p *Interpreter, _ *sexp.List, args []sexp.SExp) *source.SyntaxError {
	s, err := p.state(args[0])
	if err != nil {
		return err
	}
	// Translate everything before applying anything
	system := linear.NewSystem[string]()
	//
	for _, arg := range args[1:] {
		c, err := p.constraint(arg)
		if err != nil {
			return err
		}
		//
		system.Add(c)
	}
	//
	s.AddSystem(system)
	//
	return nil
}

// (set S x lo hi)
func execSet(p *Interpreter, _ *sexp.List, args []sexp.SExp) *source.SyntaxError {
	s, err := p.state(args[0])
	if err != nil {
		return err
	}
	//
	x, err := p.variable(args[1])
	if err != nil {
		return err
	}
	//
	itv, err := p.interval(args[2], args[3])
	if err != nil {
		return err
	}
	//
	s.Set(x, itv)
	//
	return nil
}

// (assign S x e) where e is a variable or an integer
func execAssign(p *Interpreter, _ *sexp.List, args []sexp.SExp) *source.SyntaxError {
	s, err := p.state(args[0])
	if err != nil {
		return err
	}
	//
	x, err := p.variable(args[1])
	if err != nil {
		return err
	}
	//
	e, err := p.atom(args[2])
	if err != nil {
		return err
	}
	//
	s.Assign(x, e)
	//
	return nil
}

// (apply S op x y z) where z is a variable, an integer or an interval [lo hi]
func execApply(p *Interpreter, _ *sexp.List, args []sexp.SExp) *source.SyntaxError {
	s, err := p.state(args[0])
	if err != nil {
		return err
	}
	//
	op := args[1].AsSymbol()
	if op == nil {
		return p.error(args[1], "expected operator")
	}
	//
	vars, err := p.variables(args[2:4])
	if err != nil {
		return err
	}
	//
	x, y, z := vars[0], vars[1], args[4]
	// Interval operands only make sense for arithmetic
	if z.AsArray() != nil {
		aop, ok := arithmetic[op.Value]
		if !ok {
			return p.error(z, "interval operand requires arithmetic operator")
		}
		//
		itv, err := p.array(z)
		if err != nil {
			return err
		}
		//
		s.ApplyInterval(aop, x, y, itv)
		//
		return nil
	}
	//
	e, err := p.atom(z)
	if err != nil {
		return err
	}
	//
	v, isVar := e.AsVariable()
	k := e.Constant()
	//
	if aop, ok := arithmetic[op.Value]; ok && isVar {
		s.Apply(aop, x, y, v)
	} else if ok {
		s.ApplyConst(aop, x, y, k)
	} else if bop, ok := bitwise[op.Value]; ok && isVar {
		s.ApplyBitwise(bop, x, y, v)
	} else if ok {
		s.ApplyBitwiseConst(bop, x, y, k)
	} else if dop, ok := division[op.Value]; ok && isVar {
		s.ApplyDivision(dop, x, y, v)
	} else if ok {
		s.ApplyDivisionConst(dop, x, y, k)
	} else {
		return p.error(op, "unknown operator")
	}
	//
	return nil
}

// (convert S op x y from to) where y is a variable or an integer
func execConvert(p *Interpreter, _ *sexp.List, args []sexp.SExp) *source.SyntaxError {
	s, err := p.state(args[0])
	if err != nil {
		return err
	}
	//
	op, ok := conversions[symbol(args[1])]
	if !ok {
		return p.error(args[1], "unknown conversion")
	}
	//
	x, err := p.variable(args[2])
	if err != nil {
		return err
	}
	//
	y, err := p.atom(args[3])
	if err != nil {
		return err
	}
	//
	from, err := p.width(args[4])
	if err != nil {
		return err
	}
	//
	to, err := p.width(args[5])
	if err != nil {
		return err
	}
	// Truncation narrows, whilst extension widens.
	if (op == octagon.Trunc) != (from > to) || from == to {
		return p.error(args[5], fmt.Sprintf("invalid widths for %s", op.String()))
	}
	//
	if v, isVar := y.AsVariable(); isVar {
		s.ApplyConversion(op, x, v, from, to)
	} else {
		s.ApplyConversionConst(op, x, y.Constant(), from, to)
	}
	//
	return nil
}

// (forget S x1 ... xn)
func execForget(p *Interpreter, _ *sexp.List, args []sexp.SExp) *source.SyntaxError {
	s, err := p.state(args[0])
	if err != nil {
		return err
	}
	//
	vars, err := p.variables(args[1:])
	if err != nil {
		return err
	}
	//
	s.ForgetAll(vars...)
	//
	return nil
}

// (normalize S)
func execNormalize(p *Interpreter, _ *sexp.List, args []sexp.SExp) *source.SyntaxError {
	s, err := p.state(args[0])
	if err != nil {
		return err
	}
	//
	s.Normalize()
	//
	return nil
}

// (op D A B) for a binary lattice operator op
func lattice(fn func(*State, *State) *State) handler {
	return func(p *Interpreter, _ *sexp.List, args []sexp.SExp) *source.SyntaxError {
		a, err := p.state(args[1])
		if err != nil {
			return err
		}
		//
		b, err := p.state(args[2])
		if err != nil {
			return err
		}
		//
		return p.bind(args[0], fn(a, b))
	}
}

// (print S)
func execPrint(p *Interpreter, _ *sexp.List, args []sexp.SExp) *source.SyntaxError {
	s, err := p.state(args[0])
	if err != nil {
		return err
	} else if !p.quiet {
		fmt.Fprintf(p.out, "%s = %s\n", symbol(args[0]), s.String())
	}
	//
	return nil
}

// (dbm S)
func execDbm(p *Interpreter, _ *sexp.List, args []sexp.SExp) *source.SyntaxError {
	s, err := p.state(args[0])
	if err != nil {
		return err
	} else if p.quiet {
		return nil
	}
	//
	if err := writeMatrix(p.out, symbol(args[0]), s, p.colour); err != nil {
		log.Errorf("writing matrix: %s", err.Error())
	}
	//
	return nil
}

// (expect-interval S x lo hi)
func execExpectInterval(p *Interpreter, cmd *sexp.List, args []sexp.SExp) *source.SyntaxError {
	s, err := p.state(args[0])
	if err != nil {
		return err
	}
	//
	x, err := p.variable(args[1])
	if err != nil {
		return err
	}
	//
	expected, err := p.interval(args[2], args[3])
	if err != nil {
		return err
	}
	//
	if actual := s.Get(x); !actual.Equals(expected) {
		p.fail(cmd, fmt.Sprintf("expected %s in %s, got %s", x, expected.String(), actual.String()))
	}
	//
	return nil
}

// (expect-bottom S)
func execExpectBottom(p *Interpreter, cmd *sexp.List, args []sexp.SExp) *source.SyntaxError {
	s, err := p.state(args[0])
	if err != nil {
		return err
	}
	//
	if s.Normalize(); !s.IsBottom() {
		p.fail(cmd, fmt.Sprintf("expected bottom, got %s", s.String()))
	}
	//
	return nil
}

// (expect-not-bottom S)
func execExpectNotBottom(p *Interpreter, cmd *sexp.List, args []sexp.SExp) *source.SyntaxError {
	s, err := p.state(args[0])
	if err != nil {
		return err
	}
	//
	if s.Normalize(); s.IsBottom() {
		p.fail(cmd, "expected non-bottom, got _|_")
	}
	//
	return nil
}

// (expect-top S)
func execExpectTop(p *Interpreter, cmd *sexp.List, args []sexp.SExp) *source.SyntaxError {
	s, err := p.state(args[0])
	if err != nil {
		return err
	}
	// A state tracking only unconstrained variables is still top
	if !s.Leq(octagon.Top[string]()) || !octagon.Top[string]().Leq(s) {
		p.fail(cmd, fmt.Sprintf("expected top, got %s", s.String()))
	}
	//
	return nil
}

// (expect-leq A B)
func execExpectLeq(p *Interpreter, cmd *sexp.List, args []sexp.SExp) *source.SyntaxError {
	a, b, err := p.states2(args[0], args[1])
	if err != nil {
		return err
	}
	//
	if !a.Leq(b) {
		p.fail(cmd, fmt.Sprintf("expected %s <= %s", a.String(), b.String()))
	}
	//
	return nil
}

// (expect-equal A B)
func execExpectEqual(p *Interpreter, cmd *sexp.List, args []sexp.SExp) *source.SyntaxError {
	a, b, err := p.states2(args[0], args[1])
	if err != nil {
		return err
	}
	//
	if !a.Equals(b) {
		p.fail(cmd, fmt.Sprintf("expected %s == %s", a.String(), b.String()))
	}
	//
	return nil
}

func (p *Interpreter) states2(lhs sexp.SExp, rhs sexp.SExp) (*State, *State, *source.SyntaxError) {
	a, err := p.state(lhs)
	if err != nil {
		return nil, nil, err
	}
	//
	b, err := p.state(rhs)
	if err != nil {
		return nil, nil, err
	}
	//
	return a, b, nil
}

// Bind a name to a given state, replacing any existing binding.
func (p *Interpreter) bind(term sexp.SExp, s *State) *source.SyntaxError {
	name, err := p.name(term)
	if err != nil {
		return err
	}
	//
	p.states[name] = s
	//
	return nil
}

func symbol(term sexp.SExp) string {
	if sym := term.AsSymbol(); sym != nil {
		return sym.Value
	}
	//
	return ""
}
