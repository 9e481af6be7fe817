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
package sexp

import (
	"unicode"

	"github.com/consensys/go-octagon/pkg/util/source"
)

// Parse a given source file into exactly one S-expression, or return an error
// if the file is malformed.  A source map is also returned for reporting
// errors against the original text.
func Parse(srcfile *source.File) (SExp, *source.Map[SExp], *source.SyntaxError) {
	p := NewParser(srcfile)
	//
	term, err := p.Parse()
	//
	if err != nil {
		return nil, nil, err
	} else if term == nil {
		return nil, nil, p.error("unexpected end-of-file")
	}
	//
	p.SkipWhiteSpace()
	// Sanity check everything was parsed
	if p.index != len(p.text) {
		return nil, nil, p.error("unexpected remainder")
	}
	//
	return term, p.srcmap, nil
}

// ParseAll converts a given source file into zero or more S-expressions,
// stopping only at the end of the file or at the first malformed term.
func ParseAll(srcfile *source.File) ([]SExp, *source.Map[SExp], *source.SyntaxError) {
	var (
		p     = NewParser(srcfile)
		terms []SExp
	)
	//
	for {
		term, err := p.Parse()
		//
		if err != nil {
			return terms, p.srcmap, err
		} else if term == nil {
			return terms, p.srcmap, nil
		}
		//
		terms = append(terms, term)
	}
}

// Parser holds the state of a parse which is in progress over a given file.
type Parser struct {
	// Source file being parsed
	srcfile *source.File
	// Contents of the source file
	text []rune
	// Current position within text
	index int
	// Spans of every S-Expression constructed so far.
	srcmap *source.Map[SExp]
}

// NewParser constructs a new parser positioned at the start of a given file.
func NewParser(srcfile *source.File) *Parser {
	return &Parser{
		srcfile: srcfile,
		text:    srcfile.Contents(),
		index:   0,
		srcmap:  source.NewSourceMap[SExp](srcfile),
	}
}

// SourceMap returns the source map constructed during parsing.
func (p *Parser) SourceMap() *source.Map[SExp] {
	return p.srcmap
}

// Parse the next S-Expression, returning nil (without an error) when the end
// of the file is reached.
func (p *Parser) Parse() (SExp, *source.SyntaxError) {
	var term SExp
	// Skip whitespace first so the recorded span starts at the term itself.
	p.SkipWhiteSpace()
	//
	start := p.index
	//
	if p.index == len(p.text) {
		return nil, nil
	}
	//
	switch p.text[p.index] {
	case ')':
		return nil, p.error("unexpected end-of-list")
	case ']':
		return nil, p.error("unexpected end-of-array")
	case '(':
		p.index++
		//
		elements, err := p.parseSequence(')')
		if err != nil {
			return nil, err
		}
		//
		term = &List{elements}
	case '[':
		p.index++
		//
		elements, err := p.parseSequence(']')
		if err != nil {
			return nil, err
		}
		//
		term = &Array{elements}
	default:
		term = &Symbol{p.parseSymbol()}
	}
	//
	p.srcmap.Put(term, source.NewSpan(start, p.index))
	//
	return term, nil
}

// SkipWhiteSpace skips over any whitespace, including line comments which
// begin with ';'.
func (p *Parser) SkipWhiteSpace() {
	for p.index < len(p.text) {
		switch c := p.text[p.index]; {
		case c == ';':
			for p.index < len(p.text) && p.text[p.index] != '\n' {
				p.index++
			}
		case unicode.IsSpace(c):
			p.index++
		default:
			return
		}
	}
}

// Parse the elements of a list or array whose opening bracket has already been
// consumed, up to and including the closing bracket.
func (p *Parser) parseSequence(closing rune) ([]SExp, *source.SyntaxError) {
	var elements []SExp
	//
	for {
		p.SkipWhiteSpace()
		//
		if p.index == len(p.text) {
			return nil, p.error("unexpected end-of-file")
		} else if p.text[p.index] == closing {
			p.index++
			return elements, nil
		}
		//
		element, err := p.Parse()
		if err != nil {
			return nil, err
		}
		//
		elements = append(elements, element)
	}
}

func (p *Parser) parseSymbol() string {
	end := p.index
	//
	for end < len(p.text) {
		if c := p.text[end]; isBracket(c) || c == ';' || unicode.IsSpace(c) {
			break
		}
		//
		end++
	}
	//
	token := string(p.text[p.index:end])
	p.index = end
	//
	return token
}

// Construct a parser error at the current position in the input stream.
func (p *Parser) error(msg string) *source.SyntaxError {
	end := min(p.index+1, len(p.text))
	start := min(p.index, end)
	//
	return p.srcfile.SyntaxError(source.NewSpan(start, end), msg)
}

func isBracket(c rune) bool {
	return c == '(' || c == ')' || c == '[' || c == ']'
}
