// Copyright 2025 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package iface

import (
	"errors"
	"fmt"
)

// The human-readable grammar accepted by the parser:
//
//	function <name>(<type>{,<type>}*) [external|public|view|pure|payable]* [returns (<type>{,<type>}*)]?
//	constructor(<type>{,<type>}*) [payable]?
//
// Whitespace is allowed between tokens. Any other line is rejected.
// 可读签名语法如上，token 之间允许空白，其它形式一律拒绝。

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentifierSymbol(c byte) bool {
	return c == '$' || c == '_'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// lineScanner walks a single signature line.
type lineScanner struct {
	input string
	pos   int
}

func (s *lineScanner) skipSpace() {
	for s.pos < len(s.input) && isSpace(s.input[s.pos]) {
		s.pos++
	}
}

func (s *lineScanner) done() bool {
	s.skipSpace()
	return s.pos >= len(s.input)
}

// word consumes an identifier and returns it, or "" if none starts here.
func (s *lineScanner) word() string {
	s.skipSpace()
	start := s.pos
	if s.pos >= len(s.input) {
		return ""
	}
	if c := s.input[s.pos]; !isAlpha(c) && !isIdentifierSymbol(c) {
		return ""
	}
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		if !isAlpha(c) && !isDigit(c) && !isIdentifierSymbol(c) {
			break
		}
		s.pos++
	}
	return s.input[start:s.pos]
}

func (s *lineScanner) expect(c byte) error {
	s.skipSpace()
	if s.pos >= len(s.input) {
		return fmt.Errorf("expected '%c', got end of input", c)
	}
	if s.input[s.pos] != c {
		return fmt.Errorf("expected '%c', got '%c'", c, s.input[s.pos])
	}
	s.pos++
	return nil
}

// typeName consumes an elementary type with optional array suffixes.
func (s *lineScanner) typeName() (string, error) {
	s.skipSpace()
	if s.pos < len(s.input) && s.input[s.pos] == '(' {
		return "", errors.New("tuple types are not supported")
	}
	start := s.pos
	for s.pos < len(s.input) && (isAlpha(s.input[s.pos]) || isDigit(s.input[s.pos])) {
		s.pos++
	}
	if start == s.pos {
		return "", errors.New("expected type")
	}
	for s.pos < len(s.input) && s.input[s.pos] == '[' {
		s.pos++
		for s.pos < len(s.input) && isDigit(s.input[s.pos]) {
			s.pos++
		}
		if s.pos >= len(s.input) || s.input[s.pos] != ']' {
			return "", errors.New("unterminated array type")
		}
		s.pos++
	}
	return normalizeType(s.input[start:s.pos])
}

// typeList consumes "(" [type {"," type}] ")".
func (s *lineScanner) typeList() ([]string, error) {
	if err := s.expect('('); err != nil {
		return nil, err
	}
	types := make([]string, 0)
	s.skipSpace()
	if s.pos < len(s.input) && s.input[s.pos] == ')' {
		s.pos++
		return types, nil
	}
	for {
		typ, err := s.typeName()
		if err != nil {
			return nil, err
		}
		types = append(types, typ)

		s.skipSpace()
		if s.pos >= len(s.input) {
			return nil, errors.New("unterminated parameter list")
		}
		switch s.input[s.pos] {
		case ',':
			s.pos++
		case ')':
			s.pos++
			return types, nil
		default:
			return nil, fmt.Errorf("unexpected '%c' in parameter list", s.input[s.pos])
		}
	}
}

func (s *lineScanner) function() (Function, error) {
	name := s.word()
	if name == "" {
		return Function{}, errors.New("missing function name")
	}
	inputs, err := s.typeList()
	if err != nil {
		return Function{}, err
	}
	fn := Function{Name: name, Inputs: inputs, Outputs: make([]string, 0), Mutability: StateChanging}

	var readOnly bool
	for !s.done() {
		switch modifier := s.word(); modifier {
		case "external", "public":
		case "view", "pure":
			readOnly = true
		case "payable":
			fn.Payable = true
		case "returns":
			if fn.Outputs, err = s.typeList(); err != nil {
				return Function{}, err
			}
			if !s.done() {
				return Function{}, fmt.Errorf("unexpected trailing input %q", s.input[s.pos:])
			}
		case "":
			return Function{}, fmt.Errorf("unexpected '%c'", s.input[s.pos])
		default:
			return Function{}, fmt.Errorf("unknown modifier %q", modifier)
		}
	}
	if readOnly && fn.Payable {
		return Function{}, errors.New("function cannot be both payable and view/pure")
	}
	if readOnly {
		fn.Mutability = ReadOnly
	}
	return fn, nil
}

func (s *lineScanner) constructor() (Constructor, error) {
	inputs, err := s.typeList()
	if err != nil {
		return Constructor{}, err
	}
	c := Constructor{Inputs: inputs}
	if s.done() {
		return c, nil
	}
	if s.word() != "payable" {
		return Constructor{}, fmt.Errorf("unexpected trailing input %q", s.input[s.pos:])
	}
	c.Payable = true
	if !s.done() {
		return Constructor{}, fmt.Errorf("unexpected trailing input %q", s.input[s.pos:])
	}
	return c, nil
}

func parseHumanReadable(lines []string) (*Interface, error) {
	b := newBuilder()
	for _, line := range lines {
		s := &lineScanner{input: line}
		switch keyword := s.word(); keyword {
		case "function":
			fn, err := s.function()
			if err != nil {
				return nil, &ParseError{Input: line, Err: err}
			}
			if err := b.addFunction(line, fn); err != nil {
				return nil, err
			}
		case "constructor":
			c, err := s.constructor()
			if err != nil {
				return nil, &ParseError{Input: line, Err: err}
			}
			if err := b.setConstructor(line, c); err != nil {
				return nil, err
			}
		default:
			return nil, parseErrorf(line, "expected 'function' or 'constructor', got %q", keyword)
		}
	}
	return b.iface, nil
}
