// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asm

import (
	"io"
	"sort"
	"strconv"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

// parser states
const (
	stInstr   = iota // accept anything
	stArg            // operand of the current instruction
	stOrg            // integer or const (.org)
	stDat            // integer, const or label (.dat)
	stEqu            // integer or const (.equ value)
	stOpName         // identifier (.opcode name)
	stOpCode         // integer or const (.opcode opcode)
	stOpArity        // integer or const (.opcode arity)
)

type parser struct {
	i      []vm.Cell
	pc     int
	size   int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]labelSite
	ops    map[string]*opInfo
	errs   ErrAsm

	state   int
	ins     *opInfo // instruction being assembled
	insPC   int
	argN    int
	name    string // pending .equ or .opcode name
	namePos scanner.Position
	code    int // pending .opcode opcode
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]labelSite)
	p.ops = make(map[string]*opInfo, len(mnemonics))
	for k, v := range mnemonics {
		p.ops[k] = v
	}
	return p
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, struct {
			Pos scanner.Position
			Msg string
		}{pos, msg})
	}
}

func (p *parser) tokError(msg string) {
	pos := p.s.Position
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	p.error(pos, msg)
}

func (p *parser) write(v vm.Cell) {
	if p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, p.pc+1-len(p.i))...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.size {
		p.size = p.pc
	}
}

func (p *parser) useLabel(name string) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{
			// use current position as valid temp position
			labelSite{p.s.Position, -1},
			nil,
		}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{p.s.Position, p.pc})
}

// number converts integer literals, character literals and constants.
func (p *parser) number(s string) (vm.Cell, bool) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" {
			p.tokError("invalid character literal " + s)
			return 0, true
		}
		return vm.Cell(r), true
	}
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address), true
	}
	return 0, false
}

// value writes a number or the address of a label.
func (p *parser) value(s string) {
	if v, ok := p.number(s); ok {
		p.write(v)
		return
	}
	switch s[0] {
	case ':', '.', '#', '@':
		p.tokError("unexpected " + s)
		p.write(0)
		return
	}
	p.useLabel(s)
	p.write(0)
}

func (p *parser) operand(s string) {
	mode := vm.Position
	switch s[0] {
	case '#':
		mode, s = vm.Immediate, s[1:]
	case '@':
		mode, s = vm.Relative, s[1:]
	}
	if s == "" {
		p.tokError("missing operand value")
		s = "0"
	}
	if mode == vm.Immediate && p.argN == p.ins.write {
		p.tokError(p.ins.name + ": immediate mode on written operand #" + s)
	}
	if mode != vm.Position {
		if p.argN > 15 {
			p.tokError(p.ins.name + ": no mode digit for operand " + strconv.Itoa(p.argN+1))
		} else {
			m := vm.Cell(100)
			for n := 0; n < p.argN; n++ {
				m *= 10
			}
			p.i[p.insPC] += vm.Cell(mode) * m
		}
	}
	p.value(s)
	p.argN++
	if p.argN == p.ins.arity {
		p.ins = nil
		p.state = stInstr
	}
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) ([]vm.Cell, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.tokError(msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF && len(p.errs) < maxErrors; tok = p.s.Scan() {
		if tok != scanner.Ident {
			p.tokError("unexpected character " + strconv.QuoteRune(tok))
			continue
		}
		s := p.s.TokenText()

		if s == "(" {
			// skip comments
			for tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")") {
				tok = p.s.Scan()
			}
			continue
		}

		switch p.state {
		case stArg:
			if s[0] == ':' || s[0] == '.' {
				p.tokError(p.ins.name + ": expected operand, got " + s)
				p.ins, p.state = nil, stInstr
				break
			}
			p.operand(s)
		case stOrg, stEqu, stOpCode, stOpArity:
			v, ok := p.number(s)
			if !ok {
				p.tokError("expected integer or constant, got " + s)
				p.state = stInstr
				break
			}
			p.directiveArg(v)
		case stDat:
			p.value(s)
			p.state = stInstr
		case stOpName:
			if _, ok := p.number(s); ok || s[0] == ':' || s[0] == '.' || s[0] == '#' || s[0] == '@' {
				p.tokError(".opcode: invalid mnemonic " + s)
				p.state = stInstr
				break
			}
			p.name, p.namePos = s, p.s.Position
			p.state = stOpCode
		default:
			p.instruction(s)
		}
	}

	if p.state != stInstr {
		if p.ins != nil {
			p.error(p.s.Pos(), p.ins.name+": missing operands")
		} else {
			p.error(p.s.Pos(), "unexpected end of input")
		}
	}

	// resolve labels, sorted so that errors are reported in a stable order
	names := make([]string, 0, len(p.labels))
	for n := range p.labels {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		l := p.labels[n]
		if l.address == -1 {
			p.error(l.uses[0].pos, "undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return p.i[:p.size], nil
}

func (p *parser) directiveArg(v vm.Cell) {
	switch p.state {
	case stOrg:
		if v < 0 {
			p.tokError(".org: negative address")
		} else {
			p.pc = int(v)
		}
		p.state = stInstr
	case stEqu:
		p.consts[p.name] = labelSite{p.namePos, int(v)}
		p.state = stInstr
	case stOpCode:
		if v < 0 || v > vm.MaxOpcode {
			p.tokError(".opcode: opcode out of range")
			p.state = stInstr
			return
		}
		p.code = int(v)
		p.state = stOpArity
	case stOpArity:
		if v < 0 {
			p.tokError(".opcode: negative arity")
		} else {
			p.ops[p.name] = &opInfo{name: p.name, opcode: p.code, arity: int(v), write: -1}
		}
		p.state = stInstr
	}
}

func (p *parser) instruction(s string) {
	switch s[0] {
	case ':':
		n := s[1:]
		if len(n) == 0 {
			p.tokError("empty label name")
			return
		}
		if cst, ok := p.consts[n]; ok {
			p.tokError("label redefinition: " + n + ", previously defined as a constant here: " + cst.pos.String())
			return
		}
		if l, ok := p.labels[n]; ok {
			if l.address != -1 {
				p.tokError("label redefinition: " + n + ", previous definition here: " + l.pos.String())
				return
			}
			l.address = p.pc
			l.pos = p.s.Position
			return
		}
		p.labels[n] = &label{labelSite{p.s.Position, p.pc}, nil}
		return
	case '.':
		switch s {
		case ".org":
			p.state = stOrg
		case ".dat":
			p.state = stDat
		case ".opcode":
			p.state = stOpName
		case ".equ":
			t := p.s.Scan()
			if t != scanner.Ident {
				p.tokError(".equ: expected identifier, got " + p.s.TokenText())
				return
			}
			p.name = p.s.TokenText()
			if l, ok := p.labels[p.name]; ok {
				p.tokError(".equ: redefinition of " + p.name + ", previously defined or used as a label here: " + l.pos.String())
				return
			}
			p.namePos = p.s.Position
			p.state = stEqu
		default:
			p.tokError("unknown directive " + s)
		}
		return
	case '#', '@':
		p.tokError("operand outside of instruction: " + s)
		return
	}
	if op, ok := p.ops[s]; ok {
		p.insPC = p.pc
		p.write(vm.Cell(op.opcode))
		if op.arity > 0 {
			p.ins, p.argN, p.state = op, 0, stArg
		}
		return
	}
	// raw data: integer, constant or label address
	p.value(s)
}
