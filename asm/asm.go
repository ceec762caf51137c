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
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

type opInfo struct {
	name   string
	opcode int
	arity  int
	write  int // index of the operand written to, -1 if none
}

var (
	mnemonics = make(map[string]*opInfo)
	byOpcode  [vm.MaxOpcode + 1]*opInfo
)

func init() {
	writes := map[int]int{vm.OpAdd: 2, vm.OpMul: 2, vm.OpIn: 0, vm.OpLessThan: 2, vm.OpEquals: 2}
	for _, ins := range vm.Standard(nil, nil) {
		w, ok := writes[ins.Opcode]
		if !ok {
			w = -1
		}
		op := &opInfo{ins.Name, ins.Opcode, ins.Arity, w}
		mnemonics[ins.Name] = op
		byOpcode[ins.Opcode] = op
	}
	for alias, name := range map[string]string{"jnz": "jt", "jz": "jf", "rb": "arb", "halt": "hlt"} {
		mnemonics[alias] = mnemonics[name]
	}
}

// ErrAsm encapsulates errors generated by the assembler.
type ErrAsm []struct {
	Pos scanner.Position
	Msg string
}

func (e ErrAsm) Error() string {
	var b strings.Builder
	for i, err := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Pos.String())
		b.WriteString(": ")
		b.WriteString(err.Msg)
	}
	return b.String()
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting program and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (prog []vm.Cell, err error) {
	return newParser().Parse(name, r)
}

// decode checks that w is a well formed reference instruction and returns its
// description and operand modes.
func decode(w vm.Cell) (*opInfo, []vm.Mode) {
	if w < 0 {
		return nil, nil
	}
	op := byOpcode[w%100]
	if op == nil {
		return nil, nil
	}
	modes := make([]vm.Mode, op.arity)
	w /= 100
	for i := range modes {
		m := vm.Mode(w % 10)
		if m > vm.Relative || (m == vm.Immediate && i == op.write) {
			return nil, nil
		}
		modes[i] = m
		w /= 10
	}
	if w != 0 {
		return nil, nil
	}
	return op, modes
}

var modePrefix = [...]string{vm.Position: "", vm.Immediate: "#", vm.Relative: "@"}

// Disassemble writes a disassembly of the instruction in mem at address pc to
// the specified io.Writer and returns the address of the next instruction and
// any write error.
//
// Words that do not decode to a valid instruction of the reference set, or
// whose operands run past the end of mem, are written as a .dat directive.
func Disassemble(mem []vm.Cell, pc int, w io.Writer) (next int, err error) {
	ew := ici.NewErrWriter(w)

	word := mem[pc]
	op, modes := decode(word)
	if op != nil && pc+len(modes) >= len(mem) {
		op = nil
	}
	pc++
	if op == nil {
		io.WriteString(ew, ".dat ")
		io.WriteString(ew, strconv.FormatInt(int64(word), 10))
		return pc, ew.Err
	}
	io.WriteString(ew, op.name)
	for _, m := range modes {
		ew.Write([]byte{' '})
		io.WriteString(ew, modePrefix[m])
		io.WriteString(ew, strconv.FormatInt(int64(mem[pc]), 10))
		pc++
	}
	return pc, ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (mem[0]). It will return any write error.
func DisassembleAll(mem []vm.Cell, base int, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	for pc := 0; pc < len(mem); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(mem, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
