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

package vm

import "github.com/pkg/errors"

// Reference instruction set opcodes.
const (
	OpAdd         = 1
	OpMul         = 2
	OpIn          = 3
	OpOut         = 4
	OpJumpIfTrue  = 5
	OpJumpIfFalse = 6
	OpLessThan    = 7
	OpEquals      = 8
	OpAdjustBase  = 9
	OpHalt        = 99
)

type setConfig struct {
	yieldOnOutput bool
}

// SetOption configures the instruction set returned by Standard.
type SetOption func(*setConfig)

// YieldOnOutput makes the output instruction return Quit right after writing a
// value. When the machine is resumed, the same output instruction is executed
// again: it then skips the write and lets the machine continue.
func YieldOnOutput() SetOption {
	return func(c *setConfig) { c.yieldOnOutput = true }
}

func boolCell(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

// binop returns a handler for a 3 operands instruction writing f(a, b) to its
// third operand.
func binop(f func(a, b Cell) Cell) Handler {
	return func(ops []Operand) (Directive, error) {
		a, err := ops[0].Read()
		if err != nil {
			return Directive{}, err
		}
		b, err := ops[1].Read()
		if err != nil {
			return Directive{}, err
		}
		return Next(), ops[2].Write(f(a, b))
	}
}

func jumpIf(cond bool) Handler {
	return func(ops []Operand) (Directive, error) {
		v, err := ops[0].Read()
		if err != nil {
			return Directive{}, err
		}
		if (v != 0) != cond {
			return Next(), nil
		}
		addr, err := ops[1].Read()
		if err != nil {
			return Directive{}, err
		}
		return JumpTo(addr), nil
	}
}

// Standard returns the reference instruction set. Input values are read from in
// and output values are written to out. Either may be nil if the program does
// not use the corresponding instruction, in which case executing it faults the
// machine.
//
// The input instruction returns Quit, without consuming anything, if in returns
// ErrNoInput. Resuming the machine will retry the read.
//
// The returned instructions hold some state when the YieldOnOutput option is
// used, so a set must not be shared between machines.
func Standard(in Input, out Output, opts ...SetOption) []Instruction {
	var cfg setConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	var pending bool // output done, waiting for resume
	return []Instruction{
		{OpAdd, 3, "add", binop(func(a, b Cell) Cell { return a + b })},
		{OpMul, 3, "mul", binop(func(a, b Cell) Cell { return a * b })},
		{OpIn, 1, "in", func(ops []Operand) (Directive, error) {
			if in == nil {
				return Directive{}, errors.New("no input configured")
			}
			v, err := in.ReadCell()
			if err != nil {
				if err == ErrNoInput {
					return Halt(), nil
				}
				return Directive{}, errors.Wrap(err, "input")
			}
			return Next(), ops[0].Write(v)
		}},
		{OpOut, 1, "out", func(ops []Operand) (Directive, error) {
			if pending {
				pending = false
				return Next(), nil
			}
			if out == nil {
				return Directive{}, errors.New("no output configured")
			}
			v, err := ops[0].Read()
			if err != nil {
				return Directive{}, err
			}
			if err = out.WriteCell(v); err != nil {
				return Directive{}, errors.Wrap(err, "output")
			}
			if cfg.yieldOnOutput {
				pending = true
				return Halt(), nil
			}
			return Next(), nil
		}},
		{OpJumpIfTrue, 2, "jt", jumpIf(true)},
		{OpJumpIfFalse, 2, "jf", jumpIf(false)},
		{OpLessThan, 3, "lt", binop(func(a, b Cell) Cell { return boolCell(a < b) })},
		{OpEquals, 3, "eq", binop(func(a, b Cell) Cell { return boolCell(a == b) })},
		{OpAdjustBase, 1, "arb", func(ops []Operand) (Directive, error) {
			v, err := ops[0].Read()
			if err != nil {
				return Directive{}, err
			}
			return AdjustRelativeBase(v), nil
		}},
		{OpHalt, 0, "hlt", func([]Operand) (Directive, error) { return Halt(), nil }},
	}
}
