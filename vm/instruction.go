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

import "strconv"

// MaxOpcode is the largest opcode that can be registered.
const MaxOpcode = 99

// Kind identifies the action carried by a Directive.
type Kind uint8

// Directive kinds.
const (
	Continue   Kind = iota // advance past the instruction
	Jump                   // set the instruction pointer to Arg
	AdjustBase             // add Arg to the relative base, then advance
	Quit                   // stop execution, leaving the instruction pointer as is
)

var kindNames = [...]string{"continue", "jump", "adjust-base", "quit"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Directive is returned by instruction handlers to tell the Machine what to do
// next. Handlers never touch the instruction pointer themselves.
type Directive struct {
	Kind Kind
	Arg  Cell
}

// Next returns a Continue directive.
func Next() Directive { return Directive{Kind: Continue} }

// JumpTo returns a directive setting the instruction pointer to addr.
func JumpTo(addr Cell) Directive { return Directive{Jump, addr} }

// AdjustRelativeBase returns a directive adding delta to the relative base.
func AdjustRelativeBase(delta Cell) Directive { return Directive{AdjustBase, delta} }

// Halt returns a Quit directive. Whether it means that the program is done or
// that it yields control to the caller is up to the embedding code.
func Halt() Directive { return Directive{Kind: Quit} }

// Handler is the function prototype for instruction handlers. The ops slice
// holds exactly as many operands as the arity the handler was registered
// with. It is reused by the Machine and must not be retained.
type Handler func(ops []Operand) (Directive, error)

// Instruction binds a Handler to an opcode.
type Instruction struct {
	Opcode  int
	Arity   int
	Name    string // mnemonic, used in traces. May be empty.
	Handler Handler
}
