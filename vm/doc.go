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

// Package vm implements an embeddable virtual machine for Intcode programs.
//
// An Intcode program is a comma separated list of signed integers. The machine
// reads the instruction word at the instruction pointer, decodes the opcode
// (the two low decimal digits) and one addressing mode per operand (the
// remaining digits, least significant first), resolves operands against
// memory, calls the instruction handler bound to the opcode and applies the
// Directive it returns.
//
// The instruction set is not hardcoded: handlers are registered per opcode with
// Machine.Register or the Instructions option. The Standard function returns
// the reference instruction set wired to caller supplied Input and Output
// implementations.
//
// Suspend and resume:
//
// A Quit directive stops Run without moving the instruction pointer. Since the
// instruction pointer and the relative base are kept across calls, calling Run
// again resumes execution exactly where it stopped. The reference input
// instruction quits when its Input returns ErrNoInput, and with the
// YieldOnOutput option, the output instruction quits right after emitting a
// value. This is what allows several machines to be chained into feedback
// loops by an external driver (see package pipeline).
//
// Memory policies:
//
// Memory can be created with the Extended policy (the default for programs
// loaded with Parse or Load), where reading unallocated cells returns 0 and
// writing past the end grows memory, or with the Strict policy, where any
// access outside of the allocated cells fails with ErrOutOfBounds.
//
package vm
