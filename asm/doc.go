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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs using the reference instruction set.
//
// Supported assembler mnemonics:
//
//	opcode	asm	alias	operands	description
//	------	---	-----	--------	-----------------------------------------------------
//	1	add		a b c		c = a + b
//	2	mul		a b c		c = a * b
//	3	in		a		a = next input value
//	4	out		a		output a
//	5	jt	jnz	a b		jump to b if a != 0
//	6	jf	jz	a b		jump to b if a == 0
//	7	lt		a b c		c = 1 if a < b, 0 otherwise
//	8	eq		a b c		c = 1 if a == b, 0 otherwise
//	9	arb	rb	a		add a to the relative base
//	99	hlt	halt			stop
//
// Operands:
//
// The addressing mode of an operand is selected by its prefix:
//
//	42	position mode: the value at address 42
//	#42	immediate mode: the value 42
//	@42	relative mode: the value at address relative base + 42
//
// The assembler computes the instruction word from the opcode and operand
// modes, so that "mul 4 #3 4" compiles as 1002,4,3,4. Operands that are
// written to (the last operand of add, mul, lt and eq, the operand of in)
// cannot use immediate mode.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	( this is a
//	  rather long
//	  multiline comment )
//
// Literals and label/const identifiers:
//
// Input is split at white space (space, tab or new line) into tokens. An
// operand value, with its mode prefix removed, is resolved as follows:
//
//	- If it can be converted to a Go integer (see strconv.ParseInt), it is an
//	  integer literal.
//	- If it is a Go character literal between single quotes, it is converted
//	  to the corresponding integer literal.
//	- If it is the name of a defined constant, it is replaced by the
//	  constant's value.
//	- Otherwise, it is the name of a label and will be replaced by the
//	  label's address.
//
// Where an instruction is expected, a token that is not a mnemonic, label
// definition or directive is resolved the same way and compiled as a raw data
// cell.
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:). Forward references
// are allowed.
//
//	:loop	add @0 #1 @0
//		jt #1 #loop	( jump to loop )
//		jt #1 loop	( jump to the address stored in the cell at loop, i.e. 21201 )
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer value, named constant
// or character literal.
//
//	.org <value>
//
// will place the next instruction at the address specified by the given integer
// literal or named constant.
//
//	.dat <value>
//
// will compile the specified integer value, named constant, character literal
// or label address as-is. This is primarily used for data storage:
//
//	:table	.dat 65
//		.dat 'B'
//
//	.opcode <mnemonic> <opcode> <arity>
//
// declares an instruction outside of the reference set, for machines running a
// custom instruction set:
//
//	.opcode swap 20 2
//	swap @0 @1
package asm
