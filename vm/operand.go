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

// Mode is an operand addressing mode.
type Mode Cell

// Addressing modes.
const (
	Position  Mode = iota // raw value is an address
	Immediate             // raw value is the operand value
	Relative              // raw value plus the relative base is an address
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "invalid"
}

// Operand is an instruction argument resolved against memory. Operands are
// built by the Machine for a single instruction dispatch and must not be kept
// by handlers after they return.
type Operand struct {
	mode Mode
	raw  Cell
	mem  *Memory
	base Cell
}

// NewOperand returns an operand with the given addressing mode and raw value,
// bound to memory mem and relative base base. Any mode other than 0, 1 or 2
// fails with ErrInvalidMode.
func NewOperand(mode Cell, raw Cell, mem *Memory, base Cell) (Operand, error) {
	switch Mode(mode) {
	case Position, Immediate, Relative:
		return Operand{Mode(mode), raw, mem, base}, nil
	}
	return Operand{}, errors.Wrapf(ErrInvalidMode, "mode %d", mode)
}

// Mode returns the addressing mode of the operand.
func (o Operand) Mode() Mode { return o.mode }

// Raw returns the raw value of the operand, as found in the program.
func (o Operand) Raw() Cell { return o.raw }

// Address returns the memory address the operand refers to. Immediate operands
// have no address.
func (o Operand) Address() (Cell, error) {
	switch o.mode {
	case Position:
		return o.raw, nil
	case Relative:
		return o.raw + o.base, nil
	}
	return 0, errors.Wrapf(ErrIncompatibleMode, "operand %d has no address", o.raw)
}

// Read returns the operand value.
func (o Operand) Read() (Cell, error) {
	if o.mode == Immediate {
		return o.raw, nil
	}
	addr, err := o.Address()
	if err != nil {
		return 0, err
	}
	return o.mem.Read(addr)
}

// Write stores v at the operand's address. Writing to an Immediate operand
// fails with ErrIncompatibleMode.
func (o Operand) Write(v Cell) error {
	addr, err := o.Address()
	if err != nil {
		return err
	}
	return o.mem.Write(addr, v)
}
