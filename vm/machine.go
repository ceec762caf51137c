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

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// State is the run state of a Machine.
type State int

// Machine states.
const (
	Running State = iota
	Halted        // a handler returned a Quit directive
	Faulted       // execution failed, see Machine.Err
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	}
	return "unknown"
}

// Machine represents an Intcode VM instance.
type Machine struct {
	mem      *Memory
	ip       Cell
	rb       Cell
	table    [MaxOpcode + 1]*Instruction
	state    State
	err      error
	insCount int64
	ops      []Operand
	log      log.FieldLogger
}

// New creates a new Machine executing the program in mem, starting at address
// 0. The machine owns mem from now on.
//
// No instructions are registered by default. Options will be set by calling
// SetOptions.
func New(mem *Memory, opts ...Option) (*Machine, error) {
	if mem == nil {
		mem = NewMemory(nil, Extended)
	}
	m := &Machine{mem: mem}
	if err := m.SetOptions(opts...); err != nil {
		return nil, err
	}
	return m, nil
}

// SetOptions sets the provided options.
func (m *Machine) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return err
		}
	}
	return nil
}

// Register binds handler h to the given opcode. Operand count is set by arity.
// Registering an opcode twice replaces the previous handler.
func (m *Machine) Register(opcode, arity int, h Handler) error {
	return m.RegisterInstruction(Instruction{Opcode: opcode, Arity: arity, Handler: h})
}

// RegisterInstruction works like Register and also records the instruction
// name.
func (m *Machine) RegisterInstruction(ins Instruction) error {
	switch {
	case ins.Opcode < 0 || ins.Opcode > MaxOpcode:
		return errors.Wrapf(ErrRegistration, "opcode %d out of range [0, %d]", ins.Opcode, MaxOpcode)
	case ins.Arity < 0:
		return errors.Wrapf(ErrRegistration, "opcode %d: negative arity %d", ins.Opcode, ins.Arity)
	case ins.Handler == nil:
		return errors.Wrapf(ErrRegistration, "opcode %d: nil handler", ins.Opcode)
	}
	m.table[ins.Opcode] = &ins
	return nil
}

// Instruction returns the instruction registered for opcode, if any.
func (m *Machine) Instruction(opcode int) (Instruction, bool) {
	if opcode < 0 || opcode > MaxOpcode || m.table[opcode] == nil {
		return Instruction{}, false
	}
	return *m.table[opcode], true
}

// IP returns the instruction pointer.
func (m *Machine) IP() Cell { return m.ip }

// RelativeBase returns the current value of the relative base register.
func (m *Machine) RelativeBase() Cell { return m.rb }

// Memory returns the machine's memory.
func (m *Machine) Memory() *Memory { return m.mem }

// State returns the run state of the machine.
func (m *Machine) State() State { return m.state }

// Err returns the error that faulted the machine, if any.
func (m *Machine) Err() error { return m.err }

// InstructionCount returns the number of instructions executed so far.
func (m *Machine) InstructionCount() int64 { return m.insCount }

// decode splits an instruction word into its opcode and mode digits.
func decode(word Cell) (opcode int, modes Cell, err error) {
	if word < 0 {
		return 0, 0, errors.Wrapf(ErrInvalidOpcode, "instruction word %d", word)
	}
	return int(word % 100), word / 100, nil
}

// Opcode decodes the instruction word at the instruction pointer without
// executing it. Drivers use it to tell a halt instruction from a yield.
func (m *Machine) Opcode() (int, error) {
	if m.ip < 0 || m.ip >= Cell(m.mem.Len()) {
		return 0, errors.Wrapf(ErrUnexpectedEnd, "@ip=%d", m.ip)
	}
	word, err := m.mem.Read(m.ip)
	if err != nil {
		return 0, err
	}
	op, _, err := decode(word)
	return op, err
}

// Step executes a single instruction. Calling Step on a halted machine resumes
// it. A faulted machine returns the error that faulted it.
func (m *Machine) Step() error {
	if m.state == Faulted {
		return m.err
	}
	m.state = Running
	ip := m.ip
	if err := m.step(); err != nil {
		m.state = Faulted
		m.err = errors.Wrapf(err, "@ip=%d", ip)
		if m.log != nil {
			m.log.WithFields(log.Fields{"ip": ip, "rb": m.rb}).WithError(err).Debug("machine fault")
		}
		return m.err
	}
	return nil
}

func (m *Machine) step() error {
	ip := m.ip
	if ip < 0 || ip >= Cell(m.mem.Len()) {
		return ErrUnexpectedEnd
	}
	word, err := m.mem.Read(ip)
	if err != nil {
		return err
	}
	op, modes, err := decode(word)
	if err != nil {
		return err
	}
	ins := m.table[op]
	if ins == nil {
		return errors.Wrapf(ErrUnknownOpcode, "opcode %d", op)
	}

	ops := m.ops[:0]
	for i := 1; i <= ins.Arity; i++ {
		raw, err := m.mem.Read(ip + Cell(i))
		if err != nil {
			return errors.Wrapf(err, "operand %d", i)
		}
		o, err := NewOperand(modes%10, raw, m.mem, m.rb)
		if err != nil {
			return errors.Wrapf(err, "operand %d", i)
		}
		modes /= 10
		ops = append(ops, o)
	}
	m.ops = ops

	if m.log != nil {
		m.log.WithFields(log.Fields{"ip": ip, "op": op, "name": ins.Name, "rb": m.rb}).Trace("step")
	}

	d, err := ins.Handler(ops)
	if err != nil {
		return err
	}
	m.insCount++

	switch d.Kind {
	case Continue:
		m.ip = ip + 1 + Cell(ins.Arity)
	case Jump:
		m.ip = d.Arg
	case AdjustBase:
		m.rb += d.Arg
		m.ip = ip + 1 + Cell(ins.Arity)
	case Quit:
		m.state = Halted
		return nil
	default:
		return errors.Wrapf(ErrBadDirective, "%v returned by opcode %d", d.Kind, op)
	}
	if m.ip < 0 || m.ip >= Cell(m.mem.Len()) {
		return errors.Wrapf(ErrUnexpectedEnd, "next ip %d, memory size %d", m.ip, m.mem.Len())
	}
	return nil
}

// Run starts or resumes execution of the machine until a handler returns a
// Quit directive or an error occurs.
//
// If an error occurs, the machine is faulted and the instruction pointer will
// point to the instruction that triggered the error, except for
// ErrUnexpectedEnd where it holds the out of range address.
//
// When Run returns nil, the machine is halted and calling Run again will
// resume execution at the instruction that returned Quit.
func (m *Machine) Run() (err error) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				err = errors.Wrapf(e, "recovered error @ip=%d", m.ip)
			default:
				err = errors.Errorf("recovered panic @ip=%d: %v", m.ip, e)
			}
			m.state, m.err = Faulted, err
		}
	}()
	if m.state == Faulted {
		return m.err
	}
	m.state = Running
	for m.state == Running {
		if err = m.Step(); err != nil {
			return err
		}
	}
	return nil
}
