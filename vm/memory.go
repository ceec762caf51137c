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

// Cell is the raw type stored in a memory location.
type Cell int64

// Policy selects how Memory handles accesses past its allocated cells.
type Policy int

// Memory access policies.
const (
	// Extended memory reads unallocated cells as 0 and grows on writes.
	Extended Policy = iota
	// Strict memory fails with ErrOutOfBounds on any access past its end.
	Strict
)

func (p Policy) String() string {
	switch p {
	case Extended:
		return "extended"
	case Strict:
		return "strict"
	}
	return "unknown"
}

// MaxLen is the maximum number of cells an Extended memory can grow to. Writes
// at or past this address fail with ErrOutOfBounds.
const MaxLen = 1 << 26

// Memory is the linear, zero-indexed memory of a Machine. Its length never
// shrinks.
type Memory struct {
	cells  []Cell
	policy Policy
}

// NewMemory returns a new Memory using cells as its initial contents. The
// slice is not copied.
func NewMemory(cells []Cell, policy Policy) *Memory {
	return &Memory{cells: cells, policy: policy}
}

// Read returns the value at address addr. Negative addresses always fail.
// Reading past the end returns 0 with the Extended policy.
func (m *Memory) Read(addr Cell) (Cell, error) {
	if addr < 0 {
		return 0, errors.Wrapf(ErrOutOfBounds, "read at address %d", addr)
	}
	if addr >= Cell(len(m.cells)) {
		if m.policy == Strict {
			return 0, errors.Wrapf(ErrOutOfBounds, "read at address %d, memory size %d", addr, len(m.cells))
		}
		return 0, nil
	}
	return m.cells[addr], nil
}

// Write stores v at address addr. With the Extended policy, writing past the
// end grows memory and zero-fills the cells in between, up to MaxLen cells.
func (m *Memory) Write(addr, v Cell) error {
	if addr < 0 {
		return errors.Wrapf(ErrOutOfBounds, "write at address %d", addr)
	}
	if addr >= Cell(len(m.cells)) {
		if m.policy == Strict {
			return errors.Wrapf(ErrOutOfBounds, "write at address %d, memory size %d", addr, len(m.cells))
		}
		if addr >= MaxLen {
			return errors.Wrapf(ErrOutOfBounds, "write at address %d, memory limit %d", addr, MaxLen)
		}
		m.grow(int(addr) + 1)
	}
	m.cells[addr] = v
	return nil
}

func (m *Memory) grow(size int) {
	if size <= cap(m.cells) {
		// the backing array given to NewMemory may hold data past len.
		tail := m.cells[len(m.cells):size]
		for i := range tail {
			tail[i] = 0
		}
		m.cells = m.cells[:size]
		return
	}
	n := 2 * cap(m.cells)
	if n < size {
		n = size
	}
	t := make([]Cell, size, n)
	copy(t, m.cells)
	m.cells = t
}

// Len returns the number of allocated cells.
func (m *Memory) Len() int {
	return len(m.cells)
}

// Policy returns the access policy of the memory.
func (m *Memory) Policy() Policy {
	return m.policy
}

// Cells returns the allocated cells. Changes to the returned slice are
// reflected in memory, but re-slicing it will not affect it.
func (m *Memory) Cells() []Cell {
	return m.cells
}

// Clone returns a deep copy of the memory.
func (m *Memory) Clone() *Memory {
	t := make([]Cell, len(m.cells))
	copy(t, m.cells)
	return &Memory{cells: t, policy: m.policy}
}
