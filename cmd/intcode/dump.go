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

package main

import (
	"io"

	"github.com/db47h/intcode/vm"
	"github.com/kr/pretty"
)

// snapshot is the machine state printed by --dump in verbose mode.
type snapshot struct {
	State        string
	IP           vm.Cell
	RelativeBase vm.Cell
	Instructions int64
	Policy       string
	MemorySize   int
}

// dumpVM writes the memory of m to w in program text format, followed by a
// new line.
func dumpVM(m *vm.Machine, w io.Writer) error {
	if _, err := m.Memory().WriteTo(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// dumpState pretty prints the registers and counters of m to w.
func dumpState(m *vm.Machine, w io.Writer) error {
	_, err := pretty.Fprintf(w, "%# v\n", snapshot{
		State:        m.State().String(),
		IP:           m.IP(),
		RelativeBase: m.RelativeBase(),
		Instructions: m.InstructionCount(),
		Policy:       m.Memory().Policy().String(),
		MemorySize:   m.Memory().Len(),
	})
	return err
}
