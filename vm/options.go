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

import log "github.com/sirupsen/logrus"

// Option interface
type Option func(*Machine) error

// Instructions registers the given instructions. It fails on the first
// instruction that cannot be registered. Later instructions override earlier
// ones with the same opcode.
//
// Use Standard to get the reference instruction set.
func Instructions(set ...Instruction) Option {
	return func(m *Machine) error {
		for _, ins := range set {
			if err := m.RegisterInstruction(ins); err != nil {
				return err
			}
		}
		return nil
	}
}

// Logger sets the logger used to trace execution. Each executed instruction is
// logged at Trace level and faults are logged at Debug level. The default is
// to not log anything.
func Logger(l log.FieldLogger) Option {
	return func(m *Machine) error {
		m.log = l
		return nil
	}
}
