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
	"fmt"

	"github.com/pkg/errors"
)

// Errors returned by the VM. They are always wrapped with some context, use
// errors.Cause to check for a specific error.
var (
	ErrInvalidValue     = errors.New("invalid value in program text")
	ErrInvalidOpcode    = errors.New("invalid opcode")
	ErrUnknownOpcode    = errors.New("no instruction registered for opcode")
	ErrInvalidMode      = errors.New("invalid addressing mode")
	ErrIncompatibleMode = errors.New("immediate mode used to write value")
	ErrOutOfBounds      = errors.New("memory access out of bounds")
	ErrUnexpectedEnd    = errors.New("reached end of program without a halt instruction")
	ErrRegistration     = errors.New("invalid instruction registration")
	ErrBadDirective     = errors.New("unknown directive")

	// ErrNoInput is returned by Input implementations when no value is
	// available yet. The reference input instruction turns it into a Quit
	// directive so that the machine can be resumed once input is available.
	ErrNoInput = errors.New("no input available")
)

// ParseError is returned when parsing program text fails. Its Cause is
// ErrInvalidValue.
type ParseError struct {
	Index int    // index of the offending token
	Token string // offending token, trimmed
	Err   error  // underlying strconv error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: token %d %q: %v", ErrInvalidValue, e.Index, e.Token, e.Err)
}

// Cause implements the causer interface of github.com/pkg/errors.
func (e *ParseError) Cause() error { return ErrInvalidValue }
