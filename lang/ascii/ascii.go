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

// Package ascii provides I/O adapters and utility functions for Intcode
// programs that talk ASCII: input characters are fed one cell per byte, and
// output cells in the ASCII range are printed as characters.
package ascii

import (
	"bufio"
	"io"
	"strconv"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// MaxChar is the largest cell value printed as a character by Output.
const MaxChar = 0x7f

// StringCodec reads and writes zero terminated strings in Intcode memory.
//
// Decode returns the string starting at position start in the specified
// slice. Strings stored in the slice must be zero terminated. The trailing 0
// is not returned.
//
// Encode writes the given string at position start in specified slice
// and terminates it with a 0 vm.Cell. It stops at the end of the slice.
var StringCodec stringCodec

type stringCodec struct{}

func (stringCodec) Decode(mem []vm.Cell, start vm.Cell) []byte {
	if start < 0 || int(start) >= len(mem) {
		return nil
	}
	var str []byte
	for _, c := range mem[start:] {
		if c == 0 {
			break
		}
		str = append(str, byte(c))
	}
	return str
}

func (stringCodec) Encode(mem []vm.Cell, start vm.Cell, s []byte) {
	pos := int(start)
	for _, c := range s {
		if pos >= len(mem) {
			return
		}
		mem[pos] = vm.Cell(c)
		pos++
	}
	if pos < len(mem) {
		mem[pos] = 0
	}
}

type input struct {
	r *bufio.Reader
}

// NewInput returns a vm.Input that reads r one byte at a time. Once r is
// exhausted, ReadCell fails with vm.ErrNoInput so that a machine running the
// reference instruction set yields.
func NewInput(r io.Reader) vm.Input {
	if br, ok := r.(*bufio.Reader); ok {
		return &input{br}
	}
	return &input{bufio.NewReader(r)}
}

func (in *input) ReadCell() (vm.Cell, error) {
	b, err := in.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, vm.ErrNoInput
		}
		return 0, err
	}
	return vm.Cell(b), nil
}

// Line returns the cells of an input line: one per byte of s, followed by a
// new line character.
func Line(s string) []vm.Cell {
	cells := make([]vm.Cell, 0, len(s)+1)
	for i := 0; i < len(s); i++ {
		cells = append(cells, vm.Cell(s[i]))
	}
	return append(cells, '\n')
}

type output struct {
	w   io.Writer
	buf []byte
}

// NewOutput returns a vm.Output that writes cells in the range [0, MaxChar]
// as characters. Other values are written in decimal on a line of their own.
func NewOutput(w io.Writer) vm.Output {
	return &output{w: w, buf: make([]byte, 0, 24)}
}

func (o *output) WriteCell(v vm.Cell) error {
	b := o.buf[:0]
	if v >= 0 && v <= MaxChar {
		b = append(b, byte(v))
	} else {
		b = strconv.AppendInt(b, int64(v), 10)
		b = append(b, '\n')
	}
	_, err := o.w.Write(b)
	return errors.Wrap(err, "ascii output")
}
