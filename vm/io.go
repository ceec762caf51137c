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
	"bufio"
	"io"
	"strconv"
	"unicode"

	"github.com/pkg/errors"
)

// Input supplies values to the input instruction.
//
// ReadCell returns ErrNoInput when no value is available yet, in which case the
// input instruction yields (see Standard). Any other error faults the machine.
type Input interface {
	ReadCell() (Cell, error)
}

// Output receives values from the output instruction.
type Output interface {
	WriteCell(v Cell) error
}

// InputFunc is an adapter to use ordinary functions as Input.
type InputFunc func() (Cell, error)

// ReadCell calls f().
func (f InputFunc) ReadCell() (Cell, error) { return f() }

// OutputFunc is an adapter to use ordinary functions as Output.
type OutputFunc func(v Cell) error

// WriteCell calls f(v).
func (f OutputFunc) WriteCell(v Cell) error { return f(v) }

// Queue is a FIFO of cells that implements both Input and Output. Reading from
// an empty queue returns ErrNoInput. The zero value is an empty queue ready to
// use.
type Queue struct {
	cells []Cell
}

// NewQueue returns a queue holding the given values.
func NewQueue(values ...Cell) *Queue {
	return &Queue{append([]Cell(nil), values...)}
}

// Push appends values to the queue.
func (q *Queue) Push(values ...Cell) {
	q.cells = append(q.cells, values...)
}

// ReadCell pops the first value of the queue.
func (q *Queue) ReadCell() (Cell, error) {
	if len(q.cells) == 0 {
		return 0, ErrNoInput
	}
	v := q.cells[0]
	q.cells = q.cells[1:]
	return v, nil
}

// WriteCell implements Output by pushing v.
func (q *Queue) WriteCell(v Cell) error {
	q.cells = append(q.cells, v)
	return nil
}

// Len returns the number of queued values.
func (q *Queue) Len() int { return len(q.cells) }

// Values returns the queued values without removing them.
func (q *Queue) Values() []Cell { return q.cells }

type readerInput struct {
	r *bufio.Reader
}

// NewReaderInput returns an Input reading decimal integers from r. Values can
// be separated by white space or commas. ReadCell returns io.EOF once r is
// exhausted.
func NewReaderInput(r io.Reader) Input {
	if br, ok := r.(*bufio.Reader); ok {
		return &readerInput{br}
	}
	return &readerInput{bufio.NewReader(r)}
}

func isSep(r rune) bool { return r == ',' || unicode.IsSpace(r) }

func (in *readerInput) ReadCell() (Cell, error) {
	var tok []rune
	for {
		r, _, err := in.r.ReadRune()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				break
			}
			return 0, err
		}
		if isSep(r) {
			if len(tok) > 0 {
				break
			}
			continue
		}
		tok = append(tok, r)
	}
	v, err := strconv.ParseInt(string(tok), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidValue, "input %q", string(tok))
	}
	return Cell(v), nil
}

type writerOutput struct {
	w io.Writer
}

// NewWriterOutput returns an Output writing each value to w in decimal,
// followed by a new line.
func NewWriterOutput(w io.Writer) Output {
	return &writerOutput{w}
}

func (o *writerOutput) WriteCell(v Cell) error {
	b := strconv.AppendInt(make([]byte, 0, 24), int64(v), 10)
	_, err := o.w.Write(append(b, '\n'))
	return errors.Wrap(err, "output")
}
