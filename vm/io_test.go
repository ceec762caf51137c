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

package vm_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue(t *testing.T) {
	var q vm.Queue
	_, err := q.ReadCell()
	assert.Equal(t, vm.ErrNoInput, err)

	q.Push(1, 2)
	assert.NoError(t, q.WriteCell(3))
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, C{1, 2, 3}, C(q.Values()))

	for _, want := range (C{1, 2, 3}) {
		v, err := q.ReadCell()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	_, err = q.ReadCell()
	assert.Equal(t, vm.ErrNoInput, err)

	// NewQueue copies its arguments
	src := C{4, 5}
	q2 := vm.NewQueue(src...)
	src[0] = 0
	v, _ := q2.ReadCell()
	assert.Equal(t, vm.Cell(4), v)
}

func TestReaderInput(t *testing.T) {
	in := vm.NewReaderInput(strings.NewReader(" 12,-3\n\n 7 , 8\t1125899906842624"))
	for _, want := range (C{12, -3, 7, 8, 1125899906842624}) {
		v, err := in.ReadCell()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	_, err := in.ReadCell()
	assert.Equal(t, io.EOF, err)

	in = vm.NewReaderInput(strings.NewReader("1 two 3"))
	_, err = in.ReadCell()
	assert.NoError(t, err)
	_, err = in.ReadCell()
	assert.Equal(t, vm.ErrInvalidValue, errors.Cause(err))
	assert.Contains(t, err.Error(), "two")
}

func TestWriterOutput(t *testing.T) {
	var b bytes.Buffer
	out := vm.NewWriterOutput(&b)
	for _, v := range (C{0, -1, 1219070632396864}) {
		require.NoError(t, out.WriteCell(v))
	}
	assert.Equal(t, "0\n-1\n1219070632396864\n", b.String())
}

func TestMachine_readerWriterIO(t *testing.T) {
	var b bytes.Buffer
	mem, err := vm.ParseMemory("3,0,4,0,3,0,4,0,99", vm.Strict)
	require.NoError(t, err)
	m, err := vm.New(mem, vm.Instructions(vm.Standard(
		vm.NewReaderInput(strings.NewReader("5\n6\n")),
		vm.NewWriterOutput(&b))...))
	require.NoError(t, err)
	require.NoError(t, m.Run())
	assert.Equal(t, "5\n6\n", b.String())

	// EOF on input faults the machine
	b.Reset()
	mem, _ = vm.ParseMemory("3,0,4,0,3,0,4,0,99", vm.Strict)
	m, err = vm.New(mem, vm.Instructions(vm.Standard(
		vm.NewReaderInput(strings.NewReader("5")),
		vm.NewWriterOutput(&b))...))
	require.NoError(t, err)
	err = m.Run()
	assert.Equal(t, io.EOF, errors.Cause(err))
	assert.Equal(t, vm.Cell(4), m.IP())
	assert.Equal(t, "5\n", b.String())
}

func TestFuncAdapters(t *testing.T) {
	var got []vm.Cell
	n := vm.Cell(0)
	in := vm.InputFunc(func() (vm.Cell, error) { n++; return n * 10, nil })
	out := vm.OutputFunc(func(v vm.Cell) error { got = append(got, v); return nil })

	mem, _ := vm.ParseMemory("3,0,4,0,3,0,4,0,99", vm.Extended)
	m, err := vm.New(mem, vm.Instructions(vm.Standard(in, out)...))
	require.NoError(t, err)
	require.NoError(t, m.Run())
	assert.Equal(t, []vm.Cell{10, 20}, got)
}
