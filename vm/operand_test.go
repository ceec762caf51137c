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
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperand_modes(t *testing.T) {
	mem := vm.NewMemory(C{10, 20, 30, 40}, vm.Extended)

	o, err := vm.NewOperand(0, 2, mem, 1)
	require.NoError(t, err)
	assert.Equal(t, vm.Position, o.Mode())
	v, err := o.Read()
	assert.NoError(t, err)
	assert.Equal(t, vm.Cell(30), v)

	o, err = vm.NewOperand(1, 2, mem, 1)
	require.NoError(t, err)
	assert.Equal(t, vm.Immediate, o.Mode())
	v, err = o.Read()
	assert.NoError(t, err)
	assert.Equal(t, vm.Cell(2), v)

	o, err = vm.NewOperand(2, 2, mem, 1)
	require.NoError(t, err)
	assert.Equal(t, vm.Relative, o.Mode())
	v, err = o.Read()
	assert.NoError(t, err)
	assert.Equal(t, vm.Cell(40), v)
	assert.NoError(t, o.Write(-4))
	assert.Equal(t, vm.Cell(-4), mem.Cells()[3])

	for _, mode := range []vm.Cell{3, 4, 9, -1} {
		_, err = vm.NewOperand(mode, 0, mem, 0)
		assert.Equal(t, vm.ErrInvalidMode, errors.Cause(err), "mode %d", mode)
	}
}

func TestOperand_relativeEquivalence(t *testing.T) {
	mem := vm.NewMemory(make([]vm.Cell, 64), vm.Extended)
	for a := vm.Cell(0); a < 64; a += 7 {
		for _, r := range []vm.Cell{-50, -1, 0, 3, 100} {
			pos, err := vm.NewOperand(0, a, mem, r)
			require.NoError(t, err)
			rel, err := vm.NewOperand(2, a-r, mem, r)
			require.NoError(t, err)

			pa, err := pos.Address()
			assert.NoError(t, err)
			ra, err := rel.Address()
			assert.NoError(t, err)
			assert.Equal(t, pa, ra)

			assert.NoError(t, rel.Write(a*a+r))
			v, err := pos.Read()
			assert.NoError(t, err)
			assert.Equal(t, a*a+r, v)
		}
	}
}

func TestOperand_writeImmediate(t *testing.T) {
	mem := vm.NewMemory(C{0, 0}, vm.Extended)
	for _, raw := range []vm.Cell{0, 1, -1, 1 << 40} {
		o, err := vm.NewOperand(1, raw, mem, 0)
		require.NoError(t, err)
		err = o.Write(123)
		assert.Equal(t, vm.ErrIncompatibleMode, errors.Cause(err))
		_, err = o.Address()
		assert.Equal(t, vm.ErrIncompatibleMode, errors.Cause(err))
	}
	assert.Equal(t, C{0, 0}, C(mem.Cells()))
}

func TestOperand_strictMemory(t *testing.T) {
	mem := vm.NewMemory(C{1, 2}, vm.Strict)
	o, err := vm.NewOperand(2, 5, mem, -1)
	require.NoError(t, err)
	_, err = o.Read()
	assert.Equal(t, vm.ErrOutOfBounds, errors.Cause(err))
	err = o.Write(1)
	assert.Equal(t, vm.ErrOutOfBounds, errors.Cause(err))
}
