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

package asm_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
)

func ExampleAssemble() {
	code := `
		( count down from N to 1 )
		.equ N 3

:loop	out counter
		add counter #-1 counter
		jnz counter #loop
		hlt

:counter .dat N
`
	prog, err := asm.Assemble("countdown", strings.NewReader(code))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(prog)

	m, err := vm.New(vm.NewMemory(prog, vm.Strict),
		vm.Instructions(vm.Standard(nil, vm.NewWriterOutput(os.Stdout))...))
	if err == nil {
		err = m.Run()
	}
	if err != nil {
		fmt.Println(err)
	}

	// Output:
	// [4 10 1001 10 -1 10 1005 10 0 99 3]
	// 3
	// 2
	// 1
}

func ExampleDisassembleAll() {
	prog, err := vm.Parse("4,10,1001,10,-1,10,1005,10,0,99,3")
	if err != nil {
		fmt.Println(err)
		return
	}
	asm.DisassembleAll(prog, 0, os.Stdout)

	// Output:
	//          0	out 10
	//          2	add 10 #-1 10
	//          6	jt 10 #0
	//          9	hlt
	//         10	.dat 3
}
