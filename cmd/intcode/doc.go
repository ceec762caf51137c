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

// The intcode command line tool runs Intcode programs using the packages
// github.com/db47h/intcode/vm, github.com/db47h/intcode/pipeline and
// github.com/db47h/intcode/asm.
//
// Usage:
//
//	intcode [-v] [--trace] command [flags] [args]
//
// Commands:
//
//	run [program]
//		run a program with the reference instruction set
//	amp program
//		run a program as a chain of amplifiers
//	asm [source]
//		assemble a source file into program text
//	disasm [program]
//		print an assembly listing of a program
//
// -v, --verbose: enables debug logging and prints a full stack trace should
// the VM crash.
//
// --trace: logs every executed instruction to stderr. This is slow.
//
// The run command feeds the values given with --input to the program, then
// reads further values from stdin. When stdin is a terminal, a "? " prompt is
// printed on stderr whenever the program waits for input. Memory can be
// patched before running with --set addr=value, and dumped to stdout in
// program text format upon exit with --dump. With --ascii, stdin is fed one
// character per cell and ASCII output is printed as text. Run settings can also be read
// from a TOML file with --config:
//
//	program = "day02.txt"  # relative to the config file
//	strict = false
//	inputs = [1]
//	ascii = false
//
//	[patch]
//	1 = 12
//	2 = 2
//
// Flags given on the command line override the configuration file.
//
// The amp command runs one machine per phase setting given with --phases,
// either once through the chain or, with --feedback, in a loop until all
// machines halt. The --search flag tries all permutations of the given values
// and prints the best signal along with its settings:
//
//	intcode amp --search 5,6,7,8,9 --feedback day07.txt
//
// With --concurrent, each machine runs in its own goroutine.
package main
