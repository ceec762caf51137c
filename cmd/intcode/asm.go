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
	"bufio"
	"io"
	"os"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/spf13/cobra"
)

// openInput opens the named file, or returns stdin if name is empty or "-".
func openInput(cmd *cobra.Command, name string) (io.ReadCloser, string, error) {
	if name == "" || name == "-" {
		return io.NopCloser(cmd.InOrStdin()), "<stdin>", nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, name, err
	}
	return f, name, nil
}

func newAsmCmd() *cobra.Command {
	var outName string
	cmd := &cobra.Command{
		Use:   "asm [flags] [source]",
		Short: "Assemble a source file into an Intcode program.",
		Long: `Asm assembles the given source file, or stdin, and prints the resulting
program text. See package github.com/db47h/intcode/asm for the syntax.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			r, name, err := openInput(cmd, name)
			if err != nil {
				return err
			}
			prog, err := asm.Assemble(name, r)
			r.Close()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if outName != "" {
				f, e := os.Create(outName)
				if e != nil {
					return e
				}
				defer func() {
					if e := f.Close(); err == nil {
						err = e
					}
				}()
				w = f
			}
			bw := bufio.NewWriter(w)
			if _, err = vm.NewMemory(prog, vm.Extended).WriteTo(bw); err != nil {
				return err
			}
			if _, err = bw.WriteString("\n"); err != nil {
				return err
			}
			return bw.Flush()
		},
	}
	cmd.Flags().StringVarP(&outName, "output", "o", "", "write the program to `file` instead of stdout")
	return cmd
}

func newDisasmCmd() *cobra.Command {
	var base int
	cmd := &cobra.Command{
		Use:   "disasm [flags] [program]",
		Short: "Disassemble an Intcode program.",
		Long: `Disasm prints an assembly listing of the given program file, or stdin.
Words that do not decode to a valid instruction are listed as .dat directives.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			r, name, err := openInput(cmd, name)
			if err != nil {
				return err
			}
			text, err := io.ReadAll(r)
			r.Close()
			if err != nil {
				return err
			}
			prog, err := vm.Parse(string(text))
			if err != nil {
				return err
			}
			w := bufio.NewWriter(cmd.OutOrStdout())
			if err = asm.DisassembleAll(prog, base, w); err != nil {
				return err
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&base, "base", 0, "address of the first word in listings")
	return cmd
}
