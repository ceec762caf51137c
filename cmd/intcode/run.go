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

	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] [program]",
		Short: "Run an Intcode program.",
		Long: `Run loads an Intcode program and runs it with the reference instruction set.

Values given with --input are fed to the program first. Further input is read
from stdin, as integers separated by commas or white space. Output values are
printed one per line.

With --ascii, stdin is fed to the program one character at a time, and output
values in the ASCII range are printed as characters.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := new(runConfig)
			if name, _ := cmd.Flags().GetString("config"); name != "" {
				var err error
				if cfg, err = readConfigFile(name); err != nil {
					return err
				}
			}
			if err := cfg.merge(cmd.Flags(), args); err != nil {
				return err
			}
			dump, _ := cmd.Flags().GetBool("dump")
			return run(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), dump)
		},
	}
	flags := cmd.Flags()
	flags.StringP("config", "c", "", "read run settings from TOML `file`")
	flags.StringP("input", "i", "", "comma separated input `values`, fed before stdin")
	flags.Bool("strict", false, "fail on memory accesses past the end of the program")
	flags.StringArray("set", nil, "patch memory before running, as `addr=value` (can be repeated)")
	flags.Bool("dump", false, "print memory to stdout upon exit")
	flags.Bool("ascii", false, "use ASCII input and output")
	return cmd
}

// consoleInput returns an Input that yields the given values first, then reads
// from console. If stdin is a terminal, a prompt is printed to stderr after
// flushing pending output. Once stdin is exhausted, the returned Input fails
// with vm.ErrNoInput.
func consoleInput(values []vm.Cell, console vm.Input, stdin io.Reader, out *bufio.Writer, stderr io.Writer) vm.Input {
	q := vm.NewQueue(values...)
	interactive := isTerminal(stdin)
	return vm.InputFunc(func() (vm.Cell, error) {
		if q.Len() > 0 {
			return q.ReadCell()
		}
		if interactive {
			if err := out.Flush(); err != nil {
				return 0, err
			}
			io.WriteString(stderr, "? ")
		}
		v, err := console.ReadCell()
		if err == io.EOF {
			return 0, vm.ErrNoInput
		}
		return v, err
	})
}

func run(cfg *runConfig, stdin io.Reader, stdout, stderr io.Writer, dump bool) (err error) {
	mem, err := vm.Load(cfg.Program, cfg.policy())
	if err != nil {
		return err
	}
	ps, err := cfg.patches()
	if err != nil {
		return err
	}
	for _, p := range ps {
		if err = mem.Write(p.addr, p.value); err != nil {
			return errors.Wrapf(err, "patch %d=%d", p.addr, p.value)
		}
	}

	out := bufio.NewWriter(stdout)
	defer func() {
		if e := out.Flush(); err == nil {
			err = e
		}
	}()

	var (
		console = vm.NewReaderInput(stdin)
		output  = vm.NewWriterOutput(out)
	)
	if cfg.ASCII {
		console = ascii.NewInput(stdin)
		output = ascii.NewOutput(out)
	}
	set := vm.Standard(consoleInput(cfg.Inputs, console, stdin, out, stderr), output)
	m, err := vm.New(mem, append([]vm.Option{vm.Instructions(set...)}, vmOptions()...)...)
	if err != nil {
		return err
	}
	err = m.Run()
	log.WithFields(log.Fields{
		"program": cfg.Program,
		"count":   m.InstructionCount(),
		"ip":      m.IP(),
	}).Debug("machine stopped")
	if dump {
		if e := dumpVM(m, out); err == nil {
			err = e
		}
		if verbose || trace {
			if e := dumpState(m, stderr); err == nil {
				err = e
			}
		}
	}
	if err != nil {
		return err
	}
	if op, err := m.Opcode(); err != nil || op != vm.OpHalt {
		return errors.Errorf("program waiting for input @ip=%d", m.IP())
	}
	return nil
}
