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
	"fmt"
	"io"
	"os"

	"github.com/db47h/intcode/vm"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	trace   bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "intcode",
		Short: "Run, assemble and disassemble Intcode programs.",
		Long: `intcode runs Intcode programs with the reference instruction set, either
standalone or as a pipeline of amplifiers, and converts programs from and to
assembly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
			switch {
			case trace:
				log.SetLevel(log.TraceLevel)
			case verbose:
				log.SetLevel(log.DebugLevel)
			default:
				log.SetLevel(log.InfoLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug diagnostics")
	root.PersistentFlags().BoolVar(&trace, "trace", false, "log every executed instruction (implies -v)")
	root.AddCommand(newRunCmd(), newAmpCmd(), newAsmCmd(), newDisasmCmd())
	return root
}

// vmOptions returns the machine options shared by all commands.
func vmOptions() []vm.Option {
	if trace {
		return []vm.Option{vm.Logger(log.StandardLogger())}
	}
	return nil
}

func atExit(w io.Writer, err error) {
	if err == nil {
		return
	}
	if !verbose && !trace {
		fmt.Fprintf(w, "%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(w, "%+v\n", err)
	os.Exit(1)
}

func main() {
	atExit(os.Stderr, newRootCmd().Execute())
}
