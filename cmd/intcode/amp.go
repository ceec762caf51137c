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
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/db47h/intcode/pipeline"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type ampFlags struct {
	phases     string
	search     string
	signal     int64
	feedback   bool
	concurrent bool
	strict     bool
	timeout    time.Duration
}

func newAmpCmd() *cobra.Command {
	var f ampFlags
	cmd := &cobra.Command{
		Use:   "amp [flags] program",
		Short: "Run a program as a chain of amplifiers.",
		Long: `Amp runs one copy of the program per phase setting, the output of each stage
being fed to the next. The first stage receives the initial signal after its
setting. With --feedback, the output of the last stage loops back to the first
one until all stages halt.

With --search, every permutation of the given values is tried and the best
signal is printed along with the settings that produced it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (f.phases == "") == (f.search == "") {
				return errors.New("exactly one of --phases or --search is required")
			}
			if f.search != "" && f.concurrent {
				return errors.New("--search cannot be used with --concurrent")
			}
			policy := vm.Extended
			if f.strict {
				policy = vm.Strict
			}
			mem, err := vm.Load(args[0], policy)
			if err != nil {
				return err
			}
			opts := []pipeline.Option{pipeline.Policy(policy), pipeline.MachineOptions(vmOptions()...)}
			w := cmd.OutOrStdout()

			if f.search != "" {
				values, err := vm.Parse(f.search)
				if err != nil {
					return errors.Wrap(err, "--search")
				}
				max, settings, err := pipeline.Best(mem.Cells(), values, f.feedback, opts...)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(w, "%d\t%s\n", max, joinCells(settings))
				return err
			}

			settings, err := vm.Parse(f.phases)
			if err != nil {
				return errors.Wrap(err, "--phases")
			}
			v, err := amplify(cmd.Context(), mem.Cells(), settings, &f, opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, v)
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&f.phases, "phases", "p", "", "comma separated phase `settings`, one per stage")
	flags.StringVarP(&f.search, "search", "s", "", "search the best permutation of comma separated `values`")
	flags.Int64Var(&f.signal, "signal", 0, "initial input signal")
	flags.BoolVarP(&f.feedback, "feedback", "f", false, "feed the output of the last stage back to the first one")
	flags.BoolVar(&f.concurrent, "concurrent", false, "run each stage in its own goroutine")
	flags.BoolVar(&f.strict, "strict", false, "fail on memory accesses past the end of the program")
	flags.DurationVar(&f.timeout, "timeout", 0, "abort a concurrent run after `duration` (0 means no limit)")
	return cmd
}

func amplify(ctx context.Context, program, settings []vm.Cell, f *ampFlags, opts []pipeline.Option) (vm.Cell, error) {
	signal := vm.Cell(f.signal)
	if f.concurrent {
		if ctx == nil {
			ctx = context.Background()
		}
		if f.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, f.timeout)
			defer cancel()
		}
		return pipeline.RunConcurrent(ctx, program, settings, signal, f.feedback, opts...)
	}
	l, err := pipeline.New(program, settings, opts...)
	if err != nil {
		return 0, err
	}
	if f.feedback {
		return l.Feedback(signal)
	}
	return l.Run(signal)
}

func joinCells(cells []vm.Cell) string {
	var sb strings.Builder
	for i, c := range cells {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprint(&sb, c)
	}
	return sb.String()
}
