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

package pipeline_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/db47h/intcode/pipeline"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type C []vm.Cell

var amplifiers = []struct {
	name     string
	prog     string
	settings C
	feedback bool
	want     vm.Cell
}{
	{"chain_43210", "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0",
		C{4, 3, 2, 1, 0}, false, 43210},
	{"chain_54321", "3,23,3,24,1002,24,10,24,1002,23,-1,23," +
		"101,5,23,23,1,24,23,23,4,23,99,0,0",
		C{0, 1, 2, 3, 4}, false, 54321},
	{"chain_65210", "3,31,3,32,1002,32,10,32,1001,31,-2,31,1007,31,0,33," +
		"1002,33,7,33,1,33,31,31,1,32,31,31,4,31,99,0,0,0",
		C{1, 0, 4, 3, 2}, false, 65210},
	{"feedback_139629729", "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26," +
		"27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5",
		C{9, 8, 7, 6, 5}, true, 139629729},
	{"feedback_18216", "3,52,1001,52,-5,52,3,53,1,52,56,54,1007,54,5,55,1005,55,26,1001,54," +
		"-5,54,1105,1,12,1,53,54,53,1008,54,0,55,1001,55,1,55,2,53,55,53,4," +
		"53,1001,56,-1,56,1005,56,6,99,0,0,0,0,10",
		C{9, 7, 8, 5, 6}, true, 18216},
}

func parse(t *testing.T, text string) C {
	t.Helper()
	prog, err := vm.Parse(text)
	require.NoError(t, err)
	return prog
}

func TestLoop(t *testing.T) {
	for _, test := range amplifiers {
		t.Run(test.name, func(t *testing.T) {
			l, err := pipeline.New(parse(t, test.prog), test.settings)
			require.NoError(t, err)
			assert.Equal(t, len(test.settings), l.Len())
			var got vm.Cell
			if test.feedback {
				got, err = l.Feedback(0)
			} else {
				got, err = l.Run(0)
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
			for i := 0; i < l.Len(); i++ {
				op, err := l.Machine(i).Opcode()
				require.NoError(t, err)
				assert.Equal(t, vm.OpHalt, op, "stage %d", i)
			}

			// a loop cannot be reused
			_, err = l.Run(0)
			assert.Equal(t, pipeline.ErrAlreadyRun, err)
		})
	}
}

func TestLoop_feedbackOnChainProgram(t *testing.T) {
	// programs that halt after one pass give the same result in feedback mode
	l, err := pipeline.New(parse(t, amplifiers[0].prog), amplifiers[0].settings)
	require.NoError(t, err)
	got, err := l.Feedback(0)
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(43210), got)
}

func TestLoop_errors(t *testing.T) {
	_, err := pipeline.New(C{99}, nil)
	assert.Equal(t, pipeline.ErrNoStages, err)

	// reads one more value than it is ever given
	l, err := pipeline.New(parse(t, "3,0,3,0,3,0,99"), C{1})
	require.NoError(t, err)
	_, err = l.Feedback(0)
	assert.Equal(t, pipeline.ErrDeadlock, err)

	l, err = pipeline.New(parse(t, "3,0,3,0,99"), C{1, 2})
	require.NoError(t, err)
	_, err = l.Run(0)
	assert.Equal(t, pipeline.ErrNoOutput, err)

	l, err = pipeline.New(parse(t, "3,0,3,0,42"), C{1, 2})
	require.NoError(t, err)
	_, err = l.Run(0)
	assert.Equal(t, vm.ErrUnknownOpcode, errors.Cause(err))
	assert.Contains(t, err.Error(), "stage 0")
}

func TestLoop_options(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)

	// strict memory makes the write to address 100 fail
	l, err := pipeline.New(parse(t, "3,100,99"), C{1}, pipeline.Policy(vm.Strict), pipeline.Logger(logger))
	require.NoError(t, err)
	_, err = l.Run(0)
	assert.Equal(t, vm.ErrOutOfBounds, errors.Cause(err))

	hook.Reset()
	var count int
	counter := func(m *vm.Machine) error {
		count++
		return nil
	}
	l, err = pipeline.New(parse(t, amplifiers[0].prog), amplifiers[0].settings,
		pipeline.Logger(logger),
		pipeline.MachineOptions(counter))
	require.NoError(t, err)
	_, err = l.Run(0)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.Len(t, hook.AllEntries(), 5)
	assert.Equal(t, "stage halted", hook.LastEntry().Message)
	assert.Equal(t, 4, hook.LastEntry().Data["stage"])
}

func TestRunConcurrent(t *testing.T) {
	for _, test := range amplifiers {
		t.Run(test.name, func(t *testing.T) {
			got, err := pipeline.RunConcurrent(context.Background(), parse(t, test.prog), test.settings, 0, test.feedback)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestRunConcurrent_errors(t *testing.T) {
	_, err := pipeline.RunConcurrent(context.Background(), C{99}, nil, 0, false)
	assert.Equal(t, pipeline.ErrNoStages, err)

	// the first stage of a chain has no upstream
	_, err = pipeline.RunConcurrent(context.Background(), parse(t, "3,0,3,0,3,0,4,0,99"), C{1, 2}, 0, false)
	assert.Equal(t, pipeline.ErrDeadlock, errors.Cause(err))

	_, err = pipeline.RunConcurrent(context.Background(), parse(t, "3,0,3,0,42"), C{1, 2, 3}, 0, false)
	assert.Equal(t, vm.ErrUnknownOpcode, errors.Cause(err))

	// a single stage looping onto itself waits forever
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = pipeline.RunConcurrent(ctx, parse(t, "3,0,3,0,3,0,99"), C{1}, 0, true)
	assert.Equal(t, context.DeadlineExceeded, errors.Cause(err))
}

func TestPermutations(t *testing.T) {
	seen := make(map[string]bool)
	err := pipeline.Permutations(C{0, 1, 2, 3, 4}, func(p []vm.Cell) error {
		seen[fmt.Sprint(p)] = true
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, seen, 120)

	var got []string
	err = pipeline.Permutations(C{1, 2, 3}, func(p []vm.Cell) error {
		got = append(got, fmt.Sprint(p))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"[1 2 3]", "[2 1 3]", "[3 1 2]", "[1 3 2]", "[2 3 1]", "[3 2 1]"}, got)

	errStop := errors.New("stop")
	n := 0
	err = pipeline.Permutations(C{1, 2, 3, 4}, func(p []vm.Cell) error {
		n++
		if n == 3 {
			return errStop
		}
		return nil
	})
	assert.Equal(t, errStop, err)
	assert.Equal(t, 3, n)

	n = 0
	require.NoError(t, pipeline.Permutations(nil, func(p []vm.Cell) error { n++; return nil }))
	assert.Equal(t, 1, n)
}

func TestBest(t *testing.T) {
	for _, test := range amplifiers {
		t.Run(test.name, func(t *testing.T) {
			values := C{0, 1, 2, 3, 4}
			if test.feedback {
				values = C{5, 6, 7, 8, 9}
			}
			max, settings, err := pipeline.Best(parse(t, test.prog), values, test.feedback)
			require.NoError(t, err)
			assert.Equal(t, test.want, max)
			assert.Equal(t, test.settings, C(settings))
		})
	}

	_, _, err := pipeline.Best(parse(t, "3,0,3,0,42"), C{1, 2}, false)
	assert.Equal(t, vm.ErrUnknownOpcode, errors.Cause(err))
}
