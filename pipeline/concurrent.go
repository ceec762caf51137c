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

package pipeline

import (
	"context"
	"sync"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/tomb.v2"
)

// mailbox is an unbounded FIFO between two stages. Pushing never blocks.
type mailbox struct {
	mu    sync.Mutex
	cells []vm.Cell
	ready chan struct{}
}

func newMailbox(values ...vm.Cell) *mailbox {
	return &mailbox{cells: values, ready: make(chan struct{}, 1)}
}

func (b *mailbox) push(v vm.Cell) {
	b.mu.Lock()
	b.cells = append(b.cells, v)
	b.mu.Unlock()
	select {
	case b.ready <- struct{}{}:
	default:
	}
}

func (b *mailbox) pop() (vm.Cell, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.cells) == 0 {
		return 0, false
	}
	v := b.cells[0]
	b.cells = b.cells[1:]
	return v, true
}

// read blocks until a value is available. It fails with ErrDeadlock once the
// upstream stage is done and nothing is left to read.
func (b *mailbox) read(upstream <-chan struct{}, dying <-chan struct{}) (vm.Cell, error) {
	for {
		if v, ok := b.pop(); ok {
			return v, nil
		}
		select {
		case <-b.ready:
		case <-upstream:
			if v, ok := b.pop(); ok {
				return v, nil
			}
			return 0, ErrDeadlock
		case <-dying:
			return 0, tomb.ErrDying
		}
	}
}

// RunConcurrent runs a pipeline where each stage runs in its own goroutine.
// Results are the same as Loop.Run or Loop.Feedback, depending on feedback.
//
// A stage waiting for input after its upstream stage is done fails with
// ErrDeadlock. Other deadlocks, like a feedback loop where all stages wait for
// input, are only broken by cancelling ctx.
func RunConcurrent(ctx context.Context, program []vm.Cell, settings []vm.Cell, signal vm.Cell, feedback bool, opts ...Option) (vm.Cell, error) {
	n := len(settings)
	if n == 0 {
		return 0, ErrNoStages
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return 0, err
	}

	boxes := make([]*mailbox, n)
	done := make([]chan struct{}, n)
	for i, s := range settings {
		boxes[i] = newMailbox(s)
		done[i] = make(chan struct{})
	}
	boxes[0].push(signal)

	// no upstream for the first stage of a chain
	closed := make(chan struct{})
	close(closed)

	var (
		result  vm.Cell
		outputs int
	)
	t, _ := tomb.WithContext(ctx)

	machines := make([]*vm.Machine, n)
	for i := range machines {
		box := boxes[i]
		upstream := closed
		if i > 0 {
			upstream = done[i-1]
		} else if feedback {
			upstream = done[n-1]
		}
		input := vm.InputFunc(func() (vm.Cell, error) {
			return box.read(upstream, t.Dying())
		})
		var output vm.Output
		if i < n-1 {
			next := boxes[i+1]
			output = vm.OutputFunc(func(v vm.Cell) error {
				next.push(v)
				return nil
			})
		} else {
			output = vm.OutputFunc(func(v vm.Cell) error {
				result = v
				outputs++
				if feedback {
					boxes[0].push(v)
				}
				return nil
			})
		}
		mem := vm.NewMemory(append([]vm.Cell(nil), program...), cfg.policy)
		m, err := vm.New(mem, append([]vm.Option{vm.Instructions(vm.Standard(input, output)...)}, cfg.vmOpts...)...)
		if err != nil {
			t.Kill(nil)
			return 0, errors.Wrapf(err, "stage %d", i)
		}
		machines[i] = m
	}

	for i, m := range machines {
		i, m := i, m
		t.Go(func() error {
			err := m.Run()
			switch {
			case err == nil:
				cfg.log.WithFields(log.Fields{"stage": i, "count": m.InstructionCount()}).Debug("stage halted")
			case errors.Cause(err) == tomb.ErrDying:
				err = tomb.ErrDying
			default:
				err = errors.Wrapf(err, "stage %d", i)
				// the tomb must hold this error before downstream stages see
				// that this one is done.
				t.Kill(err)
			}
			close(done[i])
			return err
		})
	}

	if err = t.Wait(); err != nil {
		return 0, err
	}
	if outputs == 0 {
		return 0, ErrNoOutput
	}
	return result, nil
}
