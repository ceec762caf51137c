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

// Package pipeline runs several instances of the same Intcode program connected
// in series, each machine's output feeding the next machine's input. The first
// input of every machine is its setting, the first machine then receives the
// initial signal.
//
// In feedback mode, the output of the last machine is routed back to the first
// one and the pipeline runs until every machine halts.
package pipeline

import (
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Errors returned by pipelines.
var (
	ErrDeadlock   = errors.New("deadlock: no stage can make progress")
	ErrNoOutput   = errors.New("last stage produced no output")
	ErrNoStages   = errors.New("empty pipeline")
	ErrAlreadyRun = errors.New("pipeline already run")
)

// Option configures a Loop.
type Option func(*config) error

type config struct {
	policy vm.Policy
	log    log.FieldLogger
	vmOpts []vm.Option
}

// Policy sets the memory policy of every stage. The default is vm.Extended.
func Policy(p vm.Policy) Option {
	return func(c *config) error {
		c.policy = p
		return nil
	}
}

// Logger sets the logger used to report stage transitions at Debug level. The
// default is logrus' standard logger.
func Logger(l log.FieldLogger) Option {
	return func(c *config) error {
		c.log = l
		return nil
	}
}

// MachineOptions adds options passed to vm.New when creating each stage,
// after the reference instruction set has been registered.
func MachineOptions(opts ...vm.Option) Option {
	return func(c *config) error {
		c.vmOpts = append(c.vmOpts, opts...)
		return nil
	}
}

func newConfig(opts []Option) (*config, error) {
	c := &config{policy: vm.Extended, log: log.StandardLogger()}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

type stage struct {
	m  *vm.Machine
	in *vm.Queue
}

// Loop is a pipeline driven on the caller's goroutine. Stages run in turn, each
// one until it halts or needs input that is not available yet.
//
// A Loop can only be run once.
type Loop struct {
	stages   []stage
	log      log.FieldLogger
	feedback bool
	result   vm.Cell
	outputs  int
	io       int // number of values read or written in the current round
	ran      bool
}

// New creates a pipeline with one stage per setting, each running a copy of
// program.
func New(program []vm.Cell, settings []vm.Cell, opts ...Option) (*Loop, error) {
	if len(settings) == 0 {
		return nil, ErrNoStages
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	l := &Loop{stages: make([]stage, len(settings)), log: cfg.log}
	for i, s := range settings {
		l.stages[i].in = vm.NewQueue(s)
	}
	for i := range l.stages {
		in := l.stages[i].in
		input := vm.InputFunc(func() (vm.Cell, error) {
			v, err := in.ReadCell()
			if err == nil {
				l.io++
			}
			return v, err
		})
		var output vm.Output
		if i < len(l.stages)-1 {
			next := l.stages[i+1].in
			output = vm.OutputFunc(func(v vm.Cell) error {
				l.io++
				next.Push(v)
				return nil
			})
		} else {
			output = vm.OutputFunc(l.tail)
		}
		mem := vm.NewMemory(append([]vm.Cell(nil), program...), cfg.policy)
		m, err := vm.New(mem, append([]vm.Option{vm.Instructions(vm.Standard(input, output)...)}, cfg.vmOpts...)...)
		if err != nil {
			return nil, errors.Wrapf(err, "stage %d", i)
		}
		l.stages[i].m = m
	}
	return l, nil
}

func (l *Loop) tail(v vm.Cell) error {
	l.io++
	l.result = v
	l.outputs++
	if l.feedback {
		l.stages[0].in.Push(v)
	}
	return nil
}

// Len returns the number of stages.
func (l *Loop) Len() int { return len(l.stages) }

// Machine returns the machine running stage i.
func (l *Loop) Machine(i int) *vm.Machine { return l.stages[i].m }

func halted(m *vm.Machine) bool {
	op, err := m.Opcode()
	return err == nil && op == vm.OpHalt && m.State() == vm.Halted
}

// round runs every stage that has not halted yet once. It reports whether all
// stages are halted and whether any progress was made.
func (l *Loop) round() (done, progress bool, err error) {
	done = true
	l.io = 0
	for i := range l.stages {
		m := l.stages[i].m
		if halted(m) {
			continue
		}
		ip := m.IP()
		if err = m.Run(); err != nil {
			return false, false, errors.Wrapf(err, "stage %d", i)
		}
		progress = progress || m.IP() != ip
		if halted(m) {
			l.log.WithFields(log.Fields{"stage": i, "count": m.InstructionCount()}).Debug("stage halted")
		} else {
			done = false
			l.log.WithFields(log.Fields{"stage": i, "ip": m.IP()}).Debug("stage waiting for input")
		}
	}
	return done, progress || l.io > 0, nil
}

func (l *Loop) start(signal vm.Cell, feedback bool) error {
	if l.ran {
		return ErrAlreadyRun
	}
	l.ran = true
	l.feedback = feedback
	l.stages[0].in.Push(signal)
	return nil
}

// Run sends signal through the chain once and returns the last value output by
// the last stage.
func (l *Loop) Run(signal vm.Cell) (vm.Cell, error) {
	if err := l.start(signal, false); err != nil {
		return 0, err
	}
	if _, _, err := l.round(); err != nil {
		return 0, err
	}
	if l.outputs == 0 {
		return 0, ErrNoOutput
	}
	return l.result, nil
}

// Feedback runs the pipeline in feedback mode until every stage halts and
// returns the last value output by the last stage. It returns ErrDeadlock if
// a whole round completes without any progress while some stages are still
// waiting for input.
func (l *Loop) Feedback(signal vm.Cell) (vm.Cell, error) {
	if err := l.start(signal, true); err != nil {
		return 0, err
	}
	for rounds := 1; ; rounds++ {
		done, progress, err := l.round()
		if err != nil {
			return 0, err
		}
		if done {
			l.log.WithField("rounds", rounds).Debug("feedback loop done")
			break
		}
		if !progress {
			return 0, ErrDeadlock
		}
	}
	if l.outputs == 0 {
		return 0, ErrNoOutput
	}
	return l.result, nil
}
