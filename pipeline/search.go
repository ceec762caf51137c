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
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Permutations calls fn with every permutation of values, generated with
// Heap's algorithm. The slice passed to fn is reused between calls and must not
// be retained. Iteration stops at the first non-nil error returned by fn and
// that error is returned.
func Permutations(values []vm.Cell, fn func(p []vm.Cell) error) error {
	a := append([]vm.Cell(nil), values...)
	c := make([]int, len(a))
	if err := fn(a); err != nil {
		return err
	}
	for i := 1; i < len(a); {
		if c[i] < i {
			if i&1 == 0 {
				a[0], a[i] = a[i], a[0]
			} else {
				a[c[i]], a[i] = a[i], a[c[i]]
			}
			if err := fn(a); err != nil {
				return err
			}
			c[i]++
			i = 1
		} else {
			c[i] = 0
			i++
		}
	}
	return nil
}

// Best tries every permutation of values as pipeline settings, starting each
// run with a zero signal, and returns the highest result along with the
// settings that produced it.
func Best(program []vm.Cell, values []vm.Cell, feedback bool, opts ...Option) (max vm.Cell, settings []vm.Cell, err error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return 0, nil, err
	}
	err = Permutations(values, func(p []vm.Cell) error {
		l, err := New(program, p, opts...)
		if err != nil {
			return err
		}
		var v vm.Cell
		if feedback {
			v, err = l.Feedback(0)
		} else {
			v, err = l.Run(0)
		}
		if err != nil {
			return errors.Wrapf(err, "settings %v", p)
		}
		if settings == nil || v > max {
			max = v
			settings = append(settings[:0], p...)
			cfg.log.WithFields(log.Fields{"signal": v, "settings": settings}).Debug("new best")
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return max, settings, nil
}
