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

package vm

import (
	"io"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/ici"
	"github.com/pkg/errors"
)

// Parse parses program text: signed decimal integers separated by commas.
// White space around each value is ignored. On failure, the returned error is
// a *ParseError.
func Parse(text string) ([]Cell, error) {
	toks := strings.Split(strings.TrimSpace(text), ",")
	prog := make([]Cell, len(toks))
	for i, t := range toks {
		t = strings.TrimSpace(t)
		v, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return nil, &ParseError{Index: i, Token: t, Err: err}
		}
		prog[i] = Cell(v)
	}
	return prog, nil
}

// ParseMemory parses program text and returns a Memory with the given policy
// loaded with it.
func ParseMemory(text string, policy Policy) (*Memory, error) {
	prog, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return NewMemory(prog, policy), nil
}

// Load loads program text from file fileName.
func Load(fileName string, policy Policy) (*Memory, error) {
	b, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	m, err := ParseMemory(string(b), policy)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", fileName)
	}
	return m, nil
}

// WriteTo writes the contents of memory to w in program text format.
func (m *Memory) WriteTo(w io.Writer) (int64, error) {
	ew := ici.NewErrWriter(w)
	for i, v := range m.cells {
		if i > 0 {
			ew.Write([]byte{','})
		}
		io.WriteString(ew, strconv.FormatInt(int64(v), 10))
	}
	return ew.N, ew.Err
}
