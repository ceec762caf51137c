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

package ici_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/db47h/intcode/internal/ici"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type failWriter struct{ after int }

var errFail = errors.New("disk full")

func (f *failWriter) Write(p []byte) (int, error) {
	if f.after <= 0 {
		return 0, errFail
	}
	f.after--
	return len(p), nil
}

func TestErrWriter(t *testing.T) {
	var b bytes.Buffer
	ew := ici.NewErrWriter(&b)
	io.WriteString(ew, "1,2")
	io.WriteString(ew, ",3")
	assert.NoError(t, ew.Err)
	assert.Equal(t, int64(5), ew.N)
	assert.Equal(t, "1,2,3", b.String())
	assert.True(t, ew == ici.NewErrWriter(ew))
}

func TestErrWriter_sticky(t *testing.T) {
	ew := ici.NewErrWriter(&failWriter{after: 1})
	_, err := ew.Write([]byte("ok"))
	assert.NoError(t, err)
	_, err = ew.Write([]byte("ko"))
	assert.Equal(t, errFail, errors.Cause(err))
	n, err := ew.Write([]byte("again"))
	assert.Equal(t, 0, n)
	assert.Equal(t, errFail, errors.Cause(err))
	assert.Equal(t, int64(2), ew.N)
}
