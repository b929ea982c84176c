// This file is part of seaforth - https://github.com/dbz47h/seaforth
//
// Copyright 2024 Denis Bernard <db047h@gmail.com>
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

package forth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyWithoutCallbackThrowsUnsupported(t *testing.T) {
	e, _ := newTestEngine(t)
	code, err := e.RunOne("KEY", false)
	require.NoError(t, err)
	assert.Equal(t, ErrUnsupportedOperation, code)
}

func TestKeyCallsWiredCallback(t *testing.T) {
	var out strings.Builder
	e, err := New(
		DictionarySize(1<<14),
		WithOutput(func(s string) error { out.WriteString(s); return nil }, func() error { return nil }),
		WithKeyboard(
			func() (byte, error) { return 'A', nil },
			func() (bool, error) { return true, nil },
			func() (Cell, error) { return 65, nil },
			func() (bool, error) { return true, nil },
			func(u Cell) (byte, bool) { return byte(u), true },
		),
	)
	require.NoError(t, err)
	run(t, e, "KEY")
	v, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell('A'), v)

	run(t, e, "KEY?")
	v, err = e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, TrueCell, v)

	run(t, e, "EKEY")
	v, err = e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(65), v)

	run(t, e, "EKEY EKEY>CHAR")
	flag, err := e.Context().Data.Pop()
	require.NoError(t, err)
	ch, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, TrueCell, flag)
	assert.Equal(t, Cell('A'), ch)
}

func TestAcceptReadsLineIntoBuffer(t *testing.T) {
	e, err := New(
		DictionarySize(1<<14),
		WithOutput(func(s string) error { return nil }, func() error { return nil }),
		WithAccept(func(buf []byte) (int, error) { return copy(buf, "HI\n"), nil }),
	)
	require.NoError(t, err)
	run(t, e, "HERE 10 ACCEPT")
	n, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(2), n)
}

func TestAtXYAndPageCallHostCallbacks(t *testing.T) {
	var calls []string
	e, err := New(
		DictionarySize(1<<14),
		WithOutput(func(s string) error { return nil }, func() error { return nil }),
		WithTerminal(80,
			func(row, col int) error { calls = append(calls, "atxy"); assert.Equal(t, 5, row); assert.Equal(t, 3, col); return nil },
			func() error { calls = append(calls, "page"); return nil },
		),
	)
	require.NoError(t, err)
	run(t, e, "3 5 AT-XY")
	run(t, e, "PAGE")
	assert.Equal(t, []string{"atxy", "page"}, calls)
}

func TestPageWithoutCallbackThrowsUnsupported(t *testing.T) {
	e, _ := newTestEngine(t)
	code, err := e.RunOne("PAGE", false)
	require.NoError(t, err)
	assert.Equal(t, ErrUnsupportedOperation, code)
}

func TestEvaluateInterpretsStringFromStack(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, `S" 3 4 +" EVALUATE`)
	v, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(7), v)
}

func TestRefillInEvaluatedStringReturnsFalse(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, "REFILL")
	v, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, FalseCell, v)
}
