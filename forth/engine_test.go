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

// newTestEngine builds an Engine with TYPE/CR wired to a strings.Builder
// so tests can assert on printed output as well as stack contents.
func newTestEngine(t *testing.T) (*Engine, *strings.Builder) {
	t.Helper()
	var out strings.Builder
	e, err := New(
		DictionarySize(1<<14),
		WithOutput(func(s string) error { out.WriteString(s); return nil }, func() error { out.WriteByte('\n'); return nil }),
	)
	require.NoError(t, err)
	return e, &out
}

func run(t *testing.T, e *Engine, cmd string) {
	t.Helper()
	code, err := e.RunOne(cmd, false)
	require.NoError(t, err)
	require.Zero(t, code, "unexpected THROW from %q", cmd)
}

func TestEngineArithmetic(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, "2 3 + 4 *")
	v, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(20), v)
}

func TestEngineStackWords(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, "1 2 3 ROT")
	got := e.Context().Data.Cells()
	assert.Equal(t, []Cell{2, 3, 1}, got)
}

func TestEngineColonDefinition(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, ": SQUARE DUP * ;")
	run(t, e, "7 SQUARE")
	v, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(49), v)
}

func TestEngineIfElse(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, ": SIGNUM DUP 0< IF DROP -1 ELSE 0> IF 1 ELSE 0 THEN THEN ;")
	run(t, e, "-5 SIGNUM")
	v, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(-1), v)

	run(t, e, "5 SIGNUM")
	v, err = e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(1), v)
}

func TestEngineDoLoop(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, ": SUM10 0 10 0 DO I + LOOP ;")
	run(t, e, "SUM10")
	v, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(45), v)
}

func TestEngineTypeOutput(t *testing.T) {
	e, out := newTestEngine(t)
	run(t, e, `: GREET S" HELLO" TYPE ;`)
	run(t, e, "GREET")
	assert.Contains(t, out.String(), "HELLO")
}

func TestEngineDotQuote(t *testing.T) {
	e, out := newTestEngine(t)
	run(t, e, `." DIRECT"`)
	assert.Contains(t, out.String(), "DIRECT")

	out.Reset()
	run(t, e, `: GREET2 ." COMPILED" ;`)
	run(t, e, "GREET2")
	assert.Contains(t, out.String(), "COMPILED")
}

func TestEngineCatchThrow(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, ": BOOM 42 THROW ;")
	code, err := e.RunOne("BOOM", false)
	require.NoError(t, err)
	assert.Equal(t, Cell(42), code)
}

func TestEngineUnknownWordThrows(t *testing.T) {
	e, _ := newTestEngine(t)
	code, err := e.RunOne("NOSUCHWORD", true)
	require.NoError(t, err)
	assert.NotZero(t, code)
}

func TestEngineVariableConstant(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, "VARIABLE X")
	run(t, e, "42 X !")
	run(t, e, "X @")
	v, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(42), v)

	run(t, e, "100 CONSTANT HUNDRED")
	run(t, e, "HUNDRED")
	v, err = e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(100), v)
}
