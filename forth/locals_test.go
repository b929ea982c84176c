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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalsBraceReadBinding(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, ": ADD3 {: a b c :} a b c + + ;")
	run(t, e, "1 2 3 ADD3")
	v, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(6), v)
}

func TestLocalsBarSyntax(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, ": DOUBLE LOCALS| n | n n + ;")
	run(t, e, "21 DOUBLE")
	v, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(42), v)
}

func TestLocalsRightmostDeclaredEndsOnTop(t *testing.T) {
	e, _ := newTestEngine(t)
	// first pop off the data stack (the arg pushed last, c) binds to the
	// last-declared name, so SUB reads as a - b - c given a call a b c.
	run(t, e, ": SUB {: a b c :} a b - c - ;")
	run(t, e, "10 2 3 SUB")
	v, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(5), v)
}

func TestLocalsToWritesSlot(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, ": BUMP {: n :} 1 TO n n ;")
	run(t, e, "41 BUMP")
	v, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(1), v)
}

func TestLocalsToOnNonLocalThrows(t *testing.T) {
	e, _ := newTestEngine(t)
	code, err := e.RunOne(": BAD 5 TO NOTALOCAL ;", false)
	require.NoError(t, err)
	assert.Equal(t, ErrInvalidNameArgument, code)
}

func TestLocalsAreScopedPerDefinition(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, ": FIRST {: x :} x 1+ ;")
	run(t, e, ": SECOND {: x :} x 2* ;")
	run(t, e, "5 FIRST")
	v, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(6), v)

	run(t, e, "5 SECOND")
	v, err = e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(10), v)
}
