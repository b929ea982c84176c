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

func TestStackPushPop(t *testing.T) {
	s := NewStack(4, ErrStackOverflow, ErrStackUnderflow)
	require.NoError(t, s.Push(1))
	require.NoError(t, s.Push(2))
	v, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(2), v)
	assert.Equal(t, 1, s.Depth())
}

func TestStackOverflow(t *testing.T) {
	s := NewStack(2, ErrStackOverflow, ErrStackUnderflow)
	require.NoError(t, s.Push(1))
	require.NoError(t, s.Push(2))
	err := s.Push(3)
	require.Error(t, err)
	ferr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrStackOverflow, ferr.Code)
}

func TestStackUnderflow(t *testing.T) {
	s := NewStack(2, ErrStackOverflow, ErrStackUnderflow)
	_, err := s.Pop()
	require.Error(t, err)
	ferr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrStackUnderflow, ferr.Code)
}

func TestStackPickAndSetPick(t *testing.T) {
	s := NewStack(8, ErrStackOverflow, ErrStackUnderflow)
	require.NoError(t, s.Push(10))
	require.NoError(t, s.Push(20))
	require.NoError(t, s.Push(30))
	v, err := s.Pick(1)
	require.NoError(t, err)
	assert.Equal(t, Cell(20), v)
	require.NoError(t, s.SetPick(1, 99))
	v, err = s.Pick(1)
	require.NoError(t, err)
	assert.Equal(t, Cell(99), v)
}

func TestStackRoll(t *testing.T) {
	s := NewStack(8, ErrStackOverflow, ErrStackUnderflow)
	require.NoError(t, s.Push(1))
	require.NoError(t, s.Push(2))
	require.NoError(t, s.Push(3))
	require.NoError(t, s.Roll(2)) // bring the 3rd-from-top cell to the top
	assert.Equal(t, []Cell{2, 3, 1}, s.Cells())
}

func TestStackDoubleCell(t *testing.T) {
	s := NewStack(8, ErrStackOverflow, ErrStackUnderflow)
	require.NoError(t, s.PushDouble(1, 2))
	hi, lo, err := s.PopDouble()
	require.NoError(t, err)
	assert.Equal(t, Cell(1), hi)
	assert.Equal(t, Cell(2), lo)
}
