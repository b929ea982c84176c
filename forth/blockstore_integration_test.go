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

// External test package: wiring an *Engine to a real block.Store would
// be a forth -> block -> forth import cycle from inside package forth
// itself, so this lives in forth_test where both are ordinary imports.
package forth_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbz47h/seaforth/block"
	"github.com/dbz47h/seaforth/forth"
)

func newBlockTestEngine(t *testing.T) (*forth.Engine, *block.Store, *strings.Builder) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blocks.img")
	store, err := block.Open(path, 4)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	var out strings.Builder
	e, err := forth.New(
		forth.DictionarySize(1<<14),
		forth.WithOutput(func(s string) error { out.WriteString(s); return nil }, func() error { out.WriteByte('\n'); return nil }),
		forth.WithBlockStore(store),
	)
	require.NoError(t, err)
	return e, store, &out
}

func run(t *testing.T, e *forth.Engine, cmd string) {
	t.Helper()
	code, err := e.RunOne(cmd, false)
	require.NoError(t, err)
	require.Zero(t, code, "unexpected THROW from %q", cmd)
}

func TestBlockWordReadsStoreIntoStagingArea(t *testing.T) {
	e, store, out := newBlockTestEngine(t)
	buf, err := store.Block(1)
	require.NoError(t, err)
	copy(buf, "HELLO WORLD")
	store.Update() // mark dirty so BLOCK's re-read-if-clean check doesn't undo the edit

	run(t, e, "1 BLOCK 11 TYPE")
	assert.Contains(t, out.String(), "HELLO WORLD")
}

func TestBufferThenUpdateThenSaveBuffersPersists(t *testing.T) {
	e, _, out := newBlockTestEngine(t)
	run(t, e, "2 BUFFER DROP")
	run(t, e, `2 BLOCK S" PATCHED" >R SWAP R> MOVE UPDATE`)
	run(t, e, "SAVE-BUFFERS EMPTY-BUFFERS")
	run(t, e, "2 BLOCK 7 TYPE")
	assert.Contains(t, out.String(), "PATCHED")
}

func TestLoadInterpretsBlockAsSource(t *testing.T) {
	e, store, _ := newBlockTestEngine(t)
	buf, err := store.Block(3)
	require.NoError(t, err)
	copy(buf, "3 4 + ")
	store.Update()

	run(t, e, "3 LOAD")
	v, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, forth.Cell(7), v)
}

func TestBlockWithoutStoreThrows(t *testing.T) {
	e, err := forth.New(forth.DictionarySize(1 << 14))
	require.NoError(t, err)
	code, rerr := e.RunOne("1 BLOCK", false)
	require.NoError(t, rerr)
	assert.NotZero(t, code)
}
