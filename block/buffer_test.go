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

package block

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, count int) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blocks.img")
	s, err := Open(path, count)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreBlockPadsNewFile(t *testing.T) {
	s := openTestStore(t, 0)
	buf, err := s.Block(1)
	require.NoError(t, err)
	require.Len(t, buf, Size)
	for _, b := range buf {
		assert.Equal(t, byte(' '), b)
	}
}

func TestStoreUpdateAndReload(t *testing.T) {
	s := openTestStore(t, 4)
	buf, err := s.Block(1)
	require.NoError(t, err)
	copy(buf, "HELLO BLOCK")
	s.Update()
	require.NoError(t, s.SaveBuffers())

	s.EmptyBuffers()
	buf2, err := s.Block(1)
	require.NoError(t, err)
	assert.Equal(t, "HELLO BLOCK", string(buf2[:len("HELLO BLOCK")]))
}

func TestStoreEvictionFlushesDirty(t *testing.T) {
	s := openTestStore(t, 2)
	b1, err := s.Block(1)
	require.NoError(t, err)
	copy(b1, "FIRST")
	s.Update()

	b2, err := s.Block(2)
	require.NoError(t, err)
	copy(b2, "SECOND")
	s.Update()

	// a third distinct block forces eviction of the LRU buffer (block 1)
	_, err = s.Block(3)
	require.NoError(t, err)

	s.EmptyBuffers()
	reread, err := s.Block(1)
	require.NoError(t, err)
	assert.Equal(t, "FIRST", string(reread[:len("FIRST")]))
}

func TestStoreBufferSkipsDiskRead(t *testing.T) {
	s := openTestStore(t, 4)
	// Block(1) assigns and reads (all spaces for a fresh file).
	b1, err := s.Block(1)
	require.NoError(t, err)
	assert.Equal(t, byte(' '), b1[0])

	// Write directly to the backing file behind the Store's back.
	_, err = s.f.WriteAt([]byte("ONDISK"), 0)
	require.NoError(t, err)

	// Buffer(1) is a cache hit on the still-resident buffer: it must
	// not re-read, so the stale in-memory spaces survive.
	b1again, err := s.Buffer(1)
	require.NoError(t, err)
	assert.Equal(t, byte(' '), b1again[0])
}

