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

// Package block implements the optional BLOCK word set (spec 4.K),
// grounded on original_source's forth_blocks.c: a small set of
// fixed-size buffers, each assigned to at most one block number at a
// time, flushed back to disk least-recently-used first.
package block

import (
	"io"
	"os"

	"github.com/dbz47h/seaforth/forth"
	"github.com/pkg/errors"
)

// Size is the fixed size, in bytes, of a single block (spec 4.K:
// "blocks are exactly 1024 bytes").
const Size = 1024

// defaultBufferCount mirrors FORTH_BLOCK_BUFFERS_COUNT: enough
// buffers to keep a handful of blocks resident without the memory
// cost of caching the whole file.
const defaultBufferCount = 8

// Store is a forth.BlockStore backed by a single flat file, one
// Size-byte block per block number (1-based, per spec 4.K).
type Store struct {
	f       *os.File
	bufs    [][]byte
	blk     []forth.Cell // block number assigned to bufs[i], 0 = free
	dirty   []bool
	lastUse []int64
	clock   int64
	current int
}

// Open opens (creating if necessary) the block file at path, backing
// it with count buffers. count <= 0 uses defaultBufferCount.
func Open(path string, count int) (*Store, error) {
	if count <= 0 {
		count = defaultBufferCount
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, errors.Wrap(err, "open block file")
	}
	s := &Store{
		f:       f,
		bufs:    make([][]byte, count),
		blk:     make([]forth.Cell, count),
		dirty:   make([]bool, count),
		lastUse: make([]int64, count),
		current: -1,
	}
	for i := range s.bufs {
		s.bufs[i] = make([]byte, Size)
	}
	return s, nil
}

// Close flushes dirty buffers and closes the backing file.
func (s *Store) Close() error {
	if err := s.SaveBuffers(); err != nil {
		return err
	}
	return s.f.Close()
}

// BlockSize implements forth.BlockStore.
func (s *Store) BlockSize() int { return Size }

func (s *Store) readBlock(n forth.Cell, buf []byte) error {
	off := int64(n-1) * Size
	cnt, err := s.f.ReadAt(buf, off)
	if err != nil && err != io.EOF {
		return errors.Wrap(err, "read block")
	}
	for i := cnt; i < len(buf); i++ {
		buf[i] = ' '
	}
	return nil
}

func (s *Store) writeBlock(n forth.Cell, buf []byte) error {
	off := int64(n-1) * Size
	_, err := s.f.WriteAt(buf, off)
	return errors.Wrap(err, "write block")
}

// evict picks the least-recently-used buffer, flushing it first if
// dirty, and returns its index ready for reassignment.
func (s *Store) evict() (int, error) {
	ix := 0
	for i := 1; i < len(s.bufs); i++ {
		if s.lastUse[ix] > s.lastUse[i] {
			ix = i
		}
	}
	if s.dirty[ix] {
		if err := s.writeBlock(s.blk[ix], s.bufs[ix]); err != nil {
			return 0, err
		}
		s.dirty[ix] = false
	}
	return ix, nil
}

// Buffer implements forth.BlockStore's BUFFER ( blk -- c-addr ):
// assign a buffer to blk without reading its contents from disk if it
// isn't already resident.
func (s *Store) Buffer(n forth.Cell) ([]byte, error) {
	if n < 1 {
		return nil, errors.Errorf("invalid block number %d", n)
	}
	for i, b := range s.blk {
		if b == n {
			s.clock++
			s.lastUse[i] = s.clock
			s.current = i
			return s.bufs[i], nil
		}
	}
	ix, err := s.evict()
	if err != nil {
		return nil, err
	}
	s.blk[ix] = n
	s.dirty[ix] = false
	s.clock++
	s.lastUse[ix] = s.clock
	s.current = ix
	return s.bufs[ix], nil
}

// Block implements forth.BlockStore's BLOCK ( blk -- c-addr ): like
// Buffer, but guarantees the buffer holds blk's on-disk contents.
func (s *Store) Block(n forth.Cell) ([]byte, error) {
	buf, err := s.Buffer(n)
	if err != nil {
		return nil, err
	}
	if !s.dirty[s.current] {
		if err := s.readBlock(n, buf); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// Update implements UPDATE: mark the most recently fetched buffer
// dirty, so SAVE-BUFFERS/FLUSH writes it back.
func (s *Store) Update() {
	if s.current >= 0 {
		s.dirty[s.current] = true
	}
}

// SaveBuffers implements SAVE-BUFFERS: flush every dirty buffer
// without discarding the assignment.
func (s *Store) SaveBuffers() error {
	for i, dirty := range s.dirty {
		if !dirty {
			continue
		}
		if err := s.writeBlock(s.blk[i], s.bufs[i]); err != nil {
			return err
		}
		s.dirty[i] = false
	}
	return nil
}

// EmptyBuffers implements EMPTY-BUFFERS: discard every buffer
// assignment without writing anything back.
func (s *Store) EmptyBuffers() {
	for i := range s.bufs {
		s.blk[i] = 0
		s.dirty[i] = false
		s.lastUse[i] = 0
	}
	s.current = -1
}
