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

const (
	defaultDataStack   = 1024
	defaultReturnStack = 1024
	defaultOrderDepth  = 16
	defaultHandlerDepth = 64
	defaultPadSize     = 256
	maxNumericScratch  = 80 // room for a 64-bit value in base 2, plus sign

	// blockBufferCells is the size, in cells, of the block staging
	// buffer reserved in the dictionary arena (forth/dict.go
	// blockBase). Spec 4.K fixes the block size at 1024 bytes; this
	// engine stores one byte per cell like the rest of the arena, so
	// the reservation is 1024 cells.
	blockBufferCells = 1024
)

// handlerFrame is the state a CATCH boundary snapshots so it can be
// restored verbatim when the protected XT throws (spec 4.E).
type handlerFrame struct {
	dataDepth   int
	returnDepth int
	ip          int
}

// source describes the current input, set up via REFILL or EVALUATE
// (spec 4.F).
type source struct {
	buf    string
	toIn   int
	id     Cell // 0 = user input, -1 = string/EVALUATE, >0 = file handle
	blk    Cell // block number backing this source, 0 = none
	parent *source
}

// Context is the process-wide runtime record described in spec 3: two
// stacks, the instruction pointer, numeric base, compile state, input
// source description, pictured-output scratch, the word being
// defined, handler chain and host I/O callbacks.
type Context struct {
	Data   *Stack
	Return *Stack

	IP int // threaded-code program counter, an index into Dictionary.Mem

	Base  Cell
	State Cell // 0 = interpreting, non-zero = compiling

	Order   []*Wordlist
	Current *Wordlist

	src *source

	// padPos is the pictured-output cursor (spec 4.I): an absolute
	// address into the owning Dictionary's arena, between d.padBase and
	// d.padBase+defaultPadSize, that <# resets to the high end and #
	// walks downward as digits accumulate.
	padPos Cell

	// Terminal geometry used for pretty-printing (spec 3).
	TermWidth int
	TermCol   int

	Defining Cell // xt of the word currently being compiled, 0 = none

	AbortMessage string

	handlers []handlerFrame

	locals *localFrame // compile-time scratch table for {: :} / LOCALS|

	// localBases tracks, for each threaded call currently on the Go
	// call stack, the return-stack depth its locals (if any) begin at.
	// runThreadedAt pushes one entry per call and pops it via defer, so
	// it self-corrects across THROW and EXIT alike.
	localBases []Cell

	cf []cfEntry // control-flow stack for IF/BEGIN/DO/CASE compilation

	parsedName string // name most recently PARSE-NAME'd, for error reporting

	UserBreak bool
	Trace     bool

	// Host callbacks (spec 4.J / 6). WriteString and SendCR are
	// mandatory; the rest are optional and throw -21 (unsupported
	// operation) when invoked but nil.
	WriteString func(s string) error
	SendCR      func() error
	Accept      func(buf []byte) (int, error)
	Key         func() (byte, error)
	KeyQ        func() (bool, error)
	EKey        func() (Cell, error)
	EKeyQ       func() (bool, error)
	EKeyToChar  func(ev Cell) (ch byte, ok bool)
	AtXY        func(row, col int) error
	Page        func() error

	// ErrorLookup resolves host-defined negative THROW codes that fall
	// outside the standard table (spec 6 "Error codes").
	ErrorLookup func(code Cell) (string, bool)

	// Blocks is the optional block buffer manager (spec 4.K). Nil
	// unless the host wires one in via WithBlockStore.
	Blocks BlockStore

	// blockCurrent/blockBuf track which block's bytes are presently
	// copied into the dictionary's block staging buffer, and the live
	// Store-owned slice they were copied from, so writes made through
	// C@/C!/TYPE against the staging buffer can be synced back before
	// the buffer is reassigned or flushed.
	blockCurrent Cell
	blockBuf     []byte
}

// BlockStore is the narrow collaborator interface the engine requires
// from an optional block subsystem (package block implements it).
// Only BLOCK/BUFFER/UPDATE/SAVE-BUFFERS/EMPTY-BUFFERS/FLUSH/LOAD/LIST
// depend on it; every other word in this package works without one.
type BlockStore interface {
	Block(n Cell) ([]byte, error)
	Buffer(n Cell) ([]byte, error)
	Update()
	SaveBuffers() error
	EmptyBuffers()
	BlockSize() int
}

// NewContext builds a runtime context with default stack sizes. Use
// the Option functions in engine.go to customize sizing and I/O.
func NewContext() *Context {
	ctx := &Context{
		Data:      NewStack(defaultDataStack, ErrStackOverflow, ErrStackUnderflow),
		Return:    NewStack(defaultReturnStack, ErrReturnStackOverflow, ErrReturnStackUnderflow),
		Base:      10,
		State:     0,
		TermWidth: 80,
	}
	return ctx
}

// Compiling reports whether the context is in compile state.
func (ctx *Context) Compiling() bool { return ctx.State != 0 }

// snapshot captures the handler-frame fields needed by CATCH.
func (ctx *Context) snapshot() handlerFrame {
	return handlerFrame{dataDepth: ctx.Data.Depth(), returnDepth: ctx.Return.Depth(), ip: ctx.IP}
}

func (ctx *Context) restore(f handlerFrame) {
	ctx.Data.Restore(f.dataDepth)
	ctx.Return.Restore(f.returnDepth)
	ctx.IP = f.ip
}
