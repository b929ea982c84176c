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

const defaultDictionarySize = 1 << 16

// Option configures an Engine at construction time, following the same
// functional-options shape the rest of this stack's embeddable
// components use.
type Option func(*Engine) error

// DictionarySize sets the number of cells in the dictionary arena.
func DictionarySize(n int) Option {
	return func(e *Engine) error { e.dictSize = n; return nil }
}

// DataStackSize overrides the default data stack depth.
func DataStackSize(n int) Option {
	return func(e *Engine) error {
		e.ctx.Data = NewStack(n, ErrStackOverflow, ErrStackUnderflow)
		return nil
	}
}

// ReturnStackSize overrides the default return stack depth.
func ReturnStackSize(n int) Option {
	return func(e *Engine) error {
		e.ctx.Return = NewStack(n, ErrReturnStackOverflow, ErrReturnStackUnderflow)
		return nil
	}
}

// WithOutput wires the mandatory TYPE/CR host callbacks.
func WithOutput(writeString func(string) error, sendCR func() error) Option {
	return func(e *Engine) error {
		e.ctx.WriteString = writeString
		e.ctx.SendCR = sendCR
		return nil
	}
}

// WithAccept wires the line-input callback used by REFILL on the
// console input source.
func WithAccept(accept func([]byte) (int, error)) Option {
	return func(e *Engine) error { e.ctx.Accept = accept; return nil }
}

// WithKeyboard wires the raw character-at-a-time callbacks KEY/KEY?/
// EKEY/EKEY?/EKEY>CHAR (spec 4.J).
func WithKeyboard(key func() (byte, error), keyQ func() (bool, error), ekey func() (Cell, error), ekeyQ func() (bool, error), ekeyToChar func(Cell) (byte, bool)) Option {
	return func(e *Engine) error {
		e.ctx.Key, e.ctx.KeyQ = key, keyQ
		e.ctx.EKey, e.ctx.EKeyQ, e.ctx.EKeyToChar = ekey, ekeyQ, ekeyToChar
		return nil
	}
}

// WithTerminal wires AT-XY/PAGE and the terminal's column width.
func WithTerminal(width int, atXY func(row, col int) error, page func() error) Option {
	return func(e *Engine) error {
		e.ctx.TermWidth = width
		e.ctx.AtXY = atXY
		e.ctx.Page = page
		return nil
	}
}

// WithBlockStore wires an optional block buffer manager (spec 4.K).
func WithBlockStore(b BlockStore) Option {
	return func(e *Engine) error { e.ctx.Blocks = b; return nil }
}

// WithErrorLookup wires host-defined negative THROW codes into
// ErrorString (spec 6 "Error codes").
func WithErrorLookup(lookup func(code Cell) (string, bool)) Option {
	return func(e *Engine) error { e.ctx.ErrorLookup = lookup; return nil }
}

// Engine bundles a Dictionary and its Context behind the embedding
// API a host program actually drives: RunOne, TryHostFunc and Run.
type Engine struct {
	Dict *Dictionary
	ctx  *Context

	dictSize int
}

// New builds an Engine with every primitive word registered and the
// default ROOT/FORTH search order in place.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{ctx: NewContext(), dictSize: defaultDictionarySize}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.Dict = NewDictionary(e.dictSize)
	if err := registerPrimitives(e.Dict); err != nil {
		return nil, err
	}
	e.ctx.Current = e.Dict.Forth
	e.ctx.Order = []*Wordlist{e.Dict.Root, e.Dict.Forth}
	return e, nil
}

// Context exposes the engine's runtime registers to host code that
// needs to push arguments, inspect BASE, etc. between RunOne calls.
func (e *Engine) Context() *Context { return e.ctx }

// Run drives the console REPL (QUIT) until BYE is executed or the
// input source can no longer be refilled.
func (e *Engine) Run() error {
	err := e.Dict.Quit(e.ctx)
	if IsBye(err) {
		return nil
	}
	return err
}

// RunOne is a convenience forward to Dictionary.RunOne bound to this
// engine's context (spec 6 "Run-one-command").
func (e *Engine) RunOne(cmd string, clearStack bool) (Cell, error) {
	return e.Dict.RunOne(e.ctx, cmd, clearStack)
}

// TryHostFunc is a convenience forward to Dictionary.TryHostFunc bound
// to this engine's context (spec 6 "Try-a-host-function").
func (e *Engine) TryHostFunc(fn func(ctx *Context) error) (Cell, error) {
	return e.Dict.TryHostFunc(e.ctx, fn)
}
