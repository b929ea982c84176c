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

// Package term supplies the host-side terminal I/O a forth.Engine
// needs: buffered line/char output, raw keystroke input and the
// VT100 cursor-positioning primitives AT-XY/PAGE consume. None of
// this is required by the engine itself (forth.Context's callbacks
// are nil-checked and throw -21 when unused); it exists so
// cmd/seaforth has somewhere to get them from.
package term

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// runeWriter is the subset of bufio.Writer this package relies on to
// avoid re-encoding every byte write through WriteRune.
type runeWriter interface {
	io.Writer
	WriteRune(r rune) (int, error)
}

func newRuneWriter(w io.Writer) runeWriter {
	if rw, ok := w.(runeWriter); ok {
		return rw
	}
	return bufio.NewWriter(w)
}

// Output is the write side of the engine's I/O surface: forth.Cell
// text (TYPE, EMIT, CR) plus the VT100 escapes backing AT-XY and
// PAGE. The zero value is not usable; build one with NewOutput.
type Output struct {
	w     runeWriter
	flush func() error
	size  func() (width, height int)
}

// NewOutput wraps w for use with forth.WithOutput/WithTerminal. flush
// and size may be nil, in which case Flush is a no-op and Size
// reports 0, 0. If w doesn't already implement runeWriter it is wrapped
// in an unexported bufio.Writer, so flush should close over that same
// w (pass a *bufio.Writer in as w and its own Flush method here) or
// buffered bytes have no way back out.
func NewOutput(w io.Writer, flush func() error, size func() (width, height int)) *Output {
	return &Output{w: newRuneWriter(w), flush: flush, size: size}
}

// WriteString implements the forth.Context.WriteString callback.
func (o *Output) WriteString(s string) error {
	_, err := o.w.Write([]byte(s))
	return errors.Wrap(err, "terminal write failed")
}

// SendCR implements forth.Context.SendCR: a bare newline, matching
// this engine's line-output convention rather than a full CRLF pair.
func (o *Output) SendCR() error {
	_, err := o.w.WriteRune('\n')
	if err := errors.Wrap(err, "terminal write failed"); err != nil {
		return err
	}
	return o.Flush()
}

// Flush drains any buffering between this Output and its underlying
// writer.
func (o *Output) Flush() error {
	if o.flush == nil {
		return nil
	}
	return o.flush()
}

// Size reports the terminal's current width and height in character
// cells, used to seed forth.WithTerminal's width argument.
func (o *Output) Size() (width, height int) {
	if o.size == nil {
		return 0, 0
	}
	return o.size()
}

// Keyboard is the read side: raw, unbuffered single-byte reads off r,
// the shape raw tty mode gives cmd/seaforth once setRawIO has run.
// Under raw mode one byte is one keystroke, so Key and EKey reduce to
// the same read; EKeyToChar is the identity for byte values 0-255 and
// reports false outside that range (spec 4.J "EKEY>CHAR").
type Keyboard struct {
	r io.Reader
}

// NewKeyboard wraps r for use with forth.WithKeyboard.
func NewKeyboard(r io.Reader) *Keyboard {
	return &Keyboard{r: r}
}

func (k *Keyboard) readByte() (byte, error) {
	var b [1]byte
	_, err := io.ReadFull(k.r, b[:])
	if err != nil {
		return 0, errors.Wrap(err, "key read failed")
	}
	return b[0], nil
}

// Key implements the KEY callback: block for the next keystroke.
func (k *Keyboard) Key() (byte, error) { return k.readByte() }

// KeyQ implements KEY?. Raw single-byte reads give no portable way to
// peek without consuming, so this engine always reports a key as
// available and lets Key block; hosts that need true non-blocking
// polling should wire their own KeyQ via WithKeyboard instead of this
// type's zero-cost stand-in.
func (k *Keyboard) KeyQ() (bool, error) { return true, nil }

// EKey implements EKEY: under raw mode, one byte is one event.
func (k *Keyboard) EKey() (int32, error) {
	b, err := k.readByte()
	return int32(b), err
}

// EKeyQ implements EKEY?.
func (k *Keyboard) EKeyQ() (bool, error) { return true, nil }

// EKeyToChar implements EKEY>CHAR: every event this Keyboard produces
// is a single byte, so the conversion succeeds for those; values
// outside 0-255 report false.
func (k *Keyboard) EKeyToChar(ev int32) (byte, bool) {
	if ev < 0 || ev > 255 {
		return 0, false
	}
	return byte(ev), true
}

// Accept implements the ACCEPT/REFILL line-input callback: read up to
// len(buf) bytes up to and including the next newline. ACCEPT
// (forth/primitives_output.go) trims that newline; Refill keeps it,
// where it parses as whitespace.
func (k *Keyboard) Accept(buf []byte) (int, error) {
	br, ok := k.r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(k.r)
		k.r = br
	}
	line, err := br.ReadSlice('\n')
	if err != nil && err != bufio.ErrBufferFull && len(line) == 0 {
		return 0, errors.Wrap(err, "line read failed")
	}
	n := copy(buf, line)
	return n, nil
}
