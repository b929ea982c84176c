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

import "strings"

// registerOutputPrimitives installs the text-output words of spec
// 4.A/4.I, plus the terminal-I/O word set of spec 4.J (KEY and
// friends, ACCEPT, AT-XY, PAGE). Every word here is a thin shim over a
// host callback wired by an engine.go Option (WithOutput/WithAccept/
// WithKeyboard/WithTerminal), throwing ErrUnsupportedOperation when the
// relevant callback was never wired.
func (d *Dictionary) registerOutputPrimitives(reg registrar) {
	reg("TYPE", false, func(d *Dictionary, ctx *Context) error {
		if ctx.WriteString == nil {
			return newError(ErrUnsupportedOperation)
		}
		n, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		addr, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		s, err := d.bytesAt(addr, n)
		if err != nil {
			return err
		}
		return ctx.WriteString(s)
	})
	reg("EMIT", false, func(d *Dictionary, ctx *Context) error {
		if ctx.WriteString == nil {
			return newError(ErrUnsupportedOperation)
		}
		v, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		return ctx.WriteString(string(byte(v)))
	})
	reg("CR", false, func(d *Dictionary, ctx *Context) error {
		if ctx.SendCR == nil {
			return newError(ErrUnsupportedOperation)
		}
		return ctx.SendCR()
	})
	reg("SPACE", false, func(d *Dictionary, ctx *Context) error {
		if ctx.WriteString == nil {
			return newError(ErrUnsupportedOperation)
		}
		return ctx.WriteString(" ")
	})
	reg("SPACES", false, func(d *Dictionary, ctx *Context) error {
		if ctx.WriteString == nil {
			return newError(ErrUnsupportedOperation)
		}
		n, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		if n <= 0 {
			return nil
		}
		return ctx.WriteString(strings.Repeat(" ", int(n)))
	})
	reg(".", false, func(d *Dictionary, ctx *Context) error {
		v, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		return dotCell(ctx, v)
	})
	reg("U.", false, func(d *Dictionary, ctx *Context) error {
		if ctx.WriteString == nil {
			return newError(ErrUnsupportedOperation)
		}
		v, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		return ctx.WriteString(FormatUnsigned(UCell(v), ctx.Base) + " ")
	})
	reg("?", false, func(d *Dictionary, ctx *Context) error {
		addr, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		v, err := d.Fetch(addr)
		if err != nil {
			return err
		}
		return dotCell(ctx, v)
	})
	reg("KEY", false, func(d *Dictionary, ctx *Context) error {
		if ctx.Key == nil {
			return newError(ErrUnsupportedOperation)
		}
		c, err := ctx.Key()
		if err != nil {
			return newErrorMsg(ErrCharIO, err.Error())
		}
		return ctx.Data.Push(Cell(c))
	})
	reg("KEY?", false, func(d *Dictionary, ctx *Context) error {
		if ctx.KeyQ == nil {
			return newError(ErrUnsupportedOperation)
		}
		ok, err := ctx.KeyQ()
		if err != nil {
			return newErrorMsg(ErrCharIO, err.Error())
		}
		return ctx.Data.Push(BoolCell(ok))
	})
	reg("EKEY", false, func(d *Dictionary, ctx *Context) error {
		if ctx.EKey == nil {
			return newError(ErrUnsupportedOperation)
		}
		u, err := ctx.EKey()
		if err != nil {
			return newErrorMsg(ErrCharIO, err.Error())
		}
		return ctx.Data.Push(u)
	})
	reg("EKEY?", false, func(d *Dictionary, ctx *Context) error {
		if ctx.EKeyQ == nil {
			return newError(ErrUnsupportedOperation)
		}
		ok, err := ctx.EKeyQ()
		if err != nil {
			return newErrorMsg(ErrCharIO, err.Error())
		}
		return ctx.Data.Push(BoolCell(ok))
	})
	reg("EKEY>CHAR", false, func(d *Dictionary, ctx *Context) error {
		if ctx.EKeyToChar == nil {
			return newError(ErrUnsupportedOperation)
		}
		u, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		c, ok := ctx.EKeyToChar(u)
		if !ok {
			if err := ctx.Data.Push(u); err != nil {
				return err
			}
			return ctx.Data.Push(FalseCell)
		}
		if err := ctx.Data.Push(Cell(c)); err != nil {
			return err
		}
		return ctx.Data.Push(TrueCell)
	})
	reg("ACCEPT", false, func(d *Dictionary, ctx *Context) error {
		if ctx.Accept == nil {
			return newError(ErrUnsupportedOperation)
		}
		n1, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		addr, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		if n1 < 0 || int(addr)+int(n1) > d.hereMax {
			return newError(ErrInvalidMemoryAddress)
		}
		buf := make([]byte, n1)
		n, err := ctx.Accept(buf)
		if err != nil {
			return newErrorMsg(ErrCharIO, err.Error())
		}
		if n > 0 && buf[n-1] == '\n' {
			n--
			if n > 0 && buf[n-1] == '\r' {
				n--
			}
		}
		for i := 0; i < n; i++ {
			d.Mem[int(addr)+i] = Cell(buf[i])
		}
		return ctx.Data.Push(Cell(n))
	})
	reg("AT-XY", false, func(d *Dictionary, ctx *Context) error {
		if ctx.AtXY == nil {
			return newError(ErrUnsupportedOperation)
		}
		row, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		col, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		return ctx.AtXY(int(row), int(col))
	})
	reg("PAGE", false, func(d *Dictionary, ctx *Context) error {
		if ctx.Page == nil {
			return newError(ErrUnsupportedOperation)
		}
		return ctx.Page()
	})
}
