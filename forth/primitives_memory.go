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

// registerMemoryPrimitives installs the arena access words of spec
// 4.A/4.H. Since Dictionary.Mem is Cell-addressed rather than
// byte-addressed, C@/C!/CHARS/CHAR+ are plain aliases of @/!/CELLS/
// CELL+: there is no narrower unit to model.
func (d *Dictionary) registerMemoryPrimitives(reg registrar) {
	reg("@", false, fetchWord)
	reg("!", false, storeWord)
	reg("C@", false, fetchWord)
	reg("C!", false, storeWord)
	reg("+!", false, func(d *Dictionary, ctx *Context) error {
		addr, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		n, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		v, err := d.Fetch(addr)
		if err != nil {
			return err
		}
		return d.Store(addr, v+n)
	})
	reg("2@", false, func(d *Dictionary, ctx *Context) error {
		addr, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		lo, err := d.Fetch(addr)
		if err != nil {
			return err
		}
		hi, err := d.Fetch(addr + 1)
		if err != nil {
			return err
		}
		return ctx.Data.PushDouble(hi, lo)
	})
	reg("2!", false, func(d *Dictionary, ctx *Context) error {
		addr, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		hi, lo, err := ctx.Data.PopDouble()
		if err != nil {
			return err
		}
		if err := d.Store(addr, lo); err != nil {
			return err
		}
		return d.Store(addr+1, hi)
	})
	reg("HERE", false, func(d *Dictionary, ctx *Context) error {
		return ctx.Data.Push(d.Here())
	})
	reg(",", false, func(d *Dictionary, ctx *Context) error {
		v, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		return d.Comma(v)
	})
	reg("C,", false, func(d *Dictionary, ctx *Context) error {
		v, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		return d.Comma(v)
	})
	reg("ALLOT", false, func(d *Dictionary, ctx *Context) error {
		n, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		return d.Allot(int(n))
	})
	reg("ALIGN", false, func(d *Dictionary, ctx *Context) error {
		d.Align()
		return nil
	})
	reg("ALIGNED", false, func(d *Dictionary, ctx *Context) error {
		d.Align()
		return nil
	})
	reg("CELLS", false, func(d *Dictionary, ctx *Context) error { return nil })
	reg("CELL+", false, unop(func(a Cell) Cell { return a + 1 }))
	reg("CHARS", false, func(d *Dictionary, ctx *Context) error { return nil })
	reg("CHAR+", false, unop(func(a Cell) Cell { return a + 1 }))
	reg("MOVE", false, func(d *Dictionary, ctx *Context) error {
		n, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		dst, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		src, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		if int(src) < 0 || int(dst) < 0 || int(src)+int(n) > d.hereMax || int(dst)+int(n) > d.hereMax {
			return newError(ErrInvalidMemoryAddress)
		}
		buf := make([]Cell, n)
		copy(buf, d.Mem[src:src+n])
		copy(d.Mem[dst:dst+n], buf)
		return nil
	})
	reg("FILL", false, func(d *Dictionary, ctx *Context) error {
		v, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		n, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		addr, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		if int(addr) < 0 || int(addr)+int(n) > d.hereMax {
			return newError(ErrInvalidMemoryAddress)
		}
		for i := Cell(0); i < n; i++ {
			d.Mem[addr+i] = v
		}
		return nil
	})
	reg("COMPARE", false, func(d *Dictionary, ctx *Context) error {
		u2, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		addr2, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		u1, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		addr1, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		s1, err := d.bytesAt(addr1, u1)
		if err != nil {
			return err
		}
		s2, err := d.bytesAt(addr2, u2)
		if err != nil {
			return err
		}
		var r Cell
		switch {
		case s1 < s2:
			r = -1
		case s1 > s2:
			r = 1
		}
		return ctx.Data.Push(r)
	})

	reg("BASE", false, func(d *Dictionary, ctx *Context) error {
		return ctx.Data.Push(addrBase)
	})
	reg("STATE", false, func(d *Dictionary, ctx *Context) error {
		return ctx.Data.Push(addrState)
	})
	reg(">IN", false, func(d *Dictionary, ctx *Context) error {
		return ctx.Data.Push(addrToIn)
	})
	reg("DECIMAL", false, func(d *Dictionary, ctx *Context) error {
		ctx.Base = 10
		return nil
	})
	reg("HEX", false, func(d *Dictionary, ctx *Context) error {
		ctx.Base = 16
		return nil
	})
}
