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

// registerStackPrimitives installs the data/return stack shuffling
// words of spec 4.A. d.xtDrop and d.xtOver are captured here since
// CASE's expansion (compile.go ofWord) reuses the ordinary DROP/OVER
// words rather than inlining equivalent bytecode.
func (d *Dictionary) registerStackPrimitives(reg registrar) {
	reg("DUP", false, func(d *Dictionary, ctx *Context) error {
		v, err := ctx.Data.Top()
		if err != nil {
			return err
		}
		return ctx.Data.Push(v)
	})
	d.xtDrop = reg("DROP", false, func(d *Dictionary, ctx *Context) error {
		_, err := ctx.Data.Pop()
		return err
	})
	reg("SWAP", false, func(d *Dictionary, ctx *Context) error {
		return ctx.Data.Roll(1)
	})
	d.xtOver = reg("OVER", false, func(d *Dictionary, ctx *Context) error {
		v, err := ctx.Data.Pick(1)
		if err != nil {
			return err
		}
		return ctx.Data.Push(v)
	})
	reg("ROT", false, func(d *Dictionary, ctx *Context) error {
		return ctx.Data.Roll(2)
	})
	reg("-ROT", false, func(d *Dictionary, ctx *Context) error {
		// ROT is a 3-cycle (a b c -- b c a); applying it twice yields its
		// inverse (a b c -- c a b), i.e. -ROT.
		if err := ctx.Data.Roll(2); err != nil {
			return err
		}
		return ctx.Data.Roll(2)
	})
	reg("?DUP", false, func(d *Dictionary, ctx *Context) error {
		v, err := ctx.Data.Top()
		if err != nil {
			return err
		}
		if v == 0 {
			return nil
		}
		return ctx.Data.Push(v)
	})
	reg("NIP", false, func(d *Dictionary, ctx *Context) error {
		v, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		if _, err := ctx.Data.Pop(); err != nil {
			return err
		}
		return ctx.Data.Push(v)
	})
	reg("TUCK", false, func(d *Dictionary, ctx *Context) error {
		if err := ctx.Data.Roll(1); err != nil {
			return err
		}
		v, err := ctx.Data.Pick(1)
		if err != nil {
			return err
		}
		return ctx.Data.Push(v)
	})
	reg("PICK", false, func(d *Dictionary, ctx *Context) error {
		n, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		v, err := ctx.Data.Pick(int(n))
		if err != nil {
			return err
		}
		return ctx.Data.Push(v)
	})
	reg("ROLL", false, func(d *Dictionary, ctx *Context) error {
		n, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		return ctx.Data.Roll(int(n))
	})
	reg("DEPTH", false, func(d *Dictionary, ctx *Context) error {
		return ctx.Data.Push(Cell(ctx.Data.Depth()))
	})
	reg("2DUP", false, func(d *Dictionary, ctx *Context) error {
		hi, err := ctx.Data.Pick(1)
		if err != nil {
			return err
		}
		lo, err := ctx.Data.Pick(0)
		if err != nil {
			return err
		}
		if err := ctx.Data.Push(hi); err != nil {
			return err
		}
		return ctx.Data.Push(lo)
	})
	reg("2DROP", false, func(d *Dictionary, ctx *Context) error {
		return ctx.Data.DropN(2)
	})
	reg("2SWAP", false, func(d *Dictionary, ctx *Context) error {
		a, err := ctx.Data.Pick(3)
		if err != nil {
			return err
		}
		b, err := ctx.Data.Pick(2)
		if err != nil {
			return err
		}
		c, err := ctx.Data.Pick(1)
		if err != nil {
			return err
		}
		e, err := ctx.Data.Pick(0)
		if err != nil {
			return err
		}
		if err := ctx.Data.SetPick(3, c); err != nil {
			return err
		}
		if err := ctx.Data.SetPick(2, e); err != nil {
			return err
		}
		if err := ctx.Data.SetPick(1, a); err != nil {
			return err
		}
		return ctx.Data.SetPick(0, b)
	})
	reg("2OVER", false, func(d *Dictionary, ctx *Context) error {
		hi, err := ctx.Data.Pick(3)
		if err != nil {
			return err
		}
		lo, err := ctx.Data.Pick(2)
		if err != nil {
			return err
		}
		if err := ctx.Data.Push(hi); err != nil {
			return err
		}
		return ctx.Data.Push(lo)
	})
	reg(">R", false, func(d *Dictionary, ctx *Context) error {
		v, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		return ctx.Return.Push(v)
	})
	reg("R>", false, func(d *Dictionary, ctx *Context) error {
		v, err := ctx.Return.Pop()
		if err != nil {
			return err
		}
		return ctx.Data.Push(v)
	})
	reg("R@", false, func(d *Dictionary, ctx *Context) error {
		v, err := ctx.Return.Top()
		if err != nil {
			return err
		}
		return ctx.Data.Push(v)
	})
	reg("2>R", false, func(d *Dictionary, ctx *Context) error {
		hi, lo, err := ctx.Data.PopDouble()
		if err != nil {
			return err
		}
		if err := ctx.Return.Push(hi); err != nil {
			return err
		}
		return ctx.Return.Push(lo)
	})
	reg("2R>", false, func(d *Dictionary, ctx *Context) error {
		lo, err := ctx.Return.Pop()
		if err != nil {
			return err
		}
		hi, err := ctx.Return.Pop()
		if err != nil {
			return err
		}
		return ctx.Data.PushDouble(hi, lo)
	})
}
