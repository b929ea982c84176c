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

// binop and unop factor out the pop-pop-push / pop-push shape shared
// by every arithmetic and comparison word in this file.
func binop(f func(a, b Cell) Cell) primitiveFunc {
	return func(d *Dictionary, ctx *Context) error {
		b, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		return ctx.Data.Push(f(a, b))
	}
}

func unop(f func(a Cell) Cell) primitiveFunc {
	return func(d *Dictionary, ctx *Context) error {
		a, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		return ctx.Data.Push(f(a))
	}
}

func cmp(f func(a, b Cell) bool) primitiveFunc {
	return binop(func(a, b Cell) Cell { return BoolCell(f(a, b)) })
}

func cmp0(f func(a Cell) bool) primitiveFunc {
	return unop(func(a Cell) Cell { return BoolCell(f(a)) })
}

// registerArithPrimitives installs the signed/unsigned arithmetic,
// bitwise and comparison words of spec 4.A/4.B.
func (d *Dictionary) registerArithPrimitives(reg registrar) {
	reg("+", false, binop(func(a, b Cell) Cell { return a + b }))
	reg("-", false, binop(func(a, b Cell) Cell { return a - b }))
	reg("*", false, binop(func(a, b Cell) Cell { return a * b }))
	reg("/", false, func(d *Dictionary, ctx *Context) error {
		b, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		_, q, err := SlashMod(a, b)
		if err != nil {
			return err
		}
		return ctx.Data.Push(q)
	})
	reg("MOD", false, func(d *Dictionary, ctx *Context) error {
		b, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		m, _, err := SlashMod(a, b)
		if err != nil {
			return err
		}
		return ctx.Data.Push(m)
	})
	reg("/MOD", false, func(d *Dictionary, ctx *Context) error {
		b, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		m, q, err := SlashMod(a, b)
		if err != nil {
			return err
		}
		if err := ctx.Data.Push(m); err != nil {
			return err
		}
		return ctx.Data.Push(q)
	})
	reg("*/", false, func(d *Dictionary, ctx *Context) error {
		n3, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		n2, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		n1, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		hi, lo := MStar(n1, n2)
		_, q, err := UMSlashMod(hi, lo, n3)
		if err != nil {
			return err
		}
		return ctx.Data.Push(q)
	})
	reg("*/MOD", false, func(d *Dictionary, ctx *Context) error {
		n3, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		n2, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		n1, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		hi, lo := MStar(n1, n2)
		rem, q, err := UMSlashMod(hi, lo, n3)
		if err != nil {
			return err
		}
		if err := ctx.Data.Push(rem); err != nil {
			return err
		}
		return ctx.Data.Push(q)
	})
	reg("UM*", false, func(d *Dictionary, ctx *Context) error {
		b, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		hi, lo := UMStar(a, b)
		return ctx.Data.PushDouble(hi, lo)
	})
	reg("M*", false, func(d *Dictionary, ctx *Context) error {
		b, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		hi, lo := MStar(a, b)
		return ctx.Data.PushDouble(hi, lo)
	})
	reg("UM/MOD", false, func(d *Dictionary, ctx *Context) error {
		divisor, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		hi, lo, err := ctx.Data.PopDouble()
		if err != nil {
			return err
		}
		rem, q, err := UMSlashMod(hi, lo, divisor)
		if err != nil {
			return err
		}
		if err := ctx.Data.Push(rem); err != nil {
			return err
		}
		return ctx.Data.Push(q)
	})
	reg("AND", false, binop(func(a, b Cell) Cell { return a & b }))
	reg("OR", false, binop(func(a, b Cell) Cell { return a | b }))
	reg("XOR", false, binop(func(a, b Cell) Cell { return a ^ b }))
	reg("LSHIFT", false, binop(func(a, b Cell) Cell { return Cell(UCell(a) << UCell(b)) }))
	reg("RSHIFT", false, binop(func(a, b Cell) Cell { return Cell(UCell(a) >> UCell(b)) }))
	reg("MIN", false, binop(func(a, b Cell) Cell {
		if a < b {
			return a
		}
		return b
	}))
	reg("MAX", false, binop(func(a, b Cell) Cell {
		if a > b {
			return a
		}
		return b
	}))
	reg("1+", false, unop(func(a Cell) Cell { return a + 1 }))
	reg("1-", false, unop(func(a Cell) Cell { return a - 1 }))
	reg("2*", false, unop(func(a Cell) Cell { return a << 1 }))
	reg("2/", false, unop(func(a Cell) Cell { return a >> 1 }))
	reg("NEGATE", false, unop(func(a Cell) Cell { return -a }))
	reg("INVERT", false, unop(func(a Cell) Cell { return ^a }))
	reg("ABS", false, unop(func(a Cell) Cell {
		if a < 0 {
			return -a
		}
		return a
	}))

	d.xtEquals = reg("=", false, cmp(func(a, b Cell) bool { return a == b }))
	reg("<>", false, cmp(func(a, b Cell) bool { return a != b }))
	reg("<", false, cmp(func(a, b Cell) bool { return a < b }))
	reg(">", false, cmp(func(a, b Cell) bool { return a > b }))
	reg("<=", false, cmp(func(a, b Cell) bool { return a <= b }))
	reg(">=", false, cmp(func(a, b Cell) bool { return a >= b }))
	reg("U<", false, cmp(func(a, b Cell) bool { return UCell(a) < UCell(b) }))
	reg("U>", false, cmp(func(a, b Cell) bool { return UCell(a) > UCell(b) }))
	reg("0=", false, cmp0(func(a Cell) bool { return a == 0 }))
	reg("0<", false, cmp0(func(a Cell) bool { return a < 0 }))
	reg("0>", false, cmp0(func(a Cell) bool { return a > 0 }))

	reg("WITHIN", false, func(d *Dictionary, ctx *Context) error {
		hi, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		lo, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		n, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		return ctx.Data.Push(BoolCell(UCell(n-lo) < UCell(hi-lo)))
	})
}
