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

// Pictured numeric output (spec 4.I): digits accumulate right to left
// into the arena's PAD region (d.padBase, cursor Context.padPos), <#
// resetting the cursor to the end of the buffer
// and #> handing back whatever sits between the cursor and the end as
// a (c-addr u) pair. Building back-to-front is what lets # be called
// any number of times without knowing the final width in advance.

func lessNumberSignWord(d *Dictionary, ctx *Context) error {
	ctx.padPos = d.padBase + defaultPadSize
	return nil
}

// holdDigit pushes a single byte onto the front of the pictured output
// buffer, underflowing into -17 if the buffer is already full.
func holdDigit(d *Dictionary, ctx *Context, c byte) error {
	if ctx.padPos <= d.padBase {
		return newError(ErrPicturedOverflow)
	}
	ctx.padPos--
	d.Mem[ctx.padPos] = Cell(c)
	return nil
}

func holdWord(d *Dictionary, ctx *Context) error {
	c, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	return holdDigit(d, ctx, byte(c))
}

// numberSignWord implements #: divide the double-cell accumulator by
// BASE, hold the resulting digit, and leave the quotient for the next
// # or #S.
func numberSignWord(d *Dictionary, ctx *Context) error {
	hi, lo, err := ctx.Data.PopDouble()
	if err != nil {
		return err
	}
	rem, quot, err := UMSlashMod(hi, lo, normalizeBase(ctx.Base))
	if err != nil {
		return err
	}
	if err := holdDigit(d, ctx, digitChar(int(rem))); err != nil {
		return err
	}
	return ctx.Data.PushDouble(0, quot)
}

// numberSignSWord implements #S: repeat # until the accumulator is
// zero, guaranteeing at least one digit (so ud=0 still renders "0").
func numberSignSWord(d *Dictionary, ctx *Context) error {
	for {
		if err := numberSignWord(d, ctx); err != nil {
			return err
		}
		hi, lo, err := ctx.Data.PopDouble()
		if err != nil {
			return err
		}
		if err := ctx.Data.PushDouble(hi, lo); err != nil {
			return err
		}
		if hi == 0 && lo == 0 {
			return nil
		}
	}
}

// signWord implements SIGN: hold a '-' if n is negative, otherwise
// leave the buffer untouched (spec 4.I).
func signWord(d *Dictionary, ctx *Context) error {
	n, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	if n < 0 {
		return holdDigit(d, ctx, '-')
	}
	return nil
}

// greaterNumberSignWord implements #>: drop the (now exhausted)
// accumulator and hand back the accumulated text as (c-addr u).
func greaterNumberSignWord(d *Dictionary, ctx *Context) error {
	if _, _, err := ctx.Data.PopDouble(); err != nil {
		return err
	}
	addr := ctx.padPos
	n := (d.padBase + defaultPadSize) - ctx.padPos
	if err := ctx.Data.Push(addr); err != nil {
		return err
	}
	return ctx.Data.Push(n)
}
