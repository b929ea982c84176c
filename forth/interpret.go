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

// Refill attempts to make more input available on the current source
// (spec 4.F "REFILL"): source-id 0 reads a line via the host's Accept
// callback, source-id -1 (string sources, EVALUATE) never refills,
// and a block-backed source advances to the next block, if any.
func (ctx *Context) Refill() (bool, error) {
	if ctx.src == nil {
		return false, nil
	}
	switch {
	case ctx.src.blk != 0:
		if ctx.Blocks == nil {
			return false, nil
		}
		next := ctx.src.blk + 1
		data, err := ctx.Blocks.Block(next)
		if err != nil {
			return false, newErrorMsg(ErrBlockReadException, err.Error())
		}
		ctx.src.blk = next
		ctx.src.buf = string(data)
		ctx.src.toIn = 0
		return true, nil
	case ctx.src.id == 0:
		if ctx.Accept == nil {
			return false, newError(ErrUnsupportedOperation)
		}
		buf := make([]byte, 4096)
		n, err := ctx.Accept(buf)
		if err != nil {
			return false, newErrorMsg(ErrCharIO, err.Error())
		}
		if n < 0 {
			return false, nil
		}
		ctx.src.buf = string(buf[:n])
		ctx.src.toIn = 0
		return true, nil
	case ctx.src.id == -1:
		return false, nil
	default:
		return false, nil
	}
}

// Interpret runs the outer interpreter loop over the current input
// source until it is exhausted: PARSE-NAME, FIND-NAME, execute or
// compile, else try to parse a number, else throw -13 (spec 4.G).
func (d *Dictionary) Interpret(ctx *Context) error {
	for {
		name := ctx.ParseName()
		if name == "" {
			if ctx.AtSourceEnd() {
				return nil
			}
			continue
		}
		if err := d.interpretOne(ctx, name); err != nil {
			return err
		}
	}
}

func (d *Dictionary) interpretOne(ctx *Context, name string) error {
	// Locals shadow every wordlist in the search order while their
	// definition is being compiled (spec 4.L).
	if v, ok := ctx.findLocal(name); ok {
		if !ctx.Compiling() {
			return newError(ErrInterpretingCompileOnly)
		}
		return d.CompileComma(ctx, v.readXT)
	}
	xt, found, immediate := d.Find(ctx, name)
	if found {
		if !ctx.Compiling() || immediate {
			return d.Execute(ctx, xt)
		}
		return d.CompileComma(ctx, xt)
	}
	num, ok := ParseNumber(name, ctx.Base)
	if !ok {
		return newErrorMsg(ErrUndefinedWord, ctx.parsedName+" ? undefined word")
	}
	if !ctx.Compiling() {
		if num.IsDouble {
			return ctx.Data.PushDouble(num.Hi, num.Lo)
		}
		return ctx.Data.Push(num.Lo)
	}
	if num.IsDouble {
		return d.compileTwoLiteral(ctx, num.Hi, num.Lo)
	}
	return d.compileLiteral(ctx, num.Lo)
}

// Evaluate interprets s as a one-shot string source (source-id -1),
// restoring the previous source afterwards regardless of outcome.
func (d *Dictionary) Evaluate(ctx *Context, s string) error {
	ctx.PushSource(s, -1)
	defer ctx.PopSource()
	return d.Interpret(ctx)
}

// registerInterpretPrimitives installs REFILL and EVALUATE (spec 2,
// 4.F): both already exist as Go methods above for the host's own use
// (Quit, RunOne), this just exposes them as ordinary words so Forth
// source can replenish or re-enter the interpreter itself.
func (d *Dictionary) registerInterpretPrimitives(reg registrar) {
	reg("REFILL", false, func(d *Dictionary, ctx *Context) error {
		ok, err := ctx.Refill()
		if err != nil {
			return err
		}
		return ctx.Data.Push(BoolCell(ok))
	})
	reg("EVALUATE", false, func(d *Dictionary, ctx *Context) error {
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
		return d.Evaluate(ctx, s)
	})
}

// Quit resets the return stack, clears the handler chain and compile
// state, and enters the read-refill-interpret loop, printing "ok" and
// a fresh prompt between commands (spec 4.E "QUIT handler"). With no
// input source active it reads from the console (source-id 0). A THROW
// that reaches it prints the error, empties the data stack, resets the
// state and discards the rest of the line; a quitSignal does the same
// without the message and without touching the data stack. It returns
// on a byeSignal or any other non-THROW error, or when the current
// source can no longer be refilled (normal EOF).
func (d *Dictionary) Quit(ctx *Context) error {
	ctx.Return.Clear()
	ctx.handlers = ctx.handlers[:0]
	ctx.State = 0
	if ctx.src == nil {
		ctx.PushSource("", 0)
	}
	for {
		err := d.Interpret(ctx)
		if err != nil {
			fe, isErr := err.(*Error)
			if _, ok := err.(quitSignal); !ok && !isErr {
				return err
			}
			if isErr {
				if ctx.WriteString != nil {
					_ = ctx.WriteString(" " + fe.Error())
				}
				ctx.Data.Clear()
			}
			ctx.Return.Clear()
			ctx.handlers = ctx.handlers[:0]
			ctx.State = 0
			ctx.cf, ctx.locals, ctx.Defining = ctx.cf[:0], nil, 0
			ctx.SetToIn(Cell(len(ctx.SourceBuffer())))
			continue
		}
		if ctx.WriteString != nil {
			_ = ctx.WriteString(" ok")
		}
		if ctx.SendCR != nil {
			_ = ctx.SendCR()
		}
		more, rerr := ctx.Refill()
		if rerr != nil {
			return rerr
		}
		if !more {
			return nil
		}
	}
}

// RunOne interprets a single command string, per the embedding API's
// "run-one-command" surface (spec 6). When clearStack is true the data
// stack is emptied first. It returns the THROW code (0 on success)
// rather than a Go error, matching the host-facing convenience API.
// On success the data stack holds whatever cmd left on it; on a THROW
// it is restored to its depth before cmd ran, with the code pushed.
func (d *Dictionary) RunOne(ctx *Context, cmd string, clearStack bool) (code Cell, err error) {
	if clearStack {
		ctx.Data.Clear()
	}
	evalXT, ferr := d.synthesizeEvaluate(cmd)
	if ferr != nil {
		return 0, ferr
	}
	code, err = d.Catch(ctx, evalXT)
	if err == nil && code == 0 {
		// Drop the 0 Catch pushes for CATCH's own stack effect.
		_, err = ctx.Data.Pop()
	}
	return code, err
}

// synthesizeEvaluate wraps a one-shot call to Evaluate(cmd) behind a
// synthetic, anonymous primitive XT so it can be passed through CATCH
// like any other execution token (spec 6 "Try-a-host-function").
func (d *Dictionary) synthesizeEvaluate(cmd string) (Cell, error) {
	return d.synthesizePrimitive(func(d *Dictionary, ctx *Context) error {
		return d.Evaluate(ctx, cmd)
	})
}

// synthesizePrimitive wraps an arbitrary Go function into a primitive
// XT, letting host code CATCH it directly (spec 6 "Try-a-host-function").
func (d *Dictionary) synthesizePrimitive(fn primitiveFunc) (Cell, error) {
	idx := len(d.primFuncs)
	d.primFuncs = append(d.primFuncs, fn)
	xt := Cell(d.here)
	if d.here+headerCells > d.hereMax {
		return 0, newError(ErrDictionaryOverflow)
	}
	d.here += headerCells
	d.headers[xt] = &header{xt: xt, tag: tagPrimitive}
	d.Mem[xt+3] = Cell(idx)
	return xt, nil
}

// TryHostFunc wraps fn into a synthetic primitive XT and CATCHes it,
// giving host code the same non-local-exit protection user Forth code
// gets (spec 6 "Try-a-host-function").
func (d *Dictionary) TryHostFunc(ctx *Context, fn func(ctx *Context) error) (code Cell, err error) {
	xt, ferr := d.synthesizePrimitive(func(d *Dictionary, ctx *Context) error { return fn(ctx) })
	if ferr != nil {
		return 0, ferr
	}
	return d.Catch(ctx, xt)
}
