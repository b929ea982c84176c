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

// Execute dispatches xt according to its action tag (spec 4.D). This
// is the inner interpreter: for a threaded word it drives the
// fetch-advance-execute loop over the compiled body; for everything
// else it's a one-step action.
func (d *Dictionary) Execute(ctx *Context, xt Cell) error {
	h := d.header(xt)
	if h == nil {
		return newError(ErrInvalidMemoryAddress)
	}
	switch h.tag {
	case tagPrimitive:
		idx := int(d.meaning(xt))
		if idx < 0 || idx >= len(d.primFuncs) {
			return newError(ErrInvalidMemoryAddress)
		}
		return d.primFuncs[idx](d, ctx)
	case tagConstant:
		return ctx.Data.Push(d.meaning(xt))
	case tagVariable:
		return ctx.Data.Push(d.meaning(xt))
	case tagDeferred:
		target := d.meaning(xt)
		if target == 0 {
			return newError(ErrUndefinedWord)
		}
		return d.Execute(ctx, target)
	case tagCreated:
		if err := ctx.Data.Push(d.Body(xt)); err != nil {
			return err
		}
		if does := d.meaning(xt); does != 0 {
			// does is a raw body address left behind by DOES>, not a
			// header of its own, so it runs through the threaded loop
			// directly rather than through Execute/header lookup.
			return d.runThreadedAt(ctx, int(does))
		}
		return nil
	case tagLocal:
		return d.executeLocal(ctx, xt)
	case tagThreaded:
		return d.runThreadedAt(ctx, int(d.Body(xt)))
	default:
		return newError(ErrInvalidMemoryAddress)
	}
}

// runThreadedAt walks a colon body: push the caller's IP, set IP to the
// body, then loop fetching and executing XTs until the zero
// terminator cell is reached (spec 4.D). EXIT is an ordinary compiled
// primitive whose errExit result ends the loop the same way.
func (d *Dictionary) runThreadedAt(ctx *Context, body int) error {
	if err := ctx.Return.Push(Cell(ctx.IP)); err != nil {
		return err
	}
	// Record where this call's locals, if it declares any, begin. Popped
	// via defer so it unwinds correctly whether this call ends via the
	// zero terminator, EXIT, or a THROW propagating out of it.
	ctx.localBases = append(ctx.localBases, Cell(ctx.Return.Depth()))
	defer func() {
		ctx.localBases = ctx.localBases[:len(ctx.localBases)-1]
	}()
	ctx.IP = body
	for {
		if ctx.UserBreak {
			ctx.UserBreak = false
			return newError(ErrUserInterrupt)
		}
		if ctx.IP < 0 || ctx.IP >= len(d.Mem) {
			return newError(ErrInvalidMemoryAddress)
		}
		cell := d.Mem[ctx.IP]
		if cell == 0 {
			break
		}
		ctx.IP++
		if ctx.Trace {
			if h := d.header(cell); h != nil && ctx.WriteString != nil {
				_ = ctx.WriteString(" " + h.name)
			}
		}
		if err := d.Execute(ctx, cell); err != nil {
			if _, ok := err.(errExit); !ok {
				return err
			}
			break
		}
	}
	ip, err := ctx.Return.Pop()
	if err != nil {
		return err
	}
	ctx.IP = int(ip)
	return nil
}

// errExit is returned by the EXIT primitive to unwind the innermost
// runThreadedAt loop without disturbing the return stack itself: the
// return address that loop already pushed is exactly what it restores
// on the way out.
type errExit struct{}

func (errExit) Error() string { return "EXIT" }

// exit performs the EXIT primitive. It also trims the return stack
// back to the current call's locals base, so an EXIT taken before a
// definition's own locals-exit epilogue (e.g. from inside IF) never
// leaves that definition's locals slots stranded under the caller's
// return address.
func exitWord(d *Dictionary, ctx *Context) error {
	if n := len(ctx.localBases); n > 0 {
		ctx.Return.Restore(int(ctx.localBases[n-1]))
	}
	return errExit{}
}

// Catch executes xt with a THROW handler installed: the handler
// records the current stack depths and IP, executes xt, and on a
// non-zero thrown code restores those snapshots and pushes the code
// instead (spec 4.E "CATCH"). It recovers from unexpected Go panics
// the same way the engine's own bugs would surface in a native
// implementation: as an invalid-memory-address exception, mirroring
// the teacher's top-level recover() around the inner run loop.
func (d *Dictionary) Catch(ctx *Context, xt Cell) (code Cell, err error) {
	if len(ctx.handlers) >= defaultHandlerDepth {
		return 0, newError(ErrExceptionStackOverflow)
	}
	frame := ctx.snapshot()
	ctx.handlers = append(ctx.handlers, frame)
	defer func() {
		ctx.handlers = ctx.handlers[:len(ctx.handlers)-1]
	}()

	runErr := d.safeExecute(ctx, xt)
	if runErr == nil {
		if err := ctx.Data.Push(0); err != nil {
			return 0, err
		}
		return 0, nil
	}

	switch runErr.(type) {
	case quitSignal, byeSignal:
		// QUIT/BYE unwind past every CATCH frame untouched.
		return 0, runErr
	}

	fe, ok := runErr.(*Error)
	if !ok {
		fe = newErrorMsg(ErrInvalidMemoryAddress, runErr.Error())
	}
	ctx.restore(frame)
	if err := ctx.Data.Push(fe.Code); err != nil {
		return 0, err
	}
	return fe.Code, nil
}

// safeExecute runs xt and converts any runtime panic (a programming
// bug surfacing as a Go panic, e.g. a slice index fault) into an
// error, the same way vm.Instance.Run recovers in the teacher
// implementation.
func (d *Dictionary) safeExecute(ctx *Context, xt Cell) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = newErrorMsg(ErrInvalidMemoryAddress, "recovered panic")
			}
		}
	}()
	return d.Execute(ctx, xt)
}
