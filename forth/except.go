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

// The words in this file drive Catch (xt.go), which does the actual
// handler bookkeeping; these are the user-facing primitives spec 4.E
// names: CATCH, THROW, ABORT, ABORT", QUIT, BYE.

// catchWord implements CATCH ( i*x xt -- j*x 0 | i*x code ).
func catchWord(d *Dictionary, ctx *Context) error {
	xt, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	_, err = d.Catch(ctx, xt)
	return err
}

// throwWord implements THROW ( k*x code -- k*x | i*x code ). With no
// handler installed, a non-zero THROW escalates to QUIT (spec 4.E).
func throwWord(d *Dictionary, ctx *Context) error {
	code, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	if code == 0 {
		return nil
	}
	if len(ctx.handlers) == 0 {
		return quitSignal{}
	}
	return newError(code)
}

// abortWord implements ABORT: clear the data stack and THROW -1.
func abortWord(d *Dictionary, ctx *Context) error {
	ctx.Data.Clear()
	if len(ctx.handlers) == 0 {
		return quitSignal{}
	}
	return newError(ErrAbort)
}

// abortQuoteRuntime implements the runtime half of ABORT": if the flag
// on the data stack is true, clear the stack and throw -2 carrying the
// compiled message text; otherwise drop the flag and the inline string
// and continue.
func abortQuoteRuntime(d *Dictionary, ctx *Context) error {
	n := int(d.Mem[ctx.IP])
	addr := Cell(ctx.IP) + 1
	ctx.IP += 1 + n
	flag, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	if flag == 0 {
		return nil
	}
	msg, err := d.bytesAt(addr, Cell(n))
	if err != nil {
		return err
	}
	ctx.Data.Clear()
	if len(ctx.handlers) == 0 {
		ctx.AbortMessage = msg
		return quitSignal{}
	}
	return newErrorMsg(ErrAbortQuote, msg)
}

// abortQuoteWord compiles ABORT" ( "ccc<quote>" -- ): parse the
// message up to the closing quote and compile it inline after the
// runtime primitive, exactly like SLITERAL (spec 4.E).
func abortQuoteWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	msg := ctx.Parse('"')
	if err := d.Comma(d.xtAbortQuoteRT); err != nil {
		return err
	}
	_, err := d.CommaString(msg)
	return err
}

// quitWord implements QUIT: unwinds to the REPL driver (spec 4.E).
func quitWord(d *Dictionary, ctx *Context) error { return quitSignal{} }

// byeWord implements BYE: unwinds all the way out of Engine.Run.
func byeWord(d *Dictionary, ctx *Context) error { return byeSignal{} }
