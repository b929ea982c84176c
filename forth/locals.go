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

// Function-scoped locals (spec 4.L, optional): `{: a b c :}` or
// `LOCALS| a b c |`, parsed right after a definition's name, bind the
// top of the data stack to named return-stack slots for the rest of
// that definition. Each name gets two ephemeral, unlinked headers
// (tagLocal), one for reading and one for writing, rather than a
// single header with a mutable flag, so that both directions compile
// as a plain XT reference indistinguishable from any other COMPILE,.

// localVar is one declared name's compile-time binding.
type localVar struct {
	name    string
	readXT  Cell
	writeXT Cell
}

// localFrame is the scratch table active while compiling a definition
// that has declared locals; nil otherwise. Reset by semiWord.
type localFrame struct {
	vars []localVar
}

// findLocal looks up name in the compile-time locals table, if one is
// active.
func (ctx *Context) findLocal(name string) (localVar, bool) {
	if ctx.locals == nil {
		return localVar{}, false
	}
	for _, v := range ctx.locals.vars {
		if v.name == name {
			return v, true
		}
	}
	return localVar{}, false
}

func declareLocal(d *Dictionary, ctx *Context, name string) error {
	if ctx.locals == nil {
		ctx.locals = &localFrame{}
	}
	slot := Cell(len(ctx.locals.vars))
	readXT, err := d.createAnonymousHeader(tagLocal)
	if err != nil {
		return err
	}
	d.setMeaning(readXT, slot<<1)
	writeXT, err := d.createAnonymousHeader(tagLocal)
	if err != nil {
		return err
	}
	d.setMeaning(writeXT, slot<<1|1)
	ctx.locals.vars = append(ctx.locals.vars, localVar{name: name, readXT: readXT, writeXT: writeXT})
	return nil
}

// parseLocalsList reads names up to closer (or up to a "--"
// stack-comment divider, itself terminated by closer), declares each,
// then compiles the locals-entry prologue that binds them to the data
// stack's current top N cells. In a {: :} list, names after a "|" are
// not taken from the data stack: the prologue pushes a zero for each.
func parseLocalsList(d *Dictionary, ctx *Context, closer string) error {
	var names []string
	nArgs := -1
	for {
		tok := ctx.ParseName()
		if tok == "" {
			return newErrorMsg(ErrUnexpectedEOF, "unterminated locals list")
		}
		if tok == closer {
			break
		}
		if tok == "|" && closer == ":}" && nArgs < 0 {
			nArgs = len(names)
			continue
		}
		if tok == "--" {
			for {
				t := ctx.ParseName()
				if t == "" {
					return newErrorMsg(ErrUnexpectedEOF, "unterminated locals list")
				}
				if t == closer {
					break
				}
			}
			break
		}
		names = append(names, tok)
	}
	for _, n := range names {
		if err := declareLocal(d, ctx, n); err != nil {
			return err
		}
	}
	if len(names) == 0 {
		return nil
	}
	if nArgs < 0 {
		nArgs = len(names)
	}
	for i := nArgs; i < len(names); i++ {
		if err := d.compileLiteral(ctx, 0); err != nil {
			return err
		}
	}
	if err := d.Comma(d.xtLocalsEnter); err != nil {
		return err
	}
	return d.Comma(Cell(len(names)))
}

func localsBraceWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	return parseLocalsList(d, ctx, ":}")
}

func localsBarWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	return parseLocalsList(d, ctx, "|")
}

// toWord implements TO for local names: it compiles a write to the
// named local's return-stack slot. TO on anything else is outside this
// engine's locals support and throws -32.
func toWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	name := ctx.ParseName()
	v, ok := ctx.findLocal(name)
	if !ok {
		return newErrorMsg(ErrInvalidNameArgument, name+" is not a local")
	}
	return d.Comma(v.writeXT)
}

// localsEnterRuntime binds the top n data-stack cells to return-stack
// slots, rightmost-declared name ending up on top (spec 4.L): the
// first value popped is always the current top of stack, so working
// back to front naturally assigns it to the last-declared name.
func localsEnterRuntime(d *Dictionary, ctx *Context) error {
	n := int(d.Mem[ctx.IP])
	ctx.IP++
	vals := make([]Cell, n)
	for i := n - 1; i >= 0; i-- {
		v, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		vals[i] = v
	}
	for i := 0; i < n; i++ {
		if err := ctx.Return.Push(vals[i]); err != nil {
			return err
		}
	}
	return nil
}

// localsExitRuntime drops a definition's n locals slots before the
// natural return-address cell the caller's runThreadedAt expects on
// top of the return stack.
func localsExitRuntime(d *Dictionary, ctx *Context) error {
	n := int(d.Mem[ctx.IP])
	ctx.IP++
	return ctx.Return.DropN(n)
}

// executeLocal decodes xt's meaning (slot index, read/write bit) and
// accesses the corresponding slot in the innermost active call's
// locals frame (spec 4.L "local").
func (d *Dictionary) executeLocal(ctx *Context, xt Cell) error {
	if len(ctx.localBases) == 0 {
		return newError(ErrInvalidMemoryAddress)
	}
	m := d.meaning(xt)
	slot := int(m >> 1)
	write := m&1 != 0
	base := int(ctx.localBases[len(ctx.localBases)-1])
	idx := base + slot
	n := ctx.Return.Depth() - 1 - idx
	if n < 0 {
		return newError(ErrInvalidMemoryAddress)
	}
	if write {
		v, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		return ctx.Return.SetPick(n, v)
	}
	v, err := ctx.Return.Pick(n)
	if err != nil {
		return err
	}
	return ctx.Data.Push(v)
}
