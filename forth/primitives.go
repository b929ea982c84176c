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

// registrar is the shape every primitives_*.go family function uses to
// install a word: implemented once here so none of them has to repeat
// registerPrimitive's error-sticking boilerplate.
type registrar func(name string, immediate bool, fn primitiveFunc) Cell

// registerPrimitives installs every built-in word into d.Forth (the
// search-order words into d.Root) and wires the compiler's internal
// helper XTs (compile.go, locals.go and except.go reference the d.xt*
// fields set up here).
// Called once, by New (engine.go). The word table itself is split by
// concern across the other primitives_*.go files.
func registerPrimitives(d *Dictionary) error {
	var regErr error
	reg := registrar(func(name string, immediate bool, fn primitiveFunc) Cell {
		if regErr != nil {
			return 0
		}
		xt, err := d.registerPrimitive(name, immediate, fn)
		if err != nil {
			regErr = err
		}
		return xt
	})

	d.registerStackPrimitives(reg)
	d.registerArithPrimitives(reg)
	d.registerMemoryPrimitives(reg)
	d.registerOutputPrimitives(reg)
	d.registerCompilerPrimitives(reg)
	d.registerSearchPrimitives(reg)
	d.registerBlockPrimitives(reg)
	d.registerInterpretPrimitives(reg)

	return regErr
}

// primIndexXT looks up a just-registered primitive's own XT by name,
// used where the compiler needs a user-visible word's XT that no
// helper field holds (." compiles a call to TYPE this way).
func (d *Dictionary) primIndexXT(name string) Cell {
	xt, _, _ := d.SearchWordlist(d.Forth, name)
	return xt
}

// addrBase, addrState and addrToIn are sentinel "addresses" BASE,
// STATE and >IN push: negative, so they can never collide with a real
// dictionary arena address, and recognized directly by fetchWord /
// storeWord rather than resolved through Dictionary.Mem (spec 3: "host
// code obtains them by calling words which return the in-context
// address" — there is no requirement that the address be a literal
// arena cell).
const (
	addrBase  Cell = -1001
	addrState Cell = -1002
	addrToIn  Cell = -1003
)

func fetchWord(d *Dictionary, ctx *Context) error {
	addr, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	switch addr {
	case addrBase:
		return ctx.Data.Push(ctx.Base)
	case addrState:
		return ctx.Data.Push(ctx.State)
	case addrToIn:
		return ctx.Data.Push(ctx.ToIn())
	}
	v, err := d.Fetch(addr)
	if err != nil {
		return err
	}
	return ctx.Data.Push(v)
}

func storeWord(d *Dictionary, ctx *Context) error {
	addr, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	v, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	switch addr {
	case addrBase:
		ctx.Base = v
		return nil
	case addrState:
		ctx.State = v
		return nil
	case addrToIn:
		ctx.SetToIn(v)
		return nil
	}
	return d.Store(addr, v)
}

// dotCell implements the runtime behind `.`: format v signed in BASE,
// trailing space, per spec 4.A/4.I conventions.
func dotCell(ctx *Context, v Cell) error {
	if ctx.WriteString == nil {
		return newError(ErrUnsupportedOperation)
	}
	s := ""
	if v < 0 {
		s = "-" + FormatUnsigned(UCell(-v), ctx.Base)
	} else {
		s = FormatUnsigned(UCell(v), ctx.Base)
	}
	return ctx.WriteString(s + " ")
}
