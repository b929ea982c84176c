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

// Search-order words (spec 4.C, supplemented from original_source's
// forth_search.c): ONLY/ALSO/PREVIOUS/DEFINITIONS manipulate
// Context.Order and Context.Current directly, the same slices Find
// walks. A *Wordlist is exposed to Forth code as a negative Cell
// handle (from -2000 downward) kept in wordlistRegistry, a stable
// value that round-trips through the data stack without adding a new
// tagged value kind.

// wordlistRegistry lets a Cell handle recover its *Wordlist; populated
// by registerWordlist, consulted by wordlistFromXT.
var wordlistRegistry = map[Cell]*Wordlist{}

var nextWordlistHandle Cell = -2000

func registerWordlist(wl *Wordlist) Cell {
	for h, v := range wordlistRegistry {
		if v == wl {
			return h
		}
	}
	h := nextWordlistHandle
	nextWordlistHandle--
	wordlistRegistry[h] = wl
	return h
}

// wordlistXT returns wl's stable Cell handle, registering it on first
// use.
func wordlistXT(wl *Wordlist) Cell { return registerWordlist(wl) }

func wordlistFromXT(h Cell) (*Wordlist, bool) {
	wl, ok := wordlistRegistry[h]
	return wl, ok
}

func definitionsWord(d *Dictionary, ctx *Context) error {
	if len(ctx.Order) == 0 {
		return newError(ErrSearchOrderUnderflow)
	}
	ctx.Current = ctx.Order[len(ctx.Order)-1]
	return nil
}

func onlyWord(d *Dictionary, ctx *Context) error {
	ctx.Order = []*Wordlist{d.Root, d.Forth}
	return nil
}

func alsoWord(d *Dictionary, ctx *Context) error {
	if len(ctx.Order) == 0 {
		return newError(ErrSearchOrderUnderflow)
	}
	if len(ctx.Order) >= defaultOrderDepth {
		return newError(ErrSearchOrderOverflow)
	}
	top := ctx.Order[len(ctx.Order)-1]
	ctx.Order = append(ctx.Order, top)
	return nil
}

func previousWord(d *Dictionary, ctx *Context) error {
	if len(ctx.Order) <= 1 {
		return newError(ErrSearchOrderUnderflow)
	}
	ctx.Order = ctx.Order[:len(ctx.Order)-1]
	return nil
}

// wordlistWord implements WORDLIST ( -- wid ): create a new, nameless
// wordlist and push its handle.
func wordlistWord(d *Dictionary, ctx *Context) error {
	wl := d.NewWordlist("", nil)
	return ctx.Data.Push(wordlistXT(wl))
}

func setCurrentWord(d *Dictionary, ctx *Context) error {
	h, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	wl, ok := wordlistFromXT(h)
	if !ok {
		return newError(ErrInvalidNameArgument)
	}
	ctx.Current = wl
	return nil
}

// getOrderWord implements GET-ORDER ( -- widn ... wid1 n ): wid1 is the
// first searched (the order's last element), matching the standard's
// "most recently ALSO'd wordlist is closest to the top".
func getOrderWord(d *Dictionary, ctx *Context) error {
	for i := 0; i < len(ctx.Order); i++ {
		if err := ctx.Data.Push(wordlistXT(ctx.Order[i])); err != nil {
			return err
		}
	}
	return ctx.Data.Push(Cell(len(ctx.Order)))
}

// setOrderWord implements SET-ORDER ( widn ... wid1 n -- ): n = -1
// restores the ROOT-only minimal order.
func setOrderWord(d *Dictionary, ctx *Context) error {
	n, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	if n < 0 {
		ctx.Order = []*Wordlist{d.Root}
		return nil
	}
	order := make([]*Wordlist, n)
	for i := 0; i < int(n); i++ {
		h, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		wl, ok := wordlistFromXT(h)
		if !ok {
			return newError(ErrInvalidNameArgument)
		}
		order[int(n)-1-i] = wl
	}
	ctx.Order = order
	return nil
}

func dotWordlistsWord(d *Dictionary, ctx *Context) error {
	if ctx.WriteString == nil {
		return newError(ErrUnsupportedOperation)
	}
	for _, wl := range d.Wordlists() {
		name := wl.Name
		if name == "" {
			name = "(anonymous)"
		}
		if err := ctx.WriteString(name + " "); err != nil {
			return err
		}
	}
	return nil
}

// wordsWord implements WORDS: list every name in the current search
// order's topmost wordlist, most recently defined first.
func wordsWord(d *Dictionary, ctx *Context) error {
	if ctx.WriteString == nil {
		return newError(ErrUnsupportedOperation)
	}
	if len(ctx.Order) == 0 {
		return nil
	}
	wl := ctx.Order[len(ctx.Order)-1]
	for cur := wl.Latest; cur != 0; {
		h := d.header(cur)
		if h == nil {
			break
		}
		if h.name != "" {
			if err := ctx.WriteString(h.name + " "); err != nil {
				return err
			}
		}
		cur = h.link
	}
	return nil
}
