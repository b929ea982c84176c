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

import "strings"

// actionTag is the closed set of XT behaviors described in spec 3.
// Expressed as a tagged variant (small enum) rather than a packed
// integer field so dispatch in xt.go stays exhaustive.
type actionTag uint8

const (
	tagPrimitive actionTag = iota
	tagConstant
	tagVariable
	tagDeferred
	tagThreaded
	tagCreated
	tagLocal
)

// headerCells is the fixed width, in cells, of every XT header. A
// threaded definition's body begins at xt+headerCells; a created
// word's data area (its PFA) begins at the same offset.
const headerCells = 4

// maxNameLength bounds names copied into the dictionary (-19
// definition name too long).
const maxNameLength = 63

// header is the out-of-arena metadata companion to a header record.
// The spec treats an XT header as "a fixed-shape header record" living
// in the dictionary arena; this engine keeps the four-cell record in
// Dictionary.Mem (so @ / ! / >BODY see a real address) but keeps the
// name string, link and flag bits beside it in a map rather than
// packing bytes into cells — see DESIGN.md for the rationale.
type header struct {
	xt        Cell
	name      string
	tag       actionTag
	immediate bool
	hasLocals bool
	link      Cell // xt of the prior definition in the same wordlist, 0 = none
	help      string
}

// Wordlist is a named, singly-linked chain of headers, plus the
// bookkeeping needed to reconstruct the global `.WORDLISTS` chain and
// `ONLY`/`PREVIOUS` nesting (spec 3 "Wordlist").
type Wordlist struct {
	Name   string
	Latest Cell // xt of the newest definition, 0 = none
	Link   *Wordlist
	Parent *Wordlist
}

// Dictionary is the contiguous arena backing every XT, CREATEd data
// area and compiled definition body, plus the wordlist registry built
// on top of it.
type Dictionary struct {
	Mem       []Cell
	here      int
	hereMax   int
	headers   map[Cell]*header
	primNames []string
	primFuncs []primitiveFunc
	primIndex map[string]int

	Root  *Wordlist
	Forth *Wordlist
	last  *Wordlist // head of the global wordlist chain (spec: last_wordlist)

	// padBase is the arena address of the pictured-output scratch
	// buffer reserved at boot (spec 4.I), sized defaultPadSize cells.
	// Keeping it in the arena, rather than a separate Go byte slice,
	// means #> hands back a (c-addr u) pair that TYPE and friends can
	// read the same way as any other string in memory.
	padBase Cell

	// blockBase is the arena address of the one staging buffer BLOCK/
	// BUFFER copy a block's bytes into (spec 4.K). Reserved
	// unconditionally, like padBase, whether or not a BlockStore is
	// ever wired in: the cost is blockBufferCells cells, fixed at
	// compile time, regardless of whether it's exercised.
	blockBase Cell

	// Runtime helper XTs wired up once at boot by primitives.go and
	// consumed by the compiler (compile.go). These are ordinary named
	// primitive words (internal ones such as (LIT) and (DO), plus DROP,
	// OVER and = reused by the CASE expansion) kept as fields so the
	// compiler never has to do a name lookup for its own code
	// generation.
	xtLit           Cell
	xtTwoLit        Cell
	xtSLit          Cell
	xtBranch        Cell
	xtZeroBranch    Cell
	xtDoRT          Cell
	xtQDoRT         Cell
	xtLoopRT        Cell
	xtPlusLoopRT    Cell
	xtDoesRuntime   Cell
	xtCompileComma  Cell
	xtOver          Cell
	xtEquals        Cell
	xtDrop          Cell
	xtExit          Cell
	xtAbortQuoteRT  Cell
	xtLocalsEnter   Cell
	xtLocalsExit    Cell
}

type primitiveFunc func(d *Dictionary, ctx *Context) error

// NewDictionary allocates an arena of size cells and the built-in
// Root and Forth wordlists.
func NewDictionary(size int) *Dictionary {
	d := &Dictionary{
		Mem:       make([]Cell, size),
		here:      0,
		hereMax:   size,
		headers:   make(map[Cell]*header),
		primIndex: make(map[string]int),
	}
	d.Root = &Wordlist{Name: "ROOT"}
	d.Forth = &Wordlist{Name: "FORTH"}
	d.last = d.Forth
	d.Forth.Link = d.Root
	d.Root.Link = nil
	d.padBase = Cell(d.here)
	d.here += defaultPadSize
	d.blockBase = Cell(d.here)
	d.here += blockBufferCells
	return d
}

// Here returns the address of the next free cell.
func (d *Dictionary) Here() Cell { return Cell(d.here) }

// Align advances Here to a cell boundary. Since the arena is cell, not
// byte, addressed, this is a no-op placeholder kept for API symmetry
// with ALIGN/ALIGNED as specified by spec 4.H; byte-level packing
// (e.g. for C, / SLITERAL text) does not arise, since CommaString
// stores each byte of a string in a cell of its own.
func (d *Dictionary) Align() {}

// Comma appends a cell to the dictionary.
func (d *Dictionary) Comma(v Cell) error {
	if d.here >= d.hereMax {
		return newError(ErrDictionaryOverflow)
	}
	d.Mem[d.here] = v
	d.here++
	return nil
}

// Allot reserves n cells (may be negative to reclaim them, matching
// ALLOT's stack effect of n -- where n may be negative).
func (d *Dictionary) Allot(n int) error {
	if n > 0 {
		if d.here+n > d.hereMax {
			return newError(ErrDictionaryOverflow)
		}
		d.here += n
	} else {
		if d.here+n < 0 {
			return newError(ErrInvalidMemoryAddress)
		}
		d.here += n
	}
	return nil
}

// Fetch reads the cell at addr.
func (d *Dictionary) Fetch(addr Cell) (Cell, error) {
	if addr < 0 || int(addr) >= d.hereMax {
		return 0, newError(ErrInvalidMemoryAddress)
	}
	return d.Mem[addr], nil
}

// Store writes v at addr.
func (d *Dictionary) Store(addr, v Cell) error {
	if addr < 0 || int(addr) >= d.hereMax {
		return newError(ErrInvalidMemoryAddress)
	}
	d.Mem[addr] = v
	return nil
}

// CommaString appends s as a counted region: a length cell followed
// by one cell per byte, used by SLITERAL-style string literals. It
// returns the address of the length cell.
func (d *Dictionary) CommaString(s string) (Cell, error) {
	addr := d.Here()
	if err := d.Comma(Cell(len(s))); err != nil {
		return 0, err
	}
	for i := 0; i < len(s); i++ {
		if err := d.Comma(Cell(s[i])); err != nil {
			return 0, err
		}
	}
	return addr, nil
}

// StringAt reads back a string stored with CommaString.
func (d *Dictionary) StringAt(addr Cell) (string, error) {
	n, err := d.Fetch(addr)
	if err != nil {
		return "", err
	}
	if n < 0 || int(addr)+1+int(n) > d.hereMax {
		return "", newError(ErrInvalidMemoryAddress)
	}
	b := make([]byte, n)
	for i := 0; i < int(n); i++ {
		b[i] = byte(d.Mem[int(addr)+1+i])
	}
	return string(b), nil
}

// header looks up the out-of-arena metadata for xt, or nil.
func (d *Dictionary) header(xt Cell) *header { return d.headers[xt] }

// createHeader allocates a new fixed-shape header, linking it at the
// head of wl, and returns its XT. name must be non-empty and within
// maxNameLength (errors -16 / -19 respectively).
func (d *Dictionary) createHeader(wl *Wordlist, name string, tag actionTag) (Cell, error) {
	if name == "" {
		return 0, newError(ErrZeroLengthName)
	}
	if len(name) > maxNameLength {
		return 0, newError(ErrNameTooLong)
	}
	if d.here+headerCells > d.hereMax {
		return 0, newError(ErrDictionaryOverflow)
	}
	xt := Cell(d.here)
	d.here += headerCells
	d.Mem[xt+0] = 0
	d.Mem[xt+1] = 0
	d.Mem[xt+2] = wl.Latest
	d.Mem[xt+3] = 0
	h := &header{xt: xt, name: name, tag: tag, link: wl.Latest}
	d.headers[xt] = h
	wl.Latest = xt
	return xt, nil
}

// registerPrimitive installs a primitive into the Forth wordlist and
// the primitive dispatch table used by xt.go. Called only during
// engine bring-up (primitives.go).
func (d *Dictionary) registerPrimitive(name string, immediate bool, fn primitiveFunc) (Cell, error) {
	xt, err := d.createHeader(d.Forth, name, tagPrimitive)
	if err != nil {
		return 0, err
	}
	idx := len(d.primFuncs)
	d.primFuncs = append(d.primFuncs, fn)
	d.primNames = append(d.primNames, name)
	d.primIndex[strings.ToUpper(name)] = idx
	d.Mem[xt+3] = Cell(idx)
	h := d.headers[xt]
	h.immediate = immediate
	return xt, nil
}

// meaning reads the payload cell of xt's header (the "meaning" field
// of spec 3's XT record).
func (d *Dictionary) meaning(xt Cell) Cell { return d.Mem[xt+3] }

func (d *Dictionary) setMeaning(xt, v Cell) { d.Mem[xt+3] = v }

// Tag reports the action tag of xt.
func (d *Dictionary) Tag(xt Cell) actionTag {
	if h := d.header(xt); h != nil {
		return h.tag
	}
	return tagPrimitive
}

// IsImmediate reports whether xt is an immediate word.
func (d *Dictionary) IsImmediate(xt Cell) bool {
	if h := d.header(xt); h != nil {
		return h.immediate
	}
	return false
}

// SetImmediate marks xt as immediate (used by the IMMEDIATE word).
func (d *Dictionary) SetImmediate(xt Cell) {
	if h := d.header(xt); h != nil {
		h.immediate = true
	}
}

// Name returns the source name xt was defined under ("" for :NONAME
// and internal helpers).
func (d *Dictionary) Name(xt Cell) string {
	if h := d.header(xt); h != nil {
		return h.name
	}
	return ""
}

// Body returns the parameter field address of xt: for threaded words
// this is where the colon body begins; for CREATEd words this is the
// address of the word's data area.
func (d *Dictionary) Body(xt Cell) Cell { return xt + headerCells }

// NewWordlist creates and registers a new, empty wordlist, linking it
// into the global chain (spec 4.C "global chain of wordlists anchored
// at last_wordlist").
func (d *Dictionary) NewWordlist(name string, parent *Wordlist) *Wordlist {
	wl := &Wordlist{Name: name, Parent: parent, Link: d.last}
	d.last = wl
	return wl
}

// Wordlists returns every registered wordlist, most recently created
// first, for `.WORDLISTS`.
func (d *Dictionary) Wordlists() []*Wordlist {
	var out []*Wordlist
	for wl := d.last; wl != nil; wl = wl.Link {
		out = append(out, wl)
	}
	return out
}

// SearchWordlist looks up name in wl's chain of headers,
// case-insensitively, returning the first match, whether it was
// found, and whether it is immediate.
func (d *Dictionary) SearchWordlist(wl *Wordlist, name string) (xt Cell, found, immediate bool) {
	for cur := wl.Latest; cur != 0; {
		h := d.headers[cur]
		if h == nil {
			break
		}
		if strings.EqualFold(h.name, name) {
			return cur, true, h.immediate
		}
		cur = h.link
	}
	return 0, false, false
}

// Find looks up name through ctx's search order, last-pushed wordlist
// first, per spec 4.C.
func (d *Dictionary) Find(ctx *Context, name string) (xt Cell, found, immediate bool) {
	for i := len(ctx.Order) - 1; i >= 0; i-- {
		if xt, found, immediate = d.SearchWordlist(ctx.Order[i], name); found {
			return xt, found, immediate
		}
	}
	return 0, false, false
}
