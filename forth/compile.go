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

// cfKind tags the entries pushed to Context.cf, the control-flow stack
// used by the structured-control compiler (spec 4.H). Mismatched
// pairing (e.g. a THEN with nothing to resolve, or the wrong kind on
// top) is -22.
type cfKind int

const (
	cfOrig     cfKind = iota // unresolved forward branch (IF/ELSE/WHILE)
	cfDest                   // backward branch target (BEGIN)
	cfDo                     // DO/?DO frame: addr is the LEAVE patch site
	cfCase                   // CASE marker
	cfOf                     // OF's pending ENDOF branch
	cfColonSys               // : / :NONAME in progress
)

type cfEntry struct {
	kind cfKind
	addr Cell
	xt   Cell // cfDo: address the loop body starts at; cfColonSys: xt being defined
}

const maxControlFlowDepth = 64

func (ctx *Context) cfPush(e cfEntry) error {
	if len(ctx.cf) >= maxControlFlowDepth {
		return newError(ErrControlFlowStackOverflow)
	}
	ctx.cf = append(ctx.cf, e)
	return nil
}

func (ctx *Context) cfPop(want cfKind) (cfEntry, error) {
	if len(ctx.cf) == 0 {
		return cfEntry{}, newError(ErrControlStructureMismatch)
	}
	e := ctx.cf[len(ctx.cf)-1]
	if e.kind != want {
		return cfEntry{}, newError(ErrControlStructureMismatch)
	}
	ctx.cf = ctx.cf[:len(ctx.cf)-1]
	return e, nil
}

// CompileComma appends xt to the definition in progress (spec 4.H
// "COMPILE,"): threaded bodies are literally sequences of XT cells, so
// this is nothing more than Comma.
func (d *Dictionary) CompileComma(ctx *Context, xt Cell) error {
	return d.Comma(xt)
}

// compileLiteral appends a run-time literal push: the LIT primitive
// followed by the value cell (spec 4.H "LITERAL").
func (d *Dictionary) compileLiteral(ctx *Context, v Cell) error {
	if err := d.Comma(d.xtLit); err != nil {
		return err
	}
	return d.Comma(v)
}

// compileTwoLiteral appends a double-cell literal push (spec 4.H
// "2LITERAL"), high cell first so PushDouble reconstructs the pair in
// the order the number reader produced it.
func (d *Dictionary) compileTwoLiteral(ctx *Context, hi, lo Cell) error {
	if err := d.Comma(d.xtTwoLit); err != nil {
		return err
	}
	if err := d.Comma(hi); err != nil {
		return err
	}
	return d.Comma(lo)
}

// compileSLiteral appends a string literal push (spec 4.H "SLITERAL"):
// the SLIT primitive followed by the counted text itself, stored
// inline in the compiled stream.
func (d *Dictionary) compileSLiteral(ctx *Context, s string) error {
	if err := d.Comma(d.xtSLit); err != nil {
		return err
	}
	_, err := d.CommaString(s)
	return err
}

// bytesAt reads n raw bytes starting at addr, used by SLITERAL when
// its operand comes from an already-parsed c-addr/u pair rather than
// straight off the input stream.
func (d *Dictionary) bytesAt(addr, n Cell) (string, error) {
	if addr < 0 || n < 0 || int(addr)+int(n) > d.hereMax {
		return "", newError(ErrInvalidMemoryAddress)
	}
	b := make([]byte, n)
	for i := 0; i < int(n); i++ {
		b[i] = byte(d.Mem[int(addr)+i])
	}
	return string(b), nil
}

// stageString copies s into the PAD region and returns its address, for
// S" executed outside compile state: the standard only requires the
// returned c-addr to stay valid until the next S" or a new definition,
// which a fixed transient buffer satisfies without growing the arena
// on every call the way CommaString would.
func (d *Dictionary) stageString(s string) (Cell, error) {
	if len(s) > defaultPadSize {
		return 0, newError(ErrPicturedOverflow)
	}
	for i := 0; i < len(s); i++ {
		d.Mem[d.padBase+Cell(i)] = Cell(s[i])
	}
	return d.padBase, nil
}

// sQuoteWord implements S" ( "ccc<quote>" -- ): compiles a string
// literal push when compiling (spec 4.H "SLITERAL"), or parses
// straight onto the stack via stageString when interpreting.
func sQuoteWord(d *Dictionary, ctx *Context) error {
	s := ctx.Parse('"')
	if ctx.Compiling() {
		return d.compileSLiteral(ctx, s)
	}
	addr, err := d.stageString(s)
	if err != nil {
		return err
	}
	if err := ctx.Data.Push(addr); err != nil {
		return err
	}
	return ctx.Data.Push(Cell(len(s)))
}

// dotQuoteWord implements ." ( "ccc<quote>" -- ): compiles a string
// literal followed by TYPE when compiling, or types the text directly
// when interpreting.
func dotQuoteWord(d *Dictionary, ctx *Context) error {
	s := ctx.Parse('"')
	if ctx.Compiling() {
		if err := d.compileSLiteral(ctx, s); err != nil {
			return err
		}
		return d.Comma(d.primIndexXT("TYPE"))
	}
	if ctx.WriteString == nil {
		return newError(ErrUnsupportedOperation)
	}
	return ctx.WriteString(s)
}

// --- run-time companions for the inline-operand opcodes -------------

// litRuntime pushes the cell immediately following its own opcode and
// steps over it.
func litRuntime(d *Dictionary, ctx *Context) error {
	v := d.Mem[ctx.IP]
	ctx.IP++
	return ctx.Data.Push(v)
}

func twoLitRuntime(d *Dictionary, ctx *Context) error {
	hi := d.Mem[ctx.IP]
	lo := d.Mem[ctx.IP+1]
	ctx.IP += 2
	return ctx.Data.PushDouble(hi, lo)
}

// sliteralRuntime pushes (c-addr u) for the counted text compiled
// right after it and steps over the whole thing.
func sliteralRuntime(d *Dictionary, ctx *Context) error {
	n := int(d.Mem[ctx.IP])
	addr := Cell(ctx.IP) + 1
	ctx.IP += 1 + n
	if err := ctx.Data.Push(addr); err != nil {
		return err
	}
	return ctx.Data.Push(Cell(n))
}

// branchRuntime and zeroBranchRuntime implement BRANCH / 0BRANCH: the
// offset cell is relative to its own address, so the compiler always
// computes target-minus-operand-address when it patches one in.
func branchRuntime(d *Dictionary, ctx *Context) error {
	off := d.Mem[ctx.IP]
	ctx.IP += int(off)
	return nil
}

func zeroBranchRuntime(d *Dictionary, ctx *Context) error {
	v, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	if v == 0 {
		off := d.Mem[ctx.IP]
		ctx.IP += int(off)
		return nil
	}
	ctx.IP++
	return nil
}

// toDoNestErr converts a return-stack overflow raised while pushing a
// loop frame into the more specific -7 (spec 4.H "DO").
func toDoNestErr(err error) error {
	if fe, ok := err.(*Error); ok && fe.Code == ErrReturnStackOverflow {
		return newError(ErrDoNestTooDeep)
	}
	return err
}

// doRuntime implements (DO): pops limit/index, pushes the index, the
// limit and the absolute LEAVE address as a three-cell frame on the
// return stack (spec Glossary "loop-sys").
func doRuntime(d *Dictionary, ctx *Context) error {
	leaveOff := d.Mem[ctx.IP]
	absLeave := Cell(ctx.IP) + leaveOff
	ctx.IP++
	idx, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	lim, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	if err := ctx.Return.Push(idx); err != nil {
		return toDoNestErr(err)
	}
	if err := ctx.Return.Push(lim); err != nil {
		return toDoNestErr(err)
	}
	if err := ctx.Return.Push(absLeave); err != nil {
		return toDoNestErr(err)
	}
	return nil
}

// qDoRuntime implements (?DO): as doRuntime, but skips the loop body
// entirely (jumping straight to LEAVE) when index already equals
// limit, without ever pushing a loop frame.
func qDoRuntime(d *Dictionary, ctx *Context) error {
	leaveOff := d.Mem[ctx.IP]
	absLeave := Cell(ctx.IP) + leaveOff
	idx, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	lim, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	if idx == lim {
		ctx.IP = int(absLeave)
		return nil
	}
	ctx.IP++
	if err := ctx.Return.Push(idx); err != nil {
		return toDoNestErr(err)
	}
	if err := ctx.Return.Push(lim); err != nil {
		return toDoNestErr(err)
	}
	if err := ctx.Return.Push(absLeave); err != nil {
		return toDoNestErr(err)
	}
	return nil
}

// loopFrame cell offsets from the top of the return stack, innermost
// loop: 0 = LEAVE address, 1 = limit, 2 = index.
const (
	loopFrameLeave = 0
	loopFrameLimit = 1
	loopFrameIndex = 2
	loopFrameSize  = 3
)

// loopRuntime implements (LOOP): increments the index, falling through
// to the cell past the operand (same target LEAVE would jump to) when
// it reaches limit, otherwise branching back to the loop body start.
func loopRuntime(d *Dictionary, ctx *Context) error {
	back := d.Mem[ctx.IP]
	backTarget := Cell(ctx.IP) + back
	leaveAddr, err := ctx.Return.Pop()
	if err != nil {
		return err
	}
	lim, err := ctx.Return.Pop()
	if err != nil {
		return err
	}
	idx, err := ctx.Return.Pop()
	if err != nil {
		return err
	}
	idx++
	if idx == lim {
		ctx.IP++
		return nil
	}
	if err := ctx.Return.Push(idx); err != nil {
		return err
	}
	if err := ctx.Return.Push(lim); err != nil {
		return err
	}
	if err := ctx.Return.Push(leaveAddr); err != nil {
		return err
	}
	ctx.IP = int(backTarget)
	return nil
}

// plusLoopRuntime implements (+LOOP): the loop ends when adding inc to
// index crosses the limit boundary, tested with the two's complement
// sign trick on d = index-limit: (d ^ (d+inc)) & (d ^ inc) < 0, which
// works for positive or negative increments alike.
func plusLoopRuntime(d *Dictionary, ctx *Context) error {
	back := d.Mem[ctx.IP]
	backTarget := Cell(ctx.IP) + back
	inc, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	leaveAddr, err := ctx.Return.Pop()
	if err != nil {
		return err
	}
	lim, err := ctx.Return.Pop()
	if err != nil {
		return err
	}
	idx, err := ctx.Return.Pop()
	if err != nil {
		return err
	}
	diff := idx - lim
	crossed := (diff^(diff+inc))&(diff^inc) < 0
	idx += inc
	if crossed {
		ctx.IP++
		return nil
	}
	if err := ctx.Return.Push(idx); err != nil {
		return err
	}
	if err := ctx.Return.Push(lim); err != nil {
		return err
	}
	if err := ctx.Return.Push(leaveAddr); err != nil {
		return err
	}
	ctx.IP = int(backTarget)
	return nil
}

// iWord / jWord / unloopWord / leaveWord read or unwind the innermost
// (or next-outer) loop frame without otherwise disturbing it.
func iWord(d *Dictionary, ctx *Context) error {
	v, err := ctx.Return.Pick(loopFrameIndex)
	if err != nil {
		return newError(ErrLoopParamsUnavailable)
	}
	return ctx.Data.Push(v)
}

func jWord(d *Dictionary, ctx *Context) error {
	v, err := ctx.Return.Pick(loopFrameIndex + loopFrameSize)
	if err != nil {
		return newError(ErrLoopParamsUnavailable)
	}
	return ctx.Data.Push(v)
}

func unloopWord(d *Dictionary, ctx *Context) error {
	if err := ctx.Return.DropN(loopFrameSize); err != nil {
		return newError(ErrLoopParamsUnavailable)
	}
	return nil
}

func leaveWord(d *Dictionary, ctx *Context) error {
	leaveAddr, err := ctx.Return.Pick(loopFrameLeave)
	if err != nil {
		return newError(ErrLoopParamsUnavailable)
	}
	if err := ctx.Return.DropN(loopFrameSize); err != nil {
		return err
	}
	ctx.IP = int(leaveAddr)
	return nil
}

// --- structured control words ----------------------------------------

func requireCompiling(ctx *Context) error {
	if !ctx.Compiling() {
		return newError(ErrInterpretingCompileOnly)
	}
	return nil
}

func ifWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	if err := d.Comma(d.xtZeroBranch); err != nil {
		return err
	}
	addr := d.Here()
	if err := d.Comma(0); err != nil {
		return err
	}
	return ctx.cfPush(cfEntry{kind: cfOrig, addr: addr})
}

func elseWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	e, err := ctx.cfPop(cfOrig)
	if err != nil {
		return err
	}
	if err := d.Comma(d.xtBranch); err != nil {
		return err
	}
	addr := d.Here()
	if err := d.Comma(0); err != nil {
		return err
	}
	d.Mem[e.addr] = d.Here() - e.addr
	return ctx.cfPush(cfEntry{kind: cfOrig, addr: addr})
}

func thenWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	e, err := ctx.cfPop(cfOrig)
	if err != nil {
		return err
	}
	d.Mem[e.addr] = d.Here() - e.addr
	return nil
}

func beginWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	return ctx.cfPush(cfEntry{kind: cfDest, addr: d.Here()})
}

func againWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	e, err := ctx.cfPop(cfDest)
	if err != nil {
		return err
	}
	if err := d.Comma(d.xtBranch); err != nil {
		return err
	}
	addr := d.Here()
	return d.Comma(e.addr - addr)
}

func untilWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	e, err := ctx.cfPop(cfDest)
	if err != nil {
		return err
	}
	if err := d.Comma(d.xtZeroBranch); err != nil {
		return err
	}
	addr := d.Here()
	return d.Comma(e.addr - addr)
}

func whileWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	dest, err := ctx.cfPop(cfDest)
	if err != nil {
		return err
	}
	if err := d.Comma(d.xtZeroBranch); err != nil {
		return err
	}
	origAddr := d.Here()
	if err := d.Comma(0); err != nil {
		return err
	}
	if err := ctx.cfPush(dest); err != nil {
		return err
	}
	return ctx.cfPush(cfEntry{kind: cfOrig, addr: origAddr})
}

func repeatWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	orig, err := ctx.cfPop(cfOrig)
	if err != nil {
		return err
	}
	dest, err := ctx.cfPop(cfDest)
	if err != nil {
		return err
	}
	if err := d.Comma(d.xtBranch); err != nil {
		return err
	}
	addr := d.Here()
	if err := d.Comma(dest.addr - addr); err != nil {
		return err
	}
	d.Mem[orig.addr] = d.Here() - orig.addr
	return nil
}

func doWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	if err := d.Comma(d.xtDoRT); err != nil {
		return err
	}
	leaveAddr := d.Here()
	if err := d.Comma(0); err != nil {
		return err
	}
	return ctx.cfPush(cfEntry{kind: cfDo, addr: leaveAddr, xt: d.Here()})
}

func qDoWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	if err := d.Comma(d.xtQDoRT); err != nil {
		return err
	}
	leaveAddr := d.Here()
	if err := d.Comma(0); err != nil {
		return err
	}
	return ctx.cfPush(cfEntry{kind: cfDo, addr: leaveAddr, xt: d.Here()})
}

func loopWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	e, err := ctx.cfPop(cfDo)
	if err != nil {
		return err
	}
	if err := d.Comma(d.xtLoopRT); err != nil {
		return err
	}
	backAddr := d.Here()
	if err := d.Comma(e.xt - backAddr); err != nil {
		return err
	}
	d.Mem[e.addr] = d.Here() - e.addr
	return nil
}

func plusLoopWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	e, err := ctx.cfPop(cfDo)
	if err != nil {
		return err
	}
	if err := d.Comma(d.xtPlusLoopRT); err != nil {
		return err
	}
	backAddr := d.Here()
	if err := d.Comma(e.xt - backAddr); err != nil {
		return err
	}
	d.Mem[e.addr] = d.Here() - e.addr
	return nil
}

// caseWord/ofWord/endofWord/endcaseWord expand CASE...OF...ENDOF...ENDCASE
// into OVER = IF DROP ... ELSE ... THEN chains (spec 4.H "CASE"),
// without actually invoking the IF/ELSE/THEN compile-time words: the
// same branch-patching code is inlined here since ENDCASE must patch
// every pending ENDOF branch at once rather than one at a time.
func caseWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	return ctx.cfPush(cfEntry{kind: cfCase})
}

func ofWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	if err := d.Comma(d.xtOver); err != nil {
		return err
	}
	if err := d.Comma(d.xtEquals); err != nil {
		return err
	}
	if err := d.Comma(d.xtZeroBranch); err != nil {
		return err
	}
	addr := d.Here()
	if err := d.Comma(0); err != nil {
		return err
	}
	if err := d.Comma(d.xtDrop); err != nil {
		return err
	}
	return ctx.cfPush(cfEntry{kind: cfOf, addr: addr})
}

func endofWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	ofE, err := ctx.cfPop(cfOf)
	if err != nil {
		return err
	}
	if err := d.Comma(d.xtBranch); err != nil {
		return err
	}
	endAddr := d.Here()
	if err := d.Comma(0); err != nil {
		return err
	}
	d.Mem[ofE.addr] = d.Here() - ofE.addr
	return ctx.cfPush(cfEntry{kind: cfOrig, addr: endAddr})
}

func endcaseWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	if err := d.Comma(d.xtDrop); err != nil {
		return err
	}
	var pending []cfEntry
	for {
		if len(ctx.cf) == 0 {
			return newError(ErrControlStructureMismatch)
		}
		e := ctx.cf[len(ctx.cf)-1]
		ctx.cf = ctx.cf[:len(ctx.cf)-1]
		if e.kind == cfCase {
			break
		}
		if e.kind != cfOrig {
			return newError(ErrControlStructureMismatch)
		}
		pending = append(pending, e)
	}
	here := d.Here()
	for _, e := range pending {
		d.Mem[e.addr] = here - e.addr
	}
	return nil
}

// --- defining words ----------------------------------------------------

func colonWord(d *Dictionary, ctx *Context) error {
	name := ctx.ParseName()
	xt, err := d.createHeader(ctx.Current, name, tagThreaded)
	if err != nil {
		return err
	}
	ctx.Defining = xt
	ctx.State = -1
	return ctx.cfPush(cfEntry{kind: cfColonSys, xt: xt})
}

func colonNonameWord(d *Dictionary, ctx *Context) error {
	xt, err := d.createAnonymousHeader(tagThreaded)
	if err != nil {
		return err
	}
	ctx.Defining = xt
	ctx.State = -1
	if err := ctx.cfPush(cfEntry{kind: cfColonSys, xt: xt}); err != nil {
		return err
	}
	return ctx.Data.Push(xt)
}

func semiWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	if _, err := ctx.cfPop(cfColonSys); err != nil {
		return err
	}
	if ctx.locals != nil && len(ctx.locals.vars) > 0 {
		if err := d.Comma(d.xtLocalsExit); err != nil {
			return err
		}
		if err := d.Comma(Cell(len(ctx.locals.vars))); err != nil {
			return err
		}
	}
	ctx.locals = nil
	if err := d.Comma(0); err != nil {
		return err
	}
	ctx.Defining = 0
	ctx.State = 0
	return nil
}

// createAnonymousHeader allocates a header with no name and no
// wordlist linkage, used by :NONAME (spec 4.H).
func (d *Dictionary) createAnonymousHeader(tag actionTag) (Cell, error) {
	if d.here+headerCells > d.hereMax {
		return 0, newError(ErrDictionaryOverflow)
	}
	xt := Cell(d.here)
	d.here += headerCells
	h := &header{xt: xt, tag: tag}
	d.headers[xt] = h
	return xt, nil
}

func createWord(d *Dictionary, ctx *Context) error {
	name := ctx.ParseName()
	_, err := d.createHeader(ctx.Current, name, tagCreated)
	return err
}

// doesRuntime is compiled by DOES>: when the defining word that
// contains it executes, it binds the most recently CREATEd word's
// meaning to the address right after itself, then unwinds exactly as
// EXIT would, since whatever follows DOES> belongs to the child word,
// not to the one executing it (spec 4.H "DOES>").
func doesRuntime(d *Dictionary, ctx *Context) error {
	codeAddr := Cell(ctx.IP)
	if ctx.Current == nil || ctx.Current.Latest == 0 {
		return newError(ErrInvalidMemoryAddress)
	}
	d.setMeaning(ctx.Current.Latest, codeAddr)
	return errExit{}
}

func doesWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	return d.Comma(d.xtDoesRuntime)
}

func recurseWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	if ctx.Defining == 0 {
		return newError(ErrInvalidRecursion)
	}
	return d.Comma(ctx.Defining)
}

// postponeWord implements POSTPONE (spec 4.H): an immediate word is
// compiled as itself would be; a non-immediate one is deferred by
// compiling a literal push of its XT followed by a call to COMPILE,.
func postponeWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	name := ctx.ParseName()
	xt, found, immediate := d.Find(ctx, name)
	if !found {
		return newErrorMsg(ErrUndefinedWord, name+" ? undefined word")
	}
	if immediate {
		return d.Comma(xt)
	}
	if err := d.compileLiteral(ctx, xt); err != nil {
		return err
	}
	return d.Comma(d.xtCompileComma)
}

func compileCommaWord(d *Dictionary, ctx *Context) error {
	xt, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	return d.Comma(xt)
}

// tickWord implements ' ( "name" -- xt ) (spec 4.D): parse a name and
// push its execution token, the interpret-time counterpart to [']
// below.
func tickWord(d *Dictionary, ctx *Context) error {
	name := ctx.ParseName()
	xt, found, _ := d.Find(ctx, name)
	if !found {
		return newErrorMsg(ErrUndefinedWord, name+" ? undefined word")
	}
	return ctx.Data.Push(xt)
}

// bracketTickWord implements ['] ( "name" -- ) (spec 4.D): ' is not
// immediate, so inside a colon definition it is compiled and parses
// its name only when the definition runs; ['] instead parses the name
// at compile time and compiles a literal push of its XT, exactly like
// LITERAL does for a number already on the stack.
func bracketTickWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	name := ctx.ParseName()
	xt, found, _ := d.Find(ctx, name)
	if !found {
		return newErrorMsg(ErrUndefinedWord, name+" ? undefined word")
	}
	return d.compileLiteral(ctx, xt)
}

// executeWord implements EXECUTE ( i*x xt -- j*x ) (spec 4.D): run the
// word xt designates, the same dispatch Dictionary.Execute already
// gives every threaded call.
func executeWord(d *Dictionary, ctx *Context) error {
	xt, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	return d.Execute(ctx, xt)
}

func literalWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	v, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	return d.compileLiteral(ctx, v)
}

func twoLiteralWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
	hi, lo, err := ctx.Data.PopDouble()
	if err != nil {
		return err
	}
	return d.compileTwoLiteral(ctx, hi, lo)
}

func sliteralWord(d *Dictionary, ctx *Context) error {
	if err := requireCompiling(ctx); err != nil {
		return err
	}
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
	return d.compileSLiteral(ctx, s)
}

func immediateWord(d *Dictionary, ctx *Context) error {
	if ctx.Current == nil || ctx.Current.Latest == 0 {
		return newError(ErrInvalidMemoryAddress)
	}
	d.SetImmediate(ctx.Current.Latest)
	return nil
}

func variableWord(d *Dictionary, ctx *Context) error {
	name := ctx.ParseName()
	xt, err := d.createHeader(ctx.Current, name, tagVariable)
	if err != nil {
		return err
	}
	addr := d.Here()
	if err := d.Comma(0); err != nil {
		return err
	}
	d.setMeaning(xt, addr)
	return nil
}

func constantWord(d *Dictionary, ctx *Context) error {
	name := ctx.ParseName()
	v, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	xt, err := d.createHeader(ctx.Current, name, tagConstant)
	if err != nil {
		return err
	}
	d.setMeaning(xt, v)
	return nil
}

func deferWord(d *Dictionary, ctx *Context) error {
	name := ctx.ParseName()
	_, err := d.createHeader(ctx.Current, name, tagDeferred)
	return err
}

func isWord(d *Dictionary, ctx *Context) error {
	name := ctx.ParseName()
	xt, found, _ := d.Find(ctx, name)
	if !found {
		return newErrorMsg(ErrUndefinedWord, name+" ? undefined word")
	}
	if d.Tag(xt) != tagDeferred {
		return newError(ErrInvalidNameArgument)
	}
	v, err := ctx.Data.Pop()
	if err != nil {
		return err
	}
	d.setMeaning(xt, v)
	return nil
}
