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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbortThrowsDashOne(t *testing.T) {
	// ABORT's own Data.Clear() only matters with no active handler
	// (the top-level REPL loop's quitSignal path in engine.go); RunOne
	// installs its own CATCH frame, so here ABORT is indistinguishable
	// from a bare "-1 THROW": CATCH restores the pre-call stack depth
	// and pushes the code, regardless of what ABORT tried to clear.
	e, _ := newTestEngine(t)
	run(t, e, "1 2 3")
	depthBefore := e.Context().Data.Depth()
	code, err := e.RunOne("ABORT", false)
	require.NoError(t, err)
	assert.Equal(t, ErrAbort, code)
	assert.Equal(t, depthBefore+1, e.Context().Data.Depth())
}

func TestAbortQuoteFiresOnTrueFlag(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, `: CHECK DUP 0< ABORT" NEGATIVE" ;`)
	code, err := e.RunOne("-1 CHECK", false)
	require.NoError(t, err)
	assert.Equal(t, ErrAbortQuote, code)
}

func TestAbortQuoteNoOpOnFalseFlag(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, `: CHECK DUP 0< ABORT" NEGATIVE" ;`)
	run(t, e, "5 CHECK")
	v, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(5), v)
}

func TestTickExecuteRunsLookedUpWord(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, ": FOO 41 1+ ;")
	run(t, e, "' FOO EXECUTE")
	v, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(42), v)
}

func TestTickCatchOnDefinedWordPushesSuccessCode(t *testing.T) {
	e, out := newTestEngine(t)
	run(t, e, `: FOO ;`)
	run(t, e, "' FOO CATCH .")
	assert.Equal(t, "0 ", out.String())
}

// ' itself throws -13 the moment it fails to find the name, before
// CATCH ever gets a chance to wrap anything — so an undefined-word
// lookup surfaces as RunOne's own reported THROW code, not as
// something CATCH caught and left on the stack.
func TestTickOnUndefinedWordThrowsDirectly(t *testing.T) {
	e, _ := newTestEngine(t)
	code, err := e.RunOne("' NOSUCHWORD CATCH .", false)
	require.NoError(t, err)
	assert.Equal(t, ErrUndefinedWord, code)
}

func TestBracketTickCompilesLiteralXT(t *testing.T) {
	e, out := newTestEngine(t)
	run(t, e, ": ADD 2 2 + . ;")
	run(t, e, ": CALL-ADD ['] ADD EXECUTE ;")
	run(t, e, "CALL-ADD")
	assert.Equal(t, "4 ", out.String())
}

// TestTickCatchIdempotence is the spec 8 "CATCH idempotence" scenario
// verbatim: wrapping a word in one more layer of CATCH must not change
// whether, or with what code, it throws.
func TestTickCatchIdempotence(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, `: FOO 7 0 / ;`)
	run(t, e, `: T ['] FOO CATCH THROW ;`)
	run(t, e, "' T CATCH")
	doubled, err := e.Context().Data.Pop()
	require.NoError(t, err)
	run(t, e, "' FOO CATCH")
	direct, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, direct, doubled)
	assert.Equal(t, ErrDivisionByZero, direct)
}

func TestCatchRestoresStackDepthOnThrow(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, ": BOOM 1 2 3 42 THROW ;")
	run(t, e, "99") // one sentinel value beneath the CATCH frame
	depthBefore := e.Context().Data.Depth()
	code, err := e.RunOne("BOOM", false)
	require.NoError(t, err)
	assert.Equal(t, Cell(42), code)
	// RunOne's own CATCH restores the pre-run stack before pushing the
	// THROW code it reports, so BOOM's abandoned 1 2 3 never survive.
	assert.Equal(t, depthBefore+1, e.Context().Data.Depth())
	v, err := e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(42), v)
	v, err = e.Context().Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, Cell(99), v)
}
