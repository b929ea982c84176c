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

func TestWordlistSetCurrentRedirectsNewDefinitions(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, "WORDLIST CONSTANT MYLIB")
	before := e.Context().Current
	run(t, e, "MYLIB SET-CURRENT")
	assert.NotSame(t, before, e.Context().Current)

	run(t, e, ": SECRET 99 ;")
	// SECRET now lives in MYLIB, which never made it into the active
	// search order, so the default order can't find it.
	code, err := e.RunOne("SECRET", true)
	require.NoError(t, err)
	assert.NotZero(t, code)
}

func TestWordlistDefinitionsRestoresOrderTop(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, "WORDLIST CONSTANT MYLIB")
	run(t, e, "MYLIB SET-CURRENT")
	run(t, e, "DEFINITIONS")
	assert.Same(t, e.Context().Order[len(e.Context().Order)-1], e.Context().Current)
}

func TestWordlistOnlyResetsToMinimalOrder(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, "ONLY")
	got := e.Context().Order
	require.Len(t, got, 2)
	assert.Same(t, e.Dict.Root, got[0])
	assert.Same(t, e.Dict.Forth, got[1])
}

func TestWordlistAlsoDuplicatesTopOfOrder(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, "ONLY")
	before := len(e.Context().Order)
	run(t, e, "ALSO")
	after := e.Context().Order
	require.Len(t, after, before+1)
	assert.Same(t, after[len(after)-1], after[len(after)-2])
}

func TestWordlistPreviousUnderflowThrows(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, "ONLY")
	run(t, e, "PREVIOUS") // drops back to just ROOT
	code, err := e.RunOne("PREVIOUS", false)
	require.NoError(t, err)
	assert.Equal(t, ErrSearchOrderUnderflow, code)
}

func TestWordlistGetOrderAndSetOrderRoundtrip(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, "ONLY")
	run(t, e, "GET-ORDER")
	run(t, e, "SET-ORDER")
	got := e.Context().Order
	require.Len(t, got, 2)
	assert.Same(t, e.Dict.Root, got[0])
	assert.Same(t, e.Dict.Forth, got[1])
}

func TestWordsListsCurrentSearchOrderDefinitions(t *testing.T) {
	e, out := newTestEngine(t)
	run(t, e, ": ALPHA ;")
	run(t, e, ": BETA ;")
	run(t, e, "WORDS")
	s := out.String()
	assert.Contains(t, s, "ALPHA")
	assert.Contains(t, s, "BETA")
}
