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

func TestPicturedPositiveNumber(t *testing.T) {
	e, out := newTestEngine(t)
	run(t, e, `: .U <# #S #> TYPE ;`)
	run(t, e, "0 123 .U")
	assert.Equal(t, "123", out.String())
}

func TestPicturedSignedNumber(t *testing.T) {
	e, out := newTestEngine(t)
	run(t, e, `: .SIGNED DUP >R ABS 0 SWAP <# #S R> SIGN #> TYPE ;`)
	run(t, e, "-45 .SIGNED")
	assert.Equal(t, "-45", out.String())
}

func TestPicturedZeroStillRendersADigit(t *testing.T) {
	e, out := newTestEngine(t)
	run(t, e, `: .U <# #S #> TYPE ;`)
	run(t, e, "0 0 .U")
	assert.Equal(t, "0", out.String())
}

func TestPicturedHoldPrependsLiteralByte(t *testing.T) {
	e, out := newTestEngine(t)
	run(t, e, `: .DOLLAR <# #S 36 HOLD #> TYPE ;`)
	run(t, e, "0 7 .DOLLAR")
	assert.Equal(t, "$7", out.String())
}

func TestPicturedOverflowThrows(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, `: HOGPAD <# BEGIN 1 HOLD AGAIN ;`)
	code, err := e.RunOne("HOGPAD", false)
	require.NoError(t, err)
	assert.Equal(t, ErrPicturedOverflow, code)
}
