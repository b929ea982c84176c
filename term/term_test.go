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

package term

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestOutput mirrors how cmd/seaforth wires an Output: a bufio.Writer
// passed in directly (so it already satisfies runeWriter and isn't
// wrapped a second time) with its own Flush bound as the flush callback.
func newTestOutput(buf *bytes.Buffer, size func() (int, int)) (*Output, *bufio.Writer) {
	w := bufio.NewWriter(buf)
	return NewOutput(w, w.Flush, size), w
}

func TestOutputWriteStringAndFlush(t *testing.T) {
	var buf bytes.Buffer
	out, _ := newTestOutput(&buf, nil)
	require.NoError(t, out.WriteString("hello"))
	require.NoError(t, out.Flush())
	assert.Equal(t, "hello", buf.String())
}

func TestOutputSendCR(t *testing.T) {
	var buf bytes.Buffer
	out, _ := newTestOutput(&buf, nil)
	require.NoError(t, out.WriteString("line"))
	require.NoError(t, out.SendCR())
	assert.Equal(t, "line\n", buf.String())
}

func TestOutputSizeDefaultsWithoutCallback(t *testing.T) {
	var buf bytes.Buffer
	out, _ := newTestOutput(&buf, nil)
	w, h := out.Size()
	assert.Equal(t, 0, w)
	assert.Equal(t, 0, h)
}

func TestOutputSizeUsesCallback(t *testing.T) {
	var buf bytes.Buffer
	out, _ := newTestOutput(&buf, func() (int, int) { return 80, 24 })
	w, h := out.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)
}

func TestKeyboardKey(t *testing.T) {
	kb := NewKeyboard(strings.NewReader("A"))
	b, err := kb.Key()
	require.NoError(t, err)
	assert.Equal(t, byte('A'), b)
}

func TestKeyboardEKeyToChar(t *testing.T) {
	kb := NewKeyboard(strings.NewReader(""))
	ch, ok := kb.EKeyToChar(65)
	assert.True(t, ok)
	assert.Equal(t, byte('A'), ch)

	_, ok = kb.EKeyToChar(-1)
	assert.False(t, ok)
	_, ok = kb.EKeyToChar(256)
	assert.False(t, ok)
}

func TestKeyboardAccept(t *testing.T) {
	kb := NewKeyboard(strings.NewReader("hello world\nsecond line\n"))
	buf := make([]byte, 64)
	n, err := kb.Accept(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", string(buf[:n]))
}

func TestAtXYWritesEscape(t *testing.T) {
	var buf bytes.Buffer
	out, _ := newTestOutput(&buf, nil)
	require.NoError(t, out.AtXY(2, 5))
	require.NoError(t, out.Flush())
	assert.Equal(t, "\033[3;6H", buf.String())
}

func TestPageWritesClearEscape(t *testing.T) {
	var buf bytes.Buffer
	out, _ := newTestOutput(&buf, nil)
	require.NoError(t, out.Page())
	require.NoError(t, out.Flush())
	assert.Equal(t, "\033[2J\033[1;1H", buf.String())
}
