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

// PushSource installs a new input source on top of the current one,
// returning control to the parent source once it is exhausted. Used
// by EVALUATE (id = -1) and by INCLUDE-style file sources (id > 0).
func (ctx *Context) PushSource(buf string, id Cell) {
	ctx.src = &source{buf: buf, id: id, parent: ctx.src}
}

// PopSource restores the parent input source, if any.
func (ctx *Context) PopSource() {
	if ctx.src != nil {
		ctx.src = ctx.src.parent
	}
}

// SourceID returns the current input source's id (spec 4.F / 6).
func (ctx *Context) SourceID() Cell {
	if ctx.src == nil {
		return 0
	}
	return ctx.src.id
}

// ToIn returns the current value of >IN, the offset into the current
// input buffer.
func (ctx *Context) ToIn() Cell {
	if ctx.src == nil {
		return 0
	}
	return Cell(ctx.src.toIn)
}

// SetToIn sets >IN.
func (ctx *Context) SetToIn(v Cell) {
	if ctx.src != nil {
		ctx.src.toIn = int(v)
	}
}

// SourceBuffer returns the raw text of the current input source.
func (ctx *Context) SourceBuffer() string {
	if ctx.src == nil {
		return ""
	}
	return ctx.src.buf
}

// BLK returns the block number backing the current input source, or 0.
func (ctx *Context) BLK() Cell {
	if ctx.src == nil {
		return 0
	}
	return ctx.src.blk
}

// SetBLK marks the current source as backed by the given block.
func (ctx *Context) SetBLK(n Cell) {
	if ctx.src != nil {
		ctx.src.blk = n
	}
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }

// Parse scans from >IN to the end of the current source, collecting
// bytes until the delimiter is seen (spec 4.F "PARSE"). A delimiter
// value equal to space means "any whitespace". >IN is advanced past
// the delimiter (or to the end of the source, if none was found).
func (ctx *Context) Parse(delim byte) string {
	if ctx.src == nil {
		return ""
	}
	buf := ctx.src.buf
	start := ctx.src.toIn
	if start > len(buf) {
		start = len(buf)
	}
	i := start
	isDelim := func(b byte) bool {
		if delim == ' ' {
			return isSpace(b)
		}
		return b == delim
	}
	for i < len(buf) && !isDelim(buf[i]) {
		i++
	}
	end := i
	if i < len(buf) {
		i++ // skip the delimiter itself
	}
	ctx.src.toIn = i
	return buf[start:end]
}

// ParseName skips leading whitespace, then parses a space-delimited
// token (spec 4.F "PARSE-NAME").
func (ctx *Context) ParseName() string {
	if ctx.src == nil {
		return ""
	}
	buf := ctx.src.buf
	i := ctx.src.toIn
	for i < len(buf) && isSpace(buf[i]) {
		i++
	}
	ctx.src.toIn = i
	name := ctx.Parse(' ')
	ctx.parsedName = name
	return name
}

// AtSourceEnd reports whether the current source has no more
// non-whitespace text to parse.
func (ctx *Context) AtSourceEnd() bool {
	if ctx.src == nil {
		return true
	}
	return strings.TrimLeft(ctx.src.buf[min(ctx.src.toIn, len(ctx.src.buf)):], " \t\r\n") == ""
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// parsedNumber is the result of attempting to read source as a
// number: either a single Cell or a double-cell value (Hi:Lo, marked
// IsDouble), per spec 4.F.
type parsedNumber struct {
	Hi, Lo   Cell
	IsDouble bool
}

// ParseNumber attempts to convert tok to a number using ctx's current
// BASE, honoring an optional leading sign, an embedded "0x"/"0X"
// prefix that switches that conversion to base 16, and an embedded "."
// which marks the value as double and is otherwise ignored (spec 4.F
// "Number reader").
func ParseNumber(tok string, base Cell) (parsedNumber, bool) {
	if tok == "" {
		return parsedNumber{}, false
	}
	s := tok
	neg := false
	if s[0] == '-' || s[0] == '+' {
		neg = s[0] == '-'
		s = s[1:]
		if s == "" {
			return parsedNumber{}, false
		}
	}
	b := base
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		b = 16
		s = s[2:]
		if s == "" {
			return parsedNumber{}, false
		}
	}
	isDouble := false
	var digits []byte
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			isDouble = true
			continue
		}
		digits = append(digits, s[i])
	}
	if len(digits) == 0 {
		return parsedNumber{}, false
	}
	u, err := ParseUnsigned(string(digits), b)
	if err != nil {
		return parsedNumber{}, false
	}
	v := Cell(u)
	if neg {
		v = -v
	}
	if isDouble {
		hi := Cell(0)
		if v < 0 {
			hi = -1
		}
		return parsedNumber{Hi: hi, Lo: v, IsDouble: true}, true
	}
	return parsedNumber{Hi: 0, Lo: v, IsDouble: false}, true
}
