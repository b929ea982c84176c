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
	"math/bits"

	"github.com/pkg/errors"
)

// Cell is the signed machine word used throughout the engine: data
// stack slots, dictionary addresses, execution tokens and compiled
// literals are all Cell values. CellBits fixes the configuration at
// 64 bits; a 32-bit host would change this type and CellBits together,
// as the original C implementation does via forth_cell_t.
type Cell int64

// UCell is the unsigned view of the same machine word, used by shift,
// comparison and base-conversion primitives that need unsigned
// semantics.
type UCell uint64

// CellBits is the width of a Cell in bits.
const CellBits = 64

// CellBytes is the width of a Cell in bytes.
const CellBytes = CellBits / 8

// Canonical truth values: Forth boolean words push TrueCell (all bits
// set) or FalseCell (all bits clear), never 1/0.
const (
	TrueCell  Cell = -1
	FalseCell Cell = 0
)

// BoolCell converts a Go bool to the canonical Forth truth value.
func BoolCell(b bool) Cell {
	if b {
		return TrueCell
	}
	return FalseCell
}

// IsTrue reports whether v is the canonical Forth "true" (non-zero,
// per ANS semantics any non-zero cell is true on the input side, even
// though this engine only ever produces TrueCell/FalseCell).
func IsTrue(v Cell) bool { return v != 0 }

// UMStar computes the unsigned double-cell product of a and b. The
// result's low cell sits on top of the data stack when pushed, i.e.
// callers should push hi then lo.
func UMStar(a, b Cell) (hi, lo Cell) {
	h, l := bits.Mul64(uint64(UCell(a)), uint64(UCell(b)))
	return Cell(h), Cell(l)
}

// MStar computes the signed double-cell product of a and b.
func MStar(a, b Cell) (hi, lo Cell) {
	neg := (a < 0) != (b < 0)
	ua, ub := UCell(a), UCell(b)
	if a < 0 {
		ua = UCell(-a)
	}
	if b < 0 {
		ub = UCell(-b)
	}
	uhi, ulo := UMStar(Cell(ua), Cell(ub))
	if neg {
		// two's complement negate the 128-bit value (hi:lo)
		ulo = ^ulo + 1
		uhi = ^uhi
		if ulo == 0 {
			uhi++
		}
	}
	return uhi, ulo
}

// UMSlashMod divides the unsigned double-cell value (hi:lo) by
// divisor, returning remainder and quotient (in that order, matching
// the stack effect ud u -- u-rem u-quot).
func UMSlashMod(hi, lo, divisor Cell) (rem, quot Cell, err error) {
	if divisor == 0 {
		return 0, 0, newError(ErrDivisionByZero)
	}
	h, l := uint64(UCell(hi)), uint64(UCell(lo))
	d := uint64(UCell(divisor))
	if h >= d {
		return 0, 0, newError(ErrResultOutOfRange)
	}
	q, r := bits.Div64(h, l, d)
	return Cell(UCell(r)), Cell(UCell(q)), nil
}

// SlashMod performs signed division truncated toward negative
// infinity (floored division), matching /MOD on this engine. Division
// by zero throws -10 per spec.
func SlashMod(a, b Cell) (mod, quot Cell, err error) {
	if b == 0 {
		return 0, 0, newError(ErrDivisionByZero)
	}
	q := a / b
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		q--
		r += b
	}
	return r, q, nil
}

// digitValue maps a single character to its numeric value in the
// given base, returning ok=false if the character is not a valid
// digit in that base. Matching is case-insensitive, covering 0-9 and
// A-Z (bases up to 36).
func digitValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'z':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'Z':
		return int(r-'A') + 10, true
	default:
		return 0, false
	}
}

// digitChar is the inverse of digitValue: it renders a digit value in
// [0,35] as the conventional lower-case Forth digit character.
func digitChar(v int) byte {
	if v < 10 {
		return byte('0' + v)
	}
	return byte('a' + v - 10)
}

// normalizeBase replaces a BASE below 2 with 10, matching the
// engine's "bases below 2 format as decimal" rule (spec 4.A).
func normalizeBase(base Cell) Cell {
	if base < 2 {
		return 10
	}
	return base
}

// FormatUnsigned renders an unsigned Cell in the given base, most
// significant digit first, with no sign and no leading zeroes (save
// for the value zero itself, which renders as "0").
func FormatUnsigned(v UCell, base Cell) string {
	b := uint64(UCell(normalizeBase(base)))
	if v == 0 {
		return "0"
	}
	var buf [CellBits + 1]byte
	i := len(buf)
	n := uint64(v)
	for n > 0 {
		i--
		buf[i] = digitChar(int(n % b))
		n /= b
	}
	return string(buf[i:])
}

// ParseUnsigned is the inverse of FormatUnsigned: it reparses a
// formatted representation back into an unsigned Cell in the given
// base, used by the base round-trip property (spec 8.2).
func ParseUnsigned(s string, base Cell) (UCell, error) {
	b := uint64(UCell(normalizeBase(base)))
	if s == "" {
		return 0, errors.New("empty numeral")
	}
	var v uint64
	for _, r := range s {
		d, ok := digitValue(r)
		if !ok || uint64(d) >= b {
			return 0, errors.Errorf("invalid digit %q in base %d", r, b)
		}
		v = v*b + uint64(d)
	}
	return UCell(v), nil
}
