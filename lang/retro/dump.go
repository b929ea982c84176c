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

// Package retro holds small debugging helpers kept around from the
// original command-line tool this engine grew out of: dumping the
// stacks and dictionary arena in a form a human (or a test harness)
// can diff.
package retro

import (
	"io"
	"strconv"

	"github.com/dbz47h/seaforth/forth"
	"github.com/dbz47h/seaforth/internal/ngi"
)

func dumpCells(w *ngi.ErrWriter, a []forth.Cell) error {
	l := len(a) - 1
	if l >= 0 {
		for i := 0; i < l; i++ {
			io.WriteString(w, strconv.Itoa(int(a[i])))
			w.Write([]byte{' '})
		}
		io.WriteString(w, strconv.Itoa(int(a[l])))
	}
	return w.Err
}

// DumpEngine writes the data stack, return stack and the first size
// cells of the dictionary arena to w, separated by the ASCII File
// Separator / Group Separator control bytes so a harness can split the
// three sections back apart without guessing at field widths.
func DumpEngine(e *forth.Engine, size int, w io.Writer) error {
	ctx := e.Context()
	ew := ngi.NewErrWriter(w)
	ew.Write([]byte{'\x1C'})
	dumpCells(ew, ctx.Data.Cells())
	ew.Write([]byte{'\x1D'})
	dumpCells(ew, ctx.Return.Cells())
	ew.Write([]byte{'\x1D'})
	if size > len(e.Dict.Mem) {
		size = len(e.Dict.Mem)
	}
	return dumpCells(ew, e.Dict.Mem[:size])
}
