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

package block

import "strconv"

// Lines is the number of LIST lines a block is divided into.
const Lines = 16

// LineWidth is the width, in bytes, of a single LIST line.
const LineWidth = Size / Lines

// FormatList renders a block's raw bytes the way LIST does (spec
// 4.K), grounded on forth_blocks.c's forth_list: a numbered line per
// LineWidth-byte chunk, newline separated, no trailing blank line.
func FormatList(buf []byte) string {
	var out []byte
	for i := 0; i < Lines; i++ {
		n := strconv.Itoa(i)
		out = append(out, n...)
		for j := len(n); j < 4; j++ {
			out = append(out, ' ')
		}
		start := i * LineWidth
		out = append(out, buf[start:start+LineWidth]...)
		out = append(out, '\n')
	}
	return string(out)
}
