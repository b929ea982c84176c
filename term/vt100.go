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
	"strconv"

	"github.com/pkg/errors"
)

// AtXY implements the AT-XY callback (spec 4.J): a VT100 cursor
// positioning escape, 1-based as the standard requires.
func (o *Output) AtXY(row, col int) error {
	var b []byte
	b = append(b, '\033', '[')
	b = append(b, strconv.Itoa(row+1)...)
	b = append(b, ';')
	b = append(b, strconv.Itoa(col+1)...)
	b = append(b, 'H')
	_, err := o.w.Write(b)
	return errors.Wrap(err, "terminal write failed")
}

// Page implements the PAGE callback: clear the screen and home the
// cursor.
func (o *Output) Page() error {
	_, err := o.w.Write([]byte{'\033', '[', '2', 'J', '\033', '[', '1', ';', '1', 'H'})
	return errors.Wrap(err, "terminal write failed")
}
