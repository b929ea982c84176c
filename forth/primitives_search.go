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

// registerSearchPrimitives installs the wordlist/search-order words
// (spec 4.C, supplemented from original_source's forth_search.c); the
// words themselves are implemented in wordlist.go. They are installed
// into ROOT rather than FORTH, so they stay reachable when the search
// order has been narrowed to ROOT alone.
func (d *Dictionary) registerSearchPrimitives(reg registrar) {
	forth := d.Forth
	d.Forth = d.Root
	defer func() { d.Forth = forth }()
	reg("DEFINITIONS", false, definitionsWord)
	reg("ONLY", false, onlyWord)
	reg("ALSO", false, alsoWord)
	reg("PREVIOUS", false, previousWord)
	reg("FORTH-WORDLIST", false, func(d *Dictionary, ctx *Context) error {
		return ctx.Data.Push(wordlistXT(d.Forth))
	})
	reg("WORDLIST", false, wordlistWord)
	reg("GET-CURRENT", false, func(d *Dictionary, ctx *Context) error {
		return ctx.Data.Push(wordlistXT(ctx.Current))
	})
	reg("SET-CURRENT", false, setCurrentWord)
	reg("GET-ORDER", false, getOrderWord)
	reg("SET-ORDER", false, setOrderWord)
	reg(".WORDLISTS", false, dotWordlistsWord)
	reg("WORDS", false, wordsWord)
}
