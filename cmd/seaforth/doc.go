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

// Command seaforth is an interactive host for the package
// github.com/dbz47h/seaforth/forth: a standalone Forth interpreter
// with a terminal front end and an optional on-disk block store.
//
// Usage:
//
//	--blocks filename
//		  enable the BLOCK word set, backed by filename
//	--buffers int
//		  number of block buffers (0 = default)
//	--debug
//		  enable debug diagnostics
//	--dstack int
//		  data stack depth in cells (default 1024)
//	--dump
//		  dump stacks and dictionary arena to stdout on exit
//	--noraw
//		  disable raw terminal IO
//	--rstack int
//		  return stack depth in cells (default 1024)
//	--size int
//		  dictionary arena size in cells (default 65536)
//
// Any remaining command-line arguments are loaded, in order, as Forth
// source files before control is handed to the interactive REPL.
//
// --blocks: when set, BLOCK, BUFFER, UPDATE, SAVE-BUFFERS,
// EMPTY-BUFFERS, FLUSH, LIST, LOAD and THRU become available, backed
// by the named file (created if it does not exist). Without --blocks,
// those words throw "unsupported operation".
//
// --noraw: on startup seaforth switches stdin to raw mode so EKEY/KEY
// see one keystroke at a time. This flag disables that and falls back
// to line-buffered input.
//
// --debug: prints the full error chain (via github.com/pkg/errors) on
// an uncaught THROW instead of just its message.
//
// --dump: after the session ends, writes the data stack, return stack
// and the dictionary arena to stdout, separated by ASCII FS/GS control
// bytes; meant for scripted comparison against a reference run.
package main
