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

// Package forth implements an embeddable, interactive compiler and
// execution engine for a concatenative, stack-based language of the
// Forth family.
//
// An Engine owns a dictionary arena, two bounded stacks, a wordlist
// search order and a runtime Context. The outer interpreter
// (Dictionary.Interpret) tokenizes a source, looks words up in the
// dictionary and either executes them immediately or compiles them,
// threading control through the compiler (compile.go) for structured
// words such as IF/THEN, BEGIN/WHILE/REPEAT and DO/LOOP.
//
// The engine does not perform any I/O of its own beyond the callbacks
// supplied via Options: host programs provide WriteString/SendCR
// (mandatory) and may add Accept/Key/EKey/AtXY/Page to light up more
// of the TYPE/EMIT/KEY/ACCEPT/AT-XY/PAGE word set. See package term
// for a ready-made façade and package block for the optional 1 KiB
// buffered block store.
//
// This package carries no dependency on any particular host transport:
// embedders are expected to wire package term (or their own callback
// set) and, optionally, package block for persistent storage.
package forth
