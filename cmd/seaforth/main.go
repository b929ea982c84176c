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

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dbz47h/seaforth/block"
	"github.com/dbz47h/seaforth/forth"
	"github.com/dbz47h/seaforth/lang/retro"
	"github.com/dbz47h/seaforth/term"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

var (
	dictSize   int
	dataSize   int
	returnSize int
	blockFile  string
	bufferCnt  int
	noRawIO    bool
	debug      bool
	dump       bool
)

func atExit(ctx *forth.Context, err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	os.Exit(1)
}

func main() {
	pflag.IntVar(&dictSize, "size", 1<<16, "dictionary arena size in cells")
	pflag.IntVar(&dataSize, "dstack", 1024, "data stack depth in cells")
	pflag.IntVar(&returnSize, "rstack", 1024, "return stack depth in cells")
	pflag.StringVar(&blockFile, "blocks", "", "enable the BLOCK word set, backed by `filename`")
	pflag.IntVar(&bufferCnt, "buffers", 0, "number of block buffers (0 = default)")
	pflag.BoolVar(&noRawIO, "noraw", false, "disable raw terminal IO")
	pflag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	pflag.BoolVar(&dump, "dump", false, "dump stacks and dictionary arena to stdout on exit")
	pflag.Parse()

	stdout := bufio.NewWriter(os.Stdout)
	out := term.NewOutput(stdout, stdout.Flush, consoleSize(os.Stdout))

	rawTearDown, rawErr := setupRawIO()
	if rawTearDown != nil {
		defer rawTearDown()
	}
	if rawErr != nil && !noRawIO {
		fmt.Fprintln(os.Stderr, errors.Wrap(rawErr, "raw IO unavailable, falling back to line buffering"))
	}

	in := os.Stdin
	kb := term.NewKeyboard(in)

	opts := []forth.Option{
		forth.DictionarySize(dictSize),
		forth.DataStackSize(dataSize),
		forth.ReturnStackSize(returnSize),
		forth.WithOutput(out.WriteString, out.SendCR),
		forth.WithAccept(kb.Accept),
		forth.WithKeyboard(
			kb.Key,
			kb.KeyQ,
			func() (forth.Cell, error) { v, err := kb.EKey(); return forth.Cell(v), err },
			kb.EKeyQ,
			func(ev forth.Cell) (byte, bool) { return kb.EKeyToChar(int32(ev)) },
		),
		forth.WithTerminal(80, out.AtXY, out.Page),
	}

	var blocks *block.Store
	if blockFile != "" {
		var err error
		blocks, err = block.Open(blockFile, bufferCnt)
		if err != nil {
			fmt.Fprintln(os.Stderr, errors.Wrap(err, "opening block file"))
			os.Exit(1)
		}
		defer blocks.Close()
		opts = append(opts, forth.WithBlockStore(blocks))
	}

	e, err := forth.New(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "initializing engine"))
		os.Exit(1)
	}

	if width, _ := out.Size(); width > 0 {
		e.Context().TermWidth = width
	}

	for _, name := range pflag.Args() {
		f, err := os.Open(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, errors.Wrapf(err, "opening %s", name))
			os.Exit(1)
		}
		src, err := readAll(f)
		f.Close()
		if err != nil {
			fmt.Fprintln(os.Stderr, errors.Wrapf(err, "reading %s", name))
			os.Exit(1)
		}
		if err := e.Dict.Evaluate(e.Context(), src); err != nil {
			out.Flush()
			atExit(e.Context(), errors.Wrapf(err, "loading %s", name))
		}
	}

	err = e.Run()
	out.Flush()
	if dump {
		if derr := retro.DumpEngine(e, dictSize, os.Stdout); derr != nil {
			fmt.Fprintln(os.Stderr, errors.Wrap(derr, "dump failed"))
		}
	}
	atExit(e.Context(), err)
}

func readAll(f *os.File) (string, error) {
	buf, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func setupRawIO() (func(), error) {
	if noRawIO {
		return nil, nil
	}
	return setRawIO()
}
