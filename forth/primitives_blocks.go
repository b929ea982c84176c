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

// The words in this file (spec 4.K, supplemented from
// original_source's forth_blocks.c) all require ctx.Blocks to be
// wired in via WithBlockStore and throw -21 (unsupported operation)
// otherwise. Block bytes never live directly in the dictionary arena
// the way everything else here does: package block owns the real
// buffers, and syncBlockIn/syncBlockOut copy a block's bytes between
// a BlockStore buffer and the one staging area reserved at
// d.blockBase, so ordinary C@/C!/TYPE can address it like any other
// string in memory.

// syncBlockOut copies any edits made through the staging buffer back
// into the BlockStore-owned slice it was copied from, so SAVE-BUFFERS
// and the next BLOCK/BUFFER see them.
func (d *Dictionary) syncBlockOut(ctx *Context) {
	if ctx.blockBuf == nil {
		return
	}
	for i, b := range ctx.blockBuf {
		ctx.blockBuf[i] = byte(d.Mem[d.blockBase+Cell(i)])
		_ = b
	}
}

// syncBlockIn stages buf (a BlockStore-owned slice for block n) into
// the arena at d.blockBase, first flushing whatever was staged before
// it.
func (d *Dictionary) syncBlockIn(ctx *Context, n Cell, buf []byte) {
	d.syncBlockOut(ctx)
	for i, c := range buf {
		d.Mem[d.blockBase+Cell(i)] = Cell(c)
	}
	ctx.blockCurrent = n
	ctx.blockBuf = buf
}

func requireBlocks(ctx *Context) error {
	if ctx.Blocks == nil {
		return newError(ErrUnsupportedOperation)
	}
	return nil
}

// registerBlockPrimitives installs the optional BLOCK word set.
func (d *Dictionary) registerBlockPrimitives(reg registrar) {
	reg("BUFFER", false, func(d *Dictionary, ctx *Context) error {
		if err := requireBlocks(ctx); err != nil {
			return err
		}
		n, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		buf, err := ctx.Blocks.Buffer(n)
		if err != nil {
			return err
		}
		d.syncBlockIn(ctx, n, buf)
		return ctx.Data.Push(d.blockBase)
	})
	reg("BLOCK", false, func(d *Dictionary, ctx *Context) error {
		if err := requireBlocks(ctx); err != nil {
			return err
		}
		n, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		buf, err := ctx.Blocks.Block(n)
		if err != nil {
			return err
		}
		d.syncBlockIn(ctx, n, buf)
		return ctx.Data.Push(d.blockBase)
	})
	reg("UPDATE", false, func(d *Dictionary, ctx *Context) error {
		if err := requireBlocks(ctx); err != nil {
			return err
		}
		d.syncBlockOut(ctx)
		ctx.Blocks.Update()
		return nil
	})
	reg("SAVE-BUFFERS", false, func(d *Dictionary, ctx *Context) error {
		if err := requireBlocks(ctx); err != nil {
			return err
		}
		d.syncBlockOut(ctx)
		return ctx.Blocks.SaveBuffers()
	})
	reg("EMPTY-BUFFERS", false, func(d *Dictionary, ctx *Context) error {
		if err := requireBlocks(ctx); err != nil {
			return err
		}
		ctx.Blocks.EmptyBuffers()
		ctx.blockCurrent = 0
		ctx.blockBuf = nil
		return nil
	})
	reg("FLUSH", false, func(d *Dictionary, ctx *Context) error {
		if err := requireBlocks(ctx); err != nil {
			return err
		}
		d.syncBlockOut(ctx)
		if err := ctx.Blocks.SaveBuffers(); err != nil {
			return err
		}
		ctx.Blocks.EmptyBuffers()
		ctx.blockCurrent = 0
		ctx.blockBuf = nil
		return nil
	})
	reg("BLK", false, func(d *Dictionary, ctx *Context) error {
		return ctx.Data.Push(ctx.BLK())
	})
	reg("LIST", false, func(d *Dictionary, ctx *Context) error {
		if err := requireBlocks(ctx); err != nil {
			return err
		}
		if ctx.WriteString == nil {
			return newError(ErrUnsupportedOperation)
		}
		n, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		buf, err := ctx.Blocks.Block(n)
		if err != nil {
			return err
		}
		return ctx.WriteString(formatList(buf))
	})
	reg("LOAD", false, func(d *Dictionary, ctx *Context) error {
		if err := requireBlocks(ctx); err != nil {
			return err
		}
		n, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		return d.loadBlock(ctx, n)
	})
	reg("THRU", false, func(d *Dictionary, ctx *Context) error {
		if err := requireBlocks(ctx); err != nil {
			return err
		}
		last, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		first, err := ctx.Data.Pop()
		if err != nil {
			return err
		}
		for n := first; n <= last; n++ {
			if err := d.loadBlock(ctx, n); err != nil {
				return err
			}
		}
		return nil
	})
}

// loadBlock interprets block n's full contents as source, the runtime
// behind LOAD/THRU (spec 4.K, forth_blocks.c's forth_load): a fresh
// input source backed by that block, restored unconditionally via
// defer so a THROW out of the block's text cannot leave >IN/BLK
// pointing at the wrong source.
func (d *Dictionary) loadBlock(ctx *Context, n Cell) error {
	raw, err := ctx.Blocks.Block(n)
	if err != nil {
		return err
	}
	ctx.PushSource(string(raw), -1)
	ctx.SetBLK(n)
	defer ctx.PopSource()
	return d.Interpret(ctx)
}

// listLines and listLineWidth split a block into LIST's 16 numbered
// lines (spec 4.K, forth_blocks.c's forth_list). A block's byte size
// is fixed by the standard, so these divide evenly regardless of
// which BlockStore is wired in.
const (
	listLines     = 16
	listLineWidth = blockBufferCells / listLines
)

func formatList(buf []byte) string {
	var out []byte
	for i := 0; i < listLines && (i+1)*listLineWidth <= len(buf); i++ {
		n := itoa4(i)
		out = append(out, n...)
		start := i * listLineWidth
		out = append(out, buf[start:start+listLineWidth]...)
		out = append(out, '\n')
	}
	return string(out)
}

// itoa4 left-justifies n in a 4-character field, matching forth_list's
// `forth_DOT_R(ctx, 10, i, 4, 0)` line-number column.
func itoa4(n int) string {
	s := FormatUnsigned(UCell(n), 10)
	for len(s) < 4 {
		s += " "
	}
	return s
}
