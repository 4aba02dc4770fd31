// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package sim86

import "github.com/master-g/sim86/go/sim86/simerr"

// byteStackCap bounds the in-flight byte stack of a Cursor. No 8086
// instruction this decoder recognizes consumes more than six bytes
// (opcode + ModR/M + 2 disp + 2 imm).
const byteStackCap = 6

// Cursor walks an input byte slice one instruction at a time, remembering
// the bytes consumed for the instruction currently being decoded so that
// decoders can peek backward without re-reading the input.
type Cursor struct {
	input []byte
	offset int
	stack [byteStackCap]byte
	count int
}

// NewCursor wraps input for decoding starting at offset 0.
func NewCursor(input []byte) *Cursor {
	return &Cursor{input: input}
}

// Offset is the next unread position in the input.
func (c *Cursor) Offset() int { return c.offset }

// Len reports the number of bytes pushed onto the stack for the
// instruction currently in flight.
func (c *Cursor) Len() int { return c.count }

// Exhausted reports whether the cursor has no more bytes to read.
func (c *Cursor) Exhausted() bool { return c.offset >= len(c.input) }

// PeekNext returns the next unread byte without consuming it, for family
// dispatch predicates. The second return is false at end of input.
func (c *Cursor) PeekNext() (byte, bool) {
	return c.PeekAt(0)
}

// PeekNext2 returns the byte after the next unread byte (typically the
// ModR/M byte) without consuming anything, for predicates that need to
// inspect ModR/M's reg-field extension before committing to a decode.
func (c *Cursor) PeekNext2() (byte, bool) {
	return c.PeekAt(1)
}

// PeekAt returns the unread byte at offset+rel without consuming it.
func (c *Cursor) PeekAt(rel int) (byte, bool) {
	idx := c.offset + rel
	if idx < 0 || idx >= len(c.input) {
		return 0, false
	}
	return c.input[idx], true
}

// Advance reads one byte, pushes it on the byte stack, and returns it.
func (c *Cursor) Advance() (byte, error) {
	if c.offset >= len(c.input) {
		return 0, simerr.CursorExhausted(c.offset)
	}
	if c.count == byteStackCap {
		return 0, simerr.CursorExhausted(c.offset)
	}
	b := c.input[c.offset]
	c.stack[c.count] = b
	c.count++
	c.offset++
	return b, nil
}

// BackOne undoes the last Advance.
func (c *Cursor) BackOne() error {
	if c.offset == 0 || c.count == 0 {
		return simerr.CursorExhausted(c.offset)
	}
	c.offset--
	c.count--
	return nil
}

// Peek8 reads a byte from the byte stack at a signed offset; a negative
// delta counts back from the most recently pushed byte.
func (c *Cursor) Peek8(delta int) byte {
	idx := delta
	if delta < 0 {
		idx = c.count + delta
	}
	return c.stack[idx]
}

// Peek16 reads a little-endian word starting at the given stack offset.
func (c *Cursor) Peek16(delta int) uint16 {
	lo := c.Peek8(delta)
	hi := c.Peek8(delta + 1)
	return uint16(lo) | uint16(hi)<<8
}

// Advance8 reads and returns the next byte as an unsigned 8-bit value.
func (c *Cursor) Advance8() (uint8, error) {
	b, err := c.Advance()
	return b, err
}

// Advance16 reads a little-endian word (two Advance calls).
func (c *Cursor) Advance16() (uint16, error) {
	lo, err := c.Advance()
	if err != nil {
		return 0, err
	}
	hi, err := c.Advance()
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

// Advance8Or16 reads a byte or a word depending on wide.
func (c *Cursor) Advance8Or16(wide bool) (uint16, error) {
	if wide {
		return c.Advance16()
	}
	b, err := c.Advance8()
	return uint16(b), err
}

// AdvanceDisplacement reads 0, 1, or 2 displacement bytes for the given
// ModR/M mod/rm fields per the layout in SPEC_FULL.md §6, returning the
// displacement already sign-extended to 16 bits (mod=00,rm=110 is the
// direct-address exception and stays unsigned).
func (c *Cursor) AdvanceDisplacement(mod, rm uint8) (uint16, error) {
	switch mod {
	case 0b00:
		if rm == 0b110 {
			return c.Advance16()
		}
		return 0, nil
	case 0b01:
		b, err := c.Advance8()
		if err != nil {
			return 0, err
		}
		return uint16(int16(int8(b))), nil
	case 0b10:
		return c.Advance16()
	default: // 0b11, register mode
		return 0, nil
	}
}

// Reset clears the byte stack between instructions.
func (c *Cursor) Reset() {
	c.count = 0
}

// ByteStack returns the bytes consumed for the current instruction, in
// the order they were read.
func (c *Cursor) ByteStack() []byte {
	return append([]byte(nil), c.stack[:c.count]...)
}

// Seek repositions the cursor's read offset directly, used when a taken
// branch must resynchronize decoding to its target.
func (c *Cursor) Seek(offset int) {
	c.offset = offset
}
