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

// family is one member of the small, closed, ordered predicate/decoder
// list that drives top-level dispatch; see SPEC_FULL.md §9 ("avoid
// virtual tables; the family set is closed").
type family struct {
	name    string
	isStart func(c *Cursor, b byte) bool
	decode  func(c *Cursor) (Instruction, error)
}

// families is ordered data-movement -> jump/loop -> arithmetic/logic,
// exactly the precedence SPEC_FULL.md §4.4 mandates: a byte satisfying
// more than one predicate belongs to the earliest family.
var families = []family{
	{"mov", func(_ *Cursor, b byte) bool { return isMOV(b) }, decodeMOV},
	{"jump", func(_ *Cursor, b byte) bool { return isJump(b) }, decodeJump},
	{"arith/logic", isArithLogic, decodeArithLogic},
}

// Decode reads one instruction starting at the cursor's current offset,
// routing through the ordered family list. The cursor's byte stack holds
// exactly the bytes this instruction consumed on return.
func Decode(c *Cursor) (Instruction, error) {
	first, ok := c.PeekNext()
	if !ok {
		return Instruction{}, simerr.CursorExhausted(c.Offset())
	}
	for _, f := range families {
		if f.isStart(c, first) {
			return f.decode(c)
		}
	}
	return Instruction{}, simerr.UnrecognizedOpcode(first)
}
