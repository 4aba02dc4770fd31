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

// jumpTypes maps byte 0x70..0x7F (16 conditional jumps, canonical order)
// and 0xE0..0xE3 (loopnz, loopz, loop, jcxz) to their InstructionType.
var jumpTypes = map[byte]InstructionType{
	0x70: InstJo, 0x71: InstJno, 0x72: InstJb, 0x73: InstJnb,
	0x74: InstJe, 0x75: InstJne, 0x76: InstJbe, 0x77: InstJa,
	0x78: InstJs, 0x79: InstJns, 0x7A: InstJp, 0x7B: InstJnp,
	0x7C: InstJl, 0x7D: InstJnl, 0x7E: InstJle, 0x7F: InstJg,
	0xE0: InstLoopnz, 0xE1: InstLoopz, 0xE2: InstLoop, 0xE3: InstJcxz,
}

// isJump recognizes the conditional-jump/loop family by first byte.
func isJump(b byte) bool {
	return (b >= 0x70 && b <= 0x7F) || (b >= 0xE0 && b <= 0xE3)
}

// decodeJump reads the first byte plus its one signed-displacement byte.
func decodeJump(c *Cursor) (Instruction, error) {
	first, err := c.Advance()
	if err != nil {
		return Instruction{}, err
	}
	data, err := c.Advance()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{
		Type: jumpTypes[first],
		Src:  JumpOperand(int8(data)),
	}, nil
}

// branchTaken evaluates the branch predicate of SPEC_FULL.md §4.5.1.
// loop/loopz/loopnz decrement cx first; this follows the reference ISA
// ("jump if cx != 0 after the decrement"), not the backwards reading
// some historical decoders carry — see SPEC_FULL.md §9.
func branchTaken(t InstructionType, rf *RegisterFile) bool {
	switch t {
	case InstJo:
		return rf.GetFlag(OF)
	case InstJno:
		return !rf.GetFlag(OF)
	case InstJb:
		return rf.GetFlag(CF)
	case InstJnb:
		return !rf.GetFlag(CF)
	case InstJe:
		return rf.GetFlag(ZF)
	case InstJne:
		return !rf.GetFlag(ZF)
	case InstJbe:
		return rf.GetFlag(ZF) || rf.GetFlag(CF)
	case InstJa:
		return !(rf.GetFlag(ZF) || rf.GetFlag(CF))
	case InstJs:
		return rf.GetFlag(SF)
	case InstJns:
		return !rf.GetFlag(SF)
	case InstJp:
		return rf.GetFlag(PF)
	case InstJnp:
		return !rf.GetFlag(PF)
	case InstJl:
		return rf.GetFlag(SF) != rf.GetFlag(OF)
	case InstJnl:
		return rf.GetFlag(SF) == rf.GetFlag(OF)
	case InstJle:
		return (rf.GetFlag(SF) != rf.GetFlag(OF)) || rf.GetFlag(ZF)
	case InstJg:
		return !((rf.GetFlag(SF) != rf.GetFlag(OF)) || rf.GetFlag(ZF))
	case InstLoop:
		rf.Set(RegC, UsageWord, rf.Get(RegC, UsageWord)-1)
		return rf.Get(RegC, UsageWord) != 0
	case InstLoopz:
		rf.Set(RegC, UsageWord, rf.Get(RegC, UsageWord)-1)
		return rf.Get(RegC, UsageWord) != 0 && rf.GetFlag(ZF)
	case InstLoopnz:
		rf.Set(RegC, UsageWord, rf.Get(RegC, UsageWord)-1)
		return rf.Get(RegC, UsageWord) != 0 && !rf.GetFlag(ZF)
	case InstJcxz:
		return rf.Get(RegC, UsageWord) == 0
	default:
		return false
	}
}
