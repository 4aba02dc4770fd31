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

// isMOV recognizes any of the five mov encodings by first byte, per
// SPEC_FULL.md §4.4.1.
func isMOV(b byte) bool {
	return b>>2 == 0b100010 ||
		b>>1 == 0b1100011 ||
		b>>4 == 0b1011 ||
		b>>2 == 0b101000 ||
		b == 0b10001110 || b == 0b10001100
}

// decodeMOV dispatches to the matching mov encoding. The caller has
// already confirmed isMOV(firstByte).
func decodeMOV(c *Cursor) (Instruction, error) {
	first, _ := c.Advance() // already peeked by caller; re-read to push on stack
	switch {
	case first>>2 == 0b100010:
		return decodeMovRegMemToFromReg(c, first)
	case first>>1 == 0b1100011:
		return decodeMovImmToRegMem(c, first)
	case first>>4 == 0b1011:
		return decodeMovImmToReg(c, first)
	case first>>2 == 0b101000:
		return decodeMovAccumulator(c, first)
	default: // 0x8E / 0x8C
		return decodeMovSegment(c, first)
	}
}

// decodeMovRegMemToFromReg handles `100010 d w` — reg/memory <-> register.
func decodeMovRegMemToFromReg(c *Cursor, first byte) (Instruction, error) {
	d := first&0b10 != 0
	w := first&0b01 != 0

	second, err := c.Advance()
	if err != nil {
		return Instruction{}, err
	}
	mod := second >> 6 & 0b11
	reg := second >> 3 & 0b111
	rm := second & 0b111

	regID, regUsage := RegFromField(reg, w)
	inst := Instruction{Type: InstMov, Src: RegisterOperand(regID, regUsage)}

	if mod == 0b11 {
		dstID, dstUsage := RegFromField(rm, w)
		inst.Dst = RegisterOperand(dstID, dstUsage)
	} else {
		ea, err := decodeEffectiveAddress(c, mod, rm, w)
		if err != nil {
			return Instruction{}, err
		}
		inst.Dst = MemoryOperand(ea)
	}
	if d {
		inst.Dst, inst.Src = inst.Src, inst.Dst
	}
	return inst, nil
}

// decodeMovImmToRegMem handles `1100011 w` — immediate -> register/memory.
func decodeMovImmToRegMem(c *Cursor, first byte) (Instruction, error) {
	w := first&0b1 != 0

	second, err := c.Advance()
	if err != nil {
		return Instruction{}, err
	}
	mod := second >> 6 & 0b11
	rm := second & 0b111

	inst := Instruction{Type: InstMov}
	if mod == 0b11 {
		dstID, dstUsage := RegFromField(rm, w)
		inst.Dst = RegisterOperand(dstID, dstUsage)
	} else {
		ea, err := decodeEffectiveAddress(c, mod, rm, w)
		if err != nil {
			return Instruction{}, err
		}
		inst.Dst = MemoryOperand(ea)
	}
	imm, err := c.Advance8Or16(w)
	if err != nil {
		return Instruction{}, err
	}
	inst.Src = ImmediateOperand(imm, w)
	return inst, nil
}

// decodeMovImmToReg handles `1011 w reg` — immediate -> register.
func decodeMovImmToReg(c *Cursor, first byte) (Instruction, error) {
	w := first&0b1000 != 0
	reg := first & 0b111

	imm, err := c.Advance8Or16(w)
	if err != nil {
		return Instruction{}, err
	}
	dstID, dstUsage := RegFromField(reg, w)
	return Instruction{
		Type: InstMov,
		Dst:  RegisterOperand(dstID, dstUsage),
		Src:  ImmediateOperand(imm, w),
	}, nil
}

// decodeMovAccumulator handles `101000 d w` — memory <-> accumulator via a
// direct 16-bit address; source defaults to memory, swapping on d=1.
func decodeMovAccumulator(c *Cursor, first byte) (Instruction, error) {
	d := first&0b10 != 0
	w := first&0b01 != 0

	addr, err := c.Advance16()
	if err != nil {
		return Instruction{}, err
	}
	mem := MemoryOperand(EffectiveAddress{Base: EADirect, Disp: addr, IsWide: w})
	acc := RegisterOperand(RegA, usageFor(w))

	inst := Instruction{Type: InstMov, Dst: acc, Src: mem}
	if d {
		inst.Dst, inst.Src = inst.Src, inst.Dst
	}
	return inst, nil
}

// decodeMovSegment handles `10001110`/`10001100` — segment register <->
// register/memory.
func decodeMovSegment(c *Cursor, first byte) (Instruction, error) {
	d := first == 0b10001110

	second, err := c.Advance()
	if err != nil {
		return Instruction{}, err
	}
	mod := second >> 6 & 0b11
	sr := second >> 3 & 0b11
	rm := second & 0b111

	segOperand := RegisterOperand(SegmentFromField(sr), UsageWord)
	inst := Instruction{Type: InstMov, Src: segOperand}
	if mod == 0b11 {
		dstID, dstUsage := RegFromField(rm, true)
		inst.Dst = RegisterOperand(dstID, dstUsage)
	} else {
		ea, err := decodeEffectiveAddress(c, mod, rm, true)
		if err != nil {
			return Instruction{}, err
		}
		inst.Dst = MemoryOperand(ea)
	}
	if d {
		inst.Dst, inst.Src = inst.Src, inst.Dst
	}
	return inst, nil
}

func usageFor(w bool) Usage {
	if w {
		return UsageWord
	}
	return UsageLow
}

// decodeEffectiveAddress reads the displacement for (mod, rm) and builds
// the EffectiveAddress, handling the mod=00,rm=110 direct-address tie-break.
func decodeEffectiveAddress(c *Cursor, mod, rm uint8, wide bool) (EffectiveAddress, error) {
	if mod == 0b00 && rm == 0b110 {
		disp, err := c.Advance16()
		if err != nil {
			return EffectiveAddress{}, err
		}
		return EffectiveAddress{Base: EADirect, Disp: disp, IsWide: wide}, nil
	}
	disp, err := c.AdvanceDisplacement(mod, rm)
	if err != nil {
		return EffectiveAddress{}, err
	}
	return EffectiveAddress{Base: EABaseFromRM(rm), Disp: disp, IsWide: wide}, nil
}
