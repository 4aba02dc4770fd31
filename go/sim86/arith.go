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

// threeVariantFormat parameterizes the add/sub/cmp/and/or/xor/test
// encoding scheme of SPEC_FULL.md §4.4.3: three first-byte templates
// sharing one 3-bit opcode extension.
type threeVariantFormat struct {
	typ           InstructionType
	fmt0Literal   uint8 // compared against byte>>2 (6 bits)
	fmt1Literal   uint8 // compared against byte>>fmt1Shift
	fmt1Shift     uint8
	ext           uint8 // 3-bit extension in ModR/M reg field, selects op on fmt1
	fmt2Literal   uint8 // compared against byte>>1 (7 bits)
}

// threeVariantFormats is declared as a constant table rather than
// computed, per SPEC_FULL.md §9. The xor row corrects a first-byte-
// template transcription bug present in the retrieved reference decoder
// (its fmt1 literal duplicated fmt2's accumulator-form literal instead of
// the shared grp-1 immediate-form literal `1000000`); the test row
// corrects a second one (its fmt0 literal was ADC's range, 0x10-0x13,
// instead of test reg/mem,reg's own `1000010w`); see DESIGN.md.
var threeVariantFormats = []threeVariantFormat{
	{InstAdd, 0b000000, 0b100000, 2, 0b000, 0b0000010},
	{InstSub, 0b001010, 0b100000, 2, 0b101, 0b0010110},
	{InstCmp, 0b001110, 0b100000, 2, 0b111, 0b0011110},
	{InstAnd, 0b001000, 0b1000000, 1, 0b100, 0b0010010},
	{InstOr, 0b000010, 0b1000000, 1, 0b001, 0b0000110},
	{InstXor, 0b001100, 0b1000000, 1, 0b110, 0b0011010},
	{InstTest, 0b100001, 0b1111011, 1, 0b000, 0b1010100},
}

// which3VariantFormat returns the matching format and its variant index
// (0=regmem<->reg, 1=imm->regmem, 2=imm->accumulator), or ok=false.
func which3VariantFormat(c *Cursor, b byte) (threeVariantFormat, int, bool) {
	for _, f := range threeVariantFormats {
		if b>>2 == f.fmt0Literal {
			return f, 0, true
		}
		if b>>f.fmt1Shift == f.fmt1Literal {
			second, ok := c.PeekNext2()
			if ok && (second>>3)&0b111 == f.ext {
				return f, 1, true
			}
		}
		if b>>1 == f.fmt2Literal {
			return f, 2, true
		}
	}
	return threeVariantFormat{}, -1, false
}

// oneVariantFormat parameterizes the single-variant ops: lea, mul/imul/
// div/idiv/not, and shl/shr/sar.
type oneVariantFormat struct {
	typ          InstructionType
	literal      uint8
	shift        uint8 // 0: full 8-bit literal (lea); 1: 7-bit + w; 2: 6-bit + v,w
	ext          uint8 // 3-bit ModR/M reg-field extension, when shift != 0
	oneOperand   bool  // mul/imul/div/idiv/not: no separate src operand
}

var oneVariantFormats = []oneVariantFormat{
	{InstLea, 0b10001101, 0, 0, false},
	{InstMul, 0b1111011, 1, 0b100, true},
	{InstImul, 0b1111011, 1, 0b101, true},
	{InstDiv, 0b1111011, 1, 0b110, true},
	{InstIdiv, 0b1111011, 1, 0b111, true},
	{InstNot, 0b1111011, 1, 0b010, true},
	{InstShl, 0b110100, 2, 0b100, false},
	{InstShr, 0b110100, 2, 0b101, false},
	{InstSar, 0b110100, 2, 0b111, false},
}

func whichOneVariantFormat(c *Cursor, b byte) (oneVariantFormat, bool) {
	for _, f := range oneVariantFormats {
		if f.shift == 0 {
			if b == f.literal {
				return f, true
			}
			continue
		}
		if b>>f.shift != f.literal {
			continue
		}
		second, ok := c.PeekNext2()
		if ok && (second>>3)&0b111 == f.ext {
			return f, true
		}
	}
	return oneVariantFormat{}, false
}

// isArithLogic recognizes the whole arithmetic/logic family by first byte.
func isArithLogic(c *Cursor, b byte) bool {
	if _, _, ok := which3VariantFormat(c, b); ok {
		return true
	}
	_, ok := whichOneVariantFormat(c, b)
	return ok
}

// decodeArithLogic dispatches to the matching arithmetic/logic encoding.
func decodeArithLogic(c *Cursor) (Instruction, error) {
	first, peeked := c.PeekNext()
	if !peeked {
		return Instruction{}, nil
	}
	if f, variant, ok := which3VariantFormat(c, first); ok {
		switch variant {
		case 0:
			return decodeArithFormat0(c, f)
		case 1:
			return decodeArithFormat1(c, f)
		default:
			return decodeArithFormat2(c, f)
		}
	}
	f, _ := whichOneVariantFormat(c, first)
	return decodeOneVariant(c, f)
}

// decodeArithFormat0 handles `xxxxxx d w` ModR/M: reg/mem with register.
func decodeArithFormat0(c *Cursor, f threeVariantFormat) (Instruction, error) {
	first, _ := c.Advance()
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
	inst := Instruction{Type: f.typ, Src: RegisterOperand(regID, regUsage)}
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

// decodeArithFormat1 handles `xxxxxx s w` ModR/M ext: immediate -> reg/mem.
func decodeArithFormat1(c *Cursor, f threeVariantFormat) (Instruction, error) {
	first, _ := c.Advance()
	hasS := f.fmt1Shift == 2
	s := hasS && first&0b10 != 0
	w := first&0b01 != 0

	second, err := c.Advance()
	if err != nil {
		return Instruction{}, err
	}
	mod := second >> 6 & 0b11
	rm := second & 0b111

	wideImm := w && !s

	inst := Instruction{Type: f.typ}
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
	imm, err := c.Advance8Or16(wideImm)
	if err != nil {
		return Instruction{}, err
	}
	inst.Src = ImmediateOperand(imm, wideImm)
	if s && w {
		inst.Src = ImmediateOperand(uint16(int16(int8(imm))), true)
	}
	return inst, nil
}

// decodeArithFormat2 handles `xxxxxxx w`: immediate -> accumulator.
func decodeArithFormat2(c *Cursor, f threeVariantFormat) (Instruction, error) {
	first, _ := c.Advance()
	w := first&0b1 != 0

	imm, err := c.Advance8Or16(w)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{
		Type: f.typ,
		Dst:  RegisterOperand(RegA, usageFor(w)),
		Src:  ImmediateOperand(imm, w),
	}, nil
}

// decodeOneVariant handles lea and the 7-bit-opcode/6-bit-opcode single-
// variant ops (mul/imul/div/idiv/not, shl/shr/sar).
func decodeOneVariant(c *Cursor, f oneVariantFormat) (Instruction, error) {
	first, _ := c.Advance()
	v := first&0b10 != 0
	w := first&0b01 != 0

	second, err := c.Advance()
	if err != nil {
		return Instruction{}, err
	}
	mod := second >> 6 & 0b11
	rm := second & 0b111

	inst := Instruction{Type: f.typ}
	hasV := f.shift == 2
	hasSrc := !f.oneOperand

	if hasSrc {
		if hasV {
			if !v {
				inst.Src = ImmediateOperand(1, false)
			} else {
				inst.Src = RegisterOperand(RegC, UsageLow)
			}
		} else {
			reg := second >> 3 & 0b111
			regID, regUsage := RegFromField(reg, w)
			inst.Src = RegisterOperand(regID, regUsage)
		}
	}

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

	if f.typ == InstLea {
		inst.Dst, inst.Src = inst.Src, inst.Dst
	}
	return inst, nil
}
