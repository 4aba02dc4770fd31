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

// ExecResult captures the before/after deltas the driver annotates a
// trace line with: destination value, instruction pointer, and flags.
type ExecResult struct {
	DstName            string
	OldValue, NewValue uint16
	OldFlags, NewFlags uint16
	OldIP, NewIP       uint16
	Jumped             bool
}

func operandValue(s *SimulatorState, op Operand) (uint16, error) {
	switch op.Kind {
	case OperandRegister:
		return s.Registers.Get(op.Reg, op.Usage), nil
	case OperandImmediate:
		return uint16(op.Imm.Value), nil
	case OperandMemory:
		addr := op.Address.Resolve(&s.Registers)
		if op.Address.IsWide {
			return s.Memory.ReadWord(addr)
		}
		b, err := s.Memory.ReadByte(addr)
		return uint16(b), err
	default:
		return 0, nil
	}
}

func setOperandValue(s *SimulatorState, op Operand, value uint16) error {
	switch op.Kind {
	case OperandRegister:
		s.Registers.Set(op.Reg, op.Usage, value)
		return nil
	case OperandMemory:
		addr := op.Address.Resolve(&s.Registers)
		if op.Address.IsWide {
			return s.Memory.WriteWord(addr, value)
		}
		return s.Memory.WriteByte(addr, byte(value))
	default:
		return simerr.InvalidOperandShape("(write)", op.Kind.String(), "")
	}
}

// validateShape enforces the legal operand pairs of SPEC_FULL.md §4.5:
// register <- {register|immediate|memory}, memory <- {register|immediate}.
func validateShape(inst Instruction) error {
	if inst.Src.Kind == OperandNone {
		return nil
	}
	switch inst.Dst.Kind {
	case OperandRegister:
		switch inst.Src.Kind {
		case OperandRegister, OperandImmediate, OperandMemory:
			return nil
		}
	case OperandMemory:
		switch inst.Src.Kind {
		case OperandRegister, OperandImmediate:
			return nil
		}
	}
	return simerr.InvalidOperandShape(inst.Type.String(), inst.Dst.Kind.String(), inst.Src.Kind.String())
}

func destinationName(inst Instruction) string {
	if inst.Dst.Kind == OperandNone {
		return ""
	}
	return inst.Dst.Name()
}

// Execute applies inst's semantics to state. A non-fatal error (kinds 2
// and 3 of SPEC_FULL.md §7) is returned alongside a best-effort
// ExecResult so the driver can still advance IP and keep tracing; a
// fatal error (out-of-range memory) is returned with a zero ExecResult.
func Execute(s *SimulatorState, inst Instruction) (ExecResult, error) {
	oldFlags := s.Registers.FlagsSnapshot()
	oldIP := s.Registers.IP()

	switch inst.Type {
	case InstMov:
		return execMov(s, inst, oldFlags, oldIP)
	case InstLea:
		return execLea(s, inst, oldFlags, oldIP)
	case InstAdd, InstSub, InstCmp:
		return execArith(s, inst, oldFlags, oldIP)
	case InstAnd, InstOr, InstXor, InstTest:
		return execLogic(s, inst, oldFlags, oldIP)
	case InstNot:
		return execNot(s, inst, oldFlags, oldIP)
	case InstShl, InstShr, InstSar:
		return execShift(s, inst, oldFlags, oldIP)
	case InstMul, InstImul, InstDiv, InstIdiv:
		return execMulDiv(s, inst, oldFlags, oldIP)
	case InstJo, InstJno, InstJb, InstJnb, InstJe, InstJne, InstJbe, InstJa,
		InstJs, InstJns, InstJp, InstJnp, InstJl, InstJnl, InstJle, InstJg,
		InstLoop, InstLoopz, InstLoopnz, InstJcxz:
		return execJump(s, inst, oldFlags, oldIP)
	default:
		return ExecResult{OldFlags: oldFlags, NewFlags: oldFlags, OldIP: oldIP, NewIP: oldIP},
			simerr.UnimplementedSemantic(inst.Type.String())
	}
}

func execMov(s *SimulatorState, inst Instruction, oldFlags, oldIP uint16) (ExecResult, error) {
	if err := validateShape(inst); err != nil {
		return ExecResult{OldFlags: oldFlags, NewFlags: oldFlags, OldIP: oldIP, NewIP: oldIP}, err
	}
	val, err := operandValue(s, inst.Src)
	if err != nil {
		return ExecResult{}, err
	}
	old, _ := operandValue(s, inst.Dst)
	if err := setOperandValue(s, inst.Dst, val); err != nil {
		return ExecResult{}, err
	}
	return ExecResult{
		DstName: destinationName(inst), OldValue: old, NewValue: val,
		OldFlags: oldFlags, NewFlags: oldFlags, OldIP: oldIP, NewIP: oldIP,
	}, nil
}

func execLea(s *SimulatorState, inst Instruction, oldFlags, oldIP uint16) (ExecResult, error) {
	if inst.Src.Kind != OperandMemory {
		err := simerr.InvalidOperandShape(inst.Type.String(), inst.Dst.Kind.String(), inst.Src.Kind.String())
		return ExecResult{OldFlags: oldFlags, NewFlags: oldFlags, OldIP: oldIP, NewIP: oldIP}, err
	}
	addr := uint16(inst.Src.Address.Resolve(&s.Registers))
	old, _ := operandValue(s, inst.Dst)
	if err := setOperandValue(s, inst.Dst, addr); err != nil {
		return ExecResult{}, err
	}
	return ExecResult{
		DstName: destinationName(inst), OldValue: old, NewValue: addr,
		OldFlags: oldFlags, NewFlags: oldFlags, OldIP: oldIP, NewIP: oldIP,
	}, nil
}

func execArith(s *SimulatorState, inst Instruction, oldFlags, oldIP uint16) (ExecResult, error) {
	if err := validateShape(inst); err != nil {
		return ExecResult{OldFlags: oldFlags, NewFlags: oldFlags, OldIP: oldIP, NewIP: oldIP}, err
	}
	a, err := operandValue(s, inst.Dst)
	if err != nil {
		return ExecResult{}, err
	}
	b, err := operandValue(s, inst.Src)
	if err != nil {
		return ExecResult{}, err
	}

	var result uint32
	switch inst.Type {
	case InstAdd:
		result = uint32(a) + uint32(b)
	default: // sub, cmp
		result = uint32(a) - uint32(b)
	}
	r16 := uint16(result)
	s.Registers.setZPS(r16)
	s.Registers.SetFlag(CF, result>>16 != 0)
	s.Registers.SetFlag(OF, signedOverflow(inst.Type, a, b, r16))

	newVal := a
	if inst.Type != InstCmp {
		newVal = r16
		if err := setOperandValue(s, inst.Dst, r16); err != nil {
			return ExecResult{}, err
		}
	}
	return ExecResult{
		DstName: destinationName(inst), OldValue: a, NewValue: newVal,
		OldFlags: oldFlags, NewFlags: s.Registers.FlagsSnapshot(), OldIP: oldIP, NewIP: oldIP,
	}, nil
}

// signedOverflow reports two's-complement signed overflow for add/sub:
// add overflows when both operands share a sign that differs from the
// result's; sub overflows when the operands' signs differ and the
// result's sign differs from the minuend's.
func signedOverflow(t InstructionType, a, b, r uint16) bool {
	sa, sb, sr := a>>15, b>>15, r>>15
	if t == InstAdd {
		return sa == sb && sr != sa
	}
	return sa != sb && sr != sa
}

func execLogic(s *SimulatorState, inst Instruction, oldFlags, oldIP uint16) (ExecResult, error) {
	if err := validateShape(inst); err != nil {
		return ExecResult{OldFlags: oldFlags, NewFlags: oldFlags, OldIP: oldIP, NewIP: oldIP}, err
	}
	a, err := operandValue(s, inst.Dst)
	if err != nil {
		return ExecResult{}, err
	}
	b, err := operandValue(s, inst.Src)
	if err != nil {
		return ExecResult{}, err
	}

	var result uint16
	switch inst.Type {
	case InstAnd, InstTest:
		result = a & b
	case InstOr:
		result = a | b
	default: // xor
		result = a ^ b
	}
	s.Registers.setZPS(result)
	s.Registers.SetFlag(CF, false)
	s.Registers.SetFlag(OF, false)

	newVal := a
	if inst.Type != InstTest {
		newVal = result
		if err := setOperandValue(s, inst.Dst, result); err != nil {
			return ExecResult{}, err
		}
	}
	return ExecResult{
		DstName: destinationName(inst), OldValue: a, NewValue: newVal,
		OldFlags: oldFlags, NewFlags: s.Registers.FlagsSnapshot(), OldIP: oldIP, NewIP: oldIP,
	}, nil
}

func execNot(s *SimulatorState, inst Instruction, oldFlags, oldIP uint16) (ExecResult, error) {
	a, err := operandValue(s, inst.Dst)
	if err != nil {
		return ExecResult{}, err
	}
	result := ^a
	if err := setOperandValue(s, inst.Dst, result); err != nil {
		return ExecResult{}, err
	}
	return ExecResult{
		DstName: destinationName(inst), OldValue: a, NewValue: result,
		OldFlags: oldFlags, NewFlags: oldFlags, OldIP: oldIP, NewIP: oldIP,
	}, nil
}

func execShift(s *SimulatorState, inst Instruction, oldFlags, oldIP uint16) (ExecResult, error) {
	a, err := operandValue(s, inst.Dst)
	if err != nil {
		return ExecResult{}, err
	}
	count, err := operandValue(s, inst.Src)
	if err != nil {
		return ExecResult{}, err
	}
	count &= 0xFF

	var result uint16
	var lastOut bool
	switch inst.Type {
	case InstShl:
		result = a
		for i := uint16(0); i < count; i++ {
			lastOut = result&0x8000 != 0
			result <<= 1
		}
	case InstShr:
		result = a
		for i := uint16(0); i < count; i++ {
			lastOut = result&1 != 0
			result >>= 1
		}
	default: // sar
		signed := int16(a)
		result = a
		for i := uint16(0); i < count; i++ {
			lastOut = signed&1 != 0
			signed >>= 1
		}
		result = uint16(signed)
	}
	if count > 0 {
		s.Registers.SetFlag(CF, lastOut)
	}
	s.Registers.setZPS(result)
	if err := setOperandValue(s, inst.Dst, result); err != nil {
		return ExecResult{}, err
	}
	return ExecResult{
		DstName: destinationName(inst), OldValue: a, NewValue: result,
		OldFlags: oldFlags, NewFlags: s.Registers.FlagsSnapshot(), OldIP: oldIP, NewIP: oldIP,
	}, nil
}

// execMulDiv implements the accumulator-pair semantics of SPEC_FULL.md
// §4.5: on a word source, mul/imul produce a 32-bit product across
// dx:ax and div/idiv treat dx:ax as the dividend, writing quotient to ax
// and remainder to dx. On a byte source (inst.Dst not wide) the same
// operations run through al/ax only, per the real 8086 byte-form
// encodings (e.g. `mul bl`) — dx is never touched. Divide-by-zero is
// reported as an unimplemented semantic rather than a crash.
func execMulDiv(s *SimulatorState, inst Instruction, oldFlags, oldIP uint16) (ExecResult, error) {
	src, err := operandValue(s, inst.Dst)
	if err != nil {
		return ExecResult{}, err
	}
	wide := inst.Dst.IsWide()

	if !wide {
		return execMulDivByte(s, inst.Type, uint8(src), oldFlags, oldIP)
	}

	ax := s.Registers.Get(RegA, UsageWord)
	old := ax

	switch inst.Type {
	case InstMul:
		product := uint32(ax) * uint32(src)
		s.Registers.Set(RegA, UsageWord, uint16(product))
		s.Registers.Set(RegD, UsageWord, uint16(product>>16))
		s.Registers.SetFlag(CF, uint16(product>>16) != 0)
		s.Registers.SetFlag(OF, uint16(product>>16) != 0)
		return ExecResult{
			DstName: "ax", OldValue: old, NewValue: uint16(product),
			OldFlags: oldFlags, NewFlags: s.Registers.FlagsSnapshot(), OldIP: oldIP, NewIP: oldIP,
		}, nil
	case InstImul:
		product := int32(int16(ax)) * int32(int16(src))
		s.Registers.Set(RegA, UsageWord, uint16(product))
		s.Registers.Set(RegD, UsageWord, uint16(product>>16))
		ext := product>>15 != 0 && product>>15 != -1
		s.Registers.SetFlag(CF, ext)
		s.Registers.SetFlag(OF, ext)
		return ExecResult{
			DstName: "ax", OldValue: old, NewValue: uint16(product),
			OldFlags: oldFlags, NewFlags: s.Registers.FlagsSnapshot(), OldIP: oldIP, NewIP: oldIP,
		}, nil
	case InstDiv:
		if src == 0 {
			return ExecResult{OldFlags: oldFlags, NewFlags: oldFlags, OldIP: oldIP, NewIP: oldIP},
				simerr.UnimplementedSemantic("div by zero")
		}
		dividend := uint32(s.Registers.Get(RegD, UsageWord))<<16 | uint32(ax)
		q, r := dividend/uint32(src), dividend%uint32(src)
		s.Registers.Set(RegA, UsageWord, uint16(q))
		s.Registers.Set(RegD, UsageWord, uint16(r))
		return ExecResult{
			DstName: "ax", OldValue: old, NewValue: uint16(q),
			OldFlags: oldFlags, NewFlags: oldFlags, OldIP: oldIP, NewIP: oldIP,
		}, nil
	default: // idiv
		if src == 0 {
			return ExecResult{OldFlags: oldFlags, NewFlags: oldFlags, OldIP: oldIP, NewIP: oldIP},
				simerr.UnimplementedSemantic("idiv by zero")
		}
		dividend := int32(s.Registers.Get(RegD, UsageWord))<<16 | int32(ax)
		q, r := dividend/int32(int16(src)), dividend%int32(int16(src))
		s.Registers.Set(RegA, UsageWord, uint16(q))
		s.Registers.Set(RegD, UsageWord, uint16(r))
		return ExecResult{
			DstName: "ax", OldValue: old, NewValue: uint16(q),
			OldFlags: oldFlags, NewFlags: oldFlags, OldIP: oldIP, NewIP: oldIP,
		}, nil
	}
}

// execMulDivByte handles the byte-form (w=0) mul/imul/div/idiv: al/ax
// only, dx is never read or written.
func execMulDivByte(s *SimulatorState, typ InstructionType, src uint8, oldFlags, oldIP uint16) (ExecResult, error) {
	al := s.Registers.Get(RegA, UsageLow)
	old := al

	switch typ {
	case InstMul:
		product := uint16(al) * uint16(src)
		s.Registers.Set(RegA, UsageWord, product)
		over := product>>8 != 0
		s.Registers.SetFlag(CF, over)
		s.Registers.SetFlag(OF, over)
		return ExecResult{
			DstName: "al", OldValue: old, NewValue: product,
			OldFlags: oldFlags, NewFlags: s.Registers.FlagsSnapshot(), OldIP: oldIP, NewIP: oldIP,
		}, nil
	case InstImul:
		product := int16(int8(al)) * int16(int8(src))
		s.Registers.Set(RegA, UsageWord, uint16(product))
		ext := product>>7 != 0 && product>>7 != -1
		s.Registers.SetFlag(CF, ext)
		s.Registers.SetFlag(OF, ext)
		return ExecResult{
			DstName: "al", OldValue: old, NewValue: uint16(product),
			OldFlags: oldFlags, NewFlags: s.Registers.FlagsSnapshot(), OldIP: oldIP, NewIP: oldIP,
		}, nil
	case InstDiv:
		if src == 0 {
			return ExecResult{OldFlags: oldFlags, NewFlags: oldFlags, OldIP: oldIP, NewIP: oldIP},
				simerr.UnimplementedSemantic("div by zero")
		}
		ax := s.Registers.Get(RegA, UsageWord)
		q, r := ax/uint16(src), ax%uint16(src)
		s.Registers.Set(RegA, UsageLow, q)
		s.Registers.Set(RegA, UsageHigh, r)
		return ExecResult{
			DstName: "al", OldValue: old, NewValue: q,
			OldFlags: oldFlags, NewFlags: oldFlags, OldIP: oldIP, NewIP: oldIP,
		}, nil
	default: // idiv
		if src == 0 {
			return ExecResult{OldFlags: oldFlags, NewFlags: oldFlags, OldIP: oldIP, NewIP: oldIP},
				simerr.UnimplementedSemantic("idiv by zero")
		}
		ax := int16(s.Registers.Get(RegA, UsageWord))
		q, r := ax/int16(int8(src)), ax%int16(int8(src))
		s.Registers.Set(RegA, UsageLow, uint16(q))
		s.Registers.Set(RegA, UsageHigh, uint16(r))
		return ExecResult{
			DstName: "al", OldValue: old, NewValue: uint16(q),
			OldFlags: oldFlags, NewFlags: oldFlags, OldIP: oldIP, NewIP: oldIP,
		}, nil
	}
}

func execJump(s *SimulatorState, inst Instruction, oldFlags, oldIP uint16) (ExecResult, error) {
	taken := branchTaken(inst.Type, &s.Registers)
	if taken {
		s.Registers.IncIP(int(inst.Src.JumpDisp))
	}
	return ExecResult{
		OldFlags: oldFlags, NewFlags: s.Registers.FlagsSnapshot(),
		OldIP: oldIP, NewIP: s.Registers.IP(), Jumped: taken,
	}, nil
}
