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

import "fmt"

// EABase selects the base-register combination of an effective address;
// nine choices per SPEC_FULL.md §3: Direct plus the eight register pairs
// below, declared as a constant array rather than computed at runtime.
type EABase int

const (
	EADirect EABase = iota
	EABxSi
	EABxDi
	EABpSi
	EABpDi
	EASi
	EADi
	EABp
	EABx
)

var eaBaseNames = [...]string{
	EADirect: "",
	EABxSi:   "bx+si",
	EABxDi:   "bx+di",
	EABpSi:   "bp+si",
	EABpDi:   "bp+di",
	EASi:     "si",
	EADi:     "di",
	EABp:     "bp",
	EABx:     "bx",
}

// effectiveAddressTable implements EFFECTIVE_ADDRESS_TABLE[rm]: the
// 3-bit R/M field selects a base combination when mod != 11. The
// mod=00,rm=110 direct-address exception is handled by the decoder
// before consulting this table.
var effectiveAddressTable = [8]EABase{
	EABxSi, EABxDi, EABpSi, EABpDi, EASi, EADi, EABp, EABx,
}

// EABaseFromRM resolves the R/M field to a base selector for memory-mode
// addressing (mod != 11).
func EABaseFromRM(rm uint8) EABase {
	return effectiveAddressTable[rm&0b111]
}

// EffectiveAddress describes a memory operand: a base selector, a
// (possibly zero) signed displacement, and the access width.
type EffectiveAddress struct {
	Base    EABase
	Disp    uint16
	IsWide  bool
}

// baseValue sums the registers contributed by a base selector.
func (ea EffectiveAddress) baseValue(rf *RegisterFile) uint16 {
	switch ea.Base {
	case EABxSi:
		return rf.Get(RegB, UsageWord) + rf.Get(RegSI, UsageWord)
	case EABxDi:
		return rf.Get(RegB, UsageWord) + rf.Get(RegDI, UsageWord)
	case EABpSi:
		return rf.Get(RegBP, UsageWord) + rf.Get(RegSI, UsageWord)
	case EABpDi:
		return rf.Get(RegBP, UsageWord) + rf.Get(RegDI, UsageWord)
	case EASi:
		return rf.Get(RegSI, UsageWord)
	case EADi:
		return rf.Get(RegDI, UsageWord)
	case EABp:
		return rf.Get(RegBP, UsageWord)
	case EABx:
		return rf.Get(RegB, UsageWord)
	default: // EADirect
		return 0
	}
}

// Resolve computes the unsigned 20-bit linear address per
// SPEC_FULL.md §4.3: base sum plus sign-extended displacement, wrapped.
// A direct address uses its 16-bit displacement unsigned, as the address.
func (ea EffectiveAddress) Resolve(rf *RegisterFile) int {
	if ea.Base == EADirect {
		return int(ea.Disp)
	}
	sum := int(ea.baseValue(rf)) + int(int16(ea.Disp))
	return sum & 0xFFFFF
}

// String renders the bracketed disassembly syntax, e.g. "[bx+si + 4]",
// "[bp - 1]", or "[1337]" for a based-less direct address (printed
// unsigned).
func (ea EffectiveAddress) String() string {
	base := eaBaseNames[ea.Base]
	disp := int16(ea.Disp)
	switch {
	case base == "" && disp == 0:
		return "[0]"
	case base == "":
		return fmt.Sprintf("[%d]", ea.Disp)
	case disp == 0:
		return fmt.Sprintf("[%s]", base)
	case disp < 0:
		return fmt.Sprintf("[%s - %d]", base, -disp)
	default:
		return fmt.Sprintf("[%s + %d]", base, disp)
	}
}

// OperandKind tags the variant carried by an Operand.
type OperandKind int

const (
	OperandNone OperandKind = iota
	OperandImmediate
	OperandRegister
	OperandMemory
	OperandJump
)

func (k OperandKind) String() string {
	switch k {
	case OperandImmediate:
		return "immediate"
	case OperandRegister:
		return "register"
	case OperandMemory:
		return "memory"
	case OperandJump:
		return "jump"
	default:
		return "none"
	}
}

// Immediate is a signed value with an explicit width tag; when Wide is
// false only the low 8 bits carry information.
type Immediate struct {
	Value int16
	Wide  bool
}

// Operand is the tagged variant of SPEC_FULL.md §3: a register, an
// effective address, an immediate, a short-jump displacement, or none.
type Operand struct {
	Kind     OperandKind
	Reg      Register
	Usage    Usage
	Address  EffectiveAddress
	Imm      Immediate
	JumpDisp int8
}

// RegisterOperand builds a register-kind operand.
func RegisterOperand(reg Register, usage Usage) Operand {
	return Operand{Kind: OperandRegister, Reg: reg, Usage: usage}
}

// MemoryOperand builds a memory-kind operand.
func MemoryOperand(ea EffectiveAddress) Operand {
	return Operand{Kind: OperandMemory, Address: ea}
}

// ImmediateOperand builds an immediate-kind operand. wide=false keeps
// only the low 8 bits of value significant.
func ImmediateOperand(value uint16, wide bool) Operand {
	v := int16(value)
	if !wide {
		v = int16(int8(value))
	}
	return Operand{Kind: OperandImmediate, Imm: Immediate{Value: v, Wide: wide}}
}

// JumpOperand builds a short-jump displacement operand.
func JumpOperand(disp int8) Operand {
	return Operand{Kind: OperandJump, JumpDisp: disp}
}

// IsWide reports whether this operand addresses a full 16-bit quantity.
func (o Operand) IsWide() bool {
	switch o.Kind {
	case OperandRegister:
		return o.Usage == UsageWord || o.Reg > RegD
	case OperandMemory:
		return o.Address.IsWide
	case OperandImmediate:
		return o.Imm.Wide
	default:
		return false
	}
}

// Name renders the disassembly text for this operand (register name,
// decimal immediate, or bracketed effective address).
func (o Operand) Name() string {
	switch o.Kind {
	case OperandRegister:
		return Name(o.Reg, o.Usage)
	case OperandMemory:
		return o.Address.String()
	case OperandImmediate:
		return fmt.Sprintf("%d", o.Imm.Value)
	case OperandJump:
		return fmt.Sprintf("$%+d+0", int(o.JumpDisp)+2)
	default:
		return ""
	}
}
