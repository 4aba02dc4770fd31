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

// InstructionType enumerates every recognized mnemonic.
type InstructionType int

const (
	InstNone InstructionType = iota

	InstMov
	InstLea

	InstAdd
	InstSub
	InstCmp
	InstAnd
	InstOr
	InstXor
	InstTest
	InstNot
	InstShl
	InstShr
	InstSar
	InstMul
	InstImul
	InstDiv
	InstIdiv

	InstJo
	InstJno
	InstJb
	InstJnb
	InstJe
	InstJne
	InstJbe
	InstJa
	InstJs
	InstJns
	InstJp
	InstJnp
	InstJl
	InstJnl
	InstJle
	InstJg

	InstLoop
	InstLoopz
	InstLoopnz
	InstJcxz
)

var mnemonics = map[InstructionType]string{
	InstNone: "(none)",
	InstMov:  "mov", InstLea: "lea",
	InstAdd: "add", InstSub: "sub", InstCmp: "cmp",
	InstAnd: "and", InstOr: "or", InstXor: "xor", InstTest: "test",
	InstNot: "not", InstShl: "shl", InstShr: "shr", InstSar: "sar",
	InstMul: "mul", InstImul: "imul", InstDiv: "div", InstIdiv: "idiv",
	InstJo: "jo", InstJno: "jno", InstJb: "jb", InstJnb: "jnb",
	InstJe: "je", InstJne: "jne", InstJbe: "jbe", InstJa: "ja",
	InstJs: "js", InstJns: "jns", InstJp: "jp", InstJnp: "jnp",
	InstJl: "jl", InstJnl: "jnl", InstJle: "jle", InstJg: "jg",
	InstLoop: "loop", InstLoopz: "loopz", InstLoopnz: "loopnz", InstJcxz: "jcxz",
}

// String returns the assembly mnemonic text for an instruction type.
func (t InstructionType) String() string {
	if m, ok := mnemonics[t]; ok {
		return m
	}
	return "?"
}

// Instruction is the decoded (type, dst, src) triple of SPEC_FULL.md §3.
// Src is absent (OperandNone) for unary ops like not, or carries the
// Jump-kind displacement operand for the jump/loop family.
type Instruction struct {
	Type InstructionType
	Dst  Operand
	Src  Operand
}
