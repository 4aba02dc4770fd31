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

// ClockPart tags one contributor to an instruction's cycle count.
type ClockPart int

const (
	ClockInstruction ClockPart = iota
	ClockEffectiveAddress
	ClockRange
	ClockAorB
	ClockSegmentOverride
	ClockWordTransfer
	ClockUnknown
)

var clockPartNames = [...]string{
	"base", "ea", "range", "a-or-b", "segment-override", "word-transfer", "unknown",
}

func (p ClockPart) String() string {
	if int(p) < 0 || int(p) >= len(clockPartNames) {
		return "?"
	}
	return clockPartNames[p]
}

// ClockCalculation is the structured cycle-count breakdown of
// SPEC_FULL.md §4.6: a list of named parts summing to a total, with
// Unknown marking a shape this table doesn't cover.
type ClockCalculation struct {
	Parts []ClockCalcPart
}

// ClockCalcPart is one named contribution to a ClockCalculation.
type ClockCalcPart struct {
	Part  ClockPart
	Cost  int
}

// Total sums every part's cost.
func (c ClockCalculation) Total() int {
	total := 0
	for _, p := range c.Parts {
		total += p.Cost
	}
	return total
}

// String renders the breakdown as "name(cost)+... = N", e.g.
// "base(9)+ea(5) = 14".
func (c ClockCalculation) String() string {
	if len(c.Parts) == 0 {
		return "0"
	}
	s := ""
	for i, p := range c.Parts {
		if i > 0 {
			s += "+"
		}
		s += fmt.Sprintf("%s(%d)", p.Part, p.Cost)
	}
	return fmt.Sprintf("%s = %d", s, c.Total())
}

// eaCost is the effective-address access cost table of SPEC_FULL.md §4.3,
// indexed by base selector; EADirect and the single-register bases cost
// less than the two-register bases, matching the reference timing table.
var eaCost = map[EABase]int{
	EADirect: 6,
	EABxSi:   7, EABxDi: 8, EABpSi: 8, EABpDi: 7,
	EASi: 5, EADi: 5, EABp: 5, EABx: 5,
}

// eaDispPenalty is the extra cost SPEC_FULL.md §4.3 adds when a base or
// base+index address carries a nonzero displacement (5->9 for a single
// register base, 7/8->11/12 for a double-register base); EADirect has no
// second tier, its displacement IS the address.
const eaDispPenalty = 4

// effectiveAddressClock returns the EA-access cost (including the
// displacement-present tier) plus the odd-address word-transfer penalty
// for a memory operand.
func effectiveAddressClock(ea EffectiveAddress, rf *RegisterFile) ClockCalculation {
	cost := eaCost[ea.Base]
	if ea.Base != EADirect && ea.Disp != 0 {
		cost += eaDispPenalty
	}
	parts := []ClockCalcPart{{ClockEffectiveAddress, cost}}
	if ea.IsWide && ea.Resolve(rf)%2 != 0 {
		parts = append(parts, ClockCalcPart{ClockWordTransfer, 4})
	}
	return ClockCalculation{Parts: parts}
}

// clockShapes is the representative-shape table of SPEC_FULL.md §4.6,
// declared as a constant table rather than computed. Shapes not listed
// fall through to a single Unknown part.
var clockShapes = map[string]int{
	"mov reg,reg":   2,
	"mov reg,mem":   8,
	"mov mem,reg":   9,
	"add reg,reg":   3,
	"add reg,mem":   9,
	"add mem,reg":   16,
	"add reg,imm":   4,
	"add mem,imm":   17,
}

// shapeKey names an instruction+operand shape the way clockShapes is keyed.
func shapeKey(inst Instruction) string {
	mnemonic := inst.Type.String()
	if mnemonic != "mov" && mnemonic != "add" {
		return ""
	}
	dst := operandShapeName(inst.Dst)
	src := operandShapeName(inst.Src)
	if dst == "" || src == "" {
		return ""
	}
	return fmt.Sprintf("%s %s,%s", mnemonic, dst, src)
}

func operandShapeName(o Operand) string {
	switch o.Kind {
	case OperandRegister:
		return "reg"
	case OperandMemory:
		return "mem"
	case OperandImmediate:
		return "imm"
	default:
		return ""
	}
}

// Clock computes the ClockCalculation for inst against the current
// register file (needed for the EA odd-address penalty). Shapes absent
// from clockShapes contribute a single Unknown part.
func Clock(inst Instruction, rf *RegisterFile) ClockCalculation {
	key := shapeKey(inst)
	base, ok := clockShapes[key]
	if !ok {
		return ClockCalculation{Parts: []ClockCalcPart{{ClockUnknown, 0}}}
	}
	calc := ClockCalculation{Parts: []ClockCalcPart{{ClockInstruction, base}}}
	// add with a memory destination reads and writes it: two transfers.
	transfers := 1
	if inst.Type == InstAdd && inst.Dst.Kind == OperandMemory {
		transfers = 2
	}
	for _, op := range []Operand{inst.Dst, inst.Src} {
		if op.Kind == OperandMemory {
			for _, p := range effectiveAddressClock(op.Address, rf).Parts {
				if p.Part == ClockWordTransfer {
					p.Cost *= transfers
				}
				calc.Parts = append(calc.Parts, p)
			}
		}
	}
	return calc
}
