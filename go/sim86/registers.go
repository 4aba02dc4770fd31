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

// Register indexes the 14-entry register file.
type Register int

const (
	RegA Register = iota
	RegB
	RegC
	RegD
	RegSP
	RegBP
	RegSI
	RegDI
	RegCS
	RegDS
	RegSS
	RegES
	RegIP
	RegFL
	registerCount
)

// Usage selects which slice of a general-purpose register an operand
// addresses. Only RegA..RegD support Low/High.
type Usage int

const (
	UsageWord Usage = iota
	UsageLow
	UsageHigh
)

var registerNames = [registerCount]string{
	"ax", "bx", "cx", "dx", "sp", "bp", "si", "di",
	"cs", "ds", "ss", "es", "ip", "fl",
}

var byteRegisterNames = [4][2]string{
	{"al", "ah"},
	{"bl", "bh"},
	{"cl", "ch"},
	{"dl", "dh"},
}

// RegisterFile holds the 14 16-bit registers, word/high/low addressable
// per SPEC_FULL.md §3.
type RegisterFile struct {
	words [registerCount]uint16
}

// Get reads a register under the given usage, zero-extended to 16 bits.
func (r *RegisterFile) Get(reg Register, usage Usage) uint16 {
	if usage == UsageWord || reg > RegD {
		return r.words[reg]
	}
	if usage == UsageLow {
		return r.words[reg] & 0xFF
	}
	return (r.words[reg] >> 8) & 0xFF
}

// Set writes a register under the given usage, preserving the sibling
// byte for general-purpose low/high writes.
func (r *RegisterFile) Set(reg Register, usage Usage, value uint16) {
	if usage == UsageWord || reg > RegD {
		r.words[reg] = value
		return
	}
	if usage == UsageLow {
		r.words[reg] = (r.words[reg] & 0xFF00) | (value & 0xFF)
		return
	}
	r.words[reg] = (r.words[reg] & 0x00FF) | ((value & 0xFF) << 8)
}

// Name returns the disassembly name for a register/usage pair.
func Name(reg Register, usage Usage) string {
	if usage != UsageWord && reg <= RegD {
		return byteRegisterNames[reg][usage-UsageLow]
	}
	return registerNames[reg]
}

// IP is sugar for Get(RegIP, UsageWord).
func (r *RegisterFile) IP() uint16 { return r.words[RegIP] }

// SetIP is sugar for Set(RegIP, UsageWord, v).
func (r *RegisterFile) SetIP(v uint16) { r.words[RegIP] = v }

// IncIP adds delta (may be negative, via two's complement wraparound) to IP.
func (r *RegisterFile) IncIP(delta int) {
	r.words[RegIP] = uint16(int(r.words[RegIP]) + delta)
}

// Reset zeroes every register.
func (r *RegisterFile) Reset() {
	for i := range r.words {
		r.words[i] = 0
	}
}

// regTable implements REG_TABLE[reg][w]: maps a 3-bit reg field plus the
// width bit to a (Register, Usage) pair, declared as a constant lookup
// rather than computed, per SPEC_FULL.md §9.
var regTable = [8][2]struct {
	reg   Register
	usage Usage
}{
	{{RegA, UsageLow}, {RegA, UsageWord}},
	{{RegC, UsageLow}, {RegC, UsageWord}},
	{{RegD, UsageLow}, {RegD, UsageWord}},
	{{RegB, UsageLow}, {RegB, UsageWord}},
	{{RegA, UsageHigh}, {RegSP, UsageWord}},
	{{RegC, UsageHigh}, {RegBP, UsageWord}},
	{{RegD, UsageHigh}, {RegSI, UsageWord}},
	{{RegB, UsageHigh}, {RegDI, UsageWord}},
}

// RegFromField resolves the REG/R_M 3-bit field plus width bit w.
func RegFromField(field uint8, w bool) (Register, Usage) {
	idx := 0
	if w {
		idx = 1
	}
	entry := regTable[field&0b111][idx]
	return entry.reg, entry.usage
}

// segmentRegisters implements SR_TABLE: the 2-bit segment-register field.
var segmentRegisters = [4]Register{RegES, RegCS, RegSS, RegDS}

// SegmentFromField resolves a 2-bit segment-register field.
func SegmentFromField(field uint8) Register {
	return segmentRegisters[field&0b11]
}
