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

// FlagBit names a single bit position in the flags word.
type FlagBit uint

const (
	CF FlagBit = 0
	PF FlagBit = 2
	AF FlagBit = 4
	ZF FlagBit = 6
	SF FlagBit = 7
	OF FlagBit = 8
	IF FlagBit = 9
	DF FlagBit = 10
	TF FlagBit = 11
)

// flagLetters orders the printable flag letters high bit to low bit, the
// order the disassembly trace renders them in (matches the reference
// decoder's FlagsRegister::printSet).
var flagLetters = []struct {
	bit    FlagBit
	letter byte
}{
	{TF, 'T'}, {DF, 'D'}, {IF, 'I'}, {OF, 'O'}, {SF, 'S'}, {ZF, 'Z'}, {AF, 'A'}, {PF, 'P'}, {CF, 'C'},
}

// GetFlag reads a single flag bit out of the fl register.
func (r *RegisterFile) GetFlag(bit FlagBit) bool {
	return (r.words[RegFL]>>bit)&1 == 1
}

// SetFlag writes a single flag bit into the fl register.
func (r *RegisterFile) SetFlag(bit FlagBit, value bool) {
	if value {
		r.words[RegFL] |= 1 << bit
	} else {
		r.words[RegFL] &^= 1 << bit
	}
}

// FlagsSnapshot returns the raw 16-bit flags word.
func (r *RegisterFile) FlagsSnapshot() uint16 { return r.words[RegFL] }

// FlagLetters renders the set flag bits as their single-character
// abbreviations, high-to-low, e.g. "ZC" when CF and ZF are both set.
func FlagLetters(flags uint16) string {
	out := make([]byte, 0, len(flagLetters))
	for _, f := range flagLetters {
		if (flags>>f.bit)&1 == 1 {
			out = append(out, f.letter)
		}
	}
	return string(out)
}

// countBits1 counts the set bits in a byte, used for the parity flag.
func countBits1(b uint8) int {
	n := 0
	for b != 0 {
		n += int(b & 1)
		b >>= 1
	}
	return n
}

// setZPS applies the flag-update rule shared by every arithmetic/logic
// op: ZF/PF/SF derived purely from the result, per SPEC_FULL.md §4.2.
func (r *RegisterFile) setZPS(result uint16) {
	r.SetFlag(ZF, result == 0)
	r.SetFlag(PF, countBits1(uint8(result&0xFF))%2 == 0)
	r.SetFlag(SF, (result>>15)&1 == 1)
}
