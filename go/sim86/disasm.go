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

import (
	"fmt"
	"strings"
)

// Decorate toggles ANSI color escapes on the disassembly stream; off by
// default so tests and piped output stay plain ASCII.
var Decorate = false

const (
	ansiMnemonic = "\x1b[36m"
	ansiComment  = "\x1b[90m"
	ansiReset    = "\x1b[0m"
)

func colorize(code, text string) string {
	if !Decorate {
		return text
	}
	return code + text + ansiReset
}

// operandText renders dst[, src] with the byte/word width prefix on a
// memory operand whenever the other side is an immediate (otherwise the
// width is ambiguous to an assembler reading the text back).
func operandText(inst Instruction) string {
	if inst.Dst.Kind == OperandNone {
		return ""
	}
	dst := inst.Dst.Name()
	if inst.Dst.Kind == OperandMemory && inst.Src.Kind == OperandImmediate {
		dst = widthPrefix(inst.Dst.IsWide()) + dst
	}
	if inst.Src.Kind == OperandNone {
		return dst
	}
	src := inst.Src.Name()
	if inst.Src.Kind == OperandMemory && inst.Dst.Kind == OperandImmediate {
		src = widthPrefix(inst.Src.IsWide()) + src
	}
	return dst + ", " + src
}

func widthPrefix(wide bool) string {
	if wide {
		return "word "
	}
	return "byte "
}

// byteBinary renders a byte as an 8-bit binary string, e.g. "10001001".
func byteBinary(b byte) string {
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		if b&(1<<uint(7-i)) != 0 {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out)
}

// rawBytesBinary renders every byte of raw as space-separated binary.
func rawBytesBinary(raw []byte) string {
	parts := make([]string, len(raw))
	for i, b := range raw {
		parts[i] = byteBinary(b)
	}
	return strings.Join(parts, " ")
}

// FormatDecodeOnly renders the decode-only trace line of SPEC_FULL.md §6:
// "<mnemonic> <dst>[, <src>] ; (<field-bits>) <- <raw-byte-binary-string>".
// field-bits is the opcode byte's own binary rendering, the bit pattern
// that drove family/format dispatch.
func FormatDecodeOnly(inst Instruction, raw []byte) string {
	mnemonic := colorize(ansiMnemonic, inst.Type.String())
	operands := operandText(inst)
	first := byte(0)
	if len(raw) > 0 {
		first = raw[0]
	}
	comment := fmt.Sprintf("(%s) <- %s", byteBinary(first), rawBytesBinary(raw))
	line := mnemonic
	if operands != "" {
		line += " " + operands
	}
	return line + " ; " + colorize(ansiComment, comment)
}

// FormatExecute renders the execute-mode trace line of SPEC_FULL.md §6:
// "<mnemonic> <dst>[, <src>] ; <dst-name>:<old>-><new> ip:<old>-><new>
// flags:<old-letters>-><new-letters>".
func FormatExecute(inst Instruction, r ExecResult) string {
	mnemonic := colorize(ansiMnemonic, inst.Type.String())
	operands := operandText(inst)

	var parts []string
	if r.DstName != "" {
		parts = append(parts, fmt.Sprintf("%s:0x%x->0x%x", r.DstName, r.OldValue, r.NewValue))
	}
	parts = append(parts, fmt.Sprintf("ip:0x%x->0x%x", r.OldIP, r.NewIP))
	oldLetters, newLetters := FlagLetters(r.OldFlags), FlagLetters(r.NewFlags)
	if oldLetters != newLetters {
		parts = append(parts, fmt.Sprintf("flags:%s->%s", oldLetters, newLetters))
	}

	line := mnemonic
	if operands != "" {
		line += " " + operands
	}
	return line + " ; " + colorize(ansiComment, strings.Join(parts, " "))
}

// FormatError renders a recovered (non-fatal) error as an annotation line
// attached to the instruction that triggered it.
func FormatError(inst Instruction, err error) string {
	mnemonic := colorize(ansiMnemonic, inst.Type.String())
	operands := operandText(inst)
	line := mnemonic
	if operands != "" {
		line += " " + operands
	}
	return line + " ; " + colorize(ansiComment, "error: "+err.Error())
}
