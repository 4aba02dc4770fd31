package sim86

import (
	"strings"
	"testing"
)

func TestFormatDecodeOnly_MovRegToReg(t *testing.T) {
	Decorate = false
	inst := Instruction{Type: InstMov, Dst: RegisterOperand(RegA, UsageWord), Src: RegisterOperand(RegB, UsageWord)}
	got := FormatDecodeOnly(inst, []byte{0x89, 0xD8})
	want := "mov ax, bx ; (10001001) <- 10001001 11011000"
	if got != want {
		t.Errorf("FormatDecodeOnly() = %q, want %q", got, want)
	}
}

func TestFormatExecute_IncludesDstIpAndFlags(t *testing.T) {
	Decorate = false
	inst := Instruction{Type: InstAdd, Dst: RegisterOperand(RegA, UsageWord), Src: ImmediateOperand(5, true)}
	result := ExecResult{
		DstName: "ax", OldValue: 3, NewValue: 8,
		OldFlags: 0, NewFlags: 1 << ZF, OldIP: 0, NewIP: 3,
	}
	got := FormatExecute(inst, result)
	if !strings.Contains(got, "ax:0x3->0x8") {
		t.Errorf("FormatExecute() = %q, want it to contain ax:0x3->0x8", got)
	}
	if !strings.Contains(got, "ip:0x0->0x3") {
		t.Errorf("FormatExecute() = %q, want it to contain ip:0x0->0x3", got)
	}
}

func TestEffectiveAddress_String(t *testing.T) {
	tests := []struct {
		name string
		ea   EffectiveAddress
		want string
	}{
		{"no base no disp", EffectiveAddress{Base: EADirect, Disp: 0}, "[0]"},
		{"direct address", EffectiveAddress{Base: EADirect, Disp: 1337}, "[1337]"},
		{"base only", EffectiveAddress{Base: EABx}, "[bx]"},
		{"negative disp", EffectiveAddress{Base: EABp, Disp: 0xFFFF}, "[bp - 1]"},
		{"positive disp", EffectiveAddress{Base: EABxSi, Disp: 4}, "[bx+si + 4]"},
	}
	for _, tt := range tests {
		if got := tt.ea.String(); got != tt.want {
			t.Errorf("%s: String() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestOperandText_WidthPrefixOnAmbiguousMemoryImmediate(t *testing.T) {
	inst := Instruction{
		Type: InstMov,
		Dst:  MemoryOperand(EffectiveAddress{Base: EADirect, Disp: 1337, IsWide: true}),
		Src:  ImmediateOperand(0x1234, true),
	}
	got := operandText(inst)
	want := "word [1337], 4660"
	if got != want {
		t.Errorf("operandText() = %q, want %q", got, want)
	}
}
