package sim86

import "testing"

func TestDecode_MovRegToReg(t *testing.T) {
	c := NewCursor([]byte{0x89, 0xD8}) // mov ax, bx
	inst, err := Decode(c)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if inst.Type != InstMov {
		t.Errorf("Type = %v, want InstMov", inst.Type)
	}
	if inst.Dst.Kind != OperandRegister || inst.Dst.Reg != RegA {
		t.Errorf("Dst = %+v, want register ax", inst.Dst)
	}
	if inst.Src.Kind != OperandRegister || inst.Src.Reg != RegB {
		t.Errorf("Src = %+v, want register bx", inst.Src)
	}
	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %v, want 2", got)
	}
}

func TestDecode_MovImmToReg(t *testing.T) {
	c := NewCursor([]byte{0xB8, 0x39, 0x05}) // mov ax, 1337
	inst, err := Decode(c)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if inst.Type != InstMov || inst.Dst.Reg != RegA {
		t.Errorf("got %+v, want mov ax, imm", inst)
	}
	if inst.Src.Kind != OperandImmediate || inst.Src.Imm.Value != 1337 {
		t.Errorf("Src = %+v, want immediate 1337", inst.Src)
	}
}

func TestDecode_MovWordToDirectAddress(t *testing.T) {
	c := NewCursor([]byte{0xC7, 0x06, 0x39, 0x05, 0x34, 0x12}) // mov word [1337], 0x1234
	inst, err := Decode(c)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if inst.Type != InstMov {
		t.Errorf("Type = %v, want InstMov", inst.Type)
	}
	if inst.Dst.Kind != OperandMemory || inst.Dst.Address.Base != EADirect || inst.Dst.Address.Disp != 0x0539 {
		t.Errorf("Dst = %+v, want direct address 0x0539", inst.Dst)
	}
	if inst.Src.Imm.Value != 0x1234 {
		t.Errorf("Src = %+v, want immediate 0x1234", inst.Src)
	}
	if got := c.Len(); got != 6 {
		t.Errorf("Len() = %v, want 6", got)
	}
}

func TestDecode_AddImmToAx(t *testing.T) {
	c := NewCursor([]byte{0x83, 0xC0, 0x05}) // add ax, 5
	inst, err := Decode(c)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if inst.Type != InstAdd || inst.Dst.Reg != RegA || inst.Src.Imm.Value != 5 {
		t.Errorf("got %+v, want add ax, 5", inst)
	}
}

func TestDecode_CmpRegToReg(t *testing.T) {
	c := NewCursor([]byte{0x39, 0xD8}) // cmp ax, bx
	inst, err := Decode(c)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if inst.Type != InstCmp || inst.Dst.Reg != RegA || inst.Src.Reg != RegB {
		t.Errorf("got %+v, want cmp ax, bx", inst)
	}
}

func TestDecode_Jne(t *testing.T) {
	c := NewCursor([]byte{0x75, 0xFC}) // jne $-2+0
	inst, err := Decode(c)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if inst.Type != InstJne {
		t.Errorf("Type = %v, want InstJne", inst.Type)
	}
	if inst.Src.JumpDisp != -4 {
		t.Errorf("JumpDisp = %v, want -4", inst.Src.JumpDisp)
	}
}

func TestDecode_UnrecognizedOpcode(t *testing.T) {
	c := NewCursor([]byte{0xF1})
	if _, err := Decode(c); err == nil {
		t.Errorf("Decode() error = nil for unrecognized opcode, want error")
	}
}

func TestDecode_TestRegToReg(t *testing.T) {
	c := NewCursor([]byte{0x85, 0xD8}) // test ax, bx
	inst, err := Decode(c)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if inst.Type != InstTest || inst.Dst.Reg != RegA || inst.Src.Reg != RegB {
		t.Errorf("got %+v, want test ax, bx", inst)
	}
}

func TestDecode_AdcRangeIsUnrecognized(t *testing.T) {
	// 0x10-0x13 is ADC's reg/mem<->reg range, which this simulator does
	// not implement; these bytes must not be misdecoded as test (a prior
	// transcription bug made test's fmt0 literal collide with this range).
	for _, b := range []byte{0x10, 0x11, 0x12, 0x13} {
		c := NewCursor([]byte{b, 0xD8})
		if _, err := Decode(c); err == nil {
			t.Errorf("Decode(0x%02X) error = nil, want unrecognized-opcode error", b)
		}
	}
}

func TestDecode_FamilyPrecedence(t *testing.T) {
	// every byte that starts a recognized instruction must come from
	// exactly one family in mov -> jump -> arith/logic order; spot check
	// a representative member of each.
	tests := []struct {
		name  string
		bytes []byte
		want  InstructionType
	}{
		{"mov", []byte{0x89, 0xD8}, InstMov},
		{"jump", []byte{0x74, 0x00}, InstJe},
		{"arith", []byte{0x00, 0xD8}, InstAdd},
	}
	for _, tt := range tests {
		c := NewCursor(tt.bytes)
		inst, err := Decode(c)
		if err != nil {
			t.Fatalf("%s: Decode() error = %v", tt.name, err)
		}
		if inst.Type != tt.want {
			t.Errorf("%s: Type = %v, want %v", tt.name, inst.Type, tt.want)
		}
	}
}
