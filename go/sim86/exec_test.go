package sim86

import "testing"

func decodeAndExecute(t *testing.T, bytes []byte, s *SimulatorState) Instruction {
	t.Helper()
	c := NewCursor(bytes)
	inst, err := Decode(c)
	if err != nil {
		t.Fatalf("Decode(% X) error = %v", bytes, err)
	}
	if _, err := Execute(s, inst); err != nil {
		t.Fatalf("Execute(%v) error = %v", inst.Type, err)
	}
	return inst
}

func TestExecute_MovRegToReg(t *testing.T) {
	s := NewSimulatorState()
	s.Registers.Set(RegB, UsageWord, 0x1234)
	decodeAndExecute(t, []byte{0x89, 0xD8}, s) // mov ax, bx

	if got := s.Registers.Get(RegA, UsageWord); got != 0x1234 {
		t.Errorf("ax = 0x%04X, want 0x1234", got)
	}
	if got := s.Registers.Get(RegB, UsageWord); got != 0x1234 {
		t.Errorf("bx = 0x%04X, want 0x1234 (mov must not disturb src)", got)
	}
	if s.Registers.FlagsSnapshot() != 0 {
		t.Errorf("flags = 0x%04X, want 0 (mov leaves flags unchanged)", s.Registers.FlagsSnapshot())
	}
}

func TestExecute_MovImmToAx(t *testing.T) {
	s := NewSimulatorState()
	decodeAndExecute(t, []byte{0xB8, 0x39, 0x05}, s) // mov ax, 1337
	if got := s.Registers.Get(RegA, UsageWord); got != 0x0539 {
		t.Errorf("ax = 0x%04X, want 0x0539", got)
	}
}

func TestExecute_AddImmToAx(t *testing.T) {
	s := NewSimulatorState()
	s.Registers.Set(RegA, UsageWord, 3)
	decodeAndExecute(t, []byte{0x83, 0xC0, 0x05}, s) // add ax, 5

	if got := s.Registers.Get(RegA, UsageWord); got != 8 {
		t.Errorf("ax = %v, want 8", got)
	}
	if s.Registers.GetFlag(ZF) {
		t.Errorf("ZF = true, want false")
	}
	if s.Registers.GetFlag(SF) {
		t.Errorf("SF = true, want false")
	}
	if s.Registers.GetFlag(PF) {
		t.Errorf("PF = true, want false (8 has one set bit: odd parity)")
	}
}

func TestExecute_CmpLeavesOperandsUnchanged(t *testing.T) {
	s := NewSimulatorState()
	s.Registers.Set(RegA, UsageWord, 5)
	s.Registers.Set(RegB, UsageWord, 5)
	decodeAndExecute(t, []byte{0x39, 0xD8}, s) // cmp ax, bx

	if got := s.Registers.Get(RegA, UsageWord); got != 5 {
		t.Errorf("ax = %v, want 5 (cmp discards its result)", got)
	}
	if got := s.Registers.Get(RegB, UsageWord); got != 5 {
		t.Errorf("bx = %v, want 5", got)
	}
	if !s.Registers.GetFlag(ZF) {
		t.Errorf("ZF = false, want true")
	}
	if s.Registers.GetFlag(SF) {
		t.Errorf("SF = true, want false")
	}
}

func TestExecute_MovWordToDirectAddress(t *testing.T) {
	s := NewSimulatorState()
	decodeAndExecute(t, []byte{0xC7, 0x06, 0x39, 0x05, 0x34, 0x12}, s)

	lo, err := s.Memory.ReadByte(0x0539)
	if err != nil {
		t.Fatalf("ReadByte(0x0539) error = %v", err)
	}
	hi, err := s.Memory.ReadByte(0x053A)
	if err != nil {
		t.Fatalf("ReadByte(0x053A) error = %v", err)
	}
	if lo != 0x34 || hi != 0x12 {
		t.Errorf("memory[0x0539:0x053A] = (0x%02X, 0x%02X), want (0x34, 0x12)", lo, hi)
	}
}

func TestExecute_JneBranchesOnZFClear(t *testing.T) {
	s := NewSimulatorState()
	s.Registers.SetIP(0)
	c := NewCursor([]byte{0x75, 0xFC}) // jne $-2+0
	inst, err := Decode(c)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	result, err := Execute(s, inst)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !result.Jumped {
		t.Errorf("Jumped = false with ZF clear, want true")
	}
	// Execute() only applies the branch's own delta (-4, the encoded
	// displacement); the driver adds the 2-byte instruction length
	// afterward (SPEC_FULL.md §4.7), landing the full jump 2 bytes back.
	if got := s.Registers.IP(); got != 0xFFFC { // 0 + (-4), wrapped to uint16
		t.Errorf("IP after taken branch = 0x%04X, want 0xFFFC", got)
	}
}

func TestExecute_JneNotTakenOnZFSet(t *testing.T) {
	s := NewSimulatorState()
	s.Registers.SetFlag(ZF, true)
	c := NewCursor([]byte{0x75, 0xFC})
	inst, err := Decode(c)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	result, err := Execute(s, inst)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Jumped {
		t.Errorf("Jumped = true with ZF set, want false")
	}
}

func TestExecute_LoopDecrementsAndJumpsWhenCxNonzero(t *testing.T) {
	// Pins the ISA-correct reading of the loop predicate: jump when
	// cx != 0 after the decrement, not the inverse.
	s := NewSimulatorState()
	s.Registers.Set(RegC, UsageWord, 1)
	c := NewCursor([]byte{0xE2, 0xFE}) // loop $+0+0
	inst, err := Decode(c)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	result, err := Execute(s, inst)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := s.Registers.Get(RegC, UsageWord); got != 0 {
		t.Errorf("cx = %v, want 0 after decrement", got)
	}
	if result.Jumped {
		t.Errorf("Jumped = true with cx now 0, want false")
	}
}

func TestExecute_LoopJumpsWhileCxAboveOne(t *testing.T) {
	s := NewSimulatorState()
	s.Registers.Set(RegC, UsageWord, 2)
	c := NewCursor([]byte{0xE2, 0xFE})
	inst, _ := Decode(c)
	result, err := Execute(s, inst)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !result.Jumped {
		t.Errorf("Jumped = false with cx now 1, want true")
	}
}

func TestExecute_AndClearsCFAndOF(t *testing.T) {
	s := NewSimulatorState()
	s.Registers.SetFlag(CF, true)
	s.Registers.SetFlag(OF, true)
	s.Registers.Set(RegA, UsageWord, 0xFF)
	s.Registers.Set(RegB, UsageWord, 0x0F)
	decodeAndExecute(t, []byte{0x21, 0xD8}, s) // and ax, bx

	if got := s.Registers.Get(RegA, UsageWord); got != 0x0F {
		t.Errorf("ax = 0x%04X, want 0x0F", got)
	}
	if s.Registers.GetFlag(CF) {
		t.Errorf("CF = true after and, want false")
	}
	if s.Registers.GetFlag(OF) {
		t.Errorf("OF = true after and, want false")
	}
}

func TestExecute_MulWordUsesDxAxPair(t *testing.T) {
	s := NewSimulatorState()
	s.Registers.Set(RegA, UsageWord, 0x1000)
	s.Registers.Set(RegB, UsageWord, 0x20)
	decodeAndExecute(t, []byte{0xF7, 0xE3}, s) // mul bx

	if got := s.Registers.Get(RegA, UsageWord); got != 0x0000 {
		t.Errorf("ax = 0x%04X, want 0x0000", got)
	}
	if got := s.Registers.Get(RegD, UsageWord); got != 0x0002 {
		t.Errorf("dx = 0x%04X, want 0x0002 (0x1000*0x20 = 0x20000)", got)
	}
	if !s.Registers.GetFlag(CF) {
		t.Errorf("CF = false, want true (product overflows ax)")
	}
}

func TestExecute_MulByteUsesAlAxOnlyAndLeavesDxAlone(t *testing.T) {
	s := NewSimulatorState()
	s.Registers.Set(RegA, UsageLow, 0x10)
	s.Registers.Set(RegB, UsageLow, 0x20)
	s.Registers.Set(RegD, UsageWord, 0xBEEF) // sentinel: must be untouched
	decodeAndExecute(t, []byte{0xF6, 0xE3}, s) // mul bl

	if got := s.Registers.Get(RegA, UsageWord); got != 0x0200 {
		t.Errorf("ax = 0x%04X, want 0x0200 (0x10*0x20)", got)
	}
	if got := s.Registers.Get(RegD, UsageWord); got != 0xBEEF {
		t.Errorf("dx = 0x%04X, want 0xBEEF (byte-form mul must not touch dx)", got)
	}
	if !s.Registers.GetFlag(CF) {
		t.Errorf("CF = false, want true (product 0x0200 overflows al into ah)")
	}
}

func TestExecute_DivWordUsesDxAxDividend(t *testing.T) {
	s := NewSimulatorState()
	s.Registers.Set(RegA, UsageWord, 0x0003) // dx:ax = 0x0001_0003
	s.Registers.Set(RegD, UsageWord, 0x0001)
	s.Registers.Set(RegB, UsageWord, 0x0002)
	decodeAndExecute(t, []byte{0xF7, 0xF3}, s) // div bx

	if got := s.Registers.Get(RegA, UsageWord); got != 0x8001 {
		t.Errorf("ax = 0x%04X, want 0x8001 (0x00010003 / 2)", got)
	}
	if got := s.Registers.Get(RegD, UsageWord); got != 1 {
		t.Errorf("dx = %v, want 1 (remainder)", got)
	}
}

func TestExecute_DivByteUsesAxDividendAndSplitsIntoAlAh(t *testing.T) {
	s := NewSimulatorState()
	s.Registers.Set(RegA, UsageWord, 0x0013) // ax = 19
	s.Registers.Set(RegB, UsageLow, 0x04)
	s.Registers.Set(RegD, UsageWord, 0xBEEF) // sentinel: must be untouched
	decodeAndExecute(t, []byte{0xF6, 0xF3}, s) // div bl

	if got := s.Registers.Get(RegA, UsageLow); got != 4 {
		t.Errorf("al = %v, want 4 (19/4 quotient)", got)
	}
	if got := s.Registers.Get(RegA, UsageHigh); got != 3 {
		t.Errorf("ah = %v, want 3 (19%%4 remainder)", got)
	}
	if got := s.Registers.Get(RegD, UsageWord); got != 0xBEEF {
		t.Errorf("dx = 0x%04X, want 0xBEEF (byte-form div must not touch dx)", got)
	}
}

func TestExecute_InvalidOperandShapeIsRecovered(t *testing.T) {
	// mov [bx], [si] has no valid 8086 encoding, but a hand-built
	// instruction with a memory<-memory shape must be rejected by the
	// executor rather than silently performing a bogus move.
	s := NewSimulatorState()
	inst := Instruction{
		Type: InstMov,
		Dst:  MemoryOperand(EffectiveAddress{Base: EABx, IsWide: true}),
		Src:  MemoryOperand(EffectiveAddress{Base: EASi, IsWide: true}),
	}
	_, err := Execute(s, inst)
	if err == nil {
		t.Fatalf("Execute() error = nil, want invalid-operand-shape error")
	}
}
