package sim86

import "testing"

func TestClock_MovRegToReg(t *testing.T) {
	var rf RegisterFile
	inst := Instruction{Type: InstMov, Dst: RegisterOperand(RegA, UsageWord), Src: RegisterOperand(RegB, UsageWord)}
	calc := Clock(inst, &rf)
	if got := calc.Total(); got != 2 {
		t.Errorf("Total() = %v, want 2", got)
	}
}

func TestClock_AddMemToReg(t *testing.T) {
	var rf RegisterFile
	inst := Instruction{
		Type: InstAdd,
		Dst:  RegisterOperand(RegA, UsageWord),
		Src:  MemoryOperand(EffectiveAddress{Base: EABx, IsWide: true}),
	}
	calc := Clock(inst, &rf)
	if got := calc.Total(); got != 9+eaCost[EABx] {
		t.Errorf("Total() = %v, want %v", got, 9+eaCost[EABx])
	}
}

func TestClock_UnknownShapeMarksUncertain(t *testing.T) {
	var rf RegisterFile
	inst := Instruction{Type: InstXor, Dst: RegisterOperand(RegA, UsageWord), Src: RegisterOperand(RegB, UsageWord)}
	calc := Clock(inst, &rf)
	if len(calc.Parts) != 1 || calc.Parts[0].Part != ClockUnknown {
		t.Errorf("Parts = %+v, want a single Unknown part", calc.Parts)
	}
}

func TestClock_EACostWithDisplacementPenalty(t *testing.T) {
	var rf RegisterFile
	inst := Instruction{
		Type: InstAdd,
		Dst:  RegisterOperand(RegA, UsageWord),
		Src:  MemoryOperand(EffectiveAddress{Base: EABx, Disp: 4, IsWide: true}),
	}
	calc := Clock(inst, &rf)
	want := 9 + eaCost[EABx] + eaDispPenalty
	if got := calc.Total(); got != want {
		t.Errorf("Total() = %v, want %v (EA cost with nonzero-displacement tier)", got, want)
	}
}

func TestClock_OddAddressWordTransferPenalty(t *testing.T) {
	var rf RegisterFile
	rf.Set(RegB, UsageWord, 1) // odd effective address
	inst := Instruction{
		Type: InstAdd,
		Dst:  RegisterOperand(RegA, UsageWord),
		Src:  MemoryOperand(EffectiveAddress{Base: EABx, IsWide: true}),
	}
	calc := Clock(inst, &rf)
	if got := calc.Total(); got != 9+eaCost[EABx]+4 {
		t.Errorf("Total() = %v, want %v (includes odd-address word-transfer penalty)", got, 9+eaCost[EABx]+4)
	}
}
