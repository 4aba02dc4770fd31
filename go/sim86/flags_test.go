package sim86

import "testing"

func TestRegisterFile_SetGetFlag(t *testing.T) {
	var rf RegisterFile
	rf.SetFlag(ZF, true)
	if !rf.GetFlag(ZF) {
		t.Errorf("GetFlag(ZF) = false after SetFlag(ZF, true), want true")
	}
	rf.SetFlag(ZF, false)
	if rf.GetFlag(ZF) {
		t.Errorf("GetFlag(ZF) = true after SetFlag(ZF, false), want false")
	}
}

func TestRegisterFile_FlagsIndependent(t *testing.T) {
	var rf RegisterFile
	rf.SetFlag(CF, true)
	rf.SetFlag(ZF, true)
	if !rf.GetFlag(CF) || !rf.GetFlag(ZF) {
		t.Errorf("CF/ZF = %v/%v, want true/true", rf.GetFlag(CF), rf.GetFlag(ZF))
	}
	if rf.GetFlag(SF) || rf.GetFlag(OF) {
		t.Errorf("SF/OF set unexpectedly by unrelated SetFlag calls")
	}
}

func TestFlagLetters(t *testing.T) {
	var rf RegisterFile
	rf.SetFlag(ZF, true)
	rf.SetFlag(CF, true)
	if got, want := FlagLetters(rf.FlagsSnapshot()), "ZC"; got != want {
		t.Errorf("FlagLetters() = %v, want %v", got, want)
	}
}

func TestRegisterFile_SetZPS(t *testing.T) {
	tests := []struct {
		name         string
		result       uint16
		wantZ, wantS bool
		wantP        bool
	}{
		{"zero result", 0x0000, true, false, true},
		{"negative result", 0x8000, false, true, true},
		{"odd parity low byte", 0x0001, false, false, false},
	}
	for _, tt := range tests {
		var rf RegisterFile
		rf.setZPS(tt.result)
		if got := rf.GetFlag(ZF); got != tt.wantZ {
			t.Errorf("%s: ZF = %v, want %v", tt.name, got, tt.wantZ)
		}
		if got := rf.GetFlag(SF); got != tt.wantS {
			t.Errorf("%s: SF = %v, want %v", tt.name, got, tt.wantS)
		}
		if got := rf.GetFlag(PF); got != tt.wantP {
			t.Errorf("%s: PF = %v, want %v", tt.name, got, tt.wantP)
		}
	}
}
