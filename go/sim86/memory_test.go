package sim86

import "testing"

func TestMemory_ReadWriteByte(t *testing.T) {
	var m Memory
	if err := m.WriteByte(10, 0xAB); err != nil {
		t.Fatalf("WriteByte() error = %v", err)
	}
	got, err := m.ReadByte(10)
	if err != nil {
		t.Fatalf("ReadByte() error = %v", err)
	}
	if got != 0xAB {
		t.Errorf("ReadByte(10) = 0x%02X, want 0xAB", got)
	}
}

func TestMemory_ReadWriteWord(t *testing.T) {
	var m Memory
	if err := m.WriteWord(0x0539, 0x1234); err != nil {
		t.Fatalf("WriteWord() error = %v", err)
	}
	lo, _ := m.ReadByte(0x0539)
	hi, _ := m.ReadByte(0x053A)
	if lo != 0x34 || hi != 0x12 {
		t.Errorf("WriteWord(0x1234) bytes = (0x%02X, 0x%02X), want (0x34, 0x12)", lo, hi)
	}
	got, err := m.ReadWord(0x0539)
	if err != nil {
		t.Fatalf("ReadWord() error = %v", err)
	}
	if got != 0x1234 {
		t.Errorf("ReadWord() = 0x%04X, want 0x1234", got)
	}
}

func TestMemory_OutOfRange(t *testing.T) {
	var m Memory
	if _, err := m.ReadByte(MemoryCapacity); err == nil {
		t.Errorf("ReadByte(MemoryCapacity) error = nil, want out-of-range error")
	}
	if _, err := m.ReadByte(-1); err == nil {
		t.Errorf("ReadByte(-1) error = nil, want out-of-range error")
	}
	if err := m.WriteByte(MemoryCapacity, 0); err == nil {
		t.Errorf("WriteByte(MemoryCapacity) error = nil, want out-of-range error")
	}
}

func TestMemory_Reset(t *testing.T) {
	var m Memory
	m.WriteByte(0, 0xFF)
	m.Reset()
	got, _ := m.ReadByte(0)
	if got != 0 {
		t.Errorf("ReadByte(0) after Reset() = 0x%02X, want 0", got)
	}
}
