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

import "github.com/master-g/sim86/go/sim86/simerr"

// MemoryCapacity is the flat, byte-addressable memory size: one megabyte.
const MemoryCapacity = 1024 * 1024

// Memory is the simulator's flat 1 MiB byte array. Unlike the wrapped
// 64 KiB PlainMemory this lineage uses for its NES CPU, out-of-range
// accesses here are a hard failure per SPEC_FULL.md §7 kind 4.
type Memory struct {
	bytes [MemoryCapacity]byte
}

// ReadByte reads a single byte.
func (m *Memory) ReadByte(addr int) (byte, error) {
	if addr < 0 || addr >= MemoryCapacity {
		return 0, simerr.OutOfRangeMemory(addr)
	}
	return m.bytes[addr], nil
}

// WriteByte writes a single byte.
func (m *Memory) WriteByte(addr int, value byte) error {
	if addr < 0 || addr >= MemoryCapacity {
		return simerr.OutOfRangeMemory(addr)
	}
	m.bytes[addr] = value
	return nil
}

// ReadWord reads a little-endian word at addr, addr+1.
func (m *Memory) ReadWord(addr int) (uint16, error) {
	lo, err := m.ReadByte(addr)
	if err != nil {
		return 0, err
	}
	hi, err := m.ReadByte(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

// WriteWord writes a little-endian word at addr, addr+1.
func (m *Memory) WriteWord(addr int, value uint16) error {
	if err := m.WriteByte(addr, byte(value)); err != nil {
		return err
	}
	return m.WriteByte(addr+1, byte(value>>8))
}

// Reset zeroes every byte.
func (m *Memory) Reset() {
	for i := range m.bytes {
		m.bytes[i] = 0
	}
}
