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

// SimulatorState bundles the register file, memory, and clock counter —
// the process-wide semantic domain of SPEC_FULL.md §9 — as a single
// value threaded through the driver and executor by exclusive reference,
// so tests can construct isolated instances instead of relying on
// package-level statics.
type SimulatorState struct {
	Registers RegisterFile
	Memory    Memory
	Clock     uint64
}

// NewSimulatorState returns a zeroed state, as required at the start of
// every decode/simulate run.
func NewSimulatorState() *SimulatorState {
	return &SimulatorState{}
}

// Reset zeroes the register file, memory, and clock counter.
func (s *SimulatorState) Reset() {
	s.Registers.Reset()
	s.Memory.Reset()
	s.Clock = 0
}
