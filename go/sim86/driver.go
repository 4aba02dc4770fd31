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
	"io"

	"github.com/master-g/sim86/go/sim86/simerr"
)

// Options configures a Driver run.
type Options struct {
	Execute  bool
	Clock    bool
	Decorate bool
}

// Driver implements the peek-decode-execute-emit loop of
// SPEC_FULL.md §4.7 over a single program image.
type Driver struct {
	State   *SimulatorState
	cursor  *Cursor
	Options Options
}

// NewDriver builds a Driver over program, zeroing simulator state per the
// driver loop's initialization step.
func NewDriver(program []byte, opts Options) *Driver {
	return &Driver{
		State:   NewSimulatorState(),
		cursor:  NewCursor(program),
		Options: opts,
	}
}

// Done reports whether the cursor has consumed the whole program.
func (d *Driver) Done() bool { return d.cursor.Exhausted() }

// IP returns the simulator's current instruction pointer.
func (d *Driver) IP() uint16 { return d.State.Registers.IP() }

// Step decodes (and, if Options.Execute, runs) exactly one instruction,
// returning its rendered trace line. done reports whether the cursor is
// now exhausted. A non-nil error is always one of the fatal kinds; the
// two recovered kinds are folded into the returned line as an
// annotation instead.
func (d *Driver) Step() (line string, done bool, err error) {
	Decorate = d.Options.Decorate

	d.cursor.Reset()
	startOffset := d.cursor.Offset()

	inst, decErr := Decode(d.cursor)
	if decErr != nil {
		return "", true, simerr.WithOffset(decErr, startOffset)
	}
	raw := d.cursor.ByteStack()
	stackLen := len(raw)

	if !d.Options.Execute {
		line = FormatDecodeOnly(inst, raw)
		if d.Options.Clock {
			line += " ; clock: " + Clock(inst, &d.State.Registers).String()
		}
		logf("decoded %s", line)
		return line, d.cursor.Exhausted(), nil
	}

	result, execErr := Execute(d.State, inst)
	if execErr != nil {
		if se, ok := execErr.(*simerr.SimError); ok && !se.Kind().Fatal() {
			line = FormatError(inst, execErr)
			logf("recovered %s: %v", inst.Type, execErr)
			d.State.Registers.IncIP(stackLen)
			d.cursor.Seek(int(d.State.Registers.IP()))
			return line, d.cursor.Exhausted(), nil
		}
		return "", true, simerr.WithOffset(execErr, startOffset)
	}

	// The executor only applies a taken branch's own IP delta; the
	// instruction-length advance happens here, after execution, per
	// SPEC_FULL.md §4.7.
	d.State.Registers.IncIP(stackLen)
	d.cursor.Seek(int(d.State.Registers.IP()))
	result.NewIP = d.State.Registers.IP()

	line = FormatExecute(inst, result)
	if d.Options.Clock {
		line += " ; clock: " + Clock(inst, &d.State.Registers).String()
	}
	d.State.Clock += uint64(Clock(inst, &d.State.Registers).Total())
	logf("executed %s", line)
	return line, d.cursor.Exhausted(), nil
}

// Run drives the loop to completion, writing one trace line per
// instruction to out. It returns a non-nil error only for the fatal
// error kinds (unrecognized opcode, out-of-range memory, cursor
// exhaustion); invalid-operand-shape and unimplemented-semantic errors
// are recovered locally and annotated inline.
func (d *Driver) Run(out io.Writer) error {
	for !d.Done() {
		line, _, err := d.Step()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
