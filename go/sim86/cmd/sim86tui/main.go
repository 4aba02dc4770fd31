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

package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/master-g/sim86/go/sim86"
	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
)

var (
	driver        *sim86.Driver
	program       []byte
	trace         []string
	paragraphRegs *widgets.Paragraph
	paragraphMem  *widgets.Paragraph
	paragraphCode *widgets.Paragraph
	paragraphTips *widgets.Paragraph
)

func renderRegs(p *widgets.Paragraph) {
	sb := &strings.Builder{}
	rf := &driver.State.Registers
	fmt.Fprintf(sb, "ip: 0x%04X\n", rf.IP())
	fmt.Fprintf(sb, "ax: 0x%04X  bx: 0x%04X\n", rf.Get(sim86.RegA, sim86.UsageWord), rf.Get(sim86.RegB, sim86.UsageWord))
	fmt.Fprintf(sb, "cx: 0x%04X  dx: 0x%04X\n", rf.Get(sim86.RegC, sim86.UsageWord), rf.Get(sim86.RegD, sim86.UsageWord))
	fmt.Fprintf(sb, "sp: 0x%04X  bp: 0x%04X\n", rf.Get(sim86.RegSP, sim86.UsageWord), rf.Get(sim86.RegBP, sim86.UsageWord))
	fmt.Fprintf(sb, "si: 0x%04X  di: 0x%04X\n", rf.Get(sim86.RegSI, sim86.UsageWord), rf.Get(sim86.RegDI, sim86.UsageWord))
	fmt.Fprintf(sb, "clock: %d\n", driver.State.Clock)
	fmt.Fprintf(sb, "flags: %s", sim86.FlagLetters(rf.FlagsSnapshot()))
	p.Text = sb.String()
}

func renderMem(p *widgets.Paragraph, base int, rows, cols int) {
	sb := &strings.Builder{}
	addr := base
	for row := 0; row < rows; row++ {
		fmt.Fprintf(sb, "0x%05X:", addr)
		for col := 0; col < cols; col++ {
			b, _ := driver.State.Memory.ReadByte(addr)
			fmt.Fprintf(sb, " %02X", b)
			addr++
		}
		sb.WriteRune('\n')
	}
	p.Text = sb.String()
}

func renderCode(p *widgets.Paragraph) {
	sb := &strings.Builder{}
	start := 0
	if len(trace) > 24 {
		start = len(trace) - 24
	}
	for _, line := range trace[start:] {
		sb.WriteString(line)
		sb.WriteRune('\n')
	}
	p.Text = sb.String()
}

func renderTips(p *widgets.Paragraph) {
	p.Text = "SPACE = Step Instruction    R = Reset    Q = Quit"
}

func draw() {
	renderRegs(paragraphRegs)
	renderMem(paragraphMem, 0, 8, 16)
	renderCode(paragraphCode)
	renderTips(paragraphTips)
	ui.Render(paragraphRegs, paragraphMem, paragraphCode, paragraphTips)
}

func reset(execMode bool) {
	driver = sim86.NewDriver(program, sim86.Options{Execute: execMode})
	trace = nil
}

func step() {
	if driver.Done() {
		return
	}
	line, _, err := driver.Step()
	if err != nil {
		trace = append(trace, "fatal: "+err.Error())
		return
	}
	trace = append(trace, line)
}

func initLayout() {
	paragraphRegs = widgets.NewParagraph()
	paragraphRegs.Title = "Registers"
	paragraphRegs.SetRect(0, 0, 32, 9)

	paragraphMem = widgets.NewParagraph()
	paragraphMem.Title = "Memory 0x00000"
	paragraphMem.SetRect(0, 9, 64, 19)

	paragraphCode = widgets.NewParagraph()
	paragraphCode.Title = "Trace"
	paragraphCode.SetRect(32, 0, 110, 26)

	paragraphTips = widgets.NewParagraph()
	paragraphTips.Title = "Tips"
	paragraphTips.SetRect(0, 26, 110, 29)
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: sim86tui [-exec] <input-file>")
	}
	execMode := false
	path := os.Args[len(os.Args)-1]
	for _, a := range os.Args[1 : len(os.Args)-1] {
		if a == "-exec" || a == "--exec" {
			execMode = true
		}
	}

	var err error
	program, err = os.ReadFile(path)
	if err != nil {
		log.Fatalf("reading input: %v", err)
	}

	if err := ui.Init(); err != nil {
		log.Fatalf("failed to initialize termui: %v", err)
	}
	defer ui.Close()

	initLayout()
	reset(execMode)
	draw()

	for e := range ui.PollEvents() {
		if e.Type != ui.KeyboardEvent {
			continue
		}
		switch e.ID {
		case "q", "Q", "<C-c>":
			return
		case "<Space>":
			step()
		case "r", "R":
			reset(execMode)
		}
		draw()
	}
}
