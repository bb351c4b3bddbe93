// This file is part of vt100sim.
//
// vt100sim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// vt100sim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with vt100sim.  If not, see <https://www.gnu.org/licenses/>.

package script

import (
	"fmt"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/davecgh/go-spew/spew"

	"github.com/retrovt/vt100sim/video"
)

// xonXoffBase and xonXoffNames name the six locations `dumpx` reports
// changes in - the firmware's own XON/XOFF bookkeeping bytes, starting at
// 0x21bf.
var xonXoffNames = [6]string{
	"why_xoff", "tx_xo_char", "tx_xo_flag", "received_xoff", "", "noscroll",
}

const xonXoffBase = 0x21bf

// dumpx reports which of the six XON/XOFF bookkeeping bytes changed since
// the last call, the `dumpx` command's diagnostic, and (on its first call)
// writes the current display list to displaylist.dot as a memviz graph for
// offline inspection.
func (d *Driver) dumpx() {
	if !d.dumpxGraphed {
		d.dumpxGraphed = true
		if f, err := os.Create("displaylist.dot"); err == nil {
			memviz.Map(f, video.WalkDisplayList(d.Machine))
			f.Close()
		}
	}

	var changes []xonXoffChange
	for i := range d.xonXoffLast {
		addr := uint16(xonXoffBase + i)
		v, _ := d.Machine.Memory.Peek(addr)
		if v != d.xonXoffLast[i] {
			changes = append(changes, xonXoffChange{
				Name: xonXoffNames[i],
				Old:  d.xonXoffLast[i],
				New:  v,
			})
			d.xonXoffLast[i] = v
		}
	}
	if len(changes) > 0 {
		spew.Fdump(d.Out, changes)
	}
}

type xonXoffChange struct {
	Name   string
	Old, New uint8
}

// switchBank is the decoded configuration-switch reading the `switches`
// command reports.
type switchBank struct {
	Raw  uint8
	Bits [4]int
	switchOption1, switchOption2, switchOption3, switchOption4 string
}

// switches decodes the SB1/SB2 configuration-switch bytes at 0x21a6/0x21a7
// into their named option settings, the `switches` command's diagnostic.
func (d *Driver) switches() {
	sb1, _ := d.Machine.Memory.Peek(0x21a6)
	sb2, _ := d.Machine.Memory.Peek(0x21a7)

	b1 := switchBank{Raw: sb1, Bits: bitsOf(sb1)}
	b1.switchOption1 = pick(sb1&0x80 != 0, "smooth scroll", "jump scroll")
	b1.switchOption2 = pick(sb1&0x40 != 0, "autorepeat on", "autorepeat off")
	b1.switchOption3 = pick(sb1&0x20 != 0, "light background", "dark background")
	b1.switchOption4 = pick(sb1&0x10 != 0, "cursor block", "cursor underline")

	b2 := switchBank{Raw: sb2, Bits: bitsOf(sb2)}
	b2.switchOption1 = pick(sb2&0x80 != 0, "margin bell ON", "margin bell OFF")
	b2.switchOption2 = pick(sb2&0x40 != 0, "keyclick ON", "keyclick OFF")
	b2.switchOption3 = pick(sb2&0x20 != 0, "ANSI mode", "VT52 mode")
	b2.switchOption4 = pick(sb2&0x10 != 0, "auto XON/XOFF ON", "auto XON/XOFF OFF")

	fmt.Fprintf(d.Out, "SB1: %d%d%d%d  %s, %s, %s, %s\n",
		b1.Bits[0], b1.Bits[1], b1.Bits[2], b1.Bits[3],
		b1.switchOption1, b1.switchOption2, b1.switchOption3, b1.switchOption4)
	fmt.Fprintf(d.Out, "SB2: %d%d%d%d  %s, %s, %s, %s\n",
		b2.Bits[0], b2.Bits[1], b2.Bits[2], b2.Bits[3],
		b2.switchOption1, b2.switchOption2, b2.switchOption3, b2.switchOption4)
}

// bitsOf returns bits 7:4 of v, most-significant first.
func bitsOf(v uint8) [4]int {
	return [4]int{int(v>>7) & 1, int(v>>6) & 1, int(v>>5) & 1, int(v>>4) & 1}
}

func pick(cond bool, onTrue, onFalse string) string {
	if cond {
		return onTrue
	}
	return onFalse
}

// stackTop is the fixed address display_stack in the firmware's own
// debugger walks up to: the top of the interrupt/subroutine stack region.
const stackTop = 0x204e

type stackFrame struct {
	Dest   uint16
	Symbol string
}

// stack walks every word from SP up to stackTop as a return address,
// resolving each into its nearest preceding ROM symbol, the `stack`
// command's diagnostic. Addresses at or above 0x2000 (RAM, never a return
// address the firmware itself would push) are reported bare.
func (d *Driver) stack() {
	sp := d.Machine.CPU.SP
	var frames []stackFrame
	for addr := sp; addr < stackTop; addr += 2 {
		lo, _ := d.Machine.Memory.Peek(addr)
		hi, _ := d.Machine.Memory.Peek(addr + 1)
		dest := uint16(hi)<<8 | uint16(lo)

		frame := stackFrame{Dest: dest}
		if dest < 0x2000 {
			if name, ok := d.Symbols.Nearest(dest); ok {
				frame.Symbol = name
			}
		}
		frames = append(frames, frame)
	}
	fmt.Fprintln(d.Out, "Stack:")
	spew.Fdump(d.Out, frames)
}
