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
	"io"

	"github.com/retrovt/vt100sim/coverage"
	"github.com/retrovt/vt100sim/hardware"
	"github.com/retrovt/vt100sim/hardware/clocks"
	"github.com/retrovt/vt100sim/hardware/instance"
	"github.com/retrovt/vt100sim/internal/logger"
	"github.com/retrovt/vt100sim/symbols"
)

// localModeAddr is the byte a script's `local`/`online` command pokes,
// matching the firmware's own LOCAL_MODE flag location.
const localModeAddr = 0x21a5

// defaultKeyGap is the inter-key idle-scan lead-in a script starts with,
// before any `keygap` command changes it. The inter-byte receive gap shares
// clocks.DefaultRxGap with Ports.RxGap so the two stay in lockstep.
const defaultKeyGap = 10

// Driver runs the single-threaded cooperative simulation loop: step the
// CPU, tick the cadence generators, check watches, and consume the next
// script command whenever the keyboard or receiver says it needs one.
type Driver struct {
	Machine *hardware.Machine
	Watch   *coverage.Watch
	Symbols *symbols.Tables
	Out     io.Writer

	keyGap uint64
	rxGap  uint64

	feedingPause bool
	pauseUntil   uint64

	remaining uint64 // non-zero once the script is exhausted: stop at this cycle
	finished  bool

	// xonXoffLast and dumpxGraphed are dumpx's diagnostic state: the last
	// seen value of each watched XON/XOFF byte, and whether the one-time
	// display-list graph has already been written.
	xonXoffLast  [6]uint8
	dumpxGraphed bool
}

// NewDriver returns a Driver over machine, with the script grammar's
// default inter-key/inter-byte gaps.
func NewDriver(m *hardware.Machine, out io.Writer) *Driver {
	return &Driver{
		Machine: m,
		Watch:   coverage.NewWatch(),
		Symbols: symbols.NewTables(),
		Out:     out,
		keyGap:  defaultKeyGap,
		rxGap:   clocks.DefaultRxGap,
	}
}

// Run drives the machine through lines, one command at a time, until the
// script is exhausted and the post-script quiescence tail elapses.
func (d *Driver) Run(lines []string) error {
	idx := 0
	started := false
	needCommand := false

	for !d.finished {
		if _, err := d.Machine.CPU.Step(); err != nil {
			logger.Logf("cpu", "step at pc=%04x: %v", d.Machine.CPU.PC, err)
		}
		d.Machine.Tick()

		changes, err := d.Watch.Check(d.Machine.Memory)
		if err != nil {
			logger.Logf("watch", "%v", err)
		}
		for _, c := range changes {
			fmt.Fprintln(d.Out, c.String(d.Symbols))
		}

		if d.Machine.Ports.Keyboard.NeedCommand {
			d.Machine.Ports.Keyboard.NeedCommand = false
			needCommand = true
		}
		if d.Machine.Ports.Receiver.NeedCommand {
			d.Machine.Ports.Receiver.NeedCommand = false
			needCommand = true
		}

		cyc := d.Machine.CPU.Cycles
		if !started && cyc > clocks.InitialQuiescence {
			started = true
			needCommand = true
		}

		for needCommand {
			if idx < len(lines) {
				line := lines[idx]
				idx++
				cmd, err := Parse(line)
				if err != nil {
					logger.Logf("script", "%v", err)
				} else {
					fmt.Fprintf(d.Out, "Command: %s\n", cmd)
					if !d.exec(cmd) {
						needCommand = false
					}
				}
			} else {
				d.remaining = cyc + clocks.QuiescenceTail
				needCommand = false
			}
		}

		if d.feedingPause && cyc > d.pauseUntil {
			d.feedingPause = false
			d.Machine.Ports.Receiver.FeedingPause = false
			needCommand = true
		}

		if d.remaining != 0 && cyc > d.remaining {
			d.finished = true
		}
	}

	return nil
}

// exec applies one parsed command's effect and reports whether the driver
// should go straight on to the next line without stepping the machine -
// true for every command except Key, Serial and Pause, which prime a feed
// and let the machine run until it drains (or the pause elapses) before
// asking for another line.
func (d *Driver) exec(cmd Command) bool {
	m := d.Machine

	switch cmd.Kind {
	case Key:
		m.Ports.Keyboard.Feed(cmd.Bytes, int(d.keyGap))
		return false

	case Serial:
		m.Ports.Receiver.Feed(cmd.Bytes)
		m.Cadence.ArmRECI(m.CPU.Cycles + d.rxGap)
		return false

	case Pause:
		d.feedingPause = true
		m.Ports.Receiver.FeedingPause = true
		d.pauseUntil = m.CPU.Cycles + cmd.N
		return false

	case Reset:
		m.CPU.PC = 0

	case KeyGap:
		d.keyGap = cmd.N

	case RxGap:
		d.rxGap = cmd.N
		m.Ports.RxGap = cmd.N

	case Local:
		_ = m.Memory.Poke(localModeAddr, 0x20)

	case Online:
		_ = m.Memory.Poke(localModeAddr, 0x00)

	case Have:
		if opt, ok := parseOption(cmd.Option); ok {
			m.Options.Have(opt, true)
		}

	case Missing:
		if opt, ok := parseOption(cmd.Option); ok {
			m.Options.Have(opt, false)
		}

	case Bug:
		if f, ok := parseFault(cmd.Option); ok {
			m.Options.Bug(f, true)
		}

	case NoBug:
		if f, ok := parseFault(cmd.Option); ok {
			m.Options.Bug(f, false)
		}

	case Poke:
		_ = m.Memory.Poke(cmd.Addr, cmd.Value)

	case Dump:
		d.dump(cmd.Addr, cmd.Addr2)

	case Watch:
		width := coverage.Byte
		if cmd.Width != 0 {
			width = coverage.Word
		}
		d.Watch.Add(cmd.Addr, width)

	case CovRW:
		d.covReport(cmd.Addr, cmd.Addr2)

	case DumpX:
		d.dumpx()

	case Switches:
		d.switches()

	case Stack:
		d.stack()

	case Log:
		// diagnostic comment only
	}

	return true
}

func parseOption(s string) (instance.Option, bool) {
	switch s {
	case "avo":
		return instance.AVO, true
	case "gpo":
		return instance.GPO, true
	case "stp":
		return instance.STP, true
	case "loopback":
		return instance.Loopback, true
	}
	return 0, false
}

func parseFault(s string) (instance.Fault, bool) {
	switch s {
	case "nvr":
		return instance.FaultNVR, true
	case "ram":
		return instance.FaultRAM, true
	case "pusart":
		return instance.FaultPUSART, true
	}
	return 0, false
}

func (d *Driver) dump(addr uint16, count uint16) {
	fmt.Fprintf(d.Out, "%04x:", addr)
	var ascii []byte
	for i := uint16(0); i < uint16(count); i++ {
		b, _ := d.Machine.Memory.Peek(addr + i)
		fmt.Fprintf(d.Out, " %02x", b)
		if b >= 0x20 && b < 0x7f {
			ascii = append(ascii, b)
		} else {
			ascii = append(ascii, '.')
		}
	}
	fmt.Fprintf(d.Out, "  %s\n", ascii)
}

// covReport walks [start, end) reporting, for each address tagged with any
// coverage flag (or explicitly marked unreachable), its flags and nearest
// symbol - the `covrw` command's diagnostic.
func (d *Driver) covReport(start, end uint16) {
	for addr := uint32(start); addr < uint32(end); addr++ {
		a := uint16(addr)
		flags := d.Machine.Coverage.Get(a)
		if flags == 0 {
			continue
		}
		name, ok := d.Symbols.Nearest(a)
		if !ok {
			name = fmt.Sprintf("%04x", a)
		}
		fmt.Fprintf(d.Out, "%04x %-15s %s\n", a, name, covFlagString(flags))
	}
}

func covFlagString(f coverage.Flags) string {
	var b []byte
	add := func(flag coverage.Flags, c byte) {
		if f&flag != 0 {
			b = append(b, c)
		} else {
			b = append(b, '-')
		}
	}
	add(coverage.Exec, 'x')
	add(coverage.Read, 'r')
	add(coverage.Write, 'w')
	add(coverage.Data, 'd')
	add(coverage.Symbol, 's')
	add(coverage.Unreach, 'u')
	add(coverage.DMA, 'm')
	return string(b)
}
