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

// Package hardware is the base package for the VT100 emulation. It and its
// sub-packages contain everything required for a headless emulation.
//
// The Machine type is the root of the emulation and holds references to all
// of the terminal's sub-systems: the 8080 CPU, the address space, the
// peripheral chips, the ER1400 NVR and the cadence generator. From here, the
// emulation is stepped one CPU instruction at a time by the script/driver
// loop.
package hardware

import (
	"github.com/retrovt/vt100sim/coverage"
	"github.com/retrovt/vt100sim/hardware/clocks"
	"github.com/retrovt/vt100sim/hardware/cpu"
	"github.com/retrovt/vt100sim/hardware/instance"
	"github.com/retrovt/vt100sim/hardware/memory"
	"github.com/retrovt/vt100sim/hardware/memory/cpubus"
	"github.com/retrovt/vt100sim/hardware/peripherals"
	"github.com/retrovt/vt100sim/video"
)

// Machine wires the address space and the port multiplexer into the single
// cpubus.Bus the CPU is built against, and carries the cadence generator and
// coverage vector that sit outside the CPU's view of the world.
type Machine struct {
	Options  *instance.Options
	Coverage *coverage.Vector
	Memory   *memory.Memory
	Ports    *peripherals.Ports
	CPU      *cpu.CPU
	Cadence  *clocks.Cadence

	rasterizer *video.Rasterizer
	surface    video.Surface

	// OnFrame, if set, is called after every completed rasterizer pass -
	// the signal an outer presenter uses to know a frame's worth of
	// SetDot calls is finished and it is safe to present it.
	OnFrame func()
}

// NewMachine returns a freshly reset machine: zeroed memory, every
// peripheral in its power-on state, and the CPU at its reset vector.
func NewMachine() *Machine {
	opts := instance.NewOptions()
	cov := coverage.NewVector()
	mem := memory.NewMemory(opts, cov)
	ports := peripherals.NewPorts(opts)

	m := &Machine{
		Options:  opts,
		Coverage: cov,
		Memory:   mem,
		Ports:    ports,
		Cadence:  clocks.NewCadence(),
	}
	m.CPU = cpu.NewCPU(m, cov)

	ports.ArmRECI = func() { m.Cadence.ArmRECI(m.CPU.Cycles + ports.RxGap) }
	ports.ArmKBDI = func() { m.Cadence.ArmKBDI(m.CPU.Cycles + clocks.KeyScanGap) }
	ports.OnRaster = m.raster

	return m
}

// AttachVideo wires a character ROM and a presenter surface into the
// machine: from this point, a DC012 command 9 write runs a rasterizer pass
// against surface. Either may be attached independently of the other parts
// of the machine, and a headless run that never calls this leaves DC012
// command 9 a no-op beyond clearing VBI.
func (m *Machine) AttachVideo(chars *video.CharROM, surface video.Surface) {
	m.rasterizer = video.NewRasterizer(m, chars)
	m.surface = surface
}

func (m *Machine) raster() {
	if m.rasterizer == nil || m.surface == nil {
		return
	}
	m.rasterizer.Raster(m.surface, video.ColumnMode{
		Columns132:            m.Ports.DC011.Columns132,
		ReverseField:          m.Ports.DC012.ReverseField,
		BasicAttributeReverse: m.Ports.DC012.BasicAttributeReverse,
		BlinkFlipFlop:         m.Ports.DC012.BlinkFlipFlop,
		ScrollLatch:           m.Ports.DC012.ScrollLatch,
	})
	if m.OnFrame != nil {
		m.OnFrame()
	}
}

// Read implements bus.CPUBus by delegating to Memory.
func (m *Machine) Read(address uint16) (uint8, error) {
	return m.Memory.Read(address)
}

// Write implements bus.CPUBus by delegating to Memory.
func (m *Machine) Write(address uint16, value uint8) error {
	return m.Memory.Write(address, value)
}

// PortIn implements bus.PortBus by delegating to Ports.
func (m *Machine) PortIn(port uint8) uint8 {
	return m.Ports.PortIn(port)
}

// PortOut implements bus.PortBus by delegating to Ports.
func (m *Machine) PortOut(port uint8, value uint8) {
	m.Ports.PortOut(port, value)
}

// InterruptAck implements cpubus.Bus by delegating to Ports.
func (m *Machine) InterruptAck() uint8 {
	return m.Ports.InterruptAck()
}

// ReadDMA implements bus.DMABus by delegating to Memory, the path the video
// rasterizer walks the display list through.
func (m *Machine) ReadDMA(address uint16) (uint8, error) {
	return m.Memory.ReadDMA(address)
}

// Tick advances the machine's time-driven peripherals by one cadence check
// at the CPU's current cycle count: it raises VBI/RECI/KBDI as their
// deadlines pass and clocks the NVR shift register on each LBA7 edge. It is
// called once per CPU.Step by the driver loop.
func (m *Machine) Tick() clocks.Events {
	ev := m.Cadence.Check(m.CPU.Cycles)

	if ev.VBI {
		m.Ports.Lines.VBI = true
	}
	if ev.RECI {
		m.Ports.Lines.RECI = true
	}
	if ev.KBDI {
		m.Ports.Lines.KBDI = true
	}
	if ev.LBA7 {
		m.Ports.LBA7 = !m.Ports.LBA7
		m.Ports.NVR.Clock(m.Ports.LBA7)
	}

	m.CPU.InterruptPending = m.Ports.Lines.Pending()

	return ev
}

var _ cpubus.Bus = (*Machine)(nil)
