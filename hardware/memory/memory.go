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

// Package memory implements the terminal's flat 64KiB address space: direct
// RAM below 0x3000, gated attribute RAM at and above it, and the optional
// "RAM bug" fault that pins two addresses to a fixed byte. It exposes itself
// through the three narrow views the rest of the emulation needs -
// bus.CPUBus, bus.DMABus and bus.DebugBus - rather than one fat type.
package memory

import (
	"github.com/retrovt/vt100sim/coverage"
	"github.com/retrovt/vt100sim/hardware/instance"
	"github.com/retrovt/vt100sim/hardware/memory/bus"
)

// ramBugAddresses are the two addresses the "RAM bug" mode pins to a fixed
// byte regardless of what is actually stored there.
var ramBugAddresses = [2]uint16{0x2222, 0x3222}

const ramBugByte = 0x88

// attributeRAMBoundary is the address at and above which reads are gated by
// whether the advanced video option is fitted.
const attributeRAMBoundary = 0x3000

// attributeRAMFixed is returned for attribute-RAM reads when AVO is not
// fitted.
const attributeRAMFixed = 0x0f

// Memory is the terminal's 64KiB address space.
type Memory struct {
	data [65536]byte

	opts *instance.Options
	cov  *coverage.Vector
}

// NewMemory returns an empty address space sharing opts and cov with the
// rest of the machine. Either may be nil, in which case AVO/RAM-bug gating
// defaults to "not fitted" and coverage tagging is skipped.
func NewMemory(opts *instance.Options, cov *coverage.Vector) *Memory {
	return &Memory{opts: opts, cov: cov}
}

func (m *Memory) ramBugActive() bool {
	return m.opts != nil && m.opts.RAMFault
}

func (m *Memory) avoFitted() bool {
	return m.opts != nil && m.opts.AVO
}

// Read implements bus.CPUBus. It carries no coverage side effect of its own
// - the CPU tags EXEC/READ coverage itself, since only it knows which of
// those an access represents; see hardware/cpu.
func (m *Memory) Read(address uint16) (uint8, error) {
	return m.load(address), nil
}

// Write implements bus.CPUBus. Writes are unconditional: the attribute-RAM
// gate and the RAM-bug fault only affect reads. Like Read, it carries no
// coverage side effect; the CPU tags WRITE coverage itself.
func (m *Memory) Write(address uint16, value uint8) error {
	m.data[address] = value
	return nil
}

// ReadDMA implements bus.DMABus. It shares the same decode as Read but tags
// coverage as DMA, never EXEC or READ, per the rasterizer's distinct access
// path.
func (m *Memory) ReadDMA(address uint16) (uint8, error) {
	v := m.load(address)
	m.tag(address, coverage.DMA)
	return v, nil
}

// Peek implements bus.DebugBus: a read with no coverage side effect, for the
// script layer's `dump`/`poke`-verification use.
func (m *Memory) Peek(address uint16) (uint8, error) {
	return m.load(address), nil
}

// Poke implements bus.DebugBus: an unconditional write with no coverage side
// effect, bypassing any device latch a CPU-facing port write would trigger.
func (m *Memory) Poke(address uint16, value uint8) error {
	m.data[address] = value
	return nil
}

// load applies the RAM-bug fault and the attribute-RAM gate without
// touching coverage; every exported read goes through it.
func (m *Memory) load(address uint16) uint8 {
	if m.ramBugActive() {
		for _, bugged := range ramBugAddresses {
			if address == bugged {
				return ramBugByte
			}
		}
	}

	if address < attributeRAMBoundary {
		return m.data[address]
	}
	if m.avoFitted() {
		return m.data[address] & 0x0f
	}
	return attributeRAMFixed
}

func (m *Memory) tag(address uint16, flags coverage.Flags) {
	if m.cov == nil {
		return
	}
	m.cov.Tag(address, flags)
}

var _ bus.CPUBus = (*Memory)(nil)
var _ bus.DMABus = (*Memory)(nil)
var _ bus.DebugBus = (*Memory)(nil)
