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

// Package cpu implements the Intel 8080 as found in the VT100: the full
// register file, the published per-opcode cycle cost, the vectored
// interrupt-acknowledge fetch path and the halted state an HLT instruction
// puts the processor into. It knows nothing about what is wired to its bus -
// that is cpubus.Bus's job.
package cpu

import (
	"fmt"

	"github.com/retrovt/vt100sim/coverage"
	"github.com/retrovt/vt100sim/hardware/cpu/instructions"
	"github.com/retrovt/vt100sim/hardware/memory/cpubus"
)

// CPU is the 8080 found in the VT100. Register logic lives in Registers;
// CPU owns the fetch/decode/execute loop and the processor-level state the
// spec calls out: the interrupt-enable flag, the halted flag and the
// monotonic cycle counter.
type CPU struct {
	Registers

	bus cpubus.Bus
	cov *coverage.Vector

	// InterruptEnable is the 8080's internal interrupt-enable flip-flop,
	// set by EI and cleared by DI and by taking an interrupt.
	InterruptEnable bool

	// Halted is true after HLT; an interrupt or Reset clears it.
	Halted bool

	// InterruptPending is the level-sensitive input an external driver
	// toggles between steps to the OR of the interrupt lines. It is not
	// cleared by Step - the driver owns it.
	InterruptPending bool

	// Cycles is the monotonic count of cycles consumed since the CPU was
	// created. Reset leaves it unchanged; it never decreases.
	Cycles uint64
}

// NewCPU returns a CPU wired to bus, tagging every access it makes into cov.
// All registers start zeroed: the 8080 reset vector is address zero, which
// is also the Go zero value of PC. cov may be nil to run without coverage
// tagging.
func NewCPU(bus cpubus.Bus, cov *coverage.Vector) *CPU {
	return &CPU{bus: bus, cov: cov}
}

func (c *CPU) tag(address uint16, flags coverage.Flags) {
	if c.cov == nil {
		return
	}
	c.cov.Tag(address, flags)
}

// Reset reinitialises every register and processor flag to zero and resumes
// execution at address 0.
func (c *CPU) Reset() {
	c.Registers = Registers{}
	c.InterruptEnable = false
	c.Halted = false
}

func (c *CPU) String() string {
	return fmt.Sprintf("PC=%04x SP=%04x A=%02x BC=%04x DE=%04x HL=%04x F=%02x cyc=%d",
		c.PC, c.SP, c.A, c.BC(), c.DE(), c.HL(), c.Flags.PSW(), c.Cycles)
}

// Step executes exactly one instruction and returns the number of cycles it
// cost. If the interrupt-enable flag is set and InterruptPending is true,
// the instruction executed is the one the bus's InterruptAck synthesises
// instead of a memory fetch, per the 8080 vectored-interrupt convention;
// interrupts are disabled for the duration (cleared here, re-enabled only by
// a later EI in the handler).
func (c *CPU) Step() (int, error) {
	var opcode uint8

	if c.InterruptEnable && c.InterruptPending {
		c.InterruptEnable = false
		c.Halted = false
		opcode = c.bus.InterruptAck()
		if opcode == 0 {
			// No line actually asserted: a no-op on the interrupt bus: treat
			// as an ordinary NOP rather than consulting memory.
			c.Cycles += uint64(instructions.Lookup(0x00).Cycles)
			return instructions.Lookup(0x00).Cycles, nil
		}
	} else {
		if c.Halted {
			cost := instructions.Lookup(0x00).Cycles
			c.Cycles += uint64(cost)
			return cost, nil
		}
		var err error
		opcode, err = c.fetchOpcode()
		if err != nil {
			return 0, err
		}
	}

	cost, err := c.execute(opcode)
	if err != nil {
		return 0, err
	}
	c.Cycles += uint64(cost)
	return cost, nil
}

// fetchOpcode reads the byte at PC, advances PC and tags EXEC coverage. It
// is used only for the opcode byte itself.
func (c *CPU) fetchOpcode() (uint8, error) {
	v, err := c.bus.Read(c.PC)
	if err != nil {
		return 0, err
	}
	c.tag(c.PC, coverage.Exec)
	c.PC++
	return v, nil
}

// fetch reads the byte at PC, advances PC and tags EXEC coverage. It is
// used for every operand byte (immediate data, jump/call targets) that
// follows an opcode: spec.md s3 reserves DATA for external priming, and an
// instruction's operand bytes are as much "fetched" as its opcode byte.
func (c *CPU) fetch() (uint8, error) {
	v, err := c.bus.Read(c.PC)
	if err != nil {
		return 0, err
	}
	c.tag(c.PC, coverage.Exec)
	c.PC++
	return v, nil
}

func (c *CPU) fetch16() (uint16, error) {
	lo, err := c.fetch()
	if err != nil {
		return 0, err
	}
	hi, err := c.fetch()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// readMem reads a byte via an explicit memory instruction (as opposed to
// instruction fetch), tagging READ coverage.
func (c *CPU) readMem(address uint16) (uint8, error) {
	v, err := c.bus.Read(address)
	if err != nil {
		return 0, err
	}
	c.tag(address, coverage.Read)
	return v, nil
}

// writeMem writes a byte via an explicit memory instruction, tagging WRITE
// coverage.
func (c *CPU) writeMem(address uint16, v uint8) error {
	if err := c.bus.Write(address, v); err != nil {
		return err
	}
	c.tag(address, coverage.Write)
	return nil
}

func (c *CPU) push(v uint16) error {
	c.SP -= 2
	if err := c.writeMem(c.SP+1, uint8(v>>8)); err != nil {
		return err
	}
	return c.writeMem(c.SP, uint8(v))
}

func (c *CPU) pop() (uint16, error) {
	lo, err := c.readMem(c.SP)
	if err != nil {
		return 0, err
	}
	hi, err := c.readMem(c.SP + 1)
	if err != nil {
		return 0, err
	}
	c.SP += 2
	return uint16(hi)<<8 | uint16(lo), nil
}

// reg8 returns a pointer-like accessor pair (get, set) for one of the eight
// 3-bit register field encodings used throughout the MOV and ALU blocks.
// Field 6 (M) is memory at HL and is handled by the caller, since it can
// fail.
func (c *CPU) reg8(field uint8) *uint8 {
	switch field {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	return nil
}

func (c *CPU) readReg(field uint8) (uint8, error) {
	if field == 6 {
		return c.readMem(c.HL())
	}
	return *c.reg8(field), nil
}

func (c *CPU) writeReg(field uint8, v uint8) error {
	if field == 6 {
		return c.writeMem(c.HL(), v)
	}
	*c.reg8(field) = v
	return nil
}
