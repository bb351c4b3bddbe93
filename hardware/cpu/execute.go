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

package cpu

import "github.com/retrovt/vt100sim/hardware/cpu/instructions"

// execute decodes and runs opcode, returning its actual cost - the
// definition's base cost, or its branch cost when a conditional RET or CALL
// is taken. A conditional jump costs the same whether or not it is taken.
//
// The 0x40-0x7F (MOV) and 0x80-0xBF (ALU) blocks are decoded by their
// regular bit-field structure rather than by opcode; everything else is a
// direct dispatch.
func (c *CPU) execute(opcode uint8) (int, error) {
	def := instructions.Lookup(opcode)

	if opcode >= 0x40 && opcode <= 0x7F && opcode != 0x76 {
		return c.execMOV(opcode, def)
	}
	if opcode >= 0x80 && opcode <= 0xBF {
		return c.execALU(opcode, def)
	}

	switch opcode {
	case 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38:
		// NOP and its undocumented duplicates.
	case 0x76:
		c.Halted = true

	case 0x01:
		v, err := c.fetch16()
		if err != nil {
			return 0, err
		}
		c.SetBC(v)
	case 0x11:
		v, err := c.fetch16()
		if err != nil {
			return 0, err
		}
		c.SetDE(v)
	case 0x21:
		v, err := c.fetch16()
		if err != nil {
			return 0, err
		}
		c.SetHL(v)
	case 0x31:
		v, err := c.fetch16()
		if err != nil {
			return 0, err
		}
		c.SP = v

	case 0x02:
		if err := c.writeMem(c.BC(), c.A); err != nil {
			return 0, err
		}
	case 0x12:
		if err := c.writeMem(c.DE(), c.A); err != nil {
			return 0, err
		}
	case 0x0A:
		v, err := c.readMem(c.BC())
		if err != nil {
			return 0, err
		}
		c.A = v
	case 0x1A:
		v, err := c.readMem(c.DE())
		if err != nil {
			return 0, err
		}
		c.A = v

	case 0x22:
		addr, err := c.fetch16()
		if err != nil {
			return 0, err
		}
		if err := c.writeMem(addr, c.L); err != nil {
			return 0, err
		}
		if err := c.writeMem(addr+1, c.H); err != nil {
			return 0, err
		}
	case 0x2A:
		addr, err := c.fetch16()
		if err != nil {
			return 0, err
		}
		lo, err := c.readMem(addr)
		if err != nil {
			return 0, err
		}
		hi, err := c.readMem(addr + 1)
		if err != nil {
			return 0, err
		}
		c.L, c.H = lo, hi
	case 0x32:
		addr, err := c.fetch16()
		if err != nil {
			return 0, err
		}
		if err := c.writeMem(addr, c.A); err != nil {
			return 0, err
		}
	case 0x3A:
		addr, err := c.fetch16()
		if err != nil {
			return 0, err
		}
		v, err := c.readMem(addr)
		if err != nil {
			return 0, err
		}
		c.A = v

	case 0x03:
		c.SetBC(c.BC() + 1)
	case 0x13:
		c.SetDE(c.DE() + 1)
	case 0x23:
		c.SetHL(c.HL() + 1)
	case 0x33:
		c.SP++
	case 0x0B:
		c.SetBC(c.BC() - 1)
	case 0x1B:
		c.SetDE(c.DE() - 1)
	case 0x2B:
		c.SetHL(c.HL() - 1)
	case 0x3B:
		c.SP--

	case 0x09:
		c.dad(c.BC())
	case 0x19:
		c.dad(c.DE())
	case 0x29:
		c.dad(c.HL())
	case 0x39:
		c.dad(c.SP)

	case 0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x34, 0x3C:
		if err := c.incDecReg((opcode>>3)&0x07, 1); err != nil {
			return 0, err
		}
	case 0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x35, 0x3D:
		if err := c.incDecReg((opcode>>3)&0x07, -1); err != nil {
			return 0, err
		}

	case 0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E:
		v, err := c.fetch()
		if err != nil {
			return 0, err
		}
		if err := c.writeReg((opcode>>3)&0x07, v); err != nil {
			return 0, err
		}

	case 0x07: // RLC
		carry := c.A&0x80 != 0
		c.A = c.A<<1 | boolBit(carry)
		c.Flags.CY = carry
	case 0x0F: // RRC
		carry := c.A&0x01 != 0
		c.A = c.A>>1 | boolBit(carry)<<7
		c.Flags.CY = carry
	case 0x17: // RAL
		carry := c.A&0x80 != 0
		c.A = c.A<<1 | boolBit(c.Flags.CY)
		c.Flags.CY = carry
	case 0x1F: // RAR
		carry := c.A&0x01 != 0
		c.A = c.A>>1 | boolBit(c.Flags.CY)<<7
		c.Flags.CY = carry
	case 0x2F: // CMA
		c.A = ^c.A
	case 0x37: // STC
		c.Flags.CY = true
	case 0x3F: // CMC
		c.Flags.CY = !c.Flags.CY
	case 0x27: // DAA
		c.daa()

	case 0xC1:
		v, err := c.pop()
		if err != nil {
			return 0, err
		}
		c.SetBC(v)
	case 0xD1:
		v, err := c.pop()
		if err != nil {
			return 0, err
		}
		c.SetDE(v)
	case 0xE1:
		v, err := c.pop()
		if err != nil {
			return 0, err
		}
		c.SetHL(v)
	case 0xF1:
		v, err := c.pop()
		if err != nil {
			return 0, err
		}
		c.A = uint8(v >> 8)
		c.Flags.SetPSW(uint8(v))

	case 0xC5:
		if err := c.push(c.BC()); err != nil {
			return 0, err
		}
	case 0xD5:
		if err := c.push(c.DE()); err != nil {
			return 0, err
		}
	case 0xE5:
		if err := c.push(c.HL()); err != nil {
			return 0, err
		}
	case 0xF5:
		if err := c.push(uint16(c.A)<<8 | uint16(c.Flags.PSW())); err != nil {
			return 0, err
		}

	case 0xC6:
		v, err := c.fetch()
		if err != nil {
			return 0, err
		}
		c.A = c.add8(c.A, v, false)
	case 0xCE:
		v, err := c.fetch()
		if err != nil {
			return 0, err
		}
		c.A = c.add8(c.A, v, c.Flags.CY)
	case 0xD6:
		v, err := c.fetch()
		if err != nil {
			return 0, err
		}
		c.A = c.sub8(c.A, v, false)
	case 0xDE:
		v, err := c.fetch()
		if err != nil {
			return 0, err
		}
		c.A = c.sub8(c.A, v, c.Flags.CY)
	case 0xE6:
		v, err := c.fetch()
		if err != nil {
			return 0, err
		}
		c.A &= v
		c.Flags.CY = false
		c.Flags.AC = false
		c.setZSP(c.A)
	case 0xEE:
		v, err := c.fetch()
		if err != nil {
			return 0, err
		}
		c.A ^= v
		c.Flags.CY = false
		c.Flags.AC = false
		c.setZSP(c.A)
	case 0xF6:
		v, err := c.fetch()
		if err != nil {
			return 0, err
		}
		c.A |= v
		c.Flags.CY = false
		c.Flags.AC = false
		c.setZSP(c.A)
	case 0xFE:
		v, err := c.fetch()
		if err != nil {
			return 0, err
		}
		c.sub8(c.A, v, false)

	case 0xC3, 0xCB:
		addr, err := c.fetch16()
		if err != nil {
			return 0, err
		}
		c.PC = addr
	case 0xC2, 0xCA, 0xD2, 0xDA, 0xE2, 0xEA, 0xF2, 0xFA:
		addr, err := c.fetch16()
		if err != nil {
			return 0, err
		}
		if c.condition(opcode) {
			c.PC = addr
		}

	case 0xC9, 0xD9:
		addr, err := c.pop()
		if err != nil {
			return 0, err
		}
		c.PC = addr
	case 0xC0, 0xC8, 0xD0, 0xD8, 0xE0, 0xE8, 0xF0, 0xF8:
		taken := c.condition(opcode)
		if taken {
			addr, err := c.pop()
			if err != nil {
				return 0, err
			}
			c.PC = addr
		}
		return def.Cost(taken), nil

	case 0xCD, 0xDD, 0xED, 0xFD:
		addr, err := c.fetch16()
		if err != nil {
			return 0, err
		}
		if err := c.push(c.PC); err != nil {
			return 0, err
		}
		c.PC = addr
	case 0xC4, 0xCC, 0xD4, 0xDC, 0xE4, 0xEC, 0xF4, 0xFC:
		addr, err := c.fetch16()
		if err != nil {
			return 0, err
		}
		taken := c.condition(opcode)
		if taken {
			if err := c.push(c.PC); err != nil {
				return 0, err
			}
			c.PC = addr
		}
		return def.Cost(taken), nil

	case 0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF:
		if err := c.push(c.PC); err != nil {
			return 0, err
		}
		c.PC = instructions.RSTVector((opcode - 0xC7) / 8)

	case 0xE3: // XTHL
		lo, err := c.readMem(c.SP)
		if err != nil {
			return 0, err
		}
		hi, err := c.readMem(c.SP + 1)
		if err != nil {
			return 0, err
		}
		if err := c.writeMem(c.SP, c.L); err != nil {
			return 0, err
		}
		if err := c.writeMem(c.SP+1, c.H); err != nil {
			return 0, err
		}
		c.L, c.H = lo, hi
	case 0xE9: // PCHL
		c.PC = c.HL()
	case 0xEB: // XCHG
		c.H, c.L, c.D, c.E = c.D, c.E, c.H, c.L
	case 0xF9: // SPHL
		c.SP = c.HL()

	case 0xD3: // OUT
		port, err := c.fetch()
		if err != nil {
			return 0, err
		}
		c.bus.PortOut(port, c.A)
	case 0xDB: // IN
		port, err := c.fetch()
		if err != nil {
			return 0, err
		}
		c.A = c.bus.PortIn(port)

	case 0xF3: // DI
		c.InterruptEnable = false
	case 0xFB: // EI
		c.InterruptEnable = true

	default:
		// Every byte value is covered above or by the MOV/ALU blocks; this
		// default exists only so the switch compiles without a fallthrough
		// panic if that invariant is ever broken by a future edit.
	}

	return def.Cycles, nil
}

func (c *CPU) execMOV(opcode uint8, def instructions.Definition) (int, error) {
	dst := (opcode >> 3) & 0x07
	src := opcode & 0x07
	v, err := c.readReg(src)
	if err != nil {
		return 0, err
	}
	if err := c.writeReg(dst, v); err != nil {
		return 0, err
	}
	return def.Cycles, nil
}

func (c *CPU) execALU(opcode uint8, def instructions.Definition) (int, error) {
	group := (opcode >> 3) & 0x07
	src := opcode & 0x07
	v, err := c.readReg(src)
	if err != nil {
		return 0, err
	}
	switch group {
	case 0: // ADD
		c.A = c.add8(c.A, v, false)
	case 1: // ADC
		c.A = c.add8(c.A, v, c.Flags.CY)
	case 2: // SUB
		c.A = c.sub8(c.A, v, false)
	case 3: // SBB
		c.A = c.sub8(c.A, v, c.Flags.CY)
	case 4: // ANA
		c.A &= v
		c.Flags.CY = false
		c.Flags.AC = false
		c.setZSP(c.A)
	case 5: // XRA
		c.A ^= v
		c.Flags.CY = false
		c.Flags.AC = false
		c.setZSP(c.A)
	case 6: // ORA
		c.A |= v
		c.Flags.CY = false
		c.Flags.AC = false
		c.setZSP(c.A)
	case 7: // CMP
		c.sub8(c.A, v, false)
	}
	return def.Cycles, nil
}

// incDecReg adds delta (+1 or -1) to one of the eight register-field
// encodings, setting Z/S/P/AC but leaving CY untouched - the 8080 INR/DCR
// convention.
func (c *CPU) incDecReg(field uint8, delta int) error {
	v, err := c.readReg(field)
	if err != nil {
		return err
	}
	var r uint8
	if delta > 0 {
		c.Flags.AC = v&0x0f == 0x0f
		r = v + 1
	} else {
		c.Flags.AC = v&0x0f != 0
		r = v - 1
	}
	c.setZSP(r)
	return c.writeReg(field, r)
}

// condition evaluates the three-bit condition field shared by Jcc, Ccc and
// Rcc: NZ Z NC C PO PE P M.
func (c *CPU) condition(opcode uint8) bool {
	switch (opcode >> 3) & 0x07 {
	case 0:
		return !c.Flags.Z
	case 1:
		return c.Flags.Z
	case 2:
		return !c.Flags.CY
	case 3:
		return c.Flags.CY
	case 4:
		return !c.Flags.P
	case 5:
		return c.Flags.P
	case 6:
		return !c.Flags.S
	case 7:
		return c.Flags.S
	}
	return false
}

func boolBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// daa applies the decimal-adjust rules to A after a binary add, using the
// current AC and CY flags to decide each half's correction.
func (c *CPU) daa() {
	correction := uint8(0)
	carry := c.Flags.CY

	if c.Flags.AC || c.A&0x0f > 9 {
		correction |= 0x06
	}
	if carry || c.A>>4 > 9 || (c.A>>4 == 9 && c.A&0x0f > 9) {
		correction |= 0x60
		carry = true
	}

	c.A = c.add8(c.A, correction, false)
	c.Flags.CY = carry
}
