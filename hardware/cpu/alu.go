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

// setZSP sets the zero, sign and parity flags from a result byte. Every
// arithmetic and logical instruction sets all three the same way; only
// carry and auxiliary carry vary by operation.
func (c *CPU) setZSP(v uint8) {
	c.Flags.Z = v == 0
	c.Flags.S = v&0x80 != 0
	c.Flags.P = parityEven(v)
}

// add8 performs an 8-bit add, optionally with carry-in, and sets CY/AC/Z/S/P.
func (c *CPU) add8(a, b uint8, carryIn bool) uint8 {
	var cin uint8
	if carryIn {
		cin = 1
	}
	sum := uint16(a) + uint16(b) + uint16(cin)
	c.Flags.AC = (a&0x0f)+(b&0x0f)+cin > 0x0f
	c.Flags.CY = sum > 0xff
	r := uint8(sum)
	c.setZSP(r)
	return r
}

// sub8 performs an 8-bit subtract, optionally with borrow-in, and sets
// CY/AC/Z/S/P. CY is set when the subtraction borrows out of bit 8; AC when
// it borrows out of bit 4.
func (c *CPU) sub8(a, b uint8, borrowIn bool) uint8 {
	var bin int16
	if borrowIn {
		bin = 1
	}
	diff := int16(a) - int16(b) - bin
	c.Flags.CY = diff < 0
	c.Flags.AC = int16(a&0x0f)-int16(b&0x0f)-bin < 0
	r := uint8(diff)
	c.setZSP(r)
	return r
}

func (c *CPU) dad(v uint16) {
	sum := uint32(c.HL()) + uint32(v)
	c.Flags.CY = sum > 0xffff
	c.SetHL(uint16(sum))
}
