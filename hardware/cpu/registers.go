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

// Flags holds the five condition flags the 8080 exposes through the PSW:
// sign, zero, auxiliary carry, parity and carry. Bits 1, 3 and 5 of the PSW
// are fixed (1, 0 and 0 respectively) and are not modelled as flags here -
// PSW() synthesises them directly.
type Flags struct {
	S  bool
	Z  bool
	AC bool
	P  bool
	CY bool
}

// PSW packs the flags into the byte layout the PUSH PSW / POP PSW
// instructions read and write: S Z 0 AC 0 P 1 CY.
func (f Flags) PSW() uint8 {
	var b uint8 = 0x02
	if f.S {
		b |= 0x80
	}
	if f.Z {
		b |= 0x40
	}
	if f.AC {
		b |= 0x10
	}
	if f.P {
		b |= 0x04
	}
	if f.CY {
		b |= 0x01
	}
	return b
}

// SetPSW unpacks a byte in PUSH PSW / POP PSW layout into the flags.
func (f *Flags) SetPSW(b uint8) {
	f.S = b&0x80 != 0
	f.Z = b&0x40 != 0
	f.AC = b&0x10 != 0
	f.P = b&0x04 != 0
	f.CY = b&0x01 != 0
}

// parityTable[n] is true when n has an even number of set bits, the 8080's
// definition of the parity flag.
var parityTable = func() [256]bool {
	var t [256]bool
	for i := range t {
		c := 0
		for b := i; b != 0; b >>= 1 {
			c += b & 1
		}
		t[i] = c%2 == 0
	}
	return t
}()

func parityEven(v uint8) bool {
	return parityTable[v]
}

// Registers is the full 8080 register file: the accumulator, the three
// register pairs addressable either as a pair or as their high/low halves,
// the stack pointer, the program counter and the flags.
type Registers struct {
	A uint8

	B, C uint8
	D, E uint8
	H, L uint8

	SP uint16
	PC uint16

	Flags Flags
}

// BC, DE and HL read a register pair as a 16-bit value.
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

// SetBC, SetDE and SetHL write a register pair from a 16-bit value.
func (r *Registers) SetBC(v uint16) { r.B, r.C = uint8(v>>8), uint8(v) }
func (r *Registers) SetDE(v uint16) { r.D, r.E = uint8(v>>8), uint8(v) }
func (r *Registers) SetHL(v uint16) { r.H, r.L = uint8(v>>8), uint8(v) }
