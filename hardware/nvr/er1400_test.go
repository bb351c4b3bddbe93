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

package nvr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The three-bit command line carries negative logic: the raw port value is
// commandFromPort's input, XORed with 7 to get the State it selects. These
// are the raw values for each state, derived once here rather than
// hand-computed at every call site below.
const (
	rawStandby    = 7
	rawAddress    = 6
	rawRead       = 5
	rawShiftOut   = 4
	rawErase      = 3
	rawAcceptData = 2
	rawWrite      = 1
)

func writeBits(e *ER1400, bits []uint8) {
	for _, b := range bits {
		e.Write(rawAcceptData, b)
	}
}

// shiftOut drains 14 bits out of the register through the ShiftOut state,
// one per LBA7 clock edge.
func shiftOut(e *ER1400) []uint8 {
	e.Write(rawShiftOut, 0)
	out := make([]uint8, 14)
	for i := range out {
		e.Clock(true)
		if e.Read() {
			out[i] = 1
		}
		e.Clock(false)
	}
	return out
}

func TestWriteReadRoundTripsFourteenBits(t *testing.T) {
	e := New()
	bits := []uint8{1, 0, 1, 1, 0, 0, 0, 1, 1, 0, 1, 0, 1, 1}

	e.Write(rawErase, 0)
	writeBits(e, bits)
	e.Write(rawWrite, 0)

	e.Write(rawRead, 0)
	got := shiftOut(e)

	assert.Equal(t, bits, got)
}

func TestEraseZeroesLocation(t *testing.T) {
	e := New()
	writeBits(e, []uint8{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1})
	e.Write(rawWrite, 0)

	e.Write(rawErase, 0)

	// The stored word is now zero; through the inverting output each zero
	// bit reads back as 1, the complement writeBits would have written.
	e.Write(rawRead, 0)
	got := shiftOut(e)
	assert.Equal(t, []uint8{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, got)
}

func TestFaultyReadAlwaysZero(t *testing.T) {
	e := New()
	writeBits(e, []uint8{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1})
	e.Write(rawWrite, 0)

	// A faulty read loads zero into the register, which the inverting
	// output presents as all ones.
	e.Faulty = true
	e.Write(rawRead, 0)
	got := shiftOut(e)
	assert.Equal(t, []uint8{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, got)
}

func TestBytesLoadBytesRoundTrip(t *testing.T) {
	e := New()
	writeBits(e, []uint8{1, 0, 0, 1, 0, 1, 1, 0, 1, 0, 0, 1, 0, 1})
	e.Write(rawWrite, 0)

	data := e.Bytes()
	assert.Len(t, data, 200)

	restored := New()
	restored.LoadBytes(data)

	restored.Write(rawRead, 0)
	got := shiftOut(restored)
	assert.Equal(t, []uint8{1, 0, 0, 1, 0, 1, 1, 0, 1, 0, 0, 1, 0, 1}, got)
}

func TestLoadBytesShortSliceLeavesRestUnchanged(t *testing.T) {
	e := New()
	e.LoadBytes([]byte{0xff, 0xff})
	assert.Equal(t, uint16(0xffff), e.mem[0])
	assert.Equal(t, uint16(0), e.mem[1])
}

func TestEraseClearsEveryLocation(t *testing.T) {
	e := New()
	e.mem[0] = 0x1234
	e.mem[50] = 0x5678
	e.Erase()
	for _, w := range e.mem {
		assert.Equal(t, uint16(0), w)
	}
}
