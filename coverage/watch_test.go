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

package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeReader map[uint16]uint8

func (f fakeReader) Peek(address uint16) (uint8, error) {
	return f[address], nil
}

func TestWatchReportsFirstReadAndSubsequentChanges(t *testing.T) {
	w := NewWatch()
	w.Add(0x10, Byte)

	mem := fakeReader{0x10: 0x5}
	changes, err := w.Check(mem)
	assert.NoError(t, err)
	assert.Equal(t, []Change{{Address: 0x10, Width: Byte, Old: 0, New: 0x5}}, changes)

	changes, err = w.Check(mem)
	assert.NoError(t, err)
	assert.Empty(t, changes, "unchanged value shouldn't be reported again")

	mem[0x10] = 0x6
	changes, err = w.Check(mem)
	assert.NoError(t, err)
	assert.Equal(t, []Change{{Address: 0x10, Width: Byte, Old: 0x5, New: 0x6}}, changes)
}

func TestWatchWordIsLittleEndian(t *testing.T) {
	w := NewWatch()
	w.Add(0x20, Word)

	mem := fakeReader{0x20: 0x34, 0x21: 0x12}
	changes, err := w.Check(mem)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x1234), changes[0].New)
}

func TestWatchAddIsCappedSilently(t *testing.T) {
	w := NewWatch()
	for i := 0; i < maxWatch+10; i++ {
		w.Add(uint16(i), Byte)
	}
	assert.Len(t, w.entries, maxWatch)
}

func TestWatchResetClearsEntries(t *testing.T) {
	w := NewWatch()
	w.Add(0x10, Byte)
	w.Reset()
	changes, err := w.Check(fakeReader{})
	assert.NoError(t, err)
	assert.Empty(t, changes)
}

type nameResolver map[uint16]string

func (r nameResolver) Resolve(address uint16) (string, bool) {
	s, ok := r[address]
	return s, ok
}

func TestChangeStringFallsBackToHexAddress(t *testing.T) {
	c := Change{Address: 0x1234, Width: Byte, Old: 1, New: 2}
	assert.Contains(t, c.String(nil), "1234")
	assert.Contains(t, c.String(nameResolver{}), "1234")

	named := c.String(nameResolver{0x1234: "FOO"})
	assert.Contains(t, named, "FOO")
}
