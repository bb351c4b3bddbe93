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

func TestTagIsAdditive(t *testing.T) {
	v := NewVector()
	v.Tag(0x100, Exec)
	v.Tag(0x100, Read)
	assert.Equal(t, Exec|Read, v.Get(0x100))
	assert.True(t, v.Has(0x100, Exec))
	assert.True(t, v.Has(0x100, Read))
	assert.False(t, v.Has(0x100, Write))
}

func TestMarkUnreachablePreservesOtherBits(t *testing.T) {
	v := NewVector()
	v.Tag(0x200, Data)
	v.MarkUnreachable(0x200)
	assert.Equal(t, Data|Unreach, v.Get(0x200))
}

func TestFillExcludesUnreachOnlyAddresses(t *testing.T) {
	v := NewVector()
	assert.Equal(t, float64(0), v.Fill())

	v.MarkUnreachable(0x10)
	assert.Equal(t, float64(0), v.Fill(), "an address marked only Unreach shouldn't count toward fill")

	v.Tag(0x20, Exec)
	assert.InDelta(t, 1.0/65536.0, v.Fill(), 1e-12)

	v.Tag(0x10, Exec)
	assert.InDelta(t, 2.0/65536.0, v.Fill(), 1e-12, "an Unreach address that later executes should count")
}
