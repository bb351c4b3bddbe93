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

package symbols

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveIsExactOnly(t *testing.T) {
	tb := NewTables()
	tb.AddSymbol(0x100, "START")
	tb.AddEquate(0x2010, "FLAG")

	name, ok := tb.Resolve(0x100)
	assert.True(t, ok)
	assert.Equal(t, "START", name)

	_, ok = tb.Resolve(0x101)
	assert.False(t, ok)

	name, ok = tb.Resolve(0x2010)
	assert.True(t, ok)
	assert.Equal(t, "FLAG", name)
}

func TestNearestAddsOffsetWithinWindow(t *testing.T) {
	tb := NewTables()
	tb.AddSymbol(0x100, "START")

	name, ok := tb.Nearest(0x100)
	assert.True(t, ok)
	assert.Equal(t, "START", name)

	name, ok = tb.Nearest(0x110)
	assert.True(t, ok)
	assert.Equal(t, "START+16", name)

	_, ok = tb.Nearest(0x100 + nearestSymbolWindow + 1)
	assert.False(t, ok, "a byte more than the window past the symbol has no nearest match")
}

func TestNearestRAMUsesEquateSpace(t *testing.T) {
	tb := NewTables()
	tb.AddEquate(0x2000, "BASE")

	name, ok := tb.Nearest(0x2005)
	assert.True(t, ok)
	assert.Equal(t, "BASE+5", name)
}

func TestReadSymbolFileSkipsBlankAndCommentLines(t *testing.T) {
	tb := NewTables()
	src := "# a comment\n\n0100 START\n02ab LOOP TOP\n"
	err := ReadSymbolFile(strings.NewReader(src), tb.AddSymbol)
	assert.NoError(t, err)

	name, ok := tb.Resolve(0x100)
	assert.True(t, ok)
	assert.Equal(t, "START", name)

	name, ok = tb.Resolve(0x2ab)
	assert.True(t, ok)
	assert.Equal(t, "LOOP TOP", name)
}

func TestReadSymbolFileRejectsMalformedLine(t *testing.T) {
	tb := NewTables()
	err := ReadSymbolFile(strings.NewReader("notanaddress\n"), tb.AddSymbol)
	assert.Error(t, err)
}
