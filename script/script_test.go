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

package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKeyMasksHighBitAndSplitsOnComma(t *testing.T) {
	cmd, err := Parse("key 41,c2,7f")
	assert.NoError(t, err)
	assert.Equal(t, Key, cmd.Kind)
	assert.Equal(t, []uint8{0x41, 0x42, 0x7f}, cmd.Bytes)
}

func TestParseSerialQuotedString(t *testing.T) {
	cmd, err := Parse(`serial "AB"`)
	assert.NoError(t, err)
	assert.Equal(t, Serial, cmd.Kind)
	assert.Equal(t, []uint8{'A', 'B'}, cmd.Bytes)
}

func TestParseSerialHexList(t *testing.T) {
	cmd, err := Parse("serial 0d,0a")
	assert.NoError(t, err)
	assert.Equal(t, []uint8{0x0d, 0x0a}, cmd.Bytes)
}

func TestParsePause(t *testing.T) {
	cmd, err := Parse("pause 5000")
	assert.NoError(t, err)
	assert.Equal(t, Pause, cmd.Kind)
	assert.Equal(t, uint64(5000), cmd.N)
}

func TestParseHaveAndBugLowercaseOption(t *testing.T) {
	cmd, err := Parse("have AVO")
	assert.NoError(t, err)
	assert.Equal(t, Have, cmd.Kind)
	assert.Equal(t, "avo", cmd.Option)

	cmd, err = Parse("bug NVR")
	assert.NoError(t, err)
	assert.Equal(t, Bug, cmd.Kind)
	assert.Equal(t, "nvr", cmd.Option)
}

func TestParsePoke(t *testing.T) {
	cmd, err := Parse("poke 21a5,20")
	assert.NoError(t, err)
	assert.Equal(t, Poke, cmd.Kind)
	assert.Equal(t, uint16(0x21a5), cmd.Addr)
	assert.Equal(t, uint8(0x20), cmd.Value)
}

func TestParseWatchDefaultsToByteWidth(t *testing.T) {
	cmd, err := Parse("watch 21bf")
	assert.NoError(t, err)
	assert.Equal(t, Watch, cmd.Kind)
	assert.Equal(t, uint16(0x21bf), cmd.Addr)
	assert.Equal(t, 0, cmd.Width)

	cmd, err = Parse("watch 21bf, 1")
	assert.NoError(t, err)
	assert.Equal(t, 1, cmd.Width)
}

func TestParseCovRWRequiresBothBounds(t *testing.T) {
	_, err := Parse("covrw 2000")
	assert.Error(t, err)

	cmd, err := Parse("covrw 2000,2010")
	assert.NoError(t, err)
	assert.Equal(t, CovRW, cmd.Kind)
	assert.Equal(t, uint16(0x2000), cmd.Addr)
	assert.Equal(t, uint16(0x2010), cmd.Addr2)
}

func TestParseBlankLineIsLog(t *testing.T) {
	cmd, err := Parse("   ")
	assert.NoError(t, err)
	assert.Equal(t, Log, cmd.Kind)
}

func TestParseUnrecognisedVerb(t *testing.T) {
	_, err := Parse("frobnicate")
	assert.Error(t, err)
}

func TestParseDiagnosticVerbsNeedNoArguments(t *testing.T) {
	for _, line := range []string{"dumpx", "switches", "stack", "reset", "local", "online"} {
		_, err := Parse(line)
		assert.NoError(t, err, "line %q", line)
	}
}
