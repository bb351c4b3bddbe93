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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retrovt/vt100sim/hardware"
	"github.com/retrovt/vt100sim/hardware/clocks"
)

func newTestDriver() *Driver {
	m := hardware.NewMachine()
	return NewDriver(m, &bytes.Buffer{})
}

func TestExecKeySerialPauseWaitBeforeNextLine(t *testing.T) {
	d := newTestDriver()

	for _, line := range []string{"key 41", `serial "A"`, "pause 100"} {
		cmd, err := Parse(line)
		assert.NoError(t, err)
		assert.False(t, d.exec(cmd), "line %q should make the driver wait before the next line", line)
	}
}

func TestExecOtherCommandsGoStraightToNextLine(t *testing.T) {
	d := newTestDriver()

	for _, line := range []string{"reset", "keygap 5", "rxgap 500", "local", "online",
		"have avo", "missing avo", "bug nvr", "nobug nvr", "poke 2000,ff",
		"dump 2000,4", "watch 2000", "covrw 2000,2010", "dumpx", "switches", "stack", "log"} {
		cmd, err := Parse(line)
		assert.NoError(t, err)
		assert.True(t, d.exec(cmd), "line %q should let the driver read the next line at once", line)
	}
}

func TestExecKeyFeedsKeyboard(t *testing.T) {
	d := newTestDriver()
	cmd, err := Parse("key 41,42")
	assert.NoError(t, err)
	d.exec(cmd)
	assert.True(t, d.Machine.Ports.Keyboard.Scanning())

	// the feed is primed with a lead-in of d.keyGap idle scans (a count of
	// scan reads, not of CPU cycles) before the keycodes themselves appear.
	for i := uint64(0); i < d.keyGap; i++ {
		assert.Equal(t, uint8(0x7f), d.Machine.Ports.Keyboard.ScanIn())
	}
	assert.Equal(t, uint8(0x41), d.Machine.Ports.Keyboard.ScanIn())
}

func TestExecSerialFeedsReceiverAndArmsRECI(t *testing.T) {
	d := newTestDriver()
	cmd, err := Parse(`serial "hi"`)
	assert.NoError(t, err)
	before := d.Machine.Cadence.NextRECI
	d.exec(cmd)
	assert.NotEqual(t, before, d.Machine.Cadence.NextRECI)
}

func TestExecHaveMissingTogglesOptions(t *testing.T) {
	d := newTestDriver()

	haveCmd, _ := Parse("have avo")
	d.exec(haveCmd)
	assert.True(t, d.Machine.Options.AVO)

	missingCmd, _ := Parse("missing avo")
	d.exec(missingCmd)
	assert.False(t, d.Machine.Options.AVO)
}

func TestExecBugNoBugTogglesFaults(t *testing.T) {
	d := newTestDriver()

	bugCmd, _ := Parse("bug ram")
	d.exec(bugCmd)
	assert.True(t, d.Machine.Options.RAMFault)

	noBugCmd, _ := Parse("nobug ram")
	d.exec(noBugCmd)
	assert.False(t, d.Machine.Options.RAMFault)
}

func TestExecLocalOnlinePokesLocalModeFlag(t *testing.T) {
	d := newTestDriver()

	localCmd, _ := Parse("local")
	d.exec(localCmd)
	b, _ := d.Machine.Memory.Peek(localModeAddr)
	assert.Equal(t, uint8(0x20), b)

	onlineCmd, _ := Parse("online")
	d.exec(onlineCmd)
	b, _ = d.Machine.Memory.Peek(localModeAddr)
	assert.Equal(t, uint8(0), b)
}

func TestExecPokeWritesMemory(t *testing.T) {
	d := newTestDriver()
	cmd, _ := Parse("poke 2100,7e")
	d.exec(cmd)
	b, _ := d.Machine.Memory.Peek(0x2100)
	assert.Equal(t, uint8(0x7e), b)
}

func TestExecKeyGapAndRxGapUpdateDriverState(t *testing.T) {
	d := newTestDriver()
	assert.Equal(t, uint64(defaultKeyGap), d.keyGap)
	assert.Equal(t, uint64(clocks.DefaultRxGap), d.rxGap)

	kg, _ := Parse("keygap 99")
	d.exec(kg)
	assert.Equal(t, uint64(99), d.keyGap)

	rg, _ := Parse("rxgap 12345")
	d.exec(rg)
	assert.Equal(t, uint64(12345), d.rxGap)
}

func TestExecDumpXSwitchesStackDoNotPanicOnFreshMachine(t *testing.T) {
	d := newTestDriver()
	assert.NotPanics(t, func() {
		d.dumpx()
		d.switches()
		d.stack()
	})
}
