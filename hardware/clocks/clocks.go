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

// Package clocks defines the constant values that define the speed of the
// terminal's 8080 and the cadence of the events derived from it.
package clocks

const (
	// CPUClockMHz is the terminal's CPU clock rate.
	CPUClockMHz = 2.7648

	// VBIPeriod is the number of CPU cycles between vertical blank
	// interrupts, derived from the 60Hz field rate at CPUClockMHz.
	VBIPeriod = 46080

	// LBA7Period is the number of CPU cycles between LBA7 edges, a
	// ~11.36kHz square wave derived from the horizontal scan rate.
	LBA7Period = 88

	// QuiescenceTail is the number of cycles the driver keeps stepping past
	// the end of a script before it declares the run finished.
	QuiescenceTail = 5_000_000

	// InitialQuiescence is the number of cycles the driver runs before
	// reading the script's first command, giving firmware self-test and
	// power-on initialisation time to run with no input at all (spec.md s8
	// scenario 1: "feed no input for 10,000,000 cycles").
	InitialQuiescence = 10_000_000

	// UISleepInterval is the number of emulated cycles - one emulated
	// millisecond - between the cosmetic sleeps an interactive frontend may
	// insert to keep its own event loop responsive. It has no functional
	// effect on the emulation.
	UISleepInterval = 2_764.8

	// KeyScanGap is the fixed number of CPU cycles between keyboard-scan
	// deadlines once a scan is underway. It is distinct from a script's
	// `keygap`-controlled idle lead-in (the number of idle scans before a
	// primed feed is presented): this is the pacing of the scan itself.
	KeyScanGap = 5_000

	// DefaultRxGap is the receiver's starting inter-byte gap, in CPU
	// cycles, before a script's `rxgap` command changes it.
	DefaultRxGap = 30_000
)
