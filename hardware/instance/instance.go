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

// Package instance groups the per-run state that would otherwise need to be
// package globals: the fitted-board options a script can flip with `have`/
// `missing`, and the fault-injection toggles `bug`/`nobug` control. Every
// sub-system that cares about one of these reads it from a shared *Options
// rather than keeping its own copy.
package instance

// Options is the set of hardware-option and fault-injection flags a command
// script mutates over the life of a run. The zero value is the base
// configuration: AVO and loopback absent, GPO fitted and STP absent, no
// faults injected.
type Options struct {
	// AVO reports whether the advanced video option board is fitted. It
	// gates the attribute-RAM decode at addresses >= 0x3000 and one of the
	// bits port 0x42 composes.
	AVO bool

	// GPOMissing and STPFitted back the other two board-option bits port
	// 0x42 composes. The base terminal ships with GPO fitted and STP
	// absent, so these fields are phrased in the polarity whose zero value
	// is that default.
	GPOMissing bool
	STPFitted  bool

	// Loopback reports whether the test fixture that returns transmitted
	// bytes as received bytes is connected.
	Loopback bool

	// NVRFault, RAMFault and PUSARTFault are the three fault-injection
	// toggles a script's `bug`/`nobug` command addresses. Each corrupts one
	// documented read path rather than the device as a whole.
	NVRFault    bool
	RAMFault    bool
	PUSARTFault bool
}

// NewOptions returns the base configuration.
func NewOptions() *Options {
	return &Options{}
}

// Option identifies one of the fitted-board flags a `have`/`missing` command
// addresses.
type Option int

const (
	AVO Option = iota
	GPO
	STP
	Loopback
)

// Fault identifies one of the fault-injection flags a `bug`/`nobug` command
// addresses.
type Fault int

const (
	FaultNVR Fault = iota
	FaultRAM
	FaultPUSART
)

// Have sets the fitted state of a board option. The GPO case inverts the
// stored GPOMissing flag so that "have gpo true" reads naturally at the call
// site even though the field records the absent case.
func (o *Options) Have(opt Option, fitted bool) {
	switch opt {
	case AVO:
		o.AVO = fitted
	case GPO:
		o.GPOMissing = !fitted
	case STP:
		o.STPFitted = fitted
	case Loopback:
		o.Loopback = fitted
	}
}

// Bug sets a fault-injection flag.
func (o *Options) Bug(f Fault, active bool) {
	switch f {
	case FaultNVR:
		o.NVRFault = active
	case FaultRAM:
		o.RAMFault = active
	case FaultPUSART:
		o.PUSARTFault = active
	}
}
