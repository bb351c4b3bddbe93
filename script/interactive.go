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
	"github.com/pkg/term"
)

// Interactive reads raw keystrokes from a terminal and feeds them to a
// Driver's keyboard one at a time, an alternative to a script file's `key`
// lines for driving the machine live. It puts the controlling terminal into
// raw mode for the duration so keys reach the machine unbuffered and
// unechoed, matching the firmware's own expectation that it alone decides
// what gets echoed back.
type Interactive struct {
	t *term.Term
}

// OpenInteractive puts device (typically "/dev/tty") into raw mode.
func OpenInteractive(device string) (*Interactive, error) {
	t, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, err
	}
	return &Interactive{t: t}, nil
}

// Close restores the terminal's previous mode.
func (i *Interactive) Close() error {
	if err := i.t.Restore(); err != nil {
		i.t.Close()
		return err
	}
	return i.t.Close()
}

// ReadKey blocks for exactly one raw byte from the terminal.
func (i *Interactive) ReadKey() (uint8, error) {
	var buf [1]byte
	if _, err := i.t.Read(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Feed primes the driver's keyboard with a single keystroke, the same path
// a script's `key` command uses, with no inter-key gap - the keystroke
// already arrived at human typing speed.
func (d *Driver) Feed(code uint8) {
	d.Machine.Ports.Keyboard.Feed([]uint8{code & 0x7f}, 0)
}
