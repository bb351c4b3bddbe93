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

package peripherals

import (
	"github.com/retrovt/vt100sim/hardware/clocks"
	"github.com/retrovt/vt100sim/hardware/instance"
	"github.com/retrovt/vt100sim/hardware/nvr"
)

// Ports is the single port-space multiplexer the CPU's bus is built from.
// It owns every port-visible device and dispatches each IN/OUT to whichever
// one the port number addresses, per the port map: 0x00 data, 0x01 PUSART
// command/status, 0x02 baud rate (accepted, not modelled), 0x22 modem
// buffer, 0x42 flags/NVR read, 0x62 NVR write, 0x82 keyboard, 0xa2 DC012,
// 0xc2 DC011.
type Ports struct {
	PUSART   *PUSART
	Keyboard *Keyboard
	Receiver *Receiver
	DC011    *DC011
	DC012    *DC012
	NVR      *nvr.ER1400
	Lines    Lines

	opts *instance.Options

	// LBA7 is the current level of the LBA7 square wave, advanced by the
	// driver's cadence check and read back into port 0x42 bit 6.
	LBA7 bool

	// RxGap is the inter-byte delay, in CPU cycles, applied whenever a
	// receive-byte deadline is (re-)armed from a port access: the loopback
	// TX->RX echo and the re-arm after each port 0x00 read. A script's
	// `rxgap` command updates it alongside the driver's own copy.
	RxGap uint64

	// nvrLatch is the last byte written to port 0x62; its bit 5 is read
	// back as bit 6 of the port 0x22 modem-buffer status when loopback is
	// fitted.
	nvrLatch uint8

	// ArmRECI and ArmKBDI are set non-nil by the driver; Ports calls them
	// whenever a port access determines a deadline needs (re-)arming,
	// keeping the cadence wiring out of this package.
	ArmRECI func()
	ArmKBDI func()

	// OnRaster is called whenever DC012 command 9 fires, the signal a
	// video layer uses to run a rasterizer pass.
	OnRaster func()
}

// NewPorts returns a Ports with every device in its power-on state.
func NewPorts(opts *instance.Options) *Ports {
	return &Ports{
		PUSART:   NewPUSART(),
		Keyboard: NewKeyboard(),
		Receiver: NewReceiver(),
		DC011:    NewDC011(),
		DC012:    NewDC012(),
		NVR:      nvr.New(),
		opts:     opts,
		RxGap:    clocks.DefaultRxGap,
	}
}

// PortIn implements bus.PortBus.
func (p *Ports) PortIn(port uint8) uint8 {
	switch port {
	case 0x00:
		p.Lines.RECI = false
		value, more := p.Receiver.Read()
		if more && p.ArmRECI != nil {
			p.ArmRECI()
		}
		return value

	case 0x01:
		v := p.PUSART.Status()
		if p.opts.PUSARTFault {
			v |= 0x38
		}
		return v

	case 0x22:
		var v uint8
		if p.opts.Loopback {
			if !p.PUSART.RTS() {
				v |= 0x90
			}
			if !p.PUSART.DTR() {
				v |= 0x20
			}
			if p.nvrLatch&0x20 != 0 {
				v |= 0x40
			}
		}
		return v

	case 0x42:
		v := uint8(0x81)
		if p.LBA7 {
			v |= 0x40
		}
		if p.NVR.Read() {
			v |= 0x20
		}
		if p.opts.STPFitted {
			v |= 0x08
		}
		if p.opts.GPOMissing {
			v |= 0x04
		}
		if !p.opts.AVO {
			v |= 0x02
		}
		return v

	case 0x82:
		p.Lines.KBDI = false
		v := p.Keyboard.ScanIn()
		if p.Keyboard.Scanning() && p.ArmKBDI != nil {
			p.ArmKBDI()
		}
		return v

	default:
		return 0
	}
}

// PortOut implements bus.PortBus.
func (p *Ports) PortOut(port uint8, value uint8) {
	switch port {
	case 0x00:
		if p.opts.Loopback {
			p.Receiver.Feed([]uint8{value})
			if p.ArmRECI != nil {
				p.ArmRECI()
			}
		}

	case 0x01:
		p.PUSART.WriteCommand(value)

	case 0x02:
		// Baud rate select: accepted, not modelled.

	case 0x42:
		// Brightness control: accepted, not modelled.

	case 0x62:
		p.nvrLatch = value
		p.NVR.Write((value>>1)&7, value&1)

	case 0x82:
		armed := p.Keyboard.Scanning()
		if p.Keyboard.WriteStatus(value, armed) && p.ArmKBDI != nil {
			p.ArmKBDI()
		}

	case 0xa2:
		if p.DC012.Command(value) {
			p.Lines.VBI = false
			if p.OnRaster != nil {
				p.OnRaster()
			}
		}

	case 0xc2:
		p.DC011.WriteMode(value)
	}
}

// InterruptAck implements cpubus.Bus.
func (p *Ports) InterruptAck() uint8 {
	return p.Lines.Acknowledge()
}
