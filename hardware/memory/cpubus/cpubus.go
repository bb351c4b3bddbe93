// Package cpubus defines the bus the CPU sees: memory plus the port space
// plus the single interrupt-acknowledge hook. It composes bus.CPUBus rather
// than redeclaring it so that a Memory implementation satisfies both.
package cpubus

import (
	"errors"

	"github.com/retrovt/vt100sim/hardware/memory/bus"
)

// AddressError is wrapped and returned by a Bus implementation's Read or
// Write when the address does not correspond to anything the real hardware
// decodes. It is not fatal to the run: the CPU returns it from Step, and the
// driver loop logs every Step error and continues.
var AddressError = errors.New("address error")

// Bus is the capability interface the CPU is built against. It is the
// composition of the five hooks spec.md ss9 calls out: read byte, write
// byte, port in, port out and interrupt acknowledge.
type Bus interface {
	bus.CPUBus
	bus.PortBus

	// InterruptAck returns the RST opcode synthesised for the currently
	// asserted interrupt line(s), or 0 if none is asserted.
	InterruptAck() uint8
}
