// Package bus defines the memory and port access patterns used across the
// emulation. The CPU, the video rasterizer and the debug/script layer each
// see memory through a different, narrower interface so that none of them
// needs to know how the others address the same backing array.
package bus

// CPUBus is the narrow memory-only half of the bus the CPU uses. It is
// embedded into cpubus.Bus alongside the port space and the interrupt
// acknowledge hook, and used on its own by anything that only needs plain
// memory access (the rasterizer's DMA path does not - see DMABus below).
//
// A Read or Write on an address nothing decodes should wrap
// cpubus.AddressError rather than invent a bespoke error. It is not fatal:
// the CPU returns it from Step and the driver loop logs it and carries on.
type CPUBus interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

// DMABus is the path the video rasterizer uses to walk the display list. It
// is read-only and tags coverage distinctly from CPU accesses (DMA, never
// EXEC/READ) per spec ss4.6/4.7.
type DMABus interface {
	ReadDMA(address uint16) (uint8, error)
}

// PortBus defines the 8080 IN/OUT port space. The CPU multiplexes all port
// accesses through a single implementation (see hardware/peripherals) rather
// than addressing each device directly.
type PortBus interface {
	PortIn(port uint8) uint8
	PortOut(port uint8, value uint8)
}

// DebugBus defines the meta-operations used by the script/driver layer:
// peek/poke bypass coverage tagging and any port side effects.
type DebugBus interface {
	Peek(address uint16) (uint8, error)
	Poke(address uint16, value uint8) error
}
