// Package hardware is the base package for the VT100 emulation. It and its
// sub-packages contain everything required for a headless emulation.
//
// The Machine type (see machine.go in this package) is the root of the
// emulation and holds references to all of the terminal's sub-systems: the
// 8080 CPU, the address space, the peripheral chips, the ER1400 NVR and the
// cadence generator. From here, the emulation is stepped one CPU instruction
// at a time by the script/driver loop.
package hardware

