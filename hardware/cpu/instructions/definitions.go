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

// Package instructions holds the published per-opcode cost table for the
// 8080: mnemonic, instruction length and cycle count, the figures the CPU's
// cycle counter invariant is checked against.
package instructions

import "fmt"

// Category groups opcodes for reporting purposes only; it has no effect on
// execution.
type Category int

const (
	DataTransfer Category = iota
	Arithmetic
	Logical
	BranchControl
	StackIOMachine
)

// Definition is the published cost of one opcode. Cycles is the cost for an
// unconditional instruction, or for a conditional one that is not taken;
// BranchCycles is the cost when a conditional RET or CALL is taken. Every
// other instruction leaves BranchCycles at zero.
type Definition struct {
	OpCode       uint8
	Mnemonic     string
	Bytes        int
	Cycles       int
	BranchCycles int
	Effect       Category
	Undocumented bool
}

func (d Definition) String() string {
	return fmt.Sprintf("%02x %s +%dbytes (%d cycles) [effect=%d]", d.OpCode, d.Mnemonic, d.Bytes, d.Cycles, d.Effect)
}

// Cost returns the cycle count to charge for this definition given whether a
// conditional branch/call/return was taken.
func (d Definition) Cost(taken bool) int {
	if taken && d.BranchCycles != 0 {
		return d.BranchCycles
	}
	return d.Cycles
}

var regNames = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}

// rstVector returns the address RST n transfers control to.
func rstVector(n uint8) uint16 {
	return uint16(n) * 8
}

// definitions is built once at package init: the irregular low opcodes and
// the C0-FF block are listed explicitly; the regular MOV (40-7F) and ALU
// (80-BF) blocks, which differ from each other only in the two register
// operands they name, are generated from the 8x8 grid the 8080 encodes them
// in.
var definitions = buildDefinitions()

func buildDefinitions() map[uint8]Definition {
	d := make(map[uint8]Definition, 256)

	add := func(op uint8, mnemonic string, bytes, cycles int, effect Category) {
		d[op] = Definition{OpCode: op, Mnemonic: mnemonic, Bytes: bytes, Cycles: cycles, Effect: effect}
	}
	addBranch := func(op uint8, mnemonic string, bytes, cycles, taken int, effect Category) {
		d[op] = Definition{OpCode: op, Mnemonic: mnemonic, Bytes: bytes, Cycles: cycles, BranchCycles: taken, Effect: effect}
	}
	addUndoc := func(op uint8, like uint8) {
		base := d[like]
		base.OpCode = op
		base.Undocumented = true
		d[op] = base
	}

	add(0x00, "NOP", 1, 4, DataTransfer)
	add(0x01, "LXI B", 3, 10, DataTransfer)
	add(0x02, "STAX B", 1, 7, DataTransfer)
	add(0x03, "INX B", 1, 5, Arithmetic)
	add(0x04, "INR B", 1, 5, Arithmetic)
	add(0x05, "DCR B", 1, 5, Arithmetic)
	add(0x06, "MVI B", 2, 7, DataTransfer)
	add(0x07, "RLC", 1, 4, Logical)
	add(0x09, "DAD B", 1, 10, Arithmetic)
	add(0x0A, "LDAX B", 1, 7, DataTransfer)
	add(0x0B, "DCX B", 1, 5, Arithmetic)
	add(0x0C, "INR C", 1, 5, Arithmetic)
	add(0x0D, "DCR C", 1, 5, Arithmetic)
	add(0x0E, "MVI C", 2, 7, DataTransfer)
	add(0x0F, "RRC", 1, 4, Logical)

	add(0x11, "LXI D", 3, 10, DataTransfer)
	add(0x12, "STAX D", 1, 7, DataTransfer)
	add(0x13, "INX D", 1, 5, Arithmetic)
	add(0x14, "INR D", 1, 5, Arithmetic)
	add(0x15, "DCR D", 1, 5, Arithmetic)
	add(0x16, "MVI D", 2, 7, DataTransfer)
	add(0x17, "RAL", 1, 4, Logical)
	add(0x19, "DAD D", 1, 10, Arithmetic)
	add(0x1A, "LDAX D", 1, 7, DataTransfer)
	add(0x1B, "DCX D", 1, 5, Arithmetic)
	add(0x1C, "INR E", 1, 5, Arithmetic)
	add(0x1D, "DCR E", 1, 5, Arithmetic)
	add(0x1E, "MVI E", 2, 7, DataTransfer)
	add(0x1F, "RAR", 1, 4, Logical)

	add(0x21, "LXI H", 3, 10, DataTransfer)
	add(0x22, "SHLD", 3, 16, DataTransfer)
	add(0x23, "INX H", 1, 5, Arithmetic)
	add(0x24, "INR H", 1, 5, Arithmetic)
	add(0x25, "DCR H", 1, 5, Arithmetic)
	add(0x26, "MVI H", 2, 7, DataTransfer)
	add(0x27, "DAA", 1, 4, Arithmetic)
	add(0x29, "DAD H", 1, 10, Arithmetic)
	add(0x2A, "LHLD", 3, 16, DataTransfer)
	add(0x2B, "DCX H", 1, 5, Arithmetic)
	add(0x2C, "INR L", 1, 5, Arithmetic)
	add(0x2D, "DCR L", 1, 5, Arithmetic)
	add(0x2E, "MVI L", 2, 7, DataTransfer)
	add(0x2F, "CMA", 1, 4, Logical)

	add(0x31, "LXI SP", 3, 10, DataTransfer)
	add(0x32, "STA", 3, 13, DataTransfer)
	add(0x33, "INX SP", 1, 5, Arithmetic)
	add(0x34, "INR M", 1, 10, Arithmetic)
	add(0x35, "DCR M", 1, 10, Arithmetic)
	add(0x36, "MVI M", 2, 10, DataTransfer)
	add(0x37, "STC", 1, 4, Logical)
	add(0x39, "DAD SP", 1, 10, Arithmetic)
	add(0x3A, "LDA", 3, 13, DataTransfer)
	add(0x3B, "DCX SP", 1, 5, Arithmetic)
	add(0x3C, "INR A", 1, 5, Arithmetic)
	add(0x3D, "DCR A", 1, 5, Arithmetic)
	add(0x3E, "MVI A", 2, 7, DataTransfer)
	add(0x3F, "CMC", 1, 4, Logical)

	// Undocumented duplicate NOPs.
	for _, op := range []uint8{0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38} {
		addUndoc(op, 0x00)
	}

	// MOV r,r' (40-7F) and HLT (76).
	for op := 0x40; op <= 0x7F; op++ {
		if op == 0x76 {
			add(0x76, "HLT", 1, 7, StackIOMachine)
			continue
		}
		dst := (op >> 3) & 0x07
		src := op & 0x07
		cycles := 5
		if dst == 6 || src == 6 {
			cycles = 7
		}
		add(uint8(op), fmt.Sprintf("MOV %s,%s", regNames[dst], regNames[src]), 1, cycles, DataTransfer)
	}

	// ALU r (80-BF): ADD ADC SUB SBB ANA XRA ORA CMP.
	aluNames := [8]string{"ADD", "ADC", "SUB", "SBB", "ANA", "XRA", "ORA", "CMP"}
	for op := 0x80; op <= 0xBF; op++ {
		group := (op >> 3) & 0x07
		src := op & 0x07
		cycles := 4
		if src == 6 {
			cycles = 7
		}
		add(uint8(op), fmt.Sprintf("%s %s", aluNames[group], regNames[src]), 1, cycles, Arithmetic)
	}

	addBranch(0xC0, "RNZ", 1, 5, 11, BranchControl)
	add(0xC1, "POP B", 1, 10, StackIOMachine)
	add(0xC2, "JNZ", 3, 10, BranchControl)
	add(0xC3, "JMP", 3, 10, BranchControl)
	addBranch(0xC4, "CNZ", 3, 11, 17, BranchControl)
	add(0xC5, "PUSH B", 1, 11, StackIOMachine)
	add(0xC6, "ADI", 2, 7, Arithmetic)
	add(0xC7, "RST 0", 1, 11, BranchControl)
	addBranch(0xC8, "RZ", 1, 5, 11, BranchControl)
	add(0xC9, "RET", 1, 10, BranchControl)
	add(0xCA, "JZ", 3, 10, BranchControl)
	addBranch(0xCC, "CZ", 3, 11, 17, BranchControl)
	add(0xCD, "CALL", 3, 17, BranchControl)
	add(0xCE, "ACI", 2, 7, Arithmetic)
	add(0xCF, "RST 1", 1, 11, BranchControl)

	addBranch(0xD0, "RNC", 1, 5, 11, BranchControl)
	add(0xD1, "POP D", 1, 10, StackIOMachine)
	add(0xD2, "JNC", 3, 10, BranchControl)
	add(0xD3, "OUT", 2, 10, StackIOMachine)
	addBranch(0xD4, "CNC", 3, 11, 17, BranchControl)
	add(0xD5, "PUSH D", 1, 11, StackIOMachine)
	add(0xD6, "SUI", 2, 7, Arithmetic)
	add(0xD7, "RST 2", 1, 11, BranchControl)
	addBranch(0xD8, "RC", 1, 5, 11, BranchControl)
	add(0xDA, "JC", 3, 10, BranchControl)
	add(0xDB, "IN", 2, 10, StackIOMachine)
	addBranch(0xDC, "CC", 3, 11, 17, BranchControl)
	add(0xDE, "SBI", 2, 7, Arithmetic)
	add(0xDF, "RST 3", 1, 11, BranchControl)

	addBranch(0xE0, "RPO", 1, 5, 11, BranchControl)
	add(0xE1, "POP H", 1, 10, StackIOMachine)
	add(0xE2, "JPO", 3, 10, BranchControl)
	add(0xE3, "XTHL", 1, 18, StackIOMachine)
	addBranch(0xE4, "CPO", 3, 11, 17, BranchControl)
	add(0xE5, "PUSH H", 1, 11, StackIOMachine)
	add(0xE6, "ANI", 2, 7, Logical)
	add(0xE7, "RST 4", 1, 11, BranchControl)
	addBranch(0xE8, "RPE", 1, 5, 11, BranchControl)
	add(0xE9, "PCHL", 1, 5, BranchControl)
	add(0xEA, "JPE", 3, 10, BranchControl)
	add(0xEB, "XCHG", 1, 4, DataTransfer)
	addBranch(0xEC, "CPE", 3, 11, 17, BranchControl)
	add(0xEE, "XRI", 2, 7, Logical)
	add(0xEF, "RST 5", 1, 11, BranchControl)

	addBranch(0xF0, "RP", 1, 5, 11, BranchControl)
	add(0xF1, "POP PSW", 1, 10, StackIOMachine)
	add(0xF2, "JP", 3, 10, BranchControl)
	add(0xF3, "DI", 1, 4, StackIOMachine)
	addBranch(0xF4, "CP", 3, 11, 17, BranchControl)
	add(0xF5, "PUSH PSW", 1, 11, StackIOMachine)
	add(0xF6, "ORI", 2, 7, Logical)
	add(0xF7, "RST 6", 1, 11, BranchControl)
	addBranch(0xF8, "RM", 1, 5, 11, BranchControl)
	add(0xF9, "SPHL", 1, 5, DataTransfer)
	add(0xFA, "JM", 3, 10, BranchControl)
	add(0xFB, "EI", 1, 4, StackIOMachine)
	addBranch(0xFC, "CM", 3, 11, 17, BranchControl)
	add(0xFE, "CPI", 2, 7, Arithmetic)
	add(0xFF, "RST 7", 1, 11, BranchControl)

	// Undocumented duplicate JMP/CALL/RET.
	addUndoc(0xCB, 0xC3)
	addUndoc(0xD9, 0xC9)
	addUndoc(0xDD, 0xCD)
	addUndoc(0xED, 0xCD)
	addUndoc(0xFD, 0xCD)

	return d
}

// Lookup returns the definition for opcode. Every one of the 256 possible
// byte values has an entry - the 8080 leaves no opcode undefined, only some
// documented as duplicates of another.
func Lookup(opcode uint8) Definition {
	return definitions[opcode]
}

// RSTVector is exported for the CPU's interrupt-acknowledge path, which
// synthesises an RST opcode rather than reading one from memory.
func RSTVector(n uint8) uint16 {
	return rstVector(n)
}
