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

// Package symbols reads the firmware's symbol and equate tables and
// resolves addresses back to names for coverage reports and watch
// notifications.
//
// Symbols are for the ROM, 0x0000-0x1fff; equates are names for the RAM,
// 0x2000-0x2fff, stored offset by equateBase so the underlying table can be
// the same sorted structure as the ROM one.
package symbols

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// equateBase is the address equtable[0] names.
const equateBase = 0x2000

// nearestSymbolWindow is how many bytes past the last known symbol a
// coverage report still attributes to it.
const nearestSymbolWindow = 32

// Tables holds the ROM symbol table and the RAM equate table.
type Tables struct {
	rom *table
	ram *table
}

// NewTables returns an empty symbol/equate pair.
func NewTables() *Tables {
	return &Tables{rom: newTable(), ram: newTable()}
}

// AddSymbol records a ROM symbol at address.
func (t *Tables) AddSymbol(address uint16, name string) {
	t.rom.add(address, name)
}

// AddEquate records a RAM equate at address (>= equateBase).
func (t *Tables) AddEquate(address uint16, name string) {
	t.ram.add(address-equateBase, name)
}

// Resolve implements coverage.Resolver: it returns an exact symbol or
// equate name for address, with no nearest-match fallback.
func (t *Tables) Resolve(address uint16) (string, bool) {
	if address < equateBase {
		return t.rom.get(address)
	}
	return t.ram.get(address - equateBase)
}

// Nearest finds the closest named address at or before addr, within
// nearestSymbolWindow bytes, the way a coverage report attributes an
// unnamed byte to the last symbol before it. The returned string already
// includes a "+offset" suffix when the match is inexact.
func (t *Tables) Nearest(address uint16) (string, bool) {
	if address < equateBase {
		name, offset, ok := t.rom.nearest(address, nearestSymbolWindow)
		if !ok {
			return "", false
		}
		return withOffset(name, offset), true
	}
	name, offset, ok := t.ram.nearest(address-equateBase, nearestSymbolWindow)
	if !ok {
		return "", false
	}
	return withOffset(name, offset), true
}

func withOffset(name string, offset uint16) string {
	if offset == 0 {
		return name
	}
	return fmt.Sprintf("%s+%d", name, offset)
}

// ReadSymbolFile parses the "<hex> <name>" line format used for both the ROM
// symbol table and the RAM equate table. Blank lines and lines starting
// with '#' are ignored. add is called once per parsed line - pass
// t.AddSymbol or t.AddEquate depending on which table the file names.
func ReadSymbolFile(r io.Reader, add func(address uint16, name string)) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return fmt.Errorf("symbols: line %d: expected \"<hex> <name>\", got %q", lineNum, line)
		}

		addr, err := strconv.ParseUint(fields[0], 16, 16)
		if err != nil {
			return fmt.Errorf("symbols: line %d: bad address %q: %w", lineNum, fields[0], err)
		}

		add(uint16(addr), strings.Join(fields[1:], " "))
	}
	return scanner.Err()
}
