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

package symbols

import "slices"

// entry records one named address.
type entry struct {
	address uint16
	name    string
}

// table is a sorted-by-address symbol table supporting exact and
// nearest-preceding lookup. Addresses passed in are already mapped into the
// table's own coordinate space (the RAM equate table maps by subtracting
// 0x2000 before calling add/get).
type table struct {
	byAddr map[uint16]string
	index  []entry
}

func newTable() *table {
	return &table{byAddr: make(map[uint16]string)}
}

// add records a symbol at address, replacing any existing one there.
func (t *table) add(address uint16, name string) {
	if _, exists := t.byAddr[address]; !exists {
		t.index = append(t.index, entry{address: address, name: name})
		slices.SortFunc(t.index, func(a, b entry) int {
			return int(a.address) - int(b.address)
		})
	}
	t.byAddr[address] = name
}

// get returns the symbol at exactly address, if any.
func (t *table) get(address uint16) (string, bool) {
	s, ok := t.byAddr[address]
	return s, ok
}

// nearest returns the symbol at the closest address at or below address,
// provided it is within maxDistance bytes, along with the offset from that
// symbol's address.
func (t *table) nearest(address uint16, maxDistance uint16) (string, uint16, bool) {
	// index is sorted ascending; find the last entry whose address <= address.
	i, found := slices.BinarySearchFunc(t.index, address, func(e entry, addr uint16) int {
		return int(e.address) - int(addr)
	})
	if found {
		return t.byAddr[t.index[i].address], 0, true
	}
	if i == 0 {
		return "", 0, false
	}
	e := t.index[i-1]
	offset := address - e.address
	if offset > maxDistance {
		return "", 0, false
	}
	return t.byAddr[e.address], offset, true
}
