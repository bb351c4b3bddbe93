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

// Package video implements the DMA-driven display-list rasterizer: the
// walk from 0x2000 that turns firmware-authored character and attribute
// rows into a scan-line model of the CRT image. It produces data only; it
// never opens a window, leaving that to whatever implements Surface.
package video

import "fmt"

// glyphRows is the number of scan rows a character cell occupies.
const glyphRows = 10

// CharROM is the character generator ROM: 128 glyph codes, 10 one-byte scan
// rows each, low 5 bits of each byte significant (the VT100's character
// cells are 5 dots wide before duplication/stretching).
type CharROM struct {
	rows [128 * glyphRows]uint8
}

// NewCharROM returns a CharROM loaded from its raw image, one byte per
// (glyph, scan) pair in glyph-major order - 1280 bytes.
func NewCharROM(data []byte) (*CharROM, error) {
	if len(data) != len(CharROM{}.rows) {
		return nil, fmt.Errorf("video: char ROM image is %d bytes, want %d", len(data), len(CharROM{}.rows))
	}
	rom := &CharROM{}
	copy(rom.rows[:], data)
	return rom, nil
}

// Scan returns the raw dot row for glyph code (low 7 bits significant) and
// scan row (0-9).
func (r *CharROM) Scan(code uint8, scan int) uint8 {
	return r.rows[int(code&0x7f)*glyphRows+scan]
}
