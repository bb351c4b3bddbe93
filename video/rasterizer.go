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

package video

import "github.com/retrovt/vt100sim/hardware/memory/bus"

// screenLines is the number of character rows the display list always
// describes, matching the VT100's fixed 24-line page.
const screenLines = 24

// maxLineChars is the safety limit on characters read before giving up on
// finding a line terminator.
const maxLineChars = 255

const lineTerminator = 0x7f

// attributeBase is added to a character's column address to find its
// attribute byte.
const attributeBase = 0x1000

// Intensity is the brightness a rasterized dot is emitted at.
type Intensity int

const (
	Off Intensity = iota
	Dim           // grey50: non-bold blinking characters during blink-phase
	Normal        // grey75: ordinary characters, and bold-blinking during blink-phase
	Bright        // white: bold, non-blinking (or not in blink-phase) characters
)

// Surface is the hook an outer presenter implements to receive rasterized
// dots. Raster calls SetDot once per lit pixel of a single frame; a
// presenter is free to batch these into a texture or window however it
// likes. Raster never touches a window itself.
type Surface interface {
	SetDot(x, y int, intensity Intensity)
}

// ColumnMode reports the chip configuration driving dot width and count; it
// is the subset of DC011/DC012 state the rasterizer reads.
type ColumnMode struct {
	Columns132            bool
	ReverseField          bool
	BasicAttributeReverse bool
	BlinkFlipFlop         bool
	ScrollLatch           uint8
}

// Rasterizer walks the firmware's display list over the DMA bus and emits
// one frame's worth of dots to a Surface. It holds no state across calls to
// Raster other than the character ROM and bus it was built with.
type Rasterizer struct {
	bus   bus.DMABus
	chars *CharROM
}

// NewRasterizer returns a Rasterizer reading character data from chars and
// memory over dmaBus.
func NewRasterizer(dmaBus bus.DMABus, chars *CharROM) *Rasterizer {
	return &Rasterizer{bus: dmaBus, chars: chars}
}

func (r *Rasterizer) readByte(addr uint16) uint8 {
	v, _ := r.bus.ReadDMA(addr)
	return v
}

// readWord performs the display list's big-endian two-byte read.
func (r *Rasterizer) readWord(addr uint16) uint16 {
	hi := r.readByte(addr)
	lo := r.readByte(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

type lineHeader struct {
	attr LineAttribute
	addr uint16
}

func (r *Rasterizer) readLineHeader(afterTerminator uint16) lineHeader {
	w := r.readWord(afterTerminator)
	return lineHeader{
		attr: LineAttribute(w >> 12),
		addr: 0x2000 | (w & 0xfff),
	}
}

// Raster walks the display list from 0x2000 and emits one frame to surface.
// It never returns an error: a missing terminator within maxLineChars
// degrades to treating the rest of the buffer as the line and moving on,
// per spec.
func (r *Rasterizer) Raster(surface Surface, mode ColumnMode) {
	dotsPerChar := 10
	charsPerLine := 80
	if mode.Columns132 {
		dotsPerChar = 9
		charsPerLine = 132
	}

	addr := uint16(0x2000)
	next := r.readLineHeader(addr + 1)

	var lineAttr LineAttribute
	normalScanCount := 0
	scanCountInUse := 0

	var codes, attrs [maxLineChars]uint8
	nchars := 0

	y := 0
	for row := 0; row < screenLines*10; row++ {
		if scanCountInUse == 0 || (!next.attr.Scrolls() && normalScanCount == 0) {
			switch {
			case !lineAttr.Scrolls() && next.attr.Scrolls():
				scanCountInUse = int(mode.ScrollLatch)
			case lineAttr.Scrolls() && !next.attr.Scrolls():
				scanCountInUse = normalScanCount
			}
			lineAttr = next.attr

			a := next.addr
			nchars = 0
			for nchars < maxLineChars {
				ch := r.readByte(a)
				if ch == lineTerminator {
					break
				}
				codes[nchars] = ch
				attrs[nchars] = r.readByte(a + attributeBase)
				nchars++
				a++
				a = 0x2000 | (a & 0xfff)
			}
			next = r.readLineHeader(a + 1)
		}

		r.rasterRow(surface, y, codes[:nchars], attrs[:nchars], lineAttr, scanCountInUse, dotsPerChar, charsPerLine, mode)

		y++
		normalScanCount = (normalScanCount + 1) % 10
		scanCountInUse = (scanCountInUse + 1) % 10
	}
}

func (r *Rasterizer) rasterRow(surface Surface, y int, codes, attrs []uint8, lineAttr LineAttribute, scan, dotsPerChar, charsPerLine int, mode ColumnMode) {
	doubleWidth := lineAttr.DoubleWidth()

	glyphScan := scan
	switch lineAttr.Size() {
	case SizeTop:
		glyphScan = scan / 2
	case SizeBottom:
		glyphScan = scan/2 + 5
	}

	lastDot := 0
	x := 0
	for col := 0; col < charsPerLine; col++ {
		var code, attrByte uint8
		if col < len(codes) {
			code = codes[col]
			attrByte = attrs[col]
		}
		glyphAttr := GlyphAttribute(attrByte)
		base := baseAttr(code)

		dots := glyphRow(r.chars.Scan(code, glyphScan), mode.Columns132)
		if glyphScan == 8 && (glyphAttr.Underscore() || (!mode.BasicAttributeReverse && base)) {
			dots = 0x3fe
		}

		intensity := glyphIntensity(glyphAttr, mode.BlinkFlipFlop)

		reverse := mode.ReverseField != (mode.BasicAttributeReverse && base)
		if mode.BasicAttributeReverse && base && glyphAttr.Blink() && mode.BlinkFlipFlop {
			reverse = !reverse
		}

		for i := dotsPerChar - 1; i >= 0; i-- {
			chDot := boolToInt(dots&(1<<uint(i)) != 0)
			dot := chDot | lastDot
			lastDot = chDot
			lit := (dot != 0) != reverse
			reps := 1
			if doubleWidth {
				reps = 2
			}
			for n := 0; n < reps; n++ {
				if lit {
					surface.SetDot(x, y, intensity)
				}
				x++
			}
		}
	}
}

// glyphRow duplicates the character ROM's low bit outward into a 9- or
// 10-bit glyph row per spec.md s4.6 step 5.
func glyphRow(raw uint8, columns132 bool) uint16 {
	dots := uint16(raw)
	dots = dots<<1 | (dots & 1)
	if !columns132 {
		dots = dots<<1 | (dots & 1)
	}
	return dots
}

func glyphIntensity(attr GlyphAttribute, blinkFF bool) Intensity {
	switch {
	case !attr.Bold() && attr.Blink() && blinkFF:
		return Dim
	case !attr.Bold() || (attr.Bold() && attr.Blink() && blinkFF):
		return Normal
	default:
		return Bright
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
