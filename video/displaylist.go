package video

import "github.com/retrovt/vt100sim/hardware/memory/bus"

// LineAttribute is the top nibble of the word following a display line's
// terminator: whether the line scrolls with its region and its double
// height/width size.
type LineAttribute uint8

// LineSize enumerates the four line-size encodings packed into bits 2:1 of
// a LineAttribute.
type LineSize int

const (
	SizeBottom LineSize = iota
	SizeTop
	sizeReserved
	SizeSingle
)

// Scrolls reports whether this line belongs to a scrolling region.
func (a LineAttribute) Scrolls() bool {
	return a&0x08 != 0
}

// Size decodes the double-height/width encoding.
func (a LineAttribute) Size() LineSize {
	return LineSize((a >> 1) & 3)
}

// DoubleWidth reports whether every glyph on this line occupies two dot
// columns - true for every size except single.
func (a LineAttribute) DoubleWidth() bool {
	return a.Size() != SizeSingle
}

// GlyphAttribute is the attribute byte stored alongside a character code at
// address+0x1000: blink, underscore and bold, each active-low.
type GlyphAttribute uint8

func (a GlyphAttribute) Blink() bool      { return a&0x01 == 0 }
func (a GlyphAttribute) Underscore() bool { return a&0x02 == 0 }
func (a GlyphAttribute) Bold() bool       { return a&0x04 == 0 }

// baseAttr reports the bit 7 "base attribute" flag packed into the
// character code byte itself, distinct from the separate attribute byte.
func baseAttr(code uint8) bool {
	return code&0x80 != 0
}

// DisplayListNode is one line entry of the firmware's display list,
// exposed as a real linked structure (rather than the raw bytes the
// rasterizer walks) so a diagnostic dump can render it as a graph.
type DisplayListNode struct {
	Addr   uint16
	Attr   LineAttribute
	Chars  int
	Next   *DisplayListNode
}

// WalkDisplayList reads the display list from 0x2000 over dmaBus and
// returns it as a singly linked chain of DisplayListNode, one per screen
// line, for the `dumpx` diagnostic command's memviz graph. It shares the
// terminator-scan logic Rasterizer.Raster uses but does not rasterize
// anything itself.
func WalkDisplayList(dmaBus bus.DMABus) *DisplayListNode {
	read := func(addr uint16) uint8 {
		v, _ := dmaBus.ReadDMA(addr)
		return v
	}
	readWord := func(addr uint16) uint16 {
		hi := read(addr)
		lo := read(addr + 1)
		return uint16(hi)<<8 | uint16(lo)
	}
	readHeader := func(afterTerminator uint16) (LineAttribute, uint16) {
		w := readWord(afterTerminator)
		return LineAttribute(w >> 12), 0x2000 | (w & 0xfff)
	}

	var head, tail *DisplayListNode
	addr := uint16(0x2000)
	for line := 0; line < screenLines; line++ {
		attr, lineAddr := readHeader(addr + 1)

		a := lineAddr
		nchars := 0
		for nchars < maxLineChars {
			if read(a) == lineTerminator {
				break
			}
			nchars++
			a++
			a = 0x2000 | (a & 0xfff)
		}

		node := &DisplayListNode{Addr: lineAddr, Attr: attr, Chars: nchars}
		if head == nil {
			head = node
		} else {
			tail.Next = node
		}
		tail = node

		addr = a
	}
	return head
}
