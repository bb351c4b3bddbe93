package peripherals

// DC012 is the video control chip: it holds the scroll latch (the DMA
// rasterizer's scan-count-in-use modulus), the reverse-field and
// basic-attribute flags, and the blink flip-flop, and is the chip whose
// command 9 clears the vertical blank interrupt and triggers a raster pass.
type DC012 struct {
	scrollLatchLow uint8
	ScrollLatch    uint8

	BlinkFlipFlop bool

	ReverseField bool

	// BasicAttributeReverse selects whether the two basic-attribute
	// commands (12/13) put unattributed characters in underline or reverse
	// video.
	BasicAttributeReverse bool
}

// NewDC012 returns a DC012 in its power-on state.
func NewDC012() *DC012 {
	return &DC012{}
}

// Command handles a write to port 0xa2. Only the low 4 bits are decoded.
// TriggerRaster is true for exactly command 9, which clears the vertical
// blank interrupt and asks the caller to run a rasterizer pass.
func (d *DC012) Command(value uint8) (triggerRaster bool) {
	switch value & 0x0f {
	case 0, 1, 2, 3:
		// Low half of the scroll latch is always loaded first (TM
		// s4.6.3.1), so no transition is visible until the high half
		// arrives.
		d.scrollLatchLow = value & 0x03
	case 4, 5, 6, 7:
		d.ScrollLatch = d.scrollLatchLow | (value&0x03)<<2
	case 8:
		d.BlinkFlipFlop = !d.BlinkFlipFlop
	case 9:
		return true
	case 10:
		d.ReverseField = true
	case 11:
		d.ReverseField = false
	case 12:
		d.BasicAttributeReverse = false
		d.BlinkFlipFlop = false
	case 13:
		d.BasicAttributeReverse = true
		d.BlinkFlipFlop = false
	default:
		d.BlinkFlipFlop = false
	}
	return false
}
