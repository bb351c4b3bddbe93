package peripherals

// DC011 is the video timing chip. The emulation only models the one
// port-visible bit that matters to the rasterizer and firmware: whether the
// display is in 80- or 132-column mode.
type DC011 struct {
	Columns132 bool
}

// NewDC011 returns a DC011 in 80-column mode.
func NewDC011() *DC011 {
	return &DC011{}
}

// WriteMode handles a write to port 0xc2: 0x00 selects 80 columns, 0x10
// selects 132; any other value is ignored.
func (d *DC011) WriteMode(value uint8) {
	switch value {
	case 0x00:
		d.Columns132 = false
	case 0x10:
		d.Columns132 = true
	}
}
