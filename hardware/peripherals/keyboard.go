package peripherals

// Keyboard models the matrix scanner read through port 0x82: a feed of scan
// codes primed by a script's `key` command, walked two full passes per the
// firmware's double-scan convention, plus the LED-mirroring status byte the
// same port accepts on write.
type Keyboard struct {
	feed  []uint8
	index int
	times int

	// pause counts down scan reads that should return the idle code before
	// the primed feed starts, modelling a script's initial key delay.
	pause int

	// Status mirrors the last byte written to port 0x82: bits 5:0 drive the
	// LED state (ONLINE/LOCAL/KBDLOCKED/L1-L4).
	Status uint8

	// NeedCommand is set once a primed feed has been scanned twice and
	// exhausted; the driver clears it after pulling the next script
	// command.
	NeedCommand bool
}

// idleScan is the byte returned when no key is down: a scan that has
// reached the end of the matrix with nothing pressed.
const idleScan uint8 = 0x7f

// NewKeyboard returns an idle keyboard.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Feed primes a new scan-code sequence. pause is the number of scan reads
// to answer idle before the feed itself is presented, modelling a script's
// `keygap`-derived lead-in.
func (k *Keyboard) Feed(codes []uint8, pause int) {
	k.feed = codes
	k.index = 0
	k.times = 0
	k.pause = pause
}

// ScanIn implements the port 0x82 read and returns the next scan byte. It
// does not touch the keyboard interrupt line; the caller clears that on the
// shared line state.
func (k *Keyboard) ScanIn() uint8 {
	if k.pause > 0 {
		k.pause--
		return idleScan
	}
	if len(k.feed) == 0 {
		return idleScan
	}
	if k.index < len(k.feed) {
		v := k.feed[k.index]
		k.index++
		return v
	}

	k.times++
	if k.times < 2 {
		k.index = 0
	} else {
		k.feed = nil
		k.NeedCommand = true
	}
	return idleScan
}

// Scanning reports whether a read from port 0x82 should arm the next KBDI
// deadline: true whenever the feed has more codes left to present or an
// idle pause is still counting down.
func (k *Keyboard) Scanning() bool {
	return k.pause > 0 || k.index < len(k.feed)
}

// WriteStatus handles the port 0x82 write: latches the LED/scan-arm byte.
// It returns true when the "scan" bit (0x40) is set and no scan is
// currently pending, the condition under which the caller should arm the
// next KBDI deadline.
func (k *Keyboard) WriteStatus(value uint8, kbdiArmed bool) (armKBDI bool) {
	k.Status = value
	return !kbdiArmed && value&0x40 != 0
}
