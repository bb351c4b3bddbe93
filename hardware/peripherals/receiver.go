package peripherals

// Receiver models the PUSART's receive path read through port 0x00: a feed
// of bytes primed either by a script's `serial` command or, when loopback
// is fitted, by the terminal's own transmitted byte. NeedCommand mirrors
// Keyboard's: it is set once the feed drains outside of a feeding pause, so
// the driver knows to pull the script's next command.
type Receiver struct {
	feed  []uint8
	index int

	// FeedingPause suppresses NeedCommand: set while a script pause is
	// covering the expected duration of a loopback exchange, so the driver
	// does not prematurely advance past it.
	FeedingPause bool

	NeedCommand bool
}

// NewReceiver returns an empty receiver.
func NewReceiver() *Receiver {
	return &Receiver{}
}

// Feed primes a new byte sequence, replacing whatever remained of the last
// one.
func (r *Receiver) Feed(bytes []uint8) {
	r.feed = bytes
	r.index = 0
}

// Pending reports whether a byte is ready for the next port 0x00 read.
func (r *Receiver) Pending() bool {
	return r.index < len(r.feed)
}

// Read implements the port 0x00 read: returns the next fed byte (0 if none
// is pending) and reports whether another byte remains after it, the
// condition under which the caller should re-arm the RECI deadline. If the
// feed was already empty, neither NeedCommand nor anything else changes.
func (r *Receiver) Read() (value uint8, more bool) {
	if r.index >= len(r.feed) {
		return 0, false
	}
	value = r.feed[r.index]
	r.index++
	if r.index < len(r.feed) {
		return value, true
	}
	r.NeedCommand = !r.FeedingPause
	return value, false
}
