package clocks

// Cadence tracks the four absolute-cycle deadlines the simulation loop
// checks after every CPU step: next VBI, next receive byte, next keyboard
// scan byte, next LBA7 edge. A deadline of zero is disarmed.
//
// Check order is significant and matches the original firmware's host loop:
// VBI, then RECI, then KBDI, then LBA7. When more than one deadline expires
// on the same step this order is the documented, stable tie-break.
type Cadence struct {
	NextVBI  uint64
	NextRECI uint64
	NextKBDI uint64
	NextLBA7 uint64
}

// NewCadence returns a Cadence with the VBI and LBA7 deadlines armed from
// cycle zero; RECI and KBDI stay disarmed until the script or a peripheral
// schedules one.
func NewCadence() *Cadence {
	return &Cadence{
		NextVBI:  VBIPeriod,
		NextLBA7: LBA7Period,
	}
}

// Events reports which deadlines a cycle count has crossed. Fields are set
// in the same VBI/RECI/KBDI/LBA7 order the caller should apply them in.
type Events struct {
	VBI  bool
	RECI bool
	KBDI bool
	LBA7 bool
}

// Any reports whether at least one deadline fired.
func (e Events) Any() bool {
	return e.VBI || e.RECI || e.KBDI || e.LBA7
}

// Check compares cyc against each armed deadline. VBI and LBA7 advance by
// their fixed period when passed. RECI and KBDI are driven externally (a
// receive-byte-ready or keyboard-scan-ready time set by a peripheral): a
// passed one is disarmed, and a disarmed one is left untouched.
func (c *Cadence) Check(cyc uint64) Events {
	var ev Events

	if cyc > c.NextVBI {
		ev.VBI = true
		c.NextVBI += VBIPeriod
	}
	if c.NextRECI != 0 && cyc > c.NextRECI {
		ev.RECI = true
		c.NextRECI = 0
	}
	if c.NextKBDI != 0 && cyc > c.NextKBDI {
		ev.KBDI = true
		c.NextKBDI = 0
	}
	if cyc > c.NextLBA7 {
		ev.LBA7 = true
		c.NextLBA7 += LBA7Period
	}

	return ev
}

// ArmRECI schedules the next receive-byte-ready deadline.
func (c *Cadence) ArmRECI(cyc uint64) {
	c.NextRECI = cyc
}

// ArmKBDI schedules the next keyboard-scan-ready deadline.
func (c *Cadence) ArmKBDI(cyc uint64) {
	c.NextKBDI = cyc
}
