package coverage

import "fmt"

// maxWatch is the hard cap on the number of simultaneously watched
// addresses. Attempts to add beyond it are dropped silently, matching the
// original instrumentation's fixed-size table.
const maxWatch = 1000

// Width selects whether a watch entry compares a single byte or a
// little-endian word.
type Width int

const (
	Byte Width = iota
	Word
)

// Resolver names an address, typically backed by a symbol or equate table.
// Watch reports fall back to a bare hex address when a Resolver is nil or
// returns ok == false.
type Resolver interface {
	Resolve(address uint16) (name string, ok bool)
}

type watchEntry struct {
	address uint16
	width   Width
	lastVal uint16
	hadVal  bool
}

// Watch is a capped table of (address, width) pairs checked every CPU step
// against a Reader, reporting any value that has changed since the previous
// check.
type Watch struct {
	entries []watchEntry
}

// Reader supplies the bytes a Watch compares; hardware/memory.Memory's Peek
// method satisfies it.
type Reader interface {
	Peek(address uint16) (uint8, error)
}

// NewWatch returns an empty watch table.
func NewWatch() *Watch {
	return &Watch{}
}

// Add registers an address to watch. If the table is already at maxWatch
// entries the request is dropped silently.
func (w *Watch) Add(address uint16, width Width) {
	if len(w.entries) >= maxWatch {
		return
	}
	w.entries = append(w.entries, watchEntry{address: address, width: width})
}

// Reset clears the watch table back to empty.
func (w *Watch) Reset() {
	w.entries = w.entries[:0]
}

// Change describes one watch entry whose value differs from the previous
// check.
type Change struct {
	Address uint16
	Width   Width
	Old     uint16
	New     uint16
}

// String renders a Change using res to name the watched address, falling
// back to a bare hex address when res is nil or has no name for it.
func (c Change) String(res Resolver) string {
	name := fmt.Sprintf("%04x", c.Address)
	if res != nil {
		if s, ok := res.Resolve(c.Address); ok {
			name = s
		}
	}
	if c.Width == Byte {
		return fmt.Sprintf("%-15s  %02x -> %02x", name, c.Old, c.New)
	}
	return fmt.Sprintf("%-15s  %04x -> %04x", name, c.Old, c.New)
}

// Check reads every watched address through r and returns the entries whose
// value changed (or that have never been read before). It updates each
// entry's stored value regardless of whether it changed.
func (w *Watch) Check(r Reader) ([]Change, error) {
	var changes []Change

	for i := range w.entries {
		e := &w.entries[i]

		lo, err := r.Peek(e.address)
		if err != nil {
			return nil, err
		}

		var newVal uint16
		if e.width == Byte {
			newVal = uint16(lo)
		} else {
			hi, err := r.Peek(e.address + 1)
			if err != nil {
				return nil, err
			}
			newVal = uint16(lo) | uint16(hi)<<8
		}

		if !e.hadVal || newVal != e.lastVal {
			changes = append(changes, Change{
				Address: e.address,
				Width:   e.width,
				Old:     e.lastVal,
				New:     newVal,
			})
		}
		e.lastVal = newVal
		e.hadVal = true
	}

	return changes, nil
}
