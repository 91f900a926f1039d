package decoder

import (
	"github.com/ardnew/ibmkbd/hal"
	"github.com/ardnew/ibmkbd/matrix"
)

// CS3 is a Scan Code Set 3 (Terminal) decoder. Set 3 uses a single break
// prefix (F0) and no E0-style extended codes, since the 122-key terminal
// keyboard layout needs no shadow-shift or alt-encoded keys: every key has
// exactly one scan code.
//
// Like CS1, this decoder is an enrichment beyond the reference firmware,
// which stubs Set 3 entirely.
type CS3 struct {
	breakPending bool
}

// Feed consumes the next available byte from t and applies it to m.
func (d *CS3) Feed(t hal.Transport, m *matrix.Matrix) {
	b, ok := t.Recv()
	if !ok {
		return
	}
	if b == 0xF0 {
		d.breakPending = true
		return
	}
	if d.breakPending {
		m.Break(b)
		d.breakPending = false
		return
	}
	m.Make(b)
}
