package decoder

import (
	"github.com/ardnew/ibmkbd/hal"
	"github.com/ardnew/ibmkbd/matrix"
)

// CS1 is a Scan Code Set 1 (XT) decoder. Unlike CS2, Set 1 carries no
// prefix bytes: every code directly addresses a matrix cell, and the high
// bit of the byte distinguishes make (clear) from break (set).
//
// This decoder is an enrichment beyond the reference firmware, which never
// implemented an XT decoder (the reference only ever exercised CS2
// hardware). It follows CS2's byte-at-a-time, no-allocation shape and the
// same Feed/Transport contract, so the lifecycle loop can dispatch to any
// family decoder uniformly.
type CS1 struct{}

// Feed consumes the next available byte from t and applies it to m. It
// never requests a lifecycle reset: Set 1 keyboards have no self-test
// byte distinguishable from a key code in-band.
func (d *CS1) Feed(t hal.Transport, m *matrix.Matrix) {
	b, ok := t.Recv()
	if !ok {
		return
	}
	if b&0x80 != 0 {
		m.Break(b &^ 0x80)
	} else {
		m.Make(b)
	}
}
