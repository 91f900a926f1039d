package decoder

import (
	"testing"

	"github.com/ardnew/ibmkbd/matrix"
)

func TestCS3MakeBreak(t *testing.T) {
	var d CS3
	var m matrix.Matrix

	d.Feed(&queueTransport{bytes: []byte{0x1C}}, &m)
	if !m.IsOnCode(0x1C) {
		t.Fatal("expected 0x1C set after make")
	}

	d.Feed(&queueTransport{bytes: []byte{0xF0}}, &m)
	d.Feed(&queueTransport{bytes: []byte{0x1C}}, &m)
	if m.IsOnCode(0x1C) {
		t.Fatal("expected 0x1C cleared after F0 1C")
	}
}

func TestCS3BreakPendingAcrossCalls(t *testing.T) {
	var d CS3
	var m matrix.Matrix
	m.Make(0x20)

	d.Feed(&queueTransport{bytes: []byte{0xF0}}, &m)
	if !d.breakPending {
		t.Fatal("expected breakPending set after F0")
	}
	d.Feed(&queueTransport{bytes: []byte{0x20}}, &m)
	if d.breakPending {
		t.Fatal("expected breakPending cleared after break byte consumed")
	}
	if m.IsOnCode(0x20) {
		t.Fatal("expected 0x20 cleared")
	}
}
