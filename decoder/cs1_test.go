package decoder

import (
	"testing"

	"github.com/ardnew/ibmkbd/matrix"
)

func TestCS1MakeBreak(t *testing.T) {
	var d CS1
	var m matrix.Matrix

	d.Feed(&queueTransport{bytes: []byte{0x1E}}, &m)
	if !m.IsOnCode(0x1E) {
		t.Fatal("expected 0x1E set after make")
	}

	d.Feed(&queueTransport{bytes: []byte{0x1E | 0x80}}, &m)
	if m.IsOnCode(0x1E) {
		t.Fatal("expected 0x1E cleared after break")
	}
}

func TestCS1NoByteAvailable(t *testing.T) {
	var d CS1
	var m matrix.Matrix

	d.Feed(&queueTransport{}, &m)
	if m.KeyCount() != 0 {
		t.Fatal("expected no matrix change with no byte available")
	}
}
