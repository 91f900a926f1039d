package decoder

import (
	"testing"

	"github.com/ardnew/ibmkbd/hal"
	"github.com/ardnew/ibmkbd/matrix"
)

// queueTransport is a test double that replays a fixed byte sequence one
// byte per Recv call, matching the spec's "inputs are byte sequences fed to
// the CS2 decoder" scenario framing.
type queueTransport struct {
	bytes []byte
	pos   int
}

func (q *queueTransport) Init() error  { return nil }
func (q *queueTransport) Reset() error { return nil }
func (q *queueTransport) Send(byte) (byte, bool) { return 0, true }
func (q *queueTransport) SetLED(hal.LEDMask) error { return nil }
func (q *queueTransport) Error() hal.ErrorFlag { return hal.ErrFlagNone }
func (q *queueTransport) ClearError()          {}

func (q *queueTransport) Recv() (byte, bool) {
	if q.pos >= len(q.bytes) {
		return 0, false
	}
	b := q.bytes[q.pos]
	q.pos++
	return b, true
}

type countingHost struct {
	cleared int
}

func (h *countingHost) KeyboardLEDs() hal.HostLEDMask { return 0 }
func (h *countingHost) ClearKeyboard()            { h.cleared++ }

// feedAll drives d with every byte currently queued in t.
func feedAll(d *CS2, t *queueTransport, m *matrix.Matrix, host hal.Host) (resetSeen bool) {
	for t.pos < len(t.bytes) {
		if d.Feed(t, m, host) {
			resetSeen = true
		}
	}
	return resetSeen
}

func TestCS2SimpleMakeBreak(t *testing.T) {
	var d CS2
	var m matrix.Matrix
	host := &countingHost{}

	// 1C -> matrix cell (3,4) set (row = 0x1C>>3 = 3, col = 0x1C&7 = 4).
	qt := &queueTransport{bytes: []byte{0x1C}}
	feedAll(&d, qt, &m, host)
	if !m.IsOn(3, 4) {
		t.Fatal("expected (3,4) set after 1C")
	}

	qt = &queueTransport{bytes: []byte{0xF0, 0x1C}}
	feedAll(&d, qt, &m, host)
	if m.IsOn(3, 4) {
		t.Fatal("expected (3,4) cleared after F0 1C")
	}
}

func TestCS2E0Prefixed(t *testing.T) {
	var d CS2
	var m matrix.Matrix
	host := &countingHost{}

	// E0 75 -> Up arrow folds to (0x75|0x80)>>3 = 0x1E, col 5.
	qt := &queueTransport{bytes: []byte{0xE0, 0x75}}
	feedAll(&d, qt, &m, host)
	if !m.IsOn(0x1E, 5) {
		t.Fatal("expected (0x1E,5) set after E0 75")
	}

	qt = &queueTransport{bytes: []byte{0xE0, 0xF0, 0x75}}
	feedAll(&d, qt, &m, host)
	if m.IsOn(0x1E, 5) {
		t.Fatal("expected (0x1E,5) cleared after E0 F0 75")
	}
}

func TestCS2ShadowShiftIgnored(t *testing.T) {
	var d CS2
	var m matrix.Matrix
	host := &countingHost{}

	qt := &queueTransport{bytes: []byte{0xE0, 0x12, 0xE0, 0x7C}}
	feedAll(&d, qt, &m, host)
	if m.KeyCount() != 1 || !m.IsOnCode(matrix.PrintScreen) {
		t.Fatalf("expected only PrintScreen set, got count=%d", m.KeyCount())
	}

	qt = &queueTransport{bytes: []byte{0xE0, 0xF0, 0x7C, 0xE0, 0xF0, 0x12}}
	feedAll(&d, qt, &m, host)
	if m.KeyCount() != 0 {
		t.Fatalf("expected matrix clear after break sequence, got count=%d", m.KeyCount())
	}
}

func TestCS2AltPrintScreen(t *testing.T) {
	var d CS2
	var m matrix.Matrix
	host := &countingHost{}

	qt := &queueTransport{bytes: []byte{0x84}}
	feedAll(&d, qt, &m, host)
	if !m.IsOnCode(matrix.PrintScreen) {
		t.Fatal("expected PrintScreen set after 84")
	}

	qt = &queueTransport{bytes: []byte{0xF0, 0x84}}
	feedAll(&d, qt, &m, host)
	if m.IsOnCode(matrix.PrintScreen) {
		t.Fatal("expected PrintScreen cleared after F0 84")
	}
}

func TestCS2PauseSequence(t *testing.T) {
	var d CS2
	var m matrix.Matrix
	host := &countingHost{}

	qt := &queueTransport{bytes: []byte{0xE1, 0x14, 0x77, 0xE1, 0xF0, 0x14, 0xF0, 0x77}}
	feedAll(&d, qt, &m, host)
	if !m.IsOnCode(matrix.Pause) {
		t.Fatal("expected Pause set after full pause sequence")
	}

	// Next decoder entry must pseudo-break Pause before consuming anything.
	qt = &queueTransport{bytes: []byte{}}
	d.Feed(qt, &m, host)
	if m.IsOnCode(matrix.Pause) {
		t.Fatal("expected Pause auto-cleared on next entry")
	}
}

func TestCS2ControlPause(t *testing.T) {
	var d CS2
	var m matrix.Matrix
	host := &countingHost{}

	qt := &queueTransport{bytes: []byte{0xE0, 0x7E, 0xE0, 0xF0, 0x7E}}
	feedAll(&d, qt, &m, host)
	if !m.IsOnCode(matrix.Pause) {
		t.Fatal("expected Pause set after control'd pause sequence")
	}
}

func TestCS2PauseFallback(t *testing.T) {
	var d CS2
	var m matrix.Matrix
	host := &countingHost{}

	// A byte that doesn't match the expected next byte of the Pause
	// sequence falls back to Init without emitting anything.
	qt := &queueTransport{bytes: []byte{0xE1, 0x99}}
	feedAll(&d, qt, &m, host)
	if m.KeyCount() != 0 {
		t.Fatalf("expected no matrix change on broken pause sequence, got count=%d", m.KeyCount())
	}
}

func TestCS2Overrun(t *testing.T) {
	var d CS2
	var m matrix.Matrix
	host := &countingHost{}

	m.Make(0x01)
	qt := &queueTransport{bytes: []byte{0x00}}
	feedAll(&d, qt, &m, host)

	if m.KeyCount() != 0 {
		t.Fatal("expected matrix cleared on overrun byte")
	}
	if host.cleared != 1 {
		t.Fatalf("expected host.ClearKeyboard called once, got %d", host.cleared)
	}
}

func TestCS2SelfTestRequestsReset(t *testing.T) {
	var d CS2
	var m matrix.Matrix
	host := &countingHost{}

	qt := &queueTransport{bytes: []byte{0xAA}}
	if !feedAll(&d, qt, &m, host) {
		t.Fatal("expected self-test-pass byte to request lifecycle reset")
	}

	qt = &queueTransport{bytes: []byte{0xFC}}
	if !feedAll(&d, qt, &m, host) {
		t.Fatal("expected self-test-fail byte to request lifecycle reset")
	}
}

func TestCS2CorruptByteClearsMatrix(t *testing.T) {
	var d CS2
	var m matrix.Matrix
	host := &countingHost{}

	m.Make(0x01)
	// 0x81 in Init state is >= 0x80 and not a recognized distinguished
	// byte: treated as corruption.
	qt := &queueTransport{bytes: []byte{0x81}}
	feedAll(&d, qt, &m, host)

	if m.KeyCount() != 0 {
		t.Fatal("expected matrix cleared on corrupt byte")
	}
}

func TestCS2NoByteAvailable(t *testing.T) {
	var d CS2
	var m matrix.Matrix
	host := &countingHost{}

	qt := &queueTransport{}
	if d.Feed(qt, &m, host) {
		t.Fatal("Feed with no byte available must not request reset")
	}
}
