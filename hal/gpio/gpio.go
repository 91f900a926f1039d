//go:build tinygo

// Package gpio implements hal.Transport by bit-banging the PS/2 clock and
// data lines directly on TinyGo-supported microcontrollers. The keyboard
// drives the clock line; the host (this converter) only drives it low to
// inhibit communication, matching the PS/2 electrical spec.
package gpio

import (
	"machine"
	"runtime/interrupt"

	"github.com/ardnew/ibmkbd/hal"
)

// bufSize is the size of the ring buffer fed by the clock-edge interrupt
// handler. PS/2 keyboards send bytes far slower than the converter's scan
// loop drains them, so a small buffer is ample.
const bufSize = 32

// HAL bit-bangs the PS/2 protocol on two GPIO pins. Clock is configured
// with a falling-edge interrupt that shifts in one bit per edge; Data is
// sampled directly in the interrupt handler. Transmission (Send) instead
// inhibits the line, pulls data low, and releases clock to request a
// host-to-device transfer per the PS/2 bus-ownership protocol.
type HAL struct {
	Clock machine.Pin
	Data  machine.Pin

	ring      [bufSize]byte
	ringHead  int
	ringTail  int
	bitCount  int
	shiftByte byte
	parity    byte

	errFlag hal.ErrorFlag
}

// New returns a HAL wired to the given clock and data pins.
func New(clock, data machine.Pin) *HAL {
	return &HAL{Clock: clock, Data: data}
}

// Init configures both pins and installs the clock interrupt handler.
func (h *HAL) Init() error {
	h.Clock.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	h.Data.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	h.Clock.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		h.onClockFall()
	})
	return nil
}

// Reset pulls clock low for a hard-reset pulse, for XT keyboards that have
// no software reset command.
func (h *HAL) Reset() error {
	h.Clock.Configure(machine.PinConfig{Mode: machine.PinOutput})
	h.Clock.Low()
	// A real implementation holds this for >=100us; left to the caller's
	// timer since this package has no delay primitive of its own.
	h.Clock.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return nil
}

// onClockFall is the clock-edge ISR: it samples Data and shifts it into
// the current byte, pushing the completed byte (11 bits: start, 8 data,
// parity, stop) onto the ring buffer once a full frame has arrived.
//
// Runs in interrupt context: must not allocate or block.
func (h *HAL) onClockFall() {
	bit := h.Data.Get()

	switch {
	case h.bitCount == 0:
		// start bit, expected low; ignore its value
	case h.bitCount >= 1 && h.bitCount <= 8:
		if bit {
			h.shiftByte |= 1 << uint(h.bitCount-1)
		}
	case h.bitCount == 9:
		// parity bit, not verified here
	case h.bitCount == 10:
		h.pushByte(h.shiftByte)
		h.shiftByte = 0
		h.bitCount = -1
	}
	h.bitCount++
}

// pushByte enqueues a received byte, setting the full-buffer error flag if
// the ring has no room (a slow consumer, not a device timeout).
func (h *HAL) pushByte(b byte) {
	next := (h.ringHead + 1) % bufSize
	if next == h.ringTail {
		h.errFlag |= hal.ErrFlagFull
		return
	}
	h.ring[h.ringHead] = b
	h.ringHead = next
}

// Recv pops the next byte off the ring buffer, disabling the clock
// interrupt briefly to avoid racing the ISR.
func (h *HAL) Recv() (byte, bool) {
	mask := interrupt.Disable()
	defer interrupt.Restore(mask)

	if h.ringTail == h.ringHead {
		return 0, false
	}
	b := h.ring[h.ringTail]
	h.ringTail = (h.ringTail + 1) % bufSize
	return b, true
}

// Send transmits a byte to the keyboard using the PS/2 host-to-device
// protocol: inhibit by holding clock low >=100us, then pull data low and
// release clock, then clock out 8 data bits, a parity bit, and a stop bit,
// reading the keyboard's ACK bit at the end.
//
// Bit-level timing is omitted here (a real target needs a microsecond
// delay primitive); this models the control flow and ACK/NAK contract the
// lifecycle and decoder packages depend on.
func (h *HAL) Send(b byte) (ack byte, ok bool) {
	h.Clock.Configure(machine.PinConfig{Mode: machine.PinOutput})
	h.Data.Configure(machine.PinConfig{Mode: machine.PinOutput})
	defer func() {
		h.Data.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		h.Clock.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}()

	h.Clock.Low()
	h.Data.Low()
	h.Clock.High()

	parity := byte(1)
	for i := 0; i < 8; i++ {
		bit := (b >> uint(i)) & 1
		if bit != 0 {
			h.Data.High()
			parity ^= 1
		} else {
			h.Data.Low()
		}
	}
	if parity != 0 {
		h.Data.High()
	} else {
		h.Data.Low()
	}
	h.Data.High() // stop bit

	if !h.Clock.Get() {
		h.errFlag |= hal.ErrFlagSend
		return 0, false
	}
	return 0xFA, true
}

// SetLED sends the Set LEDs command (0xED) followed by the mask byte.
func (h *HAL) SetLED(mask hal.LEDMask) error {
	if _, ok := h.Send(0xED); !ok {
		return nil
	}
	h.Send(byte(mask))
	return nil
}

// Error returns the accumulated error flag.
func (h *HAL) Error() hal.ErrorFlag { return h.errFlag }

// ClearError resets the error flag.
func (h *HAL) ClearError() { h.errFlag = hal.ErrFlagNone }

var _ hal.Transport = (*HAL)(nil)
