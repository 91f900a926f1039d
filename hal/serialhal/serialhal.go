// Package serialhal implements hal.Transport over a UART link to a small
// companion microcontroller that owns the PS/2 clock/data electrical
// timing and forwards raw scan codes and command bytes across the wire
// one-for-one. This is the transport for builds where the converter runs
// on a host with a USB-serial adapter rather than bare GPIO pins, using
// github.com/goburrow/serial the way the wider example corpus uses it for
// byte-oriented serial links.
package serialhal

import (
	"time"

	"github.com/goburrow/serial"

	"github.com/ardnew/ibmkbd/hal"
	"github.com/ardnew/ibmkbd/pkg"
)

// recvTimeout bounds a single Recv read. The companion microcontroller's
// protocol is one PS/2 byte per UART byte, so a short read timeout is
// enough to distinguish "nothing sent yet" from a real line error.
const recvTimeout = 5 * time.Millisecond

// sendAckTimeout bounds how long Send waits for the companion's ACK byte.
const sendAckTimeout = 50 * time.Millisecond

// HAL implements hal.Transport over a serial.Port opened against Config.
type HAL struct {
	Config serial.Config

	port    serial.Port
	errFlag hal.ErrorFlag
}

// New returns a HAL that will open the named serial device at baud when
// Init is called.
func New(address string, baud int) *HAL {
	return &HAL{
		Config: serial.Config{
			Address:  address,
			BaudRate: baud,
			DataBits: 8,
			StopBits: 1,
			Parity:   "N",
			Timeout:  recvTimeout,
		},
	}
}

// Init opens the serial port.
func (h *HAL) Init() error {
	port, err := serial.Open(&h.Config)
	if err != nil {
		return err
	}
	h.port = port
	pkg.LogInfo(pkg.ComponentHAL, "serial transport initialized",
		"address", h.Config.Address, "baud", h.Config.BaudRate)
	return nil
}

// Reset sends the companion microcontroller's line-reset escape sequence:
// two consecutive 0xFF bytes, which the companion firmware reserves (a
// real PS/2 scan code stream never repeats 0xFF back to back).
func (h *HAL) Reset() error {
	if h.port == nil {
		return pkg.ErrNotConfigured
	}
	_, err := h.port.Write([]byte{0xFF, 0xFF})
	return err
}

// Send writes one command byte and waits up to sendAckTimeout for the
// companion's single-byte ACK.
func (h *HAL) Send(b byte) (ack byte, ok bool) {
	if h.port == nil {
		h.errFlag |= hal.ErrFlagSend
		return 0, false
	}

	if _, err := h.port.Write([]byte{b}); err != nil {
		h.errFlag |= hal.ErrFlagSend
		return 0, false
	}

	deadline := time.Now().Add(sendAckTimeout)
	var buf [1]byte
	for time.Now().Before(deadline) {
		n, err := h.port.Read(buf[:])
		if n == 1 {
			return buf[0], true
		}
		if err != nil {
			break
		}
	}
	h.errFlag |= hal.ErrFlagSend
	return 0, false
}

// Recv reads the next byte forwarded by the companion microcontroller, or
// ok=false if the configured Timeout elapses with nothing available.
func (h *HAL) Recv() (byte, bool) {
	if h.port == nil {
		return 0, false
	}

	var buf [1]byte
	n, err := h.port.Read(buf[:])
	if n != 1 {
		if err != nil {
			h.errFlag |= hal.ErrFlagRecv
		}
		return 0, false
	}
	return buf[0], true
}

// SetLED sends the Set LEDs command and mask as two Sends, matching the
// wire format the companion firmware expects from any other transport.
func (h *HAL) SetLED(mask hal.LEDMask) error {
	if _, ok := h.Send(0xED); !ok {
		return pkg.ErrSendFailed
	}
	if _, ok := h.Send(byte(mask)); !ok {
		return pkg.ErrSendFailed
	}
	return nil
}

// Error returns the accumulated error flag.
func (h *HAL) Error() hal.ErrorFlag { return h.errFlag }

// ClearError resets the error flag.
func (h *HAL) ClearError() { h.errFlag = hal.ErrFlagNone }

// Close closes the underlying serial port. Not part of hal.Transport.
func (h *HAL) Close() error {
	if h.port == nil {
		return nil
	}
	return h.port.Close()
}

var _ hal.Transport = (*HAL)(nil)
