// Package fifo implements hal.Transport over a pair of named pipes, for
// integration tests and the command-line demo that have no physical PS/2
// port to bit-bang. One FIFO carries host-to-keyboard command bytes, the
// other carries keyboard-to-host scan codes and ACK bytes; a separate
// process (or test goroutine) plays the keyboard by reading one and
// writing the other.
//
// Unlike the USB HAL this is adapted from, PS/2 has no SETUP packets or
// endpoints to frame: it is a single bidirectional byte stream, so the
// wire protocol here is just raw bytes with no header.
package fifo

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/ardnew/ibmkbd/hal"
	"github.com/ardnew/ibmkbd/pkg"
)

// File names for the two named pipes created under dir.
const (
	fifoToKeyboard   = "to_keyboard"
	fifoFromKeyboard = "from_keyboard"
)

// readDeadline bounds each non-blocking Recv poll. Recv must never block
// the scan loop, so a short deadline is used and a timeout is treated as
// "no byte available" rather than an error.
const readDeadline = 2 * time.Millisecond

// sendAckDeadline bounds how long Send waits for the keyboard simulator to
// produce an ACK byte before giving up and reporting a send failure.
const sendAckDeadline = 50 * time.Millisecond

// HAL implements hal.Transport over two named pipes rooted at Dir.
type HAL struct {
	// Dir is the directory the two FIFOs are created in. Created by Init
	// if it does not already exist.
	Dir string

	mu      sync.Mutex
	toKbd   *os.File
	fromKbd *os.File
	errFlag hal.ErrorFlag
}

// New returns a HAL rooted at dir. Call Init before use.
func New(dir string) *HAL {
	return &HAL{Dir: dir}
}

// Init creates the FIFOs (if absent) and opens both ends non-blocking.
func (h *HAL) Init() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return fmt.Errorf("create fifo dir: %w", err)
	}

	toPath := filepath.Join(h.Dir, fifoToKeyboard)
	fromPath := filepath.Join(h.Dir, fifoFromKeyboard)

	if err := makeFIFO(toPath); err != nil {
		return err
	}
	if err := makeFIFO(fromPath); err != nil {
		return err
	}

	toKbd, err := os.OpenFile(toPath, os.O_RDWR|syscall.O_NONBLOCK, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", fifoToKeyboard, err)
	}
	fromKbd, err := os.OpenFile(fromPath, os.O_RDWR|syscall.O_NONBLOCK, 0)
	if err != nil {
		toKbd.Close()
		return fmt.Errorf("open %s: %w", fifoFromKeyboard, err)
	}

	h.toKbd = toKbd
	h.fromKbd = fromKbd

	pkg.LogInfo(pkg.ComponentHAL, "fifo transport initialized", "dir", h.Dir)
	return nil
}

// makeFIFO creates a named pipe at path, replacing any stale file left
// over from a previous run.
func makeFIFO(path string) error {
	os.Remove(path)
	if err := syscall.Mkfifo(path, 0o666); err != nil {
		return fmt.Errorf("mkfifo %s: %w", path, err)
	}
	return nil
}

// Reset writes a single out-of-band reset byte. The keyboard simulator on
// the other end is expected to treat 0xFF received with no prior command
// as a BAT-and-reinit trigger, mirroring a real keyboard's response to a
// clock-line reset pulse.
func (h *HAL) Reset() error {
	h.mu.Lock()
	f := h.toKbd
	h.mu.Unlock()
	if f == nil {
		return pkg.ErrNotConfigured
	}
	_, err := f.Write([]byte{0xFF})
	return err
}

// Send writes one command byte to the keyboard and waits up to
// sendAckDeadline for a single ACK byte in reply.
func (h *HAL) Send(b byte) (ack byte, ok bool) {
	h.mu.Lock()
	out, in := h.toKbd, h.fromKbd
	h.mu.Unlock()

	if out == nil || in == nil {
		h.setError(hal.ErrFlagSend)
		return 0, false
	}

	if _, err := out.Write([]byte{b}); err != nil {
		h.setError(hal.ErrFlagSend)
		return 0, false
	}

	in.SetReadDeadline(time.Now().Add(sendAckDeadline))
	var buf [1]byte
	n, err := in.Read(buf[:])
	if err != nil || n != 1 {
		h.setError(hal.ErrFlagSend)
		return 0, false
	}
	return buf[0], true
}

// Recv returns the next byte from the keyboard simulator, or ok=false if
// none has arrived within readDeadline.
func (h *HAL) Recv() (byte, bool) {
	h.mu.Lock()
	in := h.fromKbd
	h.mu.Unlock()
	if in == nil {
		return 0, false
	}

	in.SetReadDeadline(time.Now().Add(readDeadline))
	var buf [1]byte
	n, err := in.Read(buf[:])
	if err != nil || n != 1 {
		if err != nil && !os.IsTimeout(err) {
			h.setError(hal.ErrFlagRecv)
		}
		return 0, false
	}
	return buf[0], true
}

// SetLED writes the Set LEDs command and the mask byte as two Sends.
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
func (h *HAL) Error() hal.ErrorFlag {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.errFlag
}

// ClearError resets the error flag.
func (h *HAL) ClearError() {
	h.mu.Lock()
	h.errFlag = hal.ErrFlagNone
	h.mu.Unlock()
}

func (h *HAL) setError(f hal.ErrorFlag) {
	h.mu.Lock()
	h.errFlag |= f
	h.mu.Unlock()
}

// Close closes both FIFO file descriptors and removes the directory. Not
// part of hal.Transport; callers (tests, the demo main) invoke it for
// cleanup.
func (h *HAL) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.toKbd != nil {
		h.toKbd.Close()
		h.toKbd = nil
	}
	if h.fromKbd != nil {
		h.fromKbd.Close()
		h.fromKbd = nil
	}
	return os.RemoveAll(h.Dir)
}

var _ hal.Transport = (*HAL)(nil)
