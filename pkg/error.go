package pkg

import "errors"

// Transport and lifecycle errors.
var (
	// ErrTimeout indicates a bounded wait (startup, identify) expired.
	ErrTimeout = errors.New("timeout")

	// ErrSendFailed indicates the transport could not send a byte to the device.
	ErrSendFailed = errors.New("send failed")

	// ErrRecvFailed indicates a receive-path transport error (line noise, framing).
	ErrRecvFailed = errors.New("receive failed")

	// ErrBufferFull indicates the transport's internal receive buffer overflowed.
	ErrBufferFull = errors.New("buffer full")

	// ErrOverrun indicates the device reported a buffer overrun (0x00 in CS2).
	ErrOverrun = errors.New("scan code overrun")

	// ErrCorruptSequence indicates an unexpected byte was seen in a decoder
	// state that has no transition defined for it.
	ErrCorruptSequence = errors.New("corrupt scan code sequence")

	// ErrResetRequested indicates a self-test byte was seen mid-stream, meaning
	// the device was replugged or reset and lifecycle re-init is required.
	ErrResetRequested = errors.New("keyboard reset requested")

	// ErrUnknownFamily indicates an operation was attempted before
	// identification completed, or identification could not classify the
	// attached device.
	ErrUnknownFamily = errors.New("unknown keyboard family")

	// ErrMouseNotSupported indicates the attached device identified as a
	// PS/2 mouse.
	ErrMouseNotSupported = errors.New("ps/2 mouse not supported")

	// ErrInvalidLayout indicates a layout configuration failed validation.
	ErrInvalidLayout = errors.New("invalid layout configuration")

	// ErrNotConfigured indicates a transport method was called before Init.
	ErrNotConfigured = errors.New("transport not configured")
)

// ErrorFlag is a latched transport error readable after each HAL operation,
// mirroring the single mutable error flag exposed by the transport port.
type ErrorFlag uint8

// Error flag bits. More than one condition may be latched between checks.
const (
	ErrFlagNone ErrorFlag = 0
	ErrFlagRecv ErrorFlag = 1 << 0 // receive-path error
	ErrFlagSend ErrorFlag = 1 << 1 // send-path error
	ErrFlagFull ErrorFlag = 1 << 2 // buffer-full condition
)

// Recv reports whether a receive-path error is latched.
func (f ErrorFlag) Recv() bool { return f&ErrFlagRecv != 0 }

// Send reports whether a send-path error is latched.
func (f ErrorFlag) Send() bool { return f&ErrFlagSend != 0 }

// Full reports whether a buffer-full condition is latched.
func (f ErrorFlag) Full() bool { return f&ErrFlagFull != 0 }

// None reports whether no error is latched.
func (f ErrorFlag) None() bool { return f == ErrFlagNone }

// RecoverableInLoop reports whether this flag, if seen while the lifecycle is
// in the Loop state, should force a re-init. Only a pure receive-path error
// does; send errors and buffer-full conditions are transient flow issues and
// do not indicate the device was disconnected.
func (f ErrorFlag) RecoverableInLoop() bool {
	return f.Recv() && !f.Send() && !f.Full()
}
