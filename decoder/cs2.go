// Package decoder implements the scan-code-set decoders that turn a raw
// PS/2 byte stream into matrix make/break events. Scan Code Set 2 (the
// AT/PS-2 protocol) is the only fully stateful decoder; it is the one
// actually exercised by real hardware, so it carries the full prefix/break
// state machine. The Set 1 decoder is a stateless byte-to-matrix mapping;
// the Set 3 decoder keeps only a pending-break flag for its F0 prefix.
package decoder

import (
	"github.com/ardnew/ibmkbd/hal"
	"github.com/ardnew/ibmkbd/matrix"
	"github.com/ardnew/ibmkbd/pkg"
)

// cs2State is the CS2 decoder's internal state. Zero value is stateInit.
type cs2State uint8

const (
	stateInit cs2State = iota
	stateF0
	stateE0
	stateE0F0

	// Pause sequence: E1 14 77 E1 F0 14 F0 77.
	stateE1
	stateE114
	stateE11477
	stateE11477E1
	stateE11477E1F0
	stateE11477E1F014
	stateE11477E1F014F0

	// Control-modified Pause: E0 7E E0 F0 7E.
	stateE07E
	stateE07EE0
	stateE07EE0F0
)

// Distinguished CS2 bytes.
const (
	byteE0         = 0xE0
	byteE1         = 0xE1
	byteF0         = 0xF0
	byteOverrun    = 0x00
	byteSelfPass   = 0xAA
	byteSelfFail   = 0xFC
	byteF7         = 0x83
	byteAltPrtScrn = 0x84
	byteIgnoredLo  = 0x12
	byteIgnoredHi  = 0x59
	bytePauseCtl   = 0x7E
	byteE11        = 0x14
	byteE12        = 0x77
)

// CS2 is a stateful Scan Code Set 2 decoder. The zero value is ready to
// use, starting in its Init state.
type CS2 struct {
	state cs2State
}

// Reset returns the decoder to its Init state, discarding any partially
// consumed multi-byte sequence.
func (d *CS2) Reset() {
	d.state = stateInit
}

// Feed consumes at most one byte from t and applies its effect to m. It
// returns resetRequested=true if that byte was a self-test byte seen
// mid-stream, signaling the lifecycle state machine must re-initialize.
//
// Per the pseudo-break invariant, Pause is cleared from m on every call
// before any byte is consumed: Pause has no real break sequence, so it is
// modeled as a one-tick press that auto-releases on the next scan.
func (d *CS2) Feed(t hal.Transport, m *matrix.Matrix, host hal.Host) (resetRequested bool) {
	if m.IsOnCode(matrix.Pause) {
		m.Break(matrix.Pause)
	}

	b, ok := t.Recv()
	if !ok {
		return false
	}
	return d.step(b, m, host)
}

// step advances the state machine by one byte. Returns true if the byte
// signals a required lifecycle re-init (self-test pass/fail).
func (d *CS2) step(b byte, m *matrix.Matrix, host hal.Host) bool {
	switch d.state {
	case stateInit:
		return d.stepInit(b, m, host)
	case stateE0:
		d.stepE0(b, m, host)
	case stateF0:
		d.stepF0(b, m, host)
	case stateE0F0:
		d.stepE0F0(b, m, host)
	case stateE1:
		d.state = transitionOr(b, byteE11, stateE114, stateInit)
	case stateE114:
		d.state = transitionOr(b, byteE12, stateE11477, stateInit)
	case stateE11477:
		d.state = transitionOr(b, byteE1, stateE11477E1, stateInit)
	case stateE11477E1:
		d.state = transitionOr(b, byteF0, stateE11477E1F0, stateInit)
	case stateE11477E1F0:
		d.state = transitionOr(b, byteE11, stateE11477E1F014, stateInit)
	case stateE11477E1F014:
		d.state = transitionOr(b, byteF0, stateE11477E1F014F0, stateInit)
	case stateE11477E1F014F0:
		if b == byteE12 {
			m.Make(matrix.Pause)
		}
		d.state = stateInit
	case stateE07E:
		d.state = transitionOr(b, byteE0, stateE07EE0, stateInit)
	case stateE07EE0:
		d.state = transitionOr(b, byteF0, stateE07EE0F0, stateInit)
	case stateE07EE0F0:
		if b == bytePauseCtl {
			m.Make(matrix.Pause)
		}
		d.state = stateInit
	default:
		d.state = stateInit
	}
	return false
}

func transitionOr(got, want byte, next, fallback cs2State) cs2State {
	if got == want {
		return next
	}
	return fallback
}

func (d *CS2) stepInit(b byte, m *matrix.Matrix, host hal.Host) bool {
	switch b {
	case byteE0:
		d.state = stateE0
	case byteF0:
		d.state = stateF0
	case byteE1:
		d.state = stateE1
	case byteF7:
		m.Make(matrix.F7)
		d.state = stateInit
	case byteAltPrtScrn:
		m.Make(matrix.PrintScreen)
		d.state = stateInit
	case byteOverrun:
		m.Clear()
		host.ClearKeyboard()
		pkg.LogWarn(pkg.ComponentDecoder, "scan code overrun")
		d.state = stateInit
	case byteSelfPass, byteSelfFail:
		d.state = stateInit
		return true
	default:
		if b < 0x80 {
			m.Make(b)
		} else {
			m.Clear()
			host.ClearKeyboard()
			pkg.LogWarn(pkg.ComponentDecoder, "corrupt byte in init state", "byte", b)
		}
		d.state = stateInit
	}
	return false
}

func (d *CS2) stepE0(b byte, m *matrix.Matrix, host hal.Host) {
	switch b {
	case byteIgnoredLo, byteIgnoredHi:
		d.state = stateInit
	case bytePauseCtl:
		d.state = stateE07E
	case byteF0:
		d.state = stateE0F0
	default:
		if b < 0x80 {
			m.Make(b | 0x80)
		} else {
			m.Clear()
			host.ClearKeyboard()
			pkg.LogWarn(pkg.ComponentDecoder, "corrupt byte in E0 state", "byte", b)
		}
		d.state = stateInit
	}
}

func (d *CS2) stepF0(b byte, m *matrix.Matrix, host hal.Host) {
	switch b {
	case byteF7:
		m.Break(matrix.F7)
	case byteAltPrtScrn:
		m.Break(matrix.PrintScreen)
	default:
		if b < 0x80 {
			m.Break(b)
		} else {
			m.Clear()
			host.ClearKeyboard()
			pkg.LogWarn(pkg.ComponentDecoder, "corrupt byte in F0 state", "byte", b)
		}
	}
	d.state = stateInit
}

func (d *CS2) stepE0F0(b byte, m *matrix.Matrix, host hal.Host) {
	switch b {
	case byteIgnoredLo, byteIgnoredHi:
	default:
		if b < 0x80 {
			m.Break(b | 0x80)
		} else {
			m.Clear()
			host.ClearKeyboard()
			pkg.LogWarn(pkg.ComponentDecoder, "corrupt byte in E0_F0 state", "byte", b)
		}
	}
	d.state = stateInit
}
