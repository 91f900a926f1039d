// Package lifecycle implements the keyboard identification and steady-state
// scan loop: the single state machine that owns the matrix, the code-set
// decoders, and the classified keyboard family. It is the one entry point
// the host calls periodically.
package lifecycle

import (
	"github.com/ardnew/ibmkbd/decoder"
	"github.com/ardnew/ibmkbd/hal"
	"github.com/ardnew/ibmkbd/matrix"
	"github.com/ardnew/ibmkbd/pkg"
)

// Family classifies the attached keyboard once per lifecycle init.
type Family uint8

const (
	FamilyNone Family = iota
	FamilyXT
	FamilyAT
	FamilyTerminal
	FamilyOther
)

// String returns a human-readable family name, used in diagnostics.
func (f Family) String() string {
	switch f {
	case FamilyXT:
		return "XT"
	case FamilyAT:
		return "AT"
	case FamilyTerminal:
		return "Terminal"
	case FamilyOther:
		return "Other"
	default:
		return "None"
	}
}

// state is the lifecycle's own state, distinct from any decoder's state.
type state uint8

const (
	stateInit state = iota
	stateWaitStartup
	stateReadID
	stateLEDSet
	stateLoop
	stateEnd
)

// startupWaitMS is the BAT-absorption window in WaitStartup.
const startupWaitMS = 1000

// idReplyWaitMS is the bounded wait for each ID byte in ReadId.
const idReplyWaitMS = 1000

// Wire command bytes sent to the keyboard.
const (
	cmdDisableScan = 0xF5
	cmdIdentify    = 0xF2
	cmdEnableScan  = 0xF4
	ackByte        = 0xFA
)

// Distinguished keyboard ID values (see §4.4 classification table).
const (
	idSendFailed   = 0xFFFF
	idBrokenAck    = 0xFFFE
	id84KeyAT      = 0x0000
	idMouseMarker  = 0x00FF
	idFamilyPS2    = 0xAB00
	idFamilyTerm   = 0xBF00
	idFamilyMask   = 0xFF00
)

// Device owns the single mutable device context: the matrix, the decoder
// state for whichever family is active, and the keyboard's classification.
// Structured as an explicit owned value rather than ambient globals so the
// core is testable with injected Transport/Timer/Host collaborators.
type Device struct {
	transport hal.Transport
	timer     hal.Timer
	host      hal.Host

	state  state
	family Family
	id     uint16

	lastTick hal.Tick

	matrix matrix.Matrix
	cs1    decoder.CS1
	cs2    decoder.CS2
	cs3    decoder.CS3
}

// New builds a Device ready to run its scan loop, starting in Init.
func New(transport hal.Transport, timer hal.Timer, host hal.Host) *Device {
	return &Device{transport: transport, timer: timer, host: host}
}

// Family returns the classified keyboard family. Meaningful only once the
// lifecycle has progressed past ReadId.
func (d *Device) Family() Family { return d.family }

// Matrix returns the device's key-down matrix for read-only inspection.
func (d *Device) Matrix() *matrix.Matrix { return &d.matrix }

// Scan advances the lifecycle state machine by one tick and, once in the
// steady Loop state, delegates to the family decoder. It must be called
// periodically by the host; it never blocks indefinitely. The one bounded
// wait is in ReadId, which polls Recv for up to 1000ms per ID byte.
func (d *Device) Scan() {
	if errFlag := d.transport.Error(); !errFlag.None() {
		pkg.LogWarn(pkg.ComponentLifecycle, "transport error", "flag", errFlag)
		if errFlag.RecoverableInLoop() && d.state == stateLoop {
			pkg.LogInfo(pkg.ComponentLifecycle, "re-initializing after receive error")
			d.state = stateInit
		}
		d.transport.ClearError()
	}

	switch d.state {
	case stateInit:
		d.enterInit()
	case stateWaitStartup:
		d.waitStartup()
	case stateReadID:
		d.readID()
	case stateLEDSet:
		d.ledSet()
	case stateLoop:
		d.loop()
	case stateEnd:
		// terminal state; nothing to do until re-init
	}
}

func (d *Device) enterInit() {
	d.family = FamilyNone
	d.id = 0
	d.lastTick = d.timer.Now()
	d.matrix.Clear()
	d.cs2.Reset()
	d.state = stateWaitStartup
}

func (d *Device) waitStartup() {
	// Discard BAT and other power-up codes for the full window.
	d.transport.Recv()
	if d.timer.ElapsedMS(d.lastTick) > startupWaitMS {
		d.state = stateReadID
	}
}

func (d *Device) readID() {
	id := d.classifyID()
	d.id = id

	switch {
	case idFamilyPS2 == id&idFamilyMask:
		d.family = FamilyAT
	case idFamilyTerm == id&idFamilyMask:
		d.family = FamilyTerminal
	case id == id84KeyAT:
		d.family = FamilyAT
	case id == idSendFailed:
		d.family = FamilyXT
	case id == idBrokenAck:
		d.family = FamilyAT
	case id == idMouseMarker:
		pkg.LogWarn(pkg.ComponentLifecycle, "ps/2 mouse detected, refusing")
		d.family = FamilyNone
	default:
		d.family = FamilyAT
	}

	pkg.LogInfo(pkg.ComponentLifecycle, "keyboard identified", "id", id, "family", d.family)
	d.state = stateLEDSet
}

// classifyID runs the disable/identify/read-reply protocol and returns the
// raw 16-bit ID value per §4.4's classification table.
func (d *Device) classifyID() uint16 {
	d.transport.Send(cmdDisableScan)

	reply, ok := d.transport.Send(cmdIdentify)
	if !ok {
		return idSendFailed
	}
	if reply != ackByte {
		return idBrokenAck
	}

	hi, ok := d.readWait(idReplyWaitMS)
	if !ok {
		return id84KeyAT
	}
	lo, ok := d.readWait(idReplyWaitMS)
	if !ok {
		// Matches the reference firmware's behavior of masking a timed-out
		// read (-1) with 0xFF rather than treating it as a zero byte.
		lo = 0xFF
	}

	d.transport.Send(cmdEnableScan)
	return uint16(hi)<<8 | uint16(lo)
}

// readWait polls Recv until a byte arrives or waitMS elapses.
func (d *Device) readWait(waitMS uint32) (byte, bool) {
	start := d.timer.Now()
	for {
		if b, ok := d.transport.Recv(); ok {
			return b, true
		}
		if d.timer.ElapsedMS(start) >= waitMS {
			return 0, false
		}
	}
}

func (d *Device) ledSet() {
	if d.family == FamilyAT {
		d.pushLEDs(d.host.KeyboardLEDs())
	}
	d.state = stateLoop
}

// pushLEDs translates a host-side (USB HID) LED mask into PS/2 Set LEDs
// order and writes it to the keyboard.
func (d *Device) pushLEDs(hostMask hal.HostLEDMask) {
	mask := hal.TranslateLEDs(hostMask)
	if err := d.transport.SetLED(mask); err != nil {
		pkg.LogWarn(pkg.ComponentLifecycle, "set led failed", "error", err)
	}
}

// LEDSet pushes hostMask, a host-side LED state in USB HID bit order, to
// the keyboard immediately, independent of lifecycle phase. Only
// meaningful for AT family keyboards; a no-op otherwise. The host calls
// this directly (e.g. on a USB SET_REPORT for the keyboard LED report)
// rather than waiting for the next lifecycle transition.
func (d *Device) LEDSet(hostMask hal.HostLEDMask) {
	if d.family == FamilyAT {
		d.pushLEDs(hostMask)
	}
}

func (d *Device) loop() {
	switch d.family {
	case FamilyAT:
		if d.cs2.Feed(d.transport, &d.matrix, d.host) {
			pkg.LogInfo(pkg.ComponentLifecycle, "self-test byte seen, re-initializing")
			d.state = stateInit
		}
	case FamilyXT:
		d.cs1.Feed(d.transport, &d.matrix)
	case FamilyTerminal:
		d.cs3.Feed(d.transport, &d.matrix)
	default:
		// unknown or refused family: drain and discard
		d.transport.Recv()
	}
}
