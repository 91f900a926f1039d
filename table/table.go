// Package table holds the three immutable code-set translation tables and
// the layered action table. The three translation tables are
// build-time-fixed; the layered action table (LayerMap) is built once at
// startup and treated as immutable afterwards.
package table

import "github.com/ardnew/ibmkbd/ukp"

// CS1Rows, CS1Cols are the dimensions of the Set 1 (XT) table: indexed
// directly by the raw 7-bit scan code (row = code>>3, col = code&7).
const (
	CS1Rows = 16
	CS1Cols = 8
)

// CS2Rows, CS2Cols are the dimensions of the Set 2 (AT/PS-2) table: indexed
// by the extended matrix coordinate space (E0-prefixed codes fold into the
// upper 16 rows).
const (
	CS2Rows = 32
	CS2Cols = 8
)

// CS3Rows, CS3Cols are the dimensions of the Set 3 (Terminal) table:
// indexed directly by the raw scan code, same shape as Set 1.
const (
	CS3Rows = 16
	CS3Cols = 8
)

// CS1 translates a Set 1 (XT) matrix coordinate into a Universal Key
// Position. Grid layout mirrors the IBM PC/XT scan code map.
var CS1 = [CS1Rows][CS1Cols]ukp.Pos{
	{ukp.NO, ukp.KeyEsc, ukp.Key1, ukp.Key2, ukp.Key3, ukp.Key4, ukp.Key5, ukp.Key6},
	{ukp.Key7, ukp.Key8, ukp.Key9, ukp.Key0, ukp.KeyMinus, ukp.KeyEqual, ukp.KeyBackspc, ukp.KeyTab},
	{ukp.KeyQ, ukp.KeyW, ukp.KeyE, ukp.KeyR, ukp.KeyT, ukp.KeyY, ukp.KeyU, ukp.KeyI},
	{ukp.KeyO, ukp.KeyP, ukp.KeyLBracket, ukp.KeyRBracket, ukp.KeyEnter, ukp.KeyLCtrl, ukp.KeyA, ukp.KeyS},
	{ukp.KeyD, ukp.KeyF, ukp.KeyG, ukp.KeyH, ukp.KeyJ, ukp.KeyK, ukp.KeyL, ukp.KeySemicolon},
	{ukp.KeyQuote, ukp.KeyGrave, ukp.KeyLShift, ukp.KeyBackslsh, ukp.KeyZ, ukp.KeyX, ukp.KeyC, ukp.KeyV},
	{ukp.KeyB, ukp.KeyN, ukp.KeyM, ukp.KeyComma, ukp.KeyDot, ukp.KeySlash, ukp.KeyRShift, ukp.KeyKPAster},
	{ukp.KeyLAlt, ukp.KeySpace, ukp.KeyCapsLock, ukp.KeyF1, ukp.KeyF2, ukp.KeyF3, ukp.KeyF4, ukp.KeyF5},
	{ukp.KeyF6, ukp.KeyF7, ukp.KeyF8, ukp.KeyF9, ukp.KeyF10, ukp.KeyNumLock, ukp.KeyScrlLock, ukp.KeyKP7},
	{ukp.KeyKP8, ukp.KeyKP9, ukp.KeyKPMinus, ukp.KeyKP4, ukp.KeyKP5, ukp.KeyKP6, ukp.KeyKPPlus, ukp.KeyKP1},
	{ukp.KeyKP2, ukp.KeyKP3, ukp.KeyKP0, ukp.KeyKPDot, ukp.KeyPrintScrn, ukp.KeyPause, ukp.KeyNUHS, ukp.KeyF11},
	{ukp.KeyF12, ukp.KeyKPEqual, ukp.KeyLGui, ukp.KeyRGui, ukp.KeyApp, ukp.KeyMute, ukp.KeyVolDown, ukp.KeyVolUp},
	{ukp.KeyUp, ukp.KeyLeft, ukp.KeyDown, ukp.KeyRight, ukp.KeyF13, ukp.KeyF14, ukp.KeyF15, ukp.KeyF16},
	{ukp.KeyF17, ukp.KeyF18, ukp.KeyF19, ukp.KeyF20, ukp.KeyF21, ukp.KeyF22, ukp.KeyF23, ukp.KeyKPEnter},
	{ukp.KeyKana, ukp.KeyInsert, ukp.KeyDelete, ukp.KeyRO, ukp.KeyHome, ukp.KeyEnd, ukp.KeyF24, ukp.KeyPageUp},
	{ukp.KeyPageDown, ukp.KeyHenkan, ukp.KeyRCtrl, ukp.KeyMuhenkan, ukp.KeyRAlt, ukp.KeyYen, ukp.KeyKPComma, ukp.KeyKPSlash},
}

// CS2 translates a Set 2 (AT/PS-2) matrix coordinate into a Universal Key
// Position. Most of the upper half is NO: only E0-prefixed codes that are
// actually assigned on a real AT/PS-2 keyboard occupy those rows.
var CS2 = [CS2Rows][CS2Cols]ukp.Pos{
	{ukp.NO, ukp.KeyF9, ukp.NO, ukp.KeyF5, ukp.KeyF3, ukp.KeyF1, ukp.KeyF2, ukp.KeyF12},
	{ukp.KeyF13, ukp.KeyF10, ukp.KeyF8, ukp.KeyF6, ukp.KeyF4, ukp.KeyTab, ukp.KeyGrave, ukp.NO},
	{ukp.KeyF14, ukp.KeyLAlt, ukp.KeyLShift, ukp.KeyKana, ukp.KeyLCtrl, ukp.KeyQ, ukp.Key1, ukp.NO},
	{ukp.KeyF15, ukp.NO, ukp.KeyZ, ukp.KeyS, ukp.KeyA, ukp.KeyW, ukp.Key2, ukp.NO},
	{ukp.KeyF16, ukp.KeyC, ukp.KeyX, ukp.KeyD, ukp.KeyE, ukp.Key4, ukp.Key3, ukp.NO},
	{ukp.KeyF17, ukp.KeySpace, ukp.KeyV, ukp.KeyF, ukp.KeyT, ukp.KeyR, ukp.Key5, ukp.NO},
	{ukp.KeyF18, ukp.KeyN, ukp.KeyB, ukp.KeyH, ukp.KeyG, ukp.KeyY, ukp.Key6, ukp.NO},
	{ukp.KeyF19, ukp.NO, ukp.KeyM, ukp.KeyJ, ukp.KeyU, ukp.Key7, ukp.Key8, ukp.NO},
	{ukp.KeyF20, ukp.KeyComma, ukp.KeyK, ukp.KeyI, ukp.KeyO, ukp.Key0, ukp.Key9, ukp.NO},
	{ukp.KeyF21, ukp.KeyDot, ukp.KeySlash, ukp.KeyL, ukp.KeySemicolon, ukp.KeyP, ukp.KeyMinus, ukp.NO},
	{ukp.KeyF22, ukp.KeyRO, ukp.KeyQuote, ukp.NO, ukp.KeyLBracket, ukp.KeyEqual, ukp.NO, ukp.KeyF23},
	{ukp.KeyCapsLock, ukp.KeyRShift, ukp.KeyEnter, ukp.KeyRBracket, ukp.NO, ukp.KeyBackslsh, ukp.NO, ukp.KeyF24},
	{ukp.NO, ukp.KeyNUBS, ukp.NO, ukp.KeyKPEqual, ukp.KeyHenkan, ukp.NO, ukp.KeyBackspc, ukp.KeyMuhenkan},
	{ukp.KeyNUHS, ukp.KeyKP1, ukp.KeyYen, ukp.KeyKP4, ukp.KeyKP7, ukp.KeyKPComma, ukp.NO, ukp.NO},
	{ukp.KeyKP0, ukp.KeyKPDot, ukp.KeyKP2, ukp.KeyKP5, ukp.KeyKP6, ukp.KeyKP8, ukp.KeyEsc, ukp.KeyNumLock},
	{ukp.KeyF11, ukp.KeyKPPlus, ukp.KeyKP3, ukp.KeyKPMinus, ukp.KeyKPAster, ukp.KeyKP9, ukp.KeyScrlLock, ukp.NO},
	{ukp.NO, ukp.NO, ukp.NO, ukp.KeyF7, ukp.NO, ukp.NO, ukp.NO, ukp.NO},
	{ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO},
	{ukp.NO, ukp.KeyRAlt, ukp.NO, ukp.NO, ukp.KeyRCtrl, ukp.NO, ukp.NO, ukp.NO},
	{ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.KeyLGui},
	{ukp.NO, ukp.KeyVolDown, ukp.NO, ukp.KeyMute, ukp.NO, ukp.NO, ukp.NO, ukp.KeyRGui},
	{ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.KeyApp},
	{ukp.NO, ukp.NO, ukp.KeyVolUp, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO},
	{ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO},
	{ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO},
	{ukp.NO, ukp.NO, ukp.KeyKPSlash, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO},
	{ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO},
	{ukp.NO, ukp.NO, ukp.KeyKPEnter, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO},
	{ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO, ukp.NO},
	{ukp.NO, ukp.KeyEnd, ukp.NO, ukp.KeyLeft, ukp.KeyHome, ukp.NO, ukp.NO, ukp.NO},
	{ukp.KeyInsert, ukp.KeyDelete, ukp.KeyDown, ukp.NO, ukp.KeyRight, ukp.KeyUp, ukp.NO, ukp.NO},
	{ukp.NO, ukp.NO, ukp.KeyPageDown, ukp.NO, ukp.KeyPrintScrn, ukp.KeyPageUp, ukp.KeyPause, ukp.NO},
}

// CS3 translates a Set 3 (Terminal) matrix coordinate into a Universal Key
// Position. Terminal keyboards use the same direct, non-prefixed addressing
// as Set 1 but a different physical layout.
var CS3 = [CS3Rows][CS3Cols]ukp.Pos{
	{ukp.NO, ukp.KeyLGui, ukp.KeyVolDown, ukp.KeyPause, ukp.KeyScrlLock, ukp.KeyPrintScrn, ukp.KeyEsc, ukp.KeyF1},
	{ukp.KeyF13, ukp.KeyRGui, ukp.KeyVolUp, ukp.KeyMuhenkan, ukp.KeyHenkan, ukp.KeyTab, ukp.KeyGrave, ukp.KeyF2},
	{ukp.KeyF14, ukp.KeyLCtrl, ukp.KeyLShift, ukp.KeyNUBS, ukp.KeyCapsLock, ukp.KeyQ, ukp.Key1, ukp.KeyF3},
	{ukp.KeyF15, ukp.KeyLAlt, ukp.KeyZ, ukp.KeyS, ukp.KeyA, ukp.KeyW, ukp.Key2, ukp.KeyF4},
	{ukp.KeyF16, ukp.KeyC, ukp.KeyX, ukp.KeyD, ukp.KeyE, ukp.Key4, ukp.Key3, ukp.KeyF5},
	{ukp.KeyF17, ukp.KeySpace, ukp.KeyV, ukp.KeyF, ukp.KeyT, ukp.KeyR, ukp.Key5, ukp.KeyF6},
	{ukp.KeyF18, ukp.KeyN, ukp.KeyB, ukp.KeyH, ukp.KeyG, ukp.KeyY, ukp.Key6, ukp.KeyF7},
	{ukp.KeyF19, ukp.KeyRAlt, ukp.KeyM, ukp.KeyJ, ukp.KeyU, ukp.Key7, ukp.Key8, ukp.KeyF8},
	{ukp.KeyF20, ukp.KeyComma, ukp.KeyK, ukp.KeyI, ukp.KeyO, ukp.Key0, ukp.Key9, ukp.KeyF9},
	{ukp.KeyF21, ukp.KeyDot, ukp.KeySlash, ukp.KeyL, ukp.KeySemicolon, ukp.KeyP, ukp.KeyMinus, ukp.KeyF10},
	{ukp.KeyF22, ukp.KeyRO, ukp.KeyQuote, ukp.KeyNUHS, ukp.KeyLBracket, ukp.KeyEqual, ukp.KeyF11, ukp.KeyF23},
	{ukp.KeyRCtrl, ukp.KeyRShift, ukp.KeyEnter, ukp.KeyRBracket, ukp.KeyBackslsh, ukp.KeyYen, ukp.KeyF12, ukp.KeyF24},
	{ukp.KeyDown, ukp.KeyLeft, ukp.KeyApp, ukp.KeyUp, ukp.KeyDelete, ukp.KeyEnd, ukp.KeyBackspc, ukp.KeyInsert},
	{ukp.KeyKana, ukp.KeyKP1, ukp.KeyRight, ukp.KeyKP4, ukp.KeyKP7, ukp.KeyPageDown, ukp.KeyHome, ukp.KeyPageUp},
	{ukp.KeyKP0, ukp.KeyKPDot, ukp.KeyKP2, ukp.KeyKP5, ukp.KeyKP6, ukp.KeyKP8, ukp.KeyNumLock, ukp.KeyKPSlash},
	{ukp.KeyKPEqual, ukp.KeyKPEnter, ukp.KeyKP3, ukp.KeyKPComma, ukp.KeyKPPlus, ukp.KeyKP9, ukp.KeyKPAster, ukp.KeyKPMinus},
}

// LookupCS1 returns the Universal Key Position at a Set 1 matrix coordinate.
func LookupCS1(row, col uint8) ukp.Pos {
	if int(row) >= CS1Rows || int(col) >= CS1Cols {
		return ukp.NO
	}
	return CS1[row][col]
}

// LookupCS2 returns the Universal Key Position at a Set 2 matrix coordinate.
func LookupCS2(row, col uint8) ukp.Pos {
	if int(row) >= CS2Rows || int(col) >= CS2Cols {
		return ukp.NO
	}
	return CS2[row][col]
}

// LookupCS3 returns the Universal Key Position at a Set 3 matrix coordinate.
func LookupCS3(row, col uint8) ukp.Pos {
	if int(row) >= CS3Rows || int(col) >= CS3Cols {
		return ukp.NO
	}
	return CS3[row][col]
}
