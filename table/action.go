package table

import "github.com/ardnew/ibmkbd/ukp"

// Action is an opaque action identifier consumed by the action evaluator.
// This core never interprets an Action's value; it only looks one up and
// hands it back to the caller.
type Action uint16

// NoAction is returned when a coordinate resolves to nothing: an unassigned
// matrix cell, an unset keyboard family, or an unassigned UKP.
const NoAction Action = 0

// ActionRows, ActionCols mirror the UKP addressing space: 8 universal rows,
// 16 universal columns.
const (
	ActionRows = 8
	ActionCols = 16
)

// Layer is a 2D grid of actions indexed by universal row and column. A
// LayerMap holds one Layer per named layer; layer 0 is always the base
// layer, active when no higher layer is held.
type Layer [ActionRows][ActionCols]Action

// LayerMap is the full layered action table: one Layer per layer index.
// It is populated at startup (by the layout package, typically from a YAML
// layout file) and treated as immutable for the remainder of the process.
type LayerMap []Layer

// At returns the action at (ukpPos) on the given layer, or NoAction if the
// layer index or UKP is out of range.
func (m LayerMap) At(layer int, pos ukp.Pos) Action {
	if !pos.Valid() {
		return NoAction
	}
	if layer < 0 || layer >= len(m) {
		return NoAction
	}
	return m[layer][pos.Row()][pos.Col()]
}
