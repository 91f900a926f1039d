// Package resolver implements the final stage of the resolution pipeline:
// given a (layer, row, col) scan coordinate and the active keyboard
// family, produce a resolved action by first translating the coordinate to
// a Universal Key Position, then indexing the layered action table.
package resolver

import (
	"github.com/ardnew/ibmkbd/lifecycle"
	"github.com/ardnew/ibmkbd/table"
	"github.com/ardnew/ibmkbd/ukp"
)

// KeyPos is a physical matrix coordinate, as scanned by the host.
type KeyPos struct {
	Row, Col uint8
}

// Resolver binds a layered action table to the family-specific
// translation it must consult. It holds no mutable state of its own; the
// family comes from the lifecycle device on every call, since the family
// is only fixed for the duration of one identification cycle.
type Resolver struct {
	Actions table.LayerMap
}

// New builds a Resolver over the given layered action table.
func New(actions table.LayerMap) *Resolver {
	return &Resolver{Actions: actions}
}

// Resolve implements §4.5: translate (row, col) to a UKP using the table
// for family, then look up (layer, ukpRow, ukpCol) in the action table.
// Returns table.NoAction if family is unset or the coordinate has no
// universal assignment.
func (r *Resolver) Resolve(family lifecycle.Family, layer int, key KeyPos) table.Action {
	pos := r.translate(family, key)
	if !pos.Valid() {
		return table.NoAction
	}
	return r.Actions.At(layer, pos)
}

// translate looks up the Universal Key Position for key under the given
// family's translation table. Returns ukp.NO if family is unset/refused.
func (r *Resolver) translate(family lifecycle.Family, key KeyPos) ukp.Pos {
	switch family {
	case lifecycle.FamilyXT:
		return table.LookupCS1(key.Row, key.Col)
	case lifecycle.FamilyAT:
		return table.LookupCS2(key.Row, key.Col)
	case lifecycle.FamilyTerminal:
		return table.LookupCS3(key.Row, key.Col)
	default:
		return ukp.NO
	}
}
