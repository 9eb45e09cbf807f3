package block

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/dm-vev/candelight/server/world"
)

// LightEmittingAttachable is a block attached to a support block that emits
// light depending on the state of its block entity.
type LightEmittingAttachable interface {
	world.Block
	world.LightEmitter
	// Supported reports if the block at pos is still attached to a block that
	// supports it.
	Supported(src world.BlockSource, pos cube.Pos) bool
	// RequestRelight has the light emitted at pos recomputed after old, if not
	// nil, was retracted.
	RequestRelight(tx world.Tx, pos cube.Pos, old *world.LightHSV)
}

// Compile time check to make sure Candelabra implements
// LightEmittingAttachable.
var _ LightEmittingAttachable = (*Candelabra)(nil)

// AsLightEmittingAttachable returns b as a LightEmittingAttachable if it is
// one.
func AsLightEmittingAttachable(b world.Block) (LightEmittingAttachable, bool) {
	l, ok := b.(LightEmittingAttachable)
	return l, ok
}
