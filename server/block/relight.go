package block

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/dm-vev/candelight/server/world"
)

// RequestRelight has the light emitted at pos recomputed. If old is not nil,
// it is retracted immediately. The block itself is exchanged with itself one
// tick later, once the change that caused the relight has been committed, so
// that the world recomputes its light from the new state. Nothing happens on
// the client side.
func RequestRelight(tx world.Tx, pos cube.Pos, old *world.LightHSV) {
	if tx.Side() != world.SideServer {
		return
	}
	if old != nil {
		tx.RemoveBlockLight(*old, pos)
	}
	tx.ScheduleTask(pos, 1, func(tx world.Tx) {
		// The block may have changed since the relight was requested.
		tx.ExchangeBlock(pos, tx.Block(pos))
		tx.MarkBlockDirty(pos)
		tx.MarkBlockEntityDirty(pos)
	})
}
