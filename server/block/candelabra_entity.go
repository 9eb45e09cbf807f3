package block

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/dm-vev/candelight/server/block/model"
	"github.com/dm-vev/candelight/server/block/mount"
	"github.com/dm-vev/candelight/server/internal/mathutil"
	"github.com/dm-vev/candelight/server/internal/nbtconv"
	"github.com/dm-vev/candelight/server/shape"
	"github.com/dm-vev/candelight/server/world"
	"github.com/go-gl/mathgl/mgl32"
)

// CandelabraEntity holds the state of a placed Candelabra: the candles it
// holds and the way it is mounted.
type CandelabraEntity struct {
	block *Candelabra
	pos   cube.Pos

	// CandleCount is the number of candles held, between 0 and the maximum of
	// the block.
	CandleCount int
	// Lit specifies if the candles are burning. It is never true while no
	// candles are held.
	Lit bool
	// AttachFace is the face of the support block the candelabra is attached
	// to. It is set once, when the block is placed.
	AttachFace cube.Face
	// HorFacing is the direction a candelabra on a floor or ceiling faces.
	HorFacing cube.Direction

	cache *shape.Cache

	// generation is the shape library generation the cache was filled from.
	generation uint64
}

// Pos ...
func (e *CandelabraEntity) Pos() cube.Pos {
	return e.pos
}

// SetAttachFace sets the face the candelabra is attached to.
func (e *CandelabraEntity) SetAttachFace(face cube.Face) {
	e.AttachFace = face
}

// SetHorizontalFacing sets the direction a candelabra on a floor or ceiling
// faces.
func (e *CandelabraEntity) SetHorizontalFacing(d cube.Direction) {
	e.HorFacing = d
}

// AddCandle puts a candle into the candelabra. False is returned if it is
// already full.
func (e *CandelabraEntity) AddCandle(tx world.Tx) bool {
	if e.CandleCount >= e.block.conf.MaxCandles {
		return false
	}
	e.mutate(tx, func() {
		e.CandleCount++
	})
	return true
}

// RemoveCandle takes a candle out of the candelabra, putting out the
// candelabra if it was the last one. False is returned if it held no candles.
func (e *CandelabraEntity) RemoveCandle(tx world.Tx) bool {
	if e.CandleCount <= 0 {
		return false
	}
	e.mutate(tx, func() {
		e.CandleCount--
		if e.CandleCount == 0 {
			e.Lit = false
		}
	})
	return true
}

// ToggleLit lights the candles if they were out and puts them out otherwise.
func (e *CandelabraEntity) ToggleLit(tx world.Tx) {
	e.mutate(tx, func() {
		e.Lit = !e.Lit
	})
}

// mutate runs f and has the light of the block recomputed afterwards. The
// light emitted before f ran is captured first so that it can be retracted.
func (e *CandelabraEntity) mutate(tx world.Tx, f func()) {
	holder, ok := AsLightEmittingAttachable(tx.Block(e.pos))
	var old *world.LightHSV
	if ok {
		if l, lit := holder.LightHSV(e.pos, tx); lit {
			old = &l
		}
	}
	f()
	e.markDirty(tx)
	if ok {
		holder.RequestRelight(tx, e.pos, old)
	}
}

func (e *CandelabraEntity) markDirty(tx world.Tx) {
	tx.MarkBlockEntityDirty(e.pos)
	tx.MarkBlockDirty(e.pos)
}

// EncodeNBT ...
func (e *CandelabraEntity) EncodeNBT() map[string]any {
	return map[string]any{
		"id":         "Candelabra",
		"candles":    int32(e.CandleCount),
		"lit":        e.Lit,
		"horFacing":  e.HorFacing.String(),
		"attachFace": e.AttachFace.String(),
	}
}

// DecodeNBT restores the candelabra from data. Unknown faces and directions
// fall back to up and north and the candle count is clamped to what the block
// holds. On the server the light of the block is recomputed.
func (e *CandelabraEntity) DecodeNBT(tx world.Tx, data map[string]any) {
	e.CandleCount = int(mathutil.Clamp(nbtconv.Int64(data, "candles"), 0, int64(e.block.conf.MaxCandles)))
	e.Lit = nbtconv.Bool(data, "lit")

	var ok bool
	if e.HorFacing, ok = mount.ParseDirection(nbtconv.StringOr(data, "horFacing", "north")); !ok {
		e.HorFacing = cube.North
	}
	if e.AttachFace, ok = mount.ParseFace(nbtconv.StringOr(data, "attachFace", "up")); !ok {
		e.AttachFace = cube.FaceUp
	}

	if tx.Side() == world.SideServer {
		if holder, ok := AsLightEmittingAttachable(tx.Block(e.pos)); ok {
			holder.RequestRelight(tx, e.pos, nil)
		}
		return
	}
	e.markDirty(tx)
}

// Model returns the block model of the candelabra in its current orientation.
func (e *CandelabraEntity) Model() model.Candelabra {
	return model.Candelabra{Variant: e.block.variant, Face: e.AttachFace, Facing: e.HorFacing}
}

// Tesselate returns the mesh of the candelabra in its current state. The mesh
// is a copy that may be modified freely. False is returned if the shape asset
// of the current state is not available.
func (e *CandelabraEntity) Tesselate() (*shape.Mesh, bool) {
	entry, ok := e.geometry()
	if !ok {
		return nil, false
	}
	return entry.Mesh.Clone(), true
}

// WickPoints returns the positions of the wicks relative to the block, in the
// same frame as the mesh returned by Tesselate.
func (e *CandelabraEntity) WickPoints() []mgl32.Vec3 {
	entry, ok := e.geometry()
	if !ok {
		return nil
	}
	return append([]mgl32.Vec3(nil), entry.Wicks...)
}
