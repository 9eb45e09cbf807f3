package world

import (
	"github.com/df-mc/dragonfly/server/block/cube"
)

// Block is a block type that may be placed in a World. Implementations must be
// comparable: a World assigns a runtime ID to every distinct Block value.
type Block interface {
	// Code returns the identifier of the block, for example "candelabra2".
	Code() string
}

// BlockEntity holds additional, mutable data of a block at a specific
// position. It is created when its EntityBlock is placed and persisted in NBT.
type BlockEntity interface {
	// Pos returns the position of the block entity.
	Pos() cube.Pos
	// EncodeNBT encodes the block entity into a map that can be stored.
	EncodeNBT() map[string]any
	// DecodeNBT restores the block entity from data previously returned by
	// EncodeNBT.
	DecodeNBT(tx Tx, data map[string]any)
}

// EntityBlock is a Block that requires a BlockEntity.
type EntityBlock interface {
	Block
	// NewBlockEntity returns a block entity with default values for the block
	// at the position passed.
	NewBlockEntity(pos cube.Pos) BlockEntity
}

// Replaceable is implemented by blocks that specify how easily they are
// replaced by other blocks. Blocks not implementing it have a replaceability
// of 0. A block may only be placed in a cell whose replaceability is at least
// that of the block placed.
type Replaceable interface {
	Replaceable() int
}

// AttachmentSupport is implemented by blocks that other blocks may be attached
// to.
type AttachmentSupport interface {
	// CanAttachBlockAt reports if b may attach to the face passed of the block
	// at pos.
	CanAttachBlockAt(src BlockSource, b Block, pos cube.Pos, face cube.Face) bool
}

// LightEmitter is implemented by blocks that emit light.
type LightEmitter interface {
	// LightHSV returns the light emitted by the block at pos. False is returned
	// if the block currently emits no light.
	LightHSV(pos cube.Pos, src BlockSource) (LightHSV, bool)
}

// NeighbourUpdateTicker is implemented by blocks that are updated when one of
// their neighbours changes.
type NeighbourUpdateTicker interface {
	NeighbourUpdateTick(pos, changedNeighbour cube.Pos, tx Tx)
}

// LightHSV is light expressed as hue, saturation and value channels.
type LightHSV struct {
	Hue, Saturation, Value uint8
}

// Air is the block occupying every empty cell.
type Air struct{}

// Code ...
func (Air) Code() string { return "air" }

// Replaceable ...
func (Air) Replaceable() int { return 9999 }

// Solid is a full block that any block may attach to on any of its faces. It
// may be used as a simple support block.
type Solid struct {
	// Name is the code of the block.
	Name string
}

// Code ...
func (s Solid) Code() string { return s.Name }

// CanAttachBlockAt ...
func (Solid) CanAttachBlockAt(BlockSource, Block, cube.Pos, cube.Face) bool { return true }

// ReplaceabilityOf returns the replaceability of a block.
func ReplaceabilityOf(b Block) int {
	if r, ok := b.(Replaceable); ok {
		return r.Replaceable()
	}
	return 0
}

// CanAttach reports if b may be attached to the face passed of the block at
// pos.
func CanAttach(src BlockSource, b Block, pos cube.Pos, face cube.Face) bool {
	s, ok := src.Block(pos).(AttachmentSupport)
	return ok && s.CanAttachBlockAt(src, b, pos, face)
}
