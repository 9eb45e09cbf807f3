package world

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Side is the side of the game that a Tx operates on.
type Side uint8

const (
	// SideServer is the authoritative side that persists data and computes
	// light.
	SideServer Side = iota
	// SideClient is the side that renders blocks and spawns particles.
	SideClient
)

// String ...
func (s Side) String() string {
	if s == SideClient {
		return "client"
	}
	return "server"
}

// BlockSource provides read access to the blocks and block entities of a
// world.
type BlockSource interface {
	// Block returns the block at pos. Air is returned for empty cells.
	Block(pos cube.Pos) Block
	// BlockEntity returns the block entity at pos, if any.
	BlockEntity(pos cube.Pos) (BlockEntity, bool)
}

// Task is a function scheduled to run in a later tick. It receives the Tx of
// the tick it runs in and must not assume that the world is unchanged since it
// was scheduled.
type Task func(tx Tx)

// Tx is access to a world during a single tick. All methods are called from
// the goroutine ticking the world.
type Tx interface {
	BlockSource
	// Side returns the side of the game the world belongs to.
	Side() Side
	// CurrentTick returns the tick the world is currently in.
	CurrentTick() int64

	// SetBlock places b at pos, creating its block entity if b is an
	// EntityBlock, and updates the neighbours of pos.
	SetBlock(pos cube.Pos, b Block)
	// BreakBlock removes the block and block entity at pos, replacing it with
	// air and updating the neighbours of pos.
	BreakBlock(pos cube.Pos)
	// ExchangeBlock replaces the block at pos with b without touching the block
	// entity or neighbours, and recomputes the light emitted at pos.
	ExchangeBlock(pos cube.Pos, b Block)
	// RemoveBlockLight retracts light previously emitted at pos.
	RemoveBlockLight(l LightHSV, pos cube.Pos)
	// MarkBlockDirty marks the block at pos for re-sync and re-render.
	MarkBlockDirty(pos cube.Pos)
	// MarkBlockEntityDirty marks the block entity at pos for re-sync and
	// persists it.
	MarkBlockEntityDirty(pos cube.Pos)
	// ScheduleTask runs task after delay ticks. The task always runs in a tick
	// after the current one, even if delay is 0 or less.
	ScheduleTask(pos cube.Pos, delay int64, task Task)

	// PlaySound plays a sound at a position.
	PlaySound(pos mgl64.Vec3, s Sound)
	// AddParticle spawns a particle at a position.
	AddParticle(pos mgl64.Vec3, p Particle)
}

// Sound is a sound that may be played in a world.
type Sound interface {
	// Asset returns the location of the sound asset, such as
	// "sounds/block/planks".
	Asset() string
}

// Particle is a particle that may be spawned in a world.
type Particle interface {
	// Kind returns a name describing the particle.
	Kind() string
}
