package world

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Viewer is a viewer in the world. It can view changes that are made in the
// world, such as the addition of sounds and particles.
type Viewer interface {
	// ViewBlockUpdate is called when the block at pos was marked dirty.
	ViewBlockUpdate(pos cube.Pos, b Block)
	// ViewBlockEntity is called when the block entity at pos was marked dirty.
	ViewBlockEntity(pos cube.Pos, data map[string]any)
	// ViewSound is called when a sound is played in the world.
	ViewSound(pos mgl64.Vec3, s Sound)
	// ViewParticle is called when a particle is spawned in the world.
	ViewParticle(pos mgl64.Vec3, p Particle)
}

// NopViewer is a Viewer implementation that does not implement any behaviour.
// It may be embedded by other structs to prevent having to implement all of
// Viewer's methods.
type NopViewer struct{}

// Compile time check to make sure NopViewer implements Viewer.
var _ Viewer = NopViewer{}

func (NopViewer) ViewBlockUpdate(cube.Pos, Block)          {}
func (NopViewer) ViewBlockEntity(cube.Pos, map[string]any) {}
func (NopViewer) ViewSound(mgl64.Vec3, Sound)              {}
func (NopViewer) ViewParticle(mgl64.Vec3, Particle)        {}
