// Package mount classifies how a block is attached to its support and derives
// the quarter-turn yaw its model is rendered with.
package mount

import (
	"github.com/chewxy/math32"
	"github.com/df-mc/dragonfly/server/block/cube"
)

// Pose is the mount orientation of a block relative to its support.
type Pose uint8

const (
	// PoseUp is used for blocks attached to the UP face of the block below,
	// standing on a floor.
	PoseUp Pose = iota
	// PoseDown is used for blocks attached to the DOWN face of the block above,
	// hanging from a ceiling.
	PoseDown
	// PoseWall is used for blocks attached to a vertical side of their support.
	PoseWall
)

// String returns the name of the pose as used in shape asset paths.
func (p Pose) String() string {
	switch p {
	case PoseUp:
		return "up"
	case PoseDown:
		return "down"
	}
	return "wall"
}

// assetYawOffset is the rotation, in quarter turns, that shape assets are
// authored with.
const assetYawOffset = 1

// PoseOf returns the Pose of a block attached to the face passed.
func PoseOf(face cube.Face) Pose {
	switch face {
	case cube.FaceUp:
		return PoseUp
	case cube.FaceDown:
		return PoseDown
	}
	return PoseWall
}

// HorizontalIndex returns the quarter-turn index of a horizontal direction,
// counted counter-clockwise from east: east is 0, north 1, west 2 and south 3.
// A positive rotation around the Y axis turns a model in this same order.
func HorizontalIndex(d cube.Direction) int {
	switch d {
	case cube.North:
		return 1
	case cube.West:
		return 2
	case cube.South:
		return 3
	}
	return 0
}

// YawIndex returns the quarter-turn rotation of a block attached to face.
// Floor and ceiling blocks turn with the horizontal facing recorded at
// placement, wall blocks face away from their support.
func YawIndex(face cube.Face, facing cube.Direction) int {
	if PoseOf(face) != PoseWall {
		return HorizontalIndex(facing)
	}
	return (HorizontalIndex(face.Direction()) + 2) % 4
}

// YawSteps returns the number of quarter turns applied to hand-authored
// boxes. Unlike YawDegrees, it does not include the asset offset.
func YawSteps(face cube.Face, facing cube.Direction) int {
	return YawIndex(face, facing) % 4
}

// YawDegrees returns the yaw in degrees that the model of a block attached to
// face is rotated by. The result is always one of 0, 90, 180 or 270.
func YawDegrees(face cube.Face, facing cube.Direction) float32 {
	return float32((YawIndex(face, facing)+assetYawOffset)%4) * 90
}

// YawRadians returns YawDegrees converted to radians.
func YawRadians(face cube.Face, facing cube.Direction) float32 {
	return YawDegrees(face, facing) * math32.Pi / 180
}

// FacingFromYaw returns the horizontal direction a player with the yaw passed
// is looking towards.
func FacingFromYaw(yaw float64) cube.Direction {
	return cube.Rotation{yaw, 0}.Direction()
}

// ParseFace parses the name of a face as returned by cube.Face.String.
func ParseFace(s string) (cube.Face, bool) {
	for _, f := range cube.Faces() {
		if f.String() == s {
			return f, true
		}
	}
	return 0, false
}

// ParseDirection parses the name of a horizontal direction as returned by
// cube.Direction.String.
func ParseDirection(s string) (cube.Direction, bool) {
	for _, d := range cube.Directions() {
		if d.String() == s {
			return d, true
		}
	}
	return 0, false
}
