package model

import (
	"strings"

	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	"github.com/dm-vev/candelight/server/block/mount"
	"github.com/dm-vev/candelight/server/internal/mathutil"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Candelabra is the block model for a candelabra. Its box is taken from a
// table indexed by variant and pose and rotated to the orientation of the
// block.
type Candelabra struct {
	// Variant is the size variant of the candelabra, 1 through 3.
	Variant int
	// Face is the face of the support block the candelabra is attached to.
	Face df_cube.Face
	// Facing is the horizontal direction of a candelabra on a floor or ceiling.
	Facing df_cube.Direction
}

// candelabraBoxes holds the unrotated box of every variant, indexed by variant
// minus one and pose.
var candelabraBoxes = [3][3]cube.BBox{
	{
		mount.PoseUp:   cube.Box(0.375, 0, 0.375, 0.625, 0.687, 0.625),
		mount.PoseDown: cube.Box(0.375, 0.2, 0.375, 0.625, 1, 0.625),
		mount.PoseWall: cube.Box(0, 0.05, 0.375, 0.375, 0.687, 0.625),
	},
	{
		mount.PoseUp:   cube.Box(0.375, 0, 0.293, 0.632, 0.687, 0.707),
		mount.PoseDown: cube.Box(0.375, 0.2, 0.293, 0.632, 1, 0.707),
		mount.PoseWall: cube.Box(0, 0.05, 0.293, 0.375, 0.687, 0.707),
	},
	{
		mount.PoseUp:   cube.Box(0.375, 0, 0.255, 0.632, 0.718, 0.745),
		mount.PoseDown: cube.Box(0.375, 0.2, 0.255, 0.632, 1, 0.745),
		mount.PoseWall: cube.Box(0, 0.05, 0.255, 0.375, 0.718, 0.745),
	},
}

// BBox returns the oriented bounding box of the candelabra.
func (c Candelabra) BBox() []cube.BBox {
	pose := mount.PoseOf(c.Face)
	box := candelabraBoxes[mathutil.Clamp(c.Variant, 1, 3)-1][pose]
	box = RotateY90Steps(box, mount.YawSteps(c.Face, c.Facing))
	if pose == mount.PoseWall && (c.Face == df_cube.FaceEast || c.Face == df_cube.FaceWest) {
		// Wall assets are authored upside down for these two faces.
		box = TranslateY(RotateZ180(box), -0.25)
	}
	return []cube.BBox{box}
}

// VariantFromCode returns the variant encoded in a block code such as
// "candelabra2": the digit directly following the "candelabra" prefix,
// clamped to 1 through 3. 1 is returned if no such digit is present.
func VariantFromCode(code string) int {
	rest, ok := strings.CutPrefix(code, "candelabra")
	if !ok || rest == "" || rest[0] < '0' || rest[0] > '9' {
		return 1
	}
	return mathutil.Clamp(int(rest[0]-'0'), 1, 3)
}

// RotateY90Steps rotates a box within the unit cube by a number of quarter
// turns around the vertical axis through the centre of the block.
func RotateY90Steps(b cube.BBox, steps int) cube.BBox {
	steps = ((steps % 4) + 4) % 4
	lo, hi := b.Min(), b.Max()
	x1, x2, z1, z2 := lo[0], hi[0], lo[2], hi[2]
	for i := 0; i < steps; i++ {
		x1, x2, z1, z2 = 1-z2, 1-z1, x1, x2
	}
	return normalise(x1, lo[1], z1, x2, hi[1], z2)
}

// RotateZ180 rotates a box within the unit cube by half a turn around the Z
// axis through the centre of the block.
func RotateZ180(b cube.BBox) cube.BBox {
	lo, hi := b.Min(), b.Max()
	return normalise(1-hi[0], 1-hi[1], lo[2], 1-lo[0], 1-lo[1], hi[2])
}

// TranslateY moves a box vertically by dy.
func TranslateY(b cube.BBox, dy float32) cube.BBox {
	return b.Translate(mgl32.Vec3{0, dy, 0})
}

// normalise creates a box from two corners, making sure its minimum is not
// larger than its maximum on any axis.
func normalise(x1, y1, z1, x2, y2, z2 float32) cube.BBox {
	return cube.Box(min(x1, x2), min(y1, y2), min(z1, z2), max(x1, x2), max(y1, y2), max(z1, z2))
}
