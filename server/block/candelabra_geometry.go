package block

import (
	"errors"
	"strconv"

	"github.com/chewxy/math32"
	"github.com/dm-vev/candelight/server/block/mount"
	"github.com/dm-vev/candelight/server/internal/mathutil"
	"github.com/dm-vev/candelight/server/shape"
	"github.com/go-gl/mathgl/mgl32"
)

// blockCentre is the point meshes are rotated around.
var blockCentre = mgl32.Vec3{0.5, 0.5, 0.5}

// geometry resolves the mesh and wick points of the candelabra in its current
// state, using the geometry cache of the entity where possible. Nothing is
// cached if the shape asset cannot be loaded.
func (e *CandelabraEntity) geometry() (shape.Entry, bool) {
	b := e.block
	e.CandleCount = mathutil.Clamp(e.CandleCount, 0, b.conf.MaxCandles)
	if b.conf.Shapes == nil {
		return shape.Entry{}, false
	}
	if gen := b.conf.Shapes.Generation(); e.cache == nil || gen != e.generation {
		// Assets changed since the cache was filled, so all of it may be stale.
		e.cache, e.generation = shape.NewCache(b.conf.CacheSize, b.conf.Metrics), gen
	}

	path := shape.Path(b.base, mount.PoseOf(e.AttachFace), e.CandleCount, e.Lit)
	key := e.cacheKey(path)
	if entry, ok := e.cache.Get(key); ok {
		return entry, true
	}

	s, err := b.conf.Shapes.Shape(path)
	if err != nil {
		if !errors.Is(err, shape.ErrNotFound) {
			b.conf.Log.Error("load candelabra shape: "+err.Error(), "pos", e.pos, "path", path)
		}
		return shape.Entry{}, false
	}
	mesh := shape.Tesselate(s)
	wicks := wickPoints(s, b.conf.MaxCandles)

	rad := mount.YawRadians(e.AttachFace, e.HorFacing)
	mesh.RotateY(blockCentre, rad)
	rotateWicks(wicks, -rad)

	entry := shape.Entry{Mesh: mesh, Wicks: wicks}
	e.cache.Put(key, entry)
	return entry, true
}

// cacheKey returns the geometry cache key of the current state for the shape
// asset at path.
func (e *CandelabraEntity) cacheKey(path string) string {
	return path + "|" + e.AttachFace.String() + "|" + strconv.Itoa(e.CandleCount) + "|" +
		strconv.FormatBool(e.Lit) + "|" + e.HorFacing.String()
}

// wickPoints returns the attachment points Point1 through PointN of an
// unrotated shape. Points missing from the shape are skipped.
func wickPoints(s *shape.Shape, n int) []mgl32.Vec3 {
	points := make([]mgl32.Vec3, 0, n)
	for i := 1; i <= n; i++ {
		if p, ok := s.AttachmentPoint("Point" + strconv.Itoa(i)); ok {
			points = append(points, p)
		}
	}
	return points
}

// rotateWicks rotates points in place by rad radians in the horizontal plane
// around the centre of the block, leaving Y untouched. The rotation runs
// opposite to Mesh.RotateY, so points rotated by -rad line up with a mesh
// rotated by rad.
func rotateWicks(points []mgl32.Vec3, rad float32) {
	sin, cos := math32.Sincos(rad)
	for i, p := range points {
		x, z := p[0]-0.5, p[2]-0.5
		points[i] = mgl32.Vec3{x*cos - z*sin + 0.5, p[1], x*sin + z*cos + 0.5}
	}
}
