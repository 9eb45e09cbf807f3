package shape

import (
	"slices"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is renderable geometry in block space. All arrays are flat: XYZ holds
// three floats per vertex, UV two floats per vertex and Indices three indices
// per triangle. Textures holds the texture code of every quad.
type Mesh struct {
	XYZ      []float32
	UV       []float32
	Indices  []uint32
	Textures []string
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.XYZ) / 3
}

// Vertex returns the position of the vertex with index i.
func (m *Mesh) Vertex(i int) mgl32.Vec3 {
	return mgl32.Vec3{m.XYZ[i*3], m.XYZ[i*3+1], m.XYZ[i*3+2]}
}

// Clone returns a deep copy of the mesh. Callers handed a clone may modify it
// freely without affecting cached geometry.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		XYZ:      slices.Clone(m.XYZ),
		UV:       slices.Clone(m.UV),
		Indices:  slices.Clone(m.Indices),
		Textures: slices.Clone(m.Textures),
	}
}

// RotateY rotates all vertices of the mesh by rad radians around the vertical
// axis running through origin. Positive angles rotate counter-clockwise when
// looking down the Y axis.
func (m *Mesh) RotateY(origin mgl32.Vec3, rad float32) {
	sin, cos := math32.Sincos(rad)
	for i := 0; i+2 < len(m.XYZ); i += 3 {
		x, z := m.XYZ[i]-origin.X(), m.XYZ[i+2]-origin.Z()
		m.XYZ[i] = x*cos + z*sin + origin.X()
		m.XYZ[i+2] = -x*sin + z*cos + origin.Z()
	}
}

// Bounds returns the smallest box containing every vertex of the mesh. An
// empty box is returned for a mesh without vertices.
func (m *Mesh) Bounds() cube.BBox {
	if len(m.XYZ) < 3 {
		return cube.BBox{}
	}
	lo, hi := m.Vertex(0), m.Vertex(0)
	for i := 1; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		for a := 0; a < 3; a++ {
			lo[a], hi[a] = min(lo[a], v[a]), max(hi[a], v[a])
		}
	}
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

// faceCorners lists the corners of every face of a unit cuboid, wound
// counter-clockwise when viewed from outside. Components are multiplied by the
// size of the element.
var faceCorners = []struct {
	name    string
	corners [4]mgl32.Vec3
}{
	{"north", [4]mgl32.Vec3{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}}},
	{"east", [4]mgl32.Vec3{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}},
	{"south", [4]mgl32.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
	{"west", [4]mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
	{"up", [4]mgl32.Vec3{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}},
	{"down", [4]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
}

// Tesselate builds a mesh of all enabled faces of the shape, evaluated without
// any animation applied. The mesh is not rotated.
func Tesselate(s *Shape) *Mesh {
	m := &Mesh{}
	s.walk(func(e *Element, transform mgl32.Mat4) bool {
		size := e.size()
		for _, fc := range faceCorners {
			f, ok := e.Faces[fc.name]
			if !ok || f == nil || (f.Enabled != nil && !*f.Enabled) {
				continue
			}
			base := uint32(m.VertexCount())
			u1, v1 := f.UV[0]/s.TextureWidth, f.UV[1]/s.TextureHeight
			u2, v2 := f.UV[2]/s.TextureWidth, f.UV[3]/s.TextureHeight
			uvs := [4][2]float32{{u1, v2}, {u2, v2}, {u2, v1}, {u1, v1}}
			for i, c := range fc.corners {
				local := mgl32.Vec3{c.X() * size.X(), c.Y() * size.Y(), c.Z() * size.Z()}
				p := mgl32.TransformCoordinate(local, transform)
				m.XYZ = append(m.XYZ, p.X(), p.Y(), p.Z())
				m.UV = append(m.UV, uvs[i][0], uvs[i][1])
			}
			m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
			m.Textures = append(m.Textures, f.Texture)
		}
		return true
	})
	return m
}
