// Package shape decodes block shape assets, evaluates their element hierarchy
// and tesselates them into meshes.
package shape

import (
	"fmt"

	"github.com/df-mc/jsonc"
	"github.com/go-gl/mathgl/mgl32"
)

// Shape is a decoded shape asset. Coordinates are expressed in sixteenths of
// a block, as authored.
type Shape struct {
	// TextureWidth and TextureHeight are the dimensions UV coordinates are
	// expressed in. Both default to 16.
	TextureWidth  float32 `json:"textureWidth"`
	TextureHeight float32 `json:"textureHeight"`
	// Elements are the root elements of the shape.
	Elements []*Element `json:"elements"`
}

// Element is a cuboid in a shape, optionally rotated around an origin. The
// coordinates of children are relative to the From corner of their parent.
type Element struct {
	Name           string           `json:"name"`
	From           [3]float32       `json:"from"`
	To             [3]float32       `json:"to"`
	RotationOrigin *[3]float32      `json:"rotationOrigin"`
	RotationX      float32          `json:"rotationX"`
	RotationY      float32          `json:"rotationY"`
	RotationZ      float32          `json:"rotationZ"`
	Faces          map[string]*Face `json:"faces"`
	Children       []*Element       `json:"children"`
	// AttachmentPoints are named points relative to the From corner of the
	// element, such as the wicks of candles.
	AttachmentPoints []AttachmentPoint `json:"attachmentpoints"`
}

// Face is one textured side of an Element.
type Face struct {
	Texture string     `json:"texture"`
	UV      [4]float32 `json:"uv"`
	// Enabled may be set to false to keep a face from being tesselated.
	Enabled *bool `json:"enabled"`
}

// AttachmentPoint is a named location inside an Element.
type AttachmentPoint struct {
	Code      string  `json:"code"`
	PosX      float32 `json:"posX"`
	PosY      float32 `json:"posY"`
	PosZ      float32 `json:"posZ"`
	RotationX float32 `json:"rotationX"`
	RotationY float32 `json:"rotationY"`
	RotationZ float32 `json:"rotationZ"`
}

// Decode parses a shape asset. Comments are permitted.
// The document is validated before it is converted.
func Decode(data []byte) (*Shape, error) {
	var raw any
	if err := jsonc.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode shape: %w", err)
	}
	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(raw); err != nil {
		return nil, fmt.Errorf("validate shape: %w", err)
	}
	s := &Shape{}
	if err := jsonc.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode shape: %w", err)
	}
	if s.TextureWidth <= 0 {
		s.TextureWidth = 16
	}
	if s.TextureHeight <= 0 {
		s.TextureHeight = 16
	}
	return s, nil
}

// AttachmentPoint evaluates the shape without any animation applied and
// returns the position, in block units, of the first attachment point with
// the code passed.
func (s *Shape) AttachmentPoint(code string) (mgl32.Vec3, bool) {
	var (
		pos   mgl32.Vec3
		found bool
	)
	s.walk(func(e *Element, m mgl32.Mat4) bool {
		for _, ap := range e.AttachmentPoints {
			if ap.Code != code {
				continue
			}
			pos, found = m.Mul4(ap.localTransform()).Col(3).Vec3(), true
			return false
		}
		return true
	})
	return pos, found
}

// Pose evaluates the element hierarchy at rest, without any animation, and
// returns the transform from the local space of every element to block space.
func (s *Shape) Pose() map[*Element]mgl32.Mat4 {
	m := make(map[*Element]mgl32.Mat4)
	s.walk(func(e *Element, world mgl32.Mat4) bool {
		m[e] = world
		return true
	})
	return m
}

// walk calls f for every element of the shape in depth-first order, passing
// the transform from the element's local space to block space. Walking stops
// when f returns false.
func (s *Shape) walk(f func(e *Element, m mgl32.Mat4) bool) {
	var visit func(elements []*Element, parent mgl32.Mat4) bool
	visit = func(elements []*Element, parent mgl32.Mat4) bool {
		for _, e := range elements {
			m := parent.Mul4(e.localTransform())
			if !f(e, m) || !visit(e.Children, m) {
				return false
			}
		}
		return true
	}
	visit(s.Elements, mgl32.Ident4())
}

// localTransform returns the transform from the element's space to the space
// of its parent.
func (e *Element) localTransform() mgl32.Mat4 {
	var origin mgl32.Vec3
	if e.RotationOrigin != nil {
		origin = mgl32.Vec3(*e.RotationOrigin).Mul(1.0 / 16)
	}
	from := mgl32.Vec3(e.From).Mul(1.0 / 16)
	return mgl32.Translate3D(origin.X(), origin.Y(), origin.Z()).
		Mul4(rotation(e.RotationX, e.RotationY, e.RotationZ)).
		Mul4(mgl32.Translate3D(-origin.X(), -origin.Y(), -origin.Z())).
		Mul4(mgl32.Translate3D(from.X(), from.Y(), from.Z()))
}

// size returns the dimensions of the element in block units.
func (e *Element) size() mgl32.Vec3 {
	return mgl32.Vec3(e.To).Sub(mgl32.Vec3(e.From)).Mul(1.0 / 16)
}

func (ap AttachmentPoint) localTransform() mgl32.Mat4 {
	return mgl32.Translate3D(ap.PosX/16, ap.PosY/16, ap.PosZ/16).
		Mul4(rotation(ap.RotationX, ap.RotationY, ap.RotationZ))
}

// rotation returns a rotation matrix for Euler angles in degrees, applied in
// X, Y, Z order.
func rotation(x, y, z float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(mgl32.DegToRad(x)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(y))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(z)))
}
