package block

import (
	"log/slog"
	"strings"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/dm-vev/candelight/server/block/model"
	"github.com/dm-vev/candelight/server/block/mount"
	"github.com/dm-vev/candelight/server/internal/mathutil"
	"github.com/dm-vev/candelight/server/lang"
	"github.com/dm-vev/candelight/server/shape"
	"github.com/dm-vev/candelight/server/world"
	"github.com/dm-vev/candelight/server/world/particle"
	"github.com/dm-vev/candelight/server/world/sound"
	fcube "github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// CandleItem is the code of the item that is put into candle holders.
const CandleItem = "candle"

// CandelabraConfig holds the settings of a candelabra block type.
type CandelabraConfig struct {
	// Code is the code of the block, such as "candelabra2-iron". The base name
	// of its shape assets is the part before the first '-' and the size
	// variant is the digit following "candelabra".
	Code string
	// MaxCandles is the number of candles the candelabra holds at most. It
	// defaults to 1.
	MaxCandles int
	// Replaceability is the replaceability of the candelabra. The block may
	// only be placed in cells at least as replaceable. It defaults to 100.
	Replaceability int
	// Shapes is the library shape assets are loaded from. Without one, the
	// candelabra has no geometry.
	Shapes *shape.Library
	// CacheSize is the number of orientations every block entity keeps
	// geometry of. Zero means shape.DefaultCacheSize.
	CacheSize int
	// Metrics, if set, counts geometry cache hits, misses and evictions.
	Metrics *shape.Metrics
	// LitParticles are spawned at every burning wick during a particle tick.
	// If nil, particle.CandleFlame is used.
	LitParticles []world.Particle
	// Log is the Logger used by the block. If nil, slog.Default() is used.
	Log *slog.Logger
	// Lang translates the errors shown to users.
	Lang *lang.Translator
}

// New creates a Candelabra block type using the CandelabraConfig conf. New
// panics if conf.Code is empty.
func (conf CandelabraConfig) New() *Candelabra {
	if conf.Code == "" {
		panic("candelabra: block code must not be empty")
	}
	if conf.MaxCandles <= 0 {
		conf.MaxCandles = 1
	}
	if conf.Replaceability <= 0 {
		conf.Replaceability = 100
	}
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.LitParticles == nil {
		for _, f := range particle.CandleFlame() {
			conf.LitParticles = append(conf.LitParticles, f)
		}
	}
	return &Candelabra{conf: conf, base: shapeBase(conf.Code), variant: model.VariantFromCode(conf.Code)}
}

// Candelabra is a block holding a number of candles that may be lit
// together. It attaches to any face of a support block. The mutable state of
// a placed candelabra lives in its CandelabraEntity.
type Candelabra struct {
	conf    CandelabraConfig
	base    string
	variant int
}

// Code ...
func (c *Candelabra) Code() string {
	return c.conf.Code
}

// Replaceable ...
func (c *Candelabra) Replaceable() int {
	return c.conf.Replaceability
}

// MaxCandles returns the number of candles the candelabra holds at most.
func (c *Candelabra) MaxCandles() int {
	return c.conf.MaxCandles
}

// NewBlockEntity ...
func (c *Candelabra) NewBlockEntity(pos cube.Pos) world.BlockEntity {
	return &CandelabraEntity{block: c, pos: pos, AttachFace: cube.FaceUp, HorFacing: cube.North}
}

// Place places the candelabra at pos, attached to the face passed of the
// block behind it. The user, which may be nil, decides which way a
// candelabra on a floor or ceiling faces.
func (c *Candelabra) Place(tx world.Tx, pos cube.Pos, face cube.Face, user world.User) error {
	if world.ReplaceabilityOf(tx.Block(pos)) < c.conf.Replaceability {
		return ErrNotReplaceable
	}
	if !world.CanAttach(tx, c, pos.Side(face.Opposite()), face) {
		return ErrRequireAttachable
	}
	tx.SetBlock(pos, c)

	e, ok := c.entity(tx, pos)
	if !ok {
		return nil
	}
	e.SetAttachFace(face)
	if mount.PoseOf(face) != mount.PoseWall {
		facing := cube.North
		if user != nil {
			facing = mount.FacingFromYaw(user.Rotation().Yaw())
		}
		e.SetHorizontalFacing(facing)
	}
	e.markDirty(tx)
	c.conf.Log.Debug("Placed candelabra.", "code", c.conf.Code, "pos", pos, "face", face)
	return nil
}

// Supported reports if the candelabra at pos is still attached to a block
// that supports it.
func (c *Candelabra) Supported(src world.BlockSource, pos cube.Pos) bool {
	e, ok := c.entity(src, pos)
	if !ok {
		return true
	}
	return world.CanAttach(src, c, pos.Side(e.AttachFace.Opposite()), e.AttachFace)
}

// NeighbourUpdateTick ...
func (c *Candelabra) NeighbourUpdateTick(pos, _ cube.Pos, tx world.Tx) {
	if !c.Supported(tx, pos) {
		c.Break(tx, pos)
	}
}

// Break removes the candelabra at pos, retracting the light it emitted.
func (c *Candelabra) Break(tx world.Tx, pos cube.Pos) {
	if l, ok := c.LightHSV(pos, tx); ok {
		tx.RemoveBlockLight(l, pos)
	}
	tx.BreakBlock(pos)
}

// Activate handles a user interacting with the candelabra at pos. Sneaking
// users take a candle out, users holding a candle put one in and all other
// users light or put out the candles. False is returned if nothing changed.
func (c *Candelabra) Activate(pos cube.Pos, tx world.Tx, u world.User) bool {
	e, ok := c.entity(tx, pos)
	if !ok {
		return false
	}
	survival := u.GameMode() == world.GameModeSurvival

	if u.Sneaking() {
		if e.CandleCount <= 0 {
			c.sendError(u, lang.CandelabraEmpty, lang.CandelabraEmpty)
			return false
		}
		if survival && !u.GiveItem(CandleItem, 1) {
			return false
		}
		e.RemoveCandle(tx)
		tx.PlaySound(pos.Vec3Centre(), sound.AddRemoveCandle{})
		return true
	}
	if u.HeldItem() == CandleItem {
		if e.CandleCount >= c.conf.MaxCandles {
			c.sendError(u, lang.CandelabraFull, lang.CandelabraFull)
			return false
		}
		if survival {
			u.ConsumeHeldItem(1)
		}
		e.AddCandle(tx)
		tx.PlaySound(pos.Vec3Centre(), sound.AddRemoveCandle{})
		return true
	}
	if e.CandleCount <= 0 {
		c.sendError(u, "notenoughcandles", lang.NeedCandlesToLight)
		return false
	}
	willLight := !e.Lit
	e.ToggleLit(tx)
	if willLight {
		tx.PlaySound(pos.Vec3Centre(), sound.LightCandle{})
	} else {
		tx.PlaySound(pos.Vec3Centre(), sound.UnlightCandle{})
	}
	return true
}

// LightHSV ...
func (c *Candelabra) LightHSV(pos cube.Pos, src world.BlockSource) (world.LightHSV, bool) {
	e, ok := c.entity(src, pos)
	if !ok || !e.Lit || e.CandleCount <= 0 {
		return world.LightHSV{}, false
	}
	return world.LightHSV{Hue: 7, Saturation: 7, Value: uint8(6 + e.CandleCount)}, true
}

// RequestRelight ...
func (c *Candelabra) RequestRelight(tx world.Tx, pos cube.Pos, old *world.LightHSV) {
	RequestRelight(tx, pos, old)
}

// SelectionBoxes returns the boxes users select the candelabra at pos with.
func (c *Candelabra) SelectionBoxes(pos cube.Pos, src world.BlockSource) []fcube.BBox {
	return c.boxes(pos, src)
}

// CollisionBoxes returns the boxes entities collide with at pos.
func (c *Candelabra) CollisionBoxes(pos cube.Pos, src world.BlockSource) []fcube.BBox {
	return c.boxes(pos, src)
}

func (c *Candelabra) boxes(pos cube.Pos, src world.BlockSource) []fcube.BBox {
	e, ok := c.entity(src, pos)
	if !ok {
		return []fcube.BBox{fcube.Box(0, 0, 0, 1, 1, 1)}
	}
	return e.Model().BBox()
}

// ParticleTick spawns the lit particles of the candelabra at pos above every
// burning wick. wind is the wind affectedness at pos.
func (c *Candelabra) ParticleTick(tx world.Tx, pos cube.Pos, _, wind float32) {
	e, ok := c.entity(tx, pos)
	if !ok || !e.Lit || e.CandleCount <= 0 || len(c.conf.LitParticles) == 0 {
		return
	}
	wicks := e.WickPoints()
	if len(wicks) == 0 {
		return
	}
	base := pos.Vec3()
	for _, w := range wicks[:mathutil.Clamp(e.CandleCount, 1, len(wicks))] {
		at := base.Add(mgl64.Vec3{float64(w[0]), float64(w[1]), float64(w[2])})
		for _, p := range c.conf.LitParticles {
			if f, ok := p.(particle.Flame); ok {
				f.WindAffectedness = wind
				p = f
			}
			tx.AddParticle(at, p)
		}
	}
}

// entity returns the block entity of the candelabra at pos.
func (c *Candelabra) entity(src world.BlockSource, pos cube.Pos) (*CandelabraEntity, bool) {
	be, ok := src.BlockEntity(pos)
	if !ok {
		return nil, false
	}
	e, ok := be.(*CandelabraEntity)
	return e, ok
}

func (c *Candelabra) sendError(u world.User, code, key string) {
	u.SendError(code, c.conf.Lang.Translate(u.Language(), key))
}

// shapeBase returns the base name of the shape assets of a block code.
func shapeBase(code string) string {
	base, _, _ := strings.Cut(code, "-")
	return base
}
