package block

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/chewxy/math32"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/dm-vev/candelight/server/block/model"
	"github.com/dm-vev/candelight/server/block/mount"
	"github.com/dm-vev/candelight/server/lang"
	"github.com/dm-vev/candelight/server/shape"
	"github.com/dm-vev/candelight/server/world"
	"github.com/dm-vev/candelight/server/world/sound"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// testShape is a candelabra base holding three wicks at (4,8,8), (8,8,8) and
// (12,8,8) sixteenths of a block.
const testShape = `{
  "elements": [{
    "name": "Base",
    "from": [6, 0, 6],
    "to": [10, 2, 10],
    "faces": {
      "up": {"texture": "#metal", "uv": [0, 0, 4, 4]},
      "north": {"texture": "#metal", "uv": [0, 0, 4, 2]}
    },
    "attachmentpoints": [
      {"code": "Point1", "posX": -2, "posY": 8, "posZ": 2},
      {"code": "Point2", "posX": 2, "posY": 8, "posZ": 2},
      {"code": "Point3", "posX": 6, "posY": 8, "posZ": 2}
    ]
  }]
}`

var stone = world.Solid{Name: "stone"}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// shapeFS returns a file system holding the shape of every state of a
// candelabra with the base name passed.
func shapeFS(base string, maxCandles int) fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, pose := range []mount.Pose{mount.PoseUp, mount.PoseDown, mount.PoseWall} {
		for n := 0; n <= maxCandles; n++ {
			for _, lit := range []bool{false, true} {
				fsys[shape.Path(base, pose, n, lit)] = &fstest.MapFile{Data: []byte(testShape)}
			}
		}
	}
	return fsys
}

func newTestCandelabra(maxCandles int) (*Candelabra, *shape.Metrics) {
	metrics := shape.NewMetrics()
	c := CandelabraConfig{
		Code:       "candelabra3-brass",
		MaxCandles: maxCandles,
		Shapes:     shape.NewLibrary(shapeFS("candelabra3", maxCandles), discardLogger()),
		Metrics:    metrics,
		Log:        discardLogger(),
		Lang:       lang.New(),
	}.New()
	return c, metrics
}

type testUser struct {
	mode      world.GameMode
	sneaking  bool
	held      string
	heldCount int
	yaw       float64
	full      bool

	given  int
	errors []string
	msgs   []string
}

func (u *testUser) UUID() uuid.UUID          { return uuid.Nil }
func (u *testUser) Rotation() cube.Rotation  { return cube.Rotation{u.yaw, 0} }
func (u *testUser) Sneaking() bool           { return u.sneaking }
func (u *testUser) GameMode() world.GameMode { return u.mode }
func (u *testUser) Language() language.Tag   { return language.English }

func (u *testUser) HeldItem() string {
	if u.heldCount <= 0 {
		return ""
	}
	return u.held
}

func (u *testUser) ConsumeHeldItem(n int) { u.heldCount -= n }

func (u *testUser) GiveItem(_ string, n int) bool {
	if u.full {
		return false
	}
	u.given += n
	return true
}

func (u *testUser) SendError(code, msg string) {
	u.errors = append(u.errors, code)
	u.msgs = append(u.msgs, msg)
}

type recorder struct {
	world.NopViewer
	sounds    []world.Sound
	particles []mgl64.Vec3
	entities  int
}

func (r *recorder) ViewSound(_ mgl64.Vec3, s world.Sound) { r.sounds = append(r.sounds, s) }
func (r *recorder) ViewParticle(pos mgl64.Vec3, _ world.Particle) {
	r.particles = append(r.particles, pos)
}
func (r *recorder) ViewBlockEntity(cube.Pos, map[string]any) { r.entities++ }

func newTestWorld(side world.Side) (*world.World, *recorder) {
	w := world.Config{Log: discardLogger(), Side: side}.New()
	r := &recorder{}
	w.AddViewer(r)
	return w, r
}

// placeOnFloor places c on a stone block and returns the position of c.
func placeOnFloor(t *testing.T, w *world.World, c *Candelabra, u world.User) cube.Pos {
	t.Helper()
	pos := cube.Pos{0, 65, 0}
	w.Exec(func(tx world.Tx) {
		tx.SetBlock(pos.Side(cube.FaceDown), stone)
		if err := c.Place(tx, pos, cube.FaceUp, u); err != nil {
			t.Fatalf("expected placement to succeed, got %v", err)
		}
	})
	w.Tick()
	return pos
}

func entityAt(t *testing.T, tx world.Tx, pos cube.Pos) *CandelabraEntity {
	t.Helper()
	be, ok := tx.BlockEntity(pos)
	if !ok {
		t.Fatalf("expected block entity at %v", pos)
	}
	return be.(*CandelabraEntity)
}

func TestPlaceSetsFacingFromUser(t *testing.T) {
	w, _ := newTestWorld(world.SideServer)
	c, _ := newTestCandelabra(3)
	u := &testUser{yaw: 0}
	pos := placeOnFloor(t, w, c, u)

	w.Exec(func(tx world.Tx) {
		e := entityAt(t, tx, pos)
		if e.AttachFace != cube.FaceUp {
			t.Fatalf("expected attach face up, got %v", e.AttachFace)
		}
		if want := mount.FacingFromYaw(0); e.HorFacing != want {
			t.Fatalf("expected facing %v, got %v", want, e.HorFacing)
		}
		if e.CandleCount != 0 || e.Lit {
			t.Fatalf("expected empty unlit candelabra, got %+v", e)
		}
	})
}

func TestPlaceOnWallKeepsDefaultFacing(t *testing.T) {
	w, _ := newTestWorld(world.SideServer)
	c, _ := newTestCandelabra(1)
	pos := cube.Pos{1, 64, 0}
	w.Exec(func(tx world.Tx) {
		tx.SetBlock(pos.Side(cube.FaceWest), stone)
		if err := c.Place(tx, pos, cube.FaceEast, &testUser{yaw: 90}); err != nil {
			t.Fatalf("expected placement to succeed, got %v", err)
		}
		e := entityAt(t, tx, pos)
		if e.AttachFace != cube.FaceEast || e.HorFacing != cube.North {
			t.Fatalf("expected east wall facing north, got %v %v", e.AttachFace, e.HorFacing)
		}
	})
}

func TestPlaceFailures(t *testing.T) {
	w, _ := newTestWorld(world.SideServer)
	c, _ := newTestCandelabra(1)
	pos := cube.Pos{0, 64, 0}
	w.Exec(func(tx world.Tx) {
		if err := c.Place(tx, pos, cube.FaceUp, nil); !errors.Is(err, ErrRequireAttachable) {
			t.Fatalf("expected ErrRequireAttachable without support, got %v", err)
		}
		tx.SetBlock(pos, stone)
		tx.SetBlock(pos.Side(cube.FaceDown), stone)
		err := c.Place(tx, pos, cube.FaceUp, nil)
		if !errors.Is(err, ErrNotReplaceable) {
			t.Fatalf("expected ErrNotReplaceable in an occupied cell, got %v", err)
		}
		var perr PlacementError
		if !errors.As(err, &perr) || perr.Code() != "notreplaceable" {
			t.Fatalf("expected failure code notreplaceable, got %v", err)
		}
		if _, ok := tx.Block(pos).(*Candelabra); ok {
			t.Fatalf("expected failed placement to leave the cell unchanged")
		}
	})
}

func TestPlaceAndLightThreeCandles(t *testing.T) {
	w, r := newTestWorld(world.SideServer)
	c, _ := newTestCandelabra(3)
	u := &testUser{mode: world.GameModeCreative, held: CandleItem, heldCount: 1}
	pos := placeOnFloor(t, w, c, u)

	for i := 0; i < 3; i++ {
		w.Exec(func(tx world.Tx) {
			if !c.Activate(pos, tx, u) {
				t.Fatalf("expected candle %d to be added", i+1)
			}
		})
		w.Tick()
	}
	if u.heldCount != 1 {
		t.Fatalf("expected creative user to keep their candle, got %d", u.heldCount)
	}

	var unlitKey string
	w.Exec(func(tx world.Tx) {
		e := entityAt(t, tx, pos)
		if _, ok := e.Tesselate(); !ok {
			t.Fatalf("expected geometry for three unlit candles")
		}
		unlitKey = e.cache.Keys()[e.cache.Len()-1]
	})
	if !strings.Contains(unlitKey, "candle3") || strings.Contains(unlitKey, "-glow") {
		t.Fatalf("unexpected unlit cache key %q", unlitKey)
	}

	u.held = ""
	w.Exec(func(tx world.Tx) {
		if !c.Activate(pos, tx, u) {
			t.Fatalf("expected candles to be lit")
		}
	})
	if _, ok := w.Light(pos); ok {
		t.Fatalf("expected light to be recomputed in the next tick only")
	}
	w.Tick()
	if l, ok := w.Light(pos); !ok || l != (world.LightHSV{Hue: 7, Saturation: 7, Value: 9}) {
		t.Fatalf("expected light (7,7,9), got %v (%v)", l, ok)
	}

	w.Exec(func(tx world.Tx) {
		e := entityAt(t, tx, pos)
		if _, ok := e.Tesselate(); !ok {
			t.Fatalf("expected geometry for three lit candles")
		}
		key := e.cache.Keys()[e.cache.Len()-1]
		if key == unlitKey || !strings.Contains(key, "candle3-glow") {
			t.Fatalf("expected lit state to use a new cache key, got %q", key)
		}
		if n := len(e.WickPoints()); n == 0 || n > c.MaxCandles() {
			t.Fatalf("expected between 1 and %d wick points, got %d", c.MaxCandles(), n)
		}
	})
	if _, ok := r.sounds[len(r.sounds)-1].(sound.LightCandle); !ok {
		t.Fatalf("expected light sound, got %v", r.sounds[len(r.sounds)-1])
	}
}

func TestAddRemoveCandleRoundTrip(t *testing.T) {
	w, _ := newTestWorld(world.SideServer)
	c, _ := newTestCandelabra(2)
	pos := placeOnFloor(t, w, c, nil)

	w.Exec(func(tx world.Tx) {
		e := entityAt(t, tx, pos)
		if e.RemoveCandle(tx) {
			t.Fatalf("expected removing from an empty candelabra to do nothing")
		}
		if e.CandleCount != 0 || e.Lit {
			t.Fatalf("expected empty candelabra to stay unchanged, got %+v", e)
		}

		e.AddCandle(tx)
		e.ToggleLit(tx)
		e.AddCandle(tx)
		if e.AddCandle(tx) {
			t.Fatalf("expected full candelabra to refuse another candle")
		}
		e.RemoveCandle(tx)
		if e.CandleCount != 1 || !e.Lit {
			t.Fatalf("expected one lit candle to remain, got %+v", e)
		}
		e.RemoveCandle(tx)
		if e.CandleCount != 0 || e.Lit {
			t.Fatalf("expected last removal to put out the candelabra, got %+v", e)
		}

		e.ToggleLit(tx)
		e.ToggleLit(tx)
		if e.Lit {
			t.Fatalf("expected toggling twice to restore the lit state")
		}
	})
}

func TestLightGrowsWithCandles(t *testing.T) {
	w, _ := newTestWorld(world.SideServer)
	c, _ := newTestCandelabra(3)
	pos := placeOnFloor(t, w, c, nil)

	w.Exec(func(tx world.Tx) {
		e := entityAt(t, tx, pos)
		e.Lit = true
		if _, ok := c.LightHSV(pos, tx); ok {
			t.Fatalf("expected no light without candles")
		}
		var last uint8
		for i := 1; i <= 3; i++ {
			e.CandleCount = i
			l, ok := c.LightHSV(pos, tx)
			if !ok || l.Value <= last {
				t.Fatalf("expected light to grow with %d candles, got %v", i, l)
			}
			last = l.Value
		}
	})
}

func TestActivateSurvivalExchangesCandles(t *testing.T) {
	w, _ := newTestWorld(world.SideServer)
	c, _ := newTestCandelabra(2)
	u := &testUser{mode: world.GameModeSurvival, held: CandleItem, heldCount: 2}
	pos := placeOnFloor(t, w, c, u)

	w.Exec(func(tx world.Tx) {
		c.Activate(pos, tx, u)
		if u.heldCount != 1 {
			t.Fatalf("expected one candle to be consumed, got %d left", u.heldCount)
		}
		u.sneaking, u.full = true, true
		if c.Activate(pos, tx, u) {
			t.Fatalf("expected removal to fail with a full inventory")
		}
		if e := entityAt(t, tx, pos); e.CandleCount != 1 {
			t.Fatalf("expected candle to stay in the candelabra, got %d", e.CandleCount)
		}
		u.full = false
		if !c.Activate(pos, tx, u) || u.given != 1 {
			t.Fatalf("expected candle to be given back, got %d", u.given)
		}
	})
}

func TestActivateErrors(t *testing.T) {
	w, _ := newTestWorld(world.SideServer)
	c, _ := newTestCandelabra(1)
	u := &testUser{mode: world.GameModeCreative}
	pos := placeOnFloor(t, w, c, u)

	w.Exec(func(tx world.Tx) {
		if c.Activate(pos, tx, u) {
			t.Fatalf("expected lighting an empty candelabra to fail")
		}
		u.sneaking = true
		if c.Activate(pos, tx, u) {
			t.Fatalf("expected removing from an empty candelabra to fail")
		}
		u.sneaking, u.held, u.heldCount = false, CandleItem, 1
		c.Activate(pos, tx, u)
		if c.Activate(pos, tx, u) {
			t.Fatalf("expected adding to a full candelabra to fail")
		}
	})
	want := []string{"notenoughcandles", "candelabraempty", "candelabrafull"}
	if len(u.errors) != len(want) {
		t.Fatalf("expected errors %v, got %v", want, u.errors)
	}
	for i := range want {
		if u.errors[i] != want[i] {
			t.Fatalf("expected errors %v, got %v", want, u.errors)
		}
	}
	if u.msgs[2] != "Candelabra is full" {
		t.Fatalf("expected translated message, got %q", u.msgs[2])
	}
}

func TestBreaksWithoutSupport(t *testing.T) {
	w, _ := newTestWorld(world.SideServer)
	c, _ := newTestCandelabra(1)
	pos := placeOnFloor(t, w, c, nil)
	w.Exec(func(tx world.Tx) {
		e := entityAt(t, tx, pos)
		e.AddCandle(tx)
		e.ToggleLit(tx)
	})
	w.Tick()
	if _, ok := w.Light(pos); !ok {
		t.Fatalf("expected lit candelabra to emit light")
	}

	w.Exec(func(tx world.Tx) {
		tx.BreakBlock(pos.Side(cube.FaceDown))
	})
	w.Tick()
	w.Exec(func(tx world.Tx) {
		if _, ok := tx.Block(pos).(world.Air); !ok {
			t.Fatalf("expected candelabra to break, got %v", tx.Block(pos))
		}
	})
	if _, ok := w.Light(pos); ok {
		t.Fatalf("expected light to be retracted")
	}
}

func TestEncodeDecodeNBT(t *testing.T) {
	w, _ := newTestWorld(world.SideServer)
	c, _ := newTestCandelabra(3)
	pos := placeOnFloor(t, w, c, nil)

	w.Exec(func(tx world.Tx) {
		e := entityAt(t, tx, pos)
		e.CandleCount, e.Lit, e.HorFacing = 2, true, cube.West
		data := e.EncodeNBT()
		if data["id"] != "Candelabra" || data["candles"] != int32(2) || data["horFacing"] != "west" || data["attachFace"] != "up" {
			t.Fatalf("unexpected encoded data %v", data)
		}

		decoded := c.NewBlockEntity(pos).(*CandelabraEntity)
		decoded.DecodeNBT(tx, data)
		if decoded.CandleCount != 2 || !decoded.Lit || decoded.HorFacing != cube.West || decoded.AttachFace != cube.FaceUp {
			t.Fatalf("expected decoded state to match, got %+v", decoded)
		}
	})
	if n := w.PendingTasks(pos); n == 0 {
		t.Fatalf("expected decoding on the server to request a relight")
	}
}

func TestDecodeNBTClampsAndDefaults(t *testing.T) {
	w, _ := newTestWorld(world.SideServer)
	c, _ := newTestCandelabra(2)
	w.Exec(func(tx world.Tx) {
		e := c.NewBlockEntity(cube.Pos{}).(*CandelabraEntity)
		e.DecodeNBT(tx, map[string]any{"candles": int32(9), "attachFace": "sideways"})
		if e.CandleCount != 2 {
			t.Fatalf("expected count to be clamped to 2, got %d", e.CandleCount)
		}
		if e.AttachFace != cube.FaceUp || e.HorFacing != cube.North {
			t.Fatalf("expected defaults up and north, got %v %v", e.AttachFace, e.HorFacing)
		}

		// Counts outside the int32 range clamp rather than wrap around.
		e.DecodeNBT(tx, map[string]any{"candles": int64(1<<32 + 1)})
		if e.CandleCount != 2 {
			t.Fatalf("expected large count to be clamped to 2, got %d", e.CandleCount)
		}
		e.DecodeNBT(tx, map[string]any{"candles": int64(-1 << 32)})
		if e.CandleCount != 0 {
			t.Fatalf("expected negative count to be clamped to 0, got %d", e.CandleCount)
		}
	})
}

func TestDecodeNBTOnClientMarksDirty(t *testing.T) {
	w, r := newTestWorld(world.SideClient)
	c, _ := newTestCandelabra(1)
	pos := cube.Pos{}
	w.Exec(func(tx world.Tx) {
		tx.SetBlock(pos, c)
		e := entityAt(t, tx, pos)
		e.DecodeNBT(tx, map[string]any{"candles": int32(1), "lit": uint8(1)})
	})
	if r.entities != 1 {
		t.Fatalf("expected client to mark the entity dirty once, got %d", r.entities)
	}
	if n := w.PendingTasks(pos); n != 0 {
		t.Fatalf("expected no relight on the client, got %d tasks", n)
	}
}

func TestRelightToleratesRemovedBlock(t *testing.T) {
	w, _ := newTestWorld(world.SideServer)
	pos := cube.Pos{3, 3, 3}
	w.Exec(func(tx world.Tx) {
		RequestRelight(tx, pos, &world.LightHSV{Hue: 7, Saturation: 7, Value: 7})
	})
	w.Tick()
	w.Exec(func(tx world.Tx) {
		if _, ok := tx.Block(pos).(world.Air); !ok {
			t.Fatalf("expected relight of an empty cell to leave it empty")
		}
	})
}

func TestBoxes(t *testing.T) {
	w, _ := newTestWorld(world.SideServer)
	c, _ := newTestCandelabra(1)
	pos := cube.Pos{0, 64, 0}
	w.Exec(func(tx world.Tx) {
		full := c.SelectionBoxes(pos, tx)
		if len(full) != 1 || full[0].Max()[1] != 1 || full[0].Min()[1] != 0 {
			t.Fatalf("expected full block without an entity, got %v", full)
		}

		tx.SetBlock(pos.Side(cube.FaceWest), stone)
		if err := c.Place(tx, pos, cube.FaceEast, nil); err != nil {
			t.Fatalf("expected placement to succeed, got %v", err)
		}
		got := c.CollisionBoxes(pos, tx)
		if len(got) != 1 || got[0] != (model.Candelabra{Variant: 3, Face: cube.FaceEast}).BBox()[0] {
			t.Fatalf("expected the east wall box of the model, got %v", got)
		}
		// The stone the candelabra hangs on lies to the west.
		if lo, hi := got[0].Min(), got[0].Max(); lo[0] != 0 || hi[0] != 0.375 {
			t.Fatalf("expected box against the west side of the block, got %v", got[0])
		}
		if sel := c.SelectionBoxes(pos, tx); sel[0] != got[0] {
			t.Fatalf("expected selection and collision boxes to match")
		}
	})
}

func TestParticleTickSpawnsAtWicks(t *testing.T) {
	w, r := newTestWorld(world.SideServer)
	c, _ := newTestCandelabra(3)
	pos := placeOnFloor(t, w, c, nil)

	w.Exec(func(tx world.Tx) {
		c.ParticleTick(tx, pos, 0.05, 0)
		if len(r.particles) != 0 {
			t.Fatalf("expected no particles while unlit")
		}
		e := entityAt(t, tx, pos)
		e.AddCandle(tx)
		e.AddCandle(tx)
		e.ToggleLit(tx)
		c.ParticleTick(tx, pos, 0.05, 0.5)

		wicks := e.WickPoints()
		if len(r.particles) != 2*len(c.conf.LitParticles) {
			t.Fatalf("expected particles at two wicks, got %d", len(r.particles))
		}
		w0 := wicks[0]
		want := pos.Vec3().Add(mgl64.Vec3{float64(w0[0]), float64(w0[1]), float64(w0[2])})
		if r.particles[0] != want {
			t.Fatalf("expected first particle at %v, got %v", want, r.particles[0])
		}
	})
}

func TestMissingShapeCachesNothing(t *testing.T) {
	w, _ := newTestWorld(world.SideServer)
	c := CandelabraConfig{
		Code:   "candelabra",
		Shapes: shape.NewLibrary(fstest.MapFS{}, discardLogger()),
		Log:    discardLogger(),
	}.New()
	pos := placeOnFloor(t, w, c, nil)
	w.Exec(func(tx world.Tx) {
		e := entityAt(t, tx, pos)
		if _, ok := e.Tesselate(); ok {
			t.Fatalf("expected no geometry without a shape asset")
		}
		if e.WickPoints() != nil {
			t.Fatalf("expected no wick points without a shape asset")
		}
		if e.cache.Len() != 0 {
			t.Fatalf("expected nothing to be cached")
		}
	})
}

func TestGeometryCachedPerState(t *testing.T) {
	w, _ := newTestWorld(world.SideServer)
	c, metrics := newTestCandelabra(3)
	pos := placeOnFloor(t, w, c, nil)
	w.Exec(func(tx world.Tx) {
		e := entityAt(t, tx, pos)
		first := e.WickPoints()
		mesh, _ := e.Tesselate()
		mesh.XYZ[0] = 100

		again, _ := e.Tesselate()
		if again.XYZ[0] == 100 {
			t.Fatalf("expected tesselation to hand out copies")
		}
		second := e.WickPoints()
		if len(first) != len(second) {
			t.Fatalf("expected wick points to be deterministic")
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("expected wick points to be deterministic, got %v and %v", first, second)
			}
		}
	})
	if snap := metrics.Snapshot(); snap.Misses != 1 || snap.Hits != 3 {
		t.Fatalf("expected 1 miss and 3 hits, got %+v", snap)
	}
}

func TestWicksFollowMeshRotation(t *testing.T) {
	for _, face := range cube.Faces() {
		for _, facing := range cube.Directions() {
			rad := mount.YawRadians(face, facing)
			p := mgl32.Vec3{4.0 / 16, 0.5, 8.0 / 16}

			m := &shape.Mesh{XYZ: []float32{p[0], p[1], p[2]}}
			m.RotateY(blockCentre, rad)
			wicks := []mgl32.Vec3{p}
			rotateWicks(wicks, -rad)

			got, want := wicks[0], m.Vertex(0)
			for i := 0; i < 3; i++ {
				if math32.Abs(got[i]-want[i]) > 1e-5 {
					t.Fatalf("expected wick at %v to follow mesh for %v %v, got %v", want, face, facing, got)
				}
			}
		}
	}
}

func TestWicksTurnWithFacing(t *testing.T) {
	w, _ := newTestWorld(world.SideServer)
	c, _ := newTestCandelabra(3)
	pos := placeOnFloor(t, w, c, nil)
	w.Exec(func(tx world.Tx) {
		e := entityAt(t, tx, pos)
		e.CandleCount = 3
		for facing, want := range map[cube.Direction]mgl32.Vec3{
			cube.South: {0.25, 0.5, 0.5},
			cube.East:  {0.5, 0.5, 0.75},
			cube.North: {0.75, 0.5, 0.5},
			cube.West:  {0.5, 0.5, 0.25},
		} {
			e.HorFacing = facing
			wicks := e.WickPoints()
			if len(wicks) != 3 {
				t.Fatalf("expected 3 wicks facing %v, got %v", facing, wicks)
			}
			if !wicks[0].ApproxEqualThreshold(want, 1e-5) {
				t.Fatalf("expected first wick facing %v at %v, got %v", facing, want, wicks[0])
			}
		}
	})
}

func TestRefreshedShapeReachesPlacedBlock(t *testing.T) {
	fsys := shapeFS("candelabra", 1)
	lib := shape.NewLibrary(fsys, discardLogger())
	c := CandelabraConfig{Code: "candelabra", Shapes: lib, Log: discardLogger()}.New()
	w, _ := newTestWorld(world.SideServer)
	pos := placeOnFloor(t, w, c, nil)

	var before, after int
	w.Exec(func(tx world.Tx) {
		m, ok := entityAt(t, tx, pos).Tesselate()
		if !ok {
			t.Fatalf("expected geometry for the placed block")
		}
		before = m.VertexCount()
	})

	path := shape.Path("candelabra", mount.PoseUp, 0, false)
	fsys[path] = &fstest.MapFile{Data: []byte(strings.Replace(testShape,
		`"up": {"texture": "#metal", "uv": [0, 0, 4, 4]},`,
		`"up": {"texture": "#metal", "uv": [0, 0, 4, 4]}, "south": {"texture": "#metal", "uv": [0, 0, 4, 2]},`, 1))}
	if changed, err := lib.Refresh(); err != nil || len(changed) != 1 || changed[0] != path {
		t.Fatalf("expected %v to be refreshed, got %v (%v)", path, changed, err)
	}

	w.Exec(func(tx world.Tx) {
		m, _ := entityAt(t, tx, pos).Tesselate()
		after = m.VertexCount()
	})
	if after <= before {
		t.Fatalf("expected refreshed shape with more vertices than %d, got %d", before, after)
	}
}

func TestCapability(t *testing.T) {
	c, _ := newTestCandelabra(1)
	if _, ok := AsLightEmittingAttachable(c); !ok {
		t.Fatalf("expected candelabra to be a LightEmittingAttachable")
	}
	if _, ok := AsLightEmittingAttachable(stone); ok {
		t.Fatalf("expected stone not to be a LightEmittingAttachable")
	}
}

func TestShapeBase(t *testing.T) {
	if got := shapeBase("candelabra3-brass"); got != "candelabra3" {
		t.Fatalf("expected base candelabra3, got %q", got)
	}
	if got := shapeBase("candelabra"); got != "candelabra" {
		t.Fatalf("expected base candelabra, got %q", got)
	}
}
