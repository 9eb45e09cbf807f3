package world

import (
	"log/slog"
	"sync"

	"github.com/brentp/intintmap"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Config holds the settings of a World.
type Config struct {
	// Log is the Logger used by the World. If nil, slog.Default() is used.
	Log *slog.Logger
	// Side is the side of the game the World simulates. Light is only
	// computed and block entities are only persisted on SideServer.
	Side Side
	// Provider persists block entities. If nil, NopProvider is used.
	Provider Provider
}

// New creates a World using the Config conf.
func (conf Config) New() *World {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Provider == nil {
		conf.Provider = NopProvider{}
	}
	return &World{
		conf:           conf,
		blocks:         intintmap.New(64, 0.6),
		registry:       []Block{Air{}},
		runtimeIDs:     map[Block]int64{Air{}: 0},
		entities:       make(map[cube.Pos]BlockEntity),
		light:          make(map[cube.Pos]LightHSV),
		scheduledTasks: newScheduledTaskQueue(0),
	}
}

// World is an in-memory world holding blocks, block entities and the light
// they emit. All access to the blocks of a World goes through a Tx obtained
// from Exec, or through Tick. A World is safe for concurrent use.
type World struct {
	conf Config

	mu          sync.Mutex
	currentTick int64

	// blocks maps a packed block position to the runtime ID of the block at
	// that position. Positions holding air are not stored.
	blocks     *intintmap.Map
	registry   []Block
	runtimeIDs map[Block]int64

	entities map[cube.Pos]BlockEntity
	light    map[cube.Pos]LightHSV

	neighbourUpdates []neighbourUpdate
	scheduledTasks   *scheduledTaskQueue

	viewers []Viewer
}

type neighbourUpdate struct {
	pos, neighbour cube.Pos
}

// Exec runs f with a Tx for the World. Exec must not be called from within f.
func (w *World) Exec(f func(tx Tx)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	f(worldTx{w: w})
}

// Tick advances the World by one tick. Tasks due in the new tick run first,
// after which all pending neighbour updates are performed.
func (w *World) Tick() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.currentTick++
	tx := worldTx{w: w}
	w.scheduledTasks.tick(tx, w.currentTick)
	w.performNeighbourUpdates(tx)
}

// CurrentTick returns the tick the World is in.
func (w *World) CurrentTick() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.currentTick
}

// Light returns the light emitted at pos, as last computed by the World.
func (w *World) Light(pos cube.Pos) (LightHSV, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, ok := w.light[pos]
	return l, ok
}

// PendingTasks returns the number of tasks scheduled at pos that have not yet
// run.
func (w *World) PendingTasks(pos cube.Pos) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scheduledTasks.pending(pos)
}

// Side returns the side of the game the World simulates.
func (w *World) Side() Side {
	return w.conf.Side
}

// AddViewer adds a Viewer that is shown all changes made to the World.
func (w *World) AddViewer(v Viewer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.viewers = append(w.viewers, v)
}

// LoadBlock places b at pos without updating neighbours and, if b has a block
// entity, restores its data from the Provider of the World. LoadBlock must not
// be called from within Exec.
func (w *World) LoadBlock(pos cube.Pos, b Block) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	tx := worldTx{w: w}
	w.setBlock(pos, b)
	if eb, ok := b.(EntityBlock); ok {
		be := eb.NewBlockEntity(pos)
		w.entities[pos] = be

		data, found, err := w.conf.Provider.LoadBlockEntity(pos)
		if err != nil {
			return err
		}
		if found {
			be.DecodeNBT(tx, data)
		}
	}
	w.updateLight(pos)
	return nil
}

// Close closes the Provider of the World.
func (w *World) Close() error {
	return w.conf.Provider.Close()
}

// performNeighbourUpdates performs all block updates that came as a result of
// a neighbouring block being changed. Updates queued while performing them are
// left for the next tick.
func (w *World) performNeighbourUpdates(tx Tx) {
	updates := w.neighbourUpdates
	limit := len(updates)
	for i := 0; i < limit; i++ {
		update := updates[i]
		if ticker, ok := tx.Block(update.pos).(NeighbourUpdateTicker); ok {
			ticker.NeighbourUpdateTick(update.pos, update.neighbour, tx)
		}
	}
	if len(w.neighbourUpdates) > limit {
		remaining := w.neighbourUpdates[limit:]
		copy(w.neighbourUpdates, remaining)
		w.neighbourUpdates = w.neighbourUpdates[:len(remaining)]
		return
	}
	w.neighbourUpdates = w.neighbourUpdates[:0]
}

func (w *World) block(pos cube.Pos) Block {
	id, ok := w.blocks.Get(blockKey(pos))
	if !ok {
		return Air{}
	}
	return w.registry[id]
}

func (w *World) setBlock(pos cube.Pos, b Block) {
	if _, ok := b.(Air); ok {
		w.blocks.Del(blockKey(pos))
		return
	}
	w.blocks.Put(blockKey(pos), w.runtimeID(b))
}

// runtimeID returns the runtime ID of b, registering it if it was not seen
// before.
func (w *World) runtimeID(b Block) int64 {
	if id, ok := w.runtimeIDs[b]; ok {
		return id
	}
	id := int64(len(w.registry))
	w.registry = append(w.registry, b)
	w.runtimeIDs[b] = id
	return id
}

// updateLight recomputes the light emitted by the block at pos.
func (w *World) updateLight(pos cube.Pos) {
	if w.conf.Side != SideServer {
		return
	}
	if emitter, ok := w.block(pos).(LightEmitter); ok {
		if l, ok := emitter.LightHSV(pos, worldTx{w: w}); ok {
			w.light[pos] = l
			return
		}
	}
	delete(w.light, pos)
}

func (w *World) updateNeighbours(pos cube.Pos) {
	for _, f := range cube.Faces() {
		w.neighbourUpdates = append(w.neighbourUpdates, neighbourUpdate{pos: pos.Side(f), neighbour: pos})
	}
}

// blockKey packs a block position into a single int64. X and Z occupy 26 bits
// each and Y the lowest 12 bits.
func blockKey(pos cube.Pos) int64 {
	return int64(uint64(uint32(pos[0])&0x3ffffff)<<38 | uint64(uint32(pos[2])&0x3ffffff)<<12 | uint64(uint32(pos[1])&0xfff))
}

// worldTx implements Tx for a World whose lock is held.
type worldTx struct {
	w *World
}

func (tx worldTx) Block(pos cube.Pos) Block {
	return tx.w.block(pos)
}

func (tx worldTx) BlockEntity(pos cube.Pos) (BlockEntity, bool) {
	be, ok := tx.w.entities[pos]
	return be, ok
}

func (tx worldTx) Side() Side {
	return tx.w.conf.Side
}

func (tx worldTx) CurrentTick() int64 {
	return tx.w.currentTick
}

func (tx worldTx) SetBlock(pos cube.Pos, b Block) {
	w := tx.w
	w.setBlock(pos, b)
	tx.removeBlockEntity(pos)
	if eb, ok := b.(EntityBlock); ok {
		w.entities[pos] = eb.NewBlockEntity(pos)
	}
	w.updateLight(pos)
	w.updateNeighbours(pos)
}

func (tx worldTx) BreakBlock(pos cube.Pos) {
	w := tx.w
	w.setBlock(pos, Air{})
	tx.removeBlockEntity(pos)
	w.updateLight(pos)
	w.updateNeighbours(pos)
}

func (tx worldTx) removeBlockEntity(pos cube.Pos) {
	w := tx.w
	if _, ok := w.entities[pos]; !ok {
		return
	}
	delete(w.entities, pos)
	if w.conf.Side == SideServer {
		if err := w.conf.Provider.DeleteBlockEntity(pos); err != nil {
			w.conf.Log.Error("delete block entity: "+err.Error(), "pos", pos)
		}
	}
}

func (tx worldTx) ExchangeBlock(pos cube.Pos, b Block) {
	tx.w.setBlock(pos, b)
	tx.w.updateLight(pos)
}

func (tx worldTx) RemoveBlockLight(l LightHSV, pos cube.Pos) {
	w := tx.w
	if current, ok := w.light[pos]; ok && current == l {
		delete(w.light, pos)
		return
	}
	w.conf.Log.Debug("Retracted light that was not emitted.", "pos", pos, "light", l)
}

func (tx worldTx) MarkBlockDirty(pos cube.Pos) {
	b := tx.w.block(pos)
	for _, v := range tx.w.viewers {
		v.ViewBlockUpdate(pos, b)
	}
}

func (tx worldTx) MarkBlockEntityDirty(pos cube.Pos) {
	w := tx.w
	be, ok := w.entities[pos]
	if !ok {
		return
	}
	data := be.EncodeNBT()
	if w.conf.Side == SideServer {
		if err := w.conf.Provider.SaveBlockEntity(pos, data); err != nil {
			w.conf.Log.Error("save block entity: "+err.Error(), "pos", pos)
		}
	}
	for _, v := range w.viewers {
		v.ViewBlockEntity(pos, data)
	}
}

func (tx worldTx) ScheduleTask(pos cube.Pos, delay int64, task Task) {
	tx.w.scheduledTasks.schedule(pos, delay, task)
}

func (tx worldTx) PlaySound(pos mgl64.Vec3, s Sound) {
	for _, v := range tx.w.viewers {
		v.ViewSound(pos, s)
	}
}

func (tx worldTx) AddParticle(pos mgl64.Vec3, p Particle) {
	for _, v := range tx.w.viewers {
		v.ViewParticle(pos, p)
	}
}
