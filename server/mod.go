package server

import (
	"github.com/dm-vev/candelight/server/block"
	"github.com/dm-vev/candelight/server/shape"
	"github.com/dm-vev/candelight/server/world"
	"golang.org/x/text/language"
)

// Mod holds the registered candelabra block types and the world they are
// placed in.
type Mod struct {
	conf   Config
	world  *world.World
	blocks map[string]*block.Candelabra
	codes  []string
}

// World returns the world blocks of the Mod are placed in.
func (m *Mod) World() *world.World {
	return m.world
}

// Block returns the candelabra block type registered with the code passed.
func (m *Mod) Block(code string) (*block.Candelabra, bool) {
	b, ok := m.blocks[code]
	return b, ok
}

// Codes returns the codes of all registered block types, sorted.
func (m *Mod) Codes() []string {
	return append([]string(nil), m.codes...)
}

// Language returns the language messages are shown in.
func (m *Mod) Language() language.Tag {
	return m.conf.Language
}

// Metrics returns a snapshot of the geometry cache and asset counters.
func (m *Mod) Metrics() shape.MetricsSnapshot {
	return m.conf.Metrics.Snapshot()
}

// RefreshShapes drops all shape assets that changed on disk, so that they are
// loaded again when next used. The paths dropped are returned.
func (m *Mod) RefreshShapes() ([]string, error) {
	if m.conf.Shapes == nil {
		return nil, nil
	}
	return m.conf.Shapes.Refresh()
}

// Close closes the world of the Mod and its provider.
func (m *Mod) Close() error {
	return m.world.Close()
}
