package world

import (
	"github.com/df-mc/dragonfly/server/block/cube"
)

// Provider persists the block entities of a World.
type Provider interface {
	// LoadBlockEntity loads the data of the block entity at pos. False is
	// returned if no data was stored.
	LoadBlockEntity(pos cube.Pos) (map[string]any, bool, error)
	// SaveBlockEntity stores the data of the block entity at pos.
	SaveBlockEntity(pos cube.Pos, data map[string]any) error
	// DeleteBlockEntity removes any data stored for pos.
	DeleteBlockEntity(pos cube.Pos) error
	// Close closes the provider.
	Close() error
}

// NopProvider implements a Provider that does not persist anything.
type NopProvider struct{}

// Compile time check to make sure NopProvider implements Provider.
var _ Provider = NopProvider{}

func (NopProvider) LoadBlockEntity(cube.Pos) (map[string]any, bool, error) { return nil, false, nil }
func (NopProvider) SaveBlockEntity(cube.Pos, map[string]any) error         { return nil }
func (NopProvider) DeleteBlockEntity(cube.Pos) error                       { return nil }
func (NopProvider) Close() error                                           { return nil }
