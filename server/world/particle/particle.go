// Package particle holds particles spawned by candle holders.
package particle

import (
	"time"
)

// Flame is a small flame rising from a wick.
type Flame struct {
	// Quantity is the number of particles spawned at once.
	Quantity int
	// Size is the size of a single particle in block units.
	Size float32
	// LifeLength is how long a single particle stays visible.
	LifeLength time.Duration
	// WindAffectedness is how strongly wind pushes the particles, from 0 to 1.
	WindAffectedness float32
}

// Kind ...
func (Flame) Kind() string { return "flame" }

// CandleFlame returns the particles spawned above a single burning candle.
func CandleFlame() []Flame {
	return []Flame{{Quantity: 1, Size: 0.08, LifeLength: 250 * time.Millisecond}}
}
