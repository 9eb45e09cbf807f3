// Package sound holds the sounds played by candle holders.
package sound

// AddRemoveCandle is played when a candle is put into or taken out of a
// holder.
type AddRemoveCandle struct{}

// LightCandle is played when candles are lit.
type LightCandle struct{}

// UnlightCandle is played when candles are put out.
type UnlightCandle struct{}

// Asset ...
func (AddRemoveCandle) Asset() string { return "sounds/block/planks" }

// Asset ...
func (LightCandle) Asset() string { return "sounds/effect/extinguish1" }

// Asset ...
func (UnlightCandle) Asset() string { return "sounds/effect/extinguish2" }
