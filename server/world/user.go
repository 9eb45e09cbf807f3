package world

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// GameMode is the game mode of a User. It decides if items are consumed when
// they are used.
type GameMode uint8

const (
	GameModeSurvival GameMode = iota
	GameModeCreative
)

// User is a player interacting with blocks. Inventory management is left to
// the implementation.
type User interface {
	// UUID returns the unique ID of the user.
	UUID() uuid.UUID
	// Rotation returns the yaw and pitch of the user.
	Rotation() cube.Rotation
	// Sneaking reports if the user is currently sneaking.
	Sneaking() bool
	// GameMode returns the current game mode of the user.
	GameMode() GameMode
	// HeldItem returns the code of the item held in the main hand, or an empty
	// string if the hand is empty.
	HeldItem() string
	// ConsumeHeldItem removes n items from the stack held in the main hand.
	ConsumeHeldItem(n int)
	// GiveItem attempts to add n items with the code passed to the inventory
	// of the user. False is returned if they did not fit.
	GiveItem(code string, n int) bool
	// Language returns the language that messages to the user are written in.
	Language() language.Tag
	// SendError shows an error identified by code to the user.
	SendError(code, message string)
}
