package rpgtoolkit

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
)

// CharacterEntity wraps dnd5e.Character to implement core.Entity. It rides
// on change events as the event source.
type CharacterEntity struct {
	*dnd5e.Character
	// Operation names the mutation that produced this state
	Operation string
}

var _ core.Entity = (*CharacterEntity)(nil)

// GetID returns the character's ID
func (c *CharacterEntity) GetID() string {
	if c.Character == nil {
		return ""
	}
	return c.ID
}

// GetType returns the entity type for rpg-toolkit
func (c *CharacterEntity) GetType() string {
	return "character"
}

// wrapCharacter snapshots the character so later edits by the committer
// do not leak into subscribers
func wrapCharacter(character *dnd5e.Character, operation string) *CharacterEntity {
	return &CharacterEntity{Character: character.Clone(), Operation: operation}
}
