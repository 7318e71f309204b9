package testutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
)

// FixtureTime is the creation time stamped on fixture characters
var FixtureTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// NewTestCharacter returns a level 1 human fighter owned by playerID
func NewTestCharacter(t *testing.T, id, playerID string) *dnd5e.Character {
	t.Helper()
	return NewTestCharacterWith(t, dnd5e.NewCharacterInput{ID: id, PlayerID: playerID})
}

// NewTestCharacterWith fills the blanks in input and builds the character
func NewTestCharacterWith(t *testing.T, input dnd5e.NewCharacterInput) *dnd5e.Character {
	t.Helper()

	if input.Name == "" {
		input.Name = "Tordek Ironfist"
	}
	if input.WelcomeID == "" {
		input.WelcomeID = input.ID + "_note_welcome"
	}
	if input.Now.IsZero() {
		input.Now = FixtureTime
	}

	c, err := dnd5e.NewCharacter(input)
	require.NoError(t, err)
	return c
}
