package engine

import (
	"context"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
)

// RollHitPointsInput contains the parameters for a hit point roll
type RollHitPointsInput struct {
	HitDie               int
	Count                int
	ConstitutionModifier int
}

// RollHitPointsOutput lists each die and the hit points it grants. Every
// level grants at least one hit point after the constitution modifier.
type RollHitPointsOutput struct {
	Rolls []int
	// BaseGain is the sum of the dice before the constitution modifier
	BaseGain int
	// MaxHPGain is how much maximum hit points grow
	MaxHPGain int
}

// PublishCharacterChangedInput names the committed character and the
// operation that produced it
type PublishCharacterChangedInput struct {
	Character *dnd5e.Character
	Operation string
}

// CharacterChange is delivered to subscribers. Character is a private copy.
type CharacterChange struct {
	Character *dnd5e.Character
	Operation string
}

// ChangeHandler receives committed changes
type ChangeHandler func(ctx context.Context, change CharacterChange)

// SubscribeCharacterChangesInput filters by character. An empty
// CharacterID receives every change.
type SubscribeCharacterChangesInput struct {
	CharacterID string
	Handler     ChangeHandler
}

// SubscribeCharacterChangesOutput carries the subscription handle
type SubscribeCharacterChangesOutput struct {
	SubscriptionID string
}
