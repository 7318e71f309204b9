// Package engine wraps the rpg toolkit pieces the sheet relies on: dice for
// hit point rolls and the event bus that announces committed changes.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/rpg-sheet/internal/engine Engine

import (
	"context"
)

// Engine provides dice and change notification
type Engine interface {
	// RollHitPoints rolls one hit die per level gained
	// Returns errors.InvalidArgument for a die or count below 1
	RollHitPoints(ctx context.Context, input *RollHitPointsInput) (*RollHitPointsOutput, error)

	// PublishCharacterChanged announces a committed character to subscribers.
	// Handlers run before it returns.
	PublishCharacterChanged(ctx context.Context, input *PublishCharacterChangedInput) error

	// SubscribeCharacterChanges registers a handler for committed changes
	SubscribeCharacterChanges(
		ctx context.Context,
		input *SubscribeCharacterChangesInput,
	) (*SubscribeCharacterChangesOutput, error)

	// Unsubscribe removes a subscription returned by SubscribeCharacterChanges
	Unsubscribe(subscriptionID string) error
}
