// Package rpgtoolkit implements the engine interface with rpg-toolkit's
// dice roller and event bus.
package rpgtoolkit

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-sheet/internal/engine"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// EventCharacterChanged is published after every committed mutation
const EventCharacterChanged = "sheet.character.changed"

// Event context keys
const (
	contextKeyCharacterID = "character_id"
	contextKeyOperation   = "operation"
)

// Adapter implements the engine.Engine interface using rpg-toolkit
type Adapter struct {
	eventBus   events.EventBus
	diceRoller dice.Roller
}

// AdapterConfig contains configuration for creating a new Adapter
type AdapterConfig struct {
	EventBus   events.EventBus
	DiceRoller dice.Roller
}

// Validate checks that all required dependencies are provided
func (c *AdapterConfig) Validate() error {
	if c.EventBus == nil {
		return errors.InvalidArgument("event bus is required")
	}
	if c.DiceRoller == nil {
		return errors.InvalidArgument("dice roller is required")
	}
	return nil
}

// NewAdapter creates a new rpg-toolkit engine adapter
func NewAdapter(cfg *AdapterConfig) (*Adapter, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Adapter{
		eventBus:   cfg.EventBus,
		diceRoller: cfg.DiceRoller,
	}, nil
}

// Verify that Adapter implements engine.Engine interface
var _ engine.Engine = (*Adapter)(nil)

// RollHitPoints rolls Count hit dice. Each die adds the constitution
// modifier with a floor of one hit point per level.
func (a *Adapter) RollHitPoints(ctx context.Context, input *engine.RollHitPointsInput) (*engine.RollHitPointsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	count := input.Count
	if count == 0 {
		count = 1
	}

	vb := errors.NewValidationBuilder()
	if input.HitDie < 1 {
		vb.InvalidField("hit_die", "must be at least 1")
	}
	if count < 1 {
		vb.InvalidField("count", "must be at least 1")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	rolls, err := a.diceRoller.RollN(count, input.HitDie)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %dd%d", count, input.HitDie)
	}

	out := &engine.RollHitPointsOutput{Rolls: rolls}
	for _, r := range rolls {
		gain := max(r+input.ConstitutionModifier, 1)
		out.MaxHPGain += gain
		// BaseHP excludes the constitution modifier, which MaxHP adds per level
		out.BaseGain += gain - input.ConstitutionModifier
	}

	slog.DebugContext(ctx, "rolled hit points",
		"hit_die", input.HitDie,
		"rolls", rolls,
		"max_hp_gain", out.MaxHPGain)

	return out, nil
}

// PublishCharacterChanged publishes the committed character on the bus
func (a *Adapter) PublishCharacterChanged(ctx context.Context, input *engine.PublishCharacterChangedInput) error {
	if input == nil || input.Character == nil {
		return errors.InvalidArgument("character is required")
	}

	event := events.NewGameEvent(EventCharacterChanged, wrapCharacter(input.Character, input.Operation), nil)
	event.Context().Set(contextKeyCharacterID, input.Character.ID)
	event.Context().Set(contextKeyOperation, input.Operation)

	if err := a.eventBus.Publish(ctx, event); err != nil {
		return errors.Wrapf(err, "failed to publish change for character %s", input.Character.ID)
	}
	return nil
}

// SubscribeCharacterChanges registers the handler on the bus. Each call of
// the handler gets its own copy of the character.
func (a *Adapter) SubscribeCharacterChanges(
	_ context.Context,
	input *engine.SubscribeCharacterChangesInput,
) (*engine.SubscribeCharacterChangesOutput, error) {
	if input == nil || input.Handler == nil {
		return nil, errors.InvalidArgument("handler is required")
	}

	handler := func(ctx context.Context, e events.Event) error {
		entity, ok := e.Source().(*CharacterEntity)
		if !ok || entity.Character == nil {
			return nil
		}
		if input.CharacterID != "" && entity.GetID() != input.CharacterID {
			return nil
		}
		input.Handler(ctx, engine.CharacterChange{
			Character: entity.Character.Clone(),
			Operation: entity.Operation,
		})
		return nil
	}

	id := a.eventBus.SubscribeFunc(EventCharacterChanged, 0, handler)
	return &engine.SubscribeCharacterChangesOutput{SubscriptionID: id}, nil
}

// Unsubscribe removes a change subscription
func (a *Adapter) Unsubscribe(subscriptionID string) error {
	if err := a.eventBus.Unsubscribe(subscriptionID); err != nil {
		return errors.Wrapf(err, "failed to unsubscribe %s", subscriptionID)
	}
	return nil
}
