// Package character implements the character sheet orchestrator: one
// transactional operation per sheet edit, plus ordered submission and a
// live read stream on top of them.
package character

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/rpg-sheet/internal/clients/srd"
	"github.com/KirkDiggler/rpg-sheet/internal/engine"
	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/rpg-sheet/internal/repositories/character"
	"github.com/KirkDiggler/rpg-sheet/internal/services/character"
)

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	Engine        engine.Engine
	Clock         clock.Clock
	IDGenerator   idgen.Generator

	// SRDClient resolves CreateSpellInput.SRDKey. Optional.
	SRDClient srd.Client
	// TracerProvider defaults to the global provider
	TracerProvider trace.TracerProvider
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Orchestrator implements the character.Service interface
type Orchestrator struct {
	characterRepo characterrepo.Repository
	engine        engine.Engine
	clock         clock.Clock
	idGen         idgen.Generator
	srdClient     srd.Client
	tracer        trace.Tracer
}

// New creates a new character orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		engine:        cfg.Engine,
		clock:         cfg.Clock,
		idGen:         cfg.IDGenerator,
		srdClient:     cfg.SRDClient,
		tracer:        tp.Tracer(tracerName),
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ character.Service = (*Orchestrator)(nil)

// CreateCharacter builds a fully defaulted character and stores it
func (o *Orchestrator) CreateCharacter(
	ctx context.Context,
	input *character.CreateCharacterInput,
) (*character.CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	ctx, span := o.startSpan(ctx, character.OpCreateCharacter, "")
	defer span.End()

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	errors.ValidateRequired("name", input.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, o.fail(span, err)
	}

	id := o.idGen.Generate()
	span.SetAttributes(attribute.String("character_id", id))

	char, err := dnd5e.NewCharacter(dnd5e.NewCharacterInput{
		ID:         id,
		PlayerID:   input.PlayerID,
		Name:       input.Name,
		Race:       input.Race,
		Subrace:    input.Subrace,
		Class:      input.Class,
		Background: input.Background,
		Alignment:  input.Alignment,
		Level:      input.Level,
		WelcomeID:  o.idGen.Generate(),
		Now:        o.clock.Now(),
	})
	if err != nil {
		return nil, o.fail(span, err)
	}

	if _, err := o.characterRepo.Create(ctx, characterrepo.CreateInput{Character: char}); err != nil {
		slog.ErrorContext(ctx, "failed to create character",
			"character_id", id,
			"player_id", input.PlayerID,
			"error", err)
		return nil, o.fail(span, errors.Wrapf(err, "failed to create character").WithMeta("character_id", id))
	}

	slog.InfoContext(ctx, "character created",
		"character_id", id,
		"player_id", input.PlayerID,
		"class", char.Job.Class,
		"level", char.Level())
	o.publish(ctx, character.OpCreateCharacter, char)

	return &character.CreateCharacterOutput{
		Character: char,
	}, nil
}

// GetCharacter retrieves a character by ID
func (o *Orchestrator) GetCharacter(
	ctx context.Context,
	input *character.GetCharacterInput,
) (*character.GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	char, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	return &character.GetCharacterOutput{
		Character: char,
	}, nil
}

// ListCharacters lists a player's characters in creation order
func (o *Orchestrator) ListCharacters(
	ctx context.Context,
	input *character.ListCharactersInput,
) (*character.ListCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	result, err := o.characterRepo.ListByPlayerID(ctx, characterrepo.ListByPlayerIDInput{
		PlayerID: input.PlayerID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list characters")
	}

	return &character.ListCharactersOutput{
		Characters: result.Characters,
	}, nil
}

// DeleteCharacter removes a character and everything it owns
func (o *Orchestrator) DeleteCharacter(
	ctx context.Context,
	input *character.DeleteCharacterInput,
) (*character.DeleteCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(msgCharacterIDRequired)
	}

	ctx, span := o.startSpan(ctx, character.OpDeleteCharacter, input.CharacterID)
	defer span.End()

	if _, err := o.characterRepo.Delete(ctx, characterrepo.DeleteInput{ID: input.CharacterID}); err != nil {
		return nil, o.fail(span, errors.Wrapf(err, "failed to delete character").
			WithMeta("character_id", input.CharacterID))
	}

	slog.InfoContext(ctx, "character deleted", "character_id", input.CharacterID)
	o.publish(ctx, character.OpDeleteCharacter, &dnd5e.Character{ID: input.CharacterID})

	return &character.DeleteCharacterOutput{
		Message: "character deleted",
	}, nil
}

// GetDerivedStats loads a character and computes its read model
func (o *Orchestrator) GetDerivedStats(
	ctx context.Context,
	input *character.GetDerivedStatsInput,
) (*character.GetDerivedStatsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	char, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	return &character.GetDerivedStatsOutput{
		Character: char,
		Stats:     char.DerivedStats(),
	}, nil
}

func (o *Orchestrator) load(ctx context.Context, id string) (*dnd5e.Character, error) {
	if id == "" {
		return nil, errors.InvalidArgument(msgCharacterIDRequired)
	}

	result, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: id})
	if err != nil {
		if errors.IsDataLoss(err) {
			slog.ErrorContext(ctx, "stored character failed integrity check",
				"character_id", id,
				"error", err)
		}
		return nil, errors.Wrapf(err, "failed to get character").WithMeta("character_id", id)
	}
	return result.Character, nil
}

// mutate runs fn inside the repository's atomic update, stamps Updated and
// announces the committed character. Validation errors from fn abort the
// write and are returned with their code intact.
func (o *Orchestrator) mutate(
	ctx context.Context,
	op, id string,
	fn characterrepo.MutateFunc,
) (*dnd5e.Character, error) {
	ctx, span := o.startSpan(ctx, op, id)
	defer span.End()

	if id == "" {
		return nil, o.fail(span, errors.InvalidArgument(msgCharacterIDRequired))
	}

	result, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{
		ID: id,
		Mutate: func(c *dnd5e.Character) error {
			if err := fn(c); err != nil {
				return err
			}
			c.Updated = o.clock.Now()
			return nil
		},
	})
	if err != nil {
		level := slog.LevelWarn
		if errors.IsInternal(err) || errors.IsDataLoss(err) {
			level = slog.LevelError
		}
		slog.Log(ctx, level, "character update failed",
			"operation", op,
			"character_id", id,
			"error", err)
		return nil, o.fail(span, errors.Wrapf(err, "failed to %s", humanize(op)).WithMeta("character_id", id))
	}

	slog.DebugContext(ctx, "character updated",
		"operation", op,
		"character_id", id)
	o.publish(ctx, op, result.Character)

	return result.Character, nil
}

// publish failures are logged; the write has already committed
func (o *Orchestrator) publish(ctx context.Context, op string, c *dnd5e.Character) {
	err := o.engine.PublishCharacterChanged(ctx, &engine.PublishCharacterChangedInput{
		Character: c,
		Operation: op,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to publish character change",
			"operation", op,
			"character_id", c.ID,
			"error", err)
	}
}

func (o *Orchestrator) startSpan(ctx context.Context, op, id string) (context.Context, trace.Span) {
	ctx, span := o.tracer.Start(ctx, spanPrefix+op)
	span.SetAttributes(attribute.String("operation", op))
	if id != "" {
		span.SetAttributes(attribute.String("character_id", id))
	}
	return ctx, span
}

func (o *Orchestrator) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, errors.GetMessage(err))
	span.SetAttributes(attribute.String("error_code", errors.GetCode(err).String()))
	return err
}

// humanize turns "update_max_hp" into "update max hp"
func humanize(op string) string {
	return strings.ReplaceAll(op, "_", " ")
}
