package character

import (
	"context"
	"log/slog"

	redis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-sheet/internal/redis"
)

const (
	characterKeyPrefix = "character:"
	playerIndexPrefix  = "character:player:"

	// listConcurrency bounds parallel GETs when listing a player's characters
	listConcurrency = 8
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis character repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed character repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	char := input.Character
	key := characterKeyPrefix + char.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("character with ID %s already exists", char.ID)
	}

	data, err := encodeCharacter(char)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	if char.PlayerID != "" {
		pipe.SAdd(ctx, playerIndexPrefix+char.PlayerID, char.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create character")
	}

	slog.DebugContext(ctx, "created character",
		"character_id", char.ID,
		"player_id", char.PlayerID)

	return &CreateOutput{Character: char}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	char, err := r.load(ctx, r.client, input.ID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Character: char}, nil
}

// load reads and decodes one character through any command issuer, so the
// same path serves plain reads and reads inside a WATCH.
func (r *redisRepository) load(ctx context.Context, cmd redis.Cmdable, id string) (*dnd5e.Character, error) {
	result, err := cmd.Get(ctx, characterKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return nil, errors.NotFoundf("character with ID %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	return decodeCharacter(id, result)
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	key := characterKeyPrefix + input.ID
	var updated *dnd5e.Character

	txf := func(tx *redis.Tx) error {
		char, err := r.load(ctx, tx, input.ID)
		if err != nil {
			return err
		}

		previousPlayer := char.PlayerID
		if err := mutateCopy(char, input.Mutate); err != nil {
			return err
		}

		data, err := encodeCharacter(char)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			if previousPlayer != char.PlayerID {
				if previousPlayer != "" {
					pipe.SRem(ctx, playerIndexPrefix+previousPlayer, char.ID)
				}
				if char.PlayerID != "" {
					pipe.SAdd(ctx, playerIndexPrefix+char.PlayerID, char.ID)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		updated = char
		return nil
	}

	if err := r.client.Watch(ctx, txf, key); err != nil {
		if errors.Is(err, redisclient.TxFailedErr) {
			slog.WarnContext(ctx, "character changed during update",
				"character_id", input.ID)
			return nil, errors.Abortedf("character %s was modified concurrently", input.ID)
		}
		var appErr *errors.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to update character")
	}

	return &UpdateOutput{Character: updated}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	key := characterKeyPrefix + input.ID

	// Read the owner without decoding so a corrupt record can still be removed
	stored, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return nil, errors.NotFoundf("character with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}
	owner := ownerOf(stored)

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	if owner != "" {
		pipe.SRem(ctx, playerIndexPrefix+owner, input.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByPlayerID(
	ctx context.Context,
	input ListByPlayerIDInput,
) (*ListByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	indexKey := playerIndexPrefix + input.PlayerID
	slog.DebugContext(ctx, "listing characters by player index",
		"player_id", input.PlayerID,
		"index_key", indexKey)

	characterIDs, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		slog.ErrorContext(ctx, "failed to get character IDs from Redis",
			"index_key", indexKey,
			"error", err.Error())
		return nil, errors.Wrapf(err, "failed to get characters from index %s", indexKey)
	}

	loaded := make([]*dnd5e.Character, len(characterIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)
	for i, id := range characterIDs {
		g.Go(func() error {
			char, err := r.load(gctx, r.client, id)
			if err != nil {
				if errors.IsNotFound(err) {
					slog.WarnContext(gctx, "character not found, cleaning up index",
						"character_id", id,
						"index_key", indexKey)
					r.client.SRem(gctx, indexKey, id)
					return nil
				}
				return errors.Wrapf(err, "failed to get character %s", id)
			}
			loaded[i] = char
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "failed to list characters by player index",
			"player_id", input.PlayerID,
			"error", err.Error())
		return nil, err
	}

	characters := make([]*dnd5e.Character, 0, len(loaded))
	for _, char := range loaded {
		if char != nil {
			characters = append(characters, char)
		}
	}
	sortByCreated(characters)

	slog.DebugContext(ctx, "successfully listed characters by player",
		"player_id", input.PlayerID,
		"count", len(characters))

	return &ListByPlayerIDOutput{Characters: characters}, nil
}
