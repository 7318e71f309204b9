package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-sheet/internal/clients/srd"
	"github.com/KirkDiggler/rpg-sheet/internal/config"
	"github.com/KirkDiggler/rpg-sheet/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/orchestrators/character"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/telemetry"
	"github.com/KirkDiggler/rpg-sheet/internal/redis"
	characterrepo "github.com/KirkDiggler/rpg-sheet/internal/repositories/character"
)

type appOptions struct {
	EnvFile  string
	Store    string
	PlayerID string
}

// app is the wired process: one orchestrator, one dispatcher and whatever
// the chosen store needs closed on exit
type app struct {
	cfg          *config.Config
	orchestrator *character.Orchestrator
	dispatcher   *character.Dispatcher
	closers      []func(context.Context) error
}

func newApp(ctx context.Context, opts appOptions) (*app, error) {
	var envFiles []string
	if opts.EnvFile != "" {
		envFiles = append(envFiles, opts.EnvFile)
	}
	if opts.Store != "" {
		_ = os.Setenv("SHEET_STORE", opts.Store) // nolint:errcheck // only fails on an invalid key
	}

	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}
	if opts.PlayerID != "" {
		cfg.PlayerID = opts.PlayerID
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	a := &app{
		cfg:        cfg,
		dispatcher: character.NewDispatcher(),
	}
	a.closers = append(a.closers, a.dispatcher.Close)

	shutdown, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.Endpoint,
		Enabled:     cfg.Telemetry.Enabled,
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, shutdown)

	repo, err := a.openStore(ctx)
	if err != nil {
		_ = a.close(ctx) // nolint:errcheck // the open error is the one worth reporting
		return nil, err
	}

	srdClient, err := srd.New(&srd.Config{
		BaseURL:     cfg.SRD.BaseURL,
		HTTPTimeout: cfg.SRD.Timeout,
		CacheTTL:    cfg.SRD.CacheTTL,
	})
	if err != nil {
		_ = a.close(ctx) // nolint:errcheck // the client error is the one worth reporting
		return nil, err
	}

	engine, err := rpgtoolkit.NewAdapter(&rpgtoolkit.AdapterConfig{
		EventBus:   events.NewBus(),
		DiceRoller: dice.DefaultRoller,
	})
	if err != nil {
		_ = a.close(ctx) // nolint:errcheck // the engine error is the one worth reporting
		return nil, err
	}

	orchestrator, err := character.New(&character.Config{
		CharacterRepo: repo,
		Engine:        engine,
		Clock:         clock.New(),
		IDGenerator:   idgen.NewUUID(""),
		SRDClient:     srdClient,
	})
	if err != nil {
		_ = a.close(ctx) // nolint:errcheck // the orchestrator error is the one worth reporting
		return nil, err
	}
	a.orchestrator = orchestrator

	slog.DebugContext(ctx, "sheet ready",
		"store", cfg.Store,
		"player_id", cfg.PlayerID)
	return a, nil
}

func (a *app) openStore(ctx context.Context) (characterrepo.Repository, error) {
	switch a.cfg.Store {
	case config.StoreMemory:
		return characterrepo.NewInMemory(), nil
	case config.StoreRedis:
		client, err := redis.NewClient(a.cfg.Redis.Addr, &redis.Options{
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
			UseTLS:   a.cfg.Redis.UseTLS,
		})
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to create redis client")
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		return characterrepo.NewRedis(&characterrepo.RedisConfig{
			Client: client,
			Clock:  clock.New(),
		})
	default:
		repo, err := characterrepo.NewSQLite(ctx, &characterrepo.SQLiteConfig{Path: a.cfg.SQLite.Path})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return repo.Close() })
		return repo, nil
	}
}

// close runs the closers in reverse order and reports the first failure
func (a *app) close(ctx context.Context) error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// submit runs task through the dispatcher so edits to one character apply
// in order, and waits for it within the command timeout
func (a *app) submit(ctx context.Context, characterID string, task character.Task) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return a.dispatcher.Submit(ctx, characterID, task).Wait(ctx)
}

// query bounds a read with the command timeout
func (a *app) query(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
