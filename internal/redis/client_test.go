package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/redis"
)

func TestNewClientValidatesOptions(t *testing.T) {
	_, err := redis.NewClient("", nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = redis.NewClient("localhost:6379", &redis.Options{DB: -1})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestNewClientTalksToServer(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("hunter2")

	client, err := redis.NewClient(mr.Addr(), &redis.Options{Password: "hunter2", DB: 3})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	require.NoError(t, client.Set(ctx, "character:char-1", "{}", 0).Err())
	mr.Select(3)
	assert.True(t, mr.Exists("character:char-1"))

	_, err = client.Get(ctx, "character:missing").Result()
	assert.ErrorIs(t, err, redis.Nil)
}

func TestNewClientWrongPassword(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("hunter2")

	client, err := redis.NewClient(mr.Addr(), &redis.Options{Password: "nope"})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.Error(t, client.Ping(context.Background()).Err())
}
