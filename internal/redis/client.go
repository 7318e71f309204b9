// Package redis wraps the go-redis client used by the character store.
package redis

import (
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// Options configures the connection to a single Redis instance
type Options struct {
	Password string
	DB       int
	UseTLS   bool

	// DialTimeout defaults to 5s
	DialTimeout time.Duration
}

// NewClient creates a Redis client for addr. Nothing is dialed until the
// first command runs.
func NewClient(addr string, opts *Options) (Client, error) {
	if addr == "" {
		return nil, errors.InvalidArgument("redis address is required")
	}
	if opts == nil {
		opts = &Options{}
	}
	if opts.DB < 0 {
		return nil, errors.InvalidArgumentf("redis db must not be negative, got %d", opts.DB)
	}

	dial := opts.DialTimeout
	if dial == 0 {
		dial = 5 * time.Second
	}

	redisOpts := &redis.Options{
		Addr:        addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: dial,
	}
	if opts.UseTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return redis.NewClient(redisOpts), nil
}
