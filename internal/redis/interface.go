package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the stores depend on. Tests satisfy it
// with miniredis-backed or redismock clients.
type Client interface {
	redis.UniversalClient
}

// TxFailedErr is returned by Watch when a watched key changed before EXEC.
var TxFailedErr = redis.TxFailedErr

// Nil is returned when a key does not exist.
const Nil = redis.Nil
