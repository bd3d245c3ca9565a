package cache

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"

	"github.com/htz-portal/portal-api/logger"
)

// The server cache has two layers: a per-instance expirable LRU for hot
// reads and Redis as the shared layer. Invalidations are published on a
// Redis channel so peer instances drop their local copies too.
var (
	Client *redis.Client
	Ctx    = context.Background()

	local *expirable.LRU[string, []byte]
)

const (
	invalidationChannel = "portal:invalidate"
	localSize           = 512
	localTTL            = 30 * time.Second
	defaultTTL          = 5 * time.Minute
)

// Init connects to Redis at REDIS_ADDR and starts the invalidation
// listener.
func Init() {
	InitWithAddr(os.Getenv("REDIS_ADDR"))
}

// InitWithAddr connects to a specific Redis address. Used directly by
// tests with miniredis.
func InitWithAddr(addr string) {
	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
	local = expirable.NewLRU[string, []byte](localSize, nil, localTTL)

	if _, err := Client.Ping(Ctx).Result(); err != nil {
		logger.L.Fatalw("failed to connect to redis", "addr", addr, "error", err)
	}
	logger.L.Infow("connected to redis", "addr", addr)

	go listenInvalidations()
}

// Ready reports whether the cache has been initialized. Controllers fall
// back to the database when it has not (e.g. in handler tests).
func Ready() bool {
	return Client != nil
}

// GetJSON loads key into dest, checking the local LRU before Redis.
func GetJSON(key string, dest interface{}) bool {
	if !Ready() {
		return false
	}
	if raw, ok := local.Get(key); ok {
		return json.Unmarshal(raw, dest) == nil
	}
	raw, err := Client.Get(Ctx, key).Bytes()
	if err != nil {
		return false
	}
	if json.Unmarshal(raw, dest) != nil {
		return false
	}
	local.Add(key, raw)
	return true
}

// SetJSON stores v under key in both layers.
func SetJSON(key string, v interface{}, ttl time.Duration) {
	if !Ready() {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		logger.L.Errorw("cache marshal failed", "key", key, "error", err)
		return
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if err := Client.Set(Ctx, key, raw, ttl).Err(); err != nil {
		logger.L.Errorw("cache set failed", "key", key, "error", err)
		return
	}
	local.Add(key, raw)
}

// Invalidate drops keys from both layers and broadcasts them to peer
// instances.
func Invalidate(keys ...string) {
	if !Ready() || len(keys) == 0 {
		return
	}
	for _, key := range keys {
		local.Remove(key)
	}
	if err := Client.Del(Ctx, keys...).Err(); err != nil {
		logger.L.Errorw("cache delete failed", "error", err)
	}
	for _, key := range keys {
		if err := Client.Publish(Ctx, invalidationChannel, key).Err(); err != nil {
			logger.L.Errorw("cache invalidation publish failed", "key", key, "error", err)
		}
	}
}

// listenInvalidations drops local entries named on the invalidation
// channel. Dropping a key we just dropped ourselves is harmless.
func listenInvalidations() {
	sub := Client.Subscribe(Ctx, invalidationChannel)
	for msg := range sub.Channel() {
		local.Remove(msg.Payload)
	}
}
