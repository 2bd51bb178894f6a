package cachestore

import (
	"context"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-redis/redis/v8"

	"github.com/Dawichi/hexastats/internal/platform/cache"
)

const defaultRedisPrefix = "hexastats"

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	Prefix    string
	Retention time.Duration
}

// RedisBackend stores entries as small JSON envelopes. Redis expiry is set to the retention
// window, so the janitor has nothing to do for this backend.
type RedisBackend struct {
	client    *redis.Client
	prefix    string
	retention time.Duration
}

type redisEnvelope struct {
	Value    []byte `json:"value"`
	StoredAt int64  `json:"stored_at"`
}

// NewRedisClient accepts either a redis:// URL or a plain host:port address.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	addr := strings.Trim(strings.TrimSpace(cfg.Addr), `"'`)
	if addr == "" {
		return nil, crerr.New("redis address is required")
	}

	var opts *redis.Options
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, crerr.Wrap(err, "parse redis url")
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr, DB: cfg.DB}
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, crerr.Wrapf(err, "ping redis %s", opts.Addr)
	}
	return client, nil
}

func NewRedisBackend(client *redis.Client, cfg RedisConfig) *RedisBackend {
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisBackend{client: client, prefix: prefix, retention: cfg.Retention}
}

func (b *RedisBackend) Get(ctx context.Context, key string) (cache.Entry, bool, error) {
	raw, err := b.client.Get(ctx, b.key(key)).Bytes()
	if err == redis.Nil {
		return cache.Entry{}, false, nil
	}
	if err != nil {
		return cache.Entry{}, false, crerr.Wrapf(err, "redis get %s", key)
	}

	entry, err := decodeRedisEnvelope(raw)
	if err != nil {
		return cache.Entry{}, false, crerr.Wrapf(err, "decode redis entry %s", key)
	}
	return entry, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, key string, entry cache.Entry) error {
	raw, err := encodeRedisEnvelope(entry)
	if err != nil {
		return crerr.Wrapf(err, "encode redis entry %s", key)
	}
	if err := b.client.Set(ctx, b.key(key), raw, b.retention).Err(); err != nil {
		return crerr.Wrapf(err, "redis set %s", key)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, b.key(key))
	}
	if err := b.client.Del(ctx, prefixed...).Err(); err != nil {
		return crerr.Wrap(err, "redis delete")
	}
	return nil
}

func (b *RedisBackend) Prune(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}

func (b *RedisBackend) key(key string) string {
	return cache.Key(b.prefix, key)
}

func encodeRedisEnvelope(entry cache.Entry) ([]byte, error) {
	return sonic.Marshal(redisEnvelope{Value: entry.Value, StoredAt: entry.StoredAt.UnixNano()})
}

func decodeRedisEnvelope(raw []byte) (cache.Entry, error) {
	var env redisEnvelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return cache.Entry{}, err
	}
	return cache.Entry{Value: env.Value, StoredAt: time.Unix(0, env.StoredAt)}, nil
}
