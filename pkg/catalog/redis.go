package catalog

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "catalog"

// RedisStore is a Store backed by Redis, useful when several processes
// should share fetched catalogs. Documents are serialized as JSON and
// stored without expiration, matching the never-evicted cache contract.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisPrefix overrides the key prefix (default "catalog").
func WithRedisPrefix(prefix string) RedisOption {
	return func(r *RedisStore) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed store using the given client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	r := &RedisStore{
		client: client,
		prefix: defaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get retrieves the document for a locale.
func (r *RedisStore) Get(ctx context.Context, locale string) (Document, error) {
	data, err := r.client.Get(ctx, r.key(locale)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrUnmarshal, err)
	}
	return doc, nil
}

// Set stores the document for a locale with no expiration.
func (r *RedisStore) Set(ctx context.Context, locale string, doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Join(ErrMarshal, err)
	}
	return r.client.Set(ctx, r.key(locale), data, 0).Err()
}

// Has reports whether a catalog was stored for the locale.
func (r *RedisStore) Has(ctx context.Context, locale string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(locale)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisStore) key(locale string) string {
	return r.prefix + ":" + locale
}

var _ Store = (*RedisStore)(nil)
