package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const pendingMarker = "processing"

// releaseScript deletes a key only while it still holds the pending marker,
// so a completed response is never dropped by a late Release.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// IdempotencyStore implements usecase.IdempotencyStore using Redis.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "accountledger:idempotency:",
	}
}

// CheckAndSet claims key. It returns exists=false when the caller now owns
// the key. For a key owned by a request still in flight it returns
// exists=true with a nil value; for a completed one, the stored response.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	var value any = pendingMarker
	if response != nil {
		value = response
	}

	claimed, err := s.client.SetNX(ctx, fullKey, value, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if claimed {
		return false, nil, nil
	}

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Expired or released between the two calls.
			return true, nil, nil
		}
		return false, nil, err
	}

	if string(existing) == pendingMarker {
		return true, nil, nil
	}

	return true, existing, nil
}

// Update stores the final response for key.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
}

// Release frees a claimed key whose request produced no replayable response.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return releaseScript.Run(ctx, s.client, []string{s.prefix + key}, pendingMarker).Err()
}
