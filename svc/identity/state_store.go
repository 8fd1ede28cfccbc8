package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const statePrefix = "finauth:oauth_state:"

// RedisStateStore keeps OAuth state in Redis with a TTL. Consume uses GETDEL
// so a state can be redeemed once even under concurrent callbacks.
type RedisStateStore struct {
	client redis.UniversalClient
}

// NewRedisStateStore wraps client.
func NewRedisStateStore(client redis.UniversalClient) *RedisStateStore {
	return &RedisStateStore{client: client}
}

func (s *RedisStateStore) Save(ctx context.Context, state, providerID string, ttl time.Duration) error {
	ok, err := s.client.SetNX(ctx, statePrefix+state, providerID, ttl).Result()
	if err != nil {
		return fmt.Errorf("save oauth state: %w", err)
	}
	if !ok {
		return fmt.Errorf("save oauth state: duplicate state value")
	}
	return nil
}

func (s *RedisStateStore) Consume(ctx context.Context, state string) (string, error) {
	providerID, err := s.client.GetDel(ctx, statePrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrStateNotFound
	}
	if err != nil {
		return "", fmt.Errorf("consume oauth state: %w", err)
	}
	return providerID, nil
}

var _ StateStore = (*RedisStateStore)(nil)
