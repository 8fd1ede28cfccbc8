package redis_test

import (
	"context"
	"time"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/finauth/pkg/redis"
)

func TestConnectInvalidURL(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  "not-a-url://",
		ConnectTimeout: time.Second,
	})
	assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
}
