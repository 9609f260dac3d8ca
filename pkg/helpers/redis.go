package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func keyOAuthState(state string) string { return "oauth:state:" + state }

// SaveOAuthState stores a one-shot OAuth state nonce.
func SaveOAuthState(ctx context.Context, rdb *redis.Client, state string, ttl time.Duration) error {
	return rdb.Set(ctx, keyOAuthState(state), "1", ttl).Err()
}

// ConsumeOAuthState deletes the nonce and reports whether it existed.
// A nonce can only validate one callback.
func ConsumeOAuthState(ctx context.Context, rdb *redis.Client, state string) (bool, error) {
	n, err := rdb.Del(ctx, keyOAuthState(state)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
