package issuecode

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ic:"

// RedisStore keeps the latest valid issue code per resident id.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Latest(ctx context.Context, residentID string) (int64, bool, error) {
	raw, err := s.client.Get(ctx, keyPrefix+residentID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get issue code: %w", err)
	}
	ic, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("stored issue code %q: %w", raw, err)
	}
	return ic, true, nil
}

func (s *RedisStore) SetLatest(ctx context.Context, residentID string, issueCode int64) error {
	if err := s.client.Set(ctx, keyPrefix+residentID, issueCode, 0).Err(); err != nil {
		return fmt.Errorf("set issue code: %w", err)
	}
	return nil
}
