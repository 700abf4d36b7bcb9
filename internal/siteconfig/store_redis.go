package siteconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"respass/pkg/platform/sentinel"
)

const keyPrefix = "site:"

// RedisStore holds one JSON document per property id.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, propertyID string) ([]byte, error) {
	raw, err := s.client.Get(ctx, keyPrefix+propertyID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get site config: %w", err)
	}
	return raw, nil
}

func (s *RedisStore) Put(ctx context.Context, propertyID string, doc []byte) error {
	if err := s.client.Set(ctx, keyPrefix+propertyID, doc, 0).Err(); err != nil {
		return fmt.Errorf("set site config: %w", err)
	}
	return nil
}
