//go:build integration

package siteconfig_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"respass/internal/siteconfig"
	"respass/pkg/platform/sentinel"
	"respass/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *siteconfig.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = siteconfig.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestPutThenGet() {
	ctx := context.Background()

	_, err := s.store.Get(ctx, "MAPLE")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.Put(ctx, "MAPLE", []byte(`{"units":120}`)))
	doc, err := s.store.Get(ctx, "MAPLE")
	s.Require().NoError(err)
	s.JSONEq(`{"units":120}`, string(doc))
}
