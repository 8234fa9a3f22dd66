// Package cache adds a read-through cache in front of user lookups by id,
// which task listings issue once per distinct owner.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/entity"
	"github.com/oksasatya/go-ddd-task-manager/pkg/helpers"
)

// Store holds users keyed by id.
type Store interface {
	Get(ctx context.Context, id string) (*entity.User, bool, error)
	Set(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}

func userKey(id string) string {
	return "user:id:" + id
}

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*entity.User, bool, error) {
	var u entity.User
	ok, err := helpers.RedisGetJSON(ctx, s.rdb, userKey(id), &u)
	if err != nil || !ok {
		return nil, false, err
	}
	return &u, true, nil
}

func (s *RedisStore) Set(ctx context.Context, u *entity.User) error {
	return helpers.RedisSetJSON(ctx, s.rdb, userKey(u.ID), u, s.ttl)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return helpers.RedisDel(ctx, s.rdb, userKey(id))
}

type MemoryStore struct {
	c *gocache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{c: gocache.New(ttl, 2*ttl)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*entity.User, bool, error) {
	v, ok := s.c.Get(userKey(id))
	if !ok {
		return nil, false, nil
	}
	u := v.(entity.User)
	return &u, true, nil
}

func (s *MemoryStore) Set(_ context.Context, u *entity.User) error {
	s.c.SetDefault(userKey(u.ID), *u)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.c.Delete(userKey(id))
	return nil
}

var (
	_ Store = (*RedisStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
