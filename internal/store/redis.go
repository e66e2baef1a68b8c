package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hangdle/go-server/internal/game"
)

// RedisStore keeps round snapshots as JSON strings with a TTL, so rounds
// survive restarts and can be shared by several server instances.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func roundKey(id string) string {
	return fmt.Sprintf("hangman:round:%s", id)
}

func (s *RedisStore) Save(ctx context.Context, r *game.Round) error {
	b, err := json.Marshal(r.Snapshot())
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, roundKey(r.ID), b, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*game.Round, error) {
	val, err := s.rdb.Get(ctx, roundKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: redis get %s: %w", id, err)
	}

	var snap game.Snapshot
	if err := json.Unmarshal(val, &snap); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", id, err)
	}
	return game.Restore(snap)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, roundKey(id)).Err()
}
