package repository

import (
	"context"
	"errors"
	"log"

	"bakeShop/models"

	"github.com/redis/go-redis/v9"
)

// KeyValueStore is the durable storage the cart store persists into. The
// production implementation sits on redis; tests run against MemoryStore.
type KeyValueStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key string, value string) (err error)
	Delete(key string) (err error)
}

type RedisStore struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisStore(redis_conn *redis.Client, _ctx context.Context) (KeyValueStore, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(_ctx).Err()
	if err != nil {
		return nil, err
	}
	return &RedisStore{
		rdb: redis_conn,
		ctx: _ctx,
	}, nil
}

func (s *RedisStore) Get(key string) (value string, ok bool, err error) {
	value, e := s.rdb.Get(s.ctx, key).Result()
	if e != nil {
		if e == redis.Nil {
			return
		}
		log.Printf("RedisStore.Get: %v", e)
		err = models.ErrPersistence
		return
	}
	ok = true
	return
}

// Set writes without a TTL: a persisted cart never expires on its own.
func (s *RedisStore) Set(key string, value string) (err error) {
	err = s.rdb.Set(s.ctx, key, value, 0).Err()
	if err != nil {
		log.Printf("RedisStore.Set: %v", err)
		err = models.ErrPersistence
	}
	return
}

func (s *RedisStore) Delete(key string) (err error) {
	err = s.rdb.Del(s.ctx, key).Err()
	if err != nil {
		log.Printf("RedisStore.Delete: %v", err)
		err = models.ErrPersistence
	}
	return
}
