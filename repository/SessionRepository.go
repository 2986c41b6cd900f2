package repository

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"bakeShop/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type SessionRepository interface {
	CreateSession(customerId int, role string) (sessionId string, err error)
	CheckSession(sessionId string) (bool, error)
	DeleteSession(sessionId string) (err error)
	RefreshSession(sessionId string, expirationTime time.Duration) (err error)
	GetCustomerSessionInfo(sessionId string) (customerId int, role string, exists bool, err error)
}

type SessionRepo struct {
	rdb *redis.Client
	ctx context.Context
}

func NewSessionRepository(redis_conn *redis.Client, _ctx context.Context) (SessionRepository, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(_ctx).Err()
	if err != nil {
		return nil, err
	}
	return &SessionRepo{
		rdb: redis_conn,
		ctx: _ctx,
	}, nil
}

func (s *SessionRepo) CreateSession(customerId int, role string) (sessionId string, err error) {
	sessionId = uuid.NewString()
	err = s.rdb.HSet(s.ctx, sessionId, "customerId", customerId, "role", role).Err()
	if err != nil {
		log.Printf("CreateSession: %v", err)
		err = models.ErrServerError
		return
	}
	s.rdb.Expire(s.ctx, sessionId, 30*time.Minute)
	return
}

func (s *SessionRepo) CheckSession(sessionId string) (bool, error) {
	n, err := s.rdb.Exists(s.ctx, sessionId).Result()
	if err != nil {
		log.Printf("CheckSession: %v", err)
		return false, models.ErrServerError
	}
	return n > 0, nil
}

func (s *SessionRepo) DeleteSession(sessionId string) (err error) {
	err = s.rdb.Del(s.ctx, sessionId).Err()
	if err != nil {
		log.Printf("DeleteSession: %v", err)
		err = models.ErrServerError
	}
	return
}

func (s *SessionRepo) RefreshSession(sessionId string, expirationTime time.Duration) (err error) {
	err = s.rdb.Expire(s.ctx, sessionId, expirationTime).Err()
	if err != nil {
		log.Printf("RefreshSession: %v", err)
		err = models.ErrServerError
	}
	return
}

func (s *SessionRepo) GetCustomerSessionInfo(sessionId string) (customerId int, role string, exists bool, err error) {
	vals, e := s.rdb.HGetAll(s.ctx, sessionId).Result()
	if e != nil {
		log.Printf("GetCustomerSessionInfo: %v", e)
		err = models.ErrServerError
		return
	}
	if len(vals) == 0 {
		return
	}
	customerId, e = strconv.Atoi(vals["customerId"])
	if e != nil {
		log.Printf("GetCustomerSessionInfo: %v", e)
		err = models.ErrServerError
		return
	}
	role = vals["role"]
	exists = true
	return
}
