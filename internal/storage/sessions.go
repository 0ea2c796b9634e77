package storage

import (
	"errors"

	"askmego/backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Session state lives in Redis under two key families:
//
//	admin_session:<sid>  -> "1", with TTL (the admin flag)
//	flash:<sid>          -> list of pending one-shot notices
//
// Expiry of the admin key is the session teardown path besides logout.

// SetSessionAdmin marks the session as an authenticated admin session.
func (s *Service) SetSessionAdmin(sid string) error {
	return s.Redis.Set(s.Ctx, "admin_session:"+sid, "1", config.SessionTTL).Err()
}

// IsSessionAdmin перевіряє статус сесії в Redis
func (s *Service) IsSessionAdmin(sid string) (bool, error) {
	val, err := s.Redis.Get(s.Ctx, "admin_session:"+sid).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == "1", nil
}

func (s *Service) ClearSessionAdmin(sid string) error {
	return s.Redis.Del(s.Ctx, "admin_session:"+sid).Err()
}

// PushFlash queues a one-shot notice for the session. The key expires with
// the session so abandoned flashes don't pile up.
func (s *Service) PushFlash(sid, notice string) error {
	key := "flash:" + sid
	if err := s.Redis.RPush(s.Ctx, key, notice).Err(); err != nil {
		return err
	}
	return s.Redis.Expire(s.Ctx, key, config.SessionTTL).Err()
}

// PopFlashes drains and returns all pending notices for the session.
func (s *Service) PopFlashes(sid string) ([]string, error) {
	key := "flash:" + sid
	notices, err := s.Redis.LRange(s.Ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(notices) == 0 {
		return nil, nil
	}
	if err := s.Redis.Del(s.Ctx, key).Err(); err != nil {
		return nil, err
	}
	return notices, nil
}
