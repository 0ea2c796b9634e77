package storage

import (
	"encoding/json"
	"fmt"

	"askmego/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// PublishThreadEvent публікує подію треда в Redis Pub/Sub
func (s *Service) PublishThreadEvent(event models.ThreadEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	channel := fmt.Sprintf("thread:%d", event.RequestID)
	return s.Redis.Publish(s.Ctx, channel, string(payload)).Err()
}

// SubscribeThreadEvents subscribes to every thread channel. The live hub
// consumes the returned PubSub and fans events out to its clients.
func (s *Service) SubscribeThreadEvents() *redis.PubSub {
	return s.Redis.PSubscribe(s.Ctx, "thread:*")
}
