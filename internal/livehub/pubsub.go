package livehub

import (
	"encoding/json"
	"log"

	"askmego/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// StartPubSubListener consumes thread events from the Redis subscription
// and feeds them into the hub's broadcast channel. The goroutine ends when
// the subscription is closed.
func (m *Manager) StartPubSubListener(sub *redis.PubSub) {
	go func() {
		for msg := range sub.Channel() {
			var event models.ThreadEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("ERROR: Bad thread event payload: %v", err)
				continue
			}
			m.BroadcastCh <- event
		}
	}()
}
