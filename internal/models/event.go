package models

import "time"

// ThreadEvent is what the live hub fans out to browsers watching a request
// thread. It mirrors the persisted Message.
type ThreadEvent struct {
	RequestID  uint      `json:"request_id"`
	SenderType string    `json:"sender_type"`
	SenderName string    `json:"sender_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
