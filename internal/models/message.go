package models

import "time"

// Sender types for Message.SenderType.
const (
	SenderUser  = "user"
	SenderAdmin = "admin"
)

// Message is one entry in a request's thread. Append-only; removed only by
// cascade when the parent request or project is deleted.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RequestID  uint      `gorm:"index;not null" json:"request_id"`
	SenderType string    `gorm:"not null" json:"sender_type"` // "user" or "admin"
	SenderName string    `gorm:"not null" json:"sender_name"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
