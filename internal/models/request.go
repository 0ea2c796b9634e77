package models

import "time"

// Request is a visitor-filed item within a project. It works as a chat
// thread between the anonymous visitor and the admin.
type Request struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// ProjectID is the owning project.
	ProjectID uint `gorm:"index;not null" json:"project_id"`
	// Username is the display name captured at creation time.
	Username string `gorm:"not null" json:"username"`
	// UserIP is the raw caller address. It is the ownership key for the
	// thread, never shown to other visitors.
	UserIP      string `gorm:"index;not null" json:"-"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	// Status is free text, "pending" on creation. No transition graph is
	// enforced.
	Status string `gorm:"default:pending" json:"status"`
	Tags   string `json:"tags"`
	// IsBlocked hides the request from its own creator. The admin still
	// sees it.
	IsBlocked bool      `gorm:"default:false" json:"is_blocked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
