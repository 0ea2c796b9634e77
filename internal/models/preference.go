package models

import "time"

// Preference holds per-caller display settings, keyed by the caller address.
// Admin-scoped settings live under a reserved key that can never collide
// with a network address.
type Preference struct {
	// UserIP is the caller address, or the reserved admin settings key.
	UserIP string `gorm:"primaryKey" json:"-"`
	// Nickname overrides the derived username when non-empty.
	Nickname  string    `json:"nickname"`
	Language  string    `gorm:"default:en" json:"language"`
	Theme     string    `gorm:"default:light" json:"theme"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
