package models

import "time"

// Project is a top-level container visitors file requests against.
// It is created and moderated exclusively by an admin.
type Project struct {
	// ID is the numeric primary key.
	ID uint `gorm:"primaryKey" json:"id"`
	// Name is the unique, human-facing project name.
	Name string `gorm:"uniqueIndex;not null" json:"name"`
	// Description is free-form text shown on the project listing.
	Description string `gorm:"type:text" json:"description"`
	// IsLocked hides the project from visitors and rejects new requests.
	// Locked projects stay visible to the admin.
	IsLocked bool `gorm:"default:false" json:"is_locked"`
	// CreatedAt is the timestamp when the project was created.
	CreatedAt time.Time `json:"created_at"`
}
