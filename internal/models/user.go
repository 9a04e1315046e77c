package models

import (
	"time"
)

// User is a local account. The CLI runs as the user named in the
// config file; the HTTP API authenticates against PasswordHash.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string `gorm:"uniqueIndex;not null" json:"name"`
	PasswordHash string `json:"-"`
}
