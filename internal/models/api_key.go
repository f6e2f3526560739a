package models

import (
	"time"

	"gorm.io/gorm"
)

// APIKey stores only the SHA-256 of the key; the plaintext is returned once
// on creation.
type APIKey struct {
	gorm.Model
	UserID     uint       `json:"user_id" gorm:"not null;index"`
	KeyHash    string     `json:"-" gorm:"uniqueIndex;size:64"`
	Suffix     string     `json:"suffix" gorm:"size:4"`
	Name       string     `json:"name"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}
