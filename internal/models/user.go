package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string `json:"-"`
	DisplayName  string `gorm:"size:200" json:"display_name"`
	AvatarURL    string `gorm:"size:500" json:"avatar_url"`
	Provider     string `gorm:"size:50;default:local" json:"provider"`
	ProviderID   string `gorm:"size:255;index" json:"-"`
}
