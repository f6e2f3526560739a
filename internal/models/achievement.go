package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

type Requirement struct {
	Type  string `yaml:"type" json:"type"`
	Value int    `yaml:"value" json:"value"`
}

// Achievement is a catalog entry. The catalog is static and loaded once, so
// it is not a table.
type Achievement struct {
	Key         string      `yaml:"key" json:"key"`
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description" json:"description"`
	Icon        string      `yaml:"icon" json:"icon"`
	Category    string      `yaml:"category" json:"category"`
	Rarity      Rarity      `yaml:"rarity" json:"rarity"`
	XPReward    int         `yaml:"xp_reward" json:"xp_reward"`
	Requirement Requirement `yaml:"requirement" json:"requirement"`
	Order       int         `yaml:"order" json:"order"`
}

type UserAchievement struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementKey string    `gorm:"size:100;not null;uniqueIndex:idx_user_achievement" json:"achievement_key"`
	UnlockedAt     time.Time `gorm:"not null" json:"unlocked_at"`
	Progress       int       `json:"progress"`
	Seen           bool      `gorm:"not null" json:"seen"`
}

func (ua *UserAchievement) BeforeCreate(tx *gorm.DB) error {
	if ua.ID == "" {
		ua.ID = uuid.NewString()
	}
	return nil
}

type AchievementWithProgress struct {
	Achievement
	Progress   int        `json:"progress"`
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	Seen       bool       `json:"seen"`
}
