package models

import "time"

const (
	DefaultStreakFreezes = 3
	DefaultTheme         = "default"
)

type UserProfile struct {
	UserID           uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Level            int       `gorm:"not null;default:1" json:"level"`
	XP               int       `gorm:"column:xp;not null;default:0" json:"xp"`
	TotalXP          int       `gorm:"column:total_xp;not null;default:0" json:"total_xp"`
	CurrentStreak    int       `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak    int       `gorm:"not null;default:0" json:"longest_streak"`
	PerfectDays      int       `gorm:"not null;default:0" json:"perfect_days"`
	TotalCompletions int       `gorm:"not null;default:0" json:"total_completions"`
	StreakFreezes    int       `gorm:"not null;default:3" json:"streak_freezes"`
	Theme            string    `gorm:"size:50;not null;default:default" json:"theme"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewUserProfile(userID uint) UserProfile {
	return UserProfile{
		UserID:        userID,
		Level:         1,
		StreakFreezes: DefaultStreakFreezes,
		Theme:         DefaultTheme,
	}
}
