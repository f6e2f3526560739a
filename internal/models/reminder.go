package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reminder schedules a nudge for a habit at Time (HH:MM) on the listed
// weekdays, 0 being Sunday.
type Reminder struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	HabitID   string    `gorm:"size:36;not null;index:idx_reminders_habit" json:"habit_id"`
	UserID    uint      `gorm:"not null;index:idx_reminders_user" json:"user_id"`
	Time      string    `gorm:"size:5;not null" json:"time"`
	Days      []int     `gorm:"serializer:json;type:text;not null" json:"days"`
	Enabled   bool      `gorm:"not null" json:"enabled"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (Reminder) TableName() string {
	return "habit_reminders"
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
