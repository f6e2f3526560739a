package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Completion marks a habit as done for one calendar day. CompletedDate is
// stored as YYYY-MM-DD so it sorts and compares as a string on every dialect.
type Completion struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	HabitID       string    `gorm:"size:36;not null;uniqueIndex:idx_habit_completion_day" json:"habit_id"`
	UserID        uint      `gorm:"not null;index:idx_completions_user_date" json:"user_id"`
	CompletedDate string    `gorm:"size:10;not null;uniqueIndex:idx_habit_completion_day;index:idx_completions_user_date" json:"completed_date"`
	Note          string    `gorm:"type:text" json:"note"`
	CreatedAt     time.Time `json:"created_at"`
}

func (c *Completion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
