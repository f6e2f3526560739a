package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MilestoneType string

const (
	MilestoneStreak          MilestoneType = "streak"
	MilestoneCompletionCount MilestoneType = "completion_count"
	MilestoneLevelUp         MilestoneType = "level_up"
	MilestonePerfectWeek     MilestoneType = "perfect_week"
)

func (t MilestoneType) Valid() bool {
	switch t {
	case MilestoneStreak, MilestoneCompletionCount, MilestoneLevelUp, MilestonePerfectWeek:
		return true
	}
	return false
}

// Milestone is a user-recorded moment worth celebrating, such as a 30 day
// streak. Celebrated flips once the client has shown it.
type Milestone struct {
	ID          string        `gorm:"primaryKey;size:36" json:"id"`
	UserID      uint          `gorm:"not null;index:idx_milestones_user" json:"user_id"`
	Type        MilestoneType `gorm:"size:50;not null" json:"type"`
	HabitID     *string       `gorm:"size:36;index:idx_milestones_habit" json:"habit_id"`
	Title       string        `gorm:"size:200;not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Value       int           `gorm:"not null" json:"value"`
	Icon        string        `gorm:"size:50" json:"icon"`
	AchievedAt  time.Time     `gorm:"not null" json:"achieved_at"`
	Celebrated  bool          `gorm:"not null" json:"celebrated"`
}

func (m *Milestone) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
