package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodNeutral   Mood = "neutral"
	MoodSad       Mood = "sad"
	MoodStressed  Mood = "stressed"
	MoodEnergized Mood = "energized"
	MoodCalm      Mood = "calm"
	MoodAnxious   Mood = "anxious"
)

func (m Mood) Valid() bool {
	switch m {
	case MoodHappy, MoodNeutral, MoodSad, MoodStressed, MoodEnergized, MoodCalm, MoodAnxious:
		return true
	}
	return false
}

// JournalEntry is a reflection attached to one completion. Energy and
// difficulty are rated 1 to 5 when present.
type JournalEntry struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	CompletionID string    `gorm:"size:36;not null;index:idx_journal_completion" json:"completion_id"`
	UserID       uint      `gorm:"not null;index:idx_journal_user" json:"user_id"`
	Mood         Mood      `gorm:"size:20" json:"mood,omitempty"`
	Energy       *int      `json:"energy"`
	Difficulty   *int      `json:"difficulty"`
	Notes        string    `gorm:"type:text" json:"notes"`
	Reflection   string    `gorm:"type:text" json:"reflection"`
	Tags         []string  `gorm:"serializer:json;type:text" json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (JournalEntry) TableName() string {
	return "habit_journals"
}

func (j *JournalEntry) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}
