package store

import (
	"context"

	"github.com/habithub/habithub-api/internal/models"
)

type ReminderPatch struct {
	Time    *string
	Days    []int
	Enabled *bool
	Message *string
}

func (s *Store) CreateReminder(ctx context.Context, r *models.Reminder) error {
	return s.conn(ctx).Create(r).Error
}

// ListReminders returns the user's reminders, optionally only those of one
// habit, ordered by time of day.
func (s *Store) ListReminders(ctx context.Context, userID uint, habitID string) ([]models.Reminder, error) {
	q := s.conn(ctx).Where("user_id = ?", userID)
	if habitID != "" {
		q = q.Where("habit_id = ?", habitID)
	}
	var out []models.Reminder
	err := q.Order("time asc, created_at asc").Find(&out).Error
	return out, err
}

func (s *Store) GetReminder(ctx context.Context, userID uint, id string) (models.Reminder, error) {
	var r models.Reminder
	err := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).First(&r).Error
	return r, notFound(err)
}

func (s *Store) UpdateReminder(ctx context.Context, userID uint, id string, patch ReminderPatch) (models.Reminder, error) {
	r, err := s.GetReminder(ctx, userID, id)
	if err != nil {
		return models.Reminder{}, err
	}
	if patch.Time != nil {
		r.Time = *patch.Time
	}
	if patch.Days != nil {
		r.Days = patch.Days
	}
	if patch.Enabled != nil {
		r.Enabled = *patch.Enabled
	}
	if patch.Message != nil {
		r.Message = *patch.Message
	}
	// Select writes zero values too, so a reminder can be disabled.
	err = s.conn(ctx).Model(&r).Select("time", "days", "enabled", "message").Updates(&r).Error
	return r, err
}

func (s *Store) DeleteReminder(ctx context.Context, userID uint, id string) error {
	res := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Reminder{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
