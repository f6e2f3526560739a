package store

import (
	"context"
	"errors"

	"github.com/habithub/habithub-api/internal/models"
	"gorm.io/gorm"
)

// CreateCompletion appends to the completion log. A second completion for
// the same habit and date is rejected with ErrDuplicateCompletion.
func (s *Store) CreateCompletion(ctx context.Context, c *models.Completion) error {
	err := s.conn(ctx).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateCompletion
	}
	return err
}

func (s *Store) GetCompletion(ctx context.Context, userID uint, id string) (models.Completion, error) {
	var c models.Completion
	err := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).First(&c).Error
	return c, notFound(err)
}

// DeleteCompletion removes a completion owned by userID, with its journal
// entries, and returns it.
func (s *Store) DeleteCompletion(ctx context.Context, userID uint, id string) (models.Completion, error) {
	var c models.Completion
	err := s.Transaction(ctx, func(tx *Store) error {
		if err := tx.db.Where("id = ? AND user_id = ?", id, userID).First(&c).Error; err != nil {
			return notFound(err)
		}
		if err := tx.db.Where("completion_id = ? AND user_id = ?", c.ID, userID).Delete(&models.JournalEntry{}).Error; err != nil {
			return err
		}
		return tx.db.Delete(&c).Error
	})
	return c, err
}

// ListCompletionsByUser returns completions ordered by date descending,
// optionally bounded by inclusive from/to dates (empty means unbounded).
func (s *Store) ListCompletionsByUser(ctx context.Context, userID uint, from, to string) ([]models.Completion, error) {
	q := s.conn(ctx).Where("user_id = ?", userID)
	if from != "" {
		q = q.Where("completed_date >= ?", from)
	}
	if to != "" {
		q = q.Where("completed_date <= ?", to)
	}
	var out []models.Completion
	err := q.Order("completed_date desc, created_at desc").Find(&out).Error
	return out, err
}

// ListCompletionsByHabit returns the habit's completions, newest first,
// capped to limit when limit > 0.
func (s *Store) ListCompletionsByHabit(ctx context.Context, userID uint, habitID string, limit int) ([]models.Completion, error) {
	q := s.conn(ctx).Where("habit_id = ? AND user_id = ?", habitID, userID).Order("completed_date desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []models.Completion
	err := q.Find(&out).Error
	return out, err
}

// RecentCompletionDates returns the dates of the user's limit most recent
// completion records, newest first. Dates repeat when several habits were
// completed on the same day.
func (s *Store) RecentCompletionDates(ctx context.Context, userID uint, limit int) ([]string, error) {
	var dates []string
	err := s.conn(ctx).Model(&models.Completion{}).
		Where("user_id = ?", userID).
		Order("completed_date desc").
		Limit(limit).
		Pluck("completed_date", &dates).Error
	return dates, err
}

func (s *Store) CountCompletionsSince(ctx context.Context, userID uint, since string) (int, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Completion{}).
		Where("user_id = ? AND completed_date >= ?", userID, since).
		Count(&n).Error
	return int(n), err
}

func (s *Store) HabitCompletionDatesSince(ctx context.Context, userID uint, habitID, since string) ([]string, error) {
	var dates []string
	err := s.conn(ctx).Model(&models.Completion{}).
		Where("user_id = ? AND habit_id = ? AND completed_date >= ?", userID, habitID, since).
		Pluck("completed_date", &dates).Error
	return dates, err
}

// CompletedHabitIDsOn returns the ids of habits completed on date.
func (s *Store) CompletedHabitIDsOn(ctx context.Context, userID uint, date string) ([]string, error) {
	var ids []string
	err := s.conn(ctx).Model(&models.Completion{}).
		Where("user_id = ? AND completed_date = ?", userID, date).
		Pluck("habit_id", &ids).Error
	return ids, err
}
