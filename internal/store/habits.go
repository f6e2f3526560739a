package store

import (
	"context"

	"github.com/habithub/habithub-api/internal/models"
)

// HabitPatch carries a partial update. A CategoryID pointing at "" clears
// the category.
type HabitPatch struct {
	Name        *string
	Description *string
	Icon        *string
	Color       *string
	CategoryID  *string
	Frequency   *models.Frequency
	TargetCount *int
	Archived    *bool
	Order       *int
}

func (p HabitPatch) updates() map[string]any {
	m := map[string]any{}
	if p.Name != nil {
		m["name"] = *p.Name
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.Icon != nil {
		m["icon"] = *p.Icon
	}
	if p.Color != nil {
		m["color"] = *p.Color
	}
	if p.CategoryID != nil {
		if *p.CategoryID == "" {
			m["category_id"] = nil
		} else {
			m["category_id"] = *p.CategoryID
		}
	}
	if p.Frequency != nil {
		m["frequency"] = *p.Frequency
	}
	if p.TargetCount != nil {
		m["target_count"] = *p.TargetCount
	}
	if p.Archived != nil {
		m["archived"] = *p.Archived
	}
	if p.Order != nil {
		m["sort_order"] = *p.Order
	}
	return m
}

func (s *Store) ListHabits(ctx context.Context, userID uint, includeArchived bool) ([]models.Habit, error) {
	q := s.conn(ctx).Where("user_id = ?", userID)
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	var habits []models.Habit
	err := q.Order("sort_order asc, created_at asc").Find(&habits).Error
	return habits, err
}

func (s *Store) GetHabit(ctx context.Context, userID uint, id string) (models.Habit, error) {
	var habit models.Habit
	err := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).First(&habit).Error
	return habit, notFound(err)
}

func (s *Store) CreateHabit(ctx context.Context, habit *models.Habit) error {
	return s.conn(ctx).Create(habit).Error
}

func (s *Store) UpdateHabit(ctx context.Context, userID uint, id string, patch HabitPatch) (models.Habit, error) {
	if _, err := s.GetHabit(ctx, userID, id); err != nil {
		return models.Habit{}, err
	}
	if updates := patch.updates(); len(updates) > 0 {
		err := s.conn(ctx).Model(&models.Habit{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates).Error
		if err != nil {
			return models.Habit{}, err
		}
	}
	return s.GetHabit(ctx, userID, id)
}

// DeleteHabit removes the habit together with its completions, their journal
// entries, its reminders and its milestones. It returns the number of
// completions removed.
func (s *Store) DeleteHabit(ctx context.Context, userID uint, id string) (int, error) {
	var removed int64
	err := s.Transaction(ctx, func(tx *Store) error {
		res := tx.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Habit{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		completions := tx.db.Model(&models.Completion{}).Select("id").Where("habit_id = ? AND user_id = ?", id, userID)
		if err := tx.db.Where("user_id = ? AND completion_id IN (?)", userID, completions).Delete(&models.JournalEntry{}).Error; err != nil {
			return err
		}
		res = tx.db.Where("habit_id = ? AND user_id = ?", id, userID).Delete(&models.Completion{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected

		if err := tx.db.Where("habit_id = ? AND user_id = ?", id, userID).Delete(&models.Reminder{}).Error; err != nil {
			return err
		}
		return tx.db.Where("habit_id = ? AND user_id = ?", id, userID).Delete(&models.Milestone{}).Error
	})
	return int(removed), err
}

// CountHabits returns the total number of habits and the non-archived ones.
func (s *Store) CountHabits(ctx context.Context, userID uint) (total, active int, err error) {
	var t, a int64
	if err = s.conn(ctx).Model(&models.Habit{}).Where("user_id = ?", userID).Count(&t).Error; err != nil {
		return 0, 0, err
	}
	if err = s.conn(ctx).Model(&models.Habit{}).Where("user_id = ? AND archived = ?", userID, false).Count(&a).Error; err != nil {
		return 0, 0, err
	}
	return int(t), int(a), nil
}

func (s *Store) ActiveHabitIDs(ctx context.Context, userID uint) ([]string, error) {
	var ids []string
	err := s.conn(ctx).Model(&models.Habit{}).
		Where("user_id = ? AND archived = ?", userID, false).
		Pluck("id", &ids).Error
	return ids, err
}
