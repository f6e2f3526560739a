package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/habithub/habithub-api/internal/models"
	"github.com/habithub/habithub-api/internal/store"
)

const (
	maxCategoryName = 100
	maxHabitName    = 200
)

func (e *Engine) ListCategories(ctx context.Context, userID uint) ([]models.Category, error) {
	return e.store.ListCategories(ctx, userID)
}

// CreateCategory stores the category and returns any achievements it
// unlocked. A failed achievement check is returned alongside the stored
// category.
func (e *Engine) CreateCategory(ctx context.Context, userID uint, c models.Category) (models.Category, []models.UserAchievement, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := validateName(c.Name, maxCategoryName); err != nil {
		return models.Category{}, nil, err
	}
	c.ID = ""
	c.UserID = userID
	if err := e.store.CreateCategory(ctx, &c); err != nil {
		return models.Category{}, nil, err
	}
	unlocked, err := e.CheckAchievements(ctx, userID)
	return c, unlocked, err
}

func (e *Engine) UpdateCategory(ctx context.Context, userID uint, id string, patch store.CategoryPatch) (models.Category, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := validateName(name, maxCategoryName); err != nil {
			return models.Category{}, err
		}
		patch.Name = &name
	}
	return e.store.UpdateCategory(ctx, userID, id, patch)
}

func (e *Engine) DeleteCategory(ctx context.Context, userID uint, id string) error {
	return e.store.DeleteCategory(ctx, userID, id)
}

func (e *Engine) ListHabits(ctx context.Context, userID uint, includeArchived bool) ([]models.Habit, error) {
	return e.store.ListHabits(ctx, userID, includeArchived)
}

func (e *Engine) GetHabit(ctx context.Context, userID uint, id string) (models.Habit, error) {
	return e.store.GetHabit(ctx, userID, id)
}

// CreateHabit stores the habit and returns any achievements it unlocked. A
// failed achievement check is returned alongside the stored habit.
func (e *Engine) CreateHabit(ctx context.Context, userID uint, h models.Habit) (models.Habit, []models.UserAchievement, error) {
	h.Name = strings.TrimSpace(h.Name)
	if err := validateName(h.Name, maxHabitName); err != nil {
		return models.Habit{}, nil, err
	}
	if h.Frequency == "" {
		h.Frequency = models.FrequencyDaily
	}
	if h.TargetCount == 0 {
		h.TargetCount = 1
	}
	if h.CategoryID != nil && *h.CategoryID == "" {
		h.CategoryID = nil
	}
	if err := validateSchedule(h.Frequency, h.TargetCount); err != nil {
		return models.Habit{}, nil, err
	}
	if err := e.checkCategory(ctx, userID, h.CategoryID); err != nil {
		return models.Habit{}, nil, err
	}

	h.ID = ""
	h.UserID = userID
	h.Archived = false
	if err := e.store.CreateHabit(ctx, &h); err != nil {
		return models.Habit{}, nil, err
	}
	unlocked, err := e.CheckAchievements(ctx, userID)
	return h, unlocked, err
}

func (e *Engine) UpdateHabit(ctx context.Context, userID uint, id string, patch store.HabitPatch) (models.Habit, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := validateName(name, maxHabitName); err != nil {
			return models.Habit{}, err
		}
		patch.Name = &name
	}
	if patch.Frequency != nil && !patch.Frequency.Valid() {
		return models.Habit{}, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, *patch.Frequency)
	}
	if patch.TargetCount != nil && *patch.TargetCount < 1 {
		return models.Habit{}, fmt.Errorf("%w: target count must be at least 1", ErrInvalidInput)
	}
	if patch.CategoryID != nil && *patch.CategoryID != "" {
		if err := e.checkCategory(ctx, userID, patch.CategoryID); err != nil {
			return models.Habit{}, err
		}
	}
	return e.store.UpdateHabit(ctx, userID, id, patch)
}

func (e *Engine) SetHabitArchived(ctx context.Context, userID uint, id string, archived bool) (models.Habit, error) {
	return e.store.UpdateHabit(ctx, userID, id, store.HabitPatch{Archived: &archived})
}

// DeleteHabit removes the habit with its completions, reminders and
// milestones. The completion counter and current streak follow the removed
// history; perfect days already earned are kept.
func (e *Engine) DeleteHabit(ctx context.Context, userID uint, id string) error {
	if _, err := e.store.GetOrCreateProfile(ctx, userID); err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	return e.store.Transaction(ctx, func(tx *store.Store) error {
		removed, err := tx.DeleteHabit(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.AddCompletions(ctx, userID, -removed); err != nil {
			return err
		}
		return e.refreshStreak(ctx, tx, userID)
	})
}

func (e *Engine) checkCategory(ctx context.Context, userID uint, id *string) error {
	if id == nil || *id == "" {
		return nil
	}
	_, err := e.store.GetCategory(ctx, userID, *id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: category %s does not exist", ErrInvalidInput, *id)
	}
	return err
}

func validateName(name string, limit int) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > limit {
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidInput, limit)
	}
	return nil
}

func validateSchedule(f models.Frequency, target int) error {
	if !f.Valid() {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, f)
	}
	if target < 1 {
		return fmt.Errorf("%w: target count must be at least 1", ErrInvalidInput)
	}
	return nil
}
