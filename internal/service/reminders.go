package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/habithub/habithub-api/internal/models"
	"github.com/habithub/habithub-api/internal/store"
)

const maxReminderMessage = 500

// CreateReminder schedules a reminder for one of the user's habits.
// Reminders start enabled unless enabled is false.
func (e *Engine) CreateReminder(ctx context.Context, userID uint, r models.Reminder, enabled *bool) (models.Reminder, error) {
	if err := validateReminderTime(r.Time); err != nil {
		return models.Reminder{}, err
	}
	days, err := normalizeDays(r.Days)
	if err != nil {
		return models.Reminder{}, err
	}
	if len(r.Message) > maxReminderMessage {
		return models.Reminder{}, fmt.Errorf("%w: message longer than %d characters", ErrInvalidInput, maxReminderMessage)
	}
	if err := e.checkHabit(ctx, userID, &r.HabitID); err != nil {
		return models.Reminder{}, err
	}

	r.ID = ""
	r.UserID = userID
	r.Days = days
	r.Enabled = enabled == nil || *enabled
	if err := e.store.CreateReminder(ctx, &r); err != nil {
		return models.Reminder{}, err
	}
	return r, nil
}

func (e *Engine) ListReminders(ctx context.Context, userID uint, habitID string) ([]models.Reminder, error) {
	return e.store.ListReminders(ctx, userID, habitID)
}

func (e *Engine) UpdateReminder(ctx context.Context, userID uint, id string, patch store.ReminderPatch) (models.Reminder, error) {
	if patch.Time != nil {
		if err := validateReminderTime(*patch.Time); err != nil {
			return models.Reminder{}, err
		}
	}
	if patch.Days != nil {
		days, err := normalizeDays(patch.Days)
		if err != nil {
			return models.Reminder{}, err
		}
		patch.Days = days
	}
	if patch.Message != nil && len(*patch.Message) > maxReminderMessage {
		return models.Reminder{}, fmt.Errorf("%w: message longer than %d characters", ErrInvalidInput, maxReminderMessage)
	}
	return e.store.UpdateReminder(ctx, userID, id, patch)
}

func (e *Engine) DeleteReminder(ctx context.Context, userID uint, id string) error {
	return e.store.DeleteReminder(ctx, userID, id)
}

// validateReminderTime accepts a zero-padded 24 hour HH:MM.
func validateReminderTime(s string) error {
	if len(s) != 5 {
		return fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	}
	return nil
}

// normalizeDays sorts and dedupes weekdays, 0 (Sunday) to 6.
func normalizeDays(days []int) ([]int, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: at least one day is required", ErrInvalidInput)
	}
	out := slices.Clone(days)
	for _, d := range out {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("%w: day %d is not a weekday (0-6)", ErrInvalidInput, d)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}
