package service

import (
	"context"
	"fmt"

	"github.com/habithub/habithub-api/internal/gamification"
	"github.com/habithub/habithub-api/internal/store"
)

type UserStats struct {
	TotalHabits         int `json:"total_habits"`
	ActiveHabits        int `json:"active_habits"`
	CompletionsInWindow int `json:"completions_in_window"`
	CurrentStreak       int `json:"current_streak"`
	Days                int `json:"days"`
}

// GetUserStats aggregates the user's habits and completions over the last
// days days. days <= 0 uses the configured default.
func (e *Engine) GetUserStats(ctx context.Context, userID uint, days int) (UserStats, error) {
	if days <= 0 {
		days = e.opts.DefaultStatsDays
	}
	today := e.Today()

	total, active, err := e.store.CountHabits(ctx, userID)
	if err != nil {
		return UserStats{}, fmt.Errorf("count habits: %w", err)
	}

	inWindow, err := e.store.CountCompletionsSince(ctx, userID, gamification.DaysBefore(today, days))
	if err != nil {
		return UserStats{}, fmt.Errorf("count completions: %w", err)
	}

	streak, err := e.currentStreak(ctx, e.store, userID)
	if err != nil {
		return UserStats{}, err
	}

	return UserStats{
		TotalHabits:         total,
		ActiveHabits:        active,
		CompletionsInWindow: inWindow,
		CurrentStreak:       streak,
		Days:                days,
	}, nil
}

// GetCompletionCount counts a habit's completions within the last days days.
func (e *Engine) GetCompletionCount(ctx context.Context, userID uint, habitID string, days int) (int, error) {
	if days < 0 {
		return 0, fmt.Errorf("%w: days must not be negative", ErrInvalidInput)
	}
	if _, err := e.store.GetHabit(ctx, userID, habitID); err != nil {
		return 0, err
	}
	today := e.Today()
	dates, err := e.store.HabitCompletionDatesSince(ctx, userID, habitID, gamification.DaysBefore(today, days))
	if err != nil {
		return 0, fmt.Errorf("habit completions: %w", err)
	}
	return gamification.CountInWindow(dates, today, days), nil
}

// currentStreak reads the bounded recent window through s, which may be a
// transaction-bound store.
func (e *Engine) currentStreak(ctx context.Context, s *store.Store, userID uint) (int, error) {
	dates, err := s.RecentCompletionDates(ctx, userID, gamification.RecentCompletionWindow)
	if err != nil {
		return 0, fmt.Errorf("recent completions: %w", err)
	}
	return gamification.CurrentStreak(dates, e.Today()), nil
}
