package service

import (
	"context"
	"fmt"

	"github.com/habithub/habithub-api/internal/gamification"
	"github.com/habithub/habithub-api/internal/models"
	"github.com/habithub/habithub-api/internal/store"
)

type CompletionResult struct {
	Completion models.Completion        `json:"completion"`
	XP         gamification.XPResult    `json:"xp"`
	Unlocked   []models.UserAchievement `json:"unlocked"`
	PerfectDay bool                     `json:"perfect_day"`
}

// resolveDate defaults an empty date to today and rejects future dates.
func (e *Engine) resolveDate(date string) (string, error) {
	today := gamification.FormatDate(e.Today())
	if date == "" {
		return today, nil
	}
	d, err := gamification.ParseDate(date)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if d > today {
		return "", fmt.Errorf("%w: cannot complete a habit in the future", ErrInvalidInput)
	}
	return d, nil
}

// LogCompletion records a habit as done on date (empty means today) and
// applies its effects: profile counters, streaks, perfect days, XP and
// achievements.
func (e *Engine) LogCompletion(ctx context.Context, userID uint, habitID, date, note string) (CompletionResult, error) {
	date, err := e.resolveDate(date)
	if err != nil {
		return CompletionResult{}, err
	}
	if _, err := e.store.GetHabit(ctx, userID, habitID); err != nil {
		return CompletionResult{}, err
	}
	if _, err := e.store.GetOrCreateProfile(ctx, userID); err != nil {
		return CompletionResult{}, fmt.Errorf("load profile: %w", err)
	}

	var result CompletionResult
	err = e.store.Transaction(ctx, func(tx *store.Store) error {
		active, err := tx.ActiveHabitIDs(ctx, userID)
		if err != nil {
			return err
		}
		done, err := tx.CompletedHabitIDsOn(ctx, userID, date)
		if err != nil {
			return err
		}
		wasPerfect := gamification.IsPerfectDay(active, done)

		c := models.Completion{HabitID: habitID, UserID: userID, CompletedDate: date, Note: note}
		if err := tx.CreateCompletion(ctx, &c); err != nil {
			return err
		}
		result.Completion = c
		result.PerfectDay = gamification.IsPerfectDay(active, append(done, habitID))

		if err := tx.AddCompletions(ctx, userID, 1); err != nil {
			return err
		}
		if result.PerfectDay && !wasPerfect {
			if err := tx.AddPerfectDays(ctx, userID, 1); err != nil {
				return err
			}
		}
		return e.refreshStreak(ctx, tx, userID)
	})
	if err != nil {
		return CompletionResult{}, err
	}

	var levels []int
	result.XP, err = e.AddXP(ctx, userID, e.opts.XPPerCompletion)
	if err != nil {
		return result, fmt.Errorf("grant completion xp: %w", err)
	}
	if result.XP.LeveledUp {
		levels = append(levels, result.XP.NewLevel)
	}

	unlocked, more, err := e.checkAchievements(ctx, userID)
	levels = append(levels, more...)
	result.Unlocked = unlocked
	e.announce(ctx, userID, unlocked, levels)
	return result, err
}

// UndoCompletion deletes a completion and reverses its counters. XP and
// unlocked achievements are kept.
func (e *Engine) UndoCompletion(ctx context.Context, userID uint, completionID string) (models.Completion, error) {
	if _, err := e.store.GetOrCreateProfile(ctx, userID); err != nil {
		return models.Completion{}, fmt.Errorf("load profile: %w", err)
	}

	var removed models.Completion
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		c, err := tx.DeleteCompletion(ctx, userID, completionID)
		if err != nil {
			return err
		}
		removed = c

		active, err := tx.ActiveHabitIDs(ctx, userID)
		if err != nil {
			return err
		}
		remaining, err := tx.CompletedHabitIDsOn(ctx, userID, c.CompletedDate)
		if err != nil {
			return err
		}
		wasPerfect := gamification.IsPerfectDay(active, append(remaining, c.HabitID))
		if wasPerfect && !gamification.IsPerfectDay(active, remaining) {
			if err := tx.AddPerfectDays(ctx, userID, -1); err != nil {
				return err
			}
		}

		if err := tx.AddCompletions(ctx, userID, -1); err != nil {
			return err
		}
		return e.refreshStreak(ctx, tx, userID)
	})
	return removed, err
}

func (e *Engine) refreshStreak(ctx context.Context, tx *store.Store, userID uint) error {
	streak, err := e.currentStreak(ctx, tx, userID)
	if err != nil {
		return err
	}
	return tx.SetCurrentStreak(ctx, userID, streak)
}

func (e *Engine) ListCompletions(ctx context.Context, userID uint, from, to string) ([]models.Completion, error) {
	var err error
	if from != "" {
		if from, err = gamification.ParseDate(from); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if to != "" {
		if to, err = gamification.ParseDate(to); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	return e.store.ListCompletionsByUser(ctx, userID, from, to)
}

func (e *Engine) ListHabitCompletions(ctx context.Context, userID uint, habitID string, limit int) ([]models.Completion, error) {
	if _, err := e.store.GetHabit(ctx, userID, habitID); err != nil {
		return nil, err
	}
	return e.store.ListCompletionsByHabit(ctx, userID, habitID, limit)
}
