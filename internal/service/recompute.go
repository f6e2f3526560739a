package service

import (
	"context"
	"fmt"

	"github.com/habithub/habithub-api/internal/gamification"
	"github.com/habithub/habithub-api/internal/models"
	"github.com/habithub/habithub-api/internal/store"
)

// RecomputeProfile rebuilds the counters derived from completion history
// (streaks, perfect days, total completions) from the full log, then
// re-checks achievements. Perfect days are judged against the habits that
// are active now. XP and level are untouched.
func (e *Engine) RecomputeProfile(ctx context.Context, userID uint) (models.UserProfile, []models.UserAchievement, error) {
	if _, err := e.store.GetOrCreateProfile(ctx, userID); err != nil {
		return models.UserProfile{}, nil, fmt.Errorf("load profile: %w", err)
	}

	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		history, err := tx.ListCompletionsByUser(ctx, userID, "", "")
		if err != nil {
			return err
		}
		active, err := tx.ActiveHabitIDs(ctx, userID)
		if err != nil {
			return err
		}

		dates := make([]string, 0, len(history))
		byDate := make(map[string][]string)
		for _, c := range history {
			dates = append(dates, c.CompletedDate)
			byDate[c.CompletedDate] = append(byDate[c.CompletedDate], c.HabitID)
		}

		current := gamification.CurrentStreak(dates, e.Today())
		longest := max(gamification.LongestStreak(dates), current)
		perfect := gamification.CountPerfectDays(active, byDate)
		return tx.SetDerivedCounters(ctx, userID, current, longest, perfect, len(history))
	})
	if err != nil {
		return models.UserProfile{}, nil, fmt.Errorf("recompute: %w", err)
	}

	unlocked, err := e.CheckAchievements(ctx, userID)
	if err != nil {
		return models.UserProfile{}, unlocked, err
	}
	p, err := e.store.GetProfile(ctx, userID)
	return p, unlocked, err
}
