package service

import (
	"context"
	"fmt"

	"github.com/habithub/habithub-api/internal/gamification"
	"github.com/habithub/habithub-api/internal/models"
	"github.com/habithub/habithub-api/internal/store"
)

// CheckAchievements unlocks every catalog entry the user now satisfies and
// returns only the ones unlocked by this call. Rewards can satisfy further
// entries, so evaluation repeats until a pass unlocks nothing.
func (e *Engine) CheckAchievements(ctx context.Context, userID uint) ([]models.UserAchievement, error) {
	unlocked, levels, err := e.checkAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	e.announce(ctx, userID, unlocked, levels)
	return unlocked, nil
}

func (e *Engine) checkAchievements(ctx context.Context, userID uint) ([]models.UserAchievement, []int, error) {
	if _, err := e.store.GetOrCreateProfile(ctx, userID); err != nil {
		return nil, nil, fmt.Errorf("load profile: %w", err)
	}
	have, err := e.store.UnlockedKeys(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load unlocked achievements: %w", err)
	}

	var (
		unlocked []models.UserAchievement
		levels   []int
	)
	for range gamification.MaxEvaluationPasses {
		p, err := e.store.GetProfile(ctx, userID)
		if err != nil {
			return unlocked, levels, err
		}
		counts, err := e.counts(ctx, userID)
		if err != nil {
			return unlocked, levels, err
		}

		due := gamification.Evaluate(e.catalog.Achievements(), have, p, counts)
		created := 0
		for _, a := range due {
			progress, _ := gamification.Progress(a.Requirement, p, counts)
			ua, xp, isNew, err := e.unlock(ctx, userID, a, progress)
			if err != nil {
				return unlocked, levels, err
			}
			have[a.Key] = true
			if !isNew {
				continue
			}
			created++
			unlocked = append(unlocked, ua)
			if xp.LeveledUp {
				levels = append(levels, xp.NewLevel)
			}
		}
		if created == 0 {
			break
		}
	}
	return unlocked, levels, nil
}

// unlock records a and grants its reward in one transaction, so a failed
// grant leaves the achievement locked for the next check.
func (e *Engine) unlock(ctx context.Context, userID uint, a models.Achievement, progress int) (models.UserAchievement, gamification.XPResult, bool, error) {
	var (
		ua    models.UserAchievement
		xp    gamification.XPResult
		isNew bool
	)
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		var err error
		ua, isNew, err = tx.Unlock(ctx, userID, a.Key, progress)
		if err != nil {
			return fmt.Errorf("unlock %s: %w", a.Key, err)
		}
		if !isNew || a.XPReward == 0 {
			return nil
		}
		if xp, err = addXP(ctx, tx, userID, a.XPReward); err != nil {
			return fmt.Errorf("grant reward for %s: %w", a.Key, err)
		}
		return nil
	})
	if err != nil {
		return models.UserAchievement{}, gamification.XPResult{}, false, err
	}
	return ua, xp, isNew, nil
}

func (e *Engine) counts(ctx context.Context, userID uint) (gamification.Counts, error) {
	habits, _, err := e.store.CountHabits(ctx, userID)
	if err != nil {
		return gamification.Counts{}, fmt.Errorf("count habits: %w", err)
	}
	categories, err := e.store.CountCategories(ctx, userID)
	if err != nil {
		return gamification.Counts{}, fmt.Errorf("count categories: %w", err)
	}
	return gamification.Counts{Habits: habits, Categories: categories}, nil
}

// ListAchievements returns the whole catalog annotated with the user's
// progress and unlock state.
func (e *Engine) ListAchievements(ctx context.Context, userID uint) ([]models.AchievementWithProgress, error) {
	p, err := e.store.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts, err := e.counts(ctx, userID)
	if err != nil {
		return nil, err
	}
	mine, err := e.store.ListUserAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]models.UserAchievement, len(mine))
	for _, ua := range mine {
		byKey[ua.AchievementKey] = ua
	}

	catalog := e.catalog.Achievements()
	out := make([]models.AchievementWithProgress, 0, len(catalog))
	for _, a := range catalog {
		progress, _ := gamification.Progress(a.Requirement, p, counts)
		item := models.AchievementWithProgress{Achievement: a, Progress: progress}
		if ua, ok := byKey[a.Key]; ok {
			unlockedAt := ua.UnlockedAt
			item.Unlocked = true
			item.UnlockedAt = &unlockedAt
			item.Seen = ua.Seen
		}
		out = append(out, item)
	}
	return out, nil
}

func (e *Engine) ListUserAchievements(ctx context.Context, userID uint) ([]models.UserAchievement, error) {
	return e.store.ListUserAchievements(ctx, userID)
}

// MarkAchievementsSeen acknowledges unlocks; no keys marks all of them.
func (e *Engine) MarkAchievementsSeen(ctx context.Context, userID uint, keys []string) (int, error) {
	return e.store.MarkSeen(ctx, userID, keys)
}
