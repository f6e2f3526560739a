package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/habithub/habithub-api/internal/gamification"
	"github.com/habithub/habithub-api/internal/models"
)

type ProfileSummary struct {
	models.UserProfile
	NextLevelXP   int `json:"next_level_xp"`
	XPToNextLevel int `json:"xp_to_next_level"`
}

const maxThemeName = 50

// ProfileUpdate holds the user-editable profile settings. Progress counters
// are derived and cannot be written.
type ProfileUpdate struct {
	Theme *string
}

// GetProfile returns the user's profile, creating it on first access.
func (e *Engine) GetProfile(ctx context.Context, userID uint) (ProfileSummary, error) {
	p, err := e.store.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return ProfileSummary{}, fmt.Errorf("load profile: %w", err)
	}
	next := gamification.LevelRequirement(p.Level + 1)
	return ProfileSummary{
		UserProfile:   p,
		NextLevelXP:   next,
		XPToNextLevel: max(next-p.TotalXP, 0),
	}, nil
}

func (e *Engine) UpdateProfile(ctx context.Context, userID uint, u ProfileUpdate) (ProfileSummary, error) {
	if _, err := e.store.GetOrCreateProfile(ctx, userID); err != nil {
		return ProfileSummary{}, fmt.Errorf("load profile: %w", err)
	}
	if u.Theme != nil {
		theme := strings.TrimSpace(*u.Theme)
		if theme == "" || len(theme) > maxThemeName {
			return ProfileSummary{}, fmt.Errorf("%w: theme must be 1 to %d characters", ErrInvalidInput, maxThemeName)
		}
		if err := e.store.SetTheme(ctx, userID, theme); err != nil {
			return ProfileSummary{}, err
		}
	}
	return e.GetProfile(ctx, userID)
}
