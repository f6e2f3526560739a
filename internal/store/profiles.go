package store

import (
	"context"
	"errors"
	"time"

	"github.com/habithub/habithub-api/internal/models"
	"gorm.io/gorm"
)

// GetOrCreateProfile returns the user's profile, creating the default one on
// first access.
func (s *Store) GetOrCreateProfile(ctx context.Context, userID uint) (models.UserProfile, error) {
	var p models.UserProfile
	err := s.conn(ctx).Where("user_id = ?", userID).
		Attrs(models.NewUserProfile(userID)).
		FirstOrCreate(&p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// created concurrently by another request
		return s.GetProfile(ctx, userID)
	}
	return p, err
}

func (s *Store) GetProfile(ctx context.Context, userID uint) (models.UserProfile, error) {
	var p models.UserProfile
	err := s.conn(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, ErrProfileNotFound
	}
	return p, err
}

// SwapXP writes the XP fields of p only if the stored lifetime XP still
// equals expectedTotal. It reports whether the write happened.
func (s *Store) SwapXP(ctx context.Context, expectedTotal int, p models.UserProfile) (bool, error) {
	res := s.conn(ctx).Model(&models.UserProfile{}).
		Where("user_id = ? AND total_xp = ?", p.UserID, expectedTotal).
		Updates(map[string]any{
			"level":      p.Level,
			"xp":         p.XP,
			"total_xp":   p.TotalXP,
			"updated_at": time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

// AddCompletions adjusts the lifetime completion counter, never below zero.
func (s *Store) AddCompletions(ctx context.Context, userID uint, delta int) error {
	return s.adjustCounter(ctx, userID, "total_completions", delta)
}

// AddPerfectDays adjusts the perfect day counter, never below zero.
func (s *Store) AddPerfectDays(ctx context.Context, userID uint, delta int) error {
	return s.adjustCounter(ctx, userID, "perfect_days", delta)
}

func (s *Store) adjustCounter(ctx context.Context, userID uint, column string, delta int) error {
	if delta == 0 {
		return nil
	}
	q := s.conn(ctx).Model(&models.UserProfile{}).Where("user_id = ?", userID)
	if delta < 0 {
		q = q.Where(column+" >= ?", -delta)
	}
	return q.Updates(map[string]any{
		column:       gorm.Expr(column+" + ?", delta),
		"updated_at": time.Now(),
	}).Error
}

// SetCurrentStreak stores the current streak and raises the longest streak
// when it is exceeded.
func (s *Store) SetCurrentStreak(ctx context.Context, userID uint, current int) error {
	return s.conn(ctx).Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"current_streak": current,
			"longest_streak": gorm.Expr("CASE WHEN longest_streak < ? THEN ? ELSE longest_streak END", current, current),
			"updated_at":     time.Now(),
		}).Error
}

// SetDerivedCounters overwrites the counters derived from completion
// history. XP and level are left alone.
func (s *Store) SetDerivedCounters(ctx context.Context, userID uint, current, longest, perfectDays, totalCompletions int) error {
	return s.conn(ctx).Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"current_streak":    current,
			"longest_streak":    longest,
			"perfect_days":      perfectDays,
			"total_completions": totalCompletions,
			"updated_at":        time.Now(),
		}).Error
}

func (s *Store) SetTheme(ctx context.Context, userID uint, theme string) error {
	res := s.conn(ctx).Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{"theme": theme, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
