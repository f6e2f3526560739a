package store

import (
	"context"
	"time"

	"github.com/habithub/habithub-api/internal/models"
	"gorm.io/gorm/clause"
)

func (s *Store) UnlockedKeys(ctx context.Context, userID uint) (map[string]bool, error) {
	var keys []string
	err := s.conn(ctx).Model(&models.UserAchievement{}).Where("user_id = ?", userID).Pluck("achievement_key", &keys).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(keys))
	for _, k := range keys {
		out[k] = true
	}
	return out, nil
}

// Unlock records the achievement for the user. If it is already unlocked the
// existing record is returned with created == false. The insert skips
// conflicts instead of failing, so Unlock is safe inside a transaction.
func (s *Store) Unlock(ctx context.Context, userID uint, key string, progress int) (models.UserAchievement, bool, error) {
	ua := models.UserAchievement{
		UserID:         userID,
		AchievementKey: key,
		UnlockedAt:     time.Now(),
		Progress:       progress,
	}
	res := s.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&ua)
	if res.Error != nil {
		return models.UserAchievement{}, false, res.Error
	}
	if res.RowsAffected > 0 {
		return ua, true, nil
	}

	var existing models.UserAchievement
	if err := s.conn(ctx).Where("user_id = ? AND achievement_key = ?", userID, key).First(&existing).Error; err != nil {
		return models.UserAchievement{}, false, err
	}
	return existing, false, nil
}

func (s *Store) ListUserAchievements(ctx context.Context, userID uint) ([]models.UserAchievement, error) {
	var out []models.UserAchievement
	err := s.conn(ctx).Where("user_id = ?", userID).Order("unlocked_at desc").Find(&out).Error
	return out, err
}

// MarkSeen acknowledges unlocks. With no keys every unseen unlock is marked.
func (s *Store) MarkSeen(ctx context.Context, userID uint, keys []string) (int, error) {
	q := s.conn(ctx).Model(&models.UserAchievement{}).Where("user_id = ? AND seen = ?", userID, false)
	if len(keys) > 0 {
		q = q.Where("achievement_key IN ?", keys)
	}
	res := q.Update("seen", true)
	return int(res.RowsAffected), res.Error
}
