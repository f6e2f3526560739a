package store

import (
	"context"
	"time"

	"github.com/habithub/habithub-api/internal/models"
)

func (s *Store) CreateAPIKey(ctx context.Context, key *models.APIKey) error {
	return s.conn(ctx).Create(key).Error
}

func (s *Store) ListAPIKeys(ctx context.Context, userID uint) ([]models.APIKey, error) {
	var keys []models.APIKey
	err := s.conn(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&keys).Error
	return keys, err
}

func (s *Store) DeleteAPIKey(ctx context.Context, userID, id uint) error {
	res := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.APIKey{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// LookupAPIKey resolves a key hash and stamps its last use.
func (s *Store) LookupAPIKey(ctx context.Context, hash string) (models.APIKey, error) {
	var key models.APIKey
	if err := s.conn(ctx).Where("key_hash = ?", hash).First(&key).Error; err != nil {
		return key, notFound(err)
	}
	now := time.Now()
	s.conn(ctx).Model(&key).Update("last_used_at", now)
	return key, nil
}
