package store

import (
	"context"

	"github.com/habithub/habithub-api/internal/models"
)

func (s *Store) CreateMilestone(ctx context.Context, m *models.Milestone) error {
	return s.conn(ctx).Create(m).Error
}

func (s *Store) ListMilestones(ctx context.Context, userID uint) ([]models.Milestone, error) {
	var out []models.Milestone
	err := s.conn(ctx).Where("user_id = ?", userID).Order("achieved_at desc").Find(&out).Error
	return out, err
}

func (s *Store) GetMilestone(ctx context.Context, userID uint, id string) (models.Milestone, error) {
	var m models.Milestone
	err := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m).Error
	return m, notFound(err)
}

// MarkMilestoneCelebrated flags the milestone as shown to the user.
func (s *Store) MarkMilestoneCelebrated(ctx context.Context, userID uint, id string) (models.Milestone, error) {
	res := s.conn(ctx).Model(&models.Milestone{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("celebrated", true)
	if res.Error != nil {
		return models.Milestone{}, res.Error
	}
	return s.GetMilestone(ctx, userID, id)
}
