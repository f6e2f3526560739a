package store

import (
	"context"
	"errors"

	"github.com/habithub/habithub-api/internal/models"
	"gorm.io/gorm"
)

type CategoryPatch struct {
	Name  *string
	Color *string
	Icon  *string
	Order *int
}

func (s *Store) ListCategories(ctx context.Context, userID uint) ([]models.Category, error) {
	var categories []models.Category
	err := s.conn(ctx).Where("user_id = ?", userID).Order("sort_order asc, created_at asc").Find(&categories).Error
	return categories, err
}

func (s *Store) GetCategory(ctx context.Context, userID uint, id string) (models.Category, error) {
	var category models.Category
	err := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).First(&category).Error
	return category, notFound(err)
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	err := s.conn(ctx).Create(category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateCategory
	}
	return err
}

func (s *Store) UpdateCategory(ctx context.Context, userID uint, id string, patch CategoryPatch) (models.Category, error) {
	if _, err := s.GetCategory(ctx, userID, id); err != nil {
		return models.Category{}, err
	}

	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}
	if patch.Icon != nil {
		updates["icon"] = *patch.Icon
	}
	if patch.Order != nil {
		updates["sort_order"] = *patch.Order
	}
	if len(updates) > 0 {
		err := s.conn(ctx).Model(&models.Category{}).Where("id = ? AND user_id = ?", id, userID).Updates(updates).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Category{}, ErrDuplicateCategory
		}
		if err != nil {
			return models.Category{}, err
		}
	}
	return s.GetCategory(ctx, userID, id)
}

// DeleteCategory removes the category and detaches its habits; the habits
// themselves are kept.
func (s *Store) DeleteCategory(ctx context.Context, userID uint, id string) error {
	return s.Transaction(ctx, func(tx *Store) error {
		err := tx.db.Model(&models.Habit{}).
			Where("category_id = ? AND user_id = ?", id, userID).
			Update("category_id", nil).Error
		if err != nil {
			return err
		}
		res := tx.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *Store) CountCategories(ctx context.Context, userID uint) (int, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Category{}).Where("user_id = ?", userID).Count(&n).Error
	return int(n), err
}
