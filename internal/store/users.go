package store

import (
	"context"
	"errors"

	"github.com/habithub/habithub-api/internal/models"
	"gorm.io/gorm"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	err := s.conn(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *Store) GetUser(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := s.conn(ctx).First(&user, id).Error
	return user, notFound(err)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.conn(ctx).Where("email = ?", email).First(&user).Error
	return user, notFound(err)
}

// UpsertOAuthUser finds the user by provider identity, falling back to email,
// and refreshes their profile fields.
func (s *Store) UpsertOAuthUser(ctx context.Context, provider, providerID, email, name, avatar string) (models.User, error) {
	var user models.User
	err := s.Transaction(ctx, func(tx *Store) error {
		q := tx.db.Where("provider = ? AND provider_id = ?", provider, providerID)
		if email != "" {
			q = q.Or("email = ?", email)
		}
		if err := q.FirstOrInit(&user).Error; err != nil {
			return err
		}
		user.Provider = provider
		user.ProviderID = providerID
		if email != "" {
			user.Email = email
		}
		if name != "" {
			user.DisplayName = name
		}
		user.AvatarURL = avatar
		return tx.db.Save(&user).Error
	})
	return user, err
}
