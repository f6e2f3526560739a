// Package notifier announces gamification events outside the app.
package notifier

import (
	"context"
	"errors"

	"github.com/habithub/habithub-api/internal/models"
)

type Notifier interface {
	NotifyAchievement(ctx context.Context, user models.User, achievement models.Achievement) error
	NotifyLevelUp(ctx context.Context, user models.User, level int) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) NotifyAchievement(context.Context, models.User, models.Achievement) error { return nil }
func (Nop) NotifyLevelUp(context.Context, models.User, int) error                    { return nil }

// Multi fans out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) NotifyAchievement(ctx context.Context, user models.User, achievement models.Achievement) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.NotifyAchievement(ctx, user, achievement))
	}
	return errors.Join(errs...)
}

func (m Multi) NotifyLevelUp(ctx context.Context, user models.User, level int) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.NotifyLevelUp(ctx, user, level))
	}
	return errors.Join(errs...)
}
