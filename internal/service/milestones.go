package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/habithub/habithub-api/internal/models"
	"github.com/habithub/habithub-api/internal/store"
)

const maxMilestoneTitle = 200

// CreateMilestone records a milestone, optionally tied to one of the user's
// habits. It is stamped with the engine clock.
func (e *Engine) CreateMilestone(ctx context.Context, userID uint, m models.Milestone) (models.Milestone, error) {
	if !m.Type.Valid() {
		return models.Milestone{}, fmt.Errorf("%w: unknown milestone type %q", ErrInvalidInput, m.Type)
	}
	m.Title = strings.TrimSpace(m.Title)
	if err := validateName(m.Title, maxMilestoneTitle); err != nil {
		return models.Milestone{}, err
	}
	if m.Value < 0 {
		return models.Milestone{}, fmt.Errorf("%w: milestone value must not be negative", ErrInvalidInput)
	}
	if m.HabitID != nil && *m.HabitID == "" {
		m.HabitID = nil
	}
	if err := e.checkHabit(ctx, userID, m.HabitID); err != nil {
		return models.Milestone{}, err
	}

	m.ID = ""
	m.UserID = userID
	m.AchievedAt = e.opts.Now()
	m.Celebrated = false
	if err := e.store.CreateMilestone(ctx, &m); err != nil {
		return models.Milestone{}, err
	}
	return m, nil
}

func (e *Engine) ListMilestones(ctx context.Context, userID uint) ([]models.Milestone, error) {
	return e.store.ListMilestones(ctx, userID)
}

func (e *Engine) CelebrateMilestone(ctx context.Context, userID uint, id string) (models.Milestone, error) {
	return e.store.MarkMilestoneCelebrated(ctx, userID, id)
}

// checkHabit reports a missing habit referenced from a request body as bad
// input rather than a missing resource.
func (e *Engine) checkHabit(ctx context.Context, userID uint, id *string) error {
	if id == nil {
		return nil
	}
	_, err := e.store.GetHabit(ctx, userID, *id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: habit %s does not exist", ErrInvalidInput, *id)
	}
	return err
}
