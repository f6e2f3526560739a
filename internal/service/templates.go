package service

import (
	"context"

	"github.com/habithub/habithub-api/internal/models"
)

func (e *Engine) ListTemplates(category string) []models.HabitTemplate {
	return e.catalog.Templates(category)
}

func (e *Engine) GetTemplate(id string) (models.HabitTemplate, error) {
	t, ok := e.catalog.Template(id)
	if !ok {
		return models.HabitTemplate{}, ErrTemplateNotFound
	}
	return t, nil
}

// CreateHabitFromTemplate instantiates a catalog template as a new habit,
// optionally filed under one of the user's categories.
func (e *Engine) CreateHabitFromTemplate(ctx context.Context, userID uint, templateID string, categoryID *string) (models.Habit, []models.UserAchievement, error) {
	t, err := e.GetTemplate(templateID)
	if err != nil {
		return models.Habit{}, nil, err
	}
	return e.CreateHabit(ctx, userID, models.Habit{
		Name:        t.Name,
		Description: t.Description,
		Icon:        t.Icon,
		Color:       t.Color,
		Frequency:   t.Frequency,
		TargetCount: t.TargetCount,
		CategoryID:  categoryID,
	})
}
