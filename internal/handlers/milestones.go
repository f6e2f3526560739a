package handlers

import (
	"context"

	"github.com/habithub/habithub-api/internal/models"
	"github.com/habithub/habithub-api/internal/service"
)

type MilestoneHandler struct {
	engine *service.Engine
}

func NewMilestoneHandler(engine *service.Engine) *MilestoneHandler {
	return &MilestoneHandler{engine: engine}
}

type CreateMilestoneRequest struct {
	Body struct {
		Type        models.MilestoneType `json:"type" enum:"streak,completion_count,level_up,perfect_week"`
		HabitID     *string              `json:"habit_id,omitempty"`
		Title       string               `json:"title" minLength:"1" maxLength:"200"`
		Description string               `json:"description,omitempty"`
		Value       int                  `json:"value" minimum:"0"`
		Icon        string               `json:"icon,omitempty" maxLength:"50"`
	}
}

type MilestoneResponse struct {
	Body models.Milestone
}

func (h *MilestoneHandler) HandleCreate(ctx context.Context, input *CreateMilestoneRequest) (*MilestoneResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	b := input.Body
	m, err := h.engine.CreateMilestone(ctx, userID, models.Milestone{
		Type:        b.Type,
		HabitID:     emptyToNil(b.HabitID),
		Title:       b.Title,
		Description: b.Description,
		Value:       b.Value,
		Icon:        b.Icon,
	})
	if err != nil {
		return nil, apiError(err)
	}
	return &MilestoneResponse{Body: m}, nil
}

type ListMilestonesResponse struct {
	Body []models.Milestone
}

func (h *MilestoneHandler) HandleList(ctx context.Context, input *struct{}) (*ListMilestonesResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	list, err := h.engine.ListMilestones(ctx, userID)
	if err != nil {
		return nil, apiError(err)
	}
	return &ListMilestonesResponse{Body: nonNil(list)}, nil
}

type MilestoneIDRequest struct {
	ID string `path:"id"`
}

func (h *MilestoneHandler) HandleCelebrate(ctx context.Context, input *MilestoneIDRequest) (*MilestoneResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	m, err := h.engine.CelebrateMilestone(ctx, userID, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	return &MilestoneResponse{Body: m}, nil
}
