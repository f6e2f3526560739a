package handlers

import (
	"context"

	"github.com/habithub/habithub-api/internal/service"
)

type StatsHandler struct {
	engine *service.Engine
}

func NewStatsHandler(engine *service.Engine) *StatsHandler {
	return &StatsHandler{engine: engine}
}

type StatsRequest struct {
	Days int `query:"days" minimum:"0" maximum:"3650" doc:"Window size in days, 0 for the server default"`
}

type StatsResponse struct {
	Body service.UserStats
}

func (h *StatsHandler) HandleStats(ctx context.Context, input *StatsRequest) (*StatsResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := h.engine.GetUserStats(ctx, userID, input.Days)
	if err != nil {
		return nil, apiError(err)
	}
	return &StatsResponse{Body: stats}, nil
}

type ProfileResponse struct {
	Body service.ProfileSummary
}

func (h *StatsHandler) HandleProfile(ctx context.Context, input *struct{}) (*ProfileResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := h.engine.GetProfile(ctx, userID)
	if err != nil {
		return nil, apiError(err)
	}
	return &ProfileResponse{Body: profile}, nil
}

type UpdateProfileRequest struct {
	Body struct {
		Theme *string `json:"theme,omitempty" minLength:"1" maxLength:"50"`
	}
}

func (h *StatsHandler) HandleUpdateProfile(ctx context.Context, input *UpdateProfileRequest) (*ProfileResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := h.engine.UpdateProfile(ctx, userID, service.ProfileUpdate{Theme: input.Body.Theme})
	if err != nil {
		return nil, apiError(err)
	}
	return &ProfileResponse{Body: profile}, nil
}
