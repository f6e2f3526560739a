package handlers

import (
	"context"

	"github.com/habithub/habithub-api/internal/models"
	"github.com/habithub/habithub-api/internal/service"
)

type AchievementHandler struct {
	engine *service.Engine
}

func NewAchievementHandler(engine *service.Engine) *AchievementHandler {
	return &AchievementHandler{engine: engine}
}

type ListAchievementsResponse struct {
	Body []models.AchievementWithProgress
}

func (h *AchievementHandler) HandleList(ctx context.Context, input *struct{}) (*ListAchievementsResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	list, err := h.engine.ListAchievements(ctx, userID)
	if err != nil {
		return nil, apiError(err)
	}
	return &ListAchievementsResponse{Body: list}, nil
}

type UserAchievementsResponse struct {
	Body []models.UserAchievement
}

func (h *AchievementHandler) HandleMine(ctx context.Context, input *struct{}) (*UserAchievementsResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	mine, err := h.engine.ListUserAchievements(ctx, userID)
	if err != nil {
		return nil, apiError(err)
	}
	return &UserAchievementsResponse{Body: nonNil(mine)}, nil
}

type CheckAchievementsResponse struct {
	Body struct {
		Unlocked []models.UserAchievement `json:"unlocked"`
	}
}

func (h *AchievementHandler) HandleCheck(ctx context.Context, input *struct{}) (*CheckAchievementsResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	unlocked, err := h.engine.CheckAchievements(ctx, userID)
	if err != nil {
		return nil, apiError(err)
	}
	res := &CheckAchievementsResponse{}
	res.Body.Unlocked = nonNil(unlocked)
	return res, nil
}

type MarkSeenRequest struct {
	Body *struct {
		Keys []string `json:"keys,omitempty" doc:"Achievement keys to acknowledge; empty acknowledges all"`
	}
}

type MarkSeenResponse struct {
	Body struct {
		Marked int `json:"marked"`
	}
}

func (h *AchievementHandler) HandleSeen(ctx context.Context, input *MarkSeenRequest) (*MarkSeenResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	var keys []string
	if input.Body != nil {
		keys = input.Body.Keys
	}
	n, err := h.engine.MarkAchievementsSeen(ctx, userID, keys)
	if err != nil {
		return nil, apiError(err)
	}
	res := &MarkSeenResponse{}
	res.Body.Marked = n
	return res, nil
}
