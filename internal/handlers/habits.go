package handlers

import (
	"context"

	"github.com/habithub/habithub-api/internal/models"
	"github.com/habithub/habithub-api/internal/service"
	"github.com/habithub/habithub-api/internal/store"
)

type HabitHandler struct {
	engine *service.Engine
}

func NewHabitHandler(engine *service.Engine) *HabitHandler {
	return &HabitHandler{engine: engine}
}

type HabitInput struct {
	Name        string           `json:"name" minLength:"1" maxLength:"200"`
	Description string           `json:"description,omitempty"`
	Icon        string           `json:"icon,omitempty" maxLength:"50"`
	Color       string           `json:"color,omitempty" maxLength:"7"`
	CategoryID  *string          `json:"category_id,omitempty"`
	Frequency   models.Frequency `json:"frequency,omitempty" enum:"daily,weekly,custom"`
	TargetCount int              `json:"target_count,omitempty" minimum:"1"`
	Order       int              `json:"order,omitempty"`
}

type HabitPatchInput struct {
	Name        *string           `json:"name,omitempty" minLength:"1" maxLength:"200"`
	Description *string           `json:"description,omitempty"`
	Icon        *string           `json:"icon,omitempty" maxLength:"50"`
	Color       *string           `json:"color,omitempty" maxLength:"7"`
	CategoryID  *string           `json:"category_id,omitempty" doc:"Empty string removes the category"`
	Frequency   *models.Frequency `json:"frequency,omitempty" enum:"daily,weekly,custom"`
	TargetCount *int              `json:"target_count,omitempty" minimum:"1"`
	Order       *int              `json:"order,omitempty"`
}

type CreatedHabit struct {
	models.Habit
	NewAchievements []models.UserAchievement `json:"new_achievements"`
}

type ListHabitsRequest struct {
	IncludeArchived bool `query:"include_archived" doc:"Include archived habits"`
}

type ListHabitsResponse struct {
	Body []models.Habit
}

func (h *HabitHandler) HandleList(ctx context.Context, input *ListHabitsRequest) (*ListHabitsResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	habits, err := h.engine.ListHabits(ctx, userID, input.IncludeArchived)
	if err != nil {
		return nil, apiError(err)
	}
	return &ListHabitsResponse{Body: habits}, nil
}

type HabitIDRequest struct {
	ID string `path:"id"`
}

type HabitResponse struct {
	Body models.Habit
}

func (h *HabitHandler) HandleGet(ctx context.Context, input *HabitIDRequest) (*HabitResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	habit, err := h.engine.GetHabit(ctx, userID, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	return &HabitResponse{Body: habit}, nil
}

type CreateHabitRequest struct {
	Body HabitInput
}

type CreateHabitResponse struct {
	Body CreatedHabit
}

func (h *HabitHandler) HandleCreate(ctx context.Context, input *CreateHabitRequest) (*CreateHabitResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	habit, unlocked, err := h.engine.CreateHabit(ctx, userID, models.Habit{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Icon:        input.Body.Icon,
		Color:       input.Body.Color,
		CategoryID:  emptyToNil(input.Body.CategoryID),
		Frequency:   input.Body.Frequency,
		TargetCount: input.Body.TargetCount,
		Order:       input.Body.Order,
	})
	if err := savedDespite(err, habit.ID, userID); err != nil {
		return nil, err
	}
	return &CreateHabitResponse{Body: CreatedHabit{Habit: habit, NewAchievements: nonNil(unlocked)}}, nil
}

type UpdateHabitRequest struct {
	ID   string `path:"id"`
	Body HabitPatchInput
}

func (h *HabitHandler) HandleUpdate(ctx context.Context, input *UpdateHabitRequest) (*HabitResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	b := input.Body
	habit, err := h.engine.UpdateHabit(ctx, userID, input.ID, store.HabitPatch{
		Name:        b.Name,
		Description: b.Description,
		Icon:        b.Icon,
		Color:       b.Color,
		CategoryID:  b.CategoryID,
		Frequency:   b.Frequency,
		TargetCount: b.TargetCount,
		Order:       b.Order,
	})
	if err != nil {
		return nil, apiError(err)
	}
	return &HabitResponse{Body: habit}, nil
}

func (h *HabitHandler) HandleDelete(ctx context.Context, input *HabitIDRequest) (*struct{}, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.engine.DeleteHabit(ctx, userID, input.ID); err != nil {
		return nil, apiError(err)
	}
	return nil, nil
}

func (h *HabitHandler) HandleArchive(ctx context.Context, input *HabitIDRequest) (*HabitResponse, error) {
	return h.setArchived(ctx, input.ID, true)
}

func (h *HabitHandler) HandleUnarchive(ctx context.Context, input *HabitIDRequest) (*HabitResponse, error) {
	return h.setArchived(ctx, input.ID, false)
}

func (h *HabitHandler) setArchived(ctx context.Context, id string, archived bool) (*HabitResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	habit, err := h.engine.SetHabitArchived(ctx, userID, id, archived)
	if err != nil {
		return nil, apiError(err)
	}
	return &HabitResponse{Body: habit}, nil
}

type HabitCompletionsRequest struct {
	ID    string `path:"id"`
	Limit int    `query:"limit" minimum:"0" doc:"Maximum number of completions, 0 for all"`
}

type CompletionsResponse struct {
	Body []models.Completion
}

func (h *HabitHandler) HandleCompletions(ctx context.Context, input *HabitCompletionsRequest) (*CompletionsResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	completions, err := h.engine.ListHabitCompletions(ctx, userID, input.ID, input.Limit)
	if err != nil {
		return nil, apiError(err)
	}
	return &CompletionsResponse{Body: completions}, nil
}

type HabitCountRequest struct {
	ID   string `path:"id"`
	Days int    `query:"days" default:"30" minimum:"0" maximum:"3650"`
}

type HabitCountResponse struct {
	Body struct {
		HabitID string `json:"habit_id"`
		Days    int    `json:"days"`
		Count   int    `json:"count"`
	}
}

func (h *HabitHandler) HandleCount(ctx context.Context, input *HabitCountRequest) (*HabitCountResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	n, err := h.engine.GetCompletionCount(ctx, userID, input.ID, input.Days)
	if err != nil {
		return nil, apiError(err)
	}
	res := &HabitCountResponse{}
	res.Body.HabitID = input.ID
	res.Body.Days = input.Days
	res.Body.Count = n
	return res, nil
}

type FromTemplateRequest struct {
	ID   string `path:"id" doc:"Template id"`
	Body *struct {
		CategoryID *string `json:"category_id,omitempty"`
	}
}

func (h *HabitHandler) HandleFromTemplate(ctx context.Context, input *FromTemplateRequest) (*CreateHabitResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	var categoryID *string
	if input.Body != nil {
		categoryID = emptyToNil(input.Body.CategoryID)
	}
	habit, unlocked, err := h.engine.CreateHabitFromTemplate(ctx, userID, input.ID, categoryID)
	if err := savedDespite(err, habit.ID, userID); err != nil {
		return nil, err
	}
	return &CreateHabitResponse{Body: CreatedHabit{Habit: habit, NewAchievements: nonNil(unlocked)}}, nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
