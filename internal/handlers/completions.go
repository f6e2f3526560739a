package handlers

import (
	"context"

	"github.com/habithub/habithub-api/internal/models"
	"github.com/habithub/habithub-api/internal/service"
)

type CompletionHandler struct {
	engine *service.Engine
}

func NewCompletionHandler(engine *service.Engine) *CompletionHandler {
	return &CompletionHandler{engine: engine}
}

type ListCompletionsRequest struct {
	StartDate string `query:"startDate" doc:"Inclusive lower bound, YYYY-MM-DD"`
	EndDate   string `query:"endDate" doc:"Inclusive upper bound, YYYY-MM-DD"`
}

func (h *CompletionHandler) HandleList(ctx context.Context, input *ListCompletionsRequest) (*CompletionsResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	completions, err := h.engine.ListCompletions(ctx, userID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, apiError(err)
	}
	return &CompletionsResponse{Body: completions}, nil
}

type LogCompletionRequest struct {
	Body struct {
		HabitID string `json:"habit_id" minLength:"1"`
		Date    string `json:"date,omitempty" doc:"Calendar date YYYY-MM-DD, defaults to today"`
		Note    string `json:"note,omitempty" maxLength:"1000"`
	}
}

type LogCompletionResponse struct {
	Body service.CompletionResult
}

func (h *CompletionHandler) HandleCreate(ctx context.Context, input *LogCompletionRequest) (*LogCompletionResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	res, err := h.engine.LogCompletion(ctx, userID, input.Body.HabitID, input.Body.Date, input.Body.Note)
	if err := savedDespite(err, res.Completion.ID, userID); err != nil {
		return nil, err
	}
	res.Unlocked = nonNil(res.Unlocked)
	return &LogCompletionResponse{Body: res}, nil
}

type CompletionIDRequest struct {
	ID string `path:"id"`
}

type DeleteCompletionResponse struct {
	Body models.Completion
}

func (h *CompletionHandler) HandleDelete(ctx context.Context, input *CompletionIDRequest) (*DeleteCompletionResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	removed, err := h.engine.UndoCompletion(ctx, userID, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	return &DeleteCompletionResponse{Body: removed}, nil
}
