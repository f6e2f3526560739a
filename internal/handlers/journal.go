package handlers

import (
	"context"

	"github.com/habithub/habithub-api/internal/models"
	"github.com/habithub/habithub-api/internal/service"
)

type JournalHandler struct {
	engine *service.Engine
}

func NewJournalHandler(engine *service.Engine) *JournalHandler {
	return &JournalHandler{engine: engine}
}

type CreateJournalRequest struct {
	Body struct {
		CompletionID string      `json:"completion_id" minLength:"1"`
		Mood         models.Mood `json:"mood,omitempty" enum:"happy,neutral,sad,stressed,energized,calm,anxious"`
		Energy       *int        `json:"energy,omitempty" minimum:"1" maximum:"5"`
		Difficulty   *int        `json:"difficulty,omitempty" minimum:"1" maximum:"5"`
		Notes        string      `json:"notes,omitempty" maxLength:"2000"`
		Reflection   string      `json:"reflection,omitempty" maxLength:"2000"`
		Tags         []string    `json:"tags,omitempty"`
	}
}

type JournalResponse struct {
	Body models.JournalEntry
}

func (h *JournalHandler) HandleCreate(ctx context.Context, input *CreateJournalRequest) (*JournalResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	b := input.Body
	entry, err := h.engine.CreateJournalEntry(ctx, userID, models.JournalEntry{
		CompletionID: b.CompletionID,
		Mood:         b.Mood,
		Energy:       b.Energy,
		Difficulty:   b.Difficulty,
		Notes:        b.Notes,
		Reflection:   b.Reflection,
		Tags:         b.Tags,
	})
	if err != nil {
		return nil, apiError(err)
	}
	return &JournalResponse{Body: entry}, nil
}

type ListJournalRequest struct {
	Limit int `query:"limit" minimum:"0" doc:"Maximum number of entries, 0 for all"`
}

type ListJournalResponse struct {
	Body []models.JournalEntry
}

func (h *JournalHandler) HandleList(ctx context.Context, input *ListJournalRequest) (*ListJournalResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := h.engine.ListJournalEntries(ctx, userID, input.Limit)
	if err != nil {
		return nil, apiError(err)
	}
	return &ListJournalResponse{Body: nonNil(entries)}, nil
}
