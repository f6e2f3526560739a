package handlers

import (
	"context"

	"github.com/habithub/habithub-api/internal/models"
	"github.com/habithub/habithub-api/internal/service"
)

type TemplateHandler struct {
	engine *service.Engine
}

func NewTemplateHandler(engine *service.Engine) *TemplateHandler {
	return &TemplateHandler{engine: engine}
}

type ListTemplatesRequest struct {
	Category string `query:"category" doc:"Filter by category, case-insensitive"`
}

type ListTemplatesResponse struct {
	Body []models.HabitTemplate
}

func (h *TemplateHandler) HandleList(ctx context.Context, input *ListTemplatesRequest) (*ListTemplatesResponse, error) {
	return &ListTemplatesResponse{Body: h.engine.ListTemplates(input.Category)}, nil
}

type TemplateIDRequest struct {
	ID string `path:"id"`
}

type TemplateResponse struct {
	Body models.HabitTemplate
}

func (h *TemplateHandler) HandleGet(ctx context.Context, input *TemplateIDRequest) (*TemplateResponse, error) {
	t, err := h.engine.GetTemplate(input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	return &TemplateResponse{Body: t}, nil
}
