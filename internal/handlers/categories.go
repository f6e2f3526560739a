package handlers

import (
	"context"

	"github.com/habithub/habithub-api/internal/models"
	"github.com/habithub/habithub-api/internal/service"
	"github.com/habithub/habithub-api/internal/store"
)

type CategoryHandler struct {
	engine *service.Engine
}

func NewCategoryHandler(engine *service.Engine) *CategoryHandler {
	return &CategoryHandler{engine: engine}
}

type CategoriesResponse struct {
	Body []models.Category
}

func (h *CategoryHandler) HandleList(ctx context.Context, input *struct{}) (*CategoriesResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := h.engine.ListCategories(ctx, userID)
	if err != nil {
		return nil, apiError(err)
	}
	return &CategoriesResponse{Body: categories}, nil
}

type CreateCategoryRequest struct {
	Body struct {
		Name  string `json:"name" minLength:"1" maxLength:"100"`
		Color string `json:"color,omitempty" maxLength:"7"`
		Icon  string `json:"icon,omitempty" maxLength:"50"`
		Order int    `json:"order,omitempty"`
	}
}

type CreatedCategory struct {
	models.Category
	NewAchievements []models.UserAchievement `json:"new_achievements"`
}

type CreateCategoryResponse struct {
	Body CreatedCategory
}

func (h *CategoryHandler) HandleCreate(ctx context.Context, input *CreateCategoryRequest) (*CreateCategoryResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	category, unlocked, err := h.engine.CreateCategory(ctx, userID, models.Category{
		Name:  input.Body.Name,
		Color: input.Body.Color,
		Icon:  input.Body.Icon,
		Order: input.Body.Order,
	})
	if err := savedDespite(err, category.ID, userID); err != nil {
		return nil, err
	}
	return &CreateCategoryResponse{Body: CreatedCategory{Category: category, NewAchievements: nonNil(unlocked)}}, nil
}

type UpdateCategoryRequest struct {
	ID   string `path:"id"`
	Body struct {
		Name  *string `json:"name,omitempty" minLength:"1" maxLength:"100"`
		Color *string `json:"color,omitempty" maxLength:"7"`
		Icon  *string `json:"icon,omitempty" maxLength:"50"`
		Order *int    `json:"order,omitempty"`
	}
}

type CategoryResponse struct {
	Body models.Category
}

func (h *CategoryHandler) HandleUpdate(ctx context.Context, input *UpdateCategoryRequest) (*CategoryResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	category, err := h.engine.UpdateCategory(ctx, userID, input.ID, store.CategoryPatch{
		Name:  input.Body.Name,
		Color: input.Body.Color,
		Icon:  input.Body.Icon,
		Order: input.Body.Order,
	})
	if err != nil {
		return nil, apiError(err)
	}
	return &CategoryResponse{Body: category}, nil
}

type CategoryIDRequest struct {
	ID string `path:"id"`
}

func (h *CategoryHandler) HandleDelete(ctx context.Context, input *CategoryIDRequest) (*struct{}, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.engine.DeleteCategory(ctx, userID, input.ID); err != nil {
		return nil, apiError(err)
	}
	return nil, nil
}
