package handlers

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/danielgtaylor/huma/v2"
	"github.com/habithub/habithub-api/internal/auth"
	"github.com/habithub/habithub-api/internal/gamification"
	"github.com/habithub/habithub-api/internal/service"
	"github.com/habithub/habithub-api/internal/store"
)

// apiError maps domain errors onto HTTP status codes.
func apiError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrDuplicateCompletion):
		return huma.Error409Conflict("Habit already logged for this date")
	case errors.Is(err, store.ErrDuplicateCategory):
		return huma.Error409Conflict("Category name already exists")
	case errors.Is(err, store.ErrDuplicateEmail):
		return huma.Error409Conflict("Email already registered")
	case errors.Is(err, store.ErrNotFound):
		return huma.Error404NotFound("Not found")
	case errors.Is(err, store.ErrProfileNotFound):
		return huma.Error404NotFound("User profile not found")
	case errors.Is(err, service.ErrTemplateNotFound):
		return huma.Error404NotFound("Template not found")
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, gamification.ErrInvalidXP):
		return huma.Error400BadRequest(err.Error())
	}
	log.Error("Request failed", "err", err)
	return huma.Error500InternalServerError("Internal server error")
}

func currentUser(ctx context.Context) (uint, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return 0, huma.Error401Unauthorized("Unauthorized")
	}
	return userID, nil
}

// savedDespite handles an error from an operation that may have stored its
// row before a follow-up step failed. A stored row (non-empty id) is logged
// and reported as success.
func savedDespite(err error, id string, userID uint) error {
	if err == nil {
		return nil
	}
	if id == "" {
		return apiError(err)
	}
	log.Warn("Saved but follow-up failed", "user_id", userID, "id", id, "err", err)
	return nil
}
