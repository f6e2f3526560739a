package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/habithub/habithub-api/internal/auth"
	"github.com/habithub/habithub-api/internal/models"
	"github.com/habithub/habithub-api/internal/store"
)

type APIKeyHandler struct {
	store *store.Store
}

func NewAPIKeyHandler(s *store.Store) *APIKeyHandler {
	return &APIKeyHandler{store: s}
}

type CreateAPIKeyInput struct {
	Body struct {
		Name      string     `json:"name" maxLength:"100"`
		ExpiresAt *time.Time `json:"expires_at,omitempty"`
	}
}

type APIKeyResponse struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Key        string     `json:"key" doc:"Full key on creation, masked afterwards"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}

type CreateAPIKeyOutput struct {
	Body APIKeyResponse
}

func (h *APIKeyHandler) HandleCreate(ctx context.Context, input *CreateAPIKeyInput) (*CreateAPIKeyOutput, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	key, hash, err := auth.NewAPIKey()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate key")
	}

	apiKey := models.APIKey{
		UserID:    userID,
		KeyHash:   hash,
		Suffix:    key[len(key)-4:],
		Name:      input.Body.Name,
		ExpiresAt: input.Body.ExpiresAt,
	}
	if err := h.store.CreateAPIKey(ctx, &apiKey); err != nil {
		return nil, huma.Error500InternalServerError("Failed to create API key")
	}

	resp := newAPIKeyResponse(apiKey)
	resp.Key = key
	return &CreateAPIKeyOutput{Body: resp}, nil
}

type ListAPIKeysOutput struct {
	Body []APIKeyResponse
}

func (h *APIKeyHandler) HandleList(ctx context.Context, input *struct{}) (*ListAPIKeysOutput, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	apiKeys, err := h.store.ListAPIKeys(ctx, userID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list API keys")
	}

	response := make([]APIKeyResponse, 0, len(apiKeys))
	for _, k := range apiKeys {
		response = append(response, newAPIKeyResponse(k))
	}
	return &ListAPIKeysOutput{Body: response}, nil
}

type DeleteAPIKeyInput struct {
	ID uint `path:"id"`
}

func (h *APIKeyHandler) HandleDelete(ctx context.Context, input *DeleteAPIKeyInput) (*struct{}, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.store.DeleteAPIKey(ctx, userID, input.ID); err != nil {
		return nil, apiError(err)
	}
	return nil, nil
}

func newAPIKeyResponse(k models.APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:         k.ID,
		Name:       k.Name,
		Key:        "..." + k.Suffix,
		CreatedAt:  k.CreatedAt,
		ExpiresAt:  k.ExpiresAt,
		LastUsedAt: k.LastUsedAt,
	}
}
