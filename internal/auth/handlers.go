package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/habithub/habithub-api/internal/models"
	"github.com/habithub/habithub-api/internal/store"
)

type UserResponse struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Provider    string `json:"provider"`
}

func newUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Provider:    u.Provider,
	}
}

type RegisterInput struct {
	Body struct {
		Email       string `json:"email" format:"email" doc:"Login email"`
		Password    string `json:"password" minLength:"8" doc:"At least 8 characters"`
		DisplayName string `json:"display_name,omitempty" maxLength:"200"`
	}
}

type LoginInput struct {
	Body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
}

type SessionOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      UserResponse
}

type MeOutput struct {
	Body UserResponse
}

func (h *AuthHandler) HandleRegister(ctx context.Context, input *RegisterInput) (*SessionOutput, error) {
	user, err := h.Register(ctx, input.Body.Email, input.Body.Password, input.Body.DisplayName)
	if errors.Is(err, store.ErrDuplicateEmail) {
		return nil, huma.Error409Conflict("Email already registered")
	}
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	return h.session(user)
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginInput) (*SessionOutput, error) {
	user, err := h.Authenticate(ctx, input.Body.Email, input.Body.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		return nil, huma.Error401Unauthorized(err.Error())
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to log in")
	}
	return h.session(user)
}

func (h *AuthHandler) session(user models.User) (*SessionOutput, error) {
	token, err := h.GenerateToken(user.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}
	return &SessionOutput{SetCookie: *h.SessionCookie(token), Body: newUserResponse(user)}, nil
}

type LogoutOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
}

func (h *AuthHandler) HandleLogout(ctx context.Context, input *struct{}) (*LogoutOutput, error) {
	return &LogoutOutput{SetCookie: *h.ExpiredSessionCookie()}, nil
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *struct{}) (*MeOutput, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	user, err := h.store.GetUser(ctx, userID)
	if err != nil {
		return nil, huma.Error404NotFound("User not found")
	}
	return &MeOutput{Body: newUserResponse(user)}, nil
}
