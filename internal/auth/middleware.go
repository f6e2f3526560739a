package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/habithub/habithub-api/internal/store"
)

type contextKey string

const UserIDKey contextKey = "user_id"

var (
	errNoCredentials = errors.New("no session token or API key")
	errKeyExpired    = errors.New("API key expired")
)

func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(UserIDKey).(uint)
	return id, ok && id != 0
}

// Middleware authenticates operations that declare a security requirement.
// An X-API-KEY header wins over the session cookie; a session past half its
// lifetime is refreshed.
func (h *AuthHandler) Middleware(api huma.API) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if op := ctx.Operation(); op == nil || len(op.Security) == 0 {
			next(ctx)
			return
		}

		userID, refreshed, err := h.resolve(ctx.Context(), ctx.Header("X-API-KEY"), ctx.Header("Cookie"))
		if err != nil {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, err.Error())
			return
		}
		if refreshed != nil {
			ctx.AppendHeader("Set-Cookie", refreshed.String())
		}
		next(huma.WithValue(ctx, UserIDKey, userID))
	}
}

func (h *AuthHandler) resolve(ctx context.Context, apiKey, cookieHeader string) (uint, *http.Cookie, error) {
	if apiKey != "" {
		key, err := h.store.LookupAPIKey(ctx, HashAPIKey(apiKey))
		switch {
		case err == nil:
			if key.ExpiresAt != nil && time.Now().After(*key.ExpiresAt) {
				return 0, nil, errKeyExpired
			}
			return key.UserID, nil, nil
		case !errors.Is(err, store.ErrNotFound):
			return 0, nil, err
		}
	}

	cookies, _ := http.ParseCookie(cookieHeader)
	var token string
	for _, c := range cookies {
		if c.Name == CookieName {
			token = c.Value
		}
	}
	if token == "" {
		return 0, nil, errNoCredentials
	}

	userID, exp, err := h.ParseToken(token)
	if err != nil {
		return 0, nil, err
	}

	if time.Until(exp) < TokenDuration/2 {
		if newToken, err := h.GenerateToken(userID); err == nil {
			return userID, h.SessionCookie(newToken), nil
		}
	}
	return userID, nil, nil
}
