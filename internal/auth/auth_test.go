package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/habithub/habithub-api/internal/config"
	"github.com/habithub/habithub-api/internal/database"
	"github.com/habithub/habithub-api/internal/store"
)

func setupHandler(t *testing.T) *AuthHandler {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	cfg := &config.Config{JWTSecret: "test-secret", FrontendURL: "http://localhost:5173/"}
	return NewAuthHandler(cfg, store.New(db))
}

func TestRegisterAndAuthenticate(t *testing.T) {
	handler := setupHandler(t)
	ctx := context.Background()

	user, err := handler.Register(ctx, "  Ada@Example.com ", "correct horse", "Ada")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("expected normalized email, got %s", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "correct horse" {
		t.Error("expected password to be hashed")
	}

	if _, err := handler.Register(ctx, "ada@example.com", "another pass", ""); !errors.Is(err, store.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
	if _, err := handler.Register(ctx, "bob@example.com", "short", ""); err == nil {
		t.Error("expected error for short password")
	}

	got, err := handler.Authenticate(ctx, "ADA@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("expected user %d, got %d", user.ID, got.ID)
	}
	if _, err := handler.Authenticate(ctx, "ada@example.com", "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := handler.Authenticate(ctx, "nobody@example.com", "whatever1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	handler := setupHandler(t)

	token, err := handler.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	userID, _, err := handler.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if userID != 42 {
		t.Errorf("expected user 42, got %d", userID)
	}

	other := NewAuthHandler(&config.Config{JWTSecret: "other-secret"}, nil)
	if _, _, err := other.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for a foreign signature, got %v", err)
	}
}

func TestHandleMe(t *testing.T) {
	handler := setupHandler(t)
	user, err := handler.Register(context.Background(), "test@example.com", "password123", "testuser")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	t.Run("Authenticated", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), UserIDKey, user.ID)
		resp, err := handler.HandleMe(ctx, &struct{}{})
		if err != nil {
			t.Fatalf("HandleMe returned error: %v", err)
		}
		if resp.Body.DisplayName != "testuser" {
			t.Errorf("expected display name testuser, got %s", resp.Body.DisplayName)
		}
		if resp.Body.Email != user.Email {
			t.Errorf("expected email %s, got %s", user.Email, resp.Body.Email)
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		_, err := handler.HandleMe(context.Background(), &struct{}{})
		if err == nil {
			t.Fatal("expected error for unauthenticated request, got nil")
		}
	})
}
