package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/habithub/habithub-api/internal/auth"
	"github.com/habithub/habithub-api/internal/catalog"
	"github.com/habithub/habithub-api/internal/config"
	"github.com/habithub/habithub-api/internal/database"
	"github.com/habithub/habithub-api/internal/models"
	"github.com/habithub/habithub-api/internal/service"
	"github.com/habithub/habithub-api/internal/store"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	handlers *Handlers
	store    *store.Store
	api      humatest.TestAPI
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	s := store.New(db)

	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	engine := service.NewEngine(s, cat, nil, service.Options{
		XPPerCompletion: 10,
		Now:             func() time.Time { return fixedNow },
	})
	authHandler := auth.NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, s)
	h := New(engine, s, authHandler)

	_, api := humatest.New(t, APIConfig())
	RegisterAPI(api, h)
	return &testEnv{handlers: h, store: s, api: api}
}

// register creates an account and returns the session cookie header.
func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()
	resp := e.api.Post("/api/auth/register", map[string]any{
		"email":        email,
		"password":     "password123",
		"display_name": "Tester",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("register failed with %d: %s", resp.Code, resp.Body.String())
	}
	for _, c := range resp.Result().Cookies() {
		if c.Name == auth.CookieName {
			return "Cookie: " + auth.CookieName + "=" + c.Value
		}
	}
	t.Fatal("register did not set a session cookie")
	return ""
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("failed to decode %s: %v", string(body), err)
	}
	return v
}

func TestHabitFlow(t *testing.T) {
	env := setupEnv(t)
	session := env.register(t, "ada@example.com")

	resp := env.api.Post("/api/categories", session, map[string]any{"name": "Health", "color": "#10B981"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create category failed with %d: %s", resp.Code, resp.Body.String())
	}
	category := decode[CreatedCategory](t, resp.Body.Bytes())

	resp = env.api.Post("/api/categories", session, map[string]any{"name": "Health"})
	if resp.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate category, got %d", resp.Code)
	}

	resp = env.api.Post("/api/habits", session, map[string]any{
		"name":        "Morning run",
		"category_id": category.ID,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create habit failed with %d: %s", resp.Code, resp.Body.String())
	}
	habit := decode[CreatedHabit](t, resp.Body.Bytes())
	if habit.Frequency != models.FrequencyDaily || habit.TargetCount != 1 {
		t.Errorf("expected daily/1 defaults, got %s/%d", habit.Frequency, habit.TargetCount)
	}
	if len(habit.NewAchievements) == 0 {
		t.Error("expected the first habit to unlock an achievement")
	}

	resp = env.api.Post("/api/completions", session, map[string]any{"habit_id": habit.ID})
	if resp.Code != http.StatusCreated {
		t.Fatalf("log completion failed with %d: %s", resp.Code, resp.Body.String())
	}
	result := decode[service.CompletionResult](t, resp.Body.Bytes())
	if result.Completion.CompletedDate != "2026-03-15" {
		t.Errorf("expected completion for the pinned day, got %s", result.Completion.CompletedDate)
	}
	if !result.PerfectDay {
		t.Error("expected a perfect day")
	}

	resp = env.api.Post("/api/completions", session, map[string]any{"habit_id": habit.ID, "date": "2026-03-15"})
	if resp.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate completion, got %d", resp.Code)
	}

	resp = env.api.Post("/api/completions", session, map[string]any{"habit_id": habit.ID, "date": "2026-03-16"})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a future date, got %d", resp.Code)
	}

	resp = env.api.Get("/api/stats?days=7", session)
	if resp.Code != http.StatusOK {
		t.Fatalf("stats failed with %d", resp.Code)
	}
	stats := decode[service.UserStats](t, resp.Body.Bytes())
	if stats.TotalHabits != 1 || stats.CompletionsInWindow != 1 || stats.CurrentStreak != 1 || stats.Days != 7 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	resp = env.api.Get("/api/habits/"+habit.ID+"/count?days=7", session)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"count":1`) {
		t.Errorf("unexpected count response %d: %s", resp.Code, resp.Body.String())
	}

	resp = env.api.Get("/api/profile", session)
	profile := decode[service.ProfileSummary](t, resp.Body.Bytes())
	if profile.TotalCompletions != 1 || profile.TotalXP < 10 {
		t.Errorf("unexpected profile: %+v", profile)
	}

	resp = env.api.Delete("/api/completions/"+result.Completion.ID, session)
	if resp.Code != http.StatusOK {
		t.Errorf("undo failed with %d: %s", resp.Code, resp.Body.String())
	}

	resp = env.api.Post("/api/habits/"+habit.ID+"/archive", session)
	if resp.Code != http.StatusOK {
		t.Fatalf("archive failed with %d: %s", resp.Code, resp.Body.String())
	}
	list := decode[[]models.Habit](t, env.api.Get("/api/habits", session).Body.Bytes())
	if len(list) != 0 {
		t.Errorf("archived habit should be hidden, got %d", len(list))
	}
	list = decode[[]models.Habit](t, env.api.Get("/api/habits?include_archived=true", session).Body.Bytes())
	if len(list) != 1 {
		t.Errorf("expected archived habit with include_archived, got %d", len(list))
	}

	if resp := env.api.Delete("/api/habits/"+habit.ID, session); resp.Code != http.StatusNoContent {
		t.Errorf("delete habit failed with %d", resp.Code)
	}
	if resp := env.api.Get("/api/habits/"+habit.ID, session); resp.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", resp.Code)
	}
}

func TestRequiresAuthentication(t *testing.T) {
	env := setupEnv(t)

	for _, path := range []string{"/api/habits", "/api/stats", "/api/achievements", "/api/auth/me"} {
		if resp := env.api.Get(path); resp.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, resp.Code)
		}
	}
	if resp := env.api.Get("/api/templates"); resp.Code != http.StatusOK {
		t.Errorf("templates should be public, got %d", resp.Code)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	env := setupEnv(t)
	ada := env.register(t, "ada@example.com")
	bob := env.register(t, "bob@example.com")

	resp := env.api.Post("/api/habits", ada, map[string]any{"name": "Read"})
	habit := decode[CreatedHabit](t, resp.Body.Bytes())

	if resp := env.api.Get("/api/habits/"+habit.ID, bob); resp.Code != http.StatusNotFound {
		t.Errorf("expected 404 for another user's habit, got %d", resp.Code)
	}
	if resp := env.api.Post("/api/completions", bob, map[string]any{"habit_id": habit.ID}); resp.Code != http.StatusNotFound {
		t.Errorf("expected 404 logging another user's habit, got %d", resp.Code)
	}
}

func TestTemplatesAndAchievements(t *testing.T) {
	env := setupEnv(t)
	session := env.register(t, "ada@example.com")

	templates := decode[[]models.HabitTemplate](t, env.api.Get("/api/templates").Body.Bytes())
	if len(templates) == 0 {
		t.Fatal("expected embedded templates")
	}

	resp := env.api.Post("/api/habits/from-template/"+templates[0].ID, session)
	if resp.Code != http.StatusCreated {
		t.Fatalf("from-template failed with %d: %s", resp.Code, resp.Body.String())
	}
	if resp := env.api.Post("/api/habits/from-template/no-such-template", session); resp.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown template, got %d", resp.Code)
	}

	check := env.api.Post("/api/achievements/check", session)
	if check.Code != http.StatusOK || !strings.Contains(check.Body.String(), `"unlocked":[]`) {
		t.Errorf("expected nothing new on a repeated check, got %d: %s", check.Code, check.Body.String())
	}

	list := decode[[]models.AchievementWithProgress](t, env.api.Get("/api/achievements", session).Body.Bytes())
	unlocked := 0
	for _, a := range list {
		if a.Unlocked {
			unlocked++
		}
	}
	if unlocked == 0 {
		t.Error("expected at least one unlocked achievement")
	}

	resp = env.api.Post("/api/achievements/seen", session, map[string]any{})
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"marked":`) {
		t.Errorf("mark seen failed with %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAPIKeyFlow(t *testing.T) {
	env := setupEnv(t)
	session := env.register(t, "ada@example.com")

	resp := env.api.Post("/api/keys", session, map[string]any{"name": "cli"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create key failed with %d: %s", resp.Code, resp.Body.String())
	}
	key := decode[APIKeyResponse](t, resp.Body.Bytes())

	if resp := env.api.Get("/api/habits", "X-API-KEY: "+key.Key); resp.Code != http.StatusOK {
		t.Errorf("expected API key to authenticate, got %d", resp.Code)
	}

	keys := decode[[]APIKeyResponse](t, env.api.Get("/api/keys", session).Body.Bytes())
	if len(keys) != 1 || keys[0].Key != "..."+key.Key[len(key.Key)-4:] {
		t.Errorf("expected masked key, got %+v", keys)
	}
}

func TestHandleCreateCompletionDirect(t *testing.T) {
	env := setupEnv(t)
	user := models.User{Email: "direct@example.com"}
	if err := env.store.CreateUser(context.Background(), &user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	ctx := context.WithValue(context.Background(), auth.UserIDKey, user.ID)

	habitReq := &CreateHabitRequest{}
	habitReq.Body.Name = "Stretch"
	created, err := env.handlers.Habits.HandleCreate(ctx, habitReq)
	if err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}

	req := &LogCompletionRequest{}
	req.Body.HabitID = created.Body.ID
	req.Body.Date = "2026-03-14"
	resp, err := env.handlers.Completions.HandleCreate(ctx, req)
	if err != nil {
		t.Fatalf("HandleCreate completion returned error: %v", err)
	}
	if resp.Body.Completion.CompletedDate != "2026-03-14" {
		t.Errorf("expected 2026-03-14, got %s", resp.Body.Completion.CompletedDate)
	}

	if _, err := env.handlers.Completions.HandleCreate(ctx, req); err == nil {
		t.Fatal("expected error for duplicate completion")
	}

	if _, err := env.handlers.Stats.HandleStats(context.Background(), &StatsRequest{}); err == nil {
		t.Error("expected error without a user in context")
	}
}

func TestOptionalRequestBodies(t *testing.T) {
	env := setupEnv(t)
	session := env.register(t, "ada@example.com")

	resp := env.api.Post("/api/categories", session, map[string]any{"name": "Learning"})
	category := decode[CreatedCategory](t, resp.Body.Bytes())

	resp = env.api.Post("/api/habits/from-template/meditate", session)
	if resp.Code != http.StatusCreated {
		t.Fatalf("from-template without a body failed with %d: %s", resp.Code, resp.Body.String())
	}
	if habit := decode[CreatedHabit](t, resp.Body.Bytes()); habit.CategoryID != nil {
		t.Errorf("expected no category, got %q", *habit.CategoryID)
	}

	resp = env.api.Post("/api/habits/from-template/drink-water", session, map[string]any{"category_id": category.ID})
	if resp.Code != http.StatusCreated {
		t.Fatalf("from-template with a category failed with %d: %s", resp.Code, resp.Body.String())
	}
	if habit := decode[CreatedHabit](t, resp.Body.Bytes()); habit.CategoryID == nil || *habit.CategoryID != category.ID {
		t.Errorf("expected category %s, got %v", category.ID, habit.CategoryID)
	}

	resp = env.api.Post("/api/achievements/seen", session)
	if resp.Code != http.StatusOK {
		t.Errorf("mark seen without a body failed with %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateSurvivesAchievementFailure(t *testing.T) {
	env := setupEnv(t)
	user := models.User{Email: "direct@example.com"}
	if err := env.store.CreateUser(context.Background(), &user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	ctx := context.WithValue(context.Background(), auth.UserIDKey, user.ID)

	err := env.store.DB().Callback().Update().Before("gorm:update").Register("test:fail_profile_update", func(tx *gorm.DB) {
		if tx.Statement.Table == "user_profiles" {
			tx.AddError(errors.New("profile store unavailable"))
		}
	})
	if err != nil {
		t.Fatalf("failed to register callback: %v", err)
	}

	habitReq := &CreateHabitRequest{}
	habitReq.Body.Name = "Stretch"
	created, err := env.handlers.Habits.HandleCreate(ctx, habitReq)
	if err != nil {
		t.Fatalf("a stored habit must not be reported as a failure: %v", err)
	}
	if created.Body.ID == "" || len(created.Body.NewAchievements) != 0 {
		t.Errorf("unexpected response: %+v", created.Body)
	}
	if _, err := env.store.GetHabit(ctx, user.ID, created.Body.ID); err != nil {
		t.Errorf("habit should be stored: %v", err)
	}

	categoryReq := &CreateCategoryRequest{}
	categoryReq.Body.Name = "Health"
	category, err := env.handlers.Categories.HandleCreate(ctx, categoryReq)
	if err != nil {
		t.Fatalf("a stored category must not be reported as a failure: %v", err)
	}
	if category.Body.ID == "" {
		t.Error("expected the stored category")
	}

	fromTemplate, err := env.handlers.Habits.HandleFromTemplate(ctx, &FromTemplateRequest{ID: "meditate"})
	if err != nil {
		t.Fatalf("a stored template habit must not be reported as a failure: %v", err)
	}
	if fromTemplate.Body.ID == "" {
		t.Error("expected the stored template habit")
	}

	bad := &CreateHabitRequest{}
	bad.Body.Name = "Run"
	bad.Body.Frequency = "hourly"
	if _, err := env.handlers.Habits.HandleCreate(ctx, bad); err == nil {
		t.Error("validation errors must still fail")
	}
}

func TestJournalMilestonesAndReminders(t *testing.T) {
	env := setupEnv(t)
	session := env.register(t, "ada@example.com")

	habit := decode[CreatedHabit](t, env.api.Post("/api/habits", session, map[string]any{"name": "Read"}).Body.Bytes())
	result := decode[service.CompletionResult](t, env.api.Post("/api/completions", session, map[string]any{"habit_id": habit.ID}).Body.Bytes())

	resp := env.api.Post("/api/journal", session, map[string]any{
		"completion_id": result.Completion.ID,
		"mood":          "happy",
		"energy":        4,
		"tags":          []string{"morning"},
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create journal entry failed with %d: %s", resp.Code, resp.Body.String())
	}
	if resp := env.api.Post("/api/journal", session, map[string]any{"completion_id": result.Completion.ID, "energy": 9}); resp.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for an out of range rating, got %d", resp.Code)
	}
	entries := decode[[]models.JournalEntry](t, env.api.Get("/api/journal?limit=5", session).Body.Bytes())
	if len(entries) != 1 || entries[0].Mood != models.MoodHappy {
		t.Errorf("unexpected journal entries: %+v", entries)
	}

	resp = env.api.Post("/api/milestones", session, map[string]any{"type": "streak", "habit_id": habit.ID, "title": "First day", "value": 1})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create milestone failed with %d: %s", resp.Code, resp.Body.String())
	}
	milestone := decode[models.Milestone](t, resp.Body.Bytes())
	resp = env.api.Post("/api/milestones/"+milestone.ID+"/celebrate", session)
	if resp.Code != http.StatusOK || !decode[models.Milestone](t, resp.Body.Bytes()).Celebrated {
		t.Errorf("celebrate failed with %d: %s", resp.Code, resp.Body.String())
	}
	if list := decode[[]models.Milestone](t, env.api.Get("/api/milestones", session).Body.Bytes()); len(list) != 1 {
		t.Errorf("expected one milestone, got %d", len(list))
	}

	resp = env.api.Post("/api/reminders", session, map[string]any{"habit_id": habit.ID, "time": "07:00", "days": []int{1, 2, 3}})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create reminder failed with %d: %s", resp.Code, resp.Body.String())
	}
	reminder := decode[models.Reminder](t, resp.Body.Bytes())
	if !reminder.Enabled {
		t.Error("expected the reminder to start enabled")
	}
	if resp := env.api.Post("/api/reminders", session, map[string]any{"habit_id": habit.ID, "time": "7am", "days": []int{1}}); resp.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for a malformed time, got %d", resp.Code)
	}
	resp = env.api.Put("/api/reminders/"+reminder.ID, session, map[string]any{"enabled": false})
	if resp.Code != http.StatusOK || decode[models.Reminder](t, resp.Body.Bytes()).Enabled {
		t.Errorf("disable reminder failed with %d: %s", resp.Code, resp.Body.String())
	}
	if resp := env.api.Delete("/api/reminders/"+reminder.ID, session); resp.Code != http.StatusNoContent {
		t.Errorf("delete reminder failed with %d", resp.Code)
	}
	if resp := env.api.Delete("/api/reminders/"+reminder.ID, session); resp.Code != http.StatusNotFound {
		t.Errorf("expected 404 on repeated delete, got %d", resp.Code)
	}
}

func TestUpdateProfile(t *testing.T) {
	env := setupEnv(t)
	session := env.register(t, "ada@example.com")

	resp := env.api.Put("/api/profile", session, map[string]any{"theme": "ocean"})
	if resp.Code != http.StatusOK {
		t.Fatalf("update profile failed with %d: %s", resp.Code, resp.Body.String())
	}
	if p := decode[service.ProfileSummary](t, resp.Body.Bytes()); p.Theme != "ocean" || p.Level != 1 {
		t.Errorf("unexpected profile: %+v", p)
	}
	if resp := env.api.Put("/api/profile", session, map[string]any{"theme": ""}); resp.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for an empty theme, got %d", resp.Code)
	}
}
