package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/habithub/habithub-api/internal/auth"
	"github.com/habithub/habithub-api/internal/service"
	"github.com/habithub/habithub-api/internal/store"
)

type Handlers struct {
	Auth         *auth.AuthHandler
	Habits       *HabitHandler
	Categories   *CategoryHandler
	Completions  *CompletionHandler
	Stats        *StatsHandler
	Achievements *AchievementHandler
	Templates    *TemplateHandler
	Journal      *JournalHandler
	Milestones   *MilestoneHandler
	Reminders    *ReminderHandler
	APIKeys      *APIKeyHandler
}

func New(engine *service.Engine, s *store.Store, authHandler *auth.AuthHandler) *Handlers {
	return &Handlers{
		Auth:         authHandler,
		Habits:       NewHabitHandler(engine),
		Categories:   NewCategoryHandler(engine),
		Completions:  NewCompletionHandler(engine),
		Stats:        NewStatsHandler(engine),
		Achievements: NewAchievementHandler(engine),
		Templates:    NewTemplateHandler(engine),
		Journal:      NewJournalHandler(engine),
		Milestones:   NewMilestoneHandler(engine),
		Reminders:    NewReminderHandler(engine),
		APIKeys:      NewAPIKeyHandler(s),
	}
}

func APIConfig() huma.Config {
	config := huma.DefaultConfig("HabitHub API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
		"apiKeyAuth": {
			Type: "apiKey",
			In:   "header",
			Name: "X-API-KEY",
		},
	}
	return config
}

func RegisterRoutes(r *chi.Mux, h *Handlers) huma.API {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Get("/api/auth/oauth/login", h.Auth.HandleOAuthLogin)
	r.Get("/api/auth/oauth/callback", h.Auth.HandleOAuthCallback)

	api := humachi.New(r, APIConfig())
	RegisterAPI(api, h)
	return api
}

func secured(o *huma.Operation) {
	o.Security = []map[string][]string{{"cookieAuth": {}}, {"apiKeyAuth": {}}}
}

func created(o *huma.Operation) {
	o.DefaultStatus = http.StatusCreated
}

// RegisterAPI registers every huma operation on api. Operations marked
// secured go through the auth middleware.
func RegisterAPI(api huma.API, h *Handlers) {
	api.UseMiddleware(h.Auth.Middleware(api))

	huma.Post(api, "/api/auth/register", h.Auth.HandleRegister, created)
	huma.Post(api, "/api/auth/login", h.Auth.HandleLogin)
	huma.Post(api, "/api/auth/logout", h.Auth.HandleLogout)
	huma.Get(api, "/api/auth/me", h.Auth.HandleMe, secured)

	huma.Get(api, "/api/categories", h.Categories.HandleList, secured)
	huma.Post(api, "/api/categories", h.Categories.HandleCreate, secured, created)
	huma.Put(api, "/api/categories/{id}", h.Categories.HandleUpdate, secured)
	huma.Delete(api, "/api/categories/{id}", h.Categories.HandleDelete, secured)

	huma.Get(api, "/api/habits", h.Habits.HandleList, secured)
	huma.Post(api, "/api/habits", h.Habits.HandleCreate, secured, created)
	huma.Post(api, "/api/habits/from-template/{id}", h.Habits.HandleFromTemplate, secured, created)
	huma.Get(api, "/api/habits/{id}", h.Habits.HandleGet, secured)
	huma.Put(api, "/api/habits/{id}", h.Habits.HandleUpdate, secured)
	huma.Delete(api, "/api/habits/{id}", h.Habits.HandleDelete, secured)
	huma.Post(api, "/api/habits/{id}/archive", h.Habits.HandleArchive, secured)
	huma.Post(api, "/api/habits/{id}/unarchive", h.Habits.HandleUnarchive, secured)
	huma.Get(api, "/api/habits/{id}/completions", h.Habits.HandleCompletions, secured)
	huma.Get(api, "/api/habits/{id}/count", h.Habits.HandleCount, secured)

	huma.Get(api, "/api/completions", h.Completions.HandleList, secured)
	huma.Post(api, "/api/completions", h.Completions.HandleCreate, secured, created)
	huma.Delete(api, "/api/completions/{id}", h.Completions.HandleDelete, secured)

	huma.Get(api, "/api/stats", h.Stats.HandleStats, secured)
	huma.Get(api, "/api/profile", h.Stats.HandleProfile, secured)
	huma.Put(api, "/api/profile", h.Stats.HandleUpdateProfile, secured)

	huma.Get(api, "/api/achievements", h.Achievements.HandleList, secured)
	huma.Get(api, "/api/achievements/mine", h.Achievements.HandleMine, secured)
	huma.Post(api, "/api/achievements/check", h.Achievements.HandleCheck, secured)
	huma.Post(api, "/api/achievements/seen", h.Achievements.HandleSeen, secured)

	huma.Get(api, "/api/templates", h.Templates.HandleList)
	huma.Get(api, "/api/templates/{id}", h.Templates.HandleGet)

	huma.Get(api, "/api/journal", h.Journal.HandleList, secured)
	huma.Post(api, "/api/journal", h.Journal.HandleCreate, secured, created)

	huma.Get(api, "/api/milestones", h.Milestones.HandleList, secured)
	huma.Post(api, "/api/milestones", h.Milestones.HandleCreate, secured, created)
	huma.Post(api, "/api/milestones/{id}/celebrate", h.Milestones.HandleCelebrate, secured)

	huma.Get(api, "/api/reminders", h.Reminders.HandleList, secured)
	huma.Post(api, "/api/reminders", h.Reminders.HandleCreate, secured, created)
	huma.Put(api, "/api/reminders/{id}", h.Reminders.HandleUpdate, secured)
	huma.Delete(api, "/api/reminders/{id}", h.Reminders.HandleDelete, secured)

	huma.Get(api, "/api/keys", h.APIKeys.HandleList, secured)
	huma.Post(api, "/api/keys", h.APIKeys.HandleCreate, secured, created)
	huma.Delete(api, "/api/keys/{id}", h.APIKeys.HandleDelete, secured)
}
