// Package service is the gamification engine. It orchestrates the store,
// the catalog and the pure calculators in internal/gamification for one
// user at a time.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/habithub/habithub-api/internal/catalog"
	"github.com/habithub/habithub-api/internal/gamification"
	"github.com/habithub/habithub-api/internal/models"
	"github.com/habithub/habithub-api/internal/notifier"
	"github.com/habithub/habithub-api/internal/store"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrTemplateNotFound = errors.New("template not found")
	ErrXPConflict       = errors.New("xp update kept conflicting")
)

const (
	DefaultXPPerCompletion = 10
	DefaultStatsDays       = 30
)

type Options struct {
	// Location cuts calendar days. Defaults to UTC.
	Location         *time.Location
	XPPerCompletion  int
	DefaultStatsDays int
	// Now is the clock; tests pin it.
	Now func() time.Time
}

type Engine struct {
	store    *store.Store
	catalog  *catalog.Catalog
	notifier notifier.Notifier
	opts     Options
}

func NewEngine(s *store.Store, c *catalog.Catalog, n notifier.Notifier, opts Options) *Engine {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.XPPerCompletion < 0 {
		opts.XPPerCompletion = DefaultXPPerCompletion
	}
	if opts.DefaultStatsDays <= 0 {
		opts.DefaultStatsDays = DefaultStatsDays
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if n == nil {
		n = notifier.Nop{}
	}
	return &Engine{store: s, catalog: c, notifier: n, opts: opts}
}

func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Today is the current calendar day in the configured location.
func (e *Engine) Today() time.Time {
	return gamification.Midnight(e.opts.Now(), e.opts.Location)
}

// announce sends unlock and level-up notifications. Delivery failures are
// logged and never fail the request.
func (e *Engine) announce(ctx context.Context, userID uint, unlocked []models.UserAchievement, levels []int) {
	if len(unlocked) == 0 && len(levels) == 0 {
		return
	}
	user, err := e.store.GetUser(ctx, userID)
	if err != nil {
		log.Warn("Skipping notifications, user lookup failed", "user_id", userID, "err", err)
		return
	}
	for _, ua := range unlocked {
		a, ok := e.catalog.Achievement(ua.AchievementKey)
		if !ok {
			continue
		}
		if err := e.notifier.NotifyAchievement(ctx, user, a); err != nil {
			log.Warn("Achievement notification failed", "user_id", userID, "achievement", a.Key, "err", err)
		}
	}
	for _, level := range levels {
		if err := e.notifier.NotifyLevelUp(ctx, user, level); err != nil {
			log.Warn("Level-up notification failed", "user_id", userID, "level", level, "err", err)
		}
	}
}
