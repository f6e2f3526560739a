package service

import (
	"context"
	"fmt"

	"github.com/habithub/habithub-api/internal/gamification"
	"github.com/habithub/habithub-api/internal/store"
)

const maxXPAttempts = 5

// AddXP grants amount to the user's profile. The write is a compare-and-swap
// on lifetime XP, retried when a concurrent grant got there first.
func (e *Engine) AddXP(ctx context.Context, userID uint, amount int) (gamification.XPResult, error) {
	return addXP(ctx, e.store, userID, amount)
}

// addXP runs the grant against s, which may be bound to a transaction.
func addXP(ctx context.Context, s *store.Store, userID uint, amount int) (gamification.XPResult, error) {
	if amount < 0 {
		return gamification.XPResult{}, gamification.ErrInvalidXP
	}

	for range maxXPAttempts {
		p, err := s.GetProfile(ctx, userID)
		if err != nil {
			return gamification.XPResult{}, err
		}
		res, err := gamification.ApplyXP(p, amount)
		if err != nil || amount == 0 {
			return res, err
		}
		ok, err := s.SwapXP(ctx, p.TotalXP, res.Profile)
		if err != nil {
			return gamification.XPResult{}, fmt.Errorf("update xp: %w", err)
		}
		if ok {
			return res, nil
		}
	}
	return gamification.XPResult{}, ErrXPConflict
}
