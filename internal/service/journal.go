package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/habithub/habithub-api/internal/models"
)

const (
	maxJournalText = 2000
	maxJournalTags = 20
	maxTagLength   = 50
)

// CreateJournalEntry attaches a reflection to one of the user's completions.
func (e *Engine) CreateJournalEntry(ctx context.Context, userID uint, entry models.JournalEntry) (models.JournalEntry, error) {
	if entry.Mood != "" && !entry.Mood.Valid() {
		return models.JournalEntry{}, fmt.Errorf("%w: unknown mood %q", ErrInvalidInput, entry.Mood)
	}
	if err := validateRating("energy", entry.Energy); err != nil {
		return models.JournalEntry{}, err
	}
	if err := validateRating("difficulty", entry.Difficulty); err != nil {
		return models.JournalEntry{}, err
	}
	if len(entry.Notes) > maxJournalText || len(entry.Reflection) > maxJournalText {
		return models.JournalEntry{}, fmt.Errorf("%w: journal text longer than %d characters", ErrInvalidInput, maxJournalText)
	}
	tags, err := normalizeTags(entry.Tags)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if _, err := e.store.GetCompletion(ctx, userID, entry.CompletionID); err != nil {
		return models.JournalEntry{}, err
	}

	entry.ID = ""
	entry.UserID = userID
	entry.Tags = tags
	if err := e.store.CreateJournalEntry(ctx, &entry); err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}

func (e *Engine) ListJournalEntries(ctx context.Context, userID uint, limit int) ([]models.JournalEntry, error) {
	return e.store.ListJournalEntries(ctx, userID, limit)
}

func validateRating(field string, v *int) error {
	if v != nil && (*v < 1 || *v > 5) {
		return fmt.Errorf("%w: %s must be between 1 and 5", ErrInvalidInput, field)
	}
	return nil
}

func normalizeTags(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		if len(t) > maxTagLength {
			return nil, fmt.Errorf("%w: tag longer than %d characters", ErrInvalidInput, maxTagLength)
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) > maxJournalTags {
		return nil, fmt.Errorf("%w: at most %d tags", ErrInvalidInput, maxJournalTags)
	}
	return out, nil
}
