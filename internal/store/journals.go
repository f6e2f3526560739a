package store

import (
	"context"

	"github.com/habithub/habithub-api/internal/models"
)

func (s *Store) CreateJournalEntry(ctx context.Context, entry *models.JournalEntry) error {
	return s.conn(ctx).Create(entry).Error
}

// ListJournalEntries returns the user's entries, newest first, capped to
// limit when limit > 0.
func (s *Store) ListJournalEntries(ctx context.Context, userID uint, limit int) ([]models.JournalEntry, error) {
	q := s.conn(ctx).Where("user_id = ?", userID).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []models.JournalEntry
	err := q.Find(&out).Error
	return out, err
}
