package store

import (
	"context"
	"errors"
	"testing"

	"github.com/habithub/habithub-api/internal/database"
	"github.com/habithub/habithub-api/internal/models"
)

func setupStore(t *testing.T) (*Store, models.User) {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	s := New(db)

	user := models.User{Email: "ada@example.com", DisplayName: "Ada"}
	if err := s.CreateUser(context.Background(), &user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return s, user
}

func createHabit(t *testing.T, s *Store, userID uint, name string) models.Habit {
	t.Helper()
	h := models.Habit{UserID: userID, Name: name, Frequency: models.FrequencyDaily, TargetCount: 1}
	if err := s.CreateHabit(context.Background(), &h); err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	return h
}

func TestDuplicateEmail(t *testing.T) {
	s, _ := setupStore(t)
	err := s.CreateUser(context.Background(), &models.User{Email: "ada@example.com"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestDuplicateCompletion(t *testing.T) {
	s, user := setupStore(t)
	ctx := context.Background()
	h := createHabit(t, s, user.ID, "Read")

	first := models.Completion{HabitID: h.ID, UserID: user.ID, CompletedDate: "2026-03-15"}
	if err := s.CreateCompletion(ctx, &first); err != nil {
		t.Fatalf("first completion failed: %v", err)
	}

	second := models.Completion{HabitID: h.ID, UserID: user.ID, CompletedDate: "2026-03-15"}
	if err := s.CreateCompletion(ctx, &second); !errors.Is(err, ErrDuplicateCompletion) {
		t.Fatalf("expected ErrDuplicateCompletion, got %v", err)
	}

	list, err := s.ListCompletionsByHabit(ctx, user.ID, h.ID, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 completion, got %d", len(list))
	}
}

func TestCompletionQueries(t *testing.T) {
	s, user := setupStore(t)
	ctx := context.Background()
	read := createHabit(t, s, user.ID, "Read")
	run := createHabit(t, s, user.ID, "Run")

	for _, c := range []models.Completion{
		{HabitID: read.ID, UserID: user.ID, CompletedDate: "2026-03-13"},
		{HabitID: read.ID, UserID: user.ID, CompletedDate: "2026-03-14"},
		{HabitID: read.ID, UserID: user.ID, CompletedDate: "2026-03-15"},
		{HabitID: run.ID, UserID: user.ID, CompletedDate: "2026-03-15"},
	} {
		if err := s.CreateCompletion(ctx, &c); err != nil {
			t.Fatalf("create completion: %v", err)
		}
	}

	dates, err := s.RecentCompletionDates(ctx, user.ID, 100)
	if err != nil {
		t.Fatalf("recent dates: %v", err)
	}
	if len(dates) != 4 || dates[0] != "2026-03-15" || dates[3] != "2026-03-13" {
		t.Errorf("unexpected recent dates: %v", dates)
	}

	n, err := s.CountCompletionsSince(ctx, user.ID, "2026-03-14")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 completions since 03-14, got %d", n)
	}

	ranged, err := s.ListCompletionsByUser(ctx, user.ID, "2026-03-14", "2026-03-14")
	if err != nil {
		t.Fatalf("ranged list: %v", err)
	}
	if len(ranged) != 1 {
		t.Errorf("expected 1 completion in range, got %d", len(ranged))
	}

	ids, err := s.CompletedHabitIDsOn(ctx, user.ID, "2026-03-15")
	if err != nil {
		t.Fatalf("completed ids: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("expected 2 habits completed on 03-15, got %d", len(ids))
	}

	limited, err := s.ListCompletionsByHabit(ctx, user.ID, read.ID, 2)
	if err != nil {
		t.Fatalf("limited list: %v", err)
	}
	if len(limited) != 2 || limited[0].CompletedDate != "2026-03-15" {
		t.Errorf("unexpected limited list: %+v", limited)
	}
}

func TestDeleteCompletionScopedToOwner(t *testing.T) {
	s, user := setupStore(t)
	ctx := context.Background()
	h := createHabit(t, s, user.ID, "Read")
	c := models.Completion{HabitID: h.ID, UserID: user.ID, CompletedDate: "2026-03-15"}
	if err := s.CreateCompletion(ctx, &c); err != nil {
		t.Fatalf("create completion: %v", err)
	}

	if _, err := s.DeleteCompletion(ctx, user.ID+1, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user, got %v", err)
	}

	deleted, err := s.DeleteCompletion(ctx, user.ID, c.ID)
	if err != nil {
		t.Fatalf("delete completion: %v", err)
	}
	if deleted.CompletedDate != "2026-03-15" {
		t.Errorf("expected deleted row to be returned, got %+v", deleted)
	}
}

func TestDeleteHabitCascades(t *testing.T) {
	s, user := setupStore(t)
	ctx := context.Background()
	h := createHabit(t, s, user.ID, "Read")
	other := createHabit(t, s, user.ID, "Run")
	c := models.Completion{HabitID: h.ID, UserID: user.ID, CompletedDate: "2026-03-15"}
	if err := s.CreateCompletion(ctx, &c); err != nil {
		t.Fatalf("create completion: %v", err)
	}
	kept := models.Completion{HabitID: other.ID, UserID: user.ID, CompletedDate: "2026-03-15"}
	if err := s.CreateCompletion(ctx, &kept); err != nil {
		t.Fatalf("create completion: %v", err)
	}
	if err := s.CreateJournalEntry(ctx, &models.JournalEntry{CompletionID: c.ID, UserID: user.ID}); err != nil {
		t.Fatalf("create journal entry: %v", err)
	}
	if err := s.CreateJournalEntry(ctx, &models.JournalEntry{CompletionID: kept.ID, UserID: user.ID}); err != nil {
		t.Fatalf("create journal entry: %v", err)
	}
	if err := s.CreateReminder(ctx, &models.Reminder{HabitID: h.ID, UserID: user.ID, Time: "08:00", Days: []int{1}}); err != nil {
		t.Fatalf("create reminder: %v", err)
	}
	if err := s.CreateMilestone(ctx, &models.Milestone{UserID: user.ID, HabitID: &h.ID, Type: models.MilestoneStreak, Title: "x"}); err != nil {
		t.Fatalf("create milestone: %v", err)
	}

	removed, err := s.DeleteHabit(ctx, user.ID, h.ID)
	if err != nil {
		t.Fatalf("delete habit: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed completion, got %d", removed)
	}
	if _, err := s.GetHabit(ctx, user.ID, h.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected habit to be gone, got %v", err)
	}
	list, _ := s.ListCompletionsByUser(ctx, user.ID, "", "")
	if len(list) != 1 || list[0].ID != kept.ID {
		t.Errorf("expected only the other habit's completion to remain, got %+v", list)
	}
	journal, _ := s.ListJournalEntries(ctx, user.ID, 0)
	if len(journal) != 1 || journal[0].CompletionID != kept.ID {
		t.Errorf("expected only the other habit's journal entry to remain, got %+v", journal)
	}
	reminders, _ := s.ListReminders(ctx, user.ID, "")
	milestones, _ := s.ListMilestones(ctx, user.ID)
	if len(reminders) != 0 || len(milestones) != 0 {
		t.Errorf("expected reminders and milestones to be removed, got %d and %d", len(reminders), len(milestones))
	}
	if _, err := s.DeleteHabit(ctx, user.ID, h.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestReminderUpdateWritesZeroValues(t *testing.T) {
	s, user := setupStore(t)
	ctx := context.Background()
	h := createHabit(t, s, user.ID, "Read")
	r := models.Reminder{HabitID: h.ID, UserID: user.ID, Time: "08:00", Days: []int{1, 3}, Enabled: true, Message: "go"}
	if err := s.CreateReminder(ctx, &r); err != nil {
		t.Fatalf("create reminder: %v", err)
	}

	off, blank := false, ""
	if _, err := s.UpdateReminder(ctx, user.ID, r.ID, ReminderPatch{Enabled: &off, Message: &blank}); err != nil {
		t.Fatalf("update reminder: %v", err)
	}
	got, err := s.GetReminder(ctx, user.ID, r.ID)
	if err != nil {
		t.Fatalf("get reminder: %v", err)
	}
	if got.Enabled || got.Message != "" || len(got.Days) != 2 || got.Time != "08:00" {
		t.Errorf("unexpected reminder after update: %+v", got)
	}
	if _, err := s.UpdateReminder(ctx, user.ID+1, r.ID, ReminderPatch{Enabled: &off}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for another user, got %v", err)
	}
}

func TestUnlockInsideTransaction(t *testing.T) {
	s, user := setupStore(t)
	ctx := context.Background()
	if _, _, err := s.Unlock(ctx, user.ID, "first_step", 1); err != nil {
		t.Fatalf("unlock: %v", err)
	}

	err := s.Transaction(ctx, func(tx *Store) error {
		_, created, err := tx.Unlock(ctx, user.ID, "first_step", 1)
		if err != nil {
			return err
		}
		if created {
			t.Error("expected the existing unlock to be reused")
		}
		_, created, err = tx.Unlock(ctx, user.ID, "second_step", 2)
		if !created {
			t.Error("expected a new unlock")
		}
		return err
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	keys, _ := s.UnlockedKeys(ctx, user.ID)
	if len(keys) != 2 {
		t.Errorf("expected 2 unlocked keys, got %v", keys)
	}
}

func TestSetTheme(t *testing.T) {
	s, user := setupStore(t)
	ctx := context.Background()
	if err := s.SetTheme(ctx, user.ID, "dark"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound before the profile exists, got %v", err)
	}
	p, err := s.GetOrCreateProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if p.Theme != models.DefaultTheme {
		t.Errorf("expected default theme, got %q", p.Theme)
	}
	if err := s.SetTheme(ctx, user.ID, "dark"); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	p, _ = s.GetProfile(ctx, user.ID)
	if p.Theme != "dark" {
		t.Errorf("expected dark theme, got %q", p.Theme)
	}
}

func TestHabitArchiveAndCounts(t *testing.T) {
	s, user := setupStore(t)
	ctx := context.Background()
	a := createHabit(t, s, user.ID, "A")
	createHabit(t, s, user.ID, "B")

	archived := true
	if _, err := s.UpdateHabit(ctx, user.ID, a.ID, HabitPatch{Archived: &archived}); err != nil {
		t.Fatalf("archive: %v", err)
	}

	total, active, err := s.CountHabits(ctx, user.ID)
	if err != nil {
		t.Fatalf("count habits: %v", err)
	}
	if total != 2 || active != 1 {
		t.Errorf("expected 2 total / 1 active, got %d / %d", total, active)
	}

	visible, _ := s.ListHabits(ctx, user.ID, false)
	all, _ := s.ListHabits(ctx, user.ID, true)
	if len(visible) != 1 || len(all) != 2 {
		t.Errorf("expected 1 visible and 2 overall, got %d and %d", len(visible), len(all))
	}
}

func TestCategoryLifecycle(t *testing.T) {
	s, user := setupStore(t)
	ctx := context.Background()

	cat := models.Category{UserID: user.ID, Name: "Health"}
	if err := s.CreateCategory(ctx, &cat); err != nil {
		t.Fatalf("create category: %v", err)
	}
	if err := s.CreateCategory(ctx, &models.Category{UserID: user.ID, Name: "Health"}); !errors.Is(err, ErrDuplicateCategory) {
		t.Fatalf("expected ErrDuplicateCategory, got %v", err)
	}

	h := models.Habit{UserID: user.ID, Name: "Run", CategoryID: &cat.ID, Frequency: models.FrequencyDaily, TargetCount: 1}
	if err := s.CreateHabit(ctx, &h); err != nil {
		t.Fatalf("create habit: %v", err)
	}

	if err := s.DeleteCategory(ctx, user.ID, cat.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	got, err := s.GetHabit(ctx, user.ID, h.ID)
	if err != nil {
		t.Fatalf("habit should survive category deletion: %v", err)
	}
	if got.CategoryID != nil {
		t.Errorf("expected category to be detached, got %v", *got.CategoryID)
	}
}

func TestProfileCounters(t *testing.T) {
	s, user := setupStore(t)
	ctx := context.Background()

	if _, err := s.GetProfile(ctx, user.ID); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}

	p, err := s.GetOrCreateProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if p.Level != 1 || p.StreakFreezes != models.DefaultStreakFreezes {
		t.Errorf("unexpected default profile: %+v", p)
	}

	if err := s.AddCompletions(ctx, user.ID, -1); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if err := s.AddCompletions(ctx, user.ID, 2); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if err := s.SetCurrentStreak(ctx, user.ID, 4); err != nil {
		t.Fatalf("streak: %v", err)
	}
	if err := s.SetCurrentStreak(ctx, user.ID, 1); err != nil {
		t.Fatalf("streak: %v", err)
	}

	p, _ = s.GetProfile(ctx, user.ID)
	if p.TotalCompletions != 2 {
		t.Errorf("expected counter floored at zero then 2, got %d", p.TotalCompletions)
	}
	if p.CurrentStreak != 1 || p.LongestStreak != 4 {
		t.Errorf("expected streak 1 / longest 4, got %d / %d", p.CurrentStreak, p.LongestStreak)
	}
}

func TestSwapXP(t *testing.T) {
	s, user := setupStore(t)
	ctx := context.Background()
	p, _ := s.GetOrCreateProfile(ctx, user.ID)

	next := p
	next.XP, next.TotalXP = 50, 50
	ok, err := s.SwapXP(ctx, 0, next)
	if err != nil || !ok {
		t.Fatalf("expected swap to succeed, ok=%v err=%v", ok, err)
	}

	stale := p
	stale.XP, stale.TotalXP = 10, 10
	ok, err = s.SwapXP(ctx, 0, stale)
	if err != nil {
		t.Fatalf("swap: %v", err)
	}
	if ok {
		t.Error("expected stale swap to be rejected")
	}

	p, _ = s.GetProfile(ctx, user.ID)
	if p.TotalXP != 50 {
		t.Errorf("expected total xp 50, got %d", p.TotalXP)
	}
}

func TestUnlockIsIdempotent(t *testing.T) {
	s, user := setupStore(t)
	ctx := context.Background()

	first, created, err := s.Unlock(ctx, user.ID, "first_step", 1)
	if err != nil || !created {
		t.Fatalf("expected first unlock to create, created=%v err=%v", created, err)
	}
	again, created, err := s.Unlock(ctx, user.ID, "first_step", 1)
	if err != nil {
		t.Fatalf("second unlock: %v", err)
	}
	if created {
		t.Error("second unlock must not be reported as new")
	}
	if again.ID != first.ID {
		t.Errorf("expected existing record %s, got %s", first.ID, again.ID)
	}

	keys, _ := s.UnlockedKeys(ctx, user.ID)
	if len(keys) != 1 || !keys["first_step"] {
		t.Errorf("unexpected unlocked keys: %v", keys)
	}

	n, err := s.MarkSeen(ctx, user.ID, nil)
	if err != nil || n != 1 {
		t.Errorf("expected 1 row marked seen, got %d (%v)", n, err)
	}
}

func TestAPIKeyLookup(t *testing.T) {
	s, user := setupStore(t)
	ctx := context.Background()

	key := models.APIKey{UserID: user.ID, KeyHash: "abc123", Suffix: "c123", Name: "cli"}
	if err := s.CreateAPIKey(ctx, &key); err != nil {
		t.Fatalf("create key: %v", err)
	}
	found, err := s.LookupAPIKey(ctx, "abc123")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if found.UserID != user.ID {
		t.Errorf("expected user %d, got %d", user.ID, found.UserID)
	}
	if _, err := s.LookupAPIKey(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteAPIKey(ctx, user.ID, key.ID); err != nil {
		t.Fatalf("delete key: %v", err)
	}
	if err := s.DeleteAPIKey(ctx, user.ID, key.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
