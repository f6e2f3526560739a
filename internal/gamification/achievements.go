package gamification

import "github.com/habithub/habithub-api/internal/models"

const (
	RequirementHabitsCreated     = "habits_created"
	RequirementCompletions       = "completions"
	RequirementTotalCompletions  = "total_completions"
	RequirementStreak            = "streak"
	RequirementLevel             = "level"
	RequirementCategoriesCreated = "categories_created"
	RequirementPerfectDay        = "perfect_day"
)

// MaxEvaluationPasses caps how many times unlock rewards may cascade into
// further unlocks within one check.
const MaxEvaluationPasses = 16

// Counts holds the registry counts requirements are compared against.
type Counts struct {
	Habits     int
	Categories int
}

// Progress returns the value a requirement is measured against. ok is false
// for requirement types the evaluator does not know.
func Progress(req models.Requirement, p models.UserProfile, c Counts) (value int, ok bool) {
	switch req.Type {
	case RequirementHabitsCreated:
		return c.Habits, true
	case RequirementCompletions, RequirementTotalCompletions:
		return p.TotalCompletions, true
	case RequirementStreak:
		return max(p.CurrentStreak, p.LongestStreak), true
	case RequirementLevel:
		return p.Level, true
	case RequirementCategoriesCreated:
		return c.Categories, true
	case RequirementPerfectDay:
		return p.PerfectDays, true
	}
	return 0, false
}

// Satisfied reports whether req is met. Unknown types never are.
func Satisfied(req models.Requirement, p models.UserProfile, c Counts) bool {
	v, ok := Progress(req, p, c)
	return ok && v >= req.Value
}

// Evaluate returns catalog entries, in catalog order, that are satisfied and
// not in unlocked.
func Evaluate(catalog []models.Achievement, unlocked map[string]bool, p models.UserProfile, c Counts) []models.Achievement {
	var due []models.Achievement
	for _, a := range catalog {
		if unlocked[a.Key] {
			continue
		}
		if Satisfied(a.Requirement, p, c) {
			due = append(due, a)
		}
	}
	return due
}
