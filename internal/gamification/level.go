package gamification

import (
	"errors"
	"math"

	"github.com/habithub/habithub-api/internal/models"
)

const xpPerLevelUnit = 100

var ErrInvalidXP = errors.New("xp amount must not be negative")

// CalculateLevel returns floor(sqrt(totalXP/100)) + 1 using integer math so
// thresholds are exact.
func CalculateLevel(totalXP int) int {
	if totalXP <= 0 {
		return 1
	}
	return isqrt(totalXP/xpPerLevelUnit) + 1
}

// LevelRequirement is the lifetime XP needed to reach level.
func LevelRequirement(level int) int {
	if level <= 1 {
		return 0
	}
	n := level - 1
	return n * n * xpPerLevelUnit
}

func isqrt(n int) int {
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

type XPResult struct {
	Profile   models.UserProfile `json:"profile"`
	LeveledUp bool               `json:"leveled_up"`
	NewLevel  int                `json:"new_level,omitempty"`
}

// ApplyXP grants amount to the profile. On a level-up the per-level counter
// restarts from the remainder above the new level's threshold.
func ApplyXP(p models.UserProfile, amount int) (XPResult, error) {
	if amount < 0 {
		return XPResult{Profile: p}, ErrInvalidXP
	}

	p.XP += amount
	p.TotalXP += amount

	level := CalculateLevel(p.TotalXP)
	if level <= p.Level {
		return XPResult{Profile: p}, nil
	}

	p.XP = p.TotalXP - LevelRequirement(level)
	p.Level = level
	return XPResult{Profile: p, LeveledUp: true, NewLevel: level}, nil
}
