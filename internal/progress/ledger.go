// Package progress holds the gamification ledger rules: how completion
// events move points, streaks and badges, and what they unlock. Everything
// here is pure; persistence lives in the progress service.
package progress

import (
	"finlit/internal/models"
)

// Thresholds for badge grants and tier unlocks.
const (
	FirstFiveThreshold   = 5    // completed units for first_five
	PointMasterThreshold = 1000 // total points for point_master
	WeekStreakThreshold  = 7    // streak length for week_streak
	UnlockThreshold      = 3    // completed units in a tier to unlock the next

	// MinQuizPoints is the floor for a quiz completion award.
	MinQuizPoints = 10
)

// Display rank thresholds, keyed off total points. Independent of the
// ledger's level field, which tracks the highest unlocked catalog tier.
const (
	RankIntermediateAt = 500
	RankAdvancedAt     = 1500
	RankMasterAt       = 3000
)

// PointsForScore returns the award for a quiz scored at percent correct:
// the percentage itself, floored at MinQuizPoints.
func PointsForScore(percent int) int {
	if percent < MinQuizPoints {
		return MinQuizPoints
	}
	return percent
}

// ApplyCompletion records a completion event on the ledger row. A unit that
// is already in the completed set changes nothing: points, streak and badges
// stay as they are and applied is false. Otherwise the unit is appended,
// points added, the streak incremented, and badge grants re-evaluated.
func ApplyCompletion(p *models.UserProgress, unitID string, points int) (applied bool) {
	if unitID == "" || points < 0 {
		return false
	}
	if p.HasCompleted(unitID) {
		return false
	}

	p.CompletedUnits = append(p.CompletedUnits, unitID)
	p.TotalPoints += points
	p.CurrentStreak++
	evaluateBadges(p)
	return true
}

// evaluateBadges grants any badge whose threshold the row now meets.
// Badges are never revoked here; only Reset clears them.
func evaluateBadges(p *models.UserProgress) {
	if len(p.CompletedUnits) >= FirstFiveThreshold && !p.HasBadge(models.BadgeFirstFive) {
		p.Badges = append(p.Badges, models.BadgeFirstFive)
	}
	if p.TotalPoints >= PointMasterThreshold && !p.HasBadge(models.BadgePointMaster) {
		p.Badges = append(p.Badges, models.BadgePointMaster)
	}
	if p.CurrentStreak >= WeekStreakThreshold && !p.HasBadge(models.BadgeWeekStreak) {
		p.Badges = append(p.Badges, models.BadgeWeekStreak)
	}
}

// Reset returns the ledger row to its post-registration state.
func Reset(p *models.UserProgress) {
	p.Level = models.LevelBeginner
	p.CompletedUnits = []string{}
	p.Badges = []string{}
	p.TotalPoints = 0
	p.CurrentStreak = 0
}

// UnlockState reports which catalog tiers a ledger row has opened.
type UnlockState struct {
	Beginner     bool `json:"beginner"`
	Intermediate bool `json:"intermediate"`
	Advanced     bool `json:"advanced"`
}

// Unlocks derives the tier gate from the completed set. tiers maps unit
// identifiers to the tier each unit belongs to; units the catalog no longer
// knows about are ignored. The beginner tier is always open; each later
// tier opens once UnlockThreshold units of the tier below are completed.
func Unlocks(p *models.UserProgress, tiers map[string]models.Level) UnlockState {
	var beginnerDone, intermediateDone int
	for _, unit := range p.CompletedUnits {
		switch tiers[unit] {
		case models.LevelBeginner:
			beginnerDone++
		case models.LevelIntermediate:
			intermediateDone++
		}
	}
	return UnlockState{
		Beginner:     true,
		Intermediate: beginnerDone >= UnlockThreshold,
		Advanced:     intermediateDone >= UnlockThreshold,
	}
}

// RankForPoints maps total points onto the display rank shown on the
// profile page.
func RankForPoints(points int) string {
	switch {
	case points >= RankMasterAt:
		return "master"
	case points >= RankAdvancedAt:
		return "advanced"
	case points >= RankIntermediateAt:
		return "intermediate"
	default:
		return "beginner"
	}
}

// NextRankThreshold returns the points needed for the next display rank,
// and false when the top rank is already reached.
func NextRankThreshold(points int) (int, bool) {
	switch {
	case points < RankIntermediateAt:
		return RankIntermediateAt, true
	case points < RankAdvancedAt:
		return RankAdvancedAt, true
	case points < RankMasterAt:
		return RankMasterAt, true
	default:
		return 0, false
	}
}
