package progress

import (
	"testing"

	"finlit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger() *models.UserProgress {
	return &models.UserProgress{
		Level:          models.LevelBeginner,
		CompletedUnits: []string{},
		Badges:         []string{},
	}
}

func TestApplyCompletionAwardsPointsAndStreak(t *testing.T) {
	p := newLedger()

	applied := ApplyCompletion(p, "course-budgeting", 85)
	require.True(t, applied)

	assert.Equal(t, []string{"course-budgeting"}, p.CompletedUnits)
	assert.Equal(t, 85, p.TotalPoints)
	assert.Equal(t, 1, p.CurrentStreak)
	assert.Empty(t, p.Badges)
}

func TestApplyCompletionIsIdempotentPerUnit(t *testing.T) {
	p := newLedger()

	require.True(t, ApplyCompletion(p, "course-saving", 40))
	pointsAfterFirst := p.TotalPoints
	streakAfterFirst := p.CurrentStreak

	// Re-completing the same unit must not double count anything.
	applied := ApplyCompletion(p, "course-saving", 40)
	assert.False(t, applied)
	assert.Equal(t, pointsAfterFirst, p.TotalPoints)
	assert.Equal(t, streakAfterFirst, p.CurrentStreak)
	assert.Len(t, p.CompletedUnits, 1)
}

func TestApplyCompletionRejectsInvalidInput(t *testing.T) {
	p := newLedger()

	assert.False(t, ApplyCompletion(p, "", 10))
	assert.False(t, ApplyCompletion(p, "unit", -1))
	assert.Zero(t, p.TotalPoints)
	assert.Zero(t, p.CurrentStreak)
}

func TestFirstFiveBadgeGrantedAtFiveUnits(t *testing.T) {
	p := newLedger()

	units := []string{"a", "b", "c", "d"}
	for _, u := range units {
		require.True(t, ApplyCompletion(p, u, 10))
	}
	assert.False(t, p.HasBadge(models.BadgeFirstFive))

	require.True(t, ApplyCompletion(p, "e", 10))
	assert.True(t, p.HasBadge(models.BadgeFirstFive))
}

func TestPointMasterBadgeAtExactlyThousand(t *testing.T) {
	p := newLedger()

	require.True(t, ApplyCompletion(p, "unit-1", 990))
	assert.False(t, p.HasBadge(models.BadgePointMaster))

	require.True(t, ApplyCompletion(p, "unit-2", 10))
	assert.Equal(t, 1000, p.TotalPoints)
	assert.True(t, p.HasBadge(models.BadgePointMaster))
}

func TestWeekStreakBadgeAtSeven(t *testing.T) {
	p := newLedger()

	for i := 0; i < 6; i++ {
		require.True(t, ApplyCompletion(p, string(rune('a'+i)), 10))
	}
	assert.False(t, p.HasBadge(models.BadgeWeekStreak))

	require.True(t, ApplyCompletion(p, "seventh", 10))
	assert.Equal(t, 7, p.CurrentStreak)
	assert.True(t, p.HasBadge(models.BadgeWeekStreak))
}

func TestBadgesAreNotRevokedByLaterEvents(t *testing.T) {
	p := newLedger()
	for i := 0; i < 7; i++ {
		ApplyCompletion(p, string(rune('a'+i)), 200)
	}
	require.True(t, p.HasBadge(models.BadgeFirstFive))
	require.True(t, p.HasBadge(models.BadgePointMaster))
	require.True(t, p.HasBadge(models.BadgeWeekStreak))

	before := len(p.Badges)
	ApplyCompletion(p, "another", 10)
	assert.Len(t, p.Badges, before)
}

func TestResetClearsEverything(t *testing.T) {
	p := newLedger()
	for i := 0; i < 7; i++ {
		ApplyCompletion(p, string(rune('a'+i)), 500)
	}
	p.Level = models.LevelAdvanced

	Reset(p)

	assert.Equal(t, models.LevelBeginner, p.Level)
	assert.Empty(t, p.CompletedUnits)
	assert.Empty(t, p.Badges)
	assert.Zero(t, p.TotalPoints)
	assert.Zero(t, p.CurrentStreak)
}

func TestPointsForScoreFloor(t *testing.T) {
	assert.Equal(t, 10, PointsForScore(0))
	assert.Equal(t, 10, PointsForScore(9))
	assert.Equal(t, 10, PointsForScore(10))
	assert.Equal(t, 73, PointsForScore(73))
	assert.Equal(t, 100, PointsForScore(100))
}

func TestUnlocks(t *testing.T) {
	tiers := map[string]models.Level{
		"b1": models.LevelBeginner, "b2": models.LevelBeginner, "b3": models.LevelBeginner,
		"i1": models.LevelIntermediate, "i2": models.LevelIntermediate, "i3": models.LevelIntermediate,
	}

	empty := newLedger()
	state := Unlocks(empty, tiers)
	assert.True(t, state.Beginner)
	assert.False(t, state.Intermediate)
	assert.False(t, state.Advanced)

	p := newLedger()
	p.CompletedUnits = []string{"b1", "b2", "b3"}
	state = Unlocks(p, tiers)
	assert.True(t, state.Intermediate)
	assert.False(t, state.Advanced)

	p.CompletedUnits = append(p.CompletedUnits, "i1", "i2", "i3")
	state = Unlocks(p, tiers)
	assert.True(t, state.Advanced)

	// Units unknown to the catalog never count toward a gate.
	q := newLedger()
	q.CompletedUnits = []string{"ghost-1", "ghost-2", "ghost-3"}
	state = Unlocks(q, tiers)
	assert.False(t, state.Intermediate)
}

func TestRankForPoints(t *testing.T) {
	assert.Equal(t, "beginner", RankForPoints(0))
	assert.Equal(t, "beginner", RankForPoints(499))
	assert.Equal(t, "intermediate", RankForPoints(500))
	assert.Equal(t, "advanced", RankForPoints(1500))
	assert.Equal(t, "master", RankForPoints(3000))
	assert.Equal(t, "master", RankForPoints(9999))
}

func TestNextRankThreshold(t *testing.T) {
	next, ok := NextRankThreshold(120)
	require.True(t, ok)
	assert.Equal(t, 500, next)

	next, ok = NextRankThreshold(2999)
	require.True(t, ok)
	assert.Equal(t, 3000, next)

	_, ok = NextRankThreshold(3000)
	assert.False(t, ok)
}
