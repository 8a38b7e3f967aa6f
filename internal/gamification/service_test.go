package gamification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Loretta-Health/Webapp-sub001/internal/catalog"
	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(nil, nil, []domain.AchievementDefinition{
		{ID: "first_mission", Title: "First Mission", Metric: domain.MetricMissionsCompleted, Threshold: 1},
		{ID: "streak_3", Title: "Three Days", Metric: domain.MetricStreak, Threshold: 3},
		{ID: "xp_100", Title: "Centurion", Metric: domain.MetricXP, Threshold: 100},
		{ID: "level_2", Title: "Level Two", Metric: domain.MetricLevel, Threshold: 2},
	})
}

func newTestService() (Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, testCatalog(), nil), repo
}

func TestAwardXP_AppendsLedgerAndLevelsUp(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	result, err := svc.AwardXP(ctx, "user-1", 250, SourceMissionComplete)
	require.NoError(t, err)
	assert.Equal(t, 250, result.NewXP)
	assert.Equal(t, 1, result.NewLevel)
	assert.False(t, result.LeveledUp)

	result, err = svc.AwardXP(ctx, "user-1", 100, SourceMissionComplete)
	require.NoError(t, err)
	assert.Equal(t, 350, result.NewXP)
	assert.Equal(t, 2, result.NewLevel)
	assert.True(t, result.LeveledUp)

	deltas, err := repo.GetXPDeltas(ctx, "user-1", 10)
	require.NoError(t, err)
	assert.Len(t, deltas, 2)
}

func TestAwardXP_FailedAppendLeavesStateUntouched(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.AwardXP(ctx, "user-1", 30, SourceMissionStep)
	require.NoError(t, err)

	// A failed ledger append must not move the derived totals
	repo.failAppend = true
	_, err = svc.AwardXP(ctx, "user-1", 50, SourceMissionComplete)
	require.ErrorIs(t, err, errAppendFailed)

	state, err := svc.GetState(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 30, state.XP)

	deltas, err := repo.GetXPDeltas(ctx, "user-1", 10)
	require.NoError(t, err)
	assert.Len(t, deltas, 1)

	// Retry lands both the ledger entry and the totals
	repo.failAppend = false
	result, err := svc.AwardXP(ctx, "user-1", 50, SourceMissionComplete)
	require.NoError(t, err)
	assert.Equal(t, 80, result.NewXP)
}

func TestRetractXP_ClampsAtZero(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AwardXP(ctx, "user-1", 30, SourceMissionStep)
	require.NoError(t, err)

	result, err := svc.RetractXP(ctx, "user-1", 50, SourceStepUndo)
	require.NoError(t, err)
	assert.Equal(t, 0, result.NewXP)
	assert.Equal(t, 1, result.NewLevel)
}

func TestRetractXP_CanLowerLevel(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AwardXP(ctx, "user-1", 350, SourceMissionComplete)
	require.NoError(t, err)

	result, err := svc.RetractXP(ctx, "user-1", 100, SourceStepUndo)
	require.NoError(t, err)
	assert.Equal(t, 250, result.NewXP)
	assert.Equal(t, 1, result.NewLevel)
}

func TestAwardXP_NegativeAmountRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AwardXP(context.Background(), "user-1", -5, SourceMissionStep)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckIn_StreakLifecycle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// First check-in starts the streak
	result, err := svc.CheckIn(ctx, "user-1", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, 1, result.CurrentStreak)
	assert.True(t, result.Extended)
	assert.Equal(t, domain.DefaultLives, result.Lives)

	// Same-day repeat is an idempotent no-op
	result, err = svc.CheckIn(ctx, "user-1", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, 1, result.CurrentStreak)
	assert.False(t, result.Extended)

	// Consecutive day extends
	result, err = svc.CheckIn(ctx, "user-1", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, 2, result.CurrentStreak)
	assert.Equal(t, 2, result.LongestStreak)

	// A gap resets the streak and costs a life
	result, err = svc.CheckIn(ctx, "user-1", "2026-03-05")
	require.NoError(t, err)
	assert.Equal(t, 1, result.CurrentStreak)
	assert.True(t, result.WasReset)
	assert.Equal(t, domain.DefaultLives-1, result.Lives)
	assert.Equal(t, 2, result.LongestStreak)
}

func TestCheckIn_LivesFloorAtZero(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	state, err := repo.EnsureState(ctx, "user-1")
	require.NoError(t, err)
	state.Lives = 0
	state.LastCheckInDate = "2026-03-01"
	state.CurrentStreak = 4
	state.LongestStreak = 4
	require.NoError(t, repo.UpdateState(ctx, *state))

	result, err := svc.CheckIn(ctx, "user-1", "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Lives)
	assert.Equal(t, 1, result.CurrentStreak)
}

func TestCheckIn_InvalidDay(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CheckIn(context.Background(), "user-1", "not-a-day")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAchievements_UnlockOnThreshold(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.NoteMissionCompleted(ctx, "user-1"))

	state, err := svc.GetState(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, state.HasAchievement("first_mission"))
	assert.False(t, state.HasAchievement("streak_3"))
}

func TestAchievements_NeverRelock(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AwardXP(ctx, "user-1", 150, SourceMissionComplete)
	require.NoError(t, err)

	state, err := svc.GetState(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, state.HasAchievement("xp_100"))

	// Retraction drops XP below the threshold, the unlock stays
	_, err = svc.RetractXP(ctx, "user-1", 150, SourceStepUndo)
	require.NoError(t, err)

	state, err = svc.GetState(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, state.HasAchievement("xp_100"))
}

func TestRecordMood(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	checkIn, err := svc.RecordMood(ctx, "user-1", domain.MoodLow, "2026-03-01")
	require.NoError(t, err)
	assert.True(t, checkIn.Mood.IsLow())

	// Later check-in the same day overwrites
	_, err = svc.RecordMood(ctx, "user-1", domain.MoodGood, "2026-03-01")
	require.NoError(t, err)

	got, err := svc.MoodForDay(ctx, "user-1", "2026-03-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.MoodGood, got.Mood)

	// No mood recorded for another day
	got, err = svc.MoodForDay(ctx, "user-1", "2026-03-02")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRecordMood_InvalidMood(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.RecordMood(context.Background(), "user-1", "ecstatic", "2026-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
