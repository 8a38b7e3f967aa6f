package mission

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Loretta-Health/Webapp-sub001/internal/calendar"
	"github.com/Loretta-Health/Webapp-sub001/internal/catalog"
	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/gamification"
)

// stubGamification records the XP movements and check-ins the mission
// service triggers, and serves a settable mood.
type stubGamification struct {
	awarded     int
	retracted   int
	completions int
	checkInDays []string
	mood        *domain.MoodCheckIn

	awardErr error
}

func (s *stubGamification) GetState(context.Context, string) (*domain.GamificationState, error) {
	return &domain.GamificationState{}, nil
}

func (s *stubGamification) AwardXP(_ context.Context, _ string, amount int, _ string) (*gamification.XPResult, error) {
	if s.awardErr != nil {
		return nil, s.awardErr
	}
	s.awarded += amount
	return &gamification.XPResult{XPApplied: amount}, nil
}

func (s *stubGamification) RetractXP(_ context.Context, _ string, amount int, _ string) (*gamification.XPResult, error) {
	s.retracted += amount
	return &gamification.XPResult{XPApplied: -amount}, nil
}

func (s *stubGamification) CheckIn(_ context.Context, _ string, day string) (*gamification.CheckInResult, error) {
	s.checkInDays = append(s.checkInDays, day)
	return &gamification.CheckInResult{}, nil
}

func (s *stubGamification) NoteMissionCompleted(context.Context, string) error {
	s.completions++
	return nil
}

func (s *stubGamification) NoteDoseTaken(context.Context, string) error { return nil }

func (s *stubGamification) RecordMood(context.Context, string, domain.Mood, string) (*domain.MoodCheckIn, error) {
	return nil, nil
}

func (s *stubGamification) MoodForDay(context.Context, string, string) (*domain.MoodCheckIn, error) {
	return s.mood, nil
}

func (s *stubGamification) XPHistory(context.Context, string, int) ([]domain.XPDelta, error) {
	return nil, nil
}

func testCatalog() *catalog.Catalog {
	return catalog.New(
		[]domain.MissionDefinition{
			{ID: "workout", Title: "Workout", Category: "movement", Frequency: domain.MissionFrequencyDaily, XPReward: 50, TotalSteps: 5},
			{ID: "walk", Title: "Walk", Category: "movement", Frequency: domain.MissionFrequencyDaily, XPReward: 30},
		},
		[]domain.AlternativeDefinition{
			{Key: "stretch", ReplacesID: "workout", Title: "Stretch", TotalSteps: 3, XPReward: 10, StepLabel: "stretch", MoodGateRequired: true},
			{Key: "easy_walk", ReplacesID: "walk", Title: "Easy walk", TotalSteps: 2, XPReward: 5, StepLabel: "lap"},
		},
		nil,
	)
}

var testDay = calendar.MustParseDay("2026-03-02")

func newTestService() (Service, *fakeRepository, *stubGamification) {
	repo := newFakeRepository()
	gam := &stubGamification{}
	return NewService(repo, testCatalog(), gam, nil), repo, gam
}

func instanceFor(t *testing.T, svc Service, userID, missionID string) domain.MissionInstance {
	t.Helper()
	instances, err := svc.MissionsForDay(context.Background(), userID, testDay)
	require.NoError(t, err)
	for _, inst := range instances {
		if inst.MissionID == missionID && inst.State != domain.MissionStateReplaced {
			return inst
		}
	}
	t.Fatalf("no instance for mission %s", missionID)
	return domain.MissionInstance{}
}

func TestMissionsForDay_IdempotentRollover(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.MissionsForDay(ctx, "user-1", testDay)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, domain.MissionStateActive, first[0].State)
	assert.Equal(t, 0, first[0].Progress)

	// Re-invocation for the same day returns the same instances
	second, err := svc.MissionsForDay(ctx, "user-1", testDay)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, first[0].ID, second[0].ID)

	// A new day materializes a fresh set
	next, err := svc.MissionsForDay(ctx, "user-1", testDay.Next())
	require.NoError(t, err)
	require.Len(t, next, 2)
	assert.NotEqual(t, first[0].ID, next[0].ID)
}

func TestLogStep_FiveStepsAwardOnce(t *testing.T) {
	svc, _, gam := newTestService()
	ctx := context.Background()
	inst := instanceFor(t, svc, "user-1", "workout")

	for i := 1; i <= 5; i++ {
		result, err := svc.LogStep(ctx, "user-1", inst.ID)
		require.NoError(t, err)
		assert.Equal(t, i, result.Instance.Progress)
		assert.Equal(t, i == 5, result.Completed)
	}
	assert.Equal(t, 50, gam.awarded)
	assert.Equal(t, 1, gam.completions)
	assert.Equal(t, []string{testDay.String()}, gam.checkInDays)

	// Sixth step is a no-op, no double award
	result, err := svc.LogStep(ctx, "user-1", inst.ID)
	require.NoError(t, err)
	assert.True(t, result.NoOp)
	assert.Equal(t, 50, gam.awarded)
	assert.Equal(t, 1, gam.completions)
}

func TestLogStep_FailedAwardLeavesStepLoggable(t *testing.T) {
	svc, repo, gam := newTestService()
	ctx := context.Background()
	inst := instanceFor(t, svc, "user-1", "workout")

	for i := 0; i < 4; i++ {
		_, err := svc.LogStep(ctx, "user-1", inst.ID)
		require.NoError(t, err)
	}

	// The completing step's XP award fails: the progress write must roll
	// back with it, or the retry would hit the completed no-op path and the
	// reward would be lost for good.
	gam.awardErr = errors.New("ledger unavailable")
	_, err := svc.LogStep(ctx, "user-1", inst.ID)
	require.Error(t, err)

	current, err := repo.GetInstance(ctx, inst.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MissionStateActive, current.State)
	assert.Equal(t, 4, current.Progress)
	assert.Equal(t, 0, gam.awarded)

	// Retry succeeds and pays the full reward
	gam.awardErr = nil
	result, err := svc.LogStep(ctx, "user-1", inst.ID)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.False(t, result.NoOp)
	assert.Equal(t, 50, result.XPApplied)
	assert.Equal(t, 50, gam.awarded)
	assert.Equal(t, 1, gam.completions)
}

func TestComplete_FailedAwardLeavesMissionActive(t *testing.T) {
	svc, repo, gam := newTestService()
	ctx := context.Background()
	inst := instanceFor(t, svc, "user-1", "walk")

	gam.awardErr = errors.New("ledger unavailable")
	_, err := svc.Complete(ctx, "user-1", inst.ID)
	require.Error(t, err)

	current, err := repo.GetInstance(ctx, inst.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MissionStateActive, current.State)
	assert.Equal(t, 0, gam.awarded)

	gam.awardErr = nil
	result, err := svc.Complete(ctx, "user-1", inst.ID)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, 30, gam.awarded)
}

func TestUndoStep_RestoresPriorState(t *testing.T) {
	svc, _, gam := newTestService()
	ctx := context.Background()
	inst := instanceFor(t, svc, "user-1", "workout")

	// Undo at zero progress is a no-op
	result, err := svc.UndoStep(ctx, "user-1", inst.ID)
	require.NoError(t, err)
	assert.True(t, result.NoOp)

	_, err = svc.LogStep(ctx, "user-1", inst.ID)
	require.NoError(t, err)
	result, err = svc.UndoStep(ctx, "user-1", inst.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Instance.Progress)
	assert.Equal(t, domain.MissionStateActive, result.Instance.State)
	assert.Equal(t, 0, gam.retracted) // no XP was awarded yet

	// Complete, then undo the completing step: reopens and retracts once
	for i := 0; i < 5; i++ {
		_, err = svc.LogStep(ctx, "user-1", inst.ID)
		require.NoError(t, err)
	}
	result, err = svc.UndoStep(ctx, "user-1", inst.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Instance.Progress)
	assert.Equal(t, domain.MissionStateActive, result.Instance.State)
	assert.Nil(t, result.Instance.CompletedAt)
	assert.Equal(t, 50, gam.retracted)
}

func TestComplete_OnceMission(t *testing.T) {
	svc, _, gam := newTestService()
	ctx := context.Background()
	inst := instanceFor(t, svc, "user-1", "walk")

	result, err := svc.Complete(ctx, "user-1", inst.ID)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, 30, gam.awarded)

	// Re-completing is a no-op success
	result, err = svc.Complete(ctx, "user-1", inst.ID)
	require.NoError(t, err)
	assert.True(t, result.NoOp)
	assert.Equal(t, 30, gam.awarded)
}

func TestComplete_StepBasedRejected(t *testing.T) {
	svc, _, _ := newTestService()
	inst := instanceFor(t, svc, "user-1", "workout")

	_, err := svc.Complete(context.Background(), "user-1", inst.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestActivateAlternative_MoodGate(t *testing.T) {
	svc, _, gam := newTestService()
	ctx := context.Background()

	// No mood recorded today: gate fails
	_, err := svc.ActivateAlternative(ctx, "user-1", testDay, "workout", "stretch")
	assert.ErrorIs(t, err, domain.ErrLowMoodRequired)

	// A good mood fails the gate too
	gam.mood = &domain.MoodCheckIn{Mood: domain.MoodGood}
	_, err = svc.ActivateAlternative(ctx, "user-1", testDay, "workout", "stretch")
	assert.ErrorIs(t, err, domain.ErrLowMoodRequired)

	// Low mood passes
	gam.mood = &domain.MoodCheckIn{Mood: domain.MoodLow}
	alt, err := svc.ActivateAlternative(ctx, "user-1", testDay, "workout", "stretch")
	require.NoError(t, err)
	assert.Equal(t, domain.MissionKindAlternative, alt.Kind)
	assert.Equal(t, "workout", alt.SlotID)
	assert.Equal(t, 3, alt.MaxProgress)

	// The original is REPLACED for the rest of the day
	instances, err := svc.MissionsForDay(ctx, "user-1", testDay)
	require.NoError(t, err)
	for _, inst := range instances {
		if inst.MissionID == "workout" {
			assert.Equal(t, domain.MissionStateReplaced, inst.State)
		}
	}
}

func TestActivateAlternative_NoGateWithoutRequirement(t *testing.T) {
	svc, _, _ := newTestService()

	// easy_walk has no mood gate; activation works with no mood recorded
	alt, err := svc.ActivateAlternative(context.Background(), "user-1", testDay, "walk", "easy_walk")
	require.NoError(t, err)
	assert.Equal(t, "easy_walk", alt.MissionID)
}

func TestActivateAlternative_Idempotent(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.ActivateAlternative(ctx, "user-1", testDay, "walk", "easy_walk")
	require.NoError(t, err)

	second, err := svc.ActivateAlternative(ctx, "user-1", testDay, "walk", "easy_walk")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestActivateAlternative_Mismatch(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ActivateAlternative(context.Background(), "user-1", testDay, "workout", "easy_walk")
	assert.ErrorIs(t, err, domain.ErrAlternativeMismatch)
}

func TestActivateAlternative_CompletedSlotRejected(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	inst := instanceFor(t, svc, "user-1", "walk")

	_, err := svc.Complete(ctx, "user-1", inst.ID)
	require.NoError(t, err)

	_, err = svc.ActivateAlternative(ctx, "user-1", testDay, "walk", "easy_walk")
	assert.ErrorIs(t, err, domain.ErrAlreadyCompleted)
}

func TestAlternative_PerStepXP(t *testing.T) {
	svc, _, gam := newTestService()
	ctx := context.Background()

	alt, err := svc.ActivateAlternative(ctx, "user-1", testDay, "walk", "easy_walk")
	require.NoError(t, err)

	// Each step pays the alternative's reward
	result, err := svc.LogStep(ctx, "user-1", alt.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, result.XPApplied)
	assert.Equal(t, 5, gam.awarded)

	result, err = svc.LogStep(ctx, "user-1", alt.ID)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, 10, gam.awarded)

	// Undo retracts per step
	_, err = svc.UndoStep(ctx, "user-1", alt.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, gam.retracted)
}

func TestDeactivate_PreservesOriginalProgress(t *testing.T) {
	svc, _, gam := newTestService()
	ctx := context.Background()
	inst := instanceFor(t, svc, "user-1", "workout")

	// Two steps of progress before substitution
	_, err := svc.LogStep(ctx, "user-1", inst.ID)
	require.NoError(t, err)
	_, err = svc.LogStep(ctx, "user-1", inst.ID)
	require.NoError(t, err)

	gam.mood = &domain.MoodCheckIn{Mood: domain.MoodTerrible}
	alt, err := svc.ActivateAlternative(ctx, "user-1", testDay, "workout", "stretch")
	require.NoError(t, err)

	original, err := svc.Deactivate(ctx, "user-1", alt.ID)
	require.NoError(t, err)
	assert.Equal(t, inst.ID, original.ID)
	assert.Equal(t, domain.MissionStateActive, original.State)
	assert.Equal(t, 2, original.Progress)
}

func TestDeactivate_StandardRejected(t *testing.T) {
	svc, _, _ := newTestService()
	inst := instanceFor(t, svc, "user-1", "workout")

	_, err := svc.Deactivate(context.Background(), "user-1", inst.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestLogStep_ReplacedRejected(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	inst := instanceFor(t, svc, "user-1", "walk")

	_, err := svc.ActivateAlternative(ctx, "user-1", testDay, "walk", "easy_walk")
	require.NoError(t, err)

	_, err = svc.LogStep(ctx, "user-1", inst.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestForeignInstanceHidden(t *testing.T) {
	svc, _, _ := newTestService()
	inst := instanceFor(t, svc, "user-1", "walk")

	_, err := svc.LogStep(context.Background(), "user-2", inst.ID)
	assert.ErrorIs(t, err, domain.ErrInstanceNotFound)
}
