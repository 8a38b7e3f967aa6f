package gamification

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
)

var errAppendFailed = errors.New("append failed")

// fakeRepository is an in-memory GamificationRepository for tests.
type fakeRepository struct {
	mu     sync.Mutex
	states map[string]domain.GamificationState
	deltas []domain.XPDelta
	moods  map[string]domain.MoodCheckIn // userID|day

	failAppend bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		states: make(map[string]domain.GamificationState),
		moods:  make(map[string]domain.MoodCheckIn),
	}
}

func (f *fakeRepository) GetState(_ context.Context, userID string) (*domain.GamificationState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, ok := f.states[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := state
	return &copied, nil
}

func (f *fakeRepository) EnsureState(_ context.Context, userID string) (*domain.GamificationState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, ok := f.states[userID]
	if !ok {
		state = domain.GamificationState{
			UserID: userID,
			Level:  BaseLevel,
			Lives:  domain.DefaultLives,
		}
		f.states[userID] = state
	}
	copied := state
	return &copied, nil
}

func (f *fakeRepository) UpdateState(_ context.Context, state domain.GamificationState) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.states[state.UserID] = state
	return nil
}

func (f *fakeRepository) AppendXPDelta(_ context.Context, delta domain.XPDelta) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failAppend {
		return errAppendFailed
	}
	f.deltas = append(f.deltas, delta)
	return nil
}

func (f *fakeRepository) GetXPDeltas(_ context.Context, userID string, limit int) ([]domain.XPDelta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.XPDelta
	for _, d := range f.deltas {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepository) UnlockAchievement(_ context.Context, userID, achievementID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	state := f.states[userID]
	state.Achievements = append(state.Achievements, domain.UnlockedAchievement{
		AchievementID: achievementID,
		UnlockedAt:    time.Now(),
	})
	f.states[userID] = state
	return nil
}

func (f *fakeRepository) RecordMood(_ context.Context, checkIn domain.MoodCheckIn) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.moods[checkIn.UserID+"|"+checkIn.Day] = checkIn
	return nil
}

// WithinTx snapshots the store and restores it when fn fails, mirroring the
// rollback behavior of the real repository.
func (f *fakeRepository) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	states := make(map[string]domain.GamificationState, len(f.states))
	for id, state := range f.states {
		states[id] = state
	}
	deltas := append([]domain.XPDelta(nil), f.deltas...)
	moods := make(map[string]domain.MoodCheckIn, len(f.moods))
	for key, mood := range f.moods {
		moods[key] = mood
	}
	f.mu.Unlock()

	if err := fn(ctx); err != nil {
		f.mu.Lock()
		f.states = states
		f.deltas = deltas
		f.moods = moods
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *fakeRepository) GetMoodForDay(_ context.Context, userID, day string) (*domain.MoodCheckIn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	checkIn, ok := f.moods[userID+"|"+day]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := checkIn
	return &copied, nil
}
