package progress

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/medication"
)

// Snapshot is the single aggregate read the dashboard needs: today's
// missions, today's medication slots with their outcomes, adherence, the
// gamification state and today's mood.
type Snapshot struct {
	UserID       string                    `json:"user_id"`
	Day          string                    `json:"day"`
	Missions     []domain.MissionInstance  `json:"missions"`
	Medications  []medication.DayView      `json:"medications"`
	Adherence    []domain.AdherenceRecord  `json:"adherence"`
	Gamification *domain.GamificationState `json:"gamification"`
	Mood         *domain.MoodCheckIn       `json:"mood,omitempty"`
	GeneratedAt  time.Time                 `json:"generated_at"`
}

// Snapshot assembles the aggregate under the user's lock. Aside from the
// lazy idempotent day rollover it mutates nothing. Fresh results are served
// from a short-lived cache keyed by user and day.
func (s *service) Snapshot(ctx context.Context, userID string) (*Snapshot, error) {
	today := s.clock.Today().String()

	if snap, ok := s.snapshots.Get(userID, today); ok {
		return snap, nil
	}

	lock := s.locks.GetLock(userID)
	lock.Lock()
	defer lock.Unlock()

	missions, err := s.missionSvc.MissionsForDay(ctx, userID, s.clock.Today())
	if err != nil {
		return nil, err
	}

	medViews, err := s.medSvc.DosesForDay(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	adherence, err := s.medSvc.AdherenceForUser(ctx, userID, today, medication.DefaultAdherenceWindowDays)
	if err != nil {
		return nil, err
	}

	state, err := s.gamSvc.GetState(ctx, userID)
	if err != nil {
		return nil, err
	}

	mood, err := s.gamSvc.MoodForDay(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		UserID:       userID,
		Day:          today,
		Missions:     missions,
		Medications:  medViews,
		Adherence:    adherence,
		Gamification: state,
		Mood:         mood,
		GeneratedAt:  time.Now(),
	}
	s.snapshots.Set(userID, today, snap)

	return snap, nil
}

// snapshotCache holds recently assembled snapshots. Entries are keyed by
// user and stamped with the day they describe, so a cached snapshot from
// yesterday is never served after midnight.
type snapshotCache struct {
	lru *expirable.LRU[string, *Snapshot]
}

func newSnapshotCache(size int, ttl time.Duration) *snapshotCache {
	return &snapshotCache{
		lru: expirable.NewLRU[string, *Snapshot](size, nil, ttl),
	}
}

func (c *snapshotCache) Get(userID, day string) (*Snapshot, bool) {
	snap, found := c.lru.Get(userID)
	if !found || snap.Day != day {
		return nil, false
	}
	return snap, true
}

func (c *snapshotCache) Set(userID, day string, snap *Snapshot) {
	c.lru.Add(userID, snap)
}

func (c *snapshotCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}
