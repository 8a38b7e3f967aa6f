// Package progress is the facade the transport layer talks to. It owns the
// per-user aggregate: every mutating operation acquires the user's named
// lock before the read-modify-write, so concurrent mission and dose logs
// for one user cannot interleave and lose an update.
package progress

import (
	"context"

	"github.com/Loretta-Health/Webapp-sub001/internal/calendar"
	"github.com/Loretta-Health/Webapp-sub001/internal/concurrency"
	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/gamification"
	"github.com/Loretta-Health/Webapp-sub001/internal/medication"
	"github.com/Loretta-Health/Webapp-sub001/internal/mission"
)

// Service exposes the logical operations of the progress engine.
type Service interface {
	Snapshot(ctx context.Context, userID string) (*Snapshot, error)

	ListMissions(ctx context.Context, userID string) ([]domain.MissionInstance, error)
	ActivateAlternative(ctx context.Context, userID, originalMissionID, alternativeKey string) (*domain.MissionInstance, error)
	LogMissionStep(ctx context.Context, userID, instanceID string) (*mission.StepResult, error)
	UndoMissionStep(ctx context.Context, userID, instanceID string) (*mission.StepResult, error)
	CompleteMission(ctx context.Context, userID, instanceID string) (*mission.StepResult, error)
	DeactivateMission(ctx context.Context, userID, instanceID string) (*domain.MissionInstance, error)

	ListMedications(ctx context.Context, userID string) ([]domain.Medication, error)
	AddMedication(ctx context.Context, userID, name, dosage string, frequency domain.Frequency, scheduledTimes []string) (*domain.Medication, error)
	UpdateMedication(ctx context.Context, userID, medicationID, name, dosage string, frequency domain.Frequency, scheduledTimes []string) (*domain.Medication, error)
	RemoveMedication(ctx context.Context, userID, medicationID string) error
	LogDose(ctx context.Context, userID, medicationID string, ordinal int) (*medication.DoseResult, error)
	LogMissedDose(ctx context.Context, userID, medicationID string, ordinal int) (*domain.MedicationDose, error)
	Adherence(ctx context.Context, userID, medicationID string, windowDays int) (*domain.AdherenceRecord, error)

	GetGamificationState(ctx context.Context, userID string) (*domain.GamificationState, error)
	CheckIn(ctx context.Context, userID string) (*gamification.CheckInResult, error)
	RecordMood(ctx context.Context, userID string, mood domain.Mood) (*domain.MoodCheckIn, error)
	XPHistory(ctx context.Context, userID string, limit int) ([]domain.XPDelta, error)
}

type service struct {
	missionSvc mission.Service
	medSvc     medication.Service
	gamSvc     gamification.Service
	clock      calendar.Clock
	locks      *concurrency.LockManager
	snapshots  *snapshotCache
}

// NewService creates the progress facade
func NewService(missionSvc mission.Service, medSvc medication.Service, gamSvc gamification.Service, clock calendar.Clock) Service {
	return &service{
		missionSvc: missionSvc,
		medSvc:     medSvc,
		gamSvc:     gamSvc,
		clock:      clock,
		locks:      concurrency.NewLockManager(),
		snapshots:  newSnapshotCache(SnapshotCacheSize, SnapshotCacheTTL),
	}
}

// withUserLock serializes the callback against every other mutation for the
// same user and drops the user's cached snapshot afterwards.
func (s *service) withUserLock(userID string, fn func() error) error {
	lock := s.locks.GetLock(userID)
	lock.Lock()
	defer lock.Unlock()

	err := fn()
	s.snapshots.Invalidate(userID)
	return err
}

// ListMissions returns today's mission instances, rolling the day over
// lazily if this is the first access today.
func (s *service) ListMissions(ctx context.Context, userID string) ([]domain.MissionInstance, error) {
	var instances []domain.MissionInstance
	err := s.withUserLock(userID, func() error {
		var err error
		instances, err = s.missionSvc.MissionsForDay(ctx, userID, s.clock.Today())
		return err
	})
	return instances, err
}

func (s *service) ActivateAlternative(ctx context.Context, userID, originalMissionID, alternativeKey string) (*domain.MissionInstance, error) {
	var instance *domain.MissionInstance
	err := s.withUserLock(userID, func() error {
		var err error
		instance, err = s.missionSvc.ActivateAlternative(ctx, userID, s.clock.Today(), originalMissionID, alternativeKey)
		return err
	})
	return instance, err
}

func (s *service) LogMissionStep(ctx context.Context, userID, instanceID string) (*mission.StepResult, error) {
	var result *mission.StepResult
	err := s.withUserLock(userID, func() error {
		var err error
		result, err = s.missionSvc.LogStep(ctx, userID, instanceID)
		return err
	})
	return result, err
}

func (s *service) UndoMissionStep(ctx context.Context, userID, instanceID string) (*mission.StepResult, error) {
	var result *mission.StepResult
	err := s.withUserLock(userID, func() error {
		var err error
		result, err = s.missionSvc.UndoStep(ctx, userID, instanceID)
		return err
	})
	return result, err
}

func (s *service) CompleteMission(ctx context.Context, userID, instanceID string) (*mission.StepResult, error) {
	var result *mission.StepResult
	err := s.withUserLock(userID, func() error {
		var err error
		result, err = s.missionSvc.Complete(ctx, userID, instanceID)
		return err
	})
	return result, err
}

func (s *service) DeactivateMission(ctx context.Context, userID, instanceID string) (*domain.MissionInstance, error) {
	var instance *domain.MissionInstance
	err := s.withUserLock(userID, func() error {
		var err error
		instance, err = s.missionSvc.Deactivate(ctx, userID, instanceID)
		return err
	})
	return instance, err
}

// ListMedications is read-only; no lock needed.
func (s *service) ListMedications(ctx context.Context, userID string) ([]domain.Medication, error) {
	return s.medSvc.GetMedications(ctx, userID)
}

func (s *service) AddMedication(ctx context.Context, userID, name, dosage string, frequency domain.Frequency, scheduledTimes []string) (*domain.Medication, error) {
	var med *domain.Medication
	err := s.withUserLock(userID, func() error {
		var err error
		med, err = s.medSvc.CreateMedication(ctx, userID, name, dosage, frequency, scheduledTimes)
		return err
	})
	return med, err
}

func (s *service) UpdateMedication(ctx context.Context, userID, medicationID, name, dosage string, frequency domain.Frequency, scheduledTimes []string) (*domain.Medication, error) {
	var med *domain.Medication
	err := s.withUserLock(userID, func() error {
		var err error
		med, err = s.medSvc.UpdateMedication(ctx, userID, medicationID, name, dosage, frequency, scheduledTimes)
		return err
	})
	return med, err
}

func (s *service) RemoveMedication(ctx context.Context, userID, medicationID string) error {
	return s.withUserLock(userID, func() error {
		return s.medSvc.DeleteMedication(ctx, userID, medicationID)
	})
}

func (s *service) LogDose(ctx context.Context, userID, medicationID string, ordinal int) (*medication.DoseResult, error) {
	var result *medication.DoseResult
	err := s.withUserLock(userID, func() error {
		var err error
		result, err = s.medSvc.LogDose(ctx, userID, medicationID, s.clock.Today().String(), ordinal)
		return err
	})
	return result, err
}

func (s *service) LogMissedDose(ctx context.Context, userID, medicationID string, ordinal int) (*domain.MedicationDose, error) {
	var dose *domain.MedicationDose
	err := s.withUserLock(userID, func() error {
		var err error
		dose, err = s.medSvc.LogMissedDose(ctx, userID, medicationID, s.clock.Today().String(), ordinal)
		return err
	})
	return dose, err
}

func (s *service) Adherence(ctx context.Context, userID, medicationID string, windowDays int) (*domain.AdherenceRecord, error) {
	return s.medSvc.Adherence(ctx, userID, medicationID, s.clock.Today().String(), windowDays)
}

func (s *service) GetGamificationState(ctx context.Context, userID string) (*domain.GamificationState, error) {
	return s.gamSvc.GetState(ctx, userID)
}

func (s *service) CheckIn(ctx context.Context, userID string) (*gamification.CheckInResult, error) {
	var result *gamification.CheckInResult
	err := s.withUserLock(userID, func() error {
		var err error
		result, err = s.gamSvc.CheckIn(ctx, userID, s.clock.Today().String())
		return err
	})
	return result, err
}

// RecordMood stores today's mood and counts it as daily activity for the
// streak.
func (s *service) RecordMood(ctx context.Context, userID string, mood domain.Mood) (*domain.MoodCheckIn, error) {
	var checkIn *domain.MoodCheckIn
	err := s.withUserLock(userID, func() error {
		today := s.clock.Today().String()
		var err error
		checkIn, err = s.gamSvc.RecordMood(ctx, userID, mood, today)
		if err != nil {
			return err
		}
		_, err = s.gamSvc.CheckIn(ctx, userID, today)
		return err
	})
	return checkIn, err
}

func (s *service) XPHistory(ctx context.Context, userID string, limit int) ([]domain.XPDelta, error) {
	return s.gamSvc.XPHistory(ctx, userID, limit)
}
