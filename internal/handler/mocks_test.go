package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/gamification"
	"github.com/Loretta-Health/Webapp-sub001/internal/medication"
	"github.com/Loretta-Health/Webapp-sub001/internal/mission"
	"github.com/Loretta-Health/Webapp-sub001/internal/progress"
)

// MockProgressService mocks the progress.Service facade
type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) Snapshot(ctx context.Context, userID string) (*progress.Snapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*progress.Snapshot), args.Error(1)
}

func (m *MockProgressService) ListMissions(ctx context.Context, userID string) ([]domain.MissionInstance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MissionInstance), args.Error(1)
}

func (m *MockProgressService) ActivateAlternative(ctx context.Context, userID, originalMissionID, alternativeKey string) (*domain.MissionInstance, error) {
	args := m.Called(ctx, userID, originalMissionID, alternativeKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MissionInstance), args.Error(1)
}

func (m *MockProgressService) LogMissionStep(ctx context.Context, userID, instanceID string) (*mission.StepResult, error) {
	args := m.Called(ctx, userID, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mission.StepResult), args.Error(1)
}

func (m *MockProgressService) UndoMissionStep(ctx context.Context, userID, instanceID string) (*mission.StepResult, error) {
	args := m.Called(ctx, userID, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mission.StepResult), args.Error(1)
}

func (m *MockProgressService) CompleteMission(ctx context.Context, userID, instanceID string) (*mission.StepResult, error) {
	args := m.Called(ctx, userID, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mission.StepResult), args.Error(1)
}

func (m *MockProgressService) DeactivateMission(ctx context.Context, userID, instanceID string) (*domain.MissionInstance, error) {
	args := m.Called(ctx, userID, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MissionInstance), args.Error(1)
}

func (m *MockProgressService) ListMedications(ctx context.Context, userID string) ([]domain.Medication, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Medication), args.Error(1)
}

func (m *MockProgressService) AddMedication(ctx context.Context, userID, name, dosage string, frequency domain.Frequency, scheduledTimes []string) (*domain.Medication, error) {
	args := m.Called(ctx, userID, name, dosage, frequency, scheduledTimes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Medication), args.Error(1)
}

func (m *MockProgressService) UpdateMedication(ctx context.Context, userID, medicationID, name, dosage string, frequency domain.Frequency, scheduledTimes []string) (*domain.Medication, error) {
	args := m.Called(ctx, userID, medicationID, name, dosage, frequency, scheduledTimes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Medication), args.Error(1)
}

func (m *MockProgressService) RemoveMedication(ctx context.Context, userID, medicationID string) error {
	args := m.Called(ctx, userID, medicationID)
	return args.Error(0)
}

func (m *MockProgressService) LogDose(ctx context.Context, userID, medicationID string, ordinal int) (*medication.DoseResult, error) {
	args := m.Called(ctx, userID, medicationID, ordinal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*medication.DoseResult), args.Error(1)
}

func (m *MockProgressService) LogMissedDose(ctx context.Context, userID, medicationID string, ordinal int) (*domain.MedicationDose, error) {
	args := m.Called(ctx, userID, medicationID, ordinal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MedicationDose), args.Error(1)
}

func (m *MockProgressService) Adherence(ctx context.Context, userID, medicationID string, windowDays int) (*domain.AdherenceRecord, error) {
	args := m.Called(ctx, userID, medicationID, windowDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdherenceRecord), args.Error(1)
}

func (m *MockProgressService) GetGamificationState(ctx context.Context, userID string) (*domain.GamificationState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GamificationState), args.Error(1)
}

func (m *MockProgressService) CheckIn(ctx context.Context, userID string) (*gamification.CheckInResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gamification.CheckInResult), args.Error(1)
}

func (m *MockProgressService) RecordMood(ctx context.Context, userID string, mood domain.Mood) (*domain.MoodCheckIn, error) {
	args := m.Called(ctx, userID, mood)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoodCheckIn), args.Error(1)
}

func (m *MockProgressService) XPHistory(ctx context.Context, userID string, limit int) ([]domain.XPDelta, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.XPDelta), args.Error(1)
}
