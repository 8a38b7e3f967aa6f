package progress

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
)

// In-memory repositories backing the real services under the facade.

type memMissionRepo struct {
	mu        sync.Mutex
	instances map[string]domain.MissionInstance
	order     []string
}

func newMemMissionRepo() *memMissionRepo {
	return &memMissionRepo{instances: make(map[string]domain.MissionInstance)}
}

func (r *memMissionRepo) GetInstance(_ context.Context, instanceID string) (*domain.MissionInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	instance, ok := r.instances[instanceID]
	if !ok {
		return nil, domain.ErrInstanceNotFound
	}
	copied := instance
	return &copied, nil
}

func (r *memMissionRepo) GetInstancesForDay(_ context.Context, userID, day string) ([]domain.MissionInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.MissionInstance
	for _, id := range r.order {
		instance := r.instances[id]
		if instance.UserID == userID && instance.Day == day {
			out = append(out, instance)
		}
	}
	return out, nil
}

func (r *memMissionRepo) CreateInstance(_ context.Context, instance domain.MissionInstance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances[instance.ID] = instance
	r.order = append(r.order, instance.ID)
	return nil
}

func (r *memMissionRepo) UpdateInstance(_ context.Context, instance domain.MissionInstance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.instances[instance.ID]; !ok {
		return domain.ErrInstanceNotFound
	}
	r.instances[instance.ID] = instance
	return nil
}

func (r *memMissionRepo) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memMedicationRepo struct {
	mu    sync.Mutex
	meds  map[string]domain.Medication
	doses map[string]domain.MedicationDose
	slots map[string][]domain.DoseSlot
}

func newMemMedicationRepo() *memMedicationRepo {
	return &memMedicationRepo{
		meds:  make(map[string]domain.Medication),
		doses: make(map[string]domain.MedicationDose),
		slots: make(map[string][]domain.DoseSlot),
	}
}

func (r *memMedicationRepo) GetMedication(_ context.Context, medicationID string) (*domain.Medication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	med, ok := r.meds[medicationID]
	if !ok {
		return nil, domain.ErrMedicationNotFound
	}
	copied := med
	return &copied, nil
}

func (r *memMedicationRepo) GetMedicationsForUser(_ context.Context, userID string) ([]domain.Medication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Medication
	for _, med := range r.meds {
		if med.UserID == userID {
			out = append(out, med)
		}
	}
	return out, nil
}

func (r *memMedicationRepo) CreateMedication(_ context.Context, med domain.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meds[med.ID] = med
	return nil
}

func (r *memMedicationRepo) UpdateMedication(_ context.Context, med domain.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meds[med.ID] = med
	return nil
}

func (r *memMedicationRepo) DeleteMedication(_ context.Context, medicationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.meds, medicationID)
	return nil
}

func (r *memMedicationRepo) GetDoseSlots(_ context.Context, medicationID, day string) ([]domain.DoseSlot, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slots, ok := r.slots[medicationID+"|"+day]
	return slots, ok, nil
}

func (r *memMedicationRepo) SaveDoseSlots(_ context.Context, medicationID, day string, slots []domain.DoseSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[medicationID+"|"+day] = slots
	return nil
}

func (r *memMedicationRepo) GetDose(_ context.Context, medicationID, day string, ordinal int) (*domain.MedicationDose, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dose, ok := r.doses[fmt.Sprintf("%s|%s|%d", medicationID, day, ordinal)]
	if !ok {
		return nil, domain.ErrInstanceNotFound
	}
	copied := dose
	return &copied, nil
}

func (r *memMedicationRepo) GetDosesForDay(_ context.Context, userID, day string) ([]domain.MedicationDose, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.MedicationDose
	for _, dose := range r.doses {
		if dose.UserID == userID && dose.Day == day {
			out = append(out, dose)
		}
	}
	return out, nil
}

func (r *memMedicationRepo) GetDosesForRange(_ context.Context, userID, fromDay, toDay string) ([]domain.MedicationDose, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.MedicationDose
	for _, dose := range r.doses {
		if dose.UserID == userID && dose.Day >= fromDay && dose.Day <= toDay {
			out = append(out, dose)
		}
	}
	return out, nil
}

func (r *memMedicationRepo) UpsertDose(_ context.Context, dose domain.MedicationDose) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doses[fmt.Sprintf("%s|%s|%d", dose.MedicationID, dose.Day, dose.Ordinal)] = dose
	return nil
}

func (r *memMedicationRepo) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memGamificationRepo struct {
	mu     sync.Mutex
	states map[string]domain.GamificationState
	deltas []domain.XPDelta
	moods  map[string]domain.MoodCheckIn
}

func newMemGamificationRepo() *memGamificationRepo {
	return &memGamificationRepo{
		states: make(map[string]domain.GamificationState),
		moods:  make(map[string]domain.MoodCheckIn),
	}
}

func (r *memGamificationRepo) GetState(_ context.Context, userID string) (*domain.GamificationState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := state
	return &copied, nil
}

func (r *memGamificationRepo) EnsureState(_ context.Context, userID string) (*domain.GamificationState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[userID]
	if !ok {
		state = domain.GamificationState{UserID: userID, Level: 1, Lives: domain.DefaultLives}
		r.states[userID] = state
	}
	copied := state
	return &copied, nil
}

func (r *memGamificationRepo) UpdateState(_ context.Context, state domain.GamificationState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[state.UserID] = state
	return nil
}

func (r *memGamificationRepo) AppendXPDelta(_ context.Context, delta domain.XPDelta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deltas = append(r.deltas, delta)
	return nil
}

func (r *memGamificationRepo) GetXPDeltas(_ context.Context, userID string, limit int) ([]domain.XPDelta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.XPDelta
	for _, d := range r.deltas {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memGamificationRepo) UnlockAchievement(_ context.Context, userID, achievementID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.states[userID]
	state.Achievements = append(state.Achievements, domain.UnlockedAchievement{
		AchievementID: achievementID,
		UnlockedAt:    time.Now(),
	})
	r.states[userID] = state
	return nil
}

func (r *memGamificationRepo) RecordMood(_ context.Context, checkIn domain.MoodCheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moods[checkIn.UserID+"|"+checkIn.Day] = checkIn
	return nil
}

func (r *memGamificationRepo) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (r *memGamificationRepo) GetMoodForDay(_ context.Context, userID, day string) (*domain.MoodCheckIn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	checkIn, ok := r.moods[userID+"|"+day]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := checkIn
	return &copied, nil
}
