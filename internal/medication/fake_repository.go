package medication

import (
	"context"
	"fmt"
	"sync"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
)

// fakeRepository is an in-memory MedicationRepository for tests.
type fakeRepository struct {
	mu    sync.Mutex
	meds  map[string]domain.Medication
	doses map[string]domain.MedicationDose // medID|day|ordinal
	slots map[string][]domain.DoseSlot     // medID|day
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		meds:  make(map[string]domain.Medication),
		doses: make(map[string]domain.MedicationDose),
		slots: make(map[string][]domain.DoseSlot),
	}
}

func doseMapKey(medicationID, day string, ordinal int) string {
	return fmt.Sprintf("%s|%s|%d", medicationID, day, ordinal)
}

func (f *fakeRepository) GetMedication(_ context.Context, medicationID string) (*domain.Medication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	med, ok := f.meds[medicationID]
	if !ok {
		return nil, domain.ErrMedicationNotFound
	}
	copied := med
	return &copied, nil
}

func (f *fakeRepository) GetMedicationsForUser(_ context.Context, userID string) ([]domain.Medication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Medication
	for _, med := range f.meds {
		if med.UserID == userID {
			out = append(out, med)
		}
	}
	return out, nil
}

func (f *fakeRepository) CreateMedication(_ context.Context, med domain.Medication) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.meds[med.ID] = med
	return nil
}

func (f *fakeRepository) UpdateMedication(_ context.Context, med domain.Medication) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.meds[med.ID]; !ok {
		return domain.ErrMedicationNotFound
	}
	f.meds[med.ID] = med
	return nil
}

func (f *fakeRepository) DeleteMedication(_ context.Context, medicationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.meds, medicationID)
	return nil
}

func (f *fakeRepository) GetDoseSlots(_ context.Context, medicationID, day string) ([]domain.DoseSlot, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	slots, ok := f.slots[medicationID+"|"+day]
	return slots, ok, nil
}

func (f *fakeRepository) SaveDoseSlots(_ context.Context, medicationID, day string, slots []domain.DoseSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.slots[medicationID+"|"+day] = slots
	return nil
}

func (f *fakeRepository) GetDose(_ context.Context, medicationID, day string, ordinal int) (*domain.MedicationDose, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	dose, ok := f.doses[doseMapKey(medicationID, day, ordinal)]
	if !ok {
		return nil, domain.ErrInstanceNotFound
	}
	copied := dose
	return &copied, nil
}

func (f *fakeRepository) GetDosesForDay(_ context.Context, userID, day string) ([]domain.MedicationDose, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.MedicationDose
	for _, dose := range f.doses {
		if dose.UserID == userID && dose.Day == day {
			out = append(out, dose)
		}
	}
	return out, nil
}

func (f *fakeRepository) GetDosesForRange(_ context.Context, userID, fromDay, toDay string) ([]domain.MedicationDose, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.MedicationDose
	for _, dose := range f.doses {
		if dose.UserID == userID && dose.Day >= fromDay && dose.Day <= toDay {
			out = append(out, dose)
		}
	}
	return out, nil
}

func (f *fakeRepository) UpsertDose(_ context.Context, dose domain.MedicationDose) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.doses[doseMapKey(dose.MedicationID, dose.Day, dose.Ordinal)] = dose
	return nil
}

// WithinTx snapshots the store and restores it when fn fails, mirroring the
// rollback behavior of the real repository.
func (f *fakeRepository) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	meds := make(map[string]domain.Medication, len(f.meds))
	for id, med := range f.meds {
		meds[id] = med
	}
	doses := make(map[string]domain.MedicationDose, len(f.doses))
	for key, dose := range f.doses {
		doses[key] = dose
	}
	slots := make(map[string][]domain.DoseSlot, len(f.slots))
	for key, set := range f.slots {
		slots[key] = set
	}
	f.mu.Unlock()

	if err := fn(ctx); err != nil {
		f.mu.Lock()
		f.meds = meds
		f.doses = doses
		f.slots = slots
		f.mu.Unlock()
		return err
	}
	return nil
}
