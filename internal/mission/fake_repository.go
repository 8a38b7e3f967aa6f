package mission

import (
	"context"
	"sync"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
)

// fakeRepository is an in-memory MissionRepository for tests.
type fakeRepository struct {
	mu        sync.Mutex
	instances map[string]domain.MissionInstance
	order     []string // creation order, for stable listings
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		instances: make(map[string]domain.MissionInstance),
	}
}

func (f *fakeRepository) GetInstance(_ context.Context, instanceID string) (*domain.MissionInstance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	instance, ok := f.instances[instanceID]
	if !ok {
		return nil, domain.ErrInstanceNotFound
	}
	copied := instance
	return &copied, nil
}

func (f *fakeRepository) GetInstancesForDay(_ context.Context, userID, day string) ([]domain.MissionInstance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.MissionInstance
	for _, id := range f.order {
		instance := f.instances[id]
		if instance.UserID == userID && instance.Day == day {
			out = append(out, instance)
		}
	}
	return out, nil
}

func (f *fakeRepository) CreateInstance(_ context.Context, instance domain.MissionInstance) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.instances[instance.ID] = instance
	f.order = append(f.order, instance.ID)
	return nil
}

func (f *fakeRepository) UpdateInstance(_ context.Context, instance domain.MissionInstance) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.instances[instance.ID]; !ok {
		return domain.ErrInstanceNotFound
	}
	f.instances[instance.ID] = instance
	return nil
}

// WithinTx snapshots the store and restores it when fn fails, mirroring the
// rollback behavior of the real repository.
func (f *fakeRepository) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	instances := make(map[string]domain.MissionInstance, len(f.instances))
	for id, instance := range f.instances {
		instances[id] = instance
	}
	order := append([]string(nil), f.order...)
	f.mu.Unlock()

	if err := fn(ctx); err != nil {
		f.mu.Lock()
		f.instances = instances
		f.order = order
		f.mu.Unlock()
		return err
	}
	return nil
}
