package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Loretta-Health/Webapp-sub001/internal/database/postgres"
	"github.com/Loretta-Health/Webapp-sub001/internal/eventlog"
	"github.com/Loretta-Health/Webapp-sub001/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Mission      repository.MissionRepository
	Medication   repository.MedicationRepository
	Gamification repository.GamificationRepository
	EventLog     eventlog.Repository
}

// InitializeRepositories creates all repository implementations. Every
// repository only needs the database pool.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Mission:      postgres.NewMissionRepository(dbPool),
		Medication:   postgres.NewMedicationRepository(dbPool),
		Gamification: postgres.NewGamificationRepository(dbPool),
		EventLog:     postgres.NewEventLogRepository(dbPool),
	}
}
