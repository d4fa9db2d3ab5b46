package repo

import (
	"context"

	"github.com/Egor213/LogiSense/internal/domain"
	"github.com/Egor213/LogiSense/internal/repo/pgdb"
	"github.com/Egor213/LogiSense/pkg/postgres"
)

type AnalysisRun interface {
	SaveRun(ctx context.Context, run *domain.AnalysisRun) (int, error)
	GetRuns(ctx context.Context, filter domain.RunFilter) ([]domain.AnalysisRun, error)
}

type Repositories struct {
	AnalysisRun
}

// NewRepositories returns nil when no database is configured.
func NewRepositories(pg *postgres.Postgres) *Repositories {
	if pg == nil {
		return nil
	}
	return &Repositories{
		AnalysisRun: pgdb.NewAnalysisRunRepo(pg),
	}
}
