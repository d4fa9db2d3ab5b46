package pgdb

import (
	"context"

	"github.com/Egor213/LogiSense/internal/domain"
	errorsUtils "github.com/Egor213/LogiSense/pkg/errors"
	"github.com/Egor213/LogiSense/pkg/postgres"
	sq "github.com/Masterminds/squirrel"
)

type AnalysisRunRepo struct {
	*postgres.Postgres
}

func NewAnalysisRunRepo(pg *postgres.Postgres) *AnalysisRunRepo {
	return &AnalysisRunRepo{pg}
}

func (r *AnalysisRunRepo) SaveRun(ctx context.Context, run *domain.AnalysisRun) (int, error) {
	sql, args, err := r.Builder.
		Insert("analysis_runs").
		Columns("records", "anomalies", "columns", "contamination", "duration_ms").
		Values(run.Records, run.Anomalies, []string(run.Columns), run.Contamination, run.DurationMs).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}

	err = r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).
		QueryRow(ctx, sql, args...).
		Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}
	return run.ID, nil
}

func (r *AnalysisRunRepo) GetRuns(ctx context.Context, filter domain.RunFilter) ([]domain.AnalysisRun, error) {
	conds, limit := BuildRunQueryFilters(filter)

	query := r.Builder.
		Select("id", "records", "anomalies", "columns", "contamination", "duration_ms", "created_at").
		From("analysis_runs").
		OrderBy("created_at DESC", "id DESC").
		Limit(limit)

	if len(conds) > 0 {
		query = query.Where(sq.And(conds))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	runs := []domain.AnalysisRun{}
	for rows.Next() {
		var (
			run     domain.AnalysisRun
			columns []string
		)
		err := rows.Scan(&run.ID, &run.Records, &run.Anomalies, &columns,
			&run.Contamination, &run.DurationMs, &run.CreatedAt)
		if err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
		run.Columns = columns
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return runs, nil
}
