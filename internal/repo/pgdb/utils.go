package pgdb

import (
	"time"

	"github.com/Egor213/LogiSense/internal/domain"
	sq "github.com/Masterminds/squirrel"
)

const (
	defaultRunsLimit = 100
	maxRunsLimit     = 1000
)

func BuildRunQueryFilters(filter domain.RunFilter) ([]sq.Sqlizer, uint64) {
	conds := []sq.Sqlizer{}

	if !filter.From.IsZero() && !filter.From.Equal(time.Unix(0, 0)) {
		conds = append(conds, sq.GtOrEq{"created_at": filter.From})
	}
	if !filter.To.IsZero() && !filter.To.Equal(time.Unix(0, 0)) {
		conds = append(conds, sq.LtOrEq{"created_at": filter.To})
	}
	if filter.MinAnomalies > 0 {
		conds = append(conds, sq.GtOrEq{"anomalies": filter.MinAnomalies})
	}

	limit := uint64(defaultRunsLimit)
	if filter.Limit > 0 {
		limit = uint64(min(filter.Limit, maxRunsLimit))
	}

	return conds, limit
}
