package postgres

import (
	"context"

	"github.com/lib/pq"

	"insights-display-service/internal/insights/core/domain"
	"insights-display-service/internal/insights/core/ports"
)

type CohortRepository struct {
	db DB
}

func NewCohortRepository(db DB) *CohortRepository {
	return &CohortRepository{db: db}
}

var _ ports.CohortReaderPort = (*CohortRepository)(nil)

const findCohortsSQL = `
SELECT id, name
FROM cohorts
WHERE $1::bigint[] IS NULL OR id = ANY($1)
ORDER BY id`

func (r *CohortRepository) FindCohorts(ctx context.Context, ids []int64) ([]domain.Cohort, error) {
	// nil slice -> NULL array -> bütün cohort'lar
	var idArg any
	if ids != nil {
		idArg = pq.Array(ids)
	}

	rows, err := r.db.QueryContext(ctx, findCohortsSQL, idArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cohorts []domain.Cohort
	for rows.Next() {
		var c domain.Cohort
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		cohorts = append(cohorts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cohorts, nil
}
