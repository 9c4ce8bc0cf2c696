package ports

import (
	"context"

	"insights-display-service/internal/changes/core/domain"
)

type ChangeRecorderPort interface {
	// RecordChange:
	//   created = true,  err = nil  -> new record
	//   created = false, err = nil  -> duplicate (idempotent)
	//   created = false, err != nil -> DB error
	RecordChange(ctx context.Context, c *domain.FilterChange) (created bool, err error)
}
