package domain

import (
	"time"

	"github.com/google/uuid"

	"insights-display-service/internal/changes/core/diff"
)

// EventName is the event a filter change is stored as.
const EventName = "insight filters changed"

type FilterChange struct {
	ID        uuid.UUID
	InsightID string
	UserID    string
	ChangedAt time.Time
	Changes   diff.Result
	DedupeKey string
}
