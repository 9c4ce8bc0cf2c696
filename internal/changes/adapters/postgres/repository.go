package postgres

import (
	"context"
	"encoding/json"

	"github.com/lib/pq"

	"insights-display-service/internal/changes/core/diff"
	"insights-display-service/internal/changes/core/domain"
	"insights-display-service/internal/changes/core/ports"
)

// ChangeChannel is the events.channel value of stored filter changes.
const ChangeChannel = "insights"

type ChangeRepository struct {
	db DB
}

func NewChangeRepository(db DB) *ChangeRepository {
	return &ChangeRepository{db: db}
}

var _ ports.ChangeRecorderPort = (*ChangeRepository)(nil)

// Filter changes go to the shared event store; campaign_id stays NULL.
const insertChangeSQL = `
INSERT INTO events (
    event_name,
    channel,
    campaign_id,
    user_id,
    event_time,
    tags,
    metadata,
    dedupe_key
) VALUES (
    $1, $2, NULL, $3,
    $4, $5, $6, $7
)
ON CONFLICT (dedupe_key) DO NOTHING;
`

type changeMetadata struct {
	ChangeID  string      `json:"change_id"`
	InsightID string      `json:"insight_id"`
	Changes   diff.Result `json:"changes"`
}

func (r *ChangeRepository) RecordChange(ctx context.Context, c *domain.FilterChange) (bool, error) {
	metadataJSON, err := json.Marshal(changeMetadata{
		ChangeID:  c.ID.String(),
		InsightID: c.InsightID,
		Changes:   c.Changes,
	})
	if err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx, insertChangeSQL,
		domain.EventName,
		ChangeChannel,
		c.UserID,
		c.ChangedAt,
		pq.Array(c.Changes.Keys()),
		metadataJSON,
		c.DedupeKey,
	)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == 1  -> new record
	// rows == 0  -> duplicate (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}
