package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"insights-display-service/internal/changes/core/diff"
	"insights-display-service/internal/changes/core/domain"
	"insights-display-service/internal/changes/core/ports"
	insightdomain "insights-display-service/internal/insights/core/domain"
	"insights-display-service/internal/observability"
)

var (
	ErrInvalidChange = errors.New("invalid filter change")
	ErrFutureTime    = errors.New("timestamp cannot be in the future")
)

// Status is the outcome of tracking one filter change.
type Status string

const (
	StatusCreated   Status = "created"
	StatusDuplicate Status = "duplicate"
	StatusUnchanged Status = "unchanged"
)

type TrackFilterChangeInput struct {
	InsightID string
	UserID    string
	Timestamp int64 // unix second; 0 = now
	Previous  insightdomain.Filter
	Current   insightdomain.Filter
}

type TrackFilterChangeResult struct {
	ID      uuid.UUID // zero unless created
	Status  Status
	Changes diff.Result
}

type TrackFilterChangeUseCase struct {
	repo ports.ChangeRecorderPort
	now  func() time.Time
}

func NewTrackFilterChangeUseCase(repo ports.ChangeRecorderPort) *TrackFilterChangeUseCase {
	return &TrackFilterChangeUseCase{repo: repo, now: time.Now}
}

// WithClock replaces the clock used for defaults and the future check.
func (uc *TrackFilterChangeUseCase) WithClock(now func() time.Time) *TrackFilterChangeUseCase {
	uc.now = now
	return uc
}

func (uc *TrackFilterChangeUseCase) Execute(ctx context.Context, in TrackFilterChangeInput) (TrackFilterChangeResult, error) {
	if err := uc.validateInput(in); err != nil {
		return TrackFilterChangeResult{}, err
	}

	changes := diff.ExtractObjectDiffKeys(in.Previous, in.Current, "")
	if changes.Empty() {
		observability.FilterChanges.WithLabelValues(string(StatusUnchanged)).Inc()
		return TrackFilterChangeResult{Status: StatusUnchanged, Changes: changes}, nil
	}

	changedAt := uc.now().UTC()
	if in.Timestamp > 0 {
		changedAt = time.Unix(in.Timestamp, 0).UTC()
	}

	c := &domain.FilterChange{
		ID:        uuid.New(),
		InsightID: in.InsightID,
		UserID:    in.UserID,
		ChangedAt: changedAt,
		Changes:   changes,
		DedupeKey: buildDedupeKey(in, changedAt, changes),
	}

	created, err := uc.repo.RecordChange(ctx, c)
	if err != nil {
		return TrackFilterChangeResult{}, err
	}

	observability.FilterChangedFields.Observe(float64(len(changes)))
	if !created {
		observability.FilterChanges.WithLabelValues(string(StatusDuplicate)).Inc()
		return TrackFilterChangeResult{Status: StatusDuplicate, Changes: changes}, nil
	}

	observability.FilterChanges.WithLabelValues(string(StatusCreated)).Inc()
	return TrackFilterChangeResult{ID: c.ID, Status: StatusCreated, Changes: changes}, nil
}

func buildDedupeKey(in TrackFilterChangeInput, t time.Time, changes diff.Result) string {
	// insight_id + user_id + unix_timestamp + changed keys
	return fmt.Sprintf("%s|%s|%d|%s",
		in.InsightID,
		in.UserID,
		t.Unix(),
		strings.Join(changes.Keys(), ","),
	)
}

func (uc *TrackFilterChangeUseCase) validateInput(in TrackFilterChangeInput) error {
	if strings.TrimSpace(in.InsightID) == "" || strings.TrimSpace(in.UserID) == "" {
		return ErrInvalidChange
	}

	if in.Timestamp < 0 {
		return fmt.Errorf("%w: negative timestamp", ErrInvalidChange)
	}
	if in.Timestamp > uc.now().Unix() {
		return ErrFutureTime
	}

	return nil
}
