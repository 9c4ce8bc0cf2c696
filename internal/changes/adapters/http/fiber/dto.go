package fiber

import (
	"github.com/go-playground/validator/v10"

	"insights-display-service/internal/changes/core/diff"
	"insights-display-service/internal/insights/core/domain"
)

var validate = validator.New()

// TrackFilterChangeRequest represents a filter change payload
// @Description Previous and current filters of an insight
type TrackFilterChangeRequest struct {
	InsightID string        `json:"insight_id" validate:"required,max=128"`
	UserID    string        `json:"user_id" validate:"required,max=128"`
	Timestamp int64         `json:"timestamp" validate:"gte=0"`
	Previous  domain.Filter `json:"previous" swaggertype:"object"`
	Current   domain.Filter `json:"current" swaggertype:"object"`
}

type TrackFilterChangeResponse struct {
	Status   string      `json:"status" example:"created"`
	ChangeID string      `json:"change_id,omitempty"`
	Changes  diff.Result `json:"changes" swaggertype:"object"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_change"`
	Message string `json:"message,omitempty" example:"invalid filter change"`
}
