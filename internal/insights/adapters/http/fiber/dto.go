package fiber

import (
	"github.com/go-playground/validator/v10"

	"insights-display-service/internal/insights/core/domain"
)

var validate = validator.New()

type InsightGroupResponse struct {
	Value          domain.Value `json:"value" swaggertype:"object"`
	Label          string       `json:"label"`
	Count          int64        `json:"count"`
	UniqueUsers    int64        `json:"unique_users"`
	Aggregate      *float64     `json:"aggregate"`
	FormattedValue string       `json:"formatted_value"`
	InProgress     bool         `json:"in_progress,omitempty"`
}

type InsightResponse struct {
	EventName      string                 `json:"event_name"`
	SeriesLabel    string                 `json:"series_label"`
	From           int64                  `json:"from"`
	To             int64                  `json:"to"`
	TotalCount     int64                  `json:"total_count"`
	UniqueUsers    int64                  `json:"unique_users"`
	Aggregate      *float64               `json:"aggregate"`
	FormattedTotal string                 `json:"formatted_total"`
	Math           string                 `json:"math"`
	MathProperty   string                 `json:"math_property,omitempty"`
	BreakdownType  string                 `json:"breakdown_type,omitempty"`
	Breakdown      string                 `json:"breakdown,omitempty"`
	BreakdownTitle string                 `json:"breakdown_title,omitempty"`
	Histogram      bool                   `json:"histogram,omitempty"`
	Groups         []InsightGroupResponse `json:"groups,omitempty"`
}

// BreakdownLabelsRequest represents a breakdown labelling payload
// @Description Raw breakdown values to label
type BreakdownLabelsRequest struct {
	Values        []domain.Value `json:"values" validate:"required,min=1,max=1000" swaggertype:"array,object"`
	Breakdown     string         `json:"breakdown" validate:"max=200"`
	BreakdownType string         `json:"breakdown_type" validate:"omitempty,oneof=event cohort time"`
	Histogram     bool           `json:"histogram"`
}

type BreakdownLabelsResponse struct {
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
}

type PathLabelsRequest struct {
	IncludeEventTypes []string `json:"include_event_types" validate:"max=16,dive,required,max=64"`
}

type PathLabelsResponse struct {
	Labels []string `json:"labels"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message,omitempty" example:"invalid time range"`
}
