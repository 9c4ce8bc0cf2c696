package fiber

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"insights-display-service/internal/insights/core/labels"
	"insights-display-service/internal/insights/core/usecase"
)

type GetInsightUseCase interface {
	Execute(ctx context.Context, in usecase.GetInsightInput) (*usecase.LabeledInsight, error)
}

type InsightHandler struct {
	uc     GetInsightUseCase
	logger *slog.Logger
}

// NewInsightHandler logs unexpected use-case errors to logger, or to the
// default logger when nil.
func NewInsightHandler(uc GetInsightUseCase, logger *slog.Logger) *InsightHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InsightHandler{uc: uc, logger: logger}
}

// GetInsight godoc
// @Summary Query a labelled insight
// @Description Returns totals and breakdown groups with display labels
// @Tags Insights
// @Accept json
// @Produce json
// @Param event_name query string true "Event name"
// @Param from query int true "From timestamp"
// @Param to query int true "To timestamp"
// @Param channel query string false "Channel filter"
// @Param breakdown_type query string false "Breakdown type: event | cohort | time"
// @Param breakdown query string false "Property key, or interval (hour | day | week | month) for time"
// @Param histogram query bool false "Bucket a numeric property breakdown"
// @Param bins query int false "Histogram bucket count"
// @Param math query string false "Math: total | sum"
// @Param math_property query string false "Property summed when math=sum"
// @Success 200 {object} InsightResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /insights [get]
func (h *InsightHandler) GetInsight(c *fiber.Ctx) error {
	eventName := c.Query("event_name", "")
	if eventName == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "event_name is required",
		})
	}

	fromStr := c.Query("from", "")
	toStr := c.Query("to", "")
	if fromStr == "" || toStr == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "from and to are required",
		})
	}

	from, err := strconv.ParseInt(fromStr, 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid 'from' parameter",
		})
	}
	to, err := strconv.ParseInt(toStr, 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid 'to' parameter",
		})
	}

	var channelPtr *string
	channel := c.Query("channel", "")
	if channel != "" {
		channelPtr = &channel
	}

	histogram := false
	if raw := c.Query("histogram", ""); raw != "" {
		histogram, err = strconv.ParseBool(raw)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid 'histogram' parameter",
			})
		}
	}

	bins := 0
	if raw := c.Query("bins", ""); raw != "" {
		bins, err = strconv.Atoi(raw)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid 'bins' parameter",
			})
		}
	}

	in := usecase.GetInsightInput{
		EventName:     eventName,
		From:          from,
		To:            to,
		Channel:       channelPtr,
		BreakdownType: c.Query("breakdown_type", ""),
		Breakdown:     c.Query("breakdown", ""),
		Histogram:     histogram,
		HistogramBins: bins,
		Math:          c.Query("math", ""),
		MathProperty:  c.Query("math_property", ""),
	}

	res, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInsightQuery),
			errors.Is(err, usecase.ErrInvalidTimeRange),
			errors.Is(err, usecase.ErrInvalidBreakdown),
			errors.Is(err, usecase.ErrInvalidInterval),
			errors.Is(err, usecase.ErrInvalidHistogram),
			errors.Is(err, usecase.ErrInvalidMath):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_query",
				Message: err.Error(),
			})
		case errors.Is(err, labels.ErrMalformedBucket):
			return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
				Error:   "malformed_bucket",
				Message: err.Error(),
			})
		default:
			h.logger.ErrorContext(c.UserContext(), "get insight failed",
				"event_name", in.EventName,
				"breakdown_type", in.BreakdownType,
				"error", err,
			)
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	r := res.Result
	resp := InsightResponse{
		EventName:      r.EventName,
		SeriesLabel:    res.SeriesLabel,
		From:           r.From,
		To:             r.To,
		TotalCount:     r.TotalCount,
		UniqueUsers:    r.UniqueUsers,
		Aggregate:      r.Aggregate,
		FormattedTotal: res.FormattedTotal,
		Math:           string(r.Math),
		MathProperty:   r.MathProperty,
		BreakdownType:  string(r.BreakdownType),
		Breakdown:      r.Breakdown,
		Histogram:      r.Histogram,
		Groups:         make([]InsightGroupResponse, 0, len(res.Groups)),
	}
	if r.BreakdownType != "" {
		resp.BreakdownTitle = res.BreakdownTitle
	}

	for _, g := range res.Groups {
		resp.Groups = append(resp.Groups, InsightGroupResponse{
			Value:          g.Value,
			Label:          g.Label,
			Count:          g.Count,
			UniqueUsers:    g.UniqueUsers,
			Aggregate:      g.Aggregate,
			FormattedValue: g.FormattedValue,
			InProgress:     g.InProgress,
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}
