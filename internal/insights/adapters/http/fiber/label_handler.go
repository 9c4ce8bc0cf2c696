package fiber

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"insights-display-service/internal/insights/core/domain"
	"insights-display-service/internal/insights/core/labels"
	"insights-display-service/internal/insights/core/usecase"
)

type ResolveLabelsUseCase interface {
	ResolveBreakdownLabels(ctx context.Context, in usecase.ResolveBreakdownLabelsInput) ([]string, error)
	HumanizePathTypes(include []string) []string
}

type LabelHandler struct {
	uc     ResolveLabelsUseCase
	logger *slog.Logger
}

func NewLabelHandler(uc ResolveLabelsUseCase, logger *slog.Logger) *LabelHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LabelHandler{uc: uc, logger: logger}
}

// BreakdownLabels godoc
// @Summary Label breakdown values
// @Description Resolves raw breakdown values (cohort ids, histogram buckets, property values) to display labels
// @Tags Labels
// @Accept json
// @Produce json
// @Param request body BreakdownLabelsRequest true "Breakdown values"
// @Success 200 {object} BreakdownLabelsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /labels/breakdown [post]
func (h *LabelHandler) BreakdownLabels(c *fiber.Ctx) error {
	var req BreakdownLabelsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	}

	out, err := h.uc.ResolveBreakdownLabels(c.UserContext(), usecase.ResolveBreakdownLabelsInput{
		Values:        req.Values,
		Breakdown:     req.Breakdown,
		BreakdownType: req.BreakdownType,
		Histogram:     req.Histogram,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidLabelRequest):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_request",
				Message: err.Error(),
			})
		case errors.Is(err, labels.ErrMalformedBucket):
			return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
				Error:   "malformed_bucket",
				Message: err.Error(),
			})
		default:
			h.logger.ErrorContext(c.UserContext(), "resolve breakdown labels failed",
				"breakdown_type", req.BreakdownType,
				"values", len(req.Values),
				"error", err,
			)
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	title := labels.FormatBreakdownType(domain.BreakdownFilter{
		Breakdown:     domain.String(req.Breakdown),
		BreakdownType: domain.BreakdownType(req.BreakdownType),
	})

	return c.Status(http.StatusOK).JSON(BreakdownLabelsResponse{
		Title:  title,
		Labels: out,
	})
}

// PathLabels godoc
// @Summary Describe path event types
// @Description Humanizes the event types included in a paths insight
// @Tags Labels
// @Accept json
// @Produce json
// @Param request body PathLabelsRequest true "Included event types"
// @Success 200 {object} PathLabelsResponse
// @Failure 400 {object} ErrorResponse
// @Router /labels/paths [post]
func (h *LabelHandler) PathLabels(c *fiber.Ctx) error {
	var req PathLabelsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	}

	return c.Status(http.StatusOK).JSON(PathLabelsResponse{
		Labels: h.uc.HumanizePathTypes(req.IncludeEventTypes),
	})
}
