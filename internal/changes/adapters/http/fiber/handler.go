package fiber

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"insights-display-service/internal/changes/core/usecase"
)

type TrackFilterChangeUseCase interface {
	Execute(ctx context.Context, in usecase.TrackFilterChangeInput) (usecase.TrackFilterChangeResult, error)
}

type ChangeHandler struct {
	trackUC TrackFilterChangeUseCase
	logger  *slog.Logger
}

func NewChangeHandler(trackUC TrackFilterChangeUseCase, logger *slog.Logger) *ChangeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChangeHandler{trackUC: trackUC, logger: logger}
}

// TrackFilterChange godoc
// @Summary Record an insight filter change
// @Description Diffs the previous and current filters and stores the changed fields with idempotency handling
// @Tags Insights
// @Accept json
// @Produce json
// @Param request body TrackFilterChangeRequest true "Filter change payload"
// @Success 201 {object} TrackFilterChangeResponse
// @Success 200 {object} TrackFilterChangeResponse "Duplicate or unchanged"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /insights/filter-changes [post]
func (h *ChangeHandler) TrackFilterChange(c *fiber.Ctx) error {
	var req TrackFilterChangeRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_change",
			Message: err.Error(),
		})
	}

	res, err := h.trackUC.Execute(c.UserContext(), usecase.TrackFilterChangeInput{
		InsightID: req.InsightID,
		UserID:    req.UserID,
		Timestamp: req.Timestamp,
		Previous:  req.Previous,
		Current:   req.Current,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidChange),
			errors.Is(err, usecase.ErrFutureTime):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_change",
				Message: err.Error(),
			})
		default:
			h.logger.ErrorContext(c.UserContext(), "track filter change failed",
				"insight_id", req.InsightID,
				"error", err,
			)
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	resp := TrackFilterChangeResponse{
		Status:  string(res.Status),
		Changes: res.Changes,
	}
	if res.ID != uuid.Nil {
		resp.ChangeID = res.ID.String()
	}

	if res.Status == usecase.StatusCreated {
		return c.Status(http.StatusCreated).JSON(resp)
	}
	return c.Status(http.StatusOK).JSON(resp)
}
