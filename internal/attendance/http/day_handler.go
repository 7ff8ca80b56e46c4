package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinichq/attend/internal/attendance/http/dto"
	attendanceUseCase "github.com/clinichq/attend/internal/attendance/usecase"
	"github.com/clinichq/attend/internal/httputil"
	customValidation "github.com/clinichq/attend/internal/validation"
)

// DayHandler handles HTTP requests for clinic day management.
type DayHandler struct {
	closeDayUseCase attendanceUseCase.CloseDayUseCase
	logger          *slog.Logger
}

// NewDayHandler creates a new day handler with required dependencies.
func NewDayHandler(useCase attendanceUseCase.CloseDayUseCase, logger *slog.Logger) *DayHandler {
	return &DayHandler{
		closeDayUseCase: useCase,
		logger:          logger,
	}
}

// CloseHandler closes a clinic day and force-checks-out remaining staff.
// POST /v1/days/close - admin only.
func (h *DayHandler) CloseHandler(c *gin.Context) {
	var req dto.CloseDayRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var closedBy *uuid.UUID
	if req.ClosedBy != "" {
		id, err := uuid.Parse(req.ClosedBy)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid closed_by format: must be a valid UUID"),
				h.logger)
			return
		}
		closedBy = &id
	}

	output, err := h.closeDayUseCase.CloseDay(c.Request.Context(), req.Date, closedBy)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.CloseDayResponse{
		Date:              output.Date,
		AutoCheckoutCount: output.AutoCheckoutCount,
	})
}

// StatusHandler returns the open/closed state of a clinic day.
// GET /v1/days/:date - admin only.
func (h *DayHandler) StatusHandler(c *gin.Context) {
	status, err := h.closeDayUseCase.DayStatus(c.Request.Context(), c.Param("date"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDayStatusToResponse(status))
}
