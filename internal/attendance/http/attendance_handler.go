// Package http provides HTTP handlers for attendance recording and day management.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	attendanceDomain "github.com/clinichq/attend/internal/attendance/domain"
	"github.com/clinichq/attend/internal/attendance/http/dto"
	attendanceUseCase "github.com/clinichq/attend/internal/attendance/usecase"
	"github.com/clinichq/attend/internal/httputil"
	customValidation "github.com/clinichq/attend/internal/validation"
)

// AttendanceHandler handles HTTP requests for attendance scans and history.
type AttendanceHandler struct {
	attendanceUseCase attendanceUseCase.AttendanceUseCase
	logger            *slog.Logger
}

// NewAttendanceHandler creates a new attendance handler with required dependencies.
func NewAttendanceHandler(
	useCase attendanceUseCase.AttendanceUseCase,
	logger *slog.Logger,
) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceUseCase: useCase,
		logger:            logger,
	}
}

// ScanHandler records an attendance scan from a staff device.
// POST /v1/attendance/scan - rate limited per client.
func (h *AttendanceHandler) ScanHandler(c *gin.Context) {
	var req dto.ScanRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid staff ID format: must be a valid UUID"),
			h.logger)
		return
	}

	event, err := h.attendanceUseCase.Record(c.Request.Context(), attendanceUseCase.RecordInput{
		StaffID:     staffID,
		Direction:   attendanceDomain.Direction(req.Direction),
		TokenValue:  req.Token,
		Code:        req.Code,
		Fingerprint: req.DeviceFingerprint,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapEventToResponse(event))
}

// ListForStaffHandler returns a staff member's attendance events for a date.
// GET /v1/staff/:id/attendance?date=YYYY-MM-DD - admin only.
func (h *AttendanceHandler) ListForStaffHandler(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid staff ID format: must be a valid UUID"),
			h.logger)
		return
	}

	date := c.Query("date")
	if date == "" {
		httputil.HandleBadRequestGin(c,
			fmt.Errorf("date query parameter is required"),
			h.logger)
		return
	}

	events, err := h.attendanceUseCase.ListForStaffOnDate(c.Request.Context(), staffID, date)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventsToListResponse(events))
}
