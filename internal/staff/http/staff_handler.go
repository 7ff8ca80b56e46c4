// Package http provides HTTP handlers for staff management operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinichq/attend/internal/httputil"
	"github.com/clinichq/attend/internal/staff/http/dto"
	staffUseCase "github.com/clinichq/attend/internal/staff/usecase"
	customValidation "github.com/clinichq/attend/internal/validation"
)

// StaffHandler handles HTTP requests for staff management.
type StaffHandler struct {
	staffUseCase staffUseCase.StaffUseCase
	logger       *slog.Logger
}

// NewStaffHandler creates a new staff handler with required dependencies.
func NewStaffHandler(useCase staffUseCase.StaffUseCase, logger *slog.Logger) *StaffHandler {
	return &StaffHandler{
		staffUseCase: useCase,
		logger:       logger,
	}
}

// CreateHandler registers a new staff member.
// POST /v1/staff - admin only.
func (h *StaffHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateStaffRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	staff, err := h.staffUseCase.Create(c.Request.Context(), staffUseCase.CreateStaffInput{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Role:        req.Role,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapStaffToResponse(staff))
}

// GetHandler retrieves a staff member by ID.
// GET /v1/staff/:id - admin only.
func (h *StaffHandler) GetHandler(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid staff ID format: must be a valid UUID"),
			h.logger)
		return
	}

	staff, err := h.staffUseCase.Get(c.Request.Context(), staffID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStaffToResponse(staff))
}

// ListHandler lists staff members with pagination.
// GET /v1/staff - admin only.
func (h *StaffHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	staff, err := h.staffUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStaffToListResponse(staff))
}

// DeleteHandler removes a staff member. Attendance history is preserved.
// DELETE /v1/staff/:id - admin only.
func (h *StaffHandler) DeleteHandler(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid staff ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.staffUseCase.Delete(c.Request.Context(), staffID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// SignOutHandler locks out a staff member for the rest of the day.
// POST /v1/staff/:id/signout - admin only.
func (h *StaffHandler) SignOutHandler(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid staff ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.staffUseCase.SignOut(c.Request.Context(), staffID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// UnlockHandler redeems a re-entry token and clears the lockout.
// POST /v1/reentry/redeem - called from the locked-out device.
func (h *StaffHandler) UnlockHandler(c *gin.Context) {
	var req dto.UnlockRequest

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

	err = h.staffUseCase.Unlock(c.Request.Context(), staffID, req.Token, req.DeviceFingerprint)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "unlocked"})
}
