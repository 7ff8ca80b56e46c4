// Package http provides HTTP handlers for token issuance operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinichq/attend/internal/config"
	"github.com/clinichq/attend/internal/httputil"
	tokenDomain "github.com/clinichq/attend/internal/token/domain"
	"github.com/clinichq/attend/internal/token/http/dto"
	tokenUseCase "github.com/clinichq/attend/internal/token/usecase"
	customValidation "github.com/clinichq/attend/internal/validation"
)

// TokenHandler handles HTTP requests for token issuance.
type TokenHandler struct {
	config       *config.Config
	tokenUseCase tokenUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(cfg *config.Config, useCase tokenUseCase.TokenUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		config:       cfg,
		tokenUseCase: useCase,
		logger:       logger,
	}
}

// IssueKioskHandler issues a rotating kiosk token for the requested direction.
// POST /v1/kiosk/tokens - admin only.
func (h *TokenHandler) IssueKioskHandler(c *gin.Context) {
	var req dto.IssueKioskTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	kind := tokenDomain.KindKioskCheckIn
	if req.Direction == "check_out" {
		kind = tokenDomain.KindKioskCheckOut
	}

	token, err := h.tokenUseCase.Issue(c.Request.Context(), kind, h.config.KioskTokenTTL, nil)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapTokenToResponse(token))
}

// IssueReentryHandler issues a re-entry token bound to a staff member.
// POST /v1/reentry/tokens - admin only.
func (h *TokenHandler) IssueReentryHandler(c *gin.Context) {
	var req dto.IssueReentryTokenRequest

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

	kind := tokenDomain.KindReentry
	if req.Admin {
		kind = tokenDomain.KindAdminReentry
	}

	token, err := h.tokenUseCase.Issue(c.Request.Context(), kind, h.config.ReentryTokenTTL, &staffID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapTokenToResponse(token))
}
