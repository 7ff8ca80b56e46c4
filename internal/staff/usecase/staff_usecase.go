package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/clinichq/attend/internal/config"
	"github.com/clinichq/attend/internal/database"
	staffDomain "github.com/clinichq/attend/internal/staff/domain"
	tokenDomain "github.com/clinichq/attend/internal/token/domain"
	appValidation "github.com/clinichq/attend/internal/validation"
)

// staffUseCase implements StaffUseCase.
type staffUseCase struct {
	config          *config.Config
	txManager       database.TxManager
	staffRepo       StaffRepository
	tokenValidator  TokenValidator
	reentryRecorder ReentryRecorder
}

// NewStaffUseCase creates a new StaffUseCase with the provided dependencies.
func NewStaffUseCase(
	cfg *config.Config,
	txManager database.TxManager,
	staffRepo StaffRepository,
	tokenValidator TokenValidator,
	reentryRecorder ReentryRecorder,
) StaffUseCase {
	return &staffUseCase{
		config:          cfg,
		txManager:       txManager,
		staffRepo:       staffRepo,
		tokenValidator:  tokenValidator,
		reentryRecorder: reentryRecorder,
	}
}

// validateCreateStaffInput validates the registration input.
func (s *staffUseCase) validateCreateStaffInput(input CreateStaffInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.DisplayName,
			validation.Required.Error("display name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("display name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.When(input.Email != "",
				appValidation.Email,
				validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
			),
		),
		validation.Field(&input.Role,
			validation.Required.Error("role is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create registers a new staff member with a validated role.
func (s *staffUseCase) Create(
	ctx context.Context,
	input CreateStaffInput,
) (*staffDomain.Staff, error) {
	if err := s.validateCreateStaffInput(input); err != nil {
		return nil, err
	}

	role := staffDomain.Role(strings.ToLower(strings.TrimSpace(input.Role)))
	if !role.Valid() {
		return nil, staffDomain.ErrInvalidRole
	}

	staff := &staffDomain.Staff{
		ID:          uuid.Must(uuid.NewV7()),
		DisplayName: strings.TrimSpace(input.DisplayName),
		Email:       strings.TrimSpace(strings.ToLower(input.Email)),
		Role:        role,
		LockedOut:   false,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}

	return staff, nil
}

// Get retrieves a staff member by ID.
func (s *staffUseCase) Get(ctx context.Context, id uuid.UUID) (*staffDomain.Staff, error) {
	return s.staffRepo.Get(ctx, id)
}

// List returns staff members.
func (s *staffUseCase) List(ctx context.Context, offset, limit int) ([]*staffDomain.Staff, error) {
	return s.staffRepo.List(ctx, offset, limit)
}

// Delete removes a staff member. The attendance log keeps their events.
func (s *staffUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return s.staffRepo.Delete(ctx, id)
}

// SignOut locks the staff member out until a re-entry token is redeemed.
// Exempt admins sign out without locking; the call still succeeds so the
// client flow is identical for both.
func (s *staffUseCase) SignOut(ctx context.Context, id uuid.UUID) error {
	staff, err := s.staffRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if staff.Exempt(s.config.AdminLockoutExempt) {
		return nil
	}

	return s.staffRepo.SetLockout(ctx, id, true)
}

// Unlock redeems a re-entry token and clears the lockout.
//
// The token consumption, the lockout clear and the approved_reentry event run
// in one transaction: a token is never burned without the staff member
// actually getting back in. The token must be of a re-entry kind and must be
// assigned to exactly this staff member.
func (s *staffUseCase) Unlock(
	ctx context.Context,
	id uuid.UUID,
	tokenValue string,
	fingerprint string,
) error {
	return s.txManager.WithTx(ctx, func(ctx context.Context) error {
		staff, err := s.staffRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		token, err := s.tokenValidator.Validate(ctx, tokenValue)
		if err != nil {
			return err
		}

		if !token.Kind.Reentry() {
			return tokenDomain.ErrTokenKindMismatch
		}

		if token.AssignedStaffID == nil || *token.AssignedStaffID != staff.ID {
			return staffDomain.ErrTokenStaffMismatch
		}

		if err := s.staffRepo.SetLockout(ctx, id, false); err != nil {
			return err
		}

		return s.reentryRecorder.RecordReentry(ctx, id, tokenValue, fingerprint)
	})
}
