package dto

import (
	"time"

	staffDomain "github.com/clinichq/attend/internal/staff/domain"
)

// StaffResponse represents a staff member in API responses.
type StaffResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	Role        string    `json:"role"`
	LockedOut   bool      `json:"locked_out"`
	CreatedAt   time.Time `json:"created_at"`
}

// MapStaffToResponse converts a domain staff member to an API response.
func MapStaffToResponse(staff *staffDomain.Staff) StaffResponse {
	return StaffResponse{
		ID:          staff.ID.String(),
		DisplayName: staff.DisplayName,
		Email:       staff.Email,
		Role:        string(staff.Role),
		LockedOut:   staff.LockedOut,
		CreatedAt:   staff.CreatedAt,
	}
}

// ListStaffResponse represents a paginated list of staff members.
type ListStaffResponse struct {
	Data []StaffResponse `json:"data"`
}

// MapStaffToListResponse converts domain staff members to a list API response.
func MapStaffToListResponse(staff []*staffDomain.Staff) ListStaffResponse {
	responses := make([]StaffResponse, 0, len(staff))
	for _, member := range staff {
		responses = append(responses, MapStaffToResponse(member))
	}
	return ListStaffResponse{Data: responses}
}
