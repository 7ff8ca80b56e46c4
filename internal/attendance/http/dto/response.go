package dto

import (
	"time"

	attendanceDomain "github.com/clinichq/attend/internal/attendance/domain"
)

// EventResponse represents an attendance event in API responses.
type EventResponse struct {
	ID         string    `json:"id"`
	StaffID    string    `json:"staff_id"`
	Direction  string    `json:"direction"`
	OccurredAt time.Time `json:"occurred_at"`
	Status     string    `json:"status"`
}

// MapEventToResponse converts a domain event to an API response.
func MapEventToResponse(event *attendanceDomain.Event) EventResponse {
	return EventResponse{
		ID:         event.ID.String(),
		StaffID:    event.StaffID.String(),
		Direction:  string(event.Direction),
		OccurredAt: event.OccurredAt,
		Status:     string(event.Status),
	}
}

// ListEventsResponse represents a list of attendance events.
type ListEventsResponse struct {
	Data []EventResponse `json:"data"`
}

// MapEventsToListResponse converts domain events to a list API response.
func MapEventsToListResponse(events []*attendanceDomain.Event) ListEventsResponse {
	responses := make([]EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, MapEventToResponse(event))
	}
	return ListEventsResponse{Data: responses}
}

// CloseDayResponse contains the result of closing a clinic day.
type CloseDayResponse struct {
	Date              string `json:"date"`
	AutoCheckoutCount int64  `json:"auto_checkout_count"`
}

// DayStatusResponse represents the open/closed state of a clinic day.
type DayStatusResponse struct {
	Date     string     `json:"date"`
	IsClosed bool       `json:"is_closed"`
	ClosedBy *string    `json:"closed_by,omitempty"`
	ClosedAt *time.Time `json:"closed_at,omitempty"`
}

// MapDayStatusToResponse converts a domain daily status to an API response.
func MapDayStatusToResponse(status *attendanceDomain.DailyStatus) DayStatusResponse {
	response := DayStatusResponse{
		Date:     status.Date,
		IsClosed: status.IsClosed,
		ClosedAt: status.ClosedAt,
	}
	if status.ClosedBy != nil {
		closedBy := status.ClosedBy.String()
		response.ClosedBy = &closedBy
	}
	return response
}
