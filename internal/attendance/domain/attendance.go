// Package domain defines the attendance domain model: the append-only event
// log of staff check-ins and check-outs, and the per-day clinic status.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Direction is the side of the attendance boundary a scan crosses.
type Direction string

const (
	// DirectionCheckIn marks arrival at the clinic.
	DirectionCheckIn Direction = "check_in"

	// DirectionCheckOut marks departure from the clinic.
	DirectionCheckOut Direction = "check_out"
)

// Valid reports whether the direction is one of the known directions.
func (d Direction) Valid() bool {
	return d == DirectionCheckIn || d == DirectionCheckOut
}

// Status classifies how an attendance event was produced.
type Status string

const (
	// StatusApproved is a regular kiosk-token scan.
	StatusApproved Status = "approved"

	// StatusApprovedReentry is a check-in produced by redeeming a re-entry token.
	StatusApprovedReentry Status = "approved_reentry"

	// StatusSystemCheckout is a forced check-out written when the day closes
	// with the staff member still checked in.
	StatusSystemCheckout Status = "system_checkout"
)

// Event is one immutable attendance record. The log is append-only: there is
// no update or delete, corrections happen as new events.
type Event struct {
	ID                uuid.UUID
	StaffID           uuid.UUID
	Direction         Direction
	OccurredAt        time.Time
	DeviceFingerprint string
	SourceToken       string
	Status            Status
	CreatedAt         time.Time
}

// DailyStatus tracks whether a clinic day has been administratively closed.
// Date is a civil date in the clinic timezone, formatted 2006-01-02.
type DailyStatus struct {
	Date     string
	IsClosed bool
	ClosedBy *uuid.UUID
	ClosedAt *time.Time
}

// DateLayout formats a clinic-local civil date.
const DateLayout = "2006-01-02"

// DateKey returns the civil date of the instant in the clinic timezone.
func DateKey(at time.Time, loc *time.Location) string {
	return at.In(loc).Format(DateLayout)
}

// DayBounds returns the UTC instants bounding the clinic-local civil day that
// contains at: [start, end). Event queries for "today" use this half-open range.
func DayBounds(at time.Time, loc *time.Location) (time.Time, time.Time) {
	local := at.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// BoundsForDate returns the UTC instants bounding the named clinic-local civil
// day. The date must be in DateLayout form.
func BoundsForDate(date string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	return start.UTC(), start.AddDate(0, 0, 1).UTC(), nil
}
