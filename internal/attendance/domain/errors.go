package domain

import (
	"github.com/clinichq/attend/internal/errors"
)

// Attendance rejection errors. The reason strings are surfaced verbatim to the
// scanning device so staff see why a scan bounced.
var (
	// ErrDeviceReuse indicates the device already recorded attendance for a
	// different staff member today.
	ErrDeviceReuse = errors.Wrap(errors.ErrForbidden, "device already used by another staff member today")

	// ErrDuplicateCheckIn indicates the same staff member already recorded
	// the same direction from the same device today.
	ErrDuplicateCheckIn = errors.Wrap(errors.ErrForbidden, "attendance already recorded from this device today")

	// ErrDayAlreadyClosed indicates the day was closed before, so closing
	// again is refused.
	ErrDayAlreadyClosed = errors.Wrap(errors.ErrConflict, "day is already closed")

	// ErrInvalidDirection indicates an unknown direction value.
	ErrInvalidDirection = errors.Wrap(errors.ErrInvalidInput, "invalid direction")

	// ErrInvalidDate indicates a date that is not a 2006-01-02 civil date.
	ErrInvalidDate = errors.Wrap(errors.ErrInvalidInput, "invalid date, expected YYYY-MM-DD")
)
