package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	attendanceDomain "github.com/clinichq/attend/internal/attendance/domain"
	"github.com/clinichq/attend/internal/database"
	apperrors "github.com/clinichq/attend/internal/errors"
)

// PostgreSQLDailyStatusRepository handles day open/closed state for PostgreSQL.
// A day with no row is open; rows only appear when a day is closed.
type PostgreSQLDailyStatusRepository struct {
	db *sql.DB
}

// NewPostgreSQLDailyStatusRepository creates a new PostgreSQLDailyStatusRepository.
func NewPostgreSQLDailyStatusRepository(db *sql.DB) *PostgreSQLDailyStatusRepository {
	return &PostgreSQLDailyStatusRepository{db: db}
}

// Get retrieves the status for the given civil date. Absent rows are reported
// as an open day, not an error.
func (r *PostgreSQLDailyStatusRepository) Get(
	ctx context.Context,
	date string,
) (*attendanceDomain.DailyStatus, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT date, is_closed, closed_by, closed_at
			  FROM daily_status WHERE date = $1`

	var status attendanceDomain.DailyStatus
	var day time.Time
	var closedBy uuid.NullUUID

	err := querier.QueryRowContext(ctx, query, date).Scan(
		&day,
		&status.IsClosed,
		&closedBy,
		&status.ClosedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &attendanceDomain.DailyStatus{Date: date}, nil
		}
		return nil, apperrors.Wrap(err, "failed to get daily status")
	}

	status.Date = day.Format(attendanceDomain.DateLayout)
	if closedBy.Valid {
		id := closedBy.UUID
		status.ClosedBy = &id
	}

	return &status, nil
}

// IsDayClosed reports whether the given civil date has been closed.
func (r *PostgreSQLDailyStatusRepository) IsDayClosed(ctx context.Context, date string) (bool, error) {
	status, err := r.Get(ctx, date)
	if err != nil {
		return false, err
	}
	return status.IsClosed, nil
}

// Close marks the date closed. The is_closed guard makes the operation
// idempotent-hostile on purpose: a second close affects no row and returns
// ErrDayAlreadyClosed.
func (r *PostgreSQLDailyStatusRepository) Close(
	ctx context.Context,
	date string,
	closedBy *uuid.UUID,
	closedAt time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO daily_status (date, is_closed, closed_by, closed_at)
			  VALUES ($1, TRUE, $2, $3)
			  ON CONFLICT (date) DO UPDATE
			  SET is_closed = TRUE, closed_by = EXCLUDED.closed_by, closed_at = EXCLUDED.closed_at
			  WHERE daily_status.is_closed = FALSE`

	result, err := querier.ExecContext(ctx, query, date, uuidOrNilValue(closedBy), closedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to close day")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read close result")
	}
	if affected == 0 {
		return attendanceDomain.ErrDayAlreadyClosed
	}
	return nil
}

// uuidOrNilValue converts an optional UUID reference to a driver value.
func uuidOrNilValue(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}
