package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	attendanceDomain "github.com/clinichq/attend/internal/attendance/domain"
	"github.com/clinichq/attend/internal/database"
	apperrors "github.com/clinichq/attend/internal/errors"
)

// mysqlDuplicateEntryCode is the MySQL error number for duplicate key violations.
const mysqlDuplicateEntryCode = 1062

// MySQLDailyStatusRepository handles day open/closed state for MySQL.
type MySQLDailyStatusRepository struct {
	db *sql.DB
}

// NewMySQLDailyStatusRepository creates a new MySQLDailyStatusRepository.
func NewMySQLDailyStatusRepository(db *sql.DB) *MySQLDailyStatusRepository {
	return &MySQLDailyStatusRepository{db: db}
}

// Get retrieves the status for the given civil date. Absent rows are reported
// as an open day, not an error.
func (r *MySQLDailyStatusRepository) Get(
	ctx context.Context,
	date string,
) (*attendanceDomain.DailyStatus, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT date, is_closed, closed_by, closed_at
			  FROM daily_status WHERE date = ?`

	var status attendanceDomain.DailyStatus
	var day time.Time
	var closedBy []byte

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
	if len(closedBy) > 0 {
		var id uuid.UUID
		if err := id.UnmarshalBinary(closedBy); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal closed_by")
		}
		status.ClosedBy = &id
	}

	return &status, nil
}

// IsDayClosed reports whether the given civil date has been closed.
func (r *MySQLDailyStatusRepository) IsDayClosed(ctx context.Context, date string) (bool, error) {
	status, err := r.Get(ctx, date)
	if err != nil {
		return false, err
	}
	return status.IsClosed, nil
}

// Close marks the date closed. A second close returns ErrDayAlreadyClosed.
func (r *MySQLDailyStatusRepository) Close(
	ctx context.Context,
	date string,
	closedBy *uuid.UUID,
	closedAt time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	closedByValue, err := binaryOrNil(closedBy)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal closed_by")
	}

	query := `INSERT INTO daily_status (date, is_closed, closed_by, closed_at)
			  VALUES (?, TRUE, ?, ?)`

	_, err = querier.ExecContext(ctx, query, date, closedByValue, closedAt)
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != mysqlDuplicateEntryCode {
		return apperrors.Wrap(err, "failed to close day")
	}

	// Row exists; flip it closed only if it is still open.
	update := `UPDATE daily_status SET is_closed = TRUE, closed_by = ?, closed_at = ?
			   WHERE date = ? AND is_closed = FALSE`

	result, err := querier.ExecContext(ctx, update, closedByValue, closedAt, date)
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

// binaryOrNil converts an optional UUID reference to a BINARY(16) driver value.
func binaryOrNil(id *uuid.UUID) (any, error) {
	if id == nil {
		return nil, nil
	}
	return id.MarshalBinary()
}
