// Package repository implements attendance persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	attendanceDomain "github.com/clinichq/attend/internal/attendance/domain"
	"github.com/clinichq/attend/internal/database"
	apperrors "github.com/clinichq/attend/internal/errors"
)

// PostgreSQLEventRepository handles attendance event persistence for PostgreSQL.
// The event log is append-only: the repository exposes no update or delete.
type PostgreSQLEventRepository struct {
	db *sql.DB
}

// NewPostgreSQLEventRepository creates a new PostgreSQLEventRepository.
func NewPostgreSQLEventRepository(db *sql.DB) *PostgreSQLEventRepository {
	return &PostgreSQLEventRepository{db: db}
}

// Create appends a new attendance event.
func (r *PostgreSQLEventRepository) Create(
	ctx context.Context,
	event *attendanceDomain.Event,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO attendance_events
			  (id, staff_id, direction, occurred_at, device_fingerprint, source_token, status, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		event.ID,
		event.StaffID,
		event.Direction,
		event.OccurredAt,
		event.DeviceFingerprint,
		event.SourceToken,
		event.Status,
		event.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create attendance event")
	}
	return nil
}

// ListForStaff returns the staff member's events in [from, to), oldest first.
func (r *PostgreSQLEventRepository) ListForStaff(
	ctx context.Context,
	staffID uuid.UUID,
	from, to time.Time,
) ([]*attendanceDomain.Event, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, staff_id, direction, occurred_at, device_fingerprint, source_token, status, created_at
			  FROM attendance_events
			  WHERE staff_id = $1 AND occurred_at >= $2 AND occurred_at < $3
			  ORDER BY occurred_at`

	rows, err := querier.QueryContext(ctx, query, staffID, from, to)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list staff events")
	}
	return collectEvents(rows, scanPostgresEvent)
}

// ListForDevice returns the device's events in [from, to), oldest first.
func (r *PostgreSQLEventRepository) ListForDevice(
	ctx context.Context,
	fingerprint string,
	from, to time.Time,
) ([]*attendanceDomain.Event, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, staff_id, direction, occurred_at, device_fingerprint, source_token, status, created_at
			  FROM attendance_events
			  WHERE device_fingerprint = $1 AND occurred_at >= $2 AND occurred_at < $3
			  ORDER BY occurred_at`

	rows, err := querier.QueryContext(ctx, query, fingerprint, from, to)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list device events")
	}
	return collectEvents(rows, scanPostgresEvent)
}

// ListBetween returns all events in [from, to), oldest first. Used by close
// day to find staff whose last event is still a check-in.
func (r *PostgreSQLEventRepository) ListBetween(
	ctx context.Context,
	from, to time.Time,
) ([]*attendanceDomain.Event, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, staff_id, direction, occurred_at, device_fingerprint, source_token, status, created_at
			  FROM attendance_events
			  WHERE occurred_at >= $1 AND occurred_at < $2
			  ORDER BY occurred_at`

	rows, err := querier.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list events")
	}
	return collectEvents(rows, scanPostgresEvent)
}

// eventScanner scans one event row.
type eventScanner func(rows *sql.Rows) (*attendanceDomain.Event, error)

// collectEvents drains rows with the given scanner.
func collectEvents(rows *sql.Rows, scan eventScanner) ([]*attendanceDomain.Event, error) {
	defer func() { _ = rows.Close() }()

	var events []*attendanceDomain.Event
	for rows.Next() {
		event, err := scan(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate events")
	}
	return events, nil
}

// scanPostgresEvent scans event columns with native UUID types.
func scanPostgresEvent(rows *sql.Rows) (*attendanceDomain.Event, error) {
	var event attendanceDomain.Event
	err := rows.Scan(
		&event.ID,
		&event.StaffID,
		&event.Direction,
		&event.OccurredAt,
		&event.DeviceFingerprint,
		&event.SourceToken,
		&event.Status,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan attendance event")
	}
	return &event, nil
}
