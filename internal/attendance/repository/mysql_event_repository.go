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

// MySQLEventRepository handles attendance event persistence for MySQL with
// BINARY(16) UUIDs. Append-only like the PostgreSQL implementation.
type MySQLEventRepository struct {
	db *sql.DB
}

// NewMySQLEventRepository creates a new MySQLEventRepository.
func NewMySQLEventRepository(db *sql.DB) *MySQLEventRepository {
	return &MySQLEventRepository{db: db}
}

// Create appends a new attendance event.
func (r *MySQLEventRepository) Create(ctx context.Context, event *attendanceDomain.Event) error {
	querier := database.GetTx(ctx, r.db)

	id, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal event id")
	}

	staffID, err := event.StaffID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal staff id")
	}

	query := `INSERT INTO attendance_events
			  (id, staff_id, direction, occurred_at, device_fingerprint, source_token, status, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		staffID,
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
func (r *MySQLEventRepository) ListForStaff(
	ctx context.Context,
	staffID uuid.UUID,
	from, to time.Time,
) ([]*attendanceDomain.Event, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := staffID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal staff id")
	}

	query := `SELECT id, staff_id, direction, occurred_at, device_fingerprint, source_token, status, created_at
			  FROM attendance_events
			  WHERE staff_id = ? AND occurred_at >= ? AND occurred_at < ?
			  ORDER BY occurred_at`

	rows, err := querier.QueryContext(ctx, query, idBytes, from, to)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list staff events")
	}
	return collectEvents(rows, scanMySQLEvent)
}

// ListForDevice returns the device's events in [from, to), oldest first.
func (r *MySQLEventRepository) ListForDevice(
	ctx context.Context,
	fingerprint string,
	from, to time.Time,
) ([]*attendanceDomain.Event, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, staff_id, direction, occurred_at, device_fingerprint, source_token, status, created_at
			  FROM attendance_events
			  WHERE device_fingerprint = ? AND occurred_at >= ? AND occurred_at < ?
			  ORDER BY occurred_at`

	rows, err := querier.QueryContext(ctx, query, fingerprint, from, to)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list device events")
	}
	return collectEvents(rows, scanMySQLEvent)
}

// ListBetween returns all events in [from, to), oldest first.
func (r *MySQLEventRepository) ListBetween(
	ctx context.Context,
	from, to time.Time,
) ([]*attendanceDomain.Event, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, staff_id, direction, occurred_at, device_fingerprint, source_token, status, created_at
			  FROM attendance_events
			  WHERE occurred_at >= ? AND occurred_at < ?
			  ORDER BY occurred_at`

	rows, err := querier.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list events")
	}
	return collectEvents(rows, scanMySQLEvent)
}

// scanMySQLEvent scans event columns with BINARY(16) UUID decoding.
func scanMySQLEvent(rows *sql.Rows) (*attendanceDomain.Event, error) {
	var event attendanceDomain.Event
	var idBytes, staffBytes []byte

	err := rows.Scan(
		&idBytes,
		&staffBytes,
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

	if err := event.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal event id")
	}
	if err := event.StaffID.UnmarshalBinary(staffBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal staff id")
	}

	return &event, nil
}
