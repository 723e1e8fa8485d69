package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwork-hr/timeclock-backend-go/internal/domain/timeclock"
	"github.com/clockwork-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type dayRepository struct {
	db *database.DB
}

func NewDayRepository(db *database.DB) timeclock.DayRepository {
	return &dayRepository{db: db}
}

// GetByEmployeeAndDate implements timeclock.DayRepository.
func (r *dayRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*timeclock.AttendanceDay, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, clock_in, clock_out, version, created_at, updated_at
		FROM attendance_days
		WHERE employee_id = $1 AND date = $2
	`

	var day timeclock.AttendanceDay
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&day.ID, &day.EmployeeID, &day.Date, &day.ClockIn, &day.ClockOut,
		&day.Version, &day.CreatedAt, &day.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No day recorded for the date
		}
		return nil, storeErr("failed to get attendance day", err)
	}

	if day.Breaks, err = r.loadBreaks(ctx, q, day.ID); err != nil {
		return nil, err
	}
	return &day, nil
}

// GetRange implements timeclock.DayRepository.
func (r *dayRepository) GetRange(ctx context.Context, employeeID string, start, end time.Time) ([]timeclock.AttendanceDay, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, clock_in, clock_out, version, created_at, updated_at
		FROM attendance_days
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, storeErr("failed to query attendance range", err)
	}
	defer rows.Close()

	var days []timeclock.AttendanceDay
	for rows.Next() {
		var day timeclock.AttendanceDay
		err := rows.Scan(
			&day.ID, &day.EmployeeID, &day.Date, &day.ClockIn, &day.ClockOut,
			&day.Version, &day.CreatedAt, &day.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance day: %w", err)
		}
		days = append(days, day)
	}

	for i := range days {
		if days[i].Breaks, err = r.loadBreaks(ctx, q, days[i].ID); err != nil {
			return nil, err
		}
	}
	return days, nil
}

// CreateDay implements timeclock.DayRepository. The insert is conditional
// on (employee_id, date) uniqueness so that concurrent first clock-ins
// resolve to exactly one winner.
func (r *dayRepository) CreateDay(ctx context.Context, day timeclock.AttendanceDay, ev timeclock.TimeEvent) (timeclock.AttendanceDay, error) {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO attendance_days (id, employee_id, date, clock_in, version)
			VALUES (uuidv7(), $1, $2, $3, 1)
			ON CONFLICT (employee_id, date) DO NOTHING
			RETURNING id, version, created_at, updated_at
		`
		err := tx.QueryRow(ctx, query, day.EmployeeID, day.Date, day.ClockIn).Scan(
			&day.ID, &day.Version, &day.CreatedAt, &day.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return timeclock.ErrAlreadyClockedIn
			}
			return storeErr("failed to create attendance day", err)
		}

		if err := r.replaceBreaks(ctx, tx, day.ID, day.Breaks); err != nil {
			return err
		}
		return r.appendEvent(ctx, tx, day.ID, ev)
	})
	if err != nil {
		return timeclock.AttendanceDay{}, err
	}
	return day, nil
}

// UpdateDay implements timeclock.DayRepository. The write is conditional on
// the version read by the caller; a lost race surfaces as ErrVersionConflict.
func (r *dayRepository) UpdateDay(ctx context.Context, day timeclock.AttendanceDay, ev timeclock.TimeEvent) (timeclock.AttendanceDay, error) {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE attendance_days
			SET clock_in = $1, clock_out = $2, version = version + 1, updated_at = NOW()
			WHERE id = $3 AND version = $4
			RETURNING version, updated_at
		`
		err := tx.QueryRow(ctx, query, day.ClockIn, day.ClockOut, day.ID, day.Version).Scan(
			&day.Version, &day.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return timeclock.ErrVersionConflict
			}
			return storeErr("failed to update attendance day", err)
		}

		if err := r.replaceBreaks(ctx, tx, day.ID, day.Breaks); err != nil {
			return err
		}
		return r.appendEvent(ctx, tx, day.ID, ev)
	})
	if err != nil {
		return timeclock.AttendanceDay{}, err
	}
	return day, nil
}

// GetByEventKey implements timeclock.DayRepository.
func (r *dayRepository) GetByEventKey(ctx context.Context, employeeID, key string) (*timeclock.AttendanceDay, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.employee_id, d.date, d.clock_in, d.clock_out, d.version, d.created_at, d.updated_at
		FROM attendance_events e
		JOIN attendance_days d ON d.id = e.day_id
		WHERE e.employee_id = $1 AND e.idempotency_key = $2
	`

	var day timeclock.AttendanceDay
	err := q.QueryRow(ctx, query, employeeID, key).Scan(
		&day.ID, &day.EmployeeID, &day.Date, &day.ClockIn, &day.ClockOut,
		&day.Version, &day.CreatedAt, &day.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Key not seen before
		}
		return nil, storeErr("failed to look up event key", err)
	}

	if day.Breaks, err = r.loadBreaks(ctx, q, day.ID); err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *dayRepository) loadBreaks(ctx context.Context, q database.Querier, dayID string) ([]timeclock.BreakInterval, error) {
	query := `
		SELECT break_type, start_at, end_at
		FROM attendance_breaks
		WHERE day_id = $1
		ORDER BY start_at ASC
	`

	rows, err := q.Query(ctx, query, dayID)
	if err != nil {
		return nil, storeErr("failed to query breaks", err)
	}
	defer rows.Close()

	var breaks []timeclock.BreakInterval
	for rows.Next() {
		var b timeclock.BreakInterval
		if err := rows.Scan(&b.BreakType, &b.Start, &b.End); err != nil {
			return nil, fmt.Errorf("failed to scan break interval: %w", err)
		}
		breaks = append(breaks, b)
	}
	return breaks, nil
}

// replaceBreaks rewrites the day's break rows from the in-memory state.
// Runs inside the day's version-guarded transaction, so no other writer
// can interleave.
func (r *dayRepository) replaceBreaks(ctx context.Context, tx pgx.Tx, dayID string, breaks []timeclock.BreakInterval) error {
	if _, err := tx.Exec(ctx, `DELETE FROM attendance_breaks WHERE day_id = $1`, dayID); err != nil {
		return storeErr("failed to clear breaks", err)
	}

	query := `
		INSERT INTO attendance_breaks (id, day_id, break_type, start_at, end_at)
		VALUES (uuidv7(), $1, $2, $3, $4)
	`
	for _, b := range breaks {
		if _, err := tx.Exec(ctx, query, dayID, b.BreakType, b.Start, b.End); err != nil {
			return storeErr("failed to insert break", err)
		}
	}
	return nil
}

// appendEvent writes the originating event to the append-only journal.
func (r *dayRepository) appendEvent(ctx context.Context, tx pgx.Tx, dayID string, ev timeclock.TimeEvent) error {
	query := `
		INSERT INTO attendance_events (id, day_id, employee_id, event_type, occurred_at, break_type, location, notes, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := tx.Exec(ctx, query,
		ev.ID, dayID, ev.EmployeeID, string(ev.Type), ev.OccurredAt,
		nullableString(ev.BreakType), ev.Location, ev.Notes, ev.IdempotencyKey,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			// A concurrent request already applied this idempotency key.
			return timeclock.ErrVersionConflict
		}
		return storeErr("failed to append attendance event", err)
	}
	return nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// storeErr tags transient connectivity failures as ErrStoreUnavailable so
// the service boundary can apply its bounded retry; everything else is
// wrapped as-is.
func storeErr(msg string, err error) error {
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", msg, timeclock.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
