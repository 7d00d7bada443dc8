package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/pkg/dbmetrics"
	"github.com/m04kA/KingsBarber-BookingService/pkg/psqlbuilder"
)

const (
	tableName = "appointments"

	pgUniqueViolation  = "23505"
	confirmationCodeUQ = "appointments_confirmation_code_key"
)

var columns = []string{
	"id",
	"confirmation_code",
	"barber",
	"customer_name",
	"customer_phone",
	"services",
	"start_time",
	"duration_minutes",
	"total_price_cents",
	"notes",
	"status",
	"source",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository журнал записей к барберам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую запись
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"confirmation_code",
			"barber",
			"customer_name",
			"customer_phone",
			"services",
			"start_time",
			"duration_minutes",
			"total_price_cents",
			"notes",
			"status",
			"source",
		).
		Values(
			appt.ConfirmationCode,
			appt.Barber,
			appt.CustomerName,
			appt.CustomerPhone,
			pq.Array(appt.Services),
			appt.StartTime.UTC(),
			appt.DurationMinutes,
			appt.TotalPriceCents,
			appt.Notes,
			appt.Status,
			appt.Source,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, confirmationCodeUQ) {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByCode получает запись по коду подтверждения
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Appointment, error) {
	return r.getOne(ctx, "GetByCode", squirrel.Eq{"confirmation_code": code})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %w", ErrScanRow, op, err)
	}

	return appt, nil
}

// ListBarberDay получает записи барбера, которые начинаются в указанный день, по возрастанию времени
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) ListBarberDay(ctx context.Context, filter domain.BarberDayFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	dayStart, dayEnd := filter.DayBounds()

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"barber": filter.Barber}).
		Where(squirrel.GtOrEq{"start_time": dayStart.UTC()}).
		Where(squirrel.Lt{"start_time": dayEnd.UTC()}).
		OrderBy("start_time ASC", "id ASC")

	if !filter.IncludeInactive {
		builder = builder.Where(squirrel.Eq{"status": domain.StatusConfirmed})
	}

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBarberDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBarberDay - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// LockBarberCalendar берет транзакционную advisory-блокировку календаря барбера
// Блокировка снимается при завершении транзакции
func (r *Repository) LockBarberCalendar(ctx context.Context, barber string) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return ErrNotInTransaction
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", "barber:"+barber); err != nil {
		return fmt.Errorf("%w: LockBarberCalendar - execute lock: %w", ErrExecQuery, err)
	}

	return nil
}

// UpdateSchedule переносит запись на новое время, сохраняя код подтверждения
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, startTime time.Time, durationMinutes int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("start_time", startTime.UTC()).
		Set("duration_minutes", durationMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateSchedule", query, args)
}

// Cancel переводит подтвержденную запись в статус cancelled
// Записи никогда не удаляются физически
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Cancel", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment

	err := row.Scan(
		&appt.ID,
		&appt.ConfirmationCode,
		&appt.Barber,
		&appt.CustomerName,
		&appt.CustomerPhone,
		pq.Array(&appt.Services),
		&appt.StartTime,
		&appt.DurationMinutes,
		&appt.TotalPriceCents,
		&appt.Notes,
		&appt.Status,
		&appt.Source,
		&appt.CancelledAt,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pgUniqueViolation && pqErr.Constraint == constraint
}
