package awayday

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/pkg/dbmetrics"
	"github.com/m04kA/KingsBarber-BookingService/pkg/psqlbuilder"
)

const tableName = "away_days"

// Repository реестр выходных дней барберов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория выходных дней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// IsAway проверяет, отмечен ли день выходным для барбера
func (r *Repository) IsAway(ctx context.Context, barber string, date domain.CalendarDate) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From(tableName).
		Where(squirrel.Eq{"barber": barber, "day": date}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsAway - build select query: %v", ErrBuildQuery, err)
	}

	var away bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&away); err != nil {
		return false, fmt.Errorf("%w: IsAway - scan: %w", ErrScanRow, err)
	}

	return away, nil
}

// List возвращает выходные дни начиная с from по возрастанию даты
// Пустой barber означает всех барберов
func (r *Repository) List(ctx context.Context, barber string, from domain.CalendarDate) ([]domain.AwayDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id", "barber", "day", "created_at").
		From(tableName).
		Where(squirrel.GtOrEq{"day": from}).
		OrderBy("day ASC", "barber ASC")

	if barber != "" {
		builder = builder.Where(squirrel.Eq{"barber": barber})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]domain.AwayDay, 0)
	for rows.Next() {
		var d domain.AwayDay
		if err := rows.Scan(&d.ID, &d.Barber, &d.Date, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return days, nil
}

// Add отмечает день выходным. Повторное добавление не является ошибкой
// Возвращает true, если запись создана
func (r *Repository) Add(ctx context.Context, barber string, date domain.CalendarDate) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("barber", "day").
		Values(barber, date).
		Suffix("ON CONFLICT (barber, day) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Add - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Add - execute insert: %w", ErrExecQuery, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Add - get rows affected: %v", ErrExecQuery, err)
	}

	return n > 0, nil
}

// Remove снимает отметку выходного дня. Возвращает true, если запись существовала
func (r *Repository) Remove(ctx context.Context, barber string, date domain.CalendarDate) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"barber": barber, "day": date}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Remove - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Remove - execute delete: %w", ErrExecQuery, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Remove - get rows affected: %v", ErrExecQuery, err)
	}

	return n > 0, nil
}
