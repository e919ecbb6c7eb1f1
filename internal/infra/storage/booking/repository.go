package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBooking/pkg/psqlbuilder"
)

// Коды ошибок Postgres, означающие конфликт за слот
const (
	uniqueViolation      = "23505"
	serializationFailure = "40001"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"provider_id",
	"booking_date",
	"time_slot",
	"status",
	"provider_name",
	"service_name",
	"service_price",
	"duration_minutes",
	"notes",
	"cancelled_by",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository журнал записей.
// Инвариант "не более одной подтвержденной записи на (мастер, дата, слот)"
// обеспечивается частичным уникальным индексом bookings_confirmed_slot_uniq.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// IsSlotConflict сообщает, что Postgres отклонил запись из-за конкурентной записи на тот же слот:
// нарушение bookings_confirmed_slot_uniq или сбой сериализации, в том числе на COMMIT.
func IsSlotConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolation || pqErr.Code == serializationFailure
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// Нарушение уникальности слота возвращается как ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"provider_id",
			"booking_date",
			"time_slot",
			"status",
			"provider_name",
			"service_name",
			"service_price",
			"duration_minutes",
			"notes",
		).
		Values(
			booking.UserID,
			booking.ProviderID,
			booking.Date,
			string(booking.TimeSlot),
			string(booking.Status),
			booking.ProviderName,
			booking.ServiceName,
			booking.ServicePrice,
			booking.DurationMinutes,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if IsSlotConflict(err) {
			return nil, ErrSlotNotAvailable
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает историю записей клиента (сначала новые).
// Опционально фильтрует по статусу.
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID})

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := selectBuilder.
		OrderBy("booking_date DESC", "time_slot DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByProviderWithFilter получает записи мастера для кабинета.
// Для конкретной даты сортирует по слоту (ASC), иначе сначала новые.
func (r *Repository) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"provider_id": filter.ProviderID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("time_slot ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC", "time_slot DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetTakenProviderIDs возвращает мастеров, у которых слот (date, slot) занят подтвержденной записью
func (r *Repository) GetTakenProviderIDs(ctx context.Context, date time.Time, slot domain.TimeSlot) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT provider_id").
		From("bookings").
		Where(squirrel.Eq{
			"booking_date": date,
			"time_slot":    string(slot),
			"status":       string(domain.StatusConfirmed),
		}).
		OrderBy("provider_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTakenProviderIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTakenProviderIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	providerIDs := make([]int64, 0)
	for rows.Next() {
		var providerID int64
		if err := rows.Scan(&providerID); err != nil {
			return nil, fmt.Errorf("%w: GetTakenProviderIDs - scan provider_id: %v", ErrScanRow, err)
		}
		providerIDs = append(providerIDs, providerID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTakenProviderIDs - rows error: %v", ErrScanRow, err)
	}

	return providerIDs, nil
}

// GetTakenSlots возвращает занятые слоты мастера на дату
func (r *Repository) GetTakenSlots(ctx context.Context, providerID int64, date time.Time) ([]domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("time_slot").
		From("bookings").
		Where(squirrel.Eq{
			"provider_id":  providerID,
			"booking_date": date,
			"status":       string(domain.StatusConfirmed),
		}).
		OrderBy("time_slot ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTakenSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTakenSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.TimeSlot, 0)
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("%w: GetTakenSlots - scan time_slot: %v", ErrScanRow, err)
		}
		slots = append(slots, domain.TimeSlot(slot))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTakenSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// IsSlotTaken проверяет, есть ли подтвержденная запись на (мастер, дата, слот)
func (r *Repository) IsSlotTaken(ctx context.Context, providerID int64, date time.Time, slot domain.TimeSlot) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("bookings").
		Where(squirrel.Eq{
			"provider_id":  providerID,
			"booking_date": date,
			"time_slot":    string(slot),
			"status":       string(domain.StatusConfirmed),
		}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsSlotTaken - build select query: %v", ErrBuildQuery, err)
	}

	var taken bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&taken); err != nil {
		return false, fmt.Errorf("%w: IsSlotTaken - scan: %v", ErrScanRow, err)
	}

	return taken, nil
}

// Cancel отменяет подтвержденное бронирование с указанием стороны и причины.
// Если подтвержденной записи с таким id нет, возвращает ErrBookingNotFound.
func (r *Repository) Cancel(ctx context.Context, id int64, by domain.CancelledBy, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", string(domain.StatusCancelled)).
		Set("cancelled_by", string(by)).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": string(domain.StatusConfirmed)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var timeSlot, status string
	var cancelledBy sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.ProviderID,
		&b.Date,
		&timeSlot,
		&status,
		&b.ProviderName,
		&b.ServiceName,
		&b.ServicePrice,
		&b.DurationMinutes,
		&b.Notes,
		&cancelledBy,
		&b.CancellationReason,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.TimeSlot = domain.TimeSlot(timeSlot)
	b.Status = domain.BookingStatus(status)
	if cancelledBy.Valid {
		by := domain.CancelledBy(cancelledBy.String)
		b.CancelledBy = &by
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует все строки результата в список бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
