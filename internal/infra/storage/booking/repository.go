package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/internal/domain"
	"github.com/sp075/salon-booking-system/pkg/dbmetrics"
	"github.com/sp075/salon-booking-system/pkg/psqlbuilder"
	"github.com/sp075/salon-booking-system/pkg/types"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// bookingColumns колонки таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"customer_id",
	"owner_profile_id",
	"booking_date",
	"start_time",
	"end_time",
	"total_price",
	"status",
	"held_at",
	"created_at",
	"updated_at",
}

// CreateWithServices создает бронирование вместе с назначениями услуг
// Все INSERT выполняются одним executor'ом: если в контексте есть транзакция,
// записи атомарны, частичное состояние не видно конкурентным читателям.
// Вызывается только из usecase создания бронирования внутри сериализуемой транзакции.
func (r *Repository) CreateWithServices(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"customer_id",
			"owner_profile_id",
			"booking_date",
			"start_time",
			"end_time",
			"total_price",
			"status",
			"held_at",
		).
		Values(
			b.ID,
			b.CustomerID,
			b.OwnerProfileID,
			b.BookingDate.Format(domain.DateFormat),
			b.StartTime,
			b.EndTime,
			b.TotalPrice,
			b.Status,
			b.HeldAt,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateWithServices - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateWithServices - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	for i := range b.Services {
		assignment := &b.Services[i]
		assignment.BookingID = b.ID

		query, args, err := psqlbuilder.Insert("booking_services").
			Columns("booking_id", "service_id", "slot_start", "slot_end", "price").
			Values(assignment.BookingID, assignment.ServiceID, assignment.SlotStart, assignment.SlotEnd, assignment.Price).
			Suffix("RETURNING id").
			ToSql()

		if err != nil {
			return nil, fmt.Errorf("%w: CreateWithServices - build assignment insert: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, query, args...).Scan(&assignment.ID); err != nil {
			return nil, fmt.Errorf("%w: CreateWithServices - execute assignment insert: %v", ErrExecQuery, err)
		}
	}

	return b, nil
}

// GetByID получает бронирование с назначениями услуг
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	services, err := r.getAssignments(ctx, executor, []uuid.UUID{b.ID})
	if err != nil {
		return nil, err
	}
	b.Services = services[b.ID]

	return b, nil
}

// GetBookedSlots возвращает слоты назначений услуг для бронирований владельца
// на дату с одним из указанных статусов, в хронологическом порядке.
// Внутри транзакции блокирует строки bookings через FOR UPDATE OF b,
// чтобы конкурентное создание бронирования не прочитало устаревшую картину занятости.
func (r *Repository) GetBookedSlots(ctx context.Context, ownerProfileID uuid.UUID, date time.Time, statuses []domain.BookingStatus) ([]domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("bs.slot_start", "bs.slot_end").
		From("booking_services bs").
		Join("bookings b ON b.id = bs.booking_id").
		Where(squirrel.Eq{"b.owner_profile_id": ownerProfileID}).
		Where(squirrel.Eq{"b.booking_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"b.status": statusStrings}).
		OrderBy("bs.slot_start ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.Slot, 0)
	for rows.Next() {
		var slot domain.Slot
		if err := rows.Scan(&slot.Start, &slot.End); err != nil {
			return nil, fmt.Errorf("%w: GetBookedSlots - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetByCustomer получает бронирования клиента, опционально фильтруя по статусу
// Сортировка: сначала свежие даты, внутри даты поздние времена
func (r *Repository) GetByCustomer(ctx context.Context, customerID uuid.UUID, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("booking_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	return r.queryBookings(ctx, executor, selectBuilder, "GetByCustomer")
}

// GetByOwnerWithFilter получает бронирования владельца с фильтрацией по дате и статусу
func (r *Repository) GetByOwnerWithFilter(ctx context.Context, filter domain.OwnerBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"owner_profile_id": filter.OwnerProfileID}).
		OrderBy("booking_date DESC, start_time ASC")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": filter.Date.Format(domain.DateFormat)})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	return r.queryBookings(ctx, executor, selectBuilder, "GetByOwnerWithFilter")
}

// UpdateStatus переводит бронирование из fromStatus в toStatus
// Предусловие по статусу выполняется в самом UPDATE: при конкурентном изменении
// строка не попадает под WHERE и возвращается ErrStatusConflict.
// clearHold дополнительно обнуляет held_at (используется при подтверждении)
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, fromStatus, toStatus domain.BookingStatus, clearHold bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", toStatus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": fromStatus})

	if clearHold {
		updateBuilder = updateBuilder.Set("held_at", nil)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// ReleaseAbandoned массово переводит просроченные pending бронирования в abandoned
// Идемпотентна: повторный запуск без подходящих строк ничего не делает
func (r *Repository) ReleaseAbandoned(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusAbandoned).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.NotEq{"held_at": nil}).
		Where(squirrel.Lt{"held_at": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseAbandoned - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSweep(ctx, executor, query, args, "ReleaseAbandoned")
}

// AutoConfirmUpcoming массово подтверждает pending бронирования на сегодня,
// начинающиеся не позже threshold. Предикат status=pending в WHERE исключает
// гонку с ReleaseAbandoned: уже заброшенная строка не будет подтверждена
func (r *Repository) AutoConfirmUpcoming(ctx context.Context, date time.Time, threshold types.TimeString) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("held_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.Eq{"booking_date": date.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"start_time": threshold}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: AutoConfirmUpcoming - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSweep(ctx, executor, query, args, "AutoConfirmUpcoming")
}

// MarkCompleted массово завершает confirmed бронирования, чьё время окончания прошло
func (r *Repository) MarkCompleted(ctx context.Context, today time.Time, now types.TimeString) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Or{
			squirrel.Lt{"booking_date": today.Format(domain.DateFormat)},
			squirrel.And{
				squirrel.Eq{"booking_date": today.Format(domain.DateFormat)},
				squirrel.LtOrEq{"end_time": now},
			},
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MarkCompleted - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSweep(ctx, executor, query, args, "MarkCompleted")
}

// Вспомогательные методы

func (r *Repository) execSweep(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) (int64, error) {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return rowsAffected, nil
}

func (r *Repository) queryBookings(ctx context.Context, executor DBExecutor, selectBuilder squirrel.SelectBuilder, op string) ([]*domain.Booking, error) {
	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	ids := make([]uuid.UUID, 0)

	for rows.Next() {
		b, err := scanBookingRow(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
		ids = append(ids, b.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	if len(ids) == 0 {
		return bookings, nil
	}

	assignments, err := r.getAssignments(ctx, executor, ids)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		b.Services = assignments[b.ID]
	}

	return bookings, nil
}

// getAssignments загружает назначения услуг для набора бронирований одной выборкой
func (r *Repository) getAssignments(ctx context.Context, executor DBExecutor, bookingIDs []uuid.UUID) (map[uuid.UUID][]domain.BookingServiceAssignment, error) {
	query, args, err := psqlbuilder.Select("id", "booking_id", "service_id", "slot_start", "slot_end", "price").
		From("booking_services").
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		OrderBy("slot_start ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getAssignments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getAssignments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]domain.BookingServiceAssignment, len(bookingIDs))
	for rows.Next() {
		var a domain.BookingServiceAssignment
		if err := rows.Scan(&a.ID, &a.BookingID, &a.ServiceID, &a.SlotStart, &a.SlotEnd, &a.Price); err != nil {
			return nil, fmt.Errorf("%w: getAssignments - scan row: %v", ErrScanRow, err)
		}
		result[a.BookingID] = append(result[a.BookingID], a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getAssignments - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row *sql.Row) (*domain.Booking, error) {
	b, err := doScanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan booking: %v", ErrScanRow, err)
	}
	return b, nil
}

func scanBookingRow(rows *sql.Rows) (*domain.Booking, error) {
	b, err := doScanBooking(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: scan booking row: %v", ErrScanRow, err)
	}
	return b, nil
}

func doScanBooking(s rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var heldAt, createdAt, updatedAt sql.NullTime

	err := s.Scan(
		&b.ID,
		&b.CustomerID,
		&b.OwnerProfileID,
		&b.BookingDate,
		&b.StartTime,
		&b.EndTime,
		&b.TotalPrice,
		&b.Status,
		&heldAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if heldAt.Valid {
		b.HeldAt = &heldAt.Time
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}
