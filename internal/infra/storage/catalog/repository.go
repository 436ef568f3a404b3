package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/internal/domain"
	"github.com/sp075/salon-booking-system/pkg/dbmetrics"
	"github.com/sp075/salon-booking-system/pkg/psqlbuilder"
)

// Repository репозиторий каталога услуг и услуг, включённых владельцами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListServices возвращает все услуги каталога
func (r *Repository) ListServices(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "default_price", "duration_minutes").
		From("services").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.DefaultPrice, &s.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetOfferedServices возвращает услуги, включённые владельцем, вместе с данными каталога
// Включает и неактивные записи: фильтрация по is_active остаётся за вызывающим
func (r *Repository) GetOfferedServices(ctx context.Context, ownerProfileID uuid.UUID) ([]*domain.OwnerService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"os.id",
		"os.owner_profile_id",
		"os.service_id",
		"os.is_active",
		"os.custom_price",
		"os.created_at",
		"os.updated_at",
		"s.id",
		"s.name",
		"s.default_price",
		"s.duration_minutes",
	).
		From("owner_services os").
		Join("services s ON s.id = os.service_id").
		Where(squirrel.Eq{"os.owner_profile_id": ownerProfileID}).
		OrderBy("s.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOfferedServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOfferedServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	offerings := make([]*domain.OwnerService, 0)
	for rows.Next() {
		offering, err := scanOffering(rows)
		if err != nil {
			return nil, err
		}
		offerings = append(offerings, offering)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOfferedServices - rows error: %v", ErrScanRow, err)
	}

	return offerings, nil
}

// UpsertOwnerService включает услугу каталога для владельца
// Повторное добавление реактивирует запись и обновляет цену (как в upsert)
func (r *Repository) UpsertOwnerService(ctx context.Context, ownerProfileID uuid.UUID, serviceID int64, customPrice *float64) (*domain.OwnerService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("owner_services").
		Columns("owner_profile_id", "service_id", "custom_price", "is_active").
		Values(ownerProfileID, serviceID, customPrice, true).
		Suffix(`ON CONFLICT (owner_profile_id, service_id)
			DO UPDATE SET custom_price = EXCLUDED.custom_price, is_active = TRUE, updated_at = NOW()
			RETURNING id, is_active, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOwnerService - build insert query: %v", ErrBuildQuery, err)
	}

	offering := &domain.OwnerService{
		OwnerProfileID: ownerProfileID,
		ServiceID:      serviceID,
		CustomPrice:    customPrice,
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&offering.ID, &offering.IsActive, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOwnerService - execute insert: %v", ErrExecQuery, err)
	}
	offering.CreatedAt = createdAt.Time
	offering.UpdatedAt = updatedAt.Time

	return offering, nil
}

// DeleteOwnerService удаляет услугу владельца
func (r *Repository) DeleteOwnerService(ctx context.Context, ownerProfileID uuid.UUID, serviceID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("owner_services").
		Where(squirrel.Eq{"owner_profile_id": ownerProfileID}).
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOwnerService - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOwnerService - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOwnerService - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOfferingNotFound
	}

	return nil
}

func scanOffering(rows *sql.Rows) (*domain.OwnerService, error) {
	var offering domain.OwnerService
	var service domain.Service
	var customPrice sql.NullFloat64
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&offering.ID,
		&offering.OwnerProfileID,
		&offering.ServiceID,
		&offering.IsActive,
		&customPrice,
		&createdAt,
		&updatedAt,
		&service.ID,
		&service.Name,
		&service.DefaultPrice,
		&service.DurationMinutes,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: scan owner service: %v", ErrScanRow, err)
	}

	if customPrice.Valid {
		offering.CustomPrice = &customPrice.Float64
	}
	offering.CreatedAt = createdAt.Time
	offering.UpdatedAt = updatedAt.Time
	offering.Service = &service

	return &offering, nil
}
