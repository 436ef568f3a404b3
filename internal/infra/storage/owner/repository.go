package owner

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

// Repository репозиторий профилей владельцев и их рабочего расписания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория владельцев
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var profileColumns = []string{
	"id",
	"user_id",
	"salon_name",
	"address",
	"open_time",
	"close_time",
	"day_off",
	"created_at",
	"updated_at",
}

// GetByID получает профиль владельца по ID профиля
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.OwnerProfile, error) {
	return r.getByColumn(ctx, "id", id)
}

// GetByUserID получает профиль владельца по ID пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.OwnerProfile, error) {
	return r.getByColumn(ctx, "user_id", userID)
}

// UpdateSchedule обновляет рабочее расписание владельца
func (r *Repository) UpdateSchedule(ctx context.Context, profileID uuid.UUID, openTime, closeTime string, dayOff *int) (*domain.OwnerProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("owner_profiles").
		Set("open_time", openTime).
		Set("close_time", closeTime).
		Set("day_off", dayOff).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": profileID}).
		Suffix("RETURNING " + joinColumns(profileColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	profile, err := scanProfile(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// UpdateProfile обновляет название салона и адрес
func (r *Repository) UpdateProfile(ctx context.Context, profileID uuid.UUID, salonName, address *string) (*domain.OwnerProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("owner_profiles").
		Set("salon_name", salonName).
		Set("address", address).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": profileID}).
		Suffix("RETURNING " + joinColumns(profileColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateProfile - build update query: %v", ErrBuildQuery, err)
	}

	profile, err := scanProfile(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (r *Repository) getByColumn(ctx context.Context, column string, value uuid.UUID) (*domain.OwnerProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(profileColumns...).
		From("owner_profiles").
		Where(squirrel.Eq{column: value}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getByColumn - build select query: %v", ErrBuildQuery, err)
	}

	profile, err := scanProfile(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func scanProfile(row *sql.Row) (*domain.OwnerProfile, error) {
	var p domain.OwnerProfile
	var openTime, closeTime sql.NullString
	var dayOff sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.SalonName,
		&p.Address,
		&openTime,
		&closeTime,
		&dayOff,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan owner profile: %v", ErrScanRow, err)
	}

	if openTime.Valid {
		if err := p.OpenTime.Scan(openTime.String); err != nil {
			return nil, fmt.Errorf("%w: scan open_time: %v", ErrScanRow, err)
		}
	}
	if closeTime.Valid {
		if err := p.CloseTime.Scan(closeTime.String); err != nil {
			return nil, fmt.Errorf("%w: scan close_time: %v", ErrScanRow, err)
		}
	}
	if dayOff.Valid {
		v := int(dayOff.Int64)
		p.DayOff = &v
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

func joinColumns(columns []string) string {
	result := columns[0]
	for _, c := range columns[1:] {
		result += ", " + c
	}
	return result
}
