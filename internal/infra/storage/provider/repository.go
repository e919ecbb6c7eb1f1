package provider

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBooking/pkg/psqlbuilder"
)

var providerColumns = []string{
	"id",
	"owner_user_id",
	"name",
	"specialization",
	"latitude",
	"longitude",
	"location_label",
	"description",
	"created_at",
	"updated_at",
}

// Repository каталог мастеров.
// Каталог читается заново при каждом вызове, кеширования нет.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает весь каталог мастеров вместе с услугами, упорядоченный по id
func (r *Repository) List(ctx context.Context) ([]*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(providerColumns...).
		From("providers").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	providers := make([]*domain.Provider, 0)
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan provider: %v", ErrScanRow, err)
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	if len(providers) == 0 {
		return providers, nil
	}

	if err := r.attachServices(ctx, executor, providers); err != nil {
		return nil, err
	}

	return providers, nil
}

// GetByID получает мастера по ID вместе с услугами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(providerColumns...).
		From("providers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanProvider(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan provider: %v", ErrScanRow, err)
	}

	if err := r.attachServices(ctx, executor, []*domain.Provider{p}); err != nil {
		return nil, err
	}

	return p, nil
}

// attachServices загружает услуги одним запросом и раскладывает их по мастерам
func (r *Repository) attachServices(ctx context.Context, executor DBExecutor, providers []*domain.Provider) error {
	byID := make(map[int64]*domain.Provider, len(providers))
	ids := make([]int64, len(providers))
	for i, p := range providers {
		byID[p.ID] = p
		ids[i] = p.ID
	}

	query, args, err := psqlbuilder.Select(
		"provider_id",
		"name",
		"price",
		"duration_minutes",
	).
		From("provider_services").
		// Один параметр-массив вместо IN ($1..$n): каталог не упирается в лимит 65535 параметров
		Where("provider_id = ANY(?)", pq.Array(ids)).
		OrderBy("provider_id ASC", "position ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var providerID int64
		var service domain.ProviderService
		if err := rows.Scan(&providerID, &service.Name, &service.Price, &service.DurationMinutes); err != nil {
			return fmt.Errorf("%w: attachServices - scan service: %v", ErrScanRow, err)
		}
		if p, ok := byID[providerID]; ok {
			p.Services = append(p.Services, service)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachServices - rows error: %v", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProvider(row rowScanner) (*domain.Provider, error) {
	var p domain.Provider
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.Specialization,
		&p.Location.Lat,
		&p.Location.Lng,
		&p.LocationLabel,
		&p.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}
