package routeorderrepo

import (
	"context"
	"errors"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/routeorder"
	"routeengine/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRouteOrderRepository implements ports.RouteOrderRepository using GORM.
// Entries are values, so nothing is tracked.
type GormRouteOrderRepository struct {
	db *gorm.DB
}

// NewGormRouteOrderRepository creates a route order repository bound to db.
func NewGormRouteOrderRepository(db *gorm.DB) *GormRouteOrderRepository {
	return &GormRouteOrderRepository{db: db}
}

// Add inserts an entry. A second row for the same (driver, client) fails on the primary key.
func (r *GormRouteOrderRepository) Add(ctx context.Context, entry routeorder.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Find loads the entry of (driver, client).
func (r *GormRouteOrderRepository) Find(
	ctx context.Context,
	driverID kernel.UUID,
	clientID kernel.UUID,
) (routeorder.Entry, error) {
	if err := errors.Join(driverID.Validate(), clientID.Validate()); err != nil {
		return routeorder.Entry{}, err
	}

	var dto RouteOrderDTO
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND client_id = ?", driverID.Bytes(), clientID.Bytes()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return routeorder.Entry{}, errs.NewObjectNotFoundError("route order", clientID.String())
		}
		return routeorder.Entry{}, err
	}

	return toDomain(dto)
}

// Delete removes the entry of (driver, client). Deleting a missing entry is not an error.
func (r *GormRouteOrderRepository) Delete(ctx context.Context, driverID kernel.UUID, clientID kernel.UUID) error {
	if err := errors.Join(driverID.Validate(), clientID.Validate()); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("driver_id = ? AND client_id = ?", driverID.Bytes(), clientID.Bytes()).
		Delete(&RouteOrderDTO{}).Error
}

// ListByDriver returns a driver's entries ordered by (position, client id).
func (r *GormRouteOrderRepository) ListByDriver(ctx context.Context, driverID kernel.UUID) ([]routeorder.Entry, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RouteOrderDTO
	if err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID.Bytes()).
		Order("position, client_id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(dtos)
}

// ListByClient returns every entry that names the client, whatever the driver.
func (r *GormRouteOrderRepository) ListByClient(ctx context.Context, clientID kernel.UUID) ([]routeorder.Entry, error) {
	if err := clientID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RouteOrderDTO
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID.Bytes()).
		Order("driver_id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(dtos)
}

// MaxPosition returns the highest position of a driver, or 0 when the driver has no entries.
func (r *GormRouteOrderRepository) MaxPosition(ctx context.Context, driverID kernel.UUID) (int, error) {
	if err := driverID.Validate(); err != nil {
		return 0, err
	}

	var maxPos int
	if err := r.db.WithContext(ctx).
		Model(&RouteOrderDTO{}).
		Where("driver_id = ?", driverID.Bytes()).
		Select("COALESCE(MAX(position), 0)").
		Row().
		Scan(&maxPos); err != nil {
		return 0, err
	}
	return maxPos, nil
}
