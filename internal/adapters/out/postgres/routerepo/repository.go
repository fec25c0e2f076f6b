package routerepo

import (
	"context"
	"errors"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"
	"routeengine/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormRouteRepository implements ports.RouteRepository using GORM.
//
// Reads take row locks on PostgreSQL so that two transactions editing the same
// driver's list serialize instead of losing an update.
type GormRouteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormRouteRepository creates a route repository bound to db.
func NewGormRouteRepository(db *gorm.DB, tracker aggregateTracker) *GormRouteRepository {
	return &GormRouteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get loads the list of one driver for one weekday.
func (r *GormRouteRepository) Get(ctx context.Context, driverID kernel.UUID, day kernel.Day) (*route.DriverRoute, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dto DriverRouteDTO
	err := r.locking(ctx).
		Where("driver_id = ? AND day = ?", driverID.Bytes(), day.String()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("route", driverID.String()+"/"+day.String())
		}
		return nil, err
	}

	return routeToDomain(dto)
}

// ListByDay returns every list of a weekday ordered by driver id.
func (r *GormRouteRepository) ListByDay(ctx context.Context, day kernel.Day) ([]*route.DriverRoute, error) {
	var dtos []DriverRouteDTO
	if err := r.locking(ctx).
		Where("day = ?", day.String()).
		Order("driver_id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	routes := make([]*route.DriverRoute, 0, len(dtos))
	for _, dto := range dtos {
		rt, err := routeToDomain(dto)
		if err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, nil
}

// Save inserts or replaces the list of (driver, day).
func (r *GormRouteRepository) Save(ctx context.Context, rt *route.DriverRoute) error {
	if err := rt.Validate(); err != nil {
		return err
	}

	dto := routeFromDomain(rt)
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "driver_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"stop_ids", "updated_at"}),
	}).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(rt.DriverID(), rt)
	return nil
}

func (r *GormRouteRepository) locking(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}
