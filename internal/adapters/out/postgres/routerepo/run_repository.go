package routerepo

import (
	"context"
	"errors"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"
	"routeengine/internal/pkg/errs"

	"gorm.io/gorm"
)

// DefaultRunListLimit bounds ListByDay when the caller passes a non-positive limit.
const DefaultRunListLimit = 50

// GormRouteRunRepository implements ports.RouteRunRepository using GORM. Runs
// are append-only.
type GormRouteRunRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormRouteRunRepository creates a run repository bound to db.
func NewGormRouteRunRepository(db *gorm.DB, tracker aggregateTracker) *GormRouteRunRepository {
	return &GormRouteRunRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends a run.
func (r *GormRouteRunRepository) Add(ctx context.Context, run *route.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	dto := runFromDomain(run)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(run.ID(), run)
	return nil
}

// Get loads a run by id.
func (r *GormRouteRunRepository) Get(ctx context.Context, id kernel.UUID) (*route.Run, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RouteRunDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("route run", id.String())
		}
		return nil, err
	}

	return runToDomain(dto)
}

// ListByDay returns up to limit runs of a weekday, newest first.
func (r *GormRouteRunRepository) ListByDay(ctx context.Context, day kernel.Day, limit int) ([]*route.Run, error) {
	if limit <= 0 {
		limit = DefaultRunListLimit
	}

	var dtos []RouteRunDTO
	if err := r.db.WithContext(ctx).
		Where("day = ?", day.String()).
		Order("created_at DESC, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	runs := make([]*route.Run, 0, len(dtos))
	for _, dto := range dtos {
		run, err := runToDomain(dto)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}
