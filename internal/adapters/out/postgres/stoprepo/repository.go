package stoprepo

import (
	"context"
	"errors"
	"time"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/stop"
	"routeengine/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStopRepository implements ports.StopRepository using GORM.
type GormStopRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStopRepository creates a stop repository bound to db.
func NewGormStopRepository(db *gorm.DB, tracker aggregateTracker) *GormStopRepository {
	return &GormStopRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new stop.
func (r *GormStopRepository) Add(ctx context.Context, entity *stop.Stop) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entity.ID(), entity)
	return nil
}

// Update overwrites an existing stop, writing a NULL driver when unassigned.
func (r *GormStopRepository) Update(ctx context.Context, entity *stop.Stop) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	result := r.db.WithContext(ctx).Model(&StopDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("stop", entity.ID().String())
	}

	r.tracker.TrackAggregate(entity.ID(), entity)
	return nil
}

// Get loads a stop by id.
func (r *GormStopRepository) Get(ctx context.Context, id kernel.UUID) (*stop.Stop, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StopDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stop", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany loads the stops that exist among ids, ordered by id.
func (r *GormStopRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*stop.Stop, error) {
	if len(ids) == 0 {
		return []*stop.Stop{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []StopDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(dtos)
}

// ListByClient returns every stop of a client ordered by date.
func (r *GormStopRepository) ListByClient(ctx context.Context, clientID kernel.UUID) ([]*stop.Stop, error) {
	if err := clientID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StopDTO
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID.Bytes()).
		Order("service_date, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(dtos)
}

// ListByDriverAndDate returns a driver's stops on one calendar date ordered by sequence.
func (r *GormStopRepository) ListByDriverAndDate(
	ctx context.Context,
	driverID kernel.UUID,
	date time.Time,
) ([]*stop.Stop, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StopDTO
	if err := r.db.WithContext(ctx).
		Where("driver_id = ? AND date(service_date) = ?", driverID.Bytes(), DateKey(date)).
		Order("sequence, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []StopDTO) ([]*stop.Stop, error) {
	stops := make([]*stop.Stop, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, nil
}
