// Package routerepo persists per-driver, per-weekday route lists and the
// append-only route run log with GORM.
package routerepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// DriverRouteDTO is the row layout of the driver_routes table, keyed by (driver, day).
type DriverRouteDTO struct {
	DriverID  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Day       string     `gorm:"type:varchar(16);primaryKey"`
	StopIDs   StopIDList `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
}

// TableName overrides GORM's default "driver_route_dtos".
func (DriverRouteDTO) TableName() string {
	return "driver_routes"
}

// RouteRunDTO is the row layout of the route_runs table.
type RouteRunDTO struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Day       string      `gorm:"type:varchar(16);not null;index:idx_route_runs_day_created,priority:1"`
	Reason    string      `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time   `gorm:"not null;index:idx_route_runs_day_created,priority:2"`
	Snapshot  SnapshotDoc `gorm:"not null"`
}

// TableName overrides GORM's default "route_run_dtos".
func (RouteRunDTO) TableName() string {
	return "route_runs"
}

// SnapshotEntryDoc is the stored form of one snapshot entry.
type SnapshotEntryDoc struct {
	DriverID   string   `json:"driverId"`
	DriverName string   `json:"driverName"`
	Color      string   `json:"color"`
	StopIDs    []string `json:"stopIds"`
}

// SnapshotDoc is a run snapshot stored as a JSON document.
type SnapshotDoc []SnapshotEntryDoc

// GormDataType implements schema.GormDataTypeInterface.
func (SnapshotDoc) GormDataType() string {
	return "json"
}

// GormDBDataType stores jsonb on PostgreSQL and text elsewhere.
func (SnapshotDoc) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}

// Value encodes the document as JSON.
func (d SnapshotDoc) Value() (driver.Value, error) {
	if d == nil {
		d = SnapshotDoc{}
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan decodes a JSON document.
func (d *SnapshotDoc) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*d = SnapshotDoc{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("snapshot: unsupported source type %T", src)
	}
	return json.Unmarshal(b, d)
}

func routeFromDomain(r *route.DriverRoute) DriverRouteDTO {
	return DriverRouteDTO{
		DriverID: r.DriverID().Bytes(),
		Day:      r.Day().String(),
		StopIDs:  NewStopIDList(r.StopIDs()),
	}
}

func routeToDomain(dto DriverRouteDTO) (*route.DriverRoute, error) {
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	day, err := kernel.ParseDay(dto.Day)
	if err != nil {
		return nil, err
	}
	ids, err := dto.StopIDs.ToDomain()
	if err != nil {
		return nil, err
	}
	return route.NewDriverRoute(driverID, day, ids)
}

func runFromDomain(r *route.Run) RouteRunDTO {
	snapshot := r.Snapshot()
	doc := make(SnapshotDoc, 0, len(snapshot))
	for _, e := range snapshot {
		ids := make([]string, 0, len(e.StopIDs))
		for _, id := range e.StopIDs {
			ids = append(ids, id.String())
		}
		doc = append(doc, SnapshotEntryDoc{
			DriverID:   e.DriverID.String(),
			DriverName: e.DriverName,
			Color:      e.Color,
			StopIDs:    ids,
		})
	}

	return RouteRunDTO{
		ID:        r.ID().Bytes(),
		Day:       r.Day().String(),
		Reason:    string(r.Reason()),
		CreatedAt: r.CreatedAt(),
		Snapshot:  doc,
	}
}

func runToDomain(dto RouteRunDTO) (*route.Run, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	day, err := kernel.ParseDay(dto.Day)
	if err != nil {
		return nil, err
	}

	snapshot := make([]route.SnapshotEntry, 0, len(dto.Snapshot))
	for _, e := range dto.Snapshot {
		driverID, parseErr := kernel.UUIDFromString(e.DriverID)
		if parseErr != nil {
			return nil, parseErr
		}
		ids := make([]kernel.UUID, 0, len(e.StopIDs))
		for _, raw := range e.StopIDs {
			stopID, stopErr := kernel.UUIDFromString(raw)
			if stopErr != nil {
				return nil, stopErr
			}
			ids = append(ids, stopID)
		}
		snapshot = append(snapshot, route.SnapshotEntry{
			DriverID:   driverID,
			DriverName: e.DriverName,
			Color:      e.Color,
			StopIDs:    ids,
		})
	}

	return route.RestoreRun(id, day, route.Reason(dto.Reason), dto.CreatedAt, snapshot)
}
