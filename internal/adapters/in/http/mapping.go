package http

import (
	"slices"
	"time"

	"routeengine/internal/core/application/usecases/commands"
	"routeengine/internal/core/application/usecases/queries"
	"routeengine/internal/core/domain/model/client"
	"routeengine/internal/core/domain/model/driver"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"
	"routeengine/internal/core/domain/model/stop"
	"routeengine/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toKernelUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toKernelUUIDPtr(id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	out, err := toKernelUUID(*id)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func toKernelUUIDs(ids []openapi_types.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		k, err := toKernelUUID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

func apiUUIDPtr(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	out := id.Bytes()
	return &out
}

func apiUUIDs(ids []kernel.UUID) []openapi_types.UUID {
	out := make([]openapi_types.UUID, len(ids))
	for i, id := range ids {
		out[i] = id.Bytes()
	}
	return out
}

func apiDate(t time.Time) openapi_types.Date {
	return openapi_types.Date{Time: t}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func latLng(l *kernel.Location) (*float64, *float64) {
	if l == nil {
		return nil, nil
	}
	lat, lng := l.Lat(), l.Lng()
	return &lat, &lng
}

func toDriverResponse(d *driver.Driver) servers.Driver {
	return servers.Driver{
		Id:       d.ID().Bytes(),
		Name:     d.Name(),
		Color:    d.Color(),
		ScopeDay: d.ScopeDay().String(),
	}
}

func toDriverViewResponse(v queries.DriverView) servers.Driver {
	return servers.Driver{
		Id:       v.ID.Bytes(),
		Name:     v.Name,
		Color:    v.Color,
		ScopeDay: v.ScopeDay.String(),
	}
}

func toClientResponse(c *client.Client) servers.Client {
	lat, lng := latLng(c.Location())
	return servers.Client{
		Id:              c.ID().Bytes(),
		Name:            c.Name(),
		Address:         c.Address(),
		Lat:             lat,
		Lng:             lng,
		DriverId:        apiUUIDPtr(c.AssignedDriverID()),
		Paused:          c.IsPaused(),
		DeliveryEnabled: c.IsDeliveryEnabled(),
	}
}

func toClientViewResponse(v queries.ClientView) servers.Client {
	lat, lng := latLng(v.Location)
	return servers.Client{
		Id:              v.ID.Bytes(),
		Name:            v.Name,
		Address:         v.Address,
		Lat:             lat,
		Lng:             lng,
		DriverId:        apiUUIDPtr(v.DriverID),
		Paused:          v.Paused,
		DeliveryEnabled: v.DeliveryEnabled,
	}
}

func toStopResponse(s *stop.Stop) servers.Stop {
	return servers.Stop{
		Id:       s.ID().Bytes(),
		ClientId: s.ClientID().Bytes(),
		DriverId: apiUUIDPtr(s.DriverID()),
		Date:     apiDate(s.Date()),
		Sequence: s.Sequence(),
		Status:   s.Status().String(),
	}
}

func toDayStopResponse(v queries.DayStopView) servers.DayStop {
	lat, lng := latLng(v.Location)
	return servers.DayStop{
		StopId:      v.StopID.Bytes(),
		ClientId:    v.ClientID.Bytes(),
		ClientName:  v.ClientName,
		Address:     v.Address,
		Lat:         lat,
		Lng:         lng,
		DriverId:    apiUUIDPtr(v.DriverID),
		DriverName:  optionalString(v.DriverName),
		DriverColor: optionalString(v.DriverColor),
		Date:        apiDate(v.Date),
		Sequence:    v.Sequence,
		Status:      v.Status.String(),
	}
}

func toRouteRunResponse(r *route.Run) servers.RouteRun {
	snapshot := r.Snapshot()
	entries := make([]servers.SnapshotEntry, len(snapshot))
	for i, e := range snapshot {
		entries[i] = servers.SnapshotEntry{
			DriverId:   e.DriverID.Bytes(),
			DriverName: e.DriverName,
			Color:      e.Color,
			StopIds:    apiUUIDs(e.StopIDs),
		}
	}
	return servers.RouteRun{
		Id:        r.ID().Bytes(),
		Day:       r.Day().String(),
		Reason:    string(r.Reason()),
		CreatedAt: r.CreatedAt(),
		Snapshot:  entries,
	}
}

func toRouteRunViewResponse(v queries.RouteRunView) servers.RouteRun {
	entries := make([]servers.SnapshotEntry, len(v.Snapshot))
	for i, e := range v.Snapshot {
		entries[i] = servers.SnapshotEntry{
			DriverId:   e.DriverID.Bytes(),
			DriverName: e.DriverName,
			Color:      e.Color,
			StopIds:    apiUUIDs(e.StopIDs),
		}
	}
	return servers.RouteRun{
		Id:        v.ID.Bytes(),
		Day:       v.Day.String(),
		Reason:    v.Reason,
		CreatedAt: v.CreatedAt,
		Snapshot:  entries,
	}
}

func toWarnings(clientID *kernel.UUID, failures []commands.StepFailure) []servers.Warning {
	out := make([]servers.Warning, len(failures))
	for i, f := range failures {
		out[i] = servers.Warning{
			ClientId: apiUUIDPtr(clientID),
			Step:     f.Step,
			Message:  f.Err.Error(),
		}
	}
	return out
}

func toAssignResponse(r commands.AssignClientResult) servers.AssignClientResult {
	return servers.AssignClientResult{
		ClientId:         r.ClientID.Bytes(),
		DriverId:         apiUUIDPtr(r.DriverID),
		PreviousDriverId: apiUUIDPtr(r.PreviousDriverID),
		StopsUpdated:     r.StopsUpdated,
		Warnings:         toWarnings(nil, r.Failures),
	}
}

func toBulkAssignResponse(r commands.BulkAssignResult) servers.BulkAssignResult {
	failed := make([]kernel.UUID, 0, len(r.Errors))
	for id := range r.Errors {
		failed = append(failed, id)
	}
	slices.SortFunc(failed, func(a, b kernel.UUID) int { return a.Compare(b) })

	clientErrors := make([]servers.ClientError, len(failed))
	for i, id := range failed {
		clientErrors[i] = servers.ClientError{ClientId: id.Bytes(), Message: r.Errors[id].Error()}
	}

	warnings := make([]servers.Warning, 0)
	for _, p := range r.Partial {
		id := p.ClientID
		warnings = append(warnings, toWarnings(&id, p.Failures)...)
	}

	return servers.BulkAssignResult{
		Succeeded: r.Succeeded,
		Failed:    r.Failed,
		Errors:    clientErrors,
		Warnings:  warnings,
	}
}

func toDedupResponse(r commands.DeduplicateStopsResult) servers.DedupResult {
	removed := make([]servers.RemovedStop, len(r.Removed))
	for i, rs := range r.Removed {
		removed[i] = servers.RemovedStop{
			ClientId:     rs.ClientID.Bytes(),
			DriverId:     rs.DriverID.Bytes(),
			StopId:       rs.StopID.Bytes(),
			KeptDriverId: rs.KeptDriverID.Bytes(),
			KeptStopId:   rs.KeptStopID.Bytes(),
		}
	}
	return servers.DedupResult{
		Day:            r.Day.String(),
		Removed:        removed,
		SkippedDrivers: apiUUIDs(r.SkippedDrivers),
	}
}
