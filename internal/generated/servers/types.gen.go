// Package servers provides primitives to interact with the openapi HTTP API.
//
// The files in this package follow the oapi-codegen echo-server layout for
// openapi.yaml (types, echo-server and spec outputs). Keep them in step with
// the document when an operation changes.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for AssignmentScopeKind.
const (
	AssignmentScopeKindAll  AssignmentScopeKind = "all"
	AssignmentScopeKindDate AssignmentScopeKind = "date"
	AssignmentScopeKindDay  AssignmentScopeKind = "day"
)

// Defines values for NewDriverScopeDay.
const (
	NewDriverScopeDayAll       NewDriverScopeDay = "all"
	NewDriverScopeDayFriday    NewDriverScopeDay = "friday"
	NewDriverScopeDayMonday    NewDriverScopeDay = "monday"
	NewDriverScopeDaySaturday  NewDriverScopeDay = "saturday"
	NewDriverScopeDaySunday    NewDriverScopeDay = "sunday"
	NewDriverScopeDayThursday  NewDriverScopeDay = "thursday"
	NewDriverScopeDayTuesday   NewDriverScopeDay = "tuesday"
	NewDriverScopeDayWednesday NewDriverScopeDay = "wednesday"
)

// Defines values for Weekday.
const (
	Friday    Weekday = "friday"
	Monday    Weekday = "monday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
	Thursday  Weekday = "thursday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
)

// AssignClientRequest defines model for AssignClientRequest.
type AssignClientRequest struct {
	DriverId *openapi_types.UUID `json:"driverId"`
	Scope    *AssignmentScope    `json:"scope,omitempty"`
}

// AssignClientResult defines model for AssignClientResult.
type AssignClientResult struct {
	ClientId         openapi_types.UUID  `json:"clientId"`
	DriverId         *openapi_types.UUID `json:"driverId,omitempty"`
	PreviousDriverId *openapi_types.UUID `json:"previousDriverId,omitempty"`
	StopsUpdated     int                 `json:"stopsUpdated"`
	Warnings         []Warning           `json:"warnings"`
}

// AssignmentScope defines model for AssignmentScope.
type AssignmentScope struct {
	Date *openapi_types.Date  `json:"date,omitempty"`
	Day  *Weekday             `json:"day,omitempty"`
	Kind *AssignmentScopeKind `json:"kind,omitempty"`
}

// AssignmentScopeKind defines model for AssignmentScope.Kind.
type AssignmentScopeKind string

// BulkAssignRequest defines model for BulkAssignRequest.
type BulkAssignRequest struct {
	ClientIds []openapi_types.UUID `json:"clientIds"`
	DriverId  *openapi_types.UUID  `json:"driverId"`
	Scope     *AssignmentScope     `json:"scope,omitempty"`
}

// BulkAssignResult defines model for BulkAssignResult.
type BulkAssignResult struct {
	Errors    []ClientError `json:"errors"`
	Failed    int           `json:"failed"`
	Succeeded int           `json:"succeeded"`
	Warnings  []Warning     `json:"warnings"`
}

// Client defines model for Client.
type Client struct {
	Address         string              `json:"address"`
	DeliveryEnabled bool                `json:"deliveryEnabled"`
	DriverId        *openapi_types.UUID `json:"driverId,omitempty"`
	Id              openapi_types.UUID  `json:"id"`
	Lat             *float64            `json:"lat,omitempty"`
	Lng             *float64            `json:"lng,omitempty"`
	Name            string              `json:"name"`
	Paused          bool                `json:"paused"`
}

// ClientError defines model for ClientError.
type ClientError struct {
	ClientId openapi_types.UUID `json:"clientId"`
	Message  string             `json:"message"`
}

// DayStop defines model for DayStop.
type DayStop struct {
	Address     string              `json:"address"`
	ClientId    openapi_types.UUID  `json:"clientId"`
	ClientName  string              `json:"clientName"`
	Date        openapi_types.Date  `json:"date"`
	DriverColor *string             `json:"driverColor,omitempty"`
	DriverId    *openapi_types.UUID `json:"driverId,omitempty"`
	DriverName  *string             `json:"driverName,omitempty"`
	Lat         *float64            `json:"lat,omitempty"`
	Lng         *float64            `json:"lng,omitempty"`
	Sequence    int                 `json:"sequence"`
	Status      string              `json:"status"`
	StopId      openapi_types.UUID  `json:"stopId"`
}

// DedupResult defines model for DedupResult.
type DedupResult struct {
	Day            string               `json:"day"`
	Removed        []RemovedStop        `json:"removed"`
	SkippedDrivers []openapi_types.UUID `json:"skippedDrivers"`
}

// Driver defines model for Driver.
type Driver struct {
	Color    string             `json:"color"`
	Id       openapi_types.UUID `json:"id"`
	Name     string             `json:"name"`
	ScopeDay string             `json:"scopeDay"`
}

// DriverRoute defines model for DriverRoute.
type DriverRoute struct {
	Color    string               `json:"color"`
	DriverId openapi_types.UUID   `json:"driverId"`
	Name     string               `json:"name"`
	StopIds  []openapi_types.UUID `json:"stopIds"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MaterializeRequest defines model for MaterializeRequest.
type MaterializeRequest struct {
	Date openapi_types.Date `json:"date"`
}

// MaterializeResult defines model for MaterializeResult.
type MaterializeResult struct {
	Date           openapi_types.Date   `json:"date"`
	DriverId       openapi_types.UUID   `json:"driverId"`
	SkippedClients []openapi_types.UUID `json:"skippedClients"`
	StopIds        []openapi_types.UUID `json:"stopIds"`
}

// NewClient defines model for NewClient.
type NewClient struct {
	Address *string  `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Name    string   `json:"name"`
}

// NewDriver defines model for NewDriver.
type NewDriver struct {
	Color    *string            `json:"color,omitempty"`
	Name     string             `json:"name"`
	ScopeDay *NewDriverScopeDay `json:"scopeDay,omitempty"`
}

// NewDriverScopeDay defines model for NewDriver.ScopeDay.
type NewDriverScopeDay string

// NewStop defines model for NewStop.
type NewStop struct {
	ClientId openapi_types.UUID  `json:"clientId"`
	Date     openapi_types.Date  `json:"date"`
	DriverId *openapi_types.UUID `json:"driverId,omitempty"`
}

// ReconcileResult defines model for ReconcileResult.
type ReconcileResult struct {
	Checked  int `json:"checked"`
	Inserted int `json:"inserted"`
}

// RemovedStop defines model for RemovedStop.
type RemovedStop struct {
	ClientId     openapi_types.UUID `json:"clientId"`
	DriverId     openapi_types.UUID `json:"driverId"`
	KeptDriverId openapi_types.UUID `json:"keptDriverId"`
	KeptStopId   openapi_types.UUID `json:"keptStopId"`
	StopId       openapi_types.UUID `json:"stopId"`
}

// RestoreResult defines model for RestoreResult.
type RestoreResult struct {
	Dropped   []openapi_types.UUID `json:"dropped"`
	Published bool                 `json:"published"`
	Restored  int                  `json:"restored"`
	Run       RouteRun             `json:"run"`
}

// RouteOrderEntry defines model for RouteOrderEntry.
type RouteOrderEntry struct {
	Address    string             `json:"address"`
	ClientId   openapi_types.UUID `json:"clientId"`
	ClientName string             `json:"clientName"`
	Position   int                `json:"position"`
}

// RouteRun defines model for RouteRun.
type RouteRun struct {
	CreatedAt time.Time          `json:"createdAt"`
	Day       string             `json:"day"`
	Id        openapi_types.UUID `json:"id"`
	Reason    string             `json:"reason"`
	Snapshot  []SnapshotEntry    `json:"snapshot"`
}

// SequenceRequest defines model for SequenceRequest.
type SequenceRequest struct {
	DriverId *openapi_types.UUID `json:"driverId,omitempty"`
}

// SequenceResult defines model for SequenceResult.
type SequenceResult struct {
	Published bool     `json:"published"`
	Run       RouteRun `json:"run"`
	Sequenced int      `json:"sequenced"`
}

// SnapshotEntry defines model for SnapshotEntry.
type SnapshotEntry struct {
	Color      string               `json:"color"`
	DriverId   openapi_types.UUID   `json:"driverId"`
	DriverName string               `json:"driverName"`
	StopIds    []openapi_types.UUID `json:"stopIds"`
}

// Stop defines model for Stop.
type Stop struct {
	ClientId openapi_types.UUID  `json:"clientId"`
	Date     openapi_types.Date  `json:"date"`
	DriverId *openapi_types.UUID `json:"driverId,omitempty"`
	Id       openapi_types.UUID  `json:"id"`
	Sequence int                 `json:"sequence"`
	Status   string              `json:"status"`
}

// Warning defines model for Warning.
type Warning struct {
	ClientId *openapi_types.UUID `json:"clientId,omitempty"`
	Message  string              `json:"message"`
	Step     string              `json:"step"`
}

// Weekday defines model for Weekday.
type Weekday string

// DriverId defines model for DriverId.
type DriverId = openapi_types.UUID

// Day defines model for Day.
type Day = Weekday

// GetClientsParams defines parameters for GetClients.
type GetClientsParams struct {
	DriverId *openapi_types.UUID `form:"driverId,omitempty" json:"driverId,omitempty"`
}

// GetRouteRunsParams defines parameters for GetRouteRuns.
type GetRouteRunsParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// GetStopsParams defines parameters for GetStops.
type GetStopsParams struct {
	Date     openapi_types.Date  `form:"date" json:"date"`
	DriverId *openapi_types.UUID `form:"driverId,omitempty" json:"driverId,omitempty"`
}

// CreateDriverJSONRequestBody defines body for CreateDriver for application/json ContentType.
type CreateDriverJSONRequestBody = NewDriver

// MaterializeDriverRouteJSONRequestBody defines body for MaterializeDriverRoute for application/json ContentType.
type MaterializeDriverRouteJSONRequestBody = MaterializeRequest

// CreateClientJSONRequestBody defines body for CreateClient for application/json ContentType.
type CreateClientJSONRequestBody = NewClient

// BulkAssignClientsJSONRequestBody defines body for BulkAssignClients for application/json ContentType.
type BulkAssignClientsJSONRequestBody = BulkAssignRequest

// AssignClientJSONRequestBody defines body for AssignClient for application/json ContentType.
type AssignClientJSONRequestBody = AssignClientRequest

// CreateStopJSONRequestBody defines body for CreateStop for application/json ContentType.
type CreateStopJSONRequestBody = NewStop

// SequenceDayRoutesJSONRequestBody defines body for SequenceDayRoutes for application/json ContentType.
type SequenceDayRoutesJSONRequestBody = SequenceRequest
