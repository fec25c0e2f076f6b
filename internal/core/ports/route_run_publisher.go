package ports

import (
	"context"

	"routeengine/internal/core/domain/model/route"
)

// RouteRunPublisher pushes freshly recorded runs to downstream consumers
// such as driver apps. Publication is best effort.
type RouteRunPublisher interface {
	Publish(ctx context.Context, run *route.Run) error
}
