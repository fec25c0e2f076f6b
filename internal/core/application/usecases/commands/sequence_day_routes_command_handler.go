package commands

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"routeengine/internal/core/domain/model/client"
	"routeengine/internal/core/domain/model/driver"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"
	"routeengine/internal/core/domain/model/stop"
	"routeengine/internal/core/domain/services"
	"routeengine/internal/core/ports"
	"routeengine/internal/pkg/errs"
)

// SequenceDayRoutesResult reports a sequencing pass.
type SequenceDayRoutesResult struct {
	Run       *route.Run
	Sequenced int
	Published bool
}

// SequenceDayRoutesCommandHandler reorders driver routes of a weekday with
// RouteSequencer, stores per-date sequence numbers on the stops, and appends
// a RouteRun snapshot of the whole day.
//
// A weekday route may hold stops of several dates. Each date is sequenced on
// its own and the route list becomes the per-date orders, earliest date
// first; ids without a stop record keep their order at the end.
//
// The sequencer input is the route's persisted list order. Stops whose client
// is missing, not geocoded, paused or delivery-disabled are passed without a
// location and therefore end up last; no stop is removed.
//
// The run is published after commit. A publish failure is logged and
// reported through Published; it never fails the pass.
type SequenceDayRoutesCommandHandler struct {
	uowFactory UoWFactory
	sequencer  services.RouteSequencer
	publisher  ports.RouteRunPublisher
	clock      ports.Clock
	logger     *slog.Logger
}

// NewSequenceDayRoutesCommandHandler creates the handler. publisher may be nil.
func NewSequenceDayRoutesCommandHandler(
	uowFactory UoWFactory,
	sequencer services.RouteSequencer,
	publisher ports.RouteRunPublisher,
	clock ports.Clock,
	logger *slog.Logger,
) SequenceDayRoutesCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return SequenceDayRoutesCommandHandler{
		uowFactory: uowFactory,
		sequencer:  sequencer,
		publisher:  publisher,
		clock:      clock,
		logger:     logger.With("component", "sequence_day_routes"),
	}
}

// Handle runs the pass in one transaction.
func (h SequenceDayRoutesCommandHandler) Handle(ctx context.Context, cmd SequenceDayRoutesCommand) (SequenceDayRoutesResult, error) {
	if err := cmd.Validate(); err != nil {
		return SequenceDayRoutesResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SequenceDayRoutesResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routes, err := uow.RouteRepository().ListByDay(ctx, cmd.Day())
	if err != nil {
		return SequenceDayRoutesResult{}, err
	}

	var result SequenceDayRoutesResult
	for _, r := range routes {
		if target := cmd.DriverID(); target != nil && !r.DriverID().IsEqual(*target) {
			continue
		}
		if err = h.sequenceRoute(ctx, uow, r); err != nil {
			return SequenceDayRoutesResult{}, err
		}
		result.Sequenced++
	}
	if cmd.DriverID() != nil && result.Sequenced == 0 {
		return SequenceDayRoutesResult{}, errs.NewObjectNotFoundError("route", cmd.DriverID().String()+"/"+cmd.Day().String())
	}

	drivers, err := driversByID(ctx, uow.DriverRepository())
	if err != nil {
		return SequenceDayRoutesResult{}, err
	}
	run, err := route.NewRun(cmd.Day(), route.ReasonSequence, h.clock.Now(), snapshotOf(routes, drivers))
	if err != nil {
		return SequenceDayRoutesResult{}, err
	}
	if err = uow.RouteRunRepository().Add(ctx, run); err != nil {
		return SequenceDayRoutesResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SequenceDayRoutesResult{}, err
	}

	result.Run = run
	result.Published = publishRun(ctx, h.publisher, run, h.logger)

	h.logger.InfoContext(ctx, "routes sequenced",
		"day", cmd.Day().String(),
		"drivers", result.Sequenced,
		"run_id", run.ID().String(),
	)
	return result, nil
}

func (h SequenceDayRoutesCommandHandler) sequenceRoute(ctx context.Context, uow UoW, r *route.DriverRoute) error {
	stopIDs := r.StopIDs()
	if len(stopIDs) == 0 {
		return nil
	}

	stops, err := uow.StopRepository().GetMany(ctx, stopIDs)
	if err != nil {
		return err
	}
	stopByID := make(map[kernel.UUID]*stop.Stop, len(stops))
	clientIDs := make([]kernel.UUID, 0, len(stops))
	for _, s := range stops {
		stopByID[s.ID()] = s
		clientIDs = append(clientIDs, s.ClientID())
	}

	clients, err := uow.ClientRepository().GetMany(ctx, clientIDs)
	if err != nil {
		return err
	}
	clientByID := make(map[kernel.UUID]*client.Client, len(clients))
	for _, c := range clients {
		clientByID[c.ID()] = c
	}

	ordered := make([]kernel.UUID, 0, len(stopIDs))
	for _, group := range groupByDate(stopIDs, stopByID) {
		inputs := make([]services.SequenceInput, len(group))
		for i, id := range group {
			inputs[i].StopID = id
			s, ok := stopByID[id]
			if !ok {
				continue
			}
			if c, ok := clientByID[s.ClientID()]; ok && c.IsDeliverable() {
				inputs[i].Location = c.Location()
			}
		}
		ordered = append(ordered, h.sequencer.Sequence(inputs)...)
	}

	if err = r.Reorder(ordered); err != nil {
		return err
	}
	if err = uow.RouteRepository().Save(ctx, r); err != nil {
		return err
	}

	next := make(map[time.Time]int)
	for _, id := range ordered {
		s, ok := stopByID[id]
		if !ok {
			continue
		}
		next[s.Date()]++
		if s.Sequence() == next[s.Date()] {
			continue
		}
		if err = s.SetSequence(next[s.Date()]); err != nil {
			return err
		}
		if err = uow.StopRepository().Update(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// groupByDate splits ids by stop date, keeping list order inside each group.
func groupByDate(ids []kernel.UUID, stopByID map[kernel.UUID]*stop.Stop) [][]kernel.UUID {
	byDate := make(map[time.Time][]kernel.UUID)
	var dates []time.Time
	var unknown []kernel.UUID
	for _, id := range ids {
		s, ok := stopByID[id]
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		if _, seen := byDate[s.Date()]; !seen {
			dates = append(dates, s.Date())
		}
		byDate[s.Date()] = append(byDate[s.Date()], id)
	}
	slices.SortFunc(dates, time.Time.Compare)

	groups := make([][]kernel.UUID, 0, len(dates)+1)
	for _, d := range dates {
		groups = append(groups, byDate[d])
	}
	if len(unknown) > 0 {
		groups = append(groups, unknown)
	}
	return groups
}

// snapshotOf builds run entries for routes, which are already in driver id
// order. Drivers without a record keep their stops with an empty name.
func snapshotOf(routes []*route.DriverRoute, drivers map[kernel.UUID]*driver.Driver) []route.SnapshotEntry {
	entries := make([]route.SnapshotEntry, 0, len(routes))
	for _, r := range routes {
		entry := route.SnapshotEntry{DriverID: r.DriverID(), StopIDs: r.StopIDs()}
		if d, ok := drivers[r.DriverID()]; ok {
			entry.DriverName = d.Name()
			entry.Color = d.Color()
		}
		entries = append(entries, entry)
	}
	return entries
}

func publishRun(ctx context.Context, publisher ports.RouteRunPublisher, run *route.Run, logger *slog.Logger) bool {
	if publisher == nil {
		return false
	}
	if err := publisher.Publish(ctx, run); err != nil {
		logger.WarnContext(ctx, "route run publish failed", "run_id", run.ID().String(), "error", err)
		return false
	}
	return true
}
