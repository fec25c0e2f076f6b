package commands_test

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"routeengine/internal/core/application/usecases/commands"
	"routeengine/internal/core/domain/model/client"
	"routeengine/internal/core/domain/model/driver"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"
	"routeengine/internal/core/domain/model/routeorder"
	"routeengine/internal/core/domain/model/stop"
	"routeengine/internal/core/ports"
	"routeengine/internal/pkg/errs"
)

type routeKey struct {
	driverID kernel.UUID
	day      kernel.Day
}

type orderKey struct {
	driverID kernel.UUID
	clientID kernel.UUID
}

type memState struct {
	clients map[kernel.UUID]*client.Client
	drivers map[kernel.UUID]*driver.Driver
	stops   map[kernel.UUID]*stop.Stop
	routes  map[routeKey]*route.DriverRoute
	runs    []*route.Run
	orders  map[orderKey]routeorder.Entry
}

func (s memState) clone() memState {
	return memState{
		clients: maps.Clone(s.clients),
		drivers: maps.Clone(s.drivers),
		stops:   maps.Clone(s.stops),
		routes:  maps.Clone(s.routes),
		runs:    slices.Clone(s.runs),
		orders:  maps.Clone(s.orders),
	}
}

// memStore is an in-memory transactional store. Stored aggregates are private
// copies, so changes only become visible through Update/Save and are undone
// by Rollback.
type memStore struct {
	mu       sync.Mutex
	state    memState
	failures map[string]error
	commits  int
}

func newMemStore() *memStore {
	return &memStore{
		state: memState{
			clients: map[kernel.UUID]*client.Client{},
			drivers: map[kernel.UUID]*driver.Driver{},
			stops:   map[kernel.UUID]*stop.Stop{},
			routes:  map[routeKey]*route.DriverRoute{},
			orders:  map[orderKey]routeorder.Entry{},
		},
		failures: map[string]error{},
	}
}

func (m *memStore) failOn(op string, err error) {
	m.failures[op] = err
}

func (m *memStore) check(op string) error {
	return m.failures[op]
}

func (m *memStore) uow() *memUoW {
	return &memUoW{store: m}
}

func (m *memStore) factory() commands.UoWFactory {
	return uowFactoryFunc(func() commands.UoW { return m.uow() })
}

func (m *memStore) driverFactory() commands.DriverUoWFactory {
	return driverUoWFactoryFunc(func() commands.DriverUoW { return m.uow() })
}

func (m *memStore) clientFactory() commands.ClientUoWFactory {
	return clientUoWFactoryFunc(func() commands.ClientUoW { return m.uow() })
}

func (m *memStore) stopFactory() commands.StopUoWFactory {
	return stopUoWFactoryFunc(func() commands.StopUoW { return m.uow() })
}

type uowFactoryFunc func() commands.UoW

func (f uowFactoryFunc) Create() commands.UoW { return f() }

type driverUoWFactoryFunc func() commands.DriverUoW

func (f driverUoWFactoryFunc) Create() commands.DriverUoW { return f() }

type clientUoWFactoryFunc func() commands.ClientUoW

func (f clientUoWFactoryFunc) Create() commands.ClientUoW { return f() }

type stopUoWFactoryFunc func() commands.StopUoW

func (f stopUoWFactoryFunc) Create() commands.StopUoW { return f() }

type memUoW struct {
	store  *memStore
	backup *memState
}

func (u *memUoW) Begin(_ context.Context) error {
	if err := u.store.check("Begin"); err != nil {
		return err
	}
	u.store.mu.Lock()
	backup := u.store.state.clone()
	u.backup = &backup
	return nil
}

func (u *memUoW) Commit(_ context.Context) error {
	if u.backup == nil {
		return nil
	}
	if err := u.store.check("Commit"); err != nil {
		return err
	}
	u.backup = nil
	u.store.commits++
	u.store.mu.Unlock()
	return nil
}

func (u *memUoW) Rollback(_ context.Context) error {
	if u.backup == nil {
		return nil
	}
	u.store.state = *u.backup
	u.backup = nil
	u.store.mu.Unlock()
	return nil
}

func (u *memUoW) ClientRepository() ports.ClientRepository         { return memClients{u.store} }
func (u *memUoW) DriverRepository() ports.DriverRepository         { return memDrivers{u.store} }
func (u *memUoW) StopRepository() ports.StopRepository             { return memStops{u.store} }
func (u *memUoW) RouteRepository() ports.RouteRepository           { return memRoutes{u.store} }
func (u *memUoW) RouteRunRepository() ports.RouteRunRepository     { return memRuns{u.store} }
func (u *memUoW) RouteOrderRepository() ports.RouteOrderRepository { return memOrders{u.store} }

func copyClient(c *client.Client) *client.Client {
	out, err := client.RestoreClient(c.ID(), c.Name(), c.Address(), c.Location(), c.AssignedDriverID(),
		c.IsPaused(), c.IsDeliveryEnabled())
	if err != nil {
		panic(err)
	}
	return out
}

func copyStop(s *stop.Stop) *stop.Stop {
	out, err := stop.RestoreStop(s.ID(), s.ClientID(), s.DriverID(), s.Date(), s.Sequence(), s.Status())
	if err != nil {
		panic(err)
	}
	return out
}

func copyRoute(r *route.DriverRoute) *route.DriverRoute {
	out, err := route.NewDriverRoute(r.DriverID(), r.Day(), r.StopIDs())
	if err != nil {
		panic(err)
	}
	return out
}

type memClients struct{ m *memStore }

func (r memClients) Add(_ context.Context, c *client.Client) error {
	if err := r.m.check("ClientRepository.Add"); err != nil {
		return err
	}
	r.m.state.clients[c.ID()] = copyClient(c)
	return nil
}

func (r memClients) Update(_ context.Context, c *client.Client) error {
	if err := r.m.check("ClientRepository.Update"); err != nil {
		return err
	}
	r.m.state.clients[c.ID()] = copyClient(c)
	return nil
}

func (r memClients) Get(_ context.Context, id kernel.UUID) (*client.Client, error) {
	if err := r.m.check("ClientRepository.Get"); err != nil {
		return nil, err
	}
	c, ok := r.m.state.clients[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("client", id)
	}
	return copyClient(c), nil
}

func (r memClients) GetMany(_ context.Context, ids []kernel.UUID) ([]*client.Client, error) {
	var out []*client.Client
	for _, id := range ids {
		if c, ok := r.m.state.clients[id]; ok {
			out = append(out, copyClient(c))
		}
	}
	return out, nil
}

func (r memClients) ListAssigned(_ context.Context) ([]*client.Client, error) {
	var out []*client.Client
	for _, c := range r.m.state.clients {
		if c.AssignedDriverID() != nil {
			out = append(out, copyClient(c))
		}
	}
	slices.SortFunc(out, func(a, b *client.Client) int { return a.ID().Compare(b.ID()) })
	return out, nil
}

type memDrivers struct{ m *memStore }

func (r memDrivers) Add(_ context.Context, d *driver.Driver) error {
	if err := r.m.check("DriverRepository.Add"); err != nil {
		return err
	}
	r.m.state.drivers[d.ID()] = d
	return nil
}

func (r memDrivers) Get(_ context.Context, id kernel.UUID) (*driver.Driver, error) {
	d, ok := r.m.state.drivers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("driver", id)
	}
	return d, nil
}

func (r memDrivers) GetAll(_ context.Context) ([]*driver.Driver, error) {
	if err := r.m.check("DriverRepository.GetAll"); err != nil {
		return nil, err
	}
	out := slices.Collect(maps.Values(r.m.state.drivers))
	slices.SortFunc(out, func(a, b *driver.Driver) int { return a.ID().Compare(b.ID()) })
	return out, nil
}

func (r memDrivers) Count(_ context.Context) (int64, error) {
	return int64(len(r.m.state.drivers)), nil
}

type memStops struct{ m *memStore }

func (r memStops) Add(_ context.Context, s *stop.Stop) error {
	r.m.state.stops[s.ID()] = copyStop(s)
	return nil
}

func (r memStops) Update(_ context.Context, s *stop.Stop) error {
	if err := r.m.check("StopRepository.Update"); err != nil {
		return err
	}
	r.m.state.stops[s.ID()] = copyStop(s)
	return nil
}

func (r memStops) Get(_ context.Context, id kernel.UUID) (*stop.Stop, error) {
	s, ok := r.m.state.stops[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("stop", id)
	}
	return copyStop(s), nil
}

func (r memStops) GetMany(_ context.Context, ids []kernel.UUID) ([]*stop.Stop, error) {
	var out []*stop.Stop
	for _, id := range ids {
		if s, ok := r.m.state.stops[id]; ok {
			out = append(out, copyStop(s))
		}
	}
	return out, nil
}

func (r memStops) ListByClient(_ context.Context, clientID kernel.UUID) ([]*stop.Stop, error) {
	if err := r.m.check("StopRepository.ListByClient"); err != nil {
		return nil, err
	}
	var out []*stop.Stop
	for _, s := range r.m.state.stops {
		if s.ClientID().IsEqual(clientID) {
			out = append(out, copyStop(s))
		}
	}
	slices.SortFunc(out, func(a, b *stop.Stop) int { return a.Date().Compare(b.Date()) })
	return out, nil
}

func (r memStops) ListByDriverAndDate(_ context.Context, driverID kernel.UUID, date time.Time) ([]*stop.Stop, error) {
	var out []*stop.Stop
	for _, s := range r.m.state.stops {
		if kernel.EqualPtr(s.DriverID(), &driverID) && s.Date().Equal(kernel.DateOf(date)) {
			out = append(out, copyStop(s))
		}
	}
	slices.SortFunc(out, func(a, b *stop.Stop) int { return a.ID().Compare(b.ID()) })
	return out, nil
}

type memRoutes struct{ m *memStore }

func (r memRoutes) Get(_ context.Context, driverID kernel.UUID, day kernel.Day) (*route.DriverRoute, error) {
	dr, ok := r.m.state.routes[routeKey{driverID, day}]
	if !ok {
		return nil, errs.NewObjectNotFoundError("route", driverID)
	}
	return copyRoute(dr), nil
}

func (r memRoutes) ListByDay(_ context.Context, day kernel.Day) ([]*route.DriverRoute, error) {
	if err := r.m.check("RouteRepository.ListByDay"); err != nil {
		return nil, err
	}
	var out []*route.DriverRoute
	for k, dr := range r.m.state.routes {
		if k.day == day {
			out = append(out, copyRoute(dr))
		}
	}
	slices.SortFunc(out, func(a, b *route.DriverRoute) int { return a.DriverID().Compare(b.DriverID()) })
	return out, nil
}

func (r memRoutes) Save(_ context.Context, dr *route.DriverRoute) error {
	if err := r.m.check("RouteRepository.Save"); err != nil {
		return err
	}
	r.m.state.routes[routeKey{dr.DriverID(), dr.Day()}] = copyRoute(dr)
	return nil
}

type memRuns struct{ m *memStore }

func (r memRuns) Add(_ context.Context, run *route.Run) error {
	if err := r.m.check("RouteRunRepository.Add"); err != nil {
		return err
	}
	r.m.state.runs = append(r.m.state.runs, run)
	return nil
}

func (r memRuns) Get(_ context.Context, id kernel.UUID) (*route.Run, error) {
	for _, run := range r.m.state.runs {
		if run.ID().IsEqual(id) {
			return run, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("run", id)
}

func (r memRuns) ListByDay(_ context.Context, day kernel.Day, limit int) ([]*route.Run, error) {
	var out []*route.Run
	for i := len(r.m.state.runs) - 1; i >= 0 && len(out) < limit; i-- {
		if r.m.state.runs[i].Day() == day {
			out = append(out, r.m.state.runs[i])
		}
	}
	return out, nil
}

type memOrders struct{ m *memStore }

func (r memOrders) Add(_ context.Context, e routeorder.Entry) error {
	if err := r.m.check("RouteOrderRepository.Add"); err != nil {
		return err
	}
	r.m.state.orders[orderKey{e.DriverID(), e.ClientID()}] = e
	return nil
}

func (r memOrders) Find(_ context.Context, driverID, clientID kernel.UUID) (routeorder.Entry, error) {
	e, ok := r.m.state.orders[orderKey{driverID, clientID}]
	if !ok {
		return routeorder.Entry{}, errs.NewObjectNotFoundError("route order", clientID)
	}
	return e, nil
}

func (r memOrders) Delete(_ context.Context, driverID, clientID kernel.UUID) error {
	if err := r.m.check("RouteOrderRepository.Delete"); err != nil {
		return err
	}
	delete(r.m.state.orders, orderKey{driverID, clientID})
	return nil
}

func (r memOrders) ListByDriver(_ context.Context, driverID kernel.UUID) ([]routeorder.Entry, error) {
	var out []routeorder.Entry
	for k, e := range r.m.state.orders {
		if k.driverID == driverID {
			out = append(out, e)
		}
	}
	routeorder.Sort(out)
	return out, nil
}

func (r memOrders) ListByClient(_ context.Context, clientID kernel.UUID) ([]routeorder.Entry, error) {
	if err := r.m.check("RouteOrderRepository.ListByClient"); err != nil {
		return nil, err
	}
	var out []routeorder.Entry
	for k, e := range r.m.state.orders {
		if k.clientID == clientID {
			out = append(out, e)
		}
	}
	routeorder.Sort(out)
	return out, nil
}

func (r memOrders) MaxPosition(_ context.Context, driverID kernel.UUID) (int, error) {
	highest := 0
	for k, e := range r.m.state.orders {
		if k.driverID == driverID {
			highest = max(highest, e.Position())
		}
	}
	return highest, nil
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }
