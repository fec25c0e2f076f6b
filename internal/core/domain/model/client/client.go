package client

import (
	"errors"
	"strings"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/errs"
)

var (
	// ErrNameIsRequired is returned when a client has no name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrClientIsNotConstructed is returned when using an improperly initialized Client.
	ErrClientIsNotConstructed = errors.New("Client must be created via NewClient or RestoreClient constructor")
)

// Client is a delivery recipient. It is the aggregate that owns the single
// source of truth for "who delivers to this client": assignedDriverID.
//
// Business rules:
//   - A client always has an id and a name; address and coordinates are optional
//     until the client is geocoded.
//   - Clients are never deleted by the routing engine.
//   - Eligibility (paused, delivery disabled) is recorded here but enforced by
//     callers before sequencing and assignment.
type Client struct {
	id              kernel.UUID
	name            string
	address         string
	location        *kernel.Location
	driverID        *kernel.UUID
	paused          bool
	deliveryEnabled bool

	isConstructed bool
}

// NewClient creates an unassigned, not yet geocoded client with delivery enabled.
func NewClient(id kernel.UUID, name string, address string) (*Client, error) {
	c := &Client{
		deliveryEnabled: true,
		isConstructed:   true,
	}

	if err := errors.Join(c.setID(id), c.setName(name)); err != nil {
		return nil, err
	}
	c.address = strings.TrimSpace(address)

	return c, nil
}

// RestoreClient rebuilds a client from persisted state.
func RestoreClient(
	id kernel.UUID,
	name string,
	address string,
	location *kernel.Location,
	driverID *kernel.UUID,
	paused bool,
	deliveryEnabled bool,
) (*Client, error) {
	c, err := NewClient(id, name, address)
	if err != nil {
		return nil, err
	}

	if location != nil {
		if err = c.Geocode(*location); err != nil {
			return nil, err
		}
	}
	if driverID != nil {
		if err = c.AssignDriver(*driverID); err != nil {
			return nil, err
		}
	}
	c.paused = paused
	c.deliveryEnabled = deliveryEnabled

	return c, nil
}

// Validate checks that the client was built through a constructor.
func (c *Client) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrClientIsNotConstructed
	}
	return nil
}

// ID returns the client identifier.
func (c *Client) ID() kernel.UUID {
	return c.id
}

// Name returns the display name.
func (c *Client) Name() string {
	return c.name
}

// Address returns the free-form delivery address.
func (c *Client) Address() string {
	return c.address
}

// Location returns the geocoded coordinates, or nil when not geocoded.
func (c *Client) Location() *kernel.Location {
	if c.location == nil {
		return nil
	}
	loc := *c.location
	return &loc
}

// AssignedDriverID returns the driver that delivers to this client, or nil.
func (c *Client) AssignedDriverID() *kernel.UUID {
	if c.driverID == nil {
		return nil
	}
	id := *c.driverID
	return &id
}

// IsPaused reports whether deliveries are paused.
func (c *Client) IsPaused() bool {
	return c.paused
}

// IsDeliveryEnabled reports whether deliveries are enabled.
func (c *Client) IsDeliveryEnabled() bool {
	return c.deliveryEnabled
}

// IsDeliverable reports whether the client should receive deliveries at all.
func (c *Client) IsDeliverable() bool {
	return !c.paused && c.deliveryEnabled
}

// Geocode records the client coordinates.
func (c *Client) Geocode(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = &location
	return nil
}

// AssignDriver makes driverID the authoritative driver for this client.
func (c *Client) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = &driverID
	return nil
}

// Unassign clears the driver assignment.
func (c *Client) Unassign() {
	c.driverID = nil
}

// Pause suspends deliveries.
func (c *Client) Pause() {
	c.paused = true
}

// Resume lifts a pause.
func (c *Client) Resume() {
	c.paused = false
}

// SetDeliveryEnabled toggles whether the client receives deliveries.
func (c *Client) SetDeliveryEnabled(enabled bool) {
	c.deliveryEnabled = enabled
}

func (c *Client) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Client) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}
