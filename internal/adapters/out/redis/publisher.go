// Package redis publishes route runs to Redis for driver and dispatch screens.
//
// Each run is written twice in one MULTI/EXEC: the JSON document is stored
// under "<prefix>:<day>:latest" so late subscribers can fetch the current
// routes, and published on the channel "<prefix>:<day>".
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"routeengine/internal/core/domain/model/route"
	"routeengine/internal/metrics"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultPrefix is the key and channel prefix used when none is configured.
const DefaultPrefix = "routes"

// DefaultTimeout bounds one publish when the caller's context has no deadline.
const DefaultTimeout = 2 * time.Second

// RunMessage is the JSON document published for a run.
type RunMessage struct {
	RunID     string         `json:"runId"`
	Day       string         `json:"day"`
	Reason    string         `json:"reason"`
	CreatedAt time.Time      `json:"createdAt"`
	Snapshot  []RunEntryBody `json:"snapshot"`
}

// RunEntryBody is one driver inside a RunMessage.
type RunEntryBody struct {
	DriverID   string   `json:"driverId"`
	DriverName string   `json:"driverName"`
	Color      string   `json:"color"`
	StopIDs    []string `json:"stopIds"`
}

// RunPublisher implements ports.RouteRunPublisher over Redis.
type RunPublisher struct {
	rdb     goredis.UniversalClient
	prefix  string
	timeout time.Duration
}

// Option configures a RunPublisher.
type Option func(*RunPublisher)

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(p *RunPublisher) {
		if prefix != "" {
			p.prefix = prefix
		}
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(p *RunPublisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewRunPublisher wraps an existing client.
func NewRunPublisher(rdb goredis.UniversalClient, opts ...Option) *RunPublisher {
	p := &RunPublisher{
		rdb:     rdb,
		prefix:  DefaultPrefix,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewRunPublisherFromURL parses a redis:// URL and connects lazily.
func NewRunPublisherFromURL(url string, opts ...Option) (*RunPublisher, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRunPublisher(goredis.NewClient(opt), opts...), nil
}

// Publish stores the run as the day's latest and announces it on the day channel.
func (p *RunPublisher) Publish(ctx context.Context, run *route.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(NewRunMessage(run))
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	day := run.Day().String()
	_, err = p.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, p.LatestKey(day), data, 0)
		pipe.Publish(ctx, p.Channel(day), data)
		return nil
	})
	if err != nil {
		metrics.PublishFailures.Inc()
		return fmt.Errorf("publish run %s: %w", run.ID(), err)
	}
	return nil
}

// Latest returns the last published run document of a day, or nil when none exists.
func (p *RunPublisher) Latest(ctx context.Context, day string) (*RunMessage, error) {
	data, err := p.rdb.Get(ctx, p.LatestKey(day)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil //nolint:nilnil // no run published yet
		}
		return nil, err
	}

	var msg RunMessage
	if err = json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}
	return &msg, nil
}

// Channel returns the pub/sub channel of a day.
func (p *RunPublisher) Channel(day string) string {
	return p.prefix + ":" + day
}

// LatestKey returns the key holding the latest run of a day.
func (p *RunPublisher) LatestKey(day string) string {
	return p.prefix + ":" + day + ":latest"
}

// Close releases the underlying client.
func (p *RunPublisher) Close() error {
	return p.rdb.Close()
}

// NewRunMessage converts a run to its published form.
func NewRunMessage(run *route.Run) RunMessage {
	snapshot := run.Snapshot()
	entries := make([]RunEntryBody, 0, len(snapshot))
	for _, e := range snapshot {
		ids := make([]string, 0, len(e.StopIDs))
		for _, id := range e.StopIDs {
			ids = append(ids, id.String())
		}
		entries = append(entries, RunEntryBody{
			DriverID:   e.DriverID.String(),
			DriverName: e.DriverName,
			Color:      e.Color,
			StopIDs:    ids,
		})
	}

	return RunMessage{
		RunID:     run.ID().String(),
		Day:       run.Day().String(),
		Reason:    string(run.Reason()),
		CreatedAt: run.CreatedAt(),
		Snapshot:  entries,
	}
}
