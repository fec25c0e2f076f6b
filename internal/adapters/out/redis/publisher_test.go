package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"routeengine/internal/adapters/out/redis"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPublisher(t *testing.T, opts ...redis.Option) (*redis.RunPublisher, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redis.NewRunPublisher(rdb, opts...), rdb
}

func newRun(t *testing.T) *route.Run {
	t.Helper()
	run, err := route.NewRun(kernel.Monday, route.ReasonSequence, time.Date(2024, 3, 4, 6, 0, 0, 0, time.UTC),
		[]route.SnapshotEntry{{
			DriverID:   kernel.NewUUID(),
			DriverName: "Alice",
			Color:      "#FF0000",
			StopIDs:    []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()},
		}})
	require.NoError(t, err)
	return run
}

func TestRunPublisher_PublishStoresLatestAndNotifiesSubscribers(t *testing.T) {
	ctx := context.Background()
	publisher, rdb := newPublisher(t)
	run := newRun(t)

	sub := rdb.Subscribe(ctx, publisher.Channel("monday"))
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(ctx, run))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	var published redis.RunMessage
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &published))
	assert.Equal(t, run.ID().String(), published.RunID)
	assert.Equal(t, "sequence", published.Reason)
	require.Len(t, published.Snapshot, 1)
	assert.Len(t, published.Snapshot[0].StopIDs, 2)

	latest, err := publisher.Latest(ctx, "monday")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, published, *latest)
}

func TestRunPublisher_LatestIsNilBeforeFirstPublish(t *testing.T) {
	publisher, _ := newPublisher(t)

	latest, err := publisher.Latest(context.Background(), "friday")

	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestRunPublisher_CustomPrefix(t *testing.T) {
	ctx := context.Background()
	publisher, rdb := newPublisher(t, redis.WithPrefix("dispatch"))

	require.NoError(t, publisher.Publish(ctx, newRun(t)))

	n, err := rdb.Exists(ctx, "dispatch:monday:latest").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRunPublisher_RejectsUnconstructedRun(t *testing.T) {
	publisher, _ := newPublisher(t)

	err := publisher.Publish(context.Background(), &route.Run{})

	assert.ErrorIs(t, err, route.ErrRunIsNotConstructed)
}

func TestRunPublisher_ReportsConnectionErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	publisher := redis.NewRunPublisher(rdb, redis.WithTimeout(200*time.Millisecond))
	mr.Close()

	err := publisher.Publish(context.Background(), newRun(t))

	assert.Error(t, err)
}

func TestNewRunPublisherFromURL_RejectsBadURL(t *testing.T) {
	_, err := redis.NewRunPublisherFromURL("not a url")

	assert.Error(t, err)
}
