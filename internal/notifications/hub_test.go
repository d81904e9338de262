package notifications

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEventuallyTimeout = time.Second
	testPollInterval      = 10 * time.Millisecond
)

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub()

	a, err := hub.Register("1", nil)
	require.NoError(t, err)
	b, err := hub.Register("", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, hub.Count())

	hub.UnregisterClient(a)
	hub.UnregisterClient(a)
	assert.Equal(t, 1, hub.Count())

	_, open := <-a.Send
	assert.False(t, open, "send channel is closed on unregister")

	hub.UnregisterClient(b)
	assert.Equal(t, 0, hub.Count())
}

func TestHub_PerUserLimit(t *testing.T) {
	hub := NewHub()
	for range maxConnsPerUser {
		_, err := hub.Register("1", nil)
		require.NoError(t, err)
	}
	_, err := hub.Register("1", nil)
	assert.ErrorIs(t, err, ErrUserFull)

	_, err = hub.Register("2", nil)
	assert.NoError(t, err)
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub()
	a, _ := hub.Register("1", nil)
	b, _ := hub.Register("2", nil)

	hub.Broadcast("1", []byte("only-a"))
	hub.BroadcastAll([]byte("everyone"))

	assert.Equal(t, "only-a", string(<-a.Send))
	assert.Equal(t, "everyone", string(<-a.Send))
	assert.Equal(t, "everyone", string(<-b.Send))
	assert.Empty(t, b.Send)
}

func TestClient_TrySendDropsWhenFull(t *testing.T) {
	hub := NewHub()
	c, _ := hub.Register("1", nil)

	for range sendBuffer {
		c.TrySend([]byte("x"))
	}
	c.TrySend([]byte("overflow"))
	require.Len(t, c.Send, sendBuffer)

	var last []byte
	for range sendBuffer {
		last = <-c.Send
		assert.NotEqual(t, "overflow", string(last))
	}
	assert.Equal(t, string(dropNotice), string(last), "drop notice is delivered after the queued messages")

	hub.UnregisterClient(c)
	assert.NotPanics(t, func() { c.TrySend([]byte("late")) })
}

func TestHub_Shutdown(t *testing.T) {
	hub := NewHub()
	_, _ = hub.Register("1", nil)
	require.NoError(t, hub.Shutdown(context.Background()))
	assert.Equal(t, 0, hub.Count())
}

func TestEncode(t *testing.T) {
	data, err := Encode(EventStateChanged, map[string]string{"collection": "posts"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"state_changed","payload":{"collection":"posts"}}`, string(data))
}

func TestNotifier_Disabled(t *testing.T) {
	n := NewNotifier(nil)
	assert.False(t, n.Enabled())
	assert.NoError(t, n.Publish(context.Background(), []byte("x")))
	assert.NoError(t, n.StartSubscriber(context.Background(), func([]byte) {}))
}

func TestHub_StartWiringDeliversPublishedEvents(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	hub := NewHub()
	client, err := hub.Register("1", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := NewNotifier(rdb)
	require.NoError(t, hub.StartWiring(ctx, n, nil))
	require.NoError(t, n.Publish(ctx, []byte(`{"type":"state_changed"}`)))

	assert.Eventually(t, func() bool {
		return len(client.Send) == 1
	}, testEventuallyTimeout, testPollInterval)
	assert.Equal(t, `{"type":"state_changed"}`, string(<-client.Send))
}

func TestHub_StartWiringCallsOnRemoteForOtherInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	local := NewNotifier(rdb)
	remote := NewNotifier(rdb)
	require.NotEqual(t, local.Origin(), remote.Origin())

	hub := NewHub()
	client, err := hub.Register("1", nil)
	require.NoError(t, err)

	var remoteEvents atomic.Int32
	require.NoError(t, hub.StartWiring(ctx, local, func(ev Event) {
		assert.Equal(t, remote.Origin(), ev.Origin)
		remoteEvents.Add(1)
	}))

	own, err := local.Encode(EventStateChanged, map[string]string{"collection": "posts"})
	require.NoError(t, err)
	require.NoError(t, local.Publish(ctx, own))

	other, err := remote.Encode(EventStateChanged, map[string]string{"collection": "users"})
	require.NoError(t, err)
	require.NoError(t, remote.Publish(ctx, other))

	assert.Eventually(t, func() bool {
		return len(client.Send) == 2
	}, testEventuallyTimeout, testPollInterval)
	assert.Equal(t, int32(1), remoteEvents.Load())
}
