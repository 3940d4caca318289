package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetwire/meetwire-go/pkg/wire"
)

// fakeConn is a scripted Connection that records operation order and
// lets tests fire lifecycle events.
type fakeConn struct {
	mu        sync.Mutex
	nextID    ListenerID
	listeners []fakeListener
	features  []string
	ops       []string
	connectErr error
	onConnect func()
}

type fakeListener struct {
	id   ListenerID
	kind EventKind
	fn   func(Event)
}

func newFakeConn() *fakeConn {
	return &fakeConn{}
}

func (c *fakeConn) AddFeature(uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.features = append(c.features, uri)
	c.ops = append(c.ops, "add-feature")
}

func (c *fakeConn) AddListener(kind EventKind, fn func(Event)) ListenerID {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.listeners = append(c.listeners, fakeListener{id: c.nextID, kind: kind, fn: fn})
	c.ops = append(c.ops, "add-listener")
	return c.nextID
}

func (c *fakeConn) RemoveListener(id ListenerID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, l := range c.listeners {
		if l.id == id {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return
		}
	}
}

func (c *fakeConn) Connect(ctx context.Context, creds Credentials) error {
	c.mu.Lock()
	c.ops = append(c.ops, "connect")
	onConnect := c.onConnect
	err := c.connectErr
	c.mu.Unlock()
	if err != nil {
		return err
	}
	if onConnect != nil {
		onConnect()
	}
	return nil
}

func (c *fakeConn) Close() error { return nil }

// emit delivers an event to all matching listeners in registration order,
// like the real transport read loop does.
func (c *fakeConn) emit(ev Event) {
	c.mu.Lock()
	snapshot := make([]fakeListener, len(c.listeners))
	copy(snapshot, c.listeners)
	c.mu.Unlock()

	for _, l := range snapshot {
		if l.kind == ev.Kind {
			l.fn(ev)
		}
	}
}

func (c *fakeConn) listenerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.listeners)
}

func TestAttemptEstablished(t *testing.T) {
	conn := newFakeConn()
	clock := clockwork.NewFakeClock()

	var hookedAt time.Time
	conn.onConnect = func() {
		conn.emit(Event{Kind: KindEstablished, Handle: &Handle{SessionID: "sess-1", Conn: conn}})
	}

	handle, err := Attempt(context.Background(), conn, Credentials{ID: "alice"}, AttemptOptions{
		Clock: clock,
		Hooks: Hooks{
			OnEstablished: func(h *Handle, at time.Time) { hookedAt = at },
		},
	})

	require.NoError(t, err)
	require.NotNil(t, handle)
	assert.Equal(t, "sess-1", handle.SessionID)
	assert.Equal(t, clock.Now(), handle.EstablishedAt)
	assert.Equal(t, clock.Now(), hookedAt)
	assert.Equal(t, 0, conn.listenerCount(), "all listeners released on success")
}

func TestAttemptEstablishedIdempotentResolution(t *testing.T) {
	conn := newFakeConn()
	handle := &Handle{SessionID: "sess-1", Conn: conn}
	conn.onConnect = func() {
		conn.emit(Event{Kind: KindEstablished, Handle: handle})
		// Late duplicate events must not affect the outcome: the
		// resolver pair was removed before resolution.
		conn.emit(Event{Kind: KindFailed, Code: wire.CodeServerError})
		conn.emit(Event{Kind: KindEstablished, Handle: &Handle{SessionID: "sess-2", Conn: conn}})
	}

	got, err := Attempt(context.Background(), conn, Credentials{}, AttemptOptions{})
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.SessionID)
}

func TestAttemptFatalFailure(t *testing.T) {
	conn := newFakeConn()
	var reports []*ConnectionError
	conn.onConnect = func() {
		conn.emit(Event{Kind: KindFailed, Code: wire.CodeConnectionDropped, Message: "stream reset"})
		// Duplicate fatal event: reporter removed itself, no second report.
		conn.emit(Event{Kind: KindFailed, Code: wire.CodeConnectionDropped})
	}

	_, err := Attempt(context.Background(), conn, Credentials{}, AttemptOptions{
		Hooks: Hooks{
			OnFailure: func(e *ConnectionError) { reports = append(reports, e) },
		},
	})

	require.Error(t, err)
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, wire.CodeConnectionDropped, code)
	require.Len(t, reports, 1, "fatal failure reported exactly once")
	assert.True(t, reports[0].Fatal())
	assert.Equal(t, 0, conn.listenerCount(), "all listeners released on fatal failure")
}

func TestAttemptPasswordRequired(t *testing.T) {
	conn := newFakeConn()
	creds := &Credentials{ID: "alice", Password: "wrong"}
	var reports []*ConnectionError
	conn.onConnect = func() {
		conn.emit(Event{Kind: KindFailed, Code: wire.CodePasswordRequired, Credentials: creds})
	}

	_, err := Attempt(context.Background(), conn, *creds, AttemptOptions{
		Hooks: Hooks{
			OnFailure: func(e *ConnectionError) { reports = append(reports, e) },
		},
	})

	require.Error(t, err)
	assert.True(t, IsPasswordRequired(err))
	require.Len(t, reports, 1)
	assert.Equal(t, creds, reports[0].Credentials)

	// Non-fatal rejection: the reporter stays registered and late
	// redundant failure events still produce reports.
	conn.emit(Event{Kind: KindFailed, Code: wire.CodePasswordRequired})
	assert.Len(t, reports, 2)

	// A fatal event finally removes it.
	conn.emit(Event{Kind: KindFailed, Code: wire.CodeOtherError})
	assert.Len(t, reports, 3)
	conn.emit(Event{Kind: KindFailed, Code: wire.CodeOtherError})
	assert.Len(t, reports, 3)
}

func TestAttemptDisplayNameRequiredStaysPending(t *testing.T) {
	conn := newFakeConn()
	displayName := make(chan struct{}, 1)
	conn.onConnect = func() {
		conn.emit(Event{Kind: KindDisplayNameRequired})
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := Attempt(ctx, conn, Credentials{}, AttemptOptions{
			Hooks: Hooks{
				OnDisplayNameRequired: func() { displayName <- struct{}{} },
			},
		})
		done <- err
	}()

	select {
	case <-displayName:
	case <-time.After(2 * time.Second):
		t.Fatal("display-name hook never fired")
	}

	// The attempt must still be pending: display-name is a policy
	// signal, not a terminal event.
	select {
	case err := <-done:
		t.Fatalf("attempt resolved early: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("attempt did not abort on cancellation")
	}
	assert.Equal(t, 0, conn.listenerCount(), "all listeners released on cancellation")
}

func TestAttemptRegistrationBeforeConnect(t *testing.T) {
	conn := newFakeConn()
	conn.onConnect = func() {
		conn.emit(Event{Kind: KindFailed, Code: wire.CodeServerError})
	}

	_, err := Attempt(context.Background(), conn, Credentials{}, AttemptOptions{Recorder: true})
	require.Error(t, err)

	// The recorder feature and all four listeners must be in place
	// before the handshake starts.
	require.NotEmpty(t, conn.ops)
	assert.Equal(t, "connect", conn.ops[len(conn.ops)-1])
	listeners := 0
	for _, op := range conn.ops[:len(conn.ops)-1] {
		if op == "add-listener" {
			listeners++
		}
	}
	assert.Equal(t, 4, listeners)
	assert.Contains(t, conn.features, RecorderFeature)
}

func TestAttemptConnectError(t *testing.T) {
	conn := newFakeConn()
	conn.connectErr = errors.New("dial tcp: connection refused")

	_, err := Attempt(context.Background(), conn, Credentials{}, AttemptOptions{})
	require.Error(t, err)
	_, ok := CodeOf(err)
	assert.False(t, ok, "transport errors are not classified failures")
	assert.Equal(t, 0, conn.listenerCount(), "listeners released when the handshake cannot start")
}
