package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeConn struct {
	messages chan []byte
	closed   chan struct{}
	fail     bool
}

func newFakeConn(fail bool) *fakeConn {
	return &fakeConn{
		messages: make(chan []byte, 8),
		closed:   make(chan struct{}, 8),
		fail:     fail,
	}
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	if c.fail {
		return errors.New("broken pipe")
	}
	c.messages <- data
	return nil
}

func (c *fakeConn) Close() error {
	c.closed <- struct{}{}
	return nil
}

func (c *fakeConn) next(t *testing.T) Message {
	t.Helper()

	select {
	case data := <-c.messages:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
	return Message{}
}

func (c *fakeConn) empty(t *testing.T) {
	t.Helper()

	select {
	case data := <-c.messages:
		t.Fatalf("unexpected message %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zap.NewNop())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func TestHub_BroadcastBySession(t *testing.T) {
	t.Parallel()

	hub, _ := startHub(t)

	a1, a2, b := newFakeConn(false), newFakeConn(false), newFakeConn(false)
	hub.Register("a", a1)
	hub.Register("a", a2)
	hub.Register("b", b)

	hub.Broadcast("a", TypeRound, map[string]int{"score": 1})

	for _, conn := range []*fakeConn{a1, a2} {
		msg := conn.next(t)
		assert.Equal(t, TypeRound, msg.Type)
		assert.Equal(t, map[string]interface{}{"score": float64(1)}, msg.Data)
	}
	b.empty(t)
}

func TestHub_SendToOneConnection(t *testing.T) {
	t.Parallel()

	hub, _ := startHub(t)

	a1, a2 := newFakeConn(false), newFakeConn(false)
	hub.Register("a", a1)
	hub.Register("a", a2)

	hub.Send("a", a2, TypeError, map[string]string{"error": "unknown game type"})

	assert.Equal(t, TypeError, a2.next(t).Type)
	a1.empty(t)
}

func TestHub_DropsBrokenConnection(t *testing.T) {
	t.Parallel()

	hub, _ := startHub(t)

	broken, ok := newFakeConn(true), newFakeConn(false)
	hub.Register("a", broken)
	hub.Register("a", ok)

	hub.Broadcast("a", TypeRound, nil)
	ok.next(t)

	select {
	case <-broken.closed:
	case <-time.After(time.Second):
		t.Fatal("broken connection was not closed")
	}
}

func TestHub_StopClosesConnections(t *testing.T) {
	t.Parallel()

	hub, cancel := startHub(t)

	conn := newFakeConn(false)
	hub.Register("a", conn)
	cancel()

	select {
	case <-conn.closed:
	case <-time.After(time.Second):
		t.Fatal("connection was not closed on stop")
	}

	<-hub.done
	hub.Broadcast("a", TypeRound, nil)
	hub.Unregister("a", conn)
}
