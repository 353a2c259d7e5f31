package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)         {}
func (m *mockLogger) Info(msg string, args ...any)          {}
func (m *mockLogger) Warn(msg string, args ...any)          {}
func (m *mockLogger) Error(msg string, args ...any)         {}
func (m *mockLogger) With(args ...any) types.Logger         { return m }
func (m *mockLogger) WithError(err error) types.Logger      { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

// fakeConn records every frame written to it.
type fakeConn struct {
	mu       sync.Mutex
	written  [][]byte
	closed   bool
	writeErr error
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.written = append(c.written, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) frames(t *testing.T) []Frame {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()

	frames := make([]Frame, 0, len(c.written))
	for _, data := range c.written {
		var frame Frame
		require.NoError(t, json.Unmarshal(data, &frame))
		frames = append(frames, frame)
	}
	return frames
}

// addClient registers a client directly, bypassing the Run loop.
func addClient(hub *Hub, id string) *fakeConn {
	conn := &fakeConn{}
	hub.handleRegister(&Client{ID: id, Conn: conn})
	return conn
}

func TestHub_SendToClient(t *testing.T) {
	hub := NewHub(&mockLogger{})
	conn1 := addClient(hub, "conn-1")
	conn2 := addClient(hub, "conn-2")

	hub.SendToClient("conn-1", Frame{Type: FrameMessage, Data: "hello"})

	frames := conn1.frames(t)
	require.Len(t, frames, 1)
	assert.Equal(t, FrameMessage, frames[0].Type)
	assert.Equal(t, "hello", frames[0].Data)

	assert.Empty(t, conn2.frames(t))
}

func TestHub_SendToClient_Unknown(t *testing.T) {
	hub := NewHub(&mockLogger{})
	conn := addClient(hub, "conn-1")

	// Unknown recipient is skipped without error.
	hub.SendToClient("conn-missing", Frame{Type: FrameMessage})

	assert.Empty(t, conn.frames(t))
}

func TestHub_SendToMany(t *testing.T) {
	hub := NewHub(&mockLogger{})
	conn1 := addClient(hub, "conn-1")
	conn2 := addClient(hub, "conn-2")
	conn3 := addClient(hub, "conn-3")

	// The list may reference connections that have since dropped.
	hub.SendToMany([]string{"conn-1", "conn-2", "conn-gone"}, Frame{Type: FrameRoomData})

	assert.Len(t, conn1.frames(t), 1)
	assert.Len(t, conn2.frames(t), 1)
	assert.Empty(t, conn3.frames(t))
}

func TestHub_SendToAll(t *testing.T) {
	hub := NewHub(&mockLogger{})
	conn1 := addClient(hub, "conn-1")
	conn2 := addClient(hub, "conn-2")

	hub.SendToAll(Frame{Type: FrameLocationMessage})

	assert.Len(t, conn1.frames(t), 1)
	assert.Len(t, conn2.frames(t), 1)
}

func TestHub_WriteError(t *testing.T) {
	hub := NewHub(&mockLogger{})
	broken := &fakeConn{writeErr: errors.New("connection reset")}
	hub.handleRegister(&Client{ID: "conn-broken", Conn: broken})
	healthy := addClient(hub, "conn-ok")

	// A failing recipient must not block delivery to the rest.
	hub.SendToAll(Frame{Type: FrameMessage})

	assert.Len(t, healthy.frames(t), 1)
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub(&mockLogger{})
	conn := addClient(hub, "conn-1")

	client := &Client{ID: "conn-1", Conn: conn}
	hub.handleUnregister(client)
	assert.Equal(t, 0, hub.ClientCount())

	// Unregistering twice is a no-op.
	hub.handleUnregister(client)
	assert.Equal(t, 0, hub.ClientCount())

	hub.SendToClient("conn-1", Frame{Type: FrameMessage})
	assert.Empty(t, conn.frames(t))
}

func TestHub_RunShutdown(t *testing.T) {
	hub := NewHub(&mockLogger{})
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	conn := &fakeConn{}
	hub.Register(&Client{ID: "conn-1", Conn: conn})

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	hub.Wait()

	conn.mu.Lock()
	defer conn.mu.Unlock()
	assert.True(t, conn.closed)
}

func TestAck(t *testing.T) {
	frame := Ack("join", nil)
	assert.Equal(t, FrameAck, frame.Type)
	assert.Equal(t, "join", frame.For)
	assert.Empty(t, frame.Error)

	frame = Ack("join", errors.New("username is in use"))
	assert.Equal(t, "username is in use", frame.Error)
}
