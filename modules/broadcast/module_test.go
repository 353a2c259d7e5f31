package broadcast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/chat-relay-demo/domain/chat"
	"github.com/example/chat-relay-demo/events"
)

func newTestModule() (*Module, *Hub) {
	module := NewModule(&mockLogger{})
	return module, module.GetHub()
}

func TestModule_HandleUserJoined(t *testing.T) {
	module, hub := newTestModule()
	joiner := addClient(hub, "conn-2")
	other := addClient(hub, "conn-1")

	event := events.UserJoinedEvent{
		ConnectionID: "conn-2",
		Room:         "general",
		Welcome:      chat.TextMessage{Username: "Admin", Text: "Welcome!", CreatedAt: 1},
		Notice:       chat.TextMessage{Username: "Admin", Text: "bob has joined the room.", CreatedAt: 1},
		Others:       []string{"conn-1"},
		Members:      []string{"conn-1", "conn-2"},
		Roster: []chat.RosterEntry{
			{Username: "alice", Room: "general"},
			{Username: "bob", Room: "general"},
		},
	}

	require.NoError(t, module.handleUserJoined(context.Background(), event, nil))

	// The joiner gets the welcome first, then the roster; never the notice.
	joinerFrames := joiner.frames(t)
	require.Len(t, joinerFrames, 2)
	assert.Equal(t, FrameMessage, joinerFrames[0].Type)
	assert.Equal(t, FrameRoomData, joinerFrames[1].Type)

	// The existing member gets the notice and the roster.
	otherFrames := other.frames(t)
	require.Len(t, otherFrames, 2)
	assert.Equal(t, FrameMessage, otherFrames[0].Type)
	assert.Equal(t, FrameRoomData, otherFrames[1].Type)
}

func TestModule_HandleUserLeft(t *testing.T) {
	module, hub := newTestModule()
	remaining := addClient(hub, "conn-1")
	elsewhere := addClient(hub, "conn-9")

	event := events.UserLeftEvent{
		Room:      "general",
		Notice:    chat.TextMessage{Username: "Admin", Text: "bob has left the room.", CreatedAt: 1},
		Remaining: []string{"conn-1"},
		Roster:    []chat.RosterEntry{{Username: "alice", Room: "general"}},
	}

	require.NoError(t, module.handleUserLeft(context.Background(), event, nil))

	frames := remaining.frames(t)
	require.Len(t, frames, 2)
	assert.Equal(t, FrameMessage, frames[0].Type)
	assert.Equal(t, FrameRoomData, frames[1].Type)

	assert.Empty(t, elsewhere.frames(t))
}

func TestModule_HandleMessageSent(t *testing.T) {
	module, hub := newTestModule()
	sender := addClient(hub, "conn-1")
	member := addClient(hub, "conn-2")
	elsewhere := addClient(hub, "conn-9")

	event := events.MessageSentEvent{
		Room:       "general",
		Message:    chat.TextMessage{Username: "alice", Text: "hello", CreatedAt: 1},
		Recipients: []string{"conn-1", "conn-2"},
	}

	require.NoError(t, module.handleMessageSent(context.Background(), event, nil))

	// The sender is among the recipients; other rooms are not.
	require.Len(t, sender.frames(t), 1)
	require.Len(t, member.frames(t), 1)
	assert.Empty(t, elsewhere.frames(t))
}

func TestModule_HandleLocationShared(t *testing.T) {
	module, hub := newTestModule()
	sameRoom := addClient(hub, "conn-1")
	otherRoom := addClient(hub, "conn-9")

	event := events.LocationSharedEvent{
		Location: chat.LocationMessage{
			Username:  "alice",
			URL:       "https://google.com/maps?q=2.2945,48.8584",
			CreatedAt: 1,
		},
	}

	require.NoError(t, module.handleLocationShared(context.Background(), event, nil))

	// Location goes to every connected client regardless of room.
	for _, conn := range []*fakeConn{sameRoom, otherRoom} {
		frames := conn.frames(t)
		require.Len(t, frames, 1)
		assert.Equal(t, FrameLocationMessage, frames[0].Type)
	}
}

func TestModule_Lifecycle(t *testing.T) {
	module, _ := newTestModule()

	require.NoError(t, module.Start(context.Background()))
	require.NoError(t, module.Stop(context.Background()))
}

func TestModule_Health(t *testing.T) {
	module, hub := newTestModule()
	addClient(hub, "conn-1")

	status := module.Health(context.Background())
	assert.True(t, status.Healthy)
	assert.Equal(t, 1, status.Details["connected_clients"])
}
