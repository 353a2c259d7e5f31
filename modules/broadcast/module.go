package broadcast

import (
	"context"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/chat-relay-demo/domain/chat"
	"github.com/example/chat-relay-demo/events"
)

// Module consumes relay events and fans them out to WebSocket clients.
type Module struct {
	hub       *Hub
	cancelHub context.CancelFunc
	logger    types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new broadcast module.
func NewModule(logger types.Logger) *Module {
	return &Module{
		hub:    NewHub(logger),
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "broadcast"
}

// GetHub returns the WebSocket hub for the API module to use.
func (m *Module) GetHub() *Hub {
	return m.hub
}

// Start runs the hub.
func (m *Module) Start(_ context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelHub = cancel
	go m.hub.Run(ctx)
	m.logger.Info("Broadcast module started")
	return nil
}

// Stop shuts down the hub and waits for it to finish.
func (m *Module) Stop(_ context.Context) error {
	clients := m.hub.ClientCount()
	if m.cancelHub != nil {
		m.cancelHub()
		m.hub.Wait()
	}
	m.logger.Info("Broadcast module stopped", "connectedClients", clients)
	return nil
}

// Health returns the health status.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"connected_clients": m.hub.ClientCount(),
		},
	}
}

// RegisterEventConsumers registers handlers for the relay events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(
		registry, events.UserJoinedV1, m.handleUserJoined, m,
	); err != nil {
		return fmt.Errorf("failed to register UserJoined consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.UserLeftV1, m.handleUserLeft, m,
	); err != nil {
		return fmt.Errorf("failed to register UserLeft consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.MessageSentV1, m.handleMessageSent, m,
	); err != nil {
		return fmt.Errorf("failed to register MessageSent consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.LocationSharedV1, m.handleLocationShared, m,
	); err != nil {
		return fmt.Errorf("failed to register LocationShared consumer: %w", err)
	}

	m.logger.Info("Registered broadcast event consumers",
		"events", []string{"UserJoined", "UserLeft", "MessageSent", "LocationShared"})
	return nil
}

// handleUserJoined delivers the welcome to the joiner, then the notice to the
// rest of the room, then the roster to everyone, so the joiner sees the
// welcome before the room-wide messages.
func (m *Module) handleUserJoined(_ context.Context, event events.UserJoinedEvent, _ *mono.Msg) error {
	m.hub.SendToClient(event.ConnectionID, Frame{Type: FrameMessage, Data: event.Welcome})
	m.hub.SendToMany(event.Others, Frame{Type: FrameMessage, Data: event.Notice})
	m.hub.SendToMany(event.Members, Frame{
		Type: FrameRoomData,
		Data: chat.RoomData{Room: event.Room, Users: event.Roster},
	})
	return nil
}

func (m *Module) handleUserLeft(_ context.Context, event events.UserLeftEvent, _ *mono.Msg) error {
	m.hub.SendToMany(event.Remaining, Frame{Type: FrameMessage, Data: event.Notice})
	m.hub.SendToMany(event.Remaining, Frame{
		Type: FrameRoomData,
		Data: chat.RoomData{Room: event.Room, Users: event.Roster},
	})
	return nil
}

func (m *Module) handleMessageSent(_ context.Context, event events.MessageSentEvent, _ *mono.Msg) error {
	m.hub.SendToMany(event.Recipients, Frame{Type: FrameMessage, Data: event.Message})
	return nil
}

// handleLocationShared goes to every connected client, not just the sender's
// room.
func (m *Module) handleLocationShared(_ context.Context, event events.LocationSharedEvent, _ *mono.Msg) error {
	m.hub.SendToAll(Frame{Type: FrameLocationMessage, Data: event.Location})
	return nil
}
