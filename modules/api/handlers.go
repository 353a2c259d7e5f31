package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/chat-relay-demo/modules/broadcast"
)

const maxMessageLength = 4096

var errMessageTooLong = errors.New("message exceeds maximum length")

// setupRoutes configures all HTTP routes.
func (m *Module) setupRoutes() {
	// Health check
	m.app.Get("/health", m.healthHandler)

	// WebSocket endpoint
	m.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	m.app.Get("/ws", websocket.New(m.handleWebSocket))

	// REST API v1
	api := m.app.Group("/api/v1")
	api.Get("/rooms", m.listRooms)
	api.Get("/rooms/:room/users", m.roomUsers)
}

// healthHandler handles GET /health.
func (m *Module) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module":            "api",
			"connected_clients": m.hub.ClientCount(),
		},
	})
}

// listRooms handles GET /api/v1/rooms.
func (m *Module) listRooms(c *fiber.Ctx) error {
	rooms, err := m.registry.ListRooms(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "list_failed",
			Message: "Failed to list rooms",
		})
	}

	return c.JSON(RoomListResponse{Rooms: rooms})
}

// roomUsers handles GET /api/v1/rooms/:room/users.
func (m *Module) roomUsers(c *fiber.Ctx) error {
	room := c.Params("room")

	users, err := m.registry.UsersInRoom(c.UserContext(), room)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "roster_failed",
			Message: "Failed to get room roster",
		})
	}

	return c.JSON(RoomUsersResponse{Room: room, Users: users})
}

// handleWebSocket handles one WebSocket connection at /ws. The connection id
// minted here is the identity the registry keys membership on.
func (m *Module) handleWebSocket(c *websocket.Conn) {
	connectionID := uuid.New().String()

	client := &broadcast.Client{ID: connectionID, Conn: c}
	m.hub.Register(client)
	defer func() {
		// Remove the hub entry first so the departure broadcast only
		// reaches the remaining connections.
		m.hub.Unregister(client)
		m.relay.Disconnect(connectionID)
		m.logger.Info("WebSocket client disconnected", "connectionID", connectionID)
	}()

	m.logger.Info("WebSocket client connected", "connectionID", connectionID)

	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				m.logger.Warn("WebSocket read error", "connectionID", connectionID, "error", err)
			}
			break
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			m.ack(connectionID, "invalid", errors.New("invalid frame"))
			continue
		}

		switch frame.Type {
		case EventJoin:
			m.handleJoin(connectionID, frame.Data)
		case EventSendMessage:
			m.handleSendMessage(connectionID, frame.Data)
		case EventShareLocation:
			m.handleShareLocation(connectionID, frame.Data)
		default:
			m.ack(connectionID, frame.Type, errors.New("unknown event type"))
		}
	}
}

func (m *Module) handleJoin(connectionID string, data json.RawMessage) {
	var payload joinPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		m.ack(connectionID, EventJoin, errors.New("invalid join payload"))
		return
	}

	_, err := m.relay.Join(connectionID, payload.Username, payload.Room)
	m.ack(connectionID, EventJoin, err)
}

func (m *Module) handleSendMessage(connectionID string, data json.RawMessage) {
	var payload sendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		m.ack(connectionID, EventSendMessage, errors.New("invalid sendMessage payload"))
		return
	}

	if len(payload.Text) > maxMessageLength {
		m.ack(connectionID, EventSendMessage, errMessageTooLong)
		return
	}

	m.ack(connectionID, EventSendMessage, m.relay.SendMessage(connectionID, payload.Text))
}

func (m *Module) handleShareLocation(connectionID string, data json.RawMessage) {
	var payload shareLocationPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		m.ack(connectionID, EventShareLocation, errors.New("invalid shareLocation payload"))
		return
	}

	m.ack(connectionID, EventShareLocation, m.relay.ShareLocation(connectionID, payload.Latitude, payload.Longitude))
}

// ack delivers the acknowledgment through the hub so every write to a
// connection is serialized with broadcast deliveries.
func (m *Module) ack(connectionID, event string, err error) {
	m.hub.SendToClient(connectionID, broadcast.Ack(event, err))
}
