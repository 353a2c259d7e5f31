package api

import (
	"encoding/json"

	"github.com/example/chat-relay-demo/domain/chat"
	"github.com/example/chat-relay-demo/modules/registry"
)

// Inbound WebSocket event types.
const (
	EventJoin          = "join"
	EventSendMessage   = "sendMessage"
	EventShareLocation = "shareLocation"
)

// inboundFrame is one client-to-server transport event.
type inboundFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// joinPayload is the data of a join event.
type joinPayload struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// sendMessagePayload is the data of a sendMessage event.
type sendMessagePayload struct {
	Text string `json:"text"`
}

// shareLocationPayload is the data of a shareLocation event.
type shareLocationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RoomListResponse is the API response for listing active rooms.
type RoomListResponse struct {
	Rooms []registry.RoomSummary `json:"rooms"`
}

// RoomUsersResponse is the API response for a room roster.
type RoomUsersResponse struct {
	Room  string             `json:"room"`
	Users []chat.RosterEntry `json:"users"`
}

// ErrorResponse is the API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is the API health check response.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}
