package registry

import (
	"context"

	"github.com/go-monolith/mono"

	"github.com/example/chat-relay-demo/domain/chat"
)

// Service names for request-reply lookups against the registry.
const (
	ServiceGetUser     = "get-user"
	ServiceUsersInRoom = "get-users-in-room"
	ServiceListRooms   = "list-rooms"
)

// GetUserRequest is the request for the get-user service.
type GetUserRequest struct {
	ConnectionID string `json:"connection_id"`
}

// GetUserResponse is the reply for the get-user service. Found is false when
// the connection has not joined a room.
type GetUserResponse struct {
	Found bool       `json:"found"`
	User  *chat.User `json:"user,omitempty"`
}

// UsersInRoomRequest is the request for the get-users-in-room service.
type UsersInRoomRequest struct {
	Room string `json:"room"`
}

// UsersInRoomResponse is the reply for the get-users-in-room service.
type UsersInRoomResponse struct {
	Room  string             `json:"room"`
	Users []chat.RosterEntry `json:"users"`
}

// ListRoomsRequest is the request for the list-rooms service.
type ListRoomsRequest struct{}

// ListRoomsResponse is the reply for the list-rooms service.
type ListRoomsResponse struct {
	Rooms []RoomSummary `json:"rooms"`
}

// handleGetUser serves the get-user request.
func (m *Module) handleGetUser(_ context.Context, req GetUserRequest, _ *mono.Msg) (GetUserResponse, error) {
	user, ok := m.store.GetUser(req.ConnectionID)
	if !ok {
		return GetUserResponse{}, nil
	}
	return GetUserResponse{Found: true, User: user}, nil
}

// handleUsersInRoom serves the get-users-in-room request.
func (m *Module) handleUsersInRoom(_ context.Context, req UsersInRoomRequest, _ *mono.Msg) (UsersInRoomResponse, error) {
	users := m.store.UsersInRoom(req.Room)
	roster := make([]chat.RosterEntry, 0, len(users))
	for _, u := range users {
		roster = append(roster, chat.RosterEntry{Username: u.Username, Room: u.Room})
	}
	return UsersInRoomResponse{Room: req.Room, Users: roster}, nil
}

// handleListRooms serves the list-rooms request.
func (m *Module) handleListRooms(_ context.Context, _ ListRoomsRequest, _ *mono.Msg) (ListRoomsResponse, error) {
	return ListRoomsResponse{Rooms: m.store.Rooms()}, nil
}
