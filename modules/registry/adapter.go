package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/example/chat-relay-demo/domain/chat"
)

// Port defines the registry queries available to other modules.
type Port interface {
	UsersInRoom(ctx context.Context, room string) ([]chat.RosterEntry, error)
	ListRooms(ctx context.Context) ([]RoomSummary, error)
}

// Adapter implements Port using the service container.
type Adapter struct {
	container mono.ServiceContainer
}

// NewAdapter creates a new registry adapter.
func NewAdapter(container mono.ServiceContainer) Port {
	if container == nil {
		panic("registry: ServiceContainer is nil")
	}
	return &Adapter{container: container}
}

// UsersInRoom returns the roster of a room.
func (a *Adapter) UsersInRoom(ctx context.Context, room string) ([]chat.RosterEntry, error) {
	req := UsersInRoomRequest{Room: room}
	var resp UsersInRoomResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceUsersInRoom,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("failed to get users in room: %w", err)
	}
	return resp.Users, nil
}

// ListRooms returns a summary of all active rooms.
func (a *Adapter) ListRooms(ctx context.Context) ([]RoomSummary, error) {
	req := ListRoomsRequest{}
	var resp ListRoomsResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceListRooms,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return resp.Rooms, nil
}
