package registry

import (
	"errors"
	"strings"
	"sync"

	"github.com/example/chat-relay-demo/domain/chat"
)

// Validation constants
const (
	MaxUsernameLength = 50
	MaxRoomNameLength = 100
)

// Validation errors. These travel verbatim to clients inside ack frames, so
// the texts are part of the wire contract.
var (
	ErrFieldsRequired  = errors.New("Username and room are required")
	ErrUsernameInUse   = errors.New("Username is in use")
	ErrUsernameTooLong = errors.New("Username exceeds maximum length")
	ErrRoomNameTooLong = errors.New("Room name exceeds maximum length")
	ErrAlreadyJoined   = errors.New("Connection has already joined a room")
)

// RoomSummary describes one active room: its name (in the casing of its
// oldest member) and the current member count.
type RoomSummary struct {
	Room  string `json:"room"`
	Users int    `json:"users"`
}

// Store is the membership registry: connection id -> User. Rooms are not
// stored entities; they exist only as the set of users whose Room field
// matches, so an empty room needs no teardown.
//
// All mutations go through the mutex. Users handed out are never mutated
// after creation, so sharing pointers with readers is safe.
type Store struct {
	mu    sync.RWMutex
	users map[string]*chat.User
	order []string // connection ids, membership insertion order
}

// NewStore creates an empty membership registry.
func NewStore() *Store {
	return &Store{
		users: make(map[string]*chat.User),
	}
}

// AddUser validates and registers a user for the given connection id.
// Username and room are trimmed and must be non-empty; the username must be
// unique within the room, comparing both fields case-insensitively.
func (s *Store) AddUser(connectionID, username, room string) (*chat.User, error) {
	username = strings.TrimSpace(username)
	room = strings.TrimSpace(room)

	if username == "" || room == "" {
		return nil, ErrFieldsRequired
	}
	if len(username) > MaxUsernameLength {
		return nil, ErrUsernameTooLong
	}
	if len(room) > MaxRoomNameLength {
		return nil, ErrRoomNameTooLong
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[connectionID]; ok {
		return nil, ErrAlreadyJoined
	}

	for _, id := range s.order {
		u := s.users[id]
		if strings.EqualFold(u.Room, room) && strings.EqualFold(u.Username, username) {
			return nil, ErrUsernameInUse
		}
	}

	user := &chat.User{
		ConnectionID: connectionID,
		Username:     username,
		Room:         room,
	}
	s.users[connectionID] = user
	s.order = append(s.order, connectionID)
	return user, nil
}

// RemoveUser removes and returns the user for a connection id. Removing an
// unknown id is a no-op, so a double disconnect is safe.
func (s *Store) RemoveUser(connectionID string) (*chat.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[connectionID]
	if !ok {
		return nil, false
	}

	delete(s.users, connectionID)
	for i, id := range s.order {
		if id == connectionID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return user, true
}

// GetUser returns the user for a connection id, if one is registered.
func (s *Store) GetUser(connectionID string) (*chat.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[connectionID]
	return user, ok
}

// UsersInRoom returns the current members of a room in membership insertion
// order. The room name is trimmed and matched case-insensitively.
func (s *Store) UsersInRoom(room string) []*chat.User {
	room = strings.TrimSpace(room)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var users []*chat.User
	for _, id := range s.order {
		if u := s.users[id]; strings.EqualFold(u.Room, room) {
			users = append(users, u)
		}
	}
	return users
}

// Rooms returns a summary of every room that currently has members, in the
// order the rooms were first joined.
func (s *Store) Rooms() []RoomSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := make(map[string]int)
	summaries := make([]RoomSummary, 0)
	for _, id := range s.order {
		u := s.users[id]
		key := strings.ToLower(u.Room)
		if i, ok := index[key]; ok {
			summaries[i].Users++
			continue
		}
		index[key] = len(summaries)
		summaries = append(summaries, RoomSummary{Room: u.Room, Users: 1})
	}
	return summaries
}

// UserCount returns the total number of registered users.
func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
