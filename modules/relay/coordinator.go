package relay

import (
	"github.com/example/chat-relay-demo/domain/chat"
	"github.com/example/chat-relay-demo/events"
)

// Join registers the connection in the requested room. On success it emits a
// UserJoined event carrying the welcome for the joiner, the notice for the
// rest of the room, and a roster snapshot for everyone. On failure the error
// goes back to the requesting connection alone; nothing is broadcast.
func (m *Module) Join(connectionID, username, room string) (*chat.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, err := m.store.AddUser(connectionID, username, room)
	if err != nil {
		return nil, err
	}

	members := m.store.UsersInRoom(user.Room)
	m.publishJoined(joinedEvent(user, members))

	m.logger.Info("User joined room",
		"connectionID", connectionID,
		"username", user.Username,
		"room", user.Room)
	return user, nil
}

// SendMessage broadcasts a text message to every member of the sender's room,
// sender included. A message from a connection with no registered user is
// dropped silently: the ack still fires, nothing is broadcast.
func (m *Module) SendMessage(connectionID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.store.GetUser(connectionID)
	if !ok {
		m.logger.Warn("Dropping message from unregistered connection",
			"connectionID", connectionID)
		return nil
	}

	members := m.store.UsersInRoom(user.Room)
	m.publishMessageSent(sentEvent(user, text, members))
	return nil
}

// ShareLocation broadcasts a map link built from the coordinates to every
// connected client, regardless of room. The unknown-sender policy matches
// SendMessage.
func (m *Module) ShareLocation(connectionID string, latitude, longitude float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.store.GetUser(connectionID)
	if !ok {
		m.logger.Warn("Dropping location from unregistered connection",
			"connectionID", connectionID)
		return nil
	}

	m.publishLocationShared(locationEvent(user, latitude, longitude))
	return nil
}

// Disconnect removes the connection's membership. If a user was actually
// registered, the remaining room members get a departure notice and a fresh
// roster; a disconnect before join (or a double disconnect) does nothing.
func (m *Module) Disconnect(connectionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.store.RemoveUser(connectionID)
	if !ok {
		return
	}

	remaining := m.store.UsersInRoom(user.Room)
	m.publishLeft(leftEvent(user, remaining))

	m.logger.Info("User left room",
		"connectionID", connectionID,
		"username", user.Username,
		"room", user.Room)
}

// Event construction happens under the coordinator mutex, so the connection
// ids and roster inside an event are a consistent snapshot.

func joinedEvent(user *chat.User, members []*chat.User) events.UserJoinedEvent {
	ids := make([]string, 0, len(members))
	others := make([]string, 0, len(members))
	for _, u := range members {
		ids = append(ids, u.ConnectionID)
		if u.ConnectionID != user.ConnectionID {
			others = append(others, u.ConnectionID)
		}
	}

	return events.UserJoinedEvent{
		ConnectionID: user.ConnectionID,
		Room:         user.Room,
		Welcome:      adminMessage("Welcome!"),
		Notice:       adminMessage(user.Username + " has joined the room."),
		Others:       others,
		Members:      ids,
		Roster:       rosterOf(members),
	}
}

func leftEvent(user *chat.User, remaining []*chat.User) events.UserLeftEvent {
	ids := make([]string, 0, len(remaining))
	for _, u := range remaining {
		ids = append(ids, u.ConnectionID)
	}

	return events.UserLeftEvent{
		Room:      user.Room,
		Notice:    adminMessage(user.Username + " has left the room."),
		Remaining: ids,
		Roster:    rosterOf(remaining),
	}
}

func sentEvent(user *chat.User, text string, members []*chat.User) events.MessageSentEvent {
	ids := make([]string, 0, len(members))
	for _, u := range members {
		ids = append(ids, u.ConnectionID)
	}

	return events.MessageSentEvent{
		Room:       user.Room,
		Message:    userMessage(user.Username, text),
		Recipients: ids,
	}
}

func locationEvent(user *chat.User, latitude, longitude float64) events.LocationSharedEvent {
	return events.LocationSharedEvent{
		Location: chat.LocationMessage{
			Username:  user.Username,
			URL:       locationURL(latitude, longitude),
			CreatedAt: nowMillis(),
		},
	}
}

func rosterOf(users []*chat.User) []chat.RosterEntry {
	roster := make([]chat.RosterEntry, 0, len(users))
	for _, u := range users {
		roster = append(roster, chat.RosterEntry{Username: u.Username, Room: u.Room})
	}
	return roster
}
