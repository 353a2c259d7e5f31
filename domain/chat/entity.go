package chat

// User represents one connected participant. ConnectionID is the opaque
// identity minted by the transport layer; Username and Room are fixed for the
// lifetime of the connection, so a User is never mutated after creation.
type User struct {
	ConnectionID string `json:"-"`
	Username     string `json:"username"`
	Room         string `json:"room"`
}

// RosterEntry is the view of a User carried inside a roomData event.
type RosterEntry struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// TextMessage is the payload of an outbound "message" event.
// CreatedAt is epoch milliseconds.
type TextMessage struct {
	Username  string `json:"username"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"`
}

// LocationMessage is the payload of an outbound "locationMessage" event.
type LocationMessage struct {
	Username  string `json:"username"`
	URL       string `json:"url"`
	CreatedAt int64  `json:"createdAt"`
}

// RoomData is the payload of an outbound "roomData" event: a room name and
// the current roster of that room.
type RoomData struct {
	Room  string        `json:"room"`
	Users []RosterEntry `json:"users"`
}
