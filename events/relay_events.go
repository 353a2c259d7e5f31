package events

import (
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/example/chat-relay-demo/domain/chat"
)

// Relay events carry fully resolved recipient connection ids and rendered
// payloads. Consumers deliver them as-is and never query membership state,
// so the snapshot taken at publish time is the one that gets broadcast.

// UserJoinedEvent is emitted after a successful join.
type UserJoinedEvent struct {
	ConnectionID string             `json:"connection_id"`
	Room         string             `json:"room"`
	Welcome      chat.TextMessage   `json:"welcome"`
	Notice       chat.TextMessage   `json:"notice"`
	Others       []string           `json:"others"`
	Members      []string           `json:"members"`
	Roster       []chat.RosterEntry `json:"roster"`
}

// UserLeftEvent is emitted when a joined connection disconnects.
type UserLeftEvent struct {
	Room      string             `json:"room"`
	Notice    chat.TextMessage   `json:"notice"`
	Remaining []string           `json:"remaining"`
	Roster    []chat.RosterEntry `json:"roster"`
}

// MessageSentEvent is emitted when a joined user sends a text message.
type MessageSentEvent struct {
	Room       string           `json:"room"`
	Message    chat.TextMessage `json:"message"`
	Recipients []string         `json:"recipients"`
}

// LocationSharedEvent is emitted when a joined user shares a location.
// Location messages go to every connected client, not just the sender's room.
type LocationSharedEvent struct {
	Location chat.LocationMessage `json:"location"`
}

// Event definitions for the relay domain.
var (
	UserJoinedV1 = helper.EventDefinition[UserJoinedEvent](
		"relay",
		"UserJoined",
		"v1",
	)

	UserLeftV1 = helper.EventDefinition[UserLeftEvent](
		"relay",
		"UserLeft",
		"v1",
	)

	MessageSentV1 = helper.EventDefinition[MessageSentEvent](
		"relay",
		"MessageSent",
		"v1",
	)

	LocationSharedV1 = helper.EventDefinition[LocationSharedEvent](
		"relay",
		"LocationShared",
		"v1",
	)
)
