package relay

import (
	"strconv"
	"time"

	"github.com/example/chat-relay-demo/domain/chat"
)

// AdminUsername is the sentinel author of welcome, join, and leave notices.
const AdminUsername = "Admin"

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func adminMessage(text string) chat.TextMessage {
	return chat.TextMessage{
		Username:  AdminUsername,
		Text:      text,
		CreatedAt: nowMillis(),
	}
}

func userMessage(username, text string) chat.TextMessage {
	return chat.TextMessage{
		Username:  username,
		Text:      text,
		CreatedAt: nowMillis(),
	}
}

// locationURL builds a maps link from a coordinate pair. The query argument
// order is longitude,latitude, which is the order existing clients consume.
func locationURL(latitude, longitude float64) string {
	return "https://google.com/maps?q=" +
		strconv.FormatFloat(longitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(latitude, 'f', -1, 64)
}
