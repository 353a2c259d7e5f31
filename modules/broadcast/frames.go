package broadcast

// Frame is one outbound transport event as written to a WebSocket client.
type Frame struct {
	Type  string `json:"type"`
	For   string `json:"for,omitempty"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// Frame types for server-to-client events.
const (
	FrameMessage         = "message"
	FrameLocationMessage = "locationMessage"
	FrameRoomData        = "roomData"
	FrameAck             = "ack"
)

// Ack builds the acknowledgment frame for an inbound event. Every inbound
// event is acked exactly once; a nil error means success.
func Ack(event string, err error) Frame {
	frame := Frame{Type: FrameAck, For: event}
	if err != nil {
		frame.Error = err.Error()
	}
	return frame
}
