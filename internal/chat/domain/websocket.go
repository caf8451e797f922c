package domain

// Action websocket request action
type Action string

const (
	// ResolveRoom websocket action resolve_room
	ResolveRoom Action = "resolve_room"
	// SendMessage websocket action send_message
	SendMessage Action = "send_message"
	// ListMessages websocket action list_messages
	ListMessages Action = "list_messages"
	// ListRooms websocket action list_rooms
	ListRooms Action = "list_rooms"

	// NotifyMessage websocket action notify_message
	NotifyMessage Action = "notify_message"
)

// WSRequest websocket Request
type WSRequest struct {
	Action   string `json:"action"`
	TargetID int64  `json:"target_id"`
	Content  string `json:"content"`
}

// WSResponse websocket Response
type WSResponse struct {
	Action  string                 `json:"action"`
	Success bool                   `json:"success"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	Error   string                 `json:"error,omitempty"`
}
