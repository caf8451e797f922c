package domain

// ChatMessage one chat message, immutable once written.
// Timestamp is assigned at write time in nanoseconds so two messages
// in the same room never tie.
type ChatMessage struct {
	ID         string `bson:"id" json:"id"`
	PairKey    string `bson:"pair_key" json:"pair_key"`
	RoomName   string `bson:"room_name" json:"room_name"`
	SenderID   int64  `bson:"sender_id" json:"sender_id"`
	ReceiverID int64  `bson:"receiver_id" json:"receiver_id"`
	Content    string `bson:"content" json:"content"`
	Timestamp  int64  `bson:"timestamp" json:"timestamp"`
}
