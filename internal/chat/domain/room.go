package domain

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// ChatRoom one-on-one room between a fixed pair of users.
// Immutable once created, UserLow is always the smaller ID.
type ChatRoom struct {
	ID        string `bson:"_id,omitempty" json:"-"`
	Name      string `bson:"name" json:"name"`
	PairKey   string `bson:"pair_key" json:"pair_key"`
	UserLow   int64  `bson:"user_low" json:"user_low"`
	UserHigh  int64  `bson:"user_high" json:"user_high"`
	CreatedAt int64  `bson:"created_at" json:"created_at"`
}

var (
	// ErrSelfChat a user cannot open a room with themselves
	ErrSelfChat = errors.New("cannot open a chat room with yourself")
	// ErrNotParticipant the viewer is not a member of the room
	ErrNotParticipant = errors.New("user is not a participant of this room")
	// ErrUserNotFound one of the pair does not exist in the user directory
	ErrUserNotFound = errors.New("chat user not found")
)

// OrderPair return the two IDs with the smaller one first
func OrderPair(a, b int64) (int64, int64) {
	if a < b {
		return a, b
	}
	return b, a
}

// NewPairKey canonical "low:high" key, identical for both argument orders
func NewPairKey(a, b int64) string {
	low, high := OrderPair(a, b)
	return fmt.Sprintf("%d:%d", low, high)
}

// Counterpart the other participant as seen by the viewer
func (r *ChatRoom) Counterpart(viewerID int64) (int64, error) {
	switch viewerID {
	case r.UserLow:
		return r.UserHigh, nil
	case r.UserHigh:
		return r.UserLow, nil
	default:
		return 0, ErrNotParticipant
	}
}

const (
	roomNameLength  = 10
	roomNameCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateRoomName random 10-char lowercase alphanumeric public name,
// uniform over the charset
func GenerateRoomName() (string, error) {
	max := big.NewInt(int64(len(roomNameCharset)))
	b := make([]byte, roomNameLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = roomNameCharset[n.Int64()]
	}
	return string(b), nil
}
