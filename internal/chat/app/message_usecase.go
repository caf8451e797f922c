package app

import (
	"context"
	"time"

	"event_management_service/internal/chat/domain"
	"event_management_service/internal/chat/repository"
	"event_management_service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MessagePublisher fan-out to per-user channels, satisfied by RedisPubSub
type MessagePublisher interface {
	Publish(channel string, message interface{}) error
}

// SendMessageUseCase persists chat messages and notifies receivers
type SendMessageUseCase struct {
	roomUC  *RoomUseCase
	msgRepo repository.MessageRepository
	pubSub  MessagePublisher
}

// NewSendMessageUseCase init message use case
func NewSendMessageUseCase(
	roomUC *RoomUseCase,
	msgRepo repository.MessageRepository,
	pubSub MessagePublisher,
) *SendMessageUseCase {
	return &SendMessageUseCase{
		roomUC:  roomUC,
		msgRepo: msgRepo,
		pubSub:  pubSub,
	}
}

// Execute send a message, resolving the pair's room first.
// A send between two users who never talked creates their room on the way.
func (uc *SendMessageUseCase) Execute(ctx context.Context, senderID, receiverID int64, content string) (string, error) {
	room, err := uc.roomUC.ResolveOrCreateRoom(ctx, senderID, receiverID)
	if err != nil {
		return "", err
	}

	msg := domain.ChatMessage{
		ID:         uuid.New().String(),
		PairKey:    room.PairKey,
		RoomName:   room.Name,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  time.Now().UnixNano(),
	}

	if err := uc.msgRepo.InsertMessage(ctx, &msg); err != nil {
		return "", err
	}

	// delivery is best effort, the message is already persisted
	if uc.pubSub != nil {
		if err := uc.pubSub.Publish(repository.UserChannel(receiverID), msg); err != nil {
			logger.Log.Error("publish failed",
				zap.Int64("receiver", receiverID),
				zap.String("err", err.Error()),
			)
		}
	}

	return msg.ID, nil
}

// ListMessagesForPair full history for an unordered pair, oldest first
func (uc *SendMessageUseCase) ListMessagesForPair(ctx context.Context, a, b int64) ([]domain.ChatMessage, error) {
	return uc.msgRepo.ListByPair(ctx, domain.NewPairKey(a, b))
}
