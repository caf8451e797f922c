package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"event_management_service/internal/chat/domain"
	"event_management_service/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// UserChannel per-user redis channel for incoming-message notification
func UserChannel(userID int64) string {
	return fmt.Sprintf("chat:user:%d", userID)
}

// RedisPubSub definition redis pub/sub
type RedisPubSub struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisPubSub create RedisPubSub
func NewRedisPubSub(client *redis.Client) *RedisPubSub {
	return &RedisPubSub{
		client: client,
		ctx:    context.Background(),
	}
}

// Publish serialize the message and publish it to the channel
func (r *RedisPubSub) Publish(channel string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return r.client.Publish(r.ctx, channel, data).Err()
}

// Subscribe listen on a channel and hand each incoming message to the handler
func (r *RedisPubSub) Subscribe(ctx context.Context, channel string, handler func(resp domain.WSResponse)) error {
	sub := r.client.Subscribe(r.ctx, channel)
	go func() {
		ch := sub.Channel()

		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}

				var result domain.ChatMessage
				if err := json.Unmarshal([]byte(m.Payload), &result); err != nil {
					logger.Log.Error("pubsub payload unmarshal failed", zap.String("err", err.Error()))
					continue
				}

				resp := domain.WSResponse{
					Action:  string(domain.NotifyMessage),
					Success: true,
					Payload: map[string]interface{}{
						"message_id": result.ID,
						"room_name":  result.RoomName,
						"sender_id":  result.SenderID,
						"message":    result.Content,
						"timestamp":  result.Timestamp,
					},
				}
				handler(resp)
			case <-ctx.Done():
				logger.Log.Info(fmt.Sprintf("%s , sub close", channel))
				sub.Close()
				return
			}
		}
	}()
	return nil
}
