package repository

import (
	"context"

	"event_management_service/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository definition chat message storage
type MessageRepository interface {
	InsertMessage(ctx context.Context, msg *domain.ChatMessage) error
	ListByPair(ctx context.Context, pairKey string) ([]domain.ChatMessage, error)
}

type chatMessageRepository struct {
	coll *mongo.Collection
}

// NewMongoMessageRepository create a MessageRepository
func NewMongoMessageRepository(db *mongo.Database) MessageRepository {
	return &chatMessageRepository{
		coll: db.Collection("chat_messages"),
	}
}

// InsertMessage write one chat message
func (r *chatMessageRepository) InsertMessage(ctx context.Context, msg *domain.ChatMessage) error {
	_, err := r.coll.InsertOne(ctx, msg)
	return err
}

// ListByPair full history for an unordered pair, oldest first
func (r *chatMessageRepository) ListByPair(ctx context.Context, pairKey string) ([]domain.ChatMessage, error) {
	filter := bson.M{"pair_key": pairKey}
	opts := options.Find().SetSort(bson.M{"timestamp": 1})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var messages []domain.ChatMessage
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
