package repository

import (
	"context"
	"errors"
	"strings"

	"event_management_service/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrPairExists another writer already created the room for this pair
	ErrPairExists = errors.New("room for this pair already exists")
	// ErrNameTaken the generated public name collided with an existing room
	ErrNameTaken = errors.New("room name already taken")
)

// RoomRepository definition chat room storage
type RoomRepository interface {
	EnsureIndexes(ctx context.Context) error
	CreateRoom(ctx context.Context, room *domain.ChatRoom) error
	FindByPairKey(ctx context.Context, pairKey string) (*domain.ChatRoom, error)
	FindByName(ctx context.Context, name string) (*domain.ChatRoom, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.ChatRoom, error)
}

type chatRoomRepository struct {
	roomsColl *mongo.Collection
}

// NewMongoRoomRepository create new mongo room repository
func NewMongoRoomRepository(db *mongo.Database) RoomRepository {
	return &chatRoomRepository{
		roomsColl: db.Collection("chat_rooms"),
	}
}

// EnsureIndexes unique indexes on pair_key and name carry the pairing
// invariants, a concurrent duplicate insert fails instead of forking the pair
func (r *chatRoomRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.roomsColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "pair_key", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("pair_key_unique"),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("name_unique"),
		},
	})
	return err
}

// CreateRoom insert a room, duplicate-key failures are classified so the
// usecase can tell a lost pair race from a name collision
func (r *chatRoomRepository) CreateRoom(ctx context.Context, room *domain.ChatRoom) error {
	_, err := r.roomsColl.InsertOne(ctx, room)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return classifyDuplicate(err)
	}
	return err
}

func classifyDuplicate(err error) error {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if strings.Contains(e.Message, "pair_key") {
				return ErrPairExists
			}
			if strings.Contains(e.Message, "name") {
				return ErrNameTaken
			}
		}
	}
	return ErrPairExists
}

// FindByPairKey nil room and nil error when the pair has no room yet
func (r *chatRoomRepository) FindByPairKey(ctx context.Context, pairKey string) (*domain.ChatRoom, error) {
	var room domain.ChatRoom
	err := r.roomsColl.FindOne(ctx, bson.M{"pair_key": pairKey}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

// FindByName nil room and nil error when the name is free
func (r *chatRoomRepository) FindByName(ctx context.Context, name string) (*domain.ChatRoom, error) {
	var room domain.ChatRoom
	err := r.roomsColl.FindOne(ctx, bson.M{"name": name}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

// ListByUser rooms where the user sits in either slot
func (r *chatRoomRepository) ListByUser(ctx context.Context, userID int64) ([]domain.ChatRoom, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"user_low": userID},
			{"user_high": userID},
		},
	}
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cur, err := r.roomsColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var rooms []domain.ChatRoom
	if err := cur.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}
