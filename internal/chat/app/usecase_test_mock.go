package app

import (
	"context"

	"event_management_service/internal/chat/domain"

	"github.com/stretchr/testify/mock"
)

// MockRoomRepository Mock RoomRepository
type MockRoomRepository struct {
	mock.Mock
}

// EnsureIndexes mock index creation
func (m *MockRoomRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// CreateRoom mock create room
func (m *MockRoomRepository) CreateRoom(ctx context.Context, room *domain.ChatRoom) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

// FindByPairKey mock find room by pair key
func (m *MockRoomRepository) FindByPairKey(ctx context.Context, pairKey string) (*domain.ChatRoom, error) {
	args := m.Called(ctx, pairKey)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ChatRoom), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByName mock find room by public name
func (m *MockRoomRepository) FindByName(ctx context.Context, name string) (*domain.ChatRoom, error) {
	args := m.Called(ctx, name)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ChatRoom), args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByUser mock list rooms by participant
func (m *MockRoomRepository) ListByUser(ctx context.Context, userID int64) ([]domain.ChatRoom, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ChatRoom), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockMessageRepository Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// InsertMessage mock insert msg
func (m *MockMessageRepository) InsertMessage(ctx context.Context, msg *domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// ListByPair mock list by pair key
func (m *MockMessageRepository) ListByPair(ctx context.Context, pairKey string) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, pairKey)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ChatMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserDirectory Mock UserDirectory
type MockUserDirectory struct {
	mock.Mock
}

// Exists mock identity check
func (m *MockUserDirectory) Exists(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// MockPublisher Mock MessagePublisher
type MockPublisher struct {
	mock.Mock
}

// Publish mock channel publish
func (m *MockPublisher) Publish(channel string, message interface{}) error {
	args := m.Called(channel, message)
	return args.Error(0)
}
