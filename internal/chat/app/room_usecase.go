package app

import (
	"context"
	"errors"
	"time"

	"event_management_service/internal/chat/domain"
	"event_management_service/internal/chat/repository"
)

// UserDirectory identity checks against the account store
type UserDirectory interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

// RoomUseCase deterministic room pairing for user pairs
type RoomUseCase struct {
	roomRepo repository.RoomRepository
	users    UserDirectory
}

// NewRoomUseCase init room use case
func NewRoomUseCase(r repository.RoomRepository, users UserDirectory) *RoomUseCase {
	return &RoomUseCase{
		roomRepo: r,
		users:    users,
	}
}

// ResolveOrCreateRoom return the room for the pair, creating it on first
// contact. Idempotent and symmetric in argument order: both (a,b) and (b,a)
// land on the same canonical pair key.
func (uc *RoomUseCase) ResolveOrCreateRoom(ctx context.Context, initiatorID, targetID int64) (*domain.ChatRoom, error) {
	if initiatorID == targetID {
		return nil, domain.ErrSelfChat
	}

	for _, id := range []int64{initiatorID, targetID} {
		ok, err := uc.users.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrUserNotFound
		}
	}

	pairKey := domain.NewPairKey(initiatorID, targetID)
	room, err := uc.roomRepo.FindByPairKey(ctx, pairKey)
	if err != nil {
		return nil, err
	}
	if room != nil {
		return room, nil
	}

	low, high := domain.OrderPair(initiatorID, targetID)

	// name collisions regenerate until a free name inserts, the unique
	// indexes make the loop terminate with a valid room either way
	for {
		name, err := domain.GenerateRoomName()
		if err != nil {
			return nil, err
		}

		existing, err := uc.roomRepo.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}

		room = &domain.ChatRoom{
			Name:      name,
			PairKey:   pairKey,
			UserLow:   low,
			UserHigh:  high,
			CreatedAt: time.Now().Unix(),
		}

		err = uc.roomRepo.CreateRoom(ctx, room)
		switch {
		case err == nil:
			return room, nil

		case errors.Is(err, repository.ErrPairExists):
			// lost the race, the winner's room is the pair's room
			return uc.roomRepo.FindByPairKey(ctx, pairKey)

		case errors.Is(err, repository.ErrNameTaken):
			continue

		default:
			return nil, err
		}
	}
}

// ListRoomsFor rooms where the user is either participant
func (uc *RoomUseCase) ListRoomsFor(ctx context.Context, userID int64) ([]domain.ChatRoom, error) {
	return uc.roomRepo.ListByUser(ctx, userID)
}

// ResolveCounterpart the other participant of a room as seen by the viewer
func (uc *RoomUseCase) ResolveCounterpart(room *domain.ChatRoom, viewerID int64) (int64, error) {
	return room.Counterpart(viewerID)
}
