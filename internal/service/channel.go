package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lalith-99/issuechat/internal/models"
	"github.com/lalith-99/issuechat/internal/repository"
)

// NewChannel is the input of CreateChannel.
//
// RoomName is the room to file the channel under, passed explicitly by the
// caller. Empty means no room.
//
// Name ends up as a path segment of the channel view, so it can't contain a
// slash.
type NewChannel struct {
	Name        string    `json:"channel_name" validate:"required,max=100,excludesall=/"`
	Description string    `json:"channel_content"`
	OwnerID     uuid.UUID `json:"-"`
	OwnerName   string    `json:"-"`
	RoomName    string    `json:"room_name"`
}

type NewRoom struct {
	Name string `json:"room_name" validate:"required,max=100"`
}

type ChannelService struct {
	channels repository.ChannelRepository
	rooms    repository.RoomRepository
}

func NewChannelService(channels repository.ChannelRepository, rooms repository.RoomRepository) *ChannelService {
	return &ChannelService{channels: channels, rooms: rooms}
}

func (s *ChannelService) CreateChannel(ctx context.Context, in NewChannel) (*models.Channel, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.OwnerID == uuid.Nil {
		return nil, fmt.Errorf("%w: owner is required", ErrValidation)
	}

	var roomID *uuid.UUID
	if in.RoomName != "" {
		room, err := s.rooms.GetByName(ctx, in.RoomName)
		if err != nil {
			return nil, fmt.Errorf("resolve room: %w", err)
		}
		if room == nil {
			return nil, fmt.Errorf("room %q: %w", in.RoomName, ErrNotFound)
		}
		roomID = &room.ID
	}

	ch, err := s.channels.Create(ctx, in.Name, in.Description, in.OwnerID, in.OwnerName, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("channel %q: %w", in.Name, ErrConflict)
		}
		return nil, fmt.Errorf("create channel: %w", err)
	}
	return ch, nil
}

func (s *ChannelService) ListChannels(ctx context.Context) ([]models.Channel, error) {
	channels, err := s.channels.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	return channels, nil
}

func (s *ChannelService) CreateRoom(ctx context.Context, in NewRoom) (*models.Room, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	room, err := s.rooms.Create(ctx, in.Name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("room %q: %w", in.Name, ErrConflict)
		}
		return nil, fmt.Errorf("create room: %w", err)
	}
	return room, nil
}
