package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lalith-99/issuechat/internal/models"
)

// Why context.Context as the first parameter on every method?
//
//   - It's idiomatic Go for anything that does I/O (DB, Redis, HTTP).
//   - It carries deadlines: if the HTTP request is cancelled (client
//     disconnected), the DB query gets cancelled too. No wasted work.

// ErrDuplicate is returned by Create methods when a unique name is taken.
var ErrDuplicate = errors.New("duplicate name")

// ChannelRepository defines the contract for issue channel data operations.
type ChannelRepository interface {
	// Create inserts a new channel and returns it with ID and CreatedAt
	// populated. roomID may be nil. Returns ErrDuplicate if the name is taken.
	Create(ctx context.Context, name, description string, ownerID uuid.UUID, ownerName string, roomID *uuid.UUID) (*models.Channel, error)

	// GetByName returns a single channel. Returns nil, nil if not found.
	GetByName(ctx context.Context, name string) (*models.Channel, error)

	// List returns every channel, newest first.
	// Returns empty slice (not nil) so JSON serializes to [] not null.
	List(ctx context.Context) ([]models.Channel, error)
}

// RoomRepository handles the rooms that channels are filed under.
type RoomRepository interface {
	// Create inserts a room. Returns ErrDuplicate if the name is taken.
	Create(ctx context.Context, name string) (*models.Room, error)

	// GetByName returns a single room. Returns nil, nil if not found.
	GetByName(ctx context.Context, name string) (*models.Room, error)
}

// MessageRepository handles chat message persistence.
type MessageRepository interface {
	// Create persists a message and returns it with ID and CreatedAt populated.
	Create(ctx context.Context, channelID uuid.UUID, sender, content string) (*models.Message, error)

	// ListAfter returns the channel's messages with id > afterID, oldest
	// first. afterID=0 returns the whole channel.
	ListAfter(ctx context.Context, channelID uuid.UUID, afterID int64) ([]models.Message, error)

	// CountByChannel returns how many messages the channel holds. No request
	// path needs it; the tests use it to check that a create adds exactly one
	// message and a rejected create adds none.
	CountByChannel(ctx context.Context, channelID uuid.UUID) (int64, error)
}
