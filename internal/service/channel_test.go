package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lalith-99/issuechat/internal/repository/memory"
	"github.com/stretchr/testify/require"
)

func newChannelService() *ChannelService {
	db := memory.New().WithClock(steppingClock())
	return NewChannelService(memory.NewChannelStore(db), memory.NewRoomStore(db))
}

func TestChannelService_CreateChannel(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("should create a channel without a room", func(t *testing.T) {
		req := require.New(t)
		svc := newChannelService()

		ch, err := svc.CreateChannel(ctx, NewChannel{
			Name:        "Issue01",
			Description: "issue01",
			OwnerID:     owner,
			OwnerName:   "john",
		})
		req.NoError(err)
		req.NotEqual(uuid.Nil, ch.ID)
		req.Equal("Issue01", ch.Name)
		req.Equal("issue01", ch.Description)
		req.Equal(owner, ch.OwnerID)
		req.Equal("john", ch.OwnerName)
		req.Nil(ch.RoomID)
	})

	t.Run("should file the channel under the given room", func(t *testing.T) {
		req := require.New(t)
		svc := newChannelService()

		room, err := svc.CreateRoom(ctx, NewRoom{Name: "backend"})
		req.NoError(err)

		ch, err := svc.CreateChannel(ctx, NewChannel{Name: "Issue01", OwnerID: owner, RoomName: "backend"})
		req.NoError(err)
		req.NotNil(ch.RoomID)
		req.Equal(room.ID, *ch.RoomID)
	})

	t.Run("should fail with not found for an unknown room", func(t *testing.T) {
		req := require.New(t)
		svc := newChannelService()

		_, err := svc.CreateChannel(ctx, NewChannel{Name: "Issue01", OwnerID: owner, RoomName: "ghost"})
		req.ErrorIs(err, ErrNotFound)

		channels, err := svc.ListChannels(ctx)
		req.NoError(err)
		req.Empty(channels)
	})

	t.Run("should reject a duplicate name", func(t *testing.T) {
		req := require.New(t)
		svc := newChannelService()

		_, err := svc.CreateChannel(ctx, NewChannel{Name: "Issue01", OwnerID: owner})
		req.NoError(err)
		_, err = svc.CreateChannel(ctx, NewChannel{Name: "Issue01", OwnerID: uuid.New()})
		req.ErrorIs(err, ErrConflict)
	})

	t.Run("should reject an empty or oversized name", func(t *testing.T) {
		req := require.New(t)
		svc := newChannelService()

		_, err := svc.CreateChannel(ctx, NewChannel{OwnerID: owner})
		req.ErrorIs(err, ErrValidation)
		req.ErrorContains(err, "channel_name is required")

		_, err = svc.CreateChannel(ctx, NewChannel{Name: strings.Repeat("x", 101), OwnerID: owner})
		req.ErrorIs(err, ErrValidation)
	})

	t.Run("should reject a name containing a slash", func(t *testing.T) {
		req := require.New(t)
		svc := newChannelService()

		_, err := svc.CreateChannel(ctx, NewChannel{Name: "a/b", OwnerID: owner})
		req.ErrorIs(err, ErrValidation)
		req.ErrorContains(err, "channel_name must not contain '/'")

		channels, err := svc.ListChannels(ctx)
		req.NoError(err)
		req.Empty(channels)
	})

	t.Run("should reject a missing owner", func(t *testing.T) {
		req := require.New(t)
		svc := newChannelService()

		_, err := svc.CreateChannel(ctx, NewChannel{Name: "Issue01"})
		req.ErrorIs(err, ErrValidation)
	})
}

func TestChannelService_ListChannels(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := newChannelService()

	for _, name := range []string{"Issue01", "Issue02", "Issue03"} {
		_, err := svc.CreateChannel(ctx, NewChannel{Name: name, OwnerID: uuid.New()})
		req.NoError(err)
	}

	channels, err := svc.ListChannels(ctx)
	req.NoError(err)
	req.Len(channels, 3)
	req.Equal("Issue03", channels[0].Name)
	req.Equal("Issue01", channels[2].Name)
}

func TestChannelService_CreateRoom(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := newChannelService()

	room, err := svc.CreateRoom(ctx, NewRoom{Name: "backend"})
	req.NoError(err)
	req.Equal("backend", room.Name)

	_, err = svc.CreateRoom(ctx, NewRoom{Name: "backend"})
	req.ErrorIs(err, ErrConflict)

	_, err = svc.CreateRoom(ctx, NewRoom{})
	req.ErrorIs(err, ErrValidation)
}
