package models

import (
	"time"

	"github.com/google/uuid"
)

// Room groups issue channels under a common name (a team, a product area).
// Channels are filed under a room when they are created; moving a channel
// between rooms is not supported.
type Room struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Channel is an issue channel: a named thread that collects messages about
// one issue.
//
// OwnerID comes from the bearer token of whoever created the channel. Users
// live in the identity service, so there is no users table to join against;
// OwnerName is a denormalized copy of the username at creation time.
//
// RoomID is nil for channels created outside of any room.
type Channel struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	OwnerName   string     `json:"owner_name"`
	RoomID      *uuid.UUID `json:"room_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Message is a single message posted into a channel.
//
// Why int64 for ID (not UUID)?
//   - bigserial is naturally ordered: higher ID = newer message. The polling
//     endpoint relies on this, clients send back the last ID they saw and
//     get everything strictly above it.
//   - CreatedAt is stamped by the store at insert time, so ID order and
//     time order agree.
//
// Sender is free text. Clients post whatever display name they
// like, it is not tied to an authenticated user.
type Message struct {
	ID        int64     `json:"id"`
	ChannelID uuid.UUID `json:"channel_id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
