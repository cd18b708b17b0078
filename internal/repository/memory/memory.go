// Package memory is an in-process implementation of the repository
// interfaces. It backs DATABASE_URL=memory and the service/handler tests.
//
// All three stores share one DB so that message ids form a single sequence
// across channels, the same as the bigserial column in Postgres.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/issuechat/internal/models"
	"github.com/lalith-99/issuechat/internal/repository"
)

type DB struct {
	mu sync.RWMutex

	rooms    map[string]models.Room
	channels map[string]models.Channel
	messages []models.Message // append-only, so id order == slice order
	lastID   int64

	now func() time.Time
}

func New() *DB {
	return &DB{
		rooms:    make(map[string]models.Room),
		channels: make(map[string]models.Channel),
		now:      time.Now,
	}
}

// WithClock replaces the insert timestamp source. Tests use it to pin times.
func (db *DB) WithClock(now func() time.Time) *DB {
	db.mu.Lock()
	db.now = now
	db.mu.Unlock()
	return db
}

type ChannelStore struct {
	db *DB
}

func NewChannelStore(db *DB) *ChannelStore {
	return &ChannelStore{db: db}
}

func (s *ChannelStore) Create(_ context.Context, name, description string, ownerID uuid.UUID, ownerName string, roomID *uuid.UUID) (*models.Channel, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, taken := s.db.channels[name]; taken {
		return nil, repository.ErrDuplicate
	}
	ch := models.Channel{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		OwnerName:   ownerName,
		CreatedAt:   s.db.now(),
	}
	if roomID != nil {
		id := *roomID
		ch.RoomID = &id
	}
	s.db.channels[name] = ch
	return &ch, nil
}

func (s *ChannelStore) GetByName(_ context.Context, name string) (*models.Channel, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	ch, ok := s.db.channels[name]
	if !ok {
		return nil, nil
	}
	return &ch, nil
}

func (s *ChannelStore) List(_ context.Context) ([]models.Channel, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	channels := make([]models.Channel, 0, len(s.db.channels))
	for _, ch := range s.db.channels {
		channels = append(channels, ch)
	}
	sort.Slice(channels, func(i, j int) bool {
		if channels[i].CreatedAt.Equal(channels[j].CreatedAt) {
			return channels[i].Name < channels[j].Name
		}
		return channels[i].CreatedAt.After(channels[j].CreatedAt)
	})
	return channels, nil
}

type RoomStore struct {
	db *DB
}

func NewRoomStore(db *DB) *RoomStore {
	return &RoomStore{db: db}
}

func (s *RoomStore) Create(_ context.Context, name string) (*models.Room, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, taken := s.db.rooms[name]; taken {
		return nil, repository.ErrDuplicate
	}
	r := models.Room{ID: uuid.New(), Name: name, CreatedAt: s.db.now()}
	s.db.rooms[name] = r
	return &r, nil
}

func (s *RoomStore) GetByName(_ context.Context, name string) (*models.Room, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	r, ok := s.db.rooms[name]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

type MessageStore struct {
	db *DB
}

func NewMessageStore(db *DB) *MessageStore {
	return &MessageStore{db: db}
}

func (s *MessageStore) Create(_ context.Context, channelID uuid.UUID, sender, content string) (*models.Message, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.lastID++
	msg := models.Message{
		ID:        s.db.lastID,
		ChannelID: channelID,
		Sender:    sender,
		Content:   content,
		CreatedAt: s.db.now(),
	}
	s.db.messages = append(s.db.messages, msg)
	return &msg, nil
}

func (s *MessageStore) ListAfter(_ context.Context, channelID uuid.UUID, afterID int64) ([]models.Message, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	// ids are 1..lastID in slice order, so the first candidate sits at
	// index afterID.
	start := 0
	if afterID > 0 {
		start = int(min(afterID, int64(len(s.db.messages))))
	}

	messages := make([]models.Message, 0)
	for _, msg := range s.db.messages[start:] {
		if msg.ChannelID == channelID {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

func (s *MessageStore) CountByChannel(_ context.Context, channelID uuid.UUID) (int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var n int64
	for _, msg := range s.db.messages {
		if msg.ChannelID == channelID {
			n++
		}
	}
	return n, nil
}
