package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/issuechat/internal/models"
	"github.com/lalith-99/issuechat/internal/repository"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// TimeLayout renders message times on a 12-hour clock, e.g. "3:45 pm".
const TimeLayout = "3:04 pm"

// watermarkTimeout bounds the cache write that follows an insert. It runs
// detached from the request context so a client hanging up right after
// posting doesn't leave the watermark behind.
const watermarkTimeout = 2 * time.Second

// MessageView is the externally visible projection of a message.
type MessageView struct {
	ID      int64  `json:"id"`
	Sender  string `json:"sender"`
	Content string `json:"content"`
	Time    string `json:"time"`
}

// ChannelMessages is everything the channel page needs: the full message
// list plus the markers the client polls from.
//
// FirstTimestamp is the created_at of the FIRST message by id. Older clients
// label it "last send date"; the value is kept as-is until someone confirms
// which one the UI actually wants.
type ChannelMessages struct {
	Channel        models.Channel `json:"channel"`
	Messages       []MessageView  `json:"messages"`
	LastID         int64          `json:"last_id"`
	FirstTimestamp time.Time      `json:"first_timestamp,omitzero"`
}

// NewMessage is the input of CreateMessage.
type NewMessage struct {
	ChannelName string `json:"channelName"`
	Sender      string `json:"sender" validate:"required"`
	Content     string `json:"content" validate:"required"`
}

// MessageService is the query and ingest side of issue channels.
type MessageService struct {
	channels repository.ChannelRepository
	messages repository.MessageRepository
	marks    Watermark
	loc      *time.Location
	logger   *zap.Logger
}

func NewMessageService(
	channels repository.ChannelRepository,
	messages repository.MessageRepository,
	marks Watermark,
	loc *time.Location,
	logger *zap.Logger,
) *MessageService {
	if loc == nil {
		loc = time.UTC
	}
	return &MessageService{
		channels: channels,
		messages: messages,
		marks:    marks,
		loc:      loc,
		logger:   logger,
	}
}

// ListMessages returns every message of the channel, oldest first.
func (s *MessageService) ListMessages(ctx context.Context, channelName string) (*ChannelMessages, error) {
	ch, err := s.resolve(ctx, channelName)
	if err != nil {
		return nil, err
	}

	msgs, err := s.messages.ListAfter(ctx, ch.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	out := &ChannelMessages{
		Channel:  *ch,
		Messages: s.views(msgs),
	}
	if len(msgs) > 0 {
		out.LastID = msgs[len(msgs)-1].ID
		out.FirstTimestamp = msgs[0].CreatedAt
		s.advance(ctx, ch.ID, out.LastID)
	}
	return out, nil
}

// PollNewMessages returns the channel's messages with id > sinceID, oldest
// first. sinceID <= 0 means from the beginning.
func (s *MessageService) PollNewMessages(ctx context.Context, channelName string, sinceID int64) ([]MessageView, error) {
	if sinceID < 0 {
		sinceID = 0
	}

	ch, err := s.resolve(ctx, channelName)
	if err != nil {
		return nil, err
	}

	if sinceID > 0 {
		latest, ok, err := s.marks.Latest(ctx, ch.ID)
		switch {
		case err != nil:
			s.logger.Warn("watermark read failed, querying store",
				zap.String("channel", ch.Name),
				zap.Error(err),
			)
		case ok && latest <= sinceID:
			return []MessageView{}, nil
		}
	}

	msgs, err := s.messages.ListAfter(ctx, ch.ID, sinceID)
	if err != nil {
		return nil, fmt.Errorf("poll messages: %w", err)
	}
	if len(msgs) > 0 {
		s.advance(ctx, ch.ID, msgs[len(msgs)-1].ID)
	}
	return s.views(msgs), nil
}

// CreateMessage validates and appends a message to the channel.
// Nothing is written when validation fails.
func (s *MessageService) CreateMessage(ctx context.Context, in NewMessage) (MessageView, error) {
	if err := validateInput(in); err != nil {
		return MessageView{}, err
	}

	ch, err := s.resolve(ctx, in.ChannelName)
	if err != nil {
		return MessageView{}, err
	}

	msg, err := s.messages.Create(ctx, ch.ID, in.Sender, in.Content)
	if err != nil {
		return MessageView{}, fmt.Errorf("create message: %w", err)
	}

	s.advance(ctx, ch.ID, msg.ID)

	return s.view(*msg), nil
}

// FormatTime renders t in loc with TimeLayout.
func FormatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(TimeLayout)
}

func (s *MessageService) resolve(ctx context.Context, name string) (*models.Channel, error) {
	ch, err := s.channels.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolve channel: %w", err)
	}
	if ch == nil {
		return nil, fmt.Errorf("channel %q: %w", name, ErrNotFound)
	}
	return ch, nil
}

// advance pushes the watermark up to id. On failure the key is dropped so
// polls fall back to the store; a failed drop is only logged, the key's TTL
// bounds how long it can stay stale.
func (s *MessageService) advance(ctx context.Context, channelID uuid.UUID, id int64) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), watermarkTimeout)
	defer cancel()

	err := s.marks.Advance(ctx, channelID, id)
	if err == nil {
		return
	}
	s.logger.Warn("watermark advance failed",
		zap.String("channel_id", channelID.String()),
		zap.Int64("message_id", id),
		zap.Error(err),
	)
	if err := s.marks.Forget(ctx, channelID); err != nil {
		s.logger.Error("watermark forget failed",
			zap.String("channel_id", channelID.String()),
			zap.Error(err),
		)
	}
}

func (s *MessageService) view(m models.Message) MessageView {
	return MessageView{
		ID:      m.ID,
		Sender:  m.Sender,
		Content: m.Content,
		Time:    FormatTime(m.CreatedAt, s.loc),
	}
}

func (s *MessageService) views(msgs []models.Message) []MessageView {
	return lo.Map(msgs, func(m models.Message, _ int) MessageView {
		return s.view(m)
	})
}
