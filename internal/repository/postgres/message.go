package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lalith-99/issuechat/internal/models"
)

type MessageStore struct {
	pool *pgxpool.Pool
}

func NewMessageStore(pool *pgxpool.Pool) *MessageStore {
	return &MessageStore{pool: pool}
}

func (s *MessageStore) Create(ctx context.Context, channelID uuid.UUID, sender, content string) (*models.Message, error) {
	// Messages use bigserial (auto-increment), so we don't pass an ID.
	// created_at is stamped here too, never taken from the client, so the
	// id order and the time order can't disagree.
	query := `
		INSERT INTO messages (channel_id, sender, content, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, channel_id, sender, content, created_at`

	var msg models.Message
	err := s.pool.QueryRow(ctx, query, channelID, sender, content).Scan(
		&msg.ID,
		&msg.ChannelID,
		&msg.Sender,
		&msg.Content,
		&msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return &msg, nil
}

func (s *MessageStore) ListAfter(ctx context.Context, channelID uuid.UUID, afterID int64) ([]models.Message, error) {
	// afterID=0 is "from the beginning": bigserial starts at 1, so the same
	// query covers both the full listing and the delta poll.
	// (channel_id, id) is indexed, see migrations/0001_init.up.sql.
	query := `
		SELECT id, channel_id, sender, content, created_at
		FROM messages
		WHERE channel_id = $1 AND id > $2
		ORDER BY id ASC`

	rows, err := s.pool.Query(ctx, query, channelID, afterID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.ChannelID,
			&msg.Sender,
			&msg.Content,
			&msg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}

func (s *MessageStore) CountByChannel(ctx context.Context, channelID uuid.UUID) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM messages WHERE channel_id = $1`, channelID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}
