package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lalith-99/issuechat/internal/models"
	"github.com/lalith-99/issuechat/internal/repository"
)

type RoomStore struct {
	pool *pgxpool.Pool
}

func NewRoomStore(pool *pgxpool.Pool) *RoomStore {
	return &RoomStore{pool: pool}
}

func (s *RoomStore) Create(ctx context.Context, name string) (*models.Room, error) {
	query := `
		INSERT INTO rooms (id, name, created_at)
		VALUES (uuid_generate_v4(), $1, now())
		RETURNING id, name, created_at`

	var r models.Room
	err := s.pool.QueryRow(ctx, query, name).Scan(
		&r.ID,
		&r.Name,
		&r.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, fmt.Errorf("insert room: %w", err)
	}
	return &r, nil
}

func (s *RoomStore) GetByName(ctx context.Context, name string) (*models.Room, error) {
	query := `
		SELECT id, name, created_at
		FROM rooms
		WHERE name = $1`

	var r models.Room
	err := s.pool.QueryRow(ctx, query, name).Scan(
		&r.ID,
		&r.Name,
		&r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &r, nil
}
