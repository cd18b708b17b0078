//go:generate go run go.uber.org/mock/mockgen -source=watermark.go -destination=../mocks/mock_watermark.go -package=mocks
package service

import (
	"context"

	"github.com/google/uuid"
)

// Watermark caches the highest message id of each channel so a delta poll
// that cannot return anything is answered without a message query.
// Implemented by *cache.Watermark and cache.Nop.
type Watermark interface {
	// Latest returns the cached highest id. ok is false on a cache miss.
	Latest(ctx context.Context, channelID uuid.UUID) (id int64, ok bool, err error)

	// Advance raises the cached id to at least id. Never lowers it.
	Advance(ctx context.Context, channelID uuid.UUID, id int64) error

	// Forget drops the cached id.
	Forget(ctx context.Context, channelID uuid.UUID) error
}
