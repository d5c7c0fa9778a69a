package userdata

import (
	"context"

	"github.com/sheriffbukari/xtx-training/internal/quiz"
)

// Store is the durable per-user record contract. Appends are append-only and
// refresh LastActive; learning progress is replaced as a whole map. Records
// are single-writer (the active session), so no merge semantics exist here.
type Store interface {
	Load(ctx context.Context, userID string) (Record, error)
	Create(ctx context.Context, userID string) (Record, error)
	AppendQuizCompletion(ctx context.Context, userID string, c quiz.Completion) error
	AppendPlaygroundUsage(ctx context.Context, userID string, u PlaygroundUsage) error
	ReplaceLearningProgress(ctx context.Context, userID string, progress map[string]PathProgress) error
	Reset(ctx context.Context, userID string) error
}

// LoadOrCreate fetches the record, initializing an empty one on first login.
func LoadOrCreate(ctx context.Context, s Store, userID string) (Record, error) {
	rec, err := s.Load(ctx, userID)
	if err == ErrNotFound {
		return s.Create(ctx, userID)
	}
	return rec, err
}
