package userdata

import (
	"context"
	"sync"
	"time"

	"github.com/sheriffbukari/xtx-training/internal/quiz"
)

// MemoryStore is the in-process Store used by tests and offline runs.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record), now: time.Now}
}

// NewMemoryStoreWithClock is test-only for deterministic timestamps.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{records: make(map[string]Record), now: now}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Load(_ context.Context, userID string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[userID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (m *MemoryStore) Create(_ context.Context, userID string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[userID]; ok {
		return Record{}, ErrExists
	}
	rec := emptyRecord(m.now())
	m.records[userID] = rec
	return cloneRecord(rec), nil
}

func (m *MemoryStore) AppendQuizCompletion(_ context.Context, userID string, c quiz.Completion) error {
	return m.mutate(userID, func(rec *Record) {
		rec.QuizCompletions = append(rec.QuizCompletions, c)
	})
}

func (m *MemoryStore) AppendPlaygroundUsage(_ context.Context, userID string, u PlaygroundUsage) error {
	return m.mutate(userID, func(rec *Record) {
		rec.PlaygroundUsage = append(rec.PlaygroundUsage, u)
	})
}

func (m *MemoryStore) ReplaceLearningProgress(_ context.Context, userID string, progress map[string]PathProgress) error {
	return m.mutate(userID, func(rec *Record) {
		next := make(map[string]PathProgress, len(progress))
		for k, v := range progress {
			next[k] = clonePathProgress(v)
		}
		rec.LearningProgress = next
	})
}

func (m *MemoryStore) Reset(_ context.Context, userID string) error {
	return m.mutate(userID, func(rec *Record) {
		created := rec.CreatedAt
		*rec = emptyRecord(m.now())
		rec.CreatedAt = created
	})
}

func (m *MemoryStore) mutate(userID string, apply func(rec *Record)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[userID]
	if !ok {
		return ErrNotFound
	}
	apply(&rec)
	rec.LastActive = m.now()
	m.records[userID] = rec
	return nil
}

func cloneRecord(rec Record) Record {
	out := rec
	out.QuizCompletions = append([]quiz.Completion(nil), rec.QuizCompletions...)
	out.PlaygroundUsage = append([]PlaygroundUsage(nil), rec.PlaygroundUsage...)
	out.LearningProgress = make(map[string]PathProgress, len(rec.LearningProgress))
	for k, v := range rec.LearningProgress {
		out.LearningProgress[k] = clonePathProgress(v)
	}
	return out
}

func clonePathProgress(p PathProgress) PathProgress {
	out := p
	out.CompletedTopics = append([]int(nil), p.CompletedTopics...)
	if p.CompletedAt != nil {
		at := *p.CompletedAt
		out.CompletedAt = &at
	}
	return out
}
