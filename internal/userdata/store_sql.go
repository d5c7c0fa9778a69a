package userdata

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/sheriffbukari/xtx-training/internal/quiz"
)

// SQLStore persists user records as JSON columns, one row per user. Appends
// are read-modify-write inside a transaction; records are single-writer so
// this does not race within the scope of one session.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

var _ Store = (*SQLStore)(nil)

func (s *SQLStore) Load(ctx context.Context, userID string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT quiz_completions_json, playground_usage_json, learning_progress_json, last_active, created_at
		 FROM user_records WHERE user_id=$1`, userID)

	var qj, pj, lj string
	var lastActive, createdAt int64
	if err := row.Scan(&qj, &pj, &lj, &lastActive, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}

	rec := Record{
		LastActive: time.Unix(lastActive, 0).UTC(),
		CreatedAt:  time.Unix(createdAt, 0).UTC(),
	}
	if err := json.Unmarshal([]byte(qj), &rec.QuizCompletions); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(pj), &rec.PlaygroundUsage); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(lj), &rec.LearningProgress); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *SQLStore) Create(ctx context.Context, userID string) (Record, error) {
	now := time.Now().UTC().Truncate(time.Second)
	rec := emptyRecord(now)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_records (user_id, quiz_completions_json, playground_usage_json, learning_progress_json, last_active, created_at)
		 VALUES ($1,'[]','[]','{}',$2,$3)`,
		userID, now.Unix(), now.Unix())
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *SQLStore) AppendQuizCompletion(ctx context.Context, userID string, c quiz.Completion) error {
	return s.mutate(ctx, userID, func(rec *Record, now time.Time) {
		rec.QuizCompletions = append(rec.QuizCompletions, c)
	})
}

func (s *SQLStore) AppendPlaygroundUsage(ctx context.Context, userID string, u PlaygroundUsage) error {
	return s.mutate(ctx, userID, func(rec *Record, now time.Time) {
		rec.PlaygroundUsage = append(rec.PlaygroundUsage, u)
	})
}

func (s *SQLStore) ReplaceLearningProgress(ctx context.Context, userID string, progress map[string]PathProgress) error {
	return s.mutate(ctx, userID, func(rec *Record, now time.Time) {
		rec.LearningProgress = progress
	})
}

func (s *SQLStore) Reset(ctx context.Context, userID string) error {
	return s.mutate(ctx, userID, func(rec *Record, now time.Time) {
		created := rec.CreatedAt
		*rec = emptyRecord(now)
		rec.CreatedAt = created
	})
}

func (s *SQLStore) mutate(ctx context.Context, userID string, apply func(rec *Record, now time.Time)) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	row := tx.QueryRowContext(ctx,
		`SELECT quiz_completions_json, playground_usage_json, learning_progress_json, last_active, created_at
		 FROM user_records WHERE user_id=$1`, userID)

	var qj, pj, lj string
	var lastActive, createdAt int64
	if err = row.Scan(&qj, &pj, &lj, &lastActive, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		return err
	}

	rec := Record{
		LastActive: time.Unix(lastActive, 0).UTC(),
		CreatedAt:  time.Unix(createdAt, 0).UTC(),
	}
	if err = json.Unmarshal([]byte(qj), &rec.QuizCompletions); err != nil {
		return err
	}
	if err = json.Unmarshal([]byte(pj), &rec.PlaygroundUsage); err != nil {
		return err
	}
	if err = json.Unmarshal([]byte(lj), &rec.LearningProgress); err != nil {
		return err
	}

	now := time.Now().UTC().Truncate(time.Second)
	apply(&rec, now)
	rec.LastActive = now

	qb, err := json.Marshal(rec.QuizCompletions)
	if err != nil {
		return err
	}
	pb, err := json.Marshal(rec.PlaygroundUsage)
	if err != nil {
		return err
	}
	lb, err := json.Marshal(rec.LearningProgress)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE user_records
		 SET quiz_completions_json=$1, playground_usage_json=$2, learning_progress_json=$3, last_active=$4
		 WHERE user_id=$5`,
		string(qb), string(pb), string(lb), now.Unix(), userID)
	return err
}
