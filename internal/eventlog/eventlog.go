// Package eventlog appends milestone events to an append-only log with
// server-assigned ordering.
package eventlog

import (
	"context"
	"database/sql"
	"time"
)

const (
	TypeQuizSubmitted  = "quiz.submitted"
	TypePathStarted    = "path.started"
	TypePathCompleted  = "path.completed"
	TypePlaygroundRun  = "playground.run"
	TypeRecordReset    = "record.reset"
	TypeUserRegistered = "user.registered"
)

type Event struct {
	Type     string
	Key      string // natural key: userID or userID|pathTitle
	DataJSON string
}

type Recorder interface {
	Append(ctx context.Context, e Event) error
}

type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Append(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4)`,
		e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}

// Nop discards events; used where the log is not wired (tests, tools).
type Nop struct{}

func (Nop) Append(context.Context, Event) error { return nil }
