package quiz

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Attempt wraps an Engine with identity and a lock so HTTP handlers can share
// it safely. The attempt is single-owner: one user, one in-progress traversal.
type Attempt struct {
	ID        string
	QuizID    string
	UserID    string
	CreatedAt time.Time

	mu     sync.Mutex
	engine *Engine
}

// Snapshot is the client-facing view of an attempt. Correct options are never
// exposed while answering; the review section appears only with results.
type Snapshot struct {
	ID             string           `json:"id"`
	QuizID         string           `json:"quiz_id"`
	Phase          Phase            `json:"phase"`
	CurrentIndex   int              `json:"current_index"`
	TotalQuestions int              `json:"total_questions"`
	AnsweredCount  int              `json:"answered_count"`
	Question       *Question        `json:"question,omitempty"`
	Selected       string           `json:"selected,omitempty"`
	Result         *Result          `json:"result,omitempty"`
	Review         []QuestionReview `json:"review,omitempty"`
}

func (a *Attempt) SelectAnswer(index int, optionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.SelectAnswer(index, optionID)
}

func (a *Attempt) Advance() (*Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.Advance()
}

func (a *Attempt) Retreat() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.engine.Retreat()
}

func (a *Attempt) Submit() (*Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.Submit()
}

func (a *Attempt) Retry() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.engine.Retry()
}

func (a *Attempt) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	e := a.engine
	snap := Snapshot{
		ID:             a.ID,
		QuizID:         a.QuizID,
		Phase:          e.Phase(),
		CurrentIndex:   e.CurrentIndex(),
		TotalQuestions: e.TotalQuestions(),
		AnsweredCount:  e.AnsweredCount(),
	}
	switch e.Phase() {
	case PhaseResults:
		snap.Result = e.Result()
		snap.Review = e.Review()
	default:
		q := e.questions[e.CurrentIndex()]
		q.CorrectOption = "" // never served while answering
		snap.Question = &q
		snap.Selected, _ = e.Answer(e.CurrentIndex())
	}
	return snap
}

// Registry holds in-flight attempts. Attempts live in memory only; the durable
// record sees a completion exactly once, on submit.
type Registry struct {
	mu       sync.RWMutex
	attempts map[string]*Attempt
}

func NewRegistry() *Registry {
	return &Registry{attempts: make(map[string]*Attempt)}
}

func (r *Registry) Create(quizID, userID string, questions []Question) (*Attempt, error) {
	engine, err := NewEngine(questions)
	if err != nil {
		return nil, err
	}
	a := &Attempt{
		ID:        strings.ReplaceAll(uuid.NewString(), "-", ""),
		QuizID:    quizID,
		UserID:    userID,
		CreatedAt: time.Now(),
		engine:    engine,
	}
	r.mu.Lock()
	r.attempts[a.ID] = a
	r.mu.Unlock()
	return a, nil
}

// Get returns the attempt if it exists and belongs to userID.
func (r *Registry) Get(id, userID string) (*Attempt, error) {
	r.mu.RLock()
	a, ok := r.attempts[id]
	r.mu.RUnlock()
	if !ok || a.UserID != userID {
		return nil, ErrAttemptNotFound
	}
	return a, nil
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.attempts, id)
	r.mu.Unlock()
}
