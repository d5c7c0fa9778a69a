package userdata

import (
	"errors"
	"math"
	"time"

	"github.com/sheriffbukari/xtx-training/internal/quiz"
)

var (
	// ErrNotFound is returned on a first-ever load; the caller initializes
	// the record via Create.
	ErrNotFound = errors.New("user record not found")
	// ErrExists is returned by Create when the record is already initialized.
	ErrExists = errors.New("user record already exists")
)

// PathProgress tracks one user's completion of one learning path. The
// percentage is never stored: it is always derived from CompletedTopics.
type PathProgress struct {
	CompletedTopics []int      `json:"completed_topics"`
	StartedAt       time.Time  `json:"started_at"`
	LastUpdated     time.Time  `json:"last_updated"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// Percent derives the completion percentage against the path's topic count.
func (p PathProgress) Percent(totalTopics int) int {
	if totalTopics == 0 {
		return 0
	}
	return int(math.Round(float64(len(p.CompletedTopics)) / float64(totalTopics) * 100))
}

// HasTopic reports whether topicIndex is in the completed set.
func (p PathProgress) HasTopic(topicIndex int) bool {
	for _, t := range p.CompletedTopics {
		if t == topicIndex {
			return true
		}
	}
	return false
}

// PlaygroundUsage is one recorded playground snippet.
type PlaygroundUsage struct {
	Code      string    `json:"code"`
	Language  string    `json:"language"`
	Timestamp time.Time `json:"timestamp"`
}

// Record is the per-user durable document.
type Record struct {
	QuizCompletions  []quiz.Completion       `json:"quiz_completions"`
	PlaygroundUsage  []PlaygroundUsage       `json:"playground_usage"`
	LearningProgress map[string]PathProgress `json:"learning_progress"`
	LastActive       time.Time               `json:"last_active"`
	CreatedAt        time.Time               `json:"created_at"`
}

func emptyRecord(now time.Time) Record {
	return Record{
		QuizCompletions:  []quiz.Completion{},
		PlaygroundUsage:  []PlaygroundUsage{},
		LearningProgress: map[string]PathProgress{},
		LastActive:       now,
		CreatedAt:        now,
	}
}
