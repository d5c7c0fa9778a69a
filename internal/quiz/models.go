package quiz

import "time"

// Option is one selectable answer for a question.
type Option struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Question is immutable quiz content: supplied at attempt start, never mutated.
type Question struct {
	Prompt        string   `json:"prompt" yaml:"prompt"`
	Options       []Option `json:"options" yaml:"options"`
	CorrectOption string   `json:"correct_option,omitempty" yaml:"correct_option"`
}

// Result is the immutable snapshot derived by a successful submit.
type Result struct {
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Percentage     int            `json:"percentage"`
	Answers        map[int]string `json:"answers"`
}

// Completion is a Result stamped for the durable per-user record.
type Completion struct {
	QuizID         string         `json:"quiz_id"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Percentage     int            `json:"percentage"`
	Answers        map[int]string `json:"answers"`
	Timestamp      time.Time      `json:"timestamp"`
}

// QuestionReview is the per-question breakdown served with results.
type QuestionReview struct {
	Prompt        string   `json:"prompt"`
	Options       []Option `json:"options"`
	Selected      string   `json:"selected"`
	CorrectOption string   `json:"correct_option"`
	Correct       bool     `json:"correct"`
}
