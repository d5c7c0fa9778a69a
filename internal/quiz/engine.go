package quiz

import "math"

// Phase is the attempt lifecycle state.
type Phase string

const (
	PhaseAnswering  Phase = "answering"
	PhaseSubmitting Phase = "submitting"
	PhaseResults    Phase = "results"
)

// Engine drives a single traversal of an ordered question set: navigation,
// answer selection, scoring. It is not safe for concurrent use; callers that
// share an engine across goroutines must serialize access (see Attempt).
type Engine struct {
	questions []Question
	index     int
	answers   map[int]string
	phase     Phase
	result    *Result
}

// NewEngine starts an attempt over the given questions.
func NewEngine(questions []Question) (*Engine, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Engine{
		questions: questions,
		answers:   make(map[int]string),
		phase:     PhaseAnswering,
	}, nil
}

// CurrentIndex is the 0-based index of the question being answered.
func (e *Engine) CurrentIndex() int { return e.index }

// Phase reports the lifecycle state of the attempt.
func (e *Engine) Phase() Phase { return e.phase }

// TotalQuestions is the fixed question count for the attempt.
func (e *Engine) TotalQuestions() int { return len(e.questions) }

// AnsweredCount is the number of questions with a recorded answer.
func (e *Engine) AnsweredCount() int { return len(e.answers) }

// Answer returns the recorded option for a question index, if any.
func (e *Engine) Answer(index int) (string, bool) {
	id, ok := e.answers[index]
	return id, ok
}

// SelectAnswer records (or overwrites) the answer for a question. It never
// advances navigation. Only valid while the attempt is still being answered.
func (e *Engine) SelectAnswer(index int, optionID string) error {
	if e.phase != PhaseAnswering {
		return ErrAlreadySubmitted
	}
	if index < 0 || index >= len(e.questions) {
		return ErrQuestionIndex
	}
	if !hasOption(e.questions[index], optionID) {
		return ErrUnknownOption
	}
	e.answers[index] = optionID
	return nil
}

// Advance moves to the next question. The current question must be answered
// first; on the last question a full submit is triggered instead. The returned
// Result is non-nil only when Advance submitted the attempt.
func (e *Engine) Advance() (*Result, error) {
	if e.phase != PhaseAnswering {
		return nil, ErrAlreadySubmitted
	}
	if _, ok := e.answers[e.index]; !ok {
		return nil, ErrAnswerRequired
	}
	if e.index == len(e.questions)-1 {
		return e.Submit()
	}
	e.index++
	return nil, nil
}

// Retreat moves back one question, floored at 0. Allowed regardless of answer
// state while answering; a no-op at index 0.
func (e *Engine) Retreat() {
	if e.phase != PhaseAnswering {
		return
	}
	if e.index > 0 {
		e.index--
	}
}

// Submit scores the attempt. Every question must have an answer. The score is
// computed synchronously and returned; repeated submits are rejected. Scoring
// is a pure fold over the answer map, so it is deterministic and independent
// of the order answers were recorded in.
func (e *Engine) Submit() (*Result, error) {
	if e.phase != PhaseAnswering {
		return nil, ErrAlreadySubmitted
	}
	if len(e.answers) < len(e.questions) {
		return nil, ErrIncomplete
	}
	e.phase = PhaseSubmitting

	score := 0
	for i, q := range e.questions {
		if e.answers[i] == q.CorrectOption {
			score++
		}
	}
	total := len(e.questions)
	answers := make(map[int]string, len(e.answers))
	for k, v := range e.answers {
		answers[k] = v
	}
	res := &Result{
		Score:          score,
		TotalQuestions: total,
		Percentage:     roundPercent(score, total),
		Answers:        answers,
	}
	e.result = res
	e.phase = PhaseResults
	return res, nil
}

// Result returns the submitted result, or nil while still answering.
func (e *Engine) Result() *Result { return e.result }

// Retry resets the attempt to its initial state. The question set is reused.
func (e *Engine) Retry() {
	e.index = 0
	e.answers = make(map[int]string)
	e.phase = PhaseAnswering
	e.result = nil
}

// Review breaks down the submitted attempt question by question. Empty until
// results are available.
func (e *Engine) Review() []QuestionReview {
	if e.phase != PhaseResults {
		return nil
	}
	out := make([]QuestionReview, 0, len(e.questions))
	for i, q := range e.questions {
		sel := e.answers[i]
		out = append(out, QuestionReview{
			Prompt:        q.Prompt,
			Options:       q.Options,
			Selected:      sel,
			CorrectOption: q.CorrectOption,
			Correct:       sel == q.CorrectOption,
		})
	}
	return out
}

func hasOption(q Question, optionID string) bool {
	for _, o := range q.Options {
		if o.ID == optionID {
			return true
		}
	}
	return false
}

func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
