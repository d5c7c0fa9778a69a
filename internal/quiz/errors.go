package quiz

import "errors"

var (
	// ErrAnswerRequired is returned by Advance when the current question has no answer.
	ErrAnswerRequired = errors.New("answer required")
	// ErrIncomplete is returned by Submit when not every question has an answer.
	ErrIncomplete = errors.New("incomplete")
	// ErrAlreadySubmitted rejects Advance/Submit/SelectAnswer once results are in.
	ErrAlreadySubmitted = errors.New("attempt already submitted")
	// ErrQuestionIndex indicates an out-of-range question index.
	ErrQuestionIndex = errors.New("question index out of range")
	// ErrUnknownOption indicates the selected option does not belong to the question.
	ErrUnknownOption = errors.New("unknown answer option")
	// ErrNoQuestions indicates an attempt was started with empty content.
	ErrNoQuestions = errors.New("quiz has no questions")
	// ErrAttemptNotFound indicates the attempt ID is unknown.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
)
