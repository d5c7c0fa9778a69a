package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sheriffbukari/xtx-training/internal/auth"
	"github.com/sheriffbukari/xtx-training/internal/content"
	"github.com/sheriffbukari/xtx-training/internal/learn"
	"github.com/sheriffbukari/xtx-training/internal/quiz"
	"github.com/sheriffbukari/xtx-training/internal/userdata"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinels onto HTTP statuses. Validation failures are
// 4xx the client can fix; store failures are 5xx and never retried here.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, quiz.ErrAnswerRequired),
		errors.Is(err, quiz.ErrIncomplete),
		errors.Is(err, quiz.ErrQuestionIndex),
		errors.Is(err, quiz.ErrUnknownOption),
		errors.Is(err, quiz.ErrNoQuestions),
		errors.Is(err, learn.ErrTopicIndex),
		errors.Is(err, auth.ErrWeakPassword):
		status = http.StatusBadRequest
	case errors.Is(err, quiz.ErrAlreadySubmitted),
		errors.Is(err, auth.ErrEmailInUse),
		errors.Is(err, userdata.ErrExists):
		status = http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrBadToken),
		errors.Is(err, auth.ErrResetTokenInvalid):
		status = http.StatusUnauthorized
	case errors.Is(err, quiz.ErrAttemptNotFound),
		errors.Is(err, quiz.ErrQuizNotFound),
		errors.Is(err, content.ErrPathNotFound),
		errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, userdata.ErrNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request body"})
		return false
	}
	return true
}
