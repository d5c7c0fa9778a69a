package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sheriffbukari/xtx-training/internal/auth"
	"github.com/sheriffbukari/xtx-training/internal/content"
	"github.com/sheriffbukari/xtx-training/internal/eventlog"
	"github.com/sheriffbukari/xtx-training/internal/notify"
	"github.com/sheriffbukari/xtx-training/internal/quiz"
	"github.com/sheriffbukari/xtx-training/internal/userdata"
)

// QuizDeps bundles the collaborators of the attempt endpoints.
type QuizDeps struct {
	Catalog  *content.Catalog
	Registry *quiz.Registry
	Store    userdata.Store
	Notifier notify.Notifier
	Events   eventlog.Recorder
}

func CreateAttemptHandler(d QuizDeps) http.HandlerFunc {
	type req struct {
		QuizID string `json:"quiz_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in req
		if !decodeBody(w, r, &in) {
			return
		}
		qs, err := d.Catalog.QuizByID(in.QuizID)
		if err != nil {
			writeError(w, err)
			return
		}
		a, err := d.Registry.Create(qs.ID, auth.SubjectFromContext(r.Context()), qs.Questions)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, a.Snapshot())
	}
}

func GetAttemptHandler(d QuizDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := d.Registry.Get(chi.URLParam(r, "attemptID"), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a.Snapshot())
	}
}

func SelectAnswerHandler(d QuizDeps) http.HandlerFunc {
	type req struct {
		QuestionIndex int    `json:"question_index"`
		OptionID      string `json:"option_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := d.Registry.Get(chi.URLParam(r, "attemptID"), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		var in req
		if !decodeBody(w, r, &in) {
			return
		}
		if err := a.SelectAnswer(in.QuestionIndex, in.OptionID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a.Snapshot())
	}
}

// AdvanceHandler moves to the next question; on the last question it submits,
// which makes the durable completion record.
func AdvanceHandler(d QuizDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := d.Registry.Get(chi.URLParam(r, "attemptID"), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		res, err := a.Advance()
		if err != nil {
			writeError(w, err)
			return
		}
		if res != nil {
			recordCompletion(r, d, a, res)
		}
		writeJSON(w, http.StatusOK, a.Snapshot())
	}
}

func RetreatHandler(d QuizDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := d.Registry.Get(chi.URLParam(r, "attemptID"), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		a.Retreat()
		writeJSON(w, http.StatusOK, a.Snapshot())
	}
}

func SubmitAttemptHandler(d QuizDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := d.Registry.Get(chi.URLParam(r, "attemptID"), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		res, err := a.Submit()
		if err != nil {
			writeError(w, err)
			return
		}
		recordCompletion(r, d, a, res)
		writeJSON(w, http.StatusOK, a.Snapshot())
	}
}

func RetryAttemptHandler(d QuizDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := d.Registry.Get(chi.URLParam(r, "attemptID"), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		a.Retry()
		writeJSON(w, http.StatusOK, a.Snapshot())
	}
}

// ListQuizzesHandler serves the quiz bank index without question bodies.
func ListQuizzesHandler(catalog *content.Catalog) http.HandlerFunc {
	type row struct {
		ID            string `json:"id"`
		Title         string `json:"title"`
		QuestionCount int    `json:"question_count"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]row, 0, len(catalog.QuizSets))
		for _, qs := range catalog.QuizSets {
			out = append(out, row{ID: qs.ID, Title: qs.Title, QuestionCount: len(qs.Questions)})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// recordCompletion appends the durable completion exactly once per submit.
// Store failure is surfaced as a toast but never blocks showing results.
func recordCompletion(r *http.Request, d QuizDeps, a *quiz.Attempt, res *quiz.Result) {
	userID := auth.SubjectFromContext(r.Context())
	c := quiz.Completion{
		QuizID:         a.QuizID,
		Score:          res.Score,
		TotalQuestions: res.TotalQuestions,
		Percentage:     res.Percentage,
		Answers:        res.Answers,
		Timestamp:      time.Now(),
	}
	if _, err := userdata.LoadOrCreate(r.Context(), d.Store, userID); err != nil {
		d.Notifier.Error("Failed to save quiz result")
		return
	}
	if err := d.Store.AppendQuizCompletion(r.Context(), userID, c); err != nil {
		d.Notifier.Error("Failed to save quiz result")
		return
	}
	d.Notifier.Success(fmt.Sprintf("Quiz submitted: %d/%d (%d%%)", res.Score, res.TotalQuestions, res.Percentage))
	_ = d.Events.Append(r.Context(), eventlog.Event{
		Type: eventlog.TypeQuizSubmitted,
		Key:  userID,
		DataJSON: fmt.Sprintf(`{"quiz":%q,"score":%d,"total":%d,"percentage":%d}`,
			a.QuizID, res.Score, res.TotalQuestions, res.Percentage),
	})
}
