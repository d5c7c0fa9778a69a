package http

import (
	"net/http"

	"github.com/sheriffbukari/xtx-training/internal/auth"
	"github.com/sheriffbukari/xtx-training/internal/content"
	"github.com/sheriffbukari/xtx-training/internal/eventlog"
	"github.com/sheriffbukari/xtx-training/internal/notify"
	"github.com/sheriffbukari/xtx-training/internal/userdata"
)

// ProfileHandler summarizes the durable record for the profile view: quiz
// history, per-path percentages, playground activity, last-active.
func ProfileHandler(store userdata.Store, catalog *content.Catalog) http.HandlerFunc {
	type pathRow struct {
		Path       string `json:"path"`
		Completed  int    `json:"completed_topics"`
		Total      int    `json:"total_topics"`
		Percentage int    `json:"percentage"`
		Finished   bool   `json:"finished"`
	}
	type resp struct {
		Record userdata.Record `json:"record"`
		Paths  []pathRow       `json:"paths"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := userdata.LoadOrCreate(r.Context(), store, auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		rows := make([]pathRow, 0, len(rec.LearningProgress))
		for title, p := range rec.LearningProgress {
			total := 0
			if cp, err := catalog.PathByTitle(title); err == nil {
				total = len(cp.Topics)
			}
			rows = append(rows, pathRow{
				Path:       title,
				Completed:  len(p.CompletedTopics),
				Total:      total,
				Percentage: p.Percent(total),
				Finished:   p.CompletedAt != nil,
			})
		}
		writeJSON(w, http.StatusOK, resp{Record: rec, Paths: rows})
	}
}

// ResetRecordHandler wipes the user's durable record back to empty. The
// account itself is untouched.
func ResetRecordHandler(store userdata.Store, notifier notify.Notifier, events eventlog.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		if err := store.Reset(r.Context(), userID); err != nil {
			writeError(w, err)
			return
		}
		notifier.Info("Progress data has been reset")
		_ = events.Append(r.Context(), eventlog.Event{
			Type:     eventlog.TypeRecordReset,
			Key:      userID,
			DataJSON: `{}`,
		})
		writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
	}
}

// ListDocsHandler serves the documentation cards. Public content.
func ListDocsHandler(catalog *content.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.Docs)
	}
}
