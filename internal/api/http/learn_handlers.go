package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sheriffbukari/xtx-training/internal/auth"
	"github.com/sheriffbukari/xtx-training/internal/content"
	"github.com/sheriffbukari/xtx-training/internal/learn"
	"github.com/sheriffbukari/xtx-training/internal/userdata"
)

// ListPathsHandler serves the learning-path catalog. Public: the catalog is
// static content, progress stays behind auth.
func ListPathsHandler(catalog *content.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.Paths)
	}
}

// pathTitleParam unescapes the {pathTitle} segment; titles contain spaces.
func pathTitleParam(r *http.Request) string {
	raw := chi.URLParam(r, "pathTitle")
	if title, err := url.PathUnescape(raw); err == nil {
		return title
	}
	return raw
}

func GetPathHandler(catalog *content.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := catalog.PathByTitle(pathTitleParam(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

type progressResponse struct {
	Path       string                `json:"path"`
	Progress   userdata.PathProgress `json:"progress"`
	Percentage int                   `json:"percentage"`
}

func ToggleTopicHandler(tracker *learn.Tracker) http.HandlerFunc {
	type req struct {
		TopicIndex int  `json:"topic_index"`
		Completed  bool `json:"completed"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		pathTitle := pathTitleParam(r)
		var in req
		if !decodeBody(w, r, &in) {
			return
		}
		progress, pct, err := tracker.ToggleTopic(r.Context(),
			auth.SubjectFromContext(r.Context()), pathTitle, in.TopicIndex, in.Completed)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, progressResponse{Path: pathTitle, Progress: progress, Percentage: pct})
	}
}

func PathProgressHandler(tracker *learn.Tracker, store userdata.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pathTitle := pathTitleParam(r)
		userID := auth.SubjectFromContext(r.Context())

		pct, err := tracker.Progress(r.Context(), userID, pathTitle)
		if err != nil {
			writeError(w, err)
			return
		}
		var progress userdata.PathProgress
		if rec, err := store.Load(r.Context(), userID); err == nil {
			progress = rec.LearningProgress[pathTitle]
		}
		if progress.CompletedTopics == nil {
			progress.CompletedTopics = []int{}
		}
		writeJSON(w, http.StatusOK, progressResponse{Path: pathTitle, Progress: progress, Percentage: pct})
	}
}

func TopicStatusHandler(tracker *learn.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idx, err := strconv.Atoi(chi.URLParam(r, "topicIndex"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad topic index"})
			return
		}
		done, err := tracker.IsTopicComplete(r.Context(),
			auth.SubjectFromContext(r.Context()), pathTitleParam(r), idx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"completed": done})
	}
}
