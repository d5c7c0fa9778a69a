package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sheriffbukari/xtx-training/internal/auth"
	"github.com/sheriffbukari/xtx-training/internal/eventlog"
	"github.com/sheriffbukari/xtx-training/internal/playground"
	"github.com/sheriffbukari/xtx-training/internal/userdata"
)

// Snippets are truncated before storage; the record keeps what the user ran,
// not an unbounded blob.
const maxStoredSnippet = 500

// PlaygroundDeps bundles the collaborators of the code playground endpoints.
type PlaygroundDeps struct {
	Sandbox *playground.Sandbox
	Store   userdata.Store
	Events  eventlog.Recorder
}

func RunCodeHandler(d PlaygroundDeps) http.HandlerFunc {
	type req struct {
		Language string `json:"language"`
		Code     string `json:"code"`
	}
	type resp struct {
		Output string `json:"output"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in req
		if !decodeBody(w, r, &in) {
			return
		}
		if in.Language == "" {
			in.Language = playground.LanguageJavaScript
		}

		output := d.Sandbox.Run(r.Context(), in.Language, in.Code)

		userID := auth.SubjectFromContext(r.Context())
		code := in.Code
		if len(code) > maxStoredSnippet {
			code = code[:maxStoredSnippet]
		}
		if _, err := userdata.LoadOrCreate(r.Context(), d.Store, userID); err == nil {
			_ = d.Store.AppendPlaygroundUsage(r.Context(), userID, userdata.PlaygroundUsage{
				Code:      code,
				Language:  in.Language,
				Timestamp: time.Now(),
			})
		}
		_ = d.Events.Append(r.Context(), eventlog.Event{
			Type:     eventlog.TypePlaygroundRun,
			Key:      userID,
			DataJSON: fmt.Sprintf(`{"language":%q,"bytes":%d}`, in.Language, len(in.Code)),
		})

		writeJSON(w, http.StatusOK, resp{Output: output})
	}
}

// PlaygroundHistoryHandler returns the stored snippet history, newest last.
func PlaygroundHistoryHandler(store userdata.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := userdata.LoadOrCreate(r.Context(), store, auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec.PlaygroundUsage)
	}
}
