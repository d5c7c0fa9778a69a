// Package http wires the platform's route surface: public content and auth
// endpoints, and the JWT-guarded learning surface.
package http

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sheriffbukari/xtx-training/internal/auth"
	"github.com/sheriffbukari/xtx-training/internal/config"
	"github.com/sheriffbukari/xtx-training/internal/content"
	"github.com/sheriffbukari/xtx-training/internal/eventlog"
	"github.com/sheriffbukari/xtx-training/internal/learn"
	"github.com/sheriffbukari/xtx-training/internal/notify"
	"github.com/sheriffbukari/xtx-training/internal/playground"
	"github.com/sheriffbukari/xtx-training/internal/quiz"
	"github.com/sheriffbukari/xtx-training/internal/userdata"
)

// Deps is everything the router needs, constructed in cmd and injected here.
type Deps struct {
	Config   config.Config
	DB       *sql.DB
	Issuer   *auth.TokenIssuer
	Auth     *auth.Service
	Catalog  *content.Catalog
	Registry *quiz.Registry
	Store    userdata.Store
	Tracker  *learn.Tracker
	Sandbox  *playground.Sandbox
	Notifier notify.Notifier
	Events   eventlog.Recorder
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := d.Config.CORSOriginsOffline
	if d.Config.Mode == config.ModeOnline {
		origins = d.Config.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public surface: content and account entry points.
	r.Post("/auth/signup", SignUpHandler(d.Auth, d.Events))
	r.Post("/auth/login", LoginHandler(d.Auth))
	r.Post("/auth/password-reset", PasswordResetHandler(d.Auth))
	r.Post("/auth/password-reset/confirm", PasswordResetConfirmHandler(d.Auth))
	if d.Config.EnableGoogleAuth {
		r.Get("/auth/google/login", auth.GoogleLoginHandler(d.Config))
		r.Get("/auth/google/callback", auth.GoogleCallbackHandler(d.Issuer, d.DB, d.Config))
	}

	r.Get("/learn/paths", ListPathsHandler(d.Catalog))
	r.Get("/learn/paths/{pathTitle}", GetPathHandler(d.Catalog))
	r.Get("/docs", ListDocsHandler(d.Catalog))
	r.Get("/quizzes", ListQuizzesHandler(d.Catalog))

	// Authenticated surface.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Issuer))

		pr.Get("/auth/me", MeHandler(d.Auth))

		qd := QuizDeps{Catalog: d.Catalog, Registry: d.Registry, Store: d.Store, Notifier: d.Notifier, Events: d.Events}
		pr.Post("/quiz/attempts", CreateAttemptHandler(qd))
		pr.Get("/quiz/attempts/{attemptID}", GetAttemptHandler(qd))
		pr.Post("/quiz/attempts/{attemptID}/answer", SelectAnswerHandler(qd))
		pr.Post("/quiz/attempts/{attemptID}/advance", AdvanceHandler(qd))
		pr.Post("/quiz/attempts/{attemptID}/retreat", RetreatHandler(qd))
		pr.Post("/quiz/attempts/{attemptID}/submit", SubmitAttemptHandler(qd))
		pr.Post("/quiz/attempts/{attemptID}/retry", RetryAttemptHandler(qd))

		pr.Post("/learn/paths/{pathTitle}/topics", ToggleTopicHandler(d.Tracker))
		pr.Get("/learn/paths/{pathTitle}/progress", PathProgressHandler(d.Tracker, d.Store))
		pr.Get("/learn/paths/{pathTitle}/topics/{topicIndex}", TopicStatusHandler(d.Tracker))

		pd := PlaygroundDeps{Sandbox: d.Sandbox, Store: d.Store, Events: d.Events}
		pr.Post("/playground/run", RunCodeHandler(pd))
		pr.Get("/playground/history", PlaygroundHistoryHandler(d.Store))

		pr.Get("/profile", ProfileHandler(d.Store, d.Catalog))
		pr.Post("/profile/reset", ResetRecordHandler(d.Store, d.Notifier, d.Events))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	return r
}
