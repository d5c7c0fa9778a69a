package cli

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	api "github.com/sheriffbukari/xtx-training/internal/api/http"
	"github.com/sheriffbukari/xtx-training/internal/auth"
	"github.com/sheriffbukari/xtx-training/internal/config"
	"github.com/sheriffbukari/xtx-training/internal/content"
	"github.com/sheriffbukari/xtx-training/internal/db"
	"github.com/sheriffbukari/xtx-training/internal/eventlog"
	"github.com/sheriffbukari/xtx-training/internal/learn"
	"github.com/sheriffbukari/xtx-training/internal/notify"
	"github.com/sheriffbukari/xtx-training/internal/playground"
	"github.com/sheriffbukari/xtx-training/internal/quiz"
	"github.com/sheriffbukari/xtx-training/internal/userdata"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.HTTPAddr = addr
	}
	if path, _ := cmd.Flags().GetString("content"); path != "" {
		cfg.ContentPath = path
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return err
	}

	catalog, err := content.Load(cfg.ContentPath)
	if err != nil {
		return err
	}

	issuer := auth.NewTokenIssuer(cfg.AuthHMACSecret)
	authSvc := auth.NewService(dbh, issuer, auth.LogMailer{},
		cfg.SessionTokenTTL, cfg.RememberTokenTTL, cfg.ResetTokenTTL)
	store := userdata.NewSQLStore(dbh)
	notifier := notify.NewLogNotifier()
	events := eventlog.NewRepo(dbh)

	router := api.NewRouter(api.Deps{
		Config:   cfg,
		DB:       dbh,
		Issuer:   issuer,
		Auth:     authSvc,
		Catalog:  catalog,
		Registry: quiz.NewRegistry(),
		Store:    store,
		Tracker:  learn.NewTracker(catalog, store, notifier, events),
		Sandbox:  playground.New(),
		Notifier: notifier,
		Events:   events,
	})

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	return http.ListenAndServe(cfg.HTTPAddr, router)
}
