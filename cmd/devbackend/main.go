package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-walks-client/internal/config"
	"pet-walks-client/internal/devbackend"
	"pet-walks-client/internal/devbackend/accounts"
	pg "pet-walks-client/internal/devbackend/storage/postgres"
	"pet-walks-client/internal/platform/logger"
	"pet-walks-client/internal/ports/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config", map[string]any{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    "pet-walks-devbackend",
	})

	tokens, err := accounts.NewTokens(cfg.Dev.JWTSecret, cfg.Dev.TokenTTL)
	if err != nil {
		log.Error("tokens", map[string]any{"error": err})
		os.Exit(1)
	}
	if cfg.Dev.JWTSecret == "" {
		log.Warn("DEV_JWT_SECRET not set, using a random secret", nil)
	}

	// Postgres opcional: sin DB_DSN todo queda en memoria.
	var db *sql.DB
	if cfg.Dev.DBDSN != "" {
		db, err = pg.Open(cfg.Dev.DBDSN)
		if err != nil {
			log.Error("postgres open", map[string]any{"error": err})
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = pg.Migrate(ctx, db)
		cancel()
		if err != nil {
			log.Error("postgres migrate", map[string]any{"error": err})
			os.Exit(1)
		}
		log.Info("storage: postgres", nil)
	} else {
		log.Info("storage: memory", nil)
	}

	r := devbackend.NewRouter(devbackend.Options{
		Tokens: tokens,
		Logger: log,
		DB:     db,
		Seed: []accounts.RegisterInput{
			{Name: "Cliente Demo", Email: "cliente@paseos.dev", Phone: "5511111111", Password: "Cliente123", RoleID: auth.RoleClient},
			{Name: "Paseador Demo", Email: "paseador@paseos.dev", Phone: "5522222222", Password: "Paseador123", RoleID: auth.RoleWalker},
		},
		OnResetCode: func(email, code string) {
			// modo dev: el "correo" es el log
			log.Info("reset code", map[string]any{"email": email, "reset_code": code})
		},
	})

	addr := ":" + cfg.Dev.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": addr, "swagger": "/swagger/index.html"})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err})
		os.Exit(1)
	}
}
