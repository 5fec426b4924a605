package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hokago/nichian/internal/ai"
	"github.com/hokago/nichian/internal/auth"
	"github.com/hokago/nichian/internal/config"
	"github.com/hokago/nichian/internal/db"
	"github.com/hokago/nichian/internal/logger"
	"github.com/hokago/nichian/internal/metrics"
	"github.com/hokago/nichian/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := logger.Init(cfg.LogLevel, cfg.Server.Env); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	l := logger.L()
	l.Info("starting", cfg.LogFields()...)

	// Init DB (creates nichian.db in working dir with the sqlite default)
	if err := db.Init(cfg.DB); err != nil {
		l.Fatal("db init", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, closeGen := newGenerator(ctx, cfg.Gemini)
	defer closeGen()

	r := web.Router(web.Deps{
		Sessions:  auth.NewSessions(cfg.Session.Secret, cfg.Session.TTL, cfg.IsProduction()),
		Generator: gen,
		Metrics:   metrics.New(cfg.MetricsNamespace),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	l.Info("nichian listening", zap.String("addr", cfg.Server.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Fatal("server", zap.Error(err))
	}
	l.Info("server stopped")
}

// newGenerator wires both Gemini models. Without an API key the server still
// starts and /generate answers 500.
func newGenerator(ctx context.Context, cfg config.GeminiConfig) (*ai.Generator, func()) {
	if cfg.APIKey == "" {
		logger.L().Warn("GEMINI_API_KEY not set; AI drafting disabled")
		return ai.NewGenerator(nil, nil), func() {}
	}
	structured, err := ai.NewGemini(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		logger.L().Fatal("gemini", zap.Error(err))
	}
	legacy, err := ai.NewGemini(ctx, cfg.APIKey, cfg.LegacyModel)
	if err != nil {
		logger.L().Fatal("gemini", zap.Error(err))
	}
	return ai.NewGenerator(structured, legacy), func() {
		_ = structured.Close()
		_ = legacy.Close()
	}
}
