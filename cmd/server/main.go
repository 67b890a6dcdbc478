package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edupanel/examboard/internal/config"
	"github.com/edupanel/examboard/internal/database"
	"github.com/edupanel/examboard/internal/handler"
	"github.com/edupanel/examboard/internal/logger"
	"github.com/edupanel/examboard/internal/router"
	"github.com/edupanel/examboard/internal/service"
	"github.com/edupanel/examboard/internal/session"
	"github.com/edupanel/examboard/internal/upstream"
	"github.com/edupanel/examboard/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("upstream", cfg.UpstreamBaseURL).
		Msg("Starting Examboard Gateway")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Session Manager ────────────────────────────────────
	api := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, log)
	sessions := session.NewManager(api, session.NewRedisStore(rdb), log)
	sessions.Restore(ctx)

	// ─── Initialize Services & Handlers ────────────────────────────────
	dashboardService := service.NewDashboardService(sessions, rdb, cfg, log)

	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(sessions),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(sessions, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
